package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "gymcore-session||"
	tokensSetKey     = "gymcore-sessions"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// Session is created by the login flow and only read here.
type Session struct {
	Token     string `json:"-"`
	UserID    int    `json:"user_id"`
	Role      Role   `json:"role"`
	CreatedAt int64  `json:"created_at"`
}

type SessionChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	now         func() time.Time
}

func NewSessionChecker(ttl time.Duration, redisClient *redis.Client) *SessionChecker {
	return &SessionChecker{
		ttl:         ttl,
		redisClient: redisClient,
		now:         time.Now,
	}
}

func (sc *SessionChecker) Session(ctx context.Context, token string) (*Session, error) {
	val, err := sc.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	session := &Session{}
	if err := json.Unmarshal([]byte(val), session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	session.Token = token

	if sc.expired(session) {
		return nil, ErrSessionExpired
	}

	return session, nil
}

func (sc *SessionChecker) expired(session *Session) bool {
	createdAt := time.Unix(session.CreatedAt, 0)
	return sc.now().Sub(createdAt) > sc.ttl
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (sc *SessionChecker) ScanAndClean(ctx context.Context) {
	sessionTokens, err := sc.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("!!! session checker, scan and clean, get sessions: %s", err)
		return
	}

	if len(sessionTokens) == 0 {
		log.Debugln("=> session checker, scan and clean abort, no sessions")
		return
	}

	log.Debugf("=> session checker, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		_, err := sc.Session(ctx, token)
		switch {
		case err == nil:
			continue
		case errors.Is(err, ErrSessionExpired), errors.Is(err, ErrSessionNotFound):
			toRemove = append(toRemove, token)
		default:
			log.Errorf("=> session checker, scan and clean token %s: %s", token, err)
		}
	}

	for _, token := range toRemove {
		if err := sc.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			log.Errorf("=> session checker, clean token %s: %s", token, err)
			continue
		}
		if err := sc.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("=> session checker, clean token %s: %s", token, err)
		}
	}
}

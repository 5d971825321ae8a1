package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionChecker_Session(t *testing.T) {
	db, mock := redismock.NewClientMock()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	checker := NewSessionChecker(time.Hour, db)
	checker.now = func() time.Time { return now }
	require.NotNil(t, checker)

	ctx := context.Background()

	mock.ExpectGet(sessionKeyPrefix + "invalid token").SetErr(redis.Nil)
	session, err := checker.Session(ctx, "invalid token")
	require.ErrorIs(t, err, ErrSessionNotFound)
	assert.Nil(t, session)

	sessionKey := sessionKeyPrefix + "test-token"
	mock.ExpectGet(sessionKey).SetVal(fmt.Sprintf(`{"user_id":12,"role":"member","created_at":%d}`, now.Add(-time.Minute).Unix()))
	session, err = checker.Session(ctx, "test-token")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, 12, session.UserID)
	assert.Equal(t, RoleMember, session.Role)
	assert.Equal(t, "test-token", session.Token)

	mock.ExpectGet(sessionKey).SetVal(fmt.Sprintf(`{"user_id":12,"role":"member","created_at":%d}`, now.Add(-2*time.Hour).Unix()))
	_, err = checker.Session(ctx, "test-token")
	require.ErrorIs(t, err, ErrSessionExpired)

	mock.ExpectGet(sessionKey).SetVal(`{"user_id":12,"role":"trainer","created_at":1}`)
	_, err = checker.Session(ctx, "test-token")
	require.Error(t, err)

	mock.ExpectGet(sessionKey).SetErr(errors.New("conn refused"))
	_, err = checker.Session(ctx, "test-token")
	require.EqualError(t, err, "conn refused")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionChecker_ScanAndClean(t *testing.T) {
	db, mock := redismock.NewClientMock()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	checker := NewSessionChecker(time.Hour, db)
	checker.now = func() time.Time { return now }
	ctx := context.Background()

	mock.ExpectSMembers(tokensSetKey).SetVal([]string{"fresh", "old"})
	mock.ExpectGet(sessionKeyPrefix + "fresh").SetVal(fmt.Sprintf(`{"user_id":1,"role":"admin","created_at":%d}`, now.Unix()))
	mock.ExpectGet(sessionKeyPrefix + "old").SetVal(fmt.Sprintf(`{"user_id":2,"role":"member","created_at":%d}`, now.Add(-3*time.Hour).Unix()))
	mock.ExpectDel(sessionKeyPrefix + "old").SetVal(1)
	mock.ExpectSRem(tokensSetKey, "old").SetVal(1)

	checker.ScanAndClean(ctx)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_RoleJSON(t *testing.T) {
	s := Session{UserID: 3, Role: RoleGymOwner, CreatedAt: 100}
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_id":3,"role":"gym_owner","created_at":100}`, string(b))

	_, err = json.Marshal(Session{UserID: 3})
	require.Error(t, err)
}

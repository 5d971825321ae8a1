package routine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/gymcore/internal/exercises/recommend"
	"github.com/2beens/gymcore/internal/telemetry/metrics"
	"github.com/2beens/gymcore/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const (
	maxAttempts         = 2
	DefaultTimeout      = 30 * time.Second
	DefaultCacheTTL     = 6 * time.Hour
	defaultMaxFailures  = 5
	breakerOpenDuration = 30 * time.Second
	cacheSize           = 10 * 1024 * 1024
)

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Output string `json:"output"`
}

type ClientParams struct {
	ApiURL   string
	ApiKey   string
	Model    string
	Timeout  time.Duration
	CacheTTL time.Duration
	// MaxFailures is the number of consecutive failed generations that opens the breaker.
	MaxFailures    uint32
	HttpClient     *http.Client
	Recommender    *recommend.Engine
	MetricsManager *metrics.Manager
}

// Client generates routines through an LLM completion endpoint.
type Client struct {
	apiURL         string
	apiKey         string
	model          string
	timeout        time.Duration
	cacheTTL       time.Duration
	httpClient     *http.Client
	recommender    *recommend.Engine
	metricsManager *metrics.Manager
	cache          *freecache.Cache
	breaker        *gobreaker.CircuitBreaker[*Routine]
	now            func() time.Time
}

func NewClient(params ClientParams) *Client {
	if params.Timeout <= 0 {
		params.Timeout = DefaultTimeout
	}
	if params.CacheTTL <= 0 {
		params.CacheTTL = DefaultCacheTTL
	}
	if params.MaxFailures == 0 {
		params.MaxFailures = defaultMaxFailures
	}
	if params.HttpClient == nil {
		params.HttpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	maxFailures := params.MaxFailures
	breaker := gobreaker.NewCircuitBreaker[*Routine](gobreaker.Settings{
		Name:        "routine-llm",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     breakerOpenDuration,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("circuit breaker [%s]: %s -> %s", name, from, to)
		},
	})

	return &Client{
		apiURL:         params.ApiURL,
		apiKey:         params.ApiKey,
		model:          params.Model,
		timeout:        params.Timeout,
		cacheTTL:       params.CacheTTL,
		httpClient:     params.HttpClient,
		recommender:    params.Recommender,
		metricsManager: params.MetricsManager,
		cache:          freecache.NewCache(cacheSize),
		breaker:        breaker,
		now:            time.Now,
	}
}

// GenerateRoutine asks the model for a weekly routine for the profile. Each
// attempt is bounded by the client timeout, and a failed attempt is retried
// once when the failure is a timeout, a transport error or a 5xx response.
func (c *Client) GenerateRoutine(ctx context.Context, profile recommend.Profile) (routine *Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "routine.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if c.apiURL == "" {
		c.observe("disabled", 0)
		return nil, ErrRoutineDisabled
	}

	profile = profile.Normalize()
	cacheKey, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}

	if cached, err := c.cache.Get(cacheKey); err == nil {
		routine = &Routine{}
		if err := json.Unmarshal(cached, routine); err == nil {
			log.Tracef("routine for profile %s found in cache", cacheKey)
			span.SetAttributes(attribute.Bool("routine.cached", true))
			c.observe("cached", 0)
			return routine, nil
		}
		log.Errorf("unmarshal cached routine: %s", err)
	}

	start := c.now()
	routine, err = c.breaker.Execute(func() (*Routine, error) {
		return c.generate(ctx, profile)
	})
	elapsed := c.now().Sub(start)

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.observe("unavailable", elapsed)
		return nil, &GenerationError{Attempts: 0, Err: fmt.Errorf("%w: %s", ErrRoutineUnavailable, err)}
	}
	if err != nil {
		status := "upstream_error"
		if errors.Is(err, ErrRoutineTimeout) {
			status = "timeout"
		}
		c.observe(status, elapsed)
		return nil, err
	}
	c.observe("ok", elapsed)

	if routineJson, err := json.Marshal(routine); err != nil {
		log.Errorf("marshal routine for cache: %s", err)
	} else if err := c.cache.Set(cacheKey, routineJson, int(c.cacheTTL.Seconds())); err != nil {
		log.Errorf("set routine cache: %s", err)
	}

	span.SetAttributes(attribute.String("routine.id", routine.ID))
	return routine, nil
}

func (c *Client) generate(ctx context.Context, profile recommend.Profile) (*Routine, error) {
	var suggestions []recommend.Recommendation
	if c.recommender != nil {
		suggestions = c.recommender.Recommend(profile, promptSuggestions)
	}

	reqBody, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: buildPrompt(profile, suggestions),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	attempts := 0
	for attempts < maxAttempts {
		attempts++
		output, retryable, err := c.attempt(ctx, reqBody)
		if err == nil {
			routine := &Routine{
				ID:          uuid.NewString(),
				GeneratedAt: c.now().UTC(),
			}
			parseOutput(output, routine)
			return routine, nil
		}

		lastErr = err
		log.Warnf("generate routine, attempt %d: %s", attempts, err)
		if !retryable || ctx.Err() != nil {
			break
		}
	}

	return nil, &GenerationError{
		Attempts: attempts,
		Err:      lastErr,
	}
}

// attempt makes one call to the model endpoint, bounded by the client timeout.
func (c *Client) attempt(ctx context.Context, reqBody []byte) (output string, retryable bool, err error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.apiURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", false, fmt.Errorf("%w: new request: %s", ErrRoutineUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, fmt.Errorf("%w: %s", ErrRoutineUpstream, ctx.Err())
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", true, fmt.Errorf("%w after %s", ErrRoutineTimeout, c.timeout)
		}
		return "", true, fmt.Errorf("%w: http client do: %s", ErrRoutineUpstream, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return "", true, fmt.Errorf("%w after %s", ErrRoutineTimeout, c.timeout)
		}
		return "", true, fmt.Errorf("%w: read response: %s", ErrRoutineUpstream, err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return "", true, fmt.Errorf("%w: status %d", ErrRoutineUpstream, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("%w: status %d", ErrRoutineUpstream, resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBytes, &genResp); err != nil {
		return "", false, fmt.Errorf("%w: unmarshal response: %s", ErrRoutineUpstream, err)
	}

	return genResp.Output, false, nil
}

func (c *Client) observe(status string, elapsed time.Duration) {
	if c.metricsManager == nil {
		return
	}
	c.metricsManager.CounterRoutineGenerations.WithLabelValues(status).Inc()
	if status != "cached" && status != "disabled" {
		c.metricsManager.HistRoutineGenDuration.Observe(elapsed.Seconds())
	}
}

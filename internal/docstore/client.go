package docstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/contract"
	"github.com/GriffinCanCode/RootAccess/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/RootAccess/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/paths"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/utils"
)

var (
	// ErrNotFound is returned when a document does not exist
	ErrNotFound = errors.New("document not found")
	// ErrRemote is returned for unexpected document store responses
	ErrRemote = errors.New("document store error")
)

// Config configures the client
type Config struct {
	BaseURL    string
	Token      string
	RPS        float64
	Timeout    time.Duration
	MaxRetries int
}

// Client is a document store REST client
type Client struct {
	resty     *resty.Client
	limiter   *rate.Limiter
	breaker   *resilience.Breaker
	sanitizer *bluemonday.Policy
	hasher    *utils.Hasher
	tracer    *tracing.Tracer
	logger    *zap.Logger
}

// NewClient creates a client for cfg.BaseURL
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "RootAccess-Backend/1.0").
		SetHeader("Content-Type", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)
	if cfg.Token != "" {
		restyClient.SetAuthToken(cfg.Token)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), max(1, int(cfg.RPS)))
	}

	breaker := resilience.New("docstore", resilience.Settings{
		Probes:   2,
		Window:   time.Minute,
		Cooldown: 30 * time.Second,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
		IsFailure: func(err error) bool {
			return err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, contract.ErrPermissionDenied)
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Client{
		resty:     restyClient,
		limiter:   limiter,
		breaker:   breaker,
		sanitizer: bluemonday.StrictPolicy(),
		hasher:    utils.DefaultHasher(),
		logger:    logger,
	}
}

// WithTracer records a span per request and propagates trace headers
func (c *Client) WithTracer(t *tracing.Tracer) *Client {
	c.tracer = t
	return c
}

// Breaker exposes the circuit breaker for health reporting
func (c *Client) Breaker() *resilience.Breaker {
	return c.breaker
}

// PublishProjection writes the public projection of actor's player
func (c *Client) PublishProjection(ctx context.Context, actor contract.Actor, doc contract.UserPublicProjectionDoc) error {
	name, err := c.SanitizeDisplayName(doc.DisplayName)
	if err != nil {
		return err
	}
	doc.DisplayName = name
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}

	path := paths.Public(doc.UID)
	fields := map[string]interface{}{
		"uid": doc.UID, "displayName": doc.DisplayName, "avatarFrame": doc.AvatarFrame,
		"level": doc.Level, "rankScore": doc.RankScore, "factionTag": doc.FactionTag,
		"badgeHighlights": doc.BadgeHighlights, "updatedAt": doc.UpdatedAt,
	}
	if err := contract.Authorize(actor, contract.Write{Op: contract.OpUpdate, Path: path, Fields: fields}); err != nil {
		return err
	}

	return c.send(ctx, http.MethodPut, path, doc, nil, nil)
}

// RecordIntent appends a command intent under actor's user document
func (c *Client) RecordIntent(ctx context.Context, actor contract.Actor, intent contract.CommandIntentDoc) error {
	path := paths.UserSub(intent.UID, paths.CommandIntents, intent.IntentID)
	fields := map[string]interface{}{
		"intentId": intent.IntentID, "uid": intent.UID,
		"commandId": intent.CommandID, "requestedAt": intent.RequestedAt,
	}
	if err := contract.Authorize(actor, contract.Write{Op: contract.OpCreate, Path: path, Fields: fields}); err != nil {
		return err
	}

	key := c.hasher.HashFields(intent.UID, intent.CommandID, intent.IntentID)
	headers := map[string]string{"Idempotency-Key": key}
	return c.send(ctx, http.MethodPost, paths.UserSubCollection(intent.UID, paths.CommandIntents), intent, headers, nil)
}

// FetchUser reads the authoritative user document
func (c *Client) FetchUser(ctx context.Context, uid string) (*contract.UserPrivateDoc, error) {
	if err := utils.ValidateID(uid, "uid", true); err != nil {
		return nil, err
	}
	var doc contract.UserPrivateDoc
	if err := c.send(ctx, http.MethodGet, paths.User(uid), nil, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SanitizeDisplayName strips markup and enforces the length limit
func (c *Client) SanitizeDisplayName(name string) (string, error) {
	clean := strings.TrimSpace(c.sanitizer.Sanitize(name))
	if err := utils.ValidateDisplayName(clean); err != nil {
		return "", err
	}
	return clean, nil
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}, headers map[string]string, out interface{}) (err error) {
	if err := c.breaker.Allow(); err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit error: %w", err)
	}

	if c.tracer != nil {
		span, spanCtx := c.tracer.StartSpan(ctx, "docstore "+method)
		span.SetTag("docstore.path", path)
		ctx = spanCtx
		defer func() {
			if err != nil {
				span.SetError(err)
			}
			span.Finish()
			c.tracer.Submit(span)
		}()
	}
	outbound := make(map[string]string, len(headers)+2)
	for k, v := range headers {
		outbound[k] = v
	}
	tracing.InjectTraceContext(ctx, outbound)

	return c.breaker.Execute(func() error {
		req := c.resty.R().SetContext(ctx).SetHeaders(outbound)
		if body != nil {
			req.SetBody(body)
		}
		if out != nil {
			req.SetResult(out)
		}

		resp, err := req.Execute(method, "/"+path)
		if err != nil {
			return fmt.Errorf("%w: %s %s: %v", ErrRemote, method, path, err)
		}

		switch {
		case resp.StatusCode() == http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		case resp.StatusCode() == http.StatusForbidden:
			return fmt.Errorf("%w: %s rejected by remote rules", contract.ErrPermissionDenied, path)
		case resp.IsError():
			return fmt.Errorf("%w: %s %s: status %d", ErrRemote, method, path, resp.StatusCode())
		}

		c.logger.Debug("Document store request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("duration", resp.Time()))
		return nil
	})
}

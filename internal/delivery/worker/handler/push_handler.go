package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"userhub/config"
	deliverycontext "userhub/internal/delivery/context"
	"userhub/internal/domain/constants"
	"userhub/internal/domain/repository"
	"userhub/internal/domain/service"
	"userhub/internal/infra/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// validateIDToken is swapped in tests.
var validateIDToken = idtoken.Validate

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func newRetryableError(err error) error {
	return &retryableError{err: err}
}

func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// PushHandler consumes user lifecycle events and evicts the affected users from the shared cache.
type PushHandler struct {
	verifyPushAuth bool
	pushAudience   string
	logger         *slog.Logger
	userCache      repository.UserCache
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	UserCache repository.UserCache `optional:"true"`
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Google push requests carry an OIDC token outside local and develop environments
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop &&
		params.Config.Env.Env != constants.EnvLocal

	var audience string
	if params.Config.Worker != nil {
		audience = params.Config.Worker.PushAudience
	}

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		pushAudience:   audience,
		logger:         params.Logger,
		userCache:      params.UserCache,
	}
}

// HandlePush handles incoming Pub/Sub push messages.
// Malformed messages are rejected with 400, cache failures return 503 so Pub/Sub redelivers,
// and events that can never succeed are acknowledged with 200.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request(), h.pushAudience); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.UserEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse user event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing user event",
		slog.String("event_id", event.EventID),
		slog.String("type", string(event.Type)),
		slog.String("user_id", event.UserID),
	)

	if err := h.processEvent(ctx, &event); err != nil {
		retryable := isRetryableError(err)
		reqLogger.Error("[Worker] Failed to process user event",
			slog.String("event_id", event.EventID),
			slog.Any("error", err),
			slog.Bool("retryable", retryable),
		)
		if retryable {
			metrics.EventsConsumedTotal.WithLabelValues(string(event.Type), metrics.OutcomeError).Inc()

			return c.NoContent(http.StatusServiceUnavailable)
		}
		metrics.EventsConsumedTotal.WithLabelValues(string(event.Type), metrics.OutcomeDropped).Inc()

		return c.NoContent(http.StatusOK)
	}

	metrics.EventsConsumedTotal.WithLabelValues(string(event.Type), metrics.OutcomeSuccess).Inc()

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.UserEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	// From RequestIDMiddleware via X-Request-Id header
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// processEvent evicts the user named by the event.
func (h *PushHandler) processEvent(ctx context.Context, event *service.UserEvent) error {
	switch event.Type {
	case service.UserEventCreated, service.UserEventUpdated, service.UserEventDeleted:
	default:
		return errors.Errorf("unknown event type %q", event.Type)
	}

	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		return errors.Wrapf(err, "invalid user id %q", event.UserID)
	}

	if h.userCache == nil {
		return nil
	}

	if err := h.userCache.Delete(ctx, userID); err != nil {
		return newRetryableError(errors.WithStack(err))
	}

	deliverycontext.GetLoggerOrDefault(ctx, h.logger).Debug("[Worker] Evicted cached user",
		slog.String("user_id", userID.String()),
	)

	return nil
}

// verifyPubSubToken verifies the OIDC token Google attaches to authenticated push requests.
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request, audience string) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http"
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	payload, err := validateIDToken(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}

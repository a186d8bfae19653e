package gomitasserver

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	userports "github.com/Apurer/gomitas-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/gomitas-api/internal/shared/errors"
)

const (
	HeaderActorID        = "X-Actor-ID"
	HeaderRequestID      = "X-Request-ID"
	HeaderIdempotencyKey = "Idempotency-Key"

	actorContextKey     = "gomitas.actor"
	requestIDContextKey = apierrors.RequestIDKey
)

// ActorResolver turns the caller id sent by the gateway into an actor.
type ActorResolver interface {
	Resolve(ctx context.Context, id int64) (accessdomain.Actor, error)
}

// RequestID echoes X-Request-ID or assigns a fresh UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDContextKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger writes one structured line per request, including any error
// attached by the problem responder.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("route", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
			slog.String("request_id", c.GetString(requestIDContextKey)),
		}
		if actor, ok := actorFromContext(c); ok {
			attrs = append(attrs, slog.Int64("actor_id", actor.ID))
		}
		level := slog.LevelInfo
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("error", c.Errors.String()))
			level = slog.LevelError
		}
		logger.LogAttrs(c.Request.Context(), level, "http request", attrs...)
	}
}

// RequireActor rejects requests without a resolvable X-Actor-ID with 401.
func RequireActor(resolver ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderActorID))
		if raw == "" {
			unauthorized(c, "missing "+HeaderActorID+" header")
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			unauthorized(c, HeaderActorID+" must be a positive integer")
			return
		}
		if resolver == nil {
			unauthorized(c, "caller cannot be resolved")
			return
		}
		actor, err := resolver.Resolve(c.Request.Context(), id)
		if errors.Is(err, userports.ErrNotFound) {
			unauthorized(c, "unknown actor")
			return
		}
		if err != nil {
			respondServiceError(c, err)
			c.Abort()
			return
		}
		c.Set(actorContextKey, actor)
		c.Next()
	}
}

func unauthorized(c *gin.Context, detail string) {
	respondProblem(c, apierrors.ErrUnauthorized.WithDetail(detail))
	c.Abort()
}

func actorFromContext(c *gin.Context) (accessdomain.Actor, bool) {
	value, ok := c.Get(actorContextKey)
	if !ok {
		return accessdomain.Actor{}, false
	}
	actor, ok := value.(accessdomain.Actor)
	return actor, ok
}

// currentActor is only called behind RequireActor.
func currentActor(c *gin.Context) accessdomain.Actor {
	actor, _ := actorFromContext(c)
	return actor
}

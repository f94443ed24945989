package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/prepcoach/internal/insights"
	"github.com/abhisek/prepcoach/internal/profile"
	"github.com/abhisek/prepcoach/internal/store"
)

type APIError struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

// respondServiceError maps service errors onto HTTP statuses. Storage and
// unexpected errors are logged and reported without their detail.
func (h *handlers) respondServiceError(c *gin.Context, err error) {
	var (
		verr *profile.ValidationError
		perr *store.ErrPersistence
	)
	switch {
	case errors.Is(err, profile.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, profile.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "user_not_found", err)
	case errors.Is(err, profile.ErrNotOnboarded):
		respondError(c, http.StatusConflict, "not_onboarded", err)
	case errors.Is(err, profile.ErrNoInsights), errors.Is(err, insights.ErrUnavailable):
		h.log.Warn("insight unavailable", "error", err, "request_id", c.GetString(requestIDKey))
		respondError(c, http.StatusServiceUnavailable, "insight_unavailable", insights.ErrUnavailable)
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorEnvelope{Error: APIError{
			Message: "invalid profile",
			Code:    "invalid_request",
			Fields:  verr.Fields,
		}})
	case errors.As(err, &perr):
		h.log.Error("persistence failure", "entity", perr.Entity, "op", perr.Op, "error", perr.Err, "request_id", c.GetString(requestIDKey))
		respondError(c, http.StatusInternalServerError, "persistence_failure", errors.New(persistenceMessage(perr)))
	default:
		h.log.Error("request failed", "path", c.FullPath(), "error", err, "request_id", c.GetString(requestIDKey))
		respondError(c, http.StatusInternalServerError, "internal", errors.New("internal error"))
	}
}

// persistenceMessage describes a storage failure without its detail.
func persistenceMessage(e *store.ErrPersistence) string {
	switch e.Op {
	case store.OpLoad:
		return "could not load " + e.Entity
	case store.OpList:
		return "could not list " + e.Entity + "s"
	case store.OpUpdate:
		return "could not update " + e.Entity
	default:
		return "could not store " + e.Entity
	}
}

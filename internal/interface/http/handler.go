package http

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/recombooks/internal/domain/recommendation"
	apperrors "github.com/yanqian/recombooks/pkg/errors"
)

const invalidPromptMessage = "Please provide a valid search prompt"

// RecommendationHandler wires the HTTP transport to the recommendation service.
type RecommendationHandler struct {
	svc    recommendation.Service
	logger *slog.Logger
}

// NewRecommendationHandler constructs the HTTP handler.
func NewRecommendationHandler(svc recommendation.Service, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		svc:    svc,
		logger: logger.With("component", "http.handler"),
	}
}

// Recommend handles POST /api/recommendations.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req recommendation.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", invalidPromptMessage, err))
		return
	}

	// A client disconnect cancels in-flight upstream calls; the response is discarded anyway.
	resp, err := h.svc.Recommend(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, recommendError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Genres lists the browsable reading categories.
func (h *RecommendationHandler) Genres(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"genres": h.svc.Genres()})
}

// Health reports liveness.
func (h *RecommendationHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func recommendError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	switch code {
	case apperrors.CodeInvalidInput:
		return NewHTTPError(http.StatusBadRequest, code, invalidPromptMessage, err)
	case apperrors.CodeNoTitles, apperrors.CodeNoResults:
		return NewHTTPError(http.StatusNotFound, code, appMessage(err), err)
	case apperrors.CodeConfig, apperrors.CodeLLM:
		return NewHTTPError(http.StatusInternalServerError, code, errMessage(err), err)
	default:
		return NewHTTPError(http.StatusInternalServerError, "recommendation_failed", errMessage(err), err)
	}
}

func appMessage(err error) string {
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return errMessage(err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

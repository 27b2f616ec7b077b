package api

import (
	"context"
	"errors"
	"net/http"

	"ChurnScope/internal/domain/models"
	xhttp "ChurnScope/pkg/http"
	xlogger "ChurnScope/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Scorer is what the dashboard needs from the scoring use case.
type Scorer interface {
	Score(ctx context.Context, rec models.CustomerRecord) (models.PredictionResult, error)
	Model() models.ModelInfo
}

// DashboardHandler serves the form, the JSON API and the live scoring socket.
type DashboardHandler struct {
	logger   *xlogger.Logger
	scorer   Scorer
	renderer *Renderer
	limiter  *xhttp.RateLimiter
}

func NewDashboardHandler(logger *xlogger.Logger, scorer Scorer, renderer *Renderer, limiter *xhttp.RateLimiter) *DashboardHandler {
	return &DashboardHandler{logger: logger, scorer: scorer, renderer: renderer, limiter: limiter}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	e.Renderer = h.renderer
	e.GET("/", h.Index)
	e.POST("/predict", h.Predict)
	e.GET("/healthz", h.Health)
	e.GET("/ws/score", h.ScoreSocket)

	g := e.Group("/api")
	if h.limiter != nil {
		g.Use(h.limiter.Middleware())
	}
	g.POST("/score", h.Score)
	g.GET("/model", h.Model)
}

// Index renders the empty form with default inputs.
func (h *DashboardHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, pageIndex, newPageView(h.scorer.Model(), formFromRecord(defaultRecord())))
}

// Predict scores a form submission and re-renders the page with the result.
// Failures keep the submitted inputs in the form.
func (h *DashboardHandler) Predict(c echo.Context) error {
	rec := models.CustomerRecord{}
	if verr := xhttp.ReadAndValidateRequest(c, &rec); verr != nil {
		view := newPageView(h.scorer.Model(), formFromRequest(c))
		view.Errors = verr
		return c.Render(http.StatusBadRequest, pageIndex, view)
	}

	view := newPageView(h.scorer.Model(), formFromRecord(rec))
	res, err := h.scorer.Score(c.Request().Context(), rec)
	if err != nil {
		h.logger.Error("predict usecase error", xlogger.Error(err))
		appErr := scoreError(err)
		view.Errors = []xhttp.ValidationError{{Code: appErr.Code, Field: appErr.Field, Message: appErr.Message}}
		return c.Render(appErr.Status, pageIndex, view)
	}

	view.Result = &res
	view.Record = &rec
	return c.Render(http.StatusOK, pageIndex, view)
}

// Score is the JSON form of Predict.
func (h *DashboardHandler) Score(c echo.Context) error {
	rec := &models.CustomerRecord{}
	if verr := xhttp.ReadAndValidateRequest(c, rec); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.scorer.Score(c.Request().Context(), *rec)
	if err != nil {
		h.logger.Error("score usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, scoreError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardHandler) Model(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.scorer.Model())
}

func (h *DashboardHandler) Health(c echo.Context) error {
	info := h.scorer.Model()
	return xhttp.SuccessResponse(c, map[string]string{
		"status":  "ok",
		"model":   info.Name,
		"version": info.Version,
	})
}

// scoreError maps a scoring failure to the response the caller sees.
func scoreError(err error) *xhttp.AppError {
	var mismatch *models.EncodingMismatchError
	if errors.As(err, &mismatch) {
		return xhttp.UnprocessableError(mismatch.Feature, err.Error()).WithError(err)
	}
	var upstream *models.ModelServiceError
	if errors.As(err, &upstream) {
		return xhttp.BadGatewayError("model service unavailable").WithError(err)
	}
	return xhttp.InternalError("prediction failed").WithError(err)
}

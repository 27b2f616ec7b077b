package api

import (
	"errors"
	"net/http"
	"strings"

	"ChurnScope/internal/domain/models"
	xhttp "ChurnScope/pkg/http"

	"github.com/labstack/echo/v4"
)

// UnavailableHandler takes every dashboard route when the model artifact
// failed to load. Pages render the load error, API calls get 503.
type UnavailableHandler struct {
	err      error
	source   string
	renderer *Renderer
}

func NewUnavailableHandler(err error, renderer *Renderer) *UnavailableHandler {
	source := "unknown source"
	var le *models.ArtifactLoadError
	if errors.As(err, &le) {
		source = le.Source
	}
	return &UnavailableHandler{err: err, source: source, renderer: renderer}
}

func (h *UnavailableHandler) RegisterRoutes(e *echo.Echo) {
	e.Renderer = h.renderer
	e.Any("/", h.Unavailable)
	e.Any("/*", h.Unavailable)
}

func (h *UnavailableHandler) Unavailable(c echo.Context) error {
	path := c.Request().URL.Path
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/ws/") || path == "/healthz" {
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError(h.err.Error()).WithError(h.err))
	}
	return c.Render(http.StatusServiceUnavailable, pageUnavailable, unavailableView{
		Source: h.source,
		Error:  h.err.Error(),
	})
}

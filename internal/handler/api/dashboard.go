package api

import (
	"MemeFlow/internal/catalog"
	"MemeFlow/internal/domain/models"
	"MemeFlow/internal/usecase"
	xhttp "MemeFlow/pkg/http"
	xlogger "MemeFlow/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardHandler exposes the live dashboard over Echo: the derived
// view model, session health, the coin list and the watch toggles.
type DashboardHandler struct {
	logger  *xlogger.Logger
	session *usecase.Session
}

func NewDashboardHandler(logger *xlogger.Logger, session *usecase.Session) *DashboardHandler {
	return &DashboardHandler{logger: logger, session: session}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/view", h.View)
	g.GET("/status", h.Status)
	g.GET("/coins", h.Coins)
	g.GET("/search", h.Search)
	g.POST("/watch/:exchange/:symbol", h.Watch)
	g.DELETE("/watch/:exchange/:symbol", h.Unwatch)
	g.POST("/refresh", h.Refresh)
}

// View returns the last published dashboard model.
func (h *DashboardHandler) View(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.session.View())
}

// Status reports connection and catalog health.
func (h *DashboardHandler) Status(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.session.Status())
}

// Coins lists contracts for the requested mode, narrowed by search.
func (h *DashboardHandler) Coins(c echo.Context) error {
	req := &models.CoinListRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	contracts := h.session.Coins(catalog.FilterMode(req.Mode), req.Search)
	return xhttp.SuccessResponse(c, contracts)
}

// Search narrows the coin list by symbol or base coin without changing
// the listing mode.
func (h *DashboardHandler) Search(c echo.Context) error {
	req := &models.SearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	contracts := h.session.Coins("", req.Q)
	return xhttp.SuccessResponse(c, contracts)
}

// Watch adds the instrument to the watch list. Idempotent.
func (h *DashboardHandler) Watch(c echo.Context) error {
	req := &models.WatchToggleRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	id := models.Identity{Exchange: req.Exchange, Symbol: req.Symbol}
	if err := h.session.Watch(c.Request().Context(), id); err != nil {
		h.logger.Error("watch failed", xlogger.String("key", id.Key()), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError("watch rejected by backend").WithError(err))
	}
	return xhttp.SuccessResponse(c, h.session.Watched())
}

// Unwatch removes the instrument from the watch list. Idempotent.
func (h *DashboardHandler) Unwatch(c echo.Context) error {
	req := &models.WatchToggleRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	id := models.Identity{Exchange: req.Exchange, Symbol: req.Symbol}
	if err := h.session.Unwatch(c.Request().Context(), id); err != nil {
		h.logger.Error("unwatch failed", xlogger.String("key", id.Key()), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError("unwatch rejected by backend").WithError(err))
	}
	return xhttp.SuccessResponse(c, h.session.Watched())
}

// Refresh forces a catalog reload ahead of the periodic schedule. The
// reload outlives this request; status reflects it once it lands.
func (h *DashboardHandler) Refresh(c echo.Context) error {
	h.session.Refresh()
	return xhttp.SuccessResponse(c, h.session.Status())
}

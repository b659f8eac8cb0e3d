package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Alias1177/CoinCast/internal/analysis/prediction"
	"github.com/Alias1177/CoinCast/internal/board"
	"github.com/Alias1177/CoinCast/models"
)

// ForecastRequest is the body of POST /api/forecast
type ForecastRequest struct {
	Snapshot models.AssetSnapshot `json:"snapshot"`
	Profile  string               `json:"profile" default:"single" validate:"oneof=single batch"`
	Seed     int64                `json:"seed"`
}

// ForecastHandler serves the published board and on-demand forecasts
type ForecastHandler struct {
	board  *board.Board
	single *prediction.Forecaster
	batch  *prediction.Forecaster
	logger zerolog.Logger
	now    func() time.Time
}

// NewForecastHandler creates the handler
func NewForecastHandler(b *board.Board, single, batch *prediction.Forecaster, logger zerolog.Logger) *ForecastHandler {
	return &ForecastHandler{
		board:  b,
		single: single,
		batch:  batch,
		logger: logger.With().Str("component", "api").Logger(),
		now:    time.Now,
	}
}

// RegisterRoutes mounts the API routes
func (h *ForecastHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/forecasts", h.Forecasts)
	g.GET("/forecasts/:id", h.ForecastByID)
	g.POST("/forecast", h.Forecast)
	g.GET("/hot", h.Hot)

	e.GET("/healthz", h.Health)
}

// Forecasts returns the latest batch
func (h *ForecastHandler) Forecasts(c echo.Context) error {
	batch, ok := h.board.Latest()
	if !ok {
		return AppErrorResponse(c, NotReadyError("forecasts are not available yet"))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return SuccessResponse(c, batch)
}

// ForecastByID returns the latest forecast of one asset
func (h *ForecastHandler) ForecastByID(c echo.Context) error {
	id := c.Param("id")
	result, found, ready := h.board.Find(id)
	if !ready {
		return AppErrorResponse(c, NotReadyError("forecasts are not available yet"))
	}
	if !found {
		return AppErrorResponse(c, NotFoundErrorf("no forecast for asset %q", id))
	}
	return SuccessResponse(c, result)
}

// Forecast runs a forecast for a caller-supplied snapshot
func (h *ForecastHandler) Forecast(c echo.Context) error {
	req := &ForecastRequest{}
	if verr := ReadAndValidateRequest(c, req); verr != nil {
		return BadRequestResponse(c, verr)
	}

	f := h.single
	if req.Profile == "batch" {
		f = h.batch
	}
	seed := req.Seed
	if seed == 0 {
		seed = h.now().UnixNano()
	}

	result, err := f.Forecast(c.Request().Context(), req.Snapshot, prediction.NewSeededSource(seed))
	if err != nil {
		if errors.Is(err, prediction.ErrInvalidSnapshot) || errors.Is(err, prediction.ErrNumericOverflow) {
			return AppErrorResponse(c, BadRequestError("snapshot cannot be forecast").WithError(err))
		}
		h.logger.Error().Err(err).Str("asset_id", req.Snapshot.ID).Msg("forecast error")
		return AppErrorResponse(c, InternalError("forecast failed").WithError(err))
	}
	return SuccessResponse(c, result)
}

// Hot returns the latest hot-token rankings
func (h *ForecastHandler) Hot(c echo.Context) error {
	hot, ok := h.board.Hot()
	if !ok {
		return AppErrorResponse(c, NotReadyError("hot tokens are not available yet"))
	}
	return SuccessResponse(c, hot)
}

// Health reports liveness
func (h *ForecastHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

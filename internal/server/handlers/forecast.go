package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/vzahanych/cwa-forecast/internal/forecast"
	"github.com/vzahanych/cwa-forecast/internal/server/utils"
	"go.uber.org/zap"
)

// Fetcher is the part of forecast.Normalizer the handlers need.
type Fetcher interface {
	Fetch(ctx context.Context, req forecast.ForecastRequest) (*forecast.Forecast, error)
	Regions() forecast.Regions
}

type ForecastHandler struct {
	fetcher    Fetcher
	credential string
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewForecastHandler(fetcher Fetcher, credential string, logger *zap.Logger) *ForecastHandler {
	return &ForecastHandler{
		fetcher:    fetcher,
		credential: credential,
		validate:   utils.NewValidator(fetcher.Regions()),
		logger:     logger,
	}
}

func (h *ForecastHandler) GetForecast(c *gin.Context) {
	ctx := utils.RequestContext(c)
	reqLogger := utils.RequestLogger(c, h.logger)

	var query ForecastQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		reqLogger.Warn("Invalid request parameters", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: err.Error(),
		})
		return
	}

	if verrs := utils.ValidateStruct(h.validate, query); verrs != nil {
		reqLogger.Warn("Unknown region", zap.String("region", query.Region))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:      "Invalid region",
			Code:       "INVALID_REGION",
			Validation: verrs,
		})
		return
	}

	req := forecast.ForecastRequest{RegionName: query.Region, Credential: h.credential}
	if err := h.fetcher.Regions().Validate(req); err != nil {
		reqLogger.Error("Forecast precondition failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "Forecast API credential is not configured",
			Code:    "CREDENTIAL_MISSING",
			Details: err.Error(),
		})
		return
	}

	reqLogger.Info("Processing forecast request", zap.String("region", query.Region))

	result, err := h.fetcher.Fetch(ctx, req)
	if err != nil {
		status, body := errorResponse(err)
		_ = c.Error(err)
		reqLogger.Error("Failed to fetch forecast", zap.String("region", query.Region), zap.Error(err))
		c.JSON(status, body)
		return
	}

	reqLogger.Info("Forecast request completed",
		zap.String("region", query.Region),
		zap.Int("temperature_points", len(result.Temperatures)),
		zap.Int("elements", len(result.Elements)))

	c.JSON(http.StatusOK, result)
}

func (h *ForecastHandler) GetRegions(c *gin.Context) {
	c.JSON(http.StatusOK, RegionsResponse{Regions: h.fetcher.Regions().Names()})
}

func errorResponse(err error) (int, ErrorResponse) {
	var rejected *forecast.APIRejectedError
	switch {
	case errors.As(err, &rejected):
		return http.StatusBadGateway, ErrorResponse{
			Error:   "Forecast API rejected the request",
			Code:    "UPSTREAM_REJECTED",
			Details: string(rejected.Raw),
		}
	case errors.Is(err, forecast.ErrMalformedResponse):
		return http.StatusBadGateway, ErrorResponse{
			Error:   "Forecast API returned an unexpected payload",
			Code:    "MALFORMED_RESPONSE",
			Details: err.Error(),
		}
	case errors.Is(err, forecast.ErrNetwork):
		return http.StatusGatewayTimeout, ErrorResponse{
			Error:   "Forecast API is unreachable",
			Code:    "UPSTREAM_UNAVAILABLE",
			Details: err.Error(),
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to fetch forecast",
			Code:    "INTERNAL_ERROR",
			Details: err.Error(),
		}
	}
}

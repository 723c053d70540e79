package handlers

import (
	"github.com/vzahanych/cwa-forecast/internal/server/utils"
)

// ForecastQuery is the query string of GET /forecast.
type ForecastQuery struct {
	Region string `form:"region" json:"region" validate:"required,region" binding:"required"`
}

type RegionsResponse struct {
	Regions []string `json:"regions"`
}

type ErrorResponse struct {
	Error      string                  `json:"error"`
	Code       string                  `json:"code,omitempty"`
	Details    string                  `json:"details,omitempty"`
	Validation []utils.ValidationError `json:"validation,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

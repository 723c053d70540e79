package forecast

import (
	"context"
	"crypto/tls"
	"errors"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/vzahanych/cwa-forecast/internal/config"
	"github.com/vzahanych/cwa-forecast/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	OutcomeOK                = "ok"
	OutcomeNetworkError      = "network_error"
	OutcomeMalformedResponse = "malformed_response"
	OutcomeAPIRejected       = "api_rejected"
)

// FetchObserver receives one observation per Fetch call.
type FetchObserver interface {
	ObserveFetch(region, outcome string, elapsed time.Duration)
}

// Normalizer fetches F-C0032-001 for one region and derives the temperature
// series and element table. It keeps no state between calls and is safe for
// concurrent use.
type Normalizer struct {
	client      *resty.Client
	datastoreID string
	regions     Regions
	logger      *zap.Logger
	tele        *telemetry.Telemetry
	observer    FetchObserver
}

func NewNormalizer(cfg config.ForecastConfig, logger *zap.Logger, tele *telemetry.Telemetry) *Normalizer {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetHeader("Accept", "application/json").
		SetRetryCount(0).
		SetLogger(logger.Named("resty").Sugar())

	if cfg.InsecureSkipVerify {
		logger.Warn("TLS certificate verification disabled for forecast API",
			zap.String("base_url", cfg.BaseURL))
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec
	}

	return &Normalizer{
		client:      client,
		datastoreID: cfg.DatastoreID,
		regions:     NewRegions(cfg.Regions),
		logger:      logger.With(zap.String("datastore_id", cfg.DatastoreID)),
		tele:        tele,
	}
}

// SetFetchObserver sets the metrics observer for the normalizer
func (n *Normalizer) SetFetchObserver(observer FetchObserver) {
	n.observer = observer
}

func (n *Normalizer) Regions() Regions {
	return n.regions
}

// Fetch performs exactly one request. RegionName and Credential are passed
// through unchecked; use Regions().Validate beforehand.
func (n *Normalizer) Fetch(ctx context.Context, req ForecastRequest) (*Forecast, error) {
	ctx, span := n.tele.GetTracer().Start(ctx, "forecast.Fetch")
	defer span.End()

	span.SetAttributes(
		attribute.String("region", req.RegionName),
		attribute.String("datastore_id", n.datastoreID),
	)

	start := time.Now()
	result, err := n.fetch(ctx, req)
	outcome := Outcome(err)

	if n.observer != nil {
		n.observer.ObserveFetch(req.RegionName, outcome, time.Since(start))
	}

	span.SetAttributes(attribute.String("outcome", outcome))

	if err != nil {
		n.tele.RecordError(ctx, err, map[string]interface{}{"region": req.RegionName})
		n.logger.Warn("Forecast fetch failed",
			zap.String("region", req.RegionName),
			zap.String("outcome", outcome),
			zap.Error(err))
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("temperature_points", len(result.Temperatures)),
		attribute.Int("elements", len(result.Elements)),
	)

	n.logger.Debug("Forecast fetched",
		zap.String("region", req.RegionName),
		zap.Int("temperature_points", len(result.Temperatures)),
		zap.Int("elements", len(result.Elements)),
		zap.Duration("elapsed", time.Since(start)))

	return result, nil
}

func (n *Normalizer) fetch(ctx context.Context, req ForecastRequest) (*Forecast, error) {
	resp, err := n.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"Authorization": req.Credential,
			"locationName":  req.RegionName,
		}).
		Get("/" + n.datastoreID)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	result, misaligned, err := Normalize(req.RegionName, resp.StatusCode(), resp.Body())
	if err != nil {
		return nil, err
	}

	for _, m := range misaligned {
		if m.Index < 0 {
			n.logger.Warn("MinT and MaxT have different lengths, pairing by position",
				zap.String("region", req.RegionName),
				zap.Int("min_len", m.MinLen),
				zap.Int("max_len", m.MaxLen))
			continue
		}
		n.logger.Warn("MinT and MaxT start times differ, pairing by position",
			zap.String("region", req.RegionName),
			zap.Int("index", m.Index),
			zap.String("min_start", m.MinTime),
			zap.String("max_start", m.MaxTime))
	}

	return result, nil
}

// Outcome classifies err into a metrics label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrNetwork):
		return OutcomeNetworkError
	case errors.Is(err, ErrAPIRejected):
		return OutcomeAPIRejected
	default:
		return OutcomeMalformedResponse
	}
}

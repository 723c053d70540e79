package forecast

import (
	"encoding/json"
)

const (
	MinTempElement = "MinT"
	MaxTempElement = "MaxT"

	successValue = "true"
)

// ForecastRequest is the input of a single fetch.
type ForecastRequest struct {
	RegionName string `json:"region_name"`
	Credential string `json:"-"`
}

// RawForecastResponse mirrors the F-C0032-001 payload. Only the fields the
// normalizer reads are modelled.
type RawForecastResponse struct {
	Success json.RawMessage `json:"success"`
	Records *Records        `json:"records"`
}

type Records struct {
	DatasetDescription string     `json:"datasetDescription"`
	Location           []Location `json:"location"`
}

type Location struct {
	LocationName   string           `json:"locationName"`
	WeatherElement []WeatherElement `json:"weatherElement"`
}

type WeatherElement struct {
	ElementName string      `json:"elementName"`
	Time        []TimeEntry `json:"time"`
}

type TimeEntry struct {
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Parameter Parameter `json:"parameter"`
}

type Parameter struct {
	ParameterName  string `json:"parameterName"`
	ParameterValue string `json:"parameterValue,omitempty"`
	ParameterUnit  string `json:"parameterUnit,omitempty"`
}

// succeeded reports whether the success flag is exactly the string "true".
func (r *RawForecastResponse) succeeded() bool {
	var flag string
	if err := json.Unmarshal(r.Success, &flag); err != nil {
		return false
	}
	return flag == successValue
}

// firstLocation returns records.location[0], or false when absent.
func (r *RawForecastResponse) firstLocation() (Location, bool) {
	if r.Records == nil || len(r.Records.Location) == 0 {
		return Location{}, false
	}
	return r.Records.Location[0], true
}

// Element returns the first element named name, or false when none matches.
func (l Location) Element(name string) (WeatherElement, bool) {
	for _, e := range l.WeatherElement {
		if e.ElementName == name {
			return e, true
		}
	}
	return WeatherElement{}, false
}

// timesOf returns the time entries of the named element, or nil when absent.
func (l Location) timesOf(name string) []TimeEntry {
	e, ok := l.Element(name)
	if !ok {
		return nil
	}
	return e.Time
}

type TemperaturePoint struct {
	Timestamp string `json:"timestamp"`
	MinTemp   int    `json:"min_temp"`
	MaxTemp   int    `json:"max_temp"`
}

// TemperatureSeries is ordered by forecast time as returned by the API.
type TemperatureSeries []TemperaturePoint

type ElementRow struct {
	ElementName   string `json:"element_name"`
	ForecastValue string `json:"forecast_value"`
}

// ElementTable keeps the element order of the API response.
type ElementTable []ElementRow

// Forecast bundles both derived views for one region.
type Forecast struct {
	Region       string            `json:"region"`
	Temperatures TemperatureSeries `json:"temperatures"`
	Elements     ElementTable      `json:"elements"`
}

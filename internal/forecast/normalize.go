package forecast

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const TimestampLayout = "01-02 15:04"

var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Misalignment describes a MinT/MaxT pair whose start times differ, or a
// length mismatch when Index is -1.
type Misalignment struct {
	Index   int
	MinTime string
	MaxTime string
	MinLen  int
	MaxLen  int
}

// Normalize turns a raw F-C0032-001 body into both derived views.
// statusCode is only used to annotate rejections.
func Normalize(region string, statusCode int, body []byte) (*Forecast, []Misalignment, error) {
	// The flag is checked before the records are decoded so a rejection is
	// reported as such even when the rest of the payload has another shape.
	var envelope RawForecastResponse
	if err := json.Unmarshal(body, &struct {
		Success *json.RawMessage `json:"success"`
	}{&envelope.Success}); err != nil {
		return nil, nil, &MalformedResponseError{Field: "body", Err: err}
	}

	if !envelope.succeeded() {
		return nil, nil, &APIRejectedError{
			StatusCode: statusCode,
			Reason:     "success flag is not \"true\"",
			Raw:        body,
		}
	}

	var raw RawForecastResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, nil, &MalformedResponseError{Field: "records", Err: err}
	}

	loc, ok := raw.firstLocation()
	if !ok {
		return nil, nil, &APIRejectedError{
			StatusCode: statusCode,
			Reason:     "records.location[0] missing",
			Raw:        body,
		}
	}

	minTimes := loc.timesOf(MinTempElement)
	maxTimes := loc.timesOf(MaxTempElement)

	series, misaligned, err := buildTemperatureSeries(minTimes, maxTimes)
	if err != nil {
		return nil, nil, err
	}

	table, err := buildElementTable(loc.WeatherElement)
	if err != nil {
		return nil, nil, err
	}

	return &Forecast{
		Region:       region,
		Temperatures: series,
		Elements:     table,
	}, misaligned, nil
}

// buildTemperatureSeries pairs MinT and MaxT entries by position.
func buildTemperatureSeries(minTimes, maxTimes []TimeEntry) (TemperatureSeries, []Misalignment, error) {
	n := min(len(minTimes), len(maxTimes))
	series := make(TemperatureSeries, 0, n)

	var misaligned []Misalignment
	if len(minTimes) != len(maxTimes) {
		misaligned = append(misaligned, Misalignment{Index: -1, MinLen: len(minTimes), MaxLen: len(maxTimes)})
	}

	for i := 0; i < n; i++ {
		lo, hi := minTimes[i], maxTimes[i]

		ts, err := formatStartTime(lo.StartTime)
		if err != nil {
			return nil, nil, &MalformedResponseError{
				Field: fmt.Sprintf("%s.time[%d].startTime", MinTempElement, i),
				Err:   err,
			}
		}

		minTemp, err := parseTemperature(lo.Parameter.ParameterName)
		if err != nil {
			return nil, nil, &MalformedResponseError{
				Field: fmt.Sprintf("%s.time[%d].parameter.parameterName", MinTempElement, i),
				Err:   err,
			}
		}

		maxTemp, err := parseTemperature(hi.Parameter.ParameterName)
		if err != nil {
			return nil, nil, &MalformedResponseError{
				Field: fmt.Sprintf("%s.time[%d].parameter.parameterName", MaxTempElement, i),
				Err:   err,
			}
		}

		if lo.StartTime != hi.StartTime {
			misaligned = append(misaligned, Misalignment{Index: i, MinTime: lo.StartTime, MaxTime: hi.StartTime})
		}

		series = append(series, TemperaturePoint{
			Timestamp: ts,
			MinTemp:   minTemp,
			MaxTemp:   maxTemp,
		})
	}

	return series, misaligned, nil
}

func buildElementTable(elements []WeatherElement) (ElementTable, error) {
	table := make(ElementTable, 0, len(elements))
	for i, e := range elements {
		if len(e.Time) == 0 {
			return nil, &MalformedResponseError{
				Field: fmt.Sprintf("weatherElement[%d](%s).time", i, e.ElementName),
				Err:   errors.New("no time entries"),
			}
		}
		table = append(table, ElementRow{
			ElementName:   e.ElementName,
			ForecastValue: e.Time[0].Parameter.ParameterName,
		})
	}
	return table, nil
}

// formatStartTime keeps the wall clock of the timestamp as sent.
func formatStartTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range startTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.Format(TimestampLayout), nil
		}
		lastErr = err
	}
	return "", lastErr
}

func parseTemperature(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

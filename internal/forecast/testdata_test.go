package forecast

import (
	"encoding/json"
	"testing"
)

type fixtureElement struct {
	name   string
	starts []string
	values []string
}

func element(name string, starts []string, values ...string) fixtureElement {
	return fixtureElement{name: name, starts: starts, values: values}
}

var threeStarts = []string{
	"2024-06-01T12:00:00+08:00",
	"2024-06-01T18:00:00+08:00",
	"2024-06-02T06:00:00+08:00",
}

// successBody renders a success payload for location elements in order.
func successBody(t *testing.T, location string, elements ...fixtureElement) []byte {
	t.Helper()

	weather := make([]map[string]any, 0, len(elements))
	for _, e := range elements {
		times := make([]map[string]any, 0, len(e.values))
		for i, v := range e.values {
			times = append(times, map[string]any{
				"startTime": e.starts[i],
				"endTime":   e.starts[i],
				"parameter": map[string]any{"parameterName": v},
			})
		}
		weather = append(weather, map[string]any{
			"elementName": e.name,
			"time":        times,
		})
	}

	body, err := json.Marshal(map[string]any{
		"success": "true",
		"result":  map[string]any{"resource_id": "F-C0032-001"},
		"records": map[string]any{
			"datasetDescription": "三十六小時天氣預報",
			"location": []map[string]any{{
				"locationName":   location,
				"weatherElement": weather,
			}},
		},
	})
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return body
}

func fullBody(t *testing.T) []byte {
	return successBody(t, "臺北市",
		element("Wx", threeStarts, "多雲", "晴時多雲", "多雲時陰"),
		element("PoP", threeStarts, "20", "10", "30"),
		element(MinTempElement, threeStarts, "24", "25", "26"),
		element("CI", threeStarts, "舒適至悶熱", "舒適", "舒適"),
		element(MaxTempElement, threeStarts, "30", "31", "32"),
	)
}

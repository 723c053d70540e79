package forecast

import (
	"fmt"
	"strings"
)

// Regions is an immutable, ordered set of region names.
type Regions struct {
	names []string
	index map[string]struct{}
}

func NewRegions(names []string) Regions {
	r := Regions{
		names: make([]string, 0, len(names)),
		index: make(map[string]struct{}, len(names)),
	}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := r.index[n]; dup {
			continue
		}
		r.index[n] = struct{}{}
		r.names = append(r.names, n)
	}
	return r
}

func (r Regions) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Names returns a copy in configured order.
func (r Regions) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r Regions) Len() int { return len(r.names) }

// Validate checks the caller-side preconditions of Fetch.
func (r Regions) Validate(req ForecastRequest) error {
	if req.Credential == "" {
		return ErrMissingCredential
	}
	if !r.Contains(req.RegionName) {
		return fmt.Errorf("%w: %q", ErrInvalidRegion, req.RegionName)
	}
	return nil
}

package schema

import (
	"fmt"
	"sort"
)

// MetricsSnapshot is the opaque name-to-value mapping the service exposes for
// display. Values are numbers or strings; nothing else is assumed.
type MetricsSnapshot map[string]any

// MetricEntry pairs a metric name with its display value.
type MetricEntry struct {
	Name  string
	Value string
}

// Entries returns the snapshot as display pairs sorted by name, so the
// metrics panel renders in a stable order regardless of map iteration.
func (m MetricsSnapshot) Entries() []MetricEntry {
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]MetricEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, MetricEntry{
			Name:  name,
			Value: formatMetricValue(m[name]),
		})
	}
	return entries
}

func formatMetricValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}

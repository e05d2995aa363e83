package models

// MetricValues is the sparse metric id -> value map stored per day.
// A missing key means the metric's DefaultValue applies.
type MetricValues map[string]float64

// Merge returns a new map holding m with patch laid over it: keys in patch
// are added or overwritten, every other key of m is kept. Neither input is modified.
func (m MetricValues) Merge(patch MetricValues) MetricValues {
	merged := make(MetricValues, len(m)+len(patch))
	for id, value := range m {
		merged[id] = value
	}
	for id, value := range patch {
		merged[id] = value
	}
	return merged
}

// Clone never returns nil.
func (m MetricValues) Clone() MetricValues {
	return MetricValues{}.Merge(m)
}

// ValueFor returns the stored value for metric, falling back to its default.
func (m MetricValues) ValueFor(metric Metric) float64 {
	if value, ok := m[metric.ID]; ok {
		return value
	}
	return metric.DefaultValue
}

package models

type Metric struct {
	BaseUUIDModel
	UserID       string  `gorm:"type:varchar(64);not null;index" json:"-"`
	Name         string  `gorm:"type:varchar(50);not null"       json:"name"`
	Icon         string  `gorm:"type:varchar(10);not null"       json:"icon"`
	MinValue     float64 `gorm:"not null"                        json:"minValue"`
	MaxValue     float64 `gorm:"not null"                        json:"maxValue"`
	DefaultValue float64 `gorm:"not null"                        json:"defaultValue"`
	SortOrder    int     `gorm:"not null;default:0"              json:"sortOrder"`
}

type EventType struct {
	BaseUUIDModel
	UserID    string `gorm:"type:varchar(64);not null;index" json:"-"`
	Name      string `gorm:"type:varchar(50);not null"       json:"name"`
	Icon      string `gorm:"type:varchar(10);not null"       json:"icon"`
	SortOrder int    `gorm:"not null;default:0"              json:"sortOrder"`
}

// Settings is the per-user configuration read model.
type Settings struct {
	Metrics       []Metric    `json:"metrics"`
	EventTypes    []EventType `json:"eventTypes"`
	AdmissionDate *string     `json:"admissionDate"`
}

// MetricInput is the validated body of add/update metric requests.
// A nil SortOrder appends the metric after the current last one.
type MetricInput struct {
	Name         string  `json:"name"         validate:"notblank,max=50"`
	Icon         string  `json:"icon"         validate:"max=10"`
	MinValue     float64 `json:"minValue"     validate:"gte=0,lte=100,ltfield=MaxValue"`
	MaxValue     float64 `json:"maxValue"     validate:"gte=0,lte=100"`
	DefaultValue float64 `json:"defaultValue" validate:"gte=0,lte=100,gtefield=MinValue,ltefield=MaxValue"`
	SortOrder    *int    `json:"sortOrder"    validate:"omitnil,gte=0"`
}

type EventTypeInput struct {
	Name      string `json:"name"      validate:"notblank,max=50"`
	Icon      string `json:"icon"      validate:"max=10"`
	SortOrder *int   `json:"sortOrder" validate:"omitnil,gte=0"`
}

func (in MetricInput) Apply(m *Metric) {
	m.Name = in.Name
	m.Icon = in.Icon
	m.MinValue = in.MinValue
	m.MaxValue = in.MaxValue
	m.DefaultValue = in.DefaultValue
	if in.SortOrder != nil {
		m.SortOrder = *in.SortOrder
	}
}

func (in EventTypeInput) Apply(e *EventType) {
	e.Name = in.Name
	e.Icon = in.Icon
	if in.SortOrder != nil {
		e.SortOrder = *in.SortOrder
	}
}

// DefaultMetrics are seeded for a user that has no metrics.
func DefaultMetrics(userID string) []Metric {
	return []Metric{
		{UserID: userID, Name: "Pain", Icon: "🤕", MinValue: 0, MaxValue: 10, DefaultValue: 0, SortOrder: 0},
		{UserID: userID, Name: "Anxiety", Icon: "😰", MinValue: 0, MaxValue: 10, DefaultValue: 0, SortOrder: 1},
		{UserID: userID, Name: "Energy", Icon: "⚡", MinValue: 0, MaxValue: 10, DefaultValue: 5, SortOrder: 2},
	}
}

// DefaultEventTypes are seeded for a user that has no event types.
func DefaultEventTypes(userID string) []EventType {
	names := []struct{ name, icon string }{
		{"Obs done", "🩺"},
		{"Bloods", "🩸"},
		{"ECG", "💓"},
		{"Scan/X-ray", "📷"},
		{"Doctor round", "👨‍⚕️"},
		{"Medication", "💊"},
		{"Meal", "🍽️"},
	}

	eventTypes := make([]EventType, 0, len(names))
	for i, n := range names {
		eventTypes = append(eventTypes, EventType{
			UserID:    userID,
			Name:      n.name,
			Icon:      n.icon,
			SortOrder: i,
		})
	}
	return eventTypes
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

type DayRecord struct {
	BaseUUIDModel
	UserID       string                          `gorm:"type:varchar(64);not null;uniqueIndex:uidx_user_date" json:"-"`
	Date         string                          `gorm:"type:varchar(10);not null;uniqueIndex:uidx_user_date" json:"date"`
	Mood         *int                            `gorm:"type:int"                                             json:"mood"`
	MetricValues datatypes.JSONType[MetricValues] `gorm:"type:json;not null"                                   json:"metricValues"`
	Notes        string                          `gorm:"type:text;not null;default:''"                        json:"notes"`
}

// Values never returns nil, even for a row stored before any metric was set.
func (d DayRecord) Values() MetricValues {
	return d.MetricValues.Data().Clone()
}

type EventEntry struct {
	BaseSequenceModel
	UserID string  `gorm:"type:varchar(64);not null;index:idx_events_user_date" json:"-"`
	Date   string  `gorm:"type:varchar(10);not null;index:idx_events_user_date" json:"date"`
	Time   string  `gorm:"type:varchar(5);not null"                             json:"time"`
	Type   string  `gorm:"type:varchar(50);not null"                            json:"type"`
	Note   *string `gorm:"type:varchar(500)"                                    json:"note,omitempty"`
}

func (EventEntry) TableName() string {
	return "events"
}

type Question struct {
	BaseSequenceModel
	UserID    string    `gorm:"type:varchar(64);not null;index:idx_questions_user_date" json:"-"`
	Date      string    `gorm:"type:varchar(10);not null;index:idx_questions_user_date" json:"date"`
	Text      string    `gorm:"type:varchar(1000);not null"                             json:"text"`
	Answered  bool      `gorm:"not null;default:false"                                  json:"answered"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"                                          json:"updatedAt"`
}

// DayAggregate is the consolidated read view of one user's calendar date.
type DayAggregate struct {
	Date         string       `json:"date"`
	Mood         *int         `json:"mood"`
	MetricValues MetricValues `json:"metricValues"`
	Notes        string       `json:"notes"`
	Events       []EventEntry `json:"events"`
	Questions    []Question   `json:"questions"`
}

// EmptyDay is the view of a date nothing was written to yet.
func EmptyDay(date string) DayAggregate {
	return DayAggregate{
		Date:         date,
		MetricValues: MetricValues{},
		Events:       []EventEntry{},
		Questions:    []Question{},
	}
}

// DayPatch carries a partial day update. Absent fields are left alone.
// Mood and AdmissionDate are checked by hand: the tag rules cannot see
// through Nullable.
type DayPatch struct {
	Mood          Nullable[int]    `json:"mood"          validate:"-"`
	MetricValues  MetricValues     `json:"metricValues"  validate:"dive,keys,notblank,max=50,endkeys,gte=0,lte=100"`
	Notes         *string          `json:"notes"         validate:"omitnil,max=10000"`
	AdmissionDate Nullable[string] `json:"admissionDate" validate:"-"`
}

func (p DayPatch) TouchesDay() bool {
	return p.Mood.Set || p.MetricValues != nil || p.Notes != nil
}

// EventInput.ID and QuestionInput.ID are optional; an empty id is generated.
type EventInput struct {
	ID   string  `json:"id"   validate:"omitempty,notblank,max=50"`
	Time string  `json:"time" validate:"hhmm"`
	Type string  `json:"type" validate:"notblank,max=50"`
	Note *string `json:"note" validate:"omitnil,max=500"`
}

type QuestionInput struct {
	ID   string `json:"id"   validate:"omitempty,notblank,max=50"`
	Text string `json:"text" validate:"notblank,max=1000"`
}

type QuestionAnsweredInput struct {
	Answered *bool `json:"answered" validate:"required"`
}

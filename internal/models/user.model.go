package models

import "time"

// User is keyed by the opaque identifier the caller supplies.
type User struct {
	ID            string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	AdmissionDate *string   `gorm:"type:varchar(10)"            json:"admissionDate"`
	CreatedAt     time.Time `gorm:"autoCreateTime"              json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"              json:"updatedAt"`
}

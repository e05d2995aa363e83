package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseUUIDModel is embedded by rows whose id is generated server side.
// Deletes are hard deletes so scoped deletes stay idempotent.
type BaseUUIDModel struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime"              json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"              json:"updatedAt"`
}

func (b *BaseUUIDModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = NewID()
	}
	return nil
}

// BaseSequenceModel is embedded by log rows that keep creation order in an
// autoincrement seq column. The id may be supplied by the client and is
// unique per user.
type BaseSequenceModel struct {
	Seq       int64     `gorm:"primaryKey;autoIncrement"  json:"-"`
	ID        string    `gorm:"type:varchar(64);not null" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime"            json:"createdAt"`
}

func (b *BaseSequenceModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = NewID()
	}
	return nil
}

// NewID returns a time ordered UUIDv7 string.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

package repositories

import (
	"context"

	"carelog/internal/database"
	"carelog/internal/logger"
	. "carelog/internal/models"
	"carelog/internal/services"

	"gorm.io/gorm"
)

type DayRepository interface {
	// GetDay returns nil without error when no row exists for (userID, date).
	GetDay(ctx context.Context, userID, date string) (*DayRecord, error)
	CreateDay(ctx context.Context, day *DayRecord) error
	SaveDay(ctx context.Context, day *DayRecord) error
	ListDates(ctx context.Context, userID string, limit int) ([]string, error)
}

type dayRepository struct {
	db  database.DB
	log logger.Logger
}

func NewDay(db database.DB) DayRepository {
	return &dayRepository{
		db:  db,
		log: logger.New("dayRepository"),
	}
}

func (r *dayRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *dayRepository) GetDay(ctx context.Context, userID, date string) (*DayRecord, error) {
	log := r.log.Function("GetDay")

	var days []DayRecord
	if err := r.getDB(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Limit(1).
		Find(&days).Error; err != nil {
		return nil, log.Err("failed to get day", err, "userID", userID, "date", date)
	}

	if len(days) == 0 {
		return nil, nil
	}
	return &days[0], nil
}

func (r *dayRepository) CreateDay(ctx context.Context, day *DayRecord) error {
	log := r.log.Function("CreateDay")

	if err := r.getDB(ctx).Create(day).Error; err != nil {
		return log.Err("failed to create day", err, "userID", day.UserID, "date", day.Date)
	}

	return nil
}

// SaveDay writes every column of an existing row, including a nil mood.
func (r *dayRepository) SaveDay(ctx context.Context, day *DayRecord) error {
	log := r.log.Function("SaveDay")

	if err := r.getDB(ctx).Save(day).Error; err != nil {
		return log.Err("failed to save day", err, "userID", day.UserID, "date", day.Date)
	}

	return nil
}

// ListDates returns dates with a persisted day row, newest first.
func (r *dayRepository) ListDates(ctx context.Context, userID string, limit int) ([]string, error) {
	log := r.log.Function("ListDates")

	dates := []string{}
	if err := r.getDB(ctx).
		Model(&DayRecord{}).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Pluck("date", &dates).Error; err != nil {
		return nil, log.Err("failed to list dates", err, "userID", userID, "limit", limit)
	}

	return dates, nil
}

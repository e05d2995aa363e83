package repositories

import (
	"context"

	"carelog/internal/database"
	"carelog/internal/logger"
	. "carelog/internal/models"
	"carelog/internal/services"

	"gorm.io/gorm"
)

const settingsOrder = "sort_order ASC, created_at ASC, id ASC"

type SettingsRepository interface {
	ListMetrics(ctx context.Context, userID string) ([]Metric, error)
	AddMetric(ctx context.Context, userID string, input MetricInput) (Metric, error)
	UpdateMetric(ctx context.Context, userID, id string, input MetricInput) error
	DeleteMetric(ctx context.Context, userID, id string) error

	ListEventTypes(ctx context.Context, userID string) ([]EventType, error)
	AddEventType(ctx context.Context, userID string, input EventTypeInput) (EventType, error)
	UpdateEventType(ctx context.Context, userID, id string, input EventTypeInput) error
	DeleteEventType(ctx context.Context, userID, id string) error

	// EnsureDefaults seeds the default metrics when the user has none, and
	// the default event types when the user has none. Deleting every metric
	// therefore brings the defaults back on the next call.
	EnsureDefaults(ctx context.Context, userID string) (seededMetrics, seededEventTypes bool, err error)
}

type settingsRepository struct {
	db  database.DB
	log logger.Logger
}

func NewSettings(db database.DB) SettingsRepository {
	return &settingsRepository{
		db:  db,
		log: logger.New("settingsRepository"),
	}
}

func (r *settingsRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *settingsRepository) ListMetrics(ctx context.Context, userID string) ([]Metric, error) {
	log := r.log.Function("ListMetrics")

	metrics := []Metric{}
	if err := r.getDB(ctx).
		Where("user_id = ?", userID).
		Order(settingsOrder).
		Find(&metrics).Error; err != nil {
		return nil, log.Err("failed to list metrics", err, "userID", userID)
	}

	return metrics, nil
}

func (r *settingsRepository) AddMetric(
	ctx context.Context,
	userID string,
	input MetricInput,
) (Metric, error) {
	log := r.log.Function("AddMetric")

	metric := Metric{UserID: userID}
	input.Apply(&metric)

	if input.SortOrder == nil {
		next, err := r.nextSortOrder(ctx, &Metric{}, userID)
		if err != nil {
			return Metric{}, log.Err("failed to resolve metric sort order", err, "userID", userID)
		}
		metric.SortOrder = next
	}

	if err := r.getDB(ctx).Create(&metric).Error; err != nil {
		return Metric{}, log.Err("failed to add metric", err, "userID", userID, "metric", metric)
	}

	return metric, nil
}

func (r *settingsRepository) UpdateMetric(
	ctx context.Context,
	userID, id string,
	input MetricInput,
) error {
	log := r.log.Function("UpdateMetric")

	updates := map[string]any{
		"name":          input.Name,
		"icon":          input.Icon,
		"min_value":     input.MinValue,
		"max_value":     input.MaxValue,
		"default_value": input.DefaultValue,
	}
	if input.SortOrder != nil {
		updates["sort_order"] = *input.SortOrder
	}

	if err := r.getDB(ctx).
		Model(&Metric{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates).Error; err != nil {
		return log.Err("failed to update metric", err, "userID", userID, "id", id)
	}

	return nil
}

func (r *settingsRepository) DeleteMetric(ctx context.Context, userID, id string) error {
	log := r.log.Function("DeleteMetric")

	if err := r.getDB(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Metric{}).Error; err != nil {
		return log.Err("failed to delete metric", err, "userID", userID, "id", id)
	}

	return nil
}

func (r *settingsRepository) ListEventTypes(ctx context.Context, userID string) ([]EventType, error) {
	log := r.log.Function("ListEventTypes")

	eventTypes := []EventType{}
	if err := r.getDB(ctx).
		Where("user_id = ?", userID).
		Order(settingsOrder).
		Find(&eventTypes).Error; err != nil {
		return nil, log.Err("failed to list event types", err, "userID", userID)
	}

	return eventTypes, nil
}

func (r *settingsRepository) AddEventType(
	ctx context.Context,
	userID string,
	input EventTypeInput,
) (EventType, error) {
	log := r.log.Function("AddEventType")

	eventType := EventType{UserID: userID}
	input.Apply(&eventType)

	if input.SortOrder == nil {
		next, err := r.nextSortOrder(ctx, &EventType{}, userID)
		if err != nil {
			return EventType{}, log.Err("failed to resolve event type sort order", err, "userID", userID)
		}
		eventType.SortOrder = next
	}

	if err := r.getDB(ctx).Create(&eventType).Error; err != nil {
		return EventType{}, log.Err("failed to add event type", err, "userID", userID, "eventType", eventType)
	}

	return eventType, nil
}

func (r *settingsRepository) UpdateEventType(
	ctx context.Context,
	userID, id string,
	input EventTypeInput,
) error {
	log := r.log.Function("UpdateEventType")

	updates := map[string]any{
		"name": input.Name,
		"icon": input.Icon,
	}
	if input.SortOrder != nil {
		updates["sort_order"] = *input.SortOrder
	}

	if err := r.getDB(ctx).
		Model(&EventType{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates).Error; err != nil {
		return log.Err("failed to update event type", err, "userID", userID, "id", id)
	}

	return nil
}

func (r *settingsRepository) DeleteEventType(ctx context.Context, userID, id string) error {
	log := r.log.Function("DeleteEventType")

	if err := r.getDB(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&EventType{}).Error; err != nil {
		return log.Err("failed to delete event type", err, "userID", userID, "id", id)
	}

	return nil
}

func (r *settingsRepository) EnsureDefaults(
	ctx context.Context,
	userID string,
) (seededMetrics, seededEventTypes bool, err error) {
	log := r.log.Function("EnsureDefaults")
	db := r.getDB(ctx)

	var metricCount int64
	if err := db.Model(&Metric{}).Where("user_id = ?", userID).Count(&metricCount).Error; err != nil {
		return false, false, log.Err("failed to count metrics", err, "userID", userID)
	}

	if metricCount == 0 {
		if err := db.Create(DefaultMetrics(userID)).Error; err != nil {
			return false, false, log.Err("failed to seed default metrics", err, "userID", userID)
		}
		seededMetrics = true
	}

	var eventTypeCount int64
	if err := db.Model(&EventType{}).Where("user_id = ?", userID).Count(&eventTypeCount).Error; err != nil {
		return seededMetrics, false, log.Err("failed to count event types", err, "userID", userID)
	}

	if eventTypeCount == 0 {
		if err := db.Create(DefaultEventTypes(userID)).Error; err != nil {
			return seededMetrics, false, log.Err("failed to seed default event types", err, "userID", userID)
		}
		seededEventTypes = true
	}

	if seededMetrics || seededEventTypes {
		log.Info("Seeded default settings",
			"userID", userID,
			"metrics", seededMetrics,
			"eventTypes", seededEventTypes)
	}

	return seededMetrics, seededEventTypes, nil
}

func (r *settingsRepository) nextSortOrder(ctx context.Context, model any, userID string) (int, error) {
	var next int
	err := r.getDB(ctx).
		Model(model).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(sort_order), -1) + 1").
		Scan(&next).Error
	return next, err
}

package repositories

import (
	"context"

	"carelog/internal/database"
	"carelog/internal/logger"
	. "carelog/internal/models"
	"carelog/internal/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntryRepository stores the per-day event and question logs. Both keep
// creation order in the seq column: events are listed newest first,
// questions oldest first.
type EntryRepository interface {
	ListEvents(ctx context.Context, userID, date string) ([]EventEntry, error)
	AddEvent(ctx context.Context, event *EventEntry) error
	DeleteEvent(ctx context.Context, userID, id string) error

	ListQuestions(ctx context.Context, userID, date string) ([]Question, error)
	AddQuestion(ctx context.Context, question *Question) error
	SetQuestionAnswered(ctx context.Context, userID, id string, answered bool) error
	DeleteQuestion(ctx context.Context, userID, id string) error
}

type entryRepository struct {
	db  database.DB
	log logger.Logger
}

func NewEntry(db database.DB) EntryRepository {
	return &entryRepository{
		db:  db,
		log: logger.New("entryRepository"),
	}
}

func (r *entryRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// onOwnedIDConflict makes a retried insert with the same client id a no-op.
var onOwnedIDConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "user_id"}, {Name: "id"}},
	DoNothing: true,
}

func (r *entryRepository) ListEvents(ctx context.Context, userID, date string) ([]EventEntry, error) {
	log := r.log.Function("ListEvents")

	events := []EventEntry{}
	if err := r.getDB(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("seq DESC").
		Find(&events).Error; err != nil {
		return nil, log.Err("failed to list events", err, "userID", userID, "date", date)
	}

	return events, nil
}

func (r *entryRepository) AddEvent(ctx context.Context, event *EventEntry) error {
	log := r.log.Function("AddEvent")

	if err := r.getDB(ctx).Clauses(onOwnedIDConflict).Create(event).Error; err != nil {
		return log.Err("failed to add event", err, "userID", event.UserID, "id", event.ID)
	}

	return nil
}

func (r *entryRepository) DeleteEvent(ctx context.Context, userID, id string) error {
	log := r.log.Function("DeleteEvent")

	if err := r.getDB(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&EventEntry{}).Error; err != nil {
		return log.Err("failed to delete event", err, "userID", userID, "id", id)
	}

	return nil
}

func (r *entryRepository) ListQuestions(ctx context.Context, userID, date string) ([]Question, error) {
	log := r.log.Function("ListQuestions")

	questions := []Question{}
	if err := r.getDB(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("seq ASC").
		Find(&questions).Error; err != nil {
		return nil, log.Err("failed to list questions", err, "userID", userID, "date", date)
	}

	return questions, nil
}

func (r *entryRepository) AddQuestion(ctx context.Context, question *Question) error {
	log := r.log.Function("AddQuestion")

	if err := r.getDB(ctx).Clauses(onOwnedIDConflict).Create(question).Error; err != nil {
		return log.Err("failed to add question", err, "userID", question.UserID, "id", question.ID)
	}

	return nil
}

func (r *entryRepository) SetQuestionAnswered(
	ctx context.Context,
	userID, id string,
	answered bool,
) error {
	log := r.log.Function("SetQuestionAnswered")

	if err := r.getDB(ctx).
		Model(&Question{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("answered", answered).Error; err != nil {
		return log.Err("failed to update question", err, "userID", userID, "id", id)
	}

	return nil
}

func (r *entryRepository) DeleteQuestion(ctx context.Context, userID, id string) error {
	log := r.log.Function("DeleteQuestion")

	if err := r.getDB(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&Question{}).Error; err != nil {
		return log.Err("failed to delete question", err, "userID", userID, "id", id)
	}

	return nil
}

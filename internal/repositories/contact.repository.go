package repositories

import (
	"context"

	"carelog/internal/database"
	"carelog/internal/logger"
	. "carelog/internal/models"
	"carelog/internal/services"

	"gorm.io/gorm"
)

type ContactRepository interface {
	ListContacts(ctx context.Context, userID string) ([]Contact, error)
	AddContact(ctx context.Context, userID string, input ContactInput) (Contact, error)
	UpdateContact(ctx context.Context, userID, id string, input ContactInput) error
	DeleteContact(ctx context.Context, userID, id string) error
}

type contactRepository struct {
	db  database.DB
	log logger.Logger
}

func NewContact(db database.DB) ContactRepository {
	return &contactRepository{
		db:  db,
		log: logger.New("contactRepository"),
	}
}

func (r *contactRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *contactRepository) ListContacts(ctx context.Context, userID string) ([]Contact, error) {
	log := r.log.Function("ListContacts")

	contacts := []Contact{}
	if err := r.getDB(ctx).
		Where("user_id = ?", userID).
		Order(settingsOrder).
		Find(&contacts).Error; err != nil {
		return nil, log.Err("failed to list contacts", err, "userID", userID)
	}

	return contacts, nil
}

func (r *contactRepository) AddContact(
	ctx context.Context,
	userID string,
	input ContactInput,
) (Contact, error) {
	log := r.log.Function("AddContact")

	contact := Contact{UserID: userID}
	input.Apply(&contact)

	if input.SortOrder == nil {
		if err := r.getDB(ctx).
			Model(&Contact{}).
			Where("user_id = ?", userID).
			Select("COALESCE(MAX(sort_order), -1) + 1").
			Scan(&contact.SortOrder).Error; err != nil {
			return Contact{}, log.Err("failed to resolve contact sort order", err, "userID", userID)
		}
	}

	if err := r.getDB(ctx).Create(&contact).Error; err != nil {
		return Contact{}, log.Err("failed to add contact", err, "userID", userID)
	}

	return contact, nil
}

func (r *contactRepository) UpdateContact(
	ctx context.Context,
	userID, id string,
	input ContactInput,
) error {
	log := r.log.Function("UpdateContact")

	updates := map[string]any{
		"name":  input.Name,
		"role":  input.Role,
		"phone": input.Phone,
		"notes": input.Notes,
	}
	if input.SortOrder != nil {
		updates["sort_order"] = *input.SortOrder
	}

	if err := r.getDB(ctx).
		Model(&Contact{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates).Error; err != nil {
		return log.Err("failed to update contact", err, "userID", userID, "id", id)
	}

	return nil
}

func (r *contactRepository) DeleteContact(ctx context.Context, userID, id string) error {
	log := r.log.Function("DeleteContact")

	if err := r.getDB(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Contact{}).Error; err != nil {
		return log.Err("failed to delete contact", err, "userID", userID, "id", id)
	}

	return nil
}

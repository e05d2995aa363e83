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

type UserRepository interface {
	EnsureUser(ctx context.Context, userID string) error
	GetUser(ctx context.Context, userID string) (User, error)
	SetAdmissionDate(ctx context.Context, userID string, date *string) error
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func New(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// EnsureUser inserts a bare user row unless one already exists.
func (r *userRepository) EnsureUser(ctx context.Context, userID string) error {
	log := r.log.Function("EnsureUser")

	user := User{ID: userID}
	if err := r.getDB(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&user).Error; err != nil {
		return log.Err("failed to ensure user", err, "userID", userID)
	}

	return nil
}

func (r *userRepository) GetUser(ctx context.Context, userID string) (User, error) {
	log := r.log.Function("GetUser")

	var user User
	if err := r.getDB(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return User{}, log.Err("failed to get user", err, "userID", userID)
	}

	return user, nil
}

// SetAdmissionDate stores date on the user row; nil clears it.
func (r *userRepository) SetAdmissionDate(ctx context.Context, userID string, date *string) error {
	log := r.log.Function("SetAdmissionDate")

	if err := r.getDB(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Update("admission_date", date).Error; err != nil {
		return log.Err("failed to set admission date", err, "userID", userID, "date", date)
	}

	return nil
}

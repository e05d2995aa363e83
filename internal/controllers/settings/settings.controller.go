package settingsController

import (
	"context"

	"carelog/internal/logger"
	. "carelog/internal/models"
	"carelog/internal/repositories"
	"carelog/internal/services"
	"carelog/internal/utils"
)

type SettingsController struct {
	userRepo           repositories.UserRepository
	settingsRepo       repositories.SettingsRepository
	transactionService *services.TransactionService
	cacheService       *services.CacheInvalidationService
	locker             *services.KeyedLocker
	log                logger.Logger
}

func New(
	userRepo repositories.UserRepository,
	settingsRepo repositories.SettingsRepository,
	transactionService *services.TransactionService,
	cacheService *services.CacheInvalidationService,
	locker *services.KeyedLocker,
) *SettingsController {
	return &SettingsController{
		userRepo:           userRepo,
		settingsRepo:       settingsRepo,
		transactionService: transactionService,
		cacheService:       cacheService,
		locker:             locker,
		log:                logger.New("SettingsController"),
	}
}

// EnsureUserWithDefaults creates the user if needed and seeds the default
// metrics and event types for any collection that is currently empty.
func (sc *SettingsController) EnsureUserWithDefaults(ctx context.Context, userID string) error {
	log := sc.log.Function("EnsureUserWithDefaults")

	if err := utils.ValidateID("user id", userID); err != nil {
		return log.Err("invalid user id", err, "userID", userID)
	}

	unlock := sc.locker.Lock(services.UserLockKey(userID))
	defer unlock()

	return sc.ensureDefaults(ctx, userID)
}

// ensureDefaults expects the caller to hold the user lock.
func (sc *SettingsController) ensureDefaults(ctx context.Context, userID string) error {
	log := sc.log.Function("ensureDefaults")

	return sc.transactionService.Execute(ctx, func(txCtx context.Context) error {
		if err := sc.userRepo.EnsureUser(txCtx, userID); err != nil {
			return log.Err("failed to ensure user", err, "userID", userID)
		}

		if _, _, err := sc.settingsRepo.EnsureDefaults(txCtx, userID); err != nil {
			return log.Err("failed to ensure default settings", err, "userID", userID)
		}

		return nil
	})
}

func (sc *SettingsController) GetSettings(ctx context.Context, userID string) (Settings, error) {
	log := sc.log.Function("GetSettings")

	if err := utils.ValidateID("user id", userID); err != nil {
		return Settings{}, log.Err("invalid user id", err, "userID", userID)
	}

	if settings, found := sc.cacheService.GetSettings(ctx, userID); found {
		log.Debug("Found settings in cache", "userID", userID)
		return settings, nil
	}

	// Mutations clear the cache under the same lock, so what is read here
	// cannot be older than the last invalidation.
	unlock := sc.locker.Lock(services.UserLockKey(userID))
	defer unlock()

	if err := sc.ensureDefaults(ctx, userID); err != nil {
		return Settings{}, err
	}

	user, err := sc.userRepo.GetUser(ctx, userID)
	if err != nil {
		return Settings{}, log.Err("failed to get user", err, "userID", userID)
	}

	metrics, err := sc.settingsRepo.ListMetrics(ctx, userID)
	if err != nil {
		return Settings{}, log.Err("failed to list metrics", err, "userID", userID)
	}

	eventTypes, err := sc.settingsRepo.ListEventTypes(ctx, userID)
	if err != nil {
		return Settings{}, log.Err("failed to list event types", err, "userID", userID)
	}

	settings := Settings{
		Metrics:       metrics,
		EventTypes:    eventTypes,
		AdmissionDate: user.AdmissionDate,
	}
	sc.cacheService.SetSettings(ctx, userID, settings)

	return settings, nil
}

func (sc *SettingsController) AddMetric(
	ctx context.Context,
	userID string,
	input MetricInput,
) (Metric, error) {
	log := sc.log.Function("AddMetric")

	if err := utils.FirstError(utils.ValidateID("user id", userID), utils.ValidateMetricInput(input)); err != nil {
		return Metric{}, log.Err("invalid metric", err, "userID", userID)
	}

	unlock := sc.locker.Lock(services.UserLockKey(userID))
	defer unlock()

	if err := sc.ensureDefaults(ctx, userID); err != nil {
		return Metric{}, err
	}

	metric, err := sc.settingsRepo.AddMetric(ctx, userID, input)
	if err != nil {
		return Metric{}, log.Err("failed to add metric", err, "userID", userID)
	}

	sc.cacheService.InvalidateSettings(ctx, userID)
	return metric, nil
}

func (sc *SettingsController) UpdateMetric(
	ctx context.Context,
	userID, id string,
	input MetricInput,
) error {
	log := sc.log.Function("UpdateMetric")

	if err := utils.FirstError(
		utils.ValidateID("user id", userID),
		utils.ValidateID("metric id", id),
		utils.ValidateMetricInput(input),
	); err != nil {
		return log.Err("invalid metric", err, "userID", userID, "id", id)
	}

	unlock := sc.locker.Lock(services.UserLockKey(userID))
	defer unlock()

	if err := sc.settingsRepo.UpdateMetric(ctx, userID, id, input); err != nil {
		return log.Err("failed to update metric", err, "userID", userID, "id", id)
	}

	sc.cacheService.InvalidateSettings(ctx, userID)
	return nil
}

func (sc *SettingsController) DeleteMetric(ctx context.Context, userID, id string) error {
	log := sc.log.Function("DeleteMetric")

	if err := utils.FirstError(utils.ValidateID("user id", userID), utils.ValidateID("metric id", id)); err != nil {
		return log.Err("invalid metric id", err, "userID", userID, "id", id)
	}

	unlock := sc.locker.Lock(services.UserLockKey(userID))
	defer unlock()

	if err := sc.settingsRepo.DeleteMetric(ctx, userID, id); err != nil {
		return log.Err("failed to delete metric", err, "userID", userID, "id", id)
	}

	sc.cacheService.InvalidateSettings(ctx, userID)
	return nil
}

func (sc *SettingsController) AddEventType(
	ctx context.Context,
	userID string,
	input EventTypeInput,
) (EventType, error) {
	log := sc.log.Function("AddEventType")

	if err := utils.FirstError(utils.ValidateID("user id", userID), utils.ValidateEventTypeInput(input)); err != nil {
		return EventType{}, log.Err("invalid event type", err, "userID", userID)
	}

	unlock := sc.locker.Lock(services.UserLockKey(userID))
	defer unlock()

	if err := sc.ensureDefaults(ctx, userID); err != nil {
		return EventType{}, err
	}

	eventType, err := sc.settingsRepo.AddEventType(ctx, userID, input)
	if err != nil {
		return EventType{}, log.Err("failed to add event type", err, "userID", userID)
	}

	sc.cacheService.InvalidateSettings(ctx, userID)
	return eventType, nil
}

func (sc *SettingsController) UpdateEventType(
	ctx context.Context,
	userID, id string,
	input EventTypeInput,
) error {
	log := sc.log.Function("UpdateEventType")

	if err := utils.FirstError(
		utils.ValidateID("user id", userID),
		utils.ValidateID("event type id", id),
		utils.ValidateEventTypeInput(input),
	); err != nil {
		return log.Err("invalid event type", err, "userID", userID, "id", id)
	}

	unlock := sc.locker.Lock(services.UserLockKey(userID))
	defer unlock()

	if err := sc.settingsRepo.UpdateEventType(ctx, userID, id, input); err != nil {
		return log.Err("failed to update event type", err, "userID", userID, "id", id)
	}

	sc.cacheService.InvalidateSettings(ctx, userID)
	return nil
}

func (sc *SettingsController) DeleteEventType(ctx context.Context, userID, id string) error {
	log := sc.log.Function("DeleteEventType")

	if err := utils.FirstError(utils.ValidateID("user id", userID), utils.ValidateID("event type id", id)); err != nil {
		return log.Err("invalid event type id", err, "userID", userID, "id", id)
	}

	unlock := sc.locker.Lock(services.UserLockKey(userID))
	defer unlock()

	if err := sc.settingsRepo.DeleteEventType(ctx, userID, id); err != nil {
		return log.Err("failed to delete event type", err, "userID", userID, "id", id)
	}

	sc.cacheService.InvalidateSettings(ctx, userID)
	return nil
}

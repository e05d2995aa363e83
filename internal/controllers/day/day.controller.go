package dayController

import (
	"context"

	"carelog/internal/logger"
	. "carelog/internal/models"
	"carelog/internal/repositories"
	"carelog/internal/services"
	"carelog/internal/summary"
	"carelog/internal/utils"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

// SettingsReader supplies the settings a summary is rendered against.
type SettingsReader interface {
	GetSettings(ctx context.Context, userID string) (Settings, error)
}

type DayController struct {
	userRepo           repositories.UserRepository
	dayRepo            repositories.DayRepository
	entryRepo          repositories.EntryRepository
	settings           SettingsReader
	transactionService *services.TransactionService
	cacheService       *services.CacheInvalidationService
	locker             *services.KeyedLocker
	log                logger.Logger
}

func New(
	userRepo repositories.UserRepository,
	dayRepo repositories.DayRepository,
	entryRepo repositories.EntryRepository,
	settings SettingsReader,
	transactionService *services.TransactionService,
	cacheService *services.CacheInvalidationService,
	locker *services.KeyedLocker,
) *DayController {
	return &DayController{
		userRepo:           userRepo,
		dayRepo:            dayRepo,
		entryRepo:          entryRepo,
		settings:           settings,
		transactionService: transactionService,
		cacheService:       cacheService,
		locker:             locker,
		log:                logger.New("DayController"),
	}
}

func (dc *DayController) GetDay(ctx context.Context, userID, date string) (DayAggregate, error) {
	log := dc.log.Function("GetDay")

	if err := utils.FirstError(utils.ValidateID("user id", userID), utils.ValidateDate(date)); err != nil {
		return DayAggregate{}, log.Err("invalid day request", err, "userID", userID, "date", date)
	}

	if err := dc.userRepo.EnsureUser(ctx, userID); err != nil {
		return DayAggregate{}, log.Err("failed to ensure user", err, "userID", userID)
	}

	return dc.buildAggregate(ctx, userID, date)
}

// buildAggregate reads the day row, events and questions for one date. A
// date without a day row yields the empty view; nothing is written.
func (dc *DayController) buildAggregate(ctx context.Context, userID, date string) (DayAggregate, error) {
	log := dc.log.Function("buildAggregate")

	var (
		record    *DayRecord
		events    []EventEntry
		questions []Question
	)

	g, gctx := errgroup.WithContext(ctx)
	if _, inTx := services.GetTransaction(ctx); inTx {
		g.SetLimit(1)
	}

	g.Go(func() (err error) {
		record, err = dc.dayRepo.GetDay(gctx, userID, date)
		return err
	})
	g.Go(func() (err error) {
		events, err = dc.entryRepo.ListEvents(gctx, userID, date)
		return err
	})
	g.Go(func() (err error) {
		questions, err = dc.entryRepo.ListQuestions(gctx, userID, date)
		return err
	})

	if err := g.Wait(); err != nil {
		return DayAggregate{}, log.Err("failed to read day", err, "userID", userID, "date", date)
	}

	aggregate := EmptyDay(date)
	if record != nil {
		aggregate.Mood = record.Mood
		aggregate.MetricValues = record.Values()
		aggregate.Notes = record.Notes
	}
	if events != nil {
		aggregate.Events = events
	}
	if questions != nil {
		aggregate.Questions = questions
	}

	return aggregate, nil
}

// PatchDay applies a partial update and returns the day as stored afterwards.
// metricValues are merged key by key into what is stored; the other day
// fields are overwritten only when present. The read-merge-write runs under
// a per-(user, date) lock inside one transaction so concurrent patches never
// drop each other's keys.
func (dc *DayController) PatchDay(
	ctx context.Context,
	userID, date string,
	patch DayPatch,
) (DayAggregate, error) {
	log := dc.log.Function("PatchDay")

	if err := utils.FirstError(
		utils.ValidateID("user id", userID),
		utils.ValidateDate(date),
		utils.ValidateDayPatch(patch),
	); err != nil {
		return DayAggregate{}, log.Err("invalid day patch", err, "userID", userID, "date", date)
	}

	if err := dc.userRepo.EnsureUser(ctx, userID); err != nil {
		return DayAggregate{}, log.Err("failed to ensure user", err, "userID", userID)
	}

	if patch.TouchesDay() || patch.AdmissionDate.Set {
		if err := dc.applyPatch(ctx, userID, date, patch); err != nil {
			return DayAggregate{}, log.Err("failed to apply day patch", err, "userID", userID, "date", date)
		}
	}

	return dc.buildAggregate(ctx, userID, date)
}

// applyPatch takes the day lock, then the user lock when the admission date
// changes. The settings cache is cleared before the user lock is released so
// a concurrent GetSettings cannot store the old admission date.
func (dc *DayController) applyPatch(ctx context.Context, userID, date string, patch DayPatch) error {
	unlock := dc.locker.Lock(services.DayLockKey(userID, date))
	defer unlock()

	if patch.AdmissionDate.Set {
		unlockUser := dc.locker.Lock(services.UserLockKey(userID))
		defer unlockUser()
	}

	err := dc.transactionService.Execute(ctx, func(txCtx context.Context) error {
		if patch.TouchesDay() {
			if err := dc.mergeDay(txCtx, userID, date, patch); err != nil {
				return err
			}
		}

		if patch.AdmissionDate.Set {
			return dc.userRepo.SetAdmissionDate(txCtx, userID, patch.AdmissionDate.Value)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if patch.AdmissionDate.Set {
		dc.cacheService.InvalidateSettings(ctx, userID)
	}
	return nil
}

func (dc *DayController) mergeDay(ctx context.Context, userID, date string, patch DayPatch) error {
	record, err := dc.dayRepo.GetDay(ctx, userID, date)
	if err != nil {
		return err
	}

	if record == nil {
		record = &DayRecord{
			UserID:       userID,
			Date:         date,
			MetricValues: datatypes.NewJSONType(patch.MetricValues.Clone()),
		}
		if patch.Mood.Set {
			record.Mood = patch.Mood.Value
		}
		if patch.Notes != nil {
			record.Notes = *patch.Notes
		}
		return dc.dayRepo.CreateDay(ctx, record)
	}

	if patch.Mood.Set {
		record.Mood = patch.Mood.Value
	}
	if patch.MetricValues != nil {
		record.MetricValues = datatypes.NewJSONType(record.Values().Merge(patch.MetricValues))
	}
	if patch.Notes != nil {
		record.Notes = *patch.Notes
	}
	return dc.dayRepo.SaveDay(ctx, record)
}

// ListDaysWithData returns dates that have a stored day row, newest first.
// Dates that only have events or questions are not included.
func (dc *DayController) ListDaysWithData(ctx context.Context, userID string, limit int) ([]string, error) {
	log := dc.log.Function("ListDaysWithData")

	if err := utils.ValidateID("user id", userID); err != nil {
		return nil, log.Err("invalid user id", err, "userID", userID)
	}

	limit, err := utils.DaysLimit(limit)
	if err != nil {
		return nil, log.Err("invalid limit", err, "userID", userID)
	}

	dates, err := dc.dayRepo.ListDates(ctx, userID, limit)
	if err != nil {
		return nil, log.Err("failed to list days", err, "userID", userID)
	}

	return dates, nil
}

func (dc *DayController) AddEvent(
	ctx context.Context,
	userID, date string,
	input EventInput,
) (DayAggregate, error) {
	log := dc.log.Function("AddEvent")

	if err := utils.FirstError(
		utils.ValidateID("user id", userID),
		utils.ValidateDate(date),
		utils.ValidateEventInput(input),
	); err != nil {
		return DayAggregate{}, log.Err("invalid event", err, "userID", userID, "date", date)
	}

	if err := dc.userRepo.EnsureUser(ctx, userID); err != nil {
		return DayAggregate{}, log.Err("failed to ensure user", err, "userID", userID)
	}

	event := &EventEntry{
		BaseSequenceModel: BaseSequenceModel{ID: input.ID},
		UserID:            userID,
		Date:              date,
		Time:              input.Time,
		Type:              input.Type,
		Note:              input.Note,
	}
	if err := dc.entryRepo.AddEvent(ctx, event); err != nil {
		return DayAggregate{}, log.Err("failed to add event", err, "userID", userID, "date", date)
	}

	return dc.buildAggregate(ctx, userID, date)
}

func (dc *DayController) DeleteEvent(ctx context.Context, userID, id string) error {
	log := dc.log.Function("DeleteEvent")

	if err := utils.FirstError(utils.ValidateID("user id", userID), utils.ValidateID("event id", id)); err != nil {
		return log.Err("invalid event id", err, "userID", userID, "id", id)
	}

	if err := dc.entryRepo.DeleteEvent(ctx, userID, id); err != nil {
		return log.Err("failed to delete event", err, "userID", userID, "id", id)
	}

	return nil
}

func (dc *DayController) AddQuestion(
	ctx context.Context,
	userID, date string,
	input QuestionInput,
) (DayAggregate, error) {
	log := dc.log.Function("AddQuestion")

	if err := utils.FirstError(
		utils.ValidateID("user id", userID),
		utils.ValidateDate(date),
		utils.ValidateQuestionInput(input),
	); err != nil {
		return DayAggregate{}, log.Err("invalid question", err, "userID", userID, "date", date)
	}

	if err := dc.userRepo.EnsureUser(ctx, userID); err != nil {
		return DayAggregate{}, log.Err("failed to ensure user", err, "userID", userID)
	}

	question := &Question{
		BaseSequenceModel: BaseSequenceModel{ID: input.ID},
		UserID:            userID,
		Date:              date,
		Text:              input.Text,
	}
	if err := dc.entryRepo.AddQuestion(ctx, question); err != nil {
		return DayAggregate{}, log.Err("failed to add question", err, "userID", userID, "date", date)
	}

	return dc.buildAggregate(ctx, userID, date)
}

func (dc *DayController) UpdateQuestionAnswered(
	ctx context.Context,
	userID, id string,
	input QuestionAnsweredInput,
) error {
	log := dc.log.Function("UpdateQuestionAnswered")

	if err := utils.FirstError(
		utils.ValidateID("user id", userID),
		utils.ValidateID("question id", id),
		utils.ValidateQuestionAnsweredInput(input),
	); err != nil {
		return log.Err("invalid question update", err, "userID", userID, "id", id)
	}

	if err := dc.entryRepo.SetQuestionAnswered(ctx, userID, id, *input.Answered); err != nil {
		return log.Err("failed to update question", err, "userID", userID, "id", id)
	}

	return nil
}

func (dc *DayController) DeleteQuestion(ctx context.Context, userID, id string) error {
	log := dc.log.Function("DeleteQuestion")

	if err := utils.FirstError(utils.ValidateID("user id", userID), utils.ValidateID("question id", id)); err != nil {
		return log.Err("invalid question id", err, "userID", userID, "id", id)
	}

	if err := dc.entryRepo.DeleteQuestion(ctx, userID, id); err != nil {
		return log.Err("failed to delete question", err, "userID", userID, "id", id)
	}

	return nil
}

func (dc *DayController) GetSummary(ctx context.Context, userID, date string) (string, error) {
	log := dc.log.Function("GetSummary")

	day, err := dc.GetDay(ctx, userID, date)
	if err != nil {
		return "", err
	}

	settings, err := dc.settings.GetSettings(ctx, userID)
	if err != nil {
		return "", log.Err("failed to get settings", err, "userID", userID)
	}

	return summary.RenderSummary(day, settings), nil
}

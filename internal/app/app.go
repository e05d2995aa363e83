package app

import (
	"carelog/config"
	"carelog/internal/database"
	"carelog/internal/handlers/middleware"
	"carelog/internal/logger"
	"carelog/internal/repositories"
	"carelog/internal/services"

	contactController "carelog/internal/controllers/contact"
	dayController "carelog/internal/controllers/day"
	settingsController "carelog/internal/controllers/settings"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Config     config.Config

	// Services
	TransactionService *services.TransactionService
	CacheService       *services.CacheInvalidationService
	Locker             *services.KeyedLocker

	// Repositories
	UserRepo     repositories.UserRepository
	SettingsRepo repositories.SettingsRepository
	DayRepo      repositories.DayRepository
	EntryRepo    repositories.EntryRepository
	ContactRepo  repositories.ContactRepository

	// Controllers
	SettingsController *settingsController.SettingsController
	DayController      *dayController.DayController
	ContactController  *contactController.ContactController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	return NewWithConfig(config)
}

func NewWithConfig(config config.Config) (*App, error) {
	log := logger.New("app").Function("NewWithConfig")

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	// Initialize services
	transactionService := services.NewTransactionService(db)
	cacheService := services.NewCacheInvalidationService(db, config.SettingsCacheTTL)
	locker := services.NewKeyedLocker()

	// Initialize repositories
	userRepo := repositories.New(db)
	settingsRepo := repositories.NewSettings(db)
	dayRepo := repositories.NewDay(db)
	entryRepo := repositories.NewEntry(db)
	contactRepo := repositories.NewContact(db)

	// Initialize controllers with repositories and services
	settings := settingsController.New(userRepo, settingsRepo, transactionService, cacheService, locker)
	days := dayController.New(
		userRepo,
		dayRepo,
		entryRepo,
		settings,
		transactionService,
		cacheService,
		locker,
	)
	contacts := contactController.New(userRepo, contactRepo)

	app := &App{
		Database:           db,
		Config:             config,
		Middleware:         middleware.New(config),
		TransactionService: transactionService,
		CacheService:       cacheService,
		Locker:             locker,
		UserRepo:           userRepo,
		SettingsRepo:       settingsRepo,
		DayRepo:            dayRepo,
		EntryRepo:          entryRepo,
		ContactRepo:        contactRepo,
		SettingsController: settings,
		DayController:      days,
		ContactController:  contacts,
	}

	if err := app.validate(); err != nil {
		_ = db.Close()
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []struct {
		name  string
		isNil bool
	}{
		{"transaction service", a.TransactionService == nil},
		{"cache service", a.CacheService == nil},
		{"locker", a.Locker == nil},
		{"user repository", a.UserRepo == nil},
		{"settings repository", a.SettingsRepo == nil},
		{"day repository", a.DayRepo == nil},
		{"entry repository", a.EntryRepo == nil},
		{"contact repository", a.ContactRepo == nil},
		{"settings controller", a.SettingsController == nil},
		{"day controller", a.DayController == nil},
		{"contact controller", a.ContactController == nil},
	}

	for _, check := range nilChecks {
		if check.isNil {
			return log.ErrMsg(check.name + " is nil")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carelog/cmd/migration/initialize"
	"carelog/cmd/migration/seed"
	"carelog/config"
	"carelog/internal/app"
	"carelog/internal/database"
	"carelog/internal/handlers"
	"carelog/internal/logger"
	"carelog/internal/utils"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:   "carelog",
		Short: "Hospital stay tracking API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(cacheCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	log := logger.New("main").Function("runServer")

	application, err := app.New()
	if err != nil {
		return log.Err("failed to initialize app", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Er("failed to close app", err)
		}
	}()

	server, err := handlers.NewServer(application)
	if err != nil {
		return log.Err("failed to build server", err)
	}

	errs := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", application.Config.ServerPort)
		log.Info("Starting server", "addr", addr, "version", application.Config.GeneralVersion)
		errs <- server.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		return log.Err("server error", err)
	case <-quit:
	}

	log.Info("Shutting down server")
	if err := server.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return log.Err("server shutdown failed", err)
	}
	log.Info("Server stopped")
	return nil
}

func openDatabase() (database.DB, error) {
	cfg, err := config.InitConfig()
	if err != nil {
		return database.DB{}, err
	}
	return database.New(cfg)
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			statuses, err := initialize.InitializeTables(db, logger.New("migrate"))
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			applied := 0
			for _, s := range statuses {
				if s.Applied {
					applied++
				}
			}
			fmt.Printf("%d of %d migration(s) applied.\n", applied, len(statuses))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			statuses, err := db.MigrationStatus()
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-40s %-10s %s\n", "ID", "STATUS", "APPLIED AT")
			fmt.Println("---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-40s %-10s %s\n", s.ID, status, appliedAt)
			}
			return nil
		},
	})

	return cmd
}

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the settings cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "flush",
		Short: "Drop every cached entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), shutdownTimeout)
			defer cancel()

			if err := db.FlushCaches(ctx); err != nil {
				return fmt.Errorf("cache flush failed: %w", err)
			}

			fmt.Println("Cache flushed.")
			return nil
		},
	})

	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed a demo user with development data",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			if days < 1 || days > utils.MaxDaysLimit {
				return fmt.Errorf("--days must be between 1 and %d, got %d", utils.MaxDaysLimit, days)
			}

			application, err := app.New()
			if err != nil {
				return err
			}
			defer application.Close()

			today := time.Now().UTC()
			dates := make([]string, 0, days)
			for i := days - 1; i >= 0; i-- {
				dates = append(dates, today.AddDate(0, 0, -i).Format(string(utils.FormatISO8601Date)))
			}

			if err := seed.Seed(context.Background(), application, dates[0], dates, logger.New("seed")); err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}

			fmt.Printf("Seeded %d day(s) for user %q.\n", len(dates), seed.DemoUserID)
			return nil
		},
	}
	cmd.Flags().Int("days", 5, "Number of days to seed, ending today")

	return cmd
}

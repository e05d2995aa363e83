package seed

import (
	"context"

	"carelog/internal/app"
	"carelog/internal/logger"
	. "carelog/internal/models"
)

const DemoUserID = "demo"

func stringPtr(s string) *string {
	return &s
}

// Seed fills a demo user with a few days of development data. Re-running it
// is safe: client ids make the events and questions no-ops the second time.
func Seed(ctx context.Context, application *app.App, admissionDate string, dates []string, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data", "userID", DemoUserID)

	settings, err := application.SettingsController.GetSettings(ctx, DemoUserID)
	if err != nil {
		return log.Err("failed to seed settings", err)
	}

	days := application.DayController
	for i, date := range dates {
		values := MetricValues{}
		for j, metric := range settings.Metrics {
			values[metric.ID] = float64((i + j) % int(metric.MaxValue+1))
		}

		patch := DayPatch{
			Mood:         Some(i % 5),
			MetricValues: values,
			Notes:        stringPtr("Seeded day " + date),
		}
		if i == 0 {
			patch.AdmissionDate = Some(admissionDate)
		}

		if _, err := days.PatchDay(ctx, DemoUserID, date, patch); err != nil {
			log.Er("failed to seed day", err, "date", date)
			continue
		}

		if _, err := days.AddEvent(ctx, DemoUserID, date, EventInput{
			ID:   "seed-obs-" + date,
			Time: "08:00",
			Type: "Obs done",
		}); err != nil {
			log.Er("failed to seed event", err, "date", date)
		}

		if _, err := days.AddQuestion(ctx, DemoUserID, date, QuestionInput{
			ID:   "seed-question-" + date,
			Text: "Any changes to the plan today?",
		}); err != nil {
			log.Er("failed to seed question", err, "date", date)
		}
	}

	contacts, err := application.ContactController.ListContacts(ctx, DemoUserID)
	if err != nil {
		return log.Err("failed to list contacts", err)
	}
	if len(contacts) > 0 {
		log.Info("Contacts already exist", "count", len(contacts))
		return nil
	}

	for _, contact := range []ContactInput{
		{Name: "Ward 7 nurses' station", Role: "Nursing", Phone: "01234 567890"},
		{Name: "Dr Rivera", Role: "Consultant", Notes: "Ward round around 9am"},
	} {
		if _, err := application.ContactController.AddContact(ctx, DemoUserID, contact); err != nil {
			log.Er("failed to seed contact", err, "name", contact.Name)
		}
	}

	return nil
}

// Package summary renders a day aggregate as plain text for sharing with a
// care team. Output depends only on its inputs: dates use Go's fixed English
// layout names regardless of the host locale.
package summary

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	. "carelog/internal/models"
	"carelog/internal/utils"
)

const bullet = "• "

type MoodLevel struct {
	Emoji string
	Label string
}

var MoodScale = [...]MoodLevel{
	{Emoji: "😫", Label: "Awful"},
	{Emoji: "😟", Label: "Poor"},
	{Emoji: "😐", Label: "Okay"},
	{Emoji: "🙂", Label: "Good"},
	{Emoji: "😄", Label: "Great"},
}

// DayNumber is 1 on the admission date and counts up from there. Dates
// before admission give zero or negative numbers.
func DayNumber(admissionDate, date string) (int, error) {
	admission, err := utils.ParseDate(admissionDate)
	if err != nil {
		return 0, err
	}
	day, err := utils.ParseDate(date)
	if err != nil {
		return 0, err
	}
	return utils.DaysBetween(admission, day) + 1, nil
}

func RenderSummary(day DayAggregate, settings Settings) string {
	sections := []string{header(day.Date, settings.AdmissionDate)}

	if day.Mood != nil && *day.Mood >= 0 && *day.Mood < len(MoodScale) {
		level := MoodScale[*day.Mood]
		sections = append(sections, "Mood: "+level.Emoji+" "+level.Label)
	}

	ordered := slices.Clone(settings.Metrics)
	slices.SortStableFunc(ordered, func(a, b Metric) int { return cmp.Compare(a.SortOrder, b.SortOrder) })

	metrics := []string{"How I'm doing:"}
	for _, metric := range ordered {
		value := day.MetricValues.ValueFor(metric)
		metrics = append(metrics, metric.Name+": "+formatNumber(value)+"/"+formatNumber(metric.MaxValue))
	}
	sections = append(sections, strings.Join(metrics, "\n"))

	if notes := strings.TrimSpace(day.Notes); notes != "" {
		sections = append(sections, "Notes:\n"+notes)
	}

	if len(day.Events) > 0 {
		lines := []string{"Events:"}
		for _, event := range day.Events {
			line := event.Time + " — " + event.Type
			if event.Note != nil && *event.Note != "" {
				line += " (" + *event.Note + ")"
			}
			lines = append(lines, line)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	var open, answered []string
	for _, question := range day.Questions {
		if question.Answered {
			answered = append(answered, bullet+question.Text)
		} else {
			open = append(open, bullet+question.Text)
		}
	}
	if len(open) > 0 {
		sections = append(sections, "Questions for the care team:\n"+strings.Join(open, "\n"))
	}
	if len(answered) > 0 {
		sections = append(sections, "Answered questions:\n"+strings.Join(answered, "\n"))
	}

	return strings.Join(sections, "\n\n")
}

func header(date string, admissionDate *string) string {
	parsed, err := utils.ParseDate(date)
	if err != nil {
		return date
	}

	title := parsed.Format(string(utils.FormatLongDate))
	if admissionDate == nil {
		return title
	}

	if n, err := DayNumber(*admissionDate, date); err == nil && n >= 1 {
		title += " — Day " + strconv.Itoa(n) + " in hospital"
	}
	return title
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

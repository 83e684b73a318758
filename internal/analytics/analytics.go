package analytics

import (
	"fmt"
	"sort"
	"time"

	"vibetune-bot/internal/storage"
)

// DailyStats aggregates one day of recorded interactions.
type DailyStats struct {
	Date          string
	TotalMessages int
	UniqueUsers   int
	ModelUsage    map[string]int
	UserMessages  map[int64]int
}

// AnalyzeDailyLogs aggregates events that fall on the target date.
func AnalyzeDailyLogs(events []storage.Event, targetDate time.Time) *DailyStats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	stats := &DailyStats{
		Date:         startOfDay.Format("2006-01-02"),
		ModelUsage:   make(map[string]int),
		UserMessages: make(map[int64]int),
	}

	for _, event := range events {
		if event.Timestamp.Before(startOfDay) || !event.Timestamp.Before(endOfDay) {
			continue
		}
		if event.UserMessage == "" {
			continue
		}
		stats.TotalMessages++
		stats.UserMessages[event.UserID]++
		model := event.ModelID
		if model == "" {
			model = "base"
		}
		stats.ModelUsage[model]++
	}

	stats.UniqueUsers = len(stats.UserMessages)
	return stats
}

// Summary renders a text report for the admin chat.
func (ds *DailyStats) Summary() string {
	out := fmt.Sprintf("📊 VibeTune usage for %s\n\nMessages: %d\nUnique users: %d\n",
		ds.Date, ds.TotalMessages, ds.UniqueUsers)

	if len(ds.ModelUsage) > 0 {
		out += "\nBy model:\n"
		models := make([]string, 0, len(ds.ModelUsage))
		for m := range ds.ModelUsage {
			models = append(models, m)
		}
		sort.Strings(models)
		for _, m := range models {
			out += fmt.Sprintf("- %s: %d\n", m, ds.ModelUsage[m])
		}
	}
	return out
}

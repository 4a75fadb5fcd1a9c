package cmd

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/kezou/pacer/internal/domain"
)

var statsDays int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a dashboard of reading statistics",
	Long:  `Display a terminal dashboard with session counts, words read, total reading time, average pace, and a per-day chart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		period, err := app.stats.Period(ctx, statsDays)
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		daily, err := app.stats.Daily(ctx, statsDays)
		if err != nil {
			daily = nil // non-fatal
		}

		recent, err := app.stats.RecentSessions(ctx, 5)
		if err != nil {
			recent = nil // non-fatal
		}

		if jsonOutput {
			return printJSON(statsJSON(period, daily, recent))
		}

		fmt.Println()
		renderDashboard(period, daily, recent)
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVarP(&statsDays, "days", "d", 7, "Number of days to include")
	rootCmd.AddCommand(statsCmd)
}

func renderDashboard(period *domain.PeriodStats, daily []*domain.DailyStats, recent []*domain.ReadingSession) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B35"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E8A87C"))
	barColor := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B35"))

	// Header
	label := fmt.Sprintf("Last %d days", statsDays)
	if statsDays == 1 {
		label = "Today"
	}
	fmt.Printf("  %s\n", titleStyle.Render(label))
	fmt.Printf("  %s\n\n", dimStyle.Render(strings.Repeat("─", 40)))

	// Summary line
	fmt.Printf("  Total: %s sessions, %s words, %s read\n",
		valueStyle.Render(fmt.Sprintf("%d", period.Sessions)),
		valueStyle.Render(fmt.Sprintf("%d", period.WordsRead)),
		valueStyle.Render(formatReadTime(period.ReadingTime)),
	)

	if period.Sessions == 0 {
		fmt.Printf("\n  %s\n\n", dimStyle.Render("No reading sessions in this period."))
		return
	}

	fmt.Printf("  %s %s\n\n",
		dimStyle.Render("Average pace:"),
		valueStyle.Render(fmt.Sprintf("%.0f wpm", period.AverageRate)),
	)

	// Bar chart: words read per day
	renderDailyChart(daily, dimStyle, barColor)

	// Recent sessions
	renderRecentSessions(recent, dimStyle, valueStyle)
}

func renderDailyChart(daily []*domain.DailyStats, dimStyle, barColor lipgloss.Style) {
	if len(daily) == 0 {
		return
	}

	maxWords := 0
	for _, day := range daily {
		if day.WordsRead > maxWords {
			maxWords = day.WordsRead
		}
	}
	if maxWords == 0 {
		return
	}

	fmt.Printf("  %s\n", dimStyle.Render("Words per day"))
	maxBarWidth := dashboardBarWidth()
	for _, day := range daily {
		barWidth := int(math.Round(float64(day.WordsRead) / float64(maxWords) * float64(maxBarWidth)))
		if barWidth < 1 && day.WordsRead > 0 {
			barWidth = 1
		}
		dayLabel := fmt.Sprintf("%-10s", day.Date.Format("Mon Jan 02"))
		fmt.Printf("  %s %s %d\n",
			dimStyle.Render(dayLabel),
			barColor.Render(buildBar(barWidth)),
			day.WordsRead,
		)
	}
	fmt.Println()
}

func renderRecentSessions(recent []*domain.ReadingSession, dimStyle, valueStyle lipgloss.Style) {
	if len(recent) == 0 {
		return
	}

	fmt.Printf("  %s\n", dimStyle.Render("Recent sessions"))
	for _, session := range recent {
		fmt.Printf("  %s  %s words at %s\n",
			dimStyle.Render(session.StartedAt.Format("Jan 02 15:04")),
			valueStyle.Render(fmt.Sprintf("%d", session.WordsRead)),
			valueStyle.Render(fmt.Sprintf("%d wpm", session.Rate)),
		)
	}
	fmt.Println()
}

func statsJSON(period *domain.PeriodStats, daily []*domain.DailyStats, recent []*domain.ReadingSession) map[string]interface{} {
	dayList := make([]map[string]interface{}, 0, len(daily))
	for _, day := range daily {
		dayList = append(dayList, map[string]interface{}{
			"date":         day.Date.Format("2006-01-02"),
			"sessions":     day.Sessions,
			"words_read":   day.WordsRead,
			"reading_time": day.ReadingTime.String(),
		})
	}

	sessionList := make([]map[string]interface{}, 0, len(recent))
	for _, session := range recent {
		entry := map[string]interface{}{
			"started_at": session.StartedAt.Format("2006-01-02T15:04:05"),
			"duration":   session.Duration.String(),
			"words_read": session.WordsRead,
			"rate":       session.Rate,
		}
		if session.DocumentID != nil {
			entry["document_id"] = *session.DocumentID
		}
		sessionList = append(sessionList, entry)
	}

	return map[string]interface{}{
		"days":         statsDays,
		"sessions":     period.Sessions,
		"words_read":   period.WordsRead,
		"reading_time": period.ReadingTime.String(),
		"average_rate": math.Round(period.AverageRate),
		"daily":        dayList,
		"recent":       sessionList,
	}
}

// dashboardBarWidth sizes the chart bars to the terminal, defaulting
// to a width that fits an 80-column window.
func dashboardBarWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 30
	}
	w -= 30
	if w < 10 {
		return 10
	}
	if w > 40 {
		return 40
	}
	return w
}

// buildBar creates a horizontal bar using block characters.
func buildBar(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("█", width)
}

// formatReadTime formats a reading duration as "1h 30m", "25m", or "40s".
func formatReadTime(d time.Duration) string {
	if d < time.Minute {
		if d <= 0 {
			return "0m"
		}
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours > 0 && minutes > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}

package services

import (
	"fmt"
	"strings"

	"fincoach/internal/models"
	"fincoach/internal/money"
)

// FallbackTitle is the header of the insight built when the model path fails.
const FallbackTitle = "Spending Update"

// CoachSystemPrompt sets the persona and the output contract for the model.
const CoachSystemPrompt = `You are a friendly, encouraging financial coach. Look at the user's spending metrics and give 1-2 proactive insights.

Style:
- Be encouraging, never judgmental.
- Use a coaching voice ("I noticed...", "You're doing great with...", "Maybe consider...").
- Keep each message to at most 2 sentences.

Output:
- Return ONLY a JSON array of objects, with no prose before or after it.
- Each object has exactly these string fields: "title" (a short header), "message" (the advice), "type" (one of "trend", "alert", "achievement").

Example:
[{"title": "Short Header", "message": "Friendly advice body", "type": "trend"}]`

// RenderInsightPrompt renders the user turn for a snapshot.
func RenderInsightPrompt(s *MetricsSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are my metrics for %s:\n", s.MonthName)
	fmt.Fprintf(&b, "- Total spending so far: %s\n", money.Format(s.CurrentSpend))
	fmt.Fprintf(&b, "- Spending last month: %s\n", money.Format(s.PriorSpend))
	fmt.Fprintf(&b, "- Top category: %s (%s)\n", s.TopCategory, money.Format(s.TopCategoryAmount))
	if s.HasIncome {
		fmt.Fprintf(&b, "- Income so far: %s (savings rate %s%%)\n", money.Format(s.CurrentIncome), s.SavingsRate.StringFixed(1))
	} else {
		b.WriteString("- Income so far: none recorded\n")
	}
	fmt.Fprintf(&b, "- My goals: %s\n", s.Goals)
	b.WriteString("\nGive me some insights!")
	return b.String()
}

// FallbackDraft builds the single trend insight used whenever the model path
// fails. It depends only on the snapshot's numbers, so the same snapshot
// always yields the same message.
func FallbackDraft(s *MetricsSnapshot) InsightDraft {
	return InsightDraft{
		Title: FallbackTitle,
		Message: fmt.Sprintf("You've spent %s so far in %s, compared with %s last month. Keep an eye on your %s spending (%s)!",
			money.Format(s.CurrentSpend),
			s.MonthName,
			money.Format(s.PriorSpend),
			s.TopCategory,
			money.Format(s.TopCategoryAmount),
		),
		Type: models.InsightTypeTrend,
	}
}

package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fincoach/internal/llm"
	"fincoach/internal/models"
)

func spendingSnapshot() *MetricsSnapshot {
	return &MetricsSnapshot{
		UserID:            "0190a6b8-0000-7000-8000-000000000001",
		MonthName:         "March",
		CurrentSpend:      decimal.RequireFromString("450.00"),
		PriorSpend:        decimal.RequireFromString("300.00"),
		TopCategory:       "Food",
		TopCategoryAmount: decimal.RequireFromString("120.00"),
		CurrentIncome:     decimal.RequireFromString("500.00"),
		SavingsRate:       decimal.RequireFromString("10.0"),
		HasIncome:         true,
		Goals:             "Save $3000 in 10 months",
	}
}

func zeroSnapshot() *MetricsSnapshot {
	return &MetricsSnapshot{
		UserID:            "0190a6b8-0000-7000-8000-000000000002",
		MonthName:         "March",
		CurrentSpend:      decimal.Zero,
		PriorSpend:        decimal.Zero,
		TopCategory:       NoCategory,
		TopCategoryAmount: decimal.Zero,
		Goals:             models.DefaultFinancialGoal,
	}
}

func replyWith(raw string, err error) llm.Client {
	return llm.ClientFunc(func(context.Context, llm.Request) (string, error) {
		return raw, err
	})
}

func assertSingleFallback(t *testing.T, drafts []InsightDraft, snap *MetricsSnapshot) {
	t.Helper()

	if len(drafts) != 1 {
		t.Fatalf("expected exactly one fallback draft, got %d: %+v", len(drafts), drafts)
	}
	want := FallbackDraft(snap)
	if drafts[0] != want {
		t.Errorf("expected fallback %+v, got %+v", want, drafts[0])
	}
	if drafts[0].Type != models.InsightTypeTrend {
		t.Errorf("fallback must be a trend, got %s", drafts[0].Type)
	}
}

func TestGenerate_ModelDrafts(t *testing.T) {
	var got llm.Request
	client := llm.ClientFunc(func(_ context.Context, req llm.Request) (string, error) {
		got = req
		return "```json\n[{\"title\":\"Food is up\",\"message\":\"I noticed food is your top spend.\",\"type\":\"alert\"},{\"title\":\"Saving\",\"message\":\"You're saving 10%.\",\"type\":\"achievement\"}]\n```", nil
	})
	gen := NewInsightGenerator(client, time.Second)

	drafts := gen.Generate(context.Background(), spendingSnapshot())

	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
	if drafts[0].Title != "Food is up" || drafts[0].Type != models.InsightTypeAlert {
		t.Errorf("unexpected first draft %+v", drafts[0])
	}
	if got.System != CoachSystemPrompt {
		t.Error("expected the coach system prompt")
	}
	for _, want := range []string{"March", "$450.00", "$300.00", "Food ($120.00)", "Save $3000 in 10 months", "savings rate 10.0%"} {
		if !strings.Contains(got.Prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, got.Prompt)
		}
	}
}

func TestGenerate_EmptyArrayIsValid(t *testing.T) {
	gen := NewInsightGenerator(replyWith("[]", nil), time.Second)

	drafts := gen.Generate(context.Background(), spendingSnapshot())
	if len(drafts) != 0 {
		t.Errorf("expected no drafts, got %+v", drafts)
	}
}

func TestGenerate_Fallback(t *testing.T) {
	tests := []struct {
		name   string
		client llm.Client
	}{
		{"transport_error", replyWith("", errors.New("connection reset"))},
		{"empty_response", replyWith("", llm.ErrEmptyResponse)},
		{"not_json", replyWith("Great job this month!", nil)},
		{"object_not_array", replyWith(`{"title":"A","message":"B","type":"trend"}`, nil)},
		{"missing_message", replyWith(`[{"title":"A","type":"trend"}]`, nil)},
		{"only_unknown_types", replyWith(`[{"title":"A","message":"B","type":"tip"}]`, nil)},
		{"no_client", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := spendingSnapshot()
			gen := NewInsightGenerator(tt.client, time.Second)

			first := gen.Generate(context.Background(), snap)
			second := gen.Generate(context.Background(), snap)

			assertSingleFallback(t, first, snap)
			if first[0].Message != second[0].Message {
				t.Errorf("fallback not deterministic: %q vs %q", first[0].Message, second[0].Message)
			}
		})
	}
}

func TestGenerate_TimeoutFallsBack(t *testing.T) {
	client := llm.ClientFunc(func(ctx context.Context, _ llm.Request) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	gen := NewInsightGenerator(client, 20*time.Millisecond)
	snap := spendingSnapshot()

	started := time.Now()
	drafts := gen.Generate(context.Background(), snap)

	assertSingleFallback(t, drafts, snap)
	if elapsed := time.Since(started); elapsed > 5*time.Second {
		t.Errorf("generation was not bounded by its timeout: %v", elapsed)
	}
}

func TestFallbackDraft(t *testing.T) {
	t.Run("interpolates_metrics", func(t *testing.T) {
		d := FallbackDraft(spendingSnapshot())

		want := "You've spent $450.00 so far in March, compared with $300.00 last month. Keep an eye on your Food spending ($120.00)!"
		if d.Message != want {
			t.Errorf("unexpected message:\n got %q\nwant %q", d.Message, want)
		}
		if d.Title != FallbackTitle {
			t.Errorf("expected title %q, got %q", FallbackTitle, d.Title)
		}
	})

	t.Run("zero_metrics", func(t *testing.T) {
		d := FallbackDraft(zeroSnapshot())

		if !strings.Contains(d.Message, "$0.00 so far") {
			t.Errorf("expected zero spend in message, got %q", d.Message)
		}
		if !strings.Contains(d.Message, "your N/A spending ($0.00)") {
			t.Errorf("expected sentinel category in message, got %q", d.Message)
		}
	})
}

func TestRenderInsightPrompt_NoIncome(t *testing.T) {
	prompt := RenderInsightPrompt(zeroSnapshot())

	for _, want := range []string{"metrics for March", "Total spending so far: $0.00", "N/A ($0.00)", "none recorded", models.DefaultFinancialGoal, "Give me some insights!"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

package services

import (
	"errors"
	"testing"

	"fincoach/internal/models"
)

func TestParseDrafts(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantTypes []models.InsightType
		wantErr   bool
	}{
		{
			name:      "plain_array",
			raw:       `[{"title":"Nice","message":"Good job.","type":"achievement"},{"title":"Food","message":"Up a bit.","type":"alert"}]`,
			wantTypes: []models.InsightType{models.InsightTypeAchievement, models.InsightTypeAlert},
		},
		{
			name:      "json_fence",
			raw:       "```json\n[{\"title\":\"A\",\"message\":\"B\",\"type\":\"trend\"}]\n```",
			wantTypes: []models.InsightType{models.InsightTypeTrend},
		},
		{
			name:      "plain_fence",
			raw:       "```\n[{\"title\":\"A\",\"message\":\"B\",\"type\":\"trend\"}]\n```",
			wantTypes: []models.InsightType{models.InsightTypeTrend},
		},
		{
			name:      "fence_after_prose",
			raw:       "Here you go:\n```json\n[{\"title\":\"A\",\"message\":\"B\",\"type\":\"alert\"}]\n```\nHope this helps!",
			wantTypes: []models.InsightType{models.InsightTypeAlert},
		},
		{
			name:      "single_line_fence",
			raw:       "```json [{\"title\":\"A\",\"message\":\"B\",\"type\":\"trend\"}]```",
			wantTypes: []models.InsightType{models.InsightTypeTrend},
		},
		{
			name:      "type_normalized",
			raw:       `[{"title":"A","message":"B","type":" Trend "}]`,
			wantTypes: []models.InsightType{models.InsightTypeTrend},
		},
		{
			name:      "empty_array",
			raw:       `[]`,
			wantTypes: []models.InsightType{},
		},
		{
			name:      "unknown_type_dropped",
			raw:       `[{"title":"A","message":"B","type":"warning"},{"title":"C","message":"D","type":"achievement"}]`,
			wantTypes: []models.InsightType{models.InsightTypeAchievement},
		},
		{name: "all_types_unknown", raw: `[{"title":"A","message":"B","type":"warning"}]`, wantErr: true},
		{name: "not_json", raw: `You are doing great this month!`, wantErr: true},
		{name: "truncated_json", raw: `[{"title":"A","message":"B"`, wantErr: true},
		{name: "object_not_array", raw: `{"title":"A","message":"B","type":"trend"}`, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
		{name: "missing_message", raw: `[{"title":"A","type":"trend"}]`, wantErr: true},
		{name: "empty_title", raw: `[{"title":"  ","message":"B","type":"trend"}]`, wantErr: true},
		{name: "missing_type", raw: `[{"title":"A","message":"B"}]`, wantErr: true},
		{name: "missing_field_fails_batch", raw: `[{"title":"A","message":"B","type":"trend"},{"title":"C"}]`, wantErr: true},
		{name: "wrong_field_type", raw: `[{"title":1,"message":"B","type":"trend"}]`, wantErr: true},
		{name: "null_item", raw: `[null]`, wantErr: true},
		{name: "empty_response", raw: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drafts, err := ParseDrafts(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrUnparseable) {
					t.Fatalf("expected ErrUnparseable, got %v (drafts %+v)", err, drafts)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(drafts) != len(tt.wantTypes) {
				t.Fatalf("expected %d drafts, got %d: %+v", len(tt.wantTypes), len(drafts), drafts)
			}
			for i, want := range tt.wantTypes {
				if drafts[i].Type != want {
					t.Errorf("draft %d: expected type %s, got %s", i, want, drafts[i].Type)
				}
			}
		})
	}
}

func TestParseDrafts_TrimsFields(t *testing.T) {
	drafts, err := ParseDrafts(`[{"title":"  Nice work ","message":" Keep going.\n","type":"achievement"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if drafts[0].Title != "Nice work" || drafts[0].Message != "Keep going." {
		t.Errorf("fields not trimmed: %+v", drafts[0])
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[1]", "[1]"},
		{"  [1]  ", "[1]"},
		{"```json\n[1]\n```", "[1]"},
		{"```\n[1]\n```", "[1]"},
		{"```[1]```", "[1]"},
		{"```json\n[1]", "[1]"},
		{"text\n```json\n[1]\n```\nmore", "[1]"},
	}
	for _, tt := range tests {
		if got := stripCodeFence(tt.in); got != tt.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"fincoach/internal/models"
	appvalidator "fincoach/internal/validator"
)

// ErrUnparseable marks model output that cannot be turned into drafts.
var ErrUnparseable = errors.New("insights: unparseable model output")

const fence = "```"

// draftParser validates model output into drafts. Only two outcomes exist:
// a (possibly empty) list of valid drafts, or ErrUnparseable.
type draftParser struct {
	validate *validator.Validate
}

func newDraftParser() *draftParser {
	return &draftParser{validate: appvalidator.New()}
}

// ParseDrafts parses raw model output with a fresh validator.
func ParseDrafts(raw string) ([]InsightDraft, error) {
	return newDraftParser().Parse(raw)
}

// Parse strips an optional code fence and decodes a JSON array of drafts.
// Items whose type is outside the enum are dropped; a missing field in any
// item rejects the whole batch, as does a non-empty array with no valid item.
func (p *draftParser) Parse(raw string) ([]InsightDraft, error) {
	body := stripCodeFence(raw)
	if !strings.HasPrefix(body, "[") {
		return nil, fmt.Errorf("%w: top level is not an array", ErrUnparseable)
	}

	var items []InsightDraft
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	drafts := make([]InsightDraft, 0, len(items))
	for i, item := range items {
		item.Title = strings.TrimSpace(item.Title)
		item.Message = strings.TrimSpace(item.Message)
		item.Type = models.InsightType(strings.ToLower(strings.TrimSpace(string(item.Type))))

		err := p.validate.Struct(item)
		if err == nil {
			drafts = append(drafts, item)
			continue
		}

		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("%w: item %d: %v", ErrUnparseable, i, err)
		}
		for _, fe := range verrs {
			if fe.Tag() != appvalidator.TagInsightType {
				return nil, fmt.Errorf("%w: item %d: field %s failed %s", ErrUnparseable, i, fe.Field(), fe.Tag())
			}
		}
		// Out-of-enum type: drop this item only.
	}

	if len(items) > 0 && len(drafts) == 0 {
		return nil, fmt.Errorf("%w: no item has a known type", ErrUnparseable)
	}
	return drafts, nil
}

// stripCodeFence returns the body of a ```json or ``` fenced block if raw
// contains one, otherwise raw trimmed.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)

	start := strings.Index(s, fence)
	if start == -1 {
		return s
	}
	s = s[start+len(fence):]
	// Drop the info string ("json") on the opening line.
	if nl := strings.Index(s, "\n"); nl != -1 && !strings.ContainsAny(s[:nl], "[{") {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}

	if end := strings.Index(s, fence); end != -1 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

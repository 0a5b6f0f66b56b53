package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFromCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{45000, "450.00"},
		{1599, "15.99"},
		{5, "0.05"},
	}
	for _, tt := range tests {
		if got := FromCents(tt.cents).StringFixed(2); got != tt.want {
			t.Errorf("FromCents(%d) = %s, want %s", tt.cents, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"12.345", 1235, false},
		{"0.1", 10, false},
		{"450", 45000, false},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.Zero, "$0.00"},
		{FromCents(45000), "$450.00"},
		{FromCents(12050), "$120.50"},
		{FromCents(-250), "-$2.50"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(FromCents(100), decimal.Zero); !got.IsZero() {
		t.Errorf("expected zero for zero whole, got %s", got)
	}
	got := Percent(FromCents(100), FromCents(300))
	if got.String() != "33.3" {
		t.Errorf("expected 33.3, got %s", got)
	}
}

func TestSumsHaveNoDrift(t *testing.T) {
	// 0.1 + 0.2 style inputs that drift in float64
	var total decimal.Decimal
	for i := 0; i < 10; i++ {
		total = total.Add(FromCents(10))
	}
	if !total.Equal(FromCents(100)) {
		t.Errorf("expected exactly 1.00, got %s", total)
	}
}

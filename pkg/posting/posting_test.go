package posting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestSideSigned(t *testing.T) {
	m := decimal.NewFromInt(500)

	if got := Debit.Signed(m); !got.Equal(m) {
		t.Errorf("Debit.Signed(500) = %s, expected 500", got)
	}
	if got := Credit.Signed(m); !got.Equal(m.Neg()) {
		t.Errorf("Credit.Signed(500) = %s, expected -500", got)
	}
}

func TestParseSide(t *testing.T) {
	tests := []struct {
		input    string
		expected Side
		wantErr  bool
	}{
		{"debit", Debit, false},
		{"Kredit", Credit, false},
		{"credit", Credit, false},
		{"both", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSide(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSide(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseSide(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPostingDebitCredit(t *testing.T) {
	p := Posting{Amount: decimal.NewFromInt(-300)}
	if !p.Debit().IsZero() {
		t.Errorf("Debit() = %s, expected 0", p.Debit())
	}
	if !p.Credit().Equal(decimal.NewFromInt(300)) {
		t.Errorf("Credit() = %s, expected 300", p.Credit())
	}

	if got := Normalize(decimal.NewFromInt(100), decimal.NewFromInt(40)); !got.Equal(decimal.NewFromInt(60)) {
		t.Errorf("Normalize(100, 40) = %s, expected 60", got)
	}
}

func TestChartResolve(t *testing.T) {
	chart := NewChart([]Account{
		{Code: "1000", Name: "Kas"},
		{Code: " 2000 ", Name: "Hutang"},
		{Code: "1000", Name: "Duplicate"},
		{Code: "", Name: "Blank"},
	})

	if chart.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", chart.Len())
	}

	a, ok := chart.Resolve("1000")
	if !ok || a.Name != "Kas" {
		t.Errorf("Resolve(1000) = %+v, %v", a, ok)
	}
	if _, ok := chart.Resolve("2000"); !ok {
		t.Error("Resolve(2000) should succeed after trimming")
	}
	if _, ok := chart.Resolve("9999"); ok {
		t.Error("Resolve(9999) should fail")
	}
	if got := a.Label(); got != "1000 | Kas" {
		t.Errorf("Label() = %q", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2024-01-10", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), true},
		{"2024-01-10T15:30:00Z", time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC), true},
		{"2024-01-10 08:00:00", time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC), true},
		{"10/01/2024", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDate(tt.input, nil)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, expected %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, expected %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDay(t *testing.T) {
	in := time.Date(2024, 2, 1, 23, 59, 0, 0, time.UTC)
	want := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	if got := Day(in, nil); !got.Equal(want) {
		t.Errorf("Day(%v) = %v, expected %v", in, got, want)
	}
}

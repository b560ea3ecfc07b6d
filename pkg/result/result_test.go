package result_test

import (
	"testing"

	"github.com/goliatone/go-riskform/pkg/result"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		label string
		want  result.Severity
	}{
		{"High Risk", result.SeverityHigh},
		{"Moderate Risk", result.SeverityModerate},
		{"Low Risk", result.SeverityLow},
		{"high risk", result.SeverityLow},
		{"HIGH RISK", result.SeverityLow},
		{"", result.SeverityLow},
		{"Critical", result.SeverityLow},
	}
	for _, tc := range cases {
		if got := result.Classify(tc.label); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestFormatProbability(t *testing.T) {
	cases := []struct {
		p    float64
		want string
	}{
		{0.82, "82.0%"},
		{0.825, "82.5%"},
		{0.0, "0.0%"},
		{1.0, "100.0%"},
		{0.4449, "44.5%"},
	}
	for _, tc := range cases {
		if got := result.FormatProbability(tc.p); got != tc.want {
			t.Errorf("FormatProbability(%v) = %q, want %q", tc.p, got, tc.want)
		}
	}
}

func TestBarWidthClamps(t *testing.T) {
	cases := []struct {
		p    float64
		want float64
	}{
		{0.82, 82},
		{-0.5, 0},
		{1.5, 100},
		{0, 0},
		{1, 100},
	}
	for _, tc := range cases {
		if got := result.BarWidth(tc.p); got != tc.want {
			t.Errorf("BarWidth(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestSeverityProjections(t *testing.T) {
	if got := result.SeverityHigh.CSSClass(); got != "severity-high" {
		t.Errorf("css class = %q", got)
	}
	if got := result.Severity("bogus").CSSClass(); got != "severity-low" {
		t.Errorf("unknown severity css class = %q, want severity-low", got)
	}
	if got := result.SeverityModerate.Describe(); got != "Moderate Risk" {
		t.Errorf("describe = %q", got)
	}
	if got := result.SeverityLow.Describe(); got != "Lower Risk" {
		t.Errorf("describe = %q", got)
	}
}

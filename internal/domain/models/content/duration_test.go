package content

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestMonthsBetween(t *testing.T) {
	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   string
		end     *string
		want    int
		wantErr bool
	}{
		{
			name:  "closed range",
			start: "2017-11",
			end:   strPtr("2022-03"),
			// 1581 days / 30
			want: 52,
		},
		{
			name:  "open range uses now",
			start: "2024-01",
			end:   nil,
			// 380 days / 30
			want: 12,
		},
		{
			name:  "same month",
			start: "2024-05",
			end:   strPtr("2024-05"),
			want:  0,
		},
		{
			name:  "end before start clamps to zero",
			start: "2024-05",
			end:   strPtr("2023-05"),
			want:  0,
		},
		{
			name:    "malformed start",
			start:   "2024/05",
			wantErr: true,
		},
		{
			name:    "malformed end",
			start:   "2024-05",
			end:     strPtr("May 2024"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MonthsBetween(tt.start, tt.end, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MonthsBetween() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("MonthsBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTotalExperienceMonths_SkipsMalformed(t *testing.T) {
	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	doc := &Document{
		Experience: []Experience{
			{StartDate: "2017-11", EndDate: strPtr("2022-03")},
			{StartDate: "not-a-date"},
			{StartDate: "2024-01"},
		},
	}

	if got := doc.TotalExperienceMonths(now); got != 64 {
		t.Errorf("TotalExperienceMonths() = %d, want 64", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		months int
		locale Locale
		want   string
	}{
		{0, LocaleEN, "0 months"},
		{1, LocaleEN, "1 month"},
		{12, LocaleEN, "1 year"},
		{14, LocaleEN, "1 year 2 months"},
		{25, LocaleEN, "2 years 1 month"},
		{0, LocaleVI, "0 tháng"},
		{14, LocaleVI, "1 năm 2 tháng"},
		{24, LocaleVI, "2 năm"},
		{-3, LocaleEN, "0 months"},
		{5, Locale("fr"), "5 months"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.months, tt.locale); got != tt.want {
			t.Errorf("FormatDuration(%d, %s) = %q, want %q", tt.months, tt.locale, got, tt.want)
		}
	}
}

func TestIsCurrentPeriod(t *testing.T) {
	tests := map[string]bool{
		"04/2022 - Present": true,
		"10/2024 - present": true,
		"11/2021 - 03/2022": false,
		"":                  false,
	}
	for period, want := range tests {
		if got := IsCurrentPeriod(period); got != want {
			t.Errorf("IsCurrentPeriod(%q) = %v, want %v", period, got, want)
		}
	}
}

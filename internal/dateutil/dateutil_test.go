package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "YYYY converts to Go year format", format: "YYYY", want: "2006"},
		{name: "YY converts to short year", format: "YY", want: "06"},
		{name: "MMMM converts to full month name", format: "MMMM", want: "January"},
		{name: "MMM converts to short month name", format: "MMM", want: "Jan"},
		{name: "MM converts to padded month", format: "MM", want: "01"},
		{name: "M converts to bare month", format: "M", want: "1"},
		{name: "DD converts to padded day", format: "DD", want: "02"},
		{name: "D converts to bare day", format: "D", want: "2"},
		{name: "iso combination", format: "YYYY-MM-DD", want: "2006-01-02"},
		{name: "long combination", format: "MMMM D, YYYY", want: "January 2, 2006"},
		{name: "bracketed text kept literally", format: "YYYY[年]M[月]D[日]", want: "2006年1月2日"},
		{name: "non-token characters pass through", format: "DD.MM.YYYY", want: "02.01.2006"},
		{name: "empty format", format: "", wantErr: ErrInvalidDateFormat},
		{name: "unclosed bracket", format: "YYYY[年", wantErr: ErrInvalidDateFormat},
		{
			name:    "overlong format",
			format:  "YYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYY",
			wantErr: ErrInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveDate(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr error
	}{
		{name: "literal passes through", value: "2024-12-31", want: "2024-12-31"},
		{name: "empty passes through", value: "", want: ""},
		{name: "auto uses iso", value: "auto", want: "2026-08-29"},
		{name: "auto is case insensitive", value: "AUTO", want: "2026-08-29"},
		{name: "auto with custom format", value: "auto:DD/MM/YYYY", want: "29/08/2026"},
		{name: "auto with preset", value: "auto:long", want: "August 29, 2026"},
		{name: "auto with japanese preset", value: "auto:japanese", want: "2026年8月29日"},
		{name: "auto with bad separator", value: "auto-now", wantErr: ErrInvalidDateFormat},
		{name: "auto with empty format", value: "auto:", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveDate(tt.value, fixed)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

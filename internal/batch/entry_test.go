package batch_test

import (
	"testing"

	"mash/internal/batch"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want *batch.BatchEntry
	}{
		{
			name: "blank",
			line: "   ",
			want: nil,
		},
		{
			name: "comment",
			line: "# https://example.com/ignored",
			want: nil,
		},
		{
			name: "url only",
			line: "https://example.com/gallery",
			want: &batch.BatchEntry{LineNumber: 1, URL: "https://example.com/gallery"},
		},
		{
			name: "url with preset and profile",
			line: "https://example.com/g preset:polite profile:work",
			want: &batch.BatchEntry{LineNumber: 1, URL: "https://example.com/g", Preset: "polite", Profile: "work"},
		},
		{
			name: "unknown keys ignored",
			line: "https://example.com/g speed:fast preset:archive",
			want: &batch.BatchEntry{LineNumber: 1, URL: "https://example.com/g", Preset: "archive"},
		},
		{
			name: "duplicate key last wins",
			line: "https://example.com/g preset:polite preset:fast",
			want: &batch.BatchEntry{LineNumber: 1, URL: "https://example.com/g", Preset: "fast"},
		},
		{
			name: "bare token without colon ignored",
			line: "https://example.com/g polite",
			want: &batch.BatchEntry{LineNumber: 1, URL: "https://example.com/g"},
		},
		{
			name: "surrounding whitespace trimmed",
			line: "  https://example.com/g preset:fast  ",
			want: &batch.BatchEntry{LineNumber: 1, URL: "https://example.com/g", Preset: "fast"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := batch.ParseLine(tc.line, 1)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %+v, got nil", tc.want)
			}
			if *got != *tc.want {
				t.Fatalf("parse mismatch:\n got %+v\nwant %+v", *got, *tc.want)
			}
		})
	}
}

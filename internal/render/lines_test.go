package render

import (
	"slices"
	"testing"

	"questionai/internal/models"

	"github.com/google/go-cmp/cmp"
)

func TestDisplayLinesEmpty(t *testing.T) {
	count := 0
	for range DisplayLines("") {
		count++
	}
	if count != 0 {
		t.Fatalf("expected empty sequence, got %d elements", count)
	}
	if got := Lines(""); got == nil || len(got) != 0 {
		t.Fatalf("expected non-nil empty slice, got %#v", got)
	}
}

func TestDisplayLinesPreservesOrder(t *testing.T) {
	got := Lines("a\nb\nc")
	want := []models.DisplayLine{{Text: "a"}, {Text: "b"}, {Text: "c"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestDisplayLinesClassification(t *testing.T) {
	tests := []struct {
		line string
		want models.DisplayLine
	}{
		{"**Section**", models.DisplayLine{Header: true, Text: "Section"}},
		{"**Answer Key:** 1-B", models.DisplayLine{Header: true, Text: "Answer Key: 1-B"}},
		{"a ** b", models.DisplayLine{Header: true, Text: "a  b"}},
		{"2*3 = 6", models.DisplayLine{Text: "2*3 = 6"}},
		{"Q1? *italic*", models.DisplayLine{Text: "Q1? *italic*"}},
		{"plain", models.DisplayLine{Text: "plain"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Classify(tt.line)); diff != "" {
				t.Fatalf("Classify(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestDisplayLinesKeepsBlankLines(t *testing.T) {
	got := Lines("Q1?\n   \n\nQ2?\n")
	want := []models.DisplayLine{
		{Text: "Q1?"},
		{Text: "   "},
		{Text: ""},
		{Text: "Q2?"},
		{Text: ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestDisplayLinesRestartable(t *testing.T) {
	text := "**Section**\nQ1?\nQ2?"
	seq := DisplayLines(text)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second iteration differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(Lines(text), Lines(text)); diff != "" {
		t.Fatalf("Lines not idempotent:\n%s", diff)
	}
}

func TestDisplayLinesEarlyStop(t *testing.T) {
	var got []models.DisplayLine
	for line := range DisplayLines("a\nb\nc") {
		got = append(got, line)
		if len(got) == 2 {
			break
		}
	}
	if len(got) != 2 {
		t.Fatalf("expected iteration to stop after 2 lines, got %d", len(got))
	}
}

func TestDisplayLinesScenario(t *testing.T) {
	got := Lines("**Section**\nQ1?\nQ2?")
	want := []models.DisplayLine{
		{Header: true, Text: "Section"},
		{Text: "Q1?"},
		{Text: "Q2?"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

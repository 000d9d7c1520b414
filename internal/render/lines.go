// Package render turns generated text into display lines shared by the
// screen view and the PDF export.
package render

import (
	"iter"
	"strings"

	"questionai/internal/models"
)

// Marker is the emphasis sequence the model uses for section headers.
const Marker = "**"

// DisplayLines yields one DisplayLine per "\n"-separated line of text, in
// order. The text is re-split on every iteration. Empty text yields nothing;
// whitespace-only lines are kept.
func DisplayLines(text string) iter.Seq[models.DisplayLine] {
	return func(yield func(models.DisplayLine) bool) {
		if text == "" {
			return
		}
		for line := range strings.SplitSeq(text, "\n") {
			if !yield(Classify(line)) {
				return
			}
		}
	}
}

// Lines collects DisplayLines into a non-nil slice.
func Lines(text string) []models.DisplayLine {
	lines := make([]models.DisplayLine, 0, strings.Count(text, "\n")+1)
	for line := range DisplayLines(text) {
		lines = append(lines, line)
	}
	return lines
}

// Classify marks a line as a header when it contains Marker anywhere and
// strips every occurrence of it. Other lines are returned unchanged.
//
// A content line that legitimately contains "**" (e.g. an exponent) is also
// classified as a header.
func Classify(line string) models.DisplayLine {
	if !strings.Contains(line, Marker) {
		return models.DisplayLine{Text: line}
	}
	return models.DisplayLine{Header: true, Text: strings.ReplaceAll(line, Marker, "")}
}

// Package transcript renders analysis results as plain text and holds the
// per-view segment edits made before export or archiving.
package transcript

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/mediascribe/internal/models"
)

var ErrSegmentIndex = errors.New("segment index out of range")

// Editor is an edit buffer over one result. Edits never touch the result it
// was created from.
type Editor struct {
	result models.AnalysisResult
}

func NewEditor(result models.AnalysisResult) *Editor {
	return &Editor{result: result.Clone()}
}

func (e *Editor) Segments() []models.Segment {
	return append([]models.Segment{}, e.result.Segments...)
}

// SetText replaces the text of segment i, keeping its timing and speaker.
func (e *Editor) SetText(i int, text string) error {
	if i < 0 || i >= len(e.result.Segments) {
		return fmt.Errorf("%w: %d of %d", ErrSegmentIndex, i, len(e.result.Segments))
	}
	e.result.Segments[i].Text = text
	return nil
}

// Result returns a copy of the result with all edits applied.
func (e *Editor) Result() models.AnalysisResult {
	return e.result.Clone()
}

// FullText renders segments as "Speaker [start]: text" separated by blank
// lines, or the plain transcription when there are no segments.
func FullText(r models.AnalysisResult) string {
	if len(r.Segments) == 0 {
		return r.Transcription
	}
	parts := make([]string, 0, len(r.Segments))
	for _, s := range r.Segments {
		parts = append(parts, fmt.Sprintf("%s [%s]: %s", s.Speaker, s.StartTime, s.Text))
	}
	return strings.Join(parts, "\n\n")
}

// SummaryText is the copyable summary view.
func SummaryText(r models.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("Summary:\n")
	b.WriteString(r.Summary)
	b.WriteString("\n\nKey Points:")
	for _, p := range r.KeyPoints {
		b.WriteString("\n- ")
		b.WriteString(p)
	}
	return b.String()
}

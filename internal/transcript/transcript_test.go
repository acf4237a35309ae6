package transcript

import (
	"errors"
	"testing"

	"github.com/nguyentantai21042004/mediascribe/internal/models"
)

func sample() models.AnalysisResult {
	return models.AnalysisResult{
		Transcription: "raw text",
		Summary:       "A short call.",
		KeyPoints:     []string{"one", "two"},
		Segments: []models.Segment{
			{StartTime: "00:00", EndTime: "00:04", Speaker: "Speaker A", Text: "Hi."},
			{StartTime: "00:04", EndTime: "00:09", Speaker: "Speaker B", Text: "Hello there."},
		},
	}
}

func TestFullText(t *testing.T) {
	tests := []struct {
		name   string
		result models.AnalysisResult
		want   string
	}{
		{
			name:   "segments",
			result: sample(),
			want:   "Speaker A [00:00]: Hi.\n\nSpeaker B [00:04]: Hello there.",
		},
		{
			name:   "no segments falls back to transcription",
			result: models.AnalysisResult{Transcription: "just words"},
			want:   "just words",
		},
		{
			name:   "empty",
			result: models.AnalysisResult{},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FullText(tt.result); got != tt.want {
				t.Errorf("FullText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummaryText(t *testing.T) {
	want := "Summary:\nA short call.\n\nKey Points:\n- one\n- two"
	if got := SummaryText(sample()); got != want {
		t.Errorf("SummaryText() = %q, want %q", got, want)
	}

	want = "Summary:\nnothing\n\nKey Points:"
	if got := SummaryText(models.AnalysisResult{Summary: "nothing"}); got != want {
		t.Errorf("SummaryText(no points) = %q, want %q", got, want)
	}
}

func TestEditor(t *testing.T) {
	original := sample()
	e := NewEditor(original)

	if err := e.SetText(1, "General Kenobi."); err != nil {
		t.Fatalf("SetText() error = %v", err)
	}
	if got := e.Result().Segments[1].Text; got != "General Kenobi." {
		t.Errorf("Result().Segments[1].Text = %q, want %q", got, "General Kenobi.")
	}
	if got := e.Result().Segments[1].Speaker; got != "Speaker B" {
		t.Errorf("Result().Segments[1].Speaker = %q, want %q", got, "Speaker B")
	}
	if original.Segments[1].Text != "Hello there." {
		t.Error("SetText() modified the source result")
	}

	segs := e.Segments()
	segs[0].Text = "mutated"
	if e.Result().Segments[0].Text != "Hi." {
		t.Error("Segments() returned a slice aliasing the buffer")
	}

	for _, i := range []int{-1, 2} {
		if err := e.SetText(i, "x"); !errors.Is(err, ErrSegmentIndex) {
			t.Errorf("SetText(%d) error = %v, want %v", i, err, ErrSegmentIndex)
		}
	}
}

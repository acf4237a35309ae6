// Package normalizer turns the model's raw text reply into an AnalysisResult.
//
// Decode never fails: a reply that cannot be parsed still yields a
// displayable result, and the Outcome's Kind tells callers whether the
// structure survived.
package normalizer

import (
	"encoding/json"
	"strings"

	"github.com/nguyentantai21042004/mediascribe/internal/models"
)

// FallbackSummary is the summary placed in results built from unparsable
// replies.
const FallbackSummary = "Could not parse summary."

// Kind classifies a decoded reply.
type Kind int

const (
	// KindOK means the reply decoded into the expected shape.
	KindOK Kind = iota
	// KindDegraded means the reply held no JSON object at all.
	KindDegraded
	// KindMalformed means the reply looked like JSON but did not decode.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindDegraded:
		return "degraded"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of Decode.
type Outcome struct {
	Kind   Kind
	Result models.AnalysisResult
	// Raw is the reply as received.
	Raw string
	// Err is the decode error for KindMalformed.
	Err error
}

// Degraded reports whether the result was built from a fallback.
func (o Outcome) Degraded() bool {
	return o.Kind != KindOK
}

// wireResult mirrors the JSON shape requested from the model. Pointer-free
// fields let omitted keys fall through to zero values.
type wireResult struct {
	Transcription string           `json:"transcription"`
	Summary       string           `json:"summary"`
	KeyPoints     []string         `json:"keyPoints"`
	Segments      []models.Segment `json:"segments"`
}

// Decode parses raw into an Outcome.
func Decode(raw string) Outcome {
	body, found := extractObject(raw)
	if !found {
		return Outcome{Kind: KindDegraded, Result: Fallback(raw), Raw: raw}
	}

	dec := json.NewDecoder(strings.NewReader(body))
	var w wireResult
	if err := dec.Decode(&w); err != nil {
		return Outcome{Kind: KindMalformed, Result: Fallback(raw), Raw: raw, Err: err}
	}

	return Outcome{Kind: KindOK, Result: w.toResult(), Raw: raw}
}

// Fallback builds the degraded result for a reply that could not be parsed.
func Fallback(raw string) models.AnalysisResult {
	return models.AnalysisResult{
		Transcription: raw,
		Summary:       FallbackSummary,
		KeyPoints:     []string{},
		Segments:      []models.Segment{},
	}
}

func (w wireResult) toResult() models.AnalysisResult {
	r := models.AnalysisResult{
		Transcription: w.Transcription,
		Summary:       w.Summary,
		KeyPoints:     w.KeyPoints,
		Segments:      w.Segments,
	}
	if r.KeyPoints == nil {
		r.KeyPoints = []string{}
	}
	if r.Segments == nil {
		r.Segments = []models.Segment{}
	}
	return r
}

// extractObject strips code fences and surrounding prose. found is false when
// the reply does not look like JSON at all; a leading '[' counts as JSON so a
// top-level array is reported as malformed rather than degraded.
func extractObject(raw string) (string, bool) {
	s := stripFences(raw)
	if s == "" {
		return "", false
	}
	if s[0] == '{' || s[0] == '[' {
		return s, true
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

package analyzer

import (
	"fmt"

	"google.golang.org/genai"
)

const analysisPrompt = `Analyze the audio/video content.
The output MUST be in %[1]s language.

1. Provide a full, accurate transcription of the spoken content in %[1]s.
2. Write a concise summary of the content (approx 100 words) in %[1]s.
3. Extract the most important key points as a list of bullet points in %[1]s.
4. Identify speakers (Speaker A, Speaker B, etc.) and provide timestamps for each segment of speech.

Return a strictly valid JSON object (no markdown formatting, no backticks) with this structure:
{
  "transcription": "Full transcription of the audio/video",
  "summary": "A concise summary of the content",
  "keyPoints": ["Key point 1", "Key point 2"],
  "segments": [
    {"startTime": "00:00", "endTime": "00:10", "speaker": "Speaker A", "text": "Segment text"}
  ]
}`

func buildPrompt(language string) string {
	return fmt.Sprintf(analysisPrompt, language)
}

// responseSchema is the JSON shape the model is asked to produce.
func responseSchema() *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"transcription": str(""),
			"summary":       str(""),
			"keyPoints": {
				Type:  genai.TypeArray,
				Items: str(""),
			},
			"segments": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"startTime": str("Start time (e.g. 00:00)"),
						"endTime":   str("End time (e.g. 00:15)"),
						"speaker":   str("Speaker label (e.g. Speaker A)"),
						"text":      str("Spoken text in this segment"),
					},
				},
			},
		},
		Required: []string{"transcription", "summary", "keyPoints", "segments"},
	}
}

func generateConfig() *genai.GenerateContentConfig {
	budget := int32(0)
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
		ThinkingConfig:   &genai.ThinkingConfig{ThinkingBudget: &budget},
	}
}

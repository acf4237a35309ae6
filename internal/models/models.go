// Package models holds the data types shared by the analysis, archive and
// export layers.
package models

import "time"

// DefaultFolderID is the folder a record lands in when none is given.
const DefaultFolderID = "default"

// DefaultLanguage is used when a caller does not pick an output language.
const DefaultLanguage = "English"

// Languages is the list of output languages offered to users. The analyzer
// accepts any free-form language name.
var Languages = []string{
	"English", "Spanish", "French", "German", "Chinese", "Japanese", "Korean",
	"Hindi", "Arabic", "Portuguese", "Russian", "Italian", "Urdu",
}

// Segment is one speaker-labeled, timestamped piece of the transcript.
type Segment struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
}

// AnalysisResult is the normalized output of one analysis call.
type AnalysisResult struct {
	Transcription string    `json:"transcription"`
	Summary       string    `json:"summary"`
	KeyPoints     []string  `json:"keyPoints"`
	Segments      []Segment `json:"segments"`
}

// Clone returns a deep copy so callers can edit segments without touching
// the original.
func (r AnalysisResult) Clone() AnalysisResult {
	out := r
	out.KeyPoints = append([]string{}, r.KeyPoints...)
	out.Segments = append([]Segment{}, r.Segments...)
	return out
}

// ArchiveRecord is a persisted, named AnalysisResult.
type ArchiveRecord struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Date     time.Time      `json:"date"`
	FolderID string         `json:"folderId"`
	Result   AnalysisResult `json:"result"`
	MIMEType string         `json:"mimeType"`
}

// Folder groups archive records.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultFolders returns the folders every new archive is seeded with.
func DefaultFolders() []Folder {
	return []Folder{
		{ID: DefaultFolderID, Name: "General"},
		{ID: "meetings", Name: "Meetings"},
		{ID: "interviews", Name: "Interviews"},
	}
}

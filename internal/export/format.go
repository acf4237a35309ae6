// Package export turns analysis results into downloadable documents.
package export

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nguyentantai21042004/mediascribe/internal/models"
)

type Format string

const (
	FormatText Format = "txt"
	FormatPDF  Format = "pdf"
	FormatDoc  Format = "doc"
	FormatDocx Format = "docx"
)

// DefaultTitle is used when a document has no title.
const DefaultTitle = "Transcription Result"

var ErrUnknownFormat = errors.New("unknown export format")

var reWhitespace = regexp.MustCompile(`\s+`)

// Document is what every format renders. Date is the record date; a zero
// Date means the document was never archived.
type Document struct {
	Title  string
	Date   time.Time
	Result models.AnalysisResult
}

// FromRecord builds a Document from an archived record.
func FromRecord(r models.ArchiveRecord) Document {
	return Document{Title: r.Title, Date: r.Date, Result: r.Result}
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatText, FormatPDF, FormatDoc, FormatDocx:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func ContentType(f Format) string {
	switch f {
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatDoc:
		return "application/msword"
	case FormatDocx:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "application/octet-stream"
}

// Filename derives the download name: whitespace runs become "_" and text
// exports carry a "_transcription" suffix.
func Filename(title string, f Format) string {
	if title == "" {
		title = DefaultTitle
	}
	base := reWhitespace.ReplaceAllString(title, "_")
	if f == FormatText {
		base += "_transcription"
	}
	return base + "." + string(f)
}

func (d Document) title() string {
	if d.Title == "" {
		return DefaultTitle
	}
	return d.Title
}

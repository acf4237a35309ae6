package export

import (
	"io"
	"strings"
	"time"

	"github.com/nguyentantai21042004/mediascribe/internal/transcript"
)

func writeText(w io.Writer, doc Document, date time.Time) error {
	var b strings.Builder
	b.WriteString("TITLE: " + doc.title() + "\n")
	b.WriteString("DATE: " + date.UTC().Format(time.RFC3339) + "\n\n")

	b.WriteString("SUMMARY\n=======\n")
	b.WriteString(doc.Result.Summary)

	b.WriteString("\n\nKEY POINTS\n==========\n")
	points := make([]string, 0, len(doc.Result.KeyPoints))
	for _, p := range doc.Result.KeyPoints {
		points = append(points, "- "+p)
	}
	b.WriteString(strings.Join(points, "\n"))

	b.WriteString("\n\nTRANSCRIPTION\n=============\n")
	b.WriteString(transcript.FullText(doc.Result))

	_, err := io.WriteString(w, b.String())
	return err
}

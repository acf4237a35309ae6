package export

import (
	"html/template"
	"io"
	"time"

	"github.com/nguyentantai21042004/mediascribe/internal/models"
)

// Word opens HTML saved with a .doc extension when it carries the Office
// namespaces.
var wordTemplate = template.Must(template.New("doc").Parse(`<html xmlns:o='urn:schemas-microsoft-com:office:office' xmlns:w='urn:schemas-microsoft-com:office:word' xmlns='http://www.w3.org/TR/REC-html40'>
<head><meta charset='utf-8'><title>{{.Title}}</title></head>
<body style="font-family: Calibri, sans-serif;">
<h1>{{.Title}}</h1>
<p style="color: #666; font-size: 0.9em;">{{.Date}}</p>
<h2>Executive Summary</h2>
<p>{{.Summary}}</p>
<h2>Key Points</h2>
<ul>
{{- range .KeyPoints}}
<li>{{.}}</li>
{{- end}}
</ul>
<h2>Transcription</h2>
{{- if .Segments}}
{{- range .Segments}}
<p><strong>{{.Speaker}}</strong> <span style="color:#888; font-size:0.8em;">[{{.StartTime}} - {{.EndTime}}]</span><br/>
{{.Text}}</p>
{{- end}}
{{- else}}
<p>{{.Transcription}}</p>
{{- end}}
</body>
</html>
`))

type wordView struct {
	Title         string
	Date          string
	Summary       string
	KeyPoints     []string
	Segments      []models.Segment
	Transcription string
}

func writeWordHTML(w io.Writer, doc Document, date time.Time) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return err
	}
	return wordTemplate.Execute(w, wordView{
		Title:         doc.title(),
		Date:          date.Format("2006-01-02"),
		Summary:       doc.Result.Summary,
		KeyPoints:     doc.Result.KeyPoints,
		Segments:      doc.Result.Segments,
		Transcription: doc.Result.Transcription,
	})
}

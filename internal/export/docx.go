package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	docxFont     = "Calibri"
	docxFontSize = 11
)

var reBold = regexp.MustCompile(`\*\*(.+?)\*\*`)

func writeDocx(w io.Writer, doc Document, date time.Time) error {
	d, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(d.AddParagraph(""), doc.title(), true, 18)
	d.AddParagraph("").AddText(date.Format("2006-01-02")).Font(docxFont).Size(9).Color("666666")

	addStyledRun(d.AddParagraph(""), "Executive Summary", true, 14)
	addRichText(d.AddParagraph(""), doc.Result.Summary)

	addStyledRun(d.AddParagraph(""), "Key Points", true, 14)
	for _, p := range doc.Result.KeyPoints {
		addRichText(d.AddParagraph(""), "• "+p)
	}

	addStyledRun(d.AddParagraph(""), "Transcription", true, 14)
	if len(doc.Result.Segments) == 0 {
		addRichText(d.AddParagraph(""), doc.Result.Transcription)
	}
	for _, s := range doc.Result.Segments {
		p := d.AddParagraph("")
		p.AddText(s.Speaker).Font(docxFont).Size(docxFontSize).Color("000000").Bold(true)
		p.AddText(" [" + s.StartTime + " - " + s.EndTime + "]").Font(docxFont).Size(9).Color("888888")
		d.AddParagraph("").AddText(s.Text).Font(docxFont).Size(docxFontSize).Color("000000")
	}

	return saveDocx(d, w)
}

// saveDocx goes through a temp file because godocx packages to a path.
func saveDocx(d *docx.RootDoc, w io.Writer) error {
	dir, err := os.MkdirTemp("", "mediascribe-docx-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "export.docx")
	if err := d.SaveTo(path); err != nil {
		return fmt.Errorf("save docx: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(cleanMarkdownInline(text)).Font(docxFont).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

// addRichText keeps **bold** spans the model sometimes emits in summaries.
func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(docxFont).Size(docxFontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(docxFont).Size(docxFontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}

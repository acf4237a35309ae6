package export

import (
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin = 20.0
	pdfFont   = "Helvetica"
)

func writePDF(w io.Writer, doc Document, generated time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	// Core fonts are cp1252; characters outside it degrade to "?".
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(pdfFont, "", 18)
	pdf.MultiCell(0, 9, tr(doc.title()), "", "L", false)

	pdf.SetFont(pdfFont, "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, tr("Generated on: "+generated.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.Ln(8)
	pdf.SetTextColor(0, 0, 0)

	heading := func(text string) {
		pdf.SetFont(pdfFont, "", 14)
		pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
	}

	heading("Executive Summary")
	pdf.SetFont(pdfFont, "", 11)
	pdf.MultiCell(0, 6, tr(doc.Result.Summary), "", "L", false)
	pdf.Ln(6)

	heading("Key Points")
	pdf.SetFont(pdfFont, "", 11)
	for _, p := range doc.Result.KeyPoints {
		pdf.MultiCell(0, 6, tr("• "+p), "", "L", false)
	}
	pdf.Ln(6)

	heading("Full Transcription")
	if len(doc.Result.Segments) == 0 {
		pdf.SetFont(pdfFont, "", 10)
		pdf.MultiCell(0, 5, tr(doc.Result.Transcription), "", "L", false)
	}
	for _, s := range doc.Result.Segments {
		pdf.SetFont(pdfFont, "B", 10)
		pdf.CellFormat(0, 5, tr(s.Speaker+" ["+s.StartTime+"-"+s.EndTime+"]"), "", 1, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 10)
		pdf.MultiCell(0, 5, tr(s.Text), "", "L", false)
		pdf.Ln(3)
	}

	return pdf.Output(w)
}

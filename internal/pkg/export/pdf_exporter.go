package export

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// Relative paths where the TTF font may live.
	// In Docker runtime we copy fonts to /app/ttf,
	// so for the compiled binary the path is ./ttf/DejaVuSans.ttf.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source-relative path (useful when running from repo root with `go run`).
	pdfFontSourcePath = "internal/pkg/export/ttf/DejaVuSans.ttf"
)

type PDFExporter struct{}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// resolveFontPath tries to find the DejaVuSans font in
// runtime layout (next to the binary) or source layout.
func resolveFontPath() string {
	if _, err := os.Stat(pdfFontRuntimePath); err == nil {
		return pdfFontRuntimePath
	}

	if _, err := os.Stat(pdfFontSourcePath); err == nil {
		return pdfFontSourcePath
	}

	return ""
}

func (e *PDFExporter) Export(rows []entity.AnswerLogExportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	// Try to use UTF-8 capable DejaVuSans font, bundled with the project.
	fontName := "Arial"
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
	}

	pdf.SetFont(fontName, "B", 16)
	pdf.Cell(0, 10, exportTitle)
	pdf.Ln(12)

	colWidths := []float64{32, 28, 55, 70, 20, 22, 28, 22}

	pdf.SetFont(fontName, "B", 9)
	for i, col := range exportColumns {
		pdf.CellFormat(colWidths[i], 8, col, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontName, "", 8)
	for _, row := range rows {
		cells := []string{
			row.CreatedAt.Format(exportTimeLayout),
			truncate(row.UserID, 20),
			truncate(row.QueryText, 45),
			truncate(row.AnswerShown, 60),
			row.FAQID,
			fmt.Sprintf("%.1f", row.Confidence),
			string(row.SearchLevel),
			boolMark(row.Generated),
		}
		for i, cell := range cells {
			pdf.CellFormat(colWidths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) ContentType() string {
	return pdfContentType
}

func (e *PDFExporter) FileExtension() string {
	return pdfFileExtension
}

// truncate keeps table cells on one line; full text is available in CSV/XLSX.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func boolMark(b bool) string {
	if b {
		return "да"
	}
	return "нет"
}

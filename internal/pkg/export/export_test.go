package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
)

func sampleRows() []entity.AnswerLogExportRow {
	return []entity.AnswerLogExportRow{
		{
			CreatedAt:   time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC),
			UserID:      "42",
			QueryText:   "Как оформить отпуск?",
			AnswerShown: "Через портал.",
			FAQID:       "1",
			Confidence:  95,
			SearchLevel: entity.SearchLevelKeyword,
			Generated:   true,
		},
		{
			CreatedAt:   time.Date(2026, 8, 1, 12, 31, 0, 0, time.UTC),
			QueryText:   "вопрос без ответа",
			AnswerShown: "нет ответа",
			SearchLevel: entity.SearchLevelNone,
		},
	}
}

func TestFactoryCreate(t *testing.T) {
	factory := NewFactory()

	for _, format := range []entity.ExportFormat{entity.FormatCSV, entity.FormatPDF, entity.FormatXLSX} {
		if _, err := factory.Create(format); err != nil {
			t.Errorf("Create(%s) error: %v", format, err)
		}
	}

	if _, err := factory.Create("docx"); !errors.Is(err, entity.ErrUnsupportedFormat) {
		t.Errorf("Create(docx) err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestCSVExport(t *testing.T) {
	data, err := NewCSVExporter().Export(sampleRows())
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("\xEF\xBB\xBF")) {
		t.Error("CSV output missing UTF-8 BOM")
	}

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF")))).ReadAll()
	if err != nil {
		t.Fatalf("parse exported CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want header + 2 rows", len(records))
	}
	if len(records[0]) != len(exportColumns) {
		t.Errorf("header has %d columns, want %d", len(records[0]), len(exportColumns))
	}
	if records[1][2] != "Как оформить отпуск?" {
		t.Errorf("query cell = %q", records[1][2])
	}
	if records[1][5] != "95.0" {
		t.Errorf("confidence cell = %q, want 95.0", records[1][5])
	}
	if records[2][6] != "none" {
		t.Errorf("search level cell = %q, want none", records[2][6])
	}
}

func TestCSVExportEmpty(t *testing.T) {
	data, err := NewCSVExporter().Export(nil)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if !strings.Contains(string(data), "Вопрос") {
		t.Error("empty export should still contain the header row")
	}
}

func TestExporterMetadata(t *testing.T) {
	tests := []struct {
		exporter    Exporter
		contentType string
		extension   string
	}{
		{NewCSVExporter(), "text/csv; charset=utf-8", ".csv"},
		{NewPDFExporter(), "application/pdf", ".pdf"},
		{NewXLSXExporter(), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ".xlsx"},
	}

	for _, tt := range tests {
		if got := tt.exporter.ContentType(); got != tt.contentType {
			t.Errorf("ContentType() = %q, want %q", got, tt.contentType)
		}
		if got := tt.exporter.FileExtension(); got != tt.extension {
			t.Errorf("FileExtension() = %q, want %q", got, tt.extension)
		}
	}
}

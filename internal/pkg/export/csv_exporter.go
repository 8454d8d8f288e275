package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
)

const (
	csvContentType   = "text/csv; charset=utf-8"
	csvFileExtension = ".csv"
)

type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) Export(rows []entity.AnswerLogExportRow) ([]byte, error) {
	var buf bytes.Buffer

	// UTF-8 BOM so spreadsheet apps pick up Cyrillic correctly
	buf.WriteString("\xEF\xBB\xBF")

	w := csv.NewWriter(&buf)
	if err := w.Write(exportColumns); err != nil {
		return nil, err
	}

	for _, row := range rows {
		record := []string{
			row.CreatedAt.Format(exportTimeLayout),
			row.UserID,
			row.QueryText,
			row.AnswerShown,
			row.FAQID,
			strconv.FormatFloat(row.Confidence, 'f', 1, 64),
			string(row.SearchLevel),
			strconv.FormatBool(row.Generated),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *CSVExporter) ContentType() string {
	return csvContentType
}

func (e *CSVExporter) FileExtension() string {
	return csvFileExtension
}

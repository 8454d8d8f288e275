package export

import (
	"bytes"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
	"github.com/unidoc/unioffice/spreadsheet"
)

const (
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsxFileExtension = ".xlsx"
)

type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

func (e *XLSXExporter) Export(rows []entity.AnswerLogExportRow) ([]byte, error) {
	wb := spreadsheet.New()
	defer wb.Close()

	sheet := wb.AddSheet()
	sheet.SetName(exportTitle)

	header := sheet.AddRow()
	for _, col := range exportColumns {
		header.AddCell().SetString(col)
	}

	for _, row := range rows {
		r := sheet.AddRow()
		r.AddCell().SetString(row.CreatedAt.Format(exportTimeLayout))
		r.AddCell().SetString(row.UserID)
		r.AddCell().SetString(row.QueryText)
		r.AddCell().SetString(row.AnswerShown)
		r.AddCell().SetString(row.FAQID)
		r.AddCell().SetNumber(row.Confidence)
		r.AddCell().SetString(string(row.SearchLevel))
		r.AddCell().SetBool(row.Generated)
	}

	var buf bytes.Buffer
	if err := wb.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *XLSXExporter) ContentType() string {
	return xlsxContentType
}

func (e *XLSXExporter) FileExtension() string {
	return xlsxFileExtension
}

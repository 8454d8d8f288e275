package export

import (
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
)

const exportTitle = "Журнал ответов"

// exportColumns is the shared header row for all formats.
var exportColumns = []string{
	"Дата", "Пользователь", "Вопрос", "Ответ", "FAQ ID", "Уверенность", "Уровень поиска", "Сгенерирован",
}

const exportTimeLayout = "2006-01-02 15:04:05"

type Exporter interface {
	Export(rows []entity.AnswerLogExportRow) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ExportFormat) (Exporter, error) {
	switch format {
	case entity.FormatCSV:
		return NewCSVExporter(), nil
	case entity.FormatPDF:
		return NewPDFExporter(), nil
	case entity.FormatXLSX:
		return NewXLSXExporter(), nil
	default:
		return nil, entity.ErrUnsupportedFormat
	}
}

package generation

import (
	"fmt"
	"strings"
	"time"
)

// DefaultSystemPrompt is used when the settings store has no
// rag_system_prompt key.
const DefaultSystemPrompt = "Ты — корпоративный помощник. Отвечай на вопрос сотрудника, " +
	"используя только приведённый контекст из базы знаний. Если контекст не содержит ответа, " +
	"честно скажи, что информации нет. Если вопрос неоднозначен, попроси уточнить."

var russianWeekdays = [...]string{
	"Воскресенье", "Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота",
}

// buildSystemPrompt prefixes the configured template with the current date,
// so the model can resolve relative dates in answers.
func buildSystemPrompt(template string, now time.Time) string {
	date := fmt.Sprintf("%s (%s)", now.Format("02.01.2006"), russianWeekdays[now.Weekday()])
	return fmt.Sprintf("СЕГОДНЯШНЯЯ ДАТА: %s\n\n%s", date, template)
}

// buildContext renders chunks into the document list the model sees.
func buildContext(chunks []chunkView) string {
	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		parts = append(parts, fmt.Sprintf(
			"Документ %d (релевантность: %.1f%%):\nВопрос: %s\nОтвет: %s\n",
			i+1, chunk.Confidence, chunk.Question, chunk.Answer,
		))
	}
	return strings.Join(parts, "\n---\n")
}

// buildUserPrompt combines the masked context and the masked question.
func buildUserPrompt(maskedContext, maskedQuestion string) string {
	return fmt.Sprintf("КОНТЕКСТ:\n%s\n\nВОПРОС: %s", maskedContext, maskedQuestion)
}

// chunkView is the prompt-facing projection of a context chunk.
type chunkView struct {
	Question   string
	Answer     string
	Confidence float64
}

package generation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/anonymizer"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
	"go.uber.org/zap"
)

type fakeCompletionService struct {
	resp     *entity.CompletionResponse
	err      error
	failures int
	calls    int
	lastReq  *entity.CompletionRequest
}

func (f *fakeCompletionService) Complete(_ context.Context, req *entity.CompletionRequest) (*entity.CompletionResponse, error) {
	f.calls++
	f.lastReq = req
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("transient failure")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func completionResponse(text string) *entity.CompletionResponse {
	return &entity.CompletionResponse{
		Model: "test-model",
		Choices: []entity.CompletionChoice{
			{Message: entity.CompletionMessage{Role: "assistant", Content: text}, FinishReason: "stop"},
		},
		Usage: entity.CompletionUsage{PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120},
	}
}

func testConfig() Config {
	return Config{
		Model:       "test-model",
		MaxTokens:   256,
		Temperature: 0.3,
		MaxRetries:  2,
		RetryDelay:  time.Millisecond,
	}
}

func testChunks() []entity.ContextChunk {
	return []entity.ContextChunk{
		{FAQID: "1", Question: "Как оформить отпуск?", Answer: "Через портал.", Confidence: 90},
	}
}

func TestGenerateEmptyContextShortCircuits(t *testing.T) {
	svc := &fakeCompletionService{resp: completionResponse("ответ")}
	g := NewGenerator(svc, anonymizer.New(), zap.NewNop())

	outcome := g.Generate(context.Background(), "вопрос", nil, testConfig())

	if svc.calls != 0 {
		t.Errorf("service called %d times, want 0 for empty context", svc.calls)
	}
	if outcome.Text != NoInfoText {
		t.Errorf("Text = %q, want fixed no-information reply", outcome.Text)
	}
	if outcome.Error != "empty_context" {
		t.Errorf("Error = %q, want empty_context", outcome.Error)
	}
	if outcome.Kind != entity.AnswerNoInfo {
		t.Errorf("Kind = %s, want no_answer", outcome.Kind)
	}
}

func TestGenerateSuccess(t *testing.T) {
	svc := &fakeCompletionService{resp: completionResponse("Отпуск оформляется через портал.")}
	g := NewGenerator(svc, anonymizer.New(), zap.NewNop())

	outcome := g.Generate(context.Background(), "как взять отпуск", testChunks(), testConfig())

	if outcome.Failed() {
		t.Fatalf("unexpected failure: %s", outcome.Error)
	}
	if outcome.Text != "Отпуск оформляется через портал." {
		t.Errorf("Text = %q", outcome.Text)
	}
	if outcome.Kind != entity.AnswerNormal {
		t.Errorf("Kind = %s, want normal", outcome.Kind)
	}
	if outcome.Tokens.Total != 120 {
		t.Errorf("Tokens.Total = %d, want 120", outcome.Tokens.Total)
	}
	if outcome.ChunksUsed != 1 {
		t.Errorf("ChunksUsed = %d, want 1", outcome.ChunksUsed)
	}
	if svc.lastReq == nil || len(svc.lastReq.Messages) != 2 {
		t.Fatalf("request = %+v, want system and user messages", svc.lastReq)
	}
	if !strings.Contains(svc.lastReq.Messages[1].Content, "КОНТЕКСТ:") {
		t.Error("user prompt missing context block")
	}
}

func TestGenerateRetriesTransientFailures(t *testing.T) {
	svc := &fakeCompletionService{
		resp:     completionResponse("готово"),
		failures: 1,
	}
	g := NewGenerator(svc, anonymizer.New(), zap.NewNop())

	outcome := g.Generate(context.Background(), "вопрос про отпуск", testChunks(), testConfig())

	if outcome.Failed() {
		t.Fatalf("expected success after retry, got %s", outcome.Error)
	}
	if svc.calls != 2 {
		t.Errorf("service called %d times, want 2", svc.calls)
	}
}

func TestGenerateSurfacesFinalError(t *testing.T) {
	svc := &fakeCompletionService{err: errors.New("bad gateway")}
	g := NewGenerator(svc, anonymizer.New(), zap.NewNop())

	outcome := g.Generate(context.Background(), "вопрос про отпуск", testChunks(), testConfig())

	if !outcome.Failed() {
		t.Fatal("expected failed outcome")
	}
	if !strings.Contains(outcome.Error, "bad gateway") {
		t.Errorf("Error = %q, want the final service error", outcome.Error)
	}
	if svc.calls != 2 {
		t.Errorf("service called %d times, want MaxRetries=2", svc.calls)
	}
	if outcome.Kind != entity.AnswerNoInfo {
		t.Errorf("Kind = %s, want no_answer on failure", outcome.Kind)
	}
}

func TestGenerateMasksAndRestoresPersonalData(t *testing.T) {
	// The model echoes the masked placeholder back; the outcome must carry
	// the restored value.
	chunks := []entity.ContextChunk{
		{FAQID: "1", Question: "Куда писать?", Answer: "Пишите на hr@example.com", Confidence: 90},
	}

	svc := &fakeCompletionService{resp: completionResponse("Пишите на [EMAIL_1].")}
	g := NewGenerator(svc, anonymizer.New(), zap.NewNop())

	outcome := g.Generate(context.Background(), "куда писать", chunks, testConfig())

	if outcome.Failed() {
		t.Fatalf("unexpected failure: %s", outcome.Error)
	}
	if outcome.Text != "Пишите на hr@example.com." {
		t.Errorf("Text = %q, want restored email", outcome.Text)
	}
	if outcome.PIICount != 1 {
		t.Errorf("PIICount = %d, want 1", outcome.PIICount)
	}
	if strings.Contains(svc.lastReq.Messages[1].Content, "hr@example.com") {
		t.Error("real email leaked into the outbound prompt")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		clarification []string
		noAnswer      []string
		want          entity.AnswerKind
	}{
		{
			name: "normal answer",
			text: "Отпуск оформляется через портал.",
			want: entity.AnswerNormal,
		},
		{
			name: "clarification default phrases",
			text: "Уточните, пожалуйста, о каком отпуске речь.",
			want: entity.AnswerClarification,
		},
		{
			name: "no answer default phrases",
			text: "К сожалению, я не нашел информации по этому вопросу.",
			want: entity.AnswerNoInfo,
		},
		{
			name:          "custom phrases case insensitive",
			text:          "ЧТО ИМЕННО ВАС ИНТЕРЕСУЕТ в этой теме?",
			clarification: []string{"что именно вас интересует"},
			want:          entity.AnswerClarification,
		},
		{
			name:          "clarification checked before no answer",
			text:          "Уточните вопрос, в базе нет информации.",
			clarification: []string{"уточните"},
			noAnswer:      []string{"нет информации"},
			want:          entity.AnswerClarification,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text, tt.clarification, tt.noAnswer); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

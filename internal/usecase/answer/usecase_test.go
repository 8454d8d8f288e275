package answer

import (
	"context"
	"errors"
	"testing"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/generation"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/search"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/settings"
	"go.uber.org/zap"
)

type fakeSettingsLoader struct {
	values settings.Values
	err    error
}

func (f *fakeSettingsLoader) Load(context.Context) (settings.Values, error) {
	if f.err != nil {
		return settings.Values{}, f.err
	}
	return f.values, nil
}

type fakeEngine struct {
	result   *entity.SearchResult
	lastOpts search.Options
}

func (f *fakeEngine) FindAnswer(_ context.Context, _ string, opts search.Options) *entity.SearchResult {
	f.lastOpts = opts
	return f.result
}

type fakeGenerator struct {
	outcome    *entity.GenerationOutcome
	lastChunks []entity.ContextChunk
	lastCfg    generation.Config
	calls      int
}

func (f *fakeGenerator) Generate(_ context.Context, _ string, chunks []entity.ContextChunk, cfg generation.Config) *entity.GenerationOutcome {
	f.calls++
	f.lastChunks = chunks
	f.lastCfg = cfg
	return f.outcome
}

type fakeLogWriter struct {
	queryLogs  []entity.QueryLog
	answerLogs []entity.AnswerLog
	queryErr   error
	answerErr  error
	rows       []entity.AnswerLogExportRow
	listErr    error
}

func (f *fakeLogWriter) CreateQueryLog(_ context.Context, log entity.QueryLog) (*entity.QueryLog, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	log.ID = "query-1"
	f.queryLogs = append(f.queryLogs, log)
	return &log, nil
}

func (f *fakeLogWriter) CreateAnswerLog(_ context.Context, log entity.AnswerLog) (*entity.AnswerLog, error) {
	if f.answerErr != nil {
		return nil, f.answerErr
	}
	log.ID = "answer-1"
	f.answerLogs = append(f.answerLogs, log)
	return &log, nil
}

func (f *fakeLogWriter) ListAnswerLogs(context.Context, int) ([]entity.AnswerLogExportRow, error) {
	return f.rows, f.listErr
}

func foundResult() *entity.SearchResult {
	return &entity.SearchResult{
		Found:       true,
		FAQID:       "1",
		Question:    "Как оформить отпуск?",
		Answer:      "Через портал.",
		Confidence:  95,
		SearchLevel: entity.SearchLevelKeyword,
	}
}

func newTestUsecase(loader SettingsLoader, engine SearchEngine, gen AnswerGenerator, logs LogWriter) *AnswerUsecase {
	return NewUsecase(loader, engine, gen, logs, generation.Config{Model: "test-model"}, zap.NewNop())
}

func TestAskEmptyQuery(t *testing.T) {
	uc := newTestUsecase(&fakeSettingsLoader{}, &fakeEngine{}, &fakeGenerator{}, &fakeLogWriter{})

	if _, err := uc.Ask(context.Background(), &entity.AskRequest{Query: "  "}); !errors.Is(err, entity.ErrEmptyQuery) {
		t.Errorf("err = %v, want ErrEmptyQuery", err)
	}
}

func TestAskSearchOnly(t *testing.T) {
	engine := &fakeEngine{result: foundResult()}
	gen := &fakeGenerator{}
	logs := &fakeLogWriter{}
	uc := newTestUsecase(&fakeSettingsLoader{values: settings.Values{}}, engine, gen, logs)

	resp, err := uc.Ask(context.Background(), &entity.AskRequest{Query: "как оформить отпуск", UserID: "42"})
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}

	if gen.calls != 0 {
		t.Errorf("generator called %d times with RAG disabled, want 0", gen.calls)
	}
	if resp.Generation != nil {
		t.Error("Generation should be nil with RAG disabled")
	}
	if resp.Result.FAQID != "1" {
		t.Errorf("Result.FAQID = %s", resp.Result.FAQID)
	}
	if !engine.lastOpts.Disambiguate {
		t.Error("disambiguation should stay enabled with RAG disabled")
	}

	if len(logs.queryLogs) != 1 || len(logs.answerLogs) != 1 {
		t.Fatalf("logs: %d query, %d answer, want 1 each", len(logs.queryLogs), len(logs.answerLogs))
	}
	if logs.answerLogs[0].AnswerShown != "Через портал." {
		t.Errorf("AnswerShown = %q, want raw search answer", logs.answerLogs[0].AnswerShown)
	}
	if logs.answerLogs[0].Generated {
		t.Error("Generated flag should be false without generation")
	}
}

func TestAskWithGeneration(t *testing.T) {
	engine := &fakeEngine{result: foundResult()}
	gen := &fakeGenerator{outcome: &entity.GenerationOutcome{
		Text:  "Сгенерированный ответ.",
		Model: "test-model",
		Kind:  entity.AnswerNormal,
	}}
	logs := &fakeLogWriter{}
	uc := newTestUsecase(
		&fakeSettingsLoader{values: settings.Values{settings.KeyRAGEnabled: "true"}},
		engine, gen, logs,
	)

	resp, err := uc.Ask(context.Background(), &entity.AskRequest{Query: "как оформить отпуск"})
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}

	if gen.calls != 1 {
		t.Fatalf("generator called %d times, want 1", gen.calls)
	}
	if engine.lastOpts.Disambiguate {
		t.Error("disambiguation must be folded into context when RAG is enabled")
	}
	if len(gen.lastChunks) != 1 {
		t.Errorf("len(chunks) = %d, want 1", len(gen.lastChunks))
	}
	if gen.lastCfg.Model != "test-model" {
		t.Errorf("cfg.Model = %q, want environment model", gen.lastCfg.Model)
	}
	if resp.Generation == nil || resp.Generation.Text != "Сгенерированный ответ." {
		t.Fatalf("Generation = %+v", resp.Generation)
	}
	if logs.answerLogs[0].AnswerShown != "Сгенерированный ответ." {
		t.Errorf("AnswerShown = %q, want generated text", logs.answerLogs[0].AnswerShown)
	}
	if !logs.answerLogs[0].Generated {
		t.Error("Generated flag should be true")
	}
}

func TestAskGenerationFailureDegradesToSearchAnswer(t *testing.T) {
	engine := &fakeEngine{result: foundResult()}
	gen := &fakeGenerator{outcome: &entity.GenerationOutcome{
		Kind:  entity.AnswerNoInfo,
		Error: "bad gateway",
	}}
	logs := &fakeLogWriter{}
	uc := newTestUsecase(
		&fakeSettingsLoader{values: settings.Values{settings.KeyRAGEnabled: "true"}},
		engine, gen, logs,
	)

	resp, err := uc.Ask(context.Background(), &entity.AskRequest{Query: "как оформить отпуск"})
	if err != nil {
		t.Fatalf("Ask() should not fail on generation errors: %v", err)
	}

	if resp.Result.Answer != "Через портал." {
		t.Errorf("search answer lost: %+v", resp.Result)
	}
	if logs.answerLogs[0].AnswerShown != "Через портал." {
		t.Errorf("AnswerShown = %q, want raw search answer on degradation", logs.answerLogs[0].AnswerShown)
	}
	if logs.answerLogs[0].Generated {
		t.Error("Generated flag should be false for a failed generation")
	}
}

func TestAskSettingsOutageUsesDefaults(t *testing.T) {
	engine := &fakeEngine{result: foundResult()}
	uc := newTestUsecase(
		&fakeSettingsLoader{err: errors.New("db down")},
		engine, &fakeGenerator{}, &fakeLogWriter{},
	)

	if _, err := uc.Ask(context.Background(), &entity.AskRequest{Query: "вопрос"}); err != nil {
		t.Fatalf("Ask() error: %v", err)
	}

	if engine.lastOpts.SemanticThreshold != search.DefaultSemanticThreshold {
		t.Errorf("SemanticThreshold = %v, want default on settings outage", engine.lastOpts.SemanticThreshold)
	}
}

func TestAskLogFailureDoesNotFailRequest(t *testing.T) {
	engine := &fakeEngine{result: foundResult()}
	logs := &fakeLogWriter{queryErr: errors.New("db down")}
	uc := newTestUsecase(&fakeSettingsLoader{}, engine, &fakeGenerator{}, logs)

	resp, err := uc.Ask(context.Background(), &entity.AskRequest{Query: "вопрос"})
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if resp.Result.FAQID != "1" {
		t.Errorf("Result lost on log failure: %+v", resp.Result)
	}
}

func TestAskFallbackAnswerLogged(t *testing.T) {
	engine := &fakeEngine{result: &entity.SearchResult{
		Found:           false,
		SearchLevel:     entity.SearchLevelNone,
		FallbackMessage: "нет ответа",
	}}
	logs := &fakeLogWriter{}
	uc := newTestUsecase(&fakeSettingsLoader{}, engine, &fakeGenerator{}, logs)

	if _, err := uc.Ask(context.Background(), &entity.AskRequest{Query: "вопрос"}); err != nil {
		t.Fatalf("Ask() error: %v", err)
	}

	if logs.answerLogs[0].AnswerShown != "нет ответа" {
		t.Errorf("AnswerShown = %q, want fallback message", logs.answerLogs[0].AnswerShown)
	}
	if logs.answerLogs[0].FAQID != "" {
		t.Errorf("FAQID = %q, want empty for a miss", logs.answerLogs[0].FAQID)
	}
}

func TestExportLogs(t *testing.T) {
	logs := &fakeLogWriter{rows: []entity.AnswerLogExportRow{{QueryText: "q", AnswerShown: "a"}}}
	uc := newTestUsecase(&fakeSettingsLoader{}, &fakeEngine{}, &fakeGenerator{}, logs)

	rows, err := uc.ExportLogs(context.Background())
	if err != nil {
		t.Fatalf("ExportLogs() error: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("len(rows) = %d, want 1", len(rows))
	}
}

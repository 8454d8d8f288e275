package ask

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/pkg/export"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// maxQueryLength bounds incoming questions; anything longer is noise.
const maxQueryLength = 2000

type Handler struct {
	usecase  AnswerUsecase
	exporter *export.Factory
}

func NewHandler(usecase AnswerUsecase, exporter *export.Factory) *Handler {
	return &Handler{
		usecase:  usecase,
		exporter: exporter,
	}
}

// Ask handles POST /api/v1/ask
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Ask")

	var req entity.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if len(req.Query) > maxQueryLength {
		h.respondError(ctx, w, http.StatusBadRequest, "query too long", nil)
		return
	}

	ctxzap.Info(ctx, "handling question",
		zap.String("user_id", req.UserID),
		zap.Int("query_length", len(req.Query)),
	)

	resp, err := h.usecase.Ask(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// ExportLogs handles GET /api/v1/logs/export?format=csv|pdf|xlsx
func (h *Handler) ExportLogs(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportLogs")

	format := entity.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.FormatCSV
	}

	exporter, err := h.exporter.Create(format)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "unsupported export format", err)
		return
	}

	rows, err := h.usecase.ExportLogs(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	data, err := exporter.Export(rows)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "export failed", err)
		return
	}

	filename := fmt.Sprintf("answer_logs_%s%s", time.Now().Format("2006-01-02"), exporter.FileExtension())

	ctxzap.Info(ctx, "answer logs exported",
		zap.String("format", string(format)),
		zap.Int("rows", len(rows)),
		zap.Int("bytes", len(data)),
	)

	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Error(ctx, message)
	}
	h.respondJSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrEmptyQuery) {
		h.respondError(ctx, w, http.StatusBadRequest, "query must not be empty", err)
	} else if errors.Is(err, entity.ErrUnsupportedFormat) {
		h.respondError(ctx, w, http.StatusBadRequest, "unsupported export format", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}

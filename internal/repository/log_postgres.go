package repository

import (
	"context"
	"fmt"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LogRepository defines the interface for query/answer log persistence
type LogRepository interface {
	CreateQueryLog(ctx context.Context, log entity.QueryLog) (*entity.QueryLog, error)
	CreateAnswerLog(ctx context.Context, log entity.AnswerLog) (*entity.AnswerLog, error)
	ListAnswerLogs(ctx context.Context, limit int) ([]entity.AnswerLogExportRow, error)
}

var _ LogRepository = &LogPostgres{}

// LogPostgres implements LogRepository using PostgreSQL
type LogPostgres struct {
	db *pgxpool.Pool
}

func NewLogPostgres(db *pgxpool.Pool) *LogPostgres {
	return &LogPostgres{db: db}
}

func (r *LogPostgres) CreateQueryLog(ctx context.Context, log entity.QueryLog) (*entity.QueryLog, error) {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO query_logs (id, user_id, query_text, platform)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		log.ID, log.UserID, log.QueryText, log.Platform,
	)
	if err := row.Scan(&log.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert query log: %w", err)
	}

	return &log, nil
}

func (r *LogPostgres) CreateAnswerLog(ctx context.Context, log entity.AnswerLog) (*entity.AnswerLog, error) {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO answer_logs (id, query_log_id, faq_id, answer_shown, confidence, search_level, generated)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
		 RETURNING created_at`,
		log.ID, log.QueryLogID, log.FAQID, log.AnswerShown, log.Confidence, string(log.SearchLevel), log.Generated,
	)
	if err := row.Scan(&log.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert answer log: %w", err)
	}

	return &log, nil
}

func (r *LogPostgres) ListAnswerLogs(ctx context.Context, limit int) ([]entity.AnswerLogExportRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.created_at, q.user_id, q.query_text, a.answer_shown,
		        COALESCE(a.faq_id, ''), a.confidence, a.search_level, a.generated
		 FROM answer_logs a
		 JOIN query_logs q ON q.id = a.query_log_id
		 ORDER BY a.created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query answer logs: %w", err)
	}
	defer rows.Close()

	var result []entity.AnswerLogExportRow
	for rows.Next() {
		var r entity.AnswerLogExportRow
		var level string
		if err := rows.Scan(
			&r.CreatedAt, &r.UserID, &r.QueryText, &r.AnswerShown,
			&r.FAQID, &r.Confidence, &level, &r.Generated,
		); err != nil {
			return nil, fmt.Errorf("scan answer log: %w", err)
		}
		r.SearchLevel = entity.SearchLevel(level)
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer logs: %w", err)
	}

	return result, nil
}

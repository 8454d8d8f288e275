package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FAQRepository defines the interface for knowledge-base access.
// The answer pipeline only reads; content management happens elsewhere.
type FAQRepository interface {
	GetAll(ctx context.Context) ([]*entity.FAQEntry, error)
	GetByID(ctx context.Context, id string) (*entity.FAQEntry, error)
	GetByCategory(ctx context.Context, category string) ([]*entity.FAQEntry, error)
}

var _ FAQRepository = &FAQPostgres{}

// FAQPostgres implements FAQRepository using PostgreSQL
type FAQPostgres struct {
	db *pgxpool.Pool
}

func NewFAQPostgres(db *pgxpool.Pool) *FAQPostgres {
	return &FAQPostgres{db: db}
}

func (r *FAQPostgres) GetAll(ctx context.Context) ([]*entity.FAQEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, category, question, answer, keywords FROM faq ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query faq entries: %w", err)
	}
	defer rows.Close()

	return scanFAQEntries(rows)
}

func (r *FAQPostgres) GetByID(ctx context.Context, id string) (*entity.FAQEntry, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, category, question, answer, keywords FROM faq WHERE id = $1`,
		id,
	)

	entry, err := scanFAQEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrFAQNotFound
		}
		return nil, fmt.Errorf("query faq entry: %w", err)
	}

	return entry, nil
}

func (r *FAQPostgres) GetByCategory(ctx context.Context, category string) ([]*entity.FAQEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, category, question, answer, keywords FROM faq WHERE category = $1 ORDER BY id`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("query faq entries by category: %w", err)
	}
	defer rows.Close()

	return scanFAQEntries(rows)
}

func scanFAQEntries(rows pgx.Rows) ([]*entity.FAQEntry, error) {
	var entries []*entity.FAQEntry
	for rows.Next() {
		entry, err := scanFAQEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan faq entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate faq entries: %w", err)
	}
	return entries, nil
}

func scanFAQEntry(row pgx.Row) (*entity.FAQEntry, error) {
	var entry entity.FAQEntry
	var keywords string

	if err := row.Scan(&entry.ID, &entry.Category, &entry.Question, &entry.Answer, &keywords); err != nil {
		return nil, err
	}

	entry.Keywords = splitKeywords(keywords)
	return &entry, nil
}

// splitKeywords parses the comma-separated keywords column, dropping empty
// items left by trailing commas.
func splitKeywords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

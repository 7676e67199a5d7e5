package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taperedworks/enquiry-tracker/internal/common"
	"github.com/taperedworks/enquiry-tracker/internal/params"
)

// EnquiryRecord is one resolved classification: what was asked, how it was classified,
// and the parameters that came out.
type EnquiryRecord struct {
	ID            uuid.UUID  `json:"id"`
	ProjectName   string     `json:"project_name"`
	EnquiryType   string     `json:"enquiry_type"`
	MatchedItemID string     `json:"matched_item_id,omitempty"`
	Similarity    float64    `json:"similarity,omitempty"`
	Params        params.Set `json:"params"`
	CreatedAt     time.Time  `json:"created_at"`
}

// HistoryRepository records and lists processed enquiries.
type HistoryRepository interface {
	Record(ctx context.Context, rec *EnquiryRecord) error
	List(ctx context.Context, limit int) ([]EnquiryRecord, error)
}

type historyRepository struct {
	store *Store
}

// NewHistoryRepository builds the SQL-backed history repository.
func NewHistoryRepository(store *Store) HistoryRepository {
	return &historyRepository{store: store}
}

// Record inserts one enquiry outcome. A zero ID or CreatedAt is filled in.
func (r *historyRepository) Record(ctx context.Context, rec *EnquiryRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	paramsJSON, err := json.Marshal(rec.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO enquiry_history
		(id, project_name, enquiry_type, matched_item_id, similarity, params_json, created_at)
		VALUES (%s, %s, %s, %s, %s, %s, %s)`,
		r.store.placeholder(1), r.store.placeholder(2), r.store.placeholder(3),
		r.store.placeholder(4), r.store.placeholder(5), r.store.placeholder(6), r.store.placeholder(7))

	_, err = r.store.DB.ExecContext(ctx, query,
		rec.ID.String(),
		rec.ProjectName,
		rec.EnquiryType,
		rec.MatchedItemID,
		rec.Similarity,
		string(paramsJSON),
		rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("%w: insert enquiry: %v", common.ErrDatabase, err)
	}
	return nil
}

// List returns the most recent records, newest first.
func (r *historyRepository) List(ctx context.Context, limit int) ([]EnquiryRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`SELECT id, project_name, enquiry_type, matched_item_id, similarity, params_json, created_at
		FROM enquiry_history ORDER BY created_at DESC LIMIT %s`, r.store.placeholder(1))

	rows, err := r.store.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list enquiries: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	var out []EnquiryRecord
	for rows.Next() {
		var (
			rec        EnquiryRecord
			id         string
			paramsJSON string
			createdAt  string
		)
		if err := rows.Scan(&id, &rec.ProjectName, &rec.EnquiryType, &rec.MatchedItemID,
			&rec.Similarity, &paramsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: scan enquiry: %v", common.ErrDatabase, err)
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("%w: parse id: %v", common.ErrDatabase, err)
		}
		if err := json.Unmarshal([]byte(paramsJSON), &rec.Params); err != nil {
			return nil, fmt.Errorf("%w: unmarshal params: %v", common.ErrDatabase, err)
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("%w: parse created_at: %v", common.ErrDatabase, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

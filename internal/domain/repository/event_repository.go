package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"contesthub/internal/common"
	"contesthub/internal/domain/model"
)

type EventRepository interface {
	Insert(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string) error
}

// pgEventRepository stores each event as a JSONB document alongside a few
// indexed columns. The variant payloads (quiz vs contest) live entirely in
// the document, so the table needs no union of optional columns.
type pgEventRepository struct {
	db *sql.DB
}

func NewPgEventRepository(db *sql.DB) EventRepository {
	return &pgEventRepository{db: db}
}

func (r *pgEventRepository) Insert(ctx context.Context, event *model.Event) error {
	doc, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("pgEventRepository.Insert: marshal: %w", err)
	}
	query := `INSERT INTO events (id, event_type, status, created_by, created_at, updated_at, doc)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.db.ExecContext(ctx, query,
		event.ID, string(event.EventType), string(event.Status),
		event.CreatedBy, event.CreatedAt, event.UpdatedAt, doc,
	)
	if err != nil {
		return fmt.Errorf("pgEventRepository.Insert: %w", err)
	}
	return nil
}

func (r *pgEventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM events WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgEventRepository.FindByID: %w", err)
	}
	event := &model.Event{}
	if err := json.Unmarshal(doc, event); err != nil {
		return nil, fmt.Errorf("pgEventRepository.FindByID: unmarshal: %w", err)
	}
	return event, nil
}

func (r *pgEventRepository) List(ctx context.Context) ([]*model.Event, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT doc FROM events ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("pgEventRepository.List: %w", err)
	}
	defer rows.Close()

	var events []*model.Event
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("pgEventRepository.List: scan: %w", err)
		}
		event := &model.Event{}
		if err := json.Unmarshal(doc, event); err != nil {
			return nil, fmt.Errorf("pgEventRepository.List: unmarshal: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgEventRepository.List: %w", err)
	}
	return events, nil
}

func (r *pgEventRepository) Update(ctx context.Context, event *model.Event) error {
	doc, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("pgEventRepository.Update: marshal: %w", err)
	}
	query := `UPDATE events SET status = $2, updated_at = $3, doc = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, event.ID, string(event.Status), event.UpdatedAt, doc)
	if err != nil {
		return fmt.Errorf("pgEventRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgEventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgEventRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

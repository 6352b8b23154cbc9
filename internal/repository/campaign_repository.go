package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	// Save stores the messages verbatim under a new sequential id.
	Save(ctx context.Context, name string, messages []model.ScheduledMessage) (string, error)
	GetByID(ctx context.Context, id string) (*model.Campaign, error)
	// ListCampaigns returns newest first plus the total count.
	ListCampaigns(ctx context.Context, offset, limit int) ([]model.CampaignSummary, int, error)
}

// ====================== In-memory ======================

type CampaignStore struct {
	Now func() time.Time

	mu        sync.RWMutex
	seq       int64
	campaigns map[string]*model.Campaign
	order     []string
}

func NewCampaignStore(now func() time.Time) *CampaignStore {
	if now == nil {
		now = time.Now
	}
	return &CampaignStore{Now: now, campaigns: make(map[string]*model.Campaign)}
}

func (s *CampaignStore) Save(ctx context.Context, name string, messages []model.ScheduledMessage) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id := FormatCampaignID(s.seq)
	s.campaigns[id] = &model.Campaign{
		ID:        id,
		Name:      name,
		CreatedAt: s.Now().UTC(),
		Messages:  append([]model.ScheduledMessage(nil), messages...),
	}
	s.order = append(s.order, id)
	return id, nil
}

func (s *CampaignStore) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.campaigns[id]
	if !ok {
		return nil, appErrors.NewCampaignNotFound(id)
	}
	cp := *c
	cp.Messages = append([]model.ScheduledMessage(nil), c.Messages...)
	return &cp, nil
}

func (s *CampaignStore) ListCampaigns(ctx context.Context, offset, limit int) ([]model.CampaignSummary, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.order)
	summaries := []model.CampaignSummary{}
	for i := total - 1 - offset; i >= 0 && len(summaries) < limit; i-- {
		c := s.campaigns[s.order[i]]
		summaries = append(summaries, model.CampaignSummary{
			ID:           c.ID,
			Name:         c.Name,
			CreatedAt:    c.CreatedAt,
			MessageCount: len(c.Messages),
		})
	}
	return summaries, total, nil
}

// ====================== Postgres ======================

type CampaignRepository struct {
	DB  *sql.DB
	Now func() time.Time
}

func (r *CampaignRepository) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *CampaignRepository) Save(ctx context.Context, name string, messages []model.ScheduledMessage) (string, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var seq int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO campaigns (name, created_at) VALUES ($1, $2) RETURNING seq`,
		name, r.now().UTC(),
	).Scan(&seq)
	if err != nil {
		return "", fmt.Errorf("insert campaign: %w", err)
	}

	if len(messages) > 0 {
		stmt, err := tx.PrepareContext(ctx, pq.CopyIn("campaign_messages",
			"campaign_seq", "position", "contact_id", "send_at", "body"))
		if err != nil {
			return "", fmt.Errorf("prepare message copy: %w", err)
		}
		for i, m := range messages {
			if _, err := stmt.ExecContext(ctx, seq, i, m.ContactID, m.SendAt, m.Body); err != nil {
				stmt.Close()
				return "", fmt.Errorf("copy message %d: %w", i, err)
			}
		}
		if _, err := stmt.ExecContext(ctx); err != nil {
			stmt.Close()
			return "", fmt.Errorf("flush message copy: %w", err)
		}
		if err := stmt.Close(); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return FormatCampaignID(seq), nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	seq, ok := ParseCampaignID(id)
	if !ok {
		return nil, appErrors.NewCampaignNotFound(id)
	}

	c := model.Campaign{ID: id}
	err := r.DB.QueryRowContext(ctx,
		`SELECT name, created_at FROM campaigns WHERE seq = $1`, seq,
	).Scan(&c.Name, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, `
        SELECT contact_id, send_at, body
        FROM campaign_messages
        WHERE campaign_seq = $1
        ORDER BY position
    `, seq)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m model.ScheduledMessage
		if err := rows.Scan(&m.ContactID, &m.SendAt, &m.Body); err != nil {
			return nil, err
		}
		c.Messages = append(c.Messages, m)
	}
	return &c, rows.Err()
}

// ListCampaigns reads the page and the total in one snapshot so they agree
// under concurrent saves.
func (r *CampaignRepository) ListCampaigns(ctx context.Context, offset, limit int) ([]model.CampaignSummary, int, error) {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	var total int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM campaigns`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := tx.QueryContext(ctx, `
        SELECT c.seq, c.name, c.created_at, COUNT(m.position)
        FROM campaigns c
        LEFT JOIN campaign_messages m ON m.campaign_seq = c.seq
        GROUP BY c.seq, c.name, c.created_at
        ORDER BY c.seq DESC
        LIMIT $1 OFFSET $2
    `, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	summaries := []model.CampaignSummary{}
	for rows.Next() {
		var (
			seq int64
			s   model.CampaignSummary
		)
		if err := rows.Scan(&seq, &s.Name, &s.CreatedAt, &s.MessageCount); err != nil {
			return nil, 0, err
		}
		s.ID = FormatCampaignID(seq)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	rows.Close()

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

var (
	_ CampaignRepositoryInterface = (*CampaignStore)(nil)
	_ CampaignRepositoryInterface = (*CampaignRepository)(nil)
)

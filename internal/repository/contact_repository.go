package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/lib/pq"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/model"
)

// ContactRepositoryInterface is the contact directory used by the services.
type ContactRepositoryInterface interface {
	ListAll(ctx context.Context) ([]model.Contact, error)
	GetByID(ctx context.Context, id string) (*model.Contact, error)
	// GetByIDs resolves ids in request order against one snapshot of the
	// directory. missing holds each absent id once.
	GetByIDs(ctx context.Context, ids []string) (found []model.Contact, missing []string, err error)
	Upsert(ctx context.Context, contacts []model.Contact) error
}

// ====================== In-memory ======================

type ContactDirectory struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]model.Contact
}

func NewContactDirectory() *ContactDirectory {
	return &ContactDirectory{byID: make(map[string]model.Contact)}
}

func (d *ContactDirectory) ListAll(ctx context.Context) ([]model.Contact, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	contacts := make([]model.Contact, 0, len(d.order))
	for _, id := range d.order {
		contacts = append(contacts, d.byID[id])
	}
	return contacts, nil
}

func (d *ContactDirectory) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c, ok := d.byID[id]
	if !ok {
		return nil, appErrors.NewContactNotFound(id)
	}
	return &c, nil
}

func (d *ContactDirectory) GetByIDs(ctx context.Context, ids []string) ([]model.Contact, []string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return resolveInOrder(ids, func(id string) (model.Contact, bool) {
		c, ok := d.byID[id]
		return c, ok
	}), missingIDs(ids, func(id string) bool {
		_, ok := d.byID[id]
		return ok
	}), nil
}

func (d *ContactDirectory) Upsert(ctx context.Context, contacts []model.Contact) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, c := range contacts {
		if _, ok := d.byID[c.ID]; !ok {
			d.order = append(d.order, c.ID)
		}
		d.byID[c.ID] = c
	}
	return nil
}

func resolveInOrder(ids []string, lookup func(string) (model.Contact, bool)) []model.Contact {
	found := make([]model.Contact, 0, len(ids))
	for _, id := range ids {
		if c, ok := lookup(id); ok {
			found = append(found, c)
		}
	}
	return found
}

func missingIDs(ids []string, exists func(string) bool) []string {
	var missing []string
	seen := map[string]bool{}
	for _, id := range ids {
		if exists(id) || seen[id] {
			continue
		}
		seen[id] = true
		missing = append(missing, id)
	}
	return missing
}

// ====================== Postgres ======================

type ContactRepository struct {
	DB *sql.DB
}

const contactColumns = `id, first_name, last_name, headline, company, industry, location`

func (r *ContactRepository) ListAll(ctx context.Context) ([]model.Contact, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
	c, err := scanContact(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewContactNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Contact, []string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	byID := map[string]model.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, nil, err
		}
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	found := resolveInOrder(ids, func(id string) (model.Contact, bool) {
		c, ok := byID[id]
		return c, ok
	})
	missing := missingIDs(ids, func(id string) bool {
		_, ok := byID[id]
		return ok
	})
	return found, missing, nil
}

func (r *ContactRepository) Upsert(ctx context.Context, contacts []model.Contact) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO contacts (id, first_name, last_name, headline, company, industry, location, synced_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
        ON CONFLICT (id) DO UPDATE SET
            first_name = EXCLUDED.first_name,
            last_name  = EXCLUDED.last_name,
            headline   = EXCLUDED.headline,
            company    = EXCLUDED.company,
            industry   = EXCLUDED.industry,
            location   = EXCLUDED.location,
            synced_at  = NOW()
    `
	for _, c := range contacts {
		_, err := tx.ExecContext(ctx, query, c.ID, c.FirstName, c.LastName,
			nullString(c.Headline), nullString(c.Company), nullString(c.Industry), nullString(c.Location))
		if err != nil {
			return fmt.Errorf("upsert contact %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (model.Contact, error) {
	var c model.Contact
	var headline, company, industry, location sql.NullString
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &headline, &company, &industry, &location); err != nil {
		return model.Contact{}, err
	}
	c.Headline = headline.String
	c.Company = company.String
	c.Industry = industry.String
	c.Location = location.String
	return c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var (
	_ ContactRepositoryInterface = (*ContactDirectory)(nil)
	_ ContactRepositoryInterface = (*ContactRepository)(nil)
)

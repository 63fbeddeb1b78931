package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Simplici0/homecost/internal/estimate"
	"github.com/Simplici0/homecost/internal/money"
	"github.com/Simplici0/homecost/internal/snapshot"
)

// Lead is a captured prospect with the estimate they requested.
type Lead struct {
	ID              int64                    `json:"id"`
	Name            string                   `json:"name"`
	Email           string                   `json:"email"`
	Phone           string                   `json:"phone,omitempty"`
	Notes           string                   `json:"notes,omitempty"`
	Input           estimate.WholeHouseInput `json:"input"`
	SnapshotVersion int                      `json:"snapshotVersion"`
	Total           money.Range              `json:"total"`
	CreatedAt       string                   `json:"createdAt"`
}

// LeadStore persists leads.
type LeadStore struct {
	db *sql.DB
}

// NewLeadStore returns a LeadStore backed by db.
func NewLeadStore(db *sql.DB) *LeadStore {
	return &LeadStore{db: db}
}

// Create validates and stores a lead, embedding a current-version snapshot of its input.
func (s *LeadStore) Create(ctx context.Context, lead Lead) (Lead, error) {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Email = strings.TrimSpace(lead.Email)
	if lead.Name == "" {
		return Lead{}, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if _, err := mail.ParseAddress(lead.Email); err != nil {
		return Lead{}, fmt.Errorf("%w: email %q", ErrInvalid, lead.Email)
	}

	data, err := snapshot.Encode(lead.Input)
	if err != nil {
		return Lead{}, err
	}

	lead.SnapshotVersion = snapshot.CurrentVersion
	lead.CreatedAt = timestamp()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO leads (name, email, phone, notes, input_snapshot, total_low, total_high, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, lead.Name, lead.Email, lead.Phone, lead.Notes, string(data),
		lead.Total.Low.String(), lead.Total.High.String(), lead.CreatedAt)
	if err != nil {
		return Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	if lead.ID, err = res.LastInsertId(); err != nil {
		return Lead{}, fmt.Errorf("read lead id: %w", err)
	}
	return lead, nil
}

// Get loads a lead and decodes its snapshot, whatever version it was written under.
func (s *LeadStore) Get(ctx context.Context, id int64) (Lead, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), COALESCE(notes, ''), input_snapshot, total_low, total_high, created_at
		FROM leads
		WHERE id = ?
	`, id)
	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Lead{}, fmt.Errorf("lead %d: %w", id, ErrNotFound)
	}
	return lead, err
}

// List returns leads newest first, optionally filtered by a name, email or
// notes substring.
func (s *LeadStore) List(ctx context.Context, query string) ([]Lead, error) {
	query = strings.TrimSpace(query)
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), COALESCE(notes, ''), input_snapshot, total_low, total_high, created_at
		FROM leads
		WHERE (? = '' OR name LIKE ? OR email LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search, search)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (Lead, error) {
	var (
		lead          Lead
		data          string
		lowRaw, hiRaw string
	)
	if err := row.Scan(&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Notes,
		&data, &lowRaw, &hiRaw, &lead.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Lead{}, err
		}
		return Lead{}, fmt.Errorf("scan lead: %w", err)
	}

	var err error
	if lead.Input, lead.SnapshotVersion, err = snapshot.Decode([]byte(data)); err != nil {
		return Lead{}, fmt.Errorf("lead %d: %w", lead.ID, err)
	}
	if lead.Total, err = parseRange(lowRaw, hiRaw); err != nil {
		return Lead{}, fmt.Errorf("lead %d: %w", lead.ID, err)
	}
	return lead, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/homecost/internal/estimate"
	"github.com/Simplici0/homecost/internal/money"
	"github.com/Simplici0/homecost/internal/snapshot"
)

// Share is a saved estimate that can be retrieved by its opaque id.
type Share struct {
	ID        string                   `json:"id"`
	Input     estimate.WholeHouseInput `json:"input"`
	Total     money.Range              `json:"total"`
	CreatedAt string                   `json:"createdAt"`
}

// ShareStore persists shared estimates.
type ShareStore struct {
	db *sql.DB
}

// NewShareStore returns a ShareStore backed by db.
func NewShareStore(db *sql.DB) *ShareStore {
	return &ShareStore{db: db}
}

// Save stores in with its totals under a new random id.
func (s *ShareStore) Save(ctx context.Context, in estimate.WholeHouseInput, total money.Range) (Share, error) {
	data, err := snapshot.Encode(in)
	if err != nil {
		return Share{}, err
	}

	share := Share{ID: uuid.NewString(), Input: in, Total: total, CreatedAt: timestamp()}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO shares (id, input_snapshot, total_low, total_high, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, share.ID, string(data), total.Low.String(), total.High.String(), share.CreatedAt)
	if err != nil {
		return Share{}, fmt.Errorf("insert share: %w", err)
	}
	return share, nil
}

// Get loads a share by id.
func (s *ShareStore) Get(ctx context.Context, id string) (Share, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Share{}, fmt.Errorf("share %q: %w", id, ErrNotFound)
	}

	var (
		share         Share
		data          string
		lowRaw, hiRaw string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, input_snapshot, total_low, total_high, created_at
		FROM shares
		WHERE id = ?
	`, id).Scan(&share.ID, &data, &lowRaw, &hiRaw, &share.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Share{}, fmt.Errorf("share %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return Share{}, fmt.Errorf("query share: %w", err)
	}

	if share.Input, _, err = snapshot.Decode([]byte(data)); err != nil {
		return Share{}, fmt.Errorf("share %q: %w", id, err)
	}
	if share.Total, err = parseRange(lowRaw, hiRaw); err != nil {
		return Share{}, fmt.Errorf("share %q: %w", id, err)
	}
	return share, nil
}

// Compare loads several shares in the order given.
func (s *ShareStore) Compare(ctx context.Context, ids []string) ([]Share, error) {
	out := make([]Share, 0, len(ids))
	for _, id := range ids {
		share, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, share)
	}
	return out, nil
}

func parseRange(low, high string) (money.Range, error) {
	l, err := decimal.NewFromString(low)
	if err != nil {
		return money.Range{}, fmt.Errorf("parse total low: %w", err)
	}
	h, err := decimal.NewFromString(high)
	if err != nil {
		return money.Range{}, fmt.Errorf("parse total high: %w", err)
	}
	return money.Range{Low: l, High: h}, nil
}

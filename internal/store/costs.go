package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/Simplici0/homecost/internal/pricing"
)

// CostStore holds the admin-editable overrides of the cost table.
type CostStore struct {
	db *sql.DB
}

// NewCostStore returns a CostStore backed by db.
func NewCostStore(db *sql.DB) *CostStore {
	return &CostStore{db: db}
}

// ListEntries returns all stored cost entries ordered by category and tier.
func (s *CostStore) ListEntries(ctx context.Context) ([]pricing.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, tier, unit, cost_low, cost_high
		FROM cost_entries
		ORDER BY category, tier
	`)
	if err != nil {
		return nil, fmt.Errorf("query cost entries: %w", err)
	}
	defer rows.Close()

	entries := make([]pricing.Entry, 0)
	for rows.Next() {
		var e pricing.Entry
		if err := rows.Scan(&e.Category, &e.Tier, &e.Unit, &e.CostLow, &e.CostHigh); err != nil {
			return nil, fmt.Errorf("scan cost entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cost entries: %w", err)
	}
	return entries, nil
}

// UpsertEntry inserts or replaces the entry for (category, tier). Every tier
// of a category must share one unit, so an entry whose unit differs from the
// category's other stored tiers is rejected.
func (s *CostStore) UpsertEntry(ctx context.Context, e pricing.Entry) error {
	switch {
	case e.Category == "" || e.Tier == "":
		return fmt.Errorf("%w: category and tier are required", ErrInvalid)
	case !e.Unit.Valid():
		return fmt.Errorf("%w: unknown unit %q", ErrInvalid, e.Unit)
	case !(e.CostLow >= 0) || !(e.CostLow <= e.CostHigh) || math.IsInf(e.CostHigh, 0):
		return fmt.Errorf("%w: cost range %.2f-%.2f", ErrInvalid, e.CostLow, e.CostHigh)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cost entry upsert: %w", err)
	}
	defer tx.Rollback()

	var other pricing.Unit
	err = tx.QueryRowContext(ctx, `
		SELECT unit FROM cost_entries
		WHERE category = ? AND tier <> ? AND unit <> ?
		LIMIT 1
	`, e.Category, e.Tier, e.Unit).Scan(&other)
	switch {
	case err == nil:
		return fmt.Errorf("%w: category %s is priced in %s, not %s", ErrInvalid, e.Category, other, e.Unit)
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("check unit for %s: %w", e.Category, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO cost_entries (category, tier, unit, cost_low, cost_high, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(category, tier) DO UPDATE SET
			unit = excluded.unit,
			cost_low = excluded.cost_low,
			cost_high = excluded.cost_high,
			updated_at = excluded.updated_at
	`, e.Category, e.Tier, e.Unit, e.CostLow, e.CostHigh, timestamp())
	if err != nil {
		return fmt.Errorf("upsert cost entry %s/%s: %w", e.Category, e.Tier, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cost entry %s/%s: %w", e.Category, e.Tier, err)
	}
	return nil
}

// GetRates returns the rate_config singleton.
func (s *CostStore) GetRates(ctx context.Context) (pricing.Surcharges, error) {
	var rc pricing.Surcharges
	err := s.db.QueryRowContext(ctx, `
		SELECT builder_fee_percent, sales_tax_percent, materials_share_percent, permit_percent, insurance_percent
		FROM rate_config
		WHERE id = 1
	`).Scan(
		&rc.BuilderFeePercent,
		&rc.SalesTaxPercent,
		&rc.MaterialsSharePercent,
		&rc.PermitPercent,
		&rc.InsurancePercent,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return pricing.Surcharges{}, fmt.Errorf("rate_config singleton: %w", ErrNotFound)
	}
	if err != nil {
		return pricing.Surcharges{}, fmt.Errorf("query rate_config: %w", err)
	}
	return rc, nil
}

// UpdateRates writes the rate_config singleton, creating it if needed.
func (s *CostStore) UpdateRates(ctx context.Context, rc pricing.Surcharges) error {
	for name, v := range map[string]float64{
		"builder fee":     rc.BuilderFeePercent,
		"sales tax":       rc.SalesTaxPercent,
		"materials share": rc.MaterialsSharePercent,
		"permits":         rc.PermitPercent,
		"insurance":       rc.InsurancePercent,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%w: %s must be between 0 and 100", ErrInvalid, name)
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rate_config (
			id,
			builder_fee_percent,
			sales_tax_percent,
			materials_share_percent,
			permit_percent,
			insurance_percent,
			updated_at
		) VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			builder_fee_percent = excluded.builder_fee_percent,
			sales_tax_percent = excluded.sales_tax_percent,
			materials_share_percent = excluded.materials_share_percent,
			permit_percent = excluded.permit_percent,
			insurance_percent = excluded.insurance_percent,
			updated_at = excluded.updated_at
	`,
		rc.BuilderFeePercent,
		rc.SalesTaxPercent,
		rc.MaterialsSharePercent,
		rc.PermitPercent,
		rc.InsurancePercent,
		timestamp(),
	)
	if err != nil {
		return fmt.Errorf("update rate_config: %w", err)
	}
	return nil
}

// ListLocations returns the stored location factors.
func (s *CostStore) ListLocations(ctx context.Context) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, factor FROM location_factors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query location factors: %w", err)
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var name string
		var factor float64
		if err := rows.Scan(&name, &factor); err != nil {
			return nil, fmt.Errorf("scan location factor: %w", err)
		}
		out[name] = factor
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate location factors: %w", err)
	}
	return out, nil
}

// UpsertLocation sets the factor for a location.
func (s *CostStore) UpsertLocation(ctx context.Context, name string, factor float64) error {
	if name == "" || factor <= 0 {
		return fmt.Errorf("%w: location %q factor %v", ErrInvalid, name, factor)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO location_factors (name, factor, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET factor = excluded.factor, updated_at = excluded.updated_at
	`, name, factor, timestamp())
	if err != nil {
		return fmt.Errorf("upsert location %s: %w", name, err)
	}
	return nil
}

// Document overlays the stored entries, rates and locations on base.
// Geometry, schedule and category defaults always come from base.
func (s *CostStore) Document(ctx context.Context, base pricing.Document) (pricing.Document, error) {
	doc := base.Clone()

	entries, err := s.ListEntries(ctx)
	if err != nil {
		return pricing.Document{}, err
	}
	for _, e := range entries {
		doc.SetEntry(e)
	}

	rates, err := s.GetRates(ctx)
	switch {
	case err == nil:
		doc.Surcharges = rates
	case !errors.Is(err, ErrNotFound):
		return pricing.Document{}, err
	}

	locations, err := s.ListLocations(ctx)
	if err != nil {
		return pricing.Document{}, err
	}
	for name, factor := range locations {
		doc.Locations[name] = factor
	}

	return doc, nil
}

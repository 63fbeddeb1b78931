package seed

import (
	"database/sql"
	"fmt"

	"github.com/Simplici0/homecost/internal/pricing"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run copies the cost entries, rates and location factors of doc into the
// database, leaving any existing rows untouched. It is idempotent.
func Run(db *sql.DB, doc pricing.Document) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureEntries(tx, doc.Entries, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureRateConfig(tx, doc.Surcharges, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureLocations(tx, doc.Locations, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func countInsert(res sql.Result, stats *Stats) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	stats.Inserts += int(n)
	return nil
}

func ensureEntries(tx *sql.Tx, entries []pricing.Entry, stats *Stats) error {
	stmt, err := tx.Prepare(`
		INSERT INTO cost_entries (category, tier, unit, cost_low, cost_high)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(category, tier) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("prepare cost entry insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		res, err := stmt.Exec(e.Category, e.Tier, e.Unit, e.CostLow, e.CostHigh)
		if err != nil {
			return fmt.Errorf("insert cost entry %s/%s: %w", e.Category, e.Tier, err)
		}
		if err := countInsert(res, stats); err != nil {
			return err
		}
	}
	return nil
}

func ensureRateConfig(tx *sql.Tx, s pricing.Surcharges, stats *Stats) error {
	res, err := tx.Exec(`
		INSERT INTO rate_config (
			id,
			builder_fee_percent,
			sales_tax_percent,
			materials_share_percent,
			permit_percent,
			insurance_percent
		)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, s.BuilderFeePercent, s.SalesTaxPercent, s.MaterialsSharePercent, s.PermitPercent, s.InsurancePercent)
	if err != nil {
		return fmt.Errorf("insert rate config singleton: %w", err)
	}
	return countInsert(res, stats)
}

func ensureLocations(tx *sql.Tx, locations map[string]float64, stats *Stats) error {
	for name, factor := range locations {
		res, err := tx.Exec(`
			INSERT INTO location_factors (name, factor)
			VALUES (?, ?)
			ON CONFLICT(name) DO NOTHING
		`, name, factor)
		if err != nil {
			return fmt.Errorf("insert location factor %s: %w", name, err)
		}
		if err := countInsert(res, stats); err != nil {
			return err
		}
	}
	return nil
}

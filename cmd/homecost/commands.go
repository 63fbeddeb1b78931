package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/homecost/internal/achievements"
	"github.com/Simplici0/homecost/internal/db"
	"github.com/Simplici0/homecost/internal/estimate"
	"github.com/Simplici0/homecost/internal/export"
	"github.com/Simplici0/homecost/internal/finance"
	"github.com/Simplici0/homecost/internal/migrations"
	"github.com/Simplici0/homecost/internal/pricing"
	"github.com/Simplici0/homecost/internal/rooms"
	"github.com/Simplici0/homecost/internal/schedule"
	"github.com/Simplici0/homecost/internal/seed"
	"github.com/Simplici0/homecost/internal/upsell"
)

func tableFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "table",
		Aliases: []string{"t"},
		Usage:   "Path to a YAML cost table (default: embedded table)",
		EnvVars: []string{"COST_TABLE_PATH"},
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "table",
		Usage:   "Output format (table, json)",
	}
}

func inputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Usage:    "Path to the YAML input file",
		Required: true,
	}
}

// ============================================================================
// ESTIMATE
// ============================================================================

func estimateCommand() *cli.Command {
	return &cli.Command{
		Name:  "estimate",
		Usage: "Estimate a whole house from a YAML description",
		Flags: []cli.Flag{
			inputFlag(),
			tableFlag(),
			formatFlag(),
			&cli.IntFlag{
				Name:    "upsells",
				Value:   upsell.DefaultLimit,
				Usage:   "Number of upgrade suggestions to show (0 disables)",
				EnvVars: []string{"UPSELL_LIMIT"},
			},
		},
		Action: runEstimate,
	}
}

type houseOutput struct {
	Estimate     *estimate.Result           `json:"estimate"`
	Schedule     schedule.Result            `json:"schedule"`
	Achievements []achievements.Achievement `json:"achievements"`
	Upsells      []upsell.Suggestion        `json:"upsells"`
}

func runEstimate(c *cli.Context) error {
	table, err := loadTable(c.String("table"))
	if err != nil {
		return err
	}
	var in estimate.WholeHouseInput
	if err := readYAML(c.String("input"), &in); err != nil {
		return err
	}

	out, err := estimateHouse(table, in, c.Int("upsells"))
	if err != nil {
		return err
	}

	switch c.String("format") {
	case "json":
		return writeJSON(c, out)
	case "table":
		printHouse(c.App.Writer, in, out)
		return nil
	default:
		return fmt.Errorf("unknown format %q", c.String("format"))
	}
}

func estimateHouse(table *pricing.Table, in estimate.WholeHouseInput, limit int) (houseOutput, error) {
	res, err := estimate.EstimateHouse(table, in)
	if err != nil {
		return houseOutput{}, err
	}
	sched, err := schedule.Estimate(table, in)
	if err != nil {
		return houseOutput{}, err
	}
	out := houseOutput{
		Estimate:     res,
		Schedule:     sched,
		Achievements: achievements.Evaluate(in, res),
	}
	if limit > 0 {
		var warnings []estimate.Warning
		out.Upsells, warnings = upsell.Suggest(table, in, res, limit)
		for _, w := range warnings {
			log.Warn().Str("code", string(w.Code)).Str("subject", w.Subject).Msg(w.Message)
		}
	}
	return out, nil
}

// ============================================================================
// ROOMS
// ============================================================================

// roomsFile is the YAML shape read by the rooms command.
type roomsFile struct {
	TotalSqft float64                  `yaml:"total_sqft"`
	Rooms     []estimate.RoomSelection `yaml:"rooms"`
}

func roomsCommand() *cli.Command {
	return &cli.Command{
		Name:   "rooms",
		Usage:  "Estimate interior finishes room by room",
		Flags:  []cli.Flag{inputFlag(), tableFlag(), formatFlag()},
		Action: runRooms,
	}
}

func runRooms(c *cli.Context) error {
	table, err := loadTable(c.String("table"))
	if err != nil {
		return err
	}
	var in roomsFile
	if err := readYAML(c.String("input"), &in); err != nil {
		return err
	}

	res, err := estimate.EstimateRooms(table, in.TotalSqft, in.Rooms, rooms.Default())
	if err != nil {
		return err
	}
	switch c.String("format") {
	case "json":
		return writeJSON(c, res)
	case "table":
		printRooms(c.App.Writer, res)
		return nil
	default:
		return fmt.Errorf("unknown format %q", c.String("format"))
	}
}

// ============================================================================
// FINANCE
// ============================================================================

func financeCommand() *cli.Command {
	return &cli.Command{
		Name:  "finance",
		Usage: "Compute a mortgage payment",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "price", Usage: "Home price", Required: true},
			&cli.Float64Flag{Name: "down", Value: 20, Usage: "Down payment percent"},
			&cli.Float64Flag{Name: "rate", Value: 7, Usage: "Annual interest rate percent"},
			&cli.IntFlag{Name: "years", Value: 30, Usage: "Loan term in years"},
			formatFlag(),
		},
		Action: func(c *cli.Context) error {
			fin, err := finance.Calculate(c.Float64("price"), c.Float64("down"), c.Float64("rate"), c.Int("years"))
			if err != nil {
				return err
			}
			if c.String("format") == "json" {
				return writeJSON(c, fin)
			}
			printFinancing(c.App.Writer, fin)
			return nil
		},
	}
}

// ============================================================================
// EXPORT
// ============================================================================

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write an estimate to an .xlsx or .pdf file",
		Flags: []cli.Flag{
			inputFlag(),
			tableFlag(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file (.xlsx or .pdf)", Required: true},
			&cli.StringFlag{Name: "title", Usage: "Document title"},
		},
		Action: runExport,
	}
}

func runExport(c *cli.Context) error {
	path := c.String("out")
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".pdf" {
		return fmt.Errorf("output %q must end in .xlsx or .pdf", path)
	}

	table, err := loadTable(c.String("table"))
	if err != nil {
		return err
	}
	var in estimate.WholeHouseInput
	if err := readYAML(c.String("input"), &in); err != nil {
		return err
	}
	out, err := estimateHouse(table, in, 0)
	if err != nil {
		return err
	}

	report := export.Report{
		Title:       c.String("title"),
		Input:       &in,
		Estimate:    out.Estimate,
		Schedule:    &out.Schedule,
		GeneratedAt: time.Now(),
	}
	var data []byte
	if ext == ".pdf" {
		data, err = export.PDF(report)
	} else {
		data, err = export.Excel(report)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Info().Str("path", path).Int("bytes", len(data)).Msg("export written")
	fmt.Fprintf(c.App.Writer, "wrote %s\n", path)
	return nil
}

// ============================================================================
// SEED
// ============================================================================

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Create the database schema and load the default cost table",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Value: "./dev.db", Usage: "SQLite database path", EnvVars: []string{"DB_PATH"}},
			tableFlag(),
		},
		Action: func(c *cli.Context) error {
			doc := pricing.DefaultDocument()
			if path := c.String("table"); path != "" {
				var err error
				if doc, err = pricing.LoadDocument(path); err != nil {
					return err
				}
			}

			database, err := db.Open(c.String("db"))
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			if err := migrations.Up(database); err != nil {
				return fmt.Errorf("run database migrations: %w", err)
			}
			stats, err := seed.Run(database, doc)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "seeded %s: %d rows inserted\n", c.String("db"), stats.Inserts)
			return nil
		},
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func loadTable(path string) (*pricing.Table, error) {
	if path == "" {
		return pricing.Default(), nil
	}
	return pricing.LoadFile(path)
}

func readYAML(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse input %s: %w", path, err)
	}
	return nil
}

func writeJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

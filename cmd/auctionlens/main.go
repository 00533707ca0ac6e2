// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/poiesic/auctionlens"
	"github.com/poiesic/auctionlens/auction"
	"github.com/poiesic/auctionlens/config"
	"github.com/poiesic/auctionlens/core"
	"github.com/poiesic/auctionlens/enrich"
	"github.com/poiesic/auctionlens/filter"
	"github.com/poiesic/auctionlens/groups"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	inputFlag := &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "Listings JSON file, - for stdin",
		Value:   "-",
	}

	return &cli.App{
		Name:  "auctionlens",
		Usage: "Match, filter and summarize vehicle auction listings",
		// Bucket labels such as "500 ~ 1,000만원" contain commas.
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored log output",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
				EnvVars: []string{"AUCTIONLENS_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Environment file loaded before configuration",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:    "taxonomy",
				Aliases: []string{"t"},
				Usage:   "Taxonomy file path or URL, overrides the configuration",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Resolve listing titles against the taxonomy",
				ArgsUsage: "[title...]",
				Action:    parseCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "debug",
						Usage: "Include intermediate matcher values",
					},
				},
			},
			{
				Name:   "filter",
				Usage:  "Filter and sort listings",
				Action: filterCommand,
				Flags: []cli.Flag{
					inputFlag,
					&cli.StringSliceFlag{Name: "brand", Usage: "Brand appearing in the title"},
					&cli.StringSliceFlag{Name: "model", Usage: "Model appearing in the title"},
					&cli.StringSliceFlag{Name: "submodel", Usage: "Submodel appearing in the title"},
					&cli.StringSliceFlag{Name: "fuel", Usage: "Fuel type"},
					&cli.StringSliceFlag{Name: "vehicle-type", Usage: "Vehicle usage type"},
					&cli.StringSliceFlag{Name: "km", Usage: "Mileage bucket label"},
					&cli.StringSliceFlag{Name: "price", Usage: "Price bucket label"},
					&cli.StringSliceFlag{Name: "auction", Usage: "Auction house name"},
					&cli.StringSliceFlag{Name: "region", Usage: "Region"},
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Free-text search"},
					&cli.Int64Flag{Name: "budget-min", Usage: "Minimum price in 만원"},
					&cli.Int64Flag{Name: "budget-max", Usage: "Maximum price in 만원, unbounded when unset"},
					&cli.IntFlag{Name: "year-min", Usage: "Earliest model year", Value: filter.DefaultYearMin},
					&cli.IntFlag{Name: "year-max", Usage: "Latest model year", Value: filter.DefaultYearMax},
					&cli.StringFlag{Name: "manufacturer-id", Usage: "Exact manufacturer identifier"},
					&cli.StringFlag{Name: "model-id", Usage: "Exact model identifier"},
					&cli.StringFlag{Name: "trim-id", Usage: "Exact trim identifier"},
					&cli.StringFlag{
						Name:  "last",
						Usage: "Ranged filter adjusted last (budget, year, price, km)",
					},
					&cli.BoolFlag{Name: "count", Usage: "Print only the number of matching rows"},
				},
			},
			{
				Name:   "stats",
				Usage:  "Summarize auction houses and groups in a listing set",
				Action: statsCommand,
				Flags:  []cli.Flag{inputFlag},
			},
			{
				Name:   "enrich",
				Usage:  "Attach taxonomy identifiers to listings",
				Action: enrichCommand,
				Flags: []cli.Flag{
					inputFlag,
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file, stdout when unset",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Usage: "Match cache directory, overrides the configuration",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent matchers, overrides the configuration",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N titles, 0 to disable",
						Value: 100,
					},
				},
			},
		},
	}
}

func setup(c *cli.Context) error {
	if err := godotenv.Load(c.String("env-file")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load environment file: %w", err)
	}
	return setupLogger(c)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(tint.NewHandler(c.App.ErrWriter, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    c.Bool("no-color"),
	}))
	slog.SetDefault(logger)

	return nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if source := c.String("taxonomy"); source != "" {
		cfg.Taxonomy.Source = source
	}
	return cfg, nil
}

func openEngine(cfg *config.Config) (*auctionlens.Engine, error) {
	engine, err := auctionlens.NewEngine(
		auctionlens.WithConfig(cfg),
		auctionlens.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return engine, nil
}

func readListings(c *cli.Context) ([]core.Listing, error) {
	path := c.String("input")

	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(c.App.Reader)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read listings: %w", err)
	}

	rows, err := core.DecodeListings(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}
	return rows, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type parseResult struct {
	Title string `json:"title"`
	core.Match
}

func parseCommand(c *cli.Context) error {
	titles := c.Args().Slice()
	if len(titles) == 0 {
		scanner := bufio.NewScanner(c.App.Reader)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				titles = append(titles, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read titles: %w", err)
		}
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	engine, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	m, err := engine.Matcher(c.Context)
	if err != nil {
		return fmt.Errorf("failed to build matcher: %w", err)
	}

	if c.Bool("debug") {
		out := make([]any, 0, len(titles))
		for _, title := range titles {
			out = append(out, m.ParseDebug(title))
		}
		return writeJSON(c.App.Writer, out)
	}

	out := make([]parseResult, 0, len(titles))
	for _, title := range titles {
		out = append(out, parseResult{Title: title, Match: m.Parse(title)})
	}
	return writeJSON(c.App.Writer, out)
}

func buildQuery(c *cli.Context) (filter.Query, core.SortDimension, error) {
	q := filter.Query{
		Active: core.ActiveFilters{
			Brand:        c.StringSlice("brand"),
			Model:        c.StringSlice("model"),
			Submodel:     c.StringSlice("submodel"),
			Fuel:         c.StringSlice("fuel"),
			VehicleType:  c.StringSlice("vehicle-type"),
			Mileage:      c.StringSlice("km"),
			Price:        c.StringSlice("price"),
			AuctionHouse: c.StringSlice("auction"),
			Region:       c.StringSlice("region"),
		},
		Search: c.String("search"),
	}

	if c.IsSet("budget-min") || c.IsSet("budget-max") {
		q.Budget = &core.BudgetRange{
			Min:       c.Int64("budget-min"),
			Max:       c.Int64("budget-max"),
			Unbounded: !c.IsSet("budget-max"),
		}
	}
	if c.IsSet("year-min") || c.IsSet("year-max") {
		q.Years = &core.YearRange{Min: c.Int("year-min"), Max: c.Int("year-max")}
	}

	ids := core.IDFilter{
		ManufacturerID: c.String("manufacturer-id"),
		ModelID:        c.String("model-id"),
		TrimID:         c.String("trim-id"),
	}
	if !ids.IsZero() {
		q.IDs = &ids
	}

	last := core.SortDimension(strings.ToLower(c.String("last")))
	switch last {
	case core.SortNone, core.SortBudget, core.SortYear, core.SortPrice, core.SortMileage:
	default:
		return q, last, fmt.Errorf("invalid --last %q: must be one of budget, year, price, km", last)
	}

	if err := q.Validate(); err != nil {
		return q, last, err
	}
	return q, last, nil
}

func filterCommand(c *cli.Context) error {
	q, last, err := buildQuery(c)
	if err != nil {
		return err
	}
	rows, err := readListings(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	engine, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	if c.Bool("count") {
		_, err := fmt.Fprintln(c.App.Writer, engine.Filter().Count(rows, q))
		return err
	}
	return writeJSON(c.App.Writer, engine.Query(rows, q, last))
}

type statsReport struct {
	Total      int                 `json:"total"`
	FilterMode core.FilterMode     `json:"filter_mode"`
	Options    filter.Options      `json:"options"`
	Auctions   []auction.Info      `json:"auctions"`
	Groups     []groups.LabelCount `json:"groups"`
	Other      int                 `json:"other"`
	Coverage   float64             `json:"coverage"`
}

func statsCommand(c *cli.Context) error {
	rows, err := readListings(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	engine, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	options := engine.Replace(rows)
	agg := engine.Aggregator()

	mode := cfg.Auction.DefaultMode
	if agg.Ready() {
		if mode, err = agg.FilterMode(); err != nil {
			return err
		}
	}
	report := statsReport{
		Total:      agg.TotalCount(),
		FilterMode: mode,
		Options:    options,
		Auctions:   agg.Infos(),
	}

	def, extract := engine.Groups(report.FilterMode)
	analysis := groups.Analyze(rows, def, extract)
	report.Groups = analysis.Counts.Ordered(def)
	report.Other = analysis.Counts.Other
	report.Coverage = analysis.Coverage

	return writeJSON(c.App.Writer, report)
}

func enrichCommand(c *cli.Context) error {
	rows, err := readListings(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if dir := c.String("cache-dir"); dir != "" {
		cfg.Cache.Dir = dir
	}
	if c.IsSet("workers") {
		cfg.Enrich.PoolSize = c.Int("workers")
	}
	if c.IsSet("report-interval") {
		cfg.Enrich.ProgressInterval = c.Int("report-interval")
	}

	engine, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	var opts []enrich.Option
	if cfg.Enrich.ProgressInterval > 0 {
		opts = append(opts, enrich.WithProgress(c.App.ErrWriter, cfg.Enrich.ProgressInterval))
	}
	pipeline, err := engine.NewEnrichmentPipeline(c.Context, opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	out, stats, err := pipeline.EnrichWithStats(c.Context, rows)
	if err != nil {
		return fmt.Errorf("enrichment failed: %w", err)
	}
	slog.Info("enrichment complete",
		"rows", stats.Rows,
		"titles", stats.Titles,
		"cache_hits", stats.CacheHits,
		"matched", stats.Matched,
		"elapsed", stats.Elapsed)

	w := c.App.Writer
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	return writeJSON(w, out)
}

// Program tripdash is an interactive analytics dashboard over a static table
// of ride-hailing trips. It wires together the dataset cache (load +
// normalize), the filter engine, the aggregators, and the insight generator,
// and presents them either as a terminal UI or as a one-shot text report
// when stdout is not a terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/deereallinda/uber-nyc-2015-analysis/config"
	"github.com/deereallinda/uber-nyc-2015-analysis/dataset"
	"github.com/deereallinda/uber-nyc-2015-analysis/filter"
	"github.com/deereallinda/uber-nyc-2015-analysis/insight"
	"github.com/deereallinda/uber-nyc-2015-analysis/report"
	"github.com/deereallinda/uber-nyc-2015-analysis/schema"
	"github.com/deereallinda/uber-nyc-2015-analysis/trip"
)

const (
	defaultConfigPath = "data/config.yaml"
	envConfigPath     = "TRIPDASH_CONFIG"
)

func main() {
	configFlag := flag.String("config", "", "Path to config YAML (default "+defaultConfigPath+")")
	dataFlag := flag.String("data", "", "Dataset path override (CSV or read-only SQLite)")
	noUIFlag := flag.Bool("no-ui", false, "Print a one-shot report instead of the interactive dashboard")
	flag.Parse()

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config: %v\n", err)
		os.Exit(1)
	}
	if *dataFlag != "" {
		cfg.Dataset.Path = *dataFlag
	}

	fanout, err := setupLogging(cfg.Logging, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging: %v\n", err)
	}
	log.SetFlags(0)
	log.SetOutput(fanout)
	defer fanout.Close()

	cache := dataset.NewCache(schema.Normalize)
	table, err := cache.Load(cfg.Dataset.Path)
	if err != nil {
		reportFatal(err, cfg.Dataset.Path)
	}
	log.Printf("Loaded %d trips from %s (%d raw rows, %d dropped, %s to %s)",
		len(table.Records), cfg.Dataset.Path, table.RawRows, table.DroppedRows,
		table.MinDate.Format("2006-01-02"), table.MaxDate.Format("2006-01-02"))

	if *noUIFlag || !term.IsTerminal(int(os.Stdout.Fd())) {
		runConsole(table, cfg)
		return
	}

	d := newDashboard(table, cfg)
	// Route log lines into the UI's system pane; raw stderr writes would
	// tear the tview screen.
	fanout.SetConsoleSink(d.SystemWriter(), true)
	log.Printf("Columns: %s", strings.Join(table.Columns, ", "))
	if err := d.Run(); err != nil {
		fanout.SetConsoleSink(os.Stderr, true)
		log.Fatalf("Dashboard: %v", err)
	}
	fanout.SetConsoleSink(os.Stderr, true)
}

// runConsole renders the full-range report once to stdout, the non-TTY
// equivalent of opening the dashboard with default filters.
func runConsole(table *trip.Table, cfg *config.Config) {
	r := report.Build(table, report.Options{
		DatasetPath: cfg.Dataset.Path,
		Range:       filter.FullRange(table),
		TopBases:    cfg.Dataset.TopBases,
		GeoLimit:    cfg.Dataset.GeoSampleLimit,
		IncludeGeo:  cfg.Dashboard.ShowGeoStats,
		Windows: insight.Windows{
			MorningStart: cfg.Insight.MorningStartHour,
			MorningEnd:   cfg.Insight.MorningEndHour,
			EveningStart: cfg.Insight.EveningStartHour,
			EveningEnd:   cfg.Insight.EveningEndHour,
		},
	})
	r.WriteText(os.Stdout, cfg.Dashboard.ChartWidth)
}

// loadConfig resolves the config path from flag > env > default. A missing
// default file is not an error; the built-in defaults apply.
func loadConfig(flagPath string) (*config.Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(envConfigPath)
	}
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err != nil {
			return config.Default(), nil
		}
		path = defaultConfigPath
	}
	return config.Load(path)
}

// reportFatal maps the dataset error taxonomy to operator-facing messages
// and halts the render pass. No partial dashboard is ever shown.
func reportFatal(err error, path string) {
	var schemaErr *dataset.SchemaError
	switch {
	case errors.Is(err, dataset.ErrMissingInput):
		fmt.Fprintf(os.Stderr, "Data file %s was not found. Export the trip sample there and rerun.\n", path)
	case errors.Is(err, dataset.ErrEmptyInput):
		fmt.Fprintf(os.Stderr, "Data file %s contains no usable rows: %v\n", path, err)
	case errors.As(err, &schemaErr):
		fmt.Fprintf(os.Stderr, "Could not find a usable date/time column in %s.\n%v\n", path, schemaErr)
	default:
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", path, err)
	}
	os.Exit(1)
}

// Program tripreport emits the full demand analysis for a trip dataset as
// text or JSON, using the same normalize/filter/aggregate/insight pipeline
// as the interactive dashboard.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/deereallinda/uber-nyc-2015-analysis/config"
	"github.com/deereallinda/uber-nyc-2015-analysis/dataset"
	"github.com/deereallinda/uber-nyc-2015-analysis/filter"
	"github.com/deereallinda/uber-nyc-2015-analysis/insight"
	"github.com/deereallinda/uber-nyc-2015-analysis/report"
	"github.com/deereallinda/uber-nyc-2015-analysis/schema"
)

func main() {
	configFlag := flag.String("config", "", "Path to config YAML (optional)")
	dataFlag := flag.String("data", "", "Dataset path override (CSV or read-only SQLite)")
	startFlag := flag.String("start", "", "Start date (YYYY-MM-DD, defaults to dataset minimum)")
	endFlag := flag.String("end", "", "End date (YYYY-MM-DD, defaults to dataset maximum)")
	minHourFlag := flag.Int("min-hour", 0, "Minimum hour of day (0-23)")
	maxHourFlag := flag.Int("max-hour", 23, "Maximum hour of day (0-23)")
	jsonFlag := flag.Bool("json", false, "Emit JSON instead of text")
	geoFlag := flag.Bool("geo", false, "Include the sampled geographic points")
	columnsFlag := flag.Bool("columns", false, "Print the raw column names and exit")
	flag.Parse()
	log.SetFlags(0)

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			log.Fatalf("Config: %v", err)
		}
		cfg = loaded
	}
	if *dataFlag != "" {
		cfg.Dataset.Path = *dataFlag
	}

	cache := dataset.NewCache(schema.Normalize)
	table, err := cache.Load(cfg.Dataset.Path)
	if err != nil {
		var schemaErr *dataset.SchemaError
		switch {
		case errors.Is(err, dataset.ErrMissingInput),
			errors.Is(err, dataset.ErrEmptyInput):
			log.Fatalf("Dataset: %v", err)
		case errors.As(err, &schemaErr):
			log.Fatalf("Dataset: %v", schemaErr)
		default:
			log.Fatalf("Failed to load %s: %v", cfg.Dataset.Path, err)
		}
	}

	if *columnsFlag {
		for _, col := range table.Columns {
			fmt.Println(col)
		}
		return
	}

	rng := filter.FullRange(table)
	if *startFlag != "" {
		rng.Start = mustParseDate(*startFlag)
	}
	if *endFlag != "" {
		rng.End = mustParseDate(*endFlag)
	}
	rng = filter.NewRange(rng.Start, rng.End, *minHourFlag, *maxHourFlag)

	r := report.Build(table, report.Options{
		DatasetPath: cfg.Dataset.Path,
		Range:       rng,
		TopBases:    cfg.Dataset.TopBases,
		GeoLimit:    cfg.Dataset.GeoSampleLimit,
		IncludeGeo:  *geoFlag,
		Windows: insight.Windows{
			MorningStart: cfg.Insight.MorningStartHour,
			MorningEnd:   cfg.Insight.MorningEndHour,
			EveningStart: cfg.Insight.EveningStartHour,
			EveningEnd:   cfg.Insight.EveningEndHour,
		},
	})

	if *jsonFlag {
		if err := r.WriteJSON(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}
	r.WriteText(os.Stdout, cfg.Dashboard.ChartWidth)
}

func mustParseDate(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		log.Fatalf("Invalid date %q: %v", value, err)
	}
	return parsed
}

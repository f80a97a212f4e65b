// Command apiwarden-driftcheck compares two persisted compliance reports
// and exits non-zero when the current one has drifted from the baseline.
// Meant for CI gates and cron alerts.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"apiwarden/internal/modkit/repokit"
	"apiwarden/internal/platform/config"
	"apiwarden/internal/platform/logger"
	"apiwarden/internal/platform/store"

	"apiwarden/internal/services/compliance/domain"
	"apiwarden/internal/services/compliance/repo"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run carries the exit code back to main so deferred cleanup still fires
func run(args []string) int {
	fs := flag.NewFlagSet("apiwarden-driftcheck", flag.ContinueOnError)
	var (
		baselineLabel = fs.String("baseline", "", "label of the baseline report (required)")
		currentLabel  = fs.String("current", "", "label of the current report; empty takes the latest")
		threshold     = fs.Float64("threshold", domain.DefaultDriftThreshold, "compliance drop in percentage points that counts as drift")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *baselineLabel == "" {
		log.Print("baseline label is required")
		fs.Usage()
		return 2
	}
	if *threshold <= 0 {
		log.Printf("bad -threshold: must be positive, got %v", *threshold)
		return 2
	}

	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:  true,
			URL:      pgCfg.MustString("DBURL"),
			MaxConns: int32(pgCfg.MayInt("MAX_CONNS", 2)),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Error().Err(err).Msg("store.Open failed")
		return 1
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	ctx := context.Background()
	storage := repokit.MustBind(repo.NewPG(), st.PG)

	baseline, err := storage.ReportByLabel(ctx, *baselineLabel)
	if err != nil {
		l.Error().Err(err).Str("label", *baselineLabel).Msg("load baseline report")
		return 1
	}

	var current repo.StoredReport
	if *currentLabel != "" {
		current, err = storage.ReportByLabel(ctx, *currentLabel)
	} else {
		current, err = storage.LatestReport(ctx)
	}
	if err != nil {
		l.Error().Err(err).Msg("load current report")
		return 1
	}

	d := domain.ComputeDrift(baseline.Report, current.Report, *threshold)
	print := message.NewPrinter(language.English)

	print.Printf("baseline  %s  rate %.2f%%  (%d requests)\n",
		baseline.Label, d.BaselineRate, baseline.Report.TotalRequests)
	print.Printf("current   %s  rate %.2f%%  (%d requests)\n",
		current.Label, d.CurrentRate, current.Report.TotalRequests)
	print.Printf("delta     %+.2f points (threshold %.2f)\n\n", d.RateDelta, d.Threshold)

	for _, e := range d.Endpoints {
		marker := " "
		if e.Significant {
			marker = "!"
		}
		print.Printf("%s %-40s %7.2f%% -> %7.2f%%  (%+.2f)\n",
			marker, e.Endpoint, e.BaselineRate, e.CurrentRate, e.Delta)
	}

	if len(d.NewViolations) > 0 {
		print.Printf("\n%d new violation(s):\n", len(d.NewViolations))
		for _, v := range d.NewViolations {
			print.Printf("  [%s] %s %s: %s\n", v.Severity, v.Method, v.Endpoint, v.Impact)
		}
	}

	if d.Drifted {
		print.Printf("\ndrift detected\n")
		return 1
	}
	print.Printf("\nno drift\n")
	return 0
}

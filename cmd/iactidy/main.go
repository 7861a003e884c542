package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"iactidy/internal/config"
	"iactidy/internal/pipeline"
	"iactidy/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)
	setupLogger(cfg.LogLevel)

	cmd := "run"
	if len(os.Args) >= 2 {
		cmd = os.Args[1]
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	switch cmd {
	case "run":
		processor := pipeline.NewProcessingService(db, cfg)
		res, err := processor.Run()
		must(err)
		for _, o := range res.Outputs {
			fmt.Printf("  %-18s rows=%-8d %s\n", o.Name, o.Rows, o.Path)
		}
		fmt.Printf("run done trace=%s outputs=%d\n", res.TraceID, len(res.Outputs))
	case "null-naics":
		processor := pipeline.NewProcessingService(db, cfg)
		out, err := processor.RunNullNAICS()
		must(err)
		fmt.Printf("null NAICS extract rows=%d output=%s\n", out.Rows, out.Path)
	case "runs":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 10, "number of runs")
		_ = fs.Parse(os.Args[2:])
		runs, err := db.ListRuns(*limit)
		must(err)
		for _, r := range runs {
			finished := "-"
			if r.FinishedAt != nil {
				finished = *r.FinishedAt
			}
			line := fmt.Sprintf("%d %s %s started=%s finished=%s", r.ID, r.TraceID, r.Status, r.StartedAt, finished)
			if r.Error != nil {
				line += " error=" + *r.Error
			}
			fmt.Println(line)
			outputs, err := db.ListOutputs(r.ID)
			must(err)
			for _, o := range outputs {
				fmt.Printf("  %-18s rows=%-8d %s\n", o.Name, o.Rows, o.Path)
			}
		}
	default:
		usage()
		os.Exit(1)
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func usage() {
	fmt.Println("usage: iactidy [command]")
	fmt.Println("commands:")
	fmt.Println("  run                 build every tidy table (default)")
	fmt.Println("  null-naics          write only null_naics_v3.csv")
	fmt.Println("  runs [--limit=10]   list recent runs")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"catalogo/internal/config"
	"catalogo/internal/logging"
	"catalogo/internal/pipeline"
	"catalogo/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)
	logger := logging.New(cfg)

	cmd := "export"
	args := []string{}
	if len(os.Args) >= 2 {
		cmd = os.Args[1]
		args = os.Args[2:]
	}

	switch cmd {
	case "export":
		must(runExport(cfg, logger, args, os.Stdout))
	case "export:xlsx":
		must(runExportXLSX(cfg, logger, args, os.Stdout))
	case "runs":
		must(runRuns(cfg, args, os.Stdout))
	case "help", "-h", "--help":
		usage()
	default:
		usage()
		os.Exit(1)
	}
}

func runExport(cfg config.Config, logger zerolog.Logger, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	input := fs.String("input", cfg.InputDir, "directory holding the price list files")
	output := fs.String("output", cfg.OutputFile, "generated TypeScript module")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := pipeline.NewExportService(*input, pipeline.DefaultSources, w, logger)
	db := openJournal(cfg, logger)
	if db != nil {
		defer db.Close()
		svc.WithRecorder(db)
	}
	_, err := svc.Export(pipeline.TypeScriptTarget{
		Path:        *output,
		TypesImport: cfg.TypesImport,
		ExportName:  cfg.ExportName,
	})
	return err
}

func runExportXLSX(cfg config.Config, logger zerolog.Logger, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("export:xlsx", flag.ContinueOnError)
	input := fs.String("input", cfg.InputDir, "directory holding the price list files")
	out := fs.String("out", "", "output xlsx path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*out) == "" {
		return fmt.Errorf("--out is required")
	}

	svc := pipeline.NewExportService(*input, pipeline.DefaultSources, w, logger)
	db := openJournal(cfg, logger)
	if db != nil {
		defer db.Close()
		svc.WithRecorder(db)
	}
	summary, err := svc.ExportXLSX(*out)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "exported %d products to %s\n", summary.Total, *out)
	return nil
}

func runRuns(cfg config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", cfg.RunsLimit, "number of runs to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	return printRuns(db, *limit, w)
}

// openJournal returns nil when the journal is disabled or cannot be opened;
// the export runs either way.
func openJournal(cfg config.Config, logger zerolog.Logger) *storage.DB {
	if !cfg.RunJournal {
		return nil
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.DBPath).Msg("run journal unavailable")
		return nil
	}
	return db
}

func printRuns(db *storage.DB, limit int, w io.Writer) error {
	at, total, err := db.LastExport()
	if err != nil {
		return err
	}
	if at == nil {
		fmt.Fprintln(w, "no runs recorded")
		return nil
	}
	fmt.Fprintf(w, "last export: %s (%s products)\n", *at, *total)

	runs, err := db.ListRuns(limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %s  total=%d  %dms  %s\n", r.StartedAt, r.RunID, r.Total, r.DurationMs, r.OutputPath)
		for _, f := range r.Files {
			line := fmt.Sprintf("    %-16s %-40s %s records=%d", f.State, f.Name, f.Category, f.Records)
			if f.Error != nil {
				line += "  " + *f.Error
			}
			fmt.Fprintln(w, line)
		}
	}
	return nil
}

func usage() {
	fmt.Println("usage: catalogo [command]")
	fmt.Println("commands:")
	fmt.Println("  export [--input=data_csv] [--output=src/app/data/products.ts]   (default)")
	fmt.Println("  export:xlsx --out=./out/catalogo.xlsx [--input=data_csv]")
	fmt.Println("  runs [--limit=20]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

package pipeline

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"catalogo/internal"
)

var ErrMissingFile = errors.New("file not found")

// FileError is a read or mapping failure for one source file.
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// RunRecorder persists a finished run. storage.DB implements it.
type RunRecorder interface {
	InsertRun(summary internal.RunSummary) error
}

type ExportService struct {
	inputDir string
	sources  []internal.SourceFile
	out      io.Writer
	log      zerolog.Logger
	recorder RunRecorder
}

func NewExportService(inputDir string, sources []internal.SourceFile, out io.Writer, logger zerolog.Logger) *ExportService {
	return &ExportService{inputDir: inputDir, sources: sources, out: out, log: logger}
}

// WithRecorder enables the run journal.
func (s *ExportService) WithRecorder(r RunRecorder) *ExportService {
	s.recorder = r
	return s
}

// Collect reads every source in order and returns the records of the files
// that were processed. Ids run from 1 across files in declared order.
func (s *ExportService) Collect() ([]internal.ProductRecord, internal.RunSummary) {
	summary := internal.RunSummary{RunID: uuid.NewString(), StartedAt: time.Now().UTC()}
	records := make([]internal.ProductRecord, 0)
	nextID := 1

	for _, src := range s.sources {
		batch, result := s.processFile(src, nextID)
		summary.Files = append(summary.Files, result)

		switch result.State {
		case internal.FileProcessed:
			records = append(records, batch...)
			nextID += len(batch)
			fmt.Fprintf(s.out, "✅ %s procesado.\n", src.Name)
			s.log.Info().Str("file", src.Name).Str("category", string(src.Category)).Int("records", len(batch)).Msg("file processed")
		case internal.FileSkippedMissing:
			fmt.Fprintf(s.out, "⚠️  Archivo no encontrado: %s\n", result.Path)
			s.log.Warn().Str("file", src.Name).Str("path", result.Path).Msg("file missing, skipped")
		case internal.FileFailed:
			fmt.Fprintf(s.out, "❌ Error en %s: %v\n", src.Name, errors.Unwrap(result.Err))
			s.log.Error().Err(result.Err).Str("file", src.Name).Msg("file failed, skipped")
		}
	}

	summary.Total = len(records)
	summary.Duration = time.Since(summary.StartedAt)
	return records, summary
}

func (s *ExportService) processFile(src internal.SourceFile, firstID int) ([]internal.ProductRecord, internal.FileResult) {
	path := filepath.Join(s.inputDir, src.Name)
	result := internal.FileResult{Source: src, Path: path, State: internal.FilePending}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.State = internal.FileSkippedMissing
			result.Err = &FileError{Name: src.Name, Err: ErrMissingFile}
			return nil, result
		}
		result.State = internal.FileFailed
		result.Err = &FileError{Name: src.Name, Err: err}
		return nil, result
	}

	table, err := ReadTable(path)
	if err != nil {
		result.State = internal.FileFailed
		result.Err = &FileError{Name: src.Name, Err: err}
		return nil, result
	}
	s.log.Debug().Str("file", src.Name).Int("rows", len(table.Rows)).Strs("columns", table.Columns).Msg("table read")

	batch := make([]internal.ProductRecord, 0, len(table.Rows))
	for i, row := range table.Rows {
		batch = append(batch, MapRow(row, src.Category, firstID+i))
	}

	result.State = internal.FileProcessed
	result.Records = len(batch)
	return batch, result
}

// Export collects the catalog and writes the TypeScript module.
func (s *ExportService) Export(target TypeScriptTarget) (internal.RunSummary, error) {
	fmt.Fprintf(s.out, "--- Actualizando %s ---\n", filepath.Base(target.Path))

	records, summary := s.Collect()
	summary.OutputPath = target.Path
	if err := WriteTypeScript(records, target); err != nil {
		return summary, fmt.Errorf("write %s: %w", target.Path, err)
	}

	fmt.Fprintf(s.out, "\n--- ¡Listo! %s actualizado ---\n", filepath.Base(target.Path))
	fmt.Fprintf(s.out, "Total productos: %d\n", summary.Total)
	s.log.Info().Str("run", summary.RunID).Int("total", summary.Total).Dur("duration", summary.Duration).Str("output", target.Path).Msg("export done")

	s.record(summary)
	return summary, nil
}

// ExportXLSX collects the catalog and writes it as a review workbook.
func (s *ExportService) ExportXLSX(outputPath string) (internal.RunSummary, error) {
	records, summary := s.Collect()
	summary.OutputPath = outputPath
	if err := ExportRecordsToXLSX(records, outputPath); err != nil {
		return summary, fmt.Errorf("write %s: %w", outputPath, err)
	}
	fmt.Fprintf(s.out, "Total productos: %d\n", summary.Total)
	s.record(summary)
	return summary, nil
}

func (s *ExportService) record(summary internal.RunSummary) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.InsertRun(summary); err != nil {
		s.log.Warn().Err(err).Str("run", summary.RunID).Msg("run journal write failed")
	}
}

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo/internal/config"
	"catalogo/internal/storage"
)

const csvHeader = "@imagen,titulo,precioUnitario,precioCantidad,precioOferta,subCategoria,stock\n"

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		InputDir:    filepath.Join(dir, "data_csv"),
		OutputFile:  filepath.Join(dir, "src", "app", "data", "products.ts"),
		TypesImport: "../types",
		ExportName:  "products",
		DBPath:      filepath.Join(dir, "data", "catalogo.db"),
		RunJournal:  true,
		RunsLimit:   20,
	}
}

func TestRunExportRecordsRunAndClosesJournal(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.InputDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.InputDir, "2_Bebidas - 2(0)_Bebidas.csv"),
		[]byte(csvHeader+"img/a.png,Agua,$500,,,,\n"), 0o644))

	out := bytes.NewBuffer(nil)
	require.NoError(t, runExport(cfg, zerolog.Nop(), nil, out))
	assert.Contains(t, out.String(), "Total productos: 1")
	assert.FileExists(t, cfg.OutputFile)
	assert.NoFileExists(t, cfg.DBPath+"-wal")

	db, err := storage.Open(cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].Total)
}

func TestRunExportFailureStillClosesJournal(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	cfg.OutputFile = filepath.Join(blocker, "products.ts")

	err := runExport(cfg, zerolog.Nop(), nil, io.Discard)
	require.Error(t, err)
	assert.NoFileExists(t, cfg.DBPath+"-wal")

	db, err := storage.Open(cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.ListRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRunExportXLSXRequiresOut(t *testing.T) {
	cfg := testConfig(t)
	err := runExportXLSX(cfg, zerolog.Nop(), nil, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--out is required")
}

func TestRunRunsListsRecordedExport(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, runExport(cfg, zerolog.Nop(), []string{"--input", t.TempDir()}, io.Discard))

	out := bytes.NewBuffer(nil)
	require.NoError(t, runRuns(cfg, []string{"--limit", "5"}, out))
	assert.Contains(t, out.String(), "last export:")
	assert.Contains(t, out.String(), "total=0")
}

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/toran/inventory/export"
	"github.com/arthur-debert/toran/types"
)

const seedCSV = `sku,name,category,qty,price,loc
FAN-001,Ceiling Fan A,Fans,12,1499,S1
LGT-101,LED Bulb 9W,Lights,48,199,S3
BEL-55,Door Bell Model X,Bells,8,349,S2
`

// harness runs the CLI against a data file in a private temp directory
type harness struct {
	t    *testing.T
	dir  string
	file string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, key := range []string{"TORAN_CONFIG", "TORAN_FILE", "TORAN_BACKEND", "TORAN_FORMAT", "TORAN_LOG_LEVEL", "TORAN_VERBOSE"} {
		t.Setenv(key, "")
	}
	t.Setenv("TORAN_CHAT_DELAY", "1ms")
	t.Chdir(dir)

	return &harness{t: t, dir: dir, file: filepath.Join(dir, "inventory.json")}
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--file", h.file}, args...)
	err := run(full, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run("", args...)
	require.NoError(h.t, err, "toran %s", strings.Join(args, " "))
	return out
}

func (h *harness) listJSON() []types.Item {
	h.t.Helper()
	var items []types.Item
	require.NoError(h.t, json.Unmarshal([]byte(h.mustRun("--format", "json", "list")), &items))
	return items
}

func skus(items []types.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.SKU
	}
	return out
}

func TestListSeedsOnFirstRun(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, seedCSV, h.mustRun("--format", "csv", "list"))
	assert.FileExists(t, h.file)
}

func TestListFilters(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("--format", "csv", "list", "-q", "s3")
	assert.Equal(t, "sku,name,category,qty,price,loc\nLGT-101,LED Bulb 9W,Lights,48,199,S3\n", out)

	out = h.mustRun("--format", "csv", "list", "-c", "bells")
	assert.Contains(t, out, "BEL-55")
	assert.NotContains(t, out, "FAN-001")

	out = h.mustRun("list", "-q", "no such thing")
	assert.Contains(t, out, "No items found.")

	_, err := h.run("", "list", "-c", "Toasters")
	var cliErr *CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Contains(t, cliErr.Error(), `invalid category: "Toasters"`)
}

func TestListMatches(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("list", "-q", "fan", "--matches")
	assert.Contains(t, out, "FAN-001  Ceiling Fan A")
	assert.Contains(t, out, "**FAN**-001")
	assert.Contains(t, out, "Ceiling **Fan** A")
	assert.Contains(t, out, "**Fan**s")
	assert.NotContains(t, out, "LGT-101")
}

func TestAddPrependsAndPersists(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("add", "FAN-002", "Wall Fan", "--category", "fans", "--qty", "3", "--price", "999", "--loc", "S1")
	assert.Equal(t, "Added FAN-002 (Wall Fan)\n", out)

	items := h.listJSON()
	require.Len(t, items, 4)
	assert.Equal(t, types.Item{
		SKU: "FAN-002", Name: "Wall Fan", Category: types.Fans, Qty: "3", Price: "999", Loc: "S1",
	}, items[0])

	stats := h.mustRun("--format", "csv", "stats")
	assert.Equal(t, "item_types,total_units,low_stock\n4,71,1\n", stats)
}

func TestAddRejectsDuplicatesAndInvalidInput(t *testing.T) {
	h := newHarness(t)
	before := h.mustRun("--format", "csv", "list")

	_, err := h.run("", "add", "FAN-001", "Another Fan")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrDuplicateSKU))
	assert.Contains(t, err.Error(), "toran edit <sku>")

	_, err = h.run("", "add", "NEW-1", "   ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrValidation))

	_, err = h.run("", "add", "NEW-1", "Thing", "--category", "Toasters")
	var cliErr *CLIError
	require.ErrorAs(t, err, &cliErr)

	assert.Equal(t, before, h.mustRun("--format", "csv", "list"))
}

func TestEditChangesOnlyGivenFields(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("edit", "BEL-55", "--qty", "2", "--loc", "S9")
	assert.Equal(t, "Updated BEL-55\n", out)

	items := h.listJSON()
	require.Len(t, items, 3)
	assert.Equal(t, []string{"FAN-001", "LGT-101", "BEL-55"}, skus(items))
	assert.Equal(t, types.Item{
		SKU: "BEL-55", Name: "Door Bell Model X", Category: types.Bells, Qty: "2", Price: "349", Loc: "S9",
	}, items[2])

	_, err := h.run("", "edit", "NOPE-1", "--qty", "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNotFound))

	_, err = h.run("", "edit", "BEL-55", "--name", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrValidation))
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("n\n", "delete", "BEL-55")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete BEL-55? [y/N]: ")
	assert.Contains(t, out, "Delete cancelled.")
	assert.Equal(t, []string{"FAN-001", "LGT-101", "BEL-55"}, skus(h.listJSON()))

	out, err = h.run("y\n", "delete", "BEL-55")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted BEL-55")
	assert.Equal(t, []string{"FAN-001", "LGT-101"}, skus(h.listJSON()))

	out = h.mustRun("delete", "FAN-001", "--yes")
	assert.Equal(t, "Deleted FAN-001\n", out)
	assert.Equal(t, []string{"LGT-101"}, skus(h.listJSON()))

	_, err = h.run("", "delete", "FAN-001", "--yes")
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestStats(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "item_types,total_units,low_stock\n3,68,0\n", h.mustRun("--format", "csv", "stats"))

	out := h.mustRun("stats")
	assert.Contains(t, out, "Low stock (<5)")
}

func TestExportCSV(t *testing.T) {
	h := newHarness(t)
	outDir := filepath.Join(h.dir, "downloads")

	out := h.mustRun("export", "--output", outDir)
	path := filepath.Join(outDir, export.Filename)
	assert.Equal(t, "Exported 3 items to "+path+"\n", out)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSuffix(seedCSV, "\n"), string(content))
}

func TestExportArchiveAndImport(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "ACC-1", "Fan Regulator", "--category", "Accessories", "--qty", "abc")

	out := h.mustRun("export", "--archive", "--output", "backups")
	assert.Contains(t, out, "Exported 4 items to ")

	matches, err := filepath.Glob(filepath.Join(h.dir, "backups", "toran-export-*.zip"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	// A fresh store already holds the seed, so only ACC-1 is new
	other := filepath.Join(h.dir, "other.json")
	out = h.mustRun("--file", other, "import", matches[0], "--dry-run")
	assert.Contains(t, out, "Would import 1 of 4 items")
	assert.Contains(t, out, "skipped FAN-001")
	assert.Len(t, h.listJSONAt(other), 3)

	out = h.mustRun("--file", other, "import", matches[0])
	assert.Contains(t, out, "Imported 1 of 4 items")

	items := h.listJSONAt(other)
	require.Len(t, items, 4)
	assert.Equal(t, types.Item{SKU: "ACC-1", Name: "Fan Regulator", Category: types.Accessories, Qty: "abc", Loc: ""}, items[0])
}

func (h *harness) listJSONAt(file string) []types.Item {
	h.t.Helper()
	var items []types.Item
	require.NoError(h.t, json.Unmarshal([]byte(h.mustRun("--file", file, "--format", "json", "list")), &items))
	return items
}

func TestImportCSVKeepsFileOrder(t *testing.T) {
	h := newHarness(t)
	csvPath := filepath.Join(h.dir, "incoming.csv")
	content := "sku,name,category,qty,price,loc\n" +
		"NEW-1,First,Lights,4,10,S5\n" +
		"NEW-2,Second,Bells,9,,S6\n" +
		"FAN-001,Dup,Fans,1,1,S1\n" +
		"NEW-3,,Fans,1,1,S1"
	require.NoError(t, os.WriteFile(csvPath, []byte(content), 0644))

	out := h.mustRun("import", csvPath)
	assert.Contains(t, out, "Imported 2 of 4 items")
	assert.Contains(t, out, "skipped FAN-001")
	assert.Contains(t, out, "skipped NEW-3")

	assert.Equal(t, []string{"NEW-1", "NEW-2", "FAN-001", "LGT-101", "BEL-55"}, skus(h.listJSON()))

	out = h.mustRun("--format", "json", "import", csvPath, "--dry-run")
	var result struct {
		Imported []string `json:"imported"`
		Summary  struct {
			TotalItems int  `json:"total_items"`
			DryRun     bool `json:"dry_run"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Empty(t, result.Imported)
	assert.Equal(t, 4, result.Summary.TotalItems)
	assert.True(t, result.Summary.DryRun)

	_, err := h.run("", "import", filepath.Join(h.dir, "missing.csv"))
	var cliErr *CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, "import", cliErr.Operation)
}

func TestChatOneShot(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("chat", "any", "fans", "left?")
	assert.Equal(t, "ai: I can help with that (demo reply)\n", out)
}

func TestChatREPL(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("hello\n\nsecond\nexit\nignored\n", "chat")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "ai: I can help with that (demo reply)"))

	out, err = h.run("hello\n", "chat")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "ai: I can help with that (demo reply)"))
}

func TestTheme(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "Theme: light\n", h.mustRun("theme"))
	assert.Equal(t, "Theme: dark\n", h.mustRun("theme", "dark"))
	assert.Equal(t, "Theme: dark\n", h.mustRun("theme"))
	assert.Equal(t, "Theme: light\n", h.mustRun("theme", "toggle"))

	_, err := h.run("", "theme", "purple")
	var cliErr *CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, "Theme: light\n", h.mustRun("theme"))
}

func TestMigrateToSQLite(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "LGT-330", "Tube Light", "--category", "Lights", "--qty", "4")
	h.mustRun("theme", "dark")
	want := h.mustRun("--format", "csv", "list")

	dbPath := filepath.Join(h.dir, "inventory.db")
	out := h.mustRun("migrate", "--to-backend", "sqlite", "--to-file", dbPath)
	assert.Equal(t, "Copied 2 keys to "+dbPath+" (sqlite)\n", out)

	assert.Equal(t, want, h.mustRun("--backend", "sqlite", "--file", dbPath, "--format", "csv", "list"))
	assert.Equal(t, "Theme: dark\n", h.mustRun("--backend", "sqlite", "--file", dbPath, "theme"))

	out = h.mustRun("migrate", "--to-backend", "json", "--to-file", "copy.json", "--dry-run")
	assert.Equal(t, "would copy toran_inventory_v1\nwould copy toran_theme\n", out)
	assert.NoFileExists(t, filepath.Join(h.dir, "copy.json"))

	_, err := h.run("", "migrate", "--to-backend", "json", "--to-file", h.file)
	var cliErr *CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Contains(t, cliErr.Error(), "source and destination are the same")
}

func TestConfigSources(t *testing.T) {
	h := newHarness(t)

	t.Setenv("TORAN_FORMAT", "yaml")
	out := h.mustRun("config")
	assert.Contains(t, out, "format: yaml")
	assert.Contains(t, out, "backend: json")
	assert.Contains(t, out, "chat-delay: 1ms")

	// Flags win over the environment
	out = h.mustRun("--format", "json", "config")
	assert.Contains(t, out, "format: json")

	configPath := filepath.Join(h.dir, "custom.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log-level: debug\n"), 0644))
	out = h.mustRun("--config", configPath, "config")
	assert.Contains(t, out, "log-level: debug")
	assert.Contains(t, out, "source: "+configPath)

	_, err := h.run("", "--backend", "postgres", "list")
	var cliErr *CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Contains(t, cliErr.Error(), "configuration error")

	_, err = h.run("", "--format", "xml", "list")
	require.ErrorAs(t, err, &cliErr)
}

func TestMemoryBackendDoesNotPersist(t *testing.T) {
	h := newHarness(t)

	h.mustRun("--backend", "memory", "add", "TMP-1", "Scratch")
	assert.Equal(t, seedCSV, h.mustRun("--backend", "memory", "--format", "csv", "list"))
	assert.NoFileExists(t, h.file)
}

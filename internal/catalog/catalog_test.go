package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal/catalog"
)

const dskJSON = `[
  {"id": "1", "name": "Plains", "rarity": "common", "type_line": "Basic Land — Plains", "cmc": 0},
  {"id": "2", "name": "Fear of Exposure", "rarity": "uncommon", "type_line": "Enchantment Creature — Nightmare", "colors": ["G"], "cmc": 3},
  {"id": "3", "name": "Promo Thing", "rarity": "rare", "type_line": "Artifact", "booster": false}
]`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadSet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dsk.json", dskJSON)
	store := catalog.NewStore(dir, "")

	records, err := store.LoadSet("DSK")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Fear of Exposure", records[1].Name)
	assert.Equal(t, []string{"G"}, records[1].Colors)
	assert.False(t, records[2].BoosterEligible())
	assert.True(t, records[0].BoosterEligible())

	_, err = store.LoadSet("blb")
	assert.ErrorIs(t, err, catalog.ErrSetNotFound)
	_, err = store.LoadSet("../dsk")
	assert.ErrorIs(t, err, catalog.ErrSetNotFound)
}

func TestLoadBonusMissingIsEmpty(t *testing.T) {
	store := catalog.NewStore(t.TempDir(), "")
	assert.Empty(t, store.LoadBonus())
}

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dsk.json", dskJSON)
	writeFile(t, dir, "blb.json", "[]")
	writeFile(t, dir, "plst.json", "[]")

	store := catalog.NewStore(dir, "")
	sets, err := store.Manifest()
	require.NoError(t, err)
	assert.Equal(t, []catalog.SetInfo{{Code: "blb", Name: "BLB"}, {Code: "dsk", Name: "DSK"}}, sets)

	writeFile(t, dir, catalog.ManifestFile, `[{"code":"dsk","name":"Duskmourn: House of Horror"}]`)
	require.NoError(t, store.Refresh())
	sets, err = store.Manifest()
	require.NoError(t, err)
	assert.Equal(t, []catalog.SetInfo{{Code: "dsk", Name: "Duskmourn: House of Horror"}}, sets)
}

func TestWatchRefreshesManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dsk.json", dskJSON)
	store := catalog.NewStore(dir, "")
	_, err := store.Manifest()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx) }()
	// give the watcher a moment to register the directory
	time.Sleep(100 * time.Millisecond)

	writeFile(t, dir, "fdn.json", "[]")
	assert.Eventually(t, func() bool {
		sets, err := store.Manifest()
		return err == nil && len(sets) == 2
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestBasicLandTemplates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dsk.json", dskJSON)
	records, err := catalog.NewStore(dir, "").LoadSet("dsk")
	require.NoError(t, err)

	templates := catalog.BasicLandTemplates(records)
	assert.Len(t, templates, 1)
	assert.Equal(t, "1", templates["Plains"].ID)
}

package game_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal/card"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/catalog"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/draft"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/game"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/rng"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/storage"
)

func writeSet(t *testing.T, dir, code string) {
	t.Helper()
	var records []card.Record
	for _, name := range []string{"Plains", "Island", "Swamp", "Mountain", "Forest"} {
		records = append(records, card.Record{ID: name, Name: name, Rarity: "common", TypeLine: "Basic Land — " + name})
	}
	tiers := map[string]int{"common": 30, "uncommon": 15, "rare": 8}
	for rarity, n := range tiers {
		for i := 0; i < n; i++ {
			cmc := float64(i%6 + 1)
			records = append(records, card.Record{
				ID:        fmt.Sprintf("%s-%d", rarity, i),
				Name:      fmt.Sprintf("%s card %d", rarity, i),
				Rarity:    rarity,
				TypeLine:  "Creature — Test",
				Colors:    []string{string(card.AllColors[i%len(card.AllColors)])},
				ManaValue: &cmc,
			})
		}
	}
	raw, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, code+".json"), raw, 0o644))
}

type recordingArchive struct {
	saved []storage.Draft
}

func (a *recordingArchive) SaveDraft(_ context.Context, d storage.Draft) error {
	a.saved = append(a.saved, d)
	return nil
}

func TestNewLoadsSet(t *testing.T) {
	dir := t.TempDir()
	writeSet(t, dir, "tst")

	g, err := game.New(catalog.NewStore(dir, ""), game.Options{SetCode: " TST "}, rng.New(1))
	require.NoError(t, err)
	assert.Equal(t, "tst", g.SetCode)
	assert.Equal(t, "TST draft", g.Title)
	assert.NotEmpty(t, g.ID)
	assert.Len(t, g.Templates, 5)
	assert.Equal(t, draft.Idle, g.Session.State())
}

func TestNewUnknownSet(t *testing.T) {
	_, err := game.New(catalog.NewStore(t.TempDir(), ""), game.Options{SetCode: "zzz"}, rng.New(1))
	assert.ErrorIs(t, err, catalog.ErrSetNotFound)
}

func TestArchiveOnlyAfterDraftComplete(t *testing.T) {
	dir := t.TempDir()
	writeSet(t, dir, "tst")
	g, err := game.New(catalog.NewStore(dir, ""), game.Options{SetCode: "tst"}, rng.New(2))
	require.NoError(t, err)

	archive := &recordingArchive{}
	assert.ErrorIs(t, g.Archive(context.Background(), archive), draft.ErrInvalidTransition)

	for round := 1; round <= draft.Rounds; round++ {
		require.NoError(t, g.Session.StartRound(round))
		for g.Session.State() == draft.RoundActive {
			require.True(t, g.Session.SubmitPick(g.Session.ExternalPack()[0].InstanceID))
		}
	}
	require.NoError(t, g.Archive(context.Background(), archive))
	require.Len(t, archive.saved, 1)
	saved := archive.saved[0]
	assert.Equal(t, g.ID, saved.ID)
	assert.Equal(t, "tst", saved.SetCode)
	assert.Len(t, saved.Picks, len(g.Session.Picks()))

	pool := g.Deck(draft.ExternalSeat).Sideboard()
	assert.Len(t, pool, 3*14)
}

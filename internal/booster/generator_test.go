package booster_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal/booster"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/card"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/rng"
)

// stepSource returns a fixed roll for Float64 and walks through indexes for IntN.
type stepSource struct {
	roll  float64
	calls int
}

func (s *stepSource) Float64() float64 { return s.roll }

func (s *stepSource) IntN(n int) int {
	s.calls++
	return s.calls % n
}

func records(prefix, rarity, typeLine string, n int) []card.Record {
	out := make([]card.Record, n)
	for i := range out {
		out[i] = card.Record{
			ID:       fmt.Sprintf("%s-%d", prefix, i),
			Name:     fmt.Sprintf("%s %d", prefix, i),
			Rarity:   rarity,
			TypeLine: typeLine,
			Colors:   []string{"G"},
		}
	}
	return out
}

func testSet() []card.Record {
	var set []card.Record
	set = append(set, records("common", "common", "Creature — Elf", 20)...)
	set = append(set, records("uncommon", "uncommon", "Sorcery", 10)...)
	set = append(set, records("rare", "rare", "Creature — Hydra", 5)...)
	set = append(set, records("mythic", "mythic", "Legendary Planeswalker", 2)...)
	set = append(set, records("basic", "common", "Basic Land — Forest", 5)...)
	return set
}

func TestNewCatalogPartitions(t *testing.T) {
	notInBoosters := false
	set := testSet()
	set = append(set, card.Record{ID: "promo", Rarity: "rare", TypeLine: "Creature", Booster: &notInBoosters})
	set = append(set, card.Record{ID: "token", Rarity: "special", TypeLine: "Token"})

	cat := booster.NewCatalog(set)

	assert.Len(t, cat.Commons, 20)
	assert.Len(t, cat.Uncommons, 10)
	assert.Len(t, cat.Rares, 7)
	assert.Len(t, cat.BasicLands, 5)
	assert.NoError(t, cat.Validate())
	assert.ErrorIs(t, booster.NewCatalog(nil).Validate(), booster.ErrEmptyCatalog)
}

func TestGenerateSlotComposition(t *testing.T) {
	gen := booster.NewGenerator(booster.NewCatalog(testSet()), nil, rng.New(7))

	for n := 0; n < 200; n++ {
		pack := gen.Generate()
		require.Len(t, pack, booster.PackSize)

		for i := 0; i < 7; i++ {
			assert.Equal(t, card.Common, pack[i].Rarity, "slot %d", i+1)
			assert.False(t, pack[i].IsBasicLand(), "slot %d", i+1)
		}
		for i := 7; i < 10; i++ {
			assert.Equal(t, card.Uncommon, pack[i].Rarity, "slot %d", i+1)
		}
		assert.Contains(t, []card.Rarity{card.Rare, card.Mythic}, pack[10].Rarity)
		assert.True(t, pack[11].IsBasicLand())
		assert.False(t, pack[12].IsBasicLand())
		assert.True(t, pack[13].Foil)
		for i := 0; i < 13; i++ {
			assert.False(t, pack[i].Foil, "slot %d", i+1)
		}
	}
}

func TestGenerateAvoidsDuplicatesWhenPossible(t *testing.T) {
	gen := booster.NewGenerator(booster.NewCatalog(testSet()), nil, rng.New(11))

	for n := 0; n < 100; n++ {
		pack := gen.Generate()
		seen := map[string]bool{}
		// slots 1-12 have enough unique cards in every tier to avoid repeats
		for _, c := range pack[:12] {
			assert.False(t, seen[c.CatalogID], "duplicate %s", c.CatalogID)
			seen[c.CatalogID] = true
		}
	}
}

func TestGenerateTinyTiersTerminate(t *testing.T) {
	set := []card.Record{
		{ID: "c", Rarity: "common", TypeLine: "Instant"},
		{ID: "u", Rarity: "uncommon", TypeLine: "Instant"},
		{ID: "r", Rarity: "rare", TypeLine: "Instant"},
	}
	src := &stepSource{roll: 0.3}
	gen := booster.NewGenerator(booster.NewCatalog(set), nil, src)

	pack := gen.Generate()

	assert.Len(t, pack, booster.PackSize)
	// slot 12 falls back to a common without basic lands
	assert.Equal(t, "c", pack[11].CatalogID)
	assert.LessOrEqual(t, src.calls, booster.PackSize*10)
}

func TestGenerateOmitsEmptyTiers(t *testing.T) {
	var set []card.Record
	set = append(set, records("common", "common", "Instant", 12)...)
	set = append(set, records("uncommon", "uncommon", "Instant", 4)...)

	gen := booster.NewGenerator(booster.NewCatalog(set), nil, &stepSource{roll: 0.95})
	pack := gen.Generate()

	// no rare slot, wildcard and foil both roll into the empty rare tier
	assert.Len(t, pack, 11)
	for _, c := range pack {
		assert.NotEqual(t, card.Rare, c.Rarity)
	}
}

func TestGenerateBonusSlot(t *testing.T) {
	bonus := records("list", "rare", "Enchantment", 3)
	cat := booster.NewCatalog(testSet())

	withBonus := booster.NewGenerator(cat, bonus, &stepSource{roll: 0.0}).Generate()
	require.Len(t, withBonus, booster.PackSize)
	assert.True(t, withBonus[6].Bonus)
	for i, c := range withBonus {
		if i != 6 {
			assert.False(t, c.Bonus)
		}
	}

	withoutBonus := booster.NewGenerator(cat, bonus, &stepSource{roll: 0.5}).Generate()
	assert.False(t, withoutBonus[6].Bonus)
	assert.Equal(t, card.Common, withoutBonus[6].Rarity)

	emptyPool := booster.NewGenerator(cat, nil, &stepSource{roll: 0.0}).Generate()
	assert.False(t, emptyPool[6].Bonus)
}

func TestGenerateFoilTiers(t *testing.T) {
	cat := booster.NewCatalog(testSet())
	tests := []struct {
		roll float64
		want []card.Rarity
	}{
		{0.1, []card.Rarity{card.Common}},
		{0.7, []card.Rarity{card.Uncommon}},
		{0.95, []card.Rarity{card.Rare, card.Mythic}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.roll), func(t *testing.T) {
			pack := booster.NewGenerator(cat, nil, &stepSource{roll: tt.roll}).Generate()
			require.Len(t, pack, booster.PackSize)
			assert.Contains(t, tt.want, pack[13].Rarity)
			assert.True(t, pack[13].Foil)
		})
	}
}

func TestGenerateUniqueInstances(t *testing.T) {
	gen := booster.NewGenerator(booster.NewCatalog(testSet()), nil, rng.New(3))
	seen := map[string]bool{}
	for n := 0; n < 24; n++ {
		for _, c := range gen.Generate() {
			require.False(t, seen[c.InstanceID])
			seen[c.InstanceID] = true
		}
	}
}

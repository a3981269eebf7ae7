package deck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal/card"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/deck"
)

func newCard(name, typeLine string, mv float64, colors ...card.Color) card.Card {
	c := card.New(card.Record{ID: name, Name: name, Rarity: "common", TypeLine: typeLine})
	c.ManaValue = mv
	c.Colors = colors
	return c
}

func templates() map[string]card.Record {
	return map[string]card.Record{
		"Forest": {ID: "forest", Name: "Forest", Rarity: "common", TypeLine: "Basic Land — Forest"},
		"Swamp":  {ID: "swamp", Name: "Swamp", Rarity: "common", TypeLine: "Basic Land — Swamp"},
	}
}

func TestMoveBetweenMainAndSideboard(t *testing.T) {
	bear := newCard("Grizzly Bears", "Creature — Bear", 2, card.Green)
	bolt := newCard("Lightning Bolt", "Instant", 1, card.Red)
	b := deck.NewBuilder([]card.Card{bear, bolt}, templates())

	assert.Len(t, b.Sideboard(), 2)
	require.True(t, b.MoveToMain(bear.InstanceID))
	assert.False(t, b.MoveToMain(bear.InstanceID), "already in main")
	assert.Equal(t, []card.Card{bear}, b.Main())
	assert.Equal(t, []card.Card{bolt}, b.Sideboard())

	require.True(t, b.MoveToSideboard(bear.InstanceID))
	assert.Empty(t, b.Main())
	assert.Len(t, b.Sideboard(), 2)
}

func TestBasicLands(t *testing.T) {
	b := deck.NewBuilder(nil, templates())

	forest, err := b.AddBasicLand("Forest")
	require.NoError(t, err)
	_, err = b.AddBasicLand("Forest")
	require.NoError(t, err)
	_, err = b.AddBasicLand("Swamp")
	require.NoError(t, err)
	_, err = b.AddBasicLand("Island")
	assert.ErrorIs(t, err, deck.ErrNoTemplate)

	stats := b.Stats()
	assert.Equal(t, 3, stats.MainCount)
	assert.Equal(t, 3, stats.Lands)
	assert.Equal(t, 2, stats.Basics["Forest"])
	assert.Equal(t, 0, stats.Basics["Island"])

	// added basics leave the deck entirely instead of going to the sideboard
	require.True(t, b.MoveToSideboard(forest.InstanceID))
	assert.Empty(t, b.Sideboard())

	assert.True(t, b.RemoveBasicLand("Swamp"))
	assert.False(t, b.RemoveBasicLand("Swamp"))
	assert.Equal(t, 1, b.Stats().MainCount)
}

func TestSideboardOrder(t *testing.T) {
	pool := []card.Card{
		newCard("Zombie", "Creature", 2, card.Black),
		newCard("Angel", "Creature", 4, card.White),
		newCard("Gold", "Creature", 2, card.Black, card.Red),
		newCard("Aardvark", "Creature", 2, card.Green),
		newCard("Rock", "Artifact", 2),
	}
	b := deck.NewBuilder(pool, nil)

	var names []string
	for _, c := range b.Sideboard() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Rock", "Aardvark", "Zombie", "Gold", "Angel"}, names)
}

func TestBuckets(t *testing.T) {
	pool := []card.Card{
		newCard("Wurm", "Creature — Wurm", 7, card.Green),
		newCard("Bolt", "Instant", 1, card.Red),
		newCard("Charm", "Instant", 2, card.Black, card.Red),
		newCard("Thran Dynamo", "Artifact", 4),
		newCard("Evolving Wilds", "Land", 0),
		newCard("Liliana", "Legendary Planeswalker — Liliana", 3, card.Black),
	}
	b := deck.NewBuilder(pool, templates())
	for _, c := range pool {
		require.True(t, b.MoveToMain(c.InstanceID))
	}
	_, err := b.AddBasicLand("Forest")
	require.NoError(t, err)

	names := func(bucket deck.Bucket) []string {
		out := []string{}
		for _, c := range bucket.Cards {
			out = append(out, c.Name)
		}
		return out
	}

	cmc := b.Buckets(deck.SortCMC)
	require.Len(t, cmc, 8)
	assert.Equal(t, []string{"Forest"}, names(cmc[0]))
	assert.Equal(t, []string{"Evolving Wilds"}, names(cmc[1]))
	assert.Equal(t, []string{"Bolt"}, names(cmc[2]))
	assert.Equal(t, []string{"Wurm"}, names(cmc[7]))

	color := b.Buckets(deck.SortColor)
	require.Len(t, color, 9)
	assert.Equal(t, []string{"Liliana"}, names(color[3]))
	assert.Equal(t, []string{"Charm"}, names(color[6]))
	assert.Equal(t, []string{"Thran Dynamo"}, names(color[7]))
	assert.Equal(t, []string{"Evolving Wilds"}, names(color[8]))

	types := b.Buckets(deck.SortType)
	require.Len(t, types, 6)
	assert.Equal(t, []string{"Wurm"}, names(types[1]))
	assert.Equal(t, []string{"Bolt", "Charm"}, names(types[2]))
	assert.Equal(t, []string{"Thran Dynamo"}, names(types[3]))
	assert.Equal(t, []string{"Liliana"}, names(types[4]))
	assert.Equal(t, []string{"Evolving Wilds"}, names(types[5]))
}

func TestExport(t *testing.T) {
	bear := newCard("Grizzly Bears", "Creature — Bear", 2, card.Green)
	bear2 := newCard("Grizzly Bears", "Creature — Bear", 2, card.Green)
	bolt := newCard("Lightning Bolt", "Instant", 1, card.Red)
	b := deck.NewBuilder([]card.Card{bear, bear2, bolt}, templates())
	require.True(t, b.MoveToMain(bear.InstanceID))
	require.True(t, b.MoveToMain(bear2.InstanceID))
	_, err := b.AddBasicLand("Forest")
	require.NoError(t, err)

	list := b.Export()
	assert.Equal(t, []deck.Count{{Count: 2, Name: "Grizzly Bears"}, {Count: 1, Name: "Forest"}}, list.Main)
	assert.Equal(t, []deck.Count{{Count: 1, Name: "Lightning Bolt"}}, list.Sideboard)

	assert.Equal(t, "Deck\n2 Grizzly Bears\n1 Forest\n\nSideboard\n1 Lightning Bolt\n", b.ExportArena())
}

func TestCurveAndColorCode(t *testing.T) {
	pool := []card.Card{
		newCard("A", "Creature", 0.5, card.White),
		newCard("B", "Creature", 9, card.Blue),
		newCard("C", "Land", 0),
		newCard("D", "Artifact", 3),
		newCard("E", "Instant", 2, card.Black, card.Green),
	}
	curve := deck.Curve(pool)
	assert.Len(t, curve[0], 2)
	assert.Len(t, curve[6], 1)
	assert.Len(t, curve[3], 1)

	var codes []string
	for _, c := range pool {
		codes = append(codes, deck.ColorCode(c))
	}
	assert.Equal(t, []string{"W", "U", "L", "C", "M"}, codes)
}

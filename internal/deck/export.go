package deck

import (
	"fmt"
	"strings"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal/card"
)

type Count struct {
	Count int    `json:"count"`
	Name  string `json:"name"`
}

// List is the exported deck, card names with counts in first-seen order.
type List struct {
	Main      []Count `json:"main"`
	Sideboard []Count `json:"sideboard"`
}

func countNames(cards []card.Card) []Count {
	counts := []Count{}
	index := make(map[string]int)
	for _, c := range cards {
		if i, ok := index[c.Name]; ok {
			counts[i].Count++
			continue
		}
		index[c.Name] = len(counts)
		counts = append(counts, Count{Count: 1, Name: c.Name})
	}
	return counts
}

func (b *Builder) Export() List {
	return List{
		Main:      countNames(b.main),
		Sideboard: countNames(b.side),
	}
}

// ExportArena writes the deck in the plain text import format.
func (b *Builder) ExportArena() string {
	list := b.Export()
	var sb strings.Builder
	sb.WriteString("Deck\n")
	for _, c := range list.Main {
		sb.WriteString(fmt.Sprintf("%d %s\n", c.Count, c.Name))
	}
	if len(list.Sideboard) > 0 {
		sb.WriteString("\nSideboard\n")
		for _, c := range list.Sideboard {
			sb.WriteString(fmt.Sprintf("%d %s\n", c.Count, c.Name))
		}
	}
	return sb.String()
}

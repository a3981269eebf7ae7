package card

import "strings"

// Record is one entry of a set file as written by the offline fetch tool.
// Absent colors mean colorless, an absent cmc falls back to mana_value and then zero and an absent booster flag
// means the card can be opened in boosters.
type Record struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Set             string   `json:"set,omitempty"`
	CollectorNumber string   `json:"collector_number,omitempty"`
	Rarity          string   `json:"rarity"`
	Layout          string   `json:"layout,omitempty"`
	ManaCost        string   `json:"mana_cost,omitempty"`
	ManaValue       *float64 `json:"cmc,omitempty"`
	ManaValueAlt    *float64 `json:"mana_value,omitempty"` // older exports name cmc this way
	TypeLine        string   `json:"type_line"`
	Colors          []string `json:"colors,omitempty"`
	ColorIdentity   []string `json:"color_identity,omitempty"`
	Booster         *bool    `json:"booster,omitempty"`
	Image           string   `json:"image,omitempty"`
	BackImage       string   `json:"back_image,omitempty"`
	OracleText      string   `json:"oracle_text,omitempty"`
	Foil            bool     `json:"is_foil,omitempty"`
}

func (r Record) BoosterEligible() bool {
	return r.Booster == nil || *r.Booster
}

func (r Record) IsBasicLand() bool {
	return strings.Contains(r.TypeLine, "Basic Land")
}

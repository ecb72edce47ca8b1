// Package rules holds the reference tables of the game: abilities and
// their score modifiers, augurs, occupations, classes and crit tables.
package rules

import (
	"github.com/mhtoin/initbot/internal/match"
)

type Ability struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AbilityModifier struct {
	Score         int `json:"score"`
	Mod           int `json:"mod"`
	Spells        int `json:"spells"`
	MaxSpellLevel int `json:"max_spell_level"`
}

type Augur struct {
	Roll        int    `json:"roll"`
	Description string `json:"description"`
}

type Occupation struct {
	Roll   match.Bound `json:"roll"`
	Name   string      `json:"name"`
	Weapon string      `json:"weapon"`
	Goods  string      `json:"goods"`
}

type SpellsByLevel struct {
	Level  int `json:"level"`
	Spells int `json:"spells"`
}

// Level is one row of a class progression table.
type Level struct {
	Level         int             `json:"level"`
	AttackDie     string          `json:"attack_die"`
	CritDie       string          `json:"crit_die"`
	CritTable     int             `json:"crit_table"`
	ActionDice    []string        `json:"action_dice"`
	Ref           int             `json:"ref"`
	Fort          int             `json:"fort"`
	Will          int             `json:"will"`
	SpellsByLevel []SpellsByLevel `json:"spells_by_level"`
	ThiefLuckDie  int             `json:"thief_luck_die"`
	ThreatRange   []int           `json:"threat_range"`
	Spells        int             `json:"spells"`
	MaxSpellLevel int             `json:"max_spell_level"`
	SneakHide     int             `json:"sneak_hide"`
}

type Class struct {
	Name    string   `json:"name"`
	HitDie  int      `json:"hit_die"`
	Weapons []string `json:"weapons"`
	Levels  []Level  `json:"levels"`
}

type Crit struct {
	Roll   match.Bound `json:"roll"`
	Effect string      `json:"effect"`
}

type CritTable struct {
	Number int    `json:"number"`
	Crits  []Crit `json:"crits"`
}

// Book is a complete set of reference tables.
type Book struct {
	Abilities   []Ability
	Modifiers   []AbilityModifier
	Augurs      []Augur
	Occupations []Occupation
	Classes     []Class
	CritTables  []CritTable
}

// Alignments a character can be generated with.
func Alignments() []string {
	return []string{"Lawful", "Neutral", "Chaotic"}
}

var xpThresholds = [...]int{0, 10, 50, 110, 190, 290, 410, 550, 710, 890, 1090}

// XPThresholds lists the experience needed to reach each level, indexed
// by level.
func XPThresholds() []int {
	return append([]int(nil), xpThresholds[:]...)
}

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/calder-games/arena/internal/game/combat"
)

// statBlock is the YAML shape of one combatant template's stats.
type statBlock struct {
	Name           string  `yaml:"name"`
	Attack         float64 `yaml:"attack"`
	Defense        float64 `yaml:"defense"`
	CriticalChance float64 `yaml:"critical_chance"`
	HitRating      int     `yaml:"hit_rating"`
	Evasion        int     `yaml:"evasion"`
	Health         int     `yaml:"health"`
}

// enemySpawn is one enemy template plus spawn count and rewards.
type enemySpawn struct {
	statBlock `yaml:",inline"`
	// LootTable keys into the loot-table file; empty means no drops.
	LootTable  string `yaml:"loot_table"`
	Experience int    `yaml:"experience"`
	Count      int    `yaml:"count"`
}

// Roster is the YAML skirmish definition: one player versus a set of enemy
// spawns.
type Roster struct {
	Player  statBlock    `yaml:"player"`
	Enemies []enemySpawn `yaml:"enemies"`
}

func (r *Roster) validate() error {
	if r.Player.Health <= 0 {
		return fmt.Errorf("roster: player health must be > 0, got %d", r.Player.Health)
	}
	if len(r.Enemies) == 0 {
		return fmt.Errorf("roster: at least one enemy spawn is required")
	}
	for i, e := range r.Enemies {
		if e.Health <= 0 {
			return fmt.Errorf("roster: enemies[%d] health must be > 0, got %d", i, e.Health)
		}
		if e.Count < 1 {
			return fmt.Errorf("roster: enemies[%d] count must be >= 1, got %d", i, e.Count)
		}
	}
	return nil
}

// LoadRoster reads and validates a skirmish roster YAML file.
func LoadRoster(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, fmt.Errorf("reading roster: %w", err)
	}
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Roster{}, fmt.Errorf("unmarshalling roster: %w", err)
	}
	if err := r.validate(); err != nil {
		return Roster{}, err
	}
	return r, nil
}

// DefaultRoster is the built-in skirmish used when no roster file is given:
// one player against two gangers.
func DefaultRoster() Roster {
	return Roster{
		Player: statBlock{
			Name:           "Vanguard",
			Attack:         12,
			Defense:        4,
			CriticalChance: 15,
			HitRating:      90,
			Evasion:        70,
			Health:         140,
		},
		Enemies: []enemySpawn{{
			statBlock: statBlock{
				Name:      "Ganger",
				Attack:    8,
				Defense:   2,
				HitRating: 60,
				Evasion:   50,
				Health:    60,
			},
			LootTable:  "ganger",
			Experience: 25,
			Count:      2,
		}},
	}
}

func attrsFrom(s statBlock) combat.Attributes {
	return combat.Attributes{
		Attack:         s.Attack,
		Defense:        s.Defense,
		CriticalChance: s.CriticalChance,
		HitRating:      s.HitRating,
		Evasion:        s.Evasion,
		Health:         s.Health,
	}
}

// Spawn instantiates the roster's combatants with spaced-out positions: the
// player at the origin, enemies fanned out to the right. Returns the player,
// the enemy list, and a map from enemy ID to loot-table key.
func (r Roster) Spawn() (*combat.Combatant, []*combat.Combatant, map[string]string) {
	player := combat.NewCombatant("", r.Player.Name, combat.KindPlayer, attrsFrom(r.Player))

	var enemies []*combat.Combatant
	lootKeys := make(map[string]string)
	idx := 0
	for _, spawn := range r.Enemies {
		for n := 0; n < spawn.Count; n++ {
			e := combat.NewCombatant("", spawn.Name, combat.KindEnemy, attrsFrom(spawn.statBlock))
			e.ExperienceReward = spawn.Experience
			e.X = 240 + float64(idx)*96
			e.Y = float64((idx%3)-1) * 48
			if spawn.LootTable != "" {
				lootKeys[e.ID] = spawn.LootTable
			}
			enemies = append(enemies, e)
			idx++
		}
	}
	return player, enemies, lootKeys
}

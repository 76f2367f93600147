// Package loot provides the YAML loot-table schema and drop generation for
// slain combatants.
package loot

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/calder-games/arena/internal/game/rng"
)

// CurrencyDrop defines the range of currency a combatant can drop on death.
type CurrencyDrop struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// ItemDrop defines a single item entry in a loot table with a drop chance.
type ItemDrop struct {
	ItemID string  `yaml:"item"`
	Chance float64 `yaml:"chance"`
	MinQty int     `yaml:"min_qty"`
	MaxQty int     `yaml:"max_qty"`
}

// Table defines the possible drops for one combatant template.
type Table struct {
	Currency *CurrencyDrop `yaml:"currency"`
	Items    []ItemDrop    `yaml:"items"`
}

// Validate checks that the loot table satisfies its invariants.
//
// Postcondition: Returns nil iff all currency and item constraints hold;
// an empty loot table (no currency, no items) is valid.
func (t *Table) Validate() error {
	if t.Currency != nil {
		if t.Currency.Min < 0 {
			return fmt.Errorf("loot table: currency min must be >= 0, got %d", t.Currency.Min)
		}
		if t.Currency.Min > t.Currency.Max {
			return fmt.Errorf("loot table: currency min (%d) must be <= max (%d)", t.Currency.Min, t.Currency.Max)
		}
	}
	for i, item := range t.Items {
		if item.ItemID == "" {
			return fmt.Errorf("loot table: item[%d] must have a non-empty item id", i)
		}
		if item.Chance <= 0 || item.Chance > 1.0 {
			return fmt.Errorf("loot table: item[%d] chance must be in (0, 1.0], got %f", i, item.Chance)
		}
		if item.MinQty < 1 {
			return fmt.Errorf("loot table: item[%d] min_qty must be >= 1, got %d", i, item.MinQty)
		}
		if item.MinQty > item.MaxQty {
			return fmt.Errorf("loot table: item[%d] min_qty (%d) must be <= max_qty (%d)", i, item.MinQty, item.MaxQty)
		}
	}
	return nil
}

// Item represents a single item instance in a generated drop.
type Item struct {
	ItemDefID  string
	InstanceID string
	Quantity   int
}

// Result holds the generated drop from a single kill.
type Result struct {
	Currency int
	Items    []Item
}

// Generate rolls a drop from the given Table.
//
// Precondition: t must have passed Validate; src must be non-nil.
// Postcondition: Currency is in [Currency.Min, Currency.Max] when currency is
// set; each item's Quantity is in [MinQty, MaxQty] for items that pass the
// chance roll.
func Generate(t Table, src rng.Source) Result {
	var result Result

	if t.Currency != nil && t.Currency.Max > 0 {
		spread := t.Currency.Max - t.Currency.Min
		if spread == 0 {
			result.Currency = t.Currency.Min
		} else {
			result.Currency = t.Currency.Min + src.Intn(spread+1)
		}
	}

	for _, item := range t.Items {
		if src.Float64() < item.Chance {
			qty := item.MinQty
			spread := item.MaxQty - item.MinQty
			if spread > 0 {
				qty += src.Intn(spread + 1)
			}
			result.Items = append(result.Items, Item{
				ItemDefID:  item.ItemID,
				InstanceID: uuid.New().String(),
				Quantity:   qty,
			})
		}
	}

	return result
}

// LoadTables reads a YAML file mapping template IDs to loot tables and
// validates every table.
//
// Precondition: path must point at a readable YAML file.
// Postcondition: Every returned Table has passed Validate.
func LoadTables(path string) (map[string]Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading loot tables: %w", err)
	}

	var tables map[string]Table
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("unmarshalling loot tables: %w", err)
	}

	for id, t := range tables {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("loot table %q: %w", id, err)
		}
	}
	return tables, nil
}

// Package loader reads ability catalogs from YAML files and turns them
// into simulation rosters. Catalog durations are expressed in seconds and
// converted to ticks here; the engine itself never sees wall time.
package loader

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/sbremner/RsOptimizer/internal/models"
	"github.com/sbremner/RsOptimizer/internal/rules"
)

// TickSeconds is the real-time length of one tick in the reference
// scenario.
const TickSeconds = 0.6

// ToTicks converts a duration in seconds to whole ticks, rounding up.
func ToTicks(sec float64) int {
	return int(math.Ceil(sec / TickSeconds))
}

// ModifierDef describes a modifier template in the catalog.
type ModifierDef struct {
	Name            string  `yaml:"name"`
	Multiplier      float64 `yaml:"multiplier"`
	DurationSeconds float64 `yaml:"duration_seconds"`
	OneTimeUse      bool    `yaml:"one_time_use"`
}

// RuleDef describes an action's eligibility rule. Kind selects one of the
// built-in variants or "expr" for a custom compiled condition.
type RuleDef struct {
	Kind    string  `yaml:"kind"`
	Min     float64 `yaml:"min"`
	Sibling string  `yaml:"sibling"`
	Expr    string  `yaml:"expr"`
	Negate  bool    `yaml:"negate"`
}

// ActionDef describes one ability record. Optional fields use pointers so
// an omitted field is distinguishable from an explicit zero.
type ActionDef struct {
	Name             string   `yaml:"name"`
	Min              float64  `yaml:"min"`
	Max              float64  `yaml:"max"`
	CooldownSeconds  float64  `yaml:"cooldown_seconds"`
	Ticks            int      `yaml:"ticks"`
	AdrenalineChange *float64 `yaml:"adrenaline_change"`
	AccuracyMod      float64  `yaml:"accuracy_mod"`
	NumberOfHits     int      `yaml:"number_of_hits"`
	Modable          *bool    `yaml:"modable"`
	Mod              string   `yaml:"mod"`
	AlwaysUse        bool     `yaml:"always_use"`
	Enabled          *bool    `yaml:"enabled"`
	Equipment        string   `yaml:"equipment"`
	Rule             *RuleDef `yaml:"rule"`
	BuddyActions     []string `yaml:"buddy_actions"`
}

// Catalog maps style keys to ordered ability definitions, with a shared
// pool of named modifier templates.
type Catalog struct {
	Modifiers []ModifierDef          `yaml:"modifiers"`
	Styles    map[string][]ActionDef `yaml:"styles"`
}

// LoadCatalog reads and parses an ability catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	return &catalog, nil
}

// StyleNames returns the catalog's style keys in sorted order.
func (c *Catalog) StyleNames() []string {
	names := make([]string, 0, len(c.Styles))
	for name := range c.Styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Actions builds the roster for a style key, applying defaults, resolving
// modifier templates by name and compiling eligibility rules. An empty
// equipment filter keeps every record.
func (c *Catalog) Actions(style, equipment string) ([]*models.Action, error) {
	defs, ok := c.Styles[style]
	if !ok {
		return nil, fmt.Errorf("unknown style %q", style)
	}

	mods := make(map[string]*models.Modifier, len(c.Modifiers))
	for _, def := range c.Modifiers {
		mods[def.Name] = models.NewModifier(
			def.Name, def.Multiplier, ToTicks(def.DurationSeconds), def.OneTimeUse)
	}

	var actions []*models.Action
	for _, def := range defs {
		if equipment != "" && def.Equipment != "" && def.Equipment != equipment {
			continue
		}

		action, err := buildAction(def, mods)
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", def.Name, err)
		}
		actions = append(actions, action)
	}

	return actions, nil
}

func buildAction(def ActionDef, mods map[string]*models.Modifier) (*models.Action, error) {
	action := models.NewAction(def.Name, def.Min, def.Max, ToTicks(def.CooldownSeconds))

	if def.Ticks > 0 {
		action.Ticks = def.Ticks
	}
	if def.AdrenalineChange != nil {
		action.AdrenalineChange = *def.AdrenalineChange
	}
	if def.NumberOfHits > 0 {
		action.NumberOfHits = def.NumberOfHits
	}
	if def.Modable != nil {
		action.Modable = *def.Modable
	}
	if def.Enabled != nil {
		action.Enabled = *def.Enabled
	}

	action.AccuracyMod = def.AccuracyMod
	action.AlwaysUse = def.AlwaysUse
	action.Equipment = def.Equipment
	action.BuddyActions = append([]string(nil), def.BuddyActions...)

	if def.Mod != "" {
		template, ok := mods[def.Mod]
		if !ok {
			return nil, fmt.Errorf("unknown modifier %q", def.Mod)
		}
		action.Mod = template
	}

	if def.Rule != nil {
		rule, err := rules.New(def.Rule.Kind, def.Rule.Min, def.Rule.Sibling, def.Rule.Expr)
		if err != nil {
			return nil, err
		}
		action.Rule = rule
		action.NegativeRule = def.Rule.Negate
	}

	return action, nil
}

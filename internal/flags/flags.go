// Package flags holds the ledger's feature flags. A registry is built once
// from configuration and never changes afterwards.
package flags

import (
	"fmt"
	"maps"
	"slices"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/log"
)

const (
	// FlagSQLitePersistence stores the registries in SQLite. When off the
	// ledger runs in memory and forgets everything on exit.
	FlagSQLitePersistence = "sqlite-persistence"

	// FlagReplayGuard rejects a command whose ID was already processed.
	FlagReplayGuard = "replay-guard"

	// FlagReadCache puts a read-through cache in front of the repositories.
	FlagReadCache = "read-cache"
)

// Flag describes one feature flag.
type Flag struct {
	Name        string
	Default     bool
	Description string
}

var catalog = []Flag{
	{FlagReadCache, false, "cache recently read records in memory"},
	{FlagReplayGuard, true, "reject a transaction ID seen within the replay window"},
	{FlagSQLitePersistence, true, "store the registries in SQLite instead of memory"},
}

// Catalog returns every flag the ledger reads, sorted by name.
func Catalog() []Flag {
	return slices.Clone(catalog)
}

// Known returns the flag names, sorted.
func Known() []string {
	names := make([]string, len(catalog))
	for i, f := range catalog {
		names[i] = f.Name
	}
	return names
}

// IsKnown reports whether the ledger reads a flag called name.
func IsKnown(name string) bool {
	return slices.ContainsFunc(catalog, func(f Flag) bool { return f.Name == name })
}

// Defaults returns the value of every flag when configuration names none.
func Defaults() map[string]bool {
	values := make(map[string]bool, len(catalog))
	for _, f := range catalog {
		values[f.Name] = f.Default
	}
	return values
}

// Registry answers flag lookups. The zero value and nil both report every
// flag as disabled.
type Registry struct {
	values map[string]bool
}

// New copies values into a registry. Names missing from values are disabled.
func New(values map[string]bool) *Registry {
	r := &Registry{values: maps.Clone(values)}
	if r.values == nil {
		r.values = map[string]bool{}
	}
	log.Debug(log.CatConfig, "feature flags loaded", "flags", fmt.Sprint(r.values))
	return r
}

// Resolve builds a registry from the defaults overlaid with overrides.
func Resolve(overrides map[string]bool) *Registry {
	values := Defaults()
	maps.Copy(values, overrides)
	return New(values)
}

// Enabled reports whether name is switched on.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	return r.values[name]
}

// All returns a copy of the registry's values.
func (r *Registry) All() map[string]bool {
	if r == nil || r.values == nil {
		return map[string]bool{}
	}
	return maps.Clone(r.values)
}

package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	sources    = make(map[string]SourceDefinition)
	registry   = make(map[string]registeredOutput)
	nextSeq    int
	registryMu sync.RWMutex
)

type registeredOutput struct {
	def OutputDefinition
	seq int
}

// RegisterSource adds a source definition to the registry.
// Panics if a source with the same key is already registered.
func RegisterSource(def SourceDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := sources[def.Key]; exists {
		panic(fmt.Sprintf("source already registered: %s", def.Key))
	}
	if def.FileName == "" {
		def.FileName = def.Key + ".tsv"
	}
	sources[def.Key] = def
}

// Register adds an output definition to the registry.
// Panics if an output with the same key is already registered.
func Register(def OutputDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("table already registered: %s", def.Info.Key))
	}

	// Populate Columns from FieldSpecs if not set
	if len(def.Info.Columns) == 0 && len(def.FieldSpecs) > 0 {
		def.Info.Columns = make([]string, len(def.FieldSpecs))
		for i, spec := range def.FieldSpecs {
			def.Info.Columns[i] = spec.Name
		}
	}

	registry[def.Info.Key] = registeredOutput{def: def, seq: nextSeq}
	nextSeq++
}

// Get returns an output definition by key.
// Returns false if not found.
func Get(key string) (OutputDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	r, ok := registry[key]
	return r.def, ok
}

// GetSource returns a source definition by key.
func GetSource(key string) (SourceDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := sources[key]
	return def, ok
}

// Sources returns all registered sources in processing order.
func Sources() []SourceDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]SourceDefinition, 0, len(sources))
	for _, def := range sources {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].Key < result[j].Key
	})
	return result
}

// All returns all registered output definitions.
// Sorted by source order, then by registration order.
func All() []OutputDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	entries := make([]registeredOutput, 0, len(registry))
	for _, r := range registry {
		entries = append(entries, r)
	}

	sort.Slice(entries, func(i, j int) bool {
		oi, oj := sourceOrder(entries[i].def.Info.Source), sourceOrder(entries[j].def.Info.Source)
		if oi != oj {
			return oi < oj
		}
		return entries[i].seq < entries[j].seq
	})

	result := make([]OutputDefinition, len(entries))
	for i, e := range entries {
		result[i] = e.def
	}
	return result
}

// BySource returns the outputs derived from one source, in registration order.
func BySource(source string) []OutputDefinition {
	var result []OutputDefinition
	for _, def := range All() {
		if def.Info.Source == source {
			result = append(result, def)
		}
	}
	return result
}

// sourceOrder must be called with registryMu held.
func sourceOrder(key string) int {
	if s, ok := sources[key]; ok {
		return s.Order
	}
	return int(^uint(0) >> 1)
}

// TableCount returns the number of registered outputs.
func TableCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered sources and outputs.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	sources = make(map[string]SourceDefinition)
	registry = make(map[string]registeredOutput)
	nextSeq = 0
}

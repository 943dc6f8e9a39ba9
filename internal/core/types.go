package core

import (
	"fmt"
	"sort"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Rule maps a cell's current state and its neighbor states to the next
// state. Implementations must be pure: the engine may call them from several
// goroutines and hands them views that are only valid for the call.
type Rule func(current State, neighbors []State) State

// RuleSpec bundles a transition rule with the defaults it was designed for.
type RuleSpec struct {
	Name         string
	Description  string
	Rule         Rule
	Arity        int
	Neighborhood Neighborhood
	Edge         EdgeRule
}

// Catalog holds named rule specs. Each sims package adds its rules through a
// Register function; there is no package-level registry.
type Catalog struct {
	specs map[string]RuleSpec
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{specs: map[string]RuleSpec{}}
}

// Register adds spec under spec.Name, replacing any previous entry.
func (c *Catalog) Register(spec RuleSpec) error {
	if spec.Name == "" || spec.Rule == nil {
		return fmt.Errorf("rule spec %q is incomplete", spec.Name)
	}
	if spec.Arity <= 0 {
		spec.Arity = 1
	}
	if len(spec.Neighborhood.Offsets) == 0 {
		spec.Neighborhood = Moore()
	}
	c.specs[spec.Name] = spec
	return nil
}

// Lookup returns the spec registered under name.
func (c *Catalog) Lookup(name string) (RuleSpec, bool) {
	spec, ok := c.specs[name]
	return spec, ok
}

// Names lists registered rule names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.specs))
	for name := range c.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

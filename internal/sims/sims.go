// Package sims collects the rules that ship with mnist-ca.
package sims

import (
	"mnist-ca/internal/core"
	"mnist-ca/internal/sims/briansbrain"
	"mnist-ca/internal/sims/life"
	"mnist-ca/internal/sims/mnist"
)

// Catalog returns a catalog holding every bundled rule.
func Catalog() (*core.Catalog, error) {
	c := core.NewCatalog()
	for _, register := range []func(*core.Catalog) error{
		mnist.Register,
		life.Register,
		briansbrain.Register,
	} {
		if err := register(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

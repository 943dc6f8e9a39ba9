package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"mnist-ca/internal/core"
	"mnist-ca/internal/features"
	"mnist-ca/internal/storage"

	"github.com/gosuri/uitable"
)

func newTable() *uitable.Table {
	t := uitable.New()
	t.MaxColWidth = 40
	t.Wrap = false
	return t
}

// DigitTable prints per-digit counts, means and standard deviations.
func DigitTable(w io.Writer, stats []features.DigitStats) error {
	t := newTable()
	t.AddRow("Digit", "Images", "Mean", "StdDev")
	for _, s := range stats {
		t.AddRow(s.Digit, s.Count, formatFloat(s.Mean), formatFloat(s.StdDev))
	}
	_, err := fmt.Fprintln(w, t)
	return err
}

// RunsTable lists stored runs, oldest first.
func RunsTable(w io.Writer, runs []storage.Run) error {
	t := newTable()
	t.AddRow("ID", "Created", "Rule", "Edge", "Grid", "Steps", "Digits", "Images")
	for _, r := range runs {
		t.AddRow(
			r.ID,
			r.CreatedAt.Format(time.RFC3339),
			r.Rule,
			r.Edge,
			fmt.Sprintf("%dx%d", r.Height, r.Width),
			fmt.Sprintf("%d/%d", r.Steps, r.EvolutionsPerStep),
			joinInts(r.Digits),
			r.Images,
		)
	}
	_, err := fmt.Fprintln(w, t)
	return err
}

// RulesTable lists the rules registered in c.
func RulesTable(w io.Writer, c *core.Catalog) error {
	t := newTable()
	t.AddRow("Rule", "Arity", "Neighborhood", "Edge", "Description")
	for _, name := range c.Names() {
		spec, _ := c.Lookup(name)
		t.AddRow(spec.Name, spec.Arity, spec.Neighborhood.Name, spec.Edge.String(), spec.Description)
	}
	_, err := fmt.Fprintln(w, t)
	return err
}

// ParametersTable flattens a parameter snapshot into group/label/value rows.
func ParametersTable(w io.Writer, snap core.ParameterSnapshot) error {
	t := newTable()
	t.AddRow("Group", "Parameter", "Value")
	for _, g := range snap.Groups {
		for _, p := range g.Params {
			t.AddRow(g.Name, p.Label, p.Value)
		}
	}
	_, err := fmt.Fprintln(w, t)
	return err
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

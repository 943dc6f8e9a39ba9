package core

import "strconv"

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeString denotes enumerated or free-form parameters.
	ParamTypeString ParamType = "string"
)

// Parameter describes a single configuration value of a run.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the configuration of an automaton or a run.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Parameters describes the automaton's topology and progress.
func (a *Automaton) Parameters() ParameterSnapshot {
	return ParameterSnapshot{Groups: []ParameterGroup{
		{
			Name: "Grid",
			Params: []Parameter{
				IntParam("h", "Height", a.cfg.Height),
				IntParam("w", "Width", a.cfg.Width),
				IntParam("arity", "Arity", a.cfg.Arity),
			},
		},
		{
			Name: "Topology",
			Params: []Parameter{
				StringParam("neighborhood", "Neighborhood", a.cfg.Neighborhood.Name),
				StringParam("edge", "Edge rule", a.cfg.Edge.String()),
			},
		},
		{
			Name: "Progress",
			Params: []Parameter{
				IntParam("generation", "Generation", a.generation),
			},
		},
	}}
}

// IntParam builds an integer parameter.
func IntParam(key, label string, value int) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.Itoa(value)}
}

// FloatParam builds a floating-point parameter.
func FloatParam(key, label string, value float64) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}

// StringParam builds a string parameter.
func StringParam(key, label, value string) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeString, Value: value}
}

// Package profiles provides a registry of parameterized drug presets
// that generate ready-to-run simulation problems.
package profiles

import (
	"fmt"
	"sort"

	"github.com/sidd-1337/druglevelmodelingapp/kinetics"
)

// Profile defines a parameterized drug preset.
type Profile interface {
	Name() string
	Description() string
	Unit() string
	Parameters() []Parameter
	Generate(params map[string]interface{}) (kinetics.Problem, error)
}

// Parameter defines a profile parameter.
type Parameter struct {
	Name        string
	Description string
	Type        string // "int", "float"
	Default     interface{}
	Min         *float64
	Max         *float64
}

// Registry holds all available profiles.
var Registry = map[string]Profile{
	"generic":     &GenericProfile{},
	"caffeine":    &CaffeineProfile{},
	"long-acting": &LongActingProfile{},
}

// Get returns a profile by name.
func Get(name string) (Profile, error) {
	p, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown profile: %s", name)
	}
	return p, nil
}

// List returns all available profile names, sorted.
func List() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func getFloatParam(params map[string]interface{}, name string, def float64) float64 {
	v, ok := params[name]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	default:
		return def
	}
}

func getIntParam(params map[string]interface{}, name string, def int) int {
	v, ok := params[name]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(t)
	default:
		return def
	}
}

func floatPtr(f float64) *float64 { return &f }

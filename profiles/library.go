package profiles

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sidd-1337/druglevelmodelingapp/kinetics"
)

// ErrInvalidProfile marks a profile library entry that fails validation.
// Check with errors.Is.
var ErrInvalidProfile = errors.New("profiles: invalid profile")

// DoseSpec is one redosing line of a library profile.
type DoseSpec struct {
	Hour   int     `yaml:"hour"`
	Amount float64 `yaml:"amount"`
}

// Spec is a drug profile defined in a YAML library file.
type Spec struct {
	Name                 string     `yaml:"name"`
	Description          string     `yaml:"description"`
	Unit                 string     `yaml:"unit"`
	InitialConcentration float64    `yaml:"initial_concentration"`
	HalfLifeMin          float64    `yaml:"half_life_min"`
	HalfLifeMax          float64    `yaml:"half_life_max"`
	Duration             int        `yaml:"duration"`
	Redose               []DoseSpec `yaml:"redose"`
}

// Library is a collection of YAML-defined profiles.
type Library struct {
	Profiles []Spec `yaml:"profiles"`
}

// LoadLibrary reads and validates a profile library file.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}

	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parse library: %w", err)
	}

	for i := range lib.Profiles {
		if err := lib.Profiles[i].validate(); err != nil {
			return nil, err
		}
	}

	return &lib, nil
}

func (s *Spec) validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidProfile)
	}
	if s.HalfLifeMin <= 0 || s.HalfLifeMax <= 0 {
		return fmt.Errorf("%w: %s: half-lives must be positive", ErrInvalidProfile, s.Name)
	}
	if s.HalfLifeMin >= s.HalfLifeMax {
		return fmt.Errorf("%w: %s: half_life_min must be less than half_life_max", ErrInvalidProfile, s.Name)
	}
	if s.InitialConcentration < 0 {
		return fmt.Errorf("%w: %s: initial concentration must be non-negative", ErrInvalidProfile, s.Name)
	}
	if s.Duration < 1 {
		return fmt.Errorf("%w: %s: duration must be positive", ErrInvalidProfile, s.Name)
	}
	for _, d := range s.Redose {
		if d.Hour < 0 || d.Hour > 23 {
			return fmt.Errorf("%w: %s: redose hour %d out of range [0,23]", ErrInvalidProfile, s.Name, d.Hour)
		}
		if d.Amount < 0 {
			return fmt.Errorf("%w: %s: redose amount must be non-negative", ErrInvalidProfile, s.Name)
		}
	}
	return nil
}

// Problem converts a library spec into a simulation problem.
// Duplicate redose hours collapse last-wins, as in the simulator.
func (s *Spec) Problem() kinetics.Problem {
	entries := make([]kinetics.Entry, 0, len(s.Redose))
	for _, d := range s.Redose {
		entries = append(entries, kinetics.Entry{Hour: d.Hour, Amount: d.Amount})
	}
	return kinetics.Problem{
		InitialConcentration: s.InitialConcentration,
		HalfLifeMin:          s.HalfLifeMin,
		HalfLifeMax:          s.HalfLifeMax,
		Schedule:             kinetics.NewSchedule(entries),
		Duration:             s.Duration,
	}
}

// Register adds every library profile to the registry, keyed by name.
// Library entries shadow built-ins with the same name.
func (l *Library) Register() {
	for i := range l.Profiles {
		spec := l.Profiles[i]
		Registry[spec.Name] = &libraryProfile{spec: spec}
	}
}

// libraryProfile adapts a Spec to the Profile interface.
type libraryProfile struct {
	spec Spec
}

func (p *libraryProfile) Name() string        { return p.spec.Name }
func (p *libraryProfile) Description() string { return p.spec.Description }
func (p *libraryProfile) Unit() string        { return p.spec.Unit }

func (p *libraryProfile) Parameters() []Parameter {
	return []Parameter{
		{Name: "initial", Description: "Initial concentration", Type: "float", Default: p.spec.InitialConcentration, Min: floatPtr(0)},
		{Name: "duration", Description: "Duration in hours", Type: "int", Default: p.spec.Duration, Min: floatPtr(1)},
	}
}

func (p *libraryProfile) Generate(params map[string]interface{}) (kinetics.Problem, error) {
	prob := p.spec.Problem()
	prob.InitialConcentration = getFloatParam(params, "initial", prob.InitialConcentration)
	prob.Duration = getIntParam(params, "duration", prob.Duration)
	return prob, nil
}

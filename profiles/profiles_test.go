package profiles

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRegistry(t *testing.T) {
	names := List()
	if len(names) < 3 {
		t.Fatalf("Expected at least 3 built-in profiles, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Expected sorted names, got %v", names)
		}
	}

	p, err := Get("caffeine")
	if err != nil {
		t.Fatalf("Get(caffeine) failed: %v", err)
	}
	if p.Name() != "caffeine" || p.Unit() != "mg" {
		t.Errorf("Unexpected profile: %s / %s", p.Name(), p.Unit())
	}

	if _, err := Get("no-such-drug"); err == nil {
		t.Error("Expected error for unknown profile")
	}
}

func TestGenerateDefaults(t *testing.T) {
	for _, name := range List() {
		p, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%s) failed: %v", name, err)
		}

		prob, err := p.Generate(nil)
		if err != nil {
			t.Fatalf("Generate(%s) failed: %v", name, err)
		}
		if prob.HalfLifeMin <= 0 || prob.HalfLifeMin >= prob.HalfLifeMax {
			t.Errorf("%s: invalid half-life range %g-%g", name, prob.HalfLifeMin, prob.HalfLifeMax)
		}
		if prob.Duration < 1 {
			t.Errorf("%s: invalid duration %d", name, prob.Duration)
		}
		for hour := range prob.Schedule {
			if hour < 0 || hour > 23 {
				t.Errorf("%s: schedule hour %d out of range", name, hour)
			}
		}
	}
}

func TestGenerateOverrides(t *testing.T) {
	p, _ := Get("generic")
	prob, err := p.Generate(map[string]interface{}{
		"initial":   200.0,
		"dose":      75.0,
		"dose_hour": 20,
		"duration":  24,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if prob.InitialConcentration != 200.0 {
		t.Errorf("Expected initial 200, got %g", prob.InitialConcentration)
	}
	if prob.Schedule[20] != 75.0 {
		t.Errorf("Expected dose 75 at hour 20, got %v", prob.Schedule)
	}
	if prob.Duration != 24 {
		t.Errorf("Expected duration 24, got %d", prob.Duration)
	}
}

const validLibrary = `profiles:
  - name: examplamine
    description: Example drug
    unit: mcg/mL
    initial_concentration: 50
    half_life_min: 3.5
    half_life_max: 5
    duration: 96
    redose:
      - hour: 9
        amount: 25
      - hour: 21
        amount: 25
`

func writeLibrary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write library: %v", err)
	}
	return path
}

func TestLoadLibrary(t *testing.T) {
	lib, err := LoadLibrary(writeLibrary(t, validLibrary))
	if err != nil {
		t.Fatalf("LoadLibrary failed: %v", err)
	}
	if len(lib.Profiles) != 1 {
		t.Fatalf("Expected 1 profile, got %d", len(lib.Profiles))
	}

	spec := lib.Profiles[0]
	prob := spec.Problem()
	if prob.HalfLifeMin != 3.5 || prob.HalfLifeMax != 5 {
		t.Errorf("Unexpected half-life range: %g-%g", prob.HalfLifeMin, prob.HalfLifeMax)
	}
	if prob.Schedule[9] != 25 || prob.Schedule[21] != 25 {
		t.Errorf("Unexpected schedule: %v", prob.Schedule)
	}
}

func TestLoadLibraryInvalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{
			name: "reversed half-lives",
			content: `profiles:
  - name: bad
    half_life_min: 10
    half_life_max: 5
    duration: 24
`,
		},
		{
			name: "zero half-life",
			content: `profiles:
  - name: bad
    half_life_min: 0
    half_life_max: 5
    duration: 24
`,
		},
		{
			name: "missing name",
			content: `profiles:
  - half_life_min: 1
    half_life_max: 2
    duration: 24
`,
		},
		{
			name: "bad redose hour",
			content: `profiles:
  - name: bad
    half_life_min: 1
    half_life_max: 2
    duration: 24
    redose:
      - hour: 24
        amount: 10
`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := LoadLibrary(writeLibrary(t, c.content))
			if !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("Expected ErrInvalidProfile, got %v", err)
			}
		})
	}
}

func TestLibraryRegister(t *testing.T) {
	lib, err := LoadLibrary(writeLibrary(t, validLibrary))
	if err != nil {
		t.Fatalf("LoadLibrary failed: %v", err)
	}

	lib.Register()
	defer delete(Registry, "examplamine")

	p, err := Get("examplamine")
	if err != nil {
		t.Fatalf("Expected registered profile: %v", err)
	}
	if p.Unit() != "mcg/mL" {
		t.Errorf("Expected unit mcg/mL, got %s", p.Unit())
	}

	prob, err := p.Generate(map[string]interface{}{"duration": 48})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if prob.Duration != 48 {
		t.Errorf("Expected override duration 48, got %d", prob.Duration)
	}
	if prob.InitialConcentration != 50 {
		t.Errorf("Expected library initial 50, got %g", prob.InitialConcentration)
	}
}

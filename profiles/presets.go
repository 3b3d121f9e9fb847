package profiles

import (
	"github.com/sidd-1337/druglevelmodelingapp/kinetics"
)

// GenericProfile models a typical drug with a 6-12 hour half-life range
// and a single daily morning dose.
type GenericProfile struct{}

func (p *GenericProfile) Name() string        { return "generic" }
func (p *GenericProfile) Description() string { return "Generic drug, 6-12 h half-life, daily morning redose" }
func (p *GenericProfile) Unit() string        { return "mg/L" }

func (p *GenericProfile) Parameters() []Parameter {
	return []Parameter{
		{Name: "initial", Description: "Initial concentration", Type: "float", Default: 100.0, Min: floatPtr(0)},
		{Name: "dose", Description: "Daily redose amount", Type: "float", Default: 50.0, Min: floatPtr(0)},
		{Name: "dose_hour", Description: "Hour of day for the redose", Type: "int", Default: 8, Min: floatPtr(0), Max: floatPtr(23)},
		{Name: "duration", Description: "Duration in hours", Type: "int", Default: 72, Min: floatPtr(1)},
	}
}

func (p *GenericProfile) Generate(params map[string]interface{}) (kinetics.Problem, error) {
	return kinetics.Problem{
		InitialConcentration: getFloatParam(params, "initial", 100.0),
		HalfLifeMin:          6.0,
		HalfLifeMax:          12.0,
		Schedule: kinetics.Schedule{
			getIntParam(params, "dose_hour", 8): getFloatParam(params, "dose", 50.0),
		},
		Duration: getIntParam(params, "duration", 72),
	}, nil
}

// CaffeineProfile models caffeine elimination (4-6 h adult half-life)
// with morning and mid-afternoon intake.
type CaffeineProfile struct{}

func (p *CaffeineProfile) Name() string        { return "caffeine" }
func (p *CaffeineProfile) Description() string { return "Caffeine, 4-6 h half-life, 8:00 and 14:00 intake" }
func (p *CaffeineProfile) Unit() string        { return "mg" }

func (p *CaffeineProfile) Parameters() []Parameter {
	return []Parameter{
		{Name: "initial", Description: "Initial body load", Type: "float", Default: 80.0, Min: floatPtr(0)},
		{Name: "dose", Description: "Caffeine per serving", Type: "float", Default: 80.0, Min: floatPtr(0)},
		{Name: "duration", Description: "Duration in hours", Type: "int", Default: 48, Min: floatPtr(1)},
	}
}

func (p *CaffeineProfile) Generate(params map[string]interface{}) (kinetics.Problem, error) {
	dose := getFloatParam(params, "dose", 80.0)
	return kinetics.Problem{
		InitialConcentration: getFloatParam(params, "initial", 80.0),
		HalfLifeMin:          4.0,
		HalfLifeMax:          6.0,
		Schedule:             kinetics.Schedule{8: dose, 14: dose},
		Duration:             getIntParam(params, "duration", 48),
	}, nil
}

// LongActingProfile models a long half-life drug (24-36 h) dosed once
// daily, simulated over two weeks to show accumulation.
type LongActingProfile struct{}

func (p *LongActingProfile) Name() string        { return "long-acting" }
func (p *LongActingProfile) Description() string { return "Long-acting drug, 24-36 h half-life, daily dose over two weeks" }
func (p *LongActingProfile) Unit() string        { return "ng/mL" }

func (p *LongActingProfile) Parameters() []Parameter {
	return []Parameter{
		{Name: "initial", Description: "Initial concentration", Type: "float", Default: 20.0, Min: floatPtr(0)},
		{Name: "dose", Description: "Daily dose amount", Type: "float", Default: 20.0, Min: floatPtr(0)},
		{Name: "dose_hour", Description: "Hour of day for the dose", Type: "int", Default: 9, Min: floatPtr(0), Max: floatPtr(23)},
		{Name: "duration", Description: "Duration in hours", Type: "int", Default: 336, Min: floatPtr(1)},
	}
}

func (p *LongActingProfile) Generate(params map[string]interface{}) (kinetics.Problem, error) {
	return kinetics.Problem{
		InitialConcentration: getFloatParam(params, "initial", 20.0),
		HalfLifeMin:          24.0,
		HalfLifeMax:          36.0,
		Schedule: kinetics.Schedule{
			getIntParam(params, "dose_hour", 9): getFloatParam(params, "dose", 20.0),
		},
		Duration: getIntParam(params, "duration", 336),
	}, nil
}

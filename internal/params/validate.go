// Package params turns the four raw form values into a validated parameter set.
package params

import (
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultMinMass is the recommended floor shown to users. The enforced
	// bound is mass > 0.
	DefaultMinMass = 0.1

	// DefaultMaxVelocity is the inclusive ceiling on |velocity|.
	DefaultMaxVelocity = 20.0
)

// Field names, in form order.
const (
	FieldMass1     = "mass1"
	FieldMass2     = "mass2"
	FieldVelocity1 = "velocity1"
	FieldVelocity2 = "velocity2"
)

var Fields = [4]string{FieldMass1, FieldMass2, FieldVelocity1, FieldVelocity2}

type Limits struct {
	MinMass     float64 `yaml:"min_mass"`
	MaxVelocity float64 `yaml:"max_velocity"`
}

func DefaultLimits() Limits {
	return Limits{MinMass: DefaultMinMass, MaxVelocity: DefaultMaxVelocity}
}

// Set is an accepted parameter set: both masses > 0 and both velocities
// within the limit.
type Set struct {
	Mass1     float64 `json:"mass1" yaml:"mass1"`
	Mass2     float64 `json:"mass2" yaml:"mass2"`
	Velocity1 float64 `json:"velocity1" yaml:"velocity1"`
	Velocity2 float64 `json:"velocity2" yaml:"velocity2"`
}

func (s Set) Momentum() float64 {
	return s.Mass1*s.Velocity1 + s.Mass2*s.Velocity2
}

type Validator struct {
	limits Limits
}

func NewValidator(limits Limits) *Validator {
	return &Validator{limits: limits}
}

func (v *Validator) Limits() Limits { return v.limits }

// Validate parses and checks the raw values. Rules run in order (parse,
// mass, velocity) and the first failure is returned.
func (v *Validator) Validate(rawMass1, rawMass2, rawVelocity1, rawVelocity2 string) (Set, error) {
	raws := [4]string{rawMass1, rawMass2, rawVelocity1, rawVelocity2}
	var vals [4]float64
	for i, raw := range raws {
		f, ok := ParseDecimal(raw)
		if !ok {
			return Set{}, &ValidationError{Field: Fields[i], Raw: raw, Err: ErrNotANumber}
		}
		vals[i] = f
	}

	for i := 0; i < 2; i++ {
		// !(x > 0) also rejects -0.
		if !(vals[i] > 0) {
			return Set{}, &ValidationError{Field: Fields[i], Raw: raws[i], Err: ErrNonPositiveMass}
		}
	}

	for i := 2; i < 4; i++ {
		if math.Abs(vals[i]) > v.limits.MaxVelocity {
			return Set{}, &ValidationError{Field: Fields[i], Raw: raws[i], Limit: v.limits.MaxVelocity, Err: ErrVelocityOutOfRange}
		}
	}

	return Set{Mass1: vals[0], Mass2: vals[1], Velocity1: vals[2], Velocity2: vals[3]}, nil
}

// Check applies the same rules to an already numeric set.
func (v *Validator) Check(s Set) error {
	_, err := v.Validate(format(s.Mass1), format(s.Mass2), format(s.Velocity1), format(s.Velocity2))
	return err
}

func format(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Validate checks raw values against DefaultLimits.
func Validate(rawMass1, rawMass2, rawVelocity1, rawVelocity2 string) (Set, error) {
	return NewValidator(DefaultLimits()).Validate(rawMass1, rawMass2, rawVelocity1, rawVelocity2)
}

// ParseDecimal accepts an optional leading '-', digits and at most one '.',
// with at least one digit. Exponents, signs other than a leading '-', and
// the inf/nan spellings strconv understands are refused, as are values that
// overflow to infinity.
func ParseDecimal(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	body := strings.TrimPrefix(s, "-")

	digits, dots := 0, 0
	for _, c := range body {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return 0, false
		}
	}
	if digits == 0 || dots > 1 {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Package units is a small declarative catalog of units. A unit is just a
// name and an exact magnitude relative to its dimension's base unit; all
// of the actual machinery lives in the conversion engines.
package units

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/scalemath/scalemath/convert"
	"github.com/scalemath/scalemath/magnitude"
	"github.com/scalemath/scalemath/ops"
	"github.com/scalemath/scalemath/rep"
)

// Dimension names the physical quantity a unit measures.
type Dimension string

const (
	Length Dimension = "length"
	Angle  Dimension = "angle"
)

// Unit is a named scale relative to the base unit of its dimension.
type Unit struct {
	Name   string
	Symbol string
	Dim    Dimension
	Mag    magnitude.Mag
}

// Base units are meters and radians.
var (
	Meters = Unit{Name: "meters", Symbol: "m", Dim: Length, Mag: magnitude.One()}
	Inches = Unit{Name: "inches", Symbol: "in", Dim: Length, Mag: magnitude.FromRatio(254, 10000)}
	Feet   = Unit{Name: "feet", Symbol: "ft", Dim: Length, Mag: magnitude.FromRatio(3048, 10000)}
	Fathoms = Unit{
		Name: "fathoms", Symbol: "ftm", Dim: Length,
		Mag: magnitude.FromRatio(3048, 10000).Mul(magnitude.FromInt(6)),
	}

	Radians = Unit{Name: "radians", Symbol: "rad", Dim: Angle, Mag: magnitude.One()}
	Degrees = Unit{
		Name: "degrees", Symbol: "deg", Dim: Angle,
		Mag: magnitude.Pi().Div(magnitude.FromInt(180)),
	}
)

var catalog = []Unit{Meters, Inches, Feet, Fathoms, Radians, Degrees}

// All returns the catalog in declaration order.
func All() []Unit {
	out := make([]Unit, len(catalog))
	copy(out, catalog)
	return out
}

// ByName looks a unit up by name or symbol, case-insensitively.
func ByName(name string) (Unit, bool) {
	for _, u := range catalog {
		if strings.EqualFold(u.Name, name) || strings.EqualFold(u.Symbol, name) {
			return u, true
		}
	}
	return Unit{}, false
}

// Ratio returns the magnitude carrying quantities of from into quantities
// of to.
func Ratio(from, to Unit) (magnitude.Mag, error) {
	if from.Dim != to.Dim {
		return magnitude.Mag{}, errors.Newf(
			"cannot convert %s (%s) to %s (%s)", from.Name, from.Dim, to.Name, to.Dim)
	}
	return from.Mag.Div(to.Mag), nil
}

// Conversion synthesizes the operation converting a value in from units,
// held in type old, to a value in to units held in type new.
func Conversion(from, to Unit, old, new rep.Type) (ops.Op, error) {
	factor, err := Ratio(from, to)
	if err != nil {
		return nil, err
	}
	return convert.For(old, new, factor), nil
}

// Analyze reports the full conversion analysis between two units.
func Analyze(from, to Unit, old, new rep.Type) (convert.Analysis, error) {
	factor, err := Ratio(from, to)
	if err != nil {
		return convert.Analysis{}, err
	}
	return convert.Analyze(old, new, factor), nil
}

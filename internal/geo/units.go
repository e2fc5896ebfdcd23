// Package geo holds the two-dimensional point, vector, ring, polygon, and
// path types the inset core operates on (§3 of the design), plus the
// Length and Angle scalar types that keep length and angle arithmetic from
// being mixed by accident.
package geo

import "math"

// Length is a distance in metres. It is its own unit: arithmetic between
// two Lengths is closed (Length ± Length = Length), and there is no
// implicit conversion to or from Angle.
type Length float64

// Angle is a plane angle. Internally it is always stored in radians;
// Degrees/NewDegrees convert at the boundary so geodetic input (degrees)
// and computation (radians) never silently mix.
type Angle float64

// feetToMetres is the exact international-foot conversion factor.
const feetToMetres = 0.3048

// NewFeet builds a Length from a value expressed in feet, the unit the
// InsetXml CLI accepts its offset in.
func NewFeet(ft float64) Length { return Length(ft * feetToMetres) }

// NewDegrees builds an Angle from a value expressed in degrees.
func NewDegrees(deg float64) Angle { return Angle(deg * math.Pi / 180) }

// Degrees returns the angle expressed in degrees.
func (a Angle) Degrees() float64 { return float64(a) * 180 / math.Pi }

// Radians returns the angle expressed in radians.
func (a Angle) Radians() float64 { return float64(a) }

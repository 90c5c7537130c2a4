package model

import (
	"fmt"
	"math"
)

// Position :
// Defines what is a coordinate in the context of the tick
// server. Unlike the grid-of-galaxies addressing scheme of
// the game this server is descended from, planets here live
// on a continuous 3D map: a position is simply a triplet of
// floats locating a planet or a territory sector in space.
//
// The `X`, `Y` and `Z` define the position of the element in
// the 3D map of the game. No particular unit is attached to
// these values, the tick processor only cares about ratios
// and relative distances between positions.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewPosition :
// Convenience constructor for a `Position` from three coords.
//
// Returns the built position.
func NewPosition(x float64, y float64, z float64) Position {
	return Position{X: x, Y: y, Z: z}
}

// String :
// Implementation of the stringer interface for a position.
// Helps printing this data structure to a stream or to
// visually see it in the logs.
//
// Returns the string representing the position.
func (p Position) String() string {
	return fmt.Sprintf("[x: %.2f, y: %.2f, z: %.2f]", p.X, p.Y, p.Z)
}

// Distance :
// Computes the Euclidean distance between this position and
// the one provided as input. This is the distance metric used
// throughout the combat and territory expansion phases of the
// tick processor.
//
// The `other` defines the other position to compute the
// distance to.
//
// Returns the Euclidean distance between the two positions.
func (p Position) Distance(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	dz := p.Z - other.Z

	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// WithinAABB :
// Performs a cheap axis-aligned bounding box check before a
// more expensive Euclidean distance computation: if any axis
// delta alone exceeds `radius` the two positions cannot be
// within `radius` of each other and the caller can skip the
// square root entirely.
//
// The `other` defines the other position to compare to.
//
// The `radius` defines the maximum distance along any axis.
//
// Returns `true` if the bounding boxes overlap.
func (p Position) WithinAABB(other Position, radius float64) bool {
	return math.Abs(p.X-other.X) <= radius &&
		math.Abs(p.Y-other.Y) <= radius &&
		math.Abs(p.Z-other.Z) <= radius
}

// Axis :
// Describes one of the six cardinal directions used by the
// encirclement check of the combat phase.
type Axis string

// Defines the six cardinal directions around a target planet.
const (
	AxisPosX Axis = "+x"
	AxisNegX Axis = "-x"
	AxisPosY Axis = "+y"
	AxisNegY Axis = "-y"
	AxisPosZ Axis = "+z"
	AxisNegZ Axis = "-z"
)

// DominantAxis :
// Determines the cardinal direction in which `other` lies
// relative to this position, using whichever axis has the
// largest absolute delta.
//
// The `other` defines the position to classify relative to
// this one.
//
// Returns the dominant axis of `other` as seen from `p`.
func (p Position) DominantAxis(other Position) Axis {
	dx := other.X - p.X
	dy := other.Y - p.Y
	dz := other.Z - p.Z

	adx, ady, adz := math.Abs(dx), math.Abs(dy), math.Abs(dz)

	switch {
	case adx >= ady && adx >= adz:
		if dx >= 0 {
			return AxisPosX
		}
		return AxisNegX
	case ady >= adx && ady >= adz:
		if dy >= 0 {
			return AxisPosY
		}
		return AxisNegY
	default:
		if dz >= 0 {
			return AxisPosZ
		}
		return AxisNegZ
	}
}

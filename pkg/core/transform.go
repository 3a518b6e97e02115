package core

import (
	"github.com/go-gl/mathgl/mgl64"
)

// ToMgl converts v to a mathgl vector
func (v Vec3) ToMgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// FromMgl converts a mathgl vector to a Vec3
func FromMgl(v mgl64.Vec3) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// RotateY rotates v about the Y axis by the given angle in degrees.
// Positive angles turn +X towards -Z.
func RotateY(v Vec3, degrees float64) Vec3 {
	m := mgl64.Rotate3DY(mgl64.DegToRad(degrees))
	return FromMgl(m.Mul3x1(v.ToMgl()))
}

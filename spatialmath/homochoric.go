package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/texture/utils"
)

// Coefficients of the polynomial fit of cos(θ/2) in |h|², Rowenhorst et al. (2015).
var tfit = [16]float64{
	1.0000000000018852,
	-0.5000000002194847,
	-0.024999992127593126,
	-0.003928701544781374,
	-0.0008152701535450438,
	-0.0002009500426119712,
	-0.00002397986776071756,
	-0.00008202868926605841,
	0.00012448715042090092,
	-0.0001749114214822577,
	0.0001703481934140054,
	-0.00012062065004116828,
	0.000059719705868660826,
	-0.00001980756723965647,
	0.000003953714684212874,
	-0.00000036555001439719544,
}

const (
	homochoricEps = 1e-12
	seriesLimit   = 0.1
	newtonSteps   = 4
)

// homochoricCube returns 3/4 (θ - sin θ), using its Taylor series for small angles.
func homochoricCube(theta float64) float64 {
	if theta >= seriesLimit {
		return 0.75 * (theta - math.Sin(theta))
	}
	t2 := utils.Square(theta)
	sum, term := 0.0, theta
	for k := 1; k <= 5; k++ {
		term *= -t2 / float64((2*k)*(2*k+1))
		sum -= term
	}
	return 0.75 * sum
}

// QuatToHomochoric converts a unit quaternion to a homochoric vector n [3/4 (θ - sin θ)]^(1/3).
func QuatToHomochoric(q quat.Number) r3.Vector {
	aa := QuatToR4AA(q)
	if aa.Theta == 0 {
		return r3.Vector{}
	}
	f := utils.CubeRoot(homochoricCube(aa.Theta))
	return r3.Vector{X: aa.RX * f, Y: aa.RY * f, Z: aa.RZ * f}
}

// HomochoricToR4AA converts a homochoric vector to axis angle form. The angle comes from the
// polynomial fit and is refined with Newton steps on 3/4 (θ - sin θ) = |h|³.
func HomochoricToR4AA(ho r3.Vector) *R4AA {
	hmag := ho.Norm2()
	if hmag < homochoricEps {
		return NewR4AA()
	}

	s := tfit[0]
	pow := 1.0
	for _, c := range tfit[1:] {
		pow *= hmag
		s += c * pow
	}
	theta := 2 * math.Acos(clampUnit(s))

	target := math.Pow(hmag, 1.5)
	for i := 0; i < newtonSteps; i++ {
		sh := math.Sin(theta / 2)
		df := 1.5 * sh * sh
		if df == 0 {
			break
		}
		theta -= (homochoricCube(theta) - target) / df
	}
	theta = math.Max(0, math.Min(math.Pi, theta))

	n := ho.Normalize()
	return &R4AA{Theta: theta, RX: n.X, RY: n.Y, RZ: n.Z}
}

// HomochoricToQuat converts a homochoric vector to a unit quaternion.
func HomochoricToQuat(ho r3.Vector) quat.Number {
	return HomochoricToR4AA(ho).ToQuat()
}

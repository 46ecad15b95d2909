package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Row layouts used by the batch conversions:
//
//	axis angle       x, y, z, θ
//	Rodrigues-Frank  x, y, z, tan(θ/2)
//	homochoric       x, y, z
//	Euler            φ1, Φ, φ2
//	matrix           nine values, row major
//	quaternion       a, b, c, d
const (
	axCols = 4
	roCols = 4
	hoCols = 3
	euCols = 3
	omCols = 9
	quCols = 4
)

// AxToQu converts an axis angle pair to a unit quaternion.
func AxToQu(aa R4AA) quat.Number { return aa.ToQuat() }

// HoToAx converts a homochoric vector to an axis angle pair.
func HoToAx(ho r3.Vector) R4AA { return *HomochoricToR4AA(ho) }

// RoToAx converts a Rodrigues-Frank vector to an axis angle pair.
func RoToAx(ro RodriguesFrank) R4AA { return *ro.AxisAngles() }

// AxToRo converts an axis angle pair to a Rodrigues-Frank vector.
func AxToRo(aa R4AA) RodriguesFrank { return *aa.RodriguesFrank() }

// EuToQu converts Bunge Euler angles to a unit quaternion.
func EuToQu(eu EulerAngles) quat.Number { return eu.Quaternion() }

// OmToQu converts a rotation matrix to a unit quaternion.
func OmToQu(om RotationMatrix) quat.Number { return om.Quaternion() }

// QuToEu converts a unit quaternion to Bunge Euler angles.
func QuToEu(q quat.Number) EulerAngles { return *QuatToEulerAngles(q) }

// QuToOm converts a unit quaternion to a rotation matrix.
func QuToOm(q quat.Number) RotationMatrix { return *QuatToRotationMatrix(q) }

// QuToAx converts a unit quaternion to an axis angle pair.
func QuToAx(q quat.Number) R4AA { return *QuatToR4AA(q) }

// QuToHo converts a unit quaternion to a homochoric vector.
func QuToHo(q quat.Number) r3.Vector { return QuatToHomochoric(q) }

// AxToQuBatch converts axis angle rows to quaternion rows.
func AxToQuBatch(ax []float64) []float64 {
	return mapRows(ax, axCols, quCols, func(in, out []float64) {
		putQuat(out, AxToQu(R4AA{Theta: in[3], RX: in[0], RY: in[1], RZ: in[2]}))
	})
}

// HoToAxBatch converts homochoric rows to axis angle rows.
func HoToAxBatch(ho []float64) []float64 {
	return mapRows(ho, hoCols, axCols, func(in, out []float64) {
		putAxisAngle(out, HoToAx(r3.Vector{X: in[0], Y: in[1], Z: in[2]}))
	})
}

// RoToAxBatch converts Rodrigues-Frank rows to axis angle rows.
func RoToAxBatch(ro []float64) []float64 {
	return mapRows(ro, roCols, axCols, func(in, out []float64) {
		putAxisAngle(out, RoToAx(RodriguesFrank{RX: in[0], RY: in[1], RZ: in[2], TanHalf: in[3]}))
	})
}

// AxToRoBatch converts axis angle rows to Rodrigues-Frank rows.
func AxToRoBatch(ax []float64) []float64 {
	return mapRows(ax, axCols, roCols, func(in, out []float64) {
		rf := AxToRo(R4AA{Theta: in[3], RX: in[0], RY: in[1], RZ: in[2]})
		out[0], out[1], out[2], out[3] = rf.RX, rf.RY, rf.RZ, rf.TanHalf
	})
}

// EuToQuBatch converts Euler rows in radians to quaternion rows.
func EuToQuBatch(eu []float64) []float64 {
	return mapRows(eu, euCols, quCols, func(in, out []float64) {
		putQuat(out, EuToQu(EulerAngles{Phi1: in[0], Phi: in[1], Phi2: in[2]}))
	})
}

// OmToQuBatch converts row major matrix rows to quaternion rows.
func OmToQuBatch(om []float64) []float64 {
	return mapRows(om, omCols, quCols, func(in, out []float64) {
		var rm RotationMatrix
		copy(rm.mat[:], in)
		putQuat(out, OmToQu(rm))
	})
}

// QuToEuBatch converts quaternion rows to Euler rows in radians.
func QuToEuBatch(qu []float64) []float64 {
	return mapRows(qu, quCols, euCols, func(in, out []float64) {
		ea := QuToEu(rowQuat(in))
		out[0], out[1], out[2] = ea.Phi1, ea.Phi, ea.Phi2
	})
}

// QuToOmBatch converts quaternion rows to row major matrix rows.
func QuToOmBatch(qu []float64) []float64 {
	return mapRows(qu, quCols, omCols, func(in, out []float64) {
		rm := QuToOm(rowQuat(in))
		copy(out, rm.mat[:])
	})
}

// QuToAxBatch converts quaternion rows to axis angle rows.
func QuToAxBatch(qu []float64) []float64 {
	return mapRows(qu, quCols, axCols, func(in, out []float64) {
		putAxisAngle(out, QuToAx(rowQuat(in)))
	})
}

// QuToHoBatch converts quaternion rows to homochoric rows.
func QuToHoBatch(qu []float64) []float64 {
	return mapRows(qu, quCols, hoCols, func(in, out []float64) {
		ho := QuToHo(rowQuat(in))
		out[0], out[1], out[2] = ho.X, ho.Y, ho.Z
	})
}

func mapRows(in []float64, inCols, outCols int, fn func(in, out []float64)) []float64 {
	n := len(in) / inCols
	out := make([]float64, n*outCols)
	for i := 0; i < n; i++ {
		fn(in[i*inCols:(i+1)*inCols], out[i*outCols:(i+1)*outCols])
	}
	return out
}

func rowQuat(row []float64) quat.Number {
	return quat.Number{Real: row[0], Imag: row[1], Jmag: row[2], Kmag: row[3]}
}

func putQuat(out []float64, q quat.Number) {
	out[0], out[1], out[2], out[3] = q.Real, q.Imag, q.Jmag, q.Kmag
}

func putAxisAngle(out []float64, aa R4AA) {
	out[0], out[1], out[2], out[3] = aa.RX, aa.RY, aa.RZ, aa.Theta
}

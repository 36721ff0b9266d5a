package qsim

import "gonum.org/v1/gonum/floats/scalar"

// unitTolerance bounds how far a supplied operator may drift from unitarity
// before it is rejected.
const unitTolerance = 1e-6

// validAlphaBeta checks |alpha|^2 + |beta|^2 = 1 within tolerance.
func validAlphaBeta(alpha, beta Complex) bool {
	mag := float64(absSquared(alpha) + absSquared(beta))
	return scalar.EqualWithinAbs(mag, 1.0, unitTolerance)
}

// validUnitary checks that u's columns are unit length and orthogonal within
// tolerance, which for a 2x2 matrix is the whole of unitarity.
func validUnitary(u ComplexMatrix2) bool {
	col0 := float64(absSquared(u.R0C0) + absSquared(u.R1C0))
	col1 := float64(absSquared(u.R0C1) + absSquared(u.R1C1))

	// <col0, col1> with the first column conjugated
	innerRe := float64(u.R0C0.Re*u.R0C1.Re + u.R0C0.Im*u.R0C1.Im +
		u.R1C0.Re*u.R1C1.Re + u.R1C0.Im*u.R1C1.Im)
	innerIm := float64(u.R0C0.Re*u.R0C1.Im - u.R0C0.Im*u.R0C1.Re +
		u.R1C0.Re*u.R1C1.Im - u.R1C0.Im*u.R1C1.Re)

	return scalar.EqualWithinAbs(col0, 1.0, unitTolerance) &&
		scalar.EqualWithinAbs(col1, 1.0, unitTolerance) &&
		scalar.EqualWithinAbs(innerRe, 0.0, unitTolerance) &&
		scalar.EqualWithinAbs(innerIm, 0.0, unitTolerance)
}

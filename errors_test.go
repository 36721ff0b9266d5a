package qsim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type abortCode int

// singleRankEnv builds a one-rank environment whose abort hook panics with
// the error code instead of exiting, so validation failures are observable.
func singleRankEnv() *Env {
	g := NewGroup(1)
	g.abortFn = func(code int) { panic(abortCode(code)) }
	env := newEnv(g, 0)
	env.Init()
	return env
}

func TestValidationAborts(t *testing.T) {
	Convey("Given a single-rank state with a trapping abort hook", t, func() {
		env := singleRankEnv()
		mq := NewMultiQubit(3, env)
		alpha := Complex{0.6, 0}
		beta := Complex{0, 0.8}
		sigmaXMat := ComplexMatrix2{R0C1: Complex{1, 0}, R1C0: Complex{1, 0}}

		Convey("an out-of-range target aborts with the target code", func() {
			So(func() { mq.Hadamard(3) }, ShouldPanicWith, abortCode(errInvalidTargetQubit))
			So(func() { mq.SigmaX(-1) }, ShouldPanicWith, abortCode(errInvalidTargetQubit))
		})

		Convey("an out-of-range control aborts with the control code", func() {
			So(func() { mq.ControlledNot(7, 0) }, ShouldPanicWith, abortCode(errInvalidControlQubit))
		})

		Convey("control equal to target aborts", func() {
			So(func() { mq.ControlledNot(1, 1) }, ShouldPanicWith, abortCode(errControlEqualsTarget))
		})

		Convey("a non-normalized coefficient pair aborts", func() {
			So(func() { mq.CompactUnitary(0, Complex{1, 0}, Complex{1, 0}) },
				ShouldPanicWith, abortCode(errAlphaBetaNotNormalized))
		})

		Convey("a non-unitary matrix aborts", func() {
			bad := ComplexMatrix2{R0C0: Complex{1, 0}, R0C1: Complex{1, 0}, R1C1: Complex{1, 0}}
			So(func() { mq.Unitary(0, bad) }, ShouldPanicWith, abortCode(errMatrixNotUnitary))
		})

		Convey("an empty control set aborts", func() {
			So(func() { mq.MultiControlledUnitary(nil, 0, sigmaXMat) },
				ShouldPanicWith, abortCode(errInvalidNumControls))
		})

		Convey("a control set of every non-target qubit is still accepted", func() {
			// the all-qubits mask is unreachable once the target is excluded,
			// so the exclusive range bound never bites here
			So(func() { mq.MultiControlledUnitary([]int{1, 2}, 0, sigmaXMat) }, ShouldNotPanic)
		})

		Convey("a control set containing the target aborts", func() {
			env4 := singleRankEnv()
			mq4 := NewMultiQubit(4, env4)
			So(func() { mq4.MultiControlledUnitary([]int{0, 1}, 1, sigmaXMat) },
				ShouldPanicWith, abortCode(errControlEqualsTarget))
		})

		Convey("an outcome outside {0,1} aborts", func() {
			So(func() { mq.FindProbabilityOfOutcome(0, 2) },
				ShouldPanicWith, abortCode(errInvalidOutcome))
		})

		Convey("collapsing onto a zero-probability outcome aborts", func() {
			So(func() { mq.CollapseToOutcome(0, 1) },
				ShouldPanicWith, abortCode(errCollapseProbTooSmall))
		})

		Convey("valid arguments do not abort", func() {
			So(func() { mq.ControlledCompactUnitary(1, 0, alpha, beta) }, ShouldNotPanic)
			So(func() { mq.MultiControlledUnitary([]int{0}, 2, sigmaXMat) }, ShouldNotPanic)
		})
	})
}

func TestErrorMessages(t *testing.T) {
	Convey("Every error code has a message", t, func() {
		for _, msg := range errorMessages {
			So(msg, ShouldNotBeBlank)
		}
	})
}

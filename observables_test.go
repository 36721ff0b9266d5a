package qsim

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// probeOutcome runs prog and returns rank 0's view of
// FindProbabilityOfOutcome(measureQubit, outcome).
func probeOutcome(numRanks, numQubits int, prog func(mq *MultiQubit), measureQubit, outcome int) Real {
	var prob Real
	g := NewGroup(numRanks)
	g.Run(func(env *Env) {
		env.Init()
		mq := NewMultiQubit(numQubits, env)
		prog(mq)
		p := mq.FindProbabilityOfOutcome(measureQubit, outcome)
		if env.Rank == 0 {
			prob = p
		}
		mq.Destroy()
		env.Finalize()
	})
	return prob
}

func TestFindProbabilityOfOutcome(t *testing.T) {
	Convey("Given measurement probabilities on every admissible rank count", t, func() {
		for _, numRanks := range ranksFor(3) {
			numRanks := numRanks

			Convey(fmt.Sprintf("the |000> state on %d ranks is certain", numRanks), func() {
				for q := 0; q < 3; q++ {
					So(probeOutcome(numRanks, 3, func(mq *MultiQubit) {}, q, 0),
						ShouldAlmostEqual, 1.0, testEps)
					So(probeOutcome(numRanks, 3, func(mq *MultiQubit) {}, q, 1),
						ShouldAlmostEqual, 0.0, testEps)
				}
			})

			Convey(fmt.Sprintf("the uniform state on %d ranks gives one half per qubit", numRanks), func() {
				uniform := func(mq *MultiQubit) {
					mq.Hadamard(0)
					mq.Hadamard(1)
					mq.Hadamard(2)
				}
				for q := 0; q < 3; q++ {
					So(probeOutcome(numRanks, 3, uniform, q, 0), ShouldAlmostEqual, 0.5, testEps)
				}
			})

			Convey(fmt.Sprintf("outcome probabilities on %d ranks sum to one", numRanks), func() {
				for q := 0; q < 3; q++ {
					p0 := probeOutcome(numRanks, 3, richState, q, 0)
					p1 := probeOutcome(numRanks, 3, richState, q, 1)
					So(p0+p1, ShouldAlmostEqual, 1.0, testEps)
				}
			})
		}
	})
}

func TestCollapseToOutcome(t *testing.T) {
	Convey("Given collapses on every admissible rank count", t, func() {
		for _, numRanks := range ranksFor(2) {
			numRanks := numRanks

			Convey(fmt.Sprintf("collapsing H|0> to 0 on %d ranks leaves |00>", numRanks), func() {
				var pre Real
				g := NewGroup(numRanks)
				amps := make([]Complex, 4)
				g.Run(func(env *Env) {
					env.Init()
					mq := NewMultiQubit(2, env)
					mq.Hadamard(0)
					p := mq.CollapseToOutcome(0, 0)
					for i := int64(0); i < 4; i++ {
						re := mq.GetRealAmp(i)
						im := mq.GetImagAmp(i)
						if env.Rank == 0 {
							amps[i] = Complex{re, im}
						}
					}
					if env.Rank == 0 {
						pre = p
					}
					mq.Destroy()
					env.Finalize()
				})

				So(pre, ShouldAlmostEqual, 0.5, testEps)
				want := make([]Complex, 4)
				want[0] = Complex{1, 0}
				So(shouldMatchAmps(amps, want), ShouldBeBlank)
			})

			Convey(fmt.Sprintf("the collapsed state on %d ranks has unit norm", numRanks), func() {
				var norm Real
				g := NewGroup(numRanks)
				g.Run(func(env *Env) {
					env.Init()
					mq := NewMultiQubit(2, env)
					richStateTwoQubits(mq)
					mq.CollapseToOutcome(1, 1)
					n := mq.TotalProbability()
					if env.Rank == 0 {
						norm = n
					}
					mq.Destroy()
					env.Finalize()
				})
				So(norm, ShouldAlmostEqual, 1.0, testEps)
			})
		}
	})
}

func richStateTwoQubits(mq *MultiQubit) {
	mq.Hadamard(0)
	mq.Hadamard(1)
	mq.S(0)
	mq.ControlledNot(1, 0)
}

func TestKahanSummationStability(t *testing.T) {
	Convey("Given a long uniform state, the probability sum stays tight", t, func() {
		// 2^12 amplitudes of equal magnitude accumulate in one chunk; naive
		// summation would already show drift well above machine epsilon here.
		g := NewGroup(1)
		var norm Real
		g.Run(func(env *Env) {
			env.Init()
			mq := NewMultiQubit(12, env)
			for q := 0; q < 12; q++ {
				mq.Hadamard(q)
			}
			n := mq.TotalProbability()
			if env.Rank == 0 {
				norm = n
			}
			mq.Destroy()
			env.Finalize()
		})
		So(norm, ShouldAlmostEqual, 1.0, 1e-13)
	})
}

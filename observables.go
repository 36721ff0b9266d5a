package qsim

import "math"

/*
FindProbabilityOfOutcome returns the probability of reading outcome on
measureQubit. Each rank sums its contribution to P(q=0) with Kahan
compensated summation, the contributions are sum-reduced across ranks, and
P(q=1) is taken as the complement. Collective.
*/
func (mq *MultiQubit) FindProbabilityOfOutcome(measureQubit, outcome int) Real {
	mq.env.assert(measureQubit >= 0 && measureQubit < mq.numQubits, errInvalidControlQubit, "FindProbabilityOfOutcome")
	mq.env.assert(outcome == 0 || outcome == 1, errInvalidOutcome, "FindProbabilityOfOutcome")

	var stateProb Real
	if halfBlockFitsInChunk(mq.numAmps, measureQubit) {
		stateProb = findProbabilityOfZeroLocal(mq, measureQubit)
	} else if !isChunkToSkipInFindPZero(mq.chunkId, mq.numAmps, measureQubit) {
		stateProb = findProbabilityOfZeroDistributed(mq)
	}

	totalProb := mq.env.allreduceSum(stateProb)
	if outcome == 1 {
		totalProb = 1 - totalProb
	}
	return totalProb
}

/*
CollapseToOutcome projects measureQubit onto outcome, renormalizing the
surviving amplitudes by 1/sqrt(P) and zeroing the rest. It returns the
pre-collapse probability, and aborts if that probability is too small to
divide by. Collective.
*/
func (mq *MultiQubit) CollapseToOutcome(measureQubit, outcome int) Real {
	mq.env.assert(measureQubit >= 0 && measureQubit < mq.numQubits, errInvalidControlQubit, "CollapseToOutcome")
	mq.env.assert(outcome == 0 || outcome == 1, errInvalidOutcome, "CollapseToOutcome")

	totalProb := mq.FindProbabilityOfOutcome(measureQubit, outcome)
	mq.env.assert(totalProb > realEps, errCollapseProbTooSmall, "CollapseToOutcome")

	if halfBlockFitsInChunk(mq.numAmps, measureQubit) {
		collapseToOutcomeLocal(mq, measureQubit, totalProb, outcome)
		return totalProb
	}

	holdsZeroHalf := !isChunkToSkipInFindPZero(mq.chunkId, mq.numAmps, measureQubit)
	survives := (outcome == 0) == holdsZeroHalf
	if survives {
		collapseToOutcomeDistributedRenorm(mq, totalProb)
	} else {
		collapseToOutcomeDistributedSetZero(mq)
	}
	return totalProb
}

// findProbabilityOfZeroLocal sums |amp|^2 over the amplitudes in this chunk
// whose measureQubit bit is 0, with Kahan compensation.
func findProbabilityOfZeroLocal(mq *MultiQubit, measureQubit int) Real {
	sizeHalfBlock := int64(1) << measureQubit
	sizeBlock := sizeHalfBlock * 2
	re, im := mq.stateVec.re, mq.stateVec.im

	var prob, c Real
	for task := int64(0); task < mq.numAmps>>1; task++ {
		index := (task/sizeHalfBlock)*sizeBlock + task%sizeHalfBlock

		y := re[index]*re[index] - c
		t := prob + y
		c = (t - prob) - y
		prob = t

		y = im[index]*im[index] - c
		t = prob + y
		c = (t - prob) - y
		prob = t
	}
	return prob
}

// findProbabilityOfZeroDistributed sums |amp|^2 over the whole chunk; the
// caller has already established the chunk sits wholly in the qubit=0 half.
func findProbabilityOfZeroDistributed(mq *MultiQubit) Real {
	re, im := mq.stateVec.re, mq.stateVec.im

	var prob, c Real
	for i := int64(0); i < mq.numAmps; i++ {
		y := re[i]*re[i] - c
		t := prob + y
		c = (t - prob) - y
		prob = t

		y = im[i]*im[i] - c
		t = prob + y
		c = (t - prob) - y
		prob = t
	}
	return prob
}

func collapseToOutcomeLocal(mq *MultiQubit, measureQubit int, totalProb Real, outcome int) {
	sizeHalfBlock := int64(1) << measureQubit
	sizeBlock := sizeHalfBlock * 2
	renorm := Real(1.0 / math.Sqrt(float64(totalProb)))
	re, im := mq.stateVec.re, mq.stateVec.im

	parallelFor(mq.kernelWorkers(), mq.numAmps>>1, func(lo, hi int64) {
		for task := lo; task < hi; task++ {
			indexUp := (task/sizeHalfBlock)*sizeBlock + task%sizeHalfBlock
			indexLo := indexUp + sizeHalfBlock

			if outcome == 0 {
				re[indexUp] *= renorm
				im[indexUp] *= renorm
				re[indexLo], im[indexLo] = 0, 0
			} else {
				re[indexUp], im[indexUp] = 0, 0
				re[indexLo] *= renorm
				im[indexLo] *= renorm
			}
		}
	})
}

func collapseToOutcomeDistributedRenorm(mq *MultiQubit, totalProb Real) {
	renorm := Real(1.0 / math.Sqrt(float64(totalProb)))
	re, im := mq.stateVec.re, mq.stateVec.im

	parallelFor(mq.kernelWorkers(), mq.numAmps, func(lo, hi int64) {
		for i := lo; i < hi; i++ {
			re[i] *= renorm
			im[i] *= renorm
		}
	})
}

func collapseToOutcomeDistributedSetZero(mq *MultiQubit) {
	re, im := mq.stateVec.re, mq.stateVec.im

	parallelFor(mq.kernelWorkers(), mq.numAmps, func(lo, hi int64) {
		for i := lo; i < hi; i++ {
			re[i], im[i] = 0, 0
		}
	})
}

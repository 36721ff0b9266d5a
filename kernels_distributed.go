package qsim

// Distributed kernels run after an exchange: one of up/lo is the local chunk
// and the other is the pair buffer, as arranged by the dispatcher. The output
// is always the local chunk, so out aliases exactly one of the inputs; every
// element is read before it is written.

func compactUnitaryDistributed(mq *MultiQubit, rot1, rot2 Complex, up, lo, out stateVec) {
	conjRot2 := rot2.conj()

	parallelFor(mq.kernelWorkers(), mq.numAmps, func(first, last int64) {
		for i := first; i < last; i++ {
			upRe, upIm := up.re[i], up.im[i]
			loRe, loIm := lo.re[i], lo.im[i]

			// out = rot1*up + conj(rot2)*lo
			aRe, aIm := cmul(rot1, upRe, upIm)
			bRe, bIm := cmul(conjRot2, loRe, loIm)
			out.re[i], out.im[i] = aRe+bRe, aIm+bIm
		}
	})
}

func unitaryDistributed(mq *MultiQubit, rot1, rot2 Complex, up, lo, out stateVec) {
	parallelFor(mq.kernelWorkers(), mq.numAmps, func(first, last int64) {
		for i := first; i < last; i++ {
			upRe, upIm := up.re[i], up.im[i]
			loRe, loIm := lo.re[i], lo.im[i]

			// out = rot1*up + rot2*lo
			aRe, aIm := cmul(rot1, upRe, upIm)
			bRe, bIm := cmul(rot2, loRe, loIm)
			out.re[i], out.im[i] = aRe+bRe, aIm+bIm
		}
	})
}

func controlledCompactUnitaryDistributed(mq *MultiQubit, controlQubit int, rot1, rot2 Complex, up, lo, out stateVec) {
	conjRot2 := rot2.conj()
	globalOffset := int64(mq.chunkId) * mq.numAmps

	parallelFor(mq.kernelWorkers(), mq.numAmps, func(first, last int64) {
		for i := first; i < last; i++ {
			if extractBit(controlQubit, globalOffset+i) == 0 {
				continue
			}
			upRe, upIm := up.re[i], up.im[i]
			loRe, loIm := lo.re[i], lo.im[i]

			aRe, aIm := cmul(rot1, upRe, upIm)
			bRe, bIm := cmul(conjRot2, loRe, loIm)
			out.re[i], out.im[i] = aRe+bRe, aIm+bIm
		}
	})
}

func controlledUnitaryDistributed(mq *MultiQubit, controlQubit int, rot1, rot2 Complex, up, lo, out stateVec) {
	globalOffset := int64(mq.chunkId) * mq.numAmps

	parallelFor(mq.kernelWorkers(), mq.numAmps, func(first, last int64) {
		for i := first; i < last; i++ {
			if extractBit(controlQubit, globalOffset+i) == 0 {
				continue
			}
			upRe, upIm := up.re[i], up.im[i]
			loRe, loIm := lo.re[i], lo.im[i]

			aRe, aIm := cmul(rot1, upRe, upIm)
			bRe, bIm := cmul(rot2, loRe, loIm)
			out.re[i], out.im[i] = aRe+bRe, aIm+bIm
		}
	})
}

func multiControlledUnitaryDistributed(mq *MultiQubit, mask int64, rot1, rot2 Complex, up, lo, out stateVec) {
	globalOffset := int64(mq.chunkId) * mq.numAmps

	parallelFor(mq.kernelWorkers(), mq.numAmps, func(first, last int64) {
		for i := first; i < last; i++ {
			if mask&(globalOffset+i) != mask {
				continue
			}
			upRe, upIm := up.re[i], up.im[i]
			loRe, loIm := lo.re[i], lo.im[i]

			aRe, aIm := cmul(rot1, upRe, upIm)
			bRe, bIm := cmul(rot2, loRe, loIm)
			out.re[i], out.im[i] = aRe+bRe, aIm+bIm
		}
	})
}

// sigmaXDistributed adopts the pair's amplitudes wholesale: with the target
// bit spanning ranks, flipping it swaps entire chunks.
func sigmaXDistributed(mq *MultiQubit, in, out stateVec) {
	parallelFor(mq.kernelWorkers(), mq.numAmps, func(first, last int64) {
		for i := first; i < last; i++ {
			out.re[i], out.im[i] = in.re[i], in.im[i]
		}
	})
}

func controlledNotDistributed(mq *MultiQubit, controlQubit int, in, out stateVec) {
	globalOffset := int64(mq.chunkId) * mq.numAmps

	parallelFor(mq.kernelWorkers(), mq.numAmps, func(first, last int64) {
		for i := first; i < last; i++ {
			if extractBit(controlQubit, globalOffset+i) == 1 {
				out.re[i], out.im[i] = in.re[i], in.im[i]
			}
		}
	})
}

// sigmaYDistributed applies the sign of i for the half this chunk holds:
// the upper half becomes -i times the pair values, the lower half +i times.
func sigmaYDistributed(mq *MultiQubit, in, out stateVec, isUpper bool) {
	parallelFor(mq.kernelWorkers(), mq.numAmps, func(first, last int64) {
		for i := first; i < last; i++ {
			inRe, inIm := in.re[i], in.im[i]
			if isUpper {
				out.re[i], out.im[i] = inIm, -inRe
			} else {
				out.re[i], out.im[i] = -inIm, inRe
			}
		}
	})
}

func hadamardDistributed(mq *MultiQubit, up, lo, out stateVec, isUpper bool) {
	sign := Real(1)
	if !isUpper {
		sign = -1
	}

	parallelFor(mq.kernelWorkers(), mq.numAmps, func(first, last int64) {
		for i := first; i < last; i++ {
			upRe, upIm := up.re[i], up.im[i]
			loRe, loIm := lo.re[i], lo.im[i]

			out.re[i] = invRoot2 * (upRe + sign*loRe)
			out.im[i] = invRoot2 * (upIm + sign*loIm)
		}
	})
}

// phaseGateDistributed multiplies the whole chunk by the diagonal factor; the
// dispatcher only calls it for chunks sitting wholly in the qubit=1 half.
func phaseGateDistributed(mq *MultiQubit, gateType PhaseGateType) {
	factor := phaseFactor(gateType)
	re, im := mq.stateVec.re, mq.stateVec.im

	parallelFor(mq.kernelWorkers(), mq.numAmps, func(first, last int64) {
		for i := first; i < last; i++ {
			re[i], im[i] = cmul(factor, re[i], im[i])
		}
	})
}

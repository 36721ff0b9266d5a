package qsim

import (
	"math"
	"sync"
)

// minParallelTasks is the task count below which splitting a kernel across
// workers costs more than the loop itself.
const minParallelTasks = 1 << 12

// extractBit returns the q-th bit of a global amplitude index.
func extractBit(qubit int, index int64) int64 {
	return (index >> qubit) & 1
}

/*
parallelFor runs body over [0, n) split into disjoint contiguous ranges, one
per worker goroutine. Workers are spawned and joined entirely within the call
and never outlive it. Serial when workers <= 1 or the range is small.
*/
func parallelFor(workers int, n int64, body func(lo, hi int64)) {
	if workers <= 1 || n < minParallelTasks {
		body(0, n)
		return
	}

	step := (n + int64(workers) - 1) / int64(workers)
	var wg sync.WaitGroup
	for lo := int64(0); lo < n; lo += step {
		hi := lo + step
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int64) {
			defer wg.Done()
			body(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

func (mq *MultiQubit) kernelWorkers() int {
	return mq.env.group.config.KernelWorkers
}

// Local kernels assume every amplitude pair (i, i^2^q) lies inside this
// chunk. Each task handles one pair: task t in block t/2^q, offset t mod 2^q.

func compactUnitaryLocal(mq *MultiQubit, targetQubit int, alpha, beta Complex) {
	sizeHalfBlock := int64(1) << targetQubit
	sizeBlock := sizeHalfBlock * 2
	re, im := mq.stateVec.re, mq.stateVec.im

	parallelFor(mq.kernelWorkers(), mq.numAmps>>1, func(lo, hi int64) {
		for task := lo; task < hi; task++ {
			indexUp := (task/sizeHalfBlock)*sizeBlock + task%sizeHalfBlock
			indexLo := indexUp + sizeHalfBlock

			upRe, upIm := re[indexUp], im[indexUp]
			loRe, loIm := re[indexLo], im[indexLo]

			// up' = alpha*up - conj(beta)*lo
			aRe, aIm := cmul(alpha, upRe, upIm)
			bRe, bIm := cmul(beta.conj(), loRe, loIm)
			re[indexUp], im[indexUp] = aRe-bRe, aIm-bIm

			// lo' = beta*up + conj(alpha)*lo
			cRe, cIm := cmul(beta, upRe, upIm)
			dRe, dIm := cmul(alpha.conj(), loRe, loIm)
			re[indexLo], im[indexLo] = cRe+dRe, cIm+dIm
		}
	})
}

func unitaryLocal(mq *MultiQubit, targetQubit int, u ComplexMatrix2) {
	sizeHalfBlock := int64(1) << targetQubit
	sizeBlock := sizeHalfBlock * 2
	re, im := mq.stateVec.re, mq.stateVec.im

	parallelFor(mq.kernelWorkers(), mq.numAmps>>1, func(lo, hi int64) {
		for task := lo; task < hi; task++ {
			indexUp := (task/sizeHalfBlock)*sizeBlock + task%sizeHalfBlock
			indexLo := indexUp + sizeHalfBlock

			upRe, upIm := re[indexUp], im[indexUp]
			loRe, loIm := re[indexLo], im[indexLo]

			aRe, aIm := cmul(u.R0C0, upRe, upIm)
			bRe, bIm := cmul(u.R0C1, loRe, loIm)
			re[indexUp], im[indexUp] = aRe+bRe, aIm+bIm

			cRe, cIm := cmul(u.R1C0, upRe, upIm)
			dRe, dIm := cmul(u.R1C1, loRe, loIm)
			re[indexLo], im[indexLo] = cRe+dRe, cIm+dIm
		}
	})
}

func controlledCompactUnitaryLocal(mq *MultiQubit, targetQubit, controlQubit int, alpha, beta Complex) {
	sizeHalfBlock := int64(1) << targetQubit
	sizeBlock := sizeHalfBlock * 2
	globalOffset := int64(mq.chunkId) * mq.numAmps
	re, im := mq.stateVec.re, mq.stateVec.im

	parallelFor(mq.kernelWorkers(), mq.numAmps>>1, func(lo, hi int64) {
		for task := lo; task < hi; task++ {
			indexUp := (task/sizeHalfBlock)*sizeBlock + task%sizeHalfBlock
			if extractBit(controlQubit, globalOffset+indexUp) == 0 {
				continue
			}
			indexLo := indexUp + sizeHalfBlock

			upRe, upIm := re[indexUp], im[indexUp]
			loRe, loIm := re[indexLo], im[indexLo]

			aRe, aIm := cmul(alpha, upRe, upIm)
			bRe, bIm := cmul(beta.conj(), loRe, loIm)
			re[indexUp], im[indexUp] = aRe-bRe, aIm-bIm

			cRe, cIm := cmul(beta, upRe, upIm)
			dRe, dIm := cmul(alpha.conj(), loRe, loIm)
			re[indexLo], im[indexLo] = cRe+dRe, cIm+dIm
		}
	})
}

func controlledUnitaryLocal(mq *MultiQubit, targetQubit, controlQubit int, u ComplexMatrix2) {
	sizeHalfBlock := int64(1) << targetQubit
	sizeBlock := sizeHalfBlock * 2
	globalOffset := int64(mq.chunkId) * mq.numAmps
	re, im := mq.stateVec.re, mq.stateVec.im

	parallelFor(mq.kernelWorkers(), mq.numAmps>>1, func(lo, hi int64) {
		for task := lo; task < hi; task++ {
			indexUp := (task/sizeHalfBlock)*sizeBlock + task%sizeHalfBlock
			if extractBit(controlQubit, globalOffset+indexUp) == 0 {
				continue
			}
			indexLo := indexUp + sizeHalfBlock

			upRe, upIm := re[indexUp], im[indexUp]
			loRe, loIm := re[indexLo], im[indexLo]

			aRe, aIm := cmul(u.R0C0, upRe, upIm)
			bRe, bIm := cmul(u.R0C1, loRe, loIm)
			re[indexUp], im[indexUp] = aRe+bRe, aIm+bIm

			cRe, cIm := cmul(u.R1C0, upRe, upIm)
			dRe, dIm := cmul(u.R1C1, loRe, loIm)
			re[indexLo], im[indexLo] = cRe+dRe, cIm+dIm
		}
	})
}

func multiControlledUnitaryLocal(mq *MultiQubit, targetQubit int, mask int64, u ComplexMatrix2) {
	sizeHalfBlock := int64(1) << targetQubit
	sizeBlock := sizeHalfBlock * 2
	globalOffset := int64(mq.chunkId) * mq.numAmps
	re, im := mq.stateVec.re, mq.stateVec.im

	parallelFor(mq.kernelWorkers(), mq.numAmps>>1, func(lo, hi int64) {
		for task := lo; task < hi; task++ {
			indexUp := (task/sizeHalfBlock)*sizeBlock + task%sizeHalfBlock
			if mask&(globalOffset+indexUp) != mask {
				continue
			}
			indexLo := indexUp + sizeHalfBlock

			upRe, upIm := re[indexUp], im[indexUp]
			loRe, loIm := re[indexLo], im[indexLo]

			aRe, aIm := cmul(u.R0C0, upRe, upIm)
			bRe, bIm := cmul(u.R0C1, loRe, loIm)
			re[indexUp], im[indexUp] = aRe+bRe, aIm+bIm

			cRe, cIm := cmul(u.R1C0, upRe, upIm)
			dRe, dIm := cmul(u.R1C1, loRe, loIm)
			re[indexLo], im[indexLo] = cRe+dRe, cIm+dIm
		}
	})
}

func sigmaXLocal(mq *MultiQubit, targetQubit int) {
	sizeHalfBlock := int64(1) << targetQubit
	sizeBlock := sizeHalfBlock * 2
	re, im := mq.stateVec.re, mq.stateVec.im

	parallelFor(mq.kernelWorkers(), mq.numAmps>>1, func(lo, hi int64) {
		for task := lo; task < hi; task++ {
			indexUp := (task/sizeHalfBlock)*sizeBlock + task%sizeHalfBlock
			indexLo := indexUp + sizeHalfBlock
			re[indexUp], re[indexLo] = re[indexLo], re[indexUp]
			im[indexUp], im[indexLo] = im[indexLo], im[indexUp]
		}
	})
}

func sigmaYLocal(mq *MultiQubit, targetQubit int) {
	sizeHalfBlock := int64(1) << targetQubit
	sizeBlock := sizeHalfBlock * 2
	re, im := mq.stateVec.re, mq.stateVec.im

	parallelFor(mq.kernelWorkers(), mq.numAmps>>1, func(lo, hi int64) {
		for task := lo; task < hi; task++ {
			indexUp := (task/sizeHalfBlock)*sizeBlock + task%sizeHalfBlock
			indexLo := indexUp + sizeHalfBlock

			upRe, upIm := re[indexUp], im[indexUp]
			loRe, loIm := re[indexLo], im[indexLo]

			// up' = -i*lo, lo' = i*up
			re[indexUp], im[indexUp] = loIm, -loRe
			re[indexLo], im[indexLo] = -upIm, upRe
		}
	})
}

func hadamardLocal(mq *MultiQubit, targetQubit int) {
	sizeHalfBlock := int64(1) << targetQubit
	sizeBlock := sizeHalfBlock * 2
	re, im := mq.stateVec.re, mq.stateVec.im

	parallelFor(mq.kernelWorkers(), mq.numAmps>>1, func(lo, hi int64) {
		for task := lo; task < hi; task++ {
			indexUp := (task/sizeHalfBlock)*sizeBlock + task%sizeHalfBlock
			indexLo := indexUp + sizeHalfBlock

			upRe, upIm := re[indexUp], im[indexUp]
			loRe, loIm := re[indexLo], im[indexLo]

			re[indexUp], im[indexUp] = invRoot2*(upRe+loRe), invRoot2*(upIm+loIm)
			re[indexLo], im[indexLo] = invRoot2*(upRe-loRe), invRoot2*(upIm-loIm)
		}
	})
}

// phaseFactor maps the gate type to its diagonal coefficient.
func phaseFactor(gateType PhaseGateType) Complex {
	switch gateType {
	case PhaseS:
		return Complex{0, 1}
	case PhaseT:
		return Complex{Real(math.Sqrt2 / 2), Real(math.Sqrt2 / 2)}
	default:
		return Complex{-1, 0}
	}
}

func phaseGateLocal(mq *MultiQubit, targetQubit int, gateType PhaseGateType) {
	sizeHalfBlock := int64(1) << targetQubit
	sizeBlock := sizeHalfBlock * 2
	factor := phaseFactor(gateType)
	re, im := mq.stateVec.re, mq.stateVec.im

	parallelFor(mq.kernelWorkers(), mq.numAmps>>1, func(lo, hi int64) {
		for task := lo; task < hi; task++ {
			index := (task/sizeHalfBlock)*sizeBlock + task%sizeHalfBlock + sizeHalfBlock
			re[index], im[index] = cmul(factor, re[index], im[index])
		}
	})
}

func controlledNotLocal(mq *MultiQubit, controlQubit, targetQubit int) {
	sizeHalfBlock := int64(1) << targetQubit
	sizeBlock := sizeHalfBlock * 2
	globalOffset := int64(mq.chunkId) * mq.numAmps
	re, im := mq.stateVec.re, mq.stateVec.im

	parallelFor(mq.kernelWorkers(), mq.numAmps>>1, func(lo, hi int64) {
		for task := lo; task < hi; task++ {
			indexUp := (task/sizeHalfBlock)*sizeBlock + task%sizeHalfBlock
			if extractBit(controlQubit, globalOffset+indexUp) == 0 {
				continue
			}
			indexLo := indexUp + sizeHalfBlock
			re[indexUp], re[indexLo] = re[indexLo], re[indexUp]
			im[indexUp], im[indexLo] = im[indexLo], im[indexUp]
		}
	})
}

func controlledPhaseGateLocal(mq *MultiQubit, idQubit1, idQubit2 int) {
	globalOffset := int64(mq.chunkId) * mq.numAmps
	re, im := mq.stateVec.re, mq.stateVec.im

	parallelFor(mq.kernelWorkers(), mq.numAmps, func(lo, hi int64) {
		for i := lo; i < hi; i++ {
			global := globalOffset + i
			if extractBit(idQubit1, global) == 1 && extractBit(idQubit2, global) == 1 {
				re[i], im[i] = -re[i], -im[i]
			}
		}
	})
}

package qsim

import (
	"github.com/davecgh/go-spew/spew"
)

// stateVec holds the real and imaginary components of a contiguous amplitude
// segment as two parallel arrays.
type stateVec struct {
	re []Real
	im []Real
}

/*
MultiQubit is one rank's view of the partitioned state vector of an n-qubit
pure state. The 2^n global amplitudes are split into numChunks contiguous
chunks of numAmps each; rank r owns global indices [r*numAmps, (r+1)*numAmps).
pairStateVec is the same-shaped scratch buffer used exclusively as the receive
side of peer exchanges; it lives exactly as long as the chunk.
*/
type MultiQubit struct {
	numQubits    int
	numAmps      int64 // amplitudes per chunk
	numAmpsTotal int64
	chunkId      int
	numChunks    int

	stateVec     stateVec
	pairStateVec stateVec

	env *Env
}

/*
NewMultiQubit allocates the partitioned state for numQubits qubits and sets
it to |0...0>. The rank count must divide 2^numQubits; with ranks constrained
to powers of two this reduces to numQubits >= log2(numRanks).
*/
func NewMultiQubit(numQubits int, env *Env) *MultiQubit {
	env.assert(env.initialized && !env.finalized, errInvalidNumQubits, "NewMultiQubit")
	env.assert(numQubits > 0, errInvalidNumQubits, "NewMultiQubit")

	total := int64(1) << numQubits
	env.assert(total%int64(env.NumRanks) == 0, errInvalidNumQubits, "NewMultiQubit")

	perChunk := total / int64(env.NumRanks)
	mq := &MultiQubit{
		numQubits:    numQubits,
		numAmps:      perChunk,
		numAmpsTotal: total,
		chunkId:      env.Rank,
		numChunks:    env.NumRanks,
		stateVec:     stateVec{re: make([]Real, perChunk), im: make([]Real, perChunk)},
		pairStateVec: stateVec{re: make([]Real, perChunk), im: make([]Real, perChunk)},
		env:          env,
	}
	mq.InitStateZero()
	return mq
}

// NumQubits returns the number of qubits in the system.
func (mq *MultiQubit) NumQubits() int {
	return mq.numQubits
}

// Destroy releases the chunk and pair buffer.
func (mq *MultiQubit) Destroy() {
	mq.stateVec = stateVec{}
	mq.pairStateVec = stateVec{}
}

// InitStateZero resets the state to |0...0>.
func (mq *MultiQubit) InitStateZero() {
	for i := range mq.stateVec.re {
		mq.stateVec.re[i] = 0
		mq.stateVec.im[i] = 0
	}
	if mq.chunkId == 0 {
		mq.stateVec.re[0] = 1
	}
}

func (mq *MultiQubit) chunkIdFromIndex(index int64) int {
	return int(index / mq.numAmps)
}

/*
GetRealAmp reads the real part of the amplitude at a global index. The owning
rank reads its local element and broadcasts it; every rank must call this.
*/
func (mq *MultiQubit) GetRealAmp(index int64) Real {
	mq.env.assert(index >= 0 && index < mq.numAmpsTotal, errInvalidTargetQubit, "GetRealAmp")
	owner := mq.chunkIdFromIndex(index)
	var el Real
	if mq.chunkId == owner {
		el = mq.stateVec.re[index-int64(owner)*mq.numAmps]
	}
	return mq.env.bcastReal(owner, el)
}

// GetImagAmp is the imaginary counterpart of GetRealAmp. Collective.
func (mq *MultiQubit) GetImagAmp(index int64) Real {
	mq.env.assert(index >= 0 && index < mq.numAmpsTotal, errInvalidTargetQubit, "GetImagAmp")
	owner := mq.chunkIdFromIndex(index)
	var el Real
	if mq.chunkId == owner {
		el = mq.stateVec.im[index-int64(owner)*mq.numAmps]
	}
	return mq.env.bcastReal(owner, el)
}

/*
TotalProbability sums |amp|^2 over the whole state. The local pass uses Kahan
compensated summation to bound rounding drift over long chunks; the cross-rank
reduction is a plain sum since it has at most numChunks similar-magnitude
terms. Collective.
*/
func (mq *MultiQubit) TotalProbability() Real {
	var pTotal, c Real
	for i := int64(0); i < mq.numAmps; i++ {
		y := mq.stateVec.re[i]*mq.stateVec.re[i] - c
		t := pTotal + y
		c = (t - pTotal) - y
		pTotal = t

		y = mq.stateVec.im[i]*mq.stateVec.im[i] - c
		t = pTotal + y
		c = (t - pTotal) - y
		pTotal = t
	}
	if mq.numChunks > 1 {
		return mq.env.allreduceSum(pTotal)
	}
	return pTotal
}

// DumpState renders this rank's chunk for debugging.
func (mq *MultiQubit) DumpState() string {
	return spew.Sdump(mq.stateVec)
}

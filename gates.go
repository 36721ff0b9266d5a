package qsim

// Every gate follows the same dispatch template: validate arguments, ask the
// locality oracle whether the half-block fits in the chunk, and either run
// the local kernel or orient this chunk (upper/lower, pair rank, rewritten
// coefficients), exchange state with the pair rank, and run the distributed
// kernel with buffers ordered (upper, lower, output). The output is always
// the local chunk. All gates are collectives.

// PhaseGateType selects the diagonal factor applied by PhaseGate.
type PhaseGateType int

const (
	PhaseSigmaZ PhaseGateType = iota
	PhaseS
	PhaseT
)

/*
CompactUnitary applies the single-qubit unitary [[alpha, -conj(beta)],
[beta, conj(alpha)]] to targetQubit. |alpha|^2 + |beta|^2 must equal 1.
*/
func (mq *MultiQubit) CompactUnitary(targetQubit int, alpha, beta Complex) {
	mq.env.assert(targetQubit >= 0 && targetQubit < mq.numQubits, errInvalidTargetQubit, "CompactUnitary")
	mq.env.assert(validAlphaBeta(alpha, beta), errAlphaBetaNotNormalized, "CompactUnitary")
	mq.env.metrics.recordGate()

	if halfBlockFitsInChunk(mq.numAmps, targetQubit) {
		compactUnitaryLocal(mq, targetQubit, alpha, beta)
		return
	}

	isUpper := chunkIsUpper(mq.chunkId, mq.numAmps, targetQubit)
	rot1, rot2 := rotCoeffs(isUpper, alpha, beta)
	pairRank := chunkPairId(isUpper, mq.chunkId, mq.numAmps, targetQubit)
	exchangeStateVectors(mq, pairRank)

	if isUpper {
		compactUnitaryDistributed(mq, rot1, rot2,
			mq.stateVec, mq.pairStateVec, mq.stateVec)
	} else {
		compactUnitaryDistributed(mq, rot1, rot2,
			mq.pairStateVec, mq.stateVec, mq.stateVec)
	}
}

// Unitary applies a general 2x2 unitary matrix to targetQubit.
func (mq *MultiQubit) Unitary(targetQubit int, u ComplexMatrix2) {
	mq.env.assert(targetQubit >= 0 && targetQubit < mq.numQubits, errInvalidTargetQubit, "Unitary")
	mq.env.assert(validUnitary(u), errMatrixNotUnitary, "Unitary")
	mq.env.metrics.recordGate()

	if halfBlockFitsInChunk(mq.numAmps, targetQubit) {
		unitaryLocal(mq, targetQubit, u)
		return
	}

	isUpper := chunkIsUpper(mq.chunkId, mq.numAmps, targetQubit)
	rot1, rot2 := rotCoeffsFromMatrix(isUpper, u)
	pairRank := chunkPairId(isUpper, mq.chunkId, mq.numAmps, targetQubit)
	exchangeStateVectors(mq, pairRank)

	if isUpper {
		unitaryDistributed(mq, rot1, rot2,
			mq.stateVec, mq.pairStateVec, mq.stateVec)
	} else {
		unitaryDistributed(mq, rot1, rot2,
			mq.pairStateVec, mq.stateVec, mq.stateVec)
	}
}

// ControlledCompactUnitary applies CompactUnitary's operator to targetQubit
// for the amplitudes whose controlQubit bit is 1.
func (mq *MultiQubit) ControlledCompactUnitary(targetQubit, controlQubit int, alpha, beta Complex) {
	mq.env.assert(targetQubit >= 0 && targetQubit < mq.numQubits, errInvalidTargetQubit, "ControlledCompactUnitary")
	mq.env.assert(controlQubit >= 0 && controlQubit < mq.numQubits, errInvalidControlQubit, "ControlledCompactUnitary")
	mq.env.assert(controlQubit != targetQubit, errControlEqualsTarget, "ControlledCompactUnitary")
	mq.env.assert(validAlphaBeta(alpha, beta), errAlphaBetaNotNormalized, "ControlledCompactUnitary")
	mq.env.metrics.recordGate()

	if halfBlockFitsInChunk(mq.numAmps, targetQubit) {
		controlledCompactUnitaryLocal(mq, targetQubit, controlQubit, alpha, beta)
		return
	}

	isUpper := chunkIsUpper(mq.chunkId, mq.numAmps, targetQubit)
	rot1, rot2 := rotCoeffs(isUpper, alpha, beta)
	pairRank := chunkPairId(isUpper, mq.chunkId, mq.numAmps, targetQubit)
	exchangeStateVectors(mq, pairRank)

	if isUpper {
		controlledCompactUnitaryDistributed(mq, controlQubit, rot1, rot2,
			mq.stateVec, mq.pairStateVec, mq.stateVec)
	} else {
		controlledCompactUnitaryDistributed(mq, controlQubit, rot1, rot2,
			mq.pairStateVec, mq.stateVec, mq.stateVec)
	}
}

// ControlledUnitary applies u to targetQubit for the amplitudes whose
// controlQubit bit is 1.
func (mq *MultiQubit) ControlledUnitary(targetQubit, controlQubit int, u ComplexMatrix2) {
	mq.env.assert(targetQubit >= 0 && targetQubit < mq.numQubits, errInvalidTargetQubit, "ControlledUnitary")
	mq.env.assert(controlQubit >= 0 && controlQubit < mq.numQubits, errInvalidControlQubit, "ControlledUnitary")
	mq.env.assert(controlQubit != targetQubit, errControlEqualsTarget, "ControlledUnitary")
	mq.env.assert(validUnitary(u), errMatrixNotUnitary, "ControlledUnitary")
	mq.env.metrics.recordGate()

	if halfBlockFitsInChunk(mq.numAmps, targetQubit) {
		controlledUnitaryLocal(mq, targetQubit, controlQubit, u)
		return
	}

	isUpper := chunkIsUpper(mq.chunkId, mq.numAmps, targetQubit)
	rot1, rot2 := rotCoeffsFromMatrix(isUpper, u)
	pairRank := chunkPairId(isUpper, mq.chunkId, mq.numAmps, targetQubit)
	exchangeStateVectors(mq, pairRank)

	if isUpper {
		controlledUnitaryDistributed(mq, controlQubit, rot1, rot2,
			mq.stateVec, mq.pairStateVec, mq.stateVec)
	} else {
		controlledUnitaryDistributed(mq, controlQubit, rot1, rot2,
			mq.pairStateVec, mq.stateVec, mq.stateVec)
	}
}

/*
MultiControlledUnitary applies u to targetQubit for the amplitudes whose
every control bit is 1. The control set must be non-empty, must not contain
the target, and must leave at least one qubit outside the control set, so the
all-qubits mask 2^n - 1 is rejected.
*/
func (mq *MultiQubit) MultiControlledUnitary(controlQubits []int, targetQubit int, u ComplexMatrix2) {
	mq.env.assert(targetQubit >= 0 && targetQubit < mq.numQubits, errInvalidTargetQubit, "MultiControlledUnitary")
	numControls := len(controlQubits)
	mq.env.assert(numControls > 0 && numControls < mq.numQubits, errInvalidNumControls, "MultiControlledUnitary")
	mq.env.assert(validUnitary(u), errMatrixNotUnitary, "MultiControlledUnitary")

	var mask int64
	for _, q := range controlQubits {
		mq.env.assert(q >= 0 && q < mq.numQubits, errInvalidControlQubit, "MultiControlledUnitary")
		mask |= int64(1) << q
	}
	mq.env.assert(mask > 0 && mask < (int64(1)<<mq.numQubits)-1, errInvalidControlQubit, "MultiControlledUnitary")
	mq.env.assert(mask&(int64(1)<<targetQubit) == 0, errControlEqualsTarget, "MultiControlledUnitary")
	mq.env.metrics.recordGate()

	if halfBlockFitsInChunk(mq.numAmps, targetQubit) {
		multiControlledUnitaryLocal(mq, targetQubit, mask, u)
		return
	}

	isUpper := chunkIsUpper(mq.chunkId, mq.numAmps, targetQubit)
	rot1, rot2 := rotCoeffsFromMatrix(isUpper, u)
	pairRank := chunkPairId(isUpper, mq.chunkId, mq.numAmps, targetQubit)
	exchangeStateVectors(mq, pairRank)

	if isUpper {
		multiControlledUnitaryDistributed(mq, mask, rot1, rot2,
			mq.stateVec, mq.pairStateVec, mq.stateVec)
	} else {
		multiControlledUnitaryDistributed(mq, mask, rot1, rot2,
			mq.pairStateVec, mq.stateVec, mq.stateVec)
	}
}

// SigmaX applies the Pauli X (NOT) gate to targetQubit. No coefficient
// rewriting is needed; under exchange the kernel adopts the pair's values.
func (mq *MultiQubit) SigmaX(targetQubit int) {
	mq.env.assert(targetQubit >= 0 && targetQubit < mq.numQubits, errInvalidTargetQubit, "SigmaX")
	mq.env.metrics.recordGate()

	if halfBlockFitsInChunk(mq.numAmps, targetQubit) {
		sigmaXLocal(mq, targetQubit)
		return
	}

	isUpper := chunkIsUpper(mq.chunkId, mq.numAmps, targetQubit)
	pairRank := chunkPairId(isUpper, mq.chunkId, mq.numAmps, targetQubit)
	exchangeStateVectors(mq, pairRank)
	sigmaXDistributed(mq, mq.pairStateVec, mq.stateVec)
}

// SigmaY applies the Pauli Y gate to targetQubit. The distributed kernel
// needs to know which half this chunk is to apply the correct sign of i.
func (mq *MultiQubit) SigmaY(targetQubit int) {
	mq.env.assert(targetQubit >= 0 && targetQubit < mq.numQubits, errInvalidTargetQubit, "SigmaY")
	mq.env.metrics.recordGate()

	if halfBlockFitsInChunk(mq.numAmps, targetQubit) {
		sigmaYLocal(mq, targetQubit)
		return
	}

	isUpper := chunkIsUpper(mq.chunkId, mq.numAmps, targetQubit)
	pairRank := chunkPairId(isUpper, mq.chunkId, mq.numAmps, targetQubit)
	exchangeStateVectors(mq, pairRank)
	sigmaYDistributed(mq, mq.pairStateVec, mq.stateVec, isUpper)
}

// SigmaZ applies the Pauli Z gate to targetQubit.
func (mq *MultiQubit) SigmaZ(targetQubit int) {
	mq.PhaseGate(targetQubit, PhaseSigmaZ)
}

// Hadamard applies the Hadamard gate to targetQubit.
func (mq *MultiQubit) Hadamard(targetQubit int) {
	mq.env.assert(targetQubit >= 0 && targetQubit < mq.numQubits, errInvalidTargetQubit, "Hadamard")
	mq.env.metrics.recordGate()

	if halfBlockFitsInChunk(mq.numAmps, targetQubit) {
		hadamardLocal(mq, targetQubit)
		return
	}

	isUpper := chunkIsUpper(mq.chunkId, mq.numAmps, targetQubit)
	pairRank := chunkPairId(isUpper, mq.chunkId, mq.numAmps, targetQubit)
	exchangeStateVectors(mq, pairRank)

	if isUpper {
		hadamardDistributed(mq, mq.stateVec, mq.pairStateVec, mq.stateVec, isUpper)
	} else {
		hadamardDistributed(mq, mq.pairStateVec, mq.stateVec, mq.stateVec, isUpper)
	}
}

/*
PhaseGate applies a diagonal phase factor to the amplitudes whose targetQubit
bit is 1. It never exchanges: when the half-block exceeds the chunk, an
upper-half chunk holds only bit=0 amplitudes and is a no-op, and a lower-half
chunk applies the factor to its whole chunk locally.
*/
func (mq *MultiQubit) PhaseGate(targetQubit int, gateType PhaseGateType) {
	mq.env.assert(targetQubit >= 0 && targetQubit < mq.numQubits, errInvalidTargetQubit, "PhaseGate")
	mq.env.metrics.recordGate()

	if halfBlockFitsInChunk(mq.numAmps, targetQubit) {
		phaseGateLocal(mq, targetQubit, gateType)
		return
	}

	if !chunkIsUpper(mq.chunkId, mq.numAmps, targetQubit) {
		phaseGateDistributed(mq, gateType)
	}
}

// S applies the S phase gate (factor i) to targetQubit.
func (mq *MultiQubit) S(targetQubit int) {
	mq.PhaseGate(targetQubit, PhaseS)
}

// T applies the T phase gate (factor e^(i pi/4)) to targetQubit.
func (mq *MultiQubit) T(targetQubit int) {
	mq.PhaseGate(targetQubit, PhaseT)
}

// ControlledNot flips targetQubit for the amplitudes whose controlQubit bit
// is 1.
func (mq *MultiQubit) ControlledNot(controlQubit, targetQubit int) {
	mq.env.assert(targetQubit >= 0 && targetQubit < mq.numQubits, errInvalidTargetQubit, "ControlledNot")
	mq.env.assert(controlQubit >= 0 && controlQubit < mq.numQubits, errInvalidControlQubit, "ControlledNot")
	mq.env.assert(controlQubit != targetQubit, errControlEqualsTarget, "ControlledNot")
	mq.env.metrics.recordGate()

	if halfBlockFitsInChunk(mq.numAmps, targetQubit) {
		controlledNotLocal(mq, controlQubit, targetQubit)
		return
	}

	isUpper := chunkIsUpper(mq.chunkId, mq.numAmps, targetQubit)
	pairRank := chunkPairId(isUpper, mq.chunkId, mq.numAmps, targetQubit)
	exchangeStateVectors(mq, pairRank)
	controlledNotDistributed(mq, controlQubit, mq.pairStateVec, mq.stateVec)
}

// ControlledPhaseGate negates the amplitudes whose idQubit1 and idQubit2 bits
// are both 1. Diagonal, so it is always rank-local.
func (mq *MultiQubit) ControlledPhaseGate(idQubit1, idQubit2 int) {
	mq.env.assert(idQubit1 >= 0 && idQubit1 < mq.numQubits, errInvalidTargetQubit, "ControlledPhaseGate")
	mq.env.assert(idQubit2 >= 0 && idQubit2 < mq.numQubits, errInvalidControlQubit, "ControlledPhaseGate")
	mq.env.assert(idQubit1 != idQubit2, errControlEqualsTarget, "ControlledPhaseGate")
	mq.env.metrics.recordGate()

	controlledPhaseGateLocal(mq, idQubit1, idQubit2)
}

package qsim

// The locality oracle: pure functions over (chunk size, target qubit) that
// decide whether a gate's amplitude pairs are rank-local, which half of its
// block a chunk holds, and which peer rank holds the matching half. For a
// target qubit q the block is 2*2^q amplitudes wide and the half-block 2^q;
// the upper half holds the amplitudes whose q-th bit is 0.

// halfBlockFitsInChunk reports whether every pair (i, i^2^q) lies inside one
// chunk, in which case the local kernel suffices.
func halfBlockFitsInChunk(chunkSize int64, targetQubit int) bool {
	sizeHalfBlock := int64(1) << targetQubit
	return chunkSize > sizeHalfBlock
}

// chunkIsUpper reports whether the chunk sits in the upper half of its block,
// i.e. its first global index modulo the block size lands before the
// half-block boundary.
func chunkIsUpper(chunkId int, chunkSize int64, targetQubit int) bool {
	sizeHalfBlock := int64(1) << targetQubit
	sizeBlock := sizeHalfBlock * 2
	posInBlock := (int64(chunkId) * chunkSize) % sizeBlock
	return posInBlock < sizeHalfBlock
}

// chunkPairId returns the rank holding the other half of this chunk's block.
// Applying it twice returns the original chunk.
func chunkPairId(isUpper bool, chunkId int, chunkSize int64, targetQubit int) int {
	sizeHalfBlock := int64(1) << targetQubit
	chunksPerHalfBlock := int(sizeHalfBlock / chunkSize)
	if isUpper {
		return chunkId + chunksPerHalfBlock
	}
	return chunkId - chunksPerHalfBlock
}

// isChunkToSkipInFindPZero reports whether this chunk sits wholly in the
// qubit=1 portion of its block. Such a chunk contributes zero to P(q=0).
// Only meaningful when the half-block does not fit in a chunk.
func isChunkToSkipInFindPZero(chunkId int, chunkSize int64, measureQubit int) bool {
	sizeHalfBlock := int64(1) << measureQubit
	numChunksToSkip := int(sizeHalfBlock / chunkSize)
	return chunkId&numChunksToSkip != 0
}

/*
rotCoeffs rewrites the compact coefficient pair (alpha, beta) for the half of
the block this chunk holds, such that the distributed kernel computes

	out = rot1*up + conj(rot2)*lo

for both the upper-half and lower-half output.
*/
func rotCoeffs(isUpper bool, alpha, beta Complex) (rot1, rot2 Complex) {
	if isUpper {
		return alpha, beta.neg()
	}
	return beta, alpha
}

// rotCoeffsFromMatrix selects the row of the 2x2 operator this chunk's half
// needs: the distributed kernel computes out = rot1*up + rot2*lo.
func rotCoeffsFromMatrix(isUpper bool, u ComplexMatrix2) (rot1, rot2 Complex) {
	if isUpper {
		return u.R0C0, u.R0C1
	}
	return u.R1C0, u.R1C1
}

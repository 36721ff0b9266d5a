package qsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHalfBlockFitsInChunk(t *testing.T) {
	cases := []struct {
		chunkSize int64
		qubit     int
		want      bool
	}{
		{chunkSize: 8, qubit: 0, want: true},
		{chunkSize: 8, qubit: 1, want: true},
		{chunkSize: 8, qubit: 2, want: true},
		{chunkSize: 8, qubit: 3, want: false},
		{chunkSize: 8, qubit: 4, want: false},
		{chunkSize: 1, qubit: 0, want: false},
		{chunkSize: 2, qubit: 0, want: true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, halfBlockFitsInChunk(tc.chunkSize, tc.qubit),
			"chunkSize=%d qubit=%d", tc.chunkSize, tc.qubit)
	}
}

func TestChunkIsUpper(t *testing.T) {
	// chunkSize 2, qubit 2: block size 8 spans 4 chunks, two upper then two
	// lower, repeating.
	wants := []bool{true, true, false, false, true, true, false, false}
	for chunkId, want := range wants {
		assert.Equal(t, want, chunkIsUpper(chunkId, 2, 2), "chunkId=%d", chunkId)
	}

	// chunkSize 1, qubit 0: alternating halves.
	for chunkId := 0; chunkId < 8; chunkId++ {
		assert.Equal(t, chunkId%2 == 0, chunkIsUpper(chunkId, 1, 0), "chunkId=%d", chunkId)
	}
}

func TestChunkPairIdSymmetry(t *testing.T) {
	// For every distributed configuration, the pair offset is 2^q/C and
	// applying the pairing twice returns the original chunk.
	for _, numChunks := range []int{2, 4, 8, 16} {
		for _, chunkSize := range []int64{1, 2, 4, 8} {
			total := chunkSize * int64(numChunks)
			for qubit := 0; int64(1)<<qubit < total; qubit++ {
				if halfBlockFitsInChunk(chunkSize, qubit) {
					continue
				}
				k := int((int64(1) << qubit) / chunkSize)
				for chunkId := 0; chunkId < numChunks; chunkId++ {
					isUpper := chunkIsUpper(chunkId, chunkSize, qubit)
					pair := chunkPairId(isUpper, chunkId, chunkSize, qubit)

					if isUpper {
						require.Equal(t, chunkId+k, pair)
					} else {
						require.Equal(t, chunkId-k, pair)
					}
					require.GreaterOrEqual(t, pair, 0)
					require.Less(t, pair, numChunks)

					// the pair's pair is this chunk, with flipped orientation
					pairIsUpper := chunkIsUpper(pair, chunkSize, qubit)
					require.Equal(t, !isUpper, pairIsUpper)
					require.Equal(t, chunkId, chunkPairId(pairIsUpper, pair, chunkSize, qubit))
				}
			}
		}
	}
}

func TestSkipDisjointness(t *testing.T) {
	// For any fixed (chunkSize, qubit) in the distributed regime, exactly
	// half the chunks are skipped when accumulating P(q=0).
	for _, numChunks := range []int{2, 4, 8, 16} {
		for _, chunkSize := range []int64{1, 2, 4} {
			total := chunkSize * int64(numChunks)
			for qubit := 0; int64(1)<<qubit < total; qubit++ {
				if halfBlockFitsInChunk(chunkSize, qubit) {
					continue
				}
				skipped := 0
				for chunkId := 0; chunkId < numChunks; chunkId++ {
					if isChunkToSkipInFindPZero(chunkId, chunkSize, qubit) {
						skipped++
					}
				}
				assert.Equal(t, numChunks/2, skipped,
					"numChunks=%d chunkSize=%d qubit=%d", numChunks, chunkSize, qubit)
			}
		}
	}
}

func TestRotCoeffs(t *testing.T) {
	alpha := Complex{0.6, 0.0}
	beta := Complex{0.0, 0.8}

	rot1, rot2 := rotCoeffs(true, alpha, beta)
	assert.Equal(t, alpha, rot1)
	assert.Equal(t, Complex{0.0, -0.8}, rot2)

	rot1, rot2 = rotCoeffs(false, alpha, beta)
	assert.Equal(t, beta, rot1)
	assert.Equal(t, alpha, rot2)

	u := ComplexMatrix2{
		R0C0: Complex{1, 2}, R0C1: Complex{3, 4},
		R1C0: Complex{5, 6}, R1C1: Complex{7, 8},
	}
	rot1, rot2 = rotCoeffsFromMatrix(true, u)
	assert.Equal(t, u.R0C0, rot1)
	assert.Equal(t, u.R0C1, rot2)

	rot1, rot2 = rotCoeffsFromMatrix(false, u)
	assert.Equal(t, u.R1C0, rot1)
	assert.Equal(t, u.R1C1, rot2)
}

func TestValidators(t *testing.T) {
	assert.True(t, validAlphaBeta(Complex{0.6, 0}, Complex{0, 0.8}))
	assert.False(t, validAlphaBeta(Complex{1, 0}, Complex{1, 0}))

	hadamard := ComplexMatrix2{
		R0C0: Complex{invRoot2, 0}, R0C1: Complex{invRoot2, 0},
		R1C0: Complex{invRoot2, 0}, R1C1: Complex{-invRoot2, 0},
	}
	assert.True(t, validUnitary(hadamard))

	notUnitary := ComplexMatrix2{
		R0C0: Complex{1, 0}, R0C1: Complex{1, 0},
		R1C0: Complex{0, 0}, R1C1: Complex{1, 0},
	}
	assert.False(t, validUnitary(notUnitary))
}

package qsim

import "github.com/theapemachine/errnie"

/*
exchangeStateVectors swaps this rank's entire chunk with pairRank's, placing
the peer's amplitudes in pairStateVec. The real array and the imaginary array
travel in separate send-receive rounds to bound peak transport buffering, and
each array is split into messages of at most maxMessageElems elements, further
capped by the chunk size. Both powers of two, so the split is exact.
*/
func exchangeStateVectors(mq *MultiQubit, pairRank int) {
	exchangeStateVectorsCapped(mq, pairRank, maxMessageElems())
}

func exchangeStateVectorsCapped(mq *MultiQubit, pairRank int, maxCount int64) {
	if mq.numAmps < maxCount {
		maxCount = mq.numAmps
	}
	numMessages := mq.numAmps / maxCount

	if mq.env.group.config.Verbose {
		errnie.Info(
			"rank %d exchanging with rank %d: %d messages of %d elements",
			mq.chunkId, pairRank, numMessages, maxCount,
		)
	}

	for i := int64(0); i < numMessages; i++ {
		offset := i * maxCount
		mq.env.sendrecvReal(pairRank,
			mq.stateVec.re[offset:offset+maxCount],
			mq.pairStateVec.re[offset:offset+maxCount],
			"exchangeStateVectors")
		mq.env.sendrecvReal(pairRank,
			mq.stateVec.im[offset:offset+maxCount],
			mq.pairStateVec.im[offset:offset+maxCount],
			"exchangeStateVectors")
	}

	mq.env.metrics.recordExchange(2 * mq.numAmps * realBytes)
}

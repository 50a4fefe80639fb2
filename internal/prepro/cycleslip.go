package prepro

import (
	"math"

	"github.com/de-bkg/pppcorr/internal/config"
	"github.com/de-bkg/pppcorr/internal/numeric"
)

// detectCycleSlip runs spec §4.1 step 1 for a single phase record against
// its satellite's state, advancing the geometry-free buffer and the
// cycle-slip flag ring. The gap test measures the absolute DeltaT from the
// newest buffered geometry-free epoch and is skipped while the buffer is
// empty.
func detectCycleSlip(cs config.CycleSlipConfig, gap config.Threshold, rec PhaseRecord, st *PrevPreproState) {
	gf := rec.L1 - rec.L2

	if n := len(st.GFEpochPrev); n > 0 {
		deltaT := rec.SOD - st.GFEpochPrev[n-1]
		if math.Abs(deltaT) > gap.Value {
			resetCycleSlipBuffers(st)
			st.ResetHatchFilter = true
		}
	}

	if st.CycleSlipBuffIdx < cs.CSNPoints {
		st.GFLPrev = append(st.GFLPrev, gf)
		st.GFEpochPrev = append(st.GFEpochPrev, rec.SOD)
		st.CycleSlipBuffIdx++
		return
	}

	coeffs := numeric.PolyFit(st.GFEpochPrev, st.GFLPrev, cs.CSPDegree)
	predicted := numeric.PolyEval(coeffs, rec.SOD)
	residual := math.Abs(gf - predicted)
	csFlag := residual > cs.Threshold

	st.CycleSlipFlagIdx = (st.CycleSlipFlagIdx + 1) % len(st.CycleSlipFlags)
	if csFlag {
		st.CycleSlipFlags[st.CycleSlipFlagIdx] = 1
	} else {
		st.CycleSlipFlags[st.CycleSlipFlagIdx] = 0
	}

	sum := 0
	for _, f := range st.CycleSlipFlags {
		sum += f
	}
	if sum >= len(st.CycleSlipFlags) {
		st.CycleSlipDetectFlag = true
		resetRatePrev(st)
		resetCycleSlipBuffers(st)
		st.ResetHatchFilter = true
		return
	}

	if csFlag {
		// Exceedance not yet confirmed: do not insert this sample.
		return
	}

	st.GFLPrev = append(st.GFLPrev[1:], gf)
	st.GFEpochPrev = append(st.GFEpochPrev[1:], rec.SOD)
}

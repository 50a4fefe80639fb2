package prepro

import "github.com/de-bkg/pppcorr/internal/gnssconst"

// PrevPreproState is the per-satellite state carried across epochs (spec
// §3). It exists for every possible (constellation, PRN) pair from
// program start and is mutated in place; it is never destroyed, only
// reset.
type PrevPreproState struct {
	PrevEpoch float64

	PrevC1, PrevC2 OptFloat
	PrevL1, PrevL2 OptFloat

	PrevRangeRateL1, PrevRangeRateL2 OptFloat
	PrevPhaseRateL1, PrevPhaseRateL2 OptFloat

	// Hatch filter state.
	Ksmooth          float64
	PrevSmooth       float64
	IFPPrev          float64
	PrealignOffset   float64
	ResetHatchFilter bool

	// Cycle-slip detector state.
	GFLPrev             []float64
	GFEpochPrev         []float64
	CycleSlipBuffIdx    int
	CycleSlipFlags      []int
	CycleSlipFlagIdx    int
	CycleSlipDetectFlag bool
}

// newPrevPreproState returns a freshly initialized state: PrevEpoch is set
// to 86400 so that the first real sample always looks like a data gap and
// forces a Hatch/cycle-slip reset (spec §3), and the cycle-slip flag ring
// is sized for csnEpochs (spec §6 CYCLE_SLIPS parameter).
func newPrevPreproState(csnEpochs int) *PrevPreproState {
	size := csnEpochs
	if size < 1 {
		size = 1
	}
	return &PrevPreproState{
		PrevEpoch:      gnssconst.SecondsPerDay,
		CycleSlipFlags: make([]int, size),
	}
}

// StateTable holds PrevPreproState for every (constellation, PRN) pair up
// to MaxNumSatsConstel, indexed without hashing (spec §9 design note).
type StateTable struct {
	states [2][gnssconst.MaxNumSatsConstel]*PrevPreproState
}

// NewStateTable allocates a state table for every tracked satellite slot,
// sizing each satellite's cycle-slip flag ring from the scenario's
// CYCLE_SLIPS.CSNEpochs parameter.
func NewStateTable(csnEpochs int) *StateTable {
	var st StateTable
	for c := 0; c < 2; c++ {
		for i := 0; i < gnssconst.MaxNumSatsConstel; i++ {
			st.states[c][i] = newPrevPreproState(csnEpochs)
		}
	}
	return &st
}

func constOrdinal(c gnssconst.Constel) int {
	switch c {
	case gnssconst.GPS:
		return 0
	case gnssconst.GAL:
		return 1
	default:
		return -1
	}
}

// Get returns the mutable state for sat. It panics on an out-of-range PRN
// or unknown constellation: those are configuration-time invariants, not
// per-epoch data errors (spec §7).
func (st *StateTable) Get(sat SatID) *PrevPreproState {
	c := constOrdinal(sat.Const)
	if c < 0 || sat.PRN < 1 || sat.PRN > gnssconst.MaxNumSatsConstel {
		panic("prepro: satellite out of range: " + sat.Const.String())
	}
	return st.states[c][sat.PRN-1]
}

func resetRatePrev(st *PrevPreproState) {
	st.PrevC1, st.PrevC2 = None, None
	st.PrevL1, st.PrevL2 = None, None
	st.PrevRangeRateL1, st.PrevRangeRateL2 = None, None
	st.PrevPhaseRateL1, st.PrevPhaseRateL2 = None, None
}

func resetCycleSlipBuffers(st *PrevPreproState) {
	st.GFLPrev = nil
	st.GFEpochPrev = nil
	st.CycleSlipBuffIdx = 0
	for i := range st.CycleSlipFlags {
		st.CycleSlipFlags[i] = 0
	}
	st.CycleSlipFlagIdx = 0
}

// Package correct implements the Correction Engine (spec §4.2): ephemeris
// interpolation, quaternion/GST-based frame rotation, Sagnac correction,
// antenna phase center/offset projection, satellite biases and the
// corrected-observable residuals. It depends on internal/frame,
// internal/numeric, internal/ephem, internal/gnssconst, internal/config
// and internal/prepro (spec §2 dependency ordering: Time/Frame → Ephemeris
// Accessors → Correction Engine).
package correct

import (
	"github.com/de-bkg/pppcorr/internal/ephem"
	"github.com/de-bkg/pppcorr/internal/frame"
	"github.com/de-bkg/pppcorr/internal/gnssconst"
)

// PrevCorrState is the per-satellite state the Correction Engine carries
// across epochs: only the previous satellite CoM position and its epoch
// are needed, for the Dtr finite-difference relativistic correction (spec
// §4.2 "relativistic correction").
type PrevCorrState struct {
	SodPrev    float64
	SatComPrev frame.Vec3
	HasPrev    bool
}

// StateTable holds PrevCorrState for every (constellation, PRN) slot,
// indexed without hashing like internal/prepro.StateTable (spec §9 design
// note).
type StateTable struct {
	states [2][gnssconst.MaxNumSatsConstel]*PrevCorrState
}

// NewStateTable allocates a fresh, empty-history state table.
func NewStateTable() *StateTable {
	var st StateTable
	for c := 0; c < 2; c++ {
		for i := 0; i < gnssconst.MaxNumSatsConstel; i++ {
			st.states[c][i] = &PrevCorrState{}
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

// Get returns the mutable state for sat, panicking on an out-of-range PRN
// or unknown constellation (a configuration-time invariant, spec §7).
func (st *StateTable) Get(sat ephem.SatKey) *PrevCorrState {
	c := constOrdinal(sat.Const)
	if c < 0 || sat.PRN < 1 || sat.PRN > gnssconst.MaxNumSatsConstel {
		panic("correct: satellite out of range: " + sat.Const.String())
	}
	return st.states[c][sat.PRN-1]
}

// CorrectedMeas is the Correction Engine's per-satellite, per-epoch output
// (spec §4.2 contract). Zero-valued fields combined with Flag == 0
// indicate a quantity that could not be computed this epoch.
type CorrectedMeas struct {
	SOD        float64
	Sat        ephem.SatKey
	Elev, Azim float64

	RcvrComPos frame.Vec3 // LeoCoM + APC_ECEF
	RcvrApcPos frame.Vec3 // APC_ECEF alone
	SatComPos  frame.Vec3 // Sagnac-corrected satellite CoM
	SatApoPos  frame.Vec3 // SatComPos + body-frame APO, i.e. SatCopPos

	SatClk     float64
	CodeBias   float64
	PhaseBias  float64

	FlightTimeMs float64
	Dtr          float64

	CorrCode      float64
	CorrPhase     float64
	GeomRange     float64
	CodeResidual  float64
	PhaseResidual float64

	RcvrClk   float64
	SigmaUere float64

	Flag int
}

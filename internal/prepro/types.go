// Package prepro implements the per-satellite measurement pre-processor
// (spec §4.1): quality gating, data-gap handling, cycle-slip detection via
// polynomial fitting over a geometry-free phase buffer, and Hatch
// code-carrier smoothing. It depends on internal/config,
// internal/gnssconst and internal/numeric (for the polynomial fit).
package prepro

import "github.com/de-bkg/pppcorr/internal/gnssconst"

// SatID identifies a satellite by constellation and PRN.
type SatID struct {
	Const gnssconst.Constel
	PRN   int
}

// OptFloat is an explicit optional float64, used for every "Prev*" field
// so that "no predecessor" can never be confused with a legitimate
// numeric NaN carried in the observations themselves (spec §9 design
// note).
type OptFloat struct {
	Value float64
	Valid bool
}

// Some wraps v as a present value.
func Some(v float64) OptFloat { return OptFloat{Value: v, Valid: true} }

// None is the absent optional value.
var None = OptFloat{}

// CodeRecord is one satellite's code (pseudorange) observation for an
// epoch (spec §3 ObsRecord, code half).
type CodeRecord struct {
	SOD        float64
	Sat        SatID
	Elev, Azim float64
	C1, C2     float64
	S1, S2     float64
}

// PhaseRecord is one satellite's carrier-phase observation for an epoch
// (spec §3 ObsRecord, phase half).
type PhaseRecord struct {
	SOD    float64
	Sat    SatID
	L1, L2 float64
}

// RejectionCause enumerates the mutually-exclusive (last-wins) reasons a
// measurement was rejected this epoch (spec §4.1).
type RejectionCause int

const (
	RejectNone RejectionCause = iota
	RejectDataGap
	RejectMaskAngle
	RejectMinSNRF1
	RejectMinSNRF2
	RejectMaxPsrOutrngF1
	RejectMaxPsrOutrngF2
	RejectCycleSlip
	RejectMaxPhaseRateF1
	RejectMaxPhaseRateF2
	RejectMaxPhaseRateStepF1
	RejectMaxPhaseRateStepF2
	RejectMaxCodeRateF1
	RejectMaxCodeRateF2
	RejectMaxCodeRateStepF1
	RejectMaxCodeRateStepF2
)

func (r RejectionCause) String() string {
	switch r {
	case RejectNone:
		return "NONE"
	case RejectDataGap:
		return "DATA_GAP"
	case RejectMaskAngle:
		return "MASKANGLE"
	case RejectMinSNRF1:
		return "MIN_SNR_F1"
	case RejectMinSNRF2:
		return "MIN_SNR_F2"
	case RejectMaxPsrOutrngF1:
		return "MAX_PSR_OUTRNG_F1"
	case RejectMaxPsrOutrngF2:
		return "MAX_PSR_OUTRNG_F2"
	case RejectCycleSlip:
		return "CYCLE_SLIP"
	case RejectMaxPhaseRateF1:
		return "MAX_PHASE_RATE_F1"
	case RejectMaxPhaseRateF2:
		return "MAX_PHASE_RATE_F2"
	case RejectMaxPhaseRateStepF1:
		return "MAX_PHASE_RATE_STEP_F1"
	case RejectMaxPhaseRateStepF2:
		return "MAX_PHASE_RATE_STEP_F2"
	case RejectMaxCodeRateF1:
		return "MAX_CODE_RATE_F1"
	case RejectMaxCodeRateF2:
		return "MAX_CODE_RATE_F2"
	case RejectMaxCodeRateStepF1:
		return "MAX_CODE_RATE_STEP_F1"
	case RejectMaxCodeRateStepF2:
		return "MAX_CODE_RATE_STEP_F2"
	default:
		return "UNKNOWN"
	}
}

// PreproObs is the pre-processor's per-satellite, per-epoch output (spec
// §4.1 contract).
type PreproObs struct {
	SOD        float64
	Sat        SatID
	Elev, Azim float64

	// Raw observables.
	C1, C2 float64
	L1, L2 float64
	S1, S2 float64

	L1Meters, L2Meters float64

	// Rates and steps, absent when no predecessor exists.
	PhaseRateL1, PhaseRateL2         OptFloat
	PhaseRateStepL1, PhaseRateStepL2 OptFloat
	RangeRateL1, RangeRateL2         OptFloat
	RangeRateStepL1, RangeRateStepL2 OptFloat

	GeomFreeP float64 // (L2-L1)/(1-gamma), cycles
	IFCode    float64 // iono-free code combination
	IFPhase   float64 // iono-free phase combination, pre-aligned to code
	SmoothIF  float64 // Hatch-smoothed iono-free code

	Valid          int
	RejectionCause RejectionCause
	Status         int
}

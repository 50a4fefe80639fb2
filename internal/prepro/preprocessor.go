package prepro

import (
	"math"

	"github.com/de-bkg/pppcorr/internal/config"
	"github.com/de-bkg/pppcorr/internal/gnssconst"
)

// ProcessEpoch runs the pre-processor over one epoch's code and phase
// records (spec §4.1). Phase records are matched to code records by
// satellite; a code record with no matching phase record is skipped, as
// is a phase record with no matching code record (spec: "phase records
// not matching are skipped").
func ProcessEpoch(cfg *config.Config, codes []CodeRecord, phases []PhaseRecord, state *StateTable) []PreproObs {
	phaseBySat := make(map[SatID]PhaseRecord, len(phases))
	for _, p := range phases {
		phaseBySat[p.Sat] = p
	}

	if cfg.CycleSlips.Enable {
		for _, p := range phases {
			st := state.Get(p.Sat)
			detectCycleSlip(cfg.CycleSlips, cfg.MaxDataGap, p, st)
		}
	}

	out := make([]PreproObs, 0, len(codes))
	for _, c := range codes {
		phase, ok := phaseBySat[c.Sat]
		if !ok {
			continue
		}
		out = append(out, processSatellite(cfg, c, phase, state.Get(c.Sat)))
	}
	return out
}

func processSatellite(cfg *config.Config, code CodeRecord, phase PhaseRecord, st *PrevPreproState) PreproObs {
	wl1 := gnssconst.Wavelength1(code.Sat.Const)
	wl2 := gnssconst.Wavelength2(code.Sat.Const)
	gamma := gnssconst.Gamma(code.Sat.Const)

	obs := PreproObs{
		SOD: code.SOD, Sat: code.Sat,
		Elev: code.Elev, Azim: code.Azim,
		C1: code.C1, C2: code.C2,
		L1: phase.L1, L2: phase.L2,
		S1: code.S1, S2: code.S2,
		L1Meters: phase.L1 * wl1,
		L2Meters: phase.L2 * wl2,
	}

	deltaT := code.SOD - st.PrevEpoch
	valid := 1
	reject := RejectNone

	// Data gap (spec §4.1 step 2). The 86400s PrevEpoch sentinel makes the
	// first-ever sample look like a huge gap, hence the absolute value.
	if math.Abs(deltaT) > cfg.MaxDataGap.Value {
		if cfg.MaxDataGap.Enable && math.Abs(deltaT) < 1000 {
			reject = RejectDataGap
			valid = 0
		}
		resetRatePrev(st)
		resetCycleSlipBuffers(st)
		st.ResetHatchFilter = true
	}

	if code.Elev < cfg.RcvrMask {
		reject = RejectMaskAngle
		valid = 0
	}

	if cfg.MinSNR.Enable {
		if code.S1 < cfg.MinSNR.Value {
			reject = RejectMinSNRF1
			valid = 0
		}
		if code.S2 < cfg.MinSNR.Value {
			reject = RejectMinSNRF2
			valid = 0
		}
	}

	if cfg.MaxPsrOutrng.Enable {
		if code.C1 > cfg.MaxPsrOutrng.Value {
			reject = RejectMaxPsrOutrngF1
			valid = 0
		}
		if code.C2 > cfg.MaxPsrOutrng.Value {
			reject = RejectMaxPsrOutrngF2
			valid = 0
		}
	}

	if st.CycleSlipDetectFlag {
		reject = RejectCycleSlip
		valid = 0
		st.CycleSlipDetectFlag = false
	}

	obs.GeomFreeP = (phase.L2 - phase.L1) / (1 - gamma)
	obs.IFCode = (code.C2 - gamma*code.C1) / (1 - gamma)
	obs.IFPhase = (obs.L2Meters - gamma*obs.L1Meters) / (1 - gamma)

	if st.ResetHatchFilter {
		st.ResetHatchFilter = false
		st.Ksmooth = 1
		obs.SmoothIF = obs.IFCode
		st.PrealignOffset = obs.IFCode - obs.IFPhase
		resetRatePrev(st)
	} else {
		st.Ksmooth += deltaT
		smoothingTime := math.Min(st.Ksmooth, cfg.HatchTime)
		alpha := deltaT / smoothingTime
		obs.SmoothIF = alpha*obs.IFCode + (1-alpha)*(st.PrevSmooth+obs.IFPhase-st.IFPPrev)
	}

	valid = checkPhaseRate(deltaT, phase.L1, wl1, &st.PrevL1, &st.PrevPhaseRateL1,
		cfg.MaxPhaseRate, cfg.MaxPhaseRateStep, RejectMaxPhaseRateF1, RejectMaxPhaseRateStepF1,
		&obs.PhaseRateL1, &obs.PhaseRateStepL1, &reject, st, valid)
	valid = checkPhaseRate(deltaT, phase.L2, wl2, &st.PrevL2, &st.PrevPhaseRateL2,
		cfg.MaxPhaseRate, cfg.MaxPhaseRateStep, RejectMaxPhaseRateF2, RejectMaxPhaseRateStepF2,
		&obs.PhaseRateL2, &obs.PhaseRateStepL2, &reject, st, valid)

	valid = checkCodeRate(deltaT, code.C1, &st.PrevC1, &st.PrevRangeRateL1,
		cfg.MaxCodeRate, cfg.MaxCodeRateStep, RejectMaxCodeRateF1, RejectMaxCodeRateStepF1,
		&obs.RangeRateL1, &obs.RangeRateStepL1, &reject, st, valid)
	valid = checkCodeRate(deltaT, code.C2, &st.PrevC2, &st.PrevRangeRateL2,
		cfg.MaxCodeRate, cfg.MaxCodeRateStep, RejectMaxCodeRateF2, RejectMaxCodeRateStepF2,
		&obs.RangeRateL2, &obs.RangeRateStepL2, &reject, st, valid)

	status := 0
	if st.Ksmooth > cfg.HatchStateF*cfg.HatchTime && valid != 0 {
		status = 1
	}

	// Carry this epoch's values forward, then pre-align the reported
	// phase combination to the code reference held since the last Hatch
	// reset (spec §3 invariant: the offset is re-added to every
	// subsequent IF_P).
	st.PrevEpoch = code.SOD
	st.PrevC1, st.PrevC2 = Some(code.C1), Some(code.C2)
	st.PrevL1, st.PrevL2 = Some(phase.L1), Some(phase.L2)
	st.IFPPrev = obs.IFPhase
	st.PrevSmooth = obs.SmoothIF
	obs.IFPhase += st.PrealignOffset

	obs.Valid = valid
	obs.RejectionCause = reject
	obs.Status = status
	return obs
}

// checkPhaseRate implements the first- and second-order phase rate checks
// for one frequency (spec §4.1 "Rate checks per frequency").
func checkPhaseRate(deltaT, l, wavelength float64, prevL, prevRate *OptFloat,
	rateCfg, stepCfg config.Threshold, rateCause, stepCause RejectionCause,
	outRate, outStep *OptFloat, reject *RejectionCause, st *PrevPreproState, valid int) int {

	if !prevL.Valid {
		return 0
	}
	rate := (l - prevL.Value) / deltaT * wavelength
	*outRate = Some(rate)
	if rateCfg.Enable && math.Abs(rate) > rateCfg.Value {
		*reject = rateCause
		valid = 0
		st.ResetHatchFilter = true
	}

	if !prevRate.Valid {
		*prevRate = Some(rate)
		return 0
	}
	step := (rate - prevRate.Value) / deltaT
	*outStep = Some(step)
	if stepCfg.Enable && math.Abs(step) > stepCfg.Value {
		*reject = stepCause
		valid = 0
		st.ResetHatchFilter = true
	}
	*prevRate = Some(rate)
	return valid
}

// checkCodeRate is checkPhaseRate's code-observable counterpart (no
// wavelength scaling).
func checkCodeRate(deltaT, c float64, prevC, prevRate *OptFloat,
	rateCfg, stepCfg config.Threshold, rateCause, stepCause RejectionCause,
	outRate, outStep *OptFloat, reject *RejectionCause, st *PrevPreproState, valid int) int {

	if !prevC.Valid {
		return 0
	}
	rate := (c - prevC.Value) / deltaT
	*outRate = Some(rate)
	if rateCfg.Enable && math.Abs(rate) > rateCfg.Value {
		*reject = rateCause
		valid = 0
		st.ResetHatchFilter = true
	}

	if !prevRate.Valid {
		*prevRate = Some(rate)
		return 0
	}
	step := (rate - prevRate.Value) / deltaT
	*outStep = Some(step)
	if stepCfg.Enable && math.Abs(step) > stepCfg.Value {
		*reject = stepCause
		valid = 0
		st.ResetHatchFilter = true
	}
	*prevRate = Some(rate)
	return valid
}

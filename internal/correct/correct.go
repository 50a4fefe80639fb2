package correct

import (
	"github.com/de-bkg/pppcorr/internal/config"
	"github.com/de-bkg/pppcorr/internal/ephem"
	"github.com/de-bkg/pppcorr/internal/frame"
	"github.com/de-bkg/pppcorr/internal/gnssconst"
	"github.com/de-bkg/pppcorr/internal/numeric"
	"github.com/de-bkg/pppcorr/internal/prepro"
)

// satPosWindowSize is the Lagrange interpolation window width for
// satellite CoM position (spec §4.2 "10 rows of SatPos").
const satPosWindowSize = 10

// CorrectEpoch runs the Correction Engine (spec §4.2) over one epoch's
// pre-processor output, returning one CorrectedMeas per input satellite in
// the same order. Tables are read-only; state is the per-satellite
// history carried across epochs for the Dtr finite difference.
func CorrectEpoch(cfg *config.Config, year, doy int, obs []prepro.PreproObs, tables *ephem.Tables, state *StateTable) []CorrectedMeas {
	out := make([]CorrectedMeas, 0, len(obs))

	codeResiduals := make([]float64, 0, len(obs))
	sigmas := make([]float64, 0, len(obs))

	for _, o := range obs {
		sat := ephem.SatKey{Const: o.Sat.Const, PRN: o.Sat.PRN}
		meas := correctSatellite(cfg, year, doy, o, sat, tables, state.Get(sat))
		out = append(out, meas)
		if meas.Flag == 1 {
			codeResiduals = append(codeResiduals, meas.CodeResidual)
			sigmas = append(sigmas, meas.SigmaUere)
		}
	}

	rcvrClk := EstimateReceiverClock(codeResiduals, sigmas)
	for i := range out {
		out[i].RcvrClk = rcvrClk
		out[i].CodeResidual -= rcvrClk
		out[i].PhaseResidual -= rcvrClk
	}
	return out
}

func correctSatellite(cfg *config.Config, year, doy int, o prepro.PreproObs, sat ephem.SatKey, tables *ephem.Tables, st *PrevCorrState) CorrectedMeas {
	meas := CorrectedMeas{SOD: o.SOD, Sat: sat, Elev: o.Elev, Azim: o.Azim}
	if sat.Const == gnssconst.GPS {
		meas.SigmaUere = cfg.GpsUere
	} else {
		meas.SigmaUere = cfg.GalUere
	}

	leoPos, okLeo := tables.LeoPosAt(o.SOD)
	quat, okQuat := tables.LeoQuatAt(o.SOD)
	clkBias, okClk := tables.SatClkBiasAt(sat, o.SOD)
	apoRow, okApo := tables.SatApoFilter(sat)
	biaRow, okBia := tables.SatBiaFilter(sat)
	if !okLeo || !okQuat || !okClk || !okApo || !okBia {
		meas.Flag = 0
		return meas
	}

	rcvrApc := receiverApc(cfg, sat.Const, quat, year, doy, o.SOD)
	rcvrRefPos := leoPos.Add(rcvrApc)
	meas.RcvrApcPos = rcvrApc
	meas.RcvrComPos = rcvrRefPos

	deltaT := o.C1 / gnssconst.SpeedOfLight
	transmissionTime := o.SOD - deltaT - clkBias

	satRows := tables.SatPosFilter(sat)
	window := ephem.SatPosWindow(satRows, transmissionTime, satPosWindowSize)
	if len(window) == 0 {
		meas.Flag = 0
		return meas
	}
	xs := make([]float64, len(window))
	ys := make([]frame.Vec3, len(window))
	for i, r := range window {
		xs[i] = r.SOD
		ys[i] = r.Pos
	}
	satComRaw := numeric.LagrangeInterpolateVec3(xs, ys, transmissionTime)

	flightTimeSeconds := satComRaw.Sub(rcvrRefPos).Norm() / gnssconst.SpeedOfLight
	theta := gnssconst.EarthRotationRate * flightTimeSeconds
	satComPos := frame.RotationZ(theta).MulVec(satComRaw)
	meas.SatComPos = satComPos
	meas.FlightTimeMs = flightTimeSeconds * 1000

	satApoPos := satApo(satComPos, apoRow, gnssconst.Gamma(sat.Const), year, doy, o.SOD)
	meas.SatApoPos = satApoPos

	gamma := gnssconst.Gamma(sat.Const)
	meas.CodeBias = (biaRow.CodeF1 + gamma*biaRow.CodeF2) / (1 + gamma)
	meas.PhaseBias = (biaRow.PhaseF1 + gamma*biaRow.PhaseF2) / (1 + gamma)
	clockBiasExtra := (biaRow.ClkF1 + gamma*biaRow.ClkF2) / (1 + gamma)

	var dtr float64
	if st.HasPrev {
		dt := o.SOD - st.SodPrev
		dr := satComPos.Sub(st.SatComPrev).Norm()
		dtr = dr / (gnssconst.SpeedOfLight * dt)
	}
	meas.Dtr = dtr
	st.SodPrev = o.SOD
	st.SatComPrev = satComPos
	st.HasPrev = true

	meas.SatClk = clkBias + dtr + clockBiasExtra
	meas.CorrCode = o.IFCode + meas.SatClk + meas.CodeBias
	meas.CorrPhase = o.IFPhase + meas.SatClk + meas.PhaseBias
	meas.GeomRange = satApoPos.Sub(rcvrRefPos).Norm()
	meas.CodeResidual = meas.CorrCode - meas.GeomRange
	meas.PhaseResidual = meas.CorrPhase - meas.GeomRange

	if dtr == 0 || meas.CorrCode == 0 || meas.CorrPhase == 0 || meas.GeomRange == 0 {
		meas.Flag = 0
	} else {
		meas.Flag = 1
	}
	return meas
}

// receiverApc computes the receiver antenna phase center in ECEF (spec
// §4.2 steps 1-5).
func receiverApc(cfg *config.Config, c gnssconst.Constel, quat ephem.LeoQuatRow, year, doy int, sod float64) frame.Vec3 {
	pco := cfg.LeoPcoGPS
	if c == gnssconst.GAL {
		pco = cfg.LeoPcoGAL
	}
	apcSRF := cfg.LeoArpPos.Sub(cfg.LeoComPos).Add(pco)

	rq := frame.QuaternionToRotation(quat.Q0, quat.Q1, quat.Q2, quat.Q3)
	apcECI := rq.MulVec(apcSRF)

	rgst := frame.ECIToECEF(year, doy, sod)
	return rgst.MulVec(apcECI)
}

// satApo computes the satellite antenna phase offset in ECEF and returns
// the satellite's center-of-phase position (spec §4.2 "satellite antenna
// phase offset"). The per-frequency body-frame offsets are combined with
// the same iono-free ratio as the code/phase biases, to stay dimensionally
// consistent with the iono-free observables the offset ultimately feeds.
func satApo(satComPos frame.Vec3, apoRow ephem.SatApoRow, gamma float64, year, doy int, sod float64) frame.Vec3 {
	k := satComPos.Unit()
	sun := frame.FindSun(year, doy, sod)
	e := sun.Sub(satComPos).Unit()
	j := k.Cross(e)
	i := j.Cross(k)
	r := frame.RowsFromVecs(i, j, k)

	offsetBody := frame.Vec3{
		X: (apoRow.F1.X + gamma*apoRow.F2.X) / (1 + gamma),
		Y: (apoRow.F1.Y + gamma*apoRow.F2.Y) / (1 + gamma),
		Z: (apoRow.F1.Z + gamma*apoRow.F2.Z) / (1 + gamma),
	}
	apoECEF := r.MulVec(offsetBody)
	return satComPos.Add(apoECEF)
}

// EstimateReceiverClock is the weighted-mean receiver-clock first guess
// (spec §4.2 "receiver clock first guess", spec §9 open question: exposed
// as a pure function so a downstream estimator can replace it). Weights
// are 1/sigma^2; entries with a non-positive sigma are skipped. Returns 0
// if there are no usable entries.
func EstimateReceiverClock(residuals, sigmas []float64) float64 {
	var weightedSum, weightSum float64
	for i, r := range residuals {
		if i >= len(sigmas) || sigmas[i] <= 0 {
			continue
		}
		w := 1 / (sigmas[i] * sigmas[i])
		weightedSum += w * r
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}
	return weightedSum / weightSum
}

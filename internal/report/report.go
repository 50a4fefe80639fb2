// Package report formats the pre-processor and correction-engine output
// lines described in spec §6 (PREPRO OBS and CORR), as pure string-
// building functions independent of file I/O, in the same fixed-column
// `Printf`-style the teacher uses for `Epoch.PrintTab` (`pkg/rinex/obs.go`).
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/de-bkg/pppcorr/internal/correct"
	"github.com/de-bkg/pppcorr/internal/prepro"
)

func optOrNaN(o prepro.OptFloat) float64 {
	if !o.Valid {
		return math.NaN()
	}
	return o.Value
}

// PreproHeader is the `#`-prefixed column header for the PREPRO OBS file.
const PreproHeader = "# SOD PRN ELEV AZIM VALID REJECT STATUS C1 C2 L1 L2 S1 S2 " +
	"CODE_RATE CODE_RATE_STEP PHASE_RATE PHASE_RATE_STEP CODE_IF PHASE_IF SMOOTH_IF"

// FormatPreproLine renders one satellite's pre-processor output for one
// epoch (spec §6 PREPRO OBS line).
func FormatPreproLine(o prepro.PreproObs) string {
	return fmt.Sprintf(
		"%8.3f %s%02d %6.2f %7.2f %2d %2d %2d "+
			"%14.4f %14.4f %14.4f %14.4f %6.2f %6.2f "+
			"%12.4f %12.4f %12.4f %12.4f %14.4f %14.4f %14.4f",
		o.SOD, o.Sat.Const.String(), o.Sat.PRN, o.Elev, o.Azim,
		o.Valid, int(o.RejectionCause), o.Status,
		o.C1, o.C2, o.L1, o.L2, o.S1, o.S2,
		optOrNaN(o.RangeRateL1), optOrNaN(o.RangeRateStepL1),
		optOrNaN(o.PhaseRateL1), optOrNaN(o.PhaseRateStepL1),
		o.IFCode, o.IFPhase, o.SmoothIF,
	)
}

// CorrHeader is the `#`-prefixed column header for the CORR file.
const CorrHeader = "# SOD CONST PRN ELEV AZIM FLAG " +
	"LEO_X LEO_Y LEO_Z LEO_APO_X LEO_APO_Y LEO_APO_Z " +
	"SAT_X SAT_Y SAT_Z SAT_APO_X SAT_APO_Y SAT_APO_Z " +
	"SAT_CLK CODE_BIA PHASE_BIA FLIGHT_TIME DTR " +
	"CORR_CODE CORR_PHASE GEOM_RNGE CODE_RES PHASE_RES RCVR_CLK SUERE"

// FormatCorrLine renders one satellite's correction-engine output for one
// epoch (spec §6 CORR line).
func FormatCorrLine(m correct.CorrectedMeas) string {
	return fmt.Sprintf(
		"%8.3f %s %2d %6.2f %7.2f %1d "+
			"%14.4f %14.4f %14.4f %10.4f %10.4f %10.4f "+
			"%14.4f %14.4f %14.4f %10.4f %10.4f %10.4f "+
			"%16.9f %10.4f %10.4f %12.6f %16.12f "+
			"%14.4f %14.4f %14.4f %10.4f %10.4f %10.4f %8.3f",
		m.SOD, m.Sat.Const.String(), m.Sat.PRN, m.Elev, m.Azim, m.Flag,
		m.RcvrComPos.X, m.RcvrComPos.Y, m.RcvrComPos.Z,
		m.RcvrApcPos.X, m.RcvrApcPos.Y, m.RcvrApcPos.Z,
		m.SatComPos.X, m.SatComPos.Y, m.SatComPos.Z,
		m.SatApoPos.X-m.SatComPos.X, m.SatApoPos.Y-m.SatComPos.Y, m.SatApoPos.Z-m.SatComPos.Z,
		m.SatClk, m.CodeBias, m.PhaseBias, m.FlightTimeMs, m.Dtr,
		m.CorrCode, m.CorrPhase, m.GeomRange, m.CodeResidual, m.PhaseResidual, m.RcvrClk, m.SigmaUere,
	)
}

// WritePrepro writes the PREPRO OBS header followed by one line per obs.
func WritePrepro(w io.Writer, obs []prepro.PreproObs) error {
	if _, err := fmt.Fprintln(w, PreproHeader); err != nil {
		return err
	}
	for _, o := range obs {
		if _, err := fmt.Fprintln(w, FormatPreproLine(o)); err != nil {
			return err
		}
	}
	return nil
}

// WriteCorr writes the CORR header followed by one line per measurement.
func WriteCorr(w io.Writer, meas []correct.CorrectedMeas) error {
	if _, err := fmt.Fprintln(w, CorrHeader); err != nil {
		return err
	}
	for _, m := range meas {
		if _, err := fmt.Fprintln(w, FormatCorrLine(m)); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"fmt"
	"path/filepath"

	"github.com/de-bkg/pppcorr/internal/day"
)

// scenarioPaths collects the per-day input/output file locations derived
// from a scenario root directory, a processing day and the acronym named
// by SAT_ACRONYM (spec §6 CLI: "Expects subdirectories CFG/, INP/OBS/,
// INP/SP3/, INP/ATT/, INP/ATX/, INP/CLK/, INP/BIA/; writes OUT/PPVE/ and
// OUT/CORR/"). The distilled spec names the subdirectories but not a file
// naming convention within them; this module uses
// "<acronym>_<year><doy3>" as the per-day stem, consistent with the
// acronym+date naming IGS precise-product distributions use.
type scenarioPaths struct {
	LeoPos, LeoQuat    string
	SatPos, SatClk     string
	SatApo, SatBia     string
	ObsCode, ObsPhase  string
	PreproOut, CorrOut string
}

func dayStem(acronym string, d day.Day) string {
	return fmt.Sprintf("%s_%04d%03d", acronym, d.Year, d.DOY)
}

func buildScenarioPaths(root, acronym, satApoFile, satBiaFile string, d day.Day) scenarioPaths {
	stem := dayStem(acronym, d)
	return scenarioPaths{
		LeoPos:    filepath.Join(root, "INP", "SP3", stem+"_leopos.sp3"),
		LeoQuat:   filepath.Join(root, "INP", "ATT", stem+"_leoquat.att"),
		SatPos:    filepath.Join(root, "INP", "SP3", stem+"_satpos.sp3"),
		SatClk:    filepath.Join(root, "INP", "CLK", stem+"_satclk.clk"),
		SatApo:    filepath.Join(root, "INP", "ATX", satApoFile),
		SatBia:    filepath.Join(root, "INP", "BIA", satBiaFile),
		ObsCode:   filepath.Join(root, "INP", "OBS", stem+"_code.obs"),
		ObsPhase:  filepath.Join(root, "INP", "OBS", stem+"_phase.obs"),
		PreproOut: filepath.Join(root, "OUT", "PPVE", stem+"_PREPRO.txt"),
		CorrOut:   filepath.Join(root, "OUT", "CORR", stem+"_CORR.txt"),
	}
}

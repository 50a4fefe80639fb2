// Command pppcorr is the PPP pre-processor's day-loop orchestrator (spec
// §6 CLI): it takes a scenario root directory, loads configuration and
// static ephemeris tables, then drives internal/prepro and
// internal/correct one epoch at a time, writing the PREPRO OBS / CORR
// output files the downstream navigation-solution estimator consumes.
//
// This orchestration loop, file parsing and output formatting are the
// external collaborators spec §1 calls out as out of scope for the core;
// this command wires them together around the core's public API.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/de-bkg/pppcorr/internal/config"
	"github.com/de-bkg/pppcorr/internal/correct"
	"github.com/de-bkg/pppcorr/internal/day"
	"github.com/de-bkg/pppcorr/internal/gnssconst"
	"github.com/de-bkg/pppcorr/internal/loader"
	"github.com/de-bkg/pppcorr/internal/prepro"
	"github.com/de-bkg/pppcorr/internal/report"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Version: "v0.1.0",
		Authors: []*cli.Author{
			{Name: "BKG Frankfurt", Email: "info@bkg.bund.de"},
		},
		Copyright: "(c) 2026 BKG Frankfurt",
		HelpName:  "pppcorr",
		Usage:     "LEO PPP pre-processor: quality-gate and correct dual-frequency GPS/Galileo observations",
		ArgsUsage: "<scenario-root>",
		Action:    run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		cli.ShowAppHelpAndExit(c, 1)
	}
	root := c.Args().Get(0)

	cfgPath, err := findConfigFile(filepath.Join(root, "CFG"))
	if err != nil {
		return fmt.Errorf("pppcorr: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("pppcorr: %w", err)
	}

	for _, d := range day.Range(cfg.IniDate, cfg.EndDate) {
		if err := processDay(cfg, root, d); err != nil {
			log.Printf("pppcorr: day %04d-%03d: %v, skipping", d.Year, d.DOY, err)
			continue
		}
	}
	return nil
}

// findConfigFile returns the single *.cfg file under cfgDir (spec §6
// "CFG/" subdirectory); a scenario carries exactly one configuration file.
func findConfigFile(cfgDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(cfgDir, "*.cfg"))
	if err != nil {
		return "", fmt.Errorf("glob %q: %w", cfgDir, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no *.cfg file found under %q", cfgDir)
	}
	return matches[0], nil
}

// processDay runs the full pre-processor + correction-engine pipeline for
// one calendar day. Per spec §7, I/O errors are fatal for the current day
// only; the caller moves on to the next day.
func processDay(cfg *config.Config, root string, d day.Day) error {
	paths := buildScenarioPaths(root, cfg.SatAcronym, cfg.SatApoFile, cfg.SatBiaFile, d)

	tables, err := loader.LoadTables(paths.LeoPos, paths.LeoQuat, paths.SatPos, paths.SatClk, paths.SatApo, paths.SatBia)
	if err != nil {
		return err
	}

	codes, phases, err := loader.LoadObs(paths.ObsCode, paths.ObsPhase)
	if err != nil {
		return err
	}
	codes = filterCodesByConstel(codes, cfg.NavSolution)
	phases = filterPhasesByConstel(phases, cfg.NavSolution)

	order, codeBySOD, phaseBySOD := loader.GroupBySOD(codes, phases)

	preproState := prepro.NewStateTable(cfg.CycleSlips.CSNEpochs)
	corrState := correct.NewStateTable()

	var allPrepro []prepro.PreproObs
	var allCorr []correct.CorrectedMeas

	for _, sod := range order {
		obs := prepro.ProcessEpoch(cfg, codeBySOD[sod], phaseBySOD[sod], preproState)
		allPrepro = append(allPrepro, obs...)

		meas := correct.CorrectEpoch(cfg, d.Year, d.DOY, obs, tables, corrState)
		allCorr = append(allCorr, meas...)
	}

	if cfg.PreproOut {
		if err := writeReport(paths.PreproOut, func(f *os.File) error {
			return report.WritePrepro(f, allPrepro)
		}); err != nil {
			return err
		}
	}
	if cfg.CorrOut {
		if err := writeReport(paths.CorrOut, func(f *os.File) error {
			return report.WriteCorr(f, allCorr)
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeReport(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %q: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()
	return write(f)
}

func filterCodesByConstel(codes []prepro.CodeRecord, nav config.NavSolution) []prepro.CodeRecord {
	out := make([]prepro.CodeRecord, 0, len(codes))
	for _, c := range codes {
		if constelWanted(c.Sat.Const, nav) {
			out = append(out, c)
		}
	}
	return out
}

func filterPhasesByConstel(phases []prepro.PhaseRecord, nav config.NavSolution) []prepro.PhaseRecord {
	out := make([]prepro.PhaseRecord, 0, len(phases))
	for _, p := range phases {
		if constelWanted(p.Sat.Const, nav) {
			out = append(out, p)
		}
	}
	return out
}

func constelWanted(c gnssconst.Constel, nav config.NavSolution) bool {
	switch nav {
	case config.NavSolutionGPS:
		return c == gnssconst.GPS
	case config.NavSolutionGAL:
		return c == gnssconst.GAL
	default: // GPSGAL
		return c == gnssconst.GPS || c == gnssconst.GAL
	}
}

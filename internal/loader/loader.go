// Package loader reads the scenario's static whitespace-delimited tables
// (spec §3/§6) and per-epoch observation files into the in-memory shapes
// internal/ephem and internal/prepro consume. Input files are frequently
// shipped compressed by precise-product distributors, so every open goes
// through the same transparent-decompression path the teacher uses for
// RINEX files (`cmd/rnxgo/rnxgo.go`'s `archiver.DecompressFile` call).
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/de-bkg/pppcorr/internal/ephem"
	"github.com/de-bkg/pppcorr/internal/gnssconst"
	"github.com/de-bkg/pppcorr/internal/prepro"
	"github.com/de-bkg/pppcorr/internal/schema"
	"github.com/mholt/archiver/v3"
)

var compressedExt = map[string]bool{
	".gz": true, ".z": true, ".zip": true, ".bz2": true, ".xz": true,
}

// open returns a reader for path, transparently decompressing it into a
// temporary file first if its extension names a known archive format. The
// returned closer removes that temporary file, if any, on Close.
func open(path string) (io.ReadCloser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !compressedExt[ext] {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("loader: open %q: %w", path, err)
		}
		return f, nil
	}

	tmp, err := os.CreateTemp("", "pppcorr-*"+strings.TrimSuffix(filepath.Base(path), ext))
	if err != nil {
		return nil, fmt.Errorf("loader: create temp file for %q: %w", path, err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := archiver.DecompressFile(path, tmpPath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("loader: decompress %q: %w", path, err)
	}
	f, err := os.Open(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("loader: open decompressed %q: %w", path, err)
	}
	return &tempFile{File: f, tmpPath: tmpPath}, nil
}

type tempFile struct {
	*os.File
	tmpPath string
}

func (t *tempFile) Close() error {
	err := t.File.Close()
	os.Remove(t.tmpPath)
	return err
}

// readTable scans r line by line, stripping `#` comments and blank lines,
// splitting the rest on whitespace, and calling fn for every data line
// with at least minCols fields (spec §6: "#-prefixed header line
// describing columns; the core's accessors bind fields by column index").
func readTable(r io.Reader, minCols int, fn func(fields []string) error) error {
	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < minCols {
			return fmt.Errorf("line %d: expected at least %d fields, got %d", lineNum, minCols, len(fields))
		}
		if err := fn(fields); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	return sc.Err()
}

func parseFloatField(fields []string, idx int) (float64, error) {
	return strconv.ParseFloat(fields[idx], 64)
}

func parseIntField(fields []string, idx int) (int, error) {
	return strconv.Atoi(fields[idx])
}

func parseConstField(fields []string, idx int) (gnssconst.Constel, error) {
	c, ok := gnssconst.ParseConstel(fields[idx])
	if !ok {
		return 0, fmt.Errorf("unknown constellation %q", fields[idx])
	}
	return c, nil
}

// LoadLeoPos reads the LEO precise-orbit table.
func LoadLeoPos(path string) ([]ephem.LeoPosRow, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []ephem.LeoPosRow
	err = readTable(f, schema.LeoPosNumCols, func(fields []string) error {
		sod, err := parseFloatField(fields, schema.LeoPosSOD)
		if err != nil {
			return err
		}
		doy, err := parseIntField(fields, schema.LeoPosDOY)
		if err != nil {
			return err
		}
		year, err := parseIntField(fields, schema.LeoPosYEAR)
		if err != nil {
			return err
		}
		x, err := parseFloatField(fields, schema.LeoPosX)
		if err != nil {
			return err
		}
		y, err := parseFloatField(fields, schema.LeoPosY)
		if err != nil {
			return err
		}
		z, err := parseFloatField(fields, schema.LeoPosZ)
		if err != nil {
			return err
		}
		rows = append(rows, ephem.LeoPosRow{SOD: sod, DOY: doy, Year: year, Pos: vec3(x, y, z)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: LeoPos %q: %w", path, err)
	}
	return rows, nil
}

// LoadLeoQuat reads the LEO attitude quaternion table.
func LoadLeoQuat(path string) ([]ephem.LeoQuatRow, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []ephem.LeoQuatRow
	err = readTable(f, schema.LeoQuatNumCols, func(fields []string) error {
		sod, err := parseFloatField(fields, schema.LeoQuatSOD)
		if err != nil {
			return err
		}
		q0, err := parseFloatField(fields, schema.LeoQuatQ0)
		if err != nil {
			return err
		}
		q1, err := parseFloatField(fields, schema.LeoQuatQ1)
		if err != nil {
			return err
		}
		q2, err := parseFloatField(fields, schema.LeoQuatQ2)
		if err != nil {
			return err
		}
		q3, err := parseFloatField(fields, schema.LeoQuatQ3)
		if err != nil {
			return err
		}
		rows = append(rows, ephem.LeoQuatRow{SOD: sod, Q0: q0, Q1: q1, Q2: q2, Q3: q3})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: LeoQuat %q: %w", path, err)
	}
	return rows, nil
}

// LoadSatPos reads the satellite precise-orbit table.
func LoadSatPos(path string) ([]ephem.SatPosRow, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []ephem.SatPosRow
	err = readTable(f, schema.SatPosNumCols, func(fields []string) error {
		sod, err := parseFloatField(fields, schema.SatPosSOD)
		if err != nil {
			return err
		}
		doy, err := parseIntField(fields, schema.SatPosDOY)
		if err != nil {
			return err
		}
		year, err := parseIntField(fields, schema.SatPosYEAR)
		if err != nil {
			return err
		}
		c, err := parseConstField(fields, schema.SatPosConst)
		if err != nil {
			return err
		}
		prn, err := parseIntField(fields, schema.SatPosPRN)
		if err != nil {
			return err
		}
		x, err := parseFloatField(fields, schema.SatPosX)
		if err != nil {
			return err
		}
		y, err := parseFloatField(fields, schema.SatPosY)
		if err != nil {
			return err
		}
		z, err := parseFloatField(fields, schema.SatPosZ)
		if err != nil {
			return err
		}
		rows = append(rows, ephem.SatPosRow{
			SOD: sod, DOY: doy, Year: year,
			Sat: ephem.SatKey{Const: c, PRN: prn}, Pos: vec3(x, y, z),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: SatPos %q: %w", path, err)
	}
	return rows, nil
}

// LoadSatClk reads the satellite precise-clock table. Clock bias is
// parsed at full float64 precision (spec §9 "biased clock semantics":
// avoid any intermediate conversion that would truncate mantissa bits).
func LoadSatClk(path string) ([]ephem.SatClkRow, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []ephem.SatClkRow
	err = readTable(f, schema.SatClkNumCols, func(fields []string) error {
		sod, err := parseFloatField(fields, schema.SatClkSOD)
		if err != nil {
			return err
		}
		c, err := parseConstField(fields, schema.SatClkConst)
		if err != nil {
			return err
		}
		prn, err := parseIntField(fields, schema.SatClkPRN)
		if err != nil {
			return err
		}
		bias, err := parseFloatField(fields, schema.SatClkBias)
		if err != nil {
			return err
		}
		rows = append(rows, ephem.SatClkRow{SOD: sod, Sat: ephem.SatKey{Const: c, PRN: prn}, Bias: bias})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: SatClk %q: %w", path, err)
	}
	return rows, nil
}

// LoadSatApo reads the satellite antenna phase offset table.
func LoadSatApo(path string) ([]ephem.SatApoRow, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []ephem.SatApoRow
	err = readTable(f, schema.SatApoNumCols, func(fields []string) error {
		c, err := parseConstField(fields, schema.SatApoConst)
		if err != nil {
			return err
		}
		prn, err := parseIntField(fields, schema.SatApoPRN)
		if err != nil {
			return err
		}
		f1x, err := parseFloatField(fields, schema.SatApoF1X)
		if err != nil {
			return err
		}
		f1y, err := parseFloatField(fields, schema.SatApoF1Y)
		if err != nil {
			return err
		}
		f1z, err := parseFloatField(fields, schema.SatApoF1Z)
		if err != nil {
			return err
		}
		f2x, err := parseFloatField(fields, schema.SatApoF2X)
		if err != nil {
			return err
		}
		f2y, err := parseFloatField(fields, schema.SatApoF2Y)
		if err != nil {
			return err
		}
		f2z, err := parseFloatField(fields, schema.SatApoF2Z)
		if err != nil {
			return err
		}
		rows = append(rows, ephem.SatApoRow{
			Sat: ephem.SatKey{Const: c, PRN: prn},
			F1:  vec3(f1x, f1y, f1z), F2: vec3(f2x, f2y, f2z),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: SatApo %q: %w", path, err)
	}
	return rows, nil
}

// LoadSatBia reads the satellite code/phase/clock bias table.
func LoadSatBia(path string) ([]ephem.SatBiaRow, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []ephem.SatBiaRow
	err = readTable(f, schema.SatBiaNumCols, func(fields []string) error {
		c, err := parseConstField(fields, schema.SatBiaConst)
		if err != nil {
			return err
		}
		prn, err := parseIntField(fields, schema.SatBiaPRN)
		if err != nil {
			return err
		}
		codeF1, err := parseFloatField(fields, schema.SatBiaCodeF1)
		if err != nil {
			return err
		}
		codeF2, err := parseFloatField(fields, schema.SatBiaCodeF2)
		if err != nil {
			return err
		}
		phaseF1, err := parseFloatField(fields, schema.SatBiaPhaseF1)
		if err != nil {
			return err
		}
		phaseF2, err := parseFloatField(fields, schema.SatBiaPhaseF2)
		if err != nil {
			return err
		}
		clkF1, err := parseFloatField(fields, schema.SatBiaClkF1)
		if err != nil {
			return err
		}
		clkF2, err := parseFloatField(fields, schema.SatBiaClkF2)
		if err != nil {
			return err
		}
		rows = append(rows, ephem.SatBiaRow{
			Sat: ephem.SatKey{Const: c, PRN: prn},
			CodeF1: codeF1, CodeF2: codeF2,
			PhaseF1: phaseF1, PhaseF2: phaseF2,
			ClkF1: clkF1, ClkF2: clkF2,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: SatBia %q: %w", path, err)
	}
	return rows, nil
}

// LoadTables assembles one day's complete Tables from the scenario's SP3/
// CLK/ATT input directories plus the SAT_APO_FILE/SAT_BIA_FILE named in
// configuration (spec §6 CLI subdirectory layout).
func LoadTables(leoPosPath, leoQuatPath, satPosPath, satClkPath, satApoPath, satBiaPath string) (*ephem.Tables, error) {
	leoPos, err := LoadLeoPos(leoPosPath)
	if err != nil {
		return nil, err
	}
	leoQuat, err := LoadLeoQuat(leoQuatPath)
	if err != nil {
		return nil, err
	}
	satPos, err := LoadSatPos(satPosPath)
	if err != nil {
		return nil, err
	}
	satClk, err := LoadSatClk(satClkPath)
	if err != nil {
		return nil, err
	}
	satApo, err := LoadSatApo(satApoPath)
	if err != nil {
		return nil, err
	}
	satBia, err := LoadSatBia(satBiaPath)
	if err != nil {
		return nil, err
	}
	return &ephem.Tables{
		LeoPos: leoPos, LeoQuat: leoQuat, SatPos: satPos,
		SatClk: satClk, SatApo: satApo, SatBia: satBia,
	}, nil
}

// LoadObs reads a day's per-epoch code and phase observation files,
// returning every record in file order (spec §6 "Ordering guarantees:
// ... within an epoch, satellites are emitted in the order they appear in
// the input observation file"). internal/prepro.ProcessEpoch takes one
// epoch's code/phase slices per call, so callers bucket this output by SOD
// (GroupBySOD) at the orchestration layer.
func LoadObs(codePath, phasePath string) ([]prepro.CodeRecord, []prepro.PhaseRecord, error) {
	codes, err := loadObsCode(codePath)
	if err != nil {
		return nil, nil, err
	}
	phases, err := loadObsPhase(phasePath)
	if err != nil {
		return nil, nil, err
	}
	return codes, phases, nil
}

func loadObsCode(path string) ([]prepro.CodeRecord, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []prepro.CodeRecord
	err = readTable(f, schema.ObsCodeNumCols, func(fields []string) error {
		sod, err := parseFloatField(fields, schema.ObsCodeSOD)
		if err != nil {
			return err
		}
		c, err := parseConstField(fields, schema.ObsCodeConst)
		if err != nil {
			return err
		}
		prn, err := parseIntField(fields, schema.ObsCodePRN)
		if err != nil {
			return err
		}
		elev, err := parseFloatField(fields, schema.ObsCodeElev)
		if err != nil {
			return err
		}
		azim, err := parseFloatField(fields, schema.ObsCodeAzim)
		if err != nil {
			return err
		}
		c1, err := parseFloatField(fields, schema.ObsCodeC1)
		if err != nil {
			return err
		}
		c2, err := parseFloatField(fields, schema.ObsCodeC2)
		if err != nil {
			return err
		}
		s1, err := parseFloatField(fields, schema.ObsCodeS1)
		if err != nil {
			return err
		}
		s2, err := parseFloatField(fields, schema.ObsCodeS2)
		if err != nil {
			return err
		}
		out = append(out, prepro.CodeRecord{
			SOD: sod, Sat: prepro.SatID{Const: c, PRN: prn},
			Elev: elev, Azim: azim, C1: c1, C2: c2, S1: s1, S2: s2,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: obs code %q: %w", path, err)
	}
	return out, nil
}

func loadObsPhase(path string) ([]prepro.PhaseRecord, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []prepro.PhaseRecord
	err = readTable(f, schema.ObsPhaseNumCols, func(fields []string) error {
		sod, err := parseFloatField(fields, schema.ObsPhaseSOD)
		if err != nil {
			return err
		}
		c, err := parseConstField(fields, schema.ObsPhaseConst)
		if err != nil {
			return err
		}
		prn, err := parseIntField(fields, schema.ObsPhasePRN)
		if err != nil {
			return err
		}
		l1, err := parseFloatField(fields, schema.ObsPhaseL1)
		if err != nil {
			return err
		}
		l2, err := parseFloatField(fields, schema.ObsPhaseL2)
		if err != nil {
			return err
		}
		out = append(out, prepro.PhaseRecord{SOD: sod, Sat: prepro.SatID{Const: c, PRN: prn}, L1: l1, L2: l2})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: obs phase %q: %w", path, err)
	}
	return out, nil
}

// GroupBySOD buckets code/phase records by epoch, preserving each
// bucket's within-epoch file order, for feeding prepro.ProcessEpoch one
// epoch at a time.
func GroupBySOD(codes []prepro.CodeRecord, phases []prepro.PhaseRecord) ([]float64, map[float64][]prepro.CodeRecord, map[float64][]prepro.PhaseRecord) {
	codeBySOD := make(map[float64][]prepro.CodeRecord)
	phaseBySOD := make(map[float64][]prepro.PhaseRecord)
	var order []float64
	seen := make(map[float64]bool)

	for _, c := range codes {
		if !seen[c.SOD] {
			seen[c.SOD] = true
			order = append(order, c.SOD)
		}
		codeBySOD[c.SOD] = append(codeBySOD[c.SOD], c)
	}
	for _, p := range phases {
		if !seen[p.SOD] {
			seen[p.SOD] = true
			order = append(order, p.SOD)
		}
		phaseBySOD[p.SOD] = append(phaseBySOD[p.SOD], p)
	}

	sortFloat64s(order)
	return order, codeBySOD, phaseBySOD
}

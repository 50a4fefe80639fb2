// Package config loads and validates the scenario configuration file
// described in spec §6: a flat, one-parameter-per-line text file with
// `#` comments. Validation follows the teacher's own sitelog pattern
// (pkg/site.Site.ValidateAndClean in the de-bkg/gognss repo this module
// was adapted from): build the struct, then hand it to a single shared
// validator.Validate instance.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/de-bkg/pppcorr/internal/frame"
	"github.com/go-playground/validator/v10"
)

// Threshold is an [enable, value] pair, the shape most per-check
// parameters take in spec §6 (MIN_SNR, MAX_PSR_OUTRNG, MAX_DATA_GAP, ...).
type Threshold struct {
	Enable bool
	Value  float64 `validate:"gte=0"`
}

// CycleSlipConfig is the CYCLE_SLIPS parameter block.
type CycleSlipConfig struct {
	Enable    bool
	Threshold float64 `validate:"gte=0"`
	CSNEpochs int     `validate:"gt=0"`
	CSNPoints int     `validate:"gt=0"`
	CSPDegree int     `validate:"gte=0"`
}

// NavSolution enumerates the constellation-selection values accepted by
// the NAV_SOLUTION parameter.
type NavSolution string

const (
	NavSolutionGPS    NavSolution = "GPS"
	NavSolutionGAL    NavSolution = "GAL"
	NavSolutionGPSGAL NavSolution = "GPSGAL"
)

// Config is the fully parsed, validated scenario configuration (spec §6).
type Config struct {
	IniDate time.Time `validate:"required"`
	EndDate time.Time `validate:"required"`

	SamplingRate float64     `validate:"gt=0"`
	NavSolution  NavSolution `validate:"required,oneof=GPS GAL GPSGAL"`

	PreproOut  bool
	CorrOut    bool
	SatAcronym string `validate:"required"`

	RcvrMask float64 `validate:"gte=0,lt=90"`

	MinSNR           Threshold
	CycleSlips       CycleSlipConfig
	MaxPsrOutrng     Threshold
	MaxCodeRate      Threshold
	MaxCodeRateStep  Threshold
	MaxPhaseRate     Threshold
	MaxPhaseRateStep Threshold
	MaxDataGap       Threshold

	HatchTime   float64 `validate:"gt=0"`
	HatchStateF float64 `validate:"gt=0"`

	LeoComPos frame.Vec3
	LeoArpPos frame.Vec3
	LeoPcoGPS frame.Vec3
	LeoPcoGAL frame.Vec3

	SatApoFile string `validate:"required"`
	SatBiaFile string `validate:"required"`

	GpsUere float64 `validate:"gt=0"`
	GalUere float64 `validate:"gt=0"`

	MaxLsqIter int     `validate:"gt=0"`
	PdopMax    float64 `validate:"gt=0"`
}

var validate = validator.New()

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a configuration stream and validates the result.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
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
		key := strings.ToUpper(fields[0])
		vals := fields[1:]
		if err := assign(cfg, key, vals); err != nil {
			return nil, fmt.Errorf("config: line %d: %w", lineNum, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

const dateLayout = "02/01/2006"

func assign(cfg *Config, key string, vals []string) error {
	switch key {
	case "INI_DATE":
		t, err := parseDate(vals)
		if err != nil {
			return err
		}
		cfg.IniDate = t
	case "END_DATE":
		t, err := parseDate(vals)
		if err != nil {
			return err
		}
		cfg.EndDate = t
	case "SAMPLING_RATE":
		v, err := parseFloat(vals, 0)
		if err != nil {
			return err
		}
		cfg.SamplingRate = v
	case "NAV_SOLUTION":
		if len(vals) != 1 {
			return fmt.Errorf("NAV_SOLUTION: expected one value")
		}
		cfg.NavSolution = NavSolution(vals[0])
	case "PREPRO_OUT":
		b, err := parseBool(vals, 0)
		if err != nil {
			return err
		}
		cfg.PreproOut = b
	case "CORR_OUT":
		b, err := parseBool(vals, 0)
		if err != nil {
			return err
		}
		cfg.CorrOut = b
	case "SAT_ACRONYM":
		if len(vals) != 1 {
			return fmt.Errorf("SAT_ACRONYM: expected one value")
		}
		cfg.SatAcronym = vals[0]
	case "RCVR_MASK":
		v, err := parseFloat(vals, 0)
		if err != nil {
			return err
		}
		cfg.RcvrMask = v
	case "MIN_SNR":
		th, err := parseThreshold(vals)
		if err != nil {
			return err
		}
		cfg.MinSNR = th
	case "MAX_PSR_OUTRNG":
		th, err := parseThreshold(vals)
		if err != nil {
			return err
		}
		cfg.MaxPsrOutrng = th
	case "MAX_CODE_RATE":
		th, err := parseThreshold(vals)
		if err != nil {
			return err
		}
		cfg.MaxCodeRate = th
	case "MAX_CODE_RATE_STEP":
		th, err := parseThreshold(vals)
		if err != nil {
			return err
		}
		cfg.MaxCodeRateStep = th
	case "MAX_PHASE_RATE":
		th, err := parseThreshold(vals)
		if err != nil {
			return err
		}
		cfg.MaxPhaseRate = th
	case "MAX_PHASE_RATE_STEP":
		th, err := parseThreshold(vals)
		if err != nil {
			return err
		}
		cfg.MaxPhaseRateStep = th
	case "MAX_DATA_GAP":
		th, err := parseThreshold(vals)
		if err != nil {
			return err
		}
		cfg.MaxDataGap = th
	case "CYCLE_SLIPS":
		cs, err := parseCycleSlips(vals)
		if err != nil {
			return err
		}
		cfg.CycleSlips = cs
	case "HATCH_TIME":
		v, err := parseFloat(vals, 0)
		if err != nil {
			return err
		}
		cfg.HatchTime = v
	case "HATCH_STATE_F":
		v, err := parseFloat(vals, 0)
		if err != nil {
			return err
		}
		cfg.HatchStateF = v
	case "LEO_COM_POS":
		v, err := parseVec3(vals)
		if err != nil {
			return err
		}
		cfg.LeoComPos = v
	case "LEO_ARP_POS":
		v, err := parseVec3(vals)
		if err != nil {
			return err
		}
		cfg.LeoArpPos = v
	case "LEO_PCO_GPS":
		v, err := parseVec3(vals)
		if err != nil {
			return err
		}
		cfg.LeoPcoGPS = v
	case "LEO_PCO_GAL":
		v, err := parseVec3(vals)
		if err != nil {
			return err
		}
		cfg.LeoPcoGAL = v
	case "SAT_APO_FILE":
		if len(vals) != 1 {
			return fmt.Errorf("SAT_APO_FILE: expected one value")
		}
		cfg.SatApoFile = vals[0]
	case "SAT_BIA_FILE":
		if len(vals) != 1 {
			return fmt.Errorf("SAT_BIA_FILE: expected one value")
		}
		cfg.SatBiaFile = vals[0]
	case "GPS_UERE":
		v, err := parseFloat(vals, 0)
		if err != nil {
			return err
		}
		cfg.GpsUere = v
	case "GAL_UERE":
		v, err := parseFloat(vals, 0)
		if err != nil {
			return err
		}
		cfg.GalUere = v
	case "MAX_LSQ_ITER":
		n, err := parseInt(vals, 0)
		if err != nil {
			return err
		}
		cfg.MaxLsqIter = n
	case "PDOP_MAX":
		v, err := parseFloat(vals, 0)
		if err != nil {
			return err
		}
		cfg.PdopMax = v
	default:
		return fmt.Errorf("unrecognized parameter %q", key)
	}
	return nil
}

func parseDate(vals []string) (time.Time, error) {
	if len(vals) != 1 {
		return time.Time{}, fmt.Errorf("expected a single DD/MM/YYYY value")
	}
	t, err := time.Parse(dateLayout, vals[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", vals[0], err)
	}
	return t, nil
}

func parseFloat(vals []string, idx int) (float64, error) {
	if idx >= len(vals) {
		return 0, fmt.Errorf("missing numeric value at position %d", idx)
	}
	return strconv.ParseFloat(vals[idx], 64)
}

func parseInt(vals []string, idx int) (int, error) {
	if idx >= len(vals) {
		return 0, fmt.Errorf("missing integer value at position %d", idx)
	}
	return strconv.Atoi(vals[idx])
}

func parseBool(vals []string, idx int) (bool, error) {
	if idx >= len(vals) {
		return false, fmt.Errorf("missing 0/1 value at position %d", idx)
	}
	switch vals[idx] {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected 0 or 1, got %q", vals[idx])
	}
}

func parseThreshold(vals []string) (Threshold, error) {
	if len(vals) != 2 {
		return Threshold{}, fmt.Errorf("expected [enable, value]")
	}
	enable, err := parseBool(vals, 0)
	if err != nil {
		return Threshold{}, err
	}
	value, err := parseFloat(vals, 1)
	if err != nil {
		return Threshold{}, err
	}
	return Threshold{Enable: enable, Value: value}, nil
}

func parseCycleSlips(vals []string) (CycleSlipConfig, error) {
	if len(vals) != 5 {
		return CycleSlipConfig{}, fmt.Errorf("expected [enable, threshold, csnepochs, csnpoints, cspdegree]")
	}
	enable, err := parseBool(vals, 0)
	if err != nil {
		return CycleSlipConfig{}, err
	}
	threshold, err := parseFloat(vals, 1)
	if err != nil {
		return CycleSlipConfig{}, err
	}
	csnEpochs, err := parseInt(vals, 2)
	if err != nil {
		return CycleSlipConfig{}, err
	}
	csnPoints, err := parseInt(vals, 3)
	if err != nil {
		return CycleSlipConfig{}, err
	}
	cspDegree, err := parseInt(vals, 4)
	if err != nil {
		return CycleSlipConfig{}, err
	}
	return CycleSlipConfig{
		Enable:    enable,
		Threshold: threshold,
		CSNEpochs: csnEpochs,
		CSNPoints: csnPoints,
		CSPDegree: cspDegree,
	}, nil
}

func parseVec3(vals []string) (frame.Vec3, error) {
	if len(vals) != 3 {
		return frame.Vec3{}, fmt.Errorf("expected 3 components")
	}
	x, err := parseFloat(vals, 0)
	if err != nil {
		return frame.Vec3{}, err
	}
	y, err := parseFloat(vals, 1)
	if err != nil {
		return frame.Vec3{}, err
	}
	z, err := parseFloat(vals, 2)
	if err != nil {
		return frame.Vec3{}, err
	}
	return frame.Vec3{X: x, Y: y, Z: z}, nil
}

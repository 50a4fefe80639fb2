package prepro

import (
	"math"
	"testing"

	"github.com/de-bkg/pppcorr/internal/config"
	"github.com/de-bkg/pppcorr/internal/gnssconst"
	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	return &config.Config{
		RcvrMask:    10,
		HatchTime:   100,
		HatchStateF: 1.5,
		MinSNR:      config.Threshold{Enable: true, Value: 28},
		MaxPsrOutrng: config.Threshold{Enable: true, Value: 5e7},
		MaxCodeRate:     config.Threshold{Enable: true, Value: 2000},
		MaxCodeRateStep: config.Threshold{Enable: true, Value: 2000},
		MaxPhaseRate:     config.Threshold{Enable: true, Value: 20},
		MaxPhaseRateStep: config.Threshold{Enable: true, Value: 10},
		MaxDataGap:  config.Threshold{Enable: true, Value: 60},
		CycleSlips: config.CycleSlipConfig{Enable: true, Threshold: 0.05, CSNEpochs: 3, CSNPoints: 8, CSPDegree: 2},
	}
}

func sat() SatID { return SatID{Const: gnssconst.GPS, PRN: 1} }

func epoch(sod float64, elev float64, c1, c2, l1, l2 float64) ([]CodeRecord, []PhaseRecord) {
	code := CodeRecord{SOD: sod, Sat: sat(), Elev: elev, Azim: 100, C1: c1, C2: c2, S1: 40, S2: 40}
	phase := PhaseRecord{SOD: sod, Sat: sat(), L1: l1, L2: l2}
	return []CodeRecord{code}, []PhaseRecord{phase}
}

func TestProcessEpoch_firstSampleResetsHatch(t *testing.T) {
	assert := assert.New(t)
	cfg := testConfig()
	st := NewStateTable(cfg.CycleSlips.CSNEpochs)

	codes, phases := epoch(100, 45, 2.2e7, 2.2e7+10, 1.15e8, 9.0e7)
	out := ProcessEpoch(cfg, codes, phases, st)
	assert.Len(out, 1)

	obs := out[0]
	assert.Equal(obs.IFCode, obs.SmoothIF, "on Hatch reset SmoothIF == IF_C")
	assert.Equal(0, obs.Status, "Ksmooth==1 cannot exceed HatchStateF*HatchTime")
}

func TestProcessEpoch_steadyStateConvergesStatus(t *testing.T) {
	assert := assert.New(t)
	cfg := testConfig()
	st := NewStateTable(cfg.CycleSlips.CSNEpochs)

	var lastStatus int
	for sod := 0.0; sod < 200; sod++ {
		codes, phases := epoch(sod, 45, 2.2e7, 2.2e7+10, 1.15e8+sod, 9.0e7+sod*0.77)
		out := ProcessEpoch(cfg, codes, phases, st)
		lastStatus = out[0].Status
	}
	assert.Equal(1, lastStatus, "status converges once Ksmooth exceeds HatchStateF*HatchTime")
}

func TestProcessEpoch_maskAngleBoundary(t *testing.T) {
	assert := assert.New(t)
	cfg := testConfig()

	st1 := NewStateTable(cfg.CycleSlips.CSNEpochs)
	codes, phases := epoch(1, 10, 2.2e7, 2.2e7, 1e8, 1e8)
	out := ProcessEpoch(cfg, codes, phases, st1)
	assert.NotEqual(RejectMaskAngle, out[0].RejectionCause, "elevation == mask is not rejected")

	st2 := NewStateTable(cfg.CycleSlips.CSNEpochs)
	codes, phases = epoch(1, 9, 2.2e7, 2.2e7, 1e8, 1e8)
	out = ProcessEpoch(cfg, codes, phases, st2)
	assert.Equal(RejectMaskAngle, out[0].RejectionCause)
	assert.Equal(0, out[0].Valid)
}

func TestProcessEpoch_dataGapRejectsAndResetsHatch(t *testing.T) {
	assert := assert.New(t)
	cfg := testConfig()
	st := NewStateTable(cfg.CycleSlips.CSNEpochs)

	codes, phases := epoch(0, 45, 2.2e7, 2.2e7, 1e8, 1e8)
	ProcessEpoch(cfg, codes, phases, st)

	codes, phases = epoch(120, 45, 2.2e7, 2.2e7, 1e8, 1e8)
	out := ProcessEpoch(cfg, codes, phases, st)
	assert.Equal(RejectDataGap, out[0].RejectionCause)
	assert.Equal(0, out[0].Valid)
	assert.Equal(out[0].IFCode, out[0].SmoothIF, "the gap epoch itself reinitializes the Hatch filter")
}

func TestProcessEpoch_confirmedCycleSlipResetsRatesAndStatus(t *testing.T) {
	assert := assert.New(t)
	cfg := testConfig()
	st := NewStateTable(cfg.CycleSlips.CSNEpochs)

	sod := 0.0
	for i := 0; i < cfg.CycleSlips.CSNPoints+2; i++ {
		codes, phases := epoch(sod, 45, 2.2e7, 2.2e7, 1e8+sod, 1e8+sod*0.5)
		ProcessEpoch(cfg, codes, phases, st)
		sod++
	}

	var lastOut PreproObs
	sawSlip := false
	for i := 0; i < cfg.CycleSlips.CSNEpochs+1; i++ {
		codes, phases := epoch(sod, 45, 2.2e7, 2.2e7, 1e8+sod+100, 1e8+sod*0.5)
		out := ProcessEpoch(cfg, codes, phases, st)
		lastOut = out[0]
		if lastOut.RejectionCause == RejectCycleSlip {
			sawSlip = true
			break
		}
		sod++
	}

	assert.True(sawSlip, "injected slip eventually confirms")
	assert.Equal(0, lastOut.Status)
	s := st.Get(sat())
	assert.False(s.PrevPhaseRateL1.Valid)
	assert.Equal(0, len(s.GFLPrev))
}

func TestLinearCombinations_areFiniteForValidInput(t *testing.T) {
	assert := assert.New(t)
	cfg := testConfig()
	st := NewStateTable(cfg.CycleSlips.CSNEpochs)
	codes, phases := epoch(1, 45, 2.2e7, 2.2e7, 1e8, 1e8)
	out := ProcessEpoch(cfg, codes, phases, st)
	assert.False(math.IsNaN(out[0].IFCode))
	assert.False(math.IsNaN(out[0].GeomFreeP))
}

package correct

import (
	"testing"

	"github.com/de-bkg/pppcorr/internal/config"
	"github.com/de-bkg/pppcorr/internal/ephem"
	"github.com/de-bkg/pppcorr/internal/frame"
	"github.com/de-bkg/pppcorr/internal/gnssconst"
	"github.com/de-bkg/pppcorr/internal/prepro"
	"github.com/stretchr/testify/assert"
)

func sat1() ephem.SatKey { return ephem.SatKey{Const: gnssconst.GPS, PRN: 1} }

func testTables() *ephem.Tables {
	t := &ephem.Tables{}
	for sod := 90; sod <= 110; sod++ {
		t.SatPos = append(t.SatPos, ephem.SatPosRow{
			SOD: float64(sod), Sat: sat1(),
			Pos: frame.Vec3{X: 26000000 + float64(sod)*1000, Y: 1000000, Z: 2000000},
		})
	}
	for sod := 90; sod <= 110; sod++ {
		t.LeoPos = append(t.LeoPos, ephem.LeoPosRow{
			SOD: float64(sod), Pos: frame.Vec3{X: 7000000, Y: 0, Z: 0},
		})
		t.LeoQuat = append(t.LeoQuat, ephem.LeoQuatRow{SOD: float64(sod), Q0: 1})
	}
	t.SatClk = []ephem.SatClkRow{
		{SOD: 90, Sat: sat1(), Bias: 0.001},
		{SOD: 110, Sat: sat1(), Bias: 0.002},
	}
	t.SatApo = []ephem.SatApoRow{
		{Sat: sat1(), F1: frame.Vec3{X: 0.1, Y: 0.2, Z: 0.3}, F2: frame.Vec3{X: 0.1, Y: 0.2, Z: 0.25}},
	}
	t.SatBia = []ephem.SatBiaRow{
		{Sat: sat1(), CodeF1: 1.0, CodeF2: 1.5, PhaseF1: 0.01, PhaseF2: 0.015, ClkF1: 1e-4, ClkF2: 1.5e-4},
	}
	return t
}

func testCfg() *config.Config {
	return &config.Config{
		LeoComPos: frame.Vec3{X: 0, Y: 0, Z: 0},
		LeoArpPos: frame.Vec3{X: 1, Y: 0, Z: 0},
		LeoPcoGPS: frame.Vec3{X: 0, Y: 0, Z: 1},
		LeoPcoGAL: frame.Vec3{X: 0, Y: 0, Z: 1},
		GpsUere:   1.0,
		GalUere:   1.0,
	}
}

func testObs(sod float64) prepro.PreproObs {
	return prepro.PreproObs{
		SOD: sod, Sat: prepro.SatID{Const: gnssconst.GPS, PRN: 1},
		Elev: 45, Azim: 90,
		C1: 2.26e7, C2: 2.26e7,
		IFCode:  26001000.0,
		IFPhase: 26001000.5,
	}
}

func TestCorrectEpoch_firstEpochHasNoDtrAndFlagsZero(t *testing.T) {
	assert := assert.New(t)
	cfg := testCfg()
	tables := testTables()
	state := NewStateTable()

	out := CorrectEpoch(cfg, 2023, 1, []prepro.PreproObs{testObs(100)}, tables, state)
	assert.Len(out, 1)
	assert.Equal(0.0, out[0].Dtr)
	assert.Equal(0, out[0].Flag, "spec scenario 5: first epoch has no Dtr predecessor")
}

func TestCorrectEpoch_secondEpochComputesDtrAndFlags(t *testing.T) {
	assert := assert.New(t)
	cfg := testCfg()
	tables := testTables()
	state := NewStateTable()

	CorrectEpoch(cfg, 2023, 1, []prepro.PreproObs{testObs(100)}, tables, state)
	out := CorrectEpoch(cfg, 2023, 1, []prepro.PreproObs{testObs(101)}, tables, state)

	assert.Len(out, 1)
	assert.NotEqual(0.0, out[0].Dtr)
	assert.Equal(1, out[0].Flag)
	assert.False(isNaNOrInf(out[0].GeomRange))
	assert.False(isNaNOrInf(out[0].CodeResidual))
	assert.False(isNaNOrInf(out[0].PhaseResidual))
}

func TestCorrectEpoch_missingEphemerisRowFlagsZero(t *testing.T) {
	assert := assert.New(t)
	cfg := testCfg()
	tables := testTables()
	state := NewStateTable()

	// SOD 500 has no LeoPos/LeoQuat/SatClk rows in the fixture.
	out := CorrectEpoch(cfg, 2023, 1, []prepro.PreproObs{testObs(500)}, tables, state)
	assert.Equal(0, out[0].Flag)
}

func TestCorrectEpoch_isIdempotent(t *testing.T) {
	assert := assert.New(t)
	cfg := testCfg()

	tables1, tables2 := testTables(), testTables()
	state1, state2 := NewStateTable(), NewStateTable()

	CorrectEpoch(cfg, 2023, 1, []prepro.PreproObs{testObs(100)}, tables1, state1)
	out1 := CorrectEpoch(cfg, 2023, 1, []prepro.PreproObs{testObs(101)}, tables1, state1)

	CorrectEpoch(cfg, 2023, 1, []prepro.PreproObs{testObs(100)}, tables2, state2)
	out2 := CorrectEpoch(cfg, 2023, 1, []prepro.PreproObs{testObs(101)}, tables2, state2)

	assert.Equal(out1, out2, "identical inputs and initial state must yield identical outputs")
}

func TestEstimateReceiverClock_weightedMean(t *testing.T) {
	assert := assert.New(t)
	rcvrClk := EstimateReceiverClock([]float64{10, 20}, []float64{1, 2})
	// weights 1/1=1 and 1/4=0.25: (10*1 + 20*0.25) / (1+0.25) = 15/1.25 = 12
	assert.InDelta(12.0, rcvrClk, 1e-9)
}

func TestEstimateReceiverClock_emptyInputReturnsZero(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0.0, EstimateReceiverClock(nil, nil))
}

func isNaNOrInf(v float64) bool {
	return v != v || v > 1e300 || v < -1e300
}

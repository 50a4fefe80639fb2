package ephem

import (
	"testing"

	"github.com/de-bkg/pppcorr/internal/frame"
	"github.com/de-bkg/pppcorr/internal/gnssconst"
	"github.com/stretchr/testify/assert"
)

func TestSatClkBiasAt_exactMatchDegeneratesToLookup(t *testing.T) {
	assert := assert.New(t)
	sat := SatKey{Const: gnssconst.GPS, PRN: 1}
	tbl := &Tables{SatClk: []SatClkRow{
		{SOD: 0, Sat: sat, Bias: 1e-6},
		{SOD: 30, Sat: sat, Bias: 1.0003e-6},
		{SOD: 60, Sat: sat, Bias: 1.0006e-6},
	}}
	bias, ok := tbl.SatClkBiasAt(sat, 30)
	assert.True(ok)
	assert.Equal(1.0003e-6, bias)
}

func TestSatClkBiasAt_interpolatesBetweenSamples(t *testing.T) {
	assert := assert.New(t)
	sat := SatKey{Const: gnssconst.GPS, PRN: 1}
	tbl := &Tables{SatClk: []SatClkRow{
		{SOD: 0, Sat: sat, Bias: 0},
		{SOD: 30, Sat: sat, Bias: 30},
	}}
	bias, ok := tbl.SatClkBiasAt(sat, 15)
	assert.True(ok)
	assert.InDelta(15.0, bias, 1e-9)
}

func TestSatClkBiasAt_missingSatellite(t *testing.T) {
	assert := assert.New(t)
	tbl := &Tables{}
	_, ok := tbl.SatClkBiasAt(SatKey{Const: gnssconst.GAL, PRN: 5}, 10)
	assert.False(ok)
}

func TestSatPosWindow_straddlesTarget(t *testing.T) {
	assert := assert.New(t)
	var rows []SatPosRow
	for i := 0; i < 20; i++ {
		rows = append(rows, SatPosRow{SOD: float64(i * 300), Pos: frame.Vec3{X: float64(i)}})
	}
	win := SatPosWindow(rows, 1450, 10)
	assert.Len(win, 10)
	assert.LessOrEqual(win[4].SOD, 1450.0)
	assert.Greater(win[5].SOD, 1450.0)
}

func TestSatPosWindow_padsAtLeftBoundary(t *testing.T) {
	assert := assert.New(t)
	var rows []SatPosRow
	for i := 0; i < 8; i++ {
		rows = append(rows, SatPosRow{SOD: float64(i * 300)})
	}
	win := SatPosWindow(rows, 0, 10)
	assert.Len(win, 8)
}

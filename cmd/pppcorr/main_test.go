package main

import (
	"testing"

	"github.com/de-bkg/pppcorr/internal/config"
	"github.com/de-bkg/pppcorr/internal/day"
	"github.com/de-bkg/pppcorr/internal/gnssconst"
	"github.com/stretchr/testify/assert"
)

func TestBuildScenarioPaths_stemsPerDayFilesByAcronymAndDay(t *testing.T) {
	assert := assert.New(t)
	d := day.Day{Year: 2024, DOY: 57}
	p := buildScenarioPaths("/scenario", "LEOA", "apo.atx", "bia.bia", d)

	assert.Equal("/scenario/INP/SP3/LEOA_2024057_leopos.sp3", p.LeoPos)
	assert.Equal("/scenario/INP/SP3/LEOA_2024057_satpos.sp3", p.SatPos)
	assert.Equal("/scenario/INP/ATT/LEOA_2024057_leoquat.att", p.LeoQuat)
	assert.Equal("/scenario/INP/CLK/LEOA_2024057_satclk.clk", p.SatClk)
	assert.Equal("/scenario/INP/ATX/apo.atx", p.SatApo)
	assert.Equal("/scenario/INP/BIA/bia.bia", p.SatBia)
	assert.Equal("/scenario/OUT/PPVE/LEOA_2024057_PREPRO.txt", p.PreproOut)
	assert.Equal("/scenario/OUT/CORR/LEOA_2024057_CORR.txt", p.CorrOut)
}

func TestConstelWanted_filtersByNavSolution(t *testing.T) {
	assert := assert.New(t)

	assert.True(constelWanted(gnssconst.GPS, config.NavSolutionGPS))
	assert.False(constelWanted(gnssconst.GAL, config.NavSolutionGPS))

	assert.True(constelWanted(gnssconst.GAL, config.NavSolutionGAL))
	assert.False(constelWanted(gnssconst.GPS, config.NavSolutionGAL))

	assert.True(constelWanted(gnssconst.GPS, config.NavSolutionGPSGAL))
	assert.True(constelWanted(gnssconst.GAL, config.NavSolutionGPSGAL))
}

func TestFindConfigFile_errorsWhenNoCfgPresent(t *testing.T) {
	_, err := findConfigFile(t.TempDir())
	assert.Error(t, err)
}

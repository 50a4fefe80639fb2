package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/de-bkg/pppcorr/internal/correct"
	"github.com/de-bkg/pppcorr/internal/ephem"
	"github.com/de-bkg/pppcorr/internal/gnssconst"
	"github.com/de-bkg/pppcorr/internal/prepro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPreproLine_columnCountMatchesHeader(t *testing.T) {
	o := prepro.PreproObs{
		SOD: 100, Sat: prepro.SatID{Const: gnssconst.GPS, PRN: 3},
		Elev: 45, Azim: 90, Valid: 1,
		C1: 2.2e7, C2: 2.2e7, L1: 1.1e8, L2: 9.0e7, S1: 40, S2: 40,
		IFCode: 2.2e7, IFPhase: 1.1e8, SmoothIF: 2.2e7,
	}
	line := FormatPreproLine(o)
	assert.Equal(t, len(strings.Fields(PreproHeader))-1, len(strings.Fields(line)))
}

func TestFormatPreproLine_missingPredecessorRendersNaN(t *testing.T) {
	o := prepro.PreproObs{Sat: prepro.SatID{Const: gnssconst.GPS, PRN: 1}}
	line := FormatPreproLine(o)
	fields := strings.Fields(line)
	require.True(t, len(fields) > 0)
	assert.Contains(t, line, "NaN")
}

func TestFormatCorrLine_columnCountMatchesHeader(t *testing.T) {
	m := correct.CorrectedMeas{Sat: ephem.SatKey{Const: gnssconst.GAL, PRN: 7}, Flag: 1}
	line := FormatCorrLine(m)
	assert.Equal(t, len(strings.Fields(CorrHeader))-1, len(strings.Fields(line)))
}

func TestWritePrepro_writesHeaderAndOneLinePerObs(t *testing.T) {
	var buf bytes.Buffer
	obs := []prepro.PreproObs{
		{SOD: 0, Sat: prepro.SatID{Const: gnssconst.GPS, PRN: 1}},
		{SOD: 30, Sat: prepro.SatID{Const: gnssconst.GPS, PRN: 2}},
	}
	require.NoError(t, WritePrepro(&buf, obs))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, PreproHeader, lines[0])
}

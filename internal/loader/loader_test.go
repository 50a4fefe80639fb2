package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLeoPos(t *testing.T) {
	path := writeTemp(t, "leopos.txt", "# SOD DOY YEAR X Y Z\n0 1 2023 7000000.0 0.0 0.0\n30 1 2023 7000100.0 10.0 5.0\n")
	rows, err := LoadLeoPos(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 30.0, rows[1].SOD)
	assert.Equal(t, 7000100.0, rows[1].Pos.X)
}

func TestLoadSatClk_parsesFullPrecisionBias(t *testing.T) {
	path := writeTemp(t, "satclk.txt", "# SOD CONST PRN BIAS\n0 G 5 0.000123456789012345\n")
	rows, err := LoadSatClk(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 0.000123456789012345, rows[0].Bias, 1e-18)
}

func TestLoadSatClk_rejectsUnknownConstellation(t *testing.T) {
	path := writeTemp(t, "satclk.txt", "0 X 5 0.001\n")
	_, err := LoadSatClk(path)
	assert.Error(t, err)
}

func TestLoadObs_groupsBySOD(t *testing.T) {
	codePath := writeTemp(t, "obscode.txt",
		"# SOD CONST PRN ELEV AZIM C1 C2 S1 S2\n"+
			"0 G 1 45 90 2.2e7 2.2e7 40 40\n"+
			"0 G 2 30 180 2.3e7 2.3e7 38 38\n"+
			"30 G 1 46 91 2.2e7 2.2e7 40 40\n")
	phasePath := writeTemp(t, "obsphase.txt",
		"# SOD CONST PRN L1 L2\n"+
			"0 G 1 1.1e8 9.0e7\n"+
			"0 G 2 1.2e8 9.3e7\n"+
			"30 G 1 1.1e8 9.0e7\n")

	codes, phases, err := LoadObs(codePath, phasePath)
	require.NoError(t, err)
	require.Len(t, codes, 3)
	require.Len(t, phases, 3)

	order, codeBySOD, phaseBySOD := GroupBySOD(codes, phases)
	require.Len(t, order, 2)
	assert.Equal(t, []float64{0, 30}, order)
	assert.Len(t, codeBySOD[0], 2)
	assert.Len(t, phaseBySOD[0], 2)
	assert.Len(t, codeBySOD[30], 1)
}

func TestLoadLeoPos_missingFileReturnsError(t *testing.T) {
	_, err := LoadLeoPos(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	assert.Error(t, err)
}

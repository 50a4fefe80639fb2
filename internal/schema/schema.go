// Package schema centralizes the column layout of every whitespace-
// delimited input table named in spec §3/§6, so the loaders and the
// ephemeris accessors share one source of truth for column order instead
// of each re-deriving it from the `#`-prefixed header line.
package schema

// Column indices (0-based, after splitting a data line on whitespace) for
// the LEO precise-orbit table (LeoPos).
const (
	LeoPosSOD = iota
	LeoPosDOY
	LeoPosYEAR
	LeoPosX
	LeoPosY
	LeoPosZ
	LeoPosNumCols
)

// Column indices for the LEO attitude quaternion table (LeoQuat).
const (
	LeoQuatSOD = iota
	LeoQuatQ0
	LeoQuatQ1
	LeoQuatQ2
	LeoQuatQ3
	LeoQuatNumCols
)

// Column indices for the satellite precise-orbit table (SatPos).
const (
	SatPosSOD = iota
	SatPosDOY
	SatPosYEAR
	SatPosConst
	SatPosPRN
	SatPosX
	SatPosY
	SatPosZ
	SatPosNumCols
)

// Column indices for the satellite precise-clock table (SatClk).
const (
	SatClkSOD = iota
	SatClkConst
	SatClkPRN
	SatClkBias
	SatClkNumCols
)

// Column indices for the satellite antenna phase offset table (SatApo).
// Offsets are body-frame (along-radial/along-sun/cross) offsets per
// frequency, in metres.
const (
	SatApoConst = iota
	SatApoPRN
	SatApoF1X
	SatApoF1Y
	SatApoF1Z
	SatApoF2X
	SatApoF2Y
	SatApoF2Z
	SatApoNumCols
)

// Column indices for the satellite bias table (SatBia): code and phase
// biases per frequency, plus the clock-reference code bias per frequency
// (spec §4.2 satellite bias formulas).
const (
	SatBiaConst = iota
	SatBiaPRN
	SatBiaCodeF1
	SatBiaCodeF2
	SatBiaPhaseF1
	SatBiaPhaseF2
	SatBiaClkF1
	SatBiaClkF2
	SatBiaNumCols
)

// Column indices for the per-epoch code-observation table.
const (
	ObsCodeSOD = iota
	ObsCodeConst
	ObsCodePRN
	ObsCodeElev
	ObsCodeAzim
	ObsCodeC1
	ObsCodeC2
	ObsCodeS1
	ObsCodeS2
	ObsCodeNumCols
)

// Column indices for the per-epoch phase-observation table.
const (
	ObsPhaseSOD = iota
	ObsPhaseConst
	ObsPhasePRN
	ObsPhaseL1
	ObsPhaseL2
	ObsPhaseNumCols
)

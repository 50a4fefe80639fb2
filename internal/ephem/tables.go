// Package ephem exposes read-only, copy-returning accessors over the
// static per-day ephemeris tables (spec §3, §4.3): LEO precise orbit and
// attitude, satellite precise orbit/clock, and satellite antenna
// offset/bias tables. Tables are loaded once per day by internal/loader
// and never mutated afterwards; every accessor here returns a value, not
// a slice/pointer aliasing the caller's backing array, so callers cannot
// corrupt shared state (spec §9 design note on "mutable output
// dictionaries").
package ephem

import (
	"sort"

	"github.com/de-bkg/pppcorr/internal/frame"
	"github.com/de-bkg/pppcorr/internal/gnssconst"
)

// LeoPosRow is one row of the LEO receiver's precise orbit.
type LeoPosRow struct {
	SOD  float64
	DOY  int
	Year int
	Pos  frame.Vec3
}

// LeoQuatRow is one row of the LEO receiver's attitude quaternion history.
type LeoQuatRow struct {
	SOD            float64
	Q0, Q1, Q2, Q3 float64
}

// SatKey identifies a satellite by constellation and PRN.
type SatKey struct {
	Const gnssconst.Constel
	PRN   int
}

// SatPosRow is one row of a satellite's precise orbit.
type SatPosRow struct {
	SOD  float64
	DOY  int
	Year int
	Sat  SatKey
	Pos  frame.Vec3
}

// SatClkRow is one row of a satellite's precise clock.
type SatClkRow struct {
	SOD  float64
	Sat  SatKey
	Bias float64 // full double-precision clock bias, seconds
}

// SatApoRow is a satellite's antenna phase offset, body-frame, per
// frequency (spec §4.2 satellite APO).
type SatApoRow struct {
	Sat    SatKey
	F1, F2 frame.Vec3
}

// SatBiaRow is a satellite's code/phase/clock biases per frequency (spec
// §4.2 satellite biases).
type SatBiaRow struct {
	Sat              SatKey
	CodeF1, CodeF2   float64
	PhaseF1, PhaseF2 float64
	ClkF1, ClkF2     float64
}

// Tables bundles one day's worth of static ephemeris data.
type Tables struct {
	LeoPos  []LeoPosRow
	LeoQuat []LeoQuatRow
	SatPos  []SatPosRow
	SatClk  []SatClkRow
	SatApo  []SatApoRow
	SatBia  []SatBiaRow
}

// LeoPosAt returns the unique LeoPos row at the given SOD. ok is false if
// no such row exists (spec §4.2 "receiver CoM lookup").
func (t *Tables) LeoPosAt(sod float64) (frame.Vec3, bool) {
	for _, r := range t.LeoPos {
		if r.SOD == sod {
			return r.Pos, true
		}
	}
	return frame.Vec3{}, false
}

// LeoQuatAt returns the LeoQuat row at the given SOD.
func (t *Tables) LeoQuatAt(sod float64) (LeoQuatRow, bool) {
	for _, r := range t.LeoQuat {
		if r.SOD == sod {
			return r, true
		}
	}
	return LeoQuatRow{}, false
}

// SatClkFilter returns every SatClk row for the given satellite, sorted
// by SOD ascending.
func (t *Tables) SatClkFilter(sat SatKey) []SatClkRow {
	out := make([]SatClkRow, 0)
	for _, r := range t.SatClk {
		if r.Sat == sat {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SOD < out[j].SOD })
	return out
}

// SatPosFilter returns every SatPos row for the given satellite, sorted
// by SOD ascending.
func (t *Tables) SatPosFilter(sat SatKey) []SatPosRow {
	out := make([]SatPosRow, 0)
	for _, r := range t.SatPos {
		if r.Sat == sat {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SOD < out[j].SOD })
	return out
}

// SatApoFilter returns the unique SatApo row for the given satellite.
func (t *Tables) SatApoFilter(sat SatKey) (SatApoRow, bool) {
	for _, r := range t.SatApo {
		if r.Sat == sat {
			return r, true
		}
	}
	return SatApoRow{}, false
}

// SatBiaFilter returns the unique SatBia row for the given satellite.
func (t *Tables) SatBiaFilter(sat SatKey) (SatBiaRow, bool) {
	for _, r := range t.SatBia {
		if r.Sat == sat {
			return r, true
		}
	}
	return SatBiaRow{}, false
}

// NearestBelowAbove returns, from rows sorted ascending by SOD, the last
// row with SOD <= target and the first row with SOD > target. Either may
// be (-1, false) if target falls outside the table's range (spec §4.3).
func NearestBelowAbove(sods []float64, target float64) (belowIdx, aboveIdx int, hasBelow, hasAbove bool) {
	belowIdx, aboveIdx = -1, -1
	for i, s := range sods {
		if s <= target {
			belowIdx = i
		}
		if s > target && aboveIdx == -1 {
			aboveIdx = i
		}
	}
	hasBelow = belowIdx >= 0
	hasAbove = aboveIdx >= 0
	return
}

package ephem

import "github.com/de-bkg/pppcorr/internal/numeric"

// SatClkBiasAt returns the satellite clock bias at sod: an exact table
// match if one exists, otherwise linear interpolation between the
// nearest row below and the nearest row above (spec §4.2 "satellite
// clock bias"). ok is false if sod falls outside the table (no row on
// one of the two sides) or the satellite has no clock rows at all.
func (t *Tables) SatClkBiasAt(sat SatKey, sod float64) (bias float64, ok bool) {
	rows := t.SatClkFilter(sat)
	if len(rows) == 0 {
		return 0, false
	}

	sods := make([]float64, len(rows))
	for i, r := range rows {
		sods[i] = r.SOD
		if r.SOD == sod {
			return r.Bias, true
		}
	}

	belowIdx, aboveIdx, hasBelow, hasAbove := NearestBelowAbove(sods, sod)
	if !hasBelow || !hasAbove {
		return 0, false
	}
	below, above := rows[belowIdx], rows[aboveIdx]
	return numeric.LinearInterpolate(below.SOD, below.Bias, above.SOD, above.Bias, sod), true
}

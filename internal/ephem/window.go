package ephem

// SatPosWindow selects a symmetric interpolation window of n samples
// (n/2 at or before target, n/2 strictly after) from a satellite's
// precise-orbit history, padding at file boundaries by taking more
// samples from the side that has them.
//
// This deliberately does NOT replicate the source behaviour flagged in
// spec §9 ("argsort on absolute time differences ... does not guarantee
// the window straddles the target"): it always returns a window that
// straddles target whenever the table has samples on both sides.
func SatPosWindow(rows []SatPosRow, target float64, n int) []SatPosRow {
	half := n / 2

	belowEnd := 0 // exclusive index: rows[:belowEnd] are <= target
	for belowEnd < len(rows) && rows[belowEnd].SOD <= target {
		belowEnd++
	}
	numBelow := belowEnd
	numAbove := len(rows) - belowEnd

	takeBelow := half
	takeAbove := n - half

	if numBelow < takeBelow {
		// Not enough samples below: shift the deficit to the above side.
		takeAbove += takeBelow - numBelow
		takeBelow = numBelow
	}
	if numAbove < takeAbove {
		deficit := takeAbove - numAbove
		takeAbove = numAbove
		takeBelow += deficit
		if takeBelow > numBelow {
			takeBelow = numBelow
		}
	}

	start := belowEnd - takeBelow
	end := belowEnd + takeAbove
	if start < 0 {
		start = 0
	}
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

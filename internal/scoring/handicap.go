package scoring

import "math"

// CourseHandicap converts a player's handicap index into the handicap they play
// off at a specific set of tees, using the standard WHS formula:
//
//	courseHandicap = round(index × slope/113 + (rating − par))
//
// 113 is the slope rating of a course of "standard" difficulty. The (rating − par)
// term adjusts for courses that play harder or easier than their par suggests.
// The result can be negative for strong players on easy tees — a "plus" handicap.
func CourseHandicap(handicapIndex float64, slope int, rating float64, par int) int {
	return int(math.Round(handicapIndex*float64(slope)/113.0 + (rating - float64(par))))
}

// StrokesForHole returns the handicap strokes a player receives on a hole, given
// their course handicap and the hole's stroke index (1 = hardest).
//
// A plus player (courseHandicap <= 0) gives strokes back on the easiest holes:
// the hole with stroke index 18 is given back first, then 17, and so on, so a +2
// returns -1 on exactly the two easiest holes.
//
// Everyone else receives floor(h/18) strokes on every hole, plus one extra stroke
// on the (h mod 18) hardest holes. A 20-handicap therefore gets 1 stroke
// everywhere and a second stroke on stroke indexes 1 and 2.
//
// Stroke indexes outside 1–18 are not validated here; they participate in the
// comparisons as ordinary integers and the caller is responsible for supplying a
// sane course table.
func StrokesForHole(courseHandicap, strokeIndex int) int {
	if courseHandicap <= 0 {
		// givesBackOn ranks holes easiest-first: stroke index 18 → 1, 17 → 2, ...
		givesBackOn := 19 - strokeIndex
		if givesBackOn <= -courseHandicap {
			return -1
		}
		return 0
	}

	base := courseHandicap / 18
	extra := courseHandicap % 18
	if strokeIndex <= extra {
		return base + 1
	}
	return base
}

package lifecycle

import "math"

// OverallPercent maps a case's position in the lifecycle to a single 0-100
// progress figure. Each of the five active stages owns an equal 20-point
// band; the within-stage percent is compressed 5:1 into that band. The two
// terminal stages always resolve to 100.
//
// stagePercent is not range-validated here; callers keep it in [0,100] and
// out-of-range values are only caught by the final clamp. Rounding is half
// away from zero.
func OverallPercent(stage Stage, stagePercent int) int {
	if stage.IsTerminal() {
		return 100
	}
	index := indexOf(stage)
	if index < 0 {
		return 0
	}
	raw := float64(index*20) + float64(stagePercent)/5.0
	if raw < 0 {
		raw = 0
	}
	if raw > 100 {
		raw = 100
	}
	return int(math.Round(raw))
}

package adaptive

import "math"

// Update applies one answer outcome to state and returns the new state plus
// the adjustment event it produced. It is pure and total.
//
// Climbs happen only on every StreakThreshold-th consecutive correct answer;
// every wrong answer drops the level, harder once the wrong streak reaches 2.
// Drops are smaller than a full climb at the same level.
func Update(state SkillState, outcome Outcome, cfg Config) (SkillState, Adjustment) {
	cfg = cfg.Normalize()
	next := state
	next.Level = clamp(state.Level, cfg.MinLevel, cfg.MaxLevel)
	before := next.Level

	if outcome.Correct {
		next.TotalCorrect++
		next.CorrectStreak++
		next.WrongStreak = 0
		if next.CorrectStreak > next.BestStreak {
			next.BestStreak = next.CorrectStreak
		}

		if cfg.StreakThreshold < 1 || next.CorrectStreak%cfg.StreakThreshold != 0 {
			// LastAdjustDirection keeps its previous value.
			return next, Adjustment{Kind: DirectionNone}
		}

		bump := math.Max(bumpFloor, before*cfg.BumpPercent)
		if outcome.Fast {
			bump += math.Max(fastBonusFloor, before*cfg.FastBonus)
		}
		next.Level = clamp(math.Min(cfg.MaxLevel, before+bump), cfg.MinLevel, cfg.MaxLevel)
		next.LastAdjustDirection = DirectionUp
		next.LastAdjustAt = outcome.At
		next.AdjustmentCount++
		return next, Adjustment{Kind: DirectionUp, Magnitude: next.Level - before}
	}

	next.TotalWrong++
	next.WrongStreak++
	next.CorrectStreak = 0

	var drop float64
	if next.WrongStreak >= 2 {
		drop = math.Max(streakDropFloor, before*cfg.DropOnWrongStreak)
	} else {
		drop = math.Max(dropFloor, before*cfg.DropOnWrong)
	}
	next.Level = clamp(math.Max(cfg.MinLevel, before-drop), cfg.MinLevel, cfg.MaxLevel)
	next.LastAdjustDirection = DirectionDown
	next.LastAdjustAt = outcome.At
	next.AdjustmentCount++
	return next, Adjustment{Kind: DirectionDown, Magnitude: before - next.Level}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

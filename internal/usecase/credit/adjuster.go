package credit

import (
	"time"

	domainCredit "cupo-backend/internal/domain/credit"
)

// ClosureStats is the lateness aggregate of a fully repaid loan.
type ClosureStats struct {
	TotalDaysLate    int
	LateInstallments int
}

func (s ClosureStats) OnTime() bool { return s.LateInstallments == 0 }

// Adjust recomputes score and credit limit from one loan closure and bumps
// the history counters. Callers must hold the profile row lock in the same
// transaction as the closure; this function itself is pure over the struct.
//
// Score: +10 on-time, -15 late, extra -10 past 15 total days late and
// another -10 past 30, clamped to [20,100]. Limit: on-time climbs a fixed
// ladder gated by history and score, late past 15 days drops one tier.
func Adjust(p *domainCredit.Profile, stats ClosureStats, now time.Time) {
	onTime := stats.OnTime()

	score := p.Score
	if onTime {
		score += 10
	} else {
		score -= 15
		if stats.TotalDaysLate > 15 {
			score -= 10
		}
		if stats.TotalDaysLate > 30 {
			score -= 10
		}
	}
	score = clamp(score, domainCredit.ScoreMin, domainCredit.ScoreMax)

	limit := p.CurrentLimitCOP
	repaid := p.LoansRepaid + 1
	if onTime {
		switch {
		case limit <= domainCredit.LimitTier1:
			limit = domainCredit.LimitTier2
		case limit <= domainCredit.LimitTier2 && repaid >= 2:
			limit = domainCredit.LimitTier3
		case limit <= domainCredit.LimitTier3 && score >= 85 && repaid >= 4:
			limit = domainCredit.LimitTier4
		}
		if score < 40 {
			limit = p.CurrentLimitCOP // weak score never climbs
		}
	} else if stats.TotalDaysLate > 15 {
		limit = tierDown(limit)
	}
	if limit > p.MaxLimitCOP {
		limit = p.MaxLimitCOP
	}

	p.Score = score
	p.CurrentLimitCOP = limit
	p.LoansRepaid = repaid
	if onTime {
		p.OnTimeLoans++
	} else {
		p.LateLoans++
	}
	t := now
	p.LastRepaidAt = &t
}

func tierDown(current float64) float64 {
	switch {
	case current >= domainCredit.LimitTier4:
		return domainCredit.LimitTier3
	case current >= domainCredit.LimitTier3:
		return domainCredit.LimitTier2
	default:
		return domainCredit.LimitTier1
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

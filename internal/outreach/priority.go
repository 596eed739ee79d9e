package outreach

import (
	"math"
	"strings"
	"time"

	"github.com/cadencehq/cadence/internal/analyses"
	"github.com/cadencehq/cadence/internal/prospects"
)

// Priority scoring weights. Terms are independent and can jointly
// exceed 100 before the clamp; the clamp saturates rather than
// renormalizing, so multiple maximal contacts tie at 100 and fall back
// to the stable insertion-order tiebreak.
const (
	replyBonus         = 40
	leadScoreWeight    = 0.4
	overdueBonus       = 15
	dueTodayBonus      = 10
	primaryRoleBonus   = 20
	secondaryRoleBonus = 15
	defaultRoleBonus   = 10
	stepBaseBonus      = 12
	stepDecay          = 4
	midweekBonus       = 5
)

var (
	primaryRoles   = []string{"avocat", "lawyer", "expert"}
	secondaryRoles = []string{"directeur", "director", "counsel", "head of tax"}
)

// Score converts a prospect's profile, analysis, and sequence position
// into one comparable integer in [0, 100]. A nil analysis contributes a
// zero lead score. Pure in now.
func Score(
	analysis *analyses.Analysis,
	prospect *prospects.Prospect,
	pos Position,
	now time.Time,
) int {
	score := 0.0

	// Responding to an engaged prospect always outranks cold outreach.
	if pos.Replied {
		score += replyBonus
	}

	if analysis != nil {
		score += float64(analysis.LeadScore) * leadScoreWeight
	}

	switch {
	case pos.Overdue:
		score += overdueBonus
	case pos.Due:
		score += dueTodayBonus
	}

	score += float64(roleBonus(prospect))

	// Earlier steps matter more; urgency decays as a sequence drags on.
	if bonus := stepBaseBonus - stepDecay*pos.StepIndex; bonus > 0 {
		score += float64(bonus)
	}

	switch now.Weekday() {
	case time.Tuesday, time.Wednesday, time.Thursday:
		score += midweekBonus
	}

	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

func roleBonus(prospect *prospects.Prospect) int {
	if prospect == nil {
		return defaultRoleBonus
	}

	title := strings.ToLower(prospect.JobTitle)

	for _, role := range primaryRoles {
		if strings.Contains(title, role) {
			return primaryRoleBonus
		}
	}
	for _, role := range secondaryRoles {
		if strings.Contains(title, role) {
			return secondaryRoleBonus
		}
	}
	return defaultRoleBonus
}

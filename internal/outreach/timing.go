package outreach

import (
	"time"

	"github.com/cadencehq/cadence/internal/analyses"
)

// Timing is a coarse recommendation for when to send the next message,
// derived from lead temperature and observed reply speed.
type Timing struct {
	Label string        `json:"label"`
	Wait  time.Duration `json:"wait"`
}

// OptimalTiming recommends the next-message delay: hot leads with fast
// responders get immediate follow-up, warm leads with moderate
// responders wait three days, everyone else waits a week.
func OptimalTiming(pattern Pattern, analysis *analyses.Analysis) Timing {
	if analysis != nil {
		if analysis.LeadStatus == analyses.LeadHot && pattern.AvgResponse < 24*time.Hour {
			return Timing{Label: "immediate", Wait: 0}
		}
		if analysis.LeadStatus == analyses.LeadWarm && pattern.AvgResponse < 72*time.Hour {
			return Timing{Label: "3_days", Wait: 72 * time.Hour}
		}
	}
	return Timing{Label: "1_week", Wait: 168 * time.Hour}
}

package outreach

import (
	"sort"
	"time"

	"github.com/cadencehq/cadence/internal/conversations"
)

// FallbackLatency is assumed when a conversation has no sender
// alternations, so downstream timing never divides by zero.
const FallbackLatency = 72 * time.Hour

// Pattern summarizes how quickly a prospect historically replies.
type Pattern struct {
	AvgResponse     time.Duration `json:"avg_response"`
	FastestResponse time.Duration `json:"fastest_response"`
	Alternations    int           `json:"alternations"`
}

// AnalyzeResponsePattern walks consecutive message pairs in
// chronological order and records the elapsed time at every sender
// change. Input order is not trusted; messages are sorted internally.
func AnalyzeResponsePattern(messages []conversations.Message) Pattern {
	sorted := sortAscending(messages)

	var (
		total   time.Duration
		fastest = FallbackLatency
		count   int
	)

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Sender == sorted[i-1].Sender {
			continue
		}

		latency := sorted[i].SentAt.Sub(sorted[i-1].SentAt)
		total += latency
		count++

		if latency < fastest {
			fastest = latency
		}
	}

	if count == 0 {
		return Pattern{
			AvgResponse:     FallbackLatency,
			FastestResponse: FallbackLatency,
		}
	}

	return Pattern{
		AvgResponse:     total / time.Duration(count),
		FastestResponse: fastest,
		Alternations:    count,
	}
}

func sortAscending(messages []conversations.Message) []conversations.Message {
	sorted := make([]conversations.Message, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SentAt.Before(sorted[j].SentAt)
	})
	return sorted
}

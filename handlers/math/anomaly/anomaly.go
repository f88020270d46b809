// Package anomaly classifies voting and submission patterns as organic or
// manipulated. It produces severity-graded flags and a [0,1] suspicion
// score from two independent analyses: per-claim vote patterns and
// per-actor behavior. The detector only classifies; enforcement of its
// recommendations is the resolution engine's job.
package anomaly

// Severity grades a single flag
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Flag types raised by claim-level analysis
const (
	FlagTemporalClustering = "temporal_clustering"
	FlagUnnaturalPattern   = "unnatural_pattern"
	FlagVelocitySpike      = "velocity_spike"
	FlagOneSidedVoting     = "one_sided_voting"
)

// Flag types raised by actor-level analysis
const (
	FlagRegularTiming    = "regular_timing"
	FlagRoundTheClock    = "24_7_activity"
	FlagSingleActionType = "single_action_type"
)

// Score contributions per flag
const (
	scoreTemporalClustering = 0.3
	scoreUnnaturalPattern   = 0.4
	scoreVelocitySpike      = 0.25
	scoreOneSidedVoting     = 0.15

	scoreRegularTiming    = 0.3
	scoreRoundTheClock    = 0.2
	scoreSingleActionType = 0.2
)

// Consensus penalty weights. The penalty feeds the trust score's
// N component and weights the flags differently from the anomaly score:
// interval regularity is the strongest manipulation signal, one-sidedness
// the weakest. Velocity spikes do not reduce consensus.
const (
	penaltyClustering = 0.3
	penaltyIrregular  = 0.6
	penaltyOneSided   = 0.2
	penaltyCap        = 0.8
)

// Flag is one detected pattern with its score contribution
type Flag struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Score    float64  `json:"score"`
	Detail   string   `json:"detail,omitempty"`
}

// Recommendation is the policy action suggested for a suspicion score
type Recommendation string

const (
	RecommendNone    Recommendation = "none"
	RecommendMonitor Recommendation = "monitor"
	RecommendReduce  Recommendation = "reduce"
	RecommendBlock   Recommendation = "block"
)

// Score thresholds for recommendations
const (
	MonitorThreshold = 0.3
	ReduceThreshold  = 0.5
	BlockThreshold   = 0.7
)

// RecommendationFor maps a suspicion score to the suggested action.
func RecommendationFor(score float64) Recommendation {
	switch {
	case score >= BlockThreshold:
		return RecommendBlock
	case score >= ReduceThreshold:
		return RecommendReduce
	case score >= MonitorThreshold:
		return RecommendMonitor
	default:
		return RecommendNone
	}
}

// ClaimVerdict is the result of claim-level vote pattern analysis
type ClaimVerdict struct {
	Score            float64        `json:"score"`
	Flags            []Flag         `json:"flags"`
	Anomalous        bool           `json:"anomalous"`
	ConsensusPenalty float64        `json:"consensusPenalty"`
	Recommendation   Recommendation `json:"recommendation"`
}

// ActorVerdict is the result of actor-level behavior analysis
type ActorVerdict struct {
	BotScore       float64        `json:"botScore"`
	Flags          []Flag         `json:"flags"`
	IsBot          bool           `json:"isBot"`
	Recommendation Recommendation `json:"recommendation"`
}

// Detector runs both analyses. It holds no registry state; callers pass
// the vote lists and action logs explicitly so tests can construct
// isolated instances.
type Detector struct{}

// NewDetector creates a detector.
func NewDetector() *Detector {
	return &Detector{}
}

package anomaly

import (
	"fmt"
	"math"
	"sort"
	"time"

	"campusverify/models"
)

// Claim-level detection thresholds
const (
	clusterWindow     = 2 * time.Minute
	clusterMinVotes   = 5
	regularityMinCV   = 0.1
	regularityMinMean = 1.0   // seconds; faster is rapid clicking, not cadence
	regularityMaxMean = 600.0 // seconds; slower is naturally sparse
	velocityMultiple  = 5.0
	oneSidedMinVotes  = 5
	minVotesToAnalyze = 3

	// DefaultBaselineRate is assumed when no cross-claim vote rate data
	// exists yet (votes per hour).
	DefaultBaselineRate = 5.0
)

// AnalyzeClaim inspects a claim's votes for coordinated or automated
// patterns. baselineRate is the average votes-per-hour across all claims
// (pass <= 0 to use the default). Fewer than three votes is too little
// signal; the verdict is empty.
func (d *Detector) AnalyzeClaim(votes []models.Vote, claimCreatedAt, now time.Time, baselineRate float64) ClaimVerdict {
	if len(votes) < minVotesToAnalyze {
		return ClaimVerdict{Recommendation: RecommendNone}
	}

	var flags []Flag
	var clustered, irregular, oneSided bool

	times := make([]time.Time, len(votes))
	for i, v := range votes {
		times[i] = v.CastAt
	}

	if f, ok := detectClustering(times); ok {
		flags = append(flags, f)
		clustered = true
	}
	if f, ok := detectRegularity(times); ok {
		flags = append(flags, f)
		irregular = true
	}
	if f, ok := detectVelocity(len(votes), claimCreatedAt, now, baselineRate); ok {
		flags = append(flags, f)
	}
	if f, ok := detectOneSided(votes); ok {
		flags = append(flags, f)
		oneSided = true
	}

	score := 0.0
	for _, f := range flags {
		score += f.Score
	}
	score = math.Min(score, 1.0)

	penalty := 0.0
	if clustered {
		penalty += penaltyClustering
	}
	if irregular {
		penalty += penaltyIrregular
	}
	if oneSided {
		penalty += penaltyOneSided
	}
	penalty = math.Min(penalty, penaltyCap)

	return ClaimVerdict{
		Score:            score,
		Flags:            flags,
		Anomalous:        score > MonitorThreshold,
		ConsensusPenalty: penalty,
		Recommendation:   RecommendationFor(score),
	}
}

// detectClustering flags >= 5 votes inside any 2-minute window.
func detectClustering(times []time.Time) (Flag, bool) {
	if len(times) < clusterMinVotes {
		return Flag{}, false
	}
	sorted := make([]time.Time, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	for i := 0; i+clusterMinVotes-1 < len(sorted); i++ {
		span := sorted[i+clusterMinVotes-1].Sub(sorted[i])
		if span <= clusterWindow {
			return Flag{
				Type:     FlagTemporalClustering,
				Severity: SeverityModerate,
				Score:    scoreTemporalClustering,
				Detail:   fmt.Sprintf("%d votes within %s", clusterMinVotes, span.Round(time.Second)),
			}, true
		}
	}
	return Flag{}, false
}

// detectRegularity flags bot-like cadence: near-constant intervals in the
// 1s-10min band. Sub-second means are rapid clicking, longer means are
// naturally sparse activity; neither counts.
func detectRegularity(times []time.Time) (Flag, bool) {
	ivs := intervals(times)
	if len(ivs) < 2 {
		return Flag{}, false
	}
	cv, mean := coefficientOfVariation(ivs)
	if mean >= regularityMinMean && mean <= regularityMaxMean && cv < regularityMinCV {
		return Flag{
			Type:     FlagUnnaturalPattern,
			Severity: SeveritySevere,
			Score:    scoreUnnaturalPattern,
			Detail:   fmt.Sprintf("interval cv %.3f at mean %.1fs", cv, mean),
		}, true
	}
	return Flag{}, false
}

// detectVelocity flags a vote rate above 5x the cross-claim baseline.
func detectVelocity(voteCount int, createdAt, now time.Time, baselineRate float64) (Flag, bool) {
	if baselineRate <= 0 {
		baselineRate = DefaultBaselineRate
	}
	hours := now.Sub(createdAt).Hours()
	if hours < 1.0/60.0 {
		hours = 1.0 / 60.0 // avoid dividing by a near-zero claim age
	}
	rate := float64(voteCount) / hours
	if rate > velocityMultiple*baselineRate {
		return Flag{
			Type:     FlagVelocitySpike,
			Severity: SeverityModerate,
			Score:    scoreVelocitySpike,
			Detail:   fmt.Sprintf("%.1f votes/h against baseline %.1f", rate, baselineRate),
		}, true
	}
	return Flag{}, false
}

// detectOneSided flags >= 5 votes that all point the same direction.
func detectOneSided(votes []models.Vote) (Flag, bool) {
	if len(votes) < oneSidedMinVotes {
		return Flag{}, false
	}
	first := votes[0].Direction
	for _, v := range votes[1:] {
		if v.Direction != first {
			return Flag{}, false
		}
	}
	return Flag{
		Type:     FlagOneSidedVoting,
		Severity: SeverityMinor,
		Score:    scoreOneSidedVoting,
		Detail:   fmt.Sprintf("all %d votes %s", len(votes), first),
	}, true
}

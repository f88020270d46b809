// Package trust implements the five-component trust score model.
//
// The model combines:
//   - V (Veracity, 0.35): evidence strength with diminishing returns
//   - C (Confidence, 0.25): evidence class x sample size x recency x diversity
//   - T (Temporal relevance, 0.20): category-selected decay curve
//   - S (Source reliability, 0.10): submitter track record
//   - N (Network consensus, 0.10): weighted support fraction, anomaly-penalized
//
// The weighted sum is scaled to [0,100], then adjusted: +10 when documentary
// evidence exists, -20 under a strong anomaly penalty, -15 when disputes are
// heavy. Computation is pure; callers persist the result.
package trust

import (
	"math"
	"sort"
	"time"

	"campusverify/models"
)

// Component weights. They sum to 1.0.
const (
	WeightVeracity   = 0.35
	WeightConfidence = 0.25
	WeightTemporal   = 0.20
	WeightSource     = 0.10
	WeightConsensus  = 0.10
)

// Score adjustments applied after the weighted sum.
const (
	DocumentaryBoost    = 10
	AnomalyPenalty      = 20
	DisputeHeavyPenalty = 15
)

// Status thresholds on the final [0,100] score.
const (
	VerifiedThreshold = 70
	DisputedThreshold = 30
)

// MaxConsensusPenalty caps the anomaly detector's influence on the
// N component: even a fully manipulated claim keeps 20% of its consensus.
const MaxConsensusPenalty = 0.8

// Status is the trust verdict derived from the final score
type Status string

const (
	StatusVerified   Status = "verified"
	StatusDisputed   Status = "disputed"
	StatusUnverified Status = "unverified"
)

// Input is everything the engine needs to score one claim.
type Input struct {
	Evidence []models.Evidence
	Votes    []models.Vote
	Category models.Category

	// Submitter track record
	SubmitterAccurate   int64
	SubmitterInaccurate int64
	SubmitterTotal      int64

	// Claim-level anomaly penalty from the detector, capped at
	// MaxConsensusPenalty before use.
	ConsensusPenalty float64

	CreatedAt time.Time
	Now       time.Time
}

// Components holds the five [0,1] component scores.
type Components struct {
	Veracity   float64 `json:"veracity"`
	Confidence float64 `json:"confidence"`
	Temporal   float64 `json:"temporal"`
	Source     float64 `json:"source"`
	Consensus  float64 `json:"consensus"`
}

// Result is the scored claim.
type Result struct {
	Final      int        `json:"final"`
	Components Components `json:"components"`
	Status     Status     `json:"status"`
}

// Compute scores a claim. Pure: no side effects, deterministic for a given
// input (Now included).
func Compute(in Input) Result {
	supports, disputes := tally(in.Votes)

	c := Components{
		Veracity:   veracity(in, disputes),
		Confidence: confidence(in, supports, disputes),
		Temporal:   temporal(in.Category, in.Now.Sub(in.CreatedAt)),
		Source:     sourceReliability(in.SubmitterAccurate, in.SubmitterInaccurate, in.SubmitterTotal),
		Consensus:  consensus(in.Votes, in.ConsensusPenalty),
	}

	sum := WeightVeracity*c.Veracity +
		WeightConfidence*c.Confidence +
		WeightTemporal*c.Temporal +
		WeightSource*c.Source +
		WeightConsensus*c.Consensus

	final := int(math.Round(sum * 100))

	if hasDocumentary(in.Evidence) {
		final += DocumentaryBoost
	}
	if clampPenalty(in.ConsensusPenalty) > 0.5 {
		final -= AnomalyPenalty
	}
	if disputes >= 3 && 2*disputes > supports {
		final -= DisputeHeavyPenalty
	}

	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}

	return Result{Final: final, Components: c, Status: statusFor(final)}
}

// statusFor maps a final score to a trust status.
func statusFor(final int) Status {
	switch {
	case final >= VerifiedThreshold:
		return StatusVerified
	case final <= DisputedThreshold:
		return StatusDisputed
	default:
		return StatusUnverified
	}
}

// veracity computes the V component. Without evidence it falls back to the
// raw support ratio; with evidence each item contributes its type weight,
// quality, an age decay and a diminishing-returns factor by batch position
// (newest first).
func veracity(in Input, disputes int64) float64 {
	supports := int64(0)
	for _, v := range in.Votes {
		if v.Direction == models.VoteSupport {
			supports++
		}
	}
	total := int64(len(in.Votes))

	if len(in.Evidence) == 0 {
		if total == 0 {
			return 0.5
		}
		return float64(supports) / float64(total)
	}

	ev := make([]models.Evidence, len(in.Evidence))
	copy(ev, in.Evidence)
	sort.Slice(ev, func(i, j int) bool {
		return ev[i].SubmittedAt.After(ev[j].SubmittedAt)
	})

	sum := 0.0
	for i, e := range ev {
		hours := in.Now.Sub(e.SubmittedAt).Hours()
		if hours < 0 {
			hours = 0
		}
		quality := e.Quality
		if quality <= 0 {
			quality = models.DefaultEvidenceQuality
		}
		sum += e.Type.TypeWeight() * quality *
			math.Exp(-0.01*hours) *
			(1.0 / (1.0 + 0.2*float64(i)))
	}

	sum /= 1.0 + 0.15*float64(disputes)
	return clamp01(sum / 2.0)
}

// confidence computes the C component: base from the strongest evidence
// class, scaled by sample size, vote recency, and direction diversity.
func confidence(in Input, supports, disputes int64) float64 {
	base := 0.5
	for _, e := range in.Evidence {
		if b := e.Type.ConfidenceBase(); b > base {
			base = b
		}
	}

	n := len(in.Votes)
	sample := 1.0 - math.Exp(-float64(n)/10.0)

	recency := 0.5
	if n > 0 {
		latest := in.Votes[0].CastAt
		for _, v := range in.Votes[1:] {
			if v.CastAt.After(latest) {
				latest = v.CastAt
			}
		}
		hours := in.Now.Sub(latest).Hours()
		if hours < 0 {
			hours = 0
		}
		recency = 0.5 + 0.5*math.Exp(-hours/24.0)
	}

	return clamp01(base * sample * recency * diversity(supports, disputes))
}

// diversity degrades confidence when voting is one-sided: a claim where
// every vote points the same way is weaker evidence of consensus than a
// contested one that settled. Minority share 0 scales by 0.7, an even
// split by 1.0.
func diversity(supports, disputes int64) float64 {
	total := supports + disputes
	if total == 0 {
		return 1.0
	}
	minority := supports
	if disputes < minority {
		minority = disputes
	}
	share := float64(minority) / float64(total)
	return math.Min(1.0, 0.7+0.6*share)
}

// temporal computes the T component using the category's decay curve.
func temporal(cat models.Category, age time.Duration) float64 {
	h := age.Hours()
	if h < 0 {
		h = 0
	}
	switch cat {
	case models.CategoryEvent, models.CategoryFood, models.CategorySocial:
		// Ephemeral: stale within hours
		return clamp01(math.Exp(-0.5 * h))
	case models.CategoryAcademic, models.CategoryPolicy, models.CategoryFacility:
		// Durable: harmonic decay over weeks
		return clamp01(1.0 / (1.0 + 0.01*h))
	default:
		return clamp01(0.5 + 0.5*math.Exp(-0.1*h))
	}
}

// sourceReliability computes the S component from the submitter's record.
// Inaccurate submissions are penalized at double weight.
func sourceReliability(accurate, inaccurate, total int64) float64 {
	if total == 0 {
		return 0.5
	}
	raw := float64(accurate-2*inaccurate) / float64(total)
	return clamp01((raw + 1.0) / 2.0)
}

// consensus computes the N component: the weighted support fraction,
// discounted by the anomaly detector's claim-level penalty.
func consensus(votes []models.Vote, penalty float64) float64 {
	var supportW, disputeW float64
	for _, v := range votes {
		if v.Direction == models.VoteSupport {
			supportW += v.Weight
		} else {
			disputeW += v.Weight
		}
	}

	frac := 0.5
	if supportW+disputeW > 0 {
		frac = supportW / (supportW + disputeW)
	}
	return clamp01(frac * (1.0 - clampPenalty(penalty)))
}

func tally(votes []models.Vote) (supports, disputes int64) {
	for _, v := range votes {
		if v.Direction == models.VoteSupport {
			supports++
		} else {
			disputes++
		}
	}
	return supports, disputes
}

func hasDocumentary(evidence []models.Evidence) bool {
	for _, e := range evidence {
		if e.Type == models.EvidenceDocumentary {
			return true
		}
	}
	return false
}

func clampPenalty(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > MaxConsensusPenalty {
		return MaxConsensusPenalty
	}
	return p
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

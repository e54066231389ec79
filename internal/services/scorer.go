package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"dotlabs/dot-ranker/internal/models"
)

// suspiciousVariance is the keystroke-variance flag set treated as an
// anti-cheat signal. Flags are compared case-insensitively.
var suspiciousVariance = map[string]bool{
	"suspicious": true,
	"very_low":   true,
	"very_high":  true,
}

// MatchScorer computes per-dimension scores and the weighted composite for
// one profile against one job requirement. Every method is a pure function
// of its inputs: no I/O, no retained state, safe for concurrent use.
//
// All dimension scores are clamped to [0,1]. When a dimension's signal
// group is entirely absent the scorer returns a neutral 0.5 — unknown data
// is not treated as bad data.
type MatchScorer struct{}

func NewMatchScorer() *MatchScorer {
	return &MatchScorer{}
}

// ResolveWeights merges the job's weight overrides over the defaults,
// clamps the six positive weights to >= 0 and rescales them so they sum to
// 1.0 (when their raw sum is positive), and independently clamps the
// fraud_penalty weight to [0, 0.5]. Unknown override keys are ignored; a
// non-numeric value fails with a ConfigurationError.
func (s *MatchScorer) ResolveWeights(job *models.JobRequirement) (models.WeightSet, error) {
	w := models.DefaultWeights()

	if len(job.Weights) > 0 {
		fields := map[string]*float64{
			"skills":        &w.Skills,
			"experience":    &w.Experience,
			"screening":     &w.Screening,
			"github":        &w.Github,
			"coding":        &w.Coding,
			"trust":         &w.Trust,
			"fraud_penalty": &w.FraudPenalty,
		}
		for key, field := range fields {
			raw, ok := job.Weights[key]
			if !ok {
				continue
			}
			value, err := coerceFloat(raw)
			if err != nil {
				return models.WeightSet{}, &ConfigurationError{Key: key, Value: raw}
			}
			*field = value
		}
	}

	positives := []*float64{&w.Skills, &w.Experience, &w.Screening, &w.Github, &w.Coding, &w.Trust}
	sum := 0.0
	for _, p := range positives {
		if *p < 0 {
			*p = 0
		}
		sum += *p
	}
	if sum > 0 {
		for _, p := range positives {
			*p /= sum
		}
	}

	w.FraudPenalty = math.Min(math.Max(w.FraudPenalty, 0.0), 0.5)
	return w, nil
}

// ScoreSkills scores the overlap between the job's skill sets and the
// profile's verified skills, with a penalty for required skills the
// assessment explicitly rejected. Labels match case-sensitively.
func (s *MatchScorer) ScoreSkills(profile *models.Profile, job *models.JobRequirement) float64 {
	required := toSet(job.RequiredSkills)
	nice := toSet(job.NiceToHaveSkills)
	verified := toSet(profile.VerifiedSkills)
	rejected := toSet(profile.SkillsRejected)

	if len(required) == 0 && len(nice) == 0 {
		return 0.5
	}

	requiredTotal := len(required)
	if requiredTotal == 0 {
		requiredTotal = 1
	}
	requiredScore := float64(intersectCount(required, verified)) / float64(requiredTotal)

	niceScore := 0.0
	if len(nice) > 0 {
		niceScore = float64(intersectCount(nice, verified)) / float64(len(nice))
	}

	rejectPenalty := 0.15 * float64(intersectCount(required, rejected)) / float64(requiredTotal)

	return clamp01(0.8*requiredScore + 0.2*niceScore - rejectPenalty)
}

// ScoreExperience maps the candidate's years against the job's minimum and
// target. Once the minimum is met the score never drops below 0.8, but it
// decays toward that floor as years exceed the target by 5+.
func (s *MatchScorer) ScoreExperience(profile *models.Profile, job *models.JobRequirement) float64 {
	years := profile.CandidateMeta.ExperienceYears
	minYears := job.MinExperienceYears
	targetYears := math.Max(minYears, 3.0)
	if job.TargetExperienceYears != nil {
		targetYears = *job.TargetExperienceYears
	}

	if years <= 0 && minYears <= 0 {
		return 0.5
	}

	if years < minYears {
		return clamp01(years / math.Max(minYears, 0.1))
	}

	if years <= targetYears {
		return clamp01(0.7 + 0.3*((years-minYears)/math.Max(targetYears-minYears, 0.1)))
	}

	over := years - targetYears
	return math.Max(0.8, 1.0-0.05*math.Min(over, 5))
}

// ScoreScreening averages the three screening signals and subtracts 0.1 per
// red flag, capped at three flags.
func (s *MatchScorer) ScoreScreening(profile *models.Profile) float64 {
	if profile.Rounds == nil || profile.Rounds.Screening == nil {
		return 0.5
	}
	scr := profile.Rounds.Screening

	vals := []float64{scr.ProblemUnderstanding, scr.CommunicationClarity, scr.LogicalReasoning}
	if !anyNonZero(vals) {
		return 0.5
	}

	penalty := 0.1 * math.Min(float64(len(scr.RedFlags)), 3)
	return clamp01(mean(vals) - penalty)
}

// ScoreGithub averages the three repository-analysis signals.
func (s *MatchScorer) ScoreGithub(profile *models.Profile) float64 {
	if profile.Rounds == nil || profile.Rounds.Github == nil {
		return 0.5
	}
	gh := profile.Rounds.Github

	vals := []float64{gh.OriginalityScore, gh.CodeQuality, gh.CommitConsistency}
	if !anyNonZero(vals) {
		return 0.5
	}
	return clamp01(mean(vals))
}

// ScoreCoding averages the three coding-test signals, then subtracts 0.25
// when copy-paste was detected and a further 0.10 for a suspicious
// keystroke-variance flag. This in-line penalty is deliberately smaller
// than, and independent of, the separate FraudPenalty evaluation.
func (s *MatchScorer) ScoreCoding(profile *models.Profile) float64 {
	if profile.Rounds == nil || profile.Rounds.DSACoding == nil {
		return 0.5
	}
	dsa := profile.Rounds.DSACoding

	vals := []float64{dsa.ProblemSolvingScore, dsa.TimeComplexityAwareness, dsa.EdgeCaseHandling}
	if !anyNonZero(vals) {
		return 0.5
	}

	penalty := 0.0
	if anti := dsa.AntiCheatSignals; anti != nil {
		if anti.CopyPasteDetected {
			penalty += 0.25
		}
		if suspiciousVariance[strings.ToLower(anti.KeystrokeVariance)] {
			penalty += 0.10
		}
	}

	return clamp01(mean(vals) - penalty)
}

// ScoreTrust blends the cross-round validation signals, weighting the trust
// score twice as heavily as claim alignment and reasoning consistency.
func (s *MatchScorer) ScoreTrust(profile *models.Profile) float64 {
	if profile.CrossRoundValidation == nil {
		return 0.5
	}
	crv := profile.CrossRoundValidation

	if crv.TrustScore == 0 && crv.SkillClaimAlignment == 0 && crv.ReasoningConsistency == 0 {
		return 0.5
	}
	return clamp01(0.5*crv.TrustScore + 0.25*crv.SkillClaimAlignment + 0.25*crv.ReasoningConsistency)
}

// FraudPenalty aggregates the anti-cheat and resume-overclaim signals into
// a [0,1] penalty: +0.6 for copy-paste, +0.2 for suspicious keystroke
// variance, +0.05 per overclaim flag capped at four flags.
func (s *MatchScorer) FraudPenalty(profile *models.Profile) float64 {
	penalty := 0.0

	if profile.Rounds != nil {
		if dsa := profile.Rounds.DSACoding; dsa != nil && dsa.AntiCheatSignals != nil {
			anti := dsa.AntiCheatSignals
			if anti.CopyPasteDetected {
				penalty += 0.6
			}
			if suspiciousVariance[strings.ToLower(anti.KeystrokeVariance)] {
				penalty += 0.2
			}
		}
		if resume := profile.Rounds.Resume; resume != nil {
			penalty += 0.05 * math.Min(float64(len(resume.OverclaimFlags)), 4)
		}
	}

	return clamp01(penalty)
}

// CalculateMatchScore combines the dimension scores, weights and fraud
// penalty into the final percentage plus a detail breakdown.
func (s *MatchScorer) CalculateMatchScore(profile *models.Profile, job *models.JobRequirement) (float64, models.ScoreDetail, error) {
	weights, err := s.ResolveWeights(job)
	if err != nil {
		return 0, models.ScoreDetail{}, err
	}

	skillsScore := s.ScoreSkills(profile, job)
	expScore := s.ScoreExperience(profile, job)
	screeningScore := s.ScoreScreening(profile)
	githubScore := s.ScoreGithub(profile)
	codingScore := s.ScoreCoding(profile)
	trustScore := s.ScoreTrust(profile)
	fraudPenalty := s.FraudPenalty(profile)

	positive := weights.Skills*skillsScore +
		weights.Experience*expScore +
		weights.Screening*screeningScore +
		weights.Github*githubScore +
		weights.Coding*codingScore +
		weights.Trust*trustScore

	negative := weights.FraudPenalty * fraudPenalty

	finalScore := clamp01(positive - negative)
	percentage := finalScore * 100.0

	detail := models.ScoreDetail{
		SkillsScore:     roundTo(skillsScore, 3),
		ExperienceScore: roundTo(expScore, 3),
		ScreeningScore:  roundTo(screeningScore, 3),
		GithubScore:     roundTo(githubScore, 3),
		CodingScore:     roundTo(codingScore, 3),
		TrustScore:      roundTo(trustScore, 3),
		FraudPenaltyRaw: roundTo(fraudPenalty, 3),
		Weights:         weights,
		FinalScore:      roundTo(finalScore, 4),
		MatchPercentage: roundTo(percentage, 2),
	}
	return percentage, detail, nil
}

// coerceFloat interprets an untyped JSON value as a real number. Numeric
// strings and booleans coerce; anything else is rejected.
func coerceFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	case bool:
		if v {
			return 1.0, nil
		}
		return 0.0, nil
	default:
		return 0, strconv.ErrSyntax
	}
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func anyNonZero(vals []float64) bool {
	for _, v := range vals {
		if v != 0 {
			return true
		}
	}
	return false
}

func toSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}

func intersectCount(a, b map[string]struct{}) int {
	count := 0
	for k := range a {
		if _, ok := b[k]; ok {
			count++
		}
	}
	return count
}

func roundTo(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

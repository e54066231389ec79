package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotlabs/dot-ranker/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func positiveSum(w models.WeightSet) float64 {
	return w.Skills + w.Experience + w.Screening + w.Github + w.Coding + w.Trust
}

// ==========================
// Weight resolution
// ==========================

func TestResolveWeights_Defaults(t *testing.T) {
	scorer := NewMatchScorer()

	w, err := scorer.ResolveWeights(&models.JobRequirement{})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, positiveSum(w), 1e-9)
	assert.InDelta(t, 0.30, w.Skills, 1e-9)
	assert.InDelta(t, 0.10, w.FraudPenalty, 1e-9)
}

func TestResolveWeights_Normalization(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
		check     func(t *testing.T, w models.WeightSet)
	}{
		{
			name:      "partial override rescaled to sum 1",
			overrides: map[string]any{"skills": 3.0},
			check: func(t *testing.T, w models.WeightSet) {
				assert.InDelta(t, 1.0, positiveSum(w), 1e-9)
				assert.InDelta(t, 3.0/3.7, w.Skills, 1e-9)
			},
		},
		{
			name:      "negative weight clamped to zero before rescale",
			overrides: map[string]any{"skills": -2.0},
			check: func(t *testing.T, w models.WeightSet) {
				assert.Zero(t, w.Skills)
				assert.InDelta(t, 1.0, positiveSum(w), 1e-9)
			},
		},
		{
			name: "all positives zero stay zero",
			overrides: map[string]any{
				"skills": 0, "experience": 0, "screening": 0,
				"github": 0, "coding": 0, "trust": 0,
			},
			check: func(t *testing.T, w models.WeightSet) {
				assert.Zero(t, positiveSum(w))
			},
		},
		{
			name:      "fraud penalty clamped to half",
			overrides: map[string]any{"fraud_penalty": 0.9},
			check: func(t *testing.T, w models.WeightSet) {
				assert.InDelta(t, 0.5, w.FraudPenalty, 1e-9)
			},
		},
		{
			name:      "negative fraud penalty clamped to zero",
			overrides: map[string]any{"fraud_penalty": -1.0},
			check: func(t *testing.T, w models.WeightSet) {
				assert.Zero(t, w.FraudPenalty)
			},
		},
		{
			name:      "numeric string coerced",
			overrides: map[string]any{"skills": "0.4"},
			check: func(t *testing.T, w models.WeightSet) {
				assert.InDelta(t, 1.0, positiveSum(w), 1e-9)
			},
		},
		{
			name:      "unknown keys ignored",
			overrides: map[string]any{"charisma": 5.0},
			check: func(t *testing.T, w models.WeightSet) {
				assert.InDelta(t, 0.30, w.Skills, 1e-9)
			},
		},
	}

	scorer := NewMatchScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := scorer.ResolveWeights(&models.JobRequirement{Weights: tt.overrides})
			require.NoError(t, err)
			tt.check(t, w)
		})
	}
}

func TestResolveWeights_NonNumericFails(t *testing.T) {
	scorer := NewMatchScorer()

	_, err := scorer.ResolveWeights(&models.JobRequirement{
		Weights: map[string]any{"skills": "heavy"},
	})
	require.Error(t, err)

	var confErr *ConfigurationError
	require.True(t, errors.As(err, &confErr))
	assert.Equal(t, "skills", confErr.Key)
}

// ==========================
// Dimension scorers
// ==========================

func TestScoreSkills(t *testing.T) {
	scorer := NewMatchScorer()

	tests := []struct {
		name     string
		profile  models.Profile
		job      models.JobRequirement
		expected float64
	}{
		{
			name:     "no skill requirements is neutral",
			profile:  models.Profile{VerifiedSkills: []string{"python"}},
			job:      models.JobRequirement{},
			expected: 0.5,
		},
		{
			name:    "half of required covered",
			profile: models.Profile{VerifiedSkills: []string{"python"}},
			job: models.JobRequirement{
				RequiredSkills: []string{"python", "sql"},
			},
			expected: 0.4,
		},
		{
			name:    "full coverage with nice-to-have",
			profile: models.Profile{VerifiedSkills: []string{"python", "sql", "docker"}},
			job: models.JobRequirement{
				RequiredSkills:   []string{"python", "sql"},
				NiceToHaveSkills: []string{"docker", "kafka"},
			},
			expected: 0.8 + 0.2*0.5,
		},
		{
			name: "rejected required skill penalized",
			profile: models.Profile{
				VerifiedSkills: []string{"python"},
				SkillsRejected: []string{"sql"},
			},
			job: models.JobRequirement{
				RequiredSkills: []string{"python", "sql"},
			},
			expected: 0.4 - 0.15*0.5,
		},
		{
			name:    "case-sensitive labels do not match",
			profile: models.Profile{VerifiedSkills: []string{"Python"}},
			job: models.JobRequirement{
				RequiredSkills: []string{"python"},
			},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.ScoreSkills(&tt.profile, &tt.job)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestScoreSkills_Monotonicity(t *testing.T) {
	scorer := NewMatchScorer()
	job := models.JobRequirement{RequiredSkills: []string{"a", "b", "c", "d"}}

	prev := -1.0
	verified := []string{}
	for _, skill := range job.RequiredSkills {
		verified = append(verified, skill)
		got := scorer.ScoreSkills(&models.Profile{VerifiedSkills: verified}, &job)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
	assert.InDelta(t, 0.8, prev, 1e-9)
}

func TestScoreExperience(t *testing.T) {
	scorer := NewMatchScorer()

	tests := []struct {
		name     string
		years    float64
		job      models.JobRequirement
		expected float64
	}{
		{
			name:     "no signal is neutral",
			years:    0,
			job:      models.JobRequirement{},
			expected: 0.5,
		},
		{
			name:     "below minimum is proportional",
			years:    1,
			job:      models.JobRequirement{MinExperienceYears: 4},
			expected: 0.25,
		},
		{
			name:  "between minimum and target",
			years: 4,
			job: models.JobRequirement{
				MinExperienceYears:    2,
				TargetExperienceYears: floatPtr(6),
			},
			expected: 0.7 + 0.3*0.5,
		},
		{
			name:  "exactly at target",
			years: 6,
			job: models.JobRequirement{
				MinExperienceYears:    2,
				TargetExperienceYears: floatPtr(6),
			},
			expected: 1.0,
		},
		{
			name:     "slightly over default target",
			years:    4,
			job:      models.JobRequirement{},
			expected: 0.95, // target defaults to 3, over by 1
		},
		{
			name:     "far over target floors at 0.8",
			years:    20,
			job:      models.JobRequirement{MinExperienceYears: 2},
			expected: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := models.Profile{
				CandidateMeta: models.CandidateMeta{ExperienceYears: tt.years},
			}
			got := scorer.ScoreExperience(&profile, &tt.job)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestScoreScreening(t *testing.T) {
	scorer := NewMatchScorer()

	t.Run("absent round is neutral", func(t *testing.T) {
		assert.InDelta(t, 0.5, scorer.ScoreScreening(&models.Profile{}), 1e-9)
	})

	t.Run("all-zero signals are neutral even with red flags", func(t *testing.T) {
		profile := models.Profile{Rounds: &models.Rounds{
			Screening: &models.ScreeningRound{RedFlags: []string{"a", "b"}},
		}}
		assert.InDelta(t, 0.5, scorer.ScoreScreening(&profile), 1e-9)
	})

	t.Run("average minus red flag penalty", func(t *testing.T) {
		profile := models.Profile{Rounds: &models.Rounds{
			Screening: &models.ScreeningRound{
				ProblemUnderstanding: 0.9,
				CommunicationClarity: 0.8,
				LogicalReasoning:     0.7,
				RedFlags:             []string{"evasive", "inconsistent"},
			},
		}}
		assert.InDelta(t, 0.8-0.2, scorer.ScoreScreening(&profile), 1e-9)
	})

	t.Run("red flag penalty capped at three", func(t *testing.T) {
		profile := models.Profile{Rounds: &models.Rounds{
			Screening: &models.ScreeningRound{
				ProblemUnderstanding: 0.9,
				CommunicationClarity: 0.9,
				LogicalReasoning:     0.9,
				RedFlags:             []string{"a", "b", "c", "d", "e"},
			},
		}}
		assert.InDelta(t, 0.9-0.3, scorer.ScoreScreening(&profile), 1e-9)
	})
}

func TestScoreGithub(t *testing.T) {
	scorer := NewMatchScorer()

	assert.InDelta(t, 0.5, scorer.ScoreGithub(&models.Profile{}), 1e-9)

	profile := models.Profile{Rounds: &models.Rounds{
		Github: &models.GithubAnalysis{
			OriginalityScore:  0.9,
			CodeQuality:       0.6,
			CommitConsistency: 0.6,
		},
	}}
	assert.InDelta(t, 0.7, scorer.ScoreGithub(&profile), 1e-9)
}

func codingProfile(anti *models.AntiCheatSignals) models.Profile {
	return models.Profile{Rounds: &models.Rounds{
		DSACoding: &models.DSACodingRound{
			ProblemSolvingScore:     0.9,
			TimeComplexityAwareness: 0.9,
			EdgeCaseHandling:        0.9,
			AntiCheatSignals:        anti,
		},
	}}
}

func TestScoreCoding(t *testing.T) {
	scorer := NewMatchScorer()

	t.Run("absent round is neutral", func(t *testing.T) {
		assert.InDelta(t, 0.5, scorer.ScoreCoding(&models.Profile{}), 1e-9)
	})

	t.Run("clean run averages the signals", func(t *testing.T) {
		profile := codingProfile(nil)
		assert.InDelta(t, 0.9, scorer.ScoreCoding(&profile), 1e-9)
	})

	t.Run("copy paste subtracts a quarter", func(t *testing.T) {
		clean := codingProfile(nil)
		flagged := codingProfile(&models.AntiCheatSignals{CopyPasteDetected: true})
		assert.InDelta(t, scorer.ScoreCoding(&clean)-0.25, scorer.ScoreCoding(&flagged), 1e-9)
	})

	t.Run("suspicious variance is case-insensitive", func(t *testing.T) {
		for _, flag := range []string{"suspicious", "SUSPICIOUS", "Very_Low", "very_high"} {
			profile := codingProfile(&models.AntiCheatSignals{KeystrokeVariance: flag})
			assert.InDelta(t, 0.8, scorer.ScoreCoding(&profile), 1e-9, "flag %q", flag)
		}
	})

	t.Run("normal variance not penalized", func(t *testing.T) {
		profile := codingProfile(&models.AntiCheatSignals{KeystrokeVariance: "normal"})
		assert.InDelta(t, 0.9, scorer.ScoreCoding(&profile), 1e-9)
	})
}

func TestScoreTrust(t *testing.T) {
	scorer := NewMatchScorer()

	assert.InDelta(t, 0.5, scorer.ScoreTrust(&models.Profile{}), 1e-9)

	profile := models.Profile{CrossRoundValidation: &models.CrossRoundValidation{
		TrustScore:           0.8,
		SkillClaimAlignment:  0.6,
		ReasoningConsistency: 0.4,
	}}
	assert.InDelta(t, 0.5*0.8+0.25*0.6+0.25*0.4, scorer.ScoreTrust(&profile), 1e-9)
}

// ==========================
// Fraud penalty evaluator
// ==========================

func TestFraudPenalty(t *testing.T) {
	scorer := NewMatchScorer()

	tests := []struct {
		name     string
		profile  models.Profile
		expected float64
	}{
		{
			name:     "clean profile",
			profile:  models.Profile{},
			expected: 0.0,
		},
		{
			name:     "copy paste alone",
			profile:  codingProfile(&models.AntiCheatSignals{CopyPasteDetected: true}),
			expected: 0.6,
		},
		{
			name: "copy paste plus variance",
			profile: codingProfile(&models.AntiCheatSignals{
				CopyPasteDetected: true,
				KeystrokeVariance: "very_high",
			}),
			expected: 0.8,
		},
		{
			name: "overclaim flags capped at four",
			profile: models.Profile{Rounds: &models.Rounds{
				Resume: &models.ResumeAnalysis{
					OverclaimFlags: []string{"a", "b", "c", "d", "e", "f"},
				},
			}},
			expected: 0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, scorer.FraudPenalty(&tt.profile), 1e-9)
		})
	}
}

func TestFraudPenalty_ClampedToOne(t *testing.T) {
	scorer := NewMatchScorer()

	profile := codingProfile(&models.AntiCheatSignals{
		CopyPasteDetected: true,
		KeystrokeVariance: "suspicious",
	})
	profile.Rounds.Resume = &models.ResumeAnalysis{
		OverclaimFlags: []string{"a", "b", "c", "d"},
	}

	assert.InDelta(t, 1.0, scorer.FraudPenalty(&profile), 1e-9)
}

// ==========================
// Composite scorer
// ==========================

func TestCalculateMatchScore_NoRoundsData(t *testing.T) {
	scorer := NewMatchScorer()

	profile := models.Profile{VerifiedSkills: []string{"python"}}
	job := models.JobRequirement{RequiredSkills: []string{"python"}}

	percentage, detail, err := scorer.CalculateMatchScore(&profile, &job)
	require.NoError(t, err)

	assert.InDelta(t, 0.8, detail.SkillsScore, 1e-9)
	assert.InDelta(t, 0.5, detail.ExperienceScore, 1e-9)
	assert.InDelta(t, 0.5, detail.ScreeningScore, 1e-9)
	assert.InDelta(t, 0.5, detail.GithubScore, 1e-9)
	assert.InDelta(t, 0.5, detail.CodingScore, 1e-9)
	assert.InDelta(t, 0.5, detail.TrustScore, 1e-9)
	assert.Zero(t, detail.FraudPenaltyRaw)

	// 0.30*0.8 + 0.70*0.5 = 0.59
	assert.InDelta(t, 59.0, percentage, 1e-9)
	assert.InDelta(t, 59.0, detail.MatchPercentage, 1e-9)
	assert.InDelta(t, 0.59, detail.FinalScore, 1e-9)
}

func TestCalculateMatchScore_Idempotent(t *testing.T) {
	scorer := NewMatchScorer()

	profile := codingProfile(&models.AntiCheatSignals{CopyPasteDetected: true})
	profile.VerifiedSkills = []string{"python"}
	profile.Notes = "notes stay untouched"
	job := models.JobRequirement{
		RequiredSkills: []string{"python", "sql"},
		Weights:        map[string]any{"coding": 0.4},
	}

	p1, d1, err := scorer.CalculateMatchScore(&profile, &job)
	require.NoError(t, err)
	p2, d2, err := scorer.CalculateMatchScore(&profile, &job)
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.Equal(t, d1, d2)
}

func TestCalculateMatchScore_Bounds(t *testing.T) {
	scorer := NewMatchScorer()

	profiles := []models.Profile{
		{},
		codingProfile(&models.AntiCheatSignals{CopyPasteDetected: true, KeystrokeVariance: "suspicious"}),
		{
			VerifiedSkills: []string{"go"},
			SkillsRejected: []string{"go"},
			CandidateMeta:  models.CandidateMeta{ExperienceYears: 30},
		},
	}
	jobs := []models.JobRequirement{
		{},
		{RequiredSkills: []string{"go"}, MinExperienceYears: 10},
		{Weights: map[string]any{"fraud_penalty": 0.5, "skills": 0}},
	}

	for _, profile := range profiles {
		for _, job := range jobs {
			percentage, detail, err := scorer.CalculateMatchScore(&profile, &job)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, percentage, 0.0)
			assert.LessOrEqual(t, percentage, 100.0)
			assert.GreaterOrEqual(t, detail.FinalScore, 0.0)
			assert.LessOrEqual(t, detail.FinalScore, 1.0)
			for _, score := range []float64{
				detail.SkillsScore, detail.ExperienceScore, detail.ScreeningScore,
				detail.GithubScore, detail.CodingScore, detail.TrustScore,
				detail.FraudPenaltyRaw,
			} {
				assert.GreaterOrEqual(t, score, 0.0)
				assert.LessOrEqual(t, score, 1.0)
			}
		}
	}
}

func TestCalculateMatchScore_FraudOnlyDegenerate(t *testing.T) {
	scorer := NewMatchScorer()

	profile := codingProfile(&models.AntiCheatSignals{CopyPasteDetected: true})
	job := models.JobRequirement{Weights: map[string]any{
		"skills": 0, "experience": 0, "screening": 0,
		"github": 0, "coding": 0, "trust": 0,
		"fraud_penalty": 0.5,
	}}

	percentage, detail, err := scorer.CalculateMatchScore(&profile, &job)
	require.NoError(t, err)

	// Positive term is zero, so the composite clamps at the floor.
	assert.Zero(t, percentage)
	assert.Zero(t, detail.FinalScore)
}

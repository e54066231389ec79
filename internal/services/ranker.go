package services

import (
	"fmt"
	"sort"

	"dotlabs/dot-ranker/internal/models"
)

// RankerService scores every profile against one job requirement and
// assembles the final ranking report.
type RankerService interface {
	RankCandidates(job *models.JobRequirement, profiles []models.Profile) (*models.RankingReport, error)
}

type rankerService struct {
	scorer *MatchScorer
}

func NewRankerService() RankerService {
	return &rankerService{
		scorer: NewMatchScorer(),
	}
}

type scoredProfile struct {
	dotID   string
	score   float64
	detail  models.ScoreDetail
	profile models.Profile
}

// RankCandidates implements RankerService. Profiles are sorted descending
// by percentage with a stable sort, so profiles with equal scores keep
// their input order. An empty profile list yields an empty report.
func (r *rankerService) RankCandidates(job *models.JobRequirement, profiles []models.Profile) (*models.RankingReport, error) {
	scored := make([]scoredProfile, 0, len(profiles))
	for i := range profiles {
		profile := profiles[i]

		score, detail, err := r.scorer.CalculateMatchScore(&profile, job)
		if err != nil {
			return nil, fmt.Errorf("failed to score profile %q: %w", profile.DotID, err)
		}

		dotID := profile.DotID
		if dotID == "" {
			dotID = "UNKNOWN"
		}
		scored = append(scored, scoredProfile{
			dotID:   dotID,
			score:   score,
			detail:  detail,
			profile: profile,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	ranking := make([]models.RankedCandidate, 0, len(scored))
	insights := make(map[string]models.ScoreDetail, len(scored))

	for idx, sp := range scored {
		recommendation := r.scorer.RecommendationText(sp.score, sp.detail, &sp.profile)

		ranking = append(ranking, models.RankedCandidate{
			DotID:           sp.dotID,
			Rank:            idx + 1,
			OverallScore:    roundTo(sp.score, 2),
			MatchPercentage: fmt.Sprintf("%.1f%%", sp.score),
			ComponentScores: sp.detail,
			FinalVerdict:    sp.profile.FinalVerdict,
			VerifiedSkills:  nonNil(sp.profile.VerifiedSkills),
			SkillsRejected:  nonNil(sp.profile.SkillsRejected),
			CandidateMeta:   sp.profile.CandidateMeta,
			Recommendation:  recommendation,
		})
		insights[sp.dotID] = sp.detail
	}

	// The echo reports the raw request values; an omitted target stays 0
	// here even though scoring defaults it to max(min, 3.0).
	targetYears := 0.0
	if job.TargetExperienceYears != nil {
		targetYears = *job.TargetExperienceYears
	}

	return &models.RankingReport{
		Ranking:  ranking,
		Insights: insights,
		JobRequirementsAnalysis: models.JobAnalysis{
			RequiredSkills:        nonNil(job.RequiredSkills),
			NiceToHaveSkills:      nonNil(job.NiceToHaveSkills),
			MinExperienceYears:    job.MinExperienceYears,
			TargetExperienceYears: targetYears,
			PrimaryDomain:         job.PrimaryDomain,
		},
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

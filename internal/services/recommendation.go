package services

import (
	"fmt"
	"strings"

	"dotlabs/dot-ranker/internal/models"
)

// RecommendationText assembles the human-readable verdict for one scored
// profile. Band selection uses the raw percentage; strength and gap tags
// use the rounded detail values (>= 0.75 strength, < 0.5 gap, in between
// neither). Deterministic: identical inputs produce identical text.
func (s *MatchScorer) RecommendationText(score float64, detail models.ScoreDetail, profile *models.Profile) string {
	var strengths, gaps []string

	if detail.SkillsScore >= 0.75 {
		strengths = append(strengths, "skills match")
	} else if detail.SkillsScore < 0.5 {
		gaps = append(gaps, "core skills")
	}

	if detail.ExperienceScore >= 0.75 {
		strengths = append(strengths, "relevant experience")
	} else if detail.ExperienceScore < 0.5 {
		gaps = append(gaps, "experience level")
	}

	if detail.CodingScore >= 0.75 {
		strengths = append(strengths, "problem solving & coding")
	} else if detail.CodingScore < 0.5 {
		gaps = append(gaps, "coding depth")
	}

	if detail.TrustScore >= 0.75 {
		strengths = append(strengths, "high cross-round trust")
	} else if detail.TrustScore < 0.5 {
		gaps = append(gaps, "signal consistency")
	}

	var base string
	switch {
	case score >= 80:
		base = "EXCELLENT MATCH - Strong candidate"
	case score >= 65:
		base = "GOOD MATCH - Solid candidate"
	case score >= 50:
		base = "PARTIAL MATCH - Candidate shows potential"
	default:
		base = "POOR MATCH - Limited fit for this role"
	}

	parts := []string{base}
	if len(strengths) > 0 {
		parts = append(parts, fmt.Sprintf("key strengths in %s", strings.Join(strengths, ", ")))
	}
	if len(gaps) > 0 {
		parts = append(parts, fmt.Sprintf("notable gaps in %s", strings.Join(gaps, ", ")))
	}
	if profile.Notes != "" {
		parts = append(parts, fmt.Sprintf("notes: %s", profile.Notes))
	}

	return strings.Join(parts, ". ")
}

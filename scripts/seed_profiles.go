package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"dotlabs/dot-ranker/internal/models"
)

// Writes a sample data.json so the API has something to rank locally.
// Usage: go run scripts/seed_profiles.go [path]
func main() {
	path := "data.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	profiles := []models.Profile{
		{
			DotID:          "DOT-001",
			VerifiedSkills: []string{"python", "sql", "docker"},
			SkillsRejected: []string{},
			Rounds: &models.Rounds{
				Screening: &models.ScreeningRound{
					ProblemUnderstanding: 0.9,
					CommunicationClarity: 0.85,
					LogicalReasoning:     0.8,
				},
				Github: &models.GithubAnalysis{
					OriginalityScore:  0.8,
					CodeQuality:       0.75,
					CommitConsistency: 0.9,
				},
				DSACoding: &models.DSACodingRound{
					ProblemSolvingScore:     0.85,
					TimeComplexityAwareness: 0.8,
					EdgeCaseHandling:        0.7,
				},
			},
			CrossRoundValidation: &models.CrossRoundValidation{
				TrustScore:           0.9,
				SkillClaimAlignment:  0.85,
				ReasoningConsistency: 0.8,
			},
			CandidateMeta: models.CandidateMeta{
				Name:            "Asha Verma",
				ExperienceYears: 4,
			},
			Notes: "strong backend background",
		},
		{
			DotID:          "DOT-002",
			VerifiedSkills: []string{"python"},
			SkillsRejected: []string{"sql"},
			Rounds: &models.Rounds{
				DSACoding: &models.DSACodingRound{
					ProblemSolvingScore:     0.6,
					TimeComplexityAwareness: 0.5,
					EdgeCaseHandling:        0.4,
					AntiCheatSignals: &models.AntiCheatSignals{
						CopyPasteDetected: true,
						KeystrokeVariance: "suspicious",
					},
				},
				Resume: &models.ResumeAnalysis{
					OverclaimFlags: []string{"inflated_title", "unverified_project"},
				},
			},
			CandidateMeta: models.CandidateMeta{
				Name:            "Rohit Iyer",
				ExperienceYears: 2,
			},
		},
		{
			DotID:          "DOT-003",
			VerifiedSkills: []string{"go", "kubernetes"},
			SkillsRejected: []string{},
			CandidateMeta: models.CandidateMeta{
				Name:            "Meera Nair",
				ExperienceYears: 7,
			},
			FinalVerdict: "shortlisted",
		},
	}

	payload, err := json.MarshalIndent(map[string][]models.Profile{"dot_profiles": profiles}, "", "  ")
	if err != nil {
		log.Fatalf("❌ Failed to marshal profiles: %v", err)
	}

	if err := os.WriteFile(path, payload, 0644); err != nil {
		log.Fatalf("❌ Failed to write %s: %v", path, err)
	}

	fmt.Printf("✅ Wrote %d sample profiles to %s\n", len(profiles), path)
}

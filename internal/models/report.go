package models

import "time"

// ScoreDetail is the per-profile score breakdown. Dimension scores are
// rounded to 3 decimals, the final fraction to 4, the percentage to 2.
// Produced fresh per (profile, job) pair and never mutated afterwards.
type ScoreDetail struct {
	SkillsScore     float64   `json:"skills_score"`
	ExperienceScore float64   `json:"experience_score"`
	ScreeningScore  float64   `json:"screening_score"`
	GithubScore     float64   `json:"github_score"`
	CodingScore     float64   `json:"coding_score"`
	TrustScore      float64   `json:"trust_score"`
	FraudPenaltyRaw float64   `json:"fraud_penalty_raw"`
	Weights         WeightSet `json:"weights"`
	FinalScore      float64   `json:"final_score"`
	MatchPercentage float64   `json:"match_percentage"`
}

// RankedCandidate is one leaderboard entry.
type RankedCandidate struct {
	DotID           string        `json:"dot_id"`
	Rank            int           `json:"rank"`
	OverallScore    float64       `json:"overall_score"`
	MatchPercentage string        `json:"match_percentage"`
	ComponentScores ScoreDetail   `json:"component_scores"`
	FinalVerdict    string        `json:"final_verdict,omitempty"`
	VerifiedSkills  []string      `json:"verified_skills"`
	SkillsRejected  []string      `json:"skills_rejected"`
	CandidateMeta   CandidateMeta `json:"candidate_meta"`
	Recommendation  string        `json:"recommendation"`
}

// JobAnalysis echoes the salient job requirement fields into the report.
type JobAnalysis struct {
	RequiredSkills        []string `json:"required_skills"`
	NiceToHaveSkills      []string `json:"nice_to_have_skills"`
	MinExperienceYears    float64  `json:"min_experience_years"`
	TargetExperienceYears float64  `json:"target_experience_years"`
	PrimaryDomain         string   `json:"primary_domain,omitempty"`
}

// RankingReport is the full output of one ranking run.
type RankingReport struct {
	Ranking                 []RankedCandidate      `json:"ranking"`
	Insights                map[string]ScoreDetail `json:"insights"`
	JobRequirementsAnalysis JobAnalysis            `json:"job_requirements_analysis"`
}

// SessionAnalysis is the per-session "last analysis" snapshot kept for
// /export. Stored keyed by session id so concurrent sessions never
// overwrite each other's result.
type SessionAnalysis struct {
	Timestamp       time.Time      `json:"timestamp"`
	JobRequirements JobRequirement `json:"job_requirements"`
	ProfileCount    int            `json:"dot_profiles_count"`
	Results         RankingReport  `json:"results"`
}

// AnalyzeRequest is the POST /analyze payload.
type AnalyzeRequest struct {
	JobRequirements *JobRequirement `json:"job_requirements"`
}

// AnalyzeResponse is the POST /analyze response body.
type AnalyzeResponse struct {
	Success          bool           `json:"success"`
	AnalysisID       string         `json:"analysis_id,omitempty"`
	ProfilesAnalyzed int            `json:"profiles_analyzed"`
	Recommendations  *RankingReport `json:"recommendations"`
}

// ProfilesResponse is the GET /profiles response body.
type ProfilesResponse struct {
	Success       bool      `json:"success"`
	TotalProfiles int       `json:"total_profiles"`
	Profiles      []Profile `json:"profiles"`
}

// ReloadResponse is the POST /reload response body.
type ReloadResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TotalProfiles int    `json:"total_profiles"`
}

// ExportCandidate is one flattened candidate row in the export document.
type ExportCandidate struct {
	DotID           string        `json:"dot_id"`
	Rank            int           `json:"rank"`
	Score           float64       `json:"score"`
	MatchPercentage string        `json:"match_percentage"`
	FinalVerdict    string        `json:"final_verdict,omitempty"`
	VerifiedSkills  []string      `json:"verified_skills"`
	SkillsRejected  []string      `json:"skills_rejected"`
	CandidateMeta   CandidateMeta `json:"candidate_meta"`
	Recommendation  string        `json:"recommendation"`
	ComponentScores ScoreDetail   `json:"component_scores"`
}

// ExportDocument is the GET /export response body.
type ExportDocument struct {
	Timestamp             string            `json:"timestamp"`
	JobAnalysis           JobAnalysis       `json:"job_analysis"`
	TotalProfilesAnalyzed int               `json:"total_profiles_analyzed"`
	Candidates            []ExportCandidate `json:"candidates"`
}

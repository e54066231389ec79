package models

// Profile is a single candidate's aggregated assessment data ("DOT profile").
// Profiles are loaded from the profile store and never mutated by the
// scoring engine. Absent rounds are represented as nil pointers; the scorers
// treat absence as a neutral signal, not an error.
type Profile struct {
	DotID                string                `json:"dot_id"`
	VerifiedSkills       []string              `json:"verified_skills"`
	SkillsRejected       []string              `json:"skills_rejected"`
	Rounds               *Rounds               `json:"rounds,omitempty"`
	CrossRoundValidation *CrossRoundValidation `json:"cross_round_validation,omitempty"`
	CandidateMeta        CandidateMeta         `json:"candidate_meta"`
	Notes                string                `json:"notes,omitempty"`
	FinalVerdict         string                `json:"final_verdict,omitempty"`
}

// Rounds holds the per-round assessment results for a profile.
type Rounds struct {
	Screening *ScreeningRound `json:"screening_round,omitempty"`
	Github    *GithubAnalysis `json:"github_analysis,omitempty"`
	DSACoding *DSACodingRound `json:"dsa_coding_round,omitempty"`
	Resume    *ResumeAnalysis `json:"resume_analysis,omitempty"`
}

// ScreeningRound carries the interview screening signals, each in [0,1].
type ScreeningRound struct {
	ProblemUnderstanding float64  `json:"problem_understanding"`
	CommunicationClarity float64  `json:"communication_clarity"`
	LogicalReasoning     float64  `json:"logical_reasoning"`
	RedFlags             []string `json:"red_flags,omitempty"`
}

// GithubAnalysis carries the code-repository analysis signals, each in [0,1].
type GithubAnalysis struct {
	OriginalityScore  float64 `json:"originality_score"`
	CodeQuality       float64 `json:"code_quality"`
	CommitConsistency float64 `json:"commit_consistency"`
}

// DSACodingRound carries the coding-test signals plus anti-cheat telemetry.
type DSACodingRound struct {
	ProblemSolvingScore     float64           `json:"problem_solving_score"`
	TimeComplexityAwareness float64           `json:"time_complexity_awareness"`
	EdgeCaseHandling        float64           `json:"edge_case_handling"`
	AntiCheatSignals        *AntiCheatSignals `json:"anti_cheat_signals,omitempty"`
}

// AntiCheatSignals is the coding round's fraud telemetry. KeystrokeVariance
// is a free-form flag ("normal", "suspicious", "very_low", "very_high").
type AntiCheatSignals struct {
	CopyPasteDetected bool   `json:"copy_paste_detected"`
	KeystrokeVariance string `json:"keystroke_variance,omitempty"`
}

// ResumeAnalysis carries the resume overclaim flags.
type ResumeAnalysis struct {
	OverclaimFlags []string `json:"overclaim_flags,omitempty"`
}

// CrossRoundValidation carries the cross-round trust signals, each in [0,1].
type CrossRoundValidation struct {
	TrustScore           float64 `json:"trust_score"`
	SkillClaimAlignment  float64 `json:"skill_claim_alignment"`
	ReasoningConsistency float64 `json:"reasoning_consistency"`
}

// CandidateMeta holds the candidate's descriptive fields.
type CandidateMeta struct {
	Name            string  `json:"name,omitempty"`
	Email           string  `json:"email,omitempty"`
	ExperienceYears float64 `json:"experience_years"`
	Location        string  `json:"location,omitempty"`
}

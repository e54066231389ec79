package models

// JobRequirement is the hiring specification submitted for a ranking run.
// TargetExperienceYears is a pointer so an omitted target can fall back to
// max(min_experience_years, 3.0) during scoring. Weights is kept untyped so
// the resolver can coerce (and reject) whatever the caller supplied.
type JobRequirement struct {
	RequiredSkills        []string       `json:"required_skills"`
	NiceToHaveSkills      []string       `json:"nice_to_have_skills"`
	MinExperienceYears    float64        `json:"min_experience_years"`
	TargetExperienceYears *float64       `json:"target_experience_years,omitempty"`
	PrimaryDomain         string         `json:"primary_domain,omitempty"`
	Weights               map[string]any `json:"weights,omitempty"`
}

// WeightSet is a resolved scoring-weight distribution. After resolution the
// six positive weights are non-negative and sum to 1.0 whenever their raw
// sum was positive; FraudPenalty is clamped to [0, 0.5] and sits outside
// the positive distribution (it scales the subtractive term).
type WeightSet struct {
	Skills       float64 `json:"skills"`
	Experience   float64 `json:"experience"`
	Screening    float64 `json:"screening"`
	Github       float64 `json:"github"`
	Coding       float64 `json:"coding"`
	Trust        float64 `json:"trust"`
	FraudPenalty float64 `json:"fraud_penalty"`
}

// DefaultWeights returns the weight distribution used when the job
// requirement carries no overrides.
func DefaultWeights() WeightSet {
	return WeightSet{
		Skills:       0.30,
		Experience:   0.15,
		Screening:    0.15,
		Github:       0.15,
		Coding:       0.15,
		Trust:        0.10,
		FraudPenalty: 0.10,
	}
}

package models

// Summary is the hiring-manager readout generated from a finished response.
// Regenerable: the same input may yield different prose, but the shape is
// always valid (arrays never null, one_liner never empty).
type Summary struct {
	CandidateName       string   `json:"candidate_name"`
	OneLiner            string   `json:"one_liner"`
	Strengths           []string `json:"strengths"`
	Risks               []string `json:"risks"`
	RecommendedNextStep string   `json:"recommended_next_step"`
	StrengthChips       []string `json:"strength_chips"`
}

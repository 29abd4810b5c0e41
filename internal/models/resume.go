package models

// ResumeProfile is the structured record extracted from an uploaded resume.
// It is produced once per document by the extraction step and treated as
// opaque input by the follow-up controller, which only reads work
// experience highlights, projects, and skills to build anchor candidates.
type ResumeProfile struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`

	WorkExperience []WorkExperience `json:"work_experience,omitempty"`
	Skills         []string         `json:"skills,omitempty"`
	Education      []Education      `json:"education,omitempty"`

	YearsExperience *float64  `json:"years_experience,omitempty"`
	Projects        []Project `json:"projects,omitempty"`
}

type WorkExperience struct {
	Company     string   `json:"company"`
	Role        string   `json:"role"`
	Duration    string   `json:"duration,omitempty"`
	Description string   `json:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
}

type Education struct {
	School string `json:"school,omitempty"`
	Degree string `json:"degree,omitempty"`
	Major  string `json:"major,omitempty"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// IsEmpty reports whether the profile carries no information at all.
// The resume-required gate treats an empty object the same as absent.
func (p *ResumeProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Name == "" &&
		p.Email == "" &&
		len(p.WorkExperience) == 0 &&
		len(p.Skills) == 0 &&
		len(p.Education) == 0 &&
		p.YearsExperience == nil &&
		len(p.Projects) == 0
}

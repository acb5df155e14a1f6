package models

// Scheme is a catalog entry for a single government benefit program.
// The catalog is defined at process start and never mutated, so Scheme
// values are safe to share across requests.
type Scheme struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Benefits    []string    `json:"benefits"`
	Documents   []string    `json:"documents"`
	ApplyLink   string      `json:"apply_link"`
	Eligibility Eligibility `json:"-"`
}

// Eligibility holds the per-attribute constraints a scheme imposes on a
// quiz submission. A nil bound or empty value set means the attribute is
// unconstrained and always passes.
type Eligibility struct {
	AgeMin     *int
	AgeMax     *int
	Gender     []string
	Occupation []string
	Category   []string
	Income     []string
	Area       []string
	HasLand    []string
	IsDisabled []string
}

// Display tags attached to evaluated schemes. The exact strings are part
// of the API contract.
const (
	MatchEligible = "Eligible"
	MatchFallback = "May be eligible - Check details"
)

// SchemeResult is a Scheme prepared for an API response: the eligibility
// rules are stripped and a display tag is attached.
type SchemeResult struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	Description      string   `json:"description"`
	Benefits         []string `json:"benefits"`
	Documents        []string `json:"documents"`
	ApplyLink        string   `json:"apply_link"`
	EligibilityMatch string   `json:"eligibility_match,omitempty"`
}

// Result converts the scheme into its response form with the given tag.
func (s Scheme) Result(tag string) SchemeResult {
	return SchemeResult{
		ID:               s.ID,
		Name:             s.Name,
		Category:         s.Category,
		Description:      s.Description,
		Benefits:         s.Benefits,
		Documents:        s.Documents,
		ApplyLink:        s.ApplyLink,
		EligibilityMatch: tag,
	}
}

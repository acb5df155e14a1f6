// Package catalog holds the fixed set of benefit schemes the service
// matches against. The set is tiny and changes only with a deploy, so it
// lives in memory for the process lifetime and is never read from the
// database. This is not a cache: there is no upstream source of truth to
// invalidate from.
package catalog

import "scheme-matcher/internal/models"

// Catalog exposes read-only access to the scheme list in definition order.
type Catalog struct {
	schemes []models.Scheme
	byID    map[string]models.Scheme
}

// New builds the catalog from the built-in scheme definitions.
func New() *Catalog {
	schemes := defaultSchemes()
	byID := make(map[string]models.Scheme, len(schemes))
	for _, s := range schemes {
		byID[s.ID] = s
	}
	return &Catalog{
		schemes: schemes,
		byID:    byID,
	}
}

// List returns all schemes in definition order. Callers must not mutate
// the returned slice.
func (c *Catalog) List() []models.Scheme {
	return c.schemes
}

// Get returns the scheme with the given id.
func (c *Catalog) Get(id string) (models.Scheme, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Size returns the number of schemes in the catalog.
func (c *Catalog) Size() int {
	return len(c.schemes)
}

func intPtr(v int) *int { return &v }

func defaultSchemes() []models.Scheme {
	return []models.Scheme{
		{
			ID:          "scheme_1",
			Name:        "PM Scholarship Scheme",
			Category:    "Education",
			Description: "Scholarship for students from defense background",
			Benefits:    []string{"₹2,500/month for boys", "₹3,000/month for girls", "Valid for professional courses"},
			Documents:   []string{"Aadhaar Card", "Income Certificate", "Previous Marksheet", "Bank Passbook"},
			ApplyLink:   "https://scholarships.gov.in",
			Eligibility: models.Eligibility{
				AgeMin:     intPtr(18),
				AgeMax:     intPtr(25),
				Occupation: []string{"Student"},
				Income:     []string{"Below ₹1,00,000", "₹1,00,000 – ₹3,00,000"},
			},
		},
		{
			ID:          "scheme_2",
			Name:        "Post Matric Scholarship (SC/ST/OBC)",
			Category:    "Education",
			Description: "Post-matric scholarship for SC/ST/OBC students",
			Benefits:    []string{"Full tuition fee reimbursement", "Monthly maintenance allowance", "Book allowance"},
			Documents:   []string{"Caste Certificate", "Income Certificate", "Aadhaar", "Fee Receipt"},
			ApplyLink:   "https://scholarships.gov.in",
			Eligibility: models.Eligibility{
				AgeMin:     intPtr(16),
				AgeMax:     intPtr(30),
				Occupation: []string{"Student"},
				Category:   []string{"SC", "ST", "OBC"},
				Income:     []string{"Below ₹1,00,000", "₹1,00,000 – ₹3,00,000", "₹3,00,000 – ₹8,00,000"},
			},
		},
		{
			ID:          "scheme_3",
			Name:        "PM-KISAN",
			Category:    "Agriculture",
			Description: "Income support to all farmer families",
			Benefits:    []string{"₹6,000 per year in three installments", "Direct benefit transfer to bank"},
			Documents:   []string{"Aadhaar", "Land Records", "Bank Account Details"},
			ApplyLink:   "https://pmkisan.gov.in",
			Eligibility: models.Eligibility{
				Occupation: []string{"Farmer"},
				HasLand:    []string{"Yes"},
			},
		},
		{
			ID:          "scheme_4",
			Name:        "Ayushman Bharat (PM-JAY)",
			Category:    "Health",
			Description: "Health insurance coverage up to ₹5 lakh per family per year",
			Benefits:    []string{"Cashless treatment", "Coverage for secondary and tertiary care", "Free medicines"},
			Documents:   []string{"Aadhaar", "Ration Card", "Income Proof"},
			ApplyLink:   "https://pmjay.gov.in",
			Eligibility: models.Eligibility{
				Income: []string{"Below ₹1,00,000", "₹1,00,000 – ₹3,00,000"},
			},
		},
		{
			ID:          "scheme_5",
			Name:        "Indira Gandhi National Old Age Pension",
			Category:    "Pension",
			Description: "Monthly pension for senior citizens",
			Benefits:    []string{"₹200-500 per month based on age", "Direct bank transfer"},
			Documents:   []string{"Age Proof", "Aadhaar", "Income Certificate"},
			ApplyLink:   "https://nsap.nic.in",
			Eligibility: models.Eligibility{
				AgeMin: intPtr(60),
				Income: []string{"Below ₹1,00,000"},
			},
		},
		{
			ID:          "scheme_6",
			Name:        "PM Matru Vandana Yojana",
			Category:    "Women",
			Description: "Maternity benefit for pregnant and lactating mothers",
			Benefits:    []string{"₹5,000 cash benefit", "Nutritional support", "Health check-ups"},
			Documents:   []string{"Aadhaar", "Pregnancy Certificate", "Bank Details"},
			ApplyLink:   "https://pmmvy.wcd.gov.in",
			Eligibility: models.Eligibility{
				Gender: []string{"Female"},
				AgeMin: intPtr(18),
				AgeMax: intPtr(45),
			},
		},
		{
			ID:          "scheme_7",
			Name:        "MUDRA Loan Scheme",
			Category:    "Employment",
			Description: "Loans up to ₹10 lakh for small businesses",
			Benefits:    []string{"No collateral required", "Low interest rates", "Easy repayment terms"},
			Documents:   []string{"Aadhaar", "Business Plan", "Bank Statement"},
			ApplyLink:   "https://mudra.org.in",
			Eligibility: models.Eligibility{
				Occupation: []string{"Self-employed", "Unemployed"},
			},
		},
		{
			ID:          "scheme_8",
			Name:        "PM Awas Yojana (Urban)",
			Category:    "Housing",
			Description: "Affordable housing for urban poor",
			Benefits:    []string{"Interest subsidy on home loans", "Direct assistance for construction"},
			Documents:   []string{"Aadhaar", "Income Certificate", "Property Documents"},
			ApplyLink:   "https://pmaymis.gov.in",
			Eligibility: models.Eligibility{
				Area:   []string{"Urban"},
				Income: []string{"Below ₹1,00,000", "₹1,00,000 – ₹3,00,000", "₹3,00,000 – ₹8,00,000"},
			},
		},
		{
			ID:          "scheme_9",
			Name:        "AICTE Pragati Scholarship (Girls)",
			Category:    "Education",
			Description: "Scholarship for girl students in technical education",
			Benefits:    []string{"₹50,000 per year", "For diploma/degree courses"},
			Documents:   []string{"Aadhaar", "Admission Proof", "Income Certificate", "Bank Details"},
			ApplyLink:   "https://scholarships.gov.in",
			Eligibility: models.Eligibility{
				Gender:     []string{"Female"},
				Occupation: []string{"Student"},
				AgeMin:     intPtr(17),
				AgeMax:     intPtr(25),
				Income:     []string{"Below ₹1,00,000", "₹1,00,000 – ₹3,00,000", "₹3,00,000 – ₹8,00,000"},
			},
		},
		{
			ID:          "scheme_10",
			Name:        "AICTE Saksham Scholarship (Divyang)",
			Category:    "Education",
			Description: "Scholarship for differently-abled students",
			Benefits:    []string{"₹50,000 per year", "For technical courses", "Special support"},
			Documents:   []string{"Disability Certificate", "Aadhaar", "Income Certificate", "College Admission Proof"},
			ApplyLink:   "https://scholarships.gov.in",
			Eligibility: models.Eligibility{
				IsDisabled: []string{"Yes"},
				Occupation: []string{"Student"},
				AgeMin:     intPtr(17),
				AgeMax:     intPtr(30),
			},
		},
	}
}

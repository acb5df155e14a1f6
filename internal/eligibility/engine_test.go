package eligibility

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scheme-matcher/internal/catalog"
	"scheme-matcher/internal/models"
)

func newEngine() *Engine {
	return NewEngine(catalog.New())
}

func resultIDs(results []models.SchemeResult) []string {
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestEvaluateYoungFemaleOBCStudent(t *testing.T) {
	engine := newEngine()

	quiz := models.QuizSubmission{
		Age:        22,
		Gender:     "Female",
		State:      "Karnataka",
		Area:       "Urban",
		Income:     "₹1,00,000 – ₹3,00,000",
		Occupation: "Student",
		Education:  "Undergraduate",
		Category:   "OBC",
		HasLand:    "No",
		IsDisabled: "No",
	}

	eligible, fallback := engine.Evaluate(quiz)

	ids := resultIDs(eligible)
	require.Contains(t, ids, "scheme_2", "post matric scholarship matches an OBC student")
	require.Contains(t, ids, "scheme_9", "Pragati scholarship matches a female student aged 22")
	require.NotContains(t, ids, "scheme_3", "PM-KISAN requires occupation Farmer")

	// More than enough exact matches, so no fallback suggestions.
	require.GreaterOrEqual(t, len(eligible), 3)
	require.Empty(t, fallback)

	for _, r := range eligible {
		require.Equal(t, models.MatchEligible, r.EligibilityMatch)
	}
}

func TestEvaluateSeniorLowIncome(t *testing.T) {
	engine := newEngine()

	quiz := models.QuizSubmission{
		Age:    70,
		Income: "Below ₹1,00,000",
	}

	eligible, fallback := engine.Evaluate(quiz)

	require.Contains(t, resultIDs(eligible), "scheme_5", "old age pension matches age 70 with low income")

	// Fewer than three exact matches triggers backfill.
	require.Less(t, len(eligible), 3)
	require.Len(t, fallback, 3)
	for _, r := range fallback {
		require.Equal(t, models.MatchFallback, r.EligibilityMatch)
		require.NotContains(t, resultIDs(eligible), r.ID)
	}
}

func TestEvaluateNoExactMatchBackfillsInCatalogOrder(t *testing.T) {
	engine := newEngine()

	// Nothing in the catalog accepts these values.
	quiz := models.QuizSubmission{
		Age:        10,
		Gender:     "Other",
		Occupation: "Retired",
		Income:     "Above ₹8,00,000",
		Area:       "Rural",
		HasLand:    "No",
		IsDisabled: "No",
		Category:   "General",
	}

	eligible, fallback := engine.Evaluate(quiz)

	require.Empty(t, eligible)
	require.Equal(t, []string{"scheme_1", "scheme_2", "scheme_3"}, resultIDs(fallback))
}

func TestEvaluateOrderAndBounds(t *testing.T) {
	engine := newEngine()
	cat := catalog.New()

	quiz := models.QuizSubmission{
		Age:        22,
		Gender:     "Female",
		Area:       "Urban",
		Income:     "₹1,00,000 – ₹3,00,000",
		Occupation: "Student",
		Category:   "OBC",
		HasLand:    "No",
		IsDisabled: "No",
	}

	eligible, fallback := engine.Evaluate(quiz)

	require.LessOrEqual(t, len(eligible)+len(fallback), cat.Size())

	// Eligible results preserve catalog order.
	position := map[string]int{}
	for i, s := range cat.List() {
		position[s.ID] = i
	}
	for i := 1; i < len(eligible); i++ {
		require.Less(t, position[eligible[i-1].ID], position[eligible[i].ID])
	}
}

func TestAgeBoundsAreInclusive(t *testing.T) {
	engine := newEngine()

	// scheme_1 accepts students aged 18 through 25 inclusive.
	base := models.QuizSubmission{
		Occupation: "Student",
		Income:     "Below ₹1,00,000",
	}

	for _, age := range []int{18, 25} {
		quiz := base
		quiz.Age = age
		eligible, _ := engine.Evaluate(quiz)
		require.Contains(t, resultIDs(eligible), "scheme_1", "age %d is within bounds", age)
	}

	for _, age := range []int{17, 26} {
		quiz := base
		quiz.Age = age
		eligible, _ := engine.Evaluate(quiz)
		require.NotContains(t, resultIDs(eligible), "scheme_1", "age %d is out of bounds", age)
	}
}

func TestUnconstrainedAttributePasses(t *testing.T) {
	require.True(t, accepts(nil, "anything"))
	require.True(t, accepts([]string{}, ""))
	require.True(t, accepts([]string{"Yes", "No"}, "No"))
	require.False(t, accepts([]string{"Yes"}, "no"), "matching is case sensitive")
}

// Package eligibility evaluates quiz submissions against the scheme
// catalog. Evaluation is a single pass over the catalog in definition
// order; there is no scoring or ranking beyond the eligible/fallback
// split.
package eligibility

import (
	"scheme-matcher/internal/catalog"
	"scheme-matcher/internal/models"
)

// fallbackTarget is the minimum number of suggestions a user should walk
// away with. When fewer schemes match exactly, non-matching schemes are
// surfaced as "may be eligible" until this many fallbacks are collected.
const fallbackTarget = 3

// Engine matches quiz submissions against a fixed catalog.
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine creates an engine bound to the given catalog.
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{catalog: cat}
}

// Evaluate returns the schemes the submission fully satisfies and, when
// fewer than fallbackTarget match, a best-effort fallback list drawn from
// the remaining schemes in catalog order. Both lists preserve catalog
// definition order and carry display tags instead of eligibility rules.
func (e *Engine) Evaluate(quiz models.QuizSubmission) (eligible, fallback []models.SchemeResult) {
	eligible = make([]models.SchemeResult, 0, e.catalog.Size())
	matched := make(map[string]bool, e.catalog.Size())

	for _, scheme := range e.catalog.List() {
		if satisfies(quiz, scheme.Eligibility) {
			eligible = append(eligible, scheme.Result(models.MatchEligible))
			matched[scheme.ID] = true
		}
	}

	fallback = make([]models.SchemeResult, 0, fallbackTarget)
	if len(eligible) < fallbackTarget {
		for _, scheme := range e.catalog.List() {
			if matched[scheme.ID] {
				continue
			}
			fallback = append(fallback, scheme.Result(models.MatchFallback))
			if len(fallback) >= fallbackTarget {
				break
			}
		}
	}

	return eligible, fallback
}

// satisfies reports whether every constrained attribute passes. Age
// bounds are inclusive; string attributes require exact membership in the
// accepted-value set. An absent constraint always passes.
func satisfies(quiz models.QuizSubmission, rules models.Eligibility) bool {
	if rules.AgeMin != nil && quiz.Age < *rules.AgeMin {
		return false
	}
	if rules.AgeMax != nil && quiz.Age > *rules.AgeMax {
		return false
	}
	if !accepts(rules.Gender, quiz.Gender) {
		return false
	}
	if !accepts(rules.Occupation, quiz.Occupation) {
		return false
	}
	if !accepts(rules.Category, quiz.Category) {
		return false
	}
	if !accepts(rules.Income, quiz.Income) {
		return false
	}
	if !accepts(rules.Area, quiz.Area) {
		return false
	}
	if !accepts(rules.HasLand, quiz.HasLand) {
		return false
	}
	if !accepts(rules.IsDisabled, quiz.IsDisabled) {
		return false
	}
	return true
}

func accepts(allowed []string, value string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}

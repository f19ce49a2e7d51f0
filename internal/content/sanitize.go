package content

import (
	"strings"

	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/internal/product"
)

// Sanitizers repair model output where possible and drop entries that
// cannot be repaired. Padders top up short lists from the template
// generators, preserving the model entries first and in order.

// SanitizeQuestions normalizes categories, clamps priorities to the
// 1-5 range, and drops questions with empty text.
func SanitizeQuestions(qs []Question) []Question {
	out := make([]Question, 0, len(qs))
	for _, q := range qs {
		q.Question = strings.TrimSpace(q.Question)
		if q.Question == "" {
			continue
		}
		q.Category = NormalizeCategory(q.Category)
		if q.Priority < 1 {
			q.Priority = 1
		} else if q.Priority > 5 {
			q.Priority = 5
		}
		out = append(out, q)
	}
	return out
}

// PadQuestions tops up qs to at least MinQuestions using the template
// set, skipping templated questions that duplicate existing text.
func PadQuestions(qs []Question, rec product.Record) []Question {
	if len(qs) >= MinQuestions {
		return qs
	}
	seen := make(map[string]bool, len(qs))
	for _, q := range qs {
		seen[strings.ToLower(q.Question)] = true
	}
	pool := append(FallbackQuestions(rec), extraQuestions(rec)...)
	for _, q := range pool {
		if len(qs) >= MinQuestions {
			break
		}
		key := strings.ToLower(q.Question)
		if seen[key] {
			continue
		}
		seen[key] = true
		qs = append(qs, q)
	}
	return qs
}

// SanitizeFAQ normalizes categories and drops items missing a question
// or an answer.
func SanitizeFAQ(items []FAQItem) []FAQItem {
	out := make([]FAQItem, 0, len(items))
	for _, item := range items {
		item.Question = strings.TrimSpace(item.Question)
		item.Answer = strings.TrimSpace(item.Answer)
		if item.Question == "" || item.Answer == "" {
			continue
		}
		item.Category = NormalizeCategory(item.Category)
		if len(item.Tags) == 0 {
			item.Tags = []string{"general"}
		}
		out = append(out, item)
	}
	return out
}

// PadFAQ tops up items to at least MinFAQItems using the template set,
// skipping templated items whose question duplicates an existing one.
func PadFAQ(items []FAQItem, rec product.Record) []FAQItem {
	if len(items) >= MinFAQItems {
		return items
	}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		seen[strings.ToLower(item.Question)] = true
	}
	for _, item := range FallbackFAQ(rec) {
		if len(items) >= MinFAQItems {
			break
		}
		key := strings.ToLower(item.Question)
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, item)
	}
	return items
}

// SanitizeComparisonPoints drops points missing an aspect or either
// product entry.
func SanitizeComparisonPoints(points []ComparisonPoint) []ComparisonPoint {
	out := make([]ComparisonPoint, 0, len(points))
	for _, p := range points {
		p.Aspect = strings.TrimSpace(p.Aspect)
		if p.Aspect == "" || strings.TrimSpace(p.ProductA) == "" || strings.TrimSpace(p.ProductB) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// PadComparisonPoints tops up points to at least MinComparisonPoints
// from the template comparison, skipping duplicate aspects.
func PadComparisonPoints(points []ComparisonPoint, a, b product.Record) []ComparisonPoint {
	if len(points) >= MinComparisonPoints {
		return points
	}
	seen := make(map[string]bool, len(points))
	for _, p := range points {
		seen[strings.ToLower(p.Aspect)] = true
	}
	for _, p := range FallbackComparison(a, b).ComparisonPoints {
		if len(points) >= MinComparisonPoints {
			break
		}
		key := strings.ToLower(p.Aspect)
		if seen[key] {
			continue
		}
		seen[key] = true
		points = append(points, p)
	}
	return points
}

// FAQCategories returns the distinct categories present in items, in
// first-appearance order.
func FAQCategories(items []FAQItem) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range items {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	return out
}

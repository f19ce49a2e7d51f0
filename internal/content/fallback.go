package content

import (
	"fmt"
	"strings"

	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/internal/product"
)

// Template generators used when model output is unavailable or
// unusable. They are fully deterministic: the same record always yields
// the same content, so tests and repeated runs are reproducible.

// FallbackQuestions returns the templated question set for a product.
// Always returns exactly MinQuestions questions.
func FallbackQuestions(rec product.Record) []Question {
	name := rec.Name
	return []Question{
		{Question: fmt.Sprintf("What is %s?", name), Category: CategoryInformational, Priority: 1},
		{Question: fmt.Sprintf("How do I use %s?", name), Category: CategoryUsage, Priority: 1},
		{Question: fmt.Sprintf("Are there any side effects of %s?", name), Category: CategorySafety, Priority: 1},
		{Question: fmt.Sprintf("Who should use %s?", name), Category: CategorySafety, Priority: 2},
		{Question: fmt.Sprintf("Can I use %s with other skincare products?", name), Category: CategoryUsage, Priority: 2},
		{Question: fmt.Sprintf("How long does it take to see results with %s?", name), Category: CategoryEffectiveness, Priority: 2},
		{Question: fmt.Sprintf("What are the key ingredients in %s?", name), Category: CategoryIngredient, Priority: 1},
		{Question: fmt.Sprintf("Is %s worth the price?", name), Category: CategoryPurchase, Priority: 3},
		{Question: fmt.Sprintf("Where can I buy %s?", name), Category: CategoryPurchase, Priority: 3},
		{Question: fmt.Sprintf("How does %s compare to similar products?", name), Category: CategoryComparison, Priority: 2},
		{Question: fmt.Sprintf("Can %s help with dark spots?", name), Category: CategoryEffectiveness, Priority: 2},
		{Question: fmt.Sprintf("Is %s suitable for sensitive skin?", name), Category: CategorySafety, Priority: 2},
		{Question: fmt.Sprintf("When is the best time to use %s?", name), Category: CategoryUsage, Priority: 3},
		{Question: fmt.Sprintf("How should I store %s?", name), Category: CategoryUsage, Priority: 4},
		{Question: fmt.Sprintf("What makes %s different from other serums?", name), Category: CategoryComparison, Priority: 3},
	}
}

// extraQuestions supplies additional questions for padding past the
// fallback set.
func extraQuestions(rec product.Record) []Question {
	name := rec.Name
	return []Question{
		{Question: fmt.Sprintf("What is the concentration of active ingredients in %s?", name), Category: CategoryInformational, Priority: 4},
		{Question: fmt.Sprintf("Can %s be used during pregnancy?", name), Category: CategorySafety, Priority: 4},
		{Question: fmt.Sprintf("Does %s expire?", name), Category: CategorySafety, Priority: 4},
		{Question: "How much product should I use per application?", Category: CategoryUsage, Priority: 3},
		{Question: fmt.Sprintf("Are there any ingredients in %s that might cause allergies?", name), Category: CategorySafety, Priority: 3},
	}
}

// fallbackFAQQuestions are the canonical FAQ questions, paired by index
// with their categories and tags.
var fallbackFAQQuestions = []struct {
	question string
	category string
	tag      string
}{
	{"What is this product and what does it do?", CategoryInformational, "introduction"},
	{"How do I use this product?", CategoryUsage, "usage"},
	{"Are there any side effects or precautions?", CategorySafety, "safety"},
	{"Who should use this product?", CategorySafety, "suitability"},
	{"How long does it take to see results?", CategoryEffectiveness, "results"},
}

// FallbackFAQ returns the templated FAQ set for a product.
// Always returns exactly MinFAQItems items.
func FallbackFAQ(rec product.Record) []FAQItem {
	items := make([]FAQItem, 0, len(fallbackFAQQuestions))
	for _, q := range fallbackFAQQuestions {
		items = append(items, FAQItem{
			Question: q.question,
			Answer:   AnswerFor(q.question, rec),
			Category: q.category,
			Tags:     []string{q.tag},
		})
	}
	return items
}

// AnswerFor produces a templated answer for a question from record facts.
// Matching is keyed on question phrasing; unmatched questions get the
// generic results answer.
func AnswerFor(question string, rec product.Record) string {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "what is"):
		return fmt.Sprintf("%s is a skincare serum containing %s. It helps with %s.",
			rec.Name, joinFirst(rec.KeyIngredients, 2), strings.ToLower(joinFirst(rec.Benefits, 2)))
	case strings.Contains(q, "how do i use"):
		return fmt.Sprintf("%s. For best results, use consistently as part of your daily skincare routine.", rec.HowToUse)
	case strings.Contains(q, "side effects"):
		return fmt.Sprintf("%s. Always patch test before first use. Discontinue if irritation persists.", rec.SideEffects)
	case strings.Contains(q, "who should use"):
		return fmt.Sprintf("This product is suitable for %s skin. Those with specific conditions should consult a dermatologist.",
			strings.ToLower(strings.Join(rec.SkinType, " and ")))
	default:
		return "With regular use, visible improvements can typically be seen within 2-4 weeks, though individual results may vary."
	}
}

// FallbackProductPage returns the templated product page for a record.
func FallbackProductPage(rec product.Record) ProductPage {
	benefits := make([]BenefitDetail, 0, 3)
	for _, b := range firstN(rec.Benefits, 3) {
		benefits = append(benefits, BenefitDetail{
			Benefit:         b,
			Description:     fmt.Sprintf("Helps improve %s through advanced formulation", strings.ToLower(b)),
			ScientificBasis: "Clinically studied ingredients with proven efficacy",
		})
	}

	ingredients := make([]IngredientDetail, 0, 3)
	for _, ing := range firstN(rec.KeyIngredients, 3) {
		ingredients = append(ingredients, IngredientDetail{
			Ingredient: ing,
			Purpose:    "Key active ingredient",
			Benefits:   []string{"Antioxidant protection", "Skin rejuvenation"},
		})
	}

	return ProductPage{
		Title: rec.Name,
		MetaDescription: fmt.Sprintf("%s for %s skin. Provides %s.",
			rec.Name, strings.ToLower(strings.Join(rec.SkinType, " and ")), strings.ToLower(strings.Join(rec.Benefits, ", "))),
		HeroSection: HeroSection{
			Headline:    rec.Name,
			Subheadline: fmt.Sprintf("Professional %s serum for %s skin", rec.Concentration, strings.ToLower(strings.Join(rec.SkinType, " and "))),
			KeyPoints:   append([]string(nil), rec.Benefits...),
		},
		BenefitsSection:    benefits,
		IngredientsSection: ingredients,
		UsageSection: UsageSection{
			Instructions:  rec.HowToUse,
			Frequency:     "Once daily, preferably in the morning",
			BestPractices: []string{"Patch test first", "Apply before sunscreen", "Use consistently"},
		},
		SafetySection: SafetySection{
			SideEffects:       rec.SideEffects,
			Precautions:       "Avoid if allergic to any ingredients",
			Contraindications: "Not for broken or irritated skin",
		},
		PricingSection: PricingSection{
			Price:            rec.Price,
			ValueProposition: "Professional-grade results at an accessible price",
			ComparisonValue:  "More affordable than clinical treatments",
		},
		CTASection: CTASection{
			PrimaryCTA:     "Buy Now",
			SecondaryCTA:   "Learn More",
			UrgencyMessage: "Limited stock available",
		},
	}
}

// FallbackFictionalProduct invents the comparison counterpart.
// Vitamin C mains get a niacinamide serum; everything else gets a
// retinol complex, so the contrast is always meaningful.
func FallbackFictionalProduct(main product.Record) product.Record {
	if strings.Contains(strings.ToLower(main.Name), "vitamin c") {
		return product.Record{
			Name:           "RadiantGlow Niacinamide 10% Serum",
			Concentration:  "10% Niacinamide + 1% Zinc",
			SkinType:       []string{"All Skin Types", "Sensitive", "Acne-Prone"},
			KeyIngredients: []string{"Niacinamide", "Zinc PCA", "Green Tea Extract", "Panthenol"},
			Benefits:       []string{"Reduces Redness", "Minimizes Pores", "Controls Oil", "Strengthens Barrier"},
			HowToUse:       "Apply 3-4 drops to clean face morning and/or night. Follow with moisturizer.",
			SideEffects:    "Rare mild irritation. Discontinue if persistent redness occurs.",
			Price:          "₹899",
		}
	}
	return product.Record{
		Name:           "LuxeRepair Retinol Complex",
		Concentration:  "0.3% Retinol + Peptides",
		SkinType:       []string{"Normal", "Dry", "Aging"},
		KeyIngredients: []string{"Retinol", "Matrixyl 3000", "Niacinamide", "Ceramides"},
		Benefits:       []string{"Reduces Wrinkles", "Improves Texture", "Boosts Collagen", "Even Tone"},
		HowToUse:       "Apply pea-sized amount 2-3 times per week in the evening. Always use sunscreen during day.",
		SideEffects:    "Possible dryness, peeling, or irritation during initial use.",
		Price:          "₹1,499",
	}
}

// FallbackComparison returns the templated comparison page for the two
// products. Always includes 5 comparison points.
func FallbackComparison(a, b product.Record) ComparisonPage {
	return ComparisonPage{
		Title: fmt.Sprintf("Comparison: %s vs %s", a.Name, b.Name),
		Products: []ComparisonProduct{
			{
				Name:           a.Name,
				Type:           productType(a),
				KeyIngredients: append([]string(nil), a.KeyIngredients...),
				Benefits:       append([]string(nil), a.Benefits...),
				BestFor:        strings.Join(a.SkinType, ", "),
				Price:          a.Price,
				Rating:         4.5,
			},
			{
				Name:           b.Name,
				Type:           productType(b),
				KeyIngredients: append([]string(nil), b.KeyIngredients...),
				Benefits:       append([]string(nil), b.Benefits...),
				BestFor:        strings.Join(b.SkinType, ", "),
				Price:          b.Price,
				Rating:         4.3,
			},
		},
		ComparisonPoints: []ComparisonPoint{
			{
				Aspect:      "Active Ingredients",
				ProductA:    fmt.Sprintf("%s for %s", a.Concentration, strings.ToLower(joinFirst(a.Benefits, 2))),
				ProductB:    fmt.Sprintf("%s for %s", b.Concentration, strings.ToLower(joinFirst(b.Benefits, 2))),
				Winner:      "Tie",
				Explanation: "Different ingredients for different concerns",
			},
			{
				Aspect:      "Skin Type Suitability",
				ProductA:    fmt.Sprintf("Best for %s skin", strings.ToLower(strings.Join(a.SkinType, " and "))),
				ProductB:    fmt.Sprintf("Best for %s skin", strings.ToLower(strings.Join(b.SkinType, " and "))),
				Winner:      "B",
				Explanation: "Product B is more universally suitable",
			},
			{
				Aspect:      "Primary Benefits",
				ProductA:    joinFirst(a.Benefits, 2),
				ProductB:    joinFirst(b.Benefits, 2),
				Winner:      "Depends",
				Explanation: "Choose based on your primary concern",
			},
			{
				Aspect:      "Price Value",
				ProductA:    fmt.Sprintf("%s for %s", a.Price, a.Concentration),
				ProductB:    fmt.Sprintf("%s for %s", b.Price, b.Concentration),
				Winner:      "A",
				Explanation: "Product A offers better value for money",
			},
			{
				Aspect:      "Side Effects & Safety",
				ProductA:    a.SideEffects,
				ProductB:    b.SideEffects,
				Winner:      "B",
				Explanation: "Product B is generally better tolerated",
			},
		},
		Summary: fmt.Sprintf("This comparison highlights two different approaches to skincare: %s focuses on %s, while %s emphasizes %s. "+
			"Both products are well-formulated and effective within their respective categories. The choice depends largely on individual skin concerns and type.",
			a.Name, strings.ToLower(joinFirst(a.Benefits, 2)), b.Name, strings.ToLower(joinFirst(b.Benefits, 2))),
		Recommendation: fmt.Sprintf("Choose %s if your primary concerns are %s and your skin is %s. "+
			"Choose %s if you prefer %s or have %s skin. "+
			"Some users alternate both products across their morning and evening routines.",
			a.Name, strings.ToLower(joinFirst(a.Benefits, 2)), strings.ToLower(strings.Join(a.SkinType, " or ")),
			b.Name, strings.ToLower(joinFirst(b.Benefits, 2)), strings.ToLower(strings.Join(b.SkinType, " or "))),
	}
}

// productType guesses a short product category label from the name.
func productType(rec product.Record) string {
	name := strings.ToLower(rec.Name)
	switch {
	case strings.Contains(name, "vitamin c"):
		return "Vitamin C Serum"
	case strings.Contains(name, "niacinamide"):
		return "Niacinamide Serum"
	case strings.Contains(name, "retinol"):
		return "Retinol Treatment"
	default:
		return "Skincare Serum"
	}
}

// firstN returns up to the first n items.
func firstN(items []string, n int) []string {
	if len(items) < n {
		n = len(items)
	}
	return items[:n]
}

// joinFirst joins up to n items with a comma.
func joinFirst(items []string, n int) string {
	if len(items) < n {
		n = len(items)
	}
	return strings.Join(items[:n], ", ")
}

// Package content defines the generated payload types, the prompt
// builders that request them, and the deterministic template generators
// used when model output is unavailable or unusable.
package content

// Question categories. Unknown categories normalize to CategoryInformational.
const (
	CategoryInformational = "informational"
	CategoryUsage         = "usage"
	CategorySafety        = "safety"
	CategoryEffectiveness = "effectiveness"
	CategoryIngredient    = "ingredient"
	CategoryPurchase      = "purchase"
	CategoryComparison    = "comparison"
)

// Categories lists the valid question categories.
var Categories = []string{
	CategoryInformational,
	CategoryUsage,
	CategorySafety,
	CategoryEffectiveness,
	CategoryIngredient,
	CategoryPurchase,
	CategoryComparison,
}

// MinQuestions is the minimum number of generated questions per run.
const MinQuestions = 15

// MinFAQItems is the minimum number of FAQ items per run.
const MinFAQItems = 5

// MinComparisonPoints is the minimum number of comparison aspects.
const MinComparisonPoints = 4

// Question is a single categorized consumer question about the product.
type Question struct {
	Question string `json:"question"`
	Category string `json:"category"`
	// Priority ranks importance, 1 (highest) through 5.
	Priority int `json:"priority"`
}

// FAQItem is an answered question.
type FAQItem struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// FAQPage is the faq.json artifact payload.
type FAQPage struct {
	PageType       string    `json:"page_type"`
	Product        string    `json:"product"`
	FAQItems       []FAQItem `json:"faq_items"`
	Categories     []string  `json:"categories"`
	TotalQuestions int       `json:"total_questions"`
}

// ProductPage is the product_page.json artifact payload.
type ProductPage struct {
	Title              string             `json:"title"`
	MetaDescription    string             `json:"meta_description"`
	HeroSection        HeroSection        `json:"hero_section"`
	BenefitsSection    []BenefitDetail    `json:"benefits_section"`
	IngredientsSection []IngredientDetail `json:"ingredients_section"`
	UsageSection       UsageSection       `json:"usage_section"`
	SafetySection      SafetySection      `json:"safety_section"`
	PricingSection     PricingSection     `json:"pricing_section"`
	CTASection         CTASection         `json:"cta_section"`
}

// HeroSection is the product page hero block.
type HeroSection struct {
	Headline    string   `json:"headline"`
	Subheadline string   `json:"subheadline"`
	KeyPoints   []string `json:"key_points"`
}

// BenefitDetail expands one product benefit.
type BenefitDetail struct {
	Benefit         string `json:"benefit"`
	Description     string `json:"description"`
	ScientificBasis string `json:"scientific_basis"`
}

// IngredientDetail explains one key ingredient.
type IngredientDetail struct {
	Ingredient string   `json:"ingredient"`
	Purpose    string   `json:"purpose"`
	Benefits   []string `json:"benefits"`
}

// UsageSection gives usage instructions.
type UsageSection struct {
	Instructions  string   `json:"instructions"`
	Frequency     string   `json:"frequency"`
	BestPractices []string `json:"best_practices"`
}

// SafetySection lists safety information.
type SafetySection struct {
	SideEffects       string `json:"side_effects"`
	Precautions       string `json:"precautions"`
	Contraindications string `json:"contraindications"`
}

// PricingSection frames the price.
type PricingSection struct {
	Price            string `json:"price"`
	ValueProposition string `json:"value_proposition"`
	ComparisonValue  string `json:"comparison_value"`
}

// CTASection holds the calls to action.
type CTASection struct {
	PrimaryCTA     string `json:"primary_cta"`
	SecondaryCTA   string `json:"secondary_cta"`
	UrgencyMessage string `json:"urgency_message"`
}

// ComparisonPage is the comparison_page.json artifact payload.
type ComparisonPage struct {
	Title            string              `json:"title"`
	Products         []ComparisonProduct `json:"products"`
	ComparisonPoints []ComparisonPoint   `json:"comparison_points"`
	Summary          string              `json:"summary"`
	Recommendation   string              `json:"recommendation"`
}

// ComparisonProduct summarizes one side of the comparison.
type ComparisonProduct struct {
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	KeyIngredients []string `json:"key_ingredients"`
	Benefits       []string `json:"benefits"`
	BestFor        string   `json:"best_for"`
	Price          string   `json:"price"`
	Rating         float64  `json:"rating"`
}

// ComparisonPoint compares one aspect of the two products.
type ComparisonPoint struct {
	Aspect      string `json:"aspect"`
	ProductA    string `json:"product_a"`
	ProductB    string `json:"product_b"`
	Winner      string `json:"winner"`
	Explanation string `json:"explanation,omitempty"`
}

// NormalizeCategory maps arbitrary category strings onto the known set.
// Unknown or empty values become CategoryInformational.
func NormalizeCategory(c string) string {
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return CategoryInformational
}

package content

import (
	"fmt"
	"strings"

	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/internal/product"
)

// Prompt builders are pure functions of their inputs: the same record
// and upstream results always produce the same prompt text.

// productFacts renders the record as the fact block shared by most prompts.
func productFacts(rec product.Record) string {
	return fmt.Sprintf(`Name: %s
Concentration: %s
Skin Type: %s
Key Ingredients: %s
Benefits: %s
How to Use: %s
Side Effects: %s
Price: %s`,
		rec.Name,
		rec.Concentration,
		strings.Join(rec.SkinType, ", "),
		strings.Join(rec.KeyIngredients, ", "),
		strings.Join(rec.Benefits, ", "),
		rec.HowToUse,
		rec.SideEffects,
		rec.Price,
	)
}

// QuestionsSystemPrompt is the system instruction for question generation.
func QuestionsSystemPrompt() string {
	return fmt.Sprintf(`You are a skincare expert and market researcher.
Generate exactly %d categorized questions about the given skincare product.

Guidelines:
1. Questions must be based ONLY on the provided product data
2. Distribute questions across these categories: %s
3. Each question should be specific and relevant to the product
4. Include questions about ingredients, usage, safety, and effectiveness
5. Do NOT invent new facts beyond the provided data

Output format: a JSON array of objects with "question", "category", and "priority" (1-5) fields.`,
		MinQuestions, strings.Join(Categories, ", "))
}

// QuestionsPrompt builds the user prompt for question generation.
func QuestionsPrompt(rec product.Record) string {
	return fmt.Sprintf("Product Data:\n%s\n\nGenerate %d categorized questions.", productFacts(rec), MinQuestions)
}

// FAQSystemPrompt is the system instruction for FAQ answering.
func FAQSystemPrompt() string {
	return `You are a skincare expert creating FAQ content.
For each question, provide a helpful, accurate answer using ONLY the product data.

Guidelines:
1. Answers must be factual and based ONLY on provided data
2. Keep answers concise (2-3 sentences)
3. Address the specific question directly
4. Do NOT add new information or claims
5. Include relevant details from product data

Output format: a JSON array of objects with "question", "answer", "category", and "tags" fields.`
}

// FAQPrompt builds the user prompt for FAQ generation from upstream questions.
func FAQPrompt(rec product.Record, questions []Question) string {
	var sb strings.Builder
	sb.WriteString("Product Context:\n")
	sb.WriteString(productFacts(rec))
	sb.WriteString("\n\nQuestions to Answer:\n")
	for i, q := range questions {
		fmt.Fprintf(&sb, "%d. [%s] %s\n", i+1, q.Category, q.Question)
	}
	sb.WriteString("\nGenerate helpful FAQ answers.")
	return sb.String()
}

// ProductPageSystemPrompt is the system instruction for page copywriting.
func ProductPageSystemPrompt() string {
	return `You are a professional skincare copywriter creating product pages.
Create a compelling, accurate product page using ONLY the provided data.

Required sections:
1. title and meta_description
2. hero_section with headline, subheadline, key_points
3. benefits_section (expand each benefit with description and scientific_basis)
4. ingredients_section (explain each ingredient with purpose and benefits)
5. usage_section with instructions, frequency, best_practices
6. safety_section with side_effects, precautions, contraindications
7. pricing_section with price, value_proposition, comparison_value; plus cta_section

Guidelines:
- Use ONLY provided facts
- Maintain a professional, trustworthy tone
- Structure content for web presentation

Output format: a single JSON object with exactly those sections.`
}

// ProductPagePrompt builds the user prompt for product page generation.
func ProductPagePrompt(rec product.Record) string {
	return fmt.Sprintf("Product Data:\n%s\n\nCreate a complete product page.", productFacts(rec))
}

// FictionalProductSystemPrompt is the system instruction for inventing
// the comparison counterpart.
func FictionalProductSystemPrompt() string {
	return `Create a fictional skincare product for comparison purposes.
The product should be:
1. Different from the main product in meaningful ways
2. Structurally similar (same fields as the main product)
3. Plausible but distinct in formulation

Do NOT copy the main product. Create meaningful contrasts.

Output format: a JSON object with name, concentration, skin_type, key_ingredients, benefits, how_to_use, side_effects, price.`
}

// FictionalProductPrompt builds the user prompt for the fictional product.
func FictionalProductPrompt(rec product.Record) string {
	return fmt.Sprintf("Main Product (for reference):\n%s\n\nCreate a fictional contrasting product.", productFacts(rec))
}

// ComparisonSystemPrompt is the system instruction for the comparison page.
func ComparisonSystemPrompt() string {
	return fmt.Sprintf(`You are a skincare analyst creating product comparisons.
Compare the two products objectively using ONLY the provided data.

Required elements:
1. Product summaries (exactly two products)
2. At least %d comparison_points (price, ingredients, benefits, suitability)
3. An objective summary of differences
4. A recommendation based on different needs

Guidelines:
- Compare similar aspects
- Be objective and factual
- Do NOT invent new facts

Output format: a JSON object with title, products, comparison_points (aspect, product_a, product_b, winner), summary, recommendation.`, MinComparisonPoints)
}

// ComparisonPrompt builds the user prompt for the comparison page.
func ComparisonPrompt(main, fictional product.Record) string {
	return fmt.Sprintf(`Products to Compare:

Product A (Main):
%s

Product B (Fictional, created for comparison):
%s

Create a detailed comparison.`, productFacts(main), productFacts(fictional))
}

package stages

import (
	"fmt"
	"strings"

	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/internal/content"
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/internal/product"
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/pkg/extract"
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/pkg/llm"
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/pkg/pipeline"
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/pkg/pipeline/observability"
)

// Every content stage follows the same protocol: generate text,
// extract JSON, validate, then recover. A missing or failing generator
// never fails the run; the stage falls back to templated content and
// records the source. Only missing upstream results are fatal.

// generate calls the generator and decodes the response into T.
func generate[T any](ctx pipeline.Context, gen llm.Generator, system, prompt string) (T, error) {
	var zero T
	if gen == nil {
		return zero, fmt.Errorf("no generator configured")
	}
	resp, err := gen.Generate(ctx, llm.Request{System: system, Prompt: prompt})
	if err != nil {
		return zero, err
	}
	v, err := extract.Decode[T](resp.Text)
	if err != nil {
		return zero, fmt.Errorf("decode response: %w", err)
	}
	return v, nil
}

// Questions returns the generate_questions stage. It produces at least
// content.MinQuestions categorized questions about the product.
func Questions(gen llm.Generator) pipeline.Stage[State] {
	return pipeline.Stage[State]{
		ID: StageQuestions,
		Run: func(ctx pipeline.Context, state State) (State, error) {
			qs, err := generate[[]content.Question](ctx, gen, content.QuestionsSystemPrompt(), content.QuestionsPrompt(state.Product))
			if err == nil {
				qs = content.SanitizeQuestions(qs)
			}
			if err != nil || len(qs) == 0 {
				observability.LogFallback(ctx.Logger(), StageQuestions, reason(err))
				state.Questions = content.FallbackQuestions(state.Product)
				return state.withSource(StageQuestions, SourceFallback), nil
			}

			src := SourceModel
			if len(qs) < content.MinQuestions {
				qs = content.PadQuestions(qs, state.Product)
				src = SourcePadded
			}
			state.Questions = qs
			return state.withSource(StageQuestions, src), nil
		},
	}
}

// FictionalProduct returns the create_fictional_product stage. It
// invents a contrasting product record for the comparison.
func FictionalProduct(gen llm.Generator) pipeline.Stage[State] {
	return pipeline.Stage[State]{
		ID: StageFictional,
		Run: func(ctx pipeline.Context, state State) (State, error) {
			rec, err := generate[product.Record](ctx, gen, content.FictionalProductSystemPrompt(), content.FictionalProductPrompt(state.Product))
			if err == nil {
				err = rec.Validate()
			}
			if err == nil && strings.EqualFold(rec.Name, state.Product.Name) {
				err = fmt.Errorf("fictional product duplicates the main product")
			}
			if err != nil {
				observability.LogFallback(ctx.Logger(), StageFictional, reason(err))
				state.Fictional = content.FallbackFictionalProduct(state.Product)
				return state.withSource(StageFictional, SourceFallback), nil
			}

			state.Fictional = rec
			return state.withSource(StageFictional, SourceModel), nil
		},
	}
}

// Page returns the generate_product_page stage. It produces the full
// product page for the input record.
func Page(gen llm.Generator) pipeline.Stage[State] {
	return pipeline.Stage[State]{
		ID: StagePage,
		Run: func(ctx pipeline.Context, state State) (State, error) {
			page, err := generate[content.ProductPage](ctx, gen, content.ProductPageSystemPrompt(), content.ProductPagePrompt(state.Product))
			if err == nil && strings.TrimSpace(page.Title) == "" {
				err = fmt.Errorf("page has no title")
			}
			if err == nil && strings.TrimSpace(page.HeroSection.Headline) == "" {
				err = fmt.Errorf("page has no hero headline")
			}
			if err != nil {
				observability.LogFallback(ctx.Logger(), StagePage, reason(err))
				state.Page = content.FallbackProductPage(state.Product)
				return state.withSource(StagePage, SourceFallback), nil
			}

			state.Page = page
			return state.withSource(StagePage, SourceModel), nil
		},
	}
}

// FAQ returns the generate_faq stage. It answers the upstream question
// set, producing at least content.MinFAQItems items, and fails the run
// if generate_questions left no questions in the state.
func FAQ(gen llm.Generator) pipeline.Stage[State] {
	return pipeline.Stage[State]{
		ID:        StageFAQ,
		DependsOn: []string{StageQuestions},
		Run: func(ctx pipeline.Context, state State) (State, error) {
			if len(state.Questions) == 0 {
				return state, &pipeline.DependencyError{StageID: StageFAQ, Missing: "questions"}
			}

			items, err := generate[[]content.FAQItem](ctx, gen, content.FAQSystemPrompt(), content.FAQPrompt(state.Product, state.Questions))
			if err == nil {
				items = content.SanitizeFAQ(items)
			}
			if err != nil || len(items) == 0 {
				observability.LogFallback(ctx.Logger(), StageFAQ, reason(err))
				items = content.FallbackFAQ(state.Product)
				state.FAQ = faqPage(state.Product, items)
				return state.withSource(StageFAQ, SourceFallback), nil
			}

			src := SourceModel
			if len(items) < content.MinFAQItems {
				items = content.PadFAQ(items, state.Product)
				src = SourcePadded
			}
			state.FAQ = faqPage(state.Product, items)
			return state.withSource(StageFAQ, src), nil
		},
	}
}

// Comparison returns the generate_comparison stage. It compares the
// input product against the fictional counterpart, and fails the run if
// create_fictional_product left no record in the state.
func Comparison(gen llm.Generator) pipeline.Stage[State] {
	return pipeline.Stage[State]{
		ID:        StageComparison,
		DependsOn: []string{StageFictional},
		Run: func(ctx pipeline.Context, state State) (State, error) {
			if state.Fictional.Name == "" {
				return state, &pipeline.DependencyError{StageID: StageComparison, Missing: "fictional product"}
			}

			page, err := generate[content.ComparisonPage](ctx, gen, content.ComparisonSystemPrompt(), content.ComparisonPrompt(state.Product, state.Fictional))
			if err == nil {
				page.ComparisonPoints = content.SanitizeComparisonPoints(page.ComparisonPoints)
				if len(page.Products) != 2 || len(page.ComparisonPoints) == 0 {
					err = fmt.Errorf("comparison is incomplete")
				}
			}
			if err != nil {
				observability.LogFallback(ctx.Logger(), StageComparison, reason(err))
				state.Comparison = content.FallbackComparison(state.Product, state.Fictional)
				return state.withSource(StageComparison, SourceFallback), nil
			}

			src := SourceModel
			if len(page.ComparisonPoints) < content.MinComparisonPoints {
				page.ComparisonPoints = content.PadComparisonPoints(page.ComparisonPoints, state.Product, state.Fictional)
				src = SourcePadded
			}
			state.Comparison = page
			return state.withSource(StageComparison, src), nil
		},
	}
}

// faqPage assembles the FAQ page envelope around the answered items.
func faqPage(rec product.Record, items []content.FAQItem) content.FAQPage {
	return content.FAQPage{
		PageType:       "faq",
		Product:        rec.Name,
		FAQItems:       items,
		Categories:     content.FAQCategories(items),
		TotalQuestions: len(items),
	}
}

// reason renders a fallback reason for logging.
func reason(err error) string {
	if err == nil {
		return "empty result"
	}
	return err.Error()
}

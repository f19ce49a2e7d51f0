// Package stages wires the content generation stages into an
// executable graph over a shared State.
package stages

import (
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/internal/content"
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/internal/product"
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/internal/sink"
)

// Source records how a stage's content was produced.
type Source string

const (
	// SourceModel means the model output passed validation as-is.
	SourceModel Source = "model"
	// SourcePadded means model output was kept but topped up from
	// templates to reach the minimum count.
	SourcePadded Source = "padded"
	// SourceFallback means the model was unavailable or its output
	// unusable, so templated content was used instead.
	SourceFallback Source = "fallback"
)

// Stage IDs, also used as keys in State.Sources.
const (
	StageQuestions  = "generate_questions"
	StageFictional  = "create_fictional_product"
	StagePage       = "generate_product_page"
	StageFAQ        = "generate_faq"
	StageComparison = "generate_comparison"
	StageCompile    = "compile_outputs"
)

// State is the shared pipeline state. Stages receive it by value and
// return an updated copy; maps and slices are cloned before mutation so
// snapshots taken between stages stay stable.
type State struct {
	// Product is the validated input record. Set before the run starts.
	Product product.Record `json:"product"`

	// Questions is the categorized question set from generate_questions.
	Questions []content.Question `json:"questions,omitempty"`

	// Fictional is the invented comparison counterpart from
	// create_fictional_product. Present when Fictional.Name is non-empty.
	Fictional product.Record `json:"fictional,omitempty"`

	// FAQ is the answered FAQ page from generate_faq.
	FAQ content.FAQPage `json:"faq,omitempty"`

	// Page is the product page from generate_product_page.
	Page content.ProductPage `json:"page,omitempty"`

	// Comparison is the comparison page from generate_comparison.
	Comparison content.ComparisonPage `json:"comparison,omitempty"`

	// Artifacts lists the files written by compile_outputs.
	Artifacts []sink.Artifact `json:"artifacts,omitempty"`

	// Sources maps stage ID to how that stage produced its content.
	Sources map[string]Source `json:"sources,omitempty"`
}

// withSource returns a copy of the state with the stage's source
// recorded. The map is cloned, never mutated in place.
func (s State) withSource(stageID string, src Source) State {
	sources := make(map[string]Source, len(s.Sources)+1)
	for k, v := range s.Sources {
		sources[k] = v
	}
	sources[stageID] = src
	s.Sources = sources
	return s
}

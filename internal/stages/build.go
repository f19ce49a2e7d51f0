package stages

import (
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/internal/sink"
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/pkg/llm"
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/pkg/pipeline"
)

// Build assembles the full content generation graph:
//
//	generate_questions ──────────► generate_faq ─────────┐
//	create_fictional_product ────► generate_comparison ──┼─► compile_outputs
//	generate_product_page ───────────────────────────────┘
//
// A nil generator is allowed: every content stage then runs on its
// templated fallback, which keeps the pipeline usable without an API
// key.
func Build(gen llm.Generator, s sink.Sink) *pipeline.Graph[State] {
	g := pipeline.NewGraph[State]()
	g.AddStage(Questions(gen))
	g.AddStage(FictionalProduct(gen))
	g.AddStage(Page(gen))
	g.AddStage(FAQ(gen))
	g.AddStage(Comparison(gen))
	g.AddStage(CompileOutputs(s))
	return g
}

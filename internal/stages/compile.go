package stages

import (
	"time"

	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/internal/sink"
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/pkg/pipeline"
)

// Artifact file names written by compile_outputs.
const (
	FileFAQ        = "faq.json"
	FileProduct    = "product_page.json"
	FileComparison = "comparison_page.json"
	FileSummary    = "execution_summary.json"
)

// ExecutionSummary is the execution_summary.json artifact payload.
type ExecutionSummary struct {
	RunID       string            `json:"run_id"`
	Product     string            `json:"product"`
	GeneratedAt time.Time         `json:"generated_at"`
	Sources     map[string]Source `json:"sources"`
	Counts      SummaryCounts     `json:"counts"`
	Artifacts   []sink.Artifact   `json:"artifacts"`
}

// SummaryCounts reports the item counts of the generated content.
type SummaryCounts struct {
	Questions        int `json:"questions"`
	FAQItems         int `json:"faq_items"`
	ComparisonPoints int `json:"comparison_points"`
}

// CompileOutputs returns the compile_outputs stage. It writes the three
// content artifacts plus an execution summary through the sink. Unlike
// the content stages, write failures here are fatal: a run that cannot
// persist its outputs has produced nothing.
func CompileOutputs(s sink.Sink) pipeline.Stage[State] {
	return pipeline.Stage[State]{
		ID:        StageCompile,
		DependsOn: []string{StageFAQ, StagePage, StageComparison},
		Run: func(ctx pipeline.Context, state State) (State, error) {
			if len(state.FAQ.FAQItems) == 0 {
				return state, &pipeline.DependencyError{StageID: StageCompile, Missing: "faq page"}
			}
			if state.Page.Title == "" {
				return state, &pipeline.DependencyError{StageID: StageCompile, Missing: "product page"}
			}
			if len(state.Comparison.Products) == 0 {
				return state, &pipeline.DependencyError{StageID: StageCompile, Missing: "comparison page"}
			}

			var artifacts []sink.Artifact
			write := func(name string, v any) error {
				art, err := s.Write(name, v)
				if err != nil {
					return err
				}
				artifacts = append(artifacts, art)
				return nil
			}

			if err := write(FileFAQ, state.FAQ); err != nil {
				return state, err
			}
			if err := write(FileProduct, state.Page); err != nil {
				return state, err
			}
			if err := write(FileComparison, state.Comparison); err != nil {
				return state, err
			}

			summary := ExecutionSummary{
				RunID:       ctx.RunID(),
				Product:     state.Product.Name,
				GeneratedAt: time.Now().UTC(),
				Sources:     state.Sources,
				Counts: SummaryCounts{
					Questions:        len(state.Questions),
					FAQItems:         len(state.FAQ.FAQItems),
					ComparisonPoints: len(state.Comparison.ComparisonPoints),
				},
				Artifacts: artifacts,
			}
			if err := write(FileSummary, summary); err != nil {
				return state, err
			}

			state.Artifacts = artifacts
			return state, nil
		},
	}
}

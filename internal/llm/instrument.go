package llm

import (
	"context"

	"github.com/jharward/ticketwise/internal/metrics"
)

// InstrumentedModel wraps a Model and records call timing and failures.
type InstrumentedModel struct {
	model     *Model
	collector *metrics.Collector
}

// Instrument wraps model so every generation call is recorded on collector.
func Instrument(model *Model, collector *metrics.Collector) *InstrumentedModel {
	return &InstrumentedModel{model: model, collector: collector}
}

// GenerateWithSystem generates text with a system prompt, recording timing.
func (m *InstrumentedModel) GenerateWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var response string
	err := m.collector.Time(metrics.OpLLMGenerate, func() error {
		var genErr error
		response, genErr = m.model.GenerateWithSystem(ctx, systemPrompt, userPrompt)
		return genErr
	})
	return response, err
}

// Model returns the underlying LLM model name.
func (m *InstrumentedModel) Model() string {
	return m.model.Model()
}

package testutil

// FixedTraceGenerator returns the same trace ID every time.
//
// This enables golden snapshot comparison of JSON command output, which
// otherwise carries a fresh UUID per response.
//
// Thread-safety: FixedTraceGenerator is stateless and safe for concurrent use.
type FixedTraceGenerator struct {
	id string
}

// NewFixedTraceGenerator creates a generator for id.
//
// If id is empty, Generate() returns "test-trace-default".
func NewFixedTraceGenerator(id string) *FixedTraceGenerator {
	if id == "" {
		id = "test-trace-default"
	}
	return &FixedTraceGenerator{id: id}
}

// Generate returns the fixed trace ID.
//
// Implements cli.TraceIDGenerator.
func (g *FixedTraceGenerator) Generate() string {
	return g.id
}

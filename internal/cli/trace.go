package cli

import "github.com/google/uuid"

// TraceIDGenerator produces the trace_id carried by JSON responses.
type TraceIDGenerator interface {
	Generate() string
}

// UUIDGenerator generates random (v4) trace IDs.
type UUIDGenerator struct{}

// Generate returns a fresh UUID string.
func (UUIDGenerator) Generate() string {
	return uuid.NewString()
}

func (o *RootOptions) traceID() string {
	if o.TraceIDs == nil {
		return UUIDGenerator{}.Generate()
	}
	return o.TraceIDs.Generate()
}

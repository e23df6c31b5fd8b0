package parameter

import "time"

// Loop timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// StepInterval is the wall-clock interval between simulation steps
	StepInterval = 16 * time.Millisecond
)

// Telemetry
const (
	// MetricsNamespace prefixes every exported metric
	MetricsNamespace = "orbit"
)

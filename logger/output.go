package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
//	0 (default) - results, errors with hints, final status
//	1 (-v)      - + config summary, operation summaries
//	2 (-vv)     - + HTTP requests made, timing
//	3 (-vvv)    - + request headers, internal flow
//	4 (-vvvv)   - + full request/response bodies

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Command output
	OutputErrors                           // Errors with hints
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputConfig        // Config values loaded/applied
	OutputOperationInfo // High-level operation summaries

	// Level 2 (-vv) - Detailed
	OutputHTTPCalls // External HTTP requests made
	OutputTiming    // Operation timing

	// Level 3 (-vvv) - Debug
	OutputHTTPHeaders // Request headers (credentials redacted)
	OutputInternalOp  // Internal operation flow

	// Level 4 (-vvvv) - Full dump
	OutputRequestBody  // Full HTTP request bodies
	OutputResponseBody // Full HTTP response bodies
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	OutputConfig:        VerbosityInfo,
	OutputOperationInfo: VerbosityInfo,

	OutputHTTPCalls: VerbosityDebug,
	OutputTiming:    VerbosityDebug,

	OutputHTTPHeaders: VerbosityTrace,
	OutputInternalOp:  VerbosityTrace,

	OutputRequestBody:  VerbosityAll,
	OutputResponseBody: VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

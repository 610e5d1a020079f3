// Package domain defines the core business entities for simple-utils.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ExplainRequest: Source code submitted for explanation
//   - Explanation: A validated, beginner-friendly explanation of code
//   - Language: The programming languages the explainer understands
//   - AppSettings: LLM, explainer and server configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

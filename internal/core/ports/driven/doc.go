// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model operations. Without it, code explanation is disabled.
//   - PromptStore: Customisable prompts. Without it, built-in prompts are used.
//   - ExplanationStore: Explanation history. Without it, history is not recorded.
//   - ExplanationCache: In-memory explanation cache. Without it, every request calls the LLM.
//   - AIConfigValidator: Connectivity checks for LLM settings.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package driven

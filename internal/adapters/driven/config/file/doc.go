// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the simpleutils config directory
// (~/.simpleutils by default).
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: editable LLM prompt templates with hot reload
package file

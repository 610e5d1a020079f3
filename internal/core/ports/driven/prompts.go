package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptExplainSystem is the system prompt for code explanation.
	// This prompt has no format placeholders.
	PromptExplainSystem = "explain_system"

	// PromptExplainCode asks for a JSON explanation of a piece of code.
	// The template expects three %s placeholders: the language name,
	// the lower-case fence tag, and the code.
	PromptExplainCode = "explain_code"
)

// DefaultExplainSystemPrompt is the built-in PromptExplainSystem template.
const DefaultExplainSystemPrompt = "You are a helpful coding instructor. " +
	"Always respond with valid JSON only, no markdown or additional formatting."

// DefaultExplainCodePrompt is the built-in PromptExplainCode template.
const DefaultExplainCodePrompt = "You are a helpful coding instructor. " +
	"Explain the following %s code in a beginner-friendly way.\n\n" +
	"Code:\n```%s\n%s\n```\n\n" +
	`Please provide your explanation in the following JSON format:
{
  "simpleExplanation": "A brief, simple explanation of what the code is (2-3 sentences)",
  "whatItDoes": "A detailed explanation of what the code does step by step (3-5 sentences)",
  "realWorldAnalogy": "A real-world analogy that helps understand the code's purpose (2-3 sentences)"
}

Make sure the explanations are:
- Beginner-friendly and easy to understand
- Clear and concise
- Use simple language, avoiding jargon when possible
- The analogy should be relatable and memorable

Return ONLY valid JSON, no markdown formatting or additional text.`

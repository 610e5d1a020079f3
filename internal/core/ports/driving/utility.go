package driving

// UtilityService exposes the stateless text and temperature helpers.
// All methods are pure and safe for concurrent use.
type UtilityService interface {
	// Reverse returns text with its characters in reverse order.
	Reverse(text string) string

	// CountWords returns the number of whitespace-delimited tokens in text.
	CountWords(text string) int

	// CelsiusToFahrenheit converts degrees Celsius to degrees Fahrenheit.
	CelsiusToFahrenheit(celsius float64) float64
}

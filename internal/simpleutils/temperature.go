package simpleutils

// CelsiusToFahrenheit converts a temperature in degrees Celsius to degrees
// Fahrenheit using celsius*9/5 + 32.
func CelsiusToFahrenheit(celsius float64) float64 {
	return celsius*9/5 + 32
}

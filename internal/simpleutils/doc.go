// Package simpleutils provides small, pure text and number helpers:
// string reversal, whitespace word counting and Celsius to Fahrenheit
// conversion.
//
// Every function is stateless and safe for concurrent use.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package simpleutils

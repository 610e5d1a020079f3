// Package http provides the JSON HTTP API for simpleutils.
//
// Routes:
//
//	POST /api/explain                  explain a piece of code
//	POST /api/reverse                  reverse a string
//	POST /api/count-words              count words in a string
//	GET  /api/celsius-to-fahrenheit    convert ?celsius=N
//	GET  /healthz                      liveness probe
//	GET  /metrics                      Prometheus metrics
//
// Errors are returned as {"error": "..."} with an appropriate status code.
package http

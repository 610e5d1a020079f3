package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/custodia-labs/simple-utils/internal/core/domain"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Error messages returned by /api/explain.
const (
	msgCodeRequired    = "Code is required"
	msgKeyNotSet       = "LLM API key is not configured"
	msgKeyInvalid      = "LLM API key is invalid or missing"
	msgParseFailed     = "Failed to parse explanation response"
	msgExplainFailed   = "Failed to explain code. Please try again."
	msgInvalidBody     = "Invalid request body"
	msgInvalidCelsius  = "celsius must be a finite number"
	msgMissingCelsius  = "celsius is required"
	msgInvalidLanguage = "Unsupported language"
)

type explainRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

type textRequest struct {
	Text string `json:"text"`
}

type reverseResponse struct {
	Result string `json:"result"`
}

type countWordsResponse struct {
	Count int `json:"count"`
}

type temperatureResponse struct {
	Celsius    float64 `json:"celsius"`
	Fahrenheit float64 `json:"fahrenheit"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleExplain handles POST /api/explain.
func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	var body explainRequest
	if !decodeBody(w, r, &body) {
		return
	}

	if strings.TrimSpace(body.Code) == "" {
		writeError(w, http.StatusBadRequest, msgCodeRequired)
		return
	}

	lang, err := domain.ParseLanguage(body.Language)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidLanguage)
		return
	}

	if s.ports.Explain == nil {
		writeError(w, http.StatusInternalServerError, msgKeyNotSet)
		return
	}

	exp, err := s.ports.Explain.Explain(r.Context(), domain.ExplainRequest{
		Code:     body.Code,
		Language: lang,
	})
	if err != nil {
		s.log.Error("explaining code", "error", err, "language", lang.String())
		status, msg := explainError(err)
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, exp)
}

// explainError maps explain failures to a status and client message.
func explainError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrCodeRequired):
		return http.StatusBadRequest, msgCodeRequired
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, msgInvalidLanguage
	case errors.Is(err, domain.ErrLLMUnavailable):
		return http.StatusInternalServerError, msgKeyNotSet
	case errors.Is(err, domain.ErrLLMAuth):
		return http.StatusInternalServerError, msgKeyInvalid
	case errors.Is(err, domain.ErrExplanationParse):
		return http.StatusInternalServerError, msgParseFailed
	default:
		return http.StatusInternalServerError, msgExplainFailed
	}
}

// handleReverse handles POST /api/reverse.
func (s *Server) handleReverse(w http.ResponseWriter, r *http.Request) {
	var body textRequest
	if !decodeBody(w, r, &body) {
		return
	}
	writeJSON(w, http.StatusOK, reverseResponse{Result: s.ports.Utility.Reverse(body.Text)})
}

// handleCountWords handles POST /api/count-words.
func (s *Server) handleCountWords(w http.ResponseWriter, r *http.Request) {
	var body textRequest
	if !decodeBody(w, r, &body) {
		return
	}
	writeJSON(w, http.StatusOK, countWordsResponse{Count: s.ports.Utility.CountWords(body.Text)})
}

// handleCelsiusToFahrenheit handles GET /api/celsius-to-fahrenheit?celsius=N.
func (s *Server) handleCelsiusToFahrenheit(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("celsius"))
	if raw == "" {
		writeError(w, http.StatusBadRequest, msgMissingCelsius)
		return
	}

	// JSON cannot carry NaN or infinities.
	celsius, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(celsius) || math.IsInf(celsius, 0) {
		writeError(w, http.StatusBadRequest, msgInvalidCelsius)
		return
	}

	writeJSON(w, http.StatusOK, temperatureResponse{
		Celsius:    celsius,
		Fahrenheit: s.ports.Utility.CelsiusToFahrenheit(celsius),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// Query-layer errors (sentinel errors for errors.Is checks)
var (
	ErrUnknownTable   = errors.New("unknown table")
	ErrUnknownMetric  = errors.New("unknown metric")
	ErrUnknownMode    = errors.New("unknown trend mode")
	ErrUnknownEntity  = errors.New("unknown entity")
	ErrInvalidYear    = errors.New("invalid year")
	ErrInvalidLimit   = errors.New("invalid limit")
	ErrDatasetMissing = errors.New("cleaned dataset missing")
	ErrDatasetEmpty   = errors.New("dataset has no rows")
)

// ProblemDetails implements RFC 7807 Problem Details for HTTP APIs
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Additional fields for extensibility
	Extensions map[string]interface{} `json:"-"`
}

// Render implements the render.Renderer interface
func (pd *ProblemDetails) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, pd.Status)
	return nil
}

// MarshalJSON custom marshaler to include extensions
func (pd *ProblemDetails) MarshalJSON() ([]byte, error) {
	data := make(map[string]interface{})

	data["type"] = pd.Type
	data["title"] = pd.Title
	data["status"] = pd.Status

	if pd.Detail != "" {
		data["detail"] = pd.Detail
	}
	if pd.Instance != "" {
		data["instance"] = pd.Instance
	}

	for k, v := range pd.Extensions {
		data[k] = v
	}

	return json.Marshal(data)
}

// NewProblemDetails creates a new RFC 7807 compliant error
func NewProblemDetails(status int, problemType, title, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:       problemType,
		Title:      title,
		Status:     status,
		Detail:     detail,
		Instance:   instance,
		Extensions: make(map[string]interface{}),
	}
}

// WithExtension adds an extension field to the problem details
func (pd *ProblemDetails) WithExtension(key string, value interface{}) *ProblemDetails {
	pd.Extensions[key] = value
	return pd
}

// MapQueryError maps query-layer errors to HTTP problem details
func MapQueryError(err error, traceID, instance string) render.Renderer {
	switch {
	case errors.Is(err, ErrUnknownTable):
		return NewProblemDetails(
			http.StatusBadRequest,
			"/errors/unknown-table",
			"Unknown Table",
			"The requested table does not exist. Valid tables: teams, batting, pitching.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "UNKNOWN_TABLE")

	case errors.Is(err, ErrUnknownMetric):
		return NewProblemDetails(
			http.StatusBadRequest,
			"/errors/unknown-metric",
			"Unknown Metric",
			"The requested metric is not a numeric column of this table.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "UNKNOWN_METRIC")

	case errors.Is(err, ErrUnknownMode):
		return NewProblemDetails(
			http.StatusBadRequest,
			"/errors/unknown-mode",
			"Unknown Trend Mode",
			"Trend mode must be 'all' or 'window'.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "UNKNOWN_MODE")

	case errors.Is(err, ErrUnknownEntity):
		return NewProblemDetails(
			http.StatusBadRequest,
			"/errors/unknown-entity",
			"Unknown Entity",
			"No rows exist for the requested player or team.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "UNKNOWN_ENTITY")

	case errors.Is(err, ErrInvalidYear):
		return NewProblemDetails(
			http.StatusBadRequest,
			"/errors/invalid-year",
			"Invalid Year",
			"The year parameter must be a four digit season year.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "INVALID_YEAR")

	case errors.Is(err, ErrInvalidLimit):
		return NewProblemDetails(
			http.StatusBadRequest,
			"/errors/invalid-limit",
			"Invalid Limit",
			"The limit parameter must be a positive integer.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "INVALID_LIMIT")

	case errors.Is(err, ErrDatasetMissing):
		return NewProblemDetails(
			http.StatusServiceUnavailable,
			"/errors/dataset-missing",
			"Dataset Missing",
			"The cleaned dataset is not available. Run the cleaner and restart.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "DATASET_MISSING")

	case errors.Is(err, ErrDatasetEmpty):
		return NewProblemDetails(
			http.StatusServiceUnavailable,
			"/errors/dataset-empty",
			"Dataset Empty",
			"The cleaned dataset contains no rows. Re-run the cleaner over raw data.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "DATASET_EMPTY")

	default:
		return NewProblemDetails(
			http.StatusInternalServerError,
			"/errors/internal-error",
			"Internal Server Error",
			"An unexpected error occurred while processing your request.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "INTERNAL_ERROR")
	}
}

// QueryInstance builds the RFC 7807 instance string for a query endpoint
func QueryInstance(endpoint, traceID string) string {
	return fmt.Sprintf("%s#trace-%s", endpoint, traceID)
}

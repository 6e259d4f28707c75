// Package http implements the HTTP request handlers for the dashboard
// API. It is a thin layer between transport and business logic,
// keeping handlers focused solely on HTTP concerns.
//
// # Architecture Principles
//
// Handlers in this package follow these principles:
//
//	1. Thin handlers - minimal logic, delegate to services
//	2. HTTP-only concerns - request parsing, response formatting
//	3. Error transformation - convert query errors to HTTP responses
//	4. No query logic - ranking and aggregation belong in internal/stats
//
// # Request Flow
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → Service → Dataset
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// # Handler Structure
//
// Each handler follows this pattern:
//
//	func (h *DataHandler) GetSomething(w http.ResponseWriter, r *http.Request) {
//	    // 1. Parse and validate query parameters
//	    year, ok := h.seasonYear(w, r, "/api/something")
//	    if !ok {
//	        return
//	    }
//
//	    // 2. Call service layer
//	    rows, err := h.service.Something(r.Context(), year)
//	    if err != nil {
//	        h.renderQueryError(w, r, "/api/something", err)
//	        return
//	    }
//
//	    // 3. Format and send response
//	    render.JSON(w, r, map[string]interface{}{"rows": rows, "count": len(rows)})
//	}
//
// # Error Handling
//
// All errors follow RFC 7807 Problem Details:
//
//	{
//	    "type": "/errors/unknown-metric",
//	    "title": "Unknown Metric",
//	    "status": 400,
//	    "detail": "The requested metric is not a numeric column of this table.",
//	    "instance": "/api/leaderboard#trace-abc123"
//	}
//
// A season with no rows is not an error: those queries return 200 with
// an empty result set and count 0.
//
// # Testing
//
// Handlers are tested with httptest against a real DataService over
// the shared season fixtures, verifying status codes, response shapes
// and the RFC 7807 bodies of failure cases.
package http

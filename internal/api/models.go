// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"time"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// APIResponse is the standard envelope for every API response.
//
// Fields:
//   - Status: "success" or "error" (health probes use "ready"/"not_ready")
//   - Data: response payload, null on error
//   - Metadata: timing and tracing information
//   - Error: populated only when Status is "error"
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Fields:
//   - Code: Machine-readable error code (e.g., "VALIDATION_ERROR")
//   - Message: Human-readable error message
//   - Details: Additional context (field names, constraints, etc.)
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes for API responses
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// MoviesResponse lists every selectable title in sorted order.
type MoviesResponse struct {
	Titles []string `json:"titles"`
	Count  int      `json:"count"`
}

// RecommendationsResponse is the payload of GET /api/v1/recommendations.
// Recommendations is never null; it is empty when Notice explains why.
type RecommendationsResponse struct {
	Selected        string                     `json:"selected"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Notice          *recommend.Notice          `json:"notice,omitempty"`
}

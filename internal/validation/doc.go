// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package validation provides struct validation using go-playground/validator v10.

It holds a thread-safe singleton validator (struct metadata is cached across
calls) and translates validator errors into the API's VALIDATION_ERROR shape.

Fields are reported by their query or json tag name, so a request struct

	type RecommendationRequest struct {
	    Title string `query:"title" validate:"required,notblank,max=500"`
	}

fails with "title is required" rather than "Title is required".

# Custom Validators

  - notblank: the string must contain at least one non-whitespace character

# Usage

	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
	    return
	}
*/
package validation

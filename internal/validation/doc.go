// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package validation wraps go-playground/validator v10 for request structs.

A single validator instance is shared process-wide. Field names in errors
come from json tags.

Custom tags:

  - modelkind: a recommendation model kind accepted by recommend.ParseModelKind
  - notblank: a string with at least one non-space character

Failures convert to the API error shape with code VALIDATION_ERROR:

	type LoginRequest struct {
	    Username string `json:"username" validate:"required,notblank,max=100"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
	    return
	}
*/
package validation

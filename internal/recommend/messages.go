// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import "fmt"

// User-facing messages.
const (
	// MsgGenericError is shown for any unexpected failure.
	MsgGenericError = "An error occurred while generating recommendations."

	// MsgDatasetUnavailable is shown when the dataset failed to load for a
	// reason that carries no artifact-specific message.
	MsgDatasetUnavailable = "Movie data is not available. Please try again later."
)

// NotFoundMessage is shown when the selected title is not in the dataset.
func NotFoundMessage(title string) string {
	return fmt.Sprintf("'%s' not found in the dataset. Please try another movie.", title)
}

// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"strings"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// ExcludeStrategy controls how the selected movie is kept out of its own results.
type ExcludeStrategy string

const (
	// ExcludePositional drops the top-ranked entry, assuming the selected
	// movie is always most similar to itself.
	ExcludePositional ExcludeStrategy = "positional"

	// ExcludeSelected drops the selected row wherever it ranks.
	ExcludeSelected ExcludeStrategy = "selected"
)

// ParseExcludeStrategy converts a config string to an ExcludeStrategy.
// An empty string selects ExcludePositional.
func ParseExcludeStrategy(s string) (ExcludeStrategy, error) {
	switch ExcludeStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", ExcludePositional:
		return ExcludePositional, nil
	case ExcludeSelected:
		return ExcludeSelected, nil
	default:
		return "", fmt.Errorf("unknown exclude strategy %q (want %q or %q)", s, ExcludePositional, ExcludeSelected)
	}
}

// Ranked is one ranker output entry.
type Ranked struct {
	Item  catalog.Item
	Score float32
}

// Recommendation is a display-ready result entry.
type Recommendation struct {
	Title     string `json:"title"`
	PosterURL string `json:"poster_url"`
}

// NoticeLevel is the severity of a user-visible notice.
type NoticeLevel string

const (
	// NoticeWarning marks recoverable conditions such as an unknown title.
	NoticeWarning NoticeLevel = "warning"

	// NoticeError marks failures that prevented recommendations.
	NoticeError NoticeLevel = "error"
)

// Notice is a message for the presentation layer.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// Result is the orchestrator output. Titles and Posters are parallel,
// in rank order, and never nil.
type Result struct {
	Titles  []string
	Posters []string
	Notice  *Notice
}

// Recommendations pairs titles with their posters.
func (r Result) Recommendations() []Recommendation {
	recs := make([]Recommendation, len(r.Titles))
	for i, title := range r.Titles {
		recs[i] = Recommendation{Title: title}
		if i < len(r.Posters) {
			recs[i].PosterURL = r.Posters[i]
		}
	}
	return recs
}

func emptyResult(notice *Notice) Result {
	return Result{Titles: []string{}, Posters: []string{}, Notice: notice}
}

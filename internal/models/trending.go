package models

import (
	"strings"
	"time"
)

// TrendingRecord counts how often a search term produced results.
type TrendingRecord struct {
	Key        string    `json:"key"`
	SearchTerm string    `json:"search_term"`
	Count      int64     `json:"count"`
	MovieID    int       `json:"movie_id"`
	Title      string    `json:"title"`
	PosterURL  string    `json:"poster_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewTrendingRecord creates the first record for term, seeded from the
// first movie the search returned.
func NewTrendingRecord(term string, first Movie, imageBase string, now time.Time) TrendingRecord {
	return TrendingRecord{
		Key:        NormalizeTerm(term),
		SearchTerm: term,
		Count:      1,
		MovieID:    first.ID,
		Title:      first.Title,
		PosterURL:  first.PosterURL(imageBase),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NormalizeTerm lower-cases term, trims it and collapses inner whitespace.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.Join(strings.Fields(term), " "))
}

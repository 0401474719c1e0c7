// Package models defines data structures for TMDB API responses and trending records.
package models

import (
	"encoding/json"
	"strconv"
)

// Movie is a single entry of a TMDB movie list. Fields not modelled here
// are kept in the raw document and re-emitted on marshal.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	OriginalLanguage string  `json:"original_language"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	GenreIDs         []int   `json:"genre_ids"`

	raw json.RawMessage
}

// movieFields breaks the UnmarshalJSON recursion.
type movieFields Movie

func (m *Movie) UnmarshalJSON(data []byte) error {
	var f movieFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = Movie(f)
	m.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (m Movie) MarshalJSON() ([]byte, error) {
	if len(m.raw) > 0 {
		return m.raw, nil
	}
	return json.Marshal(movieFields(m))
}

// Year returns the release year, or 0 when unknown.
func (m Movie) Year() int {
	if len(m.ReleaseDate) >= 4 {
		if year, err := strconv.Atoi(m.ReleaseDate[:4]); err == nil {
			return year
		}
	}
	return 0
}

// PosterURL joins the image base with the poster path. Movies without a
// poster yield "".
func (m Movie) PosterURL(imageBase string) string {
	return PosterURL(imageBase, m.PosterPath)
}

// PosterURL joins an image base URL and a TMDB poster path.
func PosterURL(imageBase, posterPath string) string {
	if posterPath == "" {
		return ""
	}
	if len(imageBase) > 0 && imageBase[len(imageBase)-1] == '/' {
		imageBase = imageBase[:len(imageBase)-1]
	}
	if posterPath[0] != '/' {
		posterPath = "/" + posterPath
	}
	return imageBase + posterPath
}

// MovieListResponse is the body of /search/movie and /discover/movie.
// Results is optional on the wire.
type MovieListResponse struct {
	Page         int      `json:"page"`
	Results      *[]Movie `json:"results,omitempty"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// Movies returns the results, or an empty list when the field was absent.
func (r MovieListResponse) Movies() []Movie {
	if r.Results == nil {
		return []Movie{}
	}
	return *r.Results
}

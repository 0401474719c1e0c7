// Package app holds the search session logic shared by the terminal UI and
// the HTTP server.
package app

import "github.com/amaumene/gomovies/internal/models"

// View names the mutually exclusive contents of the result area.
type View int

const (
	ViewResults View = iota
	ViewLoading
	ViewError
)

func (v View) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	default:
		return "results"
	}
}

// State is everything a presentation layer needs to draw one session.
type State struct {
	Query          string                  `json:"query"`
	DebouncedQuery string                  `json:"debounced_query"`
	Movies         []models.Movie          `json:"movies"`
	Trending       []models.TrendingRecord `json:"trending"`
	Loading        bool                    `json:"loading"`
	Error          string                  `json:"error,omitempty"`
}

// View resolves which result area to draw. Loading wins over an error,
// an error wins over results.
func (s State) View() View {
	switch {
	case s.Loading:
		return ViewLoading
	case s.Error != "":
		return ViewError
	default:
		return ViewResults
	}
}

func newState() State {
	return State{
		Movies:   []models.Movie{},
		Trending: []models.TrendingRecord{},
	}
}

// clone copies the slices so a published State never aliases loop state.
func (s State) clone() State {
	out := s
	out.Movies = append([]models.Movie{}, s.Movies...)
	out.Trending = append([]models.TrendingRecord{}, s.Trending...)
	return out
}

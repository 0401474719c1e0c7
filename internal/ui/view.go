// Package ui renders a search session in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/amaumene/gomovies/internal/app"
	"github.com/amaumene/gomovies/internal/models"
)

const (
	cardWidth    = 30
	minWidth     = cardWidth + 2
	defaultWidth = 80

	loadingText = "Loading..."
	noResults   = "No movies found."
)

var defaultStyles = NewStyles()

// Render draws st. input is the rendered search field and spin the current
// spinner frame. It has no side effects.
func Render(st app.State, input, spin string, width int) string {
	return renderWith(defaultStyles, st, input, spin, width)
}

func renderWith(s *Styles, st app.State, input, spin string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	if width < minWidth {
		width = minWidth
	}

	var b strings.Builder

	b.WriteString(renderHeader(s))
	b.WriteString("\n")
	b.WriteString(s.SearchBox.Width(width - 4).Render(input))
	b.WriteString("\n")

	if len(st.Trending) > 0 {
		b.WriteString(renderTrending(s, st.Trending, width))
		b.WriteString("\n")
	}

	b.WriteString(s.Heading.Render("All Movies"))
	b.WriteString("\n\n")

	switch st.View() {
	case app.ViewLoading:
		b.WriteString(s.Loading.Render(strings.TrimSpace(spin + " " + loadingText)))
	case app.ViewError:
		b.WriteString(s.Error.Render(st.Error))
	default:
		b.WriteString(renderGrid(s, st.Movies, width))
	}
	b.WriteString("\n")

	return b.String()
}

func renderHeader(s *Styles) string {
	banner := s.Banner.Render("gomovies")
	tagline := s.Tagline.Render("Find ") + s.Accent.Render("Movies") +
		s.Tagline.Render(" you will enjoy without the Hassle")
	return lipgloss.JoinVertical(lipgloss.Left, banner, tagline)
}

func renderTrending(s *Styles, records []models.TrendingRecord, width int) string {
	var b strings.Builder
	b.WriteString(s.Heading.Render("Trending Movies"))
	b.WriteString("\n")

	for i, rec := range records {
		title := rec.Title
		if title == "" {
			title = rec.SearchTerm
		}
		rank := s.Rank.Render(fmt.Sprintf("%2d", i+1))
		line := truncate(title, width/2)
		if rec.PosterURL != "" {
			line += "  " + s.Dim.Render(truncate(rec.PosterURL, width/2-4))
		}
		b.WriteString(rank + "  " + line + "\n")
	}
	return b.String()
}

func renderGrid(s *Styles, movies []models.Movie, width int) string {
	if len(movies) == 0 {
		return s.Dim.Render(noResults)
	}

	perRow := width / (cardWidth + 2)
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	for start := 0; start < len(movies); start += perRow {
		end := min(start+perRow, len(movies))
		cards := make([]string, 0, end-start)
		for _, m := range movies[start:end] {
			cards = append(cards, renderCard(s, m))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(s *Styles, m models.Movie) string {
	inner := cardWidth - 4

	title := s.CardTitle.Render(truncate(m.Title, inner))

	rating := "N/A"
	if m.VoteAverage > 0 {
		rating = fmt.Sprintf("%.1f", m.VoteAverage)
	}
	year := "N/A"
	if y := m.Year(); y > 0 {
		year = fmt.Sprint(y)
	}
	details := []string{year}
	if m.OriginalLanguage != "" {
		details = []string{strings.ToUpper(m.OriginalLanguage), year}
	}
	meta := s.Rating.Render("★ "+rating) + s.Dim.Render(" • "+strings.Join(details, " • "))
	votes := s.Dim.Render(humanize.Comma(int64(m.VoteCount)) + " votes")

	return s.Card.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, title, meta, votes))
}

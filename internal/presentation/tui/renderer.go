package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewMarkdownRenderer returns a function that renders markdown using glamour.
// Without color the markdown is returned unchanged.
func NewMarkdownRenderer(color bool) func(string) (string, error) {
	if !color {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return "", err
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"gachaledger/internal/recap"
)

// Run plays the recap slideshow until the user quits or walks past the
// last slide.
func Run(ctx context.Context, r *recap.Recap) error {
	if r == nil || len(r.Slides) == 0 {
		return fmt.Errorf("recap has no slides")
	}

	p := tea.NewProgram(newModel(r),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("slideshow failed: %w", err)
	}
	return nil
}

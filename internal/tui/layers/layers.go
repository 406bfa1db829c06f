// Package layers provides utility functions for creating UI layers
package layers

import "charm.land/lipgloss/v2"

// CreateCenteredLayer creates a layer positioned at the center of the screen.
// Returns nil if content is empty.
func CreateCenteredLayer(content string, screenWidth int, screenHeight int) *lipgloss.Layer {
	if content == "" {
		return nil
	}

	x := max((screenWidth-lipgloss.Width(content))/2, 0)
	y := max((screenHeight-lipgloss.Height(content))/2, 0)

	return lipgloss.NewLayer(content).X(x).Y(y)
}

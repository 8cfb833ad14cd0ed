// Package view renders the dashboard sections as plain strings.
package view

// ViewState contains pre-rendered content for the whole screen.
type ViewState struct {
	Width            int
	Height           int
	BaseContent      string
	EmptyPlaceholder string
}

// Render composes the final view output.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.EmptyPlaceholder != "" {
			return state.EmptyPlaceholder
		}
		return "Loading..."
	}
	return state.BaseContent
}

package view

// Indicator labels for the data freshness badge.
const (
	LiveLabel  = "● LIVE"
	StaleLabel = "● STALE"
)

// HeaderState holds what the header needs to render.
type HeaderState struct {
	Width    int
	Title    string
	Subtitle string
	Live     bool

	TitleStyle    Renderer
	SubtitleStyle Renderer
	LiveStyle     Renderer
	StaleStyle    Renderer
	Fill          Renderer
}

// RenderHeader renders the title row with the freshness badge and the
// subtitle row below it.
func RenderHeader(s HeaderState) string {
	badge := orPlain(s.LiveStyle).Render(LiveLabel)
	if !s.Live {
		badge = orPlain(s.StaleStyle).Render(StaleLabel)
	}
	title := orPlain(s.TitleStyle).Render(s.Title)
	sub := Truncate(orPlain(s.SubtitleStyle).Render(s.Subtitle), s.Width)
	return JoinEnds(title, badge, s.Width, s.Fill) + "\n" + sub
}

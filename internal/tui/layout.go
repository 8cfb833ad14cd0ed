package tui

const (
	headerH     = 2
	tabsH       = 1
	footerH     = 2
	totalH      = 5
	minWidth    = 30
	minBodyH    = 8
	sideBySideW = 72
	columnGap   = 1
)

// layout is the size of every section for one terminal size.
type layout struct {
	innerW  int
	bodyH   int
	stacked bool

	leftW  int
	rightW int

	panelH    int // chart or quote card below the total
	activityH int
}

func computeLayout(width, height int) (layout, bool) {
	innerW := width - 2
	// header, blank, tabs, blank, body, blank, footer
	bodyH := height - headerH - tabsH - footerH - 3
	if innerW < minWidth || bodyH < minBodyH {
		return layout{}, false
	}

	l := layout{innerW: innerW, bodyH: bodyH}
	if innerW >= sideBySideW {
		l.leftW = innerW * 2 / 5
		l.rightW = innerW - l.leftW - columnGap
		l.panelH = bodyH - totalH
		l.activityH = bodyH
		return l, true
	}

	l.stacked = true
	l.leftW = innerW
	l.rightW = innerW
	rest := bodyH - totalH
	if rest >= 16 {
		l.panelH = rest / 3
	}
	l.activityH = rest - l.panelH
	return l, true
}

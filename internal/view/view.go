// Package view shows a jump list in the terminal and lets the user walk it.
package view

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/jumptrail/internal/location"
)

const (
	marker = "> "
	help   = "h/←/^O back  l/→/Tab forward  d drop  q quit"
)

// Panel renders a jump list, newest entry first, with the browse position
// highlighted.
type Panel struct {
	jl *location.Jumplist

	normal   tcell.Style
	selected tcell.Style
	dim      tcell.Style
}

// NewPanel creates a panel for jl.
func NewPanel(jl *location.Jumplist) *Panel {
	return &Panel{
		jl:       jl,
		normal:   tcell.StyleDefault,
		selected: tcell.StyleDefault.Reverse(true),
		dim:      tcell.StyleDefault.Dim(true),
	}
}

// Draw renders the panel on screen and shows it.
func (p *Panel) Draw(screen tcell.Screen) {
	screen.Clear()
	width, height := screen.Size()
	if width <= 0 || height <= 0 {
		return
	}

	title := fmt.Sprintf("jumptrail %d/%d", p.jl.Len(), p.jl.Cap())
	drawText(screen, 0, 0, width, title, p.normal.Bold(true))
	if height > 1 {
		drawText(screen, 0, height-1, width, help, p.dim)
	}

	rows := height - 2
	if rows <= 0 {
		screen.Show()
		return
	}

	entries := p.jl.Entries()
	if len(entries) == 0 {
		drawText(screen, 0, 1, width, "  (empty)", p.dim)
		screen.Show()
		return
	}

	// Display row r shows entry len-1-r.
	selected := len(entries) - 1 - p.jl.Position()
	offset := 0
	if selected >= rows {
		offset = selected - rows + 1
	}

	for r := 0; r < rows && offset+r < len(entries); r++ {
		row := offset + r
		loc := entries[len(entries)-1-row]
		style, prefix := p.normal, "  "
		if row == selected {
			style, prefix = p.selected, marker
		}
		drawText(screen, 0, r+1, width, prefix+loc.String(), style)
	}
	screen.Show()
}

// HandleKey applies a key event and reports whether the panel should close.
func (p *Panel) HandleKey(ev *tcell.EventKey) (quit bool) {
	switch ev.Key() {
	case tcell.KeyLeft, tcell.KeyCtrlO:
		p.jl.Back()
	case tcell.KeyRight, tcell.KeyTab:
		p.jl.Forward()
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'h':
			p.jl.Back()
		case 'l':
			p.jl.Forward()
		case 'd':
			p.jl.Drop()
		case 'q':
			return true
		}
	}
	return false
}

// Run draws the panel and processes events until the user quits or the
// screen is finalized. The screen must already be initialized.
func (p *Panel) Run(screen tcell.Screen) error {
	p.Draw(screen)
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
			p.Draw(screen)
		case *tcell.EventKey:
			if p.HandleKey(ev) {
				return nil
			}
			p.Draw(screen)
		}
	}
}

// drawText writes s at (x, y), truncated to fit width and padded with the
// style to the end of the line.
func drawText(screen tcell.Screen, x, y, width int, s string, style tcell.Style) {
	avail := width - x
	if avail <= 0 {
		return
	}
	s = runewidth.Truncate(s, avail, "…")
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		screen.SetContent(x, y, r, nil, style)
		x += w
	}
	for ; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}

package ui

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/zhubert/erwindb/internal/style"
)

// hitRect is the column range [start, end) on row y of a pane window.
type hitRect struct {
	y          int
	start, end int
}

// focusView repaints the cells covered by rects in the focused link style
// and tags them with url as a terminal hyperlink.
func focusView(view string, width, height int, rects []hitRect, url string) string {
	if len(rects) == 0 || width <= 0 || height <= 0 {
		return view
	}

	area := uv.Rect(0, 0, width, height)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(view).Draw(scr, area)

	focused := TextStyle(style.LinkFocused)
	bg := focused.GetBackground()
	fg := focused.GetForeground()

	for _, r := range rects {
		if r.y < 0 || r.y >= height {
			continue
		}
		for x := max(r.start, 0); x < r.end && x < width; x++ {
			cell := scr.CellAt(x, r.y)
			if cell == nil || cell.Width == 0 {
				continue
			}
			cell = cell.Clone()
			cell.Style.Bg = bg
			cell.Style.Fg = fg
			cell.Link = uv.Link{URL: url}
			scr.SetCell(x, r.y, cell)
		}
	}

	return scr.Render()
}

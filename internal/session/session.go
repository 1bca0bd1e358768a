package session

import (
	"github.com/zhubert/erwindb/internal/content"
	"github.com/zhubert/erwindb/internal/layout"
	"github.com/zhubert/erwindb/internal/logger"
	"github.com/zhubert/erwindb/internal/render"
)

// DefaultDualPaneMinWidth is the narrowest terminal that shows the side pane.
const DefaultDualPaneMinWidth = 160

// Options configures a Session.
type Options struct {
	// DualPaneMinWidth is the terminal width from which Erwin's answers open
	// in a side pane. Zero means DefaultDualPaneMinWidth.
	DualPaneMinWidth int
	// Layout replaces layout.Layout in the render caches.
	Layout render.LayoutFunc
}

// View is the result of Render. Side is nil unless both panes are shown.
type View struct {
	Mode        layout.PaneMode
	Main        *render.Entry
	Side        *render.Entry
	SideFocused bool
}

// Session is the open question. It is owned by the UI goroutine.
type Session struct {
	page content.Page
	opts Options

	main *Pane
	side *Pane

	erwin       []int // indexes of Erwin's answers in page.Answers
	current     int   // position in erwin shown in the side pane
	sideOpen    bool
	sideFocused bool
	mainHidden  bool // main document omits Erwin's answers

	width  int
	height int
}

// New opens page.
func New(page content.Page, opts Options) *Session {
	if opts.DualPaneMinWidth <= 0 {
		opts.DualPaneMinWidth = DefaultDualPaneMinWidth
	}
	s := &Session{
		page:  page,
		opts:  opts,
		erwin: page.ErwinAnswers(),
	}
	s.main = NewPane(content.BuildQuestion(page, content.Options{}), render.NewCache(opts.Layout))
	s.side = NewPane(content.Document{}, render.NewCache(opts.Layout))

	logger.WithQuestion(page.Question.ID).Debug("session opened",
		"answers", len(page.Answers), "erwinAnswers", len(s.erwin))
	return s
}

// Page returns the loaded page.
func (s *Session) Page() content.Page {
	return s.page
}

// QuestionID returns the id of the open question.
func (s *Session) QuestionID() int64 {
	return s.page.Question.ID
}

// ErwinCount returns the number of Erwin's answers on the page.
func (s *Session) ErwinCount() int {
	return len(s.erwin)
}

// CurrentErwin returns the answer shown in the side pane.
func (s *Session) CurrentErwin() (content.Answer, bool) {
	if len(s.erwin) == 0 {
		return content.Answer{}, false
	}
	return s.page.Answers[s.erwin[s.current]], true
}

// Resize records the terminal width and the number of content lines.
func (s *Session) Resize(width, height int) {
	s.width, s.height = width, height
	s.main.SetHeight(height)
	s.side.SetHeight(height)
}

// Main returns the question pane.
func (s *Session) Main() *Pane {
	return s.main
}

// Side returns the Erwin pane; it is only on screen when Dual is true.
func (s *Session) Side() *Pane {
	return s.side
}

// Dual reports whether both panes are shown.
func (s *Session) Dual() bool {
	return s.sideOpen && s.wide()
}

// SideFocused reports whether keys go to the side pane.
func (s *Session) SideFocused() bool {
	return s.Dual() && s.sideFocused
}

// Active returns the pane that receives scrolling and link keys.
func (s *Session) Active() *Pane {
	if s.SideFocused() {
		return s.side
	}
	return s.main
}

// Render lays out the visible panes for the current size.
func (s *Session) Render() View {
	s.syncMain()
	if !s.Dual() {
		return View{Mode: layout.Single, Main: s.main.Render(s.width, layout.Single)}
	}
	return View{
		Mode:        layout.Dual,
		Main:        s.main.Render(s.width, layout.Dual),
		Side:        s.side.Render(s.width, layout.Dual),
		SideFocused: s.sideFocused,
	}
}

// FocusLink cycles link focus in the active pane.
func (s *Session) FocusLink(forward bool) (layout.Link, bool) {
	return s.Active().FocusLink(forward)
}

// FocusedLink returns the focused link of the active pane.
func (s *Session) FocusedLink() (layout.Link, bool) {
	return s.Active().FocusedLink()
}

// ClearFocus drops link focus in the active pane and reports whether there
// was any.
func (s *Session) ClearFocus() bool {
	return s.Active().ClearFocus()
}

// NextErwin moves forward through Erwin's answers.
func (s *Session) NextErwin() {
	if len(s.erwin) == 0 {
		return
	}
	s.main.ClearFocus()
	s.side.ClearFocus()
	if !s.wide() {
		s.jumpErwin(true)
		return
	}

	switch {
	case !s.sideOpen:
		s.sideOpen, s.sideFocused = true, true
		s.showErwin()
	case !s.sideFocused:
		s.sideFocused = true
	default:
		s.current = (s.current + 1) % len(s.erwin)
		if s.current == 0 {
			s.sideOpen, s.sideFocused = false, false
		}
		s.showErwin()
	}
}

// PrevErwin moves backward through Erwin's answers.
func (s *Session) PrevErwin() {
	if len(s.erwin) == 0 {
		return
	}
	s.main.ClearFocus()
	s.side.ClearFocus()
	if !s.wide() {
		s.jumpErwin(false)
		return
	}
	if !s.sideOpen {
		return
	}

	switch {
	case s.sideFocused && s.current == 0:
		s.sideFocused = false
	case s.sideFocused:
		s.current--
		s.showErwin()
	default:
		s.sideOpen = false
	}
}

func (s *Session) wide() bool {
	return s.width >= s.opts.DualPaneMinWidth
}

// syncMain rebuilds the question document when Erwin's answers move into or
// out of the side pane.
func (s *Session) syncMain() {
	hide := s.Dual()
	if hide == s.mainHidden {
		return
	}
	s.mainHidden = hide
	s.main.SetDocument(content.BuildQuestion(s.page, content.Options{HideErwin: hide}))
}

func (s *Session) showErwin() {
	i := s.erwin[s.current]
	s.side.SetDocument(content.BuildErwin(s.page.Answers[i], s.page.CommentsFor(i)))
	s.side.ScrollTop()
}

// jumpErwin scrolls the main pane to the next or previous Erwin answer
// header relative to the viewport, wrapping around.
func (s *Session) jumpErwin(forward bool) {
	s.Render()
	entry := s.main.Entry()
	if entry == nil {
		return
	}
	var lines []int
	for _, a := range s.main.Document().ErwinAnchors {
		if l, ok := entry.Anchors[a]; ok {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return
	}

	top := s.main.Scroll()
	target := -1
	if forward {
		for _, l := range lines {
			if l > top {
				target = l
				break
			}
		}
		if target < 0 {
			target = lines[0]
		}
	} else {
		for i := len(lines) - 1; i >= 0; i-- {
			if lines[i] < top {
				target = lines[i]
				break
			}
		}
		if target < 0 {
			target = lines[len(lines)-1]
		}
	}
	s.main.scrollTo(target)
}

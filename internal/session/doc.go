// Package session owns the question on screen.
//
// # Overview
//
// A Session is created when a question is opened and dropped when the user
// navigates away. It holds the loaded page and one Pane per visible
// document: the main question pane and, on wide terminals, a side pane with
// one of Erwin's answers.
//
// # Panes
//
// Each Pane owns its composed document, a single-slot render cache, a link
// navigator and a scroll offset. Rendering goes through the cache; the
// navigator is rebuilt only when the cache hands back a new entry, carrying
// link focus over by URL.
//
// # Erwin cycling
//
// On terminals at least DualPaneMinWidth columns wide, NextErwin opens the
// side pane, moves keyboard focus into it and then cycles through Erwin's
// answers, closing the pane after the last one. PrevErwin walks back the
// same way. On narrower terminals both jump the main pane to the next or
// previous Erwin answer header.
package session

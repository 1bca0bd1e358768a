// Package ui provides constants for layout calculations and configuration.
package ui

// Layout constants
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// SearchBarHeight is the height of the search input line on the index page
	SearchBarHeight = 1

	// IndexHeaderHeight is the height of the column titles above the index table
	IndexHeaderHeight = 1

	// MinTerminalWidth and MinTerminalHeight bound the layout from below so a
	// tiny terminal never produces negative sizes.
	MinTerminalWidth  = 20
	MinTerminalHeight = 5

	// DefaultWrapWidth is used when no terminal width is known, e.g. when
	// printing a question to a pipe.
	DefaultWrapWidth = 100
)

// Index table column widths, in display columns, including one trailing space.
const (
	ColumnIDWidth      = 10
	ColumnDateWidth    = 14
	ColumnScoreWidth   = 8
	ColumnViewsWidth   = 8
	ColumnAnswersWidth = 5
)

// Search input
const (
	// SearchCharLimit caps the search input length
	SearchCharLimit = 256
)

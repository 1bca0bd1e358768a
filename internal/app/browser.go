package app

import (
	"io"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/browser"

	"github.com/zhubert/erwindb/internal/errors"
)

// The launcher's own output would land on top of the alt screen.
func init() {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// launchBrowser is replaced in tests.
var launchBrowser = browser.OpenURL

// openURL opens url in the default browser.
func openURL(url string) tea.Cmd {
	return func() tea.Msg {
		if err := launchBrowser(url); err != nil {
			return BrowserOpenedMsg{URL: url, Err: errors.BrowserOpenFailed(url, err)}
		}
		return BrowserOpenedMsg{URL: url}
	}
}

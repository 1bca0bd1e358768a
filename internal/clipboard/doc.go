// Package clipboard copies text, such as a focused link's URL, to the system
// clipboard.
package clipboard

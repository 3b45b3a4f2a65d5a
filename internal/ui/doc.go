// Package ui provides line-mode terminal feedback for the non-dashboard
// commands: an animated spinner for work in progress and the status
// symbols and colors it finishes with.
package ui

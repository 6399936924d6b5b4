// Package shell is the terminal rendition of the desktop: a bubbletea model
// over one window Manager and one terminal Engine.
//
// Window geometry stays in the same pixel units the web client uses. The
// shell maps one character cell to CellWidth x CellHeight pixels, so the
// header and taskbar chrome line up with whole rows and drags, cascades and
// maximize behave exactly as they do in the browser.
package shell

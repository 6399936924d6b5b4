// Command desktop runs a single RootAccess desktop in the terminal.
//
// Usage:
//
//	desktop [--catalog commands.yaml] [--log-file desktop.log] [--plain]
//
// Mouse: click a launcher entry or taskbar slot to open an app, drag a title
// bar to move a window, use the [-] [+] [x] buttons to minimize, maximize
// and close. Keys: tab cycles windows, ctrl+w/ctrl+n/ctrl+x close,
// minimize and maximize the top window, digits open launcher entries and q
// quits while the terminal is not focused.
package main

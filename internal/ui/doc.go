// Package ui is an interactive Bubble Tea driver for the row store.
//
// Pieces:
//   - AppModel: owns the store, routes keys and applies operations
//   - TableView: scrolling window over the rows with a cursor
//   - KeybindRegistry / KeyHandler: SPC-leader key sequences
//
// Every store mutation arrives as an OpMsg or CursorOpMsg, so tests can
// drive the model without a terminal.
package ui

// Package ui holds everything color-related: the selectable terminal themes
// with their ANSI accessors, the lipgloss palette the studio styles pull
// from, and the block color assignments shared by the rule table, the
// result lines and the heatmap.
//
// Presentation packages (cli, tui) read from here; nothing in here knows
// about rules or evaluation.
package ui

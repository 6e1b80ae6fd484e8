// Package logging provides opt-in file logging with rotation for feedlens.
//
// With --debug, JSON records are written to ~/.feedlens/logs/feedlens.log and
// can be read back with `feedlens logs`. Without it the default slog handler
// is left alone, so nothing is written while the browser owns the terminal.
package logging

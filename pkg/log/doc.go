// Package log builds the [slog.Handler] used by skipgrid and provides a
// bounded in-memory backlog for log records emitted while the terminal is
// owned by the interactive preview.
package log

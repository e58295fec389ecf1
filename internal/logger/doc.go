// Package logger provides a structured logging solution using the Zap logging library.
// It keeps a process-wide logger behind an atomic level and exposes context-aware
// helpers in plain, formatted and key-value flavours.
package logger

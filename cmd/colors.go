package cmd

// ansiWarn/ansiReset are the ANSI SGR sequences used by the one-shot
// multi-stream merge hint in cmd/common.go. Subtle, readable on dark
// terminal backgrounds.

var (
	ansiReset = "\x1b[0m"
	ansiWarn  = "\x1b[33m" // yellow for warnings
)

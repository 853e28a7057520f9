package cmd

import (
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// hintShown mirrors the reference shim's one-shot "Temporal Cortex
// Platform" INFO hint: fired the first time a process merges three or more
// availability streams, then silenced for the rest of the run.
var hintShown bool

// quietMode reports whether the three-or-more-streams hint should be
// suppressed, per TCX_QUIET, --quiet, or config quiet: true.
func quietMode(flagValue bool) bool {
	if flagValue {
		return true
	}
	if os.Getenv("TCX_QUIET") == "1" {
		return true
	}
	return viper.GetBool("quiet")
}

// maybeLogMergeHint logs the one-shot hint the first time a merge spans
// streamCount >= 3 streams, tagging the line with a correlation ID so
// concurrent invocations can be told apart in shared logs.
func maybeLogMergeHint(streamCount int, quiet bool) {
	if hintShown || quiet || streamCount < 3 {
		return
	}
	hintShown = true
	log.Printf("%s[tcx %s] Temporal Cortex Platform: merging %d availability streams%s",
		ansiWarn, uuid.New().String(), streamCount, ansiReset)
}

package ux

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

// Out is where console output goes. Tests swap it for a buffer.
var Out io.Writer = os.Stdout

func timestamp() string {
	return time.Now().Format("15:04:05")
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %02ds", m, s)
}

// StageHeader prints a timestamped stage header with the command line.
func StageHeader(stage, commandLine string) {
	fmt.Fprintf(Out, "\n%s[%s]%s %s══════════════════════════════════════%s\n",
		Dim, timestamp(), Reset, Cyan, Reset)
	fmt.Fprintf(Out, "%s[%s]%s  %s[+] %s%s\n",
		Dim, timestamp(), Reset, Bold, stage, Reset)
	fmt.Fprintf(Out, "%s[%s]%s  %s%s%s\n",
		Dim, timestamp(), Reset, Dim, truncate(commandLine, 160), Reset)
}

// StageComplete prints a stage completion message.
func StageComplete(stage string, duration time.Duration) {
	fmt.Fprintf(Out, "%s[%s]%s  %s✓ %s complete (%s)%s\n",
		Dim, timestamp(), Reset, Green, stage, formatDuration(duration), Reset)
}

// StageFail prints a stage failure message.
func StageFail(stage, errMsg string) {
	fmt.Fprintf(Out, "%s[%s]%s  %s✗ %s failed: %s%s\n",
		Dim, timestamp(), Reset, Red, stage, errMsg, Reset)
}

// StageSkip prints a stage skip message.
func StageSkip(stage, reason string) {
	fmt.Fprintf(Out, "%s[%s]%s  %s– %s skipped (%s)%s\n",
		Dim, timestamp(), Reset, Dim, stage, reason, Reset)
}

// ProcessOutput prints captured stdout then stderr of a finished process.
// Empty streams print nothing.
func ProcessOutput(stdout, stderr string) {
	if s := strings.TrimRight(stdout, "\n"); s != "" {
		fmt.Fprintln(Out, s)
	}
	if s := strings.TrimRight(stderr, "\n"); s != "" {
		fmt.Fprintf(Out, "%s%s%s\n", Yellow, s, Reset)
	}
}

// Synced prints the resource synchronization outcome.
func Synced(count int, dest string) {
	fmt.Fprintf(Out, "%s[%s]%s  %s⇉ %d asset(s) copied to %s%s\n",
		Dim, timestamp(), Reset, Cyan, count, dest, Reset)
}

// Success prints a final success message.
func Success(stages int, duration time.Duration) {
	fmt.Fprintf(Out, "\n%s[%s]%s  %s%s══ %d stage(s) complete in %s ══%s\n\n",
		Dim, timestamp(), Reset, Bold, Green, stages, formatDuration(duration), Reset)
}

// Failure prints a final failure banner.
func Failure(state string) {
	fmt.Fprintf(Out, "\n%s[%s]%s  %s%s══ pipeline stopped in %s ══%s\n\n",
		Dim, timestamp(), Reset, Bold, Red, state, Reset)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

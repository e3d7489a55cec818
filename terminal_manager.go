package main

import (
	"strings"

	"github.com/muesli/termenv"
)

// setWindowTitle sets the terminal window title to "wts - <repo>" for
// the lifetime of the dashboard. Inside tmux the title belongs to tmux,
// so the escape is skipped there.
func setWindowTitle(repoKey string) {
	if inTmux() {
		return
	}
	title := "wts"
	if strings.TrimSpace(repoKey) != "" && repoKey != "unknown" {
		title = "wts - " + repoKey
	}
	out := termenv.DefaultOutput()
	out.SetWindowTitle(title)
}

func resetWindowTitle() {
	if inTmux() {
		return
	}
	termenv.DefaultOutput().SetWindowTitle("")
}

func inTmux() bool {
	return strings.TrimSpace(envOrDefault("TMUX", "")) != ""
}

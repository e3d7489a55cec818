package ui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// DetailsInfo is the data shown in the info block of the details pane.
type DetailsInfo struct {
	Path       string
	Branch     string
	Divergence string
	PRNumber   int
	PRState    string
	PRTitle    string
	PRURL      string
}

// RenderDetailsInfo renders the labeled info block. The PR URL is
// emitted as a terminal hyperlink when requested.
func RenderDetailsInfo(info DetailsInfo, hyperlinks bool, styles Styles) string {
	var b strings.Builder
	writeRow := func(label string, value string) {
		b.WriteString(styles.Header(PadOrTrim(label, 12)))
		b.WriteString(value)
		b.WriteString("\n")
	}
	writeRow("Path:", info.Path)
	writeRow("Branch:", info.Branch)
	if info.Divergence != "" {
		writeRow("Divergence:", info.Divergence)
	}
	if info.PRNumber > 0 {
		writeRow("PR:", fmt.Sprintf("#%d %s [%s]", info.PRNumber, info.PRTitle, info.PRState))
		url := info.PRURL
		if hyperlinks && url != "" {
			url = termenv.Hyperlink(info.PRURL, info.PRURL)
		}
		if url != "" {
			writeRow("", styles.Muted(url))
		}
	}
	return b.String()
}

// RenderCommitHeader renders the header block of a commit view.
func RenderCommitHeader(sha string, author string, date string, subject string, body string, styles Styles) string {
	var b strings.Builder
	writeRow := func(label string, value string) {
		b.WriteString(styles.Header(PadOrTrim(label, 9)))
		b.WriteString(value)
		b.WriteString("\n")
	}
	writeRow("Commit:", sha)
	writeRow("Author:", author)
	writeRow("Date:", date)
	writeRow("Subject:", subject)
	if body != "" {
		writeRow("Message:", body)
	}
	return b.String()
}

// RenderStatusLines reformats `git status --short` output with a
// compact change code per line; "??" collapses to "U".
func RenderStatusLines(statusRaw string, styles Styles) string {
	if strings.TrimSpace(statusRaw) == "" {
		return styles.Clean("✔ Clean working tree")
	}
	var b strings.Builder
	for _, line := range strings.Split(statusRaw, "\n") {
		if len(line) < 2 {
			continue
		}
		code := line[:2]
		rest := ""
		if len(line) > 3 {
			rest = line[3:]
		}
		display := strings.TrimSpace(code)
		if display == "??" {
			display = "U"
		}
		padded := PadOrTrim(display, 3)
		switch {
		case strings.Contains(code, "M"):
			padded = styles.Dirty(padded)
		case strings.Contains(code, "A"), strings.Contains(code, "?"):
			padded = styles.Clean(padded)
		case strings.Contains(code, "D"):
			padded = styles.Behind(padded)
		case strings.Contains(code, "R"):
			padded = styles.Ahead(padded)
		}
		b.WriteString(padded)
		b.WriteString(rest)
		b.WriteString("\n")
	}
	return b.String()
}

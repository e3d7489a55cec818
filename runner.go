package main

import (
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"unicode/utf8"
)

// runGit executes an external command and returns its stdout. Every
// failure path resolves to an empty string plus a deduplicated
// notification; callers never see an error value. Exit codes listed in
// okReturnCodes are treated as success.
func (s *Session) runGit(args []string, cwd string, okReturnCodes []int, strip bool) string {
	command := strings.Join(args, " ")
	debugf("run: %s (cwd=%s)", command, cwd)

	res, err := s.runProcess(args, cwd, nil, nil)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			name := "command"
			if len(args) > 0 {
				name = args[0]
			}
			s.notifyOnce(notifyKey{notifyCmdMissing, name},
				fmt.Sprintf("Command not found: %s", name), severityError)
			return ""
		}
		s.notifyOnce(notifyKey{notifyCmdError, cwd + ":" + command},
			fmt.Sprintf("Failed to run command: %s: %v", command, err), severityError)
		return ""
	}

	if !slices.Contains(okReturnCodes, res.exitCode) {
		detail := strings.TrimSpace(decodePermissive(res.stderr))
		if detail == "" {
			detail = strings.TrimSpace(decodePermissive(res.stdout))
		}
		suffix := fmt.Sprintf(" (exit %d)", res.exitCode)
		if detail != "" {
			suffix = ": " + detail
		}
		s.notifyOnce(notifyKey{notifyGitFail, cwd + ":" + command},
			fmt.Sprintf("Command failed: %s%s", command, suffix), severityError)
		debugf("error: %s%s", command, suffix)
		return ""
	}

	out := decodePermissive(res.stdout)
	if strip {
		out = strings.TrimSpace(out)
	}
	return out
}

// runCommandChecked runs one mutation step. It returns true only on
// exit code 0 and otherwise emits a single immediate notification; the
// user just triggered the action and expects feedback every time, so
// these are never deduplicated.
func (s *Session) runCommandChecked(args []string, cwd string, errorPrefix string) bool {
	command := strings.Join(args, " ")
	debugf("run (checked): %s (cwd=%s)", command, cwd)

	res, err := s.runProcess(args, cwd, nil, nil)
	if err != nil {
		s.notifyf(severityError, fmt.Sprintf("%s: %v", errorPrefix, err))
		return false
	}
	if res.exitCode == 0 {
		return true
	}
	detail := strings.TrimSpace(decodePermissive(res.stderr))
	if detail == "" {
		detail = strings.TrimSpace(decodePermissive(res.stdout))
	}
	if detail != "" {
		s.notifyf(severityError, fmt.Sprintf("%s: %s", errorPrefix, detail))
	} else {
		s.notifyf(severityError, errorPrefix)
	}
	return false
}

// decodePermissive converts raw process output to a string, replacing
// invalid byte sequences instead of failing.
func decodePermissive(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}

package main

const (
	severityInfo    = "information"
	severityWarning = "warning"
	severityError   = "error"
)

const (
	notifyGitFail    = "git_fail"
	notifyCmdMissing = "cmd_missing"
	notifyCmdError   = "cmd_error"
	notifyPRDecode   = "pr_json_decode"
	notifyCacheRead  = "cache_read"
	notifyCacheWrite = "cache_write"
	notifyLastSel    = "last_selected_write"
	notifyRepoKey    = "repo_key"
)

// notifyKey identifies a deduplicated notification. Category and context
// are kept separate so two different commands failing in the same
// directory never collide on a concatenated string.
type notifyKey struct {
	category string
	context  string
}

// Notification is a user-facing message surfaced by the core.
type Notification struct {
	Message  string
	Severity string
}

// NotifyFunc receives notifications from the core. The UI layer renders
// them; tests collect them.
type NotifyFunc func(n Notification)

func (s *Session) notifyf(severity string, message string) {
	if s.notify != nil {
		s.notify(Notification{Message: message, Severity: severity})
	}
}

// notifyOnce reports a message at most once per session for a given key.
func (s *Session) notifyOnce(key notifyKey, message string, severity string) {
	s.mu.Lock()
	seen := s.notified[key]
	if !seen {
		s.notified[key] = true
	}
	s.mu.Unlock()
	if seen {
		debugf("notify suppressed (%s:%s)", key.category, key.context)
		return
	}
	s.notifyf(severity, message)
}

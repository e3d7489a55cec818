package main

import (
	"os/exec"
	"strings"
	"sync"
)

type fakeCall struct {
	args  []string
	cwd   string
	stdin []byte
	env   map[string]string
}

// fakeRunner stands in for the process layer. Tests install a respond
// function and assert on the recorded calls.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []fakeCall
	respond func(args []string, cwd string) (processResult, error)
}

func (f *fakeRunner) run(args []string, cwd string, stdin []byte, env map[string]string) (processResult, error) {
	f.mu.Lock()
	envCopy := make(map[string]string, len(env))
	for k, v := range env {
		envCopy[k] = v
	}
	f.calls = append(f.calls, fakeCall{
		args:  append([]string(nil), args...),
		cwd:   cwd,
		stdin: append([]byte(nil), stdin...),
		env:   envCopy,
	})
	f.mu.Unlock()
	if f.respond != nil {
		return f.respond(args, cwd)
	}
	return processResult{}, nil
}

func (f *fakeRunner) callCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(strings.Join(c.args, " "), prefix) {
			n++
		}
	}
	return n
}

func (f *fakeRunner) lastCall(prefix string) (fakeCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if strings.HasPrefix(strings.Join(f.calls[i].args, " "), prefix) {
			return f.calls[i], true
		}
	}
	return fakeCall{}, false
}

type notifyRecorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *notifyRecorder) record(n Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()
}

func (r *notifyRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *notifyRecorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := make([]string, len(r.items))
	for i, n := range r.items {
		msgs[i] = n.Message
	}
	return msgs
}

func (r *notifyRecorder) containing(substr string) int {
	n := 0
	for _, m := range r.messages() {
		if strings.Contains(m, substr) {
			n++
		}
	}
	return n
}

func newTestSession(f *fakeRunner) (*Session, *notifyRecorder) {
	rec := &notifyRecorder{}
	s := NewSession(defaultConfig(), rec.record)
	s.runProcess = f.run
	s.lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	return s, rec
}

func textResult(out string) (processResult, error) {
	return processResult{stdout: []byte(out)}, nil
}

func exitResult(code int, stderr string) (processResult, error) {
	return processResult{exitCode: code, stderr: []byte(stderr)}, nil
}

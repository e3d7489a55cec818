package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"sync"
)

const statusConcurrency = 24

// processResult is the raw outcome of one external process run. A
// non-nil error from processFunc means the process never ran (missing
// binary, spawn failure); exit codes are reported in exitCode.
type processResult struct {
	stdout   []byte
	stderr   []byte
	exitCode int
}

type processFunc func(args []string, cwd string, stdin []byte, env map[string]string) (processResult, error)

// Session owns all mutable state shared across operations for one
// process lifetime: the notification dedup set, the memoized main
// branch and repo key, the divergence cache, and the admission gate for
// concurrent status queries. It is created at startup and discarded at
// exit; there are no package-level globals behind it.
type Session struct {
	cfg    *AppConfig
	notify NotifyFunc

	mu         sync.Mutex
	notified   map[notifyKey]bool
	mainBranch string
	repoKey    string
	divergence map[string]string

	sem chan struct{}

	// onMutation is invoked once after every successful mutation so the
	// owner can schedule a re-enumeration.
	onMutation func()

	runProcess processFunc
	lookPath   func(name string) (string, error)
}

func NewSession(cfg *AppConfig, notify NotifyFunc) *Session {
	if cfg == nil {
		cfg = defaultConfig()
	}
	return &Session{
		cfg:        cfg,
		notify:     notify,
		notified:   make(map[notifyKey]bool),
		divergence: make(map[string]string),
		sem:        make(chan struct{}, statusConcurrency),
		runProcess: runProcess,
		lookPath:   exec.LookPath,
	}
}

// SetOnMutation registers the callback run after each successful
// create/delete/absorb.
func (s *Session) SetOnMutation(fn func()) {
	s.onMutation = fn
}

func (s *Session) acquire() { s.sem <- struct{}{} }
func (s *Session) release() { <-s.sem }

func (s *Session) mutationDone() {
	if s.onMutation != nil {
		s.onMutation()
	}
}

func runProcess(args []string, cwd string, stdin []byte, env map[string]string) (processResult, error) {
	if len(args) == 0 {
		return processResult{}, errors.New("empty command")
	}
	cmd := exec.Command(args[0], args[1:]...)
	if cwd != "" {
		cmd.Dir = cwd
	}
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	if len(env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	res := processResult{stdout: stdout.Bytes(), stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.exitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}

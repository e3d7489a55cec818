package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const hookFileName = ".wt"

// hookCommand is a tagged variant: either a shell command string or the
// built-in link_topsymlinks action. The special token is resolved once
// at parse time instead of being string-matched on every execution.
type hookCommand struct {
	shell           string
	linkTopSymlinks bool
}

type hookConfig struct {
	initCommands      []hookCommand
	terminateCommands []hookCommand
}

type rawHookFile struct {
	InitCommands      any `yaml:"init_commands"`
	TerminateCommands any `yaml:"terminate_commands"`
}

// loadHookConfig reads the lifecycle-hook file at the main worktree
// root. A missing file returns (nil, nil); a malformed file returns an
// error so the caller can report it and skip hooks without blocking the
// primary operation.
func loadHookConfig(mainPath string) (*hookConfig, error) {
	data, err := os.ReadFile(filepath.Join(mainPath, hookFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var raw rawHookFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &hookConfig{
		initCommands:      parseHookCommands(normalizeCommandList(raw.InitCommands)),
		terminateCommands: parseHookCommands(normalizeCommandList(raw.TerminateCommands)),
	}, nil
}

func parseHookCommands(values []string) []hookCommand {
	cmds := make([]hookCommand, 0, len(values))
	for _, v := range values {
		if v == "link_topsymlinks" {
			cmds = append(cmds, hookCommand{linkTopSymlinks: true})
			continue
		}
		cmds = append(cmds, hookCommand{shell: v})
	}
	return cmds
}

// runHooks executes lifecycle hooks sequentially. Hook failures are
// reported but never abort the surrounding mutation; hooks are
// best-effort by contract.
func (s *Session) runHooks(cmds []hookCommand, cwd string, env map[string]string) {
	for _, cmd := range cmds {
		if cmd.linkTopSymlinks {
			mainPath := env["MAIN_WORKTREE_PATH"]
			if mainPath != "" {
				s.linkTopSymlinks(mainPath, cwd)
			}
			continue
		}
		// The WORKTREE_* variables ride the process environment so hooks
		// that invoke scripts see them too, not only the command line.
		res, err := s.runProcess([]string{"sh", "-c", cmd.shell}, cwd, nil, env)
		if err != nil {
			s.notifyf(severityError, fmt.Sprintf("Error running command '%s': %v", cmd.shell, err))
			continue
		}
		if res.exitCode != 0 {
			detail := strings.TrimSpace(decodePermissive(res.stderr))
			if detail == "" {
				detail = fmt.Sprintf("exit %d", res.exitCode)
			}
			s.notifyf(severityError, fmt.Sprintf("Error running command '%s': %s", cmd.shell, detail))
		}
	}
}

// hookEnv builds the environment exposed to lifecycle hooks.
func hookEnv(branch string, mainPath string, wtPath string) map[string]string {
	return map[string]string{
		"WORKTREE_BRANCH":    branch,
		"MAIN_WORKTREE_PATH": mainPath,
		"WORKTREE_PATH":      wtPath,
		"WORKTREE_NAME":      filepath.Base(wtPath),
	}
}

// linkTopSymlinks symlinks top-level ignored files and well-known editor
// config directories from the main worktree into a new worktree, so
// untracked tooling state (env files, caches, editor settings) carries
// over without copying.
func (s *Session) linkTopSymlinks(mainPath string, targetPath string) {
	out := s.runGit([]string{"git", "ls-files", "--others", "--ignored", "--exclude-standard"}, mainPath, []int{0}, false)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "/") || line == ".DS_Store" || strings.Contains(line, ".mypy_cache") {
			continue
		}
		src := filepath.Join(mainPath, line)
		dst := filepath.Join(targetPath, line)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if _, err := os.Lstat(dst); err == nil {
			continue
		}
		_ = os.Symlink(src, dst)
	}
	for _, editorDir := range []string{".cursor", ".claude", ".idea", ".vscode"} {
		src := filepath.Join(mainPath, editorDir)
		dst := filepath.Join(targetPath, editorDir)
		info, err := os.Stat(src)
		if err != nil || !info.IsDir() {
			continue
		}
		if _, err := os.Lstat(dst); err == nil {
			continue
		}
		_ = os.Symlink(src, dst)
	}
	_ = os.MkdirAll(filepath.Join(targetPath, "tmp"), 0o755)
	if _, err := os.Stat(filepath.Join(targetPath, ".envrc")); err == nil {
		if _, lookErr := s.lookPath("direnv"); lookErr == nil {
			_, _ = s.runProcess([]string{"direnv", "allow", "."}, targetPath, nil, nil)
		}
	}
}

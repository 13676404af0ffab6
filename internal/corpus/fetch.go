package corpus

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultRepoURL is the upstream revo-fonto repository.
const DefaultRepoURL = "https://github.com/revuloj/revo-fonto.git"

// Action reports what Fetch did.
type Action string

const (
	ActionCloned  Action = "cloned"
	ActionUpdated Action = "updated"
)

// Fetcher clones or updates a checkout with the git command line.
type Fetcher struct {
	RepoURL string
	// Git is the git binary; "git" from PATH when empty.
	Git string
}

// Fetch clones RepoURL into dest, or runs git pull when dest already
// holds a checkout. It returns the action taken and git's output.
func (f Fetcher) Fetch(ctx context.Context, dest string) (Action, string, error) {
	if _, err := os.Stat(filepath.Join(dest, ".git")); err == nil {
		out, err := f.run(ctx, dest, "pull")
		if err != nil {
			return "", out, fmt.Errorf("git pull in %s: %w", dest, err)
		}
		return ActionUpdated, out, nil
	}

	url := f.RepoURL
	if url == "" {
		url = DefaultRepoURL
	}
	out, err := f.run(ctx, "", "clone", url, dest)
	if err != nil {
		return "", out, fmt.Errorf("git clone %s: %w", url, err)
	}
	return ActionCloned, out, nil
}

func (f Fetcher) run(ctx context.Context, dir string, args ...string) (string, error) {
	git := f.Git
	if git == "" {
		git = "git"
	}
	cmd := exec.CommandContext(ctx, git, args...)
	cmd.Dir = dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return strings.TrimSpace(buf.String()), err
}

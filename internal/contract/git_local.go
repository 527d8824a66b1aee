package contract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/huangsam/tempo/schema"
)

// timestampFormat asks git for each commit's local hour of day and ISO
// weekday, one commit per line.
const timestampFormat = "%H %u"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// run executes a git command and returns its stdout output. Cancellation of
// the context kills the git process, so a canceled source never yields
// partial output.
func (c *LocalGitClient) run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, fmt.Errorf("git '%v' exit: %s", strings.Join(fullArgs, " "), strings.TrimSpace(string(exitErr.Stderr)))
	} else if err != nil {
		return nil, fmt.Errorf("git '%v' unknown: %w", strings.Join(fullArgs, " "), err)
	}
	return out, nil
}

// RepoRoot implements the GitClient interface by executing 'git rev-parse --show-toplevel'.
func (c *LocalGitClient) RepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// HeadHash implements the GitClient interface.
func (c *LocalGitClient) HeadHash(ctx context.Context, repoPath string) (string, error) {
	out, err := c.run(ctx, repoPath, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// CommitTimestamps implements the GitClient interface. It runs one git log
// over the requested range and parses each commit's local hour and weekday.
func (c *LocalGitClient) CommitTimestamps(ctx context.Context, repoPath string, opts LogOptions) ([]schema.TimestampRecord, error) {
	args := []string{
		"log",
		"--pretty=format:%ad",
		"--date=format:" + timestampFormat,
	}
	if opts.Author != "" {
		args = append(args, "--author="+opts.Author)
	}
	if !opts.Start.IsZero() {
		args = append(args, "--after="+opts.Start.Format(DateFormat))
	}
	if !opts.End.IsZero() {
		args = append(args, "--before="+opts.End.Format(DateFormat))
	}

	out, err := c.run(ctx, repoPath, args...)
	if err != nil {
		// A repo with no commits yet makes git log exit non-zero; treat the
		// unborn-branch case as an empty history, not a retrieval failure.
		if strings.Contains(err.Error(), "does not have any commits yet") {
			return nil, nil
		}
		return nil, err
	}
	return ParseTimestampLines(string(out)), nil
}

// ParseTimestampLines parses "HH W" git log lines into timestamp records.
// Malformed lines are skipped.
func ParseTimestampLines(out string) []schema.TimestampRecord {
	var records []schema.TimestampRecord
	for line := range strings.SplitSeq(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		hour, err := strconv.Atoi(fields[0])
		if err != nil || hour < 0 || hour > 23 {
			continue
		}
		weekday, err := strconv.Atoi(fields[1])
		if err != nil || weekday < 1 || weekday > 7 {
			continue
		}
		records = append(records, schema.TimestampRecord{Hour: hour, Weekday: weekday})
	}
	return records
}

// CloneTemp implements the GitClient interface. The clone is blobless and
// checkout-free since only commit metadata is needed.
func (c *LocalGitClient) CloneTemp(ctx context.Context, url string) (string, func() error, error) {
	dir, err := os.MkdirTemp("", "tempo-clone-*")
	if err != nil {
		return "", nil, fmt.Errorf("create temp clone dir: %w", err)
	}
	cleanup := func() error { return os.RemoveAll(dir) }

	if _, err := c.run(ctx, ".", "clone", "--quiet", "--filter=blob:none", "--no-checkout", url, dir); err != nil {
		_ = cleanup()
		return "", nil, err
	}
	return dir, cleanup, nil
}

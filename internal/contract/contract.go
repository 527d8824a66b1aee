// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/tempo/schema"
)

// LogOptions narrows a commit log to the analyzed range and author.
type LogOptions struct {
	Start  time.Time // Inclusive range start
	End    time.Time // Inclusive range end
	Author string    // Optional author filter (name or email), empty for all
}

// GitClient defines the retrieval operations the analysis needs from a
// version-control backend. This allows the pipeline to be tested without a
// real git executable.
type GitClient interface {
	// RepoRoot returns the absolute path to the root of the repository
	// containing the given context path.
	RepoRoot(ctx context.Context, contextPath string) (string, error)

	// HeadHash returns the current HEAD commit hash of the repository.
	HeadHash(ctx context.Context, repoPath string) (string, error)

	// CommitTimestamps returns one record per commit in range, carrying the
	// commit's local hour of day and ISO weekday.
	CommitTimestamps(ctx context.Context, repoPath string, opts LogOptions) ([]schema.TimestampRecord, error)

	// CloneTemp fetches a remote repository into a temporary directory and
	// returns its path together with a cleanup function.
	CloneTemp(ctx context.Context, url string) (string, func() error, error)
}

// BucketCache stores bucket counts keyed by repository state and log options,
// so repeated runs over an unchanged history skip the git traversal.
type BucketCache interface {
	// Get returns the cached buckets for key, with ok=false on a miss.
	Get(key string) (hours schema.HourBucket, week schema.WeekBucket, ok bool, err error)

	// Set stores the buckets under key, replacing any previous entry.
	Set(key string, hours schema.HourBucket, week schema.WeekBucket) error

	// Close releases the underlying store.
	Close() error
}

// CacheKey derives the cache key for a repository state and log options.
// The HEAD hash pins the history; the range and author pin the query.
func CacheKey(headHash string, opts LogOptions) string {
	return fmt.Sprintf("%s|%s|%s|%s",
		headHash,
		opts.Start.Format(DateFormat),
		opts.End.Format(DateFormat),
		opts.Author,
	)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/tempo/internal/contract"
	"github.com/huangsam/tempo/internal/iocache"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheCmd groups the bucket cache maintenance commands.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the bucket cache",
	Long: `Manage the local cache of per-repository commit counts.

Repeated runs over an unchanged repository history read their counts
from this cache instead of re-walking the git log. Entries are keyed by
the repository HEAD hash and the analysis filters, so any new commit or
changed filter bypasses stale entries on its own.

Subcommands:
  status - Show the cache location and entry count
  clear  - Delete the cache database`,
}

// cachePath resolves the cache database location the same way analyze does.
func cachePath() string {
	if p := viper.GetString("cache-path"); p != "" {
		return p
	}
	return iocache.DefaultDBPath()
}

// cacheClearCmd deletes the cache database.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the bucket cache database",
	Run: func(_ *cobra.Command, _ []string) {
		path := cachePath()
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				fmt.Printf("No cache database at %s\n", path)
				return
			}
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Printf("Removed cache database at %s\n", path)
	},
}

// cacheStatusCmd shows cache location and size.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cache location and entry count",
	Run: func(_ *cobra.Command, _ []string) {
		path := cachePath()
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Printf("No cache database at %s\n", path)
				return
			}
			contract.LogFatal("Failed to stat cache", err)
		}

		store, err := iocache.NewBucketStore(path)
		if err != nil {
			contract.LogFatal("Failed to open cache", err)
		}
		defer func() { _ = store.Close() }()

		entries, err := store.Entries()
		if err != nil {
			contract.LogFatal("Failed to count cache entries", err)
		}
		fmt.Printf("Cache database: %s\n", path)
		fmt.Printf("  Size:    %d bytes\n", info.Size())
		fmt.Printf("  Entries: %d\n", entries)
	},
}

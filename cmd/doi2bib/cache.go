package main

import (
	"fmt"

	"github.com/bibkit/doi2bib/internal/cache"
	"github.com/bibkit/doi2bib/internal/config"
	"github.com/bibkit/doi2bib/internal/identify"
	"github.com/spf13/cobra"
)

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheDeleteCmd)
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local resolution cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := mustOpenCache()
		defer store.Close()

		if err := store.Clear(); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		fmt.Println("Cache cleared")
		return nil
	},
}

var cacheDeleteCmd = &cobra.Command{
	Use:   "delete <identifier>",
	Short: "Remove a single cached entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := mustOpenCache()
		defer store.Close()

		if err := store.Delete(identify.Preprocess(args[0])); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		return nil
	},
}

func mustOpenCache() *cache.Cache {
	path, err := config.CachePath()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	store, err := cache.Open(path)
	if err != nil {
		exitWithError(ExitError, "opening cache: %v", err)
	}
	return store
}

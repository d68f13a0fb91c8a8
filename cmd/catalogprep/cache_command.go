package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"catalogprep/internal/artifactcache"
	"catalogprep/internal/pipeline"
	"catalogprep/internal/services"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and invalidate cached stage artifacts",
	}
	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheInvalidateCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	return cacheCmd
}

func (c *commandContext) withCache(cmd *cobra.Command, fn func(*artifactcache.Cache) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, "cache", "prepare directories", "", err)
	}
	cache, err := artifactcache.OpenFromConfig(cmd.Context(), cfg)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "cache", "open", cfg.Cache.ManifestPath, err)
	}
	defer cache.Close()
	return fn(cache)
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCache(cmd, func(cache *artifactcache.Cache) error {
				entries, err := cache.List(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Cache is empty")
					return nil
				}
				rows := make([][]string, len(entries))
				for i, e := range entries {
					lastUsed := "never"
					if e.LastUsedAt != nil {
						lastUsed = e.LastUsedAt.Local().Format("2006-01-02 15:04")
					}
					rows[i] = []string{
						e.Stage,
						e.RuleVersion,
						shortHash(e.InputHash),
						strconv.Itoa(e.Records),
						strconv.FormatInt(e.SizeBytes, 10),
						e.CreatedAt.Local().Format("2006-01-02 15:04"),
						lastUsed,
					}
				}
				fmt.Fprintln(out, renderTable(out,
					[]string{"Stage", "Rules", "Input", "Records", "Bytes", "Created", "Last used"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
}

func newCacheInvalidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate <stage>",
		Short: "Drop the cached artifacts of one stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.ToLower(strings.TrimSpace(args[0]))
			if !contains(pipeline.CachedStages(), name) {
				return services.Wrap(services.ErrValidation, "cache", "invalidate",
					fmt.Sprintf("stage %q is not cached (want one of %s)", name, strings.Join(pipeline.CachedStages(), ", ")), nil)
			}
			return ctx.withCache(cmd, func(cache *artifactcache.Cache) error {
				removed, err := cache.Invalidate(cmd.Context(), name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d %s artifact(s)\n", removed, name)
				return nil
			})
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCache(cmd, func(cache *artifactcache.Cache) error {
				removed, err := cache.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d artifact(s)\n", removed)
				return nil
			})
		},
	}
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"catalogprep/internal/pipeline"
	"catalogprep/internal/preflight"
	"catalogprep/internal/services"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check paths, settings and stage readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return services.Wrap(services.ErrConfiguration, "check", "prepare directories", "", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config: %s\n", ctx.configPath)

			results := preflight.RunAll(cmd.Context(), cfg)
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Name, statusLabel(r.Passed), r.Detail})
			}
			fmt.Fprintln(out, renderTable(out, []string{"Check", "Status", "Detail"}, rows, nil))

			runner, err := pipeline.NewRunner(cfg, nil)
			if err != nil {
				return err
			}
			health := runner.HealthCheck(cmd.Context())
			stageRows := make([][]string, 0, len(health))
			ready := true
			for _, h := range health {
				ready = ready && h.Ready
				stageRows = append(stageRows, []string{h.Name, yesNo(h.Ready), h.Detail})
			}
			fmt.Fprintln(out, renderTable(out, []string{"Stage", "Ready", "Detail"}, stageRows, nil))

			if failed := preflight.Failed(results); len(failed) > 0 || !ready {
				return services.Wrap(services.ErrValidation, "check", "", fmt.Sprintf("%d check(s) failed", len(failed)), nil)
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}

func statusLabel(passed bool) string {
	if passed {
		return "ok"
	}
	return "FAIL"
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"catalogprep/internal/imagecheck"
	"catalogprep/internal/logging"
	"catalogprep/internal/services"
)

func newImagesCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "images",
		Short: "Validate the training images and list problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "images")
			exp := imagecheck.ExpectationFromConfig(cfg.Images)
			summary, err := imagecheck.ValidateDir(cmd.Context(), cfg.Paths.ImageDir, exp, logger)
			if err != nil {
				return services.Wrap(services.ErrNotFound, "images", "scan", cfg.Paths.ImageDir, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Checked %d files in %s; %d with issues (want %dx%d %s %s)\n",
				summary.Checked, cfg.Paths.ImageDir, summary.FilesWithIssues(), exp.Width, exp.Height, exp.Mode, exp.Format)
			if summary.Valid() {
				return nil
			}
			issues := summary.Issues
			if limit > 0 && len(issues) > limit {
				issues = issues[:limit]
			}
			rows := make([][]string, len(issues))
			for i, issue := range issues {
				rows[i] = []string{issue.File, issue.Kind, issue.Detail}
			}
			fmt.Fprintln(out, renderTable(out, []string{"File", "Issue", "Detail"}, rows, nil))
			if hidden := len(summary.Issues) - len(issues); hidden > 0 {
				fmt.Fprintf(out, "%s more issues not shown\n", strconv.Itoa(hidden))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of issues listed (0 lists all)")
	return cmd
}

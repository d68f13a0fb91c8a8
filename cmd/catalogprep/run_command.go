package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"catalogprep/internal/pipeline"
	"catalogprep/internal/stage"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var through string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full preprocessing pipeline",
		Long: "Run loads the features and labels, validates images, fuses and normalizes\n" +
			"descriptions, reports languages and token frequencies, renders figures and\n" +
			"writes the train/test partitions. Cached stages are reused unless --force is set.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runner, err := pipeline.NewRunner(cfg, logger)
			if err != nil {
				return err
			}
			state, err := runner.Run(cmd.Context(), pipeline.RunOptions{Force: force, Through: through})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRunSummary(cmd, state))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Invalidate cached stages before running")
	cmd.Flags().StringVar(&through, "through", "", "Stop after the named stage ("+strings.Join(pipeline.StageNames(), ", ")+")")
	return cmd
}

func renderRunSummary(cmd *cobra.Command, state *stage.State) string {
	rows := [][]string{{"Run ID", state.RunID}}
	if state.Features != nil {
		rows = append(rows, []string{"Records", strconv.Itoa(state.Features.Len())})
		rows = append(rows, []string{"Classes", strconv.Itoa(len(state.Labels.Distribution()))})
	}
	if state.Images.Checked > 0 {
		rows = append(rows, []string{"Images checked", strconv.Itoa(state.Images.Checked)})
		rows = append(rows, []string{"Images with issues", strconv.Itoa(state.Images.FilesWithIssues())})
		rows = append(rows, []string{"Records without image", strconv.Itoa(state.MissingImages)})
	}
	for _, c := range topCounts(state, 3) {
		rows = append(rows, []string{"Language " + c[0], c[1]})
	}
	for _, name := range pipeline.CachedStages() {
		if hit, ok := state.CacheHits[name]; ok {
			rows = append(rows, []string{"Cache hit (" + name + ")", yesNo(hit)})
		}
	}
	if state.Matrix != nil {
		rows = append(rows, []string{"Vocabulary", strconv.Itoa(len(state.Matrix.Tokens()))})
	}
	if state.Figures.Skipped {
		rows = append(rows, []string{"Figures", "skipped (directory not empty)"})
	} else if state.Figures.Generated > 0 {
		rows = append(rows, []string{"Figures", strconv.Itoa(state.Figures.Generated)})
	}
	if state.Partition != nil {
		rows = append(rows, []string{"Train / test", fmt.Sprintf("%d / %d", state.Partition.XTrain.Len(), state.Partition.XTest.Len())})
	}
	return renderTable(cmd.OutOrStdout(), []string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}

func topCounts(state *stage.State, n int) [][2]string {
	counts := state.LanguageReport.Counts
	if len(counts) > n {
		counts = counts[:n]
	}
	out := make([][2]string, 0, len(counts))
	for _, c := range counts {
		share := state.LanguageReport.Share(c.Label) * 100
		out = append(out, [2]string{c.Label, fmt.Sprintf("%d (%.1f%%)", c.Count, share)})
	}
	return out
}

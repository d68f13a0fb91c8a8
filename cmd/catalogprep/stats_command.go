package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"catalogprep/internal/pipeline"
	"catalogprep/internal/services"
	"catalogprep/internal/stage"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var top int
	var class string
	var distinctive bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-class token statistics",
		Long: "Stats runs the pipeline up to token aggregation (reusing cached stages)\n" +
			"and prints the class distribution, or the top tokens of every class.",
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
			if top <= 0 {
				return services.Wrap(services.ErrValidation, "stats", "flags", "--top must be positive", nil)
			}
			statsCfg := *cfg
			statsCfg.Images.Validate = false
			statsCfg.Figures.Enabled = false
			statsCfg.Language.Enabled = false

			runner, err := pipeline.NewRunner(&statsCfg, logger)
			if err != nil {
				return err
			}
			state, err := runner.Run(cmd.Context(), pipeline.RunOptions{Through: pipeline.StageFrequency})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if class == "" && !distinctive {
				fmt.Fprintln(out, renderClassTable(cmd, state))
				return nil
			}
			labels := state.Matrix.Labels()
			if class != "" {
				if !contains(labels, class) {
					return services.Wrap(services.ErrNotFound, "stats", "class", fmt.Sprintf("unknown class %q", class), nil)
				}
				labels = []string{class}
			}
			for _, label := range labels {
				fmt.Fprintf(out, "Classe %s\n", label)
				fmt.Fprintln(out, renderTokenTable(cmd, state, label, top, distinctive))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 10, "Number of tokens listed per class")
	cmd.Flags().StringVar(&class, "class", "", "Only show the given prdtypecode")
	cmd.Flags().BoolVar(&distinctive, "distinctive", false, "Rank tokens by TF-IDF weight instead of raw count")
	return cmd
}

func renderClassTable(cmd *cobra.Command, state *stage.State) string {
	dist := state.Labels.Distribution()
	rows := make([][]string, 0, len(dist))
	for _, lc := range dist {
		rows = append(rows, []string{
			lc.Code,
			strconv.Itoa(lc.Count),
			strconv.Itoa(state.Matrix.Total(lc.Code)),
			strconv.Itoa(len(state.Matrix.Counts(lc.Code))),
		})
	}
	return renderTable(cmd.OutOrStdout(), []string{"prdtypecode", "Records", "Tokens", "Distinct"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight})
}

func renderTokenTable(cmd *cobra.Command, state *stage.State, label string, top int, distinctive bool) string {
	var rows [][]string
	if distinctive {
		for _, wt := range state.Matrix.Distinctive(label, top) {
			rows = append(rows, []string{wt.Term, strconv.FormatFloat(wt.Weight, 'f', 4, 64)})
		}
		return renderTable(cmd.OutOrStdout(), []string{"Token", "TF-IDF"}, rows, []columnAlignment{alignLeft, alignRight})
	}
	for _, tc := range state.Matrix.Top(label, top) {
		rows = append(rows, []string{tc.Token, strconv.Itoa(tc.Count)})
	}
	return renderTable(cmd.OutOrStdout(), []string{"Token", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

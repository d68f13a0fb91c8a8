package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"catalogprep/internal/language"
	"catalogprep/internal/services"
	"catalogprep/internal/textnorm"
)

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [text...]",
		Short: "Normalize text with the configured cleaning steps",
		Long:  "Normalize joins the arguments into one text; without arguments every\nnon-empty stdin line is normalized on its own.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			normalizer, err := textnorm.FromConfig(cfg.Normalizer)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "normalize", "build", "", err)
			}
			lines, err := inputLines(args, cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, line := range lines {
				fmt.Fprintln(out, normalizer.Normalize(line))
			}
			return nil
		},
	}
}

func newLangCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "lang [text...]",
		Short: "Classify the language of text",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := inputLines(args, cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			classifier := language.NewClassifier(nil)
			labels, err := classifier.ClassifyAll(cmd.Context(), lines)
			if err != nil {
				return err
			}
			rows := make([][]string, len(lines))
			for i, line := range lines {
				rows[i] = []string{labels[i], truncate(line, 60)}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(cmd.OutOrStdout(), []string{"Langue", "Texte"}, rows, nil))
			return nil
		},
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

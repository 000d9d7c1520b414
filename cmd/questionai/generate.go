package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"questionai/internal/app"
	"questionai/internal/models"
	"questionai/internal/pdf"
	"questionai/internal/prompt"
	"questionai/internal/render"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a question paper and print it",
	Example: `  questionai generate --type MCQ --count 10 --topic Arrays --level Easy
  questionai generate --type Theory --count 5 --topic OS --level Hard --pdf paper.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		form := models.FormInput{}
		form.Type, _ = cmd.Flags().GetString("type")
		form.NumberOfQuestions, _ = cmd.Flags().GetString("count")
		form.Topic, _ = cmd.Flags().GetString("topic")
		form.Level, _ = cmd.Flags().GetString("level")
		pdfPath, _ := cmd.Flags().GetString("pdf")

		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
			log.SetLevel(logrus.WarnLevel)
		}

		ctx := cmd.Context()
		gen, err := app.NewGenerator(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("initialize %s client: %w", cfg.Provider, err)
		}
		defer gen.Close()

		if cfg.GenerationTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.GenerationTimeout)
			defer cancel()
		}

		text, err := gen.Generate(ctx, prompt.Build(form))
		if err != nil {
			return err
		}
		if text == "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "The model returned no questions.")
			return nil
		}

		printLines(cmd.OutOrStdout(), text)

		if pdfPath != "" {
			if err := writePDF(pdfPath, text); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s\n", pdfPath)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().String("type", "", "Type of questions: MCQ, Theory, ...")
	generateCmd.Flags().String("count", "", "Number of questions: 10, 20, 30 ...")
	generateCmd.Flags().String("topic", "", "Topic: CSE, Aptitude, Arrays, ...")
	generateCmd.Flags().String("level", "", "Difficulty: Easy, Medium, Hard")
	generateCmd.Flags().String("pdf", "", "Also write the questions to this PDF file")
	generateCmd.Flags().BoolP("verbose", "v", false, "Show info logs")

	for _, name := range []string{"type", "count", "topic", "level"} {
		_ = generateCmd.MarkFlagRequired(name)
	}
}

// printLines writes the display lines, underlining headers.
func printLines(w io.Writer, text string) {
	for line := range render.DisplayLines(text) {
		if line.Header {
			fmt.Fprintf(w, "\n%s\n%s\n", line.Text, underline(line.Text))
			continue
		}
		fmt.Fprintln(w, line.Text)
	}
}

func underline(s string) string {
	return strings.Repeat("-", utf8.RuneCountInString(s))
}

func writePDF(path, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := pdf.Render(f, render.DisplayLines(text)); err != nil {
		f.Close()
		return fmt.Errorf("render PDF: %w", err)
	}
	return f.Close()
}

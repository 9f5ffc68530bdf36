package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timetable/pkg/errors"
	"github.com/matzehuels/timetable/pkg/pipeline"
)

// lintCommand creates the lint command.
func (c *CLI) lintCommand() *cobra.Command {
	var df docFlags
	var strict bool

	cmd := &cobra.Command{
		Use:   "lint FILE...",
		Short: "Check timetable files for errors and style warnings",
		Long: `Parse each file and report style warnings such as lessons out of order
or stray spaces. Every file is checked even when an earlier one fails.

The command exits with a non-zero status when a file does not parse, or
with --strict when any warning is found.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := df.options(cmd)
			if err != nil {
				return err
			}
			opts.Lint = true
			return c.runLint(cmd.Context(), cmd.InOrStdin(), args, opts, strict)
		},
	}

	df.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")

	return cmd
}

func (c *CLI) runLint(ctx context.Context, stdin io.Reader, paths []string, opts pipeline.Options, strict bool) error {
	docs, err := readDocuments(paths, stdin)
	if err != nil {
		return err
	}

	runner := c.newRunner(true)
	defer runner.Close()

	var failed, warned int
	for _, doc := range docs {
		_, warnings, err := runner.Parse(ctx, []pipeline.Document{doc}, opts)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failed++
			printError("%s", errors.UserMessage(err))
			continue
		}
		if len(warnings) == 0 {
			printSuccess("%s", doc.Name)
			continue
		}
		warned += len(warnings)
		for _, w := range warnings {
			printWarning("%s", w.String())
		}
	}

	switch {
	case failed > 0:
		return fmt.Errorf("%s of %d failed to parse", plural(failed, "file"), len(docs))
	case strict && warned > 0:
		return fmt.Errorf("%s found", plural(warned, "warning"))
	case warned == 0:
		printNextStep("Render them", "timetable render "+quoteArgs(paths))
	}
	return nil
}

package cli

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timetable/pkg/pipeline"
	"github.com/matzehuels/timetable/pkg/timetable"
)

// fmtCommand creates the fmt command.
func (c *CLI) fmtCommand() *cobra.Command {
	var df docFlags
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Print a timetable file in canonical form",
		Long: `Parse a timetable file and print it back in canonical form: one config
block with the title, week labels, removed marker and display options,
underlined day names and one lesson per line with single spaces between
fields. Comments and colour defaults are folded into the lessons.

Settings from --config and flags are not written; only what the file itself
sets is kept. Use --write to replace the file instead of printing it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := df.options(cmd)
			if err != nil {
				return err
			}
			opts.Lint = false
			opts.Settings = timetable.Settings{}
			return c.runFmt(cmd.Context(), cmd.InOrStdin(), args[0], opts, write)
		},
	}

	df.register(cmd)
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")

	return cmd
}

func (c *CLI) runFmt(ctx context.Context, stdin io.Reader, path string, opts pipeline.Options, write bool) error {
	docs, err := readDocuments([]string{path}, stdin)
	if err != nil {
		return err
	}
	runner := c.newRunner(true)
	defer runner.Close()
	pages, _, err := runner.Parse(ctx, docs, opts)
	if err != nil {
		return err
	}
	page := pages[0]

	var buf bytes.Buffer
	if err := page.Timetable.FormatWith(&buf, page.Settings); err != nil {
		return err
	}
	if !write || path == "-" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if bytes.Equal(buf.Bytes(), docs[0].Data) {
		c.Logger.Debug("already formatted", "path", path)
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), info.Mode().Perm()); err != nil {
		return err
	}
	printSuccess("Formatted %s", path)
	return nil
}

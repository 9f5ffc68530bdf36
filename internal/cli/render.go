package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/timetable/pkg/errors"
	"github.com/matzehuels/timetable/pkg/pipeline"
)

// renderFlags holds the output options of the render command.
type renderFlags struct {
	output  string
	format  string
	engine  string
	fontDir string
	noCache bool
	open    bool
}

// apply overrides the settings file's output section with the flags that
// were given.
func (f *renderFlags) apply(opts *pipeline.Options) {
	if f.format != "" {
		opts.Format = f.format
	}
	if f.engine != "" {
		opts.PDFEngine = f.engine
	}
	if f.fontDir != "" {
		opts.FontDir = f.fontDir
	}
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var df docFlags
	var rf renderFlags

	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Render timetables to PDF, SVG, PNG or JSON",
		Long: `Render one or more timetable files into a single output, one landscape
page per file, in the order given.

Each page uses the built-in defaults, overridden by the file's own config
block, overridden by --config, overridden by the flags given here.

The output name may contain %(timetables)s, which is replaced by the input
file names joined by "_". Use "-" to write to standard output.`,
		Example: `  timetable render week.txt
  timetable render week-a.txt week-b.txt -o school.pdf
  timetable render week.txt -f svg --show-pauses --wrap-hour 12:00
  timetable render week.txt --config print.toml --black-white`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := df.options(cmd)
			if err != nil {
				return err
			}
			rf.apply(&opts)
			return c.runRender(cmd.Context(), cmd.InOrStdin(), cmd.ErrOrStderr(), args, opts, rf)
		},
	}

	df.register(cmd)
	addSettingsFlags(cmd)
	cmd.Flags().BoolVar(&df.noLint, "no-lint", false, "skip style warnings")
	cmd.Flags().StringVarP(&rf.output, "output", "o", "", "output file, - for stdout (default \""+pipeline.OutputPlaceholder+".<format>\")")
	cmd.Flags().StringVarP(&rf.format, "format", "f", "", "output format: pdf, svg, png or json (default \""+pipeline.DefaultFormat+"\")")
	cmd.Flags().StringVar(&rf.engine, "engine", "", "PDF engine: gofpdf or rsvg (default \""+pipeline.DefaultEngine+"\")")
	cmd.Flags().StringVar(&rf.fontDir, "font-dir", "", "directory holding "+pipeline.DefaultFontFamily+" TTF files for Unicode PDF text")
	cmd.Flags().BoolVar(&rf.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&rf.open, "open", false, "open the result with the system viewer")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{pipeline.FormatPDF, pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatJSON},
		cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("engine", cobra.FixedCompletions(
		[]string{pipeline.EngineGofpdf, pipeline.EngineRsvg},
		cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runRender(ctx context.Context, stdin io.Reader, stderr io.Writer, paths []string, opts pipeline.Options, rf renderFlags) error {
	docs, err := readDocuments(paths, stdin)
	if err != nil {
		return err
	}

	runner := c.newRunner(rf.noCache)
	defer runner.Close()

	prog := newProgress(c.Logger)
	var spin *Spinner
	if c.Logger.GetLevel() > log.DebugLevel {
		spin = newSpinner(ctx, stderr, "Rendering "+plural(len(docs), "timetable")+"...")
		spin.Start()
	}
	result, err := runner.Execute(ctx, docs, opts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		c.Logger.Warn(w.Msg, "document", w.Document, "line", w.Line)
	}

	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	template := rf.output
	if template == "" {
		template = pipeline.DefaultOutputTemplate(result.Format)
	}
	out := pipeline.OutputName(template, names)

	if out == "-" {
		_, err := stdout.Write(result.Artifact)
		return err
	}
	if err := writeOutput(out, result.Artifact); err != nil {
		return err
	}
	prog.done("rendered", "format", result.Format, "bytes", len(result.Artifact))

	printSuccess("Rendered %s", plural(result.Stats.Pages, "timetable"))
	printFile(out)
	printStats(result.Stats.Pages, result.Stats.Lessons, result.CacheInfo.RenderHit)

	if rf.open {
		if err := openFile(out); err != nil {
			c.Logger.Warn("could not open output", "path", out, "error", err)
		}
	}
	return nil
}

func writeOutput(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// openFile starts the platform's default viewer for path without waiting
// for it.
func openFile(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

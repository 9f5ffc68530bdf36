package cli

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timetable/pkg/config"
	"github.com/matzehuels/timetable/pkg/errors"
	"github.com/matzehuels/timetable/pkg/parser"
	"github.com/matzehuels/timetable/pkg/pipeline"
	"github.com/matzehuels/timetable/pkg/timetable"
)

// stdinName is the document name used for "-".
const stdinName = "stdin.txt"

// =============================================================================
// Document Flags
// =============================================================================

// docFlags are the options of every command that parses documents. The
// --no-lint flag is only registered where lint can be turned off.
type docFlags struct {
	config        string
	removedMarker string
	noLint        bool
}

func (f *docFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "settings file (.toml, .yaml or .yml)")
	cmd.Flags().StringVar(&f.removedMarker, "removed-marker", "", "word marking a cancelled lesson (default \""+timetable.DefaultRemovedMarker+"\")")
}

// options builds pipeline options from the settings file, then the flags
// the user set explicitly.
func (f *docFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	opts := pipeline.Options{Lint: true}
	if f.config != "" {
		file, err := config.Load(f.config)
		if err != nil {
			return opts, err
		}
		opts.Settings = file.Settings
		opts.Format = file.Output.Format
		opts.PDFEngine = file.Output.Engine
		opts.FontDir = file.Output.FontDir
		opts.RemovedMarker = file.Output.RemovedMarker
		if file.Output.Lint != nil {
			opts.Lint = *file.Output.Lint
		}
	}

	if f.removedMarker != "" {
		opts.RemovedMarker = f.removedMarker
	}
	if cmd.Flags().Changed("no-lint") {
		opts.Lint = !f.noLint
	}

	s, err := settingsFromFlags(cmd)
	if err != nil {
		return opts, err
	}
	opts.Settings = timetable.Merge(opts.Settings, s)
	return opts, nil
}

// =============================================================================
// Settings Flags
// =============================================================================

// addSettingsFlags registers one flag per display setting. The defaults
// shown in help are the built-in ones; only flags the user sets override
// documents.
func addSettingsFlags(cmd *cobra.Command) {
	d := timetable.Defaults()
	f := cmd.Flags()
	f.Float64("title-height", *d.TitleHeight, "title height in mm, 0 hides the title")
	f.Bool("title-shadow", *d.TitleShadow, "draw the title in colour with a shadow")
	f.Float64("hours-width", *d.HoursWidth, "width of the hour column in mm")
	f.String("wrap-hour", "", "hour from which the axis is shifted up, e.g. 12:00")
	f.Float64("day-height", *d.DayHeight, "height of the day headers in mm")
	f.String("hour-interval", d.HourInterval.String(), "spacing of hour labels")
	f.Bool("show-weeks", *d.ShowWeeks, "label alternating-week lessons")
	f.Bool("show-teacher", *d.ShowTeacher, "show teachers")
	f.Bool("show-room", *d.ShowRoom, "show rooms")
	f.Bool("show-first-last", *d.ShowFirstLast, "label the first and last hour of each day")
	f.Bool("show-pauses", *d.ShowPauses, "label pauses and shade the common pause")
	f.Bool("black-white", *d.BlackWhite, "print without colours")
}

// settingsFromFlags returns the settings the user changed on cmd.
func settingsFromFlags(cmd *cobra.Command) (timetable.Settings, error) {
	var s timetable.Settings
	for _, key := range parser.SettingKeys {
		f := cmd.Flags().Lookup(flagName(key))
		if f == nil || !f.Changed {
			continue
		}
		if err := parser.ApplySetting(&s, key, f.Value.String()); err != nil {
			return s, errors.Wrap(errors.ErrCodeInvalidSettings, err, "--%s", f.Name)
		}
	}
	return s, nil
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// =============================================================================
// Input
// =============================================================================

// readDocuments loads the files named on the command line. "-" reads
// standard input.
func readDocuments(paths []string, stdin io.Reader) ([]pipeline.Document, error) {
	docs := make([]pipeline.Document, 0, len(paths))
	for _, p := range paths {
		if p == "-" {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read standard input")
			}
			docs = append(docs, pipeline.Document{Name: stdinName, Data: data})
			continue
		}
		if err := errors.ValidatePath(p); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(p)
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "%s not found", p)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", p)
		}
		docs = append(docs, pipeline.Document{Name: pipeline.DocumentName(p), Data: data})
	}
	return docs, nil
}

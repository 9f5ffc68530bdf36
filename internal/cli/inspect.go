package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/timetable/pkg/timetable"
)

// Browser styles
var (
	tabActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(colorCyan)
	tabStyle       = lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
	browseDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var df docFlags
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Browse the days and lessons of a timetable",
		Long: `Open an interactive browser over the days of a timetable, showing each
lesson with its teacher, room and week, the pauses of the day and the
pause shared by all days.

Use --plain to print the same information without the browser.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := df.options(cmd)
			if err != nil {
				return err
			}
			docs, err := readDocuments(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			runner := c.newRunner(true)
			defer runner.Close()
			pages, warnings, err := runner.Parse(cmd.Context(), docs, opts)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				c.Logger.Warn(w.Msg, "document", w.Document, "line", w.Line)
			}

			tt := pages[0].Timetable
			if plain {
				printTimetable(tt)
				return nil
			}
			_, err = tea.NewProgram(NewBrowseModel(tt), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	df.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "print instead of opening the browser")

	return cmd
}

// =============================================================================
// BrowseModel - Interactive day and lesson browser
// =============================================================================

// BrowseModel is the bubbletea model of the inspect command. Left and
// right switch days, up and down move through the lessons of a day.
type BrowseModel struct {
	TT     *timetable.Timetable
	Day    int
	Cursor int
	Height int
	Offset int
}

// NewBrowseModel creates a browser positioned on the first lesson of the
// first day.
func NewBrowseModel(tt *timetable.Timetable) BrowseModel {
	return BrowseModel{TT: tt, Height: 12}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) lessons() []timetable.Lesson {
	if m.Day >= len(m.TT.Days) {
		return nil
	}
	return m.TT.Days[m.Day].Lessons
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "shift+tab":
			if m.Day > 0 {
				m.Day--
				m.Cursor, m.Offset = 0, 0
			}
		case "right", "l", "tab":
			if m.Day < len(m.TT.Days)-1 {
				m.Day++
				m.Cursor, m.Offset = 0, 0
			}
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.lessons())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 3)
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	title := m.TT.Title
	if title == "" {
		title = timetable.DefaultTitle
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render("←/→ day  ↑/↓ lesson  q quit"))
	b.WriteString("\n\n")

	if len(m.TT.Days) == 0 {
		b.WriteString(browseDimStyle.Render("  no days"))
		b.WriteString("\n")
		return b.String()
	}

	tabs := make([]string, len(m.TT.Days))
	for i, d := range m.TT.Days {
		if i == m.Day {
			tabs[i] = tabActiveStyle.Render(d.Name)
		} else {
			tabs[i] = tabStyle.Render(d.Name)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...))
	b.WriteString("\n")

	lessons := m.lessons()
	end := min(m.Offset+m.Height, len(lessons))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, lessonRow(m.TT, cursor, lessons[i]))
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Time", "Lesson", "Teacher", "Room", "Week").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(lessons) {
				return lipgloss.NewStyle()
			}
			style := lipgloss.NewStyle()
			if lessons[idx].Removed {
				style = StyleRemoved
			}
			if idx == m.Cursor {
				return style.Bold(true).Foreground(colorCyan)
			}
			return style
		})
	b.WriteString(t.Render())
	b.WriteString("\n")

	day := m.TT.Days[m.Day]
	b.WriteString(browseDimStyle.Render("  " + dayPauses(day)))
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render("  " + commonPause(m.TT)))
	b.WriteString("\n")
	if len(lessons) > 0 {
		b.WriteString(browseDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(lessons))))
	}

	return b.String()
}

// =============================================================================
// Plain Output
// =============================================================================

// printTimetable prints every day of tt with its lessons and pauses.
func printTimetable(tt *timetable.Timetable) {
	title := tt.Title
	if title == "" {
		title = timetable.DefaultTitle
	}
	fmt.Fprintln(stdout, StyleTitle.Render(title))
	if tt.LeftWeek != "" || tt.RightWeek != "" {
		printKeyValue("Weeks", tt.LeftWeek+" / "+tt.RightWeek)
	}
	printKeyValue("Lessons", fmt.Sprint(tt.LessonCount()))
	if start, end, ok := tt.Bounds(); ok {
		printKeyValue("School day", start.String()+" - "+end.String())
	}
	printKeyValue("Common", commonPause(tt))

	for _, d := range tt.Days {
		fmt.Fprintln(stdout)
		printInfo("%s", d.Name)
		for _, l := range d.Lessons {
			line := tt.FormatLesson(l)
			if l.Removed {
				line = StyleRemoved.Render(line)
			}
			fmt.Fprintln(stdout, "    "+line)
		}
		printDetail("%s", dayPauses(d))
	}
}

// =============================================================================
// Helpers
// =============================================================================

func lessonRow(tt *timetable.Timetable, cursor string, l timetable.Lesson) []string {
	week := tt.WeekLabel(l.Week)
	if week == "" {
		week = "—"
	}
	return []string{cursor, l.Start.String() + " - " + l.End.String(), l.Name, l.Teacher, l.Room, week}
}

func dayPauses(d timetable.Day) string {
	if len(d.Lessons) == 0 {
		return "no lessons"
	}
	gaps := d.Pauses().Explicit()
	if len(gaps) == 0 {
		return "no pauses"
	}
	parts := make([]string, len(gaps))
	for i, p := range gaps {
		parts[i] = p.String()
	}
	return "pauses: " + strings.Join(parts, ", ")
}

func commonPause(tt *timetable.Timetable) string {
	p, ok := tt.CommonPause()
	if !ok {
		return "no common pause"
	}
	return "common pause: " + p.String()
}

package pipeline

import (
	"strings"
)

// OutputPlaceholder in an output template is replaced by the input names.
const OutputPlaceholder = "%(timetables)s"

// DefaultOutputTemplate returns the default output path for format.
func DefaultOutputTemplate(format string) string {
	return OutputPlaceholder + "." + format
}

// OutputName expands the placeholder in template with the base names of
// paths joined by "_". Both '/' and '\' separate path components, so
// "a/week.txt" and "b\term.txt" give "week.txt_term.txt".
func OutputName(template string, paths []string) string {
	if !strings.Contains(template, OutputPlaceholder) {
		return template
	}
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = DocumentName(p)
	}
	return strings.ReplaceAll(template, OutputPlaceholder, strings.Join(names, "_"))
}

// DocumentName returns the last component of path, splitting on both
// '/' and '\'.
func DocumentName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

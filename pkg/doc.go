// Package pkg provides the libraries behind the timetable tool.
//
// # Overview
//
// Timetable turns weekly school timetables written in a small plain-text
// format into printable landscape pages. The pkg directory is organized
// into four areas:
//
//  1. Domain: [clock], [pause], [color] and [timetable] model hours,
//     breaks, colours and the parsed week
//  2. Input: [parser] reads the text format and [config] reads settings
//     files
//  3. Drawing: [layout] places a timetable on a [surface], which is backed
//     by PDF, SVG or a JSON op log; [render] converts SVG with rsvg-convert
//  4. Orchestration: [pipeline] runs parse → compose → render with
//     [cache] and [observability], and [server] exposes it over HTTP
//
// # Data Flow
//
//	timetable text (+ settings file, flags, query params)
//	         ↓
//	    [parser] (config block, days, lessons, lint warnings)
//	         ↓
//	    [timetable] (merged settings, pauses, common pause)
//	         ↓
//	    [layout] (title, hour axis, day columns, lessons)
//	         ↓
//	    [surface] (pdf, svg or record)
//	         ↓
//	    PDF/SVG/PNG/JSON output
//
// # Quick Start
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Execute(ctx, []pipeline.Document{
//	    {Name: "week.txt", Data: data},
//	}, pipeline.Options{Format: pipeline.FormatPDF})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("week.pdf", res.Artifact, 0o644)
//
// [clock]: github.com/matzehuels/timetable/pkg/clock
// [pause]: github.com/matzehuels/timetable/pkg/pause
// [color]: github.com/matzehuels/timetable/pkg/color
// [timetable]: github.com/matzehuels/timetable/pkg/timetable
// [parser]: github.com/matzehuels/timetable/pkg/parser
// [config]: github.com/matzehuels/timetable/pkg/config
// [layout]: github.com/matzehuels/timetable/pkg/layout
// [surface]: github.com/matzehuels/timetable/pkg/surface
// [render]: github.com/matzehuels/timetable/pkg/render
// [pipeline]: github.com/matzehuels/timetable/pkg/pipeline
// [cache]: github.com/matzehuels/timetable/pkg/cache
// [observability]: github.com/matzehuels/timetable/pkg/observability
// [server]: github.com/matzehuels/timetable/pkg/server
package pkg

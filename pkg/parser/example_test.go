package parser_test

import (
	"fmt"

	"github.com/matzehuels/timetable/pkg/parser"
)

func ExampleParse() {
	res, err := parser.Parse(`---
left_week: A
right_week: B
---
Monday
------
8:00 - 9:00 Math - Smith (101) (A) #ff0000
9:00 - 10:30 Physics - Curie (Lab)
`)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, d := range res.Timetable.Days {
		fmt.Println(d.Name)
		for _, l := range d.Lessons {
			fmt.Printf("  %s-%s %s/%s/%s week=%s\n", l.Start, l.End, l.Name, l.Teacher, l.Room, l.Week)
		}
	}
	// Output:
	// Monday
	//   8:00-9:00 Math/Smith/101 week=left
	//   9:00-10:30 Physics/Curie/Lab week=always
}

func ExampleParse_error() {
	_, err := parser.Parse("8:00 - 9:00 Math\n")
	fmt.Println(err)
	// Output:
	// line 1: no current day, maybe you forgot to add --- after the day name?
}

package clock_test

import (
	"fmt"

	"github.com/matzehuels/timetable/pkg/clock"
)

func ExampleTime_Add() {
	start := clock.New(23, 59)
	fmt.Println(start.Add(clock.New(0, 2)))
	// Output:
	// 0:01
}

func ExampleRange() {
	start, end := clock.New(8, 30), clock.New(11, 15)
	for _, t := range clock.Range(start.Ceil(clock.OneHour), end.Floor(clock.OneHour), clock.OneHour, true) {
		fmt.Println(t)
	}
	// Output:
	// 9:00
	// 10:00
	// 11:00
}

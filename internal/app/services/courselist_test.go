package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCourseList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty string", in: "", want: ""},
		{name: "only whitespace", in: "   ", want: ""},
		{name: "single name", in: "Math", want: "Math"},
		{name: "already normalized", in: "Math, Physics", want: "Math, Physics"},
		{name: "ragged separators and duplicates", in: "A,, ,B, ,A", want: "A, B"},
		{name: "internal whitespace collapsed", in: "Intro  to   Go, Math", want: "Intro to Go, Math"},
		{name: "leading and trailing commas", in: ",Math,Physics,", want: "Math, Physics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCourseList(tt.in))
		})
	}
}

func TestNormalizeCourseList_Idempotent(t *testing.T) {
	inputs := []string{"", "Math", "A,, ,B, ,A", " x ,y,, z "}
	for _, in := range inputs {
		once := NormalizeCourseList(in)
		assert.Equal(t, once, NormalizeCourseList(once))
	}
}

func TestAddCourseToList(t *testing.T) {
	tests := []struct {
		name   string
		list   string
		course string
		want   string
	}{
		{name: "append to empty list", list: "", course: "Math", want: "Math"},
		{name: "append to existing list", list: "Math", course: "Physics", want: "Math, Physics"},
		{name: "already present is a no-op", list: "Math, Physics", course: "Math", want: "Math, Physics"},
		{name: "normalizes while appending", list: "A,,A, B", course: "C", want: "A, B, C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, addCourseToList(tt.list, tt.course))
		})
	}
}

func TestRemoveCourseFromList(t *testing.T) {
	tests := []struct {
		name   string
		list   string
		course string
		want   string
	}{
		{name: "remove only entry", list: "Math", course: "Math", want: ""},
		{name: "remove middle entry", list: "Math, Physics, Chemistry", course: "Physics", want: "Math, Chemistry"},
		{name: "absent name is a no-op", list: "Math, Physics", course: "Biology", want: "Math, Physics"},
		{name: "whole token match only", list: "Math, Math II", course: "Math", want: "Math II"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, removeCourseFromList(tt.list, tt.course))
		})
	}
}

func TestAddThenRemoveRoundTrip(t *testing.T) {
	list := "Math, Physics"
	withNew := addCourseToList(list, "Chemistry")
	assert.Equal(t, list, removeCourseFromList(withNew, "Chemistry"))
}

// SPDX-License-Identifier: Apache-2.0

package jsonld

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelCase(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "snake case input", in: "activity_set", want: "activitySet"},
		{name: "single word", in: "applet", want: "applet"},
		{name: "already camel case", in: "activitySet", want: "activitySet"},
		{name: "multiple segments", in: "screen_display_name", want: "screenDisplayName"},
		{name: "empty string", in: "", want: ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, CamelCase(test.in))
		})
	}
}

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "camel case input", in: "activitySet", want: "activity_set"},
		{name: "single word", in: "applet", want: "applet"},
		{name: "multiple humps", in: "screenDisplayName", want: "screen_display_name"},
		{name: "leading capital", in: "ActivitySet", want: "activity_set"},
		{name: "empty string", in: "", want: ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, SnakeCase(test.in))
		})
	}
}

func TestCamelSnakeRoundTrip(t *testing.T) {
	for _, word := range []string{"activitySet", "applet", "screenDisplayName"} {
		assert.Equal(t, word, CamelCase(SnakeCase(word)))
	}
}

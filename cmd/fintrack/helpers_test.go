package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "uuid is truncated", input: "4f9c1b2a-77aa-4f6e-9c3d-0d8e54a1b2c3", want: "4f9c1b2a"},
		{name: "exactly eight", input: "12345678", want: "12345678"},
		{name: "short id from a restored snapshot", input: "3", want: "3"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shortID(tt.input))
		})
	}
}

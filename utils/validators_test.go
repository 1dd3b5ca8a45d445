// File: /utils/validators_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Secret1!", true},
		{"Secret1", true},
		{"secret1!", true},
		{"Sec1!", false},
		{"abcdefgh", false},
		{"ABCdefgh", false},
		{"12345678", false},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPassword(tt.password))
		})
	}
}

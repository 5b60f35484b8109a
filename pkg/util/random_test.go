package util

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomLowerString(t *testing.T) {
	re := regexp.MustCompile(`^[a-z0-9]{8}$`)
	seen := map[string]struct{}{}
	for i := 0; i < 200; i++ {
		s := GetRandomLowerString(8)
		assert.Regexp(t, re, s)
		seen[s] = struct{}{}
	}
	assert.Greater(t, len(seen), 190)
}

func TestGetRandomString_Length(t *testing.T) {
	assert.Len(t, GetRandomString(32), 32)
	assert.Equal(t, "", GetRandomString(0))
}

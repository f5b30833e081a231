package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvironment(t *testing.T) {
	cases := map[string]Environment{
		"production":  Production,
		"test":        Test,
		"development": Development,
		"":            Development,
		"staging":     Development,
	}
	for value, want := range cases {
		t.Setenv("ENV", value)
		assert.Equal(t, want, GetEnvironment(), "ENV=%q", value)
	}
}

func TestEnvironmentPredicates(t *testing.T) {
	t.Setenv("ENV", "production")
	assert.True(t, IsProduction())
	assert.False(t, IsTest())

	t.Setenv("ENV", "test")
	assert.False(t, IsProduction())
	assert.True(t, IsTest())
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvFloat(t *testing.T) {
	t.Run("Default when unset", func(t *testing.T) {
		assert.Equal(t, 0.08, envFloat("TAX_RATE_TEST_UNSET", 0.08))
	})

	t.Run("Parses value", func(t *testing.T) {
		t.Setenv("TAX_RATE_TEST", "0.05")
		assert.Equal(t, 0.05, envFloat("TAX_RATE_TEST", 0.08))
	})

	t.Run("Default on garbage", func(t *testing.T) {
		t.Setenv("TAX_RATE_TEST", "eight percent")
		assert.Equal(t, 0.08, envFloat("TAX_RATE_TEST", 0.08))
	})
}

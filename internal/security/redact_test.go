package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactArguments(t *testing.T) {
	in := map[string]any{
		"listing_id":         int64(42),
		"category":           "Electronics",
		"oauth_token":        "abc",
		"TRADEME_SECRET_KEY": "xyz",
	}
	out := RedactArguments(in)

	assert.Equal(t, int64(42), out["listing_id"])
	assert.Equal(t, "Electronics", out["category"])
	assert.Equal(t, "***", out["oauth_token"])
	assert.Equal(t, "***", out["TRADEME_SECRET_KEY"])
	assert.Equal(t, "abc", in["oauth_token"], "input must not be mutated")
	assert.Nil(t, RedactArguments(nil))
}

func TestIsSensitiveKey(t *testing.T) {
	assert.True(t, IsSensitiveKey(" Authorization "))
	assert.False(t, IsSensitiveKey("filter_type"))
	assert.False(t, IsSensitiveKey("rows"))
}

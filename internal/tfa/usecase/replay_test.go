package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "123456", want: "123456"},
		{in: " 123456 ", want: "123456"},
		{in: "123 456", want: "123456"},
		{in: "1 2 3 4 5 6", want: "123456"},
		{in: "12\t34\n56", want: "123456"},
		{in: "", want: ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, normalizeCode(tc.in), "input %q", tc.in)
	}
}

func TestIsWellFormedCode(t *testing.T) {
	fx := newFixture(t)

	assert.True(t, fx.uc.isWellFormedCode("123456"))
	assert.True(t, fx.uc.isWellFormedCode("000000"))

	assert.False(t, fx.uc.isWellFormedCode(""))
	assert.False(t, fx.uc.isWellFormedCode("12345"))
	assert.False(t, fx.uc.isWellFormedCode("1234567"))
	assert.False(t, fx.uc.isWellFormedCode("12345a"))
	assert.False(t, fx.uc.isWellFormedCode("12345 "))
}

func TestHashCode_StableAndKeyed(t *testing.T) {
	fx := newFixture(t)
	ctx := authCtx(testUserID)

	h1, err := fx.uc.hashCode(ctx, "123456")
	assert.NoError(t, err)
	h2, err := fx.uc.hashCode(ctx, "123456")
	assert.NoError(t, err)
	h3, err := fx.uc.hashCode(ctx, "654321")
	assert.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.NotEqual(t, "123456", h1, "hash must not expose the code")
}

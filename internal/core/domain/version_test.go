package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.fmods.dev/fmods/internal/core/domain"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Version
	}{
		{"1.2.3", domain.NewVersion(1, 2, 3)},
		{"1.2", domain.NewVersion(1, 2, 0)},
		{"2", domain.NewVersion(2, 0, 0)},
		{"0.0.0", domain.NewVersion(0, 0, 0)},
		{" 1.1.110 ", domain.NewVersion(1, 1, 110)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.ParseVersion(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVersion_Malformed(t *testing.T) {
	for _, input := range []string{"", "one.two", "1.2.3.4", "1.-2.3", "1..3"} {
		t.Run(input, func(t *testing.T) {
			_, err := domain.ParseVersion(input)
			assert.ErrorIs(t, err, domain.ErrMalformedVersion)
		})
	}
}

func TestVersionOrdering(t *testing.T) {
	assert.True(t, domain.NewVersion(1, 9, 9).Less(domain.NewVersion(2, 0, 0)))
	assert.True(t, domain.NewVersion(1, 1, 0).Less(domain.NewVersion(1, 2, 0)))
	assert.True(t, domain.NewVersion(1, 1, 1).Less(domain.NewVersion(1, 1, 2)))
	assert.False(t, domain.NewVersion(1, 1, 1).Less(domain.NewVersion(1, 1, 1)))

	assert.Equal(t, 0, domain.NewVersion(1, 2, 3).Compare(domain.NewVersion(1, 2, 3)))
	assert.Equal(t, 1, domain.NewVersion(2, 0, 0).Compare(domain.NewVersion(1, 9, 9)))

	assert.True(t, domain.NewVersion(1, 2, 3).AtLeast(domain.NewVersion(1, 2, 3)))
	assert.True(t, domain.NewVersion(1, 3, 0).AtLeast(domain.NewVersion(1, 2, 9)))
	assert.False(t, domain.NewVersion(1, 2, 2).AtLeast(domain.NewVersion(1, 2, 3)))
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "1.2.3", domain.NewVersion(1, 2, 3).String())

	parsed, err := domain.ParseVersion("1.2")
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", parsed.String())
}

func TestVersionUnmarshalText(t *testing.T) {
	var v domain.Version
	require.NoError(t, v.UnmarshalText([]byte("0.12.5")))
	assert.Equal(t, domain.NewVersion(0, 12, 5), v)

	assert.ErrorIs(t, v.UnmarshalText([]byte("latest")), domain.ErrMalformedVersion)
}

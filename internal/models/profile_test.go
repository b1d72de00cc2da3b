package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeName(t *testing.T) {
	assert.Equal(t, "HongGildong", ComposeName("Gildong", "Hong"))
	assert.Equal(t, "홍길동", ComposeName("길동", "홍"))
}

func TestParseGender(t *testing.T) {
	cases := map[string]Gender{
		"male":   GenderMale,
		"Female": GenderFemale,
		" male ": GenderMale,
		"남자":     GenderMale,
		"여자":     GenderFemale,
	}
	for in, want := range cases {
		got, err := ParseGender(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		assert.True(t, got.Valid())
	}

	_, err := ParseGender("other")
	assert.Error(t, err)
	assert.False(t, Gender("other").Valid())
}

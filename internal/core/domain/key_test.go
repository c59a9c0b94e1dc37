package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/reqsync/internal/core/domain"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases", in: "Django", want: "django"},
		{name: "underscore", in: "Foo_Bar", want: "foo-bar"},
		{name: "dot", in: "FOO.bar", want: "foo-bar"},
		{name: "separator runs", in: "zope__interface", want: "zope-interface"},
		{name: "mixed runs", in: "a-_.b", want: "a-b"},
		{name: "trims", in: "  requests ", want: "requests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NormalizeKey(tt.in).String())
		})
	}
}

func TestKey_Equality(t *testing.T) {
	a := domain.NormalizeKey("Foo_Bar")
	b := domain.NormalizeKey("foo-bar")
	c := domain.NormalizeKey("foo-baz")

	assert.Equal(t, a, b)
	assert.True(t, a == b)
	assert.False(t, a == c)
	assert.Negative(t, a.Compare(c))
}

func TestKey_Zero(t *testing.T) {
	var k domain.Key

	assert.True(t, k.IsZero())
	assert.Empty(t, k.String())
	assert.False(t, domain.NormalizeKey("x").IsZero())
}

func TestKey_TextRoundTripNormalizes(t *testing.T) {
	var k domain.Key
	err := k.UnmarshalText([]byte("Typing_Extensions"))
	assert.NoError(t, err)

	text, err := k.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "typing-extensions", string(text))
}

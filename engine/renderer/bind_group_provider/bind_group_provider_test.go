package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyIsStablePerIdentity(t *testing.T) {
	a, b := new(int), new(int)

	assert.Equal(t, Key(a, b), Key(a, b))
	assert.NotEqual(t, Key(a, b), Key(b, a))
	assert.NotEqual(t, Key(a), Key(a, b))
}

func TestOptions(t *testing.T) {
	p := NewBindGroupProvider(nil, nil, WithLabel("textures"), WithCacheLimit(0)).(*bindGroupProvider)
	assert.Equal(t, "textures", p.Label())
	assert.Equal(t, DefaultCacheLimit, p.limit)
	assert.Zero(t, p.Len())

	p = NewBindGroupProvider(nil, nil, WithCacheLimit(8)).(*bindGroupProvider)
	assert.Equal(t, 8, p.limit)
}

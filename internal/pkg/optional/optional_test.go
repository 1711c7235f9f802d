package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	var omitted Value[string]
	assert.False(t, omitted.IsSet())
	assert.Equal(t, "keep", omitted.OrElse("keep"))

	name := Of("Focus Room")
	v, ok := name.Get()
	assert.True(t, ok)
	assert.Equal(t, "Focus Room", v)
	assert.Equal(t, "Focus Room", name.OrElse("keep"))
}

func TestValueDistinguishesExplicitNil(t *testing.T) {
	cleared := Of[*string](nil)
	v, ok := cleared.Get()
	assert.True(t, ok)
	assert.Nil(t, v)

	assert.False(t, None[*string]().IsSet())
}

func TestValueFromJSON(t *testing.T) {
	var patch struct {
		Name        Value[string]  `json:"name"`
		Description Value[*string] `json:"description"`
		Capacity    Value[int]     `json:"capacity"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Vega","description":null}`), &patch))

	assert.True(t, patch.Name.IsSet())
	assert.Equal(t, "Vega", patch.Name.OrElse(""))

	desc, ok := patch.Description.Get()
	assert.True(t, ok)
	assert.Nil(t, desc)

	assert.False(t, patch.Capacity.IsSet())

	assert.Error(t, json.Unmarshal([]byte(`{"capacity":"four"}`), &patch))
}

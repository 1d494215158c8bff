package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalJson(t *testing.T) {
	type payload struct {
		Action string `json:"action"`
	}
	v, err := UnmarshalJson[payload]([]byte(`{"action":"reset"}`))
	require.NoError(t, err)
	assert.Equal(t, "reset", v.Action)

	_, err = UnmarshalJson[payload]([]byte(`{"action":`))
	assert.ErrorContains(t, err, "unmarshal json")
}

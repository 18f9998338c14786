package gallery

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexBool(t *testing.T) {
	for raw, want := range map[string]bool{
		`true`: true, `false`: false, `1`: true, `0`: false,
		`"true"`: true, `"1"`: true, `"false"`: false, `null`: false,
	} {
		var b FlexBool
		require.NoError(t, json.Unmarshal([]byte(raw), &b), raw)
		assert.Equal(t, want, bool(b), raw)
	}

	var b FlexBool
	assert.Error(t, json.Unmarshal([]byte(`"maybe"`), &b))
}

func TestUpdateRequest_ImagesPresence(t *testing.T) {
	var omitted, null, empty UpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t"}`), &omitted))
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","images":null}`), &null))
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","images":[]}`), &empty))

	assert.Nil(t, omitted.Images)
	assert.Nil(t, null.Images)
	require.NotNil(t, empty.Images)
	assert.Empty(t, *empty.Images)
}

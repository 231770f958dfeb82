package cmd

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func TestCombinedInputUnmarshalsBothKeys(t *testing.T) {
	raw := []byte(`{"config": {"time_limit": 30}, "instance": {"start_depot": 0}}`)

	var combined combinedInput
	require.NoError(t, json.Unmarshal(raw, &combined))
	require.NotEmpty(t, combined.Config)
	require.NotEmpty(t, combined.Instance)
}

func TestCombinedInputEmptyWhenInstanceOnly(t *testing.T) {
	raw := []byte(`{"start_depot": 0, "end_depot": 3}`)

	var combined combinedInput
	require.NoError(t, json.Unmarshal(raw, &combined))
	require.Empty(t, combined.Instance)
}

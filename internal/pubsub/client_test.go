package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	MatchID string
	Runs    int
}

func TestDisabledClient(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	defer c.Close()

	assert.NoError(t, c.SendMessage(EventBallRecorded, payload{MatchID: "m1", Runs: 4}))

	data, err := Encode(payload{MatchID: "m1", Runs: 4})
	require.NoError(t, err)

	var got payload
	require.NoError(t, c.ProcessMessage(data, &got))
	assert.Equal(t, payload{MatchID: "m1", Runs: 4}, got)
}

func TestProcessMessage_InvalidData(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)

	var got payload
	assert.Error(t, c.ProcessMessage([]byte{0xc1}, &got))
}

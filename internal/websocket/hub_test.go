package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalClients_TracksRegistration(t *testing.T) {
	hub := NewHub(nil)

	a := NewClient(hub, nil, &ClientAuth{Operator: "op", SessionID: "s1"})
	b := NewClient(hub, nil, &ClientAuth{Operator: "op", SessionID: "s2"})

	hub.registerClient(a)
	hub.registerClient(b)
	assert.Equal(t, 2, hub.TotalClients())

	hub.unregisterClient(a)
	assert.Equal(t, 1, hub.TotalClients())

	hub.unregisterClient(b)
	assert.Equal(t, 0, hub.TotalClients())

	// Unregistering an unknown client is a no-op.
	hub.unregisterClient(a)
	assert.Equal(t, 0, hub.TotalClients())
}

package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startManager(t *testing.T) *Manager {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	m := NewManager()
	m.Start(ctx)
	return m
}

func receive(t *testing.T, c *Client) WSMessage {
	t.Helper()
	select {
	case raw := <-c.Send:
		var msg WSMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return WSMessage{}
	}
}

func TestPushToUserReachesEveryConnection(t *testing.T) {
	m := startManager(t)
	phone := NewClient("u1", false, nil)
	laptop := NewClient("u1", false, nil)
	other := NewClient("u2", false, nil)
	m.Register <- phone
	m.Register <- laptop
	m.Register <- other
	require.Eventually(t, func() bool { return m.ClientCount() == 3 }, time.Second, 5*time.Millisecond)

	m.PushToUser("u1", map[string]string{"title": "Order placed"})

	assert.Equal(t, MessageTypeNotification, receive(t, phone).Type)
	assert.Equal(t, MessageTypeNotification, receive(t, laptop).Type)
	assert.Len(t, other.Send, 0)
}

func TestPushToAdminsSkipsCustomers(t *testing.T) {
	m := startManager(t)
	admin := NewClient("a1", true, nil)
	customer := NewClient("u1", false, nil)
	m.Register <- admin
	m.Register <- customer
	require.Eventually(t, func() bool { return m.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	m.PushToAdmins("new order")

	msg := receive(t, admin)
	assert.Equal(t, "new order", msg.Data)
	assert.Len(t, customer.Send, 0)
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	m := startManager(t)
	c := NewClient("u1", false, nil)
	m.Register <- c
	m.Unregister <- c
	require.Eventually(t, func() bool { return m.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-c.Send
	assert.False(t, open)
}

func TestHandleClientMessageAnswersPing(t *testing.T) {
	m := startManager(t)
	c := NewClient("u1", false, nil)
	m.Register <- c
	require.Eventually(t, func() bool { return m.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	m.HandleClientMessage(c, []byte(`{"type":"ping"}`))
	assert.Equal(t, MessageTypePong, receive(t, c).Type)

	m.HandleClientMessage(c, []byte(`not json`))
	assert.Equal(t, MessageTypeError, receive(t, c).Type)
}

func TestPushIsNonBlockingWhenBufferFull(t *testing.T) {
	m := startManager(t)
	c := NewClient("u1", false, nil)
	m.Register <- c
	require.Eventually(t, func() bool { return m.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	for i := 0; i < sendBuffer+5; i++ {
		m.PushToUser("u1", i)
	}
	assert.Len(t, c.Send, sendBuffer)
}

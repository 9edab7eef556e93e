package rabbitmq

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (c *recordingChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange = exchange
	c.key = key
	c.msg = msg
	return c.err
}

func TestPublishMessage(t *testing.T) {
	type testMsg struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	t.Run("success", func(t *testing.T) {
		ch := &recordingChannel{}
		err := PublishMessage(ch, "auth.events", "user.registered", testMsg{ID: 1, Name: "alice"})
		require.NoError(t, err)

		assert.Equal(t, "auth.events", ch.exchange)
		assert.Equal(t, "user.registered", ch.key)
		assert.Equal(t, "application/json", ch.msg.ContentType)
		assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)

		var got testMsg
		require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
		assert.Equal(t, testMsg{ID: 1, Name: "alice"}, got)
	})

	t.Run("marshal error", func(t *testing.T) {
		badMsg := struct {
			Ch chan int `json:"ch"`
		}{Ch: make(chan int)}

		err := PublishMessage(&recordingChannel{}, "", "q", badMsg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rabbitmq.PublishMessage")
	})

	t.Run("publish error", func(t *testing.T) {
		brokerErr := errors.New("channel closed")
		err := PublishMessage(&recordingChannel{err: brokerErr}, "", "q", testMsg{})
		assert.ErrorIs(t, err, brokerErr)
	})
}

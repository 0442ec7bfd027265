package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carton-io/carton/lib/container"
	"github.com/carton-io/carton/lib/metrics"
	"github.com/carton-io/carton/lib/result"
	"github.com/carton-io/carton/lib/value"
)

func TestBuilderAssemblesContainer(t *testing.T) {
	c, err := NewBuilder().
		Source("gateway", "gw-1").
		Target("worker", "w-1").
		MessageType("job").
		Set(value.NewInt("attempt", 1)).
		Set(value.NewString("queue", "default")).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "gateway", c.SourceID())
	assert.Equal(t, "w-1", c.TargetSubID())
	assert.Equal(t, "job", c.MessageType())
	assert.Equal(t, 2, c.Size())

	v, ok := c.Get("queue")
	require.True(t, ok)
	assert.Equal(t, "default", v.Text())
}

func TestBuilderDefaults(t *testing.T) {
	c, err := NewBuilder().Source("svc", "").Build()
	require.NoError(t, err)

	assert.Equal(t, "data_container", c.MessageType())
	// Missing sub-id gets stamped with a fresh instance id.
	assert.NotEmpty(t, c.SourceSubID())
	// No target id, so no target stamp either.
	assert.Empty(t, c.TargetSubID())
}

func TestBuilderLaterValueOverwrites(t *testing.T) {
	c, err := NewBuilder().
		Set(value.NewInt("n", 1)).
		Set(value.NewInt("n", 2)).
		Build()
	require.NoError(t, err)
	assert.Equal(t, 1, c.Size())

	v, _ := c.Get("n")
	assert.Equal(t, int32(2), v.Int())
}

func TestBuilderRejectsNamelessValue(t *testing.T) {
	_, err := NewBuilder().Set(value.NewInt("", 1)).Build()
	assert.True(t, result.IsCode(err, result.CodeEmptyKey))
}

func TestBuilderPolicySelection(t *testing.T) {
	c, err := NewBuilder().Policy(container.NewIndexed()).Build()
	require.NoError(t, err)
	assert.Equal(t, container.PolicyIndexed, c.PolicyKind())
}

func TestFrameRoundTrip(t *testing.T) {
	c, err := NewBuilder().
		Source("a", "1").
		Target("b", "2").
		MessageType("ping").
		Set(value.NewDouble("load", 0.5)).
		Build()
	require.NoError(t, err)

	frame, err := SerializeForMessaging(c)
	require.NoError(t, err)
	assert.Equal(t, []byte("CRTN"), frame[:4])
	assert.True(t, IsFramed(frame))
	assert.False(t, IsFramed(frame[1:]))

	back, err := DeserializeFromMessaging(frame, container.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "ping", back.MessageType())
	assert.Equal(t, "b", back.TargetID())

	v, ok := back.Get("load")
	require.True(t, ok)
	assert.Equal(t, 0.5, v.Double())
}

func TestFrameRejectsGarbage(t *testing.T) {
	_, err := DeserializeFromMessaging([]byte("CR"), container.DefaultOptions())
	assert.True(t, result.IsCode(err, result.CodeDeserializationFailed))

	_, err = DeserializeFromMessaging([]byte("XXXX\x00\x00\x00\x00"), container.DefaultOptions())
	assert.True(t, result.IsCode(err, result.CodeInvalidFormat))

	// Length mismatch.
	frame := append([]byte("CRTN"), 0xff, 0, 0, 0)
	_, err = DeserializeFromMessaging(frame, container.DefaultOptions())
	assert.True(t, result.IsCode(err, result.CodeDeserializationFailed))
}

func TestCallbacksFire(t *testing.T) {
	hub := NewHub(metrics.New())

	var created, framed []string
	hub.OnCreation(func(c *container.Container) {
		created = append(created, c.MessageType())
	})
	hub.OnSerialization(func(c *container.Container) {
		framed = append(framed, c.MessageType())
	})

	c, err := NewBuilderWithHub(hub).MessageType("evt").Build()
	require.NoError(t, err)
	_, err = hub.SerializeForMessaging(c)
	require.NoError(t, err)

	assert.Equal(t, []string{"evt"}, created)
	assert.Equal(t, []string{"evt"}, framed)

	hub.ClearCallbacks()
	_, err = NewBuilderWithHub(hub).Build()
	require.NoError(t, err)
	assert.Len(t, created, 1)
}

func TestHubCounters(t *testing.T) {
	reg := metrics.New()
	hub := NewHub(reg)

	c, err := NewBuilderWithHub(hub).Build()
	require.NoError(t, err)
	_, err = hub.SerializeForMessaging(c)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), reg.MessagesBuilt.Get())
	assert.Equal(t, uint64(1), reg.MessagesFramed.Get())
}

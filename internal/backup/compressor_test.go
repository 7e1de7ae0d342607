package backup

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompressor(t *testing.T) *ZstdCompression {
	t.Helper()
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c.(*ZstdCompression)
}

func TestZstdCompression_SnapshotPayloads(t *testing.T) {
	payloads := map[string][]byte{
		"empty":        {},
		"empty store":  []byte(`{"version":1,"resources":{"offers":[],"products":[],"users":[],"chat":{"conversations":[],"messages":[]}}}`),
		"product list": bytes.Repeat([]byte(`{"id":"1710057600000-pan","name":"Pan","price":"2.50","image":"/images/pan.png"},`), 20_000),
	}
	c := newCompressor(t)

	for name, original := range payloads {
		t.Run(name, func(t *testing.T) {
			packed, err := c.Compress(original)
			require.NoError(t, err)

			unpacked, err := c.Decompress(packed)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(original, unpacked))
		})
	}
}

func TestZstdCompression_ShrinksRepetitiveDocuments(t *testing.T) {
	c := newCompressor(t)
	doc := bytes.Repeat([]byte(`{"conversationId":"conv1","content":"hola","read":false},`), 10_000)

	packed, err := c.Compress(doc)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(doc)/10)
}

func TestZstdCompression_RejectsForeignBytes(t *testing.T) {
	c := newCompressor(t)

	_, err := c.Decompress([]byte(`{"version":1}`))
	assert.Error(t, err)
}

func TestCompressorProvider_CleanupReleasesCoders(t *testing.T) {
	c, cleanup, err := NewCompressorProvider()
	require.NoError(t, err)

	packed, err := c.Compress([]byte(`[]`))
	require.NoError(t, err)
	_, err = c.Decompress(packed)
	require.NoError(t, err)

	assert.NotPanics(t, cleanup)
}

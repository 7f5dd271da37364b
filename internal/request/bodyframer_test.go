package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamhttp/internal/bodysink"
	"streamhttp/internal/buffer"
	"streamhttp/internal/linescan"
)

func TestChunkFramerSingleChunk(t *testing.T) {
	f := newChunkFramer()
	buf := buffer.New()
	buf.Append([]byte("5\r\nhello\r\n0\r\n"))
	sink := bodysink.NewMemory()

	for {
		progressed, finished, err := f.step(buf, linescan.CRLF, sink)
		require.NoError(t, err)
		if finished {
			break
		}
		require.True(t, progressed)
	}
	assert.Equal(t, "hello", string(sink.Bytes()))
}

func TestChunkFramerMultipleChunks(t *testing.T) {
	f := newChunkFramer()
	buf := buffer.New()
	buf.Append([]byte("3\r\nfoo\r\n3\r\nbar\r\n0\r\n"))
	sink := bodysink.NewMemory()

	for {
		_, finished, err := f.step(buf, linescan.CRLF, sink)
		require.NoError(t, err)
		if finished {
			break
		}
	}
	assert.Equal(t, "foobar", string(sink.Bytes()))
}

func TestChunkFramerWaitsForMoreData(t *testing.T) {
	f := newChunkFramer()
	buf := buffer.New()
	buf.Append([]byte("5\r\nhel"))
	sink := bodysink.NewMemory()

	progressed, finished, err := f.step(buf, linescan.CRLF, sink)
	require.NoError(t, err)
	assert.True(t, progressed)
	assert.False(t, finished)

	progressed, finished, err = f.step(buf, linescan.CRLF, sink)
	require.NoError(t, err)
	assert.False(t, progressed)
	assert.False(t, finished)

	buf.Append([]byte("lo\r\n0\r\n"))
	for {
		_, finished, err = f.step(buf, linescan.CRLF, sink)
		require.NoError(t, err)
		if finished {
			break
		}
	}
	assert.Equal(t, "hello", string(sink.Bytes()))
}

func TestChunkFramerRejectsBadTerminator(t *testing.T) {
	f := newChunkFramer()
	buf := buffer.New()
	buf.Append([]byte("3\r\nfooXX"))
	sink := bodysink.NewMemory()

	_, _, err := f.step(buf, linescan.CRLF, sink)
	require.NoError(t, err)
	_, _, err = f.step(buf, linescan.CRLF, sink)
	require.Error(t, err)
}

func TestChunkFramerRejectsInvalidSize(t *testing.T) {
	f := newChunkFramer()
	buf := buffer.New()
	buf.Append([]byte("zz\r\n"))
	sink := bodysink.NewMemory()

	_, _, err := f.step(buf, linescan.CRLF, sink)
	require.Error(t, err)
}

func TestChunkFramerStripsExtension(t *testing.T) {
	f := newChunkFramer()
	buf := buffer.New()
	buf.Append([]byte("5;ext=val\r\nhello\r\n0\r\n"))
	sink := bodysink.NewMemory()

	for {
		_, finished, err := f.step(buf, linescan.CRLF, sink)
		require.NoError(t, err)
		if finished {
			break
		}
	}
	assert.Equal(t, "hello", string(sink.Bytes()))
}

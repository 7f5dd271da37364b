package bodysink

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryWriteAndLen(t *testing.T) {
	m := NewMemory()
	n, err := m.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 5, m.Len())
	assert.Equal(t, "hello", string(m.Bytes()))
}

func TestMemorySeekAndRead(t *testing.T) {
	m := NewMemory()
	m.Write([]byte("abcdef"))

	pos, err := m.Seek(0, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)

	buf := make([]byte, 3)
	n, err := m.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(buf[:n]))

	n, err = m.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "def", string(buf[:n]))

	_, err = m.Read(buf)
	assert.Equal(t, io.EOF, err)
}

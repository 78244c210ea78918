package audio

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineVoice_ReadStereoFrames(t *testing.T) {
	v := NewEngineVoice(0.7, 42)
	buf := make([]byte, 512*BytesPerFrame+3)

	n, err := v.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 512*BytesPerFrame, n)

	nonZero := false
	for i := 0; i < 512; i++ {
		l := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*8:]))
		r := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*8+4:]))
		assert.Equal(t, l, r)
		assert.LessOrEqual(t, math.Abs(float64(l)), 1.0)
		if l != 0 {
			nonZero = true
		}
	}
	assert.True(t, nonZero)
}

func TestEngineVoice_ShortBuffer(t *testing.T) {
	v := NewEngineVoice(1, 1)
	n, err := v.Read(make([]byte, BytesPerFrame-1))
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestEngineVoice_SetRate(t *testing.T) {
	v := NewEngineVoice(1, 1)
	assert.Equal(t, 1.0, v.Rate())

	v.SetRate(1.8)
	assert.Equal(t, 1.8, v.Rate())

	v.SetRate(100)
	assert.Equal(t, MaxRate, v.Rate())

	v.SetRate(0)
	assert.Equal(t, MinRate, v.Rate())

	v.SetRate(math.NaN())
	assert.Equal(t, MinRate, v.Rate())
}

func TestEngineVoice_GlidesTowardRate(t *testing.T) {
	v := NewEngineVoice(1, 1)
	v.SetRate(1.8)
	buf := make([]byte, SampleRate/10*BytesPerFrame)
	_, err := v.Read(buf)
	require.NoError(t, err)
	assert.InDelta(t, 1.8, v.cur, 0.01)
}

func TestEngineVoice_CloseEndsStream(t *testing.T) {
	v := NewEngineVoice(1, 1)
	require.NoError(t, v.Close())
	require.NoError(t, v.Close())
	assert.True(t, v.Closed())

	n, err := v.Read(make([]byte, 64))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestSoftSat(t *testing.T) {
	for x := -5.0; x <= 5.0; x += 0.1 {
		y := softSat(x)
		assert.LessOrEqual(t, math.Abs(y), 1.0)
	}
	assert.Equal(t, 0.0, softSat(0))
}

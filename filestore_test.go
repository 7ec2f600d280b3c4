package trvsched

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestFileStore(t *testing.T) {
	assert := assert.New(t)

	fs := afero.NewMemMapFs()

	s, err := OpenFileStore(fs, "/nv/image", 4, zerolog.Nop())
	if !assert.NoError(err) {
		return
	}

	// Freshly created image is in the factory all-erased state.
	data, err := afero.ReadFile(fs, "/nv/image")
	assert.NoError(err)
	assert.Equal([]byte{0xff, 0xff, 0xff, 0xff}, data)
	assert.Equal(ErasedByte, s.ReadByte(0))

	s.UpdateByte(1, 70)
	assert.Equal(byte(70), s.ReadByte(1))

	// The change survives a reopen.
	s2, err := OpenFileStore(fs, "/nv/image", 4, zerolog.Nop())
	if assert.NoError(err) {
		assert.Equal(byte(70), s2.ReadByte(1))
		assert.Equal(ErasedByte, s2.ReadByte(0))
	}

	s.EraseByte(1)
	assert.Equal(ErasedByte, s.ReadByte(1))
	data, _ = afero.ReadFile(fs, "/nv/image")
	assert.Equal([]byte{0xff, 0xff, 0xff, 0xff}, data)

	// Out-of-image accesses are harmless.
	assert.Equal(ErasedByte, s.ReadByte(100))
	s.UpdateByte(100, 1)
	assert.Equal(ErasedByte, s.ReadByte(100))
}

func TestFileStoreShortImage(t *testing.T) {
	assert := assert.New(t)

	fs := afero.NewMemMapFs()
	assert.NoError(afero.WriteFile(fs, "/nv/image", []byte{70}, 0o600))

	// A shorter existing image is padded with erased bytes.
	s, err := OpenFileStore(fs, "/nv/image", 4, zerolog.Nop())
	if assert.NoError(err) {
		assert.Equal(byte(70), s.ReadByte(0))
		assert.Equal(ErasedByte, s.ReadByte(3))
	}
}

func TestFileStoreAsEngineStore(t *testing.T) {
	assert := assert.New(t)

	fs := afero.NewMemMapFs()

	s, err := OpenFileStore(fs, "/nv/image", 2, zerolog.Nop())
	if !assert.NoError(err) {
		return
	}

	e, err := New(Params{}, s, nil, nil)
	if !assert.NoError(err) {
		return
	}
	assert.NoError(e.Set(0, 420))

	// A new engine over a reopened image sees the same schedule.
	s2, err := OpenFileStore(fs, "/nv/image", 2, zerolog.Nop())
	if !assert.NoError(err) {
		return
	}
	e2, err := New(Params{}, s2, nil, nil)
	if !assert.NoError(err) {
		return
	}

	on, ok := e2.OnTime(0)
	assert.True(ok)
	assert.Equal(MinuteOfDay(384), on)
	assert.True(e2.AnySet())
}

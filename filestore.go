package trvsched

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// FileStore is a ByteStore persisted as a flat image file, one file
// byte per store byte, so programmed schedules survive restarts. The
// image is read once at open; each physical write updates the
// in-memory copy and rewrites the file. Writes are fire-and-forget: a
// failing flush is logged and otherwise ignored.
type FileStore struct {
	fs    afero.Fs
	path  string
	image []byte
	log   zerolog.Logger
}

// OpenFileStore loads the image of size bytes at path, creating it in
// the factory all-erased state when missing. Bytes beyond the length
// of an existing shorter file read as erased.
func OpenFileStore(fs afero.Fs, path string, size int, log zerolog.Logger) (*FileStore, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	image := make([]byte, size)
	for i := range image {
		image[i] = ErasedByte
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, err
	}

	s := &FileStore{fs: fs, path: path, image: image, log: log}
	if exists {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("cannot read image %s: %s", path, err)
		}
		copy(s.image, data)
	} else if err = s.flush(); err != nil {
		return nil, fmt.Errorf("cannot create image %s: %s", path, err)
	}
	return s, nil
}

func (s *FileStore) flush() error {
	return afero.WriteFile(s.fs, s.path, s.image, 0o600)
}

// ReadByte returns the byte at addr, ErasedByte when addr is outside
// the image.
func (s *FileStore) ReadByte(addr uint16) byte {
	if int(addr) >= len(s.image) {
		return ErasedByte
	}
	return s.image[addr]
}

// UpdateByte writes value at addr unless it is already stored there.
// Writes outside the image are ignored.
func (s *FileStore) UpdateByte(addr uint16, value byte) {
	if int(addr) >= len(s.image) || s.image[addr] == value {
		return
	}
	s.image[addr] = value

	s.log.Debug().
		Uint16("addr", addr).
		Uint8("value", value).
		Msg("store write")

	if err := s.flush(); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("image flush failed")
	}
}

// EraseByte puts the byte at addr back in the erased state unless it
// already is.
func (s *FileStore) EraseByte(addr uint16) {
	s.UpdateByte(addr, ErasedByte)
}

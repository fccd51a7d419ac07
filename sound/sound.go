// Package sound loads and plays the audio cues used during a workout session
package sound

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/xhess/bodie/internal/static"
)

// Off disables audio cues when used as the configured sound.
const Off = "off"

var (
	errInvalidSoundFormat = errors.New(
		"sound file must be in mp3, ogg, flac, or wav format",
	)

	errUnknownHandle = errors.New("unknown sound handle")
)

// AudioError reports a failure to load or play a sound.
type AudioError struct {
	Err      error
	Op       string
	Resource string
}

func (e *AudioError) Error() string {
	return fmt.Sprintf("audio %s %q: %v", e.Op, e.Resource, e.Err)
}

func (e *AudioError) Unwrap() error {
	return e.Err
}

// ValidFormat reports whether the sound is a built-in name or a file with a
// supported extension.
func ValidFormat(sound string) bool {
	switch strings.ToLower(filepath.Ext(sound)) {
	case "", ".wav", ".mp3", ".ogg", ".flac":
		return true
	}

	return false
}

// openSound opens a built-in sound by name, or a sound file by path.
func openSound(sound string) (fs.File, string, error) {
	ext := strings.ToLower(filepath.Ext(sound))

	// without extension, treat as a built-in WAV file
	if ext == "" {
		f, err := static.Files.Open(static.FilePath(sound + ".wav"))

		return f, ".wav", err
	}

	f, err := os.Open(sound)

	return f, ext, err
}

// decode reads the whole sound into memory so that it can be replayed.
func decode(sound string) (*beep.Buffer, error) {
	if !ValidFormat(sound) {
		return nil, errInvalidSoundFormat
	}

	f, ext, err := openSound(sound)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = f.Close()
	}()

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	switch ext {
	case ".ogg":
		stream, format, err = vorbis.Decode(io.NopCloser(f))
	case ".mp3":
		stream, format, err = mp3.Decode(io.NopCloser(f))
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		return nil, errInvalidSoundFormat
	}

	if err != nil {
		return nil, err
	}

	defer stream.Close()

	buf := beep.NewBuffer(format)
	buf.Append(stream)

	if err := stream.Err(); err != nil {
		return nil, err
	}

	return buf, nil
}

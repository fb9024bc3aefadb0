package decode

import (
	"encoding/binary"
	"io"
	"os"

	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/groovemetrics/groovescan/pkg/audio"
)

// MP3File decodes an MP3 file. go-mp3 emits interleaved 16-bit stereo;
// the left channel (channel 0) is kept.
func MP3File(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewDecodeError(path, ErrCodeOpen, "failed to open file", err)
	}
	defer f.Close()

	return MP3(path, f)
}

// MP3 decodes MP3 data from a reader. The path is only used for error context.
func MP3(path string, r io.Reader) (*audio.Buffer, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, NewDecodeError(path, ErrCodeInvalidFormat, "failed to parse mp3 stream", err)
	}

	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return nil, NewDecodeError(path, ErrCodeDecoding, "failed to decode mp3 stream", err)
	}

	// 4 bytes per interleaved stereo frame
	frames := len(pcm) / 4
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		v := int16(binary.LittleEndian.Uint16(pcm[i*4 : i*4+2]))
		samples[i] = float64(v) / 32768.0
	}

	buf, err := audio.NewBuffer(samples, decoder.SampleRate())
	if err != nil {
		return nil, NewDecodeError(path, ErrCodeDecoding, "invalid decoded parameters", err)
	}
	return buf, nil
}

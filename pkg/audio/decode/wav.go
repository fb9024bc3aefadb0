package decode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/groovemetrics/groovescan/pkg/audio"
)

const wavFormatPCM = 1

// WAVFile decodes a RIFF/WAVE file with 16-bit PCM samples. Only channel 0
// is kept; the remaining channels are skipped during interleaving.
func WAVFile(path string) (*audio.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDecodeError(path, ErrCodeOpen, "failed to read file", err)
	}
	return WAV(path, data)
}

// WAV decodes WAVE data from memory. The path is only used for error context.
func WAV(path string, data []byte) (*audio.Buffer, error) {
	if len(data) < 12 || !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return nil, NewDecodeError(path, ErrCodeInvalidFormat, "not a RIFF/WAVE file", nil)
	}

	var (
		numChannels   int
		sampleRate    int
		bitsPerSample int
		audioFormat   int
		pcm           []byte
	)

	// Walk the chunk list; fmt must precede data per the RIFF spec
	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8

		if body+chunkSize > len(data) {
			chunkSize = len(data) - body
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, NewDecodeError(path, ErrCodeInvalidFormat, "fmt chunk too short", nil)
			}
			audioFormat = int(binary.LittleEndian.Uint16(data[body : body+2]))
			numChannels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
		case "data":
			pcm = data[body : body+chunkSize]
		}

		// Chunks are word-aligned
		offset = body + chunkSize
		if chunkSize%2 == 1 {
			offset++
		}
	}

	if pcm == nil || sampleRate == 0 {
		return nil, NewDecodeError(path, ErrCodeInvalidFormat, "missing fmt or data chunk", nil)
	}
	if audioFormat != wavFormatPCM || bitsPerSample != 16 {
		return nil, NewDecodeError(path, ErrCodeUnsupportedFormat,
			fmt.Sprintf("only 16-bit PCM is supported, got format %d with %d bits", audioFormat, bitsPerSample), nil)
	}
	if numChannels < 1 {
		return nil, NewDecodeError(path, ErrCodeInvalidFormat, "channel count is zero", nil)
	}

	frameBytes := numChannels * 2
	frames := len(pcm) / frameBytes

	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		v := int16(binary.LittleEndian.Uint16(pcm[i*frameBytes : i*frameBytes+2]))
		samples[i] = float64(v) / 32768.0
	}

	buf, err := audio.NewBuffer(samples, sampleRate)
	if err != nil {
		return nil, NewDecodeError(path, ErrCodeDecoding, "invalid decoded parameters", err)
	}
	return buf, nil
}

package decode

import (
	"path/filepath"
	"strings"

	"github.com/groovemetrics/groovescan/pkg/audio"
)

// Common error codes
const (
	ErrCodeOpen              = "OPEN_FAILED"
	ErrCodeInvalidFormat     = "INVALID_FORMAT"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	ErrCodeDecoding          = "DECODING_FAILED"
)

// DecodeError represents a whole-file decoding failure. Analysis is never
// attempted for a file whose decoding failed.
type DecodeError struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// NewDecodeError creates a new decode error
func NewDecodeError(path, code, message string, cause error) *DecodeError {
	return &DecodeError{
		Path:    path,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// File decodes an audio file into a mono sample buffer, dispatching on
// the file extension. Multi-channel input keeps channel 0 only.
func File(path string) (*audio.Buffer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return WAVFile(path)
	case ".mp3":
		return MP3File(path)
	default:
		return nil, NewDecodeError(path, ErrCodeUnsupportedFormat,
			"unsupported audio format "+filepath.Ext(path), nil)
	}
}

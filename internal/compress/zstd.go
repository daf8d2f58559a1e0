// Package compress provides ZStandard compression for Flight action bodies.
package compress

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// magic is the ZStandard frame magic number. A body starting with it is
// treated as compressed.
var magic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// IsCompressed reports whether data starts with a ZStandard frame header.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, magic)
}

// Codec compresses and decompresses bodies. Create once and share;
// it is safe for concurrent use.
type Codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewCodec creates a codec. maxSize caps the decompressed size of a body;
// zero means no limit beyond the decoder default.
func NewCodec(maxSize int) (*Codec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	opts := []zstd.DOption{zstd.WithDecoderConcurrency(0)}
	if maxSize > 0 {
		opts = append(opts, zstd.WithDecoderMaxMemory(uint64(maxSize)))
	}
	decoder, err := zstd.NewReader(nil, opts...)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &Codec{encoder: encoder, decoder: decoder}, nil
}

// Compress returns data as a single ZStandard frame.
func (c *Codec) Compress(data []byte) []byte {
	return c.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
}

// Decompress decodes a ZStandard body. Bodies without the frame magic are
// returned unchanged.
func (c *Codec) Decompress(data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		return data, nil
	}
	out, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return out, nil
}

// Close releases encoder and decoder resources.
func (c *Codec) Close() error {
	c.decoder.Close()
	return c.encoder.Close()
}

package storage

import (
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/blobfall/internal/board"
)

// EncodeBoard compresses the ASCII picture of a well for storage.
func EncodeBoard(b *board.Board) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, fmt.Errorf("storage: cannot create encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll([]byte(b.String()), nil), nil
}

// DecodeBoard restores a well stored with EncodeBoard.
func DecodeBoard(data []byte) (*board.Board, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot create decoder: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot decode board: %w", err)
	}
	b, err := board.Parse(strings.Split(string(raw), "\n")...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot parse board: %w", err)
	}
	return b, nil
}

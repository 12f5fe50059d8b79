// Package history persists finalized hand records: a binary container
// format for snapshots and a PHH (poker hand history) TOML export for
// interchange with analysis tools.
package history

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"time"

	"github.com/lox/pokerengine/internal/engine"
)

// Container layout: a fixed 32-byte header followed by the payload.
//
//	offset size field
//	     0    4 magic "POKR"
//	     4    1 major version
//	     5    1 minor version
//	     6    2 reserved
//	     8    4 file type
//	    12    8 unix-millisecond timestamp
//	    20    4 CRC-32 (IEEE) of the payload
//	    24    4 payload length
//	    28    4 flags
//
// All integers are little endian. A reader rejects anything whose magic,
// major version, length or checksum does not validate.
const (
	headerSize = 32

	versionMajor = 1
	versionMinor = 0
)

var magic = [4]byte{'P', 'O', 'K', 'R'}

// File types.
const (
	FileTypeSnapshot uint32 = 1
	FileTypeStats    uint32 = 2
)

// Header flags. Both are reserved for future use and always written as
// zero today; a reader tolerates them being set.
const (
	FlagCompressed uint32 = 1 << 0
	FlagEncrypted  uint32 = 1 << 1
)

// Header is the decoded container header.
type Header struct {
	Major     uint8
	Minor     uint8
	FileType  uint32
	Timestamp time.Time
	Flags     uint32
}

// Encode writes a container with the given file type and payload.
func Encode(w io.Writer, fileType uint32, ts time.Time, payload []byte) error {
	var hdr [headerSize]byte
	copy(hdr[0:4], magic[:])
	hdr[4] = versionMajor
	hdr[5] = versionMinor
	binary.LittleEndian.PutUint32(hdr[8:12], fileType)
	binary.LittleEndian.PutUint64(hdr[12:20], uint64(ts.UnixMilli()))
	binary.LittleEndian.PutUint32(hdr[20:24], crc32.ChecksumIEEE(payload))
	binary.LittleEndian.PutUint32(hdr[24:28], uint32(len(payload)))
	binary.LittleEndian.PutUint32(hdr[28:32], 0)

	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// Decode reads and validates a container, returning the header and
// payload. Validation failures wrap engine.ErrParse.
func Decode(r io.Reader) (Header, []byte, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Header{}, nil, fmt.Errorf("%w: short header: %v", engine.ErrParse, err)
	}
	if !bytes.Equal(hdr[0:4], magic[:]) {
		return Header{}, nil, fmt.Errorf("%w: bad magic %q", engine.ErrParse, hdr[0:4])
	}
	h := Header{
		Major:     hdr[4],
		Minor:     hdr[5],
		FileType:  binary.LittleEndian.Uint32(hdr[8:12]),
		Timestamp: time.UnixMilli(int64(binary.LittleEndian.Uint64(hdr[12:20]))),
		Flags:     binary.LittleEndian.Uint32(hdr[28:32]),
	}
	if h.Major != versionMajor {
		return Header{}, nil, fmt.Errorf("%w: unsupported version %d.%d", engine.ErrParse, h.Major, h.Minor)
	}

	sum := binary.LittleEndian.Uint32(hdr[20:24])
	length := binary.LittleEndian.Uint32(hdr[24:28])
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Header{}, nil, fmt.Errorf("%w: short payload: %v", engine.ErrParse, err)
	}
	if got := crc32.ChecksumIEEE(payload); got != sum {
		return Header{}, nil, fmt.Errorf("%w: checksum mismatch: got %08x want %08x", engine.ErrParse, got, sum)
	}
	return h, payload, nil
}

// AppendRecord frames one record onto a payload with a length prefix.
func AppendRecord(payload, record []byte) []byte {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(record)))
	payload = append(payload, n[:]...)
	return append(payload, record...)
}

// Records splits a payload back into its framed records.
func Records(payload []byte) ([][]byte, error) {
	var out [][]byte
	for len(payload) > 0 {
		if len(payload) < 4 {
			return nil, fmt.Errorf("%w: truncated record length", engine.ErrParse)
		}
		n := binary.LittleEndian.Uint32(payload[:4])
		payload = payload[4:]
		if uint32(len(payload)) < n {
			return nil, fmt.Errorf("%w: record length %d exceeds payload", engine.ErrParse, n)
		}
		out = append(out, payload[:n:n])
		payload = payload[n:]
	}
	return out, nil
}

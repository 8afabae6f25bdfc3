// Package wire implements the packed frame-buffer format: row-major
// little-endian cell records, plus a framed container with checksum used by
// frame capture and restore. Records can be pasted back into a buffer with
// compose.DrawPackedBuffer without per-cell call overhead.
package wire

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"math"

	"github.com/framegrace/cellframe/cell"
)

// RecordSize is the encoded size of one cell:
// codepoint u32, fg 4×f32, bg 4×f32, attributes u8.
const RecordSize = 4 + 16 + 16 + 1

const (
	magic      uint32 = 0x43465201 // "CFR\x01"
	headerSize        = 20
)

// Version is the frame container version implemented by this package.
const Version uint8 = 0

// Flag bits for the container Flags byte.
const (
	FlagChecksum uint8 = 0x01
)

var (
	ErrInvalidMagic     = errors.New("wire: invalid magic")
	ErrUnsupportedVer   = errors.New("wire: unsupported version")
	ErrShortPayload     = errors.New("wire: payload shorter than declared length")
	ErrChecksumMismatch = errors.New("wire: checksum mismatch")
	ErrBadRecordRun     = errors.New("wire: data length is not a whole number of cell records")
)

// AppendCell appends one encoded cell record to dst and returns the
// extended slice.
func AppendCell(dst []byte, r rune, fg, bg cell.RGBA, attrs cell.Attr) []byte {
	var rec [RecordSize]byte
	binary.LittleEndian.PutUint32(rec[0:], uint32(r))
	putColor(rec[4:], fg)
	putColor(rec[20:], bg)
	rec[36] = uint8(attrs)
	return append(dst, rec[:]...)
}

func putColor(b []byte, c cell.RGBA) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(c.R))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(c.G))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(c.B))
	binary.LittleEndian.PutUint32(b[12:], math.Float32bits(c.A))
}

func getColor(b []byte) cell.RGBA {
	return cell.RGBA{
		R: math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
		G: math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		B: math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
		A: math.Float32frombits(binary.LittleEndian.Uint32(b[12:])),
	}
}

// RecordCount validates that data holds a whole number of cell records and
// returns how many.
func RecordCount(data []byte) (int, error) {
	if len(data)%RecordSize != 0 {
		return 0, ErrBadRecordRun
	}
	return len(data) / RecordSize, nil
}

// RecordAt decodes the i-th record of a validated run. The caller is
// responsible for i being in range (see RecordCount).
func RecordAt(data []byte, i int) cell.Cell {
	rec := data[i*RecordSize:]
	return cell.Cell{
		Rune:  rune(binary.LittleEndian.Uint32(rec[0:])),
		Fg:    getColor(rec[4:]),
		Bg:    getColor(rec[20:]),
		Attrs: cell.Attr(rec[36]),
	}
}

// EncodeCells serialises the whole buffer as a row-major record run with no
// container header.
func EncodeCells(b *cell.Buffer) []byte {
	out := make([]byte, 0, b.Size()*RecordSize)
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			c, _ := b.CellAt(x, y)
			out = AppendCell(out, c.Rune, c.Fg, c.Bg, c.Attrs)
		}
	}
	return out
}

// EncodeFrame wraps the buffer's record run in a framed container:
// magic u32, version u8, flags u8, width u16, height u16, payloadLen u32,
// checksum u32 (CRC-32 over the header fields after magic plus payload),
// then the payload.
func EncodeFrame(b *cell.Buffer) []byte {
	payload := EncodeCells(b)

	buf := make([]byte, headerSize, headerSize+len(payload))
	binary.LittleEndian.PutUint32(buf[0:], magic)
	buf[4] = Version
	buf[5] = FlagChecksum
	binary.LittleEndian.PutUint16(buf[6:], uint16(b.Width()))
	binary.LittleEndian.PutUint16(buf[8:], uint16(b.Height()))
	binary.LittleEndian.PutUint32(buf[10:], uint32(len(payload)))
	// buf[14:16] reserved

	crc := crc32.NewIEEE()
	_, _ = crc.Write(buf[4:16])
	_, _ = crc.Write(payload)
	binary.LittleEndian.PutUint32(buf[16:], crc.Sum32())

	return append(buf, payload...)
}

// DecodeFrame reverses EncodeFrame, returning a freshly allocated buffer.
func DecodeFrame(data []byte) (*cell.Buffer, error) {
	if len(data) < headerSize {
		return nil, ErrShortPayload
	}
	if binary.LittleEndian.Uint32(data[0:4]) != magic {
		return nil, ErrInvalidMagic
	}
	if data[4] != Version {
		return nil, ErrUnsupportedVer
	}
	flags := data[5]
	width := int(binary.LittleEndian.Uint16(data[6:8]))
	height := int(binary.LittleEndian.Uint16(data[8:10]))
	payloadLen := int(binary.LittleEndian.Uint32(data[10:14]))
	declared := binary.LittleEndian.Uint32(data[16:20])

	payload := data[headerSize:]
	if len(payload) < payloadLen {
		return nil, ErrShortPayload
	}
	payload = payload[:payloadLen]

	if flags&FlagChecksum != 0 {
		crc := crc32.NewIEEE()
		_, _ = crc.Write(data[4:16])
		_, _ = crc.Write(payload)
		if crc.Sum32() != declared {
			return nil, ErrChecksumMismatch
		}
	}

	n, err := RecordCount(payload)
	if err != nil {
		return nil, err
	}
	if n != width*height {
		return nil, ErrShortPayload
	}

	b, err := cell.NewBuffer(width, height)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		c := RecordAt(payload, i)
		b.SetCell(i%width, i/width, c.Rune, c.Fg, c.Bg, c.Attrs)
	}
	return b, nil
}

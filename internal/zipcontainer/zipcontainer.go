// Package zipcontainer implements the narrow slice of the ZIP format
// the SOG codec needs: STORED-mode writing, and STORED+DEFLATE
// reading via a backward End-Of-Central-Directory scan.
package zipcontainer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/flate"
)

const (
	localHeaderSig   = 0x04034b50
	centralHeaderSig = 0x02014b50
	eocdSig          = 0x06054b50

	methodStored  = 0
	methodDeflate = 8
)

// Entry is one named byte blob inside a container.
type Entry struct {
	Name string
	Data []byte
}

// Write assembles entries into a STORED-mode ZIP archive.
func Write(entries []Entry) []byte {
	var buf bytes.Buffer
	type centralRecord struct {
		name   string
		crc    uint32
		size   uint32
		offset uint32
	}
	records := make([]centralRecord, 0, len(entries))

	for _, e := range entries {
		offset := uint32(buf.Len())
		crc := crc32.ChecksumIEEE(e.Data)
		size := uint32(len(e.Data))

		var hdr [30]byte
		binary.LittleEndian.PutUint32(hdr[0:4], localHeaderSig)
		binary.LittleEndian.PutUint16(hdr[4:6], 20) // version needed
		binary.LittleEndian.PutUint16(hdr[6:8], 0)  // flags
		binary.LittleEndian.PutUint16(hdr[8:10], methodStored)
		binary.LittleEndian.PutUint16(hdr[10:12], 0) // mod time
		binary.LittleEndian.PutUint16(hdr[12:14], 0) // mod date
		binary.LittleEndian.PutUint32(hdr[14:18], crc)
		binary.LittleEndian.PutUint32(hdr[18:22], size)
		binary.LittleEndian.PutUint32(hdr[22:26], size)
		binary.LittleEndian.PutUint16(hdr[26:28], uint16(len(e.Name)))
		binary.LittleEndian.PutUint16(hdr[28:30], 0)

		buf.Write(hdr[:])
		buf.WriteString(e.Name)
		buf.Write(e.Data)

		records = append(records, centralRecord{name: e.Name, crc: crc, size: size, offset: offset})
	}

	cdStart := uint32(buf.Len())
	for _, r := range records {
		var hdr [46]byte
		binary.LittleEndian.PutUint32(hdr[0:4], centralHeaderSig)
		binary.LittleEndian.PutUint16(hdr[4:6], 20)  // version made by
		binary.LittleEndian.PutUint16(hdr[6:8], 20)  // version needed
		binary.LittleEndian.PutUint16(hdr[8:10], 0)  // flags
		binary.LittleEndian.PutUint16(hdr[10:12], methodStored)
		binary.LittleEndian.PutUint16(hdr[12:14], 0) // mod time
		binary.LittleEndian.PutUint16(hdr[14:16], 0) // mod date
		binary.LittleEndian.PutUint32(hdr[16:20], r.crc)
		binary.LittleEndian.PutUint32(hdr[20:24], r.size)
		binary.LittleEndian.PutUint32(hdr[24:28], r.size)
		binary.LittleEndian.PutUint16(hdr[28:30], uint16(len(r.name)))
		// extra/comment lengths, disk number, attrs all zero
		binary.LittleEndian.PutUint32(hdr[42:46], r.offset)

		buf.Write(hdr[:])
		buf.WriteString(r.name)
	}
	cdSize := uint32(buf.Len()) - cdStart

	var eocd [22]byte
	binary.LittleEndian.PutUint32(eocd[0:4], eocdSig)
	binary.LittleEndian.PutUint16(eocd[4:6], 0)
	binary.LittleEndian.PutUint16(eocd[6:8], 0)
	binary.LittleEndian.PutUint16(eocd[8:10], uint16(len(records)))
	binary.LittleEndian.PutUint16(eocd[10:12], uint16(len(records)))
	binary.LittleEndian.PutUint32(eocd[12:16], cdSize)
	binary.LittleEndian.PutUint32(eocd[16:20], cdStart)
	binary.LittleEndian.PutUint16(eocd[20:22], 0)
	buf.Write(eocd[:])

	return buf.Bytes()
}

// Read parses a ZIP archive whose entries are STORED or DEFLATE,
// locating the central directory via a backward EOCD scan.
func Read(data []byte) ([]Entry, error) {
	eocdOff, err := findEOCD(data)
	if err != nil {
		return nil, err
	}
	total := binary.LittleEndian.Uint16(data[eocdOff+10 : eocdOff+12])
	cdOffset := binary.LittleEndian.Uint32(data[eocdOff+16 : eocdOff+20])

	entries := make([]Entry, 0, total)
	off := int(cdOffset)
	for i := 0; i < int(total); i++ {
		if off+46 > len(data) || binary.LittleEndian.Uint32(data[off:off+4]) != centralHeaderSig {
			return nil, fmt.Errorf("zipcontainer: malformed central directory entry %d", i)
		}
		method := binary.LittleEndian.Uint16(data[off+10 : off+12])
		compSize := binary.LittleEndian.Uint32(data[off+20 : off+24])
		uncompSize := binary.LittleEndian.Uint32(data[off+24 : off+28])
		nameLen := binary.LittleEndian.Uint16(data[off+28 : off+30])
		extraLen := binary.LittleEndian.Uint16(data[off+30 : off+32])
		commentLen := binary.LittleEndian.Uint16(data[off+32 : off+34])
		localOffset := binary.LittleEndian.Uint32(data[off+42 : off+46])
		name := string(data[off+46 : off+46+int(nameLen)])

		payload, err := readLocalEntry(data, int(localOffset), method, int(compSize), int(uncompSize))
		if err != nil {
			return nil, fmt.Errorf("zipcontainer: entry %q: %w", name, err)
		}
		entries = append(entries, Entry{Name: name, Data: payload})

		off += 46 + int(nameLen) + int(extraLen) + int(commentLen)
	}
	return entries, nil
}

func readLocalEntry(data []byte, off int, method uint16, compSize, uncompSize int) ([]byte, error) {
	if off+30 > len(data) || binary.LittleEndian.Uint32(data[off:off+4]) != localHeaderSig {
		return nil, fmt.Errorf("bad local file header at offset %d", off)
	}
	nameLen := int(binary.LittleEndian.Uint16(data[off+26 : off+28]))
	extraLen := int(binary.LittleEndian.Uint16(data[off+28 : off+30]))
	dataOff := off + 30 + nameLen + extraLen

	if dataOff+compSize > len(data) {
		return nil, fmt.Errorf("truncated entry payload")
	}
	raw := data[dataOff : dataOff+compSize]

	switch method {
	case methodStored:
		out := make([]byte, len(raw))
		copy(out, raw)
		return out, nil
	case methodDeflate:
		fr := flate.NewReader(bytes.NewReader(raw))
		defer fr.Close()
		out := make([]byte, 0, uncompSize)
		buf := &bytes.Buffer{}
		if _, err := io.Copy(buf, fr); err != nil {
			return nil, fmt.Errorf("deflate: %w", err)
		}
		out = append(out, buf.Bytes()...)
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported compression method %d", method)
	}
}

func findEOCD(data []byte) (int, error) {
	maxScan := 22 + 65536
	start := len(data) - 22
	limit := 0
	if len(data)-maxScan > 0 {
		limit = len(data) - maxScan
	}
	for i := start; i >= limit; i-- {
		if i < 0 {
			break
		}
		if binary.LittleEndian.Uint32(data[i:i+4]) == eocdSig {
			return i, nil
		}
	}
	return 0, fmt.Errorf("zipcontainer: end-of-central-directory record not found")
}

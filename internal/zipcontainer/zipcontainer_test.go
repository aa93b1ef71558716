package zipcontainer

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	entries := []Entry{
		{Name: "meta.json", Data: []byte(`{"version":2}`)},
		{Name: "means_l.webp", Data: bytes.Repeat([]byte{0xAB}, 37)},
	}
	data := Write(entries)

	got, err := Read(data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "meta.json", got[0].Name)
	require.Equal(t, entries[0].Data, got[0].Data)
	require.Equal(t, entries[1].Data, got[1].Data)
}

func TestReadDeflateEntry(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog, repeatedly, repeatedly, repeatedly")
	var compressed bytes.Buffer
	fw, err := flate.NewWriter(&compressed, flate.DefaultCompression)
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	data := buildZipWithMethod(t, "data.bin", payload, compressed.Bytes(), methodDeflate)
	got, err := Read(data)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, payload, got[0].Data)
}

func TestReadRejectsMissingEOCD(t *testing.T) {
	_, err := Read([]byte("not a zip file"))
	require.Error(t, err)
}

// buildZipWithMethod hand-assembles a single-entry ZIP using an
// arbitrary compression method, to exercise the reader's method
// dispatch independent of the writer (which only emits STORED).
func buildZipWithMethod(t *testing.T, name string, uncompressed, compressed []byte, method uint16) []byte {
	t.Helper()
	var buf bytes.Buffer
	crc := crc32.ChecksumIEEE(uncompressed)

	var lh [30]byte
	binary.LittleEndian.PutUint32(lh[0:4], localHeaderSig)
	binary.LittleEndian.PutUint16(lh[8:10], method)
	binary.LittleEndian.PutUint32(lh[14:18], crc)
	binary.LittleEndian.PutUint32(lh[18:22], uint32(len(compressed)))
	binary.LittleEndian.PutUint32(lh[22:26], uint32(len(uncompressed)))
	binary.LittleEndian.PutUint16(lh[26:28], uint16(len(name)))
	localOff := uint32(buf.Len())
	buf.Write(lh[:])
	buf.WriteString(name)
	buf.Write(compressed)

	cdStart := uint32(buf.Len())
	var ch [46]byte
	binary.LittleEndian.PutUint32(ch[0:4], centralHeaderSig)
	binary.LittleEndian.PutUint16(ch[10:12], method)
	binary.LittleEndian.PutUint32(ch[16:20], crc)
	binary.LittleEndian.PutUint32(ch[20:24], uint32(len(compressed)))
	binary.LittleEndian.PutUint32(ch[24:28], uint32(len(uncompressed)))
	binary.LittleEndian.PutUint16(ch[28:30], uint16(len(name)))
	binary.LittleEndian.PutUint32(ch[42:46], localOff)
	buf.Write(ch[:])
	buf.WriteString(name)
	cdSize := uint32(buf.Len()) - cdStart

	var eocd [22]byte
	binary.LittleEndian.PutUint32(eocd[0:4], eocdSig)
	binary.LittleEndian.PutUint16(eocd[8:10], 1)
	binary.LittleEndian.PutUint16(eocd[10:12], 1)
	binary.LittleEndian.PutUint32(eocd[12:16], cdSize)
	binary.LittleEndian.PutUint32(eocd[16:20], cdStart)
	buf.Write(eocd[:])

	return buf.Bytes()
}

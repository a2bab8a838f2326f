package fs

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	docsmaker "github.com/masterdubs/docs-maker"
)

// vecMagic identifies version 1 of the embedding record set format:
// magic, uint32 record count, then per record a length-prefixed label and a
// length-prefixed little-endian float32 vector. Vectors round-trip
// bit-for-bit because the raw IEEE 754 bits are written.
var vecMagic = []byte("DMV1")

func encodeRecords(records []docsmaker.EmbeddingRecord) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(vecMagic)

	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(records))); err != nil {
		return nil, err
	}

	for _, rec := range records {
		label := []byte(rec.Label)
		if err := binary.Write(&buf, binary.LittleEndian, uint32(len(label))); err != nil {
			return nil, err
		}
		buf.Write(label)

		if err := binary.Write(&buf, binary.LittleEndian, uint32(len(rec.Vector))); err != nil {
			return nil, err
		}
		for _, v := range rec.Vector {
			if err := binary.Write(&buf, binary.LittleEndian, math.Float32bits(v)); err != nil {
				return nil, err
			}
		}
	}

	return buf.Bytes(), nil
}

func decodeRecords(data []byte) ([]docsmaker.EmbeddingRecord, error) {
	buf := bytes.NewReader(data)

	magic := make([]byte, len(vecMagic))
	if _, err := io.ReadFull(buf, magic); err != nil || !bytes.Equal(magic, vecMagic) {
		return nil, docsmaker.Errorf(docsmaker.EINTERNAL, "unrecognized embedding file format")
	}

	var count uint32
	if err := binary.Read(buf, binary.LittleEndian, &count); err != nil {
		return nil, docsmaker.Errorf(docsmaker.EINTERNAL, "truncated embedding file: %v", err)
	}
	// Every record carries at least its two length prefixes, so a count
	// the remaining bytes cannot hold is corruption, not a short read.
	if int64(count)*8 > int64(buf.Len()) {
		return nil, docsmaker.Errorf(docsmaker.EINTERNAL, "corrupt embedding file: record count %d exceeds file size", count)
	}

	records := make([]docsmaker.EmbeddingRecord, 0, count)
	for i := uint32(0); i < count; i++ {
		var labelLen uint32
		if err := binary.Read(buf, binary.LittleEndian, &labelLen); err != nil {
			return nil, docsmaker.Errorf(docsmaker.EINTERNAL, "truncated embedding file: %v", err)
		}
		if int64(labelLen) > int64(buf.Len()) {
			return nil, docsmaker.Errorf(docsmaker.EINTERNAL, "corrupt embedding file: label length %d exceeds file size", labelLen)
		}
		label := make([]byte, labelLen)
		if _, err := io.ReadFull(buf, label); err != nil {
			return nil, docsmaker.Errorf(docsmaker.EINTERNAL, "truncated embedding file: %v", err)
		}

		var dim uint32
		if err := binary.Read(buf, binary.LittleEndian, &dim); err != nil {
			return nil, docsmaker.Errorf(docsmaker.EINTERNAL, "truncated embedding file: %v", err)
		}
		if int64(dim)*4 > int64(buf.Len()) {
			return nil, docsmaker.Errorf(docsmaker.EINTERNAL, "corrupt embedding file: vector length %d exceeds file size", dim)
		}
		vector := make([]float32, dim)
		for j := uint32(0); j < dim; j++ {
			var bits uint32
			if err := binary.Read(buf, binary.LittleEndian, &bits); err != nil {
				return nil, docsmaker.Errorf(docsmaker.EINTERNAL, "truncated embedding file: %v", err)
			}
			vector[j] = math.Float32frombits(bits)
		}

		records = append(records, docsmaker.EmbeddingRecord{Label: string(label), Vector: vector})
	}

	return records, nil
}

package gltfkit

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ferrite3d/gltfkit/bytesrc"
)

// GLB container magic and chunk type constants, straight from the
// binary glTF schema (teacher's loader/gltf/gltf.go carries the same
// values under GLBMagic/GLBJson/GLBBin).
const (
	glbMagic       uint32 = 0x46546C67
	glbChunkJSON   uint32 = 0x4E4F534A
	glbChunkBinary uint32 = 0x004E4942
	glbVersion     uint32 = 2
	glbHeaderSize  uint32 = 12
	glbChunkHdrLen uint32 = 8
)

// GLBHeader is the 12-byte header at the start of every GLB file.
type GLBHeader struct {
	Magic   uint32
	Version uint32
	Length  uint32
}

// GLBDocument is the result of splitting a GLB container into its two
// possible chunks, before any JSON decoding happens.
type GLBDocument struct {
	Header GLBHeader
	JSON   []byte
	Binary []byte
}

// DecodeGLB reads a GLB container's header and chunk table from src,
// generalizing the teacher's ParseBinReader/readChunk (loader/gltf/loader.go)
// to operate over a bytesrc.Source instead of an io.Reader, and to
// return the raw chunk bytes rather than immediately parsing JSON.
func DecodeGLB(src bytesrc.Source) (*GLBDocument, error) {
	var hdr [12]byte
	if err := src.Read(hdr[:], 12); err != nil {
		return nil, Wrap(InvalidGLB, "truncated header", err)
	}

	doc := &GLBDocument{Header: GLBHeader{
		Magic:   binary.LittleEndian.Uint32(hdr[0:4]),
		Version: binary.LittleEndian.Uint32(hdr[4:8]),
		Length:  binary.LittleEndian.Uint32(hdr[8:12]),
	}}

	if doc.Header.Magic != glbMagic {
		return nil, Wrap(InvalidGLB, "bad magic", nil)
	}
	if doc.Header.Version != glbVersion {
		return nil, Wrap(UnsupportedVersion, fmt.Sprintf("glb version %d", doc.Header.Version), nil)
	}

	for src.BytesRead() < src.TotalSize() {
		chunkLen, chunkType, err := readChunkHeader(src)
		if err != nil {
			return nil, err
		}
		data := make([]byte, chunkLen)
		if err := src.Read(data, int(chunkLen)); err != nil {
			return nil, Wrap(InvalidGLB, "truncated chunk body", err)
		}
		switch chunkType {
		case glbChunkJSON:
			doc.JSON = data
		case glbChunkBinary:
			doc.Binary = data
		default:
			// Unknown chunk types are skipped per the glTF binary spec,
			// which reserves them for future use.
		}
	}

	if doc.JSON == nil {
		return nil, Wrap(InvalidGLB, "missing JSON chunk", nil)
	}
	return doc, nil
}

func readChunkHeader(src bytesrc.Source) (length, chunkType uint32, err error) {
	var hdr [8]byte
	if rerr := src.Read(hdr[:], 8); rerr != nil {
		return 0, 0, Wrap(InvalidGLB, "truncated chunk header", rerr)
	}
	return binary.LittleEndian.Uint32(hdr[0:4]), binary.LittleEndian.Uint32(hdr[4:8]), nil
}

// EncodeGLB writes a GLB container to w: a 12-byte header, a JSON chunk
// padded to a 4-byte boundary with trailing spaces, and (if binary is
// non-empty) a BIN chunk padded with trailing zero bytes. This write
// side has no equivalent in the teacher, which only ever parsed GLB;
// it follows the same chunk framing DecodeGLB reads.
func EncodeGLB(w io.Writer, jsonChunk, binaryChunk []byte) error {
	paddedJSON := padChunk(jsonChunk, ' ')
	paddedBin := padChunk(binaryChunk, 0)

	total := uint64(glbHeaderSize) + uint64(glbChunkHdrLen) + uint64(len(paddedJSON))
	if len(paddedBin) > 0 {
		total += uint64(glbChunkHdrLen) + uint64(len(paddedBin))
	}
	if total > 0xFFFFFFFF {
		return Wrap(InvalidGLB, "total length does not fit the 32-bit GLB length field", nil)
	}

	var hdr [12]byte
	binary.LittleEndian.PutUint32(hdr[0:4], glbMagic)
	binary.LittleEndian.PutUint32(hdr[4:8], glbVersion)
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(total))
	if _, err := w.Write(hdr[:]); err != nil {
		return Wrap(FailedWritingFiles, "header", err)
	}

	if err := writeChunk(w, paddedJSON, glbChunkJSON); err != nil {
		return err
	}
	if len(paddedBin) > 0 {
		if err := writeChunk(w, paddedBin, glbChunkBinary); err != nil {
			return err
		}
	}
	return nil
}

func writeChunk(w io.Writer, data []byte, chunkType uint32) error {
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(len(data)))
	binary.LittleEndian.PutUint32(hdr[4:8], chunkType)
	if _, err := w.Write(hdr[:]); err != nil {
		return Wrap(FailedWritingFiles, "chunk header", err)
	}
	if _, err := w.Write(data); err != nil {
		return Wrap(FailedWritingFiles, "chunk body", err)
	}
	return nil
}

func padChunk(data []byte, fill byte) []byte {
	if len(data) == 0 {
		return data
	}
	rem := len(data) % 4
	if rem == 0 {
		return data
	}
	padded := make([]byte, len(data)+(4-rem))
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = fill
	}
	return padded
}

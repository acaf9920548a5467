package gltfkit

import "io"

// EncodeGLBAsset serializes asset as a complete GLB container to w.
// Buffer 0 is embedded as the BIN chunk verbatim when it carries
// resolved bytes and EncodeOptions.BufferPaths does not redirect it to
// an external file; every other buffer/image is inlined as a data URI
// by EncodeJSON unless its own external path is given.
func EncodeGLBAsset(w io.Writer, asset *Asset, opts EncodeOptions) error {
	var binary []byte
	if len(asset.Buffers) > 0 {
		if _, redirected := opts.BufferPaths[0]; !redirected {
			if data, ok := asset.Buffers[0].Source.Data(); ok {
				binary = data
			}
		}
	}

	jsonChunk, err := EncodeJSON(asset, opts)
	if err != nil {
		return err
	}
	return EncodeGLB(w, jsonChunk, binary)
}

package gltfkit

// DataSourceKind discriminates the DataSource tagged union.
type DataSourceKind int

const (
	// DataSourceEmpty means no data has been resolved yet.
	DataSourceEmpty DataSourceKind = iota
	// DataSourceBufferView means the data lives in another buffer's
	// bufferView (used by images that reference bufferView instead of
	// uri).
	DataSourceBufferView
	// DataSourceURI means the data is an external URI that was not
	// resolved eagerly; URI/IsData describe it.
	DataSourceURI
	// DataSourceArray means the data is an owned, heap-allocated byte
	// slice (e.g. a decoded base64 payload).
	DataSourceArray
	// DataSourceVector is identical in shape to DataSourceArray; it is
	// kept distinct so a future encoder can tell "we allocated this"
	// apart from "this was handed to us", mirroring fastgltf's
	// sources::Vector vs sources::Array split.
	DataSourceVector
	// DataSourceCustomBuffer means the data was supplied by the caller
	// as an opaque handle (e.g. an already-uploaded GPU buffer) that
	// this library never reads.
	DataSourceCustomBuffer
	// DataSourceByteView means the data is a borrowed, non-owned byte
	// slice (e.g. a view directly into the GLB BIN chunk).
	DataSourceByteView
	// DataSourceFallback means none of the above applied; MimeType may
	// still be set.
	DataSourceFallback
)

// DataSource is the tagged union every buffer and image payload is
// represented as, mirroring fastgltf's sources:: variant family.
type DataSource struct {
	Kind DataSourceKind

	// Valid when Kind == DataSourceBufferView.
	BufferViewIndex OptIndex

	// Valid when Kind == DataSourceURI.
	URI      string
	IsData   bool
	MimeType string

	// Valid when Kind == DataSourceArray or DataSourceVector: owned bytes.
	Bytes []byte

	// Valid when Kind == DataSourceByteView: borrowed bytes, must not be
	// retained past the Source's lifetime.
	View []byte

	// Valid when Kind == DataSourceCustomBuffer.
	CustomHandle uint64
}

// NewEmptyDataSource returns an unresolved DataSource.
func NewEmptyDataSource() DataSource { return DataSource{Kind: DataSourceEmpty} }

// NewBufferViewDataSource returns a DataSource pointing at another
// buffer's bufferView.
func NewBufferViewDataSource(idx uint32) DataSource {
	return DataSource{Kind: DataSourceBufferView, BufferViewIndex: OptIndex(idx)}
}

// NewURIDataSource returns an unresolved DataSource naming an external
// or data URI, with mimeType set if the caller already knows it (glTF's
// image.mimeType member).
func NewURIDataSource(uri string, isData bool, mimeType string) DataSource {
	return DataSource{Kind: DataSourceURI, URI: uri, IsData: isData, MimeType: mimeType}
}

// NewArrayDataSource returns a DataSource owning b (e.g. a freshly
// base64-decoded payload).
func NewArrayDataSource(b []byte, mimeType string) DataSource {
	return DataSource{Kind: DataSourceArray, Bytes: b, MimeType: mimeType}
}

// NewByteViewDataSource returns a DataSource borrowing b; b must remain
// valid for as long as the DataSource is used.
func NewByteViewDataSource(b []byte, mimeType string) DataSource {
	return DataSource{Kind: DataSourceByteView, View: b, MimeType: mimeType}
}

// Resolved reports whether this DataSource already carries bytes the
// caller can read without further I/O.
func (d DataSource) Resolved() bool {
	switch d.Kind {
	case DataSourceArray, DataSourceVector, DataSourceByteView:
		return true
	default:
		return false
	}
}

// Data returns the resolved byte slice and true, or nil and false if
// this DataSource still requires resolution (a URI fetch or a
// bufferView lookup).
func (d DataSource) Data() ([]byte, bool) {
	switch d.Kind {
	case DataSourceArray, DataSourceVector:
		return d.Bytes, true
	case DataSourceByteView:
		return d.View, true
	default:
		return nil, false
	}
}

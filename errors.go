package gltfkit

// Error is a closed set of failure reasons a decode, validate or encode
// operation can report. It implements the error interface directly so
// callers can compare with ==.
type Error int

const (
	// None means there was no error.
	None Error = iota
	// InvalidPath means the given path could not be opened.
	InvalidPath
	// MissingExtensions means a glTF member required an extension that
	// is missing from the document's extensionsUsed list.
	MissingExtensions
	// UnknownRequiredExtension means the document lists an extension in
	// extensionsRequired that this decoder does not implement.
	UnknownRequiredExtension
	// InvalidJson means the top-level or embedded JSON chunk is not
	// well-formed JSON.
	InvalidJson
	// InvalidGltf means the JSON is well-formed but does not describe a
	// structurally valid glTF asset.
	InvalidGltf
	// InvalidOrMissingAssetField means the required top-level "asset"
	// member is absent or malformed.
	InvalidOrMissingAssetField
	// InvalidGLB means a GLB container's header or chunk layout is
	// malformed.
	InvalidGLB
	// MissingField means a member required by the glTF schema is absent.
	MissingField
	// MissingExternalBuffer means a buffer's URI points outside the
	// GLB/JSON payload and DecodeOptions did not permit or supply it.
	MissingExternalBuffer
	// UnsupportedVersion means asset.version names a major glTF version
	// this decoder does not support.
	UnsupportedVersion
	// InvalidURI means a URI string failed to parse.
	InvalidURI
	// InvalidFileData means binary payload data (an image, a sparse
	// accessor buffer view, etc.) was truncated or malformed.
	InvalidFileData
	// FailedWritingFiles means EncodeGLB (or the CLI writing its output
	// file) could not write to its destination.
	FailedWritingFiles
)

var errorText = map[Error]string{
	None:                       "no error",
	InvalidPath:                "invalid path",
	MissingExtensions:          "missing extensions",
	UnknownRequiredExtension:   "unknown required extension",
	InvalidJson:                "invalid json",
	InvalidGltf:                "invalid gltf",
	InvalidOrMissingAssetField: "invalid or missing asset field",
	InvalidGLB:                 "invalid glb",
	MissingField:               "missing field",
	MissingExternalBuffer:      "missing external buffer",
	UnsupportedVersion:         "unsupported version",
	InvalidURI:                 "invalid uri",
	InvalidFileData:            "invalid file data",
	FailedWritingFiles:         "failed writing files",
}

// Error implements the error interface.
func (e Error) Error() string {
	if s, ok := errorText[e]; ok {
		return "gltfkit: " + s
	}
	return "gltfkit: unknown error"
}

// Wrapped pairs an Error with additional context (a field name, a
// byte offset, an underlying error) without losing the closed reason.
type Wrapped struct {
	Reason Error
	Detail string
	Err    error
}

// Error implements the error interface.
func (w *Wrapped) Error() string {
	if w.Detail != "" {
		return w.Reason.Error() + ": " + w.Detail
	}
	return w.Reason.Error()
}

// Unwrap exposes the underlying error, if any, for errors.Is/As.
func (w *Wrapped) Unwrap() error { return w.Err }

// Is reports whether target is the same Error reason, so
// errors.Is(err, gltfkit.InvalidGLB) works against a *Wrapped.
func (w *Wrapped) Is(target error) bool {
	e, ok := target.(Error)
	return ok && e == w.Reason
}

// Wrap builds a *Wrapped carrying reason, a free-form detail string and
// an optional underlying error.
func Wrap(reason Error, detail string, err error) *Wrapped {
	return &Wrapped{Reason: reason, Detail: detail, Err: err}
}

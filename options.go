package gltfkit

// Category is a bitmask selecting which parts of a document to decode,
// adapted from fastgltf's Category enum (see original_source/ fastgltf
// for the category a component belongs to) so callers can skip
// resolving buffers/images they don't need.
type Category uint32

const (
	CategoryNone       Category = 0
	CategoryBuffers    Category = 1 << iota
	CategoryBufferViews
	CategoryAccessors
	CategoryImages
	CategorySamplers
	CategoryTextures
	CategoryMaterials
	CategoryMeshes
	CategorySkins
	CategoryCameras
	CategoryNodes
	CategoryScenes
	CategoryAnimations
	CategoryAsset

	CategoryAll Category = CategoryBuffers | CategoryBufferViews | CategoryAccessors |
		CategoryImages | CategorySamplers | CategoryTextures | CategoryMaterials |
		CategoryMeshes | CategorySkins | CategoryCameras | CategoryNodes |
		CategoryScenes | CategoryAnimations | CategoryAsset
)

// Has reports whether c includes all bits of other.
func (c Category) Has(other Category) bool { return c&other == other }

// DecodeOptions controls how Decode/DecodeGLBAsset parse and resolve a
// document.
type DecodeOptions struct {
	// AllowDouble accepts accessors whose componentType is ComponentInt
	// or ComponentDouble; without it, decoding such an accessor fails.
	AllowDouble bool
	// DontRequireValidAssetMember skips the InvalidOrMissingAssetField
	// check for malformed test fixtures that omit "asset".
	DontRequireValidAssetMember bool
	// LoadGLBBuffers resolves the implicit buffer 0 that a GLB's BIN
	// chunk supplies.
	LoadGLBBuffers bool
	// LoadExternalBuffers reads buffers whose URI is a local file path
	// eagerly during Decode rather than leaving them as unresolved
	// DataSource values. Data URIs are decoded whether or not it is set.
	LoadExternalBuffers bool
	// LoadExternalImages resolves image URIs eagerly during Decode.
	LoadExternalImages bool
	// DecomposeNodeMatrices converts every node.matrix into
	// translation/rotation/scale during decode, per spec.md's node
	// normalization step.
	DecomposeNodeMatrices bool
	// GenerateMeshIndices synthesizes a sequential index accessor for
	// primitives that omit "indices".
	GenerateMeshIndices bool
	// MinimiseJsonBeforeParsing strips insignificant whitespace from the
	// JSON chunk into a private scratch buffer before parsing; the
	// caller's source bytes are never mutated.
	MinimiseJsonBeforeParsing bool
	// ValidateAsset runs the full cross-reference validator after
	// decoding and returns its first failure as the Decode error.
	ValidateAsset bool
	// Categories restricts which top-level members are resolved into
	// Go values; members outside the mask are parsed structurally but
	// left as zero values.
	Categories Category
	// BaseDir is the directory URIs are resolved relative to, for
	// LoadExternalBuffers/LoadExternalImages.
	BaseDir string
}

// DefaultDecodeOptions returns the options spec.md's default decode
// path uses: load everything, keep node matrices as they are (no
// decomposition), validate nothing extra beyond structural decoding.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		LoadGLBBuffers:      true,
		LoadExternalBuffers: true,
		LoadExternalImages:  true,
		Categories:          CategoryAll,
	}
}

// EncodeOptions controls how EncodeGLBAsset/EncodeJSON serialize a document.
type EncodeOptions struct {
	// PrettyPrintJson indents the JSON chunk for readability; GLB
	// consumers generally want this off to save bytes.
	PrettyPrintJson bool
	// BufferPaths maps buffer index to an external file path for
	// buffers that should be written as separate files instead of
	// embedded as the GLB BIN chunk. Buffer 0 is embedded unless
	// present here.
	BufferPaths map[int]string
	// ImagePaths maps image index to an external file path for images
	// that should be written as separate files instead of inlined as a
	// data URI. Images whose source is a bufferView keep referencing it
	// and ignore this map.
	ImagePaths map[int]string
}

// Package gltfkit decodes, validates and encodes glTF 2.0 assets: the
// JSON/GLB container formats, their typed accessor views, and the
// cross-reference rules a well-formed document must satisfy.
package gltfkit

// Asset is the root object of a decoded glTF document, the equivalent
// of the teacher's GLTF struct generalized away from any renderer.
type Asset struct {
	ExtensionsUsed     []string
	ExtensionsRequired []string
	Accessors          []Accessor
	Animations         []Animation
	Metadata           Metadata
	Buffers            []Buffer
	BufferViews        []BufferView
	Cameras            []Camera
	Images             []Image
	Materials          []Material
	Meshes             []Mesh
	Nodes              []Node
	Samplers           []Sampler
	DefaultScene       OptIndex
	Scenes             []Scene
	Skins              []Skin
	Textures           []Texture
	Lights             []Light
	Extensions         map[string]interface{}
	Extras             interface{}
}

// Metadata carries the required top-level "asset" member (renamed from
// the schema's "Asset" to avoid colliding with the package-level Asset
// document type).
type Metadata struct {
	Copyright  string
	Generator  string
	Version    string
	MinVersion string
	Extensions map[string]interface{}
	Extras     interface{}
}

// ComponentType is an accessor's component data type, using the glTF
// schema's numeric enum values directly.
type ComponentType int

const (
	ComponentByte          ComponentType = 5120
	ComponentUnsignedByte  ComponentType = 5121
	ComponentShort         ComponentType = 5122
	ComponentUnsignedShort ComponentType = 5123
	// ComponentInt is not part of the core glTF schema; it is accepted
	// only when DecodeOptions.AllowDouble opts a caller into the wider,
	// non-standard numeric range spec.md §4.H describes.
	ComponentInt         ComponentType = 5124
	ComponentUnsignedInt ComponentType = 5125
	ComponentFloat       ComponentType = 5126
	// ComponentDouble is KHR_accessor_float64's 64-bit component type,
	// gated the same way behind AllowDouble.
	ComponentDouble ComponentType = 5130
)

// Size returns the size in bytes of one component of this type.
func (c ComponentType) Size() int {
	switch c {
	case ComponentByte, ComponentUnsignedByte:
		return 1
	case ComponentShort, ComponentUnsignedShort:
		return 2
	case ComponentInt, ComponentUnsignedInt, ComponentFloat:
		return 4
	case ComponentDouble:
		return 8
	default:
		return 0
	}
}

// ElementType names the shape of one accessor element (SCALAR, VEC2, ...).
type ElementType string

const (
	TypeScalar ElementType = "SCALAR"
	TypeVec2   ElementType = "VEC2"
	TypeVec3   ElementType = "VEC3"
	TypeVec4   ElementType = "VEC4"
	TypeMat2   ElementType = "MAT2"
	TypeMat3   ElementType = "MAT3"
	TypeMat4   ElementType = "MAT4"
)

// ComponentCount maps an ElementType to the number of components it holds.
var ComponentCount = map[ElementType]int{
	TypeScalar: 1,
	TypeVec2:   2,
	TypeVec3:   3,
	TypeVec4:   4,
	TypeMat2:   4,
	TypeMat3:   9,
	TypeMat4:   16,
}

// Sparse describes the sparse overlay of an Accessor: a set of indices
// into the base accessor's logical element array and the replacement
// values for those elements.
type Sparse struct {
	Count         int
	IndicesView   int
	IndicesOffset int
	IndicesType   ComponentType
	ValuesView    int
	ValuesOffset  int
	Extensions    map[string]interface{}
	Extras        interface{}
}

// Accessor is a typed view into a BufferView, spec.md §3.1's Accessor.
type Accessor struct {
	BufferView    OptIndex
	ByteOffset    int
	ComponentType ComponentType
	Normalized    bool
	Count         int
	Type          ElementType
	Max           *AccessorBoundsArray
	Min           *AccessorBoundsArray
	Sparse        *Sparse
	Name          string
	Extensions    map[string]interface{}
	Extras        interface{}
}

// Buffer points at raw binary payload: geometry, animation keyframes,
// or skin inverse-bind matrices.
type Buffer struct {
	Source     DataSource
	ByteLength int
	Name       string
	Extensions map[string]interface{}
	Extras     interface{}
}

// BufferView is a byte-range view into a Buffer.
type BufferView struct {
	Buffer     int
	ByteOffset int
	ByteLength int
	ByteStride OptIndex
	Target     OptIndex
	Compressed *CompressedBufferView
	Name       string
	Extensions map[string]interface{}
	Extras     interface{}
}

// CompressionMode is EXT_meshopt_compression's "mode" field.
type CompressionMode string

const (
	CompressionAttributes CompressionMode = "ATTRIBUTES"
	CompressionTriangles  CompressionMode = "TRIANGLES"
	CompressionIndices    CompressionMode = "INDICES"
)

// CompressionFilter is EXT_meshopt_compression's "filter" field.
type CompressionFilter string

const (
	CompressionFilterNone        CompressionFilter = "NONE"
	CompressionFilterOctahedral  CompressionFilter = "OCTAHEDRAL"
	CompressionFilterQuaternion  CompressionFilter = "QUATERNION"
	CompressionFilterExponential CompressionFilter = "EXPONENTIAL"
)

// CompressedBufferView is EXT_meshopt_compression's opaque metadata for
// a bufferView whose byte range is a meshopt-encoded stream rather than
// the plain typed array its owning accessor describes; spec.md §3.1
// records this metadata and leaves actual decompression to the host.
type CompressedBufferView struct {
	Buffer     int
	ByteOffset int
	ByteLength int
	ByteStride int
	Count      int
	Mode       CompressionMode
	Filter     CompressionFilter
}

// CameraKind discriminates the Camera tagged union.
type CameraKind int

const (
	CameraPerspective CameraKind = iota
	CameraOrthographic
)

// Perspective describes a perspective camera's projection parameters.
type Perspective struct {
	AspectRatio OptFloat64
	Yfov        float64
	Zfar        OptFloat64
	Znear       float64
}

// Orthographic describes an orthographic camera's projection parameters.
type Orthographic struct {
	Xmag  float64
	Ymag  float64
	Zfar  float64
	Znear float64
}

// Camera is a tagged union of the two camera projection kinds glTF defines.
type Camera struct {
	Kind         CameraKind
	Perspective  Perspective
	Orthographic Orthographic
	Name         string
	Extensions   map[string]interface{}
	Extras       interface{}
}

// Light is the KHR_lights_punctual light a node may reference,
// supplementing spec.md's distilled scope per original_source/'s wider
// extension coverage.
type Light struct {
	Kind       string // "directional", "point", or "spot"
	Color      [3]float64
	Intensity  float64
	Range      OptFloat64
	SpotInner  OptFloat64
	SpotOuter  OptFloat64
	Name       string
	Extensions map[string]interface{}
	Extras     interface{}
}

// Channel targets an animation sampler at a node's property.
type Channel struct {
	Sampler    int
	TargetNode OptIndex
	TargetPath string
	Extensions map[string]interface{}
	Extras     interface{}
}

// AnimationSampler combines input/output accessors with an interpolation mode.
type AnimationSampler struct {
	Input         int
	Interpolation string
	Output        int
	Extensions    map[string]interface{}
	Extras        interface{}
}

// Animation is a keyframe animation.
type Animation struct {
	Channels   []Channel
	Samplers   []AnimationSampler
	Name       string
	Extensions map[string]interface{}
	Extras     interface{}
}

// TextureInfo references a texture and its UV set.
type TextureInfo struct {
	Index      int
	TexCoord   int
	Transform  *TextureTransform
	Extensions map[string]interface{}
	Extras     interface{}
}

// TextureTransform is KHR_texture_transform's UV offset/rotation/scale,
// applied on top of a TextureInfo's texCoord.
type TextureTransform struct {
	Offset   [2]float64
	Rotation float64
	Scale    [2]float64
	TexCoord OptIndex
}

// NormalTextureInfo is a TextureInfo with an extra normal-scale factor.
type NormalTextureInfo struct {
	TextureInfo
	Scale float64
}

// OcclusionTextureInfo is a TextureInfo with an extra occlusion-strength factor.
type OcclusionTextureInfo struct {
	TextureInfo
	Strength float64
}

// PbrMetallicRoughness is the metallic-roughness PBR parameter set.
type PbrMetallicRoughness struct {
	BaseColorFactor          [4]float64
	BaseColorTexture         *TextureInfo
	MetallicFactor           float64
	RoughnessFactor          float64
	MetallicRoughnessTexture *TextureInfo
	Extensions               map[string]interface{}
	Extras                   interface{}
}

// Material describes a primitive's surface appearance.
//
// The KHR_materials_* sub-structs below supplement spec.md §3.1's
// distilled Material with the fuller extension family spec.md §6.2
// names; each is non-nil only when the corresponding extension object
// is present, and Validate requires the matching name appear in
// Asset.ExtensionsUsed before it accepts one as non-nil (spec.md §3.3's
// "material sub-struct being present is illegal unless ... extensionsUsed").
type Material struct {
	Name                   string
	PbrMetallicRoughness   *PbrMetallicRoughness
	NormalTexture          *NormalTextureInfo
	OcclusionTexture       *OcclusionTextureInfo
	EmissiveTexture        *TextureInfo
	EmissiveFactor         [3]float64
	AlphaMode              string
	AlphaCutoff            float64
	DoubleSided            bool
	Unlit                  bool
	Anisotropy             *MaterialAnisotropy
	Clearcoat              *MaterialClearcoat
	Sheen                  *MaterialSheen
	Specular               *MaterialSpecular
	Transmission           *MaterialTransmission
	Volume                 *MaterialVolume
	Iridescence            *MaterialIridescence
	IOR                    OptFloat64
	Dispersion             OptFloat64
	EmissiveStrength       OptFloat64
	DiffuseTransmission    *MaterialDiffuseTransmission
	Extensions             map[string]interface{}
	Extras                 interface{}
}

// MaterialAnisotropy is KHR_materials_anisotropy.
type MaterialAnisotropy struct {
	AnisotropyStrength float64
	AnisotropyRotation float64
	AnisotropyTexture  *TextureInfo
}

// MaterialClearcoat is KHR_materials_clearcoat.
type MaterialClearcoat struct {
	ClearcoatFactor           float64
	ClearcoatTexture          *TextureInfo
	ClearcoatRoughnessFactor  float64
	ClearcoatRoughnessTexture *TextureInfo
	ClearcoatNormalTexture    *NormalTextureInfo
}

// MaterialSheen is KHR_materials_sheen.
type MaterialSheen struct {
	SheenColorFactor      [3]float64
	SheenColorTexture     *TextureInfo
	SheenRoughnessFactor  float64
	SheenRoughnessTexture *TextureInfo
}

// MaterialSpecular is KHR_materials_specular.
type MaterialSpecular struct {
	SpecularFactor       float64
	SpecularTexture      *TextureInfo
	SpecularColorFactor  [3]float64
	SpecularColorTexture *TextureInfo
}

// MaterialTransmission is KHR_materials_transmission.
type MaterialTransmission struct {
	TransmissionFactor  float64
	TransmissionTexture *TextureInfo
}

// MaterialVolume is KHR_materials_volume.
type MaterialVolume struct {
	ThicknessFactor     float64
	ThicknessTexture    *TextureInfo
	AttenuationDistance OptFloat64
	AttenuationColor    [3]float64
}

// MaterialIridescence is KHR_materials_iridescence.
type MaterialIridescence struct {
	IridescenceFactor           float64
	IridescenceTexture          *TextureInfo
	IridescenceIor              float64
	IridescenceThicknessMin     float64
	IridescenceThicknessMax     float64
	IridescenceThicknessTexture *TextureInfo
}

// MaterialDiffuseTransmission is KHR_materials_diffuse_transmission.
type MaterialDiffuseTransmission struct {
	DiffuseTransmissionFactor       float64
	DiffuseTransmissionTexture      *TextureInfo
	DiffuseTransmissionColorFactor  [3]float64
	DiffuseTransmissionColorTexture *TextureInfo
}

// PrimitiveMode is the GL-style primitive topology.
type PrimitiveMode int

const (
	ModePoints        PrimitiveMode = 0
	ModeLines         PrimitiveMode = 1
	ModeLineLoop      PrimitiveMode = 2
	ModeLineStrip     PrimitiveMode = 3
	ModeTriangles     PrimitiveMode = 4
	ModeTriangleStrip PrimitiveMode = 5
	ModeTriangleFan   PrimitiveMode = 6
)

// Primitive is one piece of renderable geometry within a Mesh.
type Primitive struct {
	Attributes map[string]int
	Indices    OptIndex
	Material   OptIndex
	Mode       PrimitiveMode
	Targets    []map[string]int
	// Variants is KHR_materials_variants' per-primitive material
	// mapping: each entry names the material to substitute in when the
	// asset's active variant is one of its Variants indices.
	Variants []VariantMapping
	// Draco is KHR_draco_mesh_compression's opaque descriptor: the
	// compressed payload lives in BufferView and Attributes maps
	// semantic name to the compressed stream's internal attribute id.
	// Decompression itself is out of scope (spec.md §1 Non-goals).
	Draco      *DracoPrimitive
	Extensions map[string]interface{}
	Extras     interface{}
}

// VariantMapping is one entry of KHR_materials_variants' "mappings"
// array on a primitive.
type VariantMapping struct {
	Variants []int
	Material OptIndex
}

// DracoPrimitive is KHR_draco_mesh_compression's per-primitive
// extension object.
type DracoPrimitive struct {
	BufferView int
	Attributes map[string]int
}

// Mesh is a set of primitives sharing a transform.
type Mesh struct {
	Primitives []Primitive
	Weights    []float64
	Name       string
	Extensions map[string]interface{}
	Extras     interface{}
}

// NodeTransformKind discriminates how a Node's transform is represented.
type NodeTransformKind int

const (
	// TransformTRS means Translation/Rotation/Scale are authoritative.
	TransformTRS NodeTransformKind = iota
	// TransformMatrix means Matrix is authoritative.
	TransformMatrix
)

// Node is one entry in the node hierarchy, carrying either a TRS triple
// or an explicit matrix (never both at once, per glTF's schema) plus
// optional mesh/camera/skin/light references.
type Node struct {
	Camera      OptIndex
	Children    []int
	Skin        OptIndex
	Mesh        OptIndex
	Light       OptIndex
	TransformOf NodeTransformKind
	Matrix      mat4Array
	Translation [3]float64
	Rotation    [4]float64
	Scale       [3]float64
	Weights     []float64
	// Instancing is EXT_mesh_gpu_instancing's per-node attribute set:
	// each accessor holds one value per instance (e.g. "TRANSLATION",
	// "ROTATION", "SCALE", or a custom "_"-prefixed name).
	Instancing *NodeInstancing
	Name       string
	Extensions map[string]interface{}
	Extras     interface{}
}

// NodeInstancing is EXT_mesh_gpu_instancing's "attributes" object.
type NodeInstancing struct {
	Attributes map[string]int
}

// mat4Array is a plain [16]float64 alias kept distinct from mathx.Matrix4
// so this package does not force every caller to import mathx just to
// read a Node's raw matrix.
type mat4Array [16]float64

// IdentityMatrix is the default matrix a Node without TRS or matrix uses.
var IdentityMatrix = mat4Array{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// DefaultRotation is the default quaternion (identity) a Node without
// an explicit rotation uses.
var DefaultRotation = [4]float64{0, 0, 0, 1}

// DefaultScale is the default scale a Node without an explicit scale uses.
var DefaultScale = [3]float64{1, 1, 1}

// MagFilter/MinFilter values, per glTF's sampler schema.
type Filter int

const (
	FilterNearest              Filter = 9728
	FilterLinear               Filter = 9729
	FilterNearestMipmapNearest Filter = 9984
	FilterLinearMipmapNearest  Filter = 9985
	FilterNearestMipmapLinear  Filter = 9986
	FilterLinearMipmapLinear   Filter = 9987
)

// WrapMode values, per glTF's sampler schema.
type WrapMode int

const (
	WrapClampToEdge    WrapMode = 33071
	WrapMirroredRepeat WrapMode = 33648
	WrapRepeat         WrapMode = 10497
)

// Sampler is a texture sampler.
type Sampler struct {
	MagFilter  Filter
	MinFilter  Filter
	WrapS      WrapMode
	WrapT      WrapMode
	Name       string
	Extensions map[string]interface{}
	Extras     interface{}
}

// Scene is a set of root nodes.
type Scene struct {
	Nodes      []int
	Name       string
	Extensions map[string]interface{}
	Extras     interface{}
}

// Skin binds joint nodes and inverse-bind matrices for skeletal animation.
type Skin struct {
	InverseBindMatrices OptIndex
	Skeleton            OptIndex
	Joints              []int
	Name                string
	Extensions          map[string]interface{}
	Extras              interface{}
}

// Image is a texture source image, referenced by URI or by a bufferView.
type Image struct {
	Source     DataSource
	Name       string
	Extensions map[string]interface{}
	Extras     interface{}
}

// Texture pairs a Sampler with a Source image. At least one of Source,
// BasisuSource, DDSSource, WebpSource must be set (spec.md §3.1); the
// extension-backed alternatives let a texture offer a KTX2/DDS/WebP
// image ahead of (or instead of) a plain PNG/JPEG one.
type Texture struct {
	Sampler      OptIndex
	Source       OptIndex
	BasisuSource OptIndex
	DDSSource    OptIndex
	WebpSource   OptIndex
	Name         string
	Extensions   map[string]interface{}
	Extras       interface{}
}

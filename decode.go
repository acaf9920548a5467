package gltfkit

import (
	"fmt"
	"math"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/ferrite3d/gltfkit/bytesrc"
	"github.com/ferrite3d/gltfkit/internal/b64"
	"github.com/ferrite3d/gltfkit/internal/crc32c"
	"github.com/ferrite3d/gltfkit/internal/glog"
	"github.com/ferrite3d/gltfkit/internal/uriutil"
	"github.com/ferrite3d/gltfkit/mathx"
)

// rawDocument mirrors the glTF JSON schema directly with encoding/json
// style tags, the same shape the teacher's loader.go decodes into
// (loader/gltf/gltf.go's GLTF struct), so sonic.Unmarshal (a drop-in
// encoding/json replacement) can fill it in one pass before Decode
// converts it into this package's richer domain types.
type rawDocument struct {
	ExtensionsUsed     []string               `json:"extensionsUsed"`
	ExtensionsRequired []string               `json:"extensionsRequired"`
	Accessors          []rawAccessor          `json:"accessors"`
	Animations         []rawAnimation         `json:"animations"`
	Asset              rawAsset               `json:"asset"`
	Buffers            []rawBuffer            `json:"buffers"`
	BufferViews        []rawBufferView        `json:"bufferViews"`
	Cameras            []rawCamera            `json:"cameras"`
	Images             []rawImage             `json:"images"`
	Materials          []rawMaterial          `json:"materials"`
	Meshes             []rawMesh              `json:"meshes"`
	Nodes              []rawNode              `json:"nodes"`
	Samplers           []rawSampler           `json:"samplers"`
	Scene              *int                   `json:"scene"`
	Scenes             []rawScene             `json:"scenes"`
	Skins              []rawSkin              `json:"skins"`
	Textures           []rawTexture           `json:"textures"`
	Extensions         map[string]interface{} `json:"extensions"`
	Extras             interface{}            `json:"extras"`
}

type rawAsset struct {
	Copyright  string                 `json:"copyright"`
	Generator  string                 `json:"generator"`
	Version    string                 `json:"version"`
	MinVersion string                 `json:"minVersion"`
	Extensions map[string]interface{} `json:"extensions"`
	Extras     interface{}            `json:"extras"`
}

type rawSparse struct {
	Count      int `json:"count"`
	Indices    struct {
		BufferView    int `json:"bufferView"`
		ByteOffset    int `json:"byteOffset"`
		ComponentType int `json:"componentType"`
	} `json:"indices"`
	Values struct {
		BufferView int `json:"bufferView"`
		ByteOffset int `json:"byteOffset"`
	} `json:"values"`
	Extensions map[string]interface{} `json:"extensions"`
	Extras     interface{}            `json:"extras"`
}

type rawAccessor struct {
	BufferView    *int                   `json:"bufferView"`
	ByteOffset    int                    `json:"byteOffset"`
	ComponentType int                    `json:"componentType"`
	Normalized    bool                   `json:"normalized"`
	Count         int                    `json:"count"`
	Type          string                 `json:"type"`
	Max           []float64              `json:"max"`
	Min           []float64              `json:"min"`
	Sparse        *rawSparse             `json:"sparse"`
	Name          string                 `json:"name"`
	Extensions    map[string]interface{} `json:"extensions"`
	Extras        interface{}            `json:"extras"`
}

type rawChannelTarget struct {
	Node *int   `json:"node"`
	Path string `json:"path"`
}

type rawChannel struct {
	Sampler    int                    `json:"sampler"`
	Target     rawChannelTarget       `json:"target"`
	Extensions map[string]interface{} `json:"extensions"`
	Extras     interface{}            `json:"extras"`
}

type rawAnimationSampler struct {
	Input         int                    `json:"input"`
	Interpolation string                 `json:"interpolation"`
	Output        int                    `json:"output"`
	Extensions    map[string]interface{} `json:"extensions"`
	Extras        interface{}            `json:"extras"`
}

type rawAnimation struct {
	Channels   []rawChannel          `json:"channels"`
	Samplers   []rawAnimationSampler `json:"samplers"`
	Name       string                `json:"name"`
	Extensions map[string]interface{} `json:"extensions"`
	Extras     interface{}            `json:"extras"`
}

type rawBuffer struct {
	URI        string                 `json:"uri"`
	ByteLength int                    `json:"byteLength"`
	Name       string                 `json:"name"`
	Extensions map[string]interface{} `json:"extensions"`
	Extras     interface{}            `json:"extras"`
}

type rawBufferView struct {
	Buffer     int                    `json:"buffer"`
	ByteOffset int                    `json:"byteOffset"`
	ByteLength int                    `json:"byteLength"`
	ByteStride *int                   `json:"byteStride"`
	Target     *int                   `json:"target"`
	Name       string                 `json:"name"`
	Extensions map[string]interface{} `json:"extensions"`
	Extras     interface{}            `json:"extras"`
}

type rawPerspective struct {
	AspectRatio *float64 `json:"aspectRatio"`
	Yfov        float64  `json:"yfov"`
	Zfar        *float64 `json:"zfar"`
	Znear       float64  `json:"znear"`
}

type rawOrthographic struct {
	Xmag  float64 `json:"xmag"`
	Ymag  float64 `json:"ymag"`
	Zfar  float64 `json:"zfar"`
	Znear float64 `json:"znear"`
}

type rawCamera struct {
	Orthographic *rawOrthographic      `json:"orthographic"`
	Perspective  *rawPerspective       `json:"perspective"`
	Type         string                `json:"type"`
	Name         string                `json:"name"`
	Extensions   map[string]interface{} `json:"extensions"`
	Extras       interface{}            `json:"extras"`
}

type rawImage struct {
	URI        string                 `json:"uri"`
	MimeType   string                 `json:"mimeType"`
	BufferView *int                   `json:"bufferView"`
	Name       string                 `json:"name"`
	Extensions map[string]interface{} `json:"extensions"`
	Extras     interface{}            `json:"extras"`
}

type rawTextureInfo struct {
	Index      int                    `json:"index"`
	TexCoord   int                    `json:"texCoord"`
	Extensions map[string]interface{} `json:"extensions"`
	Extras     interface{}            `json:"extras"`
}

type rawNormalTextureInfo struct {
	rawTextureInfo
	Scale *float64 `json:"scale"`
}

type rawOcclusionTextureInfo struct {
	rawTextureInfo
	Strength *float64 `json:"strength"`
}

type rawPbrMetallicRoughness struct {
	BaseColorFactor          *[4]float64     `json:"baseColorFactor"`
	BaseColorTexture         *rawTextureInfo `json:"baseColorTexture"`
	MetallicFactor           *float64        `json:"metallicFactor"`
	RoughnessFactor          *float64        `json:"roughnessFactor"`
	MetallicRoughnessTexture *rawTextureInfo `json:"metallicRoughnessTexture"`
	Extensions               map[string]interface{} `json:"extensions"`
	Extras                   interface{}            `json:"extras"`
}

type rawMaterial struct {
	Name                 string                   `json:"name"`
	PbrMetallicRoughness *rawPbrMetallicRoughness `json:"pbrMetallicRoughness"`
	NormalTexture        *rawNormalTextureInfo    `json:"normalTexture"`
	OcclusionTexture     *rawOcclusionTextureInfo `json:"occlusionTexture"`
	EmissiveTexture      *rawTextureInfo          `json:"emissiveTexture"`
	EmissiveFactor       *[3]float64              `json:"emissiveFactor"`
	AlphaMode            string                   `json:"alphaMode,omitempty"`
	AlphaCutoff          *float64                 `json:"alphaCutoff,omitempty"`
	DoubleSided          bool                     `json:"doubleSided"`
	Extensions           map[string]interface{}   `json:"extensions"`
	Extras               interface{}              `json:"extras"`
}

type rawPrimitive struct {
	Attributes map[string]int           `json:"attributes"`
	Indices    *int                     `json:"indices"`
	Material   *int                     `json:"material"`
	Mode       *int                     `json:"mode"`
	Targets    []map[string]int         `json:"targets"`
	Extensions map[string]interface{}   `json:"extensions"`
	Extras     interface{}              `json:"extras"`
}

type rawMesh struct {
	Primitives []rawPrimitive         `json:"primitives"`
	Weights    []float64              `json:"weights"`
	Name       string                 `json:"name"`
	Extensions map[string]interface{} `json:"extensions"`
	Extras     interface{}            `json:"extras"`
}

type rawNode struct {
	Camera      *int                   `json:"camera"`
	Children    []int                  `json:"children"`
	Skin        *int                   `json:"skin"`
	Matrix      *[16]float64           `json:"matrix"`
	Mesh        *int                   `json:"mesh"`
	Rotation    *[4]float64            `json:"rotation"`
	Scale       *[3]float64            `json:"scale"`
	Translation *[3]float64            `json:"translation"`
	Weights     []float64              `json:"weights"`
	Name        string                 `json:"name"`
	Extensions  map[string]interface{} `json:"extensions"`
	Extras      interface{}            `json:"extras"`
}

type rawSampler struct {
	MagFilter  *int                   `json:"magFilter,omitempty"`
	MinFilter  *int                   `json:"minFilter,omitempty"`
	WrapS      *int                   `json:"wrapS"`
	WrapT      *int                   `json:"wrapT"`
	Name       string                 `json:"name"`
	Extensions map[string]interface{} `json:"extensions"`
	Extras     interface{}            `json:"extras"`
}

type rawScene struct {
	Nodes      []int                  `json:"nodes"`
	Name       string                 `json:"name"`
	Extensions map[string]interface{} `json:"extensions"`
	Extras     interface{}            `json:"extras"`
}

type rawSkin struct {
	InverseBindMatrices *int                   `json:"inverseBindMatrices"`
	Skeleton            *int                   `json:"skeleton"`
	Joints              []int                  `json:"joints"`
	Name                string                 `json:"name"`
	Extensions          map[string]interface{} `json:"extensions"`
	Extras              interface{}            `json:"extras"`
}

type rawTexture struct {
	Sampler    *int                   `json:"sampler"`
	Source     *int                   `json:"source"`
	Name       string                 `json:"name"`
	Extensions map[string]interface{} `json:"extensions"`
	Extras     interface{}            `json:"extras"`
}

// Known extension name hashes, computed once at init rather than as
// true Go consts: Go has no compile-time string-hash folding hook, so
// these behave like the teacher's map-literal constant tables
// (AttributeName in loader/gltf/gltf.go) but keyed by CRC32-C instead
// of by the string itself.
var supportedExtensionHashes = buildSupportedExtensionHashes()

// supportedExtensionNames is the closed set spec.md §6.2 names; an
// asset's extensionsRequired must be a subset of this set or Decode
// fails with UnknownRequiredExtension.
var supportedExtensionNames = []string{
	"KHR_texture_transform",
	"KHR_texture_basisu",
	"MSFT_texture_dds",
	"KHR_mesh_quantization",
	"EXT_meshopt_compression",
	"KHR_lights_punctual",
	"EXT_mesh_gpu_instancing",
	"EXT_texture_webp",
	"KHR_accessor_float64",
	"KHR_materials_variants",
	"KHR_draco_mesh_compression",
	"KHR_materials_anisotropy",
	"KHR_materials_clearcoat",
	"KHR_materials_dispersion",
	"KHR_materials_emissive_strength",
	"KHR_materials_ior",
	"KHR_materials_iridescence",
	"KHR_materials_sheen",
	"KHR_materials_specular",
	"KHR_materials_transmission",
	"KHR_materials_unlit",
	"KHR_materials_volume",
	"KHR_materials_diffuse_transmission",
	"MSFT_packing_normalRoughnessMetallic",
	"MSFT_packing_occlusionRoughnessMetallic",
	"GODOT_single_root",
}

func buildSupportedExtensionHashes() map[uint32]struct{} {
	out := make(map[uint32]struct{}, len(supportedExtensionNames))
	for _, name := range supportedExtensionNames {
		out[crc32c.Const(name)] = struct{}{}
	}
	return out
}

// Decode parses a JSON glTF document from src and converts it into an
// Asset, resolving buffers/images according to opts.
func Decode(src bytesrc.Source, opts DecodeOptions) (*Asset, error) {
	data := make([]byte, src.TotalSize()-src.BytesRead())
	if err := src.Read(data, len(data)); err != nil {
		return nil, Wrap(InvalidJson, "reading source", err)
	}
	return decodeJSON(data, nil, opts)
}

// DecodeGLBAsset reads a full GLB container from src and converts its
// JSON chunk into an Asset, resolving buffer 0 from the BIN chunk when
// opts.LoadGLBBuffers is set.
func DecodeGLBAsset(src bytesrc.Source, opts DecodeOptions) (*Asset, error) {
	glbDoc, err := DecodeGLB(src)
	if err != nil {
		return nil, err
	}
	return decodeJSON(glbDoc.JSON, glbDoc.Binary, opts)
}

func decodeJSON(jsonBytes, glbBinary []byte, opts DecodeOptions) (*Asset, error) {
	if opts.MinimiseJsonBeforeParsing {
		jsonBytes = minifyJSON(jsonBytes)
	}

	var raw rawDocument
	if err := sonic.Unmarshal(jsonBytes, &raw); err != nil {
		return nil, Wrap(InvalidJson, err.Error(), err)
	}

	if raw.Asset.Version == "" && !opts.DontRequireValidAssetMember {
		return nil, Wrap(InvalidOrMissingAssetField, "missing asset.version", nil)
	}
	if raw.Asset.Version != "" && !strings.HasPrefix(raw.Asset.Version, "2.") {
		return nil, Wrap(UnsupportedVersion, raw.Asset.Version, nil)
	}

	asset := &Asset{
		ExtensionsUsed:     dedupeStrings(raw.ExtensionsUsed),
		ExtensionsRequired: dedupeStrings(raw.ExtensionsRequired),
		Metadata: Metadata{
			Copyright:  raw.Asset.Copyright,
			Generator:  raw.Asset.Generator,
			Version:    raw.Asset.Version,
			MinVersion: raw.Asset.MinVersion,
			Extensions: raw.Asset.Extensions,
			Extras:     raw.Asset.Extras,
		},
		Extensions: raw.Extensions,
		Extras:     raw.Extras,
	}

	for _, name := range asset.ExtensionsRequired {
		if !isSupportedExtension(name) {
			return nil, Wrap(UnknownRequiredExtension, name, nil)
		}
	}

	categories := opts.Categories
	if categories == CategoryNone {
		categories = CategoryAll
	}

	if categories.Has(CategoryBuffers) {
		asset.Buffers = decodeBuffers(raw.Buffers, glbBinary, opts)
	}
	if categories.Has(CategoryBufferViews) {
		asset.BufferViews = decodeBufferViews(raw.BufferViews)
		for i := range asset.BufferViews {
			populateBufferViewCompression(&asset.BufferViews[i])
		}
	}
	if categories.Has(CategoryAccessors) {
		asset.Accessors = decodeAccessors(raw.Accessors)
		if err := checkAccessorComponentTypes(asset.Accessors, opts.AllowDouble); err != nil {
			return nil, err
		}
	}
	if categories.Has(CategoryCameras) {
		asset.Cameras = decodeCameras(raw.Cameras)
	}
	if categories.Has(CategoryMaterials) {
		asset.Materials = decodeMaterials(raw.Materials)
		for i := range asset.Materials {
			populateMaterialExtensions(&asset.Materials[i])
		}
	}
	if categories.Has(CategoryMeshes) {
		asset.Meshes = decodeMeshes(raw.Meshes)
		for mi := range asset.Meshes {
			for pi := range asset.Meshes[mi].Primitives {
				populatePrimitiveExtensions(&asset.Meshes[mi].Primitives[pi])
			}
		}
	}
	if categories.Has(CategoryNodes) {
		asset.Nodes = decodeNodes(raw.Nodes, opts)
		for i := range asset.Nodes {
			populateNodeInstancing(&asset.Nodes[i])
		}
	}
	if categories.Has(CategorySamplers) {
		asset.Samplers = decodeSamplers(raw.Samplers)
	}
	if categories.Has(CategoryScenes) {
		asset.Scenes = decodeScenes(raw.Scenes)
	}
	if categories.Has(CategorySkins) {
		asset.Skins = decodeSkins(raw.Skins)
	}
	if categories.Has(CategoryTextures) {
		asset.Textures = decodeTextures(raw.Textures)
		for i := range asset.Textures {
			populateTextureAltSources(&asset.Textures[i])
		}
	}
	if categories.Has(CategoryAnimations) {
		asset.Animations = decodeAnimations(raw.Animations)
	}
	if categories.Has(CategoryImages) {
		asset.Images = decodeImages(raw.Images, opts)
	}
	asset.Lights = decodeLights(raw.Extensions)

	if raw.Scene != nil {
		asset.DefaultScene = OptIndex(*raw.Scene)
	} else {
		asset.DefaultScene = NoIndex
	}

	if opts.GenerateMeshIndices {
		generateMeshIndices(asset)
	}

	if opts.ValidateAsset {
		if verr := Validate(asset); verr != nil {
			return asset, verr
		}
	}

	return asset, nil
}

// isSupportedExtension reports whether name is one of spec.md §6.2's
// closed set, dispatching on CRC32-C of the name per spec.md §4.H's
// "CRC-driven parsing" rather than a string-comparison chain.
func isSupportedExtension(name string) bool {
	_, ok := supportedExtensionHashes[crc32c.Const(name)]
	return ok
}

func dedupeStrings(in []string) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// minifyJSON strips insignificant whitespace from data into a freshly
// allocated buffer, never mutating the caller's source bytes.
func minifyJSON(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString := false
	escaped := false
	for _, b := range data {
		if inString {
			out = append(out, b)
			if escaped {
				escaped = false
			} else if b == '\\' {
				escaped = true
			} else if b == '"' {
				inString = false
			}
			continue
		}
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '"':
			inString = true
		}
		out = append(out, b)
	}
	return out
}

func ptrOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func optIndexFromPtr(p *int) OptIndex {
	if p == nil {
		return NoIndex
	}
	return OptIndex(*p)
}

func floatOrDefault(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func decodeBuffers(raws []rawBuffer, glbBinary []byte, opts DecodeOptions) []Buffer {
	out := make([]Buffer, len(raws))
	for i, r := range raws {
		b := Buffer{ByteLength: r.ByteLength, Name: r.Name, Extensions: r.Extensions, Extras: r.Extras}
		switch {
		case r.URI == "" && i == 0 && glbBinary != nil && opts.LoadGLBBuffers:
			b.Source = NewByteViewDataSource(glbBinary, "")
		case r.URI == "":
			b.Source = NewEmptyDataSource()
		default:
			b.Source = resolveURISource(r.URI, opts.LoadExternalBuffers, opts.BaseDir, "")
		}
		out[i] = b
	}
	return out
}

func resolveURISource(rawURI string, eager bool, baseDir, mimeType string) DataSource {
	view := uriutil.Parse(rawURI)
	if view.IsDataURI() {
		owned, err := uriutil.NewOwned(rawURI)
		if err != nil {
			return NewURIDataSource(rawURI, true, mimeType)
		}
		payload, mt, derr := decodeDataURIPayload(owned.Path())
		if derr != nil {
			return NewURIDataSource(rawURI, true, mimeType)
		}
		if mt != "" {
			mimeType = mt
		}
		return NewArrayDataSource(payload, mimeType)
	}

	if !eager {
		return NewURIDataSource(rawURI, false, mimeType)
	}

	owned, err := uriutil.NewOwned(rawURI)
	if err != nil {
		return NewURIDataSource(rawURI, false, mimeType)
	}
	path := uriutil.Fspath(baseDir, owned)
	src, err := bytesrc.OpenFile(path, 0)
	if err != nil {
		glog.Warn("could not open external resource %q: %v", path, err)
		return NewURIDataSource(rawURI, false, mimeType)
	}
	data := make([]byte, src.TotalSize())
	if rerr := src.Read(data, len(data)); rerr != nil {
		return NewURIDataSource(rawURI, false, mimeType)
	}
	return NewArrayDataSource(data, mimeType)
}

// decodeDataURIPayload splits "data:[mediatype][;base64],payload" and
// decodes the payload, generalizing the teacher's parseDataURL
// (loader/gltf/loader.go) to use the shared b64 codec.
func decodeDataURIPayload(afterScheme string) ([]byte, string, error) {
	comma := strings.IndexByte(afterScheme, ',')
	if comma < 0 {
		return nil, "", fmt.Errorf("malformed data uri")
	}
	meta, payload := afterScheme[:comma], afterScheme[comma+1:]
	mimeType := strings.TrimSuffix(meta, ";base64")
	if strings.HasSuffix(meta, ";base64") {
		data, err := b64.Decode(payload)
		return data, mimeType, err
	}
	return []byte(payload), mimeType, nil
}

func decodeBufferViews(raws []rawBufferView) []BufferView {
	out := make([]BufferView, len(raws))
	for i, r := range raws {
		out[i] = BufferView{
			Buffer:     r.Buffer,
			ByteOffset: r.ByteOffset,
			ByteLength: r.ByteLength,
			ByteStride: optIndexFromPtr(r.ByteStride),
			Target:     optIndexFromPtr(r.Target),
			Name:       r.Name,
			Extensions: r.Extensions,
			Extras:     r.Extras,
		}
	}
	return out
}

func decodeAccessors(raws []rawAccessor) []Accessor {
	out := make([]Accessor, len(raws))
	for i, r := range raws {
		a := Accessor{
			BufferView:    optIndexFromPtr(r.BufferView),
			ByteOffset:    r.ByteOffset,
			ComponentType: ComponentType(r.ComponentType),
			Normalized:    r.Normalized,
			Count:         r.Count,
			Type:          ElementType(r.Type),
			Max:           boundsFromJSON(r.Max, ComponentType(r.ComponentType)),
			Min:           boundsFromJSON(r.Min, ComponentType(r.ComponentType)),
			Name:          r.Name,
			Extensions:    r.Extensions,
			Extras:        r.Extras,
		}
		if r.Sparse != nil {
			a.Sparse = &Sparse{
				Count:         r.Sparse.Count,
				IndicesView:   r.Sparse.Indices.BufferView,
				IndicesOffset: r.Sparse.Indices.ByteOffset,
				IndicesType:   ComponentType(r.Sparse.Indices.ComponentType),
				ValuesView:    r.Sparse.Values.BufferView,
				ValuesOffset:  r.Sparse.Values.ByteOffset,
				Extensions:    r.Sparse.Extensions,
				Extras:        r.Sparse.Extras,
			}
		}
		out[i] = a
	}
	return out
}

// checkAccessorComponentTypes enforces spec.md §4.H's "Int and Double
// only under explicit opt-in" rule: ComponentInt/ComponentDouble are
// only legal when the caller opted into AllowDouble.
func checkAccessorComponentTypes(accessors []Accessor, allowDouble bool) error {
	if allowDouble {
		return nil
	}
	for i, a := range accessors {
		if a.ComponentType == ComponentInt || a.ComponentType == ComponentDouble {
			return Wrap(InvalidGltf, fmt.Sprintf("accessors[%d].componentType %d requires AllowDouble", i, a.ComponentType), nil)
		}
	}
	return nil
}

func decodeCameras(raws []rawCamera) []Camera {
	out := make([]Camera, len(raws))
	for i, r := range raws {
		c := Camera{Name: r.Name, Extensions: r.Extensions, Extras: r.Extras}
		if r.Type == "orthographic" && r.Orthographic != nil {
			c.Kind = CameraOrthographic
			c.Orthographic = Orthographic{
				Xmag: r.Orthographic.Xmag, Ymag: r.Orthographic.Ymag,
				Zfar: r.Orthographic.Zfar, Znear: r.Orthographic.Znear,
			}
		} else if r.Perspective != nil {
			c.Kind = CameraPerspective
			p := Perspective{Yfov: r.Perspective.Yfov, Znear: r.Perspective.Znear, Zfar: NoFloat64, AspectRatio: NoFloat64}
			if r.Perspective.AspectRatio != nil {
				p.AspectRatio = OptFloat64(*r.Perspective.AspectRatio)
			}
			if r.Perspective.Zfar != nil {
				p.Zfar = OptFloat64(*r.Perspective.Zfar)
			}
			c.Perspective = p
		}
		out[i] = c
	}
	return out
}

func decodeTextureInfo(r *rawTextureInfo) *TextureInfo {
	if r == nil {
		return nil
	}
	return &TextureInfo{Index: r.Index, TexCoord: r.TexCoord, Extensions: r.Extensions, Extras: r.Extras}
}

func decodeMaterials(raws []rawMaterial) []Material {
	out := make([]Material, len(raws))
	for i, r := range raws {
		m := Material{
			Name:             r.Name,
			EmissiveFactor:   [3]float64{0, 0, 0},
			AlphaMode:        "OPAQUE",
			AlphaCutoff:      floatOrDefault(r.AlphaCutoff, 0.5),
			DoubleSided:      r.DoubleSided,
			EmissiveTexture:  decodeTextureInfo(r.EmissiveTexture),
			IOR:              NoFloat64,
			Dispersion:       NoFloat64,
			EmissiveStrength: NoFloat64,
			Extensions:       r.Extensions,
			Extras:           r.Extras,
		}
		if r.AlphaMode != "" {
			m.AlphaMode = r.AlphaMode
		}
		if r.EmissiveFactor != nil {
			m.EmissiveFactor = *r.EmissiveFactor
		}
		if r.PbrMetallicRoughness != nil {
			pr := r.PbrMetallicRoughness
			pbr := &PbrMetallicRoughness{
				BaseColorFactor: [4]float64{1, 1, 1, 1},
				MetallicFactor:  floatOrDefault(pr.MetallicFactor, 1),
				RoughnessFactor: floatOrDefault(pr.RoughnessFactor, 1),
				Extensions:      pr.Extensions,
				Extras:          pr.Extras,
			}
			if pr.BaseColorFactor != nil {
				pbr.BaseColorFactor = *pr.BaseColorFactor
			}
			pbr.BaseColorTexture = decodeTextureInfo(pr.BaseColorTexture)
			pbr.MetallicRoughnessTexture = decodeTextureInfo(pr.MetallicRoughnessTexture)
			m.PbrMetallicRoughness = pbr
		}
		if r.NormalTexture != nil {
			m.NormalTexture = &NormalTextureInfo{
				TextureInfo: TextureInfo{Index: r.NormalTexture.Index, TexCoord: r.NormalTexture.TexCoord,
					Extensions: r.NormalTexture.Extensions, Extras: r.NormalTexture.Extras},
				Scale: floatOrDefault(r.NormalTexture.Scale, 1),
			}
		}
		if r.OcclusionTexture != nil {
			m.OcclusionTexture = &OcclusionTextureInfo{
				TextureInfo: TextureInfo{Index: r.OcclusionTexture.Index, TexCoord: r.OcclusionTexture.TexCoord,
					Extensions: r.OcclusionTexture.Extensions, Extras: r.OcclusionTexture.Extras},
				Strength: floatOrDefault(r.OcclusionTexture.Strength, 1),
			}
		}
		if r.Extensions != nil {
			if _, ok := r.Extensions["KHR_materials_unlit"]; ok {
				m.Unlit = true
			}
		}
		out[i] = m
	}
	return out
}

func decodeMeshes(raws []rawMesh) []Mesh {
	out := make([]Mesh, len(raws))
	for i, r := range raws {
		prims := make([]Primitive, len(r.Primitives))
		for j, p := range r.Primitives {
			mode := ModeTriangles
			if p.Mode != nil {
				mode = PrimitiveMode(*p.Mode)
			}
			prims[j] = Primitive{
				Attributes: p.Attributes,
				Indices:    optIndexFromPtr(p.Indices),
				Material:   optIndexFromPtr(p.Material),
				Mode:       mode,
				Targets:    p.Targets,
				Extensions: p.Extensions,
				Extras:     p.Extras,
			}
		}
		out[i] = Mesh{Primitives: prims, Weights: r.Weights, Name: r.Name, Extensions: r.Extensions, Extras: r.Extras}
	}
	return out
}

func decodeNodes(raws []rawNode, opts DecodeOptions) []Node {
	out := make([]Node, len(raws))
	for i, r := range raws {
		n := Node{
			Camera:     optIndexFromPtr(r.Camera),
			Children:   r.Children,
			Skin:       optIndexFromPtr(r.Skin),
			Mesh:       optIndexFromPtr(r.Mesh),
			Light:      NoIndex,
			Weights:    r.Weights,
			Name:       r.Name,
			Extensions: r.Extensions,
			Extras:     r.Extras,
		}
		if r.Extensions != nil {
			if lp, ok := r.Extensions["KHR_lights_punctual"].(map[string]interface{}); ok {
				if idx, ok := lp["light"].(float64); ok {
					n.Light = OptIndex(uint32(idx))
				}
			}
		}

		switch {
		case r.Matrix != nil:
			n.TransformOf = TransformMatrix
			n.Matrix = mat4Array(*r.Matrix)
			n.Rotation = DefaultRotation
			n.Scale = DefaultScale
		default:
			n.TransformOf = TransformTRS
			n.Rotation = DefaultRotation
			n.Scale = DefaultScale
			n.Matrix = IdentityMatrix
			if r.Rotation != nil {
				n.Rotation = *r.Rotation
			}
			if r.Scale != nil {
				n.Scale = *r.Scale
			}
			if r.Translation != nil {
				n.Translation = *r.Translation
			}
		}

		if opts.DecomposeNodeMatrices && n.TransformOf == TransformMatrix {
			decomposeNodeMatrix(&n)
		}

		out[i] = n
	}
	return out
}

func decodeSamplers(raws []rawSampler) []Sampler {
	out := make([]Sampler, len(raws))
	for i, r := range raws {
		s := Sampler{
			WrapS: WrapRepeat, WrapT: WrapRepeat,
			Name: r.Name, Extensions: r.Extensions, Extras: r.Extras,
		}
		if r.MagFilter != nil {
			s.MagFilter = Filter(*r.MagFilter)
		}
		if r.MinFilter != nil {
			s.MinFilter = Filter(*r.MinFilter)
		}
		if r.WrapS != nil {
			s.WrapS = WrapMode(*r.WrapS)
		}
		if r.WrapT != nil {
			s.WrapT = WrapMode(*r.WrapT)
		}
		out[i] = s
	}
	return out
}

func decodeScenes(raws []rawScene) []Scene {
	out := make([]Scene, len(raws))
	for i, r := range raws {
		out[i] = Scene{Nodes: r.Nodes, Name: r.Name, Extensions: r.Extensions, Extras: r.Extras}
	}
	return out
}

func decodeSkins(raws []rawSkin) []Skin {
	out := make([]Skin, len(raws))
	for i, r := range raws {
		out[i] = Skin{
			InverseBindMatrices: optIndexFromPtr(r.InverseBindMatrices),
			Skeleton:            optIndexFromPtr(r.Skeleton),
			Joints:              r.Joints,
			Name:                r.Name,
			Extensions:          r.Extensions,
			Extras:              r.Extras,
		}
	}
	return out
}

func decodeTextures(raws []rawTexture) []Texture {
	out := make([]Texture, len(raws))
	for i, r := range raws {
		out[i] = Texture{
			Sampler:      optIndexFromPtr(r.Sampler),
			Source:       optIndexFromPtr(r.Source),
			BasisuSource: NoIndex,
			DDSSource:    NoIndex,
			WebpSource:   NoIndex,
			Name:         r.Name,
			Extensions:   r.Extensions,
			Extras:       r.Extras,
		}
	}
	return out
}

func decodeAnimations(raws []rawAnimation) []Animation {
	out := make([]Animation, len(raws))
	for i, r := range raws {
		channels := make([]Channel, len(r.Channels))
		for j, c := range r.Channels {
			channels[j] = Channel{
				Sampler:    c.Sampler,
				TargetNode: optIndexFromPtr(c.Target.Node),
				TargetPath: c.Target.Path,
				Extensions: c.Extensions,
				Extras:     c.Extras,
			}
		}
		samplers := make([]AnimationSampler, len(r.Samplers))
		for j, s := range r.Samplers {
			interp := s.Interpolation
			if interp == "" {
				interp = "LINEAR"
			}
			samplers[j] = AnimationSampler{Input: s.Input, Interpolation: interp, Output: s.Output, Extensions: s.Extensions, Extras: s.Extras}
		}
		out[i] = Animation{Channels: channels, Samplers: samplers, Name: r.Name, Extensions: r.Extensions, Extras: r.Extras}
	}
	return out
}

func decodeImages(raws []rawImage, opts DecodeOptions) []Image {
	out := make([]Image, len(raws))
	for i, r := range raws {
		img := Image{Name: r.Name, Extensions: r.Extensions, Extras: r.Extras}
		switch {
		case r.BufferView != nil:
			img.Source = NewBufferViewDataSource(uint32(*r.BufferView))
		case r.URI != "":
			img.Source = resolveURISource(r.URI, opts.LoadExternalImages, opts.BaseDir, r.MimeType)
		default:
			img.Source = NewEmptyDataSource()
		}
		out[i] = img
	}
	return out
}

func decodeLights(docExtensions map[string]interface{}) []Light {
	ext, ok := docExtensions["KHR_lights_punctual"].(map[string]interface{})
	if !ok {
		return nil
	}
	rawLights, ok := ext["lights"].([]interface{})
	if !ok {
		return nil
	}
	out := make([]Light, 0, len(rawLights))
	for _, rl := range rawLights {
		lm, ok := rl.(map[string]interface{})
		if !ok {
			continue
		}
		light := Light{Color: [3]float64{1, 1, 1}, Intensity: 1, Range: NoFloat64, SpotInner: NoFloat64, SpotOuter: NoFloat64}
		if kind, ok := lm["type"].(string); ok {
			light.Kind = kind
		}
		if name, ok := lm["name"].(string); ok {
			light.Name = name
		}
		if intensity, ok := lm["intensity"].(float64); ok {
			light.Intensity = intensity
		}
		if rng, ok := lm["range"].(float64); ok {
			light.Range = OptFloat64(rng)
		}
		if col, ok := lm["color"].([]interface{}); ok && len(col) == 3 {
			for k := 0; k < 3; k++ {
				if f, ok := col[k].(float64); ok {
					light.Color[k] = f
				}
			}
		}
		if spot, ok := lm["spot"].(map[string]interface{}); ok {
			if v, ok := spot["innerConeAngle"].(float64); ok {
				light.SpotInner = OptFloat64(v)
			}
			if v, ok := spot["outerConeAngle"].(float64); ok {
				light.SpotOuter = OptFloat64(v)
			}
		}
		out = append(out, light)
	}
	return out
}

func decomposeNodeMatrix(n *Node) {
	mx := mathx.Matrix4(n.Matrix)
	var pos, scale mathx.Vector3
	var rot mathx.Quaternion
	mx.Decompose(&pos, &rot, &scale)
	n.Translation = [3]float64{pos.X, pos.Y, pos.Z}
	n.Rotation = [4]float64{rot.X, rot.Y, rot.Z, rot.W}
	n.Scale = [3]float64{scale.X, scale.Y, scale.Z}
	n.TransformOf = TransformTRS
}

// generateMeshIndices synthesizes a sequential index accessor for every
// primitive lacking "indices", choosing its component type from the
// POSITION accessor's element count: UnsignedByte below 255,
// UnsignedShort below 65535, UnsignedInt otherwise (so the largest
// index never reaches the type's all-ones value). This is spec.md §5's
// "GenerateMeshIndices" post-pass.
func generateMeshIndices(asset *Asset) {
	for mi := range asset.Meshes {
		for pi := range asset.Meshes[mi].Primitives {
			prim := &asset.Meshes[mi].Primitives[pi]
			if prim.Indices.Some() {
				continue
			}
			posIdx, ok := prim.Attributes["POSITION"]
			if !ok || posIdx >= len(asset.Accessors) {
				continue
			}
			count := asset.Accessors[posIdx].Count

			componentType := ComponentUnsignedInt
			switch {
			case count < math.MaxUint8:
				componentType = ComponentUnsignedByte
			case count < math.MaxUint16:
				componentType = ComponentUnsignedShort
			}

			accessorIdx := len(asset.Accessors)
			asset.Accessors = append(asset.Accessors, Accessor{
				ComponentType: componentType,
				Count:         count,
				Type:          TypeScalar,
				BufferView:    NoIndex,
				Extensions:    syntheticIndexMarker(),
			})
			prim.Indices = OptIndex(accessorIdx)
		}
	}
}

func syntheticIndexMarker() map[string]interface{} {
	return map[string]interface{}{"x-gltfkit-generated-indices": true}
}

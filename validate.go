package gltfkit

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/ferrite3d/gltfkit/mathx"
)

// validatorTags is the struct-tag validated subset of Asset, grounded
// on the teacher-adjacent atlasdatatech-gltf package's `validate:"..."`
// usage (struct.go), which leans on go-playground/validator for simple
// per-field constraints before any cross-reference pass runs.
type validatorTags struct {
	Version string `validate:"required"`
	Type    string `validate:"omitempty,oneof=SCALAR VEC2 VEC3 VEC4 MAT2 MAT3 MAT4"`
}

var structValidator = validator.New()

// Validate runs the full two-layer check spec.md's validator module
// describes: go-playground/validator/v10 struct-tag checks for leaf
// field constraints, followed by a hand-written cross-reference pass
// for everything a struct tag cannot express (index bounds, attribute
// componentType rules, required-extension coverage).
func Validate(asset *Asset) error {
	if err := structValidator.Struct(&validatorTags{Version: asset.Metadata.Version}); err != nil {
		return Wrap(InvalidGltf, "asset.version: "+err.Error(), err)
	}

	for i, a := range asset.Accessors {
		tag := validatorTags{Type: string(a.Type)}
		if err := structValidator.Struct(&tag); err != nil {
			return Wrap(InvalidGltf, fmt.Sprintf("accessors[%d].type: %s", i, err.Error()), err)
		}
		if err := validateAccessor(asset, i, &a); err != nil {
			return err
		}
	}

	if err := validateBufferViews(asset); err != nil {
		return err
	}
	if err := validateMeshes(asset); err != nil {
		return err
	}
	if err := validateNodes(asset); err != nil {
		return err
	}
	if err := validateScenes(asset); err != nil {
		return err
	}
	if err := validateExtensionCoverage(asset); err != nil {
		return err
	}
	if err := validateExtensionProvenance(asset); err != nil {
		return err
	}
	if err := validateCameras(asset); err != nil {
		return err
	}
	if err := validateLights(asset); err != nil {
		return err
	}
	if err := validateAnimations(asset); err != nil {
		return err
	}
	if err := validateSkinning(asset); err != nil {
		return err
	}
	return nil
}

func validateAccessor(asset *Asset, i int, a *Accessor) error {
	if bvIdx, ok := a.BufferView.Get(); ok {
		if int(bvIdx) >= len(asset.BufferViews) {
			return Wrap(InvalidGltf, fmt.Sprintf("accessors[%d].bufferView out of range", i), nil)
		}
		bv := asset.BufferViews[bvIdx]
		compSize := a.ComponentType.Size()
		if compSize > 0 && (a.ByteOffset+bv.ByteOffset)%compSize != 0 {
			return Wrap(InvalidGltf, fmt.Sprintf("accessors[%d].byteOffset+bufferView.byteOffset must be a multiple of the component size", i), nil)
		}
	}
	if a.Sparse != nil {
		if a.Sparse.IndicesView >= len(asset.BufferViews) || a.Sparse.ValuesView >= len(asset.BufferViews) {
			return Wrap(InvalidGltf, fmt.Sprintf("accessors[%d].sparse bufferView out of range", i), nil)
		}
		if a.Sparse.Count > a.Count {
			return Wrap(InvalidGltf, fmt.Sprintf("accessors[%d].sparse.count exceeds accessor.count", i), nil)
		}
	}
	if _, ok := ComponentCount[a.Type]; !ok {
		return Wrap(InvalidGltf, fmt.Sprintf("accessors[%d].type %q is not a recognized element type", i, a.Type), nil)
	}
	if a.Normalized && (a.ComponentType == ComponentUnsignedInt || a.ComponentType == ComponentFloat || a.ComponentType == ComponentDouble) {
		return Wrap(InvalidGltf, fmt.Sprintf("accessors[%d].normalized is forbidden for componentType %d", i, a.ComponentType), nil)
	}
	n := ComponentCount[a.Type]
	wantKind := BoundsKindFor(a.ComponentType)
	if a.Max != nil {
		if a.Max.Len() != n {
			return Wrap(InvalidGltf, fmt.Sprintf("accessors[%d] min/max length must equal component count", i), nil)
		}
		if a.Max.Kind != wantKind {
			return Wrap(InvalidGltf, fmt.Sprintf("accessors[%d].max storage kind does not match componentType %d", i, a.ComponentType), nil)
		}
	}
	if a.Min != nil {
		if a.Min.Len() != n {
			return Wrap(InvalidGltf, fmt.Sprintf("accessors[%d] min/max length must equal component count", i), nil)
		}
		if a.Min.Kind != wantKind {
			return Wrap(InvalidGltf, fmt.Sprintf("accessors[%d].min storage kind does not match componentType %d", i, a.ComponentType), nil)
		}
	}
	return nil
}

func validateBufferViews(asset *Asset) error {
	for i, bv := range asset.BufferViews {
		if bv.Buffer >= len(asset.Buffers) {
			return Wrap(InvalidGltf, fmt.Sprintf("bufferViews[%d].buffer out of range", i), nil)
		}
		buf := asset.Buffers[bv.Buffer]
		if bv.ByteOffset+bv.ByteLength > buf.ByteLength && buf.ByteLength != 0 {
			return Wrap(InvalidGltf, fmt.Sprintf("bufferViews[%d] exceeds buffer length", i), nil)
		}
		if stride, ok := bv.ByteStride.Get(); ok {
			if stride < 4 || stride > 252 || stride%4 != 0 {
				return Wrap(InvalidGltf, fmt.Sprintf("bufferViews[%d].byteStride must be in [4,252] and a multiple of 4", i), nil)
			}
		}
	}
	return nil
}

// attributeComponentRules is the closed set of componentType
// constraints the glTF schema places on well-known vertex attribute
// semantics (e.g. POSITION must be float, JOINTS_0 must be an unsigned
// integer type).
var attributeComponentRules = map[string][]ComponentType{
	"POSITION":  {ComponentFloat},
	"NORMAL":    {ComponentFloat},
	"TANGENT":   {ComponentFloat},
	"TEXCOORD_0": {ComponentFloat, ComponentUnsignedByte, ComponentUnsignedShort},
	"TEXCOORD_1": {ComponentFloat, ComponentUnsignedByte, ComponentUnsignedShort},
	"COLOR_0":    {ComponentFloat, ComponentUnsignedByte, ComponentUnsignedShort},
	"JOINTS_0":   {ComponentUnsignedByte, ComponentUnsignedShort},
	"WEIGHTS_0":  {ComponentFloat, ComponentUnsignedByte, ComponentUnsignedShort},
}

func validateMeshes(asset *Asset) error {
	for mi, mesh := range asset.Meshes {
		for pi, prim := range mesh.Primitives {
			for semantic, accessorIdx := range prim.Attributes {
				if accessorIdx >= len(asset.Accessors) {
					return Wrap(InvalidGltf, fmt.Sprintf("meshes[%d].primitives[%d] attribute %q out of range", mi, pi, semantic), nil)
				}
				allowed, ok := attributeComponentRules[semantic]
				if !ok {
					continue
				}
				ct := asset.Accessors[accessorIdx].ComponentType
				if !containsComponentType(allowed, ct) {
					return Wrap(InvalidGltf, fmt.Sprintf("meshes[%d].primitives[%d] attribute %q has disallowed componentType", mi, pi, semantic), nil)
				}
				if semantic == "POSITION" {
					acc := asset.Accessors[accessorIdx]
					if acc.Min == nil || acc.Max == nil {
						return Wrap(InvalidGltf, fmt.Sprintf("meshes[%d].primitives[%d] POSITION accessor must carry min and max", mi, pi), nil)
					}
				}
			}
			if idx, ok := prim.Indices.Get(); ok && int(idx) >= len(asset.Accessors) {
				return Wrap(InvalidGltf, fmt.Sprintf("meshes[%d].primitives[%d].indices out of range", mi, pi), nil)
			}
			if idx, ok := prim.Material.Get(); ok && int(idx) >= len(asset.Materials) {
				return Wrap(InvalidGltf, fmt.Sprintf("meshes[%d].primitives[%d].material out of range", mi, pi), nil)
			}
		}
	}
	return nil
}

func containsComponentType(set []ComponentType, ct ComponentType) bool {
	for _, c := range set {
		if c == ct {
			return true
		}
	}
	return false
}

func validateNodes(asset *Asset) error {
	for i, n := range asset.Nodes {
		for _, child := range n.Children {
			if child < 0 || child >= len(asset.Nodes) {
				return Wrap(InvalidGltf, fmt.Sprintf("nodes[%d] child index out of range", i), nil)
			}
			if child == i {
				return Wrap(InvalidGltf, fmt.Sprintf("nodes[%d] is its own child", i), nil)
			}
		}
		if idx, ok := n.Mesh.Get(); ok && int(idx) >= len(asset.Meshes) {
			return Wrap(InvalidGltf, fmt.Sprintf("nodes[%d].mesh out of range", i), nil)
		}
		if idx, ok := n.Camera.Get(); ok && int(idx) >= len(asset.Cameras) {
			return Wrap(InvalidGltf, fmt.Sprintf("nodes[%d].camera out of range", i), nil)
		}
		if idx, ok := n.Skin.Get(); ok && int(idx) >= len(asset.Skins) {
			return Wrap(InvalidGltf, fmt.Sprintf("nodes[%d].skin out of range", i), nil)
		}
		if n.TransformOf == TransformTRS {
			for _, c := range n.Rotation {
				if c < -1 || c > 1 {
					return Wrap(InvalidGltf, fmt.Sprintf("nodes[%d].rotation components must be in [-1,1]", i), nil)
				}
			}
		}
	}
	return nil
}

func validateScenes(asset *Asset) error {
	for si, scene := range asset.Scenes {
		for _, n := range scene.Nodes {
			if n < 0 || n >= len(asset.Nodes) {
				return Wrap(InvalidGltf, fmt.Sprintf("scenes[%d] node index out of range", si), nil)
			}
		}
	}
	if idx, ok := asset.DefaultScene.Get(); ok && int(idx) >= len(asset.Scenes) {
		return Wrap(InvalidGltf, "scene (default) index out of range", nil)
	}
	return nil
}

// validateExtensionCoverage checks that extensionsRequired is a subset
// of extensionsUsed, the "required⊆used" invariant spec.md's validator
// module names.
func validateExtensionCoverage(asset *Asset) error {
	used := make(map[string]struct{}, len(asset.ExtensionsUsed))
	for _, u := range asset.ExtensionsUsed {
		used[u] = struct{}{}
	}
	for _, r := range asset.ExtensionsRequired {
		if _, ok := used[r]; !ok {
			return Wrap(InvalidGltf, fmt.Sprintf("extension %q is required but not listed in extensionsUsed", r), nil)
		}
	}
	return nil
}

// materialExtensionPresence pairs each Material sub-struct with the
// extension name spec.md §3.3 requires be present in ExtensionsUsed
// before that sub-struct is legal.
func materialExtensionPresence(m *Material) map[string]bool {
	return map[string]bool{
		"KHR_materials_anisotropy":           m.Anisotropy != nil,
		"KHR_materials_clearcoat":            m.Clearcoat != nil,
		"KHR_materials_sheen":                m.Sheen != nil,
		"KHR_materials_specular":             m.Specular != nil,
		"KHR_materials_transmission":         m.Transmission != nil,
		"KHR_materials_volume":               m.Volume != nil,
		"KHR_materials_iridescence":          m.Iridescence != nil,
		"KHR_materials_ior":                  m.IOR.Some(),
		"KHR_materials_dispersion":           m.Dispersion.Some(),
		"KHR_materials_emissive_strength":    m.EmissiveStrength.Some(),
		"KHR_materials_diffuse_transmission": m.DiffuseTransmission != nil,
		"KHR_materials_unlit":                m.Unlit,
	}
}

// validateExtensionProvenance enforces spec.md §3.3's "material
// sub-struct being present is illegal unless the corresponding
// extension string appears in extensionsUsed".
func validateExtensionProvenance(asset *Asset) error {
	used := make(map[string]struct{}, len(asset.ExtensionsUsed))
	for _, u := range asset.ExtensionsUsed {
		used[u] = struct{}{}
	}
	for mi, m := range asset.Materials {
		for name, present := range materialExtensionPresence(&m) {
			if !present {
				continue
			}
			if _, ok := used[name]; !ok {
				return Wrap(InvalidGltf, fmt.Sprintf("materials[%d] uses %s without listing it in extensionsUsed", mi, name), nil)
			}
		}
	}
	return nil
}

// validateCameras enforces spec.md §4.I's camera positivity rules.
func validateCameras(asset *Asset) error {
	for i, c := range asset.Cameras {
		if c.Kind != CameraPerspective {
			continue
		}
		p := c.Perspective
		if p.Yfov <= 0 {
			return Wrap(InvalidGltf, fmt.Sprintf("cameras[%d].perspective.yfov must be > 0", i), nil)
		}
		if p.Znear <= 0 {
			return Wrap(InvalidGltf, fmt.Sprintf("cameras[%d].perspective.znear must be > 0", i), nil)
		}
		if zfar, ok := p.Zfar.Get(); ok && zfar <= 0 {
			return Wrap(InvalidGltf, fmt.Sprintf("cameras[%d].perspective.zfar must be > 0", i), nil)
		}
		if aspect, ok := p.AspectRatio.Get(); ok && aspect == 0 {
			return Wrap(InvalidGltf, fmt.Sprintf("cameras[%d].perspective.aspectRatio must be nonzero", i), nil)
		}
	}
	return nil
}

// validateLights enforces spec.md §3.1/§4.I's KHR_lights_punctual
// sanity rules: range is forbidden for directional lights, and a spot
// light's cone angles are required and ordered.
func validateLights(asset *Asset) error {
	for i, l := range asset.Lights {
		if l.Kind == "directional" && l.Range.Some() {
			return Wrap(InvalidGltf, fmt.Sprintf("lights[%d] range is forbidden for directional lights", i), nil)
		}
		if l.Kind != "spot" {
			continue
		}
		inner, innerOK := l.SpotInner.Get()
		outer, outerOK := l.SpotOuter.Get()
		if !innerOK || !outerOK {
			return Wrap(InvalidGltf, fmt.Sprintf("lights[%d] spot light requires innerConeAngle and outerConeAngle", i), nil)
		}
		if inner < 0 || inner > outer || outer > math.Pi/2 {
			return Wrap(InvalidGltf, fmt.Sprintf("lights[%d] spot cone angles out of range", i), nil)
		}
	}
	return nil
}

// validateAnimations enforces spec.md §3.3's animation sampler shape
// rules: the input accessor is scalar float/double, and input/output
// counts agree per the sampler's interpolation mode.
func validateAnimations(asset *Asset) error {
	for ai, anim := range asset.Animations {
		for si, s := range anim.Samplers {
			if s.Input < 0 || s.Input >= len(asset.Accessors) || s.Output < 0 || s.Output >= len(asset.Accessors) {
				return Wrap(InvalidGltf, fmt.Sprintf("animations[%d].samplers[%d] accessor index out of range", ai, si), nil)
			}
			in := asset.Accessors[s.Input]
			out := asset.Accessors[s.Output]
			if in.Type != TypeScalar || (in.ComponentType != ComponentFloat && in.ComponentType != ComponentDouble) {
				return Wrap(InvalidGltf, fmt.Sprintf("animations[%d].samplers[%d].input must be a scalar float/double accessor", ai, si), nil)
			}
			if s.Interpolation == "CUBICSPLINE" {
				if in.Count < 2 {
					return Wrap(InvalidGltf, fmt.Sprintf("animations[%d].samplers[%d] CUBICSPLINE input.count must be >= 2", ai, si), nil)
				}
				if out.Count != 3*in.Count {
					return Wrap(InvalidGltf, fmt.Sprintf("animations[%d].samplers[%d] CUBICSPLINE output.count must be 3x input.count", ai, si), nil)
				}
			} else if in.Count != out.Count {
				return Wrap(InvalidGltf, fmt.Sprintf("animations[%d].samplers[%d] input.count must equal output.count", ai, si), nil)
			}
		}
		for ci, c := range anim.Channels {
			if c.Sampler < 0 || c.Sampler >= len(anim.Samplers) {
				return Wrap(InvalidGltf, fmt.Sprintf("animations[%d].channels[%d].sampler out of range", ai, ci), nil)
			}
		}
	}
	return nil
}

// validateSkinning enforces spec.md §3.3's "a node that has skin must
// have mesh, and every primitive of that mesh must include JOINTS_0
// and WEIGHTS_0" rule.
func validateSkinning(asset *Asset) error {
	for i, n := range asset.Nodes {
		if !n.Skin.Some() {
			continue
		}
		meshIdx, ok := n.Mesh.Get()
		if !ok {
			return Wrap(InvalidGltf, fmt.Sprintf("nodes[%d] has skin but no mesh", i), nil)
		}
		if int(meshIdx) >= len(asset.Meshes) {
			continue
		}
		for pi, prim := range asset.Meshes[meshIdx].Primitives {
			if _, ok := prim.Attributes["JOINTS_0"]; !ok {
				return Wrap(InvalidGltf, fmt.Sprintf("nodes[%d] mesh primitive[%d] missing JOINTS_0 for a skinned node", i, pi), nil)
			}
			if _, ok := prim.Attributes["WEIGHTS_0"]; !ok {
				return Wrap(InvalidGltf, fmt.Sprintf("nodes[%d] mesh primitive[%d] missing WEIGHTS_0 for a skinned node", i, pi), nil)
			}
		}
	}
	return nil
}

// SingleRootTransformed reports the index of every scene that has
// exactly one root node whose transform is not the identity. A
// matrix-form root counts as identity when it is epsilon-close to it
// (Matrix4.IsIdentity with mathx.Epsilon); a TRS-form root counts as
// identity only when its translation, rotation and scale equal the
// defaults exactly. This mirrors the so-called "GODOT_single_root"
// convention: such a scene is almost always the result of an exporter
// wrapping the real content in one extra transformed node, which
// callers may want to flag or collapse. It is informational, not a
// validation failure (Validate never rejects a document over it).
func SingleRootTransformed(asset *Asset) []int {
	var flagged []int
	for si, scene := range asset.Scenes {
		if len(scene.Nodes) != 1 {
			continue
		}
		n := &asset.Nodes[scene.Nodes[0]]
		if nodeHasIdentityTransform(n) {
			continue
		}
		flagged = append(flagged, si)
	}
	return flagged
}

func nodeHasIdentityTransform(n *Node) bool {
	if n.TransformOf == TransformMatrix {
		m := mathx.Matrix4(n.Matrix)
		return m.IsIdentity(mathx.Epsilon)
	}
	return n.Translation == [3]float64{} &&
		n.Rotation == DefaultRotation &&
		n.Scale == DefaultScale
}

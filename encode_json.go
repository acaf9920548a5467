package gltfkit

import (
	"github.com/bytedance/sonic"

	"github.com/ferrite3d/gltfkit/internal/b64"
)

// EncodeJSON serializes asset back into the glTF JSON schema, the
// mirror image of decode.go's rawDocument conversion. Buffers and
// images whose DataSource is not resolved bytes are emitted with their
// original URI untouched; resolved in-memory payloads are written back
// out as data URIs unless the caller supplied an external path via
// EncodeOptions.
func EncodeJSON(asset *Asset, opts EncodeOptions) ([]byte, error) {
	raw := assetToRaw(asset, opts)
	if opts.PrettyPrintJson {
		return sonic.ConfigDefault.MarshalIndent(raw, "", "  ")
	}
	return sonic.Marshal(raw)
}

func assetToRaw(asset *Asset, opts EncodeOptions) *rawDocument {
	raw := &rawDocument{
		ExtensionsUsed:     asset.ExtensionsUsed,
		ExtensionsRequired: asset.ExtensionsRequired,
		Asset: rawAsset{
			Copyright:  asset.Metadata.Copyright,
			Generator:  asset.Metadata.Generator,
			Version:    asset.Metadata.Version,
			MinVersion: asset.Metadata.MinVersion,
			Extensions: asset.Metadata.Extensions,
			Extras:     asset.Metadata.Extras,
		},
		Extensions: asset.Extensions,
		Extras:     asset.Extras,
	}
	if idx, ok := asset.DefaultScene.Get(); ok {
		i := int(idx)
		raw.Scene = &i
	}

	raw.Buffers = buffersToRaw(asset.Buffers, opts)
	raw.BufferViews = bufferViewsToRaw(asset.BufferViews)
	raw.Accessors = accessorsToRaw(asset.Accessors)
	raw.Cameras = camerasToRaw(asset.Cameras)
	raw.Materials = materialsToRaw(asset.Materials)
	raw.Meshes = meshesToRaw(asset.Meshes)
	raw.Nodes = nodesToRaw(asset.Nodes)
	raw.Samplers = samplersToRaw(asset.Samplers)
	raw.Scenes = scenesToRaw(asset.Scenes)
	raw.Skins = skinsToRaw(asset.Skins)
	raw.Textures = texturesToRaw(asset.Textures)
	raw.Animations = animationsToRaw(asset.Animations)
	raw.Images = imagesToRaw(asset.Images, opts)
	return raw
}

func intPtr(i int) *int          { return &i }
func floatPtr(f float64) *float64 { return &f }

func buffersToRaw(bufs []Buffer, opts EncodeOptions) []rawBuffer {
	out := make([]rawBuffer, len(bufs))
	for i, b := range bufs {
		rb := rawBuffer{ByteLength: b.ByteLength, Name: b.Name, Extensions: b.Extensions, Extras: b.Extras}
		if path, ok := opts.BufferPaths[i]; ok {
			rb.URI = path
		} else if data, ok := b.Source.Data(); ok && i != 0 {
			// Buffer 0 is assumed to be embedded as the GLB BIN chunk by
			// EncodeGLB unless an explicit path was given; every other
			// resolved buffer is inlined as a data URI.
			rb.URI = dataURIFor(data, "application/octet-stream")
		} else if b.Source.Kind == DataSourceURI {
			rb.URI = b.Source.URI
		}
		out[i] = rb
	}
	return out
}

func dataURIFor(data []byte, mimeType string) string {
	return "data:" + mimeType + ";base64," + b64.Encode(data)
}

func bufferViewsToRaw(views []BufferView) []rawBufferView {
	out := make([]rawBufferView, len(views))
	for i, v := range views {
		rv := rawBufferView{Buffer: v.Buffer, ByteOffset: v.ByteOffset, ByteLength: v.ByteLength, Name: v.Name, Extensions: v.Extensions, Extras: v.Extras}
		if s, ok := v.ByteStride.Get(); ok {
			si := int(s)
			rv.ByteStride = &si
		}
		if tgt, ok := v.Target.Get(); ok {
			ti := int(tgt)
			rv.Target = &ti
		}
		out[i] = rv
	}
	return out
}

func accessorsToRaw(accessors []Accessor) []rawAccessor {
	out := make([]rawAccessor, len(accessors))
	for i, a := range accessors {
		ra := rawAccessor{
			ByteOffset: a.ByteOffset, ComponentType: int(a.ComponentType), Normalized: a.Normalized,
			Count: a.Count, Type: string(a.Type), Max: a.Max.ToJSON(), Min: a.Min.ToJSON(), Name: a.Name,
			Extensions: a.Extensions, Extras: a.Extras,
		}
		if bv, ok := a.BufferView.Get(); ok {
			i2 := int(bv)
			ra.BufferView = &i2
		}
		if a.Sparse != nil {
			ra.Sparse = &rawSparse{Count: a.Sparse.Count, Extensions: a.Sparse.Extensions, Extras: a.Sparse.Extras}
			ra.Sparse.Indices.BufferView = a.Sparse.IndicesView
			ra.Sparse.Indices.ByteOffset = a.Sparse.IndicesOffset
			ra.Sparse.Indices.ComponentType = int(a.Sparse.IndicesType)
			ra.Sparse.Values.BufferView = a.Sparse.ValuesView
			ra.Sparse.Values.ByteOffset = a.Sparse.ValuesOffset
		}
		out[i] = ra
	}
	return out
}

func camerasToRaw(cameras []Camera) []rawCamera {
	out := make([]rawCamera, len(cameras))
	for i, c := range cameras {
		rc := rawCamera{Name: c.Name, Extensions: c.Extensions, Extras: c.Extras}
		if c.Kind == CameraOrthographic {
			rc.Type = "orthographic"
			o := c.Orthographic
			rc.Orthographic = &rawOrthographic{Xmag: o.Xmag, Ymag: o.Ymag, Zfar: o.Zfar, Znear: o.Znear}
		} else {
			rc.Type = "perspective"
			p := c.Perspective
			rp := &rawPerspective{Yfov: p.Yfov, Znear: p.Znear}
			if v, ok := p.AspectRatio.Get(); ok {
				rp.AspectRatio = floatPtr(v)
			}
			if v, ok := p.Zfar.Get(); ok {
				rp.Zfar = floatPtr(v)
			}
			rc.Perspective = rp
		}
		out[i] = rc
	}
	return out
}

func textureInfoToRaw(ti *TextureInfo) *rawTextureInfo {
	if ti == nil {
		return nil
	}
	return &rawTextureInfo{Index: ti.Index, TexCoord: ti.TexCoord, Extensions: ti.Extensions, Extras: ti.Extras}
}

func materialsToRaw(materials []Material) []rawMaterial {
	out := make([]rawMaterial, len(materials))
	for i, m := range materials {
		rm := rawMaterial{
			Name:        m.Name,
			DoubleSided: m.DoubleSided, EmissiveFactor: &m.EmissiveFactor,
			EmissiveTexture: textureInfoToRaw(m.EmissiveTexture),
			Extensions:      m.Extensions, Extras: m.Extras,
		}
		if m.AlphaMode != "" && m.AlphaMode != "OPAQUE" {
			rm.AlphaMode = m.AlphaMode
		}
		if m.AlphaCutoff != 0.5 {
			rm.AlphaCutoff = floatPtr(m.AlphaCutoff)
		}
		if m.PbrMetallicRoughness != nil {
			pr := m.PbrMetallicRoughness
			rm.PbrMetallicRoughness = &rawPbrMetallicRoughness{
				BaseColorFactor: &pr.BaseColorFactor, MetallicFactor: floatPtr(pr.MetallicFactor),
				RoughnessFactor: floatPtr(pr.RoughnessFactor), BaseColorTexture: textureInfoToRaw(pr.BaseColorTexture),
				MetallicRoughnessTexture: textureInfoToRaw(pr.MetallicRoughnessTexture),
				Extensions:               pr.Extensions, Extras: pr.Extras,
			}
		}
		if m.NormalTexture != nil {
			rm.NormalTexture = &rawNormalTextureInfo{
				rawTextureInfo: rawTextureInfo{Index: m.NormalTexture.Index, TexCoord: m.NormalTexture.TexCoord,
					Extensions: m.NormalTexture.Extensions, Extras: m.NormalTexture.Extras},
				Scale: floatPtr(m.NormalTexture.Scale),
			}
		}
		if m.OcclusionTexture != nil {
			rm.OcclusionTexture = &rawOcclusionTextureInfo{
				rawTextureInfo: rawTextureInfo{Index: m.OcclusionTexture.Index, TexCoord: m.OcclusionTexture.TexCoord,
					Extensions: m.OcclusionTexture.Extensions, Extras: m.OcclusionTexture.Extras},
				Strength: floatPtr(m.OcclusionTexture.Strength),
			}
		}
		out[i] = rm
	}
	return out
}

func meshesToRaw(meshes []Mesh) []rawMesh {
	out := make([]rawMesh, len(meshes))
	for i, m := range meshes {
		prims := make([]rawPrimitive, len(m.Primitives))
		for j, p := range m.Primitives {
			rp := rawPrimitive{
				Attributes: p.Attributes, Mode: intPtr(int(p.Mode)), Targets: p.Targets,
				Extensions: p.Extensions, Extras: p.Extras,
			}
			if idx, ok := p.Indices.Get(); ok {
				rp.Indices = intPtr(int(idx))
			}
			if idx, ok := p.Material.Get(); ok {
				rp.Material = intPtr(int(idx))
			}
			prims[j] = rp
		}
		out[i] = rawMesh{Primitives: prims, Weights: m.Weights, Name: m.Name, Extensions: m.Extensions, Extras: m.Extras}
	}
	return out
}

func nodesToRaw(nodes []Node) []rawNode {
	out := make([]rawNode, len(nodes))
	for i, n := range nodes {
		rn := rawNode{Children: n.Children, Weights: n.Weights, Name: n.Name, Extensions: n.Extensions, Extras: n.Extras}
		if idx, ok := n.Camera.Get(); ok {
			rn.Camera = intPtr(int(idx))
		}
		if idx, ok := n.Skin.Get(); ok {
			rn.Skin = intPtr(int(idx))
		}
		if idx, ok := n.Mesh.Get(); ok {
			rn.Mesh = intPtr(int(idx))
		}
		if n.TransformOf == TransformMatrix {
			m := [16]float64(n.Matrix)
			rn.Matrix = &m
		} else {
			if n.Translation != ([3]float64{}) {
				t := n.Translation
				rn.Translation = &t
			}
			if n.Rotation != DefaultRotation {
				r := n.Rotation
				rn.Rotation = &r
			}
			if n.Scale != DefaultScale {
				s := n.Scale
				rn.Scale = &s
			}
		}
		out[i] = rn
	}
	return out
}

func samplersToRaw(samplers []Sampler) []rawSampler {
	out := make([]rawSampler, len(samplers))
	for i, s := range samplers {
		rs := rawSampler{
			WrapS: intPtr(int(s.WrapS)), WrapT: intPtr(int(s.WrapT)),
			Name: s.Name, Extensions: s.Extensions, Extras: s.Extras,
		}
		if s.MagFilter != 0 {
			rs.MagFilter = intPtr(int(s.MagFilter))
		}
		if s.MinFilter != 0 {
			rs.MinFilter = intPtr(int(s.MinFilter))
		}
		out[i] = rs
	}
	return out
}

func scenesToRaw(scenes []Scene) []rawScene {
	out := make([]rawScene, len(scenes))
	for i, s := range scenes {
		out[i] = rawScene{Nodes: s.Nodes, Name: s.Name, Extensions: s.Extensions, Extras: s.Extras}
	}
	return out
}

func skinsToRaw(skins []Skin) []rawSkin {
	out := make([]rawSkin, len(skins))
	for i, s := range skins {
		rs := rawSkin{Joints: s.Joints, Name: s.Name, Extensions: s.Extensions, Extras: s.Extras}
		if idx, ok := s.InverseBindMatrices.Get(); ok {
			rs.InverseBindMatrices = intPtr(int(idx))
		}
		if idx, ok := s.Skeleton.Get(); ok {
			rs.Skeleton = intPtr(int(idx))
		}
		out[i] = rs
	}
	return out
}

func texturesToRaw(textures []Texture) []rawTexture {
	out := make([]rawTexture, len(textures))
	for i, t := range textures {
		rt := rawTexture{Name: t.Name, Extensions: t.Extensions, Extras: t.Extras}
		if idx, ok := t.Sampler.Get(); ok {
			rt.Sampler = intPtr(int(idx))
		}
		if idx, ok := t.Source.Get(); ok {
			rt.Source = intPtr(int(idx))
		}
		out[i] = rt
	}
	return out
}

func animationsToRaw(animations []Animation) []rawAnimation {
	out := make([]rawAnimation, len(animations))
	for i, a := range animations {
		channels := make([]rawChannel, len(a.Channels))
		for j, c := range a.Channels {
			rc := rawChannel{Sampler: c.Sampler, Target: rawChannelTarget{Path: c.TargetPath}, Extensions: c.Extensions, Extras: c.Extras}
			if idx, ok := c.TargetNode.Get(); ok {
				rc.Target.Node = intPtr(int(idx))
			}
			channels[j] = rc
		}
		samplers := make([]rawAnimationSampler, len(a.Samplers))
		for j, s := range a.Samplers {
			samplers[j] = rawAnimationSampler{Input: s.Input, Interpolation: s.Interpolation, Output: s.Output, Extensions: s.Extensions, Extras: s.Extras}
		}
		out[i] = rawAnimation{Channels: channels, Samplers: samplers, Name: a.Name, Extensions: a.Extensions, Extras: a.Extras}
	}
	return out
}

func imagesToRaw(images []Image, opts EncodeOptions) []rawImage {
	out := make([]rawImage, len(images))
	for i, img := range images {
		ri := rawImage{Name: img.Name, Extensions: img.Extensions, Extras: img.Extras}
		switch img.Source.Kind {
		case DataSourceBufferView:
			if idx, ok := img.Source.BufferViewIndex.Get(); ok {
				bv := int(idx)
				ri.BufferView = &bv
				ri.MimeType = img.Source.MimeType
			}
		default:
			if path, ok := opts.ImagePaths[i]; ok {
				ri.URI = path
			} else if data, ok := img.Source.Data(); ok {
				ri.URI = dataURIFor(data, img.Source.MimeType)
			} else if img.Source.Kind == DataSourceURI {
				ri.URI = img.Source.URI
				ri.MimeType = img.Source.MimeType
			}
		}
		out[i] = ri
	}
	return out
}

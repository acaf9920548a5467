package gltfkit

// decode_ext.go supplements decode.go with the wider KHR/MSFT/EXT
// extension family spec.md §6.2 names. These are derived from the
// already-decoded Extensions map each entity carries (the same map
// decode.go's decodeLights/"KHR_materials_unlit" handling already reads
// from), so the typed fields below are convenience views over data that
// round-trips unchanged through EncodeJSON/EncodeGLB rather than a
// second, divergent source of truth.

func extMap(exts map[string]interface{}, name string) (map[string]interface{}, bool) {
	if exts == nil {
		return nil, false
	}
	m, ok := exts[name].(map[string]interface{})
	return m, ok
}

func extF64(m map[string]interface{}, key string, def float64) float64 {
	if v, ok := m[key].(float64); ok {
		return v
	}
	return def
}

func extOptF64(m map[string]interface{}, key string) OptFloat64 {
	if v, ok := m[key].(float64); ok {
		return OptFloat64(v)
	}
	return NoFloat64
}

func extString(m map[string]interface{}, key, def string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return def
}

func extVec2(m map[string]interface{}, key string, def [2]float64) [2]float64 {
	arr, ok := m[key].([]interface{})
	if !ok || len(arr) != 2 {
		return def
	}
	var out [2]float64
	for i := range out {
		if f, ok := arr[i].(float64); ok {
			out[i] = f
		}
	}
	return out
}

func extVec3(m map[string]interface{}, key string, def [3]float64) [3]float64 {
	arr, ok := m[key].([]interface{})
	if !ok || len(arr) != 3 {
		return def
	}
	var out [3]float64
	for i := range out {
		if f, ok := arr[i].(float64); ok {
			out[i] = f
		}
	}
	return out
}

// extTextureInfo parses a plain {index, texCoord, extensions, extras}
// object embedded under key, the same shape rawTextureInfo decodes at
// the top level.
func extTextureInfo(m map[string]interface{}, key string) *TextureInfo {
	tm, ok := m[key].(map[string]interface{})
	if !ok {
		return nil
	}
	ti := &TextureInfo{}
	if idx, ok := tm["index"].(float64); ok {
		ti.Index = int(idx)
	}
	if tc, ok := tm["texCoord"].(float64); ok {
		ti.TexCoord = int(tc)
	}
	if exts, ok := tm["extensions"].(map[string]interface{}); ok {
		ti.Extensions = exts
		ti.Transform = extTextureTransform(exts)
	}
	if extras, ok := tm["extras"]; ok {
		ti.Extras = extras
	}
	return ti
}

func extNormalTextureInfo(m map[string]interface{}, key string) *NormalTextureInfo {
	ti := extTextureInfo(m, key)
	if ti == nil {
		return nil
	}
	tm, _ := m[key].(map[string]interface{})
	return &NormalTextureInfo{TextureInfo: *ti, Scale: extF64(tm, "scale", 1)}
}

// extTextureTransform parses KHR_texture_transform out of a texture
// reference's own "extensions" object.
func extTextureTransform(exts map[string]interface{}) *TextureTransform {
	tm, ok := extMap(exts, "KHR_texture_transform")
	if !ok {
		return nil
	}
	tt := &TextureTransform{
		Offset:   extVec2(tm, "offset", [2]float64{0, 0}),
		Rotation: extF64(tm, "rotation", 0),
		Scale:    extVec2(tm, "scale", [2]float64{1, 1}),
		TexCoord: NoIndex,
	}
	if tc, ok := tm["texCoord"].(float64); ok {
		tt.TexCoord = OptIndex(uint32(tc))
	}
	return tt
}

// populateMaterialExtensions fills in a Material's KHR_materials_*
// sub-structs (and its textures' KHR_texture_transform) from the raw
// extensions maps decodeMaterials already attached verbatim.
func populateMaterialExtensions(m *Material) {
	if m.EmissiveTexture != nil {
		m.EmissiveTexture.Transform = extTextureTransform(m.EmissiveTexture.Extensions)
	}
	if m.NormalTexture != nil {
		m.NormalTexture.Transform = extTextureTransform(m.NormalTexture.Extensions)
	}
	if m.OcclusionTexture != nil {
		m.OcclusionTexture.Transform = extTextureTransform(m.OcclusionTexture.Extensions)
	}
	if m.PbrMetallicRoughness != nil {
		pr := m.PbrMetallicRoughness
		if pr.BaseColorTexture != nil {
			pr.BaseColorTexture.Transform = extTextureTransform(pr.BaseColorTexture.Extensions)
		}
		if pr.MetallicRoughnessTexture != nil {
			pr.MetallicRoughnessTexture.Transform = extTextureTransform(pr.MetallicRoughnessTexture.Extensions)
		}
	}

	if em, ok := extMap(m.Extensions, "KHR_materials_anisotropy"); ok {
		m.Anisotropy = &MaterialAnisotropy{
			AnisotropyStrength: extF64(em, "anisotropyStrength", 0),
			AnisotropyRotation: extF64(em, "anisotropyRotation", 0),
			AnisotropyTexture:  extTextureInfo(em, "anisotropyTexture"),
		}
	}
	if em, ok := extMap(m.Extensions, "KHR_materials_clearcoat"); ok {
		m.Clearcoat = &MaterialClearcoat{
			ClearcoatFactor:           extF64(em, "clearcoatFactor", 0),
			ClearcoatTexture:          extTextureInfo(em, "clearcoatTexture"),
			ClearcoatRoughnessFactor:  extF64(em, "clearcoatRoughnessFactor", 0),
			ClearcoatRoughnessTexture: extTextureInfo(em, "clearcoatRoughnessTexture"),
			ClearcoatNormalTexture:    extNormalTextureInfo(em, "clearcoatNormalTexture"),
		}
	}
	if em, ok := extMap(m.Extensions, "KHR_materials_sheen"); ok {
		m.Sheen = &MaterialSheen{
			SheenColorFactor:      extVec3(em, "sheenColorFactor", [3]float64{0, 0, 0}),
			SheenColorTexture:     extTextureInfo(em, "sheenColorTexture"),
			SheenRoughnessFactor:  extF64(em, "sheenRoughnessFactor", 0),
			SheenRoughnessTexture: extTextureInfo(em, "sheenRoughnessTexture"),
		}
	}
	if em, ok := extMap(m.Extensions, "KHR_materials_specular"); ok {
		m.Specular = &MaterialSpecular{
			SpecularFactor:       extF64(em, "specularFactor", 1),
			SpecularTexture:      extTextureInfo(em, "specularTexture"),
			SpecularColorFactor:  extVec3(em, "specularColorFactor", [3]float64{1, 1, 1}),
			SpecularColorTexture: extTextureInfo(em, "specularColorTexture"),
		}
	}
	if em, ok := extMap(m.Extensions, "KHR_materials_transmission"); ok {
		m.Transmission = &MaterialTransmission{
			TransmissionFactor:  extF64(em, "transmissionFactor", 0),
			TransmissionTexture: extTextureInfo(em, "transmissionTexture"),
		}
	}
	if em, ok := extMap(m.Extensions, "KHR_materials_volume"); ok {
		m.Volume = &MaterialVolume{
			ThicknessFactor:     extF64(em, "thicknessFactor", 0),
			ThicknessTexture:    extTextureInfo(em, "thicknessTexture"),
			AttenuationDistance: extOptF64(em, "attenuationDistance"),
			AttenuationColor:    extVec3(em, "attenuationColor", [3]float64{1, 1, 1}),
		}
	}
	if em, ok := extMap(m.Extensions, "KHR_materials_iridescence"); ok {
		m.Iridescence = &MaterialIridescence{
			IridescenceFactor:           extF64(em, "iridescenceFactor", 0),
			IridescenceTexture:          extTextureInfo(em, "iridescenceTexture"),
			IridescenceIor:              extF64(em, "iridescenceIor", 1.3),
			IridescenceThicknessMin:     extF64(em, "iridescenceThicknessMinimum", 100),
			IridescenceThicknessMax:     extF64(em, "iridescenceThicknessMaximum", 400),
			IridescenceThicknessTexture: extTextureInfo(em, "iridescenceThicknessTexture"),
		}
	}
	if em, ok := extMap(m.Extensions, "KHR_materials_ior"); ok {
		m.IOR = OptFloat64(extF64(em, "ior", 1.5))
	}
	if em, ok := extMap(m.Extensions, "KHR_materials_dispersion"); ok {
		m.Dispersion = OptFloat64(extF64(em, "dispersion", 0))
	}
	if em, ok := extMap(m.Extensions, "KHR_materials_emissive_strength"); ok {
		m.EmissiveStrength = OptFloat64(extF64(em, "emissiveStrength", 1))
	}
	if em, ok := extMap(m.Extensions, "KHR_materials_diffuse_transmission"); ok {
		m.DiffuseTransmission = &MaterialDiffuseTransmission{
			DiffuseTransmissionFactor:       extF64(em, "diffuseTransmissionFactor", 0),
			DiffuseTransmissionTexture:      extTextureInfo(em, "diffuseTransmissionTexture"),
			DiffuseTransmissionColorFactor:  extVec3(em, "diffuseTransmissionColorFactor", [3]float64{1, 1, 1}),
			DiffuseTransmissionColorTexture: extTextureInfo(em, "diffuseTransmissionColorTexture"),
		}
	}
}

// populateTextureAltSources resolves KHR_texture_basisu/MSFT_texture_dds/
// EXT_texture_webp's alternative "source" image index.
func populateTextureAltSources(t *Texture) {
	if em, ok := extMap(t.Extensions, "KHR_texture_basisu"); ok {
		if idx, ok := em["source"].(float64); ok {
			t.BasisuSource = OptIndex(uint32(idx))
		}
	}
	if em, ok := extMap(t.Extensions, "MSFT_texture_dds"); ok {
		if idx, ok := em["source"].(float64); ok {
			t.DDSSource = OptIndex(uint32(idx))
		}
	}
	if em, ok := extMap(t.Extensions, "EXT_texture_webp"); ok {
		if idx, ok := em["source"].(float64); ok {
			t.WebpSource = OptIndex(uint32(idx))
		}
	}
}

// populateBufferViewCompression resolves EXT_meshopt_compression's
// metadata describing a meshopt-encoded byte range.
func populateBufferViewCompression(bv *BufferView) {
	em, ok := extMap(bv.Extensions, "EXT_meshopt_compression")
	if !ok {
		return
	}
	bv.Compressed = &CompressedBufferView{
		Buffer:     int(extF64(em, "buffer", float64(bv.Buffer))),
		ByteOffset: int(extF64(em, "byteOffset", 0)),
		ByteLength: int(extF64(em, "byteLength", 0)),
		ByteStride: int(extF64(em, "byteStride", 0)),
		Count:      int(extF64(em, "count", 0)),
		Mode:       CompressionMode(extString(em, "mode", string(CompressionAttributes))),
		Filter:     CompressionFilter(extString(em, "filter", string(CompressionFilterNone))),
	}
}

// populatePrimitiveExtensions resolves KHR_materials_variants' per-
// primitive material mapping and KHR_draco_mesh_compression's
// compressed-payload descriptor.
func populatePrimitiveExtensions(p *Primitive) {
	if em, ok := extMap(p.Extensions, "KHR_materials_variants"); ok {
		if mappings, ok := em["mappings"].([]interface{}); ok {
			for _, mi := range mappings {
				mm, ok := mi.(map[string]interface{})
				if !ok {
					continue
				}
				vm := VariantMapping{Material: NoIndex}
				if variants, ok := mm["variants"].([]interface{}); ok {
					for _, v := range variants {
						if f, ok := v.(float64); ok {
							vm.Variants = append(vm.Variants, int(f))
						}
					}
				}
				if mat, ok := mm["material"].(float64); ok {
					vm.Material = OptIndex(uint32(mat))
				}
				p.Variants = append(p.Variants, vm)
			}
		}
	}
	if em, ok := extMap(p.Extensions, "KHR_draco_mesh_compression"); ok {
		dp := &DracoPrimitive{}
		if bv, ok := em["bufferView"].(float64); ok {
			dp.BufferView = int(bv)
		}
		if attrs, ok := em["attributes"].(map[string]interface{}); ok {
			dp.Attributes = make(map[string]int, len(attrs))
			for k, v := range attrs {
				if f, ok := v.(float64); ok {
					dp.Attributes[k] = int(f)
				}
			}
		}
		p.Draco = dp
	}
}

// populateNodeInstancing resolves EXT_mesh_gpu_instancing's per-node
// instance-attribute accessor map.
func populateNodeInstancing(n *Node) {
	em, ok := extMap(n.Extensions, "EXT_mesh_gpu_instancing")
	if !ok {
		return
	}
	attrs, ok := em["attributes"].(map[string]interface{})
	if !ok {
		return
	}
	inst := &NodeInstancing{Attributes: make(map[string]int, len(attrs))}
	for k, v := range attrs {
		if f, ok := v.(float64); ok {
			inst.Attributes[k] = int(f)
		}
	}
	n.Instancing = inst
}

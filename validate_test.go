package gltfkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAcceptsMinimalAsset(t *testing.T) {
	asset := &Asset{Metadata: Metadata{Version: "2.0"}, DefaultScene: NoIndex}
	assert.NoError(t, Validate(asset))
}

func TestValidateRejectsMissingVersion(t *testing.T) {
	asset := &Asset{}
	assert.Error(t, Validate(asset))
}

func TestValidateRejectsOutOfRangeBufferView(t *testing.T) {
	asset := &Asset{
		Metadata:  Metadata{Version: "2.0"},
		Accessors: []Accessor{{BufferView: OptIndex(5), Type: TypeVec3, ComponentType: ComponentFloat}},
	}
	err := Validate(asset)
	assert.ErrorIs(t, err, InvalidGltf)
}

func TestValidateRejectsDisallowedAttributeComponentType(t *testing.T) {
	asset := &Asset{
		Metadata:    Metadata{Version: "2.0"},
		Accessors:   []Accessor{{BufferView: NoIndex, Type: TypeVec3, ComponentType: ComponentUnsignedByte}},
		BufferViews: []BufferView{},
		Meshes: []Mesh{{Primitives: []Primitive{{
			Attributes: map[string]int{"POSITION": 0},
		}}}},
	}
	err := Validate(asset)
	assert.Error(t, err)
}

func TestValidateRejectsRequiredExtensionNotUsed(t *testing.T) {
	asset := &Asset{
		Metadata:           Metadata{Version: "2.0"},
		DefaultScene:       NoIndex,
		ExtensionsRequired: []string{"KHR_materials_unlit"},
	}
	err := Validate(asset)
	assert.Error(t, err)
}

func TestValidateAcceptsRequiredExtensionListedAsUsed(t *testing.T) {
	asset := &Asset{
		Metadata:           Metadata{Version: "2.0"},
		DefaultScene:       NoIndex,
		ExtensionsUsed:     []string{"KHR_materials_unlit"},
		ExtensionsRequired: []string{"KHR_materials_unlit"},
	}
	assert.NoError(t, Validate(asset))
}

func TestValidateRejectsNodeSelfChild(t *testing.T) {
	asset := &Asset{
		Metadata: Metadata{Version: "2.0"},
		Nodes:    []Node{{Children: []int{0}}},
	}
	assert.Error(t, Validate(asset))
}

func TestSingleRootTransformedFlagsNonIdentityRoot(t *testing.T) {
	asset := &Asset{
		Nodes: []Node{
			{TransformOf: TransformTRS, Translation: [3]float64{1, 0, 0}, Rotation: DefaultRotation, Scale: DefaultScale},
		},
		Scenes: []Scene{{Nodes: []int{0}}},
	}
	assert.Equal(t, []int{0}, SingleRootTransformed(asset))
}

func TestSingleRootTransformedIgnoresIdentityRoot(t *testing.T) {
	asset := &Asset{
		Nodes: []Node{
			{TransformOf: TransformTRS, Rotation: DefaultRotation, Scale: DefaultScale},
		},
		Scenes: []Scene{{Nodes: []int{0}}},
	}
	assert.Empty(t, SingleRootTransformed(asset))
}

package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-face/engine/renderer/material"

	"github.com/qmuntal/gltf"
)

// gltfExtractMaterial converts a glTF material into a render material carrying its PBR base color.
// Textures, metallic and roughness are not used by the Phong pipeline and are dropped.
// An out-of-range index yields the default white material.
//
// Parameters:
//   - doc: the decoded document
//   - index: the material index
//
// Returns:
//   - material.Material: the render material
func gltfExtractMaterial(doc *gltf.Document, index uint32) material.Material {
	if int(index) >= len(doc.Materials) {
		return material.NewMaterial()
	}

	src := doc.Materials[index]
	name := src.Name
	if name == "" {
		name = fmt.Sprintf("material_%d", index)
	}

	color := [4]float32{1, 1, 1, 1}
	if src.PBRMetallicRoughness != nil {
		color = src.PBRMetallicRoughness.BaseColorFactorOrDefault()
	}

	return material.NewMaterial(
		material.WithName(name),
		material.WithBaseColor(color),
	)
}

package model

import "fmt"

// Binding assigns one mesh texture to a texture unit and the sampler uniform that reads it.
type Binding struct {
	Texture int // index into Mesh.Textures
	Type    TextureType
	Unit    uint32
	Sampler string
}

// samplerPrefix lists the texture types the scene shader can sample.
var samplerPrefix = map[TextureType]string{
	TextureDiffuse:  "texture_diffuse",
	TextureSpecular: "texture_specular",
}

// PlanBindings resolves textures to sequential units starting at firstUnit. Each supported type
// keeps its own counter, so the second diffuse texture samples from "texture_diffuse1".
// Textures of unsupported types are returned in skipped and take no unit.
func PlanBindings(textures []TextureRef, firstUnit uint32) (bindings []Binding, skipped []TextureRef) {
	counts := make(map[TextureType]int, len(samplerPrefix))
	unit := firstUnit

	for i, tex := range textures {
		prefix, ok := samplerPrefix[tex.Type]
		if !ok {
			skipped = append(skipped, tex)
			continue
		}
		bindings = append(bindings, Binding{
			Texture: i,
			Type:    tex.Type,
			Unit:    unit,
			Sampler: fmt.Sprintf("%s%d", prefix, counts[tex.Type]),
		})
		counts[tex.Type]++
		unit++
	}
	return bindings, skipped
}

package render

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-reflection/internal/openglhelper"
	"github.com/leterax/go-reflection/pkg/render/frame"
)

// Skybox is a cubemap drawn on a unit cube behind everything else.
type Skybox struct {
	Cubemap *openglhelper.Texture
	cube    *openglhelper.PositionMesh
}

// NewSkybox loads the six faces, ordered right, left, top, bottom, back, front.
func NewSkybox(faces []string) (*Skybox, error) {
	cubemap, err := openglhelper.LoadCubemap(faces)
	if err != nil {
		return nil, fmt.Errorf("load skybox: %w", err)
	}
	return &Skybox{
		Cubemap: cubemap,
		cube:    openglhelper.NewPositionMesh(frame.SkyboxVertices, frame.SkyboxIndices),
	}, nil
}

// Draw renders the skybox with a rotation-only view. The vertex shader writes depth 1.0,
// so LEQUAL lets it pass exactly where the scene left the cleared far-plane depth.
// Culling and the default depth function are restored afterwards.
func (s *Skybox) Draw(shader *openglhelper.Shader, projection, view mgl32.Mat4) {
	gl.Disable(gl.CULL_FACE)
	gl.DepthFunc(gl.LEQUAL)

	shader.Use()
	shader.SetMat4("projection", projection)
	shader.SetMat4("view", frame.SkyboxView(view))
	s.Cubemap.Bind(0)
	shader.SetInt("skybox", 0)

	s.cube.Draw()

	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
}

// Delete releases the cubemap and cube buffers.
func (s *Skybox) Delete() {
	s.cube.Delete()
	s.Cubemap.Delete()
}

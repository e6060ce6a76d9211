package openglhelper

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/leterax/go-reflection/internal/logger"
	"github.com/leterax/go-reflection/pkg/model"
	"go.uber.org/zap"
)

// FirstMeshTextureUnit is the first unit mesh textures may use; unit 0 holds the environment cubemap.
const FirstMeshTextureUnit = 1

// boundTexture is a resolved texture binding: no lookups or string building per frame.
type boundTexture struct {
	texture *Texture
	unit    uint32
	sampler string
}

// Mesh is a model mesh uploaded to the GPU.
type Mesh struct {
	Name       string
	vao        *VertexArrayObject
	vbo        *BufferObject
	ebo        *BufferObject
	indexCount int32
	textures   []boundTexture
}

// NewMesh uploads vertices and indices and resolves the mesh's textures through cache.
// Textures of types the scene shader cannot sample are logged and skipped.
func NewMesh(m *model.Mesh, cache *TextureCache) (*Mesh, error) {
	bindings, skipped := model.PlanBindings(m.Textures, FirstMeshTextureUnit)
	for _, tex := range skipped {
		logger.Warn("skipping texture of unsupported type",
			zap.String("mesh", m.Name),
			zap.Stringer("type", tex.Type),
			zap.String("path", tex.Path))
	}

	textures := make([]boundTexture, 0, len(bindings))
	for _, b := range bindings {
		path := m.Textures[b.Texture].Path
		tex, err := cache.Get(path)
		if err != nil {
			return nil, fmt.Errorf("mesh %s: %s texture: %w", m.Name, b.Type, err)
		}
		textures = append(textures, boundTexture{texture: tex, unit: b.Unit, sampler: b.Sampler})
	}

	vao := NewVAO()
	vao.Bind()

	vbo := NewVBO(m.Vertices, StaticDraw)
	ebo := NewEBO(m.Indices, StaticDraw)

	vao.SetVertexAttribPointer(0, 3, model.VertexStride, model.PositionOffset)
	vao.SetVertexAttribPointer(1, 2, model.VertexStride, model.TexCoordsOffset)
	vao.SetVertexAttribPointer(2, 3, model.VertexStride, model.NormalOffset)

	vao.Unbind()

	return &Mesh{
		Name:       m.Name,
		vao:        vao,
		vbo:        vbo,
		ebo:        ebo,
		indexCount: int32(len(m.Indices)),
		textures:   textures,
	}, nil
}

// Draw binds the mesh textures to their units and issues one indexed draw.
// The shader must already be in use.
func (m *Mesh) Draw(shader *Shader) {
	for _, t := range m.textures {
		t.texture.Bind(t.unit)
		shader.SetInt(t.sampler, int32(t.unit))
	}

	m.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	m.vao.Unbind()

	gl.ActiveTexture(gl.TEXTURE0)
}

// Delete releases the buffers. Textures belong to the cache.
func (m *Mesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}

// PositionMesh is an indexed mesh with a single vec3 position attribute at location 0.
type PositionMesh struct {
	vao        *VertexArrayObject
	vbo        *BufferObject
	ebo        *BufferObject
	indexCount int32
}

// NewPositionMesh uploads tightly packed xyz positions and indices.
func NewPositionMesh(positions []float32, indices []uint32) *PositionMesh {
	vao := NewVAO()
	vao.Bind()

	vbo := NewVBO(positions, StaticDraw)
	ebo := NewEBO(indices, StaticDraw)
	vao.SetVertexAttribPointer(0, 3, 3*4, 0)

	vao.Unbind()

	return &PositionMesh{vao: vao, vbo: vbo, ebo: ebo, indexCount: int32(len(indices))}
}

// Draw issues one indexed draw.
func (m *PositionMesh) Draw() {
	m.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	m.vao.Unbind()
}

// Delete releases all resources
func (m *PositionMesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}

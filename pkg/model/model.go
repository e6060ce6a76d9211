// Package model holds mesh data loaded from disk and the loaders that produce it.
// Nothing here touches the GPU; see openglhelper for uploading.
package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrUnsupportedFormat is returned for mesh files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported mesh format")
	// ErrNoGeometry is returned when a file parses but yields no triangles.
	ErrNoGeometry = errors.New("no triangle geometry")
)

// Vertex is the interleaved layout uploaded to the GPU: position, texture coordinate, normal.
type Vertex struct {
	Position  mgl32.Vec3
	TexCoords mgl32.Vec2
	Normal    mgl32.Vec3
}

// Byte layout of Vertex for attribute pointers.
const (
	VertexStride    = int32(unsafe.Sizeof(Vertex{}))
	PositionOffset  = unsafe.Offsetof(Vertex{}.Position)
	TexCoordsOffset = unsafe.Offsetof(Vertex{}.TexCoords)
	NormalOffset    = unsafe.Offsetof(Vertex{}.Normal)
)

// TextureType is the semantic role of a material texture.
type TextureType int

const (
	TextureUnknown TextureType = iota
	TextureDiffuse
	TextureSpecular
	TextureNormal
	TextureAmbient
)

func (t TextureType) String() string {
	switch t {
	case TextureDiffuse:
		return "diffuse"
	case TextureSpecular:
		return "specular"
	case TextureNormal:
		return "normal"
	case TextureAmbient:
		return "ambient"
	default:
		return "unknown"
	}
}

// TextureRef names an image file used by a mesh.
type TextureRef struct {
	Type TextureType
	Path string
}

// Mesh is immutable after load.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Textures []TextureRef
}

// Model is the set of meshes loaded from one file.
type Model struct {
	Path   string
	Meshes []Mesh
}

// TriangleCount sums triangles over all meshes.
func (m *Model) TriangleCount() int {
	n := 0
	for i := range m.Meshes {
		n += len(m.Meshes[i].Indices) / 3
	}
	return n
}

// Load reads a mesh file, choosing the loader by extension.
func Load(path string) (*Model, error) {
	var (
		m   *Model
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		m, err = LoadOBJ(path)
	case ".gltf", ".glb":
		m, err = LoadGLTF(path)
	default:
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if len(m.Meshes) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoGeometry)
	}
	return m, nil
}

// generateNormals fills each vertex normal with the normalized sum of the normals of the
// faces that share it. Degenerate faces contribute nothing.
func generateNormals(vertices []Vertex, indices []uint32) {
	for i := range vertices {
		vertices[i].Normal = mgl32.Vec3{}
	}
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		e1 := vertices[b].Position.Sub(vertices[a].Position)
		e2 := vertices[c].Position.Sub(vertices[a].Position)
		n := e1.Cross(e2)
		vertices[a].Normal = vertices[a].Normal.Add(n)
		vertices[b].Normal = vertices[b].Normal.Add(n)
		vertices[c].Normal = vertices[c].Normal.Add(n)
	}
	for i := range vertices {
		if vertices[i].Normal.Len() > 0 {
			vertices[i].Normal = vertices[i].Normal.Normalize()
		}
	}
}

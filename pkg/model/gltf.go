package model

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/leterax/go-reflection/internal/logger"
)

// LoadGLTF reads a .gltf or .glb file. Each triangle primitive becomes one Mesh.
// Only images referenced by a relative URI are picked up as textures.
func LoadGLTF(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	m := &Model{Path: path}
	dir := filepath.Dir(path)

	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			name := gm.Name
			if name == "" {
				name = fmt.Sprintf("mesh%d", mi)
			}
			name = fmt.Sprintf("%s/%d", name, pi)

			if prim.Mode != gltf.PrimitiveTriangles {
				logger.Warn("skipping non-triangle primitive", zap.String("mesh", name))
				continue
			}

			mesh, err := readPrimitive(doc, prim, dir)
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", path, name, err)
			}
			mesh.Name = name
			m.Meshes = append(m.Meshes, mesh)
		}
	}
	return m, nil
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive, dir string) (Mesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return Mesh{}, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return Mesh{}, fmt.Errorf("read positions: %w", err)
	}

	vertices := make([]Vertex, len(positions))
	for i, p := range positions {
		vertices[i].Position = mgl32.Vec3(p)
	}

	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return Mesh{}, fmt.Errorf("read texcoords: %w", err)
		}
		for i := 0; i < len(uvs) && i < len(vertices); i++ {
			vertices[i].TexCoords = mgl32.Vec2(uvs[i])
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return Mesh{}, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	for _, i := range indices {
		if int(i) >= len(vertices) {
			return Mesh{}, fmt.Errorf("index %d out of range for %d vertices", i, len(vertices))
		}
	}

	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return Mesh{}, fmt.Errorf("read normals: %w", err)
		}
		for i := 0; i < len(normals) && i < len(vertices); i++ {
			vertices[i].Normal = mgl32.Vec3(normals[i])
		}
	} else {
		generateNormals(vertices, indices)
	}

	mesh := Mesh{Vertices: vertices, Indices: indices}
	if prim.Material != nil && *prim.Material < len(doc.Materials) {
		mesh.Textures = materialTextures(doc, doc.Materials[*prim.Material], dir)
	}
	return mesh, nil
}

func materialTextures(doc *gltf.Document, mat *gltf.Material, dir string) []TextureRef {
	var refs []TextureRef
	add := func(typ TextureType, texIdx int) {
		if p := imagePath(doc, texIdx, dir); p != "" {
			refs = append(refs, TextureRef{Type: typ, Path: p})
		}
	}

	if pbr := mat.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorTexture != nil {
			add(TextureDiffuse, pbr.BaseColorTexture.Index)
		}
		if pbr.MetallicRoughnessTexture != nil {
			add(TextureSpecular, pbr.MetallicRoughnessTexture.Index)
		}
	}
	if mat.NormalTexture != nil && mat.NormalTexture.Index != nil {
		add(TextureNormal, *mat.NormalTexture.Index)
	}
	return refs
}

func imagePath(doc *gltf.Document, texIdx int, dir string) string {
	if texIdx < 0 || texIdx >= len(doc.Textures) {
		return ""
	}
	src := doc.Textures[texIdx].Source
	if src == nil || *src >= len(doc.Images) {
		return ""
	}
	img := doc.Images[*src]
	if img.URI == "" || strings.HasPrefix(img.URI, "data:") {
		logger.Debug("skipping embedded glTF image", zap.Int("image", *src))
		return ""
	}
	return filepath.Join(dir, filepath.FromSlash(img.URI))
}

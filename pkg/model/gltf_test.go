package model

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func writeTriangleGLB(t *testing.T, path string, withNormals bool) {
	t.Helper()

	doc := gltf.NewDocument()
	attrs := map[string]int{
		gltf.POSITION:   modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}),
		gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {0, 1}}),
	}
	if withNormals {
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	}
	indices := modeler.WriteIndices(doc, []uint16{0, 1, 2})

	doc.Images = []*gltf.Image{{URI: "albedo.png"}, {URI: "normal.png"}}
	doc.Textures = []*gltf.Texture{{Source: gltf.Index(0)}, {Source: gltf.Index(1)}}
	doc.Materials = []*gltf.Material{{
		Name: "chrome",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorTexture: &gltf.TextureInfo{Index: 0},
		},
		NormalTexture: &gltf.NormalTexture{Index: gltf.Index(1)},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: attrs,
			Material:   gltf.Index(0),
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "root", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}
}

func TestLoadGLTF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.glb")
	writeTriangleGLB(t, path, true)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(m.Meshes))
	}

	mesh := m.Meshes[0]
	if mesh.Name != "tri/0" {
		t.Errorf("mesh name = %q, want tri/0", mesh.Name)
	}
	if len(mesh.Vertices) != 3 || len(mesh.Indices) != 3 {
		t.Fatalf("got %d vertices %d indices, want 3 and 3", len(mesh.Vertices), len(mesh.Indices))
	}
	if mesh.Vertices[1].Position != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("vertex 1 position = %v", mesh.Vertices[1].Position)
	}
	if mesh.Vertices[2].TexCoords != (mgl32.Vec2{0, 1}) {
		t.Errorf("vertex 2 texcoord = %v", mesh.Vertices[2].TexCoords)
	}
	if mesh.Vertices[0].Normal != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("vertex 0 normal = %v", mesh.Vertices[0].Normal)
	}

	want := []TextureRef{
		{TextureDiffuse, filepath.Join(dir, "albedo.png")},
		{TextureNormal, filepath.Join(dir, "normal.png")},
	}
	if len(mesh.Textures) != len(want) {
		t.Fatalf("textures = %v, want %v", mesh.Textures, want)
	}
	for i := range want {
		if mesh.Textures[i] != want[i] {
			t.Errorf("texture %d = %v, want %v", i, mesh.Textures[i], want[i])
		}
	}
}

func TestLoadGLTFGeneratesMissingNormals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.glb")
	writeTriangleGLB(t, path, false)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i, v := range m.Meshes[0].Vertices {
		if v.Normal != (mgl32.Vec3{0, 0, 1}) {
			t.Errorf("vertex %d normal = %v, want (0,0,1)", i, v.Normal)
		}
	}
}

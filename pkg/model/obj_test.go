package model

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const quadOBJ = `
# unit quad in the XY plane
v -1 -1 0
v  1 -1 0
v  1  1 0
v -1  1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJQuad(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader(quadOBJ), ".")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(m.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(m.Meshes))
	}

	mesh := m.Meshes[0]
	if len(mesh.Vertices) != 4 {
		t.Errorf("expected 4 unique vertices, got %d", len(mesh.Vertices))
	}
	wantIdx := []uint32{0, 1, 2, 0, 2, 3}
	if len(mesh.Indices) != len(wantIdx) {
		t.Fatalf("indices = %v, want %v", mesh.Indices, wantIdx)
	}
	for i := range wantIdx {
		if mesh.Indices[i] != wantIdx[i] {
			t.Errorf("indices = %v, want %v", mesh.Indices, wantIdx)
			break
		}
	}
	if m.TriangleCount() != 2 {
		t.Errorf("TriangleCount() = %d, want 2", m.TriangleCount())
	}

	// V is flipped so the top of the image maps to v=0.
	if got := mesh.Vertices[0].TexCoords; got != (mgl32.Vec2{0, 1}) {
		t.Errorf("first texcoord = %v, want (0,1)", got)
	}
	if got := mesh.Vertices[2].TexCoords; got != (mgl32.Vec2{1, 0}) {
		t.Errorf("third texcoord = %v, want (1,0)", got)
	}
	if got := mesh.Vertices[1].Normal; got != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("normal = %v, want (0,0,1)", got)
	}
}

func TestParseOBJCornerForms(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
f -3 -2 -1
`
	m, err := ParseOBJ(strings.NewReader(src), ".")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	mesh := m.Meshes[0]
	// 1//1 and a bare 1 are different corners, so no sharing between the two faces.
	if len(mesh.Vertices) != 6 {
		t.Errorf("expected 6 vertices, got %d", len(mesh.Vertices))
	}
	if len(mesh.Indices) != 6 {
		t.Errorf("expected 6 indices, got %d", len(mesh.Indices))
	}
	if mesh.Vertices[3].Position != (mgl32.Vec3{0, 0, 0}) {
		t.Errorf("negative index resolved to %v, want origin", mesh.Vertices[3].Position)
	}
}

func TestParseOBJGeneratesNormals(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	m, err := ParseOBJ(strings.NewReader(src), ".")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	for i, v := range m.Meshes[0].Vertices {
		if v.Normal != (mgl32.Vec3{0, 0, 1}) {
			t.Errorf("vertex %d normal = %v, want (0,0,1)", i, v.Normal)
		}
	}
}

func TestParseOBJFillsNormalsMissingFromSomeCorners(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
vn 0 1 0
f 1//1 2//1 3//1
f 1 2 4
`
	m, err := ParseOBJ(strings.NewReader(src), ".")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	vertices := m.Meshes[0].Vertices
	if len(vertices) != 6 {
		t.Fatalf("expected 6 vertices, got %d", len(vertices))
	}
	for i := 0; i < 3; i++ {
		if vertices[i].Normal != (mgl32.Vec3{0, 1, 0}) {
			t.Errorf("vertex %d normal = %v, want the file normal (0,1,0)", i, vertices[i].Normal)
		}
	}
	for i := 3; i < 6; i++ {
		if vertices[i].Normal != (mgl32.Vec3{0, 0, 1}) {
			t.Errorf("vertex %d normal = %v, want generated (0,0,1)", i, vertices[i].Normal)
		}
	}
}

func TestParseOBJTexcoordComponents(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0.5
vt 0.25 0.75 0
vt 1 1
f 1/1 2/2 3/3
`
	m, err := ParseOBJ(strings.NewReader(src), ".")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	vertices := m.Meshes[0].Vertices
	if got := vertices[0].TexCoords; got != (mgl32.Vec2{0.5, 1}) {
		t.Errorf("u-only texcoord = %v, want (0.5,1)", got)
	}
	if got := vertices[1].TexCoords; got != (mgl32.Vec2{0.25, 0.25}) {
		t.Errorf("uvw texcoord = %v, want (0.25,0.25)", got)
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad float", "v 1 x 2\n"},
		{"empty texcoord", "vt\n"},
		{"two-corner face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"bad texcoord ref", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/5 2/5 3/5\n"},
		{"non-numeric", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf a b c\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseOBJ(strings.NewReader(tt.src), "."); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadOBJWithMaterials(t *testing.T) {
	dir := t.TempDir()

	obj := `
mtllib scene.mtl
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
usemtl shiny
f 1 2 3
usemtl plain
f 2 4 3
usemtl shiny
f 3 2 4
`
	mtl := `
newmtl shiny
Kd 1 1 1
map_Kd textures/base.png
map_Ks shine.png
map_Bump -bm 0.5 normal.png

newmtl plain
map_Kd plain.jpg # trailing comment
`
	writeFile(t, filepath.Join(dir, "scene.obj"), obj)
	writeFile(t, filepath.Join(dir, "scene.mtl"), mtl)

	m, err := Load(filepath.Join(dir, "scene.obj"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Meshes) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(m.Meshes))
	}

	shiny, plain := m.Meshes[0], m.Meshes[1]
	if shiny.Name != "shiny" || plain.Name != "plain" {
		t.Errorf("mesh names = %q, %q", shiny.Name, plain.Name)
	}
	if len(shiny.Indices) != 6 {
		t.Errorf("shiny should collect both of its faces, got %d indices", len(shiny.Indices))
	}

	want := []TextureRef{
		{TextureDiffuse, filepath.Join(dir, "textures", "base.png")},
		{TextureSpecular, filepath.Join(dir, "shine.png")},
		{TextureNormal, filepath.Join(dir, "normal.png")},
	}
	if len(shiny.Textures) != len(want) {
		t.Fatalf("shiny textures = %v, want %v", shiny.Textures, want)
	}
	for i := range want {
		if shiny.Textures[i] != want[i] {
			t.Errorf("texture %d = %v, want %v", i, shiny.Textures[i], want[i])
		}
	}
	if len(plain.Textures) != 1 || plain.Textures[0].Path != filepath.Join(dir, "plain.jpg") {
		t.Errorf("plain textures = %v", plain.Textures)
	}
}

func TestLoadOBJMissingMaterialLibrary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.obj"), "mtllib gone.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")

	m, err := Load(filepath.Join(dir, "a.obj"))
	if err != nil {
		t.Fatalf("missing mtl must not be fatal: %v", err)
	}
	if len(m.Meshes[0].Textures) != 0 {
		t.Errorf("expected no textures, got %v", m.Meshes[0].Textures)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "empty.obj"), "# nothing\nv 0 0 0\n")

	if _, err := Load(filepath.Join(dir, "mesh.fbx")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("fbx: expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "empty.obj")); !errors.Is(err, ErrNoGeometry) {
		t.Errorf("empty: expected ErrNoGeometry, got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.obj")); err == nil {
		t.Error("missing file: expected error")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

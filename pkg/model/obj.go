package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/leterax/go-reflection/internal/logger"
)

// objIndex identifies one corner of an OBJ face. Missing components are -1.
type objIndex struct {
	v, vt, vn int
}

// objGroup collects the triangles that share a material.
type objGroup struct {
	material string
	vertices []Vertex
	indices  []uint32
	seen     map[objIndex]uint32
	// noNormal marks vertices whose corner carried no vn
	noNormal []bool
}

type objParser struct {
	dir string

	positions []mgl32.Vec3
	texCoords []mgl32.Vec2
	normals   []mgl32.Vec3

	materials map[string][]TextureRef
	groups    []*objGroup
	byName    map[string]*objGroup
	current   *objGroup
}

// LoadOBJ reads a Wavefront OBJ file and any material libraries it references.
// Faces are triangulated as fans and split into one mesh per material.
func LoadOBJ(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	m, err := ParseOBJ(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// ParseOBJ parses OBJ data. Material libraries and texture paths resolve against dir.
func ParseOBJ(r io.Reader, dir string) (*Model, error) {
	p := &objParser{
		dir:       dir,
		materials: make(map[string][]TextureRef),
		byName:    make(map[string]*objGroup),
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(stripComment(sc.Text()))
		if len(fields) == 0 {
			continue
		}
		if err := p.handle(fields); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	return p.model(), nil
}

func (p *objParser) handle(fields []string) error {
	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[1:], 3, 3)
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		p.positions = append(p.positions, mgl32.Vec3{v[0], v[1], v[2]})
	case "vt":
		// v and w are optional; w is ignored.
		v, err := parseFloats(fields[1:], 1, 2)
		if err != nil {
			return fmt.Errorf("texcoord: %w", err)
		}
		// OBJ puts v=0 at the bottom of the image; images are uploaded top row first.
		p.texCoords = append(p.texCoords, mgl32.Vec2{v[0], 1 - v[1]})
	case "vn":
		v, err := parseFloats(fields[1:], 3, 3)
		if err != nil {
			return fmt.Errorf("normal: %w", err)
		}
		p.normals = append(p.normals, mgl32.Vec3{v[0], v[1], v[2]})
	case "f":
		return p.face(fields[1:])
	case "usemtl":
		name := ""
		if len(fields) > 1 {
			name = fields[1]
		}
		p.current = p.group(name)
	case "mtllib":
		for _, lib := range fields[1:] {
			p.loadMaterials(filepath.Join(p.dir, lib))
		}
	}
	// o, g, s and unknown statements carry nothing we render.
	return nil
}

func (p *objParser) group(material string) *objGroup {
	if g, ok := p.byName[material]; ok {
		return g
	}
	g := &objGroup{material: material, seen: make(map[objIndex]uint32)}
	p.byName[material] = g
	p.groups = append(p.groups, g)
	return g
}

func (p *objParser) face(corners []string) error {
	if len(corners) < 3 {
		return fmt.Errorf("face with %d vertices", len(corners))
	}
	if p.current == nil {
		p.current = p.group("")
	}
	g := p.current

	idx := make([]uint32, len(corners))
	for i, c := range corners {
		oi, err := p.resolve(c)
		if err != nil {
			return fmt.Errorf("face: %w", err)
		}
		idx[i] = g.vertex(oi, p)
	}
	for i := 1; i+1 < len(idx); i++ {
		g.indices = append(g.indices, idx[0], idx[i], idx[i+1])
	}
	return nil
}

// resolve parses "v", "v/vt", "v//vn" or "v/vt/vn", converting 1-based and negative
// relative indices to 0-based ones.
func (p *objParser) resolve(corner string) (objIndex, error) {
	parts := strings.Split(corner, "/")
	if len(parts) > 3 {
		return objIndex{}, fmt.Errorf("bad corner %q", corner)
	}
	oi := objIndex{-1, -1, -1}

	var err error
	if oi.v, err = objRef(parts[0], len(p.positions)); err != nil || oi.v < 0 {
		return objIndex{}, fmt.Errorf("bad position index in %q", corner)
	}
	if len(parts) > 1 && parts[1] != "" {
		if oi.vt, err = objRef(parts[1], len(p.texCoords)); err != nil || oi.vt < 0 {
			return objIndex{}, fmt.Errorf("bad texcoord index in %q", corner)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if oi.vn, err = objRef(parts[2], len(p.normals)); err != nil || oi.vn < 0 {
			return objIndex{}, fmt.Errorf("bad normal index in %q", corner)
		}
	}
	return oi, nil
}

func objRef(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1, err
	}
	switch {
	case n > 0 && n <= count:
		return n - 1, nil
	case n < 0 && -n <= count:
		return count + n, nil
	default:
		return -1, nil
	}
}

func (g *objGroup) vertex(oi objIndex, p *objParser) uint32 {
	if i, ok := g.seen[oi]; ok {
		return i
	}
	v := Vertex{Position: p.positions[oi.v]}
	if oi.vt >= 0 {
		v.TexCoords = p.texCoords[oi.vt]
	}
	if oi.vn >= 0 {
		v.Normal = p.normals[oi.vn]
	}
	i := uint32(len(g.vertices))
	g.vertices = append(g.vertices, v)
	g.noNormal = append(g.noNormal, oi.vn < 0)
	g.seen[oi] = i
	return i
}

func (p *objParser) model() *Model {
	m := &Model{}
	for _, g := range p.groups {
		if len(g.indices) == 0 {
			continue
		}
		fillMissingNormals(g.vertices, g.indices, g.noNormal)
		m.Meshes = append(m.Meshes, Mesh{
			Name:     g.material,
			Vertices: g.vertices,
			Indices:  g.indices,
			Textures: p.materials[g.material],
		})
	}
	return m
}

// fillMissingNormals gives every vertex flagged in missing the smoothed normal of the
// faces around it. Vertices with a normal from the file keep it.
func fillMissingNormals(vertices []Vertex, indices []uint32, missing []bool) {
	need := false
	for _, m := range missing {
		need = need || m
	}
	if !need {
		return
	}

	generated := make([]Vertex, len(vertices))
	copy(generated, vertices)
	generateNormals(generated, indices)
	for i, m := range missing {
		if m {
			vertices[i].Normal = generated[i].Normal
		}
	}
}

// loadMaterials reads texture maps from an MTL file. A missing or unreadable library is
// logged and leaves the affected meshes untextured.
func (p *objParser) loadMaterials(path string) {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("material library unavailable", zap.String("path", path), zap.Error(err))
		return
	}
	defer f.Close()

	if err := p.parseMaterials(f, filepath.Dir(path)); err != nil {
		logger.Warn("material library unreadable", zap.String("path", path), zap.Error(err))
	}
}

func (p *objParser) parseMaterials(r io.Reader, dir string) error {
	var current string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(stripComment(sc.Text()))
		if len(fields) == 0 {
			continue
		}
		key := strings.ToLower(fields[0])
		if key == "newmtl" {
			if len(fields) > 1 {
				current = fields[1]
			}
			continue
		}

		typ, ok := mtlTextureTypes[key]
		if !ok || len(fields) < 2 {
			continue
		}
		// Options such as "-bm 0.5" precede the file name, which is always last.
		file := fields[len(fields)-1]
		p.materials[current] = append(p.materials[current], TextureRef{
			Type: typ,
			Path: filepath.Join(dir, filepath.FromSlash(file)),
		})
	}
	return sc.Err()
}

var mtlTextureTypes = map[string]TextureType{
	"map_kd":   TextureDiffuse,
	"map_ks":   TextureSpecular,
	"map_bump": TextureNormal,
	"bump":     TextureNormal,
	"norm":     TextureNormal,
	"map_ka":   TextureAmbient,
	"map_d":    TextureUnknown,
}

func stripComment(s string) string {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i]
	}
	return s
}

// parseFloats reads at least lo and at most hi leading components. Absent
// components up to hi are zero; extra ones are ignored.
func parseFloats(fields []string, lo, hi int) ([]float32, error) {
	if len(fields) < lo {
		return nil, fmt.Errorf("want %d components, got %d", lo, len(fields))
	}
	out := make([]float32, hi)
	for i := 0; i < hi && i < len(fields); i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

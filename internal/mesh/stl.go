package mesh

import (
	"fmt"
	"io"

	"github.com/soypat/sdf/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// TriangleReader streams the faces of a mesh as triangles. It satisfies
// render.Renderer so meshes can go through the library's STL writer.
type TriangleReader struct {
	m    Mesh
	next int
}

var _ render.Renderer = (*TriangleReader)(nil)

// Triangles returns a reader positioned at the first face.
func (m Mesh) Triangles() *TriangleReader {
	return &TriangleReader{m: m}
}

// ReadTriangles fills t with the next faces. It returns io.EOF once every face has been read.
func (r *TriangleReader) ReadTriangles(t []r3.Triangle) (int, error) {
	if r.next >= len(r.m.Faces) {
		return 0, io.EOF
	}
	n := 0
	for n < len(t) && r.next < len(r.m.Faces) {
		t[n] = r.m.Triangle(r.next)
		n++
		r.next++
	}
	return n, nil
}

// WriteSTL writes the mesh to an STL file at path.
func (m Mesh) WriteSTL(path string) error {
	if err := render.CreateSTL(path, m.Triangles()); err != nil {
		return fmt.Errorf("%s: write stl: %w", m.Name, err)
	}
	return nil
}

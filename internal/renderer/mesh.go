package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// floatsPerVertex is position (3) followed by normal (3).
const floatsPerVertex = 6

// Mesh is an uploaded, non-indexed triangle list.
type Mesh struct {
	VAO         uint32 // Vertex Array Object
	VBO         uint32 // Vertex Buffer Object
	VertexCount int32
}

// CubeVertices returns a unit cube centered on the origin as interleaved
// position/normal triangles with counter-clockwise front faces.
func CubeVertices() []float32 {
	type face struct {
		normal  [3]float32
		corners [4][3]float32 // counter-clockwise seen from outside
	}
	faces := []face{
		{[3]float32{0, 0, 1}, [4][3]float32{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
	}

	vertices := make([]float32, 0, len(faces)*6*floatsPerVertex)
	for _, f := range faces {
		for _, idx := range [6]int{0, 1, 2, 0, 2, 3} {
			c := f.corners[idx]
			vertices = append(vertices, c[0], c[1], c[2], f.normal[0], f.normal[1], f.normal[2])
		}
	}
	return vertices
}

// NewMesh uploads interleaved position/normal vertices. Requires a current GL context.
func NewMesh(vertices []float32) *Mesh {
	mesh := &Mesh{VertexCount: int32(len(vertices) / floatsPerVertex)}

	gl.GenVertexArrays(1, &mesh.VAO)
	gl.BindVertexArray(mesh.VAO)

	gl.GenBuffers(1, &mesh.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return mesh
}

func (m *Mesh) Draw() {
	gl.BindVertexArray(m.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, m.VertexCount)
	gl.BindVertexArray(0)
}

func (m *Mesh) Delete() {
	if m.VAO == 0 {
		return
	}
	gl.DeleteBuffers(1, &m.VBO)
	gl.DeleteVertexArrays(1, &m.VAO)
	m.VAO, m.VBO = 0, 0
}

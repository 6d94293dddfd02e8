// Package mesh uploads interleaved vertex data into VAO/VBO/EBO objects.
package mesh

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Layout lists the float count of each vertex attribute, in location order.
// {3, 3, 2} means location 0 is a vec3, 1 a vec3 and 2 a vec2.
type Layout []int

// Stride returns the number of floats per vertex.
func (l Layout) Stride() int {
	n := 0
	for _, c := range l {
		n += c
	}
	return n
}

// Validate checks that data holds a whole number of vertices for l.
func (l Layout) Validate(vertexFloats int) error {
	if len(l) == 0 {
		return fmt.Errorf("empty vertex layout")
	}
	for i, c := range l {
		if c < 1 || c > 4 {
			return fmt.Errorf("attribute %d has %d components, want 1-4", i, c)
		}
	}
	stride := l.Stride()
	if vertexFloats == 0 || vertexFloats%stride != 0 {
		return fmt.Errorf("%d floats is not a multiple of stride %d", vertexFloats, stride)
	}
	return nil
}

// Data is CPU-side geometry. Indices may be empty for non-indexed draws.
type Data struct {
	Vertices []float32
	Indices  []uint32
	Layout   Layout
}

// Count returns the number of elements Draw will submit.
func (d Data) Count() int {
	if len(d.Indices) > 0 {
		return len(d.Indices)
	}
	if s := d.Layout.Stride(); s > 0 {
		return len(d.Vertices) / s
	}
	return 0
}

// Mesh is uploaded geometry.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
	indexed       bool
}

// New uploads d. Must be called with the GL context current.
func New(d Data) (*Mesh, error) {
	if err := d.Layout.Validate(len(d.Vertices)); err != nil {
		return nil, err
	}

	m := &Mesh{count: int32(d.Count()), indexed: len(d.Indices) > 0}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(d.Vertices)*4, gl.Ptr(d.Vertices), gl.STATIC_DRAW)

	if m.indexed {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(d.Indices)*4, gl.Ptr(d.Indices), gl.STATIC_DRAW)
	}

	stride := int32(d.Layout.Stride() * 4)
	offset := 0
	for loc, comps := range d.Layout {
		gl.VertexAttribPointerWithOffset(uint32(loc), int32(comps), gl.FLOAT, false, stride, uintptr(offset*4))
		gl.EnableVertexAttribArray(uint32(loc))
		offset += comps
	}

	// The element buffer binding is VAO state, so only the array buffer is unbound.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return m, nil
}

// Draw binds the mesh and issues one triangle draw call.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	if m.indexed {
		gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}
	gl.BindVertexArray(0)
}

// Delete releases the GL objects.
func (m *Mesh) Delete() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	m.vao, m.vbo, m.ebo = 0, 0, 0
}

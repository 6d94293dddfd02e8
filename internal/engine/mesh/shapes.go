package mesh

// Triangle is a position+color triangle.
func Triangle() Data {
	return Data{
		Vertices: []float32{
			// positions      // colors
			0.5, -0.5, 0.0, 1.0, 0.0, 0.0, // bottom right
			-0.5, -0.5, 0.0, 0.0, 1.0, 0.0, // bottom left
			0.0, 0.5, 0.0, 0.0, 0.0, 1.0, // top
		},
		Layout: Layout{3, 3},
	}
}

// ColoredQuad is a position+color+texcoord quad drawn as two triangles.
func ColoredQuad() Data {
	return Data{
		Vertices: []float32{
			// positions      // colors     // texture coords
			0.5, 0.5, 0.0, 1.0, 0.0, 0.0, 1.0, 1.0, // top right
			0.5, -0.5, 0.0, 0.0, 1.0, 0.0, 1.0, 0.0, // bottom right
			-0.5, -0.5, 0.0, 0.0, 0.0, 1.0, 0.0, 0.0, // bottom left
			-0.5, 0.5, 0.0, 1.0, 1.0, 0.0, 0.0, 1.0, // top left
		},
		Indices: quadIndices(),
		Layout:  Layout{3, 3, 2},
	}
}

// TexturedQuad is a position+texcoord quad drawn as two triangles.
func TexturedQuad() Data {
	return Data{
		Vertices: []float32{
			// positions      // texture coords
			0.5, 0.5, 0.0, 1.0, 1.0, // top right
			0.5, -0.5, 0.0, 1.0, 0.0, // bottom right
			-0.5, -0.5, 0.0, 0.0, 0.0, // bottom left
			-0.5, 0.5, 0.0, 0.0, 1.0, // top left
		},
		Indices: quadIndices(),
		Layout:  Layout{3, 2},
	}
}

func quadIndices() []uint32 {
	return []uint32{
		0, 1, 3, // first triangle
		1, 2, 3, // second triangle
	}
}

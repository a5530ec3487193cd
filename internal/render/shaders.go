package render

// GLSL ES 1.00 sources for the x/mobile renderer.
const (
	vertexSrcES = `
uniform vec2 offset;
attribute vec4 position;
void main(void) {
    gl_Position = position + vec4(offset.x, offset.y, 0, 0);
}`

	fragmentSrcES = `
precision mediump float;
void main(void) {
    gl_FragColor = vec4(1, 0, 0, 1);
}`
)

// GLSL 4.10 core sources for the desktop renderer.
const (
	vertexSrcCore = `#version 410 core

layout(location = 0) in vec2 position;

uniform vec2 offset;

void main() {
    gl_Position = vec4(position + offset, 0.0, 1.0);
}
` + "\x00"

	fragmentSrcCore = `#version 410 core

out vec4 FragColor;

void main() {
    FragColor = vec4(1.0, 0.0, 0.0, 1.0);
}
` + "\x00"
)

// squareVertices lays out a triangle strip covering [0,size]x[0,size].
func squareVertices(size float32) []float32 {
	return []float32{
		0, size,
		0, 0,
		size, size,
		size, 0,
	}
}

var squareIndices = []uint8{0, 1, 2, 3}

//go:build !android

package render

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"square/internal/square"
)

// Core draws the square through a desktop OpenGL 4.1 core context. The
// context must be current and gl.Init must have succeeded.
type Core struct {
	program  uint32
	vao      uint32
	vertices uint32
	indices  uint32
	offset   int32
}

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", square.ErrShaderCompile, strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: %s", square.ErrProgramLink, strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}

func (r *Core) CreateResources(size float32, clear [4]float32) error {
	program, err := linkProgram(vertexSrcCore, fragmentSrcCore)
	if err != nil {
		return err
	}
	r.program = program
	r.offset = gl.GetUniformLocation(program, gl.Str("offset\x00"))

	// Core profile needs a VAO to hold the attribute and index bindings.
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	verts := squareVertices(size)
	gl.GenBuffers(1, &r.vertices)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vertices)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(&verts[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.indices)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.indices)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(squareIndices), gl.Ptr(&squareIndices[0]), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	gl.UseProgram(program)
	gl.ClearColor(clear[0], clear[1], clear[2], clear[3])
	return nil
}

func (r *Core) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (r *Core) Draw(x, y float32) {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Uniform2f(r.offset, x, y)
	gl.DrawElements(gl.TRIANGLE_STRIP, int32(len(squareIndices)), gl.UNSIGNED_BYTE, glOffset(0))
}

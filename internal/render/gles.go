//go:build android

package render

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/mobile/gl"

	"square/internal/square"
)

// GLES draws the square through an x/mobile OpenGL ES 2 context.
type GLES struct {
	ctx gl.Context

	program  gl.Program
	vertices gl.Buffer
	indices  gl.Buffer
	offset   gl.Uniform
	position gl.Attrib
}

// Bind switches to ctx. Resources from an earlier surface are not carried
// over; CreateResources must run again before drawing.
func (r *GLES) Bind(ctx gl.Context) {
	r.ctx = ctx
}

func f32bytes(vals []float32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func compileShaderES(glctx gl.Context, kind gl.Enum, src string) (gl.Shader, error) {
	sh := glctx.CreateShader(kind)
	glctx.ShaderSource(sh, src)
	glctx.CompileShader(sh)
	if glctx.GetShaderi(sh, gl.COMPILE_STATUS) == 0 {
		log := glctx.GetShaderInfoLog(sh)
		glctx.DeleteShader(sh)
		return gl.Shader{}, fmt.Errorf("%w: %s", square.ErrShaderCompile, log)
	}
	return sh, nil
}

func linkProgramES(glctx gl.Context, vertSrc, fragSrc string) (gl.Program, error) {
	vs, err := compileShaderES(glctx, gl.VERTEX_SHADER, vertSrc)
	if err != nil {
		return gl.Program{}, err
	}
	fs, err := compileShaderES(glctx, gl.FRAGMENT_SHADER, fragSrc)
	if err != nil {
		glctx.DeleteShader(vs)
		return gl.Program{}, err
	}
	prog := glctx.CreateProgram()
	glctx.AttachShader(prog, vs)
	glctx.AttachShader(prog, fs)
	glctx.LinkProgram(prog)
	glctx.DeleteShader(vs)
	glctx.DeleteShader(fs)
	if glctx.GetProgrami(prog, gl.LINK_STATUS) == 0 {
		log := glctx.GetProgramInfoLog(prog)
		glctx.DeleteProgram(prog)
		return gl.Program{}, fmt.Errorf("%w: %s", square.ErrProgramLink, log)
	}
	return prog, nil
}

func (r *GLES) CreateResources(size float32, clear [4]float32) error {
	glctx := r.ctx
	if glctx == nil {
		return fmt.Errorf("gles: no context bound")
	}
	prog, err := linkProgramES(glctx, vertexSrcES, fragmentSrcES)
	if err != nil {
		return err
	}
	r.program = prog
	r.offset = glctx.GetUniformLocation(prog, "offset")
	r.position = glctx.GetAttribLocation(prog, "position")

	r.vertices = glctx.CreateBuffer()
	glctx.BindBuffer(gl.ARRAY_BUFFER, r.vertices)
	glctx.BufferData(gl.ARRAY_BUFFER, f32bytes(squareVertices(size)), gl.STATIC_DRAW)

	r.indices = glctx.CreateBuffer()
	glctx.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.indices)
	glctx.BufferData(gl.ELEMENT_ARRAY_BUFFER, squareIndices, gl.STATIC_DRAW)

	glctx.EnableVertexAttribArray(r.position)
	glctx.VertexAttribPointer(r.position, 2, gl.FLOAT, false, 2*4, 0)

	glctx.UseProgram(prog)
	glctx.ClearColor(clear[0], clear[1], clear[2], clear[3])
	return nil
}

func (r *GLES) SetViewport(width, height int) {
	r.ctx.Viewport(0, 0, width, height)
}

func (r *GLES) Draw(x, y float32) {
	glctx := r.ctx
	glctx.Clear(gl.COLOR_BUFFER_BIT)
	glctx.Uniform2f(r.offset, x, y)
	glctx.DrawElements(gl.TRIANGLE_STRIP, len(squareIndices), gl.UNSIGNED_BYTE, 0)
}

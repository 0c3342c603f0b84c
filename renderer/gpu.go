package renderer

import (
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// gpu is the slice of the OpenGL surface the resource manager touches. The
// production implementation delegates to go-gl; tests substitute a fake so
// the compile, link and disposal paths run without a live driver.
type gpu interface {
	Init() error

	CreateShader(stage uint32) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32) (ok bool, infoLog string)
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32) (ok bool, infoLog string)
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	UniformLocation(program uint32, name string) int32
	Uniform1f(loc int32, v float32)
	Uniform2f(loc int32, x, y float32)
	Uniform3f(loc int32, v mgl32.Vec3)
	Uniform4f(loc int32, v mgl32.Vec4)

	CreateQuad(vertices []float32) (vao, vbo uint32)
	DeleteQuad(vao, vbo uint32)
	DrawQuad(vao uint32)
	Viewport(width, height int)
	ReadPixels(width, height int) []byte
}

const (
	stageVertexEnum   = gl.VERTEX_SHADER
	stageFragmentEnum = gl.FRAGMENT_SHADER
)

var glInitOnce sync.Once

// openGL is the production backend over go-gl.
type openGL struct{}

func (openGL) Init() error {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	return initErr
}

func (openGL) CreateShader(stage uint32) uint32 {
	return gl.CreateShader(stage)
}

func (openGL) ShaderSource(shader uint32, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (openGL) CompileShader(shader uint32) (bool, string) {
	gl.CompileShader(shader)
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
	return false, strings.TrimRight(logText, "\x00")
}

func (openGL) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (openGL) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (openGL) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (openGL) LinkProgram(program uint32) (bool, string) {
	gl.LinkProgram(program)
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return false, strings.TrimRight(logText, "\x00")
}

func (openGL) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (openGL) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (openGL) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (openGL) Uniform1f(loc int32, v float32) {
	gl.Uniform1f(loc, v)
}

func (openGL) Uniform2f(loc int32, x, y float32) {
	gl.Uniform2f(loc, x, y)
}

func (openGL) Uniform3f(loc int32, v mgl32.Vec3) {
	gl.Uniform3f(loc, v.X(), v.Y(), v.Z())
}

func (openGL) Uniform4f(loc int32, v mgl32.Vec4) {
	gl.Uniform4f(loc, v.X(), v.Y(), v.Z(), v.W())
}

func (openGL) CreateQuad(vertices []float32) (uint32, uint32) {
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

func (openGL) DeleteQuad(vao, vbo uint32) {
	gl.DeleteBuffers(1, &vbo)
	gl.DeleteVertexArrays(1, &vao)
}

func (openGL) DrawQuad(vao uint32) {
	gl.BindVertexArray(vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

func (openGL) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (openGL) ReadPixels(width, height int) []byte {
	buf := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(buf))
	return buf
}

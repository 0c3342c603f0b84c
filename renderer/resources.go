package renderer

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
)

// Full-screen quad, triangle strip order.
var quadVertices = []float32{
	-1.0, -1.0,
	1.0, -1.0,
	-1.0, 1.0,
	1.0, 1.0,
}

// compiledProgram owns one linked GPU program, its uniform-location cache,
// and the content hash of the source it was built from.
type compiledProgram struct {
	handle     uint32
	locations  map[string]int32
	sourceHash uint64
}

// Resources owns all GPU state for one runtime instance: the shared quad
// geometry (created once per context) and the currently bound program. It is
// bound to a single context and must only be used from the thread that owns
// it.
type Resources struct {
	gpu      gpu
	quadVAO  uint32
	quadVBO  uint32
	prog     *compiledProgram
	disposed bool
}

func newResources(g gpu) (*Resources, error) {
	if err := g.Init(); err != nil {
		return nil, &ContextUnavailableError{Reason: err.Error()}
	}
	vao, vbo := g.CreateQuad(quadVertices)
	return &Resources{gpu: g, quadVAO: vao, quadVBO: vbo}, nil
}

// Ensure recompiles only when hash differs from the bound program's recorded
// hash, or when force is set. On any compile or link failure the previously
// bound program is left untouched and drawable; on success the old handle is
// freed before the new one is put into use.
func (r *Resources) Ensure(vertexSrc, fragmentSrc string, hash uint64, force bool) (bool, error) {
	if r.disposed {
		return false, nil
	}
	if !force && r.prog != nil && r.prog.sourceHash == hash {
		return false, nil
	}

	handle, err := r.compileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return false, err
	}

	if r.prog != nil {
		r.gpu.DeleteProgram(r.prog.handle)
	}
	r.prog = &compiledProgram{
		handle:     handle,
		locations:  make(map[string]int32),
		sourceHash: hash,
	}
	r.gpu.UseProgram(handle)
	return true, nil
}

func (r *Resources) compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vs, err := r.compileStage(vertexSrc, StageVertex, stageVertexEnum)
	if err != nil {
		return 0, err
	}
	fs, err := r.compileStage(fragmentSrc, StageFragment, stageFragmentEnum)
	if err != nil {
		r.gpu.DeleteShader(vs)
		return 0, err
	}

	program := r.gpu.CreateProgram()
	r.gpu.AttachShader(program, vs)
	r.gpu.AttachShader(program, fs)
	ok, infoLog := r.gpu.LinkProgram(program)
	r.gpu.DeleteShader(vs)
	r.gpu.DeleteShader(fs)
	if !ok {
		r.gpu.DeleteProgram(program)
		return 0, &ShaderLinkError{Log: infoLog}
	}
	return program, nil
}

func (r *Resources) compileStage(src string, stage ShaderStage, stageEnum uint32) (uint32, error) {
	shader := r.gpu.CreateShader(stageEnum)
	r.gpu.ShaderSource(shader, src)
	ok, infoLog := r.gpu.CompileShader(shader)
	if !ok {
		r.gpu.DeleteShader(shader)
		return 0, &ShaderCompileError{Stage: stage, Log: infoLog}
	}
	return shader, nil
}

// HasProgram reports whether a drawable program is bound.
func (r *Resources) HasProgram() bool {
	return r.prog != nil
}

// SourceHash returns the content hash of the bound program, 0 when none.
func (r *Resources) SourceHash() uint64 {
	if r.prog == nil {
		return 0
	}
	return r.prog.sourceHash
}

// Use makes the bound program current; call before a batch of uniform
// uploads.
func (r *Resources) Use() {
	if r.disposed || r.prog == nil {
		return
	}
	r.gpu.UseProgram(r.prog.handle)
}

// location resolves a uniform location once per program and caches it by
// name, including misses (-1).
func (r *Resources) location(name string) int32 {
	if r.prog == nil {
		return -1
	}
	if loc, ok := r.prog.locations[name]; ok {
		return loc
	}
	loc := r.gpu.UniformLocation(r.prog.handle, name)
	if loc == -1 {
		log.Printf("gloo renderer: %v", &UnsupportedUniformError{Name: name})
	}
	r.prog.locations[name] = loc
	return loc
}

// SetFloat uploads a float uniform. Uploading to a uniform absent from the
// compiled program is a silent no-op, not an error.
func (r *Resources) SetFloat(name string, v float32) {
	if r.disposed {
		return
	}
	if loc := r.location(name); loc != -1 {
		r.gpu.Uniform1f(loc, v)
	}
}

func (r *Resources) SetVec2(name string, x, y float32) {
	if r.disposed {
		return
	}
	if loc := r.location(name); loc != -1 {
		r.gpu.Uniform2f(loc, x, y)
	}
}

func (r *Resources) SetVec3(name string, v mgl32.Vec3) {
	if r.disposed {
		return
	}
	if loc := r.location(name); loc != -1 {
		r.gpu.Uniform3f(loc, v)
	}
}

func (r *Resources) SetVec4(name string, v mgl32.Vec4) {
	if r.disposed {
		return
	}
	if loc := r.location(name); loc != -1 {
		r.gpu.Uniform4f(loc, v)
	}
}

// Draw renders the quad with the bound program at the given pixel size.
func (r *Resources) Draw(width, height int) {
	if r.disposed || r.prog == nil {
		return
	}
	r.gpu.UseProgram(r.prog.handle)
	r.gpu.Viewport(width, height)
	r.gpu.DrawQuad(r.quadVAO)
}

// ReadPixels reads back the current framebuffer contents as RGBA bytes.
func (r *Resources) ReadPixels(width, height int) []byte {
	if r.disposed {
		return nil
	}
	return r.gpu.ReadPixels(width, height)
}

// Dispose frees the program and quad geometry and detaches from the context.
// Idempotent: a second call is a no-op.
func (r *Resources) Dispose() {
	if r.disposed {
		return
	}
	if r.prog != nil {
		r.gpu.DeleteProgram(r.prog.handle)
		r.prog = nil
	}
	r.gpu.DeleteQuad(r.quadVAO, r.quadVBO)
	r.disposed = true
}

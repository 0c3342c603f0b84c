package renderer

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// fakeGPU implements the gpu interface in memory so compile, link and
// disposal paths can run under go test without a driver.
type fakeGPU struct {
	failFragmentCompile bool
	failVertexCompile   bool
	failLink            bool

	nextID       uint32
	shaderStages map[uint32]uint32
	liveShaders  map[uint32]bool
	livePrograms map[uint32]bool

	uniforms        map[string]int32 // uniforms present in every linked program
	locationQueries map[string]int

	compileCalls int
	drawCalls    int
	usedProgram  uint32
	quadAlive    bool
	quadDeletes  int

	lastFloat map[int32]float32
}

func newFakeGPU() *fakeGPU {
	return &fakeGPU{
		shaderStages: map[uint32]uint32{},
		liveShaders:  map[uint32]bool{},
		livePrograms: map[uint32]bool{},
		uniforms: map[string]int32{
			"uTime":       1,
			"uResolution": 2,
			"uColor1":     3,
			"uColor2":     4,
			"uColor3":     5,
			"uTint":       6,
		},
		locationQueries: map[string]int{},
		lastFloat:       map[int32]float32{},
	}
}

func (f *fakeGPU) Init() error { return nil }

func (f *fakeGPU) CreateShader(stage uint32) uint32 {
	f.nextID++
	f.shaderStages[f.nextID] = stage
	f.liveShaders[f.nextID] = true
	return f.nextID
}

func (f *fakeGPU) ShaderSource(shader uint32, src string) {}

func (f *fakeGPU) CompileShader(shader uint32) (bool, string) {
	f.compileCalls++
	stage := f.shaderStages[shader]
	if stage == stageFragmentEnum && f.failFragmentCompile {
		return false, "fake: fragment rejected"
	}
	if stage == stageVertexEnum && f.failVertexCompile {
		return false, "fake: vertex rejected"
	}
	return true, ""
}

func (f *fakeGPU) DeleteShader(shader uint32) { delete(f.liveShaders, shader) }

func (f *fakeGPU) CreateProgram() uint32 {
	f.nextID++
	f.livePrograms[f.nextID] = true
	return f.nextID
}

func (f *fakeGPU) AttachShader(program, shader uint32) {}

func (f *fakeGPU) LinkProgram(program uint32) (bool, string) {
	if f.failLink {
		return false, "fake: link rejected"
	}
	return true, ""
}

func (f *fakeGPU) DeleteProgram(program uint32) { delete(f.livePrograms, program) }

func (f *fakeGPU) UseProgram(program uint32) { f.usedProgram = program }

func (f *fakeGPU) UniformLocation(program uint32, name string) int32 {
	f.locationQueries[name]++
	if loc, ok := f.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (f *fakeGPU) Uniform1f(loc int32, v float32) { f.lastFloat[loc] = v }
func (f *fakeGPU) Uniform2f(loc int32, x, y float32) {}
func (f *fakeGPU) Uniform3f(loc int32, v mgl32.Vec3) {}
func (f *fakeGPU) Uniform4f(loc int32, v mgl32.Vec4) {}

func (f *fakeGPU) CreateQuad(vertices []float32) (uint32, uint32) {
	f.quadAlive = true
	return 100, 101
}

func (f *fakeGPU) DeleteQuad(vao, vbo uint32) {
	f.quadAlive = false
	f.quadDeletes++
}

func (f *fakeGPU) DrawQuad(vao uint32) { f.drawCalls++ }

func (f *fakeGPU) Viewport(width, height int) {}

func (f *fakeGPU) ReadPixels(width, height int) []byte {
	return make([]byte, width*height*4)
}

const (
	vsGood = "void main() {}"
	fsA    = "fragment A"
	fsB    = "fragment B"
)

func TestEnsureCompilesOnceForUnchangedHash(t *testing.T) {
	f := newFakeGPU()
	r, err := newResources(f)
	if err != nil {
		t.Fatalf("newResources: %v", err)
	}

	recompiled, err := r.Ensure(vsGood, fsA, 11, false)
	if err != nil || !recompiled {
		t.Fatalf("first Ensure = %v, %v; want true, nil", recompiled, err)
	}
	calls := f.compileCalls

	recompiled, err = r.Ensure(vsGood, fsA, 11, false)
	if err != nil || recompiled {
		t.Fatalf("second Ensure = %v, %v; want false, nil", recompiled, err)
	}
	if f.compileCalls != calls {
		t.Fatalf("unchanged hash still hit the driver: %d extra compiles", f.compileCalls-calls)
	}

	recompiled, err = r.Ensure(vsGood, fsA, 11, true)
	if err != nil || !recompiled {
		t.Fatalf("forced Ensure = %v, %v; want true, nil", recompiled, err)
	}
}

func TestEnsureFreesOldProgramOnRecompile(t *testing.T) {
	f := newFakeGPU()
	r, _ := newResources(f)

	if _, err := r.Ensure(vsGood, fsA, 1, false); err != nil {
		t.Fatalf("Ensure A: %v", err)
	}
	if _, err := r.Ensure(vsGood, fsB, 2, false); err != nil {
		t.Fatalf("Ensure B: %v", err)
	}
	if len(f.livePrograms) != 1 {
		t.Fatalf("live programs after recompile = %d; want 1 (old handle freed)", len(f.livePrograms))
	}
	if len(f.liveShaders) != 0 {
		t.Fatalf("leaked %d shader stages", len(f.liveShaders))
	}
}

func TestCompileFailureKeepsPreviousProgram(t *testing.T) {
	f := newFakeGPU()
	r, _ := newResources(f)

	if _, err := r.Ensure(vsGood, fsA, 1, false); err != nil {
		t.Fatalf("good Ensure: %v", err)
	}

	f.failFragmentCompile = true
	_, err := r.Ensure(vsGood, fsB, 2, false)
	var ce *ShaderCompileError
	if !errors.As(err, &ce) {
		t.Fatalf("Ensure with bad fragment = %v; want ShaderCompileError", err)
	}
	if ce.Stage != StageFragment || ce.Log == "" {
		t.Fatalf("compile error missing stage or log: %+v", ce)
	}

	if !r.HasProgram() || r.SourceHash() != 1 {
		t.Fatalf("previous program lost after failed compile (hash=%d)", r.SourceHash())
	}
	r.Draw(64, 64)
	if f.drawCalls != 1 {
		t.Fatalf("previous program not drawable after failed compile")
	}
	if len(f.liveShaders) != 0 {
		t.Fatalf("failed compile leaked %d shader stages", len(f.liveShaders))
	}
	if len(f.livePrograms) != 1 {
		t.Fatalf("failed compile leaked programs: %d live", len(f.livePrograms))
	}
}

func TestLinkFailureReportedAndFreed(t *testing.T) {
	f := newFakeGPU()
	f.failLink = true
	r, _ := newResources(f)

	_, err := r.Ensure(vsGood, fsA, 1, false)
	var le *ShaderLinkError
	if !errors.As(err, &le) {
		t.Fatalf("Ensure with failing link = %v; want ShaderLinkError", err)
	}
	if le.Log == "" {
		t.Fatalf("link error carries no diagnostic")
	}
	if len(f.livePrograms) != 0 || len(f.liveShaders) != 0 {
		t.Fatalf("link failure leaked resources: %d programs, %d shaders",
			len(f.livePrograms), len(f.liveShaders))
	}
	if r.HasProgram() {
		t.Fatalf("half-linked program left bound")
	}
}

func TestUniformLocationCachedAndMissTolerated(t *testing.T) {
	f := newFakeGPU()
	r, _ := newResources(f)
	if _, err := r.Ensure(vsGood, fsA, 1, false); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	r.SetFloat("uTime", 1.0)
	r.SetFloat("uTime", 2.0)
	r.SetFloat("uTime", 3.0)
	if f.locationQueries["uTime"] != 1 {
		t.Fatalf("uTime location resolved %d times; want 1", f.locationQueries["uTime"])
	}
	if f.lastFloat[f.uniforms["uTime"]] != 3.0 {
		t.Fatalf("uTime upload lost")
	}

	// Absent uniform: silent no-op, and the miss is cached too.
	r.SetFloat("uNope", 1.0)
	r.SetFloat("uNope", 2.0)
	if f.locationQueries["uNope"] != 1 {
		t.Fatalf("missing uniform queried %d times; want 1", f.locationQueries["uNope"])
	}
}

func TestDisposeIdempotent(t *testing.T) {
	f := newFakeGPU()
	r, _ := newResources(f)
	if _, err := r.Ensure(vsGood, fsA, 1, false); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	r.Dispose()
	r.Dispose()

	if f.quadDeletes != 1 {
		t.Fatalf("quad deleted %d times; want 1", f.quadDeletes)
	}
	if len(f.livePrograms) != 0 {
		t.Fatalf("dispose leaked programs")
	}

	// Post-dispose calls must not fault or touch the driver.
	r.SetFloat("uTime", 1)
	r.Draw(10, 10)
	if f.drawCalls != 0 {
		t.Fatalf("draw executed after dispose")
	}
	if _, err := r.Ensure(vsGood, fsB, 9, false); err != nil {
		t.Fatalf("Ensure after dispose errored: %v", err)
	}
}

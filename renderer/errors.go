package renderer

import "fmt"

// ShaderStage identifies which compilation stage produced a diagnostic.
type ShaderStage string

const (
	StageVertex   ShaderStage = "vertex"
	StageFragment ShaderStage = "fragment"
)

// ContextUnavailableError means no GPU context could be obtained. The shell
// is expected to fall back to a static presentation.
type ContextUnavailableError struct {
	Reason string
}

func (e *ContextUnavailableError) Error() string {
	return fmt.Sprintf("gpu context unavailable: %s", e.Reason)
}

// ShaderCompileError carries the driver diagnostic for a failed stage.
type ShaderCompileError struct {
	Stage ShaderStage
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

// ShaderLinkError carries the driver diagnostic for a failed program link.
type ShaderLinkError struct {
	Log string
}

func (e *ShaderLinkError) Error() string {
	return fmt.Sprintf("program link failed: %s", e.Log)
}

// UnsupportedUniformError is non-fatal: uploading to a uniform absent from
// the compiled program is tolerated. Logged once per name, never surfaced.
type UnsupportedUniformError struct {
	Name string
}

func (e *UnsupportedUniformError) Error() string {
	return fmt.Sprintf("uniform %q not present in compiled program", e.Name)
}

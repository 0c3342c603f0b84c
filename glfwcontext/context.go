package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/glooviz/gloo/graphics"
)

var (
	_ graphics.Context = (*Context)(nil)
	_ graphics.Surface = (*Context)(nil)
)

// Context wraps one GLFW window and its GL context. It implements both
// graphics.Context (frame pacing) and graphics.Surface (layout/buffer
// sizing) for the runtime.
type Context struct {
	window *glfw.Window
	// Render-buffer dimensions as last set by the sizing controller. The
	// window system owns the real framebuffer; these drive the viewport.
	bufW, bufH int
	// A map to store functions to be called on key presses.
	keyCallbacks map[glfw.Key]func()
}

// New creates and initializes a new GLFW window and returns a Context.
// Hidden windows back the offscreen record mode.
func New(width, height int, title string, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}
	c.bufW, c.bufH = win.GetFramebufferSize()

	win.SetKeyCallback(c.glfwKeyCallback)

	return c, nil
}

// RegisterKeyCallback registers a function to be called when a specific key
// is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}

	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// LayoutSize returns the window's screen-coordinate size, the analogue of a
// CSS layout box.
func (c *Context) LayoutSize() (float64, float64) {
	w, h := c.window.GetSize()
	return float64(w), float64(h)
}

// DevicePixelRatio reports the monitor content scale for the window.
func (c *Context) DevicePixelRatio() float64 {
	sx, _ := c.window.GetContentScale()
	if sx <= 0 {
		return 1
	}
	return float64(sx)
}

// BufferSize returns the render-buffer dimensions the runtime draws at.
func (c *Context) BufferSize() (int, int) {
	return c.bufW, c.bufH
}

// SetBufferSize records the render-buffer dimensions. Only the runtime's
// sizing controller calls this.
func (c *Context) SetBufferSize(width, height int) {
	c.bufW, c.bufH = width, height
}

// Window returns the underlying *glfw.Window.
func (c *Context) Window() *glfw.Window {
	return c.window
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be
// called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from
// the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}

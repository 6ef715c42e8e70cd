package rain

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// initWindow creates the borderless always-on-top overlay sized to the
// primary monitor. The transparent framebuffer lets the translucent clear
// dim the desktop instead of blacking it out; compositors without alpha
// support fall back to an opaque black backdrop.
func initWindow() (*glfw.Window, int, int, error) {
	if err := glfw.Init(); err != nil {
		return nil, 0, 0, fmt.Errorf("glfw init: %w", err)
	}

	monitor := glfw.GetPrimaryMonitor()
	mode := monitor.GetVideoMode()
	w, h := mode.Width, mode.Height

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Decorated, glfw.False)
	glfw.WindowHint(glfw.Floating, glfw.True)
	glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)

	window, err := glfw.CreateWindow(w, h, "Matrix Rain", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, 0, 0, fmt.Errorf("create window: %w", err)
	}
	window.SetPos(0, 0)
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return window, w, h, nil
}

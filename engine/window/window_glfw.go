package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type glfwWindow struct {
	handle  *glfw.Window
	cursors map[Cursor]*glfw.Cursor
	closed  bool
}

func handleOf(w *engineWindow) (*glfwWindow, bool) {
	gw, ok := w.internalWindow.(*glfwWindow)
	return gw, ok && gw != nil && !gw.closed
}

// glfwLimit maps NoLimit and non-positive sizes to glfw.DontCare.
func glfwLimit(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}

// newPlatformWindow opens a GLFW window without a client API (WebGPU owns the surface) and routes its input
// callbacks into w. The calling goroutine is locked to its OS thread for the life of the process.
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	handle, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	handle.SetSizeLimits(glfwLimit(w.minWidth), glfwLimit(w.minHeight), glfwLimit(w.maxWidth), glfwLimit(w.maxHeight))

	w.internalWindow = &glfwWindow{
		handle: handle,
		cursors: map[Cursor]*glfw.Cursor{
			CursorArrow: glfw.CreateStandardCursor(glfw.ArrowCursor),
			CursorHand:  glfw.CreateStandardCursor(glfw.HandCursor),
		},
	}

	handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyUnknown {
			return
		}
		if action == glfw.Release {
			if w.onKeyUp != nil {
				w.onKeyUp(uint32(key))
			}
			return
		}
		if w.onKeyDown != nil {
			w.onKeyDown(uint32(key))
		}
	})

	handle.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := win.GetCursorPos()
		cb := w.onMouseDown
		if action == glfw.Release {
			cb = w.onMouseUp
		}
		if cb != nil {
			cb(int(button), int32(x), int32(y))
		}
	})

	handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if w.onMouseMove != nil {
			w.onMouseMove(int32(x), int32(y))
		}
	})

	// framebuffer size, not window size: the surface is configured in pixels
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
	w.width, w.height = handle.GetFramebufferSize()

	return nil
}

func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw, ok := handleOf(w)
	if !ok {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.handle)
}

func platformSetTitle(w *engineWindow, title string) {
	if gw, ok := handleOf(w); ok {
		gw.handle.SetTitle(title)
	}
}

func platformSetCursor(w *engineWindow, cursor Cursor) {
	if gw, ok := handleOf(w); ok {
		gw.handle.SetCursor(gw.cursors[cursor])
	}
}

func platformIsRunningCheck(w *engineWindow) bool {
	gw, ok := handleOf(w)
	return ok && !gw.handle.ShouldClose()
}

// platformCloseWindow destroys the window, its cursors and the GLFW library state.
func platformCloseWindow(w *engineWindow) error {
	gw, ok := handleOf(w)
	if !ok {
		return fmt.Errorf("window is not initialized")
	}
	gw.closed = true
	for _, c := range gw.cursors {
		c.Destroy()
	}
	gw.handle.Destroy()
	glfw.Terminate()
	return nil
}

// platformProcessMessages drains pending events without blocking.
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}

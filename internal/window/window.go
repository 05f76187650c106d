// Package window provides the glfw surface the frame loop draws into and
// turns its pointer callbacks into attractor events.
package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/san-kum/particles/internal/attractor"
	"github.com/san-kum/particles/internal/config"
	"go.uber.org/zap"
)

var ErrCreate = errors.New("window: cannot create surface")

type Window struct {
	win   *glfw.Window
	queue *attractor.Queue
	title string
	log   *zap.Logger
}

// Open creates a resizable window with a current OpenGL 4.3 core context.
// It locks the calling goroutine to its OS thread; every later call on the
// Window must come from that goroutine.
func Open(cfg config.WindowConfig, queue *attractor.Queue, log *zap.Logger) (*Window, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: glfw init: %v", ErrCreate, err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %v", ErrCreate, err)
	}
	win.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: gl init: %v", ErrCreate, err)
	}

	log.Info("opengl context",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height))

	w := &Window{win: win, queue: queue, title: cfg.Title, log: log}
	win.SetCursorPosCallback(w.onCursor)
	win.SetMouseButtonCallback(w.onButton)
	win.SetKeyCallback(w.onKey)
	return w, nil
}

func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }
func (w *Window) Size() (int, int)  { return w.win.GetSize() }
func (w *Window) SwapBuffers()      { w.win.SwapBuffers() }
func (w *Window) PollEvents()       { glfw.PollEvents() }

func (w *Window) FramebufferSize() (int, int) { return w.win.GetFramebufferSize() }

func (w *Window) Terminate() {
	w.win.Destroy()
	glfw.Terminate()
}

// ShowFrameRate puts the latest frame rate sample in the title bar.
func (w *Window) ShowFrameRate(fps, particles int) {
	w.win.SetTitle(Title(w.title, fps, particles))
}

func (w *Window) onCursor(_ *glfw.Window, x, y float64) {
	w.queue.Push(attractor.Move(float32(x), float32(y)))
}

func (w *Window) onButton(_ *glfw.Window, b glfw.MouseButton, a glfw.Action, _ glfw.ModifierKey) {
	w.queue.Push(attractor.Click(Button(b), Action(a)))
}

func (w *Window) onKey(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		win.SetShouldClose(true)
	}
}

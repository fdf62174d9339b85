package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-freecam/common"
	"github.com/Carmen-Shannon/oxy-freecam/engine/camera"
	"github.com/Carmen-Shannon/oxy-freecam/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// Renderer draws one frame per call of RenderFrame. The frame is cleared to a
// sky/horizon/ground tint chosen from where the camera is looking, which gives
// immediate visual feedback for camera motion without any scene geometry.
type Renderer interface {
	// RenderFrame clears and presents one frame for the camera's current orientation.
	//
	// Parameters:
	//   - cam: the camera whose controller provides the look direction
	//
	// Returns:
	//   - error: error if the swapchain texture could not be acquired
	RenderFrame(cam camera.Camera) error

	// Resize reconfigures the surface. Should be called whenever the framebuffer size changes.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode. Takes effect on the next Resize.
	SetPresentMode(mode PresentMode)

	// SetPalette replaces the sky, horizon and ground colors.
	SetPalette(sky, horizon, ground common.Color)

	// ClearColor returns the color the next frame would be cleared to for cam.
	ClearColor(cam camera.Camera) common.Color

	// Release frees GPU resources. The renderer must not be used afterwards.
	Release()
}

type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	sky, horizon, ground common.Color

	// pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount

	logger       *zap.Logger
	failedFrames int
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing into win's surface. It panics if no GPU adapter or device is available.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new renderer with its surface configured
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		sky:         common.Color{R: 0.25, G: 0.45, B: 0.85, A: 1},
		horizon:     common.Color{R: 0.75, G: 0.82, B: 0.9, A: 1},
		ground:      common.Color{R: 0.2, G: 0.17, B: 0.12, A: 1},
		logger:      zap.NewNop(),
	}

	// options first so forceFallbackAdapter is known before the adapter request
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(win.Width(), win.Height())
	return r
}

func (r *renderer) RenderFrame(cam camera.Camera) error {
	c := r.ClearColor(cam)
	if err := r.backend.BeginFrame(wgpu.Color{R: c.R, G: c.G, B: c.B, A: c.A}); err != nil {
		r.mu.Lock()
		r.failedFrames++
		// the surface is often briefly unavailable during a resize; only report persistent failures
		if r.failedFrames == 60 {
			r.logger.Warn("failed to acquire surface texture", zap.Error(err), zap.Int("frames", r.failedFrames))
		}
		r.mu.Unlock()
		return err
	}
	r.backend.EndFrame()
	r.backend.Present()

	r.mu.Lock()
	r.failedFrames = 0
	r.mu.Unlock()
	return nil
}

func (r *renderer) ClearColor(cam camera.Camera) common.Color {
	r.mu.Lock()
	sky, horizon, ground := r.sky, r.horizon, r.ground
	r.mu.Unlock()

	if cam == nil || cam.Controller() == nil {
		return horizon
	}
	return common.HorizonTint(cam.Controller().Forward(), sky, horizon, ground)
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetPalette(sky, horizon, ground common.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sky, r.horizon, r.ground = sky, horizon, ground
}

func (r *renderer) Release() {
	r.backend.Release()
}

// Package renderer initializes OpenGL for the current context and owns the
// window viewport.
package renderer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/engine/gpu"
	"github.com/Faultbox/campfire/internal/logger"
)

// Required GL version.
const (
	requiredMajor = 4
	requiredMinor = 1
)

// Info describes the GL implementation.
type Info struct {
	Version  string
	Renderer string
	Vendor   string
	GLSL     string
}

// Renderer holds the window-sized viewport.
type Renderer struct {
	dev    gpu.Device
	width  int
	height int
	info   Info
}

// New loads GL function pointers and sets the viewport.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(dev gpu.Device, width, height int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{
		dev:    dev,
		width:  width,
		height: height,
		info: Info{
			Version:  gl.GoStr(gl.GetString(gl.VERSION)),
			Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
			Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
			GLSL:     gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		},
	}

	logger.Info("OpenGL initialized",
		zap.String("version", r.info.Version),
		zap.String("renderer", r.info.Renderer),
		zap.String("vendor", r.info.Vendor),
		zap.String("glsl", r.info.GLSL),
	)

	major, minor, ok := parseVersion(r.info.Version)
	if !ok {
		logger.Warn("unrecognized GL version string", zap.String("version", r.info.Version))
	} else if major < requiredMajor || (major == requiredMajor && minor < requiredMinor) {
		return nil, fmt.Errorf("OpenGL %d.%d required, got %d.%d", requiredMajor, requiredMinor, major, minor)
	}

	dev.Viewport(0, 0, int32(width), int32(height))
	return r, nil
}

// parseVersion reads the leading "major.minor" of a GL_VERSION string such
// as "4.1 Metal - 83.1" or "4.6.0 NVIDIA 535.54".
func parseVersion(s string) (major, minor int, ok bool) {
	head, _, _ := strings.Cut(strings.TrimSpace(s), " ")
	parts := strings.SplitN(head, ".", 3)
	if len(parts) < 2 {
		return 0, 0, false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return major, minor, true
}

// Info returns the GL implementation strings.
func (r *Renderer) Info() Info {
	return r.info
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Aspect returns width / height of the viewport.
func (r *Renderer) Aspect() float32 {
	if r.height == 0 {
		return 1
	}
	return float32(r.width) / float32(r.height)
}

// Resize is reported by the window. The viewport and projection keep their
// startup size; the event is only logged.
func (r *Renderer) Resize(width, height int) {
	logger.Debug("resize ignored",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("viewport_width", r.width),
		zap.Int("viewport_height", r.height),
	)
}

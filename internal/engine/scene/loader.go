package scene

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/assets"
	"github.com/Faultbox/campfire/internal/config"
	"github.com/Faultbox/campfire/internal/engine/gpu"
	"github.com/Faultbox/campfire/internal/engine/lighting"
	"github.com/Faultbox/campfire/internal/engine/model"
	"github.com/Faultbox/campfire/internal/engine/scene/shaders"
	"github.com/Faultbox/campfire/internal/engine/shader"
	"github.com/Faultbox/campfire/internal/engine/shadow"
	"github.com/Faultbox/campfire/internal/engine/texture"
	"github.com/Faultbox/campfire/internal/logger"
	"github.com/Faultbox/campfire/pkg/math"
)

// Load builds the scene described by cfg: shader programs, shadow map, sky,
// objects and the particle renderer. Any failure releases what was created.
func Load(dev gpu.Device, cfg *config.Config, am *assets.Manager) (_ *Scene, err error) {
	var cleanup []func()
	defer func() {
		if err != nil {
			for i := len(cleanup) - 1; i >= 0; i-- {
				cleanup[i]()
			}
		}
	}()

	src := shaders.Source(cfg.Graphics.ShaderDir)

	litProg, err := shader.Link[LitUniform](src, shaders.LitVertex, shaders.LitFragment, LitUniformNames)
	if err != nil {
		return nil, fmt.Errorf("lit shader: %w", err)
	}
	cleanup = append(cleanup, litProg.Delete)

	skyProg, err := shader.Link[SkyUniform](src, shaders.SkyVertex, shaders.SkyFragment, SkyUniformNames)
	if err != nil {
		return nil, fmt.Errorf("sky shader: %w", err)
	}
	cleanup = append(cleanup, skyProg.Delete)

	depthProg, err := shader.Link[shadow.DepthUniform](src, shaders.DepthVertex, shaders.DepthFragment, shadow.DepthUniformNames)
	if err != nil {
		return nil, fmt.Errorf("depth shader: %w", err)
	}
	cleanup = append(cleanup, depthProg.Delete)

	particleProg, err := shader.Link[ParticleUniform](src, shaders.ParticleVertex, shaders.ParticleFragment, ParticleUniformNames)
	if err != nil {
		return nil, fmt.Errorf("particle shader: %w", err)
	}
	cleanup = append(cleanup, particleProg.Delete)

	// A missing shadow map disables shadows instead of failing the scene.
	target, err := shadow.NewMap(cfg.Shadows.Resolution)
	if err != nil {
		logger.Warn("shadow map unavailable", zap.Error(err))
		target = nil
	}
	pass := shadow.NewPass(dev, target, shadow.NewFallbackTexture(), depthProg, cfg.Shadows.Enabled)
	cleanup = append(cleanup, pass.Destroy)

	textures := newTextureCache(am)
	cleanup = append(cleanup, textures.destroy)
	meshes := newMeshCache(am)
	cleanup = append(cleanup, meshes.destroy)

	objects := make([]*Object, 0, len(cfg.Scene.Objects))
	for _, oc := range cfg.Scene.Objects {
		mesh, err := meshes.get(oc.Mesh)
		if err != nil {
			return nil, fmt.Errorf("object %s: %w", oc.Name, err)
		}
		tex, err := textures.get(oc.Texture)
		if err != nil {
			return nil, fmt.Errorf("object %s texture: %w", oc.Name, err)
		}
		objects = append(objects, NewObject(oc, mesh, tex))
	}

	skyMesh, err := meshes.get(cfg.Scene.Sky.Mesh)
	if err != nil {
		return nil, fmt.Errorf("sky: %w", err)
	}
	dayTex, err := textures.get(cfg.Scene.Sky.Day)
	if err != nil {
		return nil, fmt.Errorf("sky day texture: %w", err)
	}
	nightTex, err := textures.get(cfg.Scene.Sky.Night)
	if err != nil {
		return nil, fmt.Errorf("sky night texture: %w", err)
	}
	sky := NewSky(dev, skyProg, skyMesh, dayTex, nightTex, cfg.Scene.Sky.Rotation)

	particles := NewParticleRenderer(dev, particleProg, cfg.Particles.Capacity)
	cleanup = append(cleanup, particles.Destroy)

	env := lighting.NewEnvironment(math.FromArray(cfg.Scene.LightDir), cfg.Scene.LightColor)
	fire := lighting.NewFireLight(math.FromArray(cfg.Scene.Emitter))

	s := New(dev, Stages{
		Shadow:  pass,
		Sky:     sky,
		Lit:     NewLitRenderer(dev, litProg),
		Overlay: particles,
	}, objects, env, fire, cfg.Shadows.Padding)
	s.Toggles.Night = cfg.Scene.StartNight
	s.programs = []reloadable{litProg, skyProg, depthProg, particleProg}
	s.cleanup = cleanup

	initState(dev)

	logger.Info("scene loaded",
		zap.Int("objects", len(objects)),
		zap.Int("shadow_casters", len(s.casters)),
		zap.Int("meshes", len(meshes.meshes)),
		zap.Int("textures", len(textures.ids)),
		zap.Stringer("shadows", pass.State()))
	return s, nil
}

// initState sets the state every pass expects to find and leave behind.
func initState(dev gpu.Device) {
	gl.ClearColor(0.02, 0.02, 0.04, 1)
	gl.DepthFunc(gl.LESS)
	dev.Enable(gl.DEPTH_TEST)
	dev.DepthMask(true)
	dev.Enable(gl.CULL_FACE)
	dev.CullFace(gl.BACK)
	dev.Disable(gl.BLEND)
	dev.BlendFunc(gl.ONE, gl.ZERO)
}

// textureCache uploads each texture path once. Objects without a texture
// path share a white texture; a path that cannot be read or decoded is an
// error.
type textureCache struct {
	am    *assets.Manager
	ids   map[string]uint32
	white uint32

	upload func(*image.RGBA) uint32
	solid  func() uint32
}

func newTextureCache(am *assets.Manager) *textureCache {
	return &textureCache{
		am:     am,
		ids:    make(map[string]uint32),
		upload: texture.Upload,
		solid:  func() uint32 { return texture.Solid(255, 255, 255, 255) },
	}
}

func (c *textureCache) get(path string) (uint32, error) {
	if path == "" {
		return c.fallback(), nil
	}
	if id, ok := c.ids[path]; ok {
		return id, nil
	}
	img, err := decodeTexture(c.am, path)
	if err != nil {
		return 0, err
	}
	id := c.upload(img)
	c.ids[path] = id
	return id, nil
}

// decodeTexture reads and decodes path, flipped for GL's bottom-left origin.
func decodeTexture(am *assets.Manager, path string) (*image.RGBA, error) {
	data, err := am.Load(path)
	if err != nil {
		return nil, err
	}
	img, err := texture.Decode(data, path)
	if err != nil {
		return nil, err
	}
	texture.FlipVertical(img)
	return img, nil
}

func (c *textureCache) fallback() uint32 {
	if c.white == 0 {
		c.white = c.solid()
	}
	return c.white
}

func (c *textureCache) destroy() {
	for path, id := range c.ids {
		texture.Delete(id)
		delete(c.ids, path)
	}
	if c.white != 0 {
		texture.Delete(c.white)
		c.white = 0
	}
}

// meshCache uploads each mesh path once.
type meshCache struct {
	am     *assets.Manager
	meshes map[string]*model.GPUMesh
}

func newMeshCache(am *assets.Manager) *meshCache {
	return &meshCache{am: am, meshes: make(map[string]*model.GPUMesh)}
}

func (c *meshCache) get(path string) (*model.GPUMesh, error) {
	if m, ok := c.meshes[path]; ok {
		return m, nil
	}
	full, err := c.am.Resolve(path)
	if err != nil {
		return nil, err
	}
	mesh, err := model.Load(full)
	if err != nil {
		return nil, err
	}
	gm := model.Upload(mesh)
	logger.Debug("mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int32("indices", gm.IndexCount))
	c.meshes[path] = gm
	return gm, nil
}

func (c *meshCache) destroy() {
	for path, m := range c.meshes {
		m.Destroy()
		delete(c.meshes, path)
	}
}

package systems

import (
	"fmt"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/renderer"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

// ImageSource decodes an image asset by name. *assets.AssetManager is one.
type ImageSource interface {
	LoadImage(name string) (*metadata.ImageResourceData, error)
}

type TextureSystemConfig struct {
	/** @brief The maximum number of textures that can be loaded at once. */
	MaxTextureCount uint32
}

type TextureReference struct {
	ReferenceCount uint64
	Texture        *metadata.Texture
}

/**
 * @brief TextureSystem shares textures by name. Every Acquire of a name adds
 * a reference, every Release drops one, and the GPU texture is deleted when
 * the last reference goes. The Pixel texture is a shared 1x1 white texture
 * that is never reference counted.
 */
type TextureSystem struct {
	Config *TextureSystemConfig
	// Hashtable for texture lookups.
	RegisteredTextureTable map[string]*TextureReference

	pixel  *metadata.Texture
	images ImageSource
	device renderer.Device
}

func NewTextureSystem(config *TextureSystemConfig, images ImageSource, device renderer.Device) (*TextureSystem, error) {
	if config.MaxTextureCount == 0 {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureCount must be > 0: %w", core.ErrInvalidValue)
		core.LogError("%s", err)
		return nil, err
	}
	return &TextureSystem{
		Config:                 config,
		RegisteredTextureTable: make(map[string]*TextureReference),
		images:                 images,
		device:                 device,
	}, nil
}

// Initialize uploads the Pixel texture.
func (ts *TextureSystem) Initialize() error {
	ts.pixel = &metadata.Texture{
		ID:     core.NewID(),
		Name:   metadata.PIXEL_TEXTURE_NAME,
		Handle: ts.device.CreateTexture(1, 1, []uint8{255, 255, 255, 255}),
		Width:  1,
		Height: 1,
	}
	return nil
}

func (ts *TextureSystem) Pixel() *metadata.Texture {
	return ts.pixel
}

func (ts *TextureSystem) Acquire(name string) (*metadata.Texture, error) {
	if name == metadata.PIXEL_TEXTURE_NAME && ts.pixel != nil {
		return ts.pixel, nil
	}
	if ref, ok := ts.RegisteredTextureTable[name]; ok {
		ref.ReferenceCount++
		return ref.Texture, nil
	}
	if uint32(len(ts.RegisteredTextureTable)) >= ts.Config.MaxTextureCount {
		err := fmt.Errorf("func Acquire - texture limit %d reached loading `%s`: %w", ts.Config.MaxTextureCount, name, core.ErrIndexOutOfRange)
		core.LogError("%s", err)
		return nil, err
	}
	texture := &metadata.Texture{ID: core.NewID(), Name: name}
	if err := ts.LoadTexture(name, texture); err != nil {
		return nil, err
	}
	ts.RegisteredTextureTable[name] = &TextureReference{ReferenceCount: 1, Texture: texture}
	core.LogDebug("texture `%s` loaded (%vx%v)", name, texture.Width, texture.Height)
	return texture, nil
}

func (ts *TextureSystem) Release(texture *metadata.Texture) {
	if texture == nil || texture == ts.pixel {
		return
	}
	ref, ok := ts.RegisteredTextureTable[texture.Name]
	if !ok || ref.Texture != texture {
		core.LogWarn("func Release - texture `%s` is not registered", texture.Name)
		return
	}
	ref.ReferenceCount--
	if ref.ReferenceCount > 0 {
		return
	}
	ts.DestroyTexture(texture)
	delete(ts.RegisteredTextureTable, texture.Name)
	core.LogDebug("texture `%s` released", texture.Name)
}

func (ts *TextureSystem) ReferenceCount(name string) uint64 {
	if ref, ok := ts.RegisteredTextureTable[name]; ok {
		return ref.ReferenceCount
	}
	return 0
}

// LoadTexture decodes name and uploads it into texture, replacing any GPU
// texture it already held.
func (ts *TextureSystem) LoadTexture(name string, texture *metadata.Texture) error {
	if ts.images == nil {
		err := fmt.Errorf("func LoadTexture - no image source for `%s`: %w", name, core.ErrServiceUnavailable)
		core.LogError("%s", err)
		return err
	}
	img, err := ts.images.LoadImage(name)
	if err != nil {
		return fmt.Errorf("func LoadTexture - %w", err)
	}
	handle := ts.device.CreateTexture(int(img.Width), int(img.Height), img.Pixels)
	if texture.Handle != 0 {
		ts.device.DeleteTexture(texture.Handle)
	}
	texture.Handle = handle
	texture.Width = float32(img.Width)
	texture.Height = float32(img.Height)
	texture.Generation++
	return nil
}

// Reload re-reads a registered texture in place; drawables holding it keep
// their pointer and pick up the new handle on the next draw.
func (ts *TextureSystem) Reload(name string) error {
	ref, ok := ts.RegisteredTextureTable[name]
	if !ok {
		return fmt.Errorf("func Reload - texture `%s`: %w", name, core.ErrNotFound)
	}
	return ts.LoadTexture(name, ref.Texture)
}

func (ts *TextureSystem) DestroyTexture(texture *metadata.Texture) {
	if texture.Handle != 0 {
		ts.device.DeleteTexture(texture.Handle)
	}
	texture.Handle = 0
}

func (ts *TextureSystem) Shutdown() error {
	for name, ref := range ts.RegisteredTextureTable {
		if ref.ReferenceCount > 0 {
			core.LogWarn("texture `%s` still has %d references at shutdown", name, ref.ReferenceCount)
		}
		ts.DestroyTexture(ref.Texture)
	}
	ts.RegisteredTextureTable = make(map[string]*TextureReference)
	if ts.pixel != nil {
		ts.DestroyTexture(ts.pixel)
		ts.pixel = nil
	}
	return nil
}

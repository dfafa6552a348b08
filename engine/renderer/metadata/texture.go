package metadata

import "github.com/google/uuid"

const (
	/** @brief The name of the shared 1x1 white texture. */
	PIXEL_TEXTURE_NAME string = "Pixel"
)

/** @brief A GPU-side texture handle. 0 is never a valid handle. */
type TextureHandle uint32

/**
 * @brief Represents a texture. Textures are shared between drawables and are
 * reference counted by name in the texture system.
 */
type Texture struct {
	/** @brief The unique texture identifier. */
	ID uuid.UUID
	/** @brief The texture Name, usually the file path it was loaded from. */
	Name string
	/** @brief The GPU handle the backend created for this texture. */
	Handle TextureHandle
	/** @brief The texture Width in pixels. */
	Width float32
	/** @brief The texture Height in pixels. */
	Height float32
	/** @brief The texture Generation. Incremented every time the data is reloaded. */
	Generation uint32
}

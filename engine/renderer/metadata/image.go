package metadata

/**
 * @brief A structure to hold image resource data. Pixels are always
 * 8-bit RGBA, rows top to bottom unless the image was flipped on load.
 */
type ImageResourceData struct {
	/** @brief The number of channels. Always 4 after decoding. */
	ChannelCount uint8
	/** @brief The width of the image. */
	Width uint32
	/** @brief The height of the image. */
	Height uint32
	/** @brief The pixel data of the image. */
	Pixels []uint8
}

/** @brief Parameters used when loading an image. */
type ImageResourceParams struct {
	/** @brief Indicates if the image should be flipped on the y-axis when loaded. */
	FlipY bool
}

/** @brief Parameters used when loading a shader program. */
type ShaderResourceParams struct {
	/** @brief Path of the fragment stage; the load path is the vertex stage. */
	FragmentPath string
}

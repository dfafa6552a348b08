package metadata

/** @brief A linked GPU program handle. */
type ProgramHandle uint32

/** @brief A GPU buffer handle (vertex or index). */
type BufferHandle uint32

/**
 * @brief Fixed attribute locations shared by every sprite program.
 */
const (
	ATTRIB_POSITION uint32 = 0
	ATTRIB_UV       uint32 = 1
	ATTRIB_COLOUR   uint32 = 2
)

/**
 * @brief Fixed uniform locations shared by every sprite program.
 */
const (
	UNIFORM_WVP     int32 = 0
	UNIFORM_TEXTURE int32 = 1
)

const (
	ATTRIB_POSITION_NAME string = "a_Position"
	ATTRIB_UV_NAME       string = "a_TexCoord"
	ATTRIB_COLOUR_NAME   string = "a_Colour"
	UNIFORM_WVP_NAME     string = "u_WVPMatrix"
	UNIFORM_TEXTURE_NAME string = "uTexture"
)

/**
 * @brief Shader stage sources for one program.
 */
type ShaderSource struct {
	Name     string
	Vertex   string
	Fragment string
}

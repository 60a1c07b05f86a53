package texture

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/mazewalk/internal/logger"
)

// CubeFaces is the number of cubemap faces: +X, -X, +Y, -Y, +Z, -Z.
const CubeFaces = 6

// Load2D decodes an image file and uploads it as a mipmapped, repeating 2D texture.
func Load2D(path string) (uint32, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return 0, err
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	upload(gl.TEXTURE_2D, img)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	logger.Debug("texture loaded",
		zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return tex, nil
}

// LoadCubemap uploads six face images in +X, -X, +Y, -Y, +Z, -Z order.
func LoadCubemap(faces []string) (uint32, error) {
	if len(faces) != CubeFaces {
		return 0, fmt.Errorf("cubemap needs %d faces, got %d", CubeFaces, len(faces))
	}

	imgs := make([]*image.RGBA, CubeFaces)
	for i, path := range faces {
		img, err := DecodeFile(path)
		if err != nil {
			return 0, fmt.Errorf("cubemap face %d: %w", i, err)
		}
		imgs[i] = img
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, tex)
	for i, img := range imgs {
		upload(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), img)
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	logger.Debug("cubemap loaded", zap.Strings("faces", faces))
	return tex, nil
}

// Delete releases a texture.
func Delete(tex uint32) {
	if tex != 0 {
		gl.DeleteTextures(1, &tex)
	}
}

func upload(target uint32, img *image.RGBA) {
	b := img.Bounds()
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(target, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
}

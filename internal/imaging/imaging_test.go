package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcess_ReencodesAsWebP(t *testing.T) {
	res, err := Process(bytes.NewReader(pngBytes(t, 100, 80)))
	require.NoError(t, err)

	assert.Equal(t, "image/webp", res.MIME)

	img, err := webp.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestProcess_DownscalesLargeImages(t *testing.T) {
	res, err := Process(bytes.NewReader(pngBytes(t, 1024, 768)))
	require.NoError(t, err)

	img, err := webp.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, 512, img.Bounds().Dx())
	assert.Equal(t, 384, img.Bounds().Dy())
}

func TestProcess_RejectsNonImages(t *testing.T) {
	_, err := Process(bytes.NewReader([]byte("<html>not an image</html>")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image format")
}

func TestProcess_RejectsOversizedUploads(t *testing.T) {
	padded := append(pngBytes(t, 10, 10), bytes.Repeat([]byte{0}, MaxUploadBytes)...)

	_, err := Process(bytes.NewReader(padded))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

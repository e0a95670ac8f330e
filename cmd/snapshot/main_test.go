package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testOptions() options {
	return options{width: 160, height: 120, frames: 30, seed: 9, background: true}
}

func TestRenderIsDeterministic(t *testing.T) {
	a, err := render(testOptions(), zap.NewNop())
	require.NoError(t, err)
	b, err := render(testOptions(), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 160, a.Bounds().Dx())
	assert.Equal(t, 120, a.Bounds().Dy())
	assert.True(t, bytes.Equal(a.Pix, b.Pix), "same seed renders the same image")

	o := testOptions()
	o.seed = 10
	c, err := render(o, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a.Pix, c.Pix), "different seed renders a different image")
}

func TestRenderBackground(t *testing.T) {
	o := testOptions()
	img, err := render(o, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, uint8(255), img.RGBAAt(0, 0).A, "gradient is opaque")

	o.background = false
	o.frames = 1
	bare, err := render(o, zap.NewNop())
	require.NoError(t, err)
	translucent := 0
	for i := 3; i < len(bare.Pix); i += 4 {
		if bare.Pix[i] < 255 {
			translucent++
		}
	}
	assert.Greater(t, translucent, len(bare.Pix)/8, "one trail pass alone is mostly translucent")
}

func TestRenderRejectsBadOptions(t *testing.T) {
	o := testOptions()
	o.width = 0
	_, err := render(o, zap.NewNop())
	assert.Error(t, err)

	o = testOptions()
	o.frames = 0
	_, err = render(o, zap.NewNop())
	assert.Error(t, err)
}

func TestWritePNG(t *testing.T) {
	img, err := render(testOptions(), zap.NewNop())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, writePNG(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

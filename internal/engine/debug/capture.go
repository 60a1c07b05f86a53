// Package debug provides frame capture for recording and snapshots.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/mazewalk/internal/logger"
)

// Capture writes framebuffer contents to PNG files. Recorded frames are
// numbered in sequence; snapshots are timestamped.
type Capture struct {
	dir    string
	prefix string
	seq    int
	now    func() time.Time
}

// NewCapture creates a capture writing into dir with the given file prefix.
func NewCapture(dir, prefix string) *Capture {
	return &Capture{dir: dir, prefix: prefix, now: time.Now}
}

// Frames returns the number of sequenced frames written so far.
func (c *Capture) Frames() int {
	return c.seq
}

// FrameName returns the file name for sequence number n.
func (c *Capture) FrameName(n int) string {
	return filepath.Join(c.dir, fmt.Sprintf("%s_%05d.png", c.prefix, n))
}

// SnapshotName returns a timestamped file name.
func (c *Capture) SnapshotName() string {
	ts := c.now().Format("2006-01-02_15-04-05")
	return filepath.Join(c.dir, fmt.Sprintf("%s_snapshot_%s.png", c.prefix, ts))
}

// Frame writes the next sequenced frame from bottom-up RGBA pixels.
func (c *Capture) Frame(pixels []byte, width, height int) (string, error) {
	name := c.FrameName(c.seq)
	if err := c.write(name, pixels, width, height); err != nil {
		return "", err
	}
	c.seq++
	return name, nil
}

// Snapshot writes a single timestamped frame from bottom-up RGBA pixels.
func (c *Capture) Snapshot(pixels []byte, width, height int) (string, error) {
	name := c.SnapshotName()
	if err := c.write(name, pixels, width, height); err != nil {
		return "", err
	}
	logger.Info("snapshot saved", zap.String("path", name))
	return name, nil
}

func (c *Capture) write(name string, pixels []byte, width, height int) error {
	img, err := FlipRGBA(pixels, width, height)
	if err != nil {
		return err
	}

	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// FlipRGBA builds an image from OpenGL pixel rows, whose origin is bottom-left.
func FlipRGBA(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

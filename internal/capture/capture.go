// Package capture takes the screenshot attached to a card.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/kbinani/screenshot"

	"github.com/btrkeks/bookminer/internal/errors"
)

// Shot is a captured image with its suggested file name.
type Shot struct {
	Image image.Image
	Name  string
}

// Filename returns the suggested name of a screenshot taken at t.
func Filename(t time.Time) string {
	return "screenshot_" + t.Format("20060102_150405") + ".png"
}

// Grabber captures one display. The default grabs with kbinani/screenshot.
type Grabber func(display int) (image.Image, error)

func grabDisplay(display int) (image.Image, error) {
	if n := screenshot.NumActiveDisplays(); display < 0 || display >= n {
		return nil, fmt.Errorf("display %d not found (%d active)", display, n)
	}
	return screenshot.CaptureRect(screenshot.GetDisplayBounds(display))
}

// Capturer takes screenshots.
type Capturer struct {
	grab Grabber
	now  func() time.Time
}

// New returns a Capturer. A nil grab captures the real screen.
func New(grab Grabber) *Capturer {
	if grab == nil {
		grab = grabDisplay
	}
	return &Capturer{grab: grab, now: time.Now}
}

// Capture grabs display and names the result after the current time.
func (c *Capturer) Capture(display int) (*Shot, error) {
	if display < 0 {
		return nil, errors.NewValidationError("display index must not be negative").
			WithField("display").WithValue(display)
	}
	img, err := c.grab(display)
	if err != nil {
		return nil, fmt.Errorf("capture display %d: %w", display, err)
	}
	return &Shot{Image: img, Name: Filename(c.now())}, nil
}

// Save writes the shot as PNG into dir and returns the file path.
func (s *Shot) Save(dir string) (string, error) {
	path := filepath.Join(dir, s.Name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", errors.NewLocalIOError("create", path, err)
	}
	if err := png.Encode(f, s.Image); err != nil {
		_ = f.Close()
		return "", errors.NewLocalIOError("encode", path, err)
	}
	if err := f.Close(); err != nil {
		return "", errors.NewLocalIOError("write", path, err)
	}
	return path, nil
}

// Package launcher hands URLs and images over to external programs.
package launcher

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/skratchdot/open-golang/open"
)

// ErrNoImages is returned when there is nothing to show
var ErrNoImages = errors.New("no images")

// Launcher opens web pages and images outside the terminal
type Launcher interface {
	OpenURL(url string) error
	ViewImages(urls []string) error
}

// System launches the platform default handler for URLs and the configured
// viewer command for images.
type System struct {
	// ImageCommand is the viewer program, optionally with arguments
	// ("feh -F"). When empty each image goes to the default handler.
	ImageCommand string

	// start and command are replaceable in tests
	start   func(input string) error
	command func(name string, args ...string) *exec.Cmd
}

// NewSystem creates a launcher using imageCommand for images
func NewSystem(imageCommand string) *System {
	return &System{
		ImageCommand: strings.TrimSpace(imageCommand),
		start:        open.Start,
		command:      exec.Command,
	}
}

// OpenURL opens url with the default handler without waiting for it
func (s *System) OpenURL(url string) error {
	if url == "" {
		return fmt.Errorf("empty url")
	}
	if err := s.start(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// ViewImages starts the image viewer with all urls at once
func (s *System) ViewImages(urls []string) error {
	if len(urls) == 0 {
		return ErrNoImages
	}

	if s.ImageCommand == "" {
		for _, u := range urls {
			if err := s.OpenURL(u); err != nil {
				return err
			}
		}
		return nil
	}

	fields := strings.Fields(s.ImageCommand)
	args := append(fields[1:], urls...)
	cmd := s.command(fields[0], args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", fields[0], err)
	}
	// The viewer outlives the request; reap it when it exits.
	go cmd.Wait()
	return nil
}

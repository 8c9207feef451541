package ui

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// ErrNoOpener is returned when no URL opener is installed
var ErrNoOpener = errors.New("no browser opener found")

// URLOpener opens a URL outside the terminal
type URLOpener interface {
	Open(url string) error
}

// BrowserOps opens URLs with the platform's launcher
type BrowserOps struct {
	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// NewBrowserOps creates a new BrowserOps instance
func NewBrowserOps() *BrowserOps {
	return &BrowserOps{
		lookPath: exec.LookPath,
		start: func(name string, args ...string) error {
			cmd := exec.Command(name, args...)
			if err := cmd.Start(); err != nil {
				return err
			}
			// Reap the launcher; it exits once the browser has the URL
			go func() { _ = cmd.Wait() }()
			return nil
		},
	}
}

// Open launches the default browser on url
func (b *BrowserOps) Open(url string) error {
	name, args, err := b.launcher()
	if err != nil {
		return err
	}
	if err := b.start(name, append(args, url)...); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

func (b *BrowserOps) launcher() (string, []string, error) {
	switch runtime.GOOS {
	case "darwin":
		return "open", nil, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}, nil
	}
	for _, candidate := range []string{"xdg-open", "wslview", "sensible-browser"} {
		if _, err := b.lookPath(candidate); err == nil {
			return candidate, nil, nil
		}
	}
	return "", nil, ErrNoOpener
}

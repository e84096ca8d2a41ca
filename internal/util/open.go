package util

import (
	"os/exec"
	"runtime"
)

// viewerCommand returns the command that hands path to the desktop's default
// image viewer on goos.
func viewerCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}

// OpenInViewer starts the default viewer for path and returns without waiting
// for it to exit. The viewer outlives the calling process.
func OpenInViewer(path string) error {
	name, args := viewerCommand(runtime.GOOS, path)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

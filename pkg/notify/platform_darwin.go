//go:build darwin

package notify

import (
	"fmt"
	"path/filepath"
)

const soundDir = "/System/Library/Sounds"

// defaultSounds are the alarm names shipped with macOS.
var defaultSounds = []string{
	"Basso", "Blow", "Bottle", "Frog", "Funk", "Glass", "Hero",
	"Morse", "Ping", "Pop", "Purr", "Sosumi", "Submarine", "Tink",
}

const fallbackSound = "Glass"

func notificationCommand(title, body string) (string, []string) {
	script := fmt.Sprintf(`display notification %q with title %q`, body, title)
	return "osascript", []string{"-e", script}
}

func soundPath(name string) string {
	return filepath.Join(soundDir, name+".aiff")
}

func playCommand(path string) (string, []string) {
	return "afplay", []string{"-v", "1.0", path}
}

//go:build !darwin

package notify

import "path/filepath"

const soundDir = "/usr/share/sounds/freedesktop/stereo"

// defaultSounds are the freedesktop sound theme alarms.
var defaultSounds = []string{
	"alarm-clock-elapsed", "bell", "complete", "message",
	"message-new-instant", "phone-incoming-call",
}

const fallbackSound = "alarm-clock-elapsed"

func notificationCommand(title, body string) (string, []string) {
	return "notify-send", []string{"--app-name=Dropclock", title, body}
}

func soundPath(name string) string {
	return filepath.Join(soundDir, name+".oga")
}

func playCommand(path string) (string, []string) {
	return "paplay", []string{path}
}

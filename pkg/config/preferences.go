package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dropclock/dropclock-go/pkg/countdown"
	"github.com/dropclock/dropclock-go/pkg/quantize"
)

// Preference errors.
var (
	ErrNegativeThreshold = errors.New("short timer threshold must not be negative")
	ErrUnknownKey        = errors.New("unknown preference")
)

// DefaultShortTimerThresholdMinutes is the short-timer cutoff of a fresh
// install.
const DefaultShortTimerThresholdMinutes = 5

// Preferences holds every user setting.
type Preferences struct {
	AllowReminders             bool    `yaml:"allow_reminders"`
	DeleteReminders            bool    `yaml:"delete_reminders"`
	IgnoreShortTimers          bool    `yaml:"ignore_short_timers"`
	ShortTimerThresholdMinutes float64 `yaml:"short_timer_threshold_minutes"`
	SelectedReminderList       string  `yaml:"selected_reminder_list"`

	AllowFiveMinuteMode bool `yaml:"allow_five_minute_mode"`
	AllowSecondsMode    bool `yaml:"allow_seconds_mode"`
	AllowCustomNames    bool `yaml:"allow_custom_names"`
	ViewAsMinutes       bool `yaml:"view_as_minutes"`
	ShowDragIndicator   bool `yaml:"show_drag_indicator"`

	PlaySound          bool   `yaml:"play_sound"`
	SelectedAlarmSound string `yaml:"selected_alarm_sound"`
	CustomSoundPath    string `yaml:"custom_sound_path"`

	// StartAtLogin is stored for other frontends; this module does not
	// register login items.
	StartAtLogin bool `yaml:"start_at_login"`
}

// Default returns the preferences of a fresh install.
func Default() Preferences {
	return Preferences{
		DeleteReminders:            true,
		ShortTimerThresholdMinutes: DefaultShortTimerThresholdMinutes,
		ShowDragIndicator:          true,
		PlaySound:                  true,
	}
}

// DefaultPath returns ~/.dropclock/preferences.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".dropclock", "preferences.yaml")
}

// Load reads preferences from path. Keys absent from the file keep their
// default values, and a missing file yields Default.
func Load(path string) (Preferences, error) {
	p := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, fmt.Errorf("read preferences: %w", err)
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("parse preferences %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Default(), fmt.Errorf("preferences %s: %w", path, err)
	}
	return p, nil
}

// Save writes preferences to path, creating parent directories.
func (p Preferences) Save(path string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks value ranges.
func (p Preferences) Validate() error {
	if p.ShortTimerThresholdMinutes < 0 {
		return ErrNegativeThreshold
	}
	return nil
}

// Policy returns the reminder policy these preferences describe.
func (p Preferences) Policy() countdown.Policy {
	return countdown.Policy{
		RemindersEnabled:        p.AllowReminders,
		IgnoreShortTimers:       p.IgnoreShortTimers,
		ShortTimerThreshold:     time.Duration(p.ShortTimerThresholdMinutes * float64(time.Minute)),
		DeleteRemindersOnCancel: p.DeleteReminders,
	}
}

// Modes returns the quantization modes these preferences enable.
func (p Preferences) Modes() quantize.Modes {
	return quantize.Modes{
		FiveMinute: p.AllowFiveMinuteMode,
		Seconds:    p.AllowSecondsMode,
	}
}

// field binds a YAML key to its value in a Preferences.
type field struct {
	boolVal   *bool
	floatVal  *float64
	stringVal *string
}

func (p *Preferences) fields() map[string]field {
	return map[string]field{
		"allow_reminders":               {boolVal: &p.AllowReminders},
		"delete_reminders":              {boolVal: &p.DeleteReminders},
		"ignore_short_timers":           {boolVal: &p.IgnoreShortTimers},
		"short_timer_threshold_minutes": {floatVal: &p.ShortTimerThresholdMinutes},
		"selected_reminder_list":        {stringVal: &p.SelectedReminderList},
		"allow_five_minute_mode":        {boolVal: &p.AllowFiveMinuteMode},
		"allow_seconds_mode":            {boolVal: &p.AllowSecondsMode},
		"allow_custom_names":            {boolVal: &p.AllowCustomNames},
		"view_as_minutes":               {boolVal: &p.ViewAsMinutes},
		"show_drag_indicator":           {boolVal: &p.ShowDragIndicator},
		"play_sound":                    {boolVal: &p.PlaySound},
		"selected_alarm_sound":          {stringVal: &p.SelectedAlarmSound},
		"custom_sound_path":             {stringVal: &p.CustomSoundPath},
		"start_at_login":                {boolVal: &p.StartAtLogin},
	}
}

// Keys returns every preference key in sorted order.
func (p *Preferences) Keys() []string {
	fields := p.fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of key formatted as text.
func (p *Preferences) Get(key string) (string, error) {
	f, ok := p.fields()[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	switch {
	case f.boolVal != nil:
		return strconv.FormatBool(*f.boolVal), nil
	case f.floatVal != nil:
		return strconv.FormatFloat(*f.floatVal, 'f', -1, 64), nil
	default:
		return *f.stringVal, nil
	}
}

// Set parses value and assigns it to key. The preferences are unchanged if
// parsing or validation fails.
func (p *Preferences) Set(key, value string) error {
	next := *p
	f, ok := next.fields()[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	value = strings.TrimSpace(value)
	switch {
	case f.boolVal != nil:
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*f.boolVal = b
	case f.floatVal != nil:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*f.floatVal = v
	default:
		*f.stringVal = value
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*p = next
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}
	return strconv.ParseBool(s)
}

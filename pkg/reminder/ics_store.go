package reminder

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	icsExt         = ".ics"
	icsStampLayout = "20060102T150405Z"
)

// Reminder is a reminder read back from an ICSStore.
type Reminder struct {
	ID    string
	List  string
	Title string
	Notes string
	Due   time.Time
}

// ICSStore keeps reminders as iCalendar files, one directory per list.
type ICSStore struct {
	mu   sync.Mutex
	root string
	list string
	now  func() time.Time
}

// NewICSStore creates a store rooted at dir that writes new reminders to
// the given list. An empty list makes CreateReminder fail with
// ErrNoListSelected until SelectList is called.
func NewICSStore(dir, list string) *ICSStore {
	return &ICSStore{root: dir, list: list, now: time.Now}
}

// SelectList changes the list new reminders are written to.
func (s *ICSStore) SelectList(list string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = list
}

// SelectedList returns the list new reminders are written to.
func (s *ICSStore) SelectedList() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list
}

// CreateList creates a reminder list. Creating an existing list is a no-op.
func (s *ICSStore) CreateList(name string) error {
	if err := validListName(name); err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(s.root, name), 0755)
}

// Lists returns the available reminder lists, sorted by name.
func (s *ICSStore) Lists() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lists []string
	for _, e := range entries {
		if e.IsDir() {
			lists = append(lists, e.Name())
		}
	}
	sort.Strings(lists)
	return lists, nil
}

// CreateReminder writes a reminder to the selected list.
func (s *ICSStore) CreateReminder(ctx context.Context, title, notes string, due time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &Error{Kind: KindCreationFailed, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.list == "" {
		return "", ErrNoListSelected
	}
	dir := filepath.Join(s.root, s.list)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", &Error{Kind: KindNoListSelected, Err: fmt.Errorf("list %q does not exist", s.list)}
	}

	id := uuid.NewString()
	data := buildTodoICS(id, title, notes, due, s.now())

	if err := os.WriteFile(filepath.Join(dir, id+icsExt), []byte(data), 0644); err != nil {
		return "", &Error{Kind: KindCreationFailed, Err: err}
	}
	return id, nil
}

// DeleteReminder removes the reminder from whichever list holds it.
func (s *ICSStore) DeleteReminder(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return &Error{Kind: KindDeletionFailed, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.findLocked(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return &Error{Kind: KindDeletionFailed, Err: err}
	}
	return nil
}

// Get reads a reminder back by identifier.
func (s *ICSStore) Get(id string) (*Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.findLocked(id)
	if err != nil {
		return nil, err
	}
	r, err := parseTodoICS(path)
	if err != nil {
		return nil, err
	}
	r.List = filepath.Base(filepath.Dir(path))
	return r, nil
}

func (s *ICSStore) findLocked(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return "", ErrNotFound
	}

	matches, err := filepath.Glob(filepath.Join(s.root, "*", id+icsExt))
	if err != nil {
		return "", &Error{Kind: KindNotFound, Err: err}
	}
	if len(matches) == 0 {
		return "", ErrNotFound
	}
	return matches[0], nil
}

func validListName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid reminder list name %q", name)
	}
	return nil
}

// buildTodoICS renders a single VTODO with a display alarm at the due time.
func buildTodoICS(id, title, notes string, due, now time.Time) string {
	dueStamp := due.UTC().Format(icsStampLayout)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Dropclock//Timer Reminder//EN",
		"CALSCALE:GREGORIAN",
		"BEGIN:VTODO",
		"UID:" + escapeICSText(id),
		"DTSTAMP:" + now.UTC().Format(icsStampLayout),
		"SUMMARY:" + escapeICSText(title),
		"DUE:" + dueStamp,
	}
	if notes != "" {
		lines = append(lines, "DESCRIPTION:"+escapeICSText(notes))
	}
	lines = append(lines,
		"BEGIN:VALARM",
		"ACTION:DISPLAY",
		"DESCRIPTION:"+escapeICSText(title),
		"TRIGGER;VALUE=DATE-TIME:"+dueStamp,
		"END:VALARM",
		"END:VTODO",
		"END:VCALENDAR",
		"",
	)

	return strings.Join(lines, "\r\n")
}

// parseTodoICS reads the fields buildTodoICS writes. Alarm properties are
// skipped so the alarm DESCRIPTION does not shadow the notes.
func parseTodoICS(path string) (*Reminder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := &Reminder{}
	inAlarm := false
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		switch line {
		case "BEGIN:VALARM":
			inAlarm = true
			continue
		case "END:VALARM":
			inAlarm = false
			continue
		}
		if inAlarm {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch key {
		case "UID":
			r.ID = unescapeICSText(value)
		case "SUMMARY":
			r.Title = unescapeICSText(value)
		case "DESCRIPTION":
			r.Notes = unescapeICSText(value)
		case "DUE":
			r.Due, err = time.Parse(icsStampLayout, value)
			if err != nil {
				return nil, fmt.Errorf("bad DUE in %s: %w", path, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

func escapeICSText(s string) string {
	repl := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return repl.Replace(s)
}

func unescapeICSText(s string) string {
	repl := strings.NewReplacer(
		"\\\\", "\\",
		"\\;", ";",
		"\\,", ",",
		"\\n", "\n",
		"\\N", "\n",
	)
	return repl.Replace(s)
}

// Compile-time interface satisfaction check.
var _ Service = (*ICSStore)(nil)

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// profileVersion1 is the only on-disk schema so far. The format is
// append-only: later versions may add fields but never reinterpret these.
const profileVersion1 = 1

type fileProfile struct {
	Version     int    `json:"version"`
	Session     string `json:"session,omitempty"`
	DeviceTrust string `json:"device_trust,omitempty"`
}

// File is a [Store] persisted as a JSON profile file, the durable analog of
// browser localStorage for CLI and desktop embedders. Writes go through a
// temp file and rename so a crash never leaves a half-written profile.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile describes the newfile operation and its observable behavior.
//
// The parent directory must exist; the profile file itself is created on
// first Set with 0600 permissions.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty profile path", ErrBackend)
	}
	return &File{path: path}, nil
}

// Get describes the get operation and its observable behavior.
func (f *File) Get(_ context.Context, kind Kind) (string, bool, error) {
	if !validKind(kind) {
		return "", false, ErrUnknownKind
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	profile, err := f.load()
	if err != nil {
		return "", false, err
	}
	value := profile.slot(kind)
	return value, value != "", nil
}

// Set describes the set operation and its observable behavior.
func (f *File) Set(_ context.Context, kind Kind, value string) error {
	if !validKind(kind) {
		return ErrUnknownKind
	}
	if value == "" {
		return ErrEmptyValue
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	profile, err := f.load()
	if err != nil {
		return err
	}
	profile.setSlot(kind, value)
	return f.save(profile)
}

// Clear describes the clear operation and its observable behavior.
func (f *File) Clear(_ context.Context, kind Kind) error {
	if !validKind(kind) {
		return ErrUnknownKind
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	profile, err := f.load()
	if err != nil {
		return err
	}
	if profile.slot(kind) == "" {
		return nil
	}
	profile.setSlot(kind, "")
	return f.save(profile)
}

func (f *File) load() (*fileProfile, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &fileProfile{Version: profileVersion1}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	profile := &fileProfile{}
	if err := json.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("%w: corrupt profile: %v", ErrBackend, err)
	}
	if profile.Version == 0 {
		profile.Version = profileVersion1
	}
	return profile, nil
}

func (f *File) save(profile *fileProfile) error {
	profile.Version = profileVersion1
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}

func (p *fileProfile) slot(kind Kind) string {
	switch kind {
	case KindSession:
		return p.Session
	case KindDeviceTrust:
		return p.DeviceTrust
	default:
		return ""
	}
}

func (p *fileProfile) setSlot(kind Kind, value string) {
	switch kind {
	case KindSession:
		p.Session = value
	case KindDeviceTrust:
		p.DeviceTrust = value
	}
}

// DefaultProfilePath returns the conventional profile location under the
// user config dir. It does not create the file.
func DefaultProfilePath(appName string) (string, error) {
	if appName == "" {
		appName = "authflow"
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackend, err)
	}
	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return filepath.Join(dir, "credentials.json"), nil
}

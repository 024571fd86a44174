// Package profile loads named estimator parameter presets from a TOML
// file. A profile bundles the knobs of both estimators so that a run can
// be selected by name instead of repeating flags:
//
//	[profiles.fast]
//	walks = 10000
//	steps = 6
//	iterations = 6
//
//	[profiles.thorough]
//	walks = 1000000
//	steps = 100
//	iterations = 100
package profile

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// ErrNotFound is returned when a requested profile name is absent.
var ErrNotFound = errors.New("profile not found")

// Profile is one named parameter preset.
type Profile struct {
	Walks      int   `toml:"walks"`
	Steps      int   `toml:"steps"`
	Iterations int   `toml:"iterations"`
	Workers    int   `toml:"workers"`
	Seed       int64 `toml:"seed"`
}

// File is the parsed profiles file.
type File struct {
	Profiles map[string]Profile `toml:"profiles"`
}

// Load parses the profiles file at path. A missing file is not an error;
// it yields an empty File so lookups simply fail with ErrNotFound.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{Profiles: map[string]Profile{}}, nil
		}
		return nil, fmt.Errorf("profile: read %s: %w", path, err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("profile: parse %s: %w", path, err)
	}
	if f.Profiles == nil {
		f.Profiles = map[string]Profile{}
	}

	for name, p := range f.Profiles {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("profile: %s: %w", name, err)
		}
	}
	return &f, nil
}

// Get returns the named profile or ErrNotFound.
func (f *File) Get(name string) (Profile, error) {
	p, ok := f.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p, nil
}

func validate(p Profile) error {
	if p.Walks < 0 {
		return fmt.Errorf("walks must be >= 0, got %d", p.Walks)
	}
	if p.Steps < 0 {
		return fmt.Errorf("steps must be >= 0, got %d", p.Steps)
	}
	if p.Iterations < 0 {
		return fmt.Errorf("iterations must be >= 0, got %d", p.Iterations)
	}
	if p.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", p.Workers)
	}
	return nil
}

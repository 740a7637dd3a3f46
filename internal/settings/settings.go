// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/prefs/internal/fsutil"
)

// Origin records where a Store's contents came from.
type Origin int

const (
	// OriginDefaults means the file was missing, empty or unparsable and the
	// contents were generated. They are not on disk until saved.
	OriginDefaults Origin = iota
	// OriginFile means the contents were read from, or last saved to, disk.
	OriginFile
	// OriginEphemeral means the store has no backing file.
	OriginEphemeral
)

func (o Origin) String() string {
	switch o {
	case OriginDefaults:
		return "defaults"
	case OriginFile:
		return "file"
	case OriginEphemeral:
		return "ephemeral"
	default:
		return "unknown"
	}
}

// filePerm is used for every save since the file may hold an API token.
const filePerm os.FileMode = 0o600

// Store owns the in-memory settings for one process and the path they are
// persisted to. A Store is not safe for concurrent use.
type Store struct {
	path     string
	origin   Origin
	contents Schema
}

// Open hydrates a Store from the YAML file at path. A missing, empty or
// malformed file yields generated defaults and no error. A permission error
// on the path is returned wrapped in ErrPermission. Any other failure to read
// the path, such as path naming a directory, is returned as a plain error and
// no Store is built.
//
// appToken is handed to GenerateDefaults when defaults are needed.
func Open(path string, appToken string) (*Store, error) {
	// Stat first so that an unreadable parent directory is reported as a
	// permission problem rather than looking like a missing file.
	if _, err := fsutil.Stat(path); err != nil {
		return nil, statError(path, err)
	}

	s := &Store{path: path}

	b, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, statError(path, err)
		}
		log.Debugf("no settings file, using defaults: path=%s", path)
		s.useDefaults(appToken)
		return s, nil
	}

	contents, err := parse(b)
	if err != nil {
		log.WithError(err).Debugf("unparsable settings file, using defaults: path=%s", path)
		s.useDefaults(appToken)
		return s, nil
	}

	s.contents = contents
	s.origin = OriginFile
	log.Debugf("loaded settings: path=%s keys=%v", path, s.Keys())
	return s, nil
}

// Ephemeral returns a Store holding generated defaults and no backing file.
// It is the fallback for callers that cannot access the settings path.
func Ephemeral(appToken string) *Store {
	s := &Store{origin: OriginEphemeral}
	s.contents = GenerateDefaults(appToken)
	return s
}

func statError(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %s: %w", ErrPermission, path, err)
	}
	return fmt.Errorf("failed to access settings file %s: %w", path, err)
}

// parse decodes a settings document. An empty document is reported as an
// error so that it is treated like any other unusable file.
func parse(b []byte) (Schema, error) {
	var contents Schema
	if len(bytes.TrimSpace(b)) == 0 {
		return contents, errors.New("settings file is empty")
	}
	if err := yaml.Unmarshal(b, &contents); err != nil {
		return Schema{}, err
	}
	if contents.isEmpty() {
		return Schema{}, errors.New("settings file has no keys")
	}
	return contents, nil
}

func (s *Store) useDefaults(appToken string) {
	s.contents = GenerateDefaults(appToken)
	s.origin = OriginDefaults
}

// Path returns the settings file path, or "" for an ephemeral store.
func (s *Store) Path() string {
	return s.path
}

// Origin reports where the current contents came from.
func (s *Store) Origin() Origin {
	return s.origin
}

// Get returns the value stored for key. If key is absent, the single
// defaultValue is returned when provided, otherwise nil.
func (s *Store) Get(key string, defaultValue ...any) any {
	if v, ok := s.lookup(key); ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return nil
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.lookup(key)
	return ok
}

func (s *Store) lookup(key string) (any, bool) {
	c := &s.contents
	switch key {
	case KeyHasShownMetricsNotification:
		if c.HasShownMetricsNotification != nil {
			return *c.HasShownMetricsNotification, true
		}
	case KeyAPIToken:
		if c.APIToken != nil {
			return *c.APIToken, true
		}
	case KeyAnonymousUserID:
		if c.AnonymousUserID != nil {
			return *c.AnonymousUserID, true
		}
	default:
		v, ok := c.Extra[key]
		return v, ok
	}
	return nil, false
}

// Set stores value under key in memory only; call Save to persist. Any value
// is accepted for unrecognized keys. Recognized keys take their field type
// (or a pointer to it) and a nil value removes them.
func (s *Store) Set(key string, value any) error {
	if value == nil && IsRecognized(key) {
		s.Delete(key)
		return nil
	}

	c := &s.contents
	switch key {
	case KeyHasShownMetricsNotification:
		switch v := value.(type) {
		case bool:
			c.HasShownMetricsNotification = ptr(v)
		case *bool:
			if v == nil {
				c.HasShownMetricsNotification = nil
				return nil
			}
			c.HasShownMetricsNotification = ptr(*v)
		default:
			return fmt.Errorf("%w: %s wants bool, got %T", ErrValueType, key, value)
		}
	case KeyAPIToken, KeyAnonymousUserID:
		var str string
		switch v := value.(type) {
		case string:
			str = v
		case *string:
			if v == nil {
				s.Delete(key)
				return nil
			}
			str = *v
		default:
			return fmt.Errorf("%w: %s wants string, got %T", ErrValueType, key, value)
		}
		if key == KeyAPIToken {
			c.APIToken = ptr(str)
		} else {
			c.AnonymousUserID = ptr(str)
		}
	default:
		if c.Extra == nil {
			c.Extra = make(map[string]any)
		}
		c.Extra[key] = value
	}
	return nil
}

// Delete removes key. It is a no-op when key is absent.
func (s *Store) Delete(key string) {
	c := &s.contents
	switch key {
	case KeyHasShownMetricsNotification:
		c.HasShownMetricsNotification = nil
	case KeyAPIToken:
		c.APIToken = nil
	case KeyAnonymousUserID:
		c.AnonymousUserID = nil
	default:
		delete(c.Extra, key)
	}
}

// HasShownMetricsNotification returns the notification flag, false if unset.
func (s *Store) HasShownMetricsNotification() bool {
	if p := s.contents.HasShownMetricsNotification; p != nil {
		return *p
	}
	return false
}

// SetHasShownMetricsNotification sets the notification flag.
func (s *Store) SetHasShownMetricsNotification(v bool) {
	s.contents.HasShownMetricsNotification = ptr(v)
}

// APIToken returns the stored token and whether one is present.
func (s *Store) APIToken() (string, bool) {
	if p := s.contents.APIToken; p != nil {
		return *p, true
	}
	return "", false
}

// SetAPIToken stores token.
func (s *Store) SetAPIToken(token string) {
	s.contents.APIToken = ptr(token)
}

// AnonymousUserID returns the stored id or "".
func (s *Store) AnonymousUserID() string {
	if p := s.contents.AnonymousUserID; p != nil {
		return *p
	}
	return ""
}

// SetAnonymousUserID stores id.
func (s *Store) SetAnonymousUserID(id string) {
	s.contents.AnonymousUserID = ptr(id)
}

// Keys returns every present key, sorted.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(RecognizedKeys)+len(s.contents.Extra))
	for _, k := range RecognizedKeys {
		if s.Has(k) {
			keys = append(keys, k)
		}
	}
	for k := range s.contents.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns a copy of the contents as a flat map. Nested mappings are
// copied with their keys rendered as strings so the result always encodes as
// JSON; the stored contents keep their original key types.
func (s *Store) All() map[string]any {
	all := make(map[string]any, len(s.contents.Extra)+len(RecognizedKeys))
	for _, k := range s.Keys() {
		v, _ := s.lookup(k)
		all[k] = stringKeyed(v)
	}
	return all
}

// Clone returns an independent Store with the same path, origin and
// contents. Nested values of unrecognized keys are shared.
func (s *Store) Clone() *Store {
	return &Store{
		path:     s.path,
		origin:   s.origin,
		contents: s.contents.clone(),
	}
}

// Marshal renders the contents as a block-style YAML document.
func (s *Store) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2) //nolint:mnd
	if err := enc.Encode(s.contents); err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return buf.Bytes(), nil
}

// Save atomically writes the contents to Path. On failure the file on disk is
// untouched and the in-memory contents remain usable.
func (s *Store) Save() error {
	if s.origin == OriginEphemeral {
		return ErrEphemeral
	}

	data, err := s.Marshal()
	if err != nil {
		return err
	}

	if err := fsutil.WriteFileAtomic(s.path, data, filePerm); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%w: failed to save settings: %w", ErrPermission, err)
		}
		return fmt.Errorf("failed to save settings: %w", err)
	}

	s.origin = OriginFile
	log.Debugf("saved settings: path=%s", s.path)
	return nil
}

// Materialize saves generated defaults so that other processes observe the
// same values. It does nothing when the contents already came from disk and
// reports whether a write happened.
func (s *Store) Materialize() (bool, error) {
	if s.origin != OriginDefaults {
		return false, nil
	}
	if err := s.Save(); err != nil {
		return false, err
	}
	return true, nil
}

// Reset discards the contents in favor of freshly generated defaults. The
// file is not written until Save.
func (s *Store) Reset(appToken string) {
	s.contents = GenerateDefaults(appToken)
	if s.origin != OriginEphemeral {
		s.origin = OriginDefaults
	}
}

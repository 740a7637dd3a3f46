// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"fmt"

	"github.com/google/uuid"
)

// Recognized keys.
const (
	KeyHasShownMetricsNotification = "has_shown_metrics_notification"
	KeyAPIToken                    = "api_token"
	KeyAnonymousUserID             = "anonymous_user_id"
)

// RecognizedKeys lists the keys with a typed field in Schema, in file order.
var RecognizedKeys = []string{
	KeyHasShownMetricsNotification,
	KeyAPIToken,
	KeyAnonymousUserID,
}

// IsRecognized reports whether key has a typed field in Schema.
func IsRecognized(key string) bool {
	for _, k := range RecognizedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Schema is the on-disk settings document. Recognized keys are typed and nil
// when absent. Every other top-level key lands in Extra and is written back
// with its value unchanged. Top-level keys are always decoded as strings, so
// an unquoted 1 key is saved back quoted as "1". Nested mappings keep their
// key types.
type Schema struct {
	HasShownMetricsNotification *bool          `yaml:"has_shown_metrics_notification,omitempty"`
	APIToken                    *string        `yaml:"api_token,omitempty"`
	AnonymousUserID             *string        `yaml:"anonymous_user_id,omitempty"`
	Extra                       map[string]any `yaml:",inline"`
}

func (s Schema) isEmpty() bool {
	return s.HasShownMetricsNotification == nil &&
		s.APIToken == nil &&
		s.AnonymousUserID == nil &&
		len(s.Extra) == 0
}

// clone copies s. Nested values inside Extra are shared.
func (s Schema) clone() Schema {
	c := Schema{}
	if s.HasShownMetricsNotification != nil {
		c.HasShownMetricsNotification = ptr(*s.HasShownMetricsNotification)
	}
	if s.APIToken != nil {
		c.APIToken = ptr(*s.APIToken)
	}
	if s.AnonymousUserID != nil {
		c.AnonymousUserID = ptr(*s.AnonymousUserID)
	}
	if s.Extra != nil {
		c.Extra = make(map[string]any, len(s.Extra))
		for k, v := range s.Extra {
			c.Extra[k] = v
		}
	}
	return c
}

// GenerateAnonymousUserID returns a new random identifier. appToken is
// currently ignored; every call yields a fresh UUID v4.
func GenerateAnonymousUserID(appToken string) string {
	return uuid.NewString()
}

// GenerateDefaults returns the logged-out default settings. appToken is not
// copied into APIToken.
func GenerateDefaults(appToken string) Schema {
	return Schema{
		HasShownMetricsNotification: ptr(false),
		AnonymousUserID:             ptr(GenerateAnonymousUserID(appToken)),
	}
}

// stringKeyed returns v with every nested mapping rebuilt as map[string]any,
// non-string keys rendered with fmt.Sprint. Lists are copied. Other values
// are returned as-is.
func stringKeyed(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = stringKeyed(e)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = stringKeyed(e)
		}
		return m
	case []any:
		l := make([]any, len(t))
		for i, e := range t {
			l[i] = stringKeyed(e)
		}
		return l
	default:
		return v
	}
}

func ptr[T any](v T) *T {
	return &v
}

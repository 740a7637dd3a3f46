// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects settings rows by simple key-operator-target
// expressions, combined with a delimiter (default: comma, overridable with
// PREFS_FILTER_DELIM).
//
// Operators:
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than (numeric or lexical)
//   - > : greater than (numeric or lexical)
//   - @ : substring, list or map membership
//   - / : regular expression match
//
// Any operator may be negated with a leading '!'. A bare key keeps rows where
// the key is present.
//
// Examples:
//
//   - "key^api" : settings whose name starts with "api"
//   - "value=true" : settings whose value is true
//   - "value.sample_rate>0.1" : nested numeric comparison
//   - "key!@metrics" : settings whose name does not contain "metrics"
package filters

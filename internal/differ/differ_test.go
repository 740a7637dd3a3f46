// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	base := map[string]any{
		"anonymous_user_id":              "id-1",
		"has_shown_metrics_notification": false,
	}

	tests := []struct {
		name         string
		after        map[string]any
		wantModified bool
		contains     []string
	}{
		{
			name:         "identical",
			after:        map[string]any{"anonymous_user_id": "id-1", "has_shown_metrics_notification": false},
			wantModified: false,
			contains:     []string{Identical},
		},
		{
			name:         "added key",
			after:        map[string]any{"anonymous_user_id": "id-1", "has_shown_metrics_notification": false, "api_token": "T"},
			wantModified: true,
			contains:     []string{"+", `"api_token": "T"`},
		},
		{
			name:         "removed key",
			after:        map[string]any{"anonymous_user_id": "id-1"},
			wantModified: true,
			contains:     []string{"-", `"has_shown_metrics_notification": false`},
		},
		{
			name:         "changed value",
			after:        map[string]any{"anonymous_user_id": "id-1", "has_shown_metrics_notification": true},
			wantModified: true,
			contains:     []string{`"has_shown_metrics_notification": false`, `"has_shown_metrics_notification": true`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			modified, err := Diff(&buf, base, tt.after, false)

			require.NoError(t, err)
			assert.Equal(t, tt.wantModified, modified)
			for _, c := range tt.contains {
				assert.Contains(t, buf.String(), c)
			}
		})
	}
}

// TestDiff_Unmarshalable verifies values JSON cannot encode are reported.
func TestDiff_Unmarshalable(t *testing.T) {
	_, err := Diff(&bytes.Buffer{}, map[string]any{"ch": make(chan int)}, map[string]any{}, false)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal settings")
}

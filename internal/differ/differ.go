// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Identical is printed by Diff when there is nothing to show.
const Identical = "No changes."

// Diff compares two settings documents and writes an ASCII diff of before
// against after to w. It reports whether the documents differ.
func Diff(w io.Writer, before, after map[string]any, color bool) (bool, error) {
	log.Debugf(">> differ.Diff()")

	left, err := json.Marshal(before)
	if err != nil {
		return false, fmt.Errorf("failed to marshal settings: %w", err)
	}
	right, err := json.Marshal(after)
	if err != nil {
		return false, fmt.Errorf("failed to marshal settings: %w", err)
	}

	delta, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return false, fmt.Errorf("failed to compare settings: %w", err)
	}

	if !delta.Modified() {
		fmt.Fprintln(w, Identical)
		return false, nil
	}

	// The formatter walks the left document alongside the delta, so it needs
	// the JSON-normalized form rather than the caller's map.
	var jdoc map[string]interface{}
	if err := json.Unmarshal(left, &jdoc); err != nil {
		return false, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       color,
	}

	diffString, err := formatter.NewAsciiFormatter(jdoc, config).Format(delta)
	if err != nil {
		return false, err
	}

	fmt.Fprint(w, diffString)
	return true, nil
}

// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package storage

import (
	"fmt"
	"strings"
)

// Format identifies an artifact encoding.
type Format string

const (
	FormatGob     Format = "gob"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat converts a config or flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gob", "gob.gz":
		return FormatGob, nil
	case "json":
		return FormatJSON, nil
	case "msgpack", "mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("unknown artifact format %q (supported: gob, json, msgpack)", s)
	}
}

// FormatFromPath picks the format implied by a file extension.
func FormatFromPath(path string) (Format, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".gob.gz"):
		return FormatGob, nil
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON, nil
	case strings.HasSuffix(lower, ".msgpack"), strings.HasSuffix(lower, ".mpk"):
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("cannot infer artifact format from %q", path)
	}
}

// Extension returns the canonical file extension, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatGob:
		return ".gob.gz"
	case FormatJSON:
		return ".json"
	case FormatMsgpack:
		return ".msgpack"
	default:
		return ""
	}
}

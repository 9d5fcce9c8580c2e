// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package sysinfo

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// FakeSource is a map-backed Source for tests.
//
// # Description
//
// Files and command outputs are looked up in maps; anything not present is
// ErrUnavailable, which matches how the live HostSource reports missing
// files and missing binaries. Directory listings are derived from the file
// map plus any explicitly registered directories, so a fake populated with
// "/sys/class/power_supply/BAT0/type" automatically lists BAT0 under
// /sys/class/power_supply.
//
// # Thread Safety
//
// Safe for concurrent reads after construction. Tests should finish
// populating the maps before handing the fake to concurrent probes.
type FakeSource struct {
	// Files maps absolute path to file contents.
	Files map[string]string

	// Dirs maps directory path to entry names, for directories whose
	// entries carry no readable files (e.g. bare device nodes).
	Dirs map[string][]string

	// Commands maps "name arg1 arg2..." to stdout.
	Commands map[string]string

	// MemoryBytes, when non-zero, is returned by TotalMemoryBytes so
	// tests can exercise the syscall fallback path.
	MemoryBytes uint64
}

// TotalMemoryBytes mirrors the HostSource syscall fallback.
func (s *FakeSource) TotalMemoryBytes() (uint64, bool) {
	return s.MemoryBytes, s.MemoryBytes > 0
}

// NewFakeSource returns an empty fake with all maps initialized.
func NewFakeSource() *FakeSource {
	return &FakeSource{
		Files:    make(map[string]string),
		Dirs:     make(map[string][]string),
		Commands: make(map[string]string),
	}
}

// ReadFile looks up path in the file map.
func (s *FakeSource) ReadFile(path string) (string, error) {
	if content, ok := s.Files[path]; ok {
		return strings.TrimSpace(content), nil
	}
	return "", fmt.Errorf("%w: read %s", ErrUnavailable, path)
}

// ReadDir lists registered entries plus entries implied by the file map.
// A directory registered in Dirs with no entries reads as present but
// empty, which is not the same thing as unavailable.
func (s *FakeSource) ReadDir(path string) ([]string, error) {
	seen := make(map[string]bool)
	registered := false
	if entries, ok := s.Dirs[path]; ok {
		registered = true
		for _, name := range entries {
			seen[name] = true
		}
	}

	prefix := strings.TrimSuffix(path, "/") + "/"
	for file := range s.Files {
		if !strings.HasPrefix(file, prefix) {
			continue
		}
		rest := strings.TrimPrefix(file, prefix)
		if i := strings.Index(rest, "/"); i >= 0 {
			rest = rest[:i]
		}
		if rest != "" {
			seen[rest] = true
		}
	}

	if len(seen) == 0 && !registered {
		return nil, fmt.Errorf("%w: readdir %s", ErrUnavailable, path)
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Run looks up the space-joined command line in the command map.
func (s *FakeSource) Run(_ context.Context, name string, args ...string) (string, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	if out, ok := s.Commands[key]; ok {
		return strings.TrimSpace(out), nil
	}
	return "", fmt.Errorf("%w: command %s not installed", ErrUnavailable, name)
}

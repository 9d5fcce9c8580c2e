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
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"
)

// DefaultCommandTimeout bounds every external command a probe runs. A hung
// USB enumeration must not stall the whole classification.
const DefaultCommandTimeout = 3 * time.Second

// HostSource reads system information from the live machine.
//
// # Description
//
// Files come from the real filesystem (sysfs, procfs, DMI). Commands run
// through exec.CommandContext with a per-command timeout; a missing binary
// or a timeout is reported as ErrUnavailable rather than surfacing a raw
// exec error, so probes can treat it uniformly as "could not look".
//
// # Thread Safety
//
// HostSource is stateless and safe for concurrent use.
type HostSource struct {
	// CommandTimeout overrides DefaultCommandTimeout when non-zero.
	CommandTimeout time.Duration
}

// NewHostSource returns a HostSource with the default command timeout.
func NewHostSource() *HostSource {
	return &HostSource{CommandTimeout: DefaultCommandTimeout}
}

// ReadFile returns the trimmed contents of path.
func (s *HostSource) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrUnavailable, path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ReadDir returns the entry names of path in lexical order.
func (s *HostSource) ReadDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("%w: readdir %s: %v", ErrUnavailable, path, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Run executes a command with the configured timeout and returns its
// trimmed stdout.
func (s *HostSource) Run(ctx context.Context, name string, args ...string) (string, error) {
	if _, err := exec.LookPath(name); err != nil {
		return "", fmt.Errorf("%w: command %s not installed", ErrUnavailable, name)
	}

	timeout := s.CommandTimeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if ctx.Err() != nil {
		return "", fmt.Errorf("%w: command %s timed out", ErrUnavailable, name)
	}
	if err != nil {
		// Some detection tools signal their verdict through the exit code
		// while still printing a usable answer (systemd-detect-virt exits 1
		// for "none"). Keep the output when there is one.
		if trimmed := strings.TrimSpace(string(out)); trimmed != "" {
			return trimmed, nil
		}
		return "", fmt.Errorf("sysinfo: command %s: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

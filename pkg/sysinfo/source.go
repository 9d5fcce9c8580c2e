// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

/*
Package sysinfo abstracts read access to the running machine.

The classification engine never touches /sys, /proc, or external commands
directly. Everything goes through the Source interface so the engine can be
unit-tested with an injected FakeSource instead of requiring a real machine
or root privileges.

# Unavailability vs Absence

A source that cannot be read (missing file, missing command, timeout) is
reported as an error, typically ErrUnavailable. This is deliberately
distinct from a source that was read successfully and contained nothing:
"we could not look" must never be scored as "we looked and found nothing".
*/
package sysinfo

import (
	"context"
	"errors"
)

// ErrUnavailable indicates an information source that could not be read at
// all: the backing file does not exist, the external command is not
// installed, or the read timed out.
var ErrUnavailable = errors.New("sysinfo: source unavailable")

// Source provides read access to host system information.
//
// # Description
//
// Source is the capability boundary between the classification engine and
// the operating system. HostSource implements it against the live machine;
// FakeSource implements it from in-memory maps for tests.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use. Probes run in parallel
// and share a single Source.
type Source interface {
	// ReadFile returns the trimmed contents of a file, or ErrUnavailable
	// if the file cannot be read.
	ReadFile(path string) (string, error)

	// ReadDir returns the entry names of a directory in lexical order, or
	// ErrUnavailable if the directory cannot be read.
	ReadDir(path string) ([]string, error)

	// Run executes an external command and returns its trimmed stdout.
	//
	// A command that is not installed, or that exceeds the source's
	// timeout, yields ErrUnavailable. A command that runs and exits
	// non-zero yields a distinct error carrying the exit status.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

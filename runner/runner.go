/*
 * runner.go, part of gocomplex.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package runner runs external programs with a timeout, and retries
// operations that may fail transiently.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
	"time"
)

// ErrNotRunning is returned when a program could not be run, or exited
// with a non-zero status.
var ErrNotRunning = errors.New("program failed")

// Command is an external program invocation.
type Command struct {
	Path    string
	Args    []string
	Dir     string
	Timeout time.Duration // zero means no timeout
	Stdout  io.Writer     // if nil, standard output is discarded
}

func (C *Command) String() string {
	return strings.TrimSpace(C.Path + " " + strings.Join(C.Args, " "))
}

// Run runs the command and waits for it to finish. A failure includes
// the tail of the program's standard error.
func (C *Command) Run(ctx context.Context) error {
	if C.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, C.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, C.Path, C.Args...)
	cmd.Dir = C.Dir
	cmd.Stdout = C.Stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > 400 {
			msg = "..." + msg[len(msg)-400:]
		}
		if ctx.Err() != nil {
			err = fmt.Errorf("%w (%v)", err, ctx.Err())
		}
		return fmt.Errorf("%w: %s: %v %s", ErrNotRunning, C, err, msg)
	}
	return nil
}

type warnKey struct{}

// WithWarnf returns a copy of ctx that carries f, to which the operations
// of this package report warnings.
func WithWarnf(ctx context.Context, f func(format string, args ...any)) context.Context {
	return context.WithValue(ctx, warnKey{}, f)
}

// Warnf reports a warning through the function carried by ctx, or through
// the standard logger, with a WARN prefix, if there is none.
func Warnf(ctx context.Context, format string, args ...any) {
	if f, ok := ctx.Value(warnKey{}).(func(string, ...any)); ok && f != nil {
		f(format, args...)
		return
	}
	log.Printf("WARN: "+format, args...)
}

type permanent struct{ err error }

func (p permanent) Error() string { return p.err.Error() }
func (p permanent) Unwrap() error { return p.err }

// Permanent marks err so Retry does not try again.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanent{err}
}

// Retry calls f up to attempts times, waiting delay between calls, until
// f succeeds, returns a Permanent error, or ctx is done. It returns the
// last error, unwrapped from Permanent.
func Retry(ctx context.Context, attempts int, delay time.Duration, f func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(ctx); err == nil {
			return nil
		}
		var p permanent
		if errors.As(err, &p) {
			return p.err
		}
		if i == attempts-1 {
			break
		}
		Warnf(ctx, "attempt %d/%d failed: %v", i+1, attempts, err)
		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(delay):
		}
	}
	return err
}

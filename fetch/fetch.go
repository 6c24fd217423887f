/*
 * fetch.go, part of gocomplex.
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

// Package fetch downloads template structures from the wwPDB archive.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/rmera/gocomplex/runner"
)

// DefaultBaseURL is the wwPDB divided archive of PDB-format entries.
const DefaultBaseURL = "https://files.wwpdb.org/pub/pdb/data/structures/divided/pdb"

var (
	// ErrBadID is returned for strings that are not 4-character PDB codes.
	ErrBadID = errors.New("not a PDB id")
	// ErrNotFound is returned when the archive has no entry for an id.
	ErrNotFound = errors.New("entry not found")
)

var idRe = regexp.MustCompile(`^[0-9][A-Za-z0-9]{3}$`)

// Fetcher downloads entries into a directory, as pdb{id}.ent files.
type Fetcher struct {
	BaseURL string
	Client  *http.Client
	Retries int
	Delay   time.Duration
}

// NewFetcher returns a Fetcher for the wwPDB archive with a 2 minute
// timeout per request and 3 attempts per entry.
func NewFetcher() *Fetcher {
	return &Fetcher{
		BaseURL: DefaultBaseURL,
		Client:  &http.Client{Timeout: 2 * time.Minute},
		Retries: 3,
		Delay:   2 * time.Second,
	}
}

// FileName returns the name an entry is saved as, pdb{id}.ent, id in
// lowercase.
func FileName(id string) string {
	return "pdb" + strings.ToLower(id) + ".ent"
}

// URL returns the address of the compressed entry for id.
func (F *Fetcher) URL(id string) string {
	id = strings.ToLower(id)
	return fmt.Sprintf("%s/%s/pdb%s.ent.gz", strings.TrimRight(F.BaseURL, "/"), id[1:3], id)
}

// Fetch downloads the entry id into dir, unless it is already there, and
// returns the path of the file.
func (F *Fetcher) Fetch(ctx context.Context, id, dir string) (string, error) {
	if !idRe.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrBadID, id)
	}
	path := filepath.Join(dir, FileName(id))
	if st, err := os.Stat(path); err == nil && st.Size() > 0 {
		return path, nil
	}
	err := runner.Retry(ctx, F.Retries, F.Delay, func(ctx context.Context) error {
		return F.download(ctx, id, path)
	})
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", id, err)
	}
	return path, nil
}

func (F *Fetcher) download(ctx context.Context, id, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, F.URL(id), nil)
	if err != nil {
		return runner.Permanent(err)
	}
	client := F.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	switch {
	case res.StatusCode == http.StatusNotFound:
		return runner.Permanent(fmt.Errorf("%w: %s", ErrNotFound, id))
	case res.StatusCode != http.StatusOK:
		return fmt.Errorf("HTTP status code %d", res.StatusCode)
	}
	gz, err := gzip.NewReader(res.Body)
	if err != nil {
		return err
	}
	defer gz.Close()
	//write to a temporary file so a failed download leaves nothing behind.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".download-*")
	if err != nil {
		return runner.Permanent(err)
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, gz); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

/*
 * options.go, part of gocomplex.
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

package modeler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rmera/gocomplex/clash"
	"github.com/rmera/gocomplex/fetch"
	"github.com/rmera/gocomplex/msa"
	"gopkg.in/yaml.v3"
)

// Options controls a modelling run. The zero value is not useful, start
// from DefaultOptions.
type Options struct {
	Database    string  `yaml:"database" validate:"required"`
	WorkDir     string  `yaml:"workdir" validate:"required"`
	PSIBlast    string  `yaml:"psiblast" validate:"required"`
	EValue      float64 `yaml:"evalue" validate:"gt=0"`
	ClustalW    string  `yaml:"clustalw" validate:"required"`
	DownloadURL string  `yaml:"download_url" validate:"required,url"`
	// Alignment scores tried, in decreasing order, to match target chains
	// to each template chain.
	Thresholds        []float64 `yaml:"thresholds" validate:"required,min=1,dive,gte=0,lte=100"`
	InteractionCutoff float64   `yaml:"interaction_cutoff" validate:"gt=0"`
	ClashCutoff       float64   `yaml:"clash_cutoff" validate:"gt=0,ltfield=InteractionCutoff"`
	// First residue number of the CA window used to superimpose chains.
	WindowStart int           `yaml:"window_start" validate:"gte=0"`
	Cpus        int           `yaml:"cpus" validate:"gte=1"`
	Retries     int           `yaml:"retries" validate:"gte=1"`
	RetryDelay  time.Duration `yaml:"retry_delay" validate:"gte=0"`
	Timeout     time.Duration `yaml:"timeout" validate:"gte=0"`
	// If not empty, an RMSD bar chart is saved to this file.
	Plot   string      `yaml:"plot"`
	Logger *log.Logger `yaml:"-" validate:"-"`
}

// DefaultOptions returns the default options. The database must still be
// set.
func DefaultOptions() *Options {
	return &Options{
		WorkDir:           ".",
		PSIBlast:          "psiblast",
		EValue:            10,
		ClustalW:          "clustalw2",
		DownloadURL:       fetch.DefaultBaseURL,
		Thresholds:        slices.Clone(msa.DefaultThresholds),
		InteractionCutoff: clash.InteractionCutoff,
		ClashCutoff:       clash.ClashCutoff,
		WindowStart:       2,
		Cpus:              runtime.NumCPU(),
		Retries:           2,
		RetryDelay:        2 * time.Second,
		Timeout:           30 * time.Minute,
		Logger:            log.New(os.Stderr, "gocomplex: ", log.LstdFlags),
	}
}

var validate = validator.New()

// ErrInvalidOptions is returned for options that fail validation.
var ErrInvalidOptions = errors.New("invalid options")

// Validate checks the options.
func (O *Options) Validate() error {
	if err := validate.Struct(O); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	for i := 1; i < len(O.Thresholds); i++ {
		if O.Thresholds[i] >= O.Thresholds[i-1] {
			return fmt.Errorf("%w: thresholds must be strictly decreasing, got %v", ErrInvalidOptions, O.Thresholds)
		}
	}
	return nil
}

// ReadOptions decodes YAML from r over the defaults. Unknown keys are an
// error. The result is not validated.
func ReadOptions(r io.Reader) (*Options, error) {
	O := DefaultOptions()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(O); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return O, nil
}

// LoadOptions reads options from a YAML file.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	O, err := ReadOptions(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return O, nil
}

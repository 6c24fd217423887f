package modeler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(Te *testing.T) {
	O := DefaultOptions()
	assert.ErrorIs(Te, O.Validate(), ErrInvalidOptions, "the database is required")
	O.Database = "pdbaa"
	require.NoError(Te, O.Validate())
	assert.Equal(Te, []float64{100, 90, 50, 0}, O.Thresholds)
	assert.Equal(Te, 2, O.WindowStart)
	assert.Equal(Te, 5.0, O.InteractionCutoff)
	assert.Equal(Te, 0.4, O.ClashCutoff)
}

func TestValidateOptions(Te *testing.T) {
	cases := map[string]func(*Options){
		"thresholds not decreasing": func(O *Options) { O.Thresholds = []float64{90, 100} },
		"threshold over 100":        func(O *Options) { O.Thresholds = []float64{120, 50} },
		"no thresholds":             func(O *Options) { O.Thresholds = nil },
		"clash over interaction":    func(O *Options) { O.ClashCutoff = 6 },
		"no cpus":                   func(O *Options) { O.Cpus = 0 },
		"bad url":                   func(O *Options) { O.DownloadURL = "not a url" },
		"no retries":                func(O *Options) { O.Retries = 0 },
	}
	for name, f := range cases {
		Te.Run(name, func(Te *testing.T) {
			O := DefaultOptions()
			O.Database = "pdbaa"
			f(O)
			assert.ErrorIs(Te, O.Validate(), ErrInvalidOptions)
			_, err := New(O)
			assert.Error(Te, err)
		})
	}
}

func TestReadOptions(Te *testing.T) {
	conf := `
database: /data/pdbaa
psiblast: /opt/blast/bin/psiblast
thresholds: [95, 60, 10]
retry_delay: 5s
timeout: 1h
cpus: 3
`
	O, err := ReadOptions(strings.NewReader(conf))
	require.NoError(Te, err)
	require.NoError(Te, O.Validate())
	assert.Equal(Te, "/data/pdbaa", O.Database)
	assert.Equal(Te, "/opt/blast/bin/psiblast", O.PSIBlast)
	assert.Equal(Te, []float64{95, 60, 10}, O.Thresholds)
	assert.Equal(Te, 5*time.Second, O.RetryDelay)
	assert.Equal(Te, time.Hour, O.Timeout)
	assert.Equal(Te, 3, O.Cpus)
	assert.Equal(Te, "clustalw2", O.ClustalW, "keys not given keep their defaults")
	assert.NotNil(Te, O.Logger)

	_, err = ReadOptions(strings.NewReader("databse: x\n"))
	assert.ErrorIs(Te, err, ErrInvalidOptions)

	O, err = ReadOptions(strings.NewReader(""))
	require.NoError(Te, err)
	assert.Equal(Te, DefaultOptions().Thresholds, O.Thresholds)
}

func TestLoadOptions(Te *testing.T) {
	dir := Te.TempDir()
	path := filepath.Join(dir, "gocomplex.yaml")
	require.NoError(Te, os.WriteFile(path, []byte("database: pdbaa\nworkdir: "+dir+"\n"), 0o644))
	O, err := LoadOptions(path)
	require.NoError(Te, err)
	assert.Equal(Te, dir, O.WorkDir)
	require.NoError(Te, O.Validate())

	_, err = LoadOptions(filepath.Join(dir, "missing.yaml"))
	assert.Error(Te, err)
}

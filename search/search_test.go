package search

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const report = `PSIBLAST 2.12.0+

Database: pdbaa
Query= AB_A

Length=120

                                                                      Score     E
Sequences producing significant alignments:                          (Bits)  Value

1abc_A mol:protein length:120  LYSOZYME                               250     2e-80
pdb|2XYZ|B mol:protein length:118  LYSOZYME C                         250     2e-80
3def_C mol:protein length:99  SOMETHING ELSE                          90.1    e-20
4ghi_A mol:protein length:300  FAR AWAY                               40.0    0.5

QUERY  1    MKTAYIAKQRQISFVKSHFSRQ  22
`

func TestParseReport(Te *testing.T) {
	hits, err := ParseReport(strings.NewReader(report))
	require.NoError(Te, err)
	require.Len(Te, hits, 4)
	assert.Equal(Te, Hit{Subject: "1abc_A", Template: "1abc", Bits: 250, EValue: 2e-80}, hits[0])
	assert.Equal(Te, "2XYZ_B", hits[1].Subject)
	assert.Equal(Te, "2XYZ", hits[1].Template)
	assert.Equal(Te, 1e-20, hits[2].EValue)

	best := BestHits(hits)
	require.Len(Te, best, 2)
	assert.Equal(Te, "1abc", best[0].Template)
	assert.Equal(Te, "2XYZ", best[1].Template)
}

func TestParseReportNoHeader(Te *testing.T) {
	hits, err := ParseReport(strings.NewReader("***** No hits found *****\n"))
	assert.NoError(Te, err)
	assert.Empty(Te, hits)
	assert.Nil(Te, BestHits(hits))
}

func TestParseReportMalformed(Te *testing.T) {
	bad := Header + "\n\n1abc_A mol:protein  LYSOZYME   250   lots\n"
	_, err := ParseReport(strings.NewReader(bad))
	assert.ErrorIs(Te, err, ErrMalformed)
	_, err = ParseReport(strings.NewReader(Header + "\n1abc_A\n"))
	assert.ErrorIs(Te, err, ErrMalformed)
}

func TestSelectTemplates(Te *testing.T) {
	best := [][]Hit{
		{{Template: "T1", EValue: 5}, {Template: "T2", EValue: 5}},
		{{Template: "T3", EValue: 7}},
		nil,
	}
	assert.Equal(Te, []string{"T1", "T2"}, SelectTemplates(best))

	//the same template from two queries is reported once.
	best = [][]Hit{{{Template: "1abc", EValue: 1e-50}}, {{Template: "1abc", EValue: 1e-50}, {Template: "0zzz", EValue: 1e-50}}}
	assert.Equal(Te, []string{"0zzz", "1abc"}, SelectTemplates(best))
	assert.Empty(Te, SelectTemplates(nil))
}

func TestPSIBlastHandle(Te *testing.T) {
	dir := Te.TempDir()
	fixture := filepath.Join(dir, "fixture.txt")
	require.NoError(Te, os.WriteFile(fixture, []byte(report), 0o644))
	script := filepath.Join(dir, "fakeblast")
	body := "#!/bin/sh\nwhile [ $# -gt 0 ]; do\n  if [ \"$1\" = \"-out\" ]; then out=$2; fi\n  shift\ndone\ncp " + fixture + " \"$out\"\n"
	require.NoError(Te, os.WriteFile(script, []byte(body), 0o755))
	prefix := filepath.Join(dir, "AB_A")
	require.NoError(Te, os.WriteFile(prefix+".fa", []byte(">AB_A\nMKT\n"), 0o644))

	O := NewPSIBlastHandle("/db/pdbaa")
	O.SetCommand(script)
	args := O.buildCommand(prefix).Args
	assert.Contains(Te, strings.Join(args, " "), "-outfmt 3 -out_pssm "+prefix+"_pssm")
	assert.Contains(Te, strings.Join(args, " "), "-evalue 10")

	out, err := O.Search(context.Background(), prefix)
	require.NoError(Te, err)
	assert.Equal(Te, prefix+".xml", out)
	hits, err := ParseReportFile(out)
	require.NoError(Te, err)
	assert.Len(Te, hits, 4)

	_, err = O.Search(context.Background(), filepath.Join(dir, "missing"))
	assert.Error(Te, err)
}

//go:build !gnuplot

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_PreviewWithoutGnuplot(t *testing.T) {
	data := writeDecay(t, 0.8, 120)
	var out bytes.Buffer

	err := run([]string{"--log-level", "error", "--preview", filepath.Join(t.TempDir(), "p.png"), data}, &out)
	require.ErrorIs(t, err, errNoPreview)
	assert.Contains(t, out.String(), "rx", "the fit report is written before the preview")
}

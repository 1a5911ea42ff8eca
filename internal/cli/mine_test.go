package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/multiformats/go-multibase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcfw/powledger/pkg/block"
)

func TestParsePayloads(t *testing.T) {
	p, err := parsePayloads([]string{"00", "010203"}, true)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{0}, {1, 2, 3}}, p)

	p, err = parsePayloads([]string{"testing"}, false)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("testing")}, p)

	_, err = parsePayloads([]string{"zz"}, true)
	assert.Error(t, err)
}

func TestEncodeHash(t *testing.T) {
	h := block.Hash{0xab, 0xcd}

	s, err := encodeHash(multibase.Base16, h)
	require.NoError(t, err)

	assert.Equal(t, "f"+h.String(), s)
}

func TestMineCommand(t *testing.T) {
	out := &bytes.Buffer{}

	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"mine", "--difficulty", "4", "--hex", "00", "010203"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	for i, l := range lines {
		cols := strings.Split(l, "\t")
		require.Len(t, cols, 4)

		assert.True(t, strings.HasPrefix(cols[2], "f0"), "line %d: %s", i, l)
	}

	assert.Equal(t, "00", strings.Split(lines[0], "\t")[3])
	assert.Equal(t, "010203", strings.Split(lines[1], "\t")[3])
}

package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	out := &bytes.Buffer{}

	cmd := newVersionCmd()
	cmd.SetOut(out)

	require.NoError(t, cmd.Execute())
	require.NotEmpty(t, out.String())
}

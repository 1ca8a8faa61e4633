package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_RejectsUnknownFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"sync", "--format", "xml"})
	cmd.SetOut(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"sync", "publish-grid", "publish-projects", "check-access"}, names)
}

func TestWriteResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, &RootOptions{Format: "json"}, map[string]int{"rows": 2}, "ignored"))
	assert.JSONEq(t, `{"rows":2}`, buf.String())

	buf.Reset()
	require.NoError(t, writeResult(&buf, &RootOptions{Format: "text"}, nil, "master sheet: 2 job cards"))
	assert.Equal(t, "master sheet: 2 job cards\n", buf.String())
}

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "adduser.db")
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)

	args := []string{"-name", "Root", "-email", "root@example.com", "-password", "Secret123", "-admin", "-db", dbPath}
	require.NoError(t, run(args, new(bytes.Buffer), stdout, stderr))
	assert.Contains(t, stdout.String(), "User root@example.com created successfully")
	assert.Contains(t, stdout.String(), "(administrator)")
}

func TestRun_PromptsForPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "prompt.db")
	stdout := new(bytes.Buffer)

	args := []string{"-name", "Ana", "-email", "ana@example.com", "-db", dbPath}
	require.NoError(t, run(args, strings.NewReader("Secret123\n"), stdout, new(bytes.Buffer)))
	assert.Contains(t, stdout.String(), "Password: ")
	assert.Contains(t, stdout.String(), "(user)")
}

func TestRun_DuplicateUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "dup.db")
	args := []string{"-name", "Ana", "-email", "ana@example.com", "-password", "Secret123", "-db", dbPath}

	require.NoError(t, run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)))
	err := run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRun_WeakPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "weak.db")
	args := []string{"-name", "Ana", "-email", "ana@example.com", "-password", "secret", "-db", dbPath}
	err := run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Password must be at least 8 characters")
}

func TestRun_MissingFlags(t *testing.T) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	err := run([]string{"-password", "Secret123"}, new(bytes.Buffer), stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required flags")
	assert.Contains(t, stdout.String(), "Usage: adduser")
}

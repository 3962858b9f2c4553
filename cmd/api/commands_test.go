package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"petdoc-id/internal/domain/intake"
)

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestHashPassword_FromStdin(t *testing.T) {
	out := run(t, "s3cret\n", "hash-password")
	hash := strings.TrimSpace(out)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}

func TestParse_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msg.txt")
	require.NoError(t, os.WriteFile(path, []byte("Nome do pet: Bolt\nEstado: RJ\nCor do documento: rosa\n"), 0o600))

	var res intake.Result
	require.NoError(t, json.Unmarshal([]byte(run(t, "", "parse", path)), &res))
	require.Equal(t, "Bolt", res.Draft.Name)
	require.Equal(t, "RJ", res.Draft.RegionCode)
	require.Equal(t, "pink", res.Draft.DocumentColor)
	require.NotEmpty(t, res.Warnings)
}

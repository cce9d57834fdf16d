package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seysony91-ship-it/product-images/internal/catalog"
	"github.com/seysony91-ship-it/product-images/internal/exportcmd"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"export", "inspect", "report"})

	for _, flag := range []string{"config", "root", "verbose"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "missing persistent flag %s", flag)
	}
}

func TestExecute_ExitCodes(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	assert.Equal(t, 0, Execute(context.Background(), "1.2.3", []string{"--version"}))
	assert.Equal(t, 1, Execute(context.Background(), "1.2.3", []string{"no-such-command"}))
	assert.Equal(t, 1, Execute(context.Background(), "1.2.3", []string{"report", filepath.Join(t.TempDir(), "missing.csv")}))
}

func TestRootCmd_ExportEndToEnd(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "images", "10", "대표.jpg"), "x")
	writeFile(t, filepath.Join(dir, "images", "10", "detail_2.png"), "x")
	writeFile(t, filepath.Join(dir, "images", "2", "a.webp"), "x")
	writeFile(t, filepath.Join(dir, "catalog.yaml"), "github:\n  user: acme\n")

	env := exportcmd.NewEnv()
	env.Getenv = func(string) string { return "" }
	root := newRootCmd(env)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"export", "--root", dir, "--verbose"})

	require.NoError(t, root.Execute())

	rows, err := catalog.Load(afero.NewOsFs(), filepath.Join(dir, "image_urls.csv"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2", rows[0].Folder)
	assert.True(t, strings.HasPrefix(rows[1].URL1, "https://raw.githubusercontent.com/acme/product-images/main/images/10/"))
	assert.Equal(t, "detail_2.png", rows[1].File2)

	assert.Contains(t, out.String(), "Catalog Summary")
	assert.Contains(t, errOut.String(), "Starting export")
}

func TestRootCmd_ExplicitConfigMustExist(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "images", "1", "a.jpg"), "x")

	root := newRootCmd(exportcmd.NewEnv())
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"export", "--root", dir, "--config", "nope.yaml"})

	err := root.Execute()
	assert.ErrorContains(t, err, "config file not found")
}

package source

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seysony91-ship-it/product-images/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGit struct {
	listing []byte
	err     error
	calls   [][]string
}

func (f *fakeGit) run(_ context.Context, _ string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)
	if f.err != nil {
		return nil, f.err
	}
	if len(args) > 0 && args[0] == "fetch" {
		return nil, nil
	}
	return f.listing, nil
}

func listing(paths ...string) []byte {
	return []byte(strings.Join(paths, "\x00") + "\x00")
}

func TestGitTree_GroupsByTopFolder(t *testing.T) {
	fake := &fakeGit{listing: listing(
		"README.md",
		"images/10/대표.jpg",
		"images/10/상세_1.jpg",
		"images/2/sub/cover.png",
		"images/2/notes.txt",
		"images/2/.DS_Store",
		"images/loose.jpg",
		"other/images/1/a.jpg",
		"images/abc/a.webp",
	)}

	g := NewGitTree(GitOptions{Root: "/repo", ImagesDir: "images", Filter: NewFilter(nil), Runner: fake.run})

	folders, err := g.Folders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "10", "abc"}, folders)

	assets, err := g.ListFilesInFolder(context.Background(), "10")
	require.NoError(t, err)
	assert.Equal(t, []models.Asset{
		{Name: "대표.jpg", Path: "images/10/대표.jpg"},
		{Name: "상세_1.jpg", Path: "images/10/상세_1.jpg"},
	}, assets)

	assets, err = g.ListFilesInFolder(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, []models.Asset{{Name: "cover.png", Path: "images/2/sub/cover.png"}}, assets)

	assets, err = g.ListFilesInFolder(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, assets)

	require.Len(t, fake.calls, 1, "tree is listed once")
	assert.Equal(t, []string{"-c", "core.quotepath=false", "ls-tree", "-r", "-z", "--name-only", "origin/main"}, fake.calls[0])
}

func TestGitTree_DuplicateNameKeepsFirstPath(t *testing.T) {
	fake := &fakeGit{listing: listing(
		"images/1/a/x.jpg",
		"images/1/b/x.jpg",
	)}

	g := NewGitTree(GitOptions{ImagesDir: "images", Runner: fake.run})
	assets, err := g.ListFilesInFolder(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, []models.Asset{{Name: "x.jpg", Path: "images/1/a/x.jpg"}}, assets)
}

func TestGitTree_FetchAndRef(t *testing.T) {
	fake := &fakeGit{listing: listing("images/1/a.jpg")}

	g := NewGitTree(GitOptions{ImagesDir: "images", Ref: "origin/release", Fetch: true, Runner: fake.run})
	_, err := g.Folders(context.Background())
	require.NoError(t, err)

	require.Len(t, fake.calls, 2)
	assert.Equal(t, []string{"fetch", "--all", "--prune"}, fake.calls[0])
	assert.Equal(t, "origin/release", fake.calls[1][len(fake.calls[1])-1])
}

func TestGitTree_InvalidUTF8IsReplaced(t *testing.T) {
	fake := &fakeGit{listing: []byte("images/1/bad\xffname.jpg\x00")}

	g := NewGitTree(GitOptions{ImagesDir: "images", Runner: fake.run})
	assets, err := g.ListFilesInFolder(context.Background(), "1")
	require.NoError(t, err)

	require.Len(t, assets, 1)
	assert.Equal(t, "bad�name.jpg", assets[0].Name)
}

func TestGitTree_NoImagesDir(t *testing.T) {
	fake := &fakeGit{listing: listing("README.md", "src/main.go")}

	g := NewGitTree(GitOptions{ImagesDir: "images", Runner: fake.run})
	_, err := g.Folders(context.Background())

	assert.ErrorIs(t, err, ErrImagesDirNotFound)
}

func TestGitTree_RunnerError(t *testing.T) {
	boom := errors.New("exit status 128")
	fake := &fakeGit{err: boom}

	g := NewGitTree(GitOptions{ImagesDir: "images", Runner: fake.run})
	_, err := g.Folders(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to list tree origin/main")
}

func TestGitTree_RealRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	gitCmd := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null", "GIT_CONFIG_NOSYSTEM=1")
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}

	for _, name := range []string{"images/1200/메인 이미지_01.jpg", "images/1200/대표.jpg", "images/7/x.png"} {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}

	gitCmd("init", "-q")
	gitCmd("add", ".")
	gitCmd("-c", "user.name=test", "-c", "user.email=test@example.com", "commit", "-q", "-m", "images")

	g := NewGitTree(GitOptions{Root: dir, ImagesDir: "images", Ref: "HEAD", Filter: NewFilter(nil)})

	folders, err := g.Folders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "1200"}, folders)

	assets, err := g.ListFilesInFolder(context.Background(), "1200")
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.Asset{
		{Name: "메인 이미지_01.jpg", Path: "images/1200/메인 이미지_01.jpg"},
		{Name: "대표.jpg", Path: "images/1200/대표.jpg"},
	}, assets)
}

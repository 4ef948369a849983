package storage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func TestSaveAndRemove(t *testing.T) {
	store, err := NewStore(t.TempDir(), 1024)
	require.NoError(t, err)

	ref, err := store.Save(uploadHeader(t, "photo.PNG", []byte("not really a png")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/uploads/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))

	onDisk := filepath.Join(store.Dir(), filepath.Base(ref))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, []byte("not really a png"), data)

	require.NoError(t, store.Remove(ref))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	// Removing twice is fine.
	require.NoError(t, store.Remove(ref))
}

func TestSaveRejectsUnsupportedExtension(t *testing.T) {
	store, err := NewStore(t.TempDir(), 1024)
	require.NoError(t, err)

	_, err = store.Save(uploadHeader(t, "malware.exe", []byte("nope")))
	assert.ErrorIs(t, err, ErrUnsupportedExt)
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	store, err := NewStore(t.TempDir(), 8)
	require.NoError(t, err)

	_, err = store.Save(uploadHeader(t, "big.jpg", bytes.Repeat([]byte("x"), 64)))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

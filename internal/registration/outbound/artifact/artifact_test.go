package artifact

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/shandysiswandi/regmail/internal/pkg/instrument"
	"github.com/shandysiswandi/regmail/internal/pkg/storage"
	"github.com/shandysiswandi/regmail/internal/registration/entity"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) PutObject(context.Context, string, string, io.Reader, storage.PutOptions) (storage.ObjectInfo, error) {
	return storage.ObjectInfo{}, errors.New("no space left on device")
}

func (failingStore) Close() error { return nil }

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	// Arrange
	root := t.TempDir()
	store, err := storage.NewLocal(storage.LocalOptions{Root: root})
	require.NoError(t, err)
	g := New(store, Config{Bucket: "qrcodes", Size: 128}, instrument.NewNoop())

	// Act
	first, err := g.Generate(context.Background(), "Ann Lee", "ann@x.com")
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), "Ann Lee", "ann@x.com")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "Ann_Lee_ann@x.com.png", first.Key)
	assert.Equal(t, first.Key, second.Key)
	assert.Equal(t, first.Location, second.Location)
	assert.True(t, bytes.Equal(first.Content, second.Content))
	assert.True(t, bytes.HasPrefix(first.Content, []byte("\x89PNG")))

	onDisk, err := os.ReadFile(filepath.Join(root, "qrcodes", first.Key))
	require.NoError(t, err)
	assert.Equal(t, first.Content, onDisk)

	entries, err := os.ReadDir(filepath.Join(root, "qrcodes"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGenerator_Generate_StoreFailure(t *testing.T) {
	t.Parallel()

	g := New(failingStore{}, Config{Bucket: "qrcodes"}, instrument.NewNoop())

	_, err := g.Generate(context.Background(), "Ann", "ann@x.com")

	assert.ErrorIs(t, err, entity.ErrArtifactWrite)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, qrcode.Low, ParseLevel("low"))
	assert.Equal(t, qrcode.Medium, ParseLevel(""))
	assert.Equal(t, qrcode.High, ParseLevel(" HIGH "))
	assert.Equal(t, qrcode.Highest, ParseLevel("highest"))
	assert.Equal(t, qrcode.Medium, ParseLevel("weird"))
}

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDiskRoundTrip(t *testing.T) {
	disk := NewLocalDisk(t.TempDir(), "")

	require.NoError(t, disk.Put("product-1.jpg", []byte("image-bytes")))
	assert.True(t, disk.Exists("product-1.jpg"))

	data, err := disk.Get("product-1.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)

	size, err := disk.Size("product-1.jpg")
	require.NoError(t, err)
	assert.EqualValues(t, len("image-bytes"), size)

	require.NoError(t, disk.Delete("product-1.jpg"))
	assert.False(t, disk.Exists("product-1.jpg"))
}

func TestLocalDiskNestedPath(t *testing.T) {
	disk := NewLocalDisk(t.TempDir(), "")

	require.NoError(t, disk.Put("2026/08/product-2.png", []byte("x")))
	assert.True(t, disk.Exists("2026/08/product-2.png"))
}

func TestLocalDiskDeleteMissingIsNil(t *testing.T) {
	disk := NewLocalDisk(t.TempDir(), "")
	assert.NoError(t, disk.Delete("never-existed.jpg"))
}

func TestLocalDiskURL(t *testing.T) {
	withBase := NewLocalDisk(t.TempDir(), "http://localhost:5000/uploads/")
	assert.Equal(t, "http://localhost:5000/uploads/a.jpg", withBase.URL("a.jpg"))

	// No base URL configured: caller derives one from the request.
	bare := NewLocalDisk(t.TempDir(), "")
	assert.Equal(t, "", bare.URL("a.jpg"))
}

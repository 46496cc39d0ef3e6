package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage_Upload(t *testing.T) {
	t.Run("stores the payload", func(t *testing.T) {
		stub := NewStubObjectStorage()

		err := stub.Upload(context.Background(), "matters/abc/brief.pdf",
			strings.NewReader("payload"), 7, "application/pdf")

		assert.NoError(t, err)
		data, ok := stub.Get("matters/abc/brief.pdf")
		require.True(t, ok)
		assert.Equal(t, []byte("payload"), data)
	})

	t.Run("rejects empty key", func(t *testing.T) {
		stub := NewStubObjectStorage()

		err := stub.Upload(context.Background(), "", strings.NewReader("x"), 1, "text/plain")

		assert.Error(t, err)
		assert.Equal(t, 0, stub.Len())
	})
}

func TestStubObjectStorage_PresignDownload(t *testing.T) {
	t.Run("returns a URL for a stored object", func(t *testing.T) {
		stub := NewStubObjectStorage()
		require.NoError(t, stub.Upload(context.Background(), "k1",
			strings.NewReader("data"), 4, "text/plain"))

		url, err := stub.PresignDownload(context.Background(), "k1", "file.txt", time.Minute)

		assert.NoError(t, err)
		assert.Equal(t, "stub://download/k1", url)
	})

	t.Run("fails for a missing object", func(t *testing.T) {
		stub := NewStubObjectStorage()

		url, err := stub.PresignDownload(context.Background(), "missing", "file.txt", time.Minute)

		assert.Error(t, err)
		assert.Empty(t, url)
	})
}

func TestStubObjectStorage_Delete(t *testing.T) {
	t.Run("removes the object", func(t *testing.T) {
		stub := NewStubObjectStorage()
		require.NoError(t, stub.Upload(context.Background(), "k1",
			strings.NewReader("data"), 4, "text/plain"))

		err := stub.Delete(context.Background(), "k1")

		assert.NoError(t, err)
		assert.Equal(t, 0, stub.Len())
	})

	t.Run("deleting a missing object is a no-op", func(t *testing.T) {
		stub := NewStubObjectStorage()

		assert.NoError(t, stub.Delete(context.Background(), "missing"))
	})
}

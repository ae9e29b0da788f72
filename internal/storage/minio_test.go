package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyFromURL(t *testing.T) {
	base := "http://localhost:9000/tamara"

	key, ok := objectKeyFromURL(base, "http://localhost:9000/tamara/videos/u1/abc.mp4")
	assert.True(t, ok)
	assert.Equal(t, "videos/u1/abc.mp4", key)

	// Trailing slash on the base is tolerated.
	key, ok = objectKeyFromURL(base+"/", "http://localhost:9000/tamara/thumbnails/x.jpg")
	assert.True(t, ok)
	assert.Equal(t, "thumbnails/x.jpg", key)

	// External media is not ours to delete.
	_, ok = objectKeyFromURL(base, "https://cdn.example.com/video.mp4")
	assert.False(t, ok)

	// A bare base URL carries no key.
	_, ok = objectKeyFromURL(base, base+"/")
	assert.False(t, ok)
}

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafein/api-go/config"
)

func TestKeyFromURL(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		wantKey string
		wantOK  bool
	}{
		{"bucket url", "https://img.example.com/cafe-images/abc/1_x.jpg", "abc/1_x.jpg", true},
		{"marker late in path", "https://cdn.example.com/v2/cafe-images/k.png", "k.png", true},
		{"external url", "https://elsewhere.example.com/photo.jpg", "", false},
		{"marker with empty key", "https://img.example.com/cafe-images/", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, ok := KeyFromURL(tc.url)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantKey, key)
		})
	}
}

func TestPublicURLRoundTrip(t *testing.T) {
	b := NewBucket(&config.R2Config{
		AccountID:  "acct",
		BucketName: "cafe-images",
		PublicURL:  "https://img.example.com/",
		Region:     "auto",
	}, nil)

	url := b.PublicURL("abc/1_x.jpg")
	assert.Equal(t, "https://img.example.com/cafe-images/abc/1_x.jpg", url)

	key, ok := KeyFromURL(url)
	require.True(t, ok)
	assert.Equal(t, "abc/1_x.jpg", key)
}

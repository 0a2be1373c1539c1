package storage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURLIsDeterministic(t *testing.T) {
	s := &MinioStorage{publicBase: "http://localhost:9000/guest-media"}

	url := s.PublicURL("uploads/1714656000123_cf3rs2.jpg")
	assert.Equal(t, "http://localhost:9000/guest-media/uploads/1714656000123_cf3rs2.jpg", url)
	assert.Equal(t, url, s.PublicURL("uploads/1714656000123_cf3rs2.jpg"))
}

func TestPublicBaseTrailingSlashNormalized(t *testing.T) {
	// NewMinioStorage trims trailing slashes; mirror that here
	s := &MinioStorage{publicBase: "https://cdn.example.com/guest-media"}
	assert.Equal(t, "https://cdn.example.com/guest-media/uploads/a.jpg", s.PublicURL("uploads/a.jpg"))
}

func TestPublicReadPolicy(t *testing.T) {
	var policy struct {
		Version   string
		Statement []struct {
			Effect    string
			Principal string
			Action    string
			Resource  string
		}
	}
	assert.NoError(t, json.Unmarshal([]byte(publicReadPolicy("guest-media")), &policy))
	assert.Len(t, policy.Statement, 1)
	assert.Equal(t, "Allow", policy.Statement[0].Effect)
	assert.Equal(t, "s3:GetObject", policy.Statement[0].Action)
	assert.Equal(t, "arn:aws:s3:::guest-media/*", policy.Statement[0].Resource)
}

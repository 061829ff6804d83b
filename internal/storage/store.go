// Package storage holds the media object stores used by ad uploads.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var ErrInvalidKey = errors.New("invalid storage key")

// Store persists media objects under slash-separated keys.
type Store interface {
	Save(ctx context.Context, key string, contentType string, body io.Reader) (url string, err error)
	Delete(ctx context.Context, key string) error
	// Clear removes every object under prefix.
	Clear(ctx context.Context, prefix string) error
}

// AdPrefix is the per-ad directory every media key of the ad lives in.
func AdPrefix(adID string) string {
	return "ads/" + adID
}

// AdMediaKey builds the key of a stored media object, keeping the original extension.
func AdMediaKey(adID, mediaID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\`) {
		ext = ""
	}
	return AdPrefix(adID) + "/" + mediaID + ext
}

func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if key == "" || key == "." || strings.HasPrefix(key, "..") {
		return "", ErrInvalidKey
	}
	return key, nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}

/*
Package randx provides functions for generating unique identifiers.

It is used to mint session token ids and collision-free object keys for images
stored on the media host.
*/
package randx

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// TokenID generates a standard UUID v4 string used as a session token id (jti).
func TokenID() string {
	return uuid.New().String()
}

// ObjectKey builds a media object key of the form "<folder>/<uuid>.<ext>".
// The folder is cleaned so callers cannot escape it with "..".
func ObjectKey(folder, ext string) string {
	folder = strings.Trim(path.Clean("/"+folder), "/")
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")

	name := uuid.New().String()
	if ext != "" {
		name += "." + ext
	}

	if folder == "" {
		return name
	}
	return folder + "/" + name
}

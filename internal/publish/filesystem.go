// Package publish uploads built packages to remote storage.
package publish

// Filesystem stores published files under slash-separated keys.
type Filesystem interface {
	UploadFile(key string, secondsCache int, data []byte) error
}

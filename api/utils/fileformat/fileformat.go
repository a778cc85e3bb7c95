package fileformat

import (
	"path"

	"github.com/twinj/uuid"
)

// UniqueFormat derives a collision-free object key from an uploaded
// filename, keeping the original extension.
func UniqueFormat(fileName string) string {
	ext := path.Ext(fileName)
	return uuid.NewV4().String() + ext
}

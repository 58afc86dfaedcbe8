package utils

import (
	"path/filepath"

	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
)

func GenKSUID() string {
	return ksuid.New().String()
}

// GenUploadName returns a collision-free object name keeping the original
// extension.
func GenUploadName(original string) string {
	return uuid.NewString() + filepath.Ext(original)
}

package storage

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ObjectKey derives the storage key for a new upload. Keys are namespaced
// per owner and embed a fresh random identifier, so two concurrent uploads
// can never collide: uploads/{ownerID}/{uuid}.{extension}
func ObjectKey(ownerID, extension string) string {
	return fmt.Sprintf("uploads/%s/%s.%s", ownerID, uuid.NewString(), strings.ToLower(extension))
}

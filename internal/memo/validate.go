package memo

import (
	"fmt"
	"strings"

	"github.com/picmemo/service/internal/config"
)

// ValidationError carries a human-readable rejection reason for bad uploads.
// It is user error, not a system fault, and is never logged as one.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Upload describes an incoming file before any I/O happens. Size is the
// declared byte count; the content stream is opened only after validation.
type Upload struct {
	Filename string
	Size     int64
}

// ValidateUpload checks an upload against policy. Checks short-circuit on
// the first failure and never touch the upload's content.
func ValidateUpload(u *Upload, policy config.UploadPolicy) error {
	if u == nil || u.Size == 0 {
		return &ValidationError{Reason: "empty files cannot be uploaded"}
	}
	if u.Size > policy.MaxFileSize {
		return &ValidationError{
			Reason: fmt.Sprintf("file is too large: maximum size is %d bytes", policy.MaxFileSize),
		}
	}
	ext, err := fileExtension(u.Filename)
	if err != nil {
		return err
	}
	if !policy.Allows(ext) {
		return &ValidationError{
			Reason: fmt.Sprintf("file type is not allowed: allowed types are %s",
				strings.Join(policy.AllowedExtensions, ", ")),
		}
	}
	return nil
}

// fileExtension returns the substring after the last dot in filename.
func fileExtension(filename string) (string, error) {
	idx := strings.LastIndex(filename, ".")
	if filename == "" || idx < 0 || idx == len(filename)-1 {
		return "", &ValidationError{Reason: "invalid filename: an extension is required"}
	}
	return filename[idx+1:], nil
}

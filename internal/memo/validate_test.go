package memo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picmemo/service/internal/config"
)

var testPolicy = config.UploadPolicy{
	MaxFileSize:       1048576,
	AllowedExtensions: []string{"jpg", "png"},
	CacheMaxAge:       3600,
}

func TestValidateUploadAccepts(t *testing.T) {
	assert.NoError(t, ValidateUpload(&Upload{Filename: "photo.png", Size: 500}, testPolicy))
	assert.NoError(t, ValidateUpload(&Upload{Filename: "photo.JPG", Size: 1048576}, testPolicy))
}

func TestValidateUploadRejectsEmpty(t *testing.T) {
	var verr *ValidationError

	err := ValidateUpload(nil, testPolicy)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "empty")

	err = ValidateUpload(&Upload{Filename: "photo.png", Size: 0}, testPolicy)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "empty")
}

func TestValidateUploadRejectsTooLarge(t *testing.T) {
	err := ValidateUpload(&Upload{Filename: "photo.png", Size: 1048577}, testPolicy)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "1048576", "message must include the configured limit")
}

func TestValidateUploadRejectsMissingExtension(t *testing.T) {
	var verr *ValidationError
	for _, name := range []string{"", "photo", "photo."} {
		err := ValidateUpload(&Upload{Filename: name, Size: 10}, testPolicy)
		require.ErrorAs(t, err, &verr, "filename %q", name)
		assert.Contains(t, verr.Reason, "filename")
	}
}

func TestValidateUploadRejectsDisallowedType(t *testing.T) {
	err := ValidateUpload(&Upload{Filename: "anim.webp", Size: 10}, testPolicy)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "jpg, png", "message must list allowed types")
}

func TestValidateUploadChecksSizeBeforeExtension(t *testing.T) {
	// Oversized file with a bad name: size failure wins.
	err := ValidateUpload(&Upload{Filename: "noext", Size: 2097152}, testPolicy)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "too large")
}

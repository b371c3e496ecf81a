package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		StorageBucket: "memos",
		Upload: UploadPolicy{
			MaxFileSize:       10485760,
			AllowedExtensions: []string{"jpg", "jpeg", "png", "gif"},
			CacheMaxAge:       3600,
		},
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejectsBlankBucket(t *testing.T) {
	cfg := validConfig()
	cfg.StorageBucket = "   "
	assert.ErrorContains(t, cfg.Validate(), "STORAGE_BUCKET")
}

func TestValidateMaxFileSizeBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Upload.MaxFileSize = 1023
	assert.ErrorContains(t, cfg.Validate(), "UPLOAD_MAX_FILE_SIZE")

	cfg.Upload.MaxFileSize = 1024
	assert.NoError(t, cfg.Validate())

	cfg.Upload.MaxFileSize = 52428800
	assert.NoError(t, cfg.Validate())

	cfg.Upload.MaxFileSize = 52428801
	assert.ErrorContains(t, cfg.Validate(), "UPLOAD_MAX_FILE_SIZE")
}

func TestValidateRequiresExtensions(t *testing.T) {
	cfg := validConfig()
	cfg.Upload.AllowedExtensions = nil
	assert.ErrorContains(t, cfg.Validate(), "UPLOAD_ALLOWED_EXTENSIONS")
}

func TestValidateCacheMaxAgeFloor(t *testing.T) {
	cfg := validConfig()
	cfg.Upload.CacheMaxAge = 59
	assert.ErrorContains(t, cfg.Validate(), "UPLOAD_CACHE_MAX_AGE")

	cfg.Upload.CacheMaxAge = 60
	assert.NoError(t, cfg.Validate())
}

func TestPolicyAllowsIsCaseInsensitive(t *testing.T) {
	p := UploadPolicy{AllowedExtensions: []string{"jpg", "png"}}

	assert.True(t, p.Allows("jpg"))
	assert.True(t, p.Allows("JPG"))
	assert.True(t, p.Allows("Png"))
	assert.False(t, p.Allows("webp"))
	assert.False(t, p.Allows(""))
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("TEST_EXT_LIST", "JPG, png ,,gif")
	assert.Equal(t, []string{"jpg", "png", "gif"}, getEnvList("TEST_EXT_LIST", nil))

	t.Setenv("TEST_EXT_LIST", "")
	assert.Equal(t, []string{"jpg"}, getEnvList("TEST_EXT_LIST", []string{"jpg"}))
}

package structhash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	if _, err := os.Stat(filepath.Join(dir, "config")); err != nil {
		t.Errorf("default config file not written: %v", err)
	}

	assert.Equal(t, DefaultHasher, cfg.GetHashConfig().Default)
	assert.Equal(t, BaseHex, cfg.GetBaseConfig().Default)

	fileConfig := cfg.GetFileConfig()
	assert.Equal(t, "1M", fileConfig.Blocksize)
	assert.Equal(t, 1, fileConfig.Stride)
	assert.Equal(t, int64(NoLimit), fileConfig.MaxBytes)
}

func TestLoadConfigReadsExisting(t *testing.T) {
	dir := t.TempDir()
	content := "[hash]\ndefault = sha256\n\n[base]\ndefault = abc\n\n[file]\nblocksize = 64K\nstride = 4\nmaxbytes = 1048576\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config"), []byte(content), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "sha256", cfg.GetHashConfig().Default)
	assert.Equal(t, "abc", cfg.GetBaseConfig().Default)

	fileConfig := cfg.GetFileConfig()
	assert.Equal(t, "64K", fileConfig.Blocksize)
	assert.Equal(t, 4, fileConfig.Stride)
	assert.Equal(t, int64(1048576), fileConfig.MaxBytes)
}

func TestConfigFileOptionsConversion(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyOverrides([]string{
		"default:sha256", "base:abc", "blocksize:64K", "stride:2", "maxbytes:4096",
	}))

	opts, err := cfg.FileOptions()
	require.NoError(t, err)
	assert.Equal(t, 64*1024, opts.Blocksize)
	assert.Equal(t, 2, opts.Stride)
	assert.Equal(t, int64(4096), opts.MaxBytes)
	assert.Equal(t, "sha256", opts.Hasher)
	assert.Equal(t, "abc", opts.Base)
}

func TestConfigFileOptionsBadBlocksize(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyOverrides([]string{"blocksize:huge"}))

	_, err = cfg.FileOptions()
	assert.Error(t, err)
}

func TestConfigSetDefaultsValidated(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	require.NoError(t, cfg.SetHashDefault("sha512"))
	assert.Equal(t, "sha512", cfg.GetHashConfig().Default)
	assert.Error(t, cfg.SetHashDefault("nope"))

	require.NoError(t, cfg.SetBaseDefault(BaseAlphanum))
	assert.Equal(t, BaseAlphanum, cfg.GetBaseConfig().Default)
	assert.Error(t, cfg.SetBaseDefault("base64"))

	// Settings persist across a reload.
	reloaded, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "sha512", reloaded.GetHashConfig().Default)
	assert.Equal(t, BaseAlphanum, reloaded.GetBaseConfig().Default)
}

func TestConfigApplyOverridesRejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Error(t, cfg.ApplyOverrides([]string{"no-colon"}))
	assert.Error(t, cfg.ApplyOverrides([]string{"unknown:value"}))
}

func TestValidators(t *testing.T) {
	assert.NoError(t, ValidateHasherName("xx64"))
	assert.Error(t, ValidateHasherName("nope"))

	assert.NoError(t, ValidateBaseName(BaseAbc))
	assert.Error(t, ValidateBaseName("base64"))

	assert.NoError(t, ValidateStride(1))
	assert.Error(t, ValidateStride(0))

	assert.NoError(t, ValidateMaxBytes("-1"))
	assert.NoError(t, ValidateMaxBytes("1048576"))
	assert.Error(t, ValidateMaxBytes("lots"))
}

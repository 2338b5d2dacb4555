package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Export.DownloadDir = t.TempDir()
	return &cfg
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	cfg.Editor.Languages = []LanguageRule{
		{Pattern: "**/*.jsx", Language: "javascript"},
		{Pattern: "src/{a,b}/*.py", Language: "python"},
	}
	cfg.Export.CopyCommand = "cat"

	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_StructuralErrorFirst(t *testing.T) {
	cfg := validConfig(t)
	cfg.Theme = "neon"

	err := cfg.ValidateDeep("")
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	assert.NotErrorAs(t, err, &fieldErrs, "structural errors are plain errors")
}

func TestValidateDeep_InvalidEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		wantErr  string
	}{
		{endpoint: "ftp://example.com/review", wantErr: "scheme"},
		{endpoint: "/ai/get-review", wantErr: "scheme"},
		{endpoint: "http:///ai/get-review", wantErr: "missing host"},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			cfg := validConfig(t)
			cfg.Review.Endpoint = tt.endpoint

			err := cfg.ValidateDeep("")

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, "review.endpoint", fieldErrs[0].Field)
			assert.Contains(t, fieldErrs[0].Err.Error(), tt.wantErr)
		})
	}
}

func TestValidateDeep_DownloadDirIsFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	cfg.Export.DownloadDir = file

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "export.download_dir", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), "not a directory")
}

func TestValidateDeep_DownloadDirMissingIsFine(t *testing.T) {
	cfg := validConfig(t)
	cfg.Export.DownloadDir = filepath.Join(t.TempDir(), "later")

	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_CopyCommandNotFound(t *testing.T) {
	cfg := validConfig(t)
	cfg.Export.CopyCommand = "nonexistent-copy-12345 --selection clipboard"

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "export.copy_command", fieldErrs[0].Field)
}

func TestValidateDeep_LanguageRules(t *testing.T) {
	cfg := validConfig(t)
	cfg.Editor.Languages = []LanguageRule{
		{Pattern: "src/[a-", Language: "go"},
		{Pattern: "*.foo", Language: "definitely-not-a-lexer"},
	}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 2)
	assert.Equal(t, "editor.languages[0].pattern", fieldErrs[0].Field)
	assert.Equal(t, "editor.languages[1].language", fieldErrs[1].Field)
}

func TestValidateDeep_UnknownDefaultLanguage(t *testing.T) {
	cfg := validConfig(t)
	cfg.Editor.Language = "klingon-script"

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "editor.language", fieldErrs[0].Field)
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)
	dir := t.TempDir()

	err := cfg.ValidateDeep(dir)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
}

func TestWarnings(t *testing.T) {
	t.Run("local http endpoint", func(t *testing.T) {
		cfg := validConfig(t)
		assert.Empty(t, cfg.Warnings())
	})

	t.Run("remote http endpoint", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Review.Endpoint = "http://review.example.com/ai/get-review"

		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, "Review", warnings[0].Category)
	})

	t.Run("loopback ip", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Review.Endpoint = "http://127.0.0.1:3000/ai/get-review"
		assert.Empty(t, cfg.Warnings())
	})

	t.Run("shadowed rule", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Editor.Languages = []LanguageRule{
			{Pattern: "*.js", Language: "javascript"},
			{Pattern: "*.js", Language: "typescript"},
		}

		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, "languages[1]", warnings[0].Item)
	})
}

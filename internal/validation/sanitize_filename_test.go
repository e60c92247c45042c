package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	validator := NewAPIValidator(nil, 10)

	tests := []struct {
		input    string
		expected string
		name     string
	}{
		{
			input:    "profile.jpg",
			expected: "profile.jpg",
			name:     "normal filename",
		},
		{
			input:    "../../../etc/passwd",
			expected: "etc_passwd",
			name:     "path traversal attack",
		},
		{
			input:    "file:with:colons.jpg",
			expected: "file_with_colons.jpg",
			name:     "colons",
		},
		{
			input:    "file|with|pipes.jpg",
			expected: "file_with_pipes.jpg",
			name:     "pipes",
		},
		{
			input:    "file?with?questions.jpg",
			expected: "file_with_questions.jpg",
			name:     "question marks",
		},
		{
			input:    "file<with>brackets.jpg",
			expected: "file_with_brackets.jpg",
			name:     "angle brackets",
		},
		{
			input:    "file\"with\"quotes.jpg",
			expected: "file_with_quotes.jpg",
			name:     "quotes",
		},
		{
			input:    "file\\with\\backslashes.jpg",
			expected: "file_with_backslashes.jpg",
			name:     "backslashes",
		},
		{
			input:    "file/with/slashes.jpg",
			expected: "file_with_slashes.jpg",
			name:     "forward slashes",
		},
		{
			input:    "file*with*wildcards.jpg",
			expected: "file_with_wildcards.jpg",
			name:     "wildcards",
		},
		{
			input:    "///..\\\\..//file.jpg",
			expected: "file.jpg",
			name:     "multiple dangerous chars in sequence",
		},
		{
			input:    "....jpg",
			expected: "unnamed_file.jpg",
			name:     "multiple dots should be cleaned but preserve extension",
		},
		{
			input:    "______file.jpg",
			expected: "file.jpg",
			name:     "leading underscores should be trimmed",
		},
		{
			input:    "file.jpg______",
			expected: "file.jpg",
			name:     "trailing underscores should be trimmed",
		},
		{
			input:    "../../../",
			expected: "unnamed_file",
			name:     "all dangerous chars should fallback to unnamed_file",
		},
		{
			input:    "",
			expected: "unnamed_file",
			name:     "empty filename should fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.SanitizeFilename(tt.input)
			assert.Equal(t, tt.expected, result, "Input: %s", tt.input)
		})
	}
}

func TestSanitizeFilenameLongName(t *testing.T) {
	validator := NewAPIValidator(nil, 10)

	// Créer un nom très long
	longName := strings.Repeat("a", 250) + ".jpg"
	result := validator.SanitizeFilename(longName)

	// Vérifier que c'est tronqué à 200 caractères max
	assert.LessOrEqual(t, len(result), 200)

	// Vérifier que l'extension est préservée
	assert.True(t, strings.HasSuffix(result, ".jpg"))

	// Vérifier que la base est tronquée correctement
	expectedBase := strings.Repeat("a", 200-4) // 200 - len(".jpg")
	expected := expectedBase + ".jpg"
	assert.Equal(t, expected, result)
}

func TestSanitizeFilenamePreservesValidChars(t *testing.T) {
	validator := NewAPIValidator(nil, 10)

	// Caractères valides qui doivent être préservés
	validChars := "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_()[]"
	filename := validChars + ".jpg"

	result := validator.SanitizeFilename(filename)

	// Tous les caractères valides doivent être préservés
	assert.Equal(t, filename, result)
}

func TestSanitizeFilenameEdgeCases(t *testing.T) {
	validator := NewAPIValidator(nil, 10)

	tests := []struct {
		input    string
		expected string
		name     string
	}{
		{
			input:    ".hidden",
			expected: ".hidden",
			name:     "hidden file (starting with dot)",
		},
		{
			input:    "file.",
			expected: "file",
			name:     "file ending with dot",
		},
		{
			input:    "con.jpg",
			expected: "con.jpg",
			name:     "reserved name (handled by validation, not sanitization)",
		},
		{
			input:    "file name with spaces.jpg",
			expected: "file name with spaces.jpg",
			name:     "spaces should be preserved",
		},
		{
			input:    "Beach.JPG",
			expected: "Beach.jpg",
			name:     "extension is lowercased",
		},
		{
			input:    "file-with-dashes_and_underscores.jpg",
			expected: "file-with-dashes_and_underscores.jpg",
			name:     "dashes and underscores should be preserved",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.SanitizeFilename(tt.input)
			assert.Equal(t, tt.expected, result, "Input: %s", tt.input)
		})
	}
}

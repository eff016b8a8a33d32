package domain

import (
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var safeFilename = regexp.MustCompile(`^[\w\-.]+$`)

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"My File!!.PDF", "My_File_.PDF"},
		{"photo.png", "photo.png"},
		{"a  b   c.jpg", "a_b_c.jpg"},
		{"über-manual v2.pdf", "_ber-manual_v2.pdf"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"", "file"},
		{"!!!", "file"},
		{"..", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := SanitizeFilename(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Regexp(t, safeFilename, got)
			assert.NotContains(t, got, "__")
		})
	}
}

func TestAssetPath(t *testing.T) {
	t.Parallel()

	equipmentID := uuid.MustParse("5f0c2f8e-8a52-4a8e-9d55-0a3c52f3c001")
	path := AssetPath(equipmentID, "My File!!.PDF")
	parts := strings.SplitN(path, "/", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, equipmentID.String(), parts[0])

	// {uuid}-{sanitized}
	require.Greater(t, len(parts[1]), 37)
	_, err := uuid.Parse(parts[1][:36])
	assert.NoError(t, err)
	assert.Equal(t, "-My_File_.PDF", parts[1][36:])

	assert.NotEqual(t, path, AssetPath(equipmentID, "My File!!.PDF"))
}

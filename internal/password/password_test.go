package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck_Bcrypt(t *testing.T) {
	hashed, err := Hash("s3creto")
	require.NoError(t, err)

	assert.NotEqual(t, "s3creto", hashed)
	assert.True(t, Check(hashed, "s3creto"))
	assert.False(t, Check(hashed, "otro"))
}

func TestCheck_DjangoPBKDF2(t *testing.T) {
	encoded := EncodePBKDF2("s3creto", "abcdefgh", 1000)

	assert.True(t, Check(encoded, "s3creto"))
	assert.False(t, Check(encoded, "S3creto"))
}

func TestCheck_MalformedHashes(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{name: "empty", encoded: ""},
		{name: "plain text", encoded: "s3creto"},
		{name: "pbkdf2 missing parts", encoded: "pbkdf2_sha256$1000$salt"},
		{name: "pbkdf2 bad iterations", encoded: "pbkdf2_sha256$abc$salt$aGFzaA=="},
		{name: "pbkdf2 bad base64", encoded: "pbkdf2_sha256$1000$salt$***"},
		{name: "unknown algorithm", encoded: "md5$salt$hash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Check(tt.encoded, "s3creto"))
		})
	}
}

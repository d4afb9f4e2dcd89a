package firebase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevTokenVerifier(t *testing.T) {
	v := NewDevTokenVerifier()

	claims, err := v.VerifyToken(context.Background(), DevToken("u-42"))
	require.NoError(t, err)
	assert.Equal(t, "u-42", claims.UID)

	for _, token := range []string{"", "dev:", "u-42", "eyJhbGciOi"} {
		_, err := v.VerifyToken(context.Background(), token)
		assert.Error(t, err, token)
	}
}

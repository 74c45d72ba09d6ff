package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prestamos/loan-service/internal/domain/apperror"
)

// AssertKind checks that err carries the given apperror kind.
func AssertKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apperror.KindOf(err), "error: %v", err)
}

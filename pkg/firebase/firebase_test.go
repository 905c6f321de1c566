package firebase

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitFirebaseNeedsCredentials(t *testing.T) {
	_, err := InitFirebase(context.Background(), "")
	require.Error(t, err)

	_, err = InitFirebase(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

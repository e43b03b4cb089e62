package tlsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDevCertificates_LoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	paths, err := GenerateDevCertificates([]string{"localhost", "127.0.0.1"}, dir)
	require.NoError(t, err)

	for _, p := range []string{paths.CACert, paths.CAKey, paths.ServerCert, paths.ServerKey} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	serverCreds, err := ServerCredentials(paths.ServerCert, paths.ServerKey)
	require.NoError(t, err)
	assert.Equal(t, "tls", serverCreds.Info().SecurityProtocol)

	clientCreds, err := ClientCredentials(paths.CACert, "localhost")
	require.NoError(t, err)
	assert.Equal(t, "localhost", clientCreds.Info().ServerName)
}

func TestServerCredentials_MissingFiles(t *testing.T) {
	_, err := ServerCredentials("/nonexistent/cert.pem", "/nonexistent/key.pem")
	assert.ErrorContains(t, err, "load server key pair")
}

func TestClientCredentials_BadCA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(path, []byte("not a certificate"), 0o600))

	_, err := ClientCredentials(path, "localhost")
	assert.ErrorContains(t, err, "no certificates found")
}

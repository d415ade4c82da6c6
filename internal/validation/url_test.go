package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL_RejectsEmpty(t *testing.T) {
	err := ValidateURL(context.Background(), "", DefaultValidationOptions())
	require.Error(t, err)
}

func TestValidateURL_RejectsNonHTTPScheme(t *testing.T) {
	err := ValidateURL(context.Background(), "ftp://example.com/a", DefaultValidationOptions())
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "scheme", verr.Type)
}

func TestValidateURL_RejectsLocalhostByDefault(t *testing.T) {
	err := ValidateURL(context.Background(), "http://localhost:8080/", DefaultValidationOptions())
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "localhost", verr.Type)
}

func TestValidateURL_AllowsLocalhostWhenOptedIn(t *testing.T) {
	opts := DefaultValidationOptions()
	opts.AllowLocalhost = true
	opts.AllowPrivateNetworks = true
	err := ValidateURL(context.Background(), "http://localhost:8080/", opts)
	assert.NoError(t, err)
}

func TestValidateURL_RejectsOversizeHostname(t *testing.T) {
	opts := DefaultValidationOptions()
	opts.MaxHostnameLength = 5
	err := ValidateURL(context.Background(), "http://example.com/", opts)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "hostname_length", verr.Type)
}

func TestValidateURL_RequiresHTTPSWhenConfigured(t *testing.T) {
	opts := DefaultValidationOptions()
	opts.RequireHTTPS = true
	err := ValidateURL(context.Background(), "http://example.com/", opts)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "scheme", verr.Type)
}

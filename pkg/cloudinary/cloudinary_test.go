package cloudinary

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/MohamedHisham20/media-sharing-platform/internal/models"
	"github.com/MohamedHisham20/media-sharing-platform/pkg/config"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	c, err := New(config.Cloudinary{
		CloudName:    "demo",
		APIKey:       "key123",
		APISecret:    "secret456",
		UploadFolder: "media",
	})
	require.NoError(t, err)
	return c
}

func TestNew_MissingCredentials(t *testing.T) {
	_, err := New(config.Cloudinary{CloudName: "demo"})
	require.Error(t, err)
}

func TestSignUploadRequest_GrantShape(t *testing.T) {
	c := testClient(t)

	grant, err := c.SignUploadRequest(models.MediaTypeImage)
	require.NoError(t, err)

	require.Equal(t, "https://api.cloudinary.com/v1_1/demo/image/upload", grant.URL)
	require.True(t, strings.HasPrefix(grant.PublicID, "media/"), "object key must be folder-scoped")
	require.Equal(t, "key123", grant.APIKey)
	require.Equal(t, "demo", grant.CloudName)
	require.Equal(t, "media", grant.Folder)
	require.Equal(t, models.MediaTypeImage, grant.ResourceType)
	require.NotZero(t, grant.Timestamp)
	require.NotEmpty(t, grant.Signature)
}

func TestSignUploadRequest_SignatureBindsParams(t *testing.T) {
	c := testClient(t)

	grant, err := c.SignUploadRequest(models.MediaTypeVideo)
	require.NoError(t, err)

	params := url.Values{}
	params.Set("folder", grant.Folder)
	params.Set("public_id", grant.PublicID)
	params.Set("resource_type", grant.ResourceType)
	params.Set("timestamp", strconv.FormatInt(grant.Timestamp, 10))

	expected, err := api.SignParameters(params, "secret456")
	require.NoError(t, err)
	require.Equal(t, expected, grant.Signature)
}

func TestSignUploadRequest_FreshKeys(t *testing.T) {
	c := testClient(t)

	a, err := c.SignUploadRequest(models.MediaTypeImage)
	require.NoError(t, err)
	b, err := c.SignUploadRequest(models.MediaTypeImage)
	require.NoError(t, err)
	require.NotEqual(t, a.PublicID, b.PublicID, "every grant must carry a fresh object key")
}

// stubProvider points the SDK at a local server with a canned response.
// API-level failures arrive as an error body with a 4xx status, which the
// SDK unmarshals into the result instead of returning a Go error.
func stubProvider(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)

	c := testClient(t)
	// The SDK's sub-clients each hold their own copy of the configuration,
	// so the stub URL must be set on them directly.
	c.cld.Config.API.UploadPrefix = srv.URL
	c.cld.Admin.Config.API.UploadPrefix = srv.URL
	c.cld.Upload.Config.API.UploadPrefix = srv.URL
	return c
}

func TestVerifyUpload_UnresolvableObject(t *testing.T) {
	c := stubProvider(t, http.StatusNotFound,
		`{"error":{"message":"Resource not found - media/forged"}}`)

	resolved, err := c.VerifyUpload(context.Background(), "media/forged", models.MediaTypeImage)
	require.Error(t, err, "an unresolvable object key must surface an error")
	require.Contains(t, err.Error(), "Resource not found")
	require.Empty(t, resolved)
}

func TestVerifyUpload_ResolvesURL(t *testing.T) {
	c := stubProvider(t, http.StatusOK,
		`{"public_id":"media/abc","secure_url":"https://res.cloudinary.com/demo/image/upload/media/abc.png"}`)

	resolved, err := c.VerifyUpload(context.Background(), "media/abc", models.MediaTypeImage)
	require.NoError(t, err)
	require.Equal(t, "https://res.cloudinary.com/demo/image/upload/media/abc.png", resolved)
}

func TestUpload_ProviderRejection(t *testing.T) {
	c := stubProvider(t, http.StatusBadRequest,
		`{"error":{"message":"Invalid image file"}}`)

	path := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(path, []byte("not a real image"), 0o600))

	resolved, err := c.Upload(context.Background(), path, models.MediaTypeImage)
	require.Error(t, err, "a rejected upload must surface an error")
	require.Contains(t, err.Error(), "Invalid image file")
	require.Empty(t, resolved)
}

func TestAssetType(t *testing.T) {
	// api.Video is an untyped string constant in the SDK, unlike api.Image;
	// coerce it so the comparison is by value rather than failing on type.
	require.Equal(t, api.AssetType(api.Video), assetType(models.MediaTypeVideo))
	require.Equal(t, api.Image, assetType(models.MediaTypeImage))
	require.Equal(t, api.Image, assetType("other"))
}

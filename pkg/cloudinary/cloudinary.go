package cloudinary

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/MohamedHisham20/media-sharing-platform/internal/models"
	"github.com/MohamedHisham20/media-sharing-platform/pkg/config"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Client wraps the Cloudinary SDK. All uploads are namespaced under the
// configured folder.
type Client struct {
	cld *cloudinary.Cloudinary
	cfg config.Cloudinary
}

// New creates a Cloudinary client from explicit credentials
func New(cfg config.Cloudinary) (*Client, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not configured")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("error initializing cloudinary client: %w", err)
	}
	return &Client{cld: cld, cfg: cfg}, nil
}

// Upload relays a local file to Cloudinary and returns its canonical
// secure URL. The SDK reports API-level rejections in the result body
// rather than as a Go error, so the result must be checked too.
func (c *Client) Upload(ctx context.Context, filePath, resourceType string) (string, error) {
	resp, err := c.cld.Upload.Upload(ctx, filePath, uploader.UploadParams{
		Folder:       c.cfg.UploadFolder,
		ResourceType: resourceType,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload returned no url for %s", filePath)
	}
	return resp.SecureURL, nil
}

// SignUploadRequest produces a stateless grant for a direct client upload.
// The signature binds {folder, public_id, resource_type, timestamp} with the
// API secret; Cloudinary verifies it when the client redeems the grant, so
// nothing is persisted server-side.
func (c *Client) SignUploadRequest(resourceType string) (*models.UploadGrant, error) {
	timestamp := time.Now().Unix()
	publicID := c.cfg.UploadFolder + "/" + uuid.NewString()

	params := url.Values{}
	params.Set("folder", c.cfg.UploadFolder)
	params.Set("public_id", publicID)
	params.Set("resource_type", resourceType)
	params.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(params, c.cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign upload request: %w", err)
	}

	return &models.UploadGrant{
		URL:          fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/%s/upload", c.cfg.CloudName, resourceType),
		PublicID:     publicID,
		Signature:    signature,
		Timestamp:    timestamp,
		APIKey:       c.cfg.APIKey,
		CloudName:    c.cfg.CloudName,
		Folder:       c.cfg.UploadFolder,
		ResourceType: resourceType,
	}, nil
}

// VerifyUpload looks up a stored object by public id and returns its
// canonical secure URL. Success is the proof that the direct upload
// actually completed. A lookup miss comes back as an error message in
// the result body with a nil Go error, so both must be checked.
func (c *Client) VerifyUpload(ctx context.Context, publicID, resourceType string) (string, error) {
	res, err := c.cld.Admin.Asset(ctx, admin.AssetParams{
		PublicID:  publicID,
		AssetType: assetType(resourceType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to verify upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("failed to verify upload: %s", res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", fmt.Errorf("failed to verify upload: no url resolved for %s", publicID)
	}
	return res.SecureURL, nil
}

// Delete removes a stored object from Cloudinary
func (c *Client) Delete(ctx context.Context, publicID, resourceType string) error {
	_, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}
	return nil
}

func assetType(resourceType string) api.AssetType {
	if resourceType == models.MediaTypeVideo {
		return api.Video
	}
	return api.Image
}

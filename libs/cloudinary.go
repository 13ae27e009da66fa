package libs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

func newClient() (*cloudinary.Cloudinary, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName != "" && apiKey != "" && apiSecret != "" {
		return cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	}

	cldURL := os.Getenv("CLOUDINARY_URL")
	if cldURL == "" {
		return nil, fmt.Errorf("cloudinary environment variables not set")
	}
	return cloudinary.NewFromURL(cldURL)
}

// UploadDishImage pushes a locally saved image to Cloudinary and removes the
// local file afterwards. Returns the hosted image URL.
func UploadDishImage(localPath string) (string, error) {
	if _, err := os.Stat(localPath); os.IsNotExist(err) {
		return "", fmt.Errorf("file not found: %s", localPath)
	}

	cld, err := newClient()
	if err != nil {
		return "", err
	}

	resp, err := cld.Upload.Upload(context.Background(), localPath, uploader.UploadParams{
		PublicID: fmt.Sprintf("dish_%d", time.Now().UnixNano()),
		Folder:   "dishes",
	})
	os.Remove(localPath)

	if err != nil {
		return "", err
	}
	if resp == nil || (resp.SecureURL == "" && resp.URL == "") {
		return "", fmt.Errorf("cloudinary returned no URL")
	}

	if resp.SecureURL != "" {
		return resp.SecureURL, nil
	}
	return resp.URL, nil
}

// PublicIDFromURL recovers the Cloudinary public id from a hosted image URL,
// e.g. ".../image/upload/v123/dishes/dish_456.png" yields "dishes/dish_456".
// Returns "" for URLs that are not Cloudinary delivery URLs.
func PublicIDFromURL(imageURL string) string {
	_, after, found := strings.Cut(imageURL, "/upload/")
	if !found {
		return ""
	}

	// Drop the version segment if present.
	if strings.HasPrefix(after, "v") {
		if head, rest, ok := strings.Cut(after, "/"); ok {
			if _, err := strconv.Atoi(head[1:]); err == nil {
				after = rest
			}
		}
	}

	ext := filepath.Ext(after)
	return strings.TrimSuffix(after, ext)
}

func DeleteDishImage(publicID string) error {
	cld, err := newClient()
	if err != nil {
		return err
	}

	result, err := cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete from Cloudinary: %w", err)
	}
	if result.Result != "ok" {
		return fmt.Errorf("cloudinary deletion failed: %s", result.Result)
	}
	return nil
}

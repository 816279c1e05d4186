package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/shahil8848/Quickcart/internal/config"
)

// ObjectStoreClient uploads binary payloads to the image CDN and returns a
// stable retrievable URL per upload.
type ObjectStoreClient interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

type cloudinaryClientImpl struct {
	httpClient   *http.Client
	baseApiURL   string
	cloudName    string
	uploadPreset string
	folder       string
}

func NewObjectStoreClient(cfg *config.Cloudinary) ObjectStoreClient {
	return &cloudinaryClientImpl{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseApiURL:   cfg.BaseApiURL,
		cloudName:    cfg.CloudName,
		uploadPreset: cfg.UploadPreset,
		folder:       cfg.Folder,
	}
}

func (c *cloudinaryClientImpl) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("copy file content: %w", err)
	}
	if err := writer.WriteField("upload_preset", c.uploadPreset); err != nil {
		return "", fmt.Errorf("write upload preset: %w", err)
	}
	if err := writer.WriteField("folder", c.folder); err != nil {
		return "", fmt.Errorf("write folder: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	uploadURL := fmt.Sprintf("%s/v1_1/%s/image/upload", c.baseApiURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("object store error %d: %s", resp.StatusCode, string(b))
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}

	return result.SecureURL, nil
}

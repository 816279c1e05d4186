package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahil8848/Quickcart/internal/config"
)

func TestObjectStoreUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1_1/demo-cloud/image/upload", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "unsigned-preset", r.FormValue("upload_preset"))
		assert.Equal(t, "product", r.FormValue("folder"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "front.png", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(content))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"secure_url":"https://cdn.test/product/front.png"}`)
	}))
	defer srv.Close()

	c := NewObjectStoreClient(&config.Cloudinary{
		BaseApiURL:   srv.URL,
		CloudName:    "demo-cloud",
		UploadPreset: "unsigned-preset",
		Folder:       "product",
	})

	url, err := c.Upload(context.Background(), "front.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/product/front.png", url)
}

func TestObjectStoreUpload_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewObjectStoreClient(&config.Cloudinary{BaseApiURL: srv.URL, CloudName: "demo-cloud"})

	_, err := c.Upload(context.Background(), "front.png", strings.NewReader("png"))
	require.Error(t, err)
}

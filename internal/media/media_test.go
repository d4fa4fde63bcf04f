package media

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusNotImplemented)
		return
	}
	body, _ := io.ReadAll(r.Body)
	b.objects[r.URL.Path] = body
	b.types[r.URL.Path] = r.Header.Get("Content-Type")
	w.Header().Set("ETag", `"etag123"`)
	w.WriteHeader(http.StatusOK)
}

func newFakeS3(t *testing.T) (*S3, *fakeBucket, string) {
	t.Helper()
	bucket := &fakeBucket{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	up, err := NewS3(context.Background(), Config{
		Bucket:          "hotel-media",
		Endpoint:        srv.URL,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PathStyle:       true,
	})
	require.NoError(t, err)
	return up, bucket, srv.URL
}

func TestPutUploadsObject(t *testing.T) {
	up, bucket, base := newFakeS3(t)

	url, err := up.Put(context.Background(), "h1/amenities/spa.png", bytes.NewReader([]byte("png-bytes")), "image/png")
	require.NoError(t, err)
	assert.Equal(t, base+"/hotel-media/h1/amenities/spa.png", url)
	assert.Equal(t, []byte("png-bytes"), bucket.objects["/hotel-media/h1/amenities/spa.png"])
	assert.Equal(t, "image/png", bucket.types["/hotel-media/h1/amenities/spa.png"])
}

func TestUploadFileDetectsType(t *testing.T) {
	up, bucket, _ := newFakeS3(t)
	file := filepath.Join(t.TempDir(), "Pool.JPG")
	require.NoError(t, os.WriteFile(file, []byte("\xff\xd8\xff\xe0jpeg"), 0o600))

	url, err := UploadFile(context.Background(), up, "h1", "amenities", file)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".jpg"), url)
	assert.Contains(t, url, "/hotel-media/h1/amenities/")

	require.Len(t, bucket.objects, 1)
	for key, body := range bucket.objects {
		assert.Equal(t, "\xff\xd8\xff\xe0jpeg", string(body))
		assert.Equal(t, "image/jpeg", bucket.types[key])
	}
}

func TestUploadFileMissing(t *testing.T) {
	up, _, _ := newFakeS3(t)
	_, err := UploadFile(context.Background(), up, "h1", "places", filepath.Join(t.TempDir(), "nope.png"))
	assert.ErrorContains(t, err, "open")
}

func TestObjectKeyLayout(t *testing.T) {
	key := ObjectKey("h1", "places", "/tmp/Map.PDF")
	parts := strings.Split(key, "/")
	require.Len(t, parts, 3)
	assert.Equal(t, "h1", parts[0])
	assert.Equal(t, "places", parts[1])
	assert.True(t, strings.HasSuffix(parts[2], ".pdf"))
	assert.Len(t, strings.TrimSuffix(parts[2], ".pdf"), 36)

	assert.True(t, strings.HasPrefix(ObjectKey("", "places", "x"), "shared/places/"))
}

func TestURLVariants(t *testing.T) {
	public := &S3{cfg: Config{Bucket: "b", PublicBaseURL: "https://cdn.hotel.io/"}}
	assert.Equal(t, "https://cdn.hotel.io/k.png", public.URL("k.png"))

	aws := &S3{cfg: Config{Bucket: "b", Region: "eu-west-1"}}
	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com/k.png", aws.URL("k.png"))
}

func TestNewS3RequiresBucket(t *testing.T) {
	_, err := NewS3(context.Background(), Config{})
	assert.ErrorContains(t, err, "bucket")
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("ELVIRA_S3_BUCKET", "media")
	t.Setenv("ELVIRA_S3_PATH_STYLE", "TRUE")
	cfg := ConfigFromEnv()
	assert.Equal(t, "media", cfg.Bucket)
	assert.True(t, cfg.PathStyle)
}

package minio

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/require"
)

// s3Stub serves the subset of the S3 REST API the filesystem uses:
// HeadObject, GetObject and ListObjectsV2 with a delimiter.
type s3Stub struct {
	bucket  string
	objects map[string][]byte
	modTime time.Time

	mu    sync.Mutex
	calls map[string]int
}

type listBucketResult struct {
	XMLName        xml.Name       `xml:"http://s3.amazonaws.com/doc/2006-03-01/ ListBucketResult"`
	Name           string         `xml:"Name"`
	Prefix         string         `xml:"Prefix"`
	Delimiter      string         `xml:"Delimiter,omitempty"`
	KeyCount       int            `xml:"KeyCount"`
	MaxKeys        int            `xml:"MaxKeys"`
	IsTruncated    bool           `xml:"IsTruncated"`
	Contents       []listObject   `xml:"Contents"`
	CommonPrefixes []commonPrefix `xml:"CommonPrefixes"`
}

type listObject struct {
	Key          string `xml:"Key"`
	LastModified string `xml:"LastModified"`
	ETag         string `xml:"ETag"`
	Size         int64  `xml:"Size"`
	StorageClass string `xml:"StorageClass"`
}

type commonPrefix struct {
	Prefix string `xml:"Prefix"`
}

type errorResponse struct {
	XMLName    xml.Name `xml:"Error"`
	Code       string   `xml:"Code"`
	Message    string   `xml:"Message"`
	BucketName string   `xml:"BucketName"`
	Key        string   `xml:"Key"`
}

// newStubFS starts an S3 stub holding objects and returns a filesystem over it.
func newStubFS(t *testing.T, objects map[string][]byte, opts ...Option) (*MinioFS, *s3Stub) {
	t.Helper()

	stub := &s3Stub{
		bucket:  "test-bucket",
		objects: objects,
		modTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		calls:   make(map[string]int),
	}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	client, err := minio.New(u.Host, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
		Region: "us-east-1",
	})
	require.NoError(t, err)

	return New(client, stub.bucket, opts...), stub
}

func (s *s3Stub) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *s3Stub) record(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
}

func (s *s3Stub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	if bucket != s.bucket {
		s.writeError(w, r, http.StatusNotFound, "NoSuchBucket", key)
		return
	}

	switch {
	case r.Method == http.MethodGet && key == "" && r.URL.Query().Get("list-type") == "2":
		s.record("ListObjectsV2")
		s.list(w, r)
	case r.Method == http.MethodHead || (r.Method == http.MethodGet && key != ""):
		if r.Method == http.MethodHead {
			s.record("HeadObject")
		} else {
			s.record("GetObject")
		}
		data, ok := s.objects[key]
		if !ok {
			s.writeError(w, r, http.StatusNotFound, "NoSuchKey", key)
			return
		}
		w.Header().Set("Content-Length", fmt.Sprint(len(data)))
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Last-Modified", s.modTime.Format(http.TimeFormat))
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = w.Write(data)
		}
	default:
		s.writeError(w, r, http.StatusMethodNotAllowed, "MethodNotAllowed", key)
	}
}

func (s *s3Stub) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	prefix := q.Get("prefix")
	delimiter := q.Get("delimiter")

	keys := make([]string, 0, len(s.objects))
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	result := listBucketResult{
		Name:      s.bucket,
		Prefix:    prefix,
		Delimiter: delimiter,
		MaxKeys:   1000,
	}
	seen := make(map[string]bool)
	for _, key := range keys {
		if delimiter != "" {
			if i := strings.Index(key[len(prefix):], delimiter); i >= 0 {
				cp := key[:len(prefix)+i+len(delimiter)]
				if !seen[cp] {
					seen[cp] = true
					result.CommonPrefixes = append(result.CommonPrefixes, commonPrefix{Prefix: cp})
				}
				continue
			}
		}
		result.Contents = append(result.Contents, listObject{
			Key:          key,
			LastModified: s.modTime.Format(time.RFC3339),
			ETag:         `"d41d8cd98f00b204e9800998ecf8427e"`,
			Size:         int64(len(s.objects[key])),
			StorageClass: "STANDARD",
		})
	}
	result.KeyCount = len(result.Contents) + len(result.CommonPrefixes)

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_ = xml.NewEncoder(w).Encode(result)
}

func (s *s3Stub) writeError(w http.ResponseWriter, r *http.Request, status int, code, key string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = xml.NewEncoder(w).Encode(errorResponse{
		Code:       code,
		Message:    code,
		BucketName: s.bucket,
		Key:        key,
	})
}

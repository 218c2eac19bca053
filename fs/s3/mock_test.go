package s3

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// mockS3Client is an in-memory bucket implementing API.
// The function fields, when set, override the in-memory behaviour.
type mockS3Client struct {
	objects map[string][]byte
	modTime time.Time
	calls   map[string]int

	GetObjectFunc     func(context.Context, *awss3.GetObjectInput, ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	HeadObjectFunc    func(context.Context, *awss3.HeadObjectInput, ...func(*awss3.Options)) (*awss3.HeadObjectOutput, error)
	ListObjectsV2Func func(context.Context, *awss3.ListObjectsV2Input, ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error)
}

func newMockS3Client(objects map[string][]byte) *mockS3Client {
	return &mockS3Client{
		objects: objects,
		modTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		calls:   make(map[string]int),
	}
}

// GetObject mocks the S3 GetObject operation.
func (m *mockS3Client) GetObject(
	ctx context.Context,
	params *awss3.GetObjectInput,
	optFns ...func(*awss3.Options),
) (*awss3.GetObjectOutput, error) {
	m.calls["GetObject"]++
	if m.GetObjectFunc != nil {
		return m.GetObjectFunc(ctx, params, optFns...)
	}
	data, ok := m.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &awss3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

// HeadObject mocks the S3 HeadObject operation.
func (m *mockS3Client) HeadObject(
	ctx context.Context,
	params *awss3.HeadObjectInput,
	optFns ...func(*awss3.Options),
) (*awss3.HeadObjectOutput, error) {
	m.calls["HeadObject"]++
	if m.HeadObjectFunc != nil {
		return m.HeadObjectFunc(ctx, params, optFns...)
	}
	data, ok := m.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &awss3.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(data))),
		LastModified:  aws.Time(m.modTime),
	}, nil
}

// ListObjectsV2 mocks the S3 ListObjectsV2 operation, including delimiters
// and continuation tokens.
func (m *mockS3Client) ListObjectsV2(
	ctx context.Context,
	params *awss3.ListObjectsV2Input,
	optFns ...func(*awss3.Options),
) (*awss3.ListObjectsV2Output, error) {
	m.calls["ListObjectsV2"]++
	if m.ListObjectsV2Func != nil {
		return m.ListObjectsV2Func(ctx, params, optFns...)
	}

	prefix := aws.ToString(params.Prefix)
	delimiter := aws.ToString(params.Delimiter)
	maxKeys := int(aws.ToInt32(params.MaxKeys))
	if maxKeys == 0 {
		maxKeys = 1000
	}

	// Collect keys and common prefixes in lexical order.
	seen := make(map[string]bool)
	var entries []string
	for key := range m.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		entry := key
		if delimiter != "" {
			if i := strings.Index(key[len(prefix):], delimiter); i >= 0 {
				entry = key[:len(prefix)+i+len(delimiter)]
			}
		}
		if !seen[entry] {
			seen[entry] = true
			entries = append(entries, entry)
		}
	}
	sort.Strings(entries)

	start := 0
	if token := aws.ToString(params.ContinuationToken); token != "" {
		start = sort.SearchStrings(entries, token) + 1
	}

	out := &awss3.ListObjectsV2Output{}
	end := min(start+maxKeys, len(entries))
	for _, entry := range entries[start:end] {
		if _, isObject := m.objects[entry]; isObject && (delimiter == "" || !strings.HasSuffix(entry, delimiter) || entry == prefix) {
			out.Contents = append(out.Contents, types.Object{
				Key:          aws.String(entry),
				Size:         aws.Int64(int64(len(m.objects[entry]))),
				LastModified: aws.Time(m.modTime),
			})
			continue
		}
		out.CommonPrefixes = append(out.CommonPrefixes, types.CommonPrefix{Prefix: aws.String(entry)})
	}
	out.KeyCount = aws.Int32(int32(end - start))
	if end < len(entries) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(entries[end-1])
	} else {
		out.IsTruncated = aws.Bool(false)
	}
	return out, nil
}

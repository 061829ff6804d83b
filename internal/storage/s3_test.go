package storage

import (
	"context"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	objects map[string]string
}

func newFakeS3() *fakeS3 { return &fakeS3{objects: map[string]string{}} }

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = string(b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) UploadPart(ctx context.Context, in *s3.UploadPartInput, _ ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	return &s3.UploadPartOutput{}, nil
}

func (f *fakeS3) CreateMultipartUpload(ctx context.Context, in *s3.CreateMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	return &s3.CreateMultipartUploadOutput{UploadId: aws.String("u1")}, nil
}

func (f *fakeS3) CompleteMultipartUpload(ctx context.Context, in *s3.CompleteMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	return &s3.CompleteMultipartUploadOutput{}, nil
}

func (f *fakeS3) AbortMultipartUpload(ctx context.Context, in *s3.AbortMultipartUploadInput, _ ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	return &s3.AbortMultipartUploadOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	for _, id := range in.Delete.Objects {
		delete(f.objects, aws.ToString(id.Key))
	}
	return &s3.DeleteObjectsOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func TestS3SaveDeleteClear(t *testing.T) {
	fake := newFakeS3()
	store := newS3(fake, "media", "https://cdn.example.com/")
	ctx := context.Background()

	url, err := store.Save(ctx, "ads/a1/m1.jpg", "image/jpeg", strings.NewReader("jpeg"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if url != "https://cdn.example.com/ads/a1/m1.jpg" {
		t.Fatalf("unexpected url %q", url)
	}
	if fake.objects["ads/a1/m1.jpg"] != "jpeg" {
		t.Fatalf("object not stored: %v", fake.objects)
	}

	_, _ = store.Save(ctx, "ads/a1/m2.jpg", "image/jpeg", strings.NewReader("x"))
	_, _ = store.Save(ctx, "ads/a10/m3.jpg", "image/jpeg", strings.NewReader("y"))

	if err := store.Delete(ctx, "ads/a1/m2.jpg"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := fake.objects["ads/a1/m2.jpg"]; ok {
		t.Fatalf("object not deleted")
	}

	if err := store.Clear(ctx, AdPrefix("a1")); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := fake.objects["ads/a1/m1.jpg"]; ok {
		t.Fatalf("expected ads/a1 cleared")
	}
	if _, ok := fake.objects["ads/a10/m3.jpg"]; !ok {
		t.Fatalf("clear must not touch sibling ads sharing a prefix")
	}
}

package minio

import "testing"

func TestParseObjectURL(t *testing.T) {
	cases := []struct {
		name       string
		url        string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{
			name:       "simple object",
			url:        "http://localhost:9000/videos/1/123.mp4",
			wantBucket: "videos",
			wantObject: "1/123.mp4",
		},
		{
			name:       "https endpoint",
			url:        "https://media.example.com/thumbnails/7/456.png",
			wantBucket: "thumbnails",
			wantObject: "7/456.png",
		},
		{
			name:    "no scheme",
			url:     "localhost:9000/videos/1.mp4",
			wantErr: true,
		},
		{
			name:    "missing object name",
			url:     "http://localhost:9000/videos/",
			wantErr: true,
		},
		{
			name:    "missing bucket",
			url:     "http://localhost:9000",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bucket, object, err := ParseObjectURL(tc.url)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.url)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse %q: %v", tc.url, err)
			}
			if bucket != tc.wantBucket {
				t.Fatalf("expected bucket %q, got %q", tc.wantBucket, bucket)
			}
			if object != tc.wantObject {
				t.Fatalf("expected object %q, got %q", tc.wantObject, object)
			}
		})
	}
}

func TestPublicURL(t *testing.T) {
	url := PublicURL("localhost:9000", false, "avatars", "1/2.jpg")
	if url != "http://localhost:9000/avatars/1/2.jpg" {
		t.Fatalf("unexpected url %q", url)
	}

	url = PublicURL("media.example.com", true, "covers", "3/4.png")
	if url != "https://media.example.com/covers/3/4.png" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestBootstrapBucketsCoversUploadTargets(t *testing.T) {
	// 配置漏掉 thumbnails 也必须补齐，否则首个上传就会失败
	buckets := bootstrapBuckets([]string{"avatars", "covers", "videos"})

	want := map[string]bool{
		BucketAvatars: false, BucketCovers: false, BucketVideos: false, BucketThumbnails: false,
	}
	for _, b := range buckets {
		if _, ok := want[b]; ok {
			want[b] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("bucket %s missing from bootstrap set %v", name, buckets)
		}
	}
}

func TestBootstrapBucketsKeepsExtraAndDeduplicates(t *testing.T) {
	buckets := bootstrapBuckets([]string{"avatars", "backups", "backups"})

	seen := make(map[string]int)
	for _, b := range buckets {
		seen[b]++
	}
	if seen["backups"] != 1 {
		t.Fatalf("extra bucket should appear exactly once, got %d in %v", seen["backups"], buckets)
	}
	if seen[BucketAvatars] != 1 {
		t.Fatalf("duplicate of a fixed bucket must be dropped, got %d in %v", seen[BucketAvatars], buckets)
	}
	if len(buckets) != 5 {
		t.Fatalf("expected 4 fixed + 1 extra buckets, got %v", buckets)
	}
}

func TestParseObjectURLRoundTrip(t *testing.T) {
	original := PublicURL("localhost:9000", false, BucketVideos, "9/999.mp4")
	bucket, object, err := ParseObjectURL(original)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if bucket != BucketVideos || object != "9/999.mp4" {
		t.Fatalf("round trip mismatch: %s %s", bucket, object)
	}
}

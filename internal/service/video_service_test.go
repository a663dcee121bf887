package service

import (
	"testing"
	"time"

	"vtube-go/internal/model"
)

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative page", -3, 5, 1, 5},
		{"valid values", 2, 20, 2, 20},
		{"limit over cap", 1, 500, 1, 50},
		{"limit at cap", 1, 50, 1, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit := normalizePage(tc.page, tc.limit)
			if page != tc.wantPage || limit != tc.wantLimit {
				t.Fatalf("normalizePage(%d, %d) = (%d, %d), want (%d, %d)",
					tc.page, tc.limit, page, limit, tc.wantPage, tc.wantLimit)
			}
		})
	}
}

func TestToVideoInfo(t *testing.T) {
	now := time.Now()
	video := &model.Video{
		ID:           5,
		OwnerID:      2,
		Title:        "Go tutorial",
		Description:  "learn go",
		VideoURL:     "http://localhost:9000/videos/2/5.mp4",
		ThumbnailURL: "http://localhost:9000/thumbnails/2/5.png",
		Duration:     120.5,
		Views:        99,
		IsPublished:  true,
		CreatedAt:    now,
		Owner: model.User{
			ID:       2,
			UserName: "alice",
			FullName: "Alice Chan",
			Avatar:   "http://localhost:9000/avatars/2/1.jpg",
		},
	}

	info := toVideoInfo(video)
	if info.ID != 5 || info.OwnerID != 2 {
		t.Fatalf("unexpected ids: %+v", info)
	}
	if info.Views != 99 {
		t.Fatalf("expected views 99, got %d", info.Views)
	}
	if info.Owner == nil {
		t.Fatal("expected owner projection")
	}
	if info.Owner.Username != "alice" || info.Owner.FullName != "Alice Chan" {
		t.Fatalf("unexpected owner projection: %+v", info.Owner)
	}
}

func TestToVideoInfoWithoutOwner(t *testing.T) {
	video := &model.Video{ID: 1, OwnerID: 9}

	info := toVideoInfo(video)
	if info.Owner != nil {
		t.Fatalf("expected nil owner when association not loaded, got %+v", info.Owner)
	}
}

func TestBuildVideoListDataPagination(t *testing.T) {
	videos := make([]model.Video, 5)
	for i := range videos {
		videos[i] = model.Video{ID: int64(i + 6), Title: "v"}
	}

	// 第 2 页，每页 5 条，共 12 条
	data := buildVideoListData(videos, 12, 2, 5)

	if len(data.Videos) != 5 {
		t.Fatalf("expected 5 videos, got %d", len(data.Videos))
	}
	if data.Total != 12 {
		t.Fatalf("expected total 12, got %d", data.Total)
	}
	if data.Page != 2 || data.Limit != 5 {
		t.Fatalf("unexpected page/limit: %d/%d", data.Page, data.Limit)
	}
	if data.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", data.TotalPages)
	}
}

type stubVideoGetter struct {
	videos []model.Video
}

func (s *stubVideoGetter) GetByIDs(ids []int64) ([]model.Video, error) {
	var out []model.Video
	for _, v := range s.videos {
		for _, id := range ids {
			if v.ID == id {
				out = append(out, v)
				break
			}
		}
	}
	return out, nil
}

func TestBuildVideosInOrder(t *testing.T) {
	getter := &stubVideoGetter{videos: []model.Video{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b"},
		{ID: 3, Title: "c"},
	}}

	// 批量查询按主键返回，组装后必须保持输入顺序
	infos, err := buildVideosInOrder(getter, []int64{3, 1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("expected 3 videos, got %d", len(infos))
	}
	if infos[0].ID != 3 || infos[1].ID != 1 || infos[2].ID != 2 {
		t.Fatalf("order not preserved: %d, %d, %d", infos[0].ID, infos[1].ID, infos[2].ID)
	}
}

func TestBuildVideosInOrderSkipsMissing(t *testing.T) {
	getter := &stubVideoGetter{videos: []model.Video{{ID: 7, Title: "only"}}}

	infos, err := buildVideosInOrder(getter, []int64{9, 7, 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(infos) != 1 || infos[0].ID != 7 {
		t.Fatalf("expected only video 7, got %+v", infos)
	}
}

func TestBuildVideosInOrderEmpty(t *testing.T) {
	infos, err := buildVideosInOrder(&stubVideoGetter{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if infos == nil {
		t.Fatal("expected empty slice, not nil")
	}
	if len(infos) != 0 {
		t.Fatalf("expected no videos, got %d", len(infos))
	}
}

func TestBuildVideoListDataEmpty(t *testing.T) {
	data := buildVideoListData(nil, 0, 1, 10)

	if data.Videos == nil {
		t.Fatal("videos should be an empty slice, not nil")
	}
	if len(data.Videos) != 0 || data.Total != 0 || data.TotalPages != 0 {
		t.Fatalf("expected empty result, got %+v", data)
	}
}

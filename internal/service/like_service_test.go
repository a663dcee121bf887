package service

import (
	"testing"

	"vtube-go/internal/model"
)

type likeKey struct {
	likedBy    int64
	targetKind string
	targetID   int64
}

type fakeLikeStore struct {
	rows map[likeKey]struct{}
}

func newFakeLikeStore() *fakeLikeStore {
	return &fakeLikeStore{rows: make(map[likeKey]struct{})}
}

func (f *fakeLikeStore) InsertIfAbsent(likedBy int64, targetKind string, targetID int64) (bool, error) {
	key := likeKey{likedBy, targetKind, targetID}
	if _, ok := f.rows[key]; ok {
		return false, nil
	}
	f.rows[key] = struct{}{}
	return true, nil
}

func (f *fakeLikeStore) Delete(likedBy int64, targetKind string, targetID int64) (bool, error) {
	key := likeKey{likedBy, targetKind, targetID}
	if _, ok := f.rows[key]; !ok {
		return false, nil
	}
	delete(f.rows, key)
	return true, nil
}

func (f *fakeLikeStore) CountByTarget(targetKind string, targetID int64) (int64, error) {
	var total int64
	for key := range f.rows {
		if key.targetKind == targetKind && key.targetID == targetID {
			total++
		}
	}
	return total, nil
}

func (f *fakeLikeStore) GetLikedVideoIDs(likedBy int64) ([]int64, error) {
	var ids []int64
	for key := range f.rows {
		if key.likedBy == likedBy && key.targetKind == model.LikeTargetVideo {
			ids = append(ids, key.targetID)
		}
	}
	return ids, nil
}

func TestLikeToggleTwiceRestoresState(t *testing.T) {
	store := newFakeLikeStore()
	s := &LikeService{likeRepo: store}

	first, err := s.toggle(1, model.LikeTargetVideo, 42)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if first.State != "liked" || first.Total != 1 {
		t.Fatalf("first toggle = %+v, want liked/1", first)
	}

	second, err := s.toggle(1, model.LikeTargetVideo, 42)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second.State != "unliked" || second.Total != 0 {
		t.Fatalf("second toggle = %+v, want unliked/0", second)
	}

	if len(store.rows) != 0 {
		t.Fatalf("expected no like rows after double toggle, got %d", len(store.rows))
	}
}

func TestLikeToggleCountsPerTarget(t *testing.T) {
	store := newFakeLikeStore()
	s := &LikeService{likeRepo: store}

	if _, err := s.toggle(1, model.LikeTargetVideo, 42); err != nil {
		t.Fatalf("toggle user 1: %v", err)
	}
	result, err := s.toggle(2, model.LikeTargetVideo, 42)
	if err != nil {
		t.Fatalf("toggle user 2: %v", err)
	}
	if result.State != "liked" || result.Total != 2 {
		t.Fatalf("toggle = %+v, want liked/2", result)
	}

	// 同一用户对另一类目标是独立记录
	other, err := s.toggle(1, model.LikeTargetComment, 42)
	if err != nil {
		t.Fatalf("toggle comment: %v", err)
	}
	if other.Total != 1 {
		t.Fatalf("comment like total = %d, want 1", other.Total)
	}
}

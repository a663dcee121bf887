package service

import (
	"errors"
	"testing"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/model"

	"gorm.io/gorm"
)

type fakeTweetStore struct {
	tweets []model.Tweet
}

func (f *fakeTweetStore) GetByID(id int64) (*model.Tweet, error) {
	for i := range f.tweets {
		if f.tweets[i].ID == id {
			return &f.tweets[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTweetStore) Create(tweet *model.Tweet) error {
	tweet.ID = int64(len(f.tweets) + 1)
	f.tweets = append(f.tweets, *tweet)
	return nil
}

func (f *fakeTweetStore) Update(id int64, content string) (*model.Tweet, error) {
	for i := range f.tweets {
		if f.tweets[i].ID == id {
			f.tweets[i].Content = content
			return &f.tweets[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTweetStore) Delete(id int64) (bool, error) {
	for i := range f.tweets {
		if f.tweets[i].ID == id {
			f.tweets = append(f.tweets[:i], f.tweets[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTweetStore) ListByOwner(ownerID int64) ([]model.Tweet, error) {
	var out []model.Tweet
	for i := range f.tweets {
		if f.tweets[i].OwnerID == ownerID {
			out = append(out, f.tweets[i])
		}
	}
	return out, nil
}

func newTweetTestService(store *fakeTweetStore) *TweetService {
	users := &fakeUserStore{users: []model.User{{ID: 1, UserName: "alice"}}}
	return NewTweetService(store, users)
}

func TestTweetUpdateByNonOwnerRejected(t *testing.T) {
	store := &fakeTweetStore{tweets: []model.Tweet{
		{ID: 1, OwnerID: 1, Content: "原文"},
	}}
	s := newTweetTestService(store)

	_, err := s.Update(1, 99, &dto.TweetUpdateRequest{Content: "改动"})
	if !errors.Is(err, ErrTweetNoPermission) {
		t.Fatalf("expected ErrTweetNoPermission, got %v", err)
	}
	if store.tweets[0].Content != "原文" {
		t.Fatalf("rejected update must leave content untouched, got %q", store.tweets[0].Content)
	}
}

func TestTweetDeleteByNonOwnerRejected(t *testing.T) {
	store := &fakeTweetStore{tweets: []model.Tweet{
		{ID: 1, OwnerID: 1, Content: "原文"},
	}}
	s := newTweetTestService(store)

	if err := s.Delete(1, 99); !errors.Is(err, ErrTweetNoPermission) {
		t.Fatalf("expected ErrTweetNoPermission, got %v", err)
	}
	if len(store.tweets) != 1 {
		t.Fatal("rejected delete must leave the tweet in place")
	}
}

func TestTweetDeleteUnknown(t *testing.T) {
	s := newTweetTestService(&fakeTweetStore{})

	if err := s.Delete(42, 1); !errors.Is(err, ErrTweetNotFound) {
		t.Fatalf("expected ErrTweetNotFound, got %v", err)
	}
}

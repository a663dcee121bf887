package service

import (
	"errors"
	"strings"
	"testing"

	"vtube-go/internal/model"

	"gorm.io/gorm"
)

type subKey struct {
	subscriberID int64
	channelID    int64
}

type fakeSubStore struct {
	rows  map[subKey]struct{}
	order []subKey
}

func newFakeSubStore() *fakeSubStore {
	return &fakeSubStore{rows: make(map[subKey]struct{})}
}

func (f *fakeSubStore) InsertIfAbsent(subscriberID, channelID int64) (bool, error) {
	key := subKey{subscriberID, channelID}
	if _, ok := f.rows[key]; ok {
		return false, nil
	}
	f.rows[key] = struct{}{}
	f.order = append(f.order, key)
	return true, nil
}

func (f *fakeSubStore) Delete(subscriberID, channelID int64) (bool, error) {
	key := subKey{subscriberID, channelID}
	if _, ok := f.rows[key]; !ok {
		return false, nil
	}
	delete(f.rows, key)
	return true, nil
}

func (f *fakeSubStore) CountByChannel(channelID int64) (int64, error) {
	var total int64
	for key := range f.rows {
		if key.channelID == channelID {
			total++
		}
	}
	return total, nil
}

func (f *fakeSubStore) GetSubscriberIDs(channelID int64) ([]int64, error) {
	ids := []int64{}
	for _, key := range f.order {
		if key.channelID != channelID {
			continue
		}
		if _, ok := f.rows[key]; ok {
			ids = append(ids, key.subscriberID)
		}
	}
	return ids, nil
}

func (f *fakeSubStore) GetChannelIDs(subscriberID int64) ([]int64, error) {
	ids := []int64{}
	for _, key := range f.order {
		if key.subscriberID != subscriberID {
			continue
		}
		if _, ok := f.rows[key]; ok {
			ids = append(ids, key.channelID)
		}
	}
	return ids, nil
}

type fakeUserStore struct {
	users []model.User
}

func (f *fakeUserStore) GetByID(id int64) (*model.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) GetByUsername(username string) (*model.User, error) {
	username = strings.ToLower(username)
	for i := range f.users {
		if f.users[i].UserName == username {
			return &f.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) GetByIDs(ids []int64) ([]model.User, error) {
	var out []model.User
	for i := range f.users {
		for _, id := range ids {
			if f.users[i].ID == id {
				out = append(out, f.users[i])
				break
			}
		}
	}
	return out, nil
}

func newSubTestService() (*SubscriptionService, *fakeSubStore) {
	store := newFakeSubStore()
	users := &fakeUserStore{users: []model.User{
		{ID: 1, UserName: "alice", FullName: "Alice Chan"},
		{ID: 2, UserName: "bob", FullName: "Bob Wu"},
		{ID: 3, UserName: "carol", FullName: "Carol Li"},
	}}
	return NewSubscriptionService(store, users), store
}

func TestSubscriptionToggleTwiceRestoresState(t *testing.T) {
	s, store := newSubTestService()

	first, err := s.Toggle(1, 2)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if first.State != "subscribed" || first.Total != 1 {
		t.Fatalf("first toggle = %+v, want subscribed/1", first)
	}

	second, err := s.Toggle(1, 2)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second.State != "unsubscribed" || second.Total != 0 {
		t.Fatalf("second toggle = %+v, want unsubscribed/0", second)
	}

	if len(store.rows) != 0 {
		t.Fatalf("expected no subscriptions after double toggle, got %d", len(store.rows))
	}
}

func TestSubscriptionToggleSelfRejected(t *testing.T) {
	s, store := newSubTestService()

	if _, err := s.Toggle(1, 1); !errors.Is(err, ErrCannotSubscribeSelf) {
		t.Fatalf("expected ErrCannotSubscribeSelf, got %v", err)
	}
	if len(store.rows) != 0 {
		t.Fatalf("self toggle must not write, got %d rows", len(store.rows))
	}
}

func TestSubscriptionToggleUnknownChannel(t *testing.T) {
	s, _ := newSubTestService()

	if _, err := s.Toggle(99, 2); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetChannelSubscribersByUsername(t *testing.T) {
	s, _ := newSubTestService()

	// carol、bob 先后订阅 alice
	if _, err := s.Toggle(1, 3); err != nil {
		t.Fatalf("carol subscribes: %v", err)
	}
	if _, err := s.Toggle(1, 2); err != nil {
		t.Fatalf("bob subscribes: %v", err)
	}

	data, err := s.GetChannelSubscribers("alice")
	if err != nil {
		t.Fatalf("get subscribers: %v", err)
	}
	if data.TotalSubscribers != 2 {
		t.Fatalf("expected 2 subscribers, got %d", data.TotalSubscribers)
	}
	if data.Subscribers[0].ID != 3 || data.Subscribers[1].ID != 2 {
		t.Fatalf("subscription order not preserved: %+v", data.Subscribers)
	}
}

func TestGetChannelSubscribersUnknownUsername(t *testing.T) {
	s, _ := newSubTestService()

	if _, err := s.GetChannelSubscribers("nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetChannelSubscribersEmpty(t *testing.T) {
	s, _ := newSubTestService()

	data, err := s.GetChannelSubscribers("bob")
	if err != nil {
		t.Fatalf("get subscribers: %v", err)
	}
	if data.Subscribers == nil {
		t.Fatal("subscribers should be an empty slice, not nil")
	}
	if data.TotalSubscribers != 0 {
		t.Fatalf("expected 0 subscribers, got %d", data.TotalSubscribers)
	}
}

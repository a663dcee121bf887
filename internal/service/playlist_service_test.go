package service

import (
	"errors"
	"testing"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/model"

	"gorm.io/gorm"
)

type playlistVideoKey struct {
	playlistID int64
	videoID    int64
}

type fakePlaylistStore struct {
	playlists   []model.Playlist
	videos      map[playlistVideoKey]struct{}
	videoOrder  []playlistVideoKey
	updateCalls int
}

func newFakePlaylistStore(playlists ...model.Playlist) *fakePlaylistStore {
	return &fakePlaylistStore{
		playlists: playlists,
		videos:    make(map[playlistVideoKey]struct{}),
	}
}

func (f *fakePlaylistStore) GetByID(id int64) (*model.Playlist, error) {
	for i := range f.playlists {
		if f.playlists[i].ID == id {
			return &f.playlists[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePlaylistStore) Create(playlist *model.Playlist) error {
	playlist.ID = int64(len(f.playlists) + 1)
	f.playlists = append(f.playlists, *playlist)
	return nil
}

func (f *fakePlaylistStore) Update(id int64, updates map[string]interface{}) (*model.Playlist, error) {
	f.updateCalls++
	return f.GetByID(id)
}

func (f *fakePlaylistStore) Delete(id int64) (bool, error) {
	for i := range f.playlists {
		if f.playlists[i].ID == id {
			f.playlists = append(f.playlists[:i], f.playlists[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePlaylistStore) ListByOwner(ownerID int64) ([]model.Playlist, error) {
	var out []model.Playlist
	for i := range f.playlists {
		if f.playlists[i].OwnerID == ownerID {
			out = append(out, f.playlists[i])
		}
	}
	return out, nil
}

func (f *fakePlaylistStore) AddVideo(playlistID, videoID int64) (bool, error) {
	key := playlistVideoKey{playlistID, videoID}
	if _, ok := f.videos[key]; ok {
		return false, nil
	}
	f.videos[key] = struct{}{}
	f.videoOrder = append(f.videoOrder, key)
	return true, nil
}

func (f *fakePlaylistStore) RemoveVideo(playlistID, videoID int64) (bool, error) {
	key := playlistVideoKey{playlistID, videoID}
	if _, ok := f.videos[key]; !ok {
		return false, nil
	}
	delete(f.videos, key)
	return true, nil
}

func (f *fakePlaylistStore) GetVideoIDs(playlistID int64) ([]int64, error) {
	ids := []int64{}
	for _, key := range f.videoOrder {
		if key.playlistID != playlistID {
			continue
		}
		if _, ok := f.videos[key]; ok {
			ids = append(ids, key.videoID)
		}
	}
	return ids, nil
}

type fakeVideoReader struct {
	videos []model.Video
}

func (f *fakeVideoReader) GetByID(id int64) (*model.Video, error) {
	for i := range f.videos {
		if f.videos[i].ID == id {
			return &f.videos[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVideoReader) GetByIDs(ids []int64) ([]model.Video, error) {
	var out []model.Video
	for i := range f.videos {
		for _, id := range ids {
			if f.videos[i].ID == id {
				out = append(out, f.videos[i])
				break
			}
		}
	}
	return out, nil
}

func newPlaylistTestService() (*PlaylistService, *fakePlaylistStore) {
	store := newFakePlaylistStore(model.Playlist{ID: 1, Name: "收藏夹", OwnerID: 10})
	videoReader := &fakeVideoReader{videos: []model.Video{{ID: 100, Title: "v100"}, {ID: 200, Title: "v200"}}}
	users := &fakeUserStore{users: []model.User{{ID: 10, UserName: "alice"}}}
	return NewPlaylistService(store, videoReader, users), store
}

func TestPlaylistAddVideoDuplicateConflict(t *testing.T) {
	s, _ := newPlaylistTestService()

	if err := s.AddVideo(1, 100, 10); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := s.AddVideo(1, 100, 10); !errors.Is(err, ErrVideoAlreadyInPlaylist) {
		t.Fatalf("expected ErrVideoAlreadyInPlaylist, got %v", err)
	}

	ids, _ := s.playlistRepo.GetVideoIDs(1)
	if len(ids) != 1 {
		t.Fatalf("duplicate add must not grow list, got %d entries", len(ids))
	}
}

func TestPlaylistRemoveAbsentVideoNotFound(t *testing.T) {
	s, _ := newPlaylistTestService()

	if err := s.RemoveVideo(1, 200, 10); !errors.Is(err, ErrVideoNotInPlaylist) {
		t.Fatalf("expected ErrVideoNotInPlaylist, got %v", err)
	}
}

func TestPlaylistUpdateByNonOwnerRejected(t *testing.T) {
	s, store := newPlaylistTestService()

	name := "改名"
	_, err := s.Update(1, 99, &dto.PlaylistUpdateRequest{Name: &name})
	if !errors.Is(err, ErrPlaylistNoPermission) {
		t.Fatalf("expected ErrPlaylistNoPermission, got %v", err)
	}
	if store.updateCalls != 0 {
		t.Fatalf("rejected update must not reach the store, got %d calls", store.updateCalls)
	}
}

func TestPlaylistAddVideoByNonOwnerRejected(t *testing.T) {
	s, store := newPlaylistTestService()

	if err := s.AddVideo(1, 100, 99); !errors.Is(err, ErrPlaylistNoPermission) {
		t.Fatalf("expected ErrPlaylistNoPermission, got %v", err)
	}
	if len(store.videos) != 0 {
		t.Fatalf("rejected add must not write, got %d entries", len(store.videos))
	}
}

func TestPlaylistAddUnknownVideo(t *testing.T) {
	s, _ := newPlaylistTestService()

	if err := s.AddVideo(1, 999, 10); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}

func TestPlaylistDetailKeepsInsertionOrder(t *testing.T) {
	s, _ := newPlaylistTestService()

	if err := s.AddVideo(1, 200, 10); err != nil {
		t.Fatalf("add 200: %v", err)
	}
	if err := s.AddVideo(1, 100, 10); err != nil {
		t.Fatalf("add 100: %v", err)
	}

	detail, err := s.GetByID(1)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if len(detail.Videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(detail.Videos))
	}
	if detail.Videos[0].ID != 200 || detail.Videos[1].ID != 100 {
		t.Fatalf("insertion order not preserved: %d, %d", detail.Videos[0].ID, detail.Videos[1].ID)
	}
}

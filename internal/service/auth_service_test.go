package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/model"
	"vtube-go/pkg/logger"

	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	// 失败路径会打日志，先初始化全局 logger
	if err := logger.Init("error", "console", "stdout", ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeAuthUserStore struct {
	users      []model.User
	nextID     int64
	deletedIDs []int64
}

func (f *fakeAuthUserStore) GetByID(id int64) (*model.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthUserStore) GetByUsernameOrEmail(username, email string) (*model.User, error) {
	for i := range f.users {
		if (username != "" && f.users[i].UserName == strings.ToLower(username)) ||
			(email != "" && f.users[i].Email == email) {
			return &f.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthUserStore) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	_, err := f.GetByUsernameOrEmail(username, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeAuthUserStore) Create(user *model.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeAuthUserStore) Update(id int64, updates map[string]interface{}) (*model.User, error) {
	return f.GetByID(id)
}

func (f *fakeAuthUserStore) Delete(id int64) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			f.deletedIDs = append(f.deletedIDs, id)
			return nil
		}
	}
	return nil
}

func (f *fakeAuthUserStore) SetRefreshToken(id int64, token string) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].RefreshToken = token
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func TestRegisterRollsBackOnUploadFailure(t *testing.T) {
	store := &fakeAuthUserStore{}
	s := NewAuthService(store)

	orig := uploadImageFn
	uploadImageFn = func(ctx context.Context, bucket string, userID int64, file *FileUpload) (string, error) {
		return "", errors.New("object store unavailable")
	}
	defer func() { uploadImageFn = orig }()

	req := &dto.RegisterRequest{
		Username: "Alice",
		Email:    "alice@example.com",
		FullName: "Alice Chan",
		Password: "secret-pass",
	}
	avatar := &FileUpload{Reader: strings.NewReader("img"), Size: 3, ContentType: "image/png", Filename: "a.png"}

	if _, err := s.Register(req, avatar, nil); err == nil {
		t.Fatal("expected register to fail when upload fails")
	}

	if len(store.deletedIDs) != 1 {
		t.Fatalf("expected the created user row to be rolled back, deletions: %v", store.deletedIDs)
	}
	// 用户名必须可以重新注册
	exists, err := store.ExistsByUsernameOrEmail("alice", "alice@example.com")
	if err != nil {
		t.Fatalf("exists check: %v", err)
	}
	if exists {
		t.Fatal("half-initialized user row still reserves the username")
	}
}

func TestToUserInfoOmitsSecrets(t *testing.T) {
	user := &model.User{
		ID:           3,
		UserName:     "bob",
		Email:        "bob@example.com",
		FullName:     "Bob Li",
		Password:     "$2a$10$hash",
		RefreshToken: "some-refresh-token",
		Avatar:       "http://localhost:9000/avatars/3/1.jpg",
	}

	info := toUserInfo(user)
	if info.ID != 3 || info.Username != "bob" || info.Email != "bob@example.com" {
		t.Fatalf("unexpected info: %+v", info)
	}
	// UserInfo 结构本身没有密码和刷新令牌字段，这里确认投影字段齐全
	if info.FullName != "Bob Li" || info.Avatar == "" {
		t.Fatalf("incomplete projection: %+v", info)
	}
}

func TestToOwnerBrief(t *testing.T) {
	brief := toOwnerBrief(&model.User{
		ID:       1,
		UserName: "carol",
		FullName: "Carol Wu",
		Avatar:   "http://localhost:9000/avatars/1/1.jpg",
	})
	if brief == nil {
		t.Fatal("expected brief for loaded user")
	}
	if brief.Username != "carol" || brief.FullName != "Carol Wu" {
		t.Fatalf("unexpected brief: %+v", brief)
	}
}

func TestToOwnerBriefUnloadedAssociation(t *testing.T) {
	if brief := toOwnerBrief(&model.User{}); brief != nil {
		t.Fatalf("expected nil brief for zero user, got %+v", brief)
	}
	if brief := toOwnerBrief(nil); brief != nil {
		t.Fatalf("expected nil brief for nil user, got %+v", brief)
	}
}

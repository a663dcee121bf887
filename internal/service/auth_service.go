package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/config"
	infraMinio "vtube-go/internal/infra/minio"
	"vtube-go/internal/model"
	"vtube-go/pkg/logger"
	"vtube-go/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrUserExists          = errors.New("用户名或邮箱已存在")
	ErrInvalidCredential   = errors.New("用户名或密码错误")
	ErrInvalidRefreshToken = errors.New("刷新令牌无效或已失效")
	ErrWrongOldPassword    = errors.New("原密码不正确")
)

// FileUpload 上层传入的待上传文件
type FileUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}

// authUserStore 注册登录所需的用户存取，*repository.UserRepository 天然满足
type authUserStore interface {
	GetByID(id int64) (*model.User, error)
	GetByUsernameOrEmail(username, email string) (*model.User, error)
	ExistsByUsernameOrEmail(username, email string) (bool, error)
	Create(user *model.User) error
	Update(id int64, updates map[string]interface{}) (*model.User, error)
	Delete(id int64) error
	SetRefreshToken(id int64, token string) error
}

type AuthService struct {
	userRepo authUserStore
}

func NewAuthService(userRepo authUserStore) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// uploadImageFn 可在测试中替换
var uploadImageFn = uploadImage

// Register 用户注册。头像必传，封面可选，均存入 MinIO。
func (s *AuthService) Register(req *dto.RegisterRequest, avatar *FileUpload, cover *FileUpload) (*dto.UserInfo, error) {
	exists, err := s.userRepo.ExistsByUsernameOrEmail(req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserName: strings.ToLower(req.Username),
		Email:    req.Email,
		FullName: req.FullName,
		Password: hashedPassword,
	}

	if err := s.userRepo.Create(user); err != nil {
		// 存在性预检和插入之间可能并发注册，唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	avatarURL, err := uploadImageFn(ctx, infraMinio.BucketAvatars, user.ID, avatar)
	if err != nil {
		logger.Error("Upload avatar failed, rolling back user record",
			zap.Int64("user_id", user.ID), zap.Error(err))
		s.rollbackRegistration(ctx, user.ID, "")
		return nil, fmt.Errorf("上传头像失败: %w", err)
	}

	updates := map[string]interface{}{"avatar": avatarURL}

	if cover != nil {
		coverURL, err := uploadImageFn(ctx, infraMinio.BucketCovers, user.ID, cover)
		if err != nil {
			logger.Error("Upload cover image failed, rolling back user record",
				zap.Int64("user_id", user.ID), zap.Error(err))
			s.rollbackRegistration(ctx, user.ID, avatarURL)
			return nil, fmt.Errorf("上传封面失败: %w", err)
		}
		updates["cover_image"] = coverURL
	}

	user, err = s.userRepo.Update(user.ID, updates)
	if err != nil {
		return nil, err
	}

	logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("user_name", user.UserName),
	)

	return toUserInfo(user), nil
}

// Login 用户登录（用户名或邮箱二选一），返回用户信息和令牌对。
// 刷新令牌落库，同一账号新登录会使旧刷新令牌失效。
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginData, error) {
	if req.Username == "" && req.Email == "" {
		return nil, ErrInvalidCredential
	}

	user, err := s.userRepo.GetByUsernameOrEmail(req.Username, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredential
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginData{
		User:   *toUserInfo(user),
		Tokens: *tokens,
	}, nil
}

// Logout 登出：清除落库的刷新令牌
func (s *AuthService) Logout(userID int64) error {
	return s.userRepo.SetRefreshToken(userID, "")
}

// Refresh 刷新令牌轮换。传入的刷新令牌必须与落库值一致，
// 轮换后旧令牌立即失效，重放旧令牌会被拒绝。
func (s *AuthService) Refresh(refreshToken string) (*dto.TokenPair, error) {
	claims, err := utils.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, ErrInvalidRefreshToken
	}

	return s.issueTokens(user)
}

// ChangePassword 修改密码，需验证原密码
func (s *AuthService) ChangePassword(userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !utils.VerifyPassword(req.OldPassword, user.Password) {
		return ErrWrongOldPassword
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	_, err = s.userRepo.Update(userID, map[string]interface{}{"password": hashedPassword})
	return err
}

// GetCurrentUser 获取当前登录用户信息
func (s *AuthService) GetCurrentUser(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

func (s *AuthService) issueTokens(user *model.User) (*dto.TokenPair, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.UserName)
	if err != nil {
		return nil, err
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetRefreshToken(user.ID, refreshToken); err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(config.GetJWT().AccessExpireDuration().Seconds()),
	}, nil
}

// rollbackRegistration 注册中途失败时删除已建用户并清理已传对象，
// 否则用户名和邮箱会被半初始化的记录永久占用
func (s *AuthService) rollbackRegistration(ctx context.Context, userID int64, avatarURL string) {
	if avatarURL != "" {
		if err := infraMinio.DeleteByURL(ctx, avatarURL); err != nil {
			logger.Error("Rollback avatar object failed",
				zap.Int64("user_id", userID), zap.Error(err))
		}
	}
	if err := s.userRepo.Delete(userID); err != nil {
		logger.Error("Rollback user record failed",
			zap.Int64("user_id", userID), zap.Error(err))
	}
}

// uploadImage 上传图片到指定 Bucket，对象名按用户分目录
func uploadImage(ctx context.Context, bucket string, userID int64, file *FileUpload) (string, error) {
	ext := strings.ToLower(path.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	objectName := fmt.Sprintf("%d/%d%s", userID, time.Now().UnixNano(), ext)
	return infraMinio.UploadFile(ctx, bucket, objectName, file.Reader, file.Size, file.ContentType)
}

func toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:         user.ID,
		Username:   user.UserName,
		Email:      user.Email,
		FullName:   user.FullName,
		Avatar:     user.Avatar,
		CoverImage: user.CoverImage,
		CreatedAt:  user.CreatedAt,
	}
}

func toOwnerBrief(user *model.User) *dto.OwnerBrief {
	if user == nil || user.ID == 0 {
		return nil
	}
	return &dto.OwnerBrief{
		FullName: user.FullName,
		Username: user.UserName,
		Avatar:   user.Avatar,
	}
}

package repository

import (
	"strings"

	"vtube-go/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID 根据 ID 查询用户
func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据用户名查询用户（不区分大小写）
func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Where("user_name = ?", strings.ToLower(username)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsernameOrEmail 根据用户名或邮箱查询（登录用）
func (r *UserRepository) GetByUsernameOrEmail(username, email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("user_name = ? OR email = ?", strings.ToLower(username), email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsernameOrEmail 检查用户名或邮箱是否已被占用
func (r *UserRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("user_name = ? OR email = ?", strings.ToLower(username), email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建用户
func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// Update 更新用户字段
func (r *UserRepository) Update(id int64, updates map[string]interface{}) (*model.User, error) {
	result := r.db.Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// GetByIDs 批量查询用户
func (r *UserRepository) GetByIDs(ids []int64) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []model.User
	err := r.db.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// Delete 删除用户记录
func (r *UserRepository) Delete(id int64) error {
	return r.db.Delete(&model.User{}, id).Error
}

// SetRefreshToken 保存刷新令牌（登出时传空串清除）
func (r *UserRepository) SetRefreshToken(id int64, token string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("refresh_token", token).Error
}

// AppendWatchEntry 追加一条观看记录（重复观看会再次追加）
func (r *UserRepository) AppendWatchEntry(userID, videoID int64) error {
	entry := &model.WatchEntry{UserID: userID, VideoID: videoID}
	return r.db.Create(entry).Error
}

// GetWatchVideoIDs 按观看顺序返回用户的观看历史视频 ID
func (r *UserRepository) GetWatchVideoIDs(userID int64) ([]int64, error) {
	var videoIDs []int64
	err := r.db.Model(&model.WatchEntry{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("video_id", &videoIDs).Error
	return videoIDs, err
}

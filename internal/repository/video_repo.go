package repository

import (
	"vtube-go/internal/model"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// OwnerAggregate 频道维度的视频聚合结果
type OwnerAggregate struct {
	TotalViews  int64
	TotalVideos int64
}

// GetByID 根据 ID 获取视频（排除墓碑态）
func (r *VideoRepository) GetByID(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Where("id = ? AND status = ?", id, model.VideoStatusActive).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDWithOwner 根据 ID 获取视频（含作者信息）
func (r *VideoRepository) GetByIDWithOwner(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Owner").
		Where("id = ? AND status = ?", id, model.VideoStatusActive).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDs 批量查询视频（含作者信息，排除墓碑态）
func (r *VideoRepository) GetByIDs(ids []int64) ([]model.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []model.Video
	err := r.db.Preload("Owner").
		Where("id IN ? AND status = ?", ids, model.VideoStatusActive).
		Find(&videos).Error
	return videos, err
}

// Create 创建视频记录
func (r *VideoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// Update 更新视频字段
func (r *VideoRepository) Update(id int64, updates map[string]interface{}) (*model.Video, error) {
	result := r.db.Model(&model.Video{}).
		Where("id = ? AND status = ?", id, model.VideoStatusActive).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// MarkDeleting 打墓碑：记录对 API 不再可见，媒体文件由 worker 清理
func (r *VideoRepository) MarkDeleting(id int64) error {
	result := r.db.Model(&model.Video{}).
		Where("id = ? AND status = ?", id, model.VideoStatusActive).
		Update("status", model.VideoStatusDeleting)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HardDelete 物理删除记录（仅 worker 在媒体清理完成后调用）
func (r *VideoRepository) HardDelete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&model.Video{}).Error
}

// List 视频列表查询（分页、筛选、排序）
func (r *VideoRepository) List(skip, limit int, ownerID *int64, search, sortBy, sortOrder string, publishedOnly bool) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{}).Where("status = ?", model.VideoStatusActive)

	if ownerID != nil {
		query = query.Where("owner_id = ?", *ownerID)
	}
	if publishedOnly {
		query = query.Where("is_published = true")
	}
	if search != "" {
		query = query.Where("title ILIKE ? OR description ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 排序字段白名单，避免把请求参数直接拼进 SQL
	sortColumns := map[string]string{
		"created_at": "created_at",
		"views":      "views",
		"duration":   "duration",
		"title":      "title",
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}

	var videos []model.Video
	err := query.Preload("Owner").
		Order(column + " " + direction).
		Offset(skip).Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

// ListByOwner 按作者查询全部视频（频道后台用，不分页）
func (r *VideoRepository) ListByOwner(ownerID int64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Where("owner_id = ? AND status = ?", ownerID, model.VideoStatusActive).
		Order("created_at DESC").
		Find(&videos).Error
	return videos, err
}

// AggregateByOwner 统计某作者的视频总数与总播放量，无数据时返回零值
func (r *VideoRepository) AggregateByOwner(ownerID int64) (*OwnerAggregate, error) {
	var agg OwnerAggregate
	err := r.db.Model(&model.Video{}).
		Select("COALESCE(SUM(views), 0) AS total_views, COUNT(*) AS total_videos").
		Where("owner_id = ? AND status = ?", ownerID, model.VideoStatusActive).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// IncrementViews 播放量 +1
func (r *VideoRepository) IncrementViews(id int64) error {
	return r.db.Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

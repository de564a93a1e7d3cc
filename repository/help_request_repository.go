package repository

import (
	"github.com/lehar2932-art/tiffin-testing/entity"
	"gorm.io/gorm"
)

type HelpRequestRepository struct {
	DB *gorm.DB
}

func NewHelpRequestRepository(db *gorm.DB) *HelpRequestRepository {
	return &HelpRequestRepository{DB: db}
}

func (r *HelpRequestRepository) Create(req *entity.HelpRequest) error {
	return r.DB.Create(req).Error
}

func (r *HelpRequestRepository) FindByID(id uint) (*entity.HelpRequest, error) {
	var req entity.HelpRequest
	if err := r.DB.Preload("Responses").First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// HelpFilter narrows a help-request listing. Visibility scoping is decided
// by the service; the repository only applies what it is told.
type HelpFilter struct {
	// ParticipantID limits to threads where the user is sender or recipient.
	ParticipantID uint
	// Types limits to the given request types (admin view).
	Types    []string
	Status   string
	Priority string
}

func (r *HelpRequestRepository) scoped(f HelpFilter) *gorm.DB {
	q := r.DB.Model(&entity.HelpRequest{})
	if f.ParticipantID != 0 {
		q = q.Where("from_user_id = ? OR to_user_id = ?", f.ParticipantID, f.ParticipantID)
	}
	if len(f.Types) > 0 {
		q = q.Where("type IN ?", f.Types)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	return q
}

func (r *HelpRequestRepository) List(f HelpFilter, page, limit int) ([]entity.HelpRequest, int64, error) {
	var total int64
	if err := r.scoped(f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []entity.HelpRequest
	err := r.scoped(f).
		Preload("Responses").
		Order("id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&items).Error
	return items, total, err
}

func (r *HelpRequestRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.HelpRequest{}).Where("id = ?", id).Updates(updates).Error
}

func (r *HelpRequestRepository) AppendResponse(res *entity.HelpResponse) error {
	return r.DB.Create(res).Error
}

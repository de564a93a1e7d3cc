package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lehar2932-art/tiffin-testing/entity"
	"github.com/lehar2932-art/tiffin-testing/repository"
)

type HelpService struct {
	Repo     *repository.HelpRequestRepository
	UserRepo *repository.UserRepository
	Notifier *NotificationService
}

func NewHelpService(repo *repository.HelpRequestRepository, userRepo *repository.UserRepository, notifier *NotificationService) *HelpService {
	return &HelpService{Repo: repo, UserRepo: userRepo, Notifier: notifier}
}

type CreateHelpReq struct {
	ToUserID *uint  `json:"toUserId"`
	Type     string `json:"type" binding:"required"`
	Subject  string `json:"subject" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Priority string `json:"priority"`
	Category string `json:"category"`
}

// Create opens a ticket. Support types go to the admin pool (no explicit
// recipient); consumer_to_provider requires one.
func (s *HelpService) Create(fromUserID uint, req *CreateHelpReq) (*entity.HelpRequest, error) {
	if !entity.ValidHelpType(req.Type) {
		return nil, ErrValidation
	}
	if req.Type == entity.HelpConsumerToProvider && req.ToUserID == nil {
		return nil, ErrValidation
	}
	priority := req.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !entity.ValidHelpPriority(priority) {
		return nil, ErrValidation
	}
	category := req.Category
	if category == "" {
		category = entity.HelpCatGeneral
	}
	if !entity.ValidHelpCategory(category) {
		return nil, ErrValidation
	}

	var toUserID *uint
	if req.Type == entity.HelpConsumerToProvider {
		if _, err := s.UserRepo.FindByID(*req.ToUserID); err != nil {
			return nil, ErrNotFound
		}
		toUserID = req.ToUserID
	}

	hr := &entity.HelpRequest{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Type:       req.Type,
		Subject:    req.Subject,
		Message:    req.Message,
		Status:     entity.HelpOpen,
		Priority:   priority,
		Category:   category,
	}
	if err := s.Repo.Create(hr); err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		senderName := ""
		if sender, err := s.UserRepo.FindByID(fromUserID); err == nil {
			senderName = sender.Name
		}
		s.Notifier.HelpRequestCreated(hr, senderName)
	}
	return hr, nil
}

// List applies the visibility rule: admins see the support queues (and
// consumer_to_provider only when explicitly asked for); everyone else sees
// only threads they participate in.
func (s *HelpService) List(actorID uint, role, typ, status, priority string, page, limit int) ([]entity.HelpRequest, int64, error) {
	f := repository.HelpFilter{Status: status, Priority: priority}
	if role == entity.RoleAdmin {
		if typ == entity.HelpConsumerToProvider {
			f.Types = []string{entity.HelpConsumerToProvider}
		} else {
			f.Types = []string{entity.HelpAdminSupport, entity.HelpProviderSupport}
		}
	} else {
		f.ParticipantID = actorID
		if typ != "" {
			f.Types = []string{typ}
		}
	}
	return s.Repo.List(f, page, limit)
}

func (s *HelpService) participant(hr *entity.HelpRequest, userID uint) bool {
	if hr.FromUserID == userID {
		return true
	}
	return hr.ToUserID != nil && *hr.ToUserID == userID
}

func (s *HelpService) Get(actorID uint, role string, id uint) (*entity.HelpRequest, error) {
	hr, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if role != entity.RoleAdmin && !s.participant(hr, actorID) {
		return nil, ErrForbidden
	}
	return hr, nil
}

// Respond appends a thread entry and notifies the other party.
func (s *HelpService) Respond(actorID uint, role string, id uint, message string) (*entity.HelpRequest, error) {
	hr, err := s.Get(actorID, role, id)
	if err != nil {
		return nil, err
	}

	res := &entity.HelpResponse{
		HelpRequestID: hr.ID,
		UserID:        actorID,
		Message:       message,
		IsAdmin:       role == entity.RoleAdmin,
	}
	if err := s.Repo.AppendResponse(res); err != nil {
		return nil, err
	}
	hr.Responses = append(hr.Responses, *res)

	if s.Notifier != nil {
		s.Notifier.HelpResponseAdded(hr, actorID)
	}
	return hr, nil
}

type UpdateHelpReq struct {
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

// Update changes status/priority. Any valid status may be set by an
// authorized party; resolved additionally stamps resolution metadata.
func (s *HelpService) Update(actorID uint, role string, id uint, req *UpdateHelpReq) (*entity.HelpRequest, error) {
	hr, err := s.Get(actorID, role, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Status != "" {
		if !entity.ValidHelpStatus(req.Status) {
			return nil, ErrValidation
		}
		updates["status"] = req.Status
		if req.Status == entity.HelpResolved {
			now := time.Now()
			updates["resolved_at"] = &now
			updates["resolved_by"] = actorID
		}
	}
	if req.Priority != "" {
		if !entity.ValidHelpPriority(req.Priority) {
			return nil, ErrValidation
		}
		updates["priority"] = req.Priority
	}
	if len(updates) == 0 {
		return hr, nil
	}

	if err := s.Repo.Update(hr.ID, updates); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(hr.ID)
}

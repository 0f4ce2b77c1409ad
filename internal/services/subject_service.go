package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "studyhub/internal/errors"
	"studyhub/internal/models"
	"studyhub/internal/pagination"
)

// subjectService handles subject-related business logic.
type subjectService struct {
	db *gorm.DB
}

// NewSubjectService creates a new SubjectServicer.
func NewSubjectService(db *gorm.DB) SubjectServicer {
	return &subjectService{db: db}
}

// CreateSubject creates a new subject. The (user, name, period) triple must
// be unique; a collision is a conflict, not a silent duplicate.
func (s *subjectService) CreateSubject(userID, name string, period int, color string) (*models.Subject, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "subject name is required")
	}
	if period < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "period must be a positive integer")
	}

	var count int64
	if err := s.db.Model(&models.Subject{}).
		Where("user_id = ? AND name = ? AND period = ?", userID, name, period).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrSubjectExists
	}

	subject := &models.Subject{
		UserID: userID,
		Name:   name,
		Period: period,
	}
	if color != "" {
		subject.Color = color
	}

	if err := s.db.Create(subject).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return subject, nil
}

// GetUserSubjects retrieves a paginated list of the user's subjects,
// optionally filtered by period, ordered by period then name.
func (s *subjectService) GetUserSubjects(userID string, period *int, page pagination.PageRequest) (*pagination.PageResponse[models.Subject], error) {
	page.Defaults()

	base := s.db.Model(&models.Subject{}).Where("user_id = ?", userID)
	if period != nil {
		base = base.Where("period = ?", *period)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var subjects []models.Subject
	if err := base.Order("period ASC, name ASC").
		Scopes(pagination.Paginate(page)).
		Find(&subjects).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(subjects, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetSubjectByID retrieves a subject by ID for a specific user. A subject
// owned by someone else is indistinguishable from one that does not exist.
func (s *subjectService) GetSubjectByID(userID, subjectID string) (*models.Subject, error) {
	var subject models.Subject
	if err := s.db.Where("id = ? AND user_id = ?", subjectID, userID).First(&subject).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &subject, nil
}

// UpdateSubject applies the supplied fields to an existing subject.
func (s *subjectService) UpdateSubject(userID, subjectID string, params UpdateSubjectParams) (*models.Subject, error) {
	subject, err := s.GetSubjectByID(userID, subjectID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if params.Name != nil {
		if *params.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "subject name cannot be empty")
		}
		updates["name"] = *params.Name
	}
	if params.Period != nil {
		if *params.Period < 1 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "period must be a positive integer")
		}
		updates["period"] = *params.Period
	}
	if params.Color != nil {
		updates["color"] = *params.Color
	}

	if len(updates) > 0 {
		if err := s.db.Model(subject).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return subject, nil
}

// DeleteSubject removes a subject. Its notes go with it; calendar events
// that referenced it keep running with the subject detached.
func (s *subjectService) DeleteSubject(userID, subjectID string) error {
	subject, err := s.GetSubjectByID(userID, subjectID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CalendarEvent{}).
			Where("subject_id = ?", subject.ID).
			Update("subject_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("subject_id = ?", subject.ID).Delete(&models.Note{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(subject).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

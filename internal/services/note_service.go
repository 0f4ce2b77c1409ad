package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "studyhub/internal/errors"
	"studyhub/internal/models"
	"studyhub/internal/pagination"
)

// noteService handles note-related business logic.
type noteService struct {
	db *gorm.DB
}

// NewNoteService creates a new NoteServicer.
func NewNoteService(db *gorm.DB) NoteServicer {
	return &noteService{db: db}
}

// CreateNote creates a new note. The referenced subject must belong to the
// same user; a subject owned by someone else is reported as not found.
func (s *noteService) CreateNote(userID, subjectID, title, content string) (*models.Note, error) {
	if title == "" || content == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title and content are required")
	}

	if err := s.checkSubjectOwnership(userID, subjectID); err != nil {
		return nil, err
	}

	note := &models.Note{
		UserID:    userID,
		SubjectID: subjectID,
		Title:     title,
		Content:   content,
	}

	if err := s.db.Create(note).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return note, nil
}

// GetUserNotes retrieves a paginated list of the user's notes, optionally
// filtered by subject, most recently updated first.
func (s *noteService) GetUserNotes(userID string, subjectID *string, page pagination.PageRequest) (*pagination.PageResponse[models.Note], error) {
	page.Defaults()

	base := s.db.Model(&models.Note{}).Where("user_id = ?", userID)
	if subjectID != nil {
		base = base.Where("subject_id = ?", *subjectID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var notes []models.Note
	if err := base.Preload("Subject").
		Order("updated_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&notes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(notes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetNoteByID retrieves a note by ID for a specific user.
func (s *noteService) GetNoteByID(userID, noteID string) (*models.Note, error) {
	var note models.Note
	if err := s.db.Preload("Subject").
		Where("id = ? AND user_id = ?", noteID, userID).
		First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &note, nil
}

// UpdateNote applies the supplied fields to an existing note. A subject
// change re-validates ownership of the new subject.
func (s *noteService) UpdateNote(userID, noteID string, params UpdateNoteParams) (*models.Note, error) {
	note, err := s.GetNoteByID(userID, noteID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if params.Title != nil {
		if *params.Title == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title cannot be empty")
		}
		updates["title"] = *params.Title
	}
	if params.Content != nil {
		updates["content"] = *params.Content
	}
	if params.SubjectID != nil {
		if err := s.checkSubjectOwnership(userID, *params.SubjectID); err != nil {
			return nil, err
		}
		updates["subject_id"] = *params.SubjectID
	}

	if len(updates) > 0 {
		if err := s.db.Model(note).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return note, nil
}

// DeleteNote removes a note.
func (s *noteService) DeleteNote(userID, noteID string) error {
	note, err := s.GetNoteByID(userID, noteID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(note).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// checkSubjectOwnership verifies that the subject exists and belongs to the user.
func (s *noteService) checkSubjectOwnership(userID, subjectID string) error {
	var count int64
	if err := s.db.Model(&models.Subject{}).
		Where("id = ? AND user_id = ?", subjectID, userID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

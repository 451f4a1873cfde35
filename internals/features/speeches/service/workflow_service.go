package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/speeches/model"
	helpers "abcschool_backend/internals/helpers"
)

var (
	ErrInvalidTransition = errors.New("transisi status pidato tidak diizinkan")
	ErrNotOwner          = errors.New("pidato bukan milik siswa ini")
)

type SpeechStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.SpeechModel, error)
	Create(ctx context.Context, row *model.SpeechModel) error
	Save(ctx context.Context, row *model.SpeechModel) error
}

type ReviewStore interface {
	FindByKey(ctx context.Context, speechID, reviewerID uuid.UUID) (*model.SpeechReviewModel, error)
	Create(ctx context.Context, row *model.SpeechReviewModel) error
	Save(ctx context.Context, row *model.SpeechReviewModel) error
}

type gormSpeechStore struct{ db *gorm.DB }

func NewGormSpeechStore(db *gorm.DB) SpeechStore { return &gormSpeechStore{db: db} }

func (s *gormSpeechStore) FindByID(ctx context.Context, id uuid.UUID) (*model.SpeechModel, error) {
	var row model.SpeechModel
	if err := s.db.WithContext(ctx).First(&row, "speech_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *gormSpeechStore) Create(ctx context.Context, row *model.SpeechModel) error {
	return s.db.WithContext(ctx).Create(row).Error
}

func (s *gormSpeechStore) Save(ctx context.Context, row *model.SpeechModel) error {
	return s.db.WithContext(ctx).Save(row).Error
}

type gormReviewStore struct{ db *gorm.DB }

func NewGormReviewStore(db *gorm.DB) ReviewStore { return &gormReviewStore{db: db} }

func (s *gormReviewStore) FindByKey(ctx context.Context, speechID, reviewerID uuid.UUID) (*model.SpeechReviewModel, error) {
	var row model.SpeechReviewModel
	if err := s.db.WithContext(ctx).
		First(&row, "speech_review_speech_id = ? AND speech_review_reviewer_id = ?", speechID, reviewerID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *gormReviewStore) Create(ctx context.Context, row *model.SpeechReviewModel) error {
	return s.db.WithContext(ctx).Create(row).Error
}

func (s *gormReviewStore) Save(ctx context.Context, row *model.SpeechReviewModel) error {
	return s.db.WithContext(ctx).Save(row).Error
}

type WorkflowService struct {
	Speeches SpeechStore
	Reviews  ReviewStore

	Now func() time.Time
}

func NewWorkflowService(db *gorm.DB, loc *time.Location) *WorkflowService {
	return &WorkflowService{
		Speeches: NewGormSpeechStore(db),
		Reviews:  NewGormReviewStore(db),
		Now:      func() time.Time { return time.Now().In(loc) },
	}
}

func (s *WorkflowService) CreateDraft(ctx context.Context, studentID uuid.UUID, title, body string) (*model.SpeechModel, error) {
	row := &model.SpeechModel{
		SpeechStudentID: studentID,
		SpeechTitle:     title,
		SpeechBody:      body,
		SpeechStatus:    model.SpeechStatusDraft,
	}
	if err := s.Speeches.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// Submit hanya dari draft (atau rejected, untuk revisi) oleh pemiliknya.
func (s *WorkflowService) Submit(ctx context.Context, speechID, studentID uuid.UUID) (*model.SpeechModel, error) {
	sp, err := s.Speeches.FindByID(ctx, speechID)
	if err != nil {
		return nil, err
	}
	if sp.SpeechStudentID != studentID {
		return nil, ErrNotOwner
	}
	if sp.SpeechStatus != model.SpeechStatusDraft && sp.SpeechStatus != model.SpeechStatusRejected {
		return nil, ErrInvalidTransition
	}

	now := s.Now()
	sp.SpeechStatus = model.SpeechStatusSubmitted
	sp.SpeechSubmittedAt = &now
	if err := s.Speeches.Save(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// Review memutuskan pidato submitted; satu row per (speech, reviewer),
// keputusan ulang menimpa yang lama.
func (s *WorkflowService) Review(ctx context.Context, speechID, reviewerID uuid.UUID, approved bool, note *string) (*model.SpeechModel, error) {
	sp, err := s.Speeches.FindByID(ctx, speechID)
	if err != nil {
		return nil, err
	}
	if sp.SpeechStatus != model.SpeechStatusSubmitted {
		return nil, ErrInvalidTransition
	}

	if err := s.upsertReview(ctx, speechID, reviewerID, approved, note); err != nil {
		return nil, err
	}

	if approved {
		sp.SpeechStatus = model.SpeechStatusApproved
	} else {
		sp.SpeechStatus = model.SpeechStatusRejected
	}
	if err := s.Speeches.Save(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *WorkflowService) upsertReview(ctx context.Context, speechID, reviewerID uuid.UUID, approved bool, note *string) error {
	now := s.Now()

	apply := func(r *model.SpeechReviewModel) {
		r.SpeechReviewApproved = approved
		r.SpeechReviewNote = note
		r.SpeechReviewDecidedAt = now
	}

	if existing, err := s.Reviews.FindByKey(ctx, speechID, reviewerID); err == nil {
		apply(existing)
		return s.Reviews.Save(ctx, existing)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row := &model.SpeechReviewModel{
		SpeechReviewSpeechID:   speechID,
		SpeechReviewReviewerID: reviewerID,
	}
	apply(row)
	if err := s.Reviews.Create(ctx, row); err != nil {
		if helpers.IsDuplicateKey(err) {
			existing, ferr := s.Reviews.FindByKey(ctx, speechID, reviewerID)
			if ferr != nil {
				return ferr
			}
			apply(existing)
			return s.Reviews.Save(ctx, existing)
		}
		return err
	}
	return nil
}

// Publish hanya dari approved.
func (s *WorkflowService) Publish(ctx context.Context, speechID uuid.UUID) (*model.SpeechModel, error) {
	sp, err := s.Speeches.FindByID(ctx, speechID)
	if err != nil {
		return nil, err
	}
	if sp.SpeechStatus != model.SpeechStatusApproved {
		return nil, ErrInvalidTransition
	}

	now := s.Now()
	sp.SpeechStatus = model.SpeechStatusPublished
	sp.SpeechPublishedAt = &now
	if err := s.Speeches.Save(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

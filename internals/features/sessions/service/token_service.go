package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/sessions/model"
	helpers "abcschool_backend/internals/helpers"
)

var (
	ErrTokenNotFound = errors.New("attendance token tidak ditemukan")
	ErrTokenExpired  = errors.New("attendance token sudah kedaluwarsa")
)

const (
	// TTL default token sesi (menit)
	DefaultTokenTTLMin = 180

	tokenPayloadLen = 40
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomPayload menghasilkan string opaque 40 karakter dari crypto/rand.
// Byte di atas kelipatan terbesar len(alphabet) dibuang (rejection sampling)
// supaya distribusi karakter uniform.
func randomPayload() (string, error) {
	const limit = byte(256 - 256%len(tokenAlphabet)) // 248 untuk 62 karakter

	out := make([]byte, 0, tokenPayloadLen)
	buf := make([]byte, tokenPayloadLen)
	for len(out) < tokenPayloadLen {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("gagal generate token payload: %w", err)
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, tokenAlphabet[int(b)%len(tokenAlphabet)])
			if len(out) == tokenPayloadLen {
				break
			}
		}
	}
	return string(out), nil
}

type SessionStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.ClassSessionModel, error)
	Create(ctx context.Context, row *model.ClassSessionModel) error
	ListByGroupAndDate(ctx context.Context, groupID uuid.UUID, date time.Time) ([]model.ClassSessionModel, error)
}

type TokenStore interface {
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) (*model.AttendanceTokenModel, error)
	FindByPayload(ctx context.Context, payload string) (*model.AttendanceTokenModel, error)
	Create(ctx context.Context, row *model.AttendanceTokenModel) error
	Save(ctx context.Context, row *model.AttendanceTokenModel) error
}

/* =========================
   GORM stores
========================= */

type gormSessionStore struct{ db *gorm.DB }

func NewGormSessionStore(db *gorm.DB) SessionStore { return &gormSessionStore{db: db} }

func (s *gormSessionStore) FindByID(ctx context.Context, id uuid.UUID) (*model.ClassSessionModel, error) {
	var row model.ClassSessionModel
	if err := s.db.WithContext(ctx).First(&row, "class_session_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *gormSessionStore) Create(ctx context.Context, row *model.ClassSessionModel) error {
	return s.db.WithContext(ctx).Create(row).Error
}

func (s *gormSessionStore) ListByGroupAndDate(ctx context.Context, groupID uuid.UUID, date time.Time) ([]model.ClassSessionModel, error) {
	var rows []model.ClassSessionModel
	err := s.db.WithContext(ctx).
		Where("class_session_group_id = ? AND class_session_date = ?", groupID, date.Format("2006-01-02")).
		Order("class_session_created_at ASC").
		Find(&rows).Error
	return rows, err
}

type gormTokenStore struct{ db *gorm.DB }

func NewGormTokenStore(db *gorm.DB) TokenStore { return &gormTokenStore{db: db} }

func (s *gormTokenStore) FindBySessionID(ctx context.Context, sessionID uuid.UUID) (*model.AttendanceTokenModel, error) {
	var row model.AttendanceTokenModel
	if err := s.db.WithContext(ctx).First(&row, "attendance_token_session_id = ?", sessionID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *gormTokenStore) FindByPayload(ctx context.Context, payload string) (*model.AttendanceTokenModel, error) {
	var row model.AttendanceTokenModel
	if err := s.db.WithContext(ctx).First(&row, "attendance_token_payload = ?", payload).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *gormTokenStore) Create(ctx context.Context, row *model.AttendanceTokenModel) error {
	return s.db.WithContext(ctx).Create(row).Error
}

func (s *gormTokenStore) Save(ctx context.Context, row *model.AttendanceTokenModel) error {
	return s.db.WithContext(ctx).Save(row).Error
}

/* =========================
   Service
========================= */

type TokenService struct {
	Sessions SessionStore
	Tokens   TokenStore

	Now func() time.Time
}

func NewTokenService(db *gorm.DB, loc *time.Location) *TokenService {
	return &TokenService{
		Sessions: NewGormSessionStore(db),
		Tokens:   NewGormTokenStore(db),
		Now:      func() time.Time { return time.Now().In(loc) },
	}
}

// GenerateOrRefresh mengupsert token milik satu session:
// buat baru kalau belum ada, kalau sudah ada cukup perpanjang expiry.
// Payload hanya di-regenerate kalau kosong.
func (s *TokenService) GenerateOrRefresh(ctx context.Context, sessionID uuid.UUID, ttlMinutes int) (*model.AttendanceTokenModel, error) {
	if ttlMinutes <= 0 {
		ttlMinutes = DefaultTokenTTLMin
	}
	expiresAt := s.Now().Add(time.Duration(ttlMinutes) * time.Minute)

	if _, err := s.Sessions.FindByID(ctx, sessionID); err != nil {
		return nil, err
	}

	tok, err := s.Tokens.FindBySessionID(ctx, sessionID)
	switch {
	case err == nil:
		tok.AttendanceTokenExpiresAt = expiresAt
		if tok.AttendanceTokenPayload == "" {
			payload, perr := randomPayload()
			if perr != nil {
				return nil, perr
			}
			tok.AttendanceTokenPayload = payload
		}
		if err := s.Tokens.Save(ctx, tok); err != nil {
			return nil, err
		}
		return tok, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		payload, perr := randomPayload()
		if perr != nil {
			return nil, perr
		}
		row := &model.AttendanceTokenModel{
			AttendanceTokenSessionID: sessionID,
			AttendanceTokenPayload:   payload,
			AttendanceTokenExpiresAt: expiresAt,
		}
		if cerr := s.Tokens.Create(ctx, row); cerr != nil {
			if helpers.IsDuplicateKey(cerr) {
				// balapan dengan request lain: ambil yang menang lalu perpanjang
				existing, ferr := s.Tokens.FindBySessionID(ctx, sessionID)
				if ferr != nil {
					return nil, ferr
				}
				existing.AttendanceTokenExpiresAt = expiresAt
				if serr := s.Tokens.Save(ctx, existing); serr != nil {
					return nil, serr
				}
				return existing, nil
			}
			return nil, cerr
		}
		return row, nil

	default:
		return nil, err
	}
}

// Validate mengecek payload token masih dikenal dan belum kedaluwarsa.
func (s *TokenService) Validate(ctx context.Context, payload string) (*model.AttendanceTokenModel, error) {
	tok, err := s.Tokens.FindByPayload(ctx, payload)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	if s.Now().After(tok.AttendanceTokenExpiresAt) {
		return nil, ErrTokenExpired
	}
	return tok, nil
}

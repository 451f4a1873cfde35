package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/sessions/model"
)

type memSessionStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]model.ClassSessionModel
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{rows: map[uuid.UUID]model.ClassSessionModel{}}
}

func (s *memSessionStore) add(groupID uuid.UUID, date time.Time) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.rows[id] = model.ClassSessionModel{
		ClassSessionID:      id,
		ClassSessionGroupID: groupID,
		ClassSessionDate:    date,
	}
	return id
}

func (s *memSessionStore) FindByID(_ context.Context, id uuid.UUID) (*model.ClassSessionModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := row
	return &cp, nil
}

func (s *memSessionStore) Create(_ context.Context, row *model.ClassSessionModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row.ClassSessionID == uuid.Nil {
		row.ClassSessionID = uuid.New()
	}
	s.rows[row.ClassSessionID] = *row
	return nil
}

func (s *memSessionStore) ListByGroupAndDate(_ context.Context, groupID uuid.UUID, date time.Time) ([]model.ClassSessionModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ClassSessionModel
	for _, row := range s.rows {
		if row.ClassSessionGroupID == groupID && row.ClassSessionDate.Format("2006-01-02") == date.Format("2006-01-02") {
			out = append(out, row)
		}
	}
	return out, nil
}

type memTokenStore struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]model.AttendanceTokenModel
	creates int
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{rows: map[uuid.UUID]model.AttendanceTokenModel{}}
}

func (s *memTokenStore) FindBySessionID(_ context.Context, sessionID uuid.UUID) (*model.AttendanceTokenModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.AttendanceTokenSessionID == sessionID {
			cp := row
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memTokenStore) FindByPayload(_ context.Context, payload string) (*model.AttendanceTokenModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.AttendanceTokenPayload == payload {
			cp := row
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memTokenStore) Create(_ context.Context, row *model.AttendanceTokenModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.rows {
		if existing.AttendanceTokenSessionID == row.AttendanceTokenSessionID {
			return gorm.ErrDuplicatedKey
		}
	}
	if row.AttendanceTokenID == uuid.Nil {
		row.AttendanceTokenID = uuid.New()
	}
	s.creates++
	s.rows[row.AttendanceTokenID] = *row
	return nil
}

func (s *memTokenStore) Save(_ context.Context, row *model.AttendanceTokenModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[row.AttendanceTokenID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.rows[row.AttendanceTokenID] = *row
	return nil
}

func newTokenFixture(t *testing.T) (*TokenService, *memSessionStore, *memTokenStore, uuid.UUID) {
	t.Helper()
	sessions := newMemSessionStore()
	tokens := newMemTokenStore()
	now := time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)
	svc := &TokenService{
		Sessions: sessions,
		Tokens:   tokens,
		Now:      func() time.Time { return now },
	}
	sessionID := sessions.add(uuid.New(), time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC))
	return svc, sessions, tokens, sessionID
}

func TestGenerateCreatesFortyCharPayload(t *testing.T) {
	svc, _, tokens, sessionID := newTokenFixture(t)

	tok, err := svc.GenerateOrRefresh(context.Background(), sessionID, 0)
	if err != nil {
		t.Fatalf("GenerateOrRefresh: %v", err)
	}
	if len(tok.AttendanceTokenPayload) != 40 {
		t.Fatalf("payload len = %d, want 40", len(tok.AttendanceTokenPayload))
	}
	wantExp := svc.Now().Add(DefaultTokenTTLMin * time.Minute)
	if !tok.AttendanceTokenExpiresAt.Equal(wantExp) {
		t.Fatalf("expires_at = %v, want %v (TTL default)", tok.AttendanceTokenExpiresAt, wantExp)
	}
	if tokens.creates != 1 {
		t.Fatalf("creates = %d, want 1", tokens.creates)
	}
}

func TestRandomPayloadIsUniformAlphanumeric(t *testing.T) {
	seen := map[byte]bool{}
	for i := 0; i < 64; i++ {
		p, err := randomPayload()
		if err != nil {
			t.Fatalf("randomPayload: %v", err)
		}
		if len(p) != tokenPayloadLen {
			t.Fatalf("len = %d, want %d", len(p), tokenPayloadLen)
		}
		for j := 0; j < len(p); j++ {
			if !strings.ContainsRune(tokenAlphabet, rune(p[j])) {
				t.Fatalf("karakter di luar alfabet: %q", p[j])
			}
			seen[p[j]] = true
		}
	}
	// 64×40 sampel uniform praktis pasti menyentuh seluruh 62 karakter;
	// sampling yang bias ke awal alfabet akan meninggalkan lubang di ekor.
	for i := 0; i < len(tokenAlphabet); i++ {
		if !seen[tokenAlphabet[i]] {
			t.Fatalf("karakter %q tidak pernah muncul dari 2560 sampel", tokenAlphabet[i])
		}
	}
}

func TestRefreshExtendsExpiryKeepsPayload(t *testing.T) {
	svc, _, tokens, sessionID := newTokenFixture(t)

	first, err := svc.GenerateOrRefresh(context.Background(), sessionID, 60)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	second, err := svc.GenerateOrRefresh(context.Background(), sessionID, 240)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if second.AttendanceTokenPayload != first.AttendanceTokenPayload {
		t.Fatalf("payload berubah saat refresh, harusnya tetap")
	}
	wantExp := svc.Now().Add(240 * time.Minute)
	if !second.AttendanceTokenExpiresAt.Equal(wantExp) {
		t.Fatalf("expires_at = %v, want %v", second.AttendanceTokenExpiresAt, wantExp)
	}
	if tokens.creates != 1 {
		t.Fatalf("creates = %d, want 1 (refresh bukan insert baru)", tokens.creates)
	}
}

func TestRefreshRegeneratesOnlyEmptyPayload(t *testing.T) {
	svc, _, tokens, sessionID := newTokenFixture(t)

	// baris lama tanpa payload (data import)
	blank := &model.AttendanceTokenModel{
		AttendanceTokenID:        uuid.New(),
		AttendanceTokenSessionID: sessionID,
		AttendanceTokenExpiresAt: svc.Now().Add(-time.Hour),
	}
	tokens.rows[blank.AttendanceTokenID] = *blank

	tok, err := svc.GenerateOrRefresh(context.Background(), sessionID, 0)
	if err != nil {
		t.Fatalf("GenerateOrRefresh: %v", err)
	}
	if len(tok.AttendanceTokenPayload) != 40 {
		t.Fatalf("payload kosong harus di-regenerate, got %q", tok.AttendanceTokenPayload)
	}
}

func TestGenerateUnknownSession(t *testing.T) {
	svc, _, _, _ := newTokenFixture(t)

	_, err := svc.GenerateOrRefresh(context.Background(), uuid.New(), 0)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestValidate(t *testing.T) {
	svc, _, _, sessionID := newTokenFixture(t)

	tok, err := svc.GenerateOrRefresh(context.Background(), sessionID, 30)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	got, err := svc.Validate(context.Background(), tok.AttendanceTokenPayload)
	if err != nil {
		t.Fatalf("Validate token sehat: %v", err)
	}
	if got.AttendanceTokenSessionID != sessionID {
		t.Fatalf("session id tidak cocok")
	}

	if _, err := svc.Validate(context.Background(), "tidak-ada"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("payload asing: err = %v, want ErrTokenNotFound", err)
	}

	// geser jam melewati expiry
	svc.Now = func() time.Time { return tok.AttendanceTokenExpiresAt.Add(time.Minute) }
	if _, err := svc.Validate(context.Background(), tok.AttendanceTokenPayload); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("token lewat waktu: err = %v, want ErrTokenExpired", err)
	}
}

package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/academics/model"
)

/* =========================================================
   In-memory mock stores untuk tes service tanpa DB.
   Duplicate key disimulasikan dengan gorm.ErrDuplicatedKey.
========================================================= */

type mockPeriodStore struct {
	mu      sync.Mutex
	rows    map[[2]int]*model.AcademicPeriodModel
	creates int
}

func newMockPeriodStore() *mockPeriodStore {
	return &mockPeriodStore{rows: map[[2]int]*model.AcademicPeriodModel{}}
}

func (m *mockPeriodStore) FindByYearMonth(_ context.Context, year, month int) (*model.AcademicPeriodModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.rows[[2]int{year, month}]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPeriodStore) Create(_ context.Context, p *model.AcademicPeriodModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int{p.AcademicPeriodYear, p.AcademicPeriodMonth}
	if _, ok := m.rows[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	p.AcademicPeriodID = uuid.New()
	cp := *p
	m.rows[key] = &cp
	m.creates++
	return nil
}

type mockGroupStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*model.MonthlyClassGroupModel
}

func newMockGroupStore() *mockGroupStore {
	return &mockGroupStore{rows: map[uuid.UUID]*model.MonthlyClassGroupModel{}}
}

func (m *mockGroupStore) add(g model.MonthlyClassGroupModel) *model.MonthlyClassGroupModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g.MonthlyClassGroupID == uuid.Nil {
		g.MonthlyClassGroupID = uuid.New()
	}
	m.rows[g.MonthlyClassGroupID] = &g
	return &g
}

func (m *mockGroupStore) FindByID(_ context.Context, id uuid.UUID) (*model.MonthlyClassGroupModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.rows[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupStore) FindMatching(_ context.Context, periodID, levelID uuid.UUID, name string, roomID uuid.UUID) (*model.MonthlyClassGroupModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.rows {
		if g.MonthlyClassGroupPeriodID == periodID &&
			g.MonthlyClassGroupLevelID == levelID &&
			g.MonthlyClassGroupName == name &&
			g.MonthlyClassGroupRoomID == roomID {
			cp := *g
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type mockEnrollmentStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*model.StudentMonthlyEnrollmentModel
}

func newMockEnrollmentStore() *mockEnrollmentStore {
	return &mockEnrollmentStore{rows: map[uuid.UUID]*model.StudentMonthlyEnrollmentModel{}}
}

func (m *mockEnrollmentStore) add(e model.StudentMonthlyEnrollmentModel) *model.StudentMonthlyEnrollmentModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.StudentMonthlyEnrollmentID == uuid.Nil {
		e.StudentMonthlyEnrollmentID = uuid.New()
	}
	if e.StudentMonthlyEnrollmentCreatedAt.IsZero() {
		e.StudentMonthlyEnrollmentCreatedAt = time.Now()
	}
	m.rows[e.StudentMonthlyEnrollmentID] = &e
	return &e
}

func (m *mockEnrollmentStore) FindByID(_ context.Context, id uuid.UUID) (*model.StudentMonthlyEnrollmentModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.rows[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentStore) ListActive(_ context.Context, studentID, periodID uuid.UUID) ([]model.StudentMonthlyEnrollmentModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.StudentMonthlyEnrollmentModel
	for _, e := range m.rows {
		if e.StudentMonthlyEnrollmentStudentID == studentID &&
			e.StudentMonthlyEnrollmentPeriodID == periodID &&
			e.StudentMonthlyEnrollmentStatus == model.EnrollmentStatusActive {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *mockEnrollmentStore) HasAnyInPeriod(_ context.Context, studentID, periodID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.rows {
		if e.StudentMonthlyEnrollmentStudentID == studentID &&
			e.StudentMonthlyEnrollmentPeriodID == periodID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEnrollmentStore) LatestInPeriod(_ context.Context, studentID, periodID uuid.UUID) (*model.StudentMonthlyEnrollmentModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *model.StudentMonthlyEnrollmentModel
	for _, e := range m.rows {
		if e.StudentMonthlyEnrollmentStudentID != studentID ||
			e.StudentMonthlyEnrollmentPeriodID != periodID {
			continue
		}
		if best == nil {
			best = e
			continue
		}
		bestActive := best.StudentMonthlyEnrollmentStatus == model.EnrollmentStatusActive
		eActive := e.StudentMonthlyEnrollmentStatus == model.EnrollmentStatusActive
		if eActive && !bestActive {
			best = e
		} else if eActive == bestActive && e.StudentMonthlyEnrollmentCreatedAt.After(best.StudentMonthlyEnrollmentCreatedAt) {
			best = e
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *best
	return &cp, nil
}

func (m *mockEnrollmentStore) Create(_ context.Context, e *model.StudentMonthlyEnrollmentModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if existing.StudentMonthlyEnrollmentPeriodID == e.StudentMonthlyEnrollmentPeriodID &&
			existing.StudentMonthlyEnrollmentStudentID == e.StudentMonthlyEnrollmentStudentID &&
			existing.StudentMonthlyEnrollmentGroupID == e.StudentMonthlyEnrollmentGroupID {
			return gorm.ErrDuplicatedKey
		}
	}
	e.StudentMonthlyEnrollmentID = uuid.New()
	e.StudentMonthlyEnrollmentCreatedAt = time.Now()
	cp := *e
	m.rows[e.StudentMonthlyEnrollmentID] = &cp
	return nil
}

func (m *mockEnrollmentStore) FindByKey(_ context.Context, periodID, studentID, groupID uuid.UUID) (*model.StudentMonthlyEnrollmentModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.rows {
		if e.StudentMonthlyEnrollmentPeriodID == periodID &&
			e.StudentMonthlyEnrollmentStudentID == studentID &&
			e.StudentMonthlyEnrollmentGroupID == groupID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentStore) ActivateExclusive(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	target, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for _, e := range m.rows {
		if e.StudentMonthlyEnrollmentID != id &&
			e.StudentMonthlyEnrollmentPeriodID == target.StudentMonthlyEnrollmentPeriodID &&
			e.StudentMonthlyEnrollmentStudentID == target.StudentMonthlyEnrollmentStudentID &&
			e.StudentMonthlyEnrollmentStatus == model.EnrollmentStatusActive {
			e.StudentMonthlyEnrollmentStatus = model.EnrollmentStatusInactive
		}
	}
	target.StudentMonthlyEnrollmentStatus = model.EnrollmentStatusActive
	return nil
}

func (m *mockEnrollmentStore) SetStatus(_ context.Context, id uuid.UUID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.StudentMonthlyEnrollmentStatus = status
	return nil
}

func (m *mockEnrollmentStore) SetExamUnlock(_ context.Context, id uuid.UUID, unlocked bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.StudentMonthlyEnrollmentExamUnlock = unlocked
	return nil
}

type mockIntentStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*model.ReenrollmentIntentModel
}

func newMockIntentStore() *mockIntentStore {
	return &mockIntentStore{rows: map[uuid.UUID]*model.ReenrollmentIntentModel{}}
}

func (m *mockIntentStore) FindByID(_ context.Context, id uuid.UUID) (*model.ReenrollmentIntentModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if it, ok := m.rows[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockIntentStore) FindByStudentToPeriod(_ context.Context, studentID, toPeriodID uuid.UUID) (*model.ReenrollmentIntentModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.rows {
		if it.ReenrollmentIntentStudentID == studentID &&
			it.ReenrollmentIntentToPeriodID == toPeriodID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockIntentStore) Create(_ context.Context, it *model.ReenrollmentIntentModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if existing.ReenrollmentIntentStudentID == it.ReenrollmentIntentStudentID &&
			existing.ReenrollmentIntentToPeriodID == it.ReenrollmentIntentToPeriodID {
			return gorm.ErrDuplicatedKey
		}
	}
	it.ReenrollmentIntentID = uuid.New()
	cp := *it
	m.rows[it.ReenrollmentIntentID] = &cp
	return nil
}

func (m *mockIntentStore) Save(_ context.Context, it *model.ReenrollmentIntentModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *it
	m.rows[it.ReenrollmentIntentID] = &cp
	return nil
}

func (m *mockIntentStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

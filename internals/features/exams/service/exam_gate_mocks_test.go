package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsModel "abcschool_backend/internals/features/academics/model"
	"abcschool_backend/internals/features/exams/model"
)

/* =========================================================
   Mock in-memory untuk tes gerbang ujian tanpa DB.
========================================================= */

type memPeriodStore struct {
	mu   sync.Mutex
	rows map[[2]int]*academicsModel.AcademicPeriodModel
}

func newMemPeriodStore() *memPeriodStore {
	return &memPeriodStore{rows: map[[2]int]*academicsModel.AcademicPeriodModel{}}
}

func (m *memPeriodStore) FindByYearMonth(_ context.Context, year, month int) (*academicsModel.AcademicPeriodModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.rows[[2]int{year, month}]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memPeriodStore) Create(_ context.Context, p *academicsModel.AcademicPeriodModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int{p.AcademicPeriodYear, p.AcademicPeriodMonth}
	if _, ok := m.rows[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	p.AcademicPeriodID = uuid.New()
	cp := *p
	m.rows[key] = &cp
	return nil
}

type memEnrollmentStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*academicsModel.StudentMonthlyEnrollmentModel
}

func newMemEnrollmentStore() *memEnrollmentStore {
	return &memEnrollmentStore{rows: map[uuid.UUID]*academicsModel.StudentMonthlyEnrollmentModel{}}
}

func (m *memEnrollmentStore) add(e academicsModel.StudentMonthlyEnrollmentModel) *academicsModel.StudentMonthlyEnrollmentModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.StudentMonthlyEnrollmentID == uuid.Nil {
		e.StudentMonthlyEnrollmentID = uuid.New()
	}
	m.rows[e.StudentMonthlyEnrollmentID] = &e
	return &e
}

func (m *memEnrollmentStore) FindByID(_ context.Context, id uuid.UUID) (*academicsModel.StudentMonthlyEnrollmentModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.rows[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memEnrollmentStore) ListActive(_ context.Context, studentID, periodID uuid.UUID) ([]academicsModel.StudentMonthlyEnrollmentModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []academicsModel.StudentMonthlyEnrollmentModel
	for _, e := range m.rows {
		if e.StudentMonthlyEnrollmentStudentID == studentID &&
			e.StudentMonthlyEnrollmentPeriodID == periodID &&
			e.StudentMonthlyEnrollmentStatus == academicsModel.EnrollmentStatusActive {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *memEnrollmentStore) HasAnyInPeriod(_ context.Context, studentID, periodID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.rows {
		if e.StudentMonthlyEnrollmentStudentID == studentID && e.StudentMonthlyEnrollmentPeriodID == periodID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memEnrollmentStore) LatestInPeriod(_ context.Context, studentID, periodID uuid.UUID) (*academicsModel.StudentMonthlyEnrollmentModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.rows {
		if e.StudentMonthlyEnrollmentStudentID == studentID && e.StudentMonthlyEnrollmentPeriodID == periodID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memEnrollmentStore) Create(_ context.Context, e *academicsModel.StudentMonthlyEnrollmentModel) error {
	m.add(*e)
	return nil
}

func (m *memEnrollmentStore) FindByKey(_ context.Context, periodID, studentID, groupID uuid.UUID) (*academicsModel.StudentMonthlyEnrollmentModel, error) {
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

func (m *memEnrollmentStore) ActivateExclusive(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.StudentMonthlyEnrollmentStatus = academicsModel.EnrollmentStatusActive
	return nil
}

func (m *memEnrollmentStore) SetStatus(_ context.Context, id uuid.UUID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.StudentMonthlyEnrollmentStatus = status
	return nil
}

func (m *memEnrollmentStore) SetExamUnlock(_ context.Context, id uuid.UUID, unlocked bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.StudentMonthlyEnrollmentExamUnlock = unlocked
	return nil
}

type memGroupStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*academicsModel.MonthlyClassGroupModel
}

func newMemGroupStore() *memGroupStore {
	return &memGroupStore{rows: map[uuid.UUID]*academicsModel.MonthlyClassGroupModel{}}
}

func (m *memGroupStore) add(g academicsModel.MonthlyClassGroupModel) *academicsModel.MonthlyClassGroupModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g.MonthlyClassGroupID == uuid.Nil {
		g.MonthlyClassGroupID = uuid.New()
	}
	m.rows[g.MonthlyClassGroupID] = &g
	return &g
}

func (m *memGroupStore) FindByID(_ context.Context, id uuid.UUID) (*academicsModel.MonthlyClassGroupModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.rows[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memGroupStore) FindMatching(_ context.Context, periodID, levelID uuid.UUID, name string, roomID uuid.UUID) (*academicsModel.MonthlyClassGroupModel, error) {
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

type memAssignmentStore struct {
	mu    sync.Mutex
	pairs map[[2]uuid.UUID]bool // (teacher, group)
}

func newMemAssignmentStore() *memAssignmentStore {
	return &memAssignmentStore{pairs: map[[2]uuid.UUID]bool{}}
}

func (m *memAssignmentStore) assign(teacherID, groupID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pairs[[2]uuid.UUID{teacherID, groupID}] = true
}

func (m *memAssignmentStore) IsTeacherAssigned(_ context.Context, teacherID, groupID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pairs[[2]uuid.UUID{teacherID, groupID}], nil
}

func (m *memAssignmentStore) GroupIDsForTeacher(_ context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []uuid.UUID
	for pair := range m.pairs {
		if pair[0] == teacherID {
			out = append(out, pair[1])
		}
	}
	return out, nil
}

type memRoomStore struct {
	mu     sync.Mutex
	rooms  map[uuid.UUID]*academicsModel.RoomModel
	campus map[uuid.UUID]*academicsModel.SchoolCampusModel // roomID → campus
}

func newMemRoomStore() *memRoomStore {
	return &memRoomStore{
		rooms:  map[uuid.UUID]*academicsModel.RoomModel{},
		campus: map[uuid.UUID]*academicsModel.SchoolCampusModel{},
	}
}

func (m *memRoomStore) add(r academicsModel.RoomModel) *academicsModel.RoomModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.RoomID == uuid.Nil {
		r.RoomID = uuid.New()
	}
	m.rooms[r.RoomID] = &r
	return &r
}

func (m *memRoomStore) setCampus(roomID uuid.UUID, c *academicsModel.SchoolCampusModel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.campus[roomID] = c
}

func (m *memRoomStore) FindByCode(_ context.Context, code string) (*academicsModel.RoomModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		if r.RoomCode == code {
			cp := *r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRoomStore) CampusForRoom(_ context.Context, roomID uuid.UUID) (*academicsModel.SchoolCampusModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.campus[roomID]; ok {
		return c, nil
	}
	return nil, nil
}

type memLocationStore struct {
	mu      sync.Mutex
	updates map[uuid.UUID][2]float64
}

func newMemLocationStore() *memLocationStore {
	return &memLocationStore{updates: map[uuid.UUID][2]float64{}}
}

func (m *memLocationStore) UpdateLastLocation(_ context.Context, studentID uuid.UUID, lat, lng float64, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates[studentID] = [2]float64{lat, lng}
	return nil
}

func (m *memLocationStore) has(studentID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.updates[studentID]
	return ok
}

type memEntryStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*model.StudentExamEntryModel
}

func newMemEntryStore() *memEntryStore {
	return &memEntryStore{rows: map[uuid.UUID]*model.StudentExamEntryModel{}}
}

func entrySameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameCourse(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (m *memEntryStore) FindByKey(_ context.Context, date time.Time, groupID, studentID uuid.UUID, courseID *uuid.UUID) (*model.StudentExamEntryModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.rows {
		if entrySameDay(e.StudentExamEntryDate, date) &&
			e.StudentExamEntryGroupID == groupID &&
			e.StudentExamEntryStudentID == studentID &&
			sameCourse(e.StudentExamEntryCourseID, courseID) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memEntryStore) Create(_ context.Context, e *model.StudentExamEntryModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if entrySameDay(existing.StudentExamEntryDate, e.StudentExamEntryDate) &&
			existing.StudentExamEntryGroupID == e.StudentExamEntryGroupID &&
			existing.StudentExamEntryStudentID == e.StudentExamEntryStudentID &&
			sameCourse(existing.StudentExamEntryCourseID, e.StudentExamEntryCourseID) {
			return gorm.ErrDuplicatedKey
		}
	}
	e.StudentExamEntryID = uuid.New()
	cp := *e
	m.rows[e.StudentExamEntryID] = &cp
	return nil
}

func (m *memEntryStore) ListByGroupAndDate(_ context.Context, groupID uuid.UUID, date time.Time) ([]model.StudentExamEntryModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.StudentExamEntryModel
	for _, e := range m.rows {
		if e.StudentExamEntryGroupID == groupID && entrySameDay(e.StudentExamEntryDate, date) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *memEntryStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

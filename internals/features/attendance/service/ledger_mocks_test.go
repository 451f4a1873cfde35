package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsModel "abcschool_backend/internals/features/academics/model"
	"abcschool_backend/internals/features/attendance/model"
)

/* =========================================================
   Mock in-memory untuk tes ledger tanpa DB.
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

type memCheckInStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*model.DailyRoomCheckInModel
}

func newMemCheckInStore() *memCheckInStore {
	return &memCheckInStore{rows: map[uuid.UUID]*model.DailyRoomCheckInModel{}}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (m *memCheckInStore) FindByID(_ context.Context, id uuid.UUID) (*model.DailyRoomCheckInModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ci, ok := m.rows[id]; ok {
		cp := *ci
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memCheckInStore) FindByKey(_ context.Context, date time.Time, roomID, studentID uuid.UUID) (*model.DailyRoomCheckInModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ci := range m.rows {
		if sameDay(ci.DailyRoomCheckInDate, date) &&
			ci.DailyRoomCheckInRoomID == roomID &&
			ci.DailyRoomCheckInStudentID == studentID {
			cp := *ci
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memCheckInStore) Create(_ context.Context, ci *model.DailyRoomCheckInModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if sameDay(existing.DailyRoomCheckInDate, ci.DailyRoomCheckInDate) &&
			existing.DailyRoomCheckInRoomID == ci.DailyRoomCheckInRoomID &&
			existing.DailyRoomCheckInStudentID == ci.DailyRoomCheckInStudentID {
			return gorm.ErrDuplicatedKey
		}
	}
	ci.DailyRoomCheckInID = uuid.New()
	cp := *ci
	m.rows[ci.DailyRoomCheckInID] = &cp
	return nil
}

func (m *memCheckInStore) Save(_ context.Context, ci *model.DailyRoomCheckInModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *ci
	m.rows[ci.DailyRoomCheckInID] = &cp
	return nil
}

func (m *memCheckInStore) ListByGroupsAndDate(_ context.Context, groupIDs []uuid.UUID, date time.Time) ([]model.DailyRoomCheckInModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.DailyRoomCheckInModel
	for _, ci := range m.rows {
		if !sameDay(ci.DailyRoomCheckInDate, date) {
			continue
		}
		for _, gid := range groupIDs {
			if ci.DailyRoomCheckInGroupID == gid {
				out = append(out, *ci)
				break
			}
		}
	}
	return out, nil
}

func (m *memCheckInStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type memApprovalStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*model.DailyRoomCheckInApprovalModel
}

func newMemApprovalStore() *memApprovalStore {
	return &memApprovalStore{rows: map[uuid.UUID]*model.DailyRoomCheckInApprovalModel{}}
}

func (m *memApprovalStore) FindByKey(_ context.Context, checkinID, teacherID uuid.UUID) (*model.DailyRoomCheckInApprovalModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.rows {
		if a.DailyRoomCheckInApprovalCheckInID == checkinID &&
			a.DailyRoomCheckInApprovalTeacherID == teacherID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memApprovalStore) Create(_ context.Context, a *model.DailyRoomCheckInApprovalModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if existing.DailyRoomCheckInApprovalCheckInID == a.DailyRoomCheckInApprovalCheckInID &&
			existing.DailyRoomCheckInApprovalTeacherID == a.DailyRoomCheckInApprovalTeacherID {
			return gorm.ErrDuplicatedKey
		}
	}
	a.DailyRoomCheckInApprovalID = uuid.New()
	cp := *a
	m.rows[a.DailyRoomCheckInApprovalID] = &cp
	return nil
}

func (m *memApprovalStore) Save(_ context.Context, a *model.DailyRoomCheckInApprovalModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.rows[a.DailyRoomCheckInApprovalID] = &cp
	return nil
}

func (m *memApprovalStore) CountApproved(_ context.Context, checkinID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, a := range m.rows {
		if a.DailyRoomCheckInApprovalCheckInID == checkinID && a.DailyRoomCheckInApprovalApproved {
			n++
		}
	}
	return n, nil
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
	updates map[uuid.UUID][3]float64 // studentID → lat, lng, unix
}

func newMemLocationStore() *memLocationStore {
	return &memLocationStore{updates: map[uuid.UUID][3]float64{}}
}

func (m *memLocationStore) UpdateLastLocation(_ context.Context, studentID uuid.UUID, lat, lng float64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates[studentID] = [3]float64{lat, lng, float64(at.Unix())}
	return nil
}

func (m *memLocationStore) has(studentID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.updates[studentID]
	return ok
}

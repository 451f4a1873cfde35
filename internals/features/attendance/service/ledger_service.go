package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsService "abcschool_backend/internals/features/academics/service"
	"abcschool_backend/internals/features/attendance/model"
	helpers "abcschool_backend/internals/helpers"
)

/* =========================================================
   LedgerService — jantung absensi harian: scan siswa,
   konfirmasi guru, daftar pending.
========================================================= */

type LedgerService struct {
	Directory *academicsService.DirectoryService
	Groups    academicsService.GroupStore

	CheckIns    CheckInStore
	Approvals   ApprovalStore
	Assignments AssignmentStore
	Rooms       RoomStore
	Locations   StudentLocationStore

	Codec      *QRCodec
	Classifier *Classifier

	Now func() time.Time
}

func NewLedgerService(db *gorm.DB, qrSecret string, loc *time.Location) *LedgerService {
	return &LedgerService{
		Directory:   academicsService.NewDirectoryService(db),
		Groups:      academicsService.NewGormGroupStore(db),
		CheckIns:    NewGormCheckInStore(db),
		Approvals:   NewGormApprovalStore(db),
		Assignments: NewGormAssignmentStore(db),
		Rooms:       NewGormRoomStore(db),
		Locations:   NewGormStudentLocationStore(db),
		Codec:       NewQRCodec(qrSecret),
		Classifier:  NewClassifier(loc),
		Now:         func() time.Time { return time.Now().In(loc) },
	}
}

type ScanInput struct {
	StudentID  uuid.UUID
	QRPayload  string
	Lat        *float64
	Lng        *float64
	ClientTime string // ISO-8601, opsional
}

type ScanResult struct {
	CheckIn *model.DailyRoomCheckInModel `json:"checkin"`
	Created bool                         `json:"created"`
}

// RecordScan memproses satu scan siswa di pintu ruangan.
// Urutan gerbang: periode → enrollment active → ruangan/grup cocok →
// geofence → klasifikasi → upsert (date, room, student).
func (s *LedgerService) RecordScan(ctx context.Context, in ScanInput) (*ScanResult, error) {
	now := s.Now()

	period, err := s.Directory.ResolvePeriod(ctx, now)
	if err != nil {
		return nil, err
	}

	enr, err := s.Directory.ActiveEnrollmentFor(ctx, in.StudentID, period.AcademicPeriodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}

	group, err := s.Groups.FindByID(ctx, enr.StudentMonthlyEnrollmentGroupID)
	if err != nil {
		return nil, err
	}

	roomID, err := s.resolveScannedRoom(ctx, in.QRPayload, group.MonthlyClassGroupID, group.MonthlyClassGroupRoomID)
	if err != nil {
		return nil, err
	}

	// Lokasi: last-known selalu diupdate, bahkan kalau nanti ditolak geofence.
	if in.Lat != nil && in.Lng != nil {
		if lerr := s.Locations.UpdateLastLocation(ctx, in.StudentID, *in.Lat, *in.Lng, now); lerr != nil {
			log.Printf("[WARN] update lokasi siswa %s: %v", in.StudentID, lerr)
		}
		campus, cerr := s.Rooms.CampusForRoom(ctx, roomID)
		if cerr != nil {
			return nil, cerr
		}
		if campus != nil && !WithinCampus(campus, *in.Lat, *in.Lng) {
			return nil, ErrOutsideCampus
		}
	}

	// Jam klien hanya untuk klasifikasi telat/tidak; kunci tanggal ledger
	// selalu "hari ini" menurut jam server.
	scanTime := s.Classifier.ParseScanClock(in.ClientTime, now)
	verdict := s.Classifier.Classify(group.StartHHMM(), group.MonthlyClassGroupLateGraceMin, scanTime, scanTime)

	return s.upsertCheckIn(ctx, period.AcademicPeriodID, roomID, group.MonthlyClassGroupID, in, now, scanTime, verdict)
}

// resolveScannedRoom menerima QR ruangan ATAU QR grup dan mengembalikan
// room yang wajib dituju siswa.
func (s *LedgerService) resolveScannedRoom(ctx context.Context, payload string, studentGroupID, studentRoomID uuid.UUID) (uuid.UUID, error) {
	if roomQR, err := s.Codec.ParseRoomQR(payload); err == nil {
		room, rerr := s.Rooms.FindByCode(ctx, roomQR.RoomCode)
		if rerr != nil {
			if errors.Is(rerr, gorm.ErrRecordNotFound) {
				return uuid.Nil, ErrWrongClassroom
			}
			return uuid.Nil, rerr
		}
		if room.RoomID != studentRoomID {
			return uuid.Nil, ErrWrongClassroom
		}
		return room.RoomID, nil
	} else if errors.Is(err, ErrQREmpty) {
		return uuid.Nil, err
	}

	groupQR, err := s.Codec.ParseGroupQR(payload)
	if err != nil {
		return uuid.Nil, err
	}
	if groupQR.GroupID != studentGroupID {
		return uuid.Nil, ErrWrongClassroom
	}
	return studentRoomID, nil
}

func (s *LedgerService) upsertCheckIn(ctx context.Context, periodID, roomID, groupID uuid.UUID, in ScanInput, now, scanTime time.Time, verdict ClassifyResult) (*ScanResult, error) {
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	applyScan := func(ci *model.DailyRoomCheckInModel) {
		ci.DailyRoomCheckInScannedAt = scanTime
		ci.DailyRoomCheckInStatus = verdict.Status
		ci.DailyRoomCheckInLateMinutes = verdict.LateMinutes
		ci.DailyRoomCheckInLat = in.Lat
		ci.DailyRoomCheckInLng = in.Lng
	}

	if existing, err := s.CheckIns.FindByKey(ctx, date, roomID, in.StudentID); err == nil {
		applyScan(existing)
		if serr := s.CheckIns.Save(ctx, existing); serr != nil {
			return nil, serr
		}
		return &ScanResult{CheckIn: existing, Created: false}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ci := &model.DailyRoomCheckInModel{
		DailyRoomCheckInPeriodID:              periodID,
		DailyRoomCheckInDate:                  date,
		DailyRoomCheckInRoomID:                roomID,
		DailyRoomCheckInStudentID:             in.StudentID,
		DailyRoomCheckInGroupID:               groupID,
		DailyRoomCheckInScannedBy:             model.ScannedBySelf,
		DailyRoomCheckInRequiredConfirmations: 3,
	}
	applyScan(ci)

	if err := s.CheckIns.Create(ctx, ci); err != nil {
		if helpers.IsDuplicateKey(err) {
			// race dengan scan kembar — jatuh ke jalur update
			existing, ferr := s.CheckIns.FindByKey(ctx, date, roomID, in.StudentID)
			if ferr != nil {
				return nil, ferr
			}
			applyScan(existing)
			if serr := s.CheckIns.Save(ctx, existing); serr != nil {
				return nil, serr
			}
			return &ScanResult{CheckIn: existing, Created: false}, nil
		}
		return nil, err
	}
	return &ScanResult{CheckIn: ci, Created: true}, nil
}

type ConfirmResult struct {
	Approval         *model.DailyRoomCheckInApprovalModel `json:"approval"`
	ApprovalsCount   int                                  `json:"approvals_count"`
	IsFullyConfirmed bool                                 `json:"is_fully_confirmed"`
}

// Confirm mencatat suara guru atas satu check-in. Guru harus ditugaskan ke
// grup check-in tsb. Keputusan susulan menimpa yang lama; status check-in
// tidak pernah disentuh — kuorum dihitung turunan.
func (s *LedgerService) Confirm(ctx context.Context, checkinID, teacherID uuid.UUID, approved bool, note *string) (*ConfirmResult, error) {
	ci, err := s.CheckIns.FindByID(ctx, checkinID)
	if err != nil {
		return nil, err
	}

	assigned, err := s.Assignments.IsTeacherAssigned(ctx, teacherID, ci.DailyRoomCheckInGroupID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, ErrNotAuthorized
	}

	now := s.Now()
	apply := func(a *model.DailyRoomCheckInApprovalModel) {
		a.DailyRoomCheckInApprovalApproved = approved
		a.DailyRoomCheckInApprovalNote = note
		a.DailyRoomCheckInApprovalDecidedAt = now
	}

	var approval *model.DailyRoomCheckInApprovalModel
	if existing, err := s.Approvals.FindByKey(ctx, checkinID, teacherID); err == nil {
		apply(existing)
		if serr := s.Approvals.Save(ctx, existing); serr != nil {
			return nil, serr
		}
		approval = existing
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	} else {
		a := &model.DailyRoomCheckInApprovalModel{
			DailyRoomCheckInApprovalCheckInID: checkinID,
			DailyRoomCheckInApprovalTeacherID: teacherID,
		}
		apply(a)
		if cerr := s.Approvals.Create(ctx, a); cerr != nil {
			if helpers.IsDuplicateKey(cerr) {
				existing, ferr := s.Approvals.FindByKey(ctx, checkinID, teacherID)
				if ferr != nil {
					return nil, ferr
				}
				apply(existing)
				if serr := s.Approvals.Save(ctx, existing); serr != nil {
					return nil, serr
				}
				a = existing
			} else {
				return nil, cerr
			}
		}
		approval = a
	}

	count, err := s.Approvals.CountApproved(ctx, checkinID)
	if err != nil {
		return nil, err
	}

	return &ConfirmResult{
		Approval:         approval,
		ApprovalsCount:   count,
		IsFullyConfirmed: count >= ci.DailyRoomCheckInRequiredConfirmations,
	}, nil
}

type PendingCheckIn struct {
	CheckIn        model.DailyRoomCheckInModel `json:"checkin"`
	ApprovalsCount int                         `json:"approvals_count"`
}

// ListPending: check-in hari tertentu (default hari ini) milik grup yang
// diampu si guru, yang kuorumnya belum penuh.
func (s *LedgerService) ListPending(ctx context.Context, teacherID uuid.UUID, groupID *uuid.UUID, date *time.Time) ([]PendingCheckIn, error) {
	groupIDs, err := s.Assignments.GroupIDsForTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if groupID != nil {
		found := false
		for _, id := range groupIDs {
			if id == *groupID {
				found = true
				break
			}
		}
		if !found {
			return nil, ErrNotAuthorized
		}
		groupIDs = []uuid.UUID{*groupID}
	}

	day := s.Now()
	if date != nil {
		day = *date
	}

	rows, err := s.CheckIns.ListByGroupsAndDate(ctx, groupIDs, day)
	if err != nil {
		return nil, err
	}

	out := make([]PendingCheckIn, 0, len(rows))
	for i := range rows {
		count, cerr := s.Approvals.CountApproved(ctx, rows[i].DailyRoomCheckInID)
		if cerr != nil {
			return nil, cerr
		}
		if count >= rows[i].DailyRoomCheckInRequiredConfirmations {
			continue
		}
		out = append(out, PendingCheckIn{CheckIn: rows[i], ApprovalsCount: count})
	}
	return out, nil
}

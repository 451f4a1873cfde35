package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/features/academics/model"
)

func newReenrollmentFixture(t *testing.T) (*ReenrollmentService, *mockPeriodStore, *mockGroupStore, *mockEnrollmentStore, *mockIntentStore) {
	t.Helper()
	periods := newMockPeriodStore()
	groups := newMockGroupStore()
	enrollments := newMockEnrollmentStore()
	intents := newMockIntentStore()

	svc := &ReenrollmentService{
		Directory: &DirectoryService{Periods: periods, Enrollments: enrollments},
		Groups:    groups,
		Intents:   intents,
		Now: func() time.Time {
			return time.Date(2026, time.September, 20, 10, 0, 0, 0, time.UTC)
		},
	}
	return svc, periods, groups, enrollments, intents
}

// siswa aktif di September dengan grup yang juga sudah dibuka di Oktober
func seedEnrolledStudent(t *testing.T, svc *ReenrollmentService, groups *mockGroupStore, enrollments *mockEnrollmentStore, withOctoberGroup bool) (studentID uuid.UUID, octGroup *model.MonthlyClassGroupModel) {
	t.Helper()
	ctx := context.Background()

	sep, err := svc.Directory.ResolvePeriod(ctx, svc.Now())
	if err != nil {
		t.Fatalf("resolve Sep: %v", err)
	}

	levelID, roomID := uuid.New(), uuid.New()
	sepGroup := groups.add(model.MonthlyClassGroupModel{
		MonthlyClassGroupPeriodID: sep.AcademicPeriodID,
		MonthlyClassGroupLevelID:  levelID,
		MonthlyClassGroupName:     "A1",
		MonthlyClassGroupRoomID:   roomID,
	})

	studentID = uuid.New()
	enrollments.add(model.StudentMonthlyEnrollmentModel{
		StudentMonthlyEnrollmentPeriodID:  sep.AcademicPeriodID,
		StudentMonthlyEnrollmentStudentID: studentID,
		StudentMonthlyEnrollmentGroupID:   sepGroup.MonthlyClassGroupID,
		StudentMonthlyEnrollmentStatus:    model.EnrollmentStatusActive,
	})

	if withOctoberGroup {
		oct, err := svc.Directory.ResolvePeriod(ctx, nextMonth(svc.Now()))
		if err != nil {
			t.Fatalf("resolve Oct: %v", err)
		}
		octGroup = groups.add(model.MonthlyClassGroupModel{
			MonthlyClassGroupPeriodID: oct.AcademicPeriodID,
			MonthlyClassGroupLevelID:  levelID,
			MonthlyClassGroupName:     "A1",
			MonthlyClassGroupRoomID:   roomID,
		})
	}
	return studentID, octGroup
}

func TestSubmitIntentRequiresCurrentEnrollment(t *testing.T) {
	svc, _, _, _, _ := newReenrollmentFixture(t)

	_, err := svc.SubmitIntent(context.Background(), uuid.New(), true, nil)
	if !errors.Is(err, ErrNoCurrentEnrollment) {
		t.Fatalf("err = %v, mau ErrNoCurrentEnrollment", err)
	}
}

func TestSubmitIntentWillReturnCreatesPendingEnrollment(t *testing.T) {
	svc, _, groups, enrollments, _ := newReenrollmentFixture(t)
	studentID, octGroup := seedEnrolledStudent(t, svc, groups, enrollments, true)

	res, err := svc.SubmitIntent(context.Background(), studentID, true, nil)
	if err != nil {
		t.Fatalf("SubmitIntent: %v", err)
	}
	if res.Intent.ReenrollmentIntentStatus != model.ReenrollmentStatusPending {
		t.Fatalf("status intent = %q, mau pending", res.Intent.ReenrollmentIntentStatus)
	}
	if res.PendingEnrollmentID == nil {
		t.Fatalf("pending enrollment harus dibuat karena grup Oktober ada")
	}

	enr, err := enrollments.FindByID(context.Background(), *res.PendingEnrollmentID)
	if err != nil {
		t.Fatalf("enrollment pending tidak ditemukan: %v", err)
	}
	if enr.StudentMonthlyEnrollmentStatus != model.EnrollmentStatusPending {
		t.Fatalf("status = %q, mau pending", enr.StudentMonthlyEnrollmentStatus)
	}
	if enr.StudentMonthlyEnrollmentGroupID != octGroup.MonthlyClassGroupID {
		t.Fatalf("enrollment harus masuk grup kembaran di Oktober")
	}
}

func TestSubmitIntentNoMatchingGroupStillRecordsIntent(t *testing.T) {
	svc, _, groups, enrollments, intents := newReenrollmentFixture(t)
	studentID, _ := seedEnrolledStudent(t, svc, groups, enrollments, false)

	res, err := svc.SubmitIntent(context.Background(), studentID, true, nil)
	if err != nil {
		t.Fatalf("SubmitIntent: %v", err)
	}
	if res.PendingEnrollmentID != nil {
		t.Fatalf("grup Oktober belum dibuka — tidak boleh ada pending enrollment")
	}
	if intents.count() != 1 {
		t.Fatalf("intent harus tetap tercatat")
	}
}

func TestSubmitIntentIsIdempotentUpsert(t *testing.T) {
	svc, _, groups, enrollments, intents := newReenrollmentFixture(t)
	studentID, _ := seedEnrolledStudent(t, svc, groups, enrollments, true)

	reason := "lanjut level berikutnya"
	first, err := svc.SubmitIntent(context.Background(), studentID, true, &reason)
	if err != nil {
		t.Fatalf("submit pertama: %v", err)
	}

	// berubah pikiran: tidak lanjut
	second, err := svc.SubmitIntent(context.Background(), studentID, false, nil)
	if err != nil {
		t.Fatalf("submit kedua: %v", err)
	}

	if intents.count() != 1 {
		t.Fatalf("intents = %d, mau 1 (upsert, bukan duplikat)", intents.count())
	}
	if second.Intent.ReenrollmentIntentID != first.Intent.ReenrollmentIntentID {
		t.Fatalf("submit ulang harus menimpa intent yang sama")
	}
	if second.Intent.ReenrollmentIntentWillReturn {
		t.Fatalf("jawaban terakhir (tidak lanjut) yang harus menang")
	}
}

func TestSubmitIntentWritesInOneTransaction(t *testing.T) {
	svc, _, groups, enrollments, intents := newReenrollmentFixture(t)
	studentID, octGroup := seedEnrolledStudent(t, svc, groups, enrollments, true)
	ctx := context.Background()

	// transaksi gagal total → enrollment pending DAN intent sama-sama batal
	svc.InTx = func(_ context.Context, _ func(*ReenrollmentService) error) error {
		return errors.New("koneksi putus")
	}
	if _, err := svc.SubmitIntent(ctx, studentID, true, nil); err == nil {
		t.Fatalf("transaksi gagal harus menggagalkan submit")
	}
	if intents.count() != 0 {
		t.Fatalf("intents = %d, mau 0 setelah rollback", intents.count())
	}
	oct, err := svc.Directory.ResolvePeriod(ctx, nextMonth(svc.Now()))
	if err != nil {
		t.Fatalf("resolve Oct: %v", err)
	}
	if _, err := enrollments.FindByKey(ctx, oct.AcademicPeriodID, studentID, octGroup.MonthlyClassGroupID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("enrollment pending tidak boleh nyangkut di luar transaksi, err = %v", err)
	}

	// transaksi jalan → kedua tulisan lewat sekali jalan
	calls := 0
	svc.InTx = func(ctx context.Context, fn func(*ReenrollmentService) error) error {
		calls++
		return fn(svc)
	}
	res, err := svc.SubmitIntent(ctx, studentID, true, nil)
	if err != nil {
		t.Fatalf("SubmitIntent: %v", err)
	}
	if calls != 1 {
		t.Fatalf("transaksi dipakai %d kali, mau 1", calls)
	}
	if res.PendingEnrollmentID == nil || intents.count() != 1 {
		t.Fatalf("submit sukses harus menghasilkan enrollment pending + intent")
	}
}

func TestDecideIntentApproveActivatesEnrollment(t *testing.T) {
	svc, _, groups, enrollments, _ := newReenrollmentFixture(t)
	studentID, _ := seedEnrolledStudent(t, svc, groups, enrollments, true)

	res, err := svc.SubmitIntent(context.Background(), studentID, true, nil)
	if err != nil {
		t.Fatalf("SubmitIntent: %v", err)
	}

	secretary := uuid.New()
	decided, err := svc.DecideIntent(context.Background(), res.Intent.ReenrollmentIntentID, secretary, true)
	if err != nil {
		t.Fatalf("DecideIntent: %v", err)
	}
	if decided.ReenrollmentIntentStatus != model.ReenrollmentStatusApproved {
		t.Fatalf("status = %q, mau approved", decided.ReenrollmentIntentStatus)
	}
	if decided.ReenrollmentIntentDecidedBy == nil || *decided.ReenrollmentIntentDecidedBy != secretary {
		t.Fatalf("decided_by harus terisi")
	}

	enr, _ := enrollments.FindByID(context.Background(), *res.PendingEnrollmentID)
	if enr.StudentMonthlyEnrollmentStatus != model.EnrollmentStatusActive {
		t.Fatalf("approve harus mengaktifkan enrollment, dapat %q", enr.StudentMonthlyEnrollmentStatus)
	}

	// keputusan kedua ditolak
	if _, err := svc.DecideIntent(context.Background(), res.Intent.ReenrollmentIntentID, secretary, false); !errors.Is(err, ErrIntentDecided) {
		t.Fatalf("putuskan ulang: err = %v, mau ErrIntentDecided", err)
	}
}

func TestDecideIntentRejectDeactivatesEnrollment(t *testing.T) {
	svc, _, groups, enrollments, _ := newReenrollmentFixture(t)
	studentID, _ := seedEnrolledStudent(t, svc, groups, enrollments, true)

	res, err := svc.SubmitIntent(context.Background(), studentID, true, nil)
	if err != nil {
		t.Fatalf("SubmitIntent: %v", err)
	}

	decided, err := svc.DecideIntent(context.Background(), res.Intent.ReenrollmentIntentID, uuid.New(), false)
	if err != nil {
		t.Fatalf("DecideIntent: %v", err)
	}
	if decided.ReenrollmentIntentStatus != model.ReenrollmentStatusRejected {
		t.Fatalf("status = %q, mau rejected", decided.ReenrollmentIntentStatus)
	}

	enr, _ := enrollments.FindByID(context.Background(), *res.PendingEnrollmentID)
	if enr.StudentMonthlyEnrollmentStatus != model.EnrollmentStatusInactive {
		t.Fatalf("reject harus menonaktifkan enrollment, dapat %q", enr.StudentMonthlyEnrollmentStatus)
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	certModel "kursusku_backend/internals/features/certificates/model"
	enrollModel "kursusku_backend/internals/features/enrollments/model"
	helper "kursusku_backend/internals/helpers"
)

func seedEnrollment(t *testing.T, db *gorm.DB) *enrollModel.EnrollmentModel {
	t.Helper()
	enr := enrollModel.EnrollmentModel{
		EnrollmentUserID:   uuid.New(),
		EnrollmentCourseID: uuid.New(),
	}
	require.NoError(t, db.Create(&enr).Error)
	return &enr
}

func countCertificates(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&certModel.CertificateModel{}).Count(&n).Error)
	return n
}

func TestFinalize_PartialProgressNoCertificate(t *testing.T) {
	db := newTestDB(t)
	fin := NewCompletionFinalizer(db)
	enr := seedEnrollment(t, db)

	snap := ProgressSnapshot{CompletedSlides: 1, TotalSlides: 3, Ratio: 1.0 / 3.0, Percent: 33}
	outcome, err := fin.Finalize(context.Background(), enr, snap)
	require.NoError(t, err)

	assert.Equal(t, 33, outcome.ProgressPercent)
	assert.False(t, outcome.Completed)
	assert.False(t, outcome.CertificateIssued)
	assert.EqualValues(t, 0, countCertificates(t, db))

	var stored enrollModel.EnrollmentModel
	require.NoError(t, db.First(&stored, "enrollment_id = ?", enr.EnrollmentID).Error)
	assert.Equal(t, 33, stored.EnrollmentProgressPercent)
	assert.False(t, stored.EnrollmentCompleted)
	assert.Nil(t, stored.EnrollmentCompletedAt)
}

func TestFinalize_CompletionIssuesCertificateOnce(t *testing.T) {
	db := newTestDB(t)
	fin := NewCompletionFinalizer(db)
	fin.Now = func() time.Time { return fixedNow }
	enr := seedEnrollment(t, db)

	snap := ProgressSnapshot{CompletedSlides: 3, TotalSlides: 3, Ratio: 1, Percent: 100, AllModulesCompleted: true}
	outcome, err := fin.Finalize(context.Background(), enr, snap)
	require.NoError(t, err)

	assert.True(t, outcome.Completed)
	assert.True(t, outcome.CertificateIssued)
	assert.False(t, outcome.AlreadyCertified)
	require.NotNil(t, outcome.Certificate)
	assert.NotEmpty(t, outcome.Certificate.CertificateNumber)
	assert.True(t, outcome.Certificate.CertificateVerified)

	var stored enrollModel.EnrollmentModel
	require.NoError(t, db.First(&stored, "enrollment_id = ?", enr.EnrollmentID).Error)
	assert.Equal(t, 100, stored.EnrollmentProgressPercent)
	assert.True(t, stored.EnrollmentCompleted)
	require.NotNil(t, stored.EnrollmentCompletedAt)

	assert.EqualValues(t, 1, countCertificates(t, db))
}

func TestFinalize_RepeatedCallsStayIdempotent(t *testing.T) {
	db := newTestDB(t)
	fin := NewCompletionFinalizer(db)
	enr := seedEnrollment(t, db)

	snap := ProgressSnapshot{CompletedSlides: 2, TotalSlides: 2, Ratio: 1, Percent: 100, AllModulesCompleted: true}

	first, err := fin.Finalize(context.Background(), enr, snap)
	require.NoError(t, err)
	require.True(t, first.CertificateIssued)

	// trigger ulang berkali-kali (re-complete slide terakhir, refresh, dst.)
	for i := 0; i < 3; i++ {
		again, err := fin.Finalize(context.Background(), enr, snap)
		require.NoError(t, err, "trigger ulang tidak boleh jadi error user-facing")
		assert.False(t, again.CertificateIssued)
		assert.True(t, again.AlreadyCertified)
		require.NotNil(t, again.Certificate)
		assert.Equal(t, first.Certificate.CertificateNumber, again.Certificate.CertificateNumber)
	}
	assert.EqualValues(t, 1, countCertificates(t, db))
}

func TestFinalize_RaceWinnerTolerated(t *testing.T) {
	db := newTestDB(t)
	fin := NewCompletionFinalizer(db)
	enr := seedEnrollment(t, db)

	// simulasi jalur completion lain yang menang duluan
	winner := certModel.CertificateModel{
		CertificateUserID:       enr.EnrollmentUserID,
		CertificateCourseID:     enr.EnrollmentCourseID,
		CertificateEnrollmentID: enr.EnrollmentID,
		CertificateNumber:       "KSK-RACE-WINNER",
		CertificateVerified:     true,
		CertificateIssuedAt:     time.Now(),
	}
	require.NoError(t, db.Create(&winner).Error)

	snap := ProgressSnapshot{CompletedSlides: 1, TotalSlides: 1, Ratio: 1, Percent: 100, AllModulesCompleted: true}
	outcome, err := fin.Finalize(context.Background(), enr, snap)
	require.NoError(t, err)
	assert.False(t, outcome.CertificateIssued)
	assert.True(t, outcome.AlreadyCertified)
	assert.Equal(t, "KSK-RACE-WINNER", outcome.Certificate.CertificateNumber)
	assert.EqualValues(t, 1, countCertificates(t, db))
}

func TestFinalize_EmptyCourseNeverCertifies(t *testing.T) {
	db := newTestDB(t)
	fin := NewCompletionFinalizer(db)
	enr := seedEnrollment(t, db)

	// course tanpa slide: all-modules vacuously complete, tapi tanpa
	// slide tidak ada yang diselesaikan — sertifikat tidak terbit
	snap := ProgressSnapshot{TotalSlides: 0, AllModulesCompleted: true}
	outcome, err := fin.Finalize(context.Background(), enr, snap)
	require.NoError(t, err)
	assert.False(t, outcome.CertificateIssued)
	assert.Nil(t, outcome.Certificate)
	assert.EqualValues(t, 0, countCertificates(t, db))
}

func TestFinalize_IssuanceFailureKeepsEnrollmentUpdate(t *testing.T) {
	db := newTestDB(t)
	fin := NewCompletionFinalizer(db)
	enr := seedEnrollment(t, db)

	// paksa jalur sertifikat gagal total
	require.NoError(t, db.Exec(`DROP TABLE certificates`).Error)

	snap := ProgressSnapshot{CompletedSlides: 1, TotalSlides: 1, Ratio: 1, Percent: 100, AllModulesCompleted: true}
	outcome, err := fin.Finalize(context.Background(), enr, snap)
	require.Error(t, err, "kegagalan issuance dilaporkan")
	require.NotNil(t, outcome)
	assert.Equal(t, 100, outcome.ProgressPercent)

	// update enrollment TIDAK ikut di-rollback
	var stored enrollModel.EnrollmentModel
	require.NoError(t, db.First(&stored, "enrollment_id = ?", enr.EnrollmentID).Error)
	assert.Equal(t, 100, stored.EnrollmentProgressPercent)
	assert.True(t, stored.EnrollmentCompleted)
}

func TestDuplicateKeyDetection_UniqueViolation(t *testing.T) {
	db := newTestDB(t)
	enr := seedEnrollment(t, db)

	mk := func(number string) error {
		cert := certModel.CertificateModel{
			CertificateUserID:       enr.EnrollmentUserID,
			CertificateCourseID:     enr.EnrollmentCourseID,
			CertificateEnrollmentID: enr.EnrollmentID,
			CertificateNumber:       number,
			CertificateIssuedAt:     time.Now(),
		}
		return db.Create(&cert).Error
	}

	require.NoError(t, mk("KSK-DUP-1"))
	err := mk("KSK-DUP-2") // (user, course) sama → unique violation
	require.Error(t, err)
	assert.True(t, helper.IsDuplicateKey(err), "violation unique index terdeteksi sebagai duplicate key")
	assert.False(t, helper.IsDuplicateKey(nil))
}

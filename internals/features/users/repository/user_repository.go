package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "abcschool_backend/internals/features/users/model"
)

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("user_email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login bisa pakai email atau student_code dari kartu siswa.
func FindUserByIdentifier(db *gorm.DB, identifier string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	err := db.
		Where("user_email = ?", identifier).
		Or("user_id IN (SELECT student_profile_user_id FROM student_profiles WHERE student_profile_student_code = ? AND student_profile_deleted_at IS NULL)", identifier).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, newHash string) error {
	return db.Model(&userModel.UserModel{}).
		Where("user_id = ?", userID).
		Update("user_password", newHash).Error
}

func FindStudentProfileByUserID(db *gorm.DB, userID uuid.UUID) (*userModel.StudentProfileModel, error) {
	var sp userModel.StudentProfileModel
	if err := db.Where("student_profile_user_id = ?", userID).First(&sp).Error; err != nil {
		return nil, err
	}
	return &sp, nil
}

func FindStudentProfileByCode(db *gorm.DB, studentCode string) (*userModel.StudentProfileModel, error) {
	var sp userModel.StudentProfileModel
	if err := db.Where("student_profile_student_code = ?", studentCode).First(&sp).Error; err != nil {
		return nil, err
	}
	return &sp, nil
}

func FindTeacherProfileByUserID(db *gorm.DB, userID uuid.UUID) (*userModel.TeacherProfileModel, error) {
	var tp userModel.TeacherProfileModel
	if err := db.Where("teacher_profile_user_id = ?", userID).First(&tp).Error; err != nil {
		return nil, err
	}
	return &tp, nil
}

func CreateRefreshToken(db *gorm.DB, rt *userModel.RefreshTokenModel) error {
	return db.Create(rt).Error
}

func FindActiveRefreshTokenByHash(db *gorm.DB, hash []byte) (*userModel.RefreshTokenModel, error) {
	var rt userModel.RefreshTokenModel
	err := db.
		Where("refresh_token_hash = ?", hash).
		Where("refresh_token_revoked_at IS NULL").
		Where("refresh_token_expires_at > now()").
		First(&rt).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func RevokeRefreshTokenByID(db *gorm.DB, id uuid.UUID) error {
	now := time.Now().UTC()
	return db.Model(&userModel.RefreshTokenModel{}).
		Where("refresh_token_id = ? AND refresh_token_revoked_at IS NULL", id).
		Update("refresh_token_revoked_at", now).Error
}

func BlacklistToken(db *gorm.DB, token string, ttl time.Duration) error {
	entry := userModel.TokenBlacklistModel{
		TokenBlacklistToken:     token,
		TokenBlacklistExpiresAt: time.Now().UTC().Add(ttl),
	}
	return db.Create(&entry).Error
}

func CleanupExpiredBlacklist(db *gorm.DB) (int64, error) {
	res := db.Unscoped().
		Where("token_blacklist_expires_at < now()").
		Delete(&userModel.TokenBlacklistModel{})
	return res.RowsAffected, res.Error
}

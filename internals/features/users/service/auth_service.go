package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"abcschool_backend/internals/configs"
	"abcschool_backend/internals/constants"
	userHelper "abcschool_backend/internals/features/users/helper"
	userModel "abcschool_backend/internals/features/users/model"
	userRepo "abcschool_backend/internals/features/users/repository"
	helpers "abcschool_backend/internals/helpers"
)

/* ==========================
   Const & kecil-kecil
========================== */

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("JWT_REFRESH_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET belum diset")
	}
	return secret, nil
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func computeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

/* ==========================
   REGISTER
========================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		UserName    string `json:"user_name"`
		UserEmail   string `json:"user_email"`
		Password    string `json:"password"`
		Role        string `json:"role"`
		StudentCode string `json:"student_code"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := userHelper.ValidateRegisterInput(input.UserName, input.UserEmail, input.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role == "" {
		role = constants.RoleStudent
	}
	if !constants.IsValidRole(role) {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Role tidak dikenal: "+role)
	}
	// Pendaftaran self-service hanya untuk siswa; role staf dibuat admin.
	if role != constants.RoleStudent {
		callerRole, _ := c.Locals("userRole").(string)
		if callerRole != constants.RoleAdmin {
			return helpers.JsonError(c, fiber.StatusForbidden, "Hanya admin yang boleh membuat akun staf")
		}
	}

	passwordHash, err := userHelper.HashPassword(input.Password)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := userModel.UserModel{
		UserName:     strings.TrimSpace(input.UserName),
		UserEmail:    strings.ToLower(strings.TrimSpace(input.UserEmail)),
		UserPassword: passwordHash,
		UserRole:     role,
		UserIsActive: true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := userRepo.CreateUser(tx, &user); err != nil {
			return err
		}
		switch role {
		case constants.RoleStudent:
			code := strings.TrimSpace(input.StudentCode)
			if code == "" {
				code = generateStudentCode()
			}
			sp := userModel.StudentProfileModel{
				StudentProfileUserID:      user.UserID,
				StudentProfileStudentCode: code,
			}
			return tx.Create(&sp).Error
		case constants.RoleTeacher:
			tp := userModel.TeacherProfileModel{
				TeacherProfileUserID:   user.UserID,
				TeacherProfileIsActive: true,
			}
			return tx.Create(&tp).Error
		}
		return nil
	})
	if err != nil {
		if helpers.IsDuplicateKey(err) {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Email atau kode siswa sudah terdaftar")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat user")
	}

	return helpers.JsonCreated(c, "Registrasi berhasil", fiber.Map{
		"user_id":   user.UserID,
		"user_role": user.UserRole,
	})
}

// Kode kartu siswa: S + 9 digit dari UUID random (cukup unik, DB tetap menjaga uniqueness).
func generateStudentCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	digits := make([]byte, 0, 9)
	for i := 0; i < len(raw) && len(digits) < 9; i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	for len(digits) < 9 {
		digits = append(digits, '0')
	}
	return "S" + string(digits)
}

/* ==========================
   LOGIN
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.Identifier = strings.TrimSpace(input.Identifier)

	if err := userHelper.ValidateLoginInput(input.Identifier, input.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := userRepo.FindUserByIdentifier(db, input.Identifier)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Identifier atau Password salah")
	}
	if !user.UserIsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	}
	if err := userHelper.CheckPasswordHash(user.UserPassword, input.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Identifier atau Password salah")
	}

	return issueTokens(c, db, *user)
}

/* ==========================
   ISSUE TOKENS + Response
========================== */

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ": "refresh",
		"sub": userID.String(),
		"id":  userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTLDefault).Unix(),
	}
}

func buildAccessClaims(user userModel.UserModel, studentID, teacherID *uuid.UUID, now time.Time) jwt.MapClaims {
	claims := jwt.MapClaims{
		"typ":       "access",
		"sub":       user.UserID.String(),
		"id":        user.UserID.String(),
		"user_name": user.UserName,
		"role":      user.UserRole,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
	if studentID != nil {
		claims["student_id"] = studentID.String()
	}
	if teacherID != nil {
		claims["teacher_id"] = teacherID.String()
	}
	return claims
}

func issueTokens(c *fiber.Ctx, db *gorm.DB, user userModel.UserModel) error {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	now := nowUTC()

	// Profil untuk klaim student_id / teacher_id
	var studentID, teacherID *uuid.UUID
	respUser := fiber.Map{
		"user_id":   user.UserID,
		"user_name": user.UserName,
		"email":     user.UserEmail,
		"role":      user.UserRole,
	}
	if user.UserRole == constants.RoleStudent {
		if sp, err := userRepo.FindStudentProfileByUserID(db, user.UserID); err == nil {
			studentID = &sp.StudentProfileID
			respUser["student_code"] = sp.StudentProfileStudentCode
			respUser["current_level"] = sp.StudentProfileCurrentLevel
			respUser["group_name"] = sp.StudentProfileGroupName
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil profil siswa")
		}
	}
	if user.UserRole == constants.RoleTeacher {
		if tp, err := userRepo.FindTeacherProfileByUserID(db, user.UserID); err == nil {
			teacherID = &tp.TeacherProfileID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil profil guru")
		}
	}

	accessClaims := buildAccessClaims(user, studentID, teacherID, now)
	refreshClaims := buildRefreshClaims(user.UserID, now)

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(jwtSecret))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat access token")
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(refreshSecret))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat refresh token")
	}

	ua, ip := c.Get("User-Agent"), c.IP()
	if err := userRepo.CreateRefreshToken(db, &userModel.RefreshTokenModel{
		RefreshTokenUserID:    user.UserID,
		RefreshTokenHash:      computeRefreshHash(refreshToken, refreshSecret),
		RefreshTokenExpiresAt: now.Add(refreshTTLDefault),
		RefreshTokenUserAgent: strptr(ua),
		RefreshTokenIP:        strptr(ip),
	}); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan refresh token")
	}

	setAuthCookies(c, accessToken, refreshToken, now)

	return helpers.JsonOK(c, "Login berhasil", fiber.Map{
		"user":         respUser,
		"access_token": accessToken,
	})
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(accessTTLDefault),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(refreshTTLDefault),
	})
}

/* ==========================
   REFRESH TOKEN
========================== */

func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	raw := helpers.GetRefreshTokenFromCookie(c)
	if raw == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.BodyParser(&body); err == nil {
			raw = strings.TrimSpace(body.RefreshToken)
		}
	}
	if raw == "" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ditemukan")
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(refreshSecret), nil
	}); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak valid")
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak valid")
	}

	stored, err := userRepo.FindActiveRefreshTokenByHash(db, computeRefreshHash(raw, refreshSecret))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token sudah tidak berlaku")
	}

	user, err := userRepo.FindUserByID(db, stored.RefreshTokenUserID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	if !user.UserIsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	// Rotasi: revoke yang lama, terbitkan pasangan baru.
	if err := userRepo.RevokeRefreshTokenByID(db, stored.RefreshTokenID); err != nil {
		log.Printf("[WARN] revoke refresh token: %v", err)
	}

	return issueTokens(c, db, *user)
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	accessToken := helpers.GetRawAccessToken(c)
	if accessToken != "" {
		if err := userRepo.BlacklistToken(db, accessToken, resolveBlacklistTTL(accessToken)); err != nil && !helpers.IsDuplicateKey(err) {
			log.Printf("[WARN] blacklist access token: %v", err)
		}
	}

	refreshSecret, err := getRefreshSecret()
	if err == nil {
		if raw := helpers.GetRefreshTokenFromCookie(c); raw != "" {
			if stored, ferr := userRepo.FindActiveRefreshTokenByHash(db, computeRefreshHash(raw, refreshSecret)); ferr == nil {
				_ = userRepo.RevokeRefreshTokenByID(db, stored.RefreshTokenID)
			}
		}
	}

	// hapus cookies
	expired := time.Now().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   true,
			SameSite: "None",
			Path:     "/",
			Expires:  expired,
		})
	}

	return helpers.JsonOK(c, "Logout berhasil", nil)
}

// TTL blacklist mengikuti sisa umur access token, minimal 5 menit.
func resolveBlacklistTTL(accessToken string) time.Duration {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return accessTTLDefault
	}
	expFloat, ok := claims["exp"].(float64)
	if !ok {
		return accessTTLDefault
	}
	remaining := time.Until(time.Unix(int64(expFloat), 0))
	if remaining < 5*time.Minute {
		return 5 * time.Minute
	}
	return remaining
}

/* ==========================
   CHANGE PASSWORD
========================== */

func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var input struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(input.NewPassword) < 8 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Password baru minimal 8 karakter")
	}

	user, err := userRepo.FindUserByID(db, userID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	if err := userHelper.CheckPasswordHash(user.UserPassword, input.OldPassword); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Password lama salah")
	}

	newHash, err := userHelper.HashPassword(input.NewPassword)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}
	if err := userRepo.UpdateUserPassword(db, userID, newHash); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengganti password")
	}

	return helpers.JsonUpdated(c, "Password berhasil diganti", nil)
}

package services

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "studyhub/internal/errors"
	"studyhub/internal/logger"
	"studyhub/internal/models"
)

const (
	resetTokenLength   = 32
	resetTokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// passwordResetService implements the reset-token ledger: single-use,
// time-limited tokens that let a user change their password without the
// original credential. Multiple outstanding tokens per user are allowed and
// a new request does not invalidate earlier ones.
type passwordResetService struct {
	db     *gorm.DB
	mailer Mailer
	ttl    time.Duration
}

// NewPasswordResetService creates a new PasswordResetServicer.
func NewPasswordResetService(db *gorm.DB, mailer Mailer, ttl time.Duration) PasswordResetServicer {
	return &passwordResetService{db: db, mailer: mailer, ttl: ttl}
}

// RequestReset creates a reset token for the account behind the given email
// and dispatches the reset link. It returns nil whether or not the email
// belongs to an account: the token is generated on both paths to keep their
// cost comparable, and the email is sent fire-and-forget so transport
// latency or failure cannot reveal account existence either.
func (s *passwordResetService) RequestReset(email string) error {
	token, err := generateResetToken(resetTokenLength)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	record := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.db.Create(record).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	go func() {
		if err := s.mailer.SendPasswordResetEmail(user.Email, user.Name, token); err != nil {
			logger.Get().Errorw("failed to send password reset email",
				"error", err.Error(),
				"user_id", user.ID,
			)
		}
	}()

	return nil
}

// ResetPassword redeems a token and replaces the owner's password hash in a
// single transaction. The guarded UPDATE on used/expires_at serializes
// concurrent redemptions of the same token at the row level: the loser sees
// zero affected rows. Unknown, already-used, and expired tokens are all
// reported as the same invalid outcome.
func (s *passwordResetService) ResetPassword(tokenString, newPassword string) error {
	if tokenString == "" || newPassword == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "token and new password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PasswordResetToken{}).
			Where("token = ? AND used = ? AND expires_at > ?", tokenString, false, time.Now()).
			Update("used", true)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrInvalidResetToken
		}

		var record models.PasswordResetToken
		if err := tx.Where("token = ?", tokenString).First(&record).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", record.UserID).
			Update("password", string(hash)).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// generateResetToken returns a random string of the given length drawn from
// the mixed-case-plus-digit alphabet using crypto/rand.
func generateResetToken(length int) (string, error) {
	max := big.NewInt(int64(len(resetTokenAlphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = resetTokenAlphabet[n.Int64()]
	}
	return string(b), nil
}

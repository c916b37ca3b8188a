package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/mailer"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 15 * time.Minute

// refreshtokenの有効期限
const refreshTokenTTL = 14 * 24 * time.Hour

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateSignup(email string, password string, confirm string) error
	ValidateLogin(email string, password string) error
	ValidateNewPassword(password string, confirm string) error
}

type UserDTO struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	IsAdmin bool   `json:"is_admin"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type SignupRequest struct {
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  UserDTO      `json:"user"`
	Token TokenPairDTO `json:"token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"otp"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email"`
	Code            string `json:"otp"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type AuthUsecase struct {
	users     repo.UserRepository
	otps      repo.PasswordResetOTPRepository
	mailer    mailer.Mailer
	validator AuthValidator
	jwtSecret string
}

func NewAuthUsecase(
	users repo.UserRepository,
	otps repo.PasswordResetOTPRepository,
	m mailer.Mailer,
	validator AuthValidator,
	jwtSecret string,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		otps:      otps,
		mailer:    m,
		validator: validator,
		jwtSecret: jwtSecret,
	}
}

func (u *AuthUsecase) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateSignup(req.Email, req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(pwHash),
	}

	if err := u.users.Create(ctx, user); err != nil {
		if err == repo.ErrDuplicate {
			return nil, NewHTTPError(http.StatusConflict, "email already registered")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	pair, err := u.issueTokenPair(user)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &AuthResponse{User: toUserDTO(user), Token: pair}, nil
}

// Login はメール・パスワード不一致を区別せず同じ401で返す
func (u *AuthUsecase) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := u.validator.ValidateLogin(req.Email, req.Password); err != nil {
		return nil, err
	}

	user, err := u.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || user == nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	pair, err := u.issueTokenPair(user)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &AuthResponse{User: toUserDTO(user), Token: pair}, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (*UserDTO, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// ForgotPassword はOTPを発行してメールで送る。
// 未登録メールは404（存在秘匿はしない。フロントがエラーを出し分ける）
func (u *AuthUsecase) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return NewHTTPError(http.StatusBadRequest, "email is required")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "email not registered")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	code, err := newOTPCode()
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if _, err := u.otps.Create(ctx, model.PasswordResetOTP{
		UserID: user.ID,
		Code:   code,
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.mailer.SendPasswordResetOTP(ctx, user.Email, code); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "failed to send otp email")
	}
	return nil
}

// VerifyOTP はコードを検証し、成功したら使用済みにする。
// 同じコードで再度verifyもresetもできない
func (u *AuthUsecase) VerifyOTP(ctx context.Context, req VerifyOTPRequest) error {
	_, otp, err := u.lookupOTP(ctx, req.Email, req.Code)
	if err != nil {
		return err
	}

	if err := u.otps.MarkUsed(ctx, otp.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// ResetPassword はOTPを再検証してから使用済みにし、新パスワードを保存する。
func (u *AuthUsecase) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if err := u.validator.ValidateNewPassword(req.Password, req.ConfirmPassword); err != nil {
		return err
	}

	user, otp, err := u.lookupOTP(ctx, req.Email, req.Code)
	if err != nil {
		return err
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if err := u.users.UpdatePasswordHash(ctx, user.ID, string(pwHash)); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.otps.MarkUsed(ctx, otp.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// ChangePassword はログイン済みユーザーの自己変更。旧パスワード必須
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.validator.ValidateNewPassword(req.NewPassword, req.ConfirmPassword); err != nil {
		return err
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return NewHTTPError(http.StatusBadRequest, "old password is incorrect")
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if err := u.users.UpdatePasswordHash(ctx, user.ID, string(pwHash)); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AuthUsecase) lookupOTP(ctx context.Context, email string, code string) (*model.User, model.PasswordResetOTP, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return nil, model.PasswordResetOTP{}, NewHTTPError(http.StatusBadRequest, "email and otp are required")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		return nil, model.PasswordResetOTP{}, NewHTTPError(http.StatusNotFound, "email not registered")
	}
	if err != nil {
		return nil, model.PasswordResetOTP{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	otp, err := u.otps.FindLatestUnused(ctx, user.ID, code)
	if err == repo.ErrNotFound {
		return nil, model.PasswordResetOTP{}, NewHTTPError(http.StatusBadRequest, "invalid or expired otp")
	}
	if err != nil {
		return nil, model.PasswordResetOTP{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return user, otp, nil
}

func (u *AuthUsecase) issueTokenPair(user *model.User) (TokenPairDTO, error) {
	access, err := u.signToken(user, "access", accessTokenTTL)
	if err != nil {
		return TokenPairDTO{}, err
	}
	refresh, err := u.signToken(user, "refresh", refreshTokenTTL)
	if err != nil {
		return TokenPairDTO{}, err
	}
	return TokenPairDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(accessTokenTTL.Seconds()),
	}, nil
}

func (u *AuthUsecase) signToken(user *model.User, typ string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":      user.ID,
		"is_admin": user.IsAdmin,
		"typ":      typ,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(u.jwtSecret))
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:      u.ID,
		Email:   u.Email,
		Phone:   u.Phone,
		IsAdmin: u.IsAdmin,
	}
}

// 6桁のワンタイムコード（100000〜999999）
func newOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

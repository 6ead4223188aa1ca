package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resourceshub/metrics"
	"resourceshub/model"
	"resourceshub/services"
	"resourceshub/utils"

	"github.com/rs/zerolog"
)

const passwordChangeInterval = 14 * 24 * time.Hour

var (
	ErrEmailTaken    = errors.New("Email is already registered")
	ErrUsernameTaken = errors.New("Username is already taken")
)

// PasswordChangeTooSoonError is returned when the password was changed less
// than two weeks ago.
type PasswordChangeTooSoonError struct {
	NextAllowed time.Time
}

func (e *PasswordChangeTooSoonError) Error() string {
	return "Password can only be changed every 2 weeks"
}

// SessionLister caches active session lists. services.SessionCache
// implements it against Redis.
type SessionLister interface {
	CacheUserSessions(ctx context.Context, userID string, sessions []*model.Session) error
	GetUserSessions(ctx context.Context, userID string) ([]*model.Session, bool, error)
	Invalidate(ctx context.Context, userID string) error
}

type AuthOptions struct {
	SessionTTL  time.Duration
	MaxSessions int
	AdminEmails []string
}

type AuthService struct {
	users     UserRepository
	sessions  SessionRepository
	tokens    *services.TokenService
	blacklist services.TokenBlacklist
	twoFactor services.TwoFactor
	cache     SessionLister
	opts      AuthOptions
	admins    map[string]struct{}
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(
	users UserRepository,
	sessions SessionRepository,
	tokens *services.TokenService,
	blacklist services.TokenBlacklist,
	twoFactor services.TwoFactor,
	cache SessionLister,
	opts AuthOptions,
	log zerolog.Logger,
) *AuthService {
	if blacklist == nil {
		blacklist = services.NoopBlacklist{}
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 5
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 7 * 24 * time.Hour
	}
	admins := make(map[string]struct{}, len(opts.AdminEmails))
	for _, email := range opts.AdminEmails {
		admins[utils.NormalizeEmail(email)] = struct{}{}
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		tokens:    tokens,
		blacklist: blacklist,
		twoFactor: twoFactor,
		cache:     cache,
		opts:      opts,
		admins:    admins,
		log:       log.With().Str("service", "auth").Logger(),
		now:       time.Now,
	}
}

// ClientInfo describes the device a login comes from.
type ClientInfo struct {
	UserAgent string
	IP        string
}

type AuthResult struct {
	User    *model.User
	Tokens  services.TokenPair
	Session *model.Session
}

type LoginResult struct {
	AuthResult
	Requires2FA bool
	Notice      string
}

func (s *AuthService) Register(ctx context.Context, username, email, password string, client ClientInfo) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = utils.NormalizeEmail(email)

	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(translate(err), ErrNotFound) {
		return nil, translate(err)
	}
	if _, err := s.users.FindUserByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(translate(err), ErrNotFound) {
		return nil, translate(err)
	}

	hashed, err := services.HashPassword(password)
	if err != nil {
		if errors.Is(err, services.ErrWeakPassword) {
			return nil, invalid("Password must be at least 6 characters long and contain at least one number and one special character")
		}
		return nil, translate(err)
	}

	role := model.RoleUser
	if _, ok := s.admins[email]; ok {
		role = model.RoleAdmin
	}
	user := &model.User{
		UserID:      utils.GenerateUserID(),
		Username:    username,
		Email:       email,
		Password:    hashed,
		Role:        role,
		CreatedAt:   s.now().UTC(),
		Preferences: model.DefaultPreferences(),
		Bookmarks:   []string{},
	}
	if err := s.users.AddUser(ctx, user); err != nil {
		if errors.Is(translate(err), ErrConflict) {
			return nil, ErrConflict
		}
		return nil, translate(err)
	}
	s.log.Info().Str("user_id", user.UserID).Str("role", role).Msg("user registered")

	return s.startSession(ctx, user, client)
}

// Login authenticates by email or username. When the account has 2FA enabled
// and no code was supplied the result only carries Requires2FA.
func (s *AuthService) Login(ctx context.Context, identifier, password, code string, client ClientInfo) (*LoginResult, error) {
	user, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		metrics.TrackAuthAttempt("failure", "user_not_found")
		return nil, translate(err)
	}
	if !services.ComparePasswords(user.Password, password) {
		metrics.TrackAuthAttempt("failure", "invalid_password")
		return nil, ErrInvalidCredentials
	}
	s.upgradeHash(ctx, user, password)

	if user.TwoFactorEnabled {
		if strings.TrimSpace(code) == "" {
			metrics.TrackAuthAttempt("pending", "2fa_required")
			return &LoginResult{AuthResult: AuthResult{User: user}, Requires2FA: true}, nil
		}
		if err := s.checkSecondFactor(ctx, user, code); err != nil {
			metrics.TrackAuthAttempt("failure", "invalid_2fa")
			return nil, translate(err)
		}
	}

	var notice string
	active, err := s.sessions.CountActiveSessions(ctx, user.UserID)
	if err != nil {
		return nil, translate(fmt.Errorf("counting sessions: %w", err))
	}
	if active >= s.opts.MaxSessions {
		if err := s.sessions.EndLeastActiveSession(ctx, user.UserID); err != nil && !errors.Is(translate(err), ErrNotFound) {
			return nil, translate(fmt.Errorf("ending least active session: %w", err))
		}
		notice = "Logged out of least active session due to session limit"
		s.log.Info().Str("user_id", user.UserID).Msg("ended least active session due to session limit")
	}

	res, err := s.startSession(ctx, user, client)
	if err != nil {
		return nil, translate(err)
	}
	metrics.TrackAuthAttempt("success", "login")
	return &LoginResult{AuthResult: *res, Notice: notice}, nil
}

func (s *AuthService) findByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrInvalidCredentials
	}
	var (
		user *model.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.users.FindUserByEmail(ctx, utils.NormalizeEmail(identifier))
	} else {
		user, err = s.users.FindUserByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, translate(err)
	}
	return user, nil
}

// checkSecondFactor accepts a TOTP code or, failing that, an unused recovery
// code which is then consumed.
func (s *AuthService) checkSecondFactor(ctx context.Context, user *model.User, code string) error {
	if s.twoFactor.Validate(code, user.TwoFactorSecret) {
		return nil
	}
	remaining, ok := consumeRecoveryCode(user.RecoveryCodes, code)
	if !ok {
		return ErrInvalid2FACode
	}
	if err := s.users.UpdateRecoveryCodes(ctx, user.UserID, remaining); err != nil {
		return translate(fmt.Errorf("updating recovery codes: %w", err))
	}
	s.log.Warn().Str("user_id", user.UserID).Int("remaining", len(remaining)).Msg("recovery code used")
	return nil
}

func consumeRecoveryCode(stored []string, code string) ([]string, bool) {
	hashed := utils.HashString(utils.NormalizeRecoveryCode(code))
	remaining := make([]string, 0, len(stored))
	found := false
	for _, c := range stored {
		if !found && c == hashed {
			found = true
			continue
		}
		remaining = append(remaining, c)
	}
	return remaining, found
}

func (s *AuthService) startSession(ctx context.Context, user *model.User, client ClientInfo) (*AuthResult, error) {
	tokens, err := s.tokens.GeneratePair(user.UserID)
	if err != nil {
		return nil, translate(err)
	}

	now := s.now().UTC()
	session := &model.Session{
		SessionID:      utils.GenerateUserID(),
		UserID:         user.UserID,
		DisplayName:    utils.GenerateSessionName(client.UserAgent, utils.DescribeLocation(client.IP)),
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.opts.SessionTTL),
		LastActivityAt: now,
		DeviceInfo:     utils.DeviceInfo(client.UserAgent),
		IPAddress:      client.IP,
		IsActive:       true,
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, translate(fmt.Errorf("creating session: %w", err))
	}
	s.invalidateSessions(ctx, user.UserID)

	return &AuthResult{User: user, Tokens: tokens, Session: session}, nil
}

// Refresh exchanges a refresh token for a new pair. The old refresh token is
// revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if revoked, err := s.blacklist.IsBlacklisted(ctx, refreshToken); err != nil {
		return nil, translate(err)
	} else if revoked {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, translate(err)
	}

	tokens, err := s.tokens.GeneratePair(user.UserID)
	if err != nil {
		return nil, translate(err)
	}
	if claims.ExpiresAt != nil {
		if err := s.blacklist.Blacklist(ctx, refreshToken, claims.ExpiresAt.Time); err != nil {
			s.log.Warn().Err(err).Msg("failed to revoke rotated refresh token")
		}
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Authenticate resolves an access token to the identity attached to requests.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (model.AuthUser, error) {
	claims, err := s.tokens.ParseAccess(accessToken)
	if err != nil {
		return model.AuthUser{}, ErrInvalidToken
	}
	revoked, err := s.blacklist.IsBlacklisted(ctx, accessToken)
	if err != nil {
		s.log.Error().Err(err).Msg("blacklist lookup failed")
		return model.AuthUser{}, ErrInvalidToken
	}
	if revoked {
		return model.AuthUser{}, ErrInvalidToken
	}

	user, err := s.users.FindUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return model.AuthUser{}, ErrUserNotFound
		}
		return model.AuthUser{}, translate(err)
	}
	return model.AuthUser{ID: user.UserID, Username: user.Username, Email: user.Email, Role: user.Role}, nil
}

// Logout revokes the tokens and ends the session, when one is given.
func (s *AuthService) Logout(ctx context.Context, userID, accessToken, refreshToken, sessionID string) error {
	for _, token := range []string{accessToken, refreshToken} {
		if token == "" {
			continue
		}
		exp, err := s.tokens.ExpiresAt(token)
		if err != nil {
			continue
		}
		if err := s.blacklist.Blacklist(ctx, token, exp); err != nil {
			return fmt.Errorf("blacklisting token: %w", err)
		}
	}

	if sessionID != "" {
		session, err := s.sessions.GetSession(ctx, sessionID)
		switch {
		case err == nil && session.UserID == userID:
			if err := s.sessions.EndSession(ctx, sessionID); err != nil {
				return translate(fmt.Errorf("ending session: %w", err))
			}
		case err != nil && !errors.Is(translate(err), ErrNotFound):
			return translate(err)
		}
	}
	s.invalidateSessions(ctx, userID)
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.users.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return ErrUserNotFound
		}
		return translate(err)
	}
	if !services.ComparePasswords(user.Password, oldPassword) {
		return ErrInvalidCredentials
	}
	if !utils.ValidatePassword(newPassword) {
		return invalid("New password does not meet requirements")
	}
	if services.ComparePasswords(user.Password, newPassword) {
		return invalid("New password cannot be the same as current password")
	}
	if !user.LastPasswordChange.IsZero() && s.now().Sub(user.LastPasswordChange) < passwordChangeInterval {
		return &PasswordChangeTooSoonError{NextAllowed: user.LastPasswordChange.Add(passwordChangeInterval)}
	}

	hashed, err := services.HashPassword(newPassword)
	if err != nil {
		return translate(err)
	}
	if err := s.users.UpdateUserPassword(ctx, userID, hashed); err != nil {
		return translate(err)
	}
	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

// Setup2FA generates a new secret for the user to confirm with Enable2FA.
func (s *AuthService) Setup2FA(ctx context.Context, userID string) (services.TwoFactorSetup, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return services.TwoFactorSetup{}, translate(err)
	}
	if user.TwoFactorEnabled {
		return services.TwoFactorSetup{}, Err2FAAlreadyEnabled
	}
	setup, err := s.twoFactor.GenerateSecret(user.Email)
	if err != nil {
		return services.TwoFactorSetup{}, translate(err)
	}
	if err := s.users.SetTwoFactorSecret(ctx, userID, setup.Secret); err != nil {
		return services.TwoFactorSetup{}, translate(err)
	}
	return setup, nil
}

// Enable2FA confirms the secret issued by Setup2FA with a code and returns the
// plain recovery codes. Only their hashes are stored. A secret sent by the
// client must match the pending one.
func (s *AuthService) Enable2FA(ctx context.Context, userID, secret, code string) ([]string, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	if user.TwoFactorEnabled {
		return nil, Err2FAAlreadyEnabled
	}
	pending := user.TwoFactorSecret
	if pending == "" {
		return nil, invalid("2FA setup has not been started")
	}
	if secret = strings.TrimSpace(secret); secret != "" && secret != pending {
		return nil, invalid("Secret does not match the pending 2FA setup")
	}
	secret = pending
	if !s.twoFactor.Validate(code, secret) {
		return nil, ErrInvalid2FACode
	}

	codes, err := utils.GenerateRecoveryCodes()
	if err != nil {
		return nil, fmt.Errorf("generating recovery codes: %w", err)
	}
	if err := s.users.Enable2FAWithRecoveryCodes(ctx, userID, secret, utils.HashRecoveryCodes(codes)); err != nil {
		return nil, translate(err)
	}
	return codes, nil
}

func (s *AuthService) Disable2FA(ctx context.Context, userID, code string) error {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return translate(err)
	}
	if !user.TwoFactorEnabled {
		return Err2FANotEnabled
	}
	if !s.twoFactor.Validate(code, user.TwoFactorSecret) {
		return ErrInvalid2FACode
	}
	return translate(s.users.Disable2FA(ctx, userID))
}

// UseRecoveryCode consumes one recovery code and returns how many are left.
func (s *AuthService) UseRecoveryCode(ctx context.Context, userID, code string) (int, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return 0, translate(err)
	}
	if !user.TwoFactorEnabled {
		return 0, Err2FANotEnabled
	}
	remaining, ok := consumeRecoveryCode(user.RecoveryCodes, code)
	if !ok {
		return 0, ErrInvalid2FACode
	}
	if err := s.users.UpdateRecoveryCodes(ctx, userID, remaining); err != nil {
		return 0, translate(err)
	}
	return len(remaining), nil
}

// ActiveSessions lists the user's active sessions, served from the cache when
// one is configured.
func (s *AuthService) ActiveSessions(ctx context.Context, userID string) ([]*model.Session, error) {
	if s.cache != nil {
		sessions, ok, err := s.cache.GetUserSessions(ctx, userID)
		if err != nil {
			s.log.Warn().Err(err).Msg("session cache read failed")
		}
		metrics.TrackCacheLookup("sessions", ok)
		if ok {
			return sessions, nil
		}
	}

	sessions, err := s.sessions.GetUserActiveSessions(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	if sessions == nil {
		sessions = []*model.Session{}
	}
	if s.cache != nil {
		if err := s.cache.CacheUserSessions(ctx, userID, sessions); err != nil {
			s.log.Warn().Err(err).Msg("session cache write failed")
		}
	}
	return sessions, nil
}

func (s *AuthService) LogoutAll(ctx context.Context, userID string) (int64, error) {
	n, err := s.sessions.EndAllUserSessions(ctx, userID)
	if err != nil {
		return 0, translate(err)
	}
	s.invalidateSessions(ctx, userID)
	return n, nil
}

// TouchSession records activity on a session owned by userID. Ended or
// foreign sessions are reported as ErrNotFound.
func (s *AuthService) TouchSession(ctx context.Context, userID, sessionID string) error {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return translate(err)
	}
	if session.UserID != userID || !session.IsActive || !session.ExpiresAt.After(s.now()) {
		return ErrNotFound
	}
	return translate(s.sessions.TouchSession(ctx, sessionID))
}

func (s *AuthService) loadUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, translate(err)
	}
	return user, nil
}

func (s *AuthService) invalidateSessions(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("session cache invalidation failed")
	}
}

// upgradeHash re-encodes a verified password stored with outdated settings.
// Failures are logged; the login itself proceeds.
func (s *AuthService) upgradeHash(ctx context.Context, user *model.User, password string) {
	if !services.NeedsRehash(user.Password) {
		return
	}
	hashed, err := services.Rehash(password)
	if err == nil {
		err = s.users.ReplacePasswordHash(ctx, user.UserID, hashed)
	}
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.UserID).Msg("password rehash failed")
		return
	}
	user.Password = hashed
}

// Package auth implements the verification-and-session state machine: it
// coordinates signup, email verification, sign-in, and the password-reset
// flows against the identity provider, and owns the shared OTC state.
package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"authgw/internal/modules/auth/domain"
	"authgw/internal/modules/auth/store"
	"authgw/internal/platform/supabase"
)

// Provider is the slice of the identity provider the orchestrator needs.
// *supabase.Client satisfies it; tests substitute their own.
type Provider interface {
	CreateUser(ctx context.Context, email, password string, meta supabase.Metadata) (*supabase.User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*supabase.User, error)
	SendOTP(ctx context.Context, email, otpType string) error
	VerifyOTP(ctx context.Context, email, code, otpType string) (*supabase.User, error)
	UserByEmail(ctx context.Context, email string) (*supabase.User, error)
	UpdateUser(ctx context.Context, userID string, update supabase.UserUpdate) error
}

// ProfileDirectory is the application-owned user record consulted before
// provider metadata when building a sign-in session. May be absent.
type ProfileDirectory interface {
	ProfileByEmail(ctx context.Context, email string) (*domain.Profile, error)
}

type Service struct {
	provider Provider
	tracker  store.OTCTracker
	resets   store.ResetTokenCache
	profiles ProfileDirectory
	otpTTL   time.Duration
	log      *zap.SugaredLogger
}

// NewService builds an orchestrator. profiles may be nil; every other
// dependency is required. otpTTL is the configured OTC validity window.
func NewService(provider Provider, tracker store.OTCTracker, resets store.ResetTokenCache, profiles ProfileDirectory, otpTTL time.Duration, log *zap.SugaredLogger) *Service {
	return &Service{
		provider: provider,
		tracker:  tracker,
		resets:   resets,
		profiles: profiles,
		otpTTL:   otpTTL,
		log:      log,
	}
}

type SignUpResult struct {
	Email             string
	AlreadyRegistered bool
}

// SignUp creates the account and dispatches a signup code. A duplicate
// account is not an error: the code is re-dispatched and the response stays
// success-shaped, so users who abandoned a prior signup can pick it back up
// and account existence never leaks through the response.
func (s *Service) SignUp(ctx context.Context, email, password string, meta supabase.Metadata) (*SignUpResult, error) {
	_, err := s.provider.CreateUser(ctx, email, password, meta)
	if err != nil {
		var pe *supabase.Error
		if errors.As(err, &pe) && pe.DuplicateUser() {
			if err := s.provider.SendOTP(ctx, email, domain.PurposeSignup.OTPType()); err != nil {
				return nil, s.classify(err, "signup re-dispatch", email)
			}
			s.track(ctx, email, domain.PurposeSignup)
			s.log.Infow("signup for existing account treated as resend", "email", email)
			return &SignUpResult{Email: email, AlreadyRegistered: true}, nil
		}
		return nil, s.classify(err, "signup", email)
	}

	if err := s.provider.SendOTP(ctx, email, domain.PurposeSignup.OTPType()); err != nil {
		return nil, s.classify(err, "signup otp dispatch", email)
	}
	s.track(ctx, email, domain.PurposeSignup)
	s.log.Infow("signup initiated", "email", email, "role", meta.Role)
	return &SignUpResult{Email: email}, nil
}

// VerifySignup confirms the signup code with the provider and, on success,
// materializes the session record. A result without an id or email is a
// provider-contract violation and must not be misreported as a wrong code.
func (s *Service) VerifySignup(ctx context.Context, email, code string) (*domain.Session, error) {
	u, err := s.provider.VerifyOTP(ctx, email, code, domain.PurposeSignup.OTPType())
	if err != nil {
		return nil, s.classify(err, "signup verification", email)
	}
	if u == nil {
		return nil, domain.ErrInvalidCode
	}
	if u.ID == "" || u.Email == "" {
		s.log.Errorw("verification result missing identity fields", "email", email, "user_id", u.ID)
		return nil, domain.ErrUnexpected
	}

	s.clearTracker(ctx, email)
	s.log.Infow("user verified", "email", email, "user_id", u.ID)
	return sessionFromUser(u), nil
}

// SignIn exchanges credentials for a session. Invalid credentials never
// reveal whether the email or the password was wrong; an unverified email
// is reported distinctly so the client can route to verification.
func (s *Service) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	u, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		var pe *supabase.Error
		if errors.As(err, &pe) {
			if pe.EmailNotConfirmed() {
				s.log.Infow("sign-in with unverified email", "email", email)
				return nil, domain.ErrEmailNotConfirmed
			}
			if pe.Kind == supabase.KindRejected {
				return nil, domain.ErrInvalidCredentials
			}
		}
		return nil, s.classify(err, "signin", email)
	}
	if u == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !u.EmailConfirmed() {
		s.log.Infow("sign-in with unverified email", "email", email)
		return nil, domain.ErrEmailNotConfirmed
	}

	sess := sessionFromUser(u)
	s.applyProfile(ctx, sess)
	s.log.Infow("user signed in", "email", email, "user_id", u.ID)
	return sess, nil
}

// applyProfile overlays the application-owned user record when one exists.
// Lookup failures degrade to provider metadata and never surface.
func (s *Service) applyProfile(ctx context.Context, sess *domain.Session) {
	if s.profiles == nil {
		return
	}
	p, err := s.profiles.ProfileByEmail(ctx, sess.Email)
	if err != nil {
		s.log.Warnw("profile lookup failed, using provider metadata", "email", sess.Email, "error", err)
		return
	}
	if p == nil {
		return
	}
	if p.Role != "" {
		sess.Role = p.Role
	}
	if p.Name != "" {
		sess.Name = p.Name
	}
	if p.Department != "" {
		sess.Department = p.Department
	}
}

// ForgotPassword dispatches a reset code. It never reports failure: the
// response shape must not depend on account existence, so every outcome is
// recorded in the log only. When the provider refuses because the account
// never verified its email, a signup code is dispatched instead so the user
// still receives something usable.
func (s *Service) ForgotPassword(ctx context.Context, email string) {
	err := s.provider.SendOTP(ctx, email, domain.PurposeReset.OTPType())
	if err == nil {
		s.track(ctx, email, domain.PurposeReset)
		s.log.Infow("password reset code dispatched", "email", email)
		return
	}

	var pe *supabase.Error
	if errors.As(err, &pe) && pe.EmailNotConfirmed() {
		if err := s.provider.SendOTP(ctx, email, domain.PurposeSignup.OTPType()); err != nil {
			s.log.Warnw("signup code fallback failed", "email", email, "error", err)
			return
		}
		s.track(ctx, email, domain.PurposeSignup)
		s.log.Infow("account unverified, dispatched signup code instead", "email", email)
		return
	}

	s.log.Infow("password reset dispatch did not complete", "email", email, "error", err)
}

// VerifyResetOTC confirms a reset code with the provider and records the
// proof in the token cache. The usable window restarts at verification to
// cover the time spent typing the new password.
func (s *Service) VerifyResetOTC(ctx context.Context, email, code string) error {
	u, err := s.provider.VerifyOTP(ctx, email, code, domain.PurposeReset.OTPType())
	if err != nil {
		return s.classify(err, "reset verification", email)
	}
	if u == nil {
		return domain.ErrInvalidCode
	}
	if u.ID == "" || u.Email == "" {
		s.log.Errorw("verification result missing identity fields", "email", email, "user_id", u.ID)
		return domain.ErrUnexpected
	}
	if err := s.resets.Record(ctx, email, code, s.otpTTL); err != nil {
		s.log.Errorw("recording verified reset token failed", "email", email, "error", err)
		return domain.ErrUnexpected
	}
	s.clearTracker(ctx, email)
	s.log.Infow("password reset code verified", "email", email)
	return nil
}

// ResetPassword updates the password once the reset code has been proven.
// A missing or expired cache entry gets one fallback re-verification
// against the provider, recovering from cache eviction without forcing the
// user to request a new code. A mismatched code fails outright.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	res, err := s.resets.Consume(ctx, email, code)
	if err != nil {
		s.log.Errorw("reset token check failed", "email", email, "error", err)
		return domain.ErrUnexpected
	}
	switch res {
	case store.TokenValid:
	case store.TokenMismatched:
		return domain.ErrInvalidCode
	default:
		u, err := s.provider.VerifyOTP(ctx, email, code, domain.PurposeReset.OTPType())
		if err != nil {
			return s.classify(err, "reset re-verification", email)
		}
		if u == nil {
			return domain.ErrInvalidCode
		}
		s.log.Infow("reset token re-verified after cache miss", "email", email)
	}

	u, err := s.provider.UserByEmail(ctx, email)
	if err != nil {
		return s.classify(err, "reset user lookup", email)
	}
	if u == nil {
		// Provider state drifted from the cache; report, don't retry.
		s.log.Warnw("verified reset for an account the provider no longer has", "email", email)
		return domain.ErrUserNotFound
	}

	if err := s.provider.UpdateUser(ctx, u.ID, supabase.UserUpdate{Password: &newPassword}); err != nil {
		return s.classify(err, "password update", email)
	}
	if err := s.resets.Clear(ctx, email); err != nil {
		s.log.Warnw("clearing consumed reset token failed", "email", email, "error", err)
	}
	s.log.Infow("password reset completed", "email", email, "user_id", u.ID)
	return nil
}

// ResendOTC re-dispatches under the purpose the tracker recorded. Purpose
// is never inferred from anything else; with no pending request the client
// must start the flow again.
func (s *Service) ResendOTC(ctx context.Context, email string) error {
	purpose, ok, err := s.tracker.PurposeOf(ctx, email)
	if err != nil {
		s.log.Errorw("pending request lookup failed", "email", email, "error", err)
		return domain.ErrUnexpected
	}
	if !ok {
		return domain.ErrNoPendingRequest
	}
	if err := s.provider.SendOTP(ctx, email, purpose.OTPType()); err != nil {
		return s.classify(err, "otp resend", email)
	}
	s.track(ctx, email, purpose)
	s.log.Infow("verification code resent", "email", email, "purpose", purpose)
	return nil
}

// SelectDataSource flips the data-source flag in the provider's metadata
// for the signed-in user.
func (s *Service) SelectDataSource(ctx context.Context, userID string) error {
	err := s.provider.UpdateUser(ctx, userID, supabase.UserUpdate{
		UserMetadata: map[string]any{"has_selected_data_source": true},
	})
	if err != nil {
		return s.classify(err, "data source update", userID)
	}
	s.log.Infow("data source selected", "user_id", userID)
	return nil
}

func sessionFromUser(u *supabase.User) *domain.Session {
	return &domain.Session{
		UserID:                u.ID,
		Email:                 u.Email,
		Role:                  u.Metadata.Role,
		Name:                  u.Metadata.Name,
		Department:            u.Metadata.Department,
		HasSelectedDataSource: u.Metadata.HasSelectedDataSource,
	}
}

// track records a dispatch. Tracker failures are logged, not propagated:
// the code is already in the user's inbox and failing the request now would
// help nobody.
func (s *Service) track(ctx context.Context, email string, purpose domain.Purpose) {
	if err := s.tracker.Track(ctx, email, purpose); err != nil {
		s.log.Errorw("tracking dispatched code failed", "email", email, "purpose", purpose, "error", err)
	}
}

func (s *Service) clearTracker(ctx context.Context, email string) {
	if err := s.tracker.Clear(ctx, email); err != nil {
		s.log.Warnw("clearing pending request failed", "email", email, "error", err)
	}
}

// classify folds a provider failure into the client-facing taxonomy.
// Nothing raw from the provider layer escapes this boundary.
func (s *Service) classify(err error, op, email string) error {
	var pe *supabase.Error
	if errors.As(err, &pe) {
		switch pe.Kind {
		case supabase.KindUnauthorized:
			s.log.Errorw("provider rejected service credentials", "op", op, "email", email, "error", err)
			return domain.ErrProviderUnauthorized
		case supabase.KindUnavailable:
			s.log.Warnw("provider unavailable", "op", op, "email", email, "error", err)
			return domain.ErrProviderUnavailable
		case supabase.KindRejected:
			s.log.Warnw("provider rejected request", "op", op, "email", email, "error", err)
			return domain.ErrRejected
		}
	}
	s.log.Errorw("unexpected provider failure", "op", op, "email", email, "error", err)
	return domain.ErrUnexpected
}

package usecase

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/identity/entity"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/clock"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/config"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/goerror"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/goroutine"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/instrument"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/jwt"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/mail"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/otp"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/replay"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/sms"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/validator"
)

const (
	testPhone     = "9876543210"
	testJWTSecret = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
)

var testNow = time.Date(2026, time.March, 14, 10, 2, 30, 0, time.UTC)

// fakeStore is an in-memory user store keyed by phone number.
type fakeStore struct {
	mu              sync.Mutex
	users           map[string]*entity.User
	markVerifiedErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*entity.User)}
}

func (f *fakeStore) UpsertUserByPhone(_ context.Context, in entity.User) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, ok := f.users[in.PhoneNumber]; ok {
		cp := *existing
		return &cp, nil
	}

	in.UpdatedAt = in.CreatedAt
	f.users[in.PhoneNumber] = &in
	cp := in
	return &cp, nil
}

func (f *fakeStore) GetUserByPhone(_ context.Context, phone string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[phone]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.ID == id {
			cp := *user
			return &cp, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeStore) MarkUserVerified(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.markVerifiedErr; err != nil {
		f.markVerifiedErr = nil
		return err
	}

	for _, user := range f.users {
		if user.ID == id {
			user.Verified = true
			return nil
		}
	}
	return goerror.ErrNotFound
}

// fakeMessenger records dispatched messages.
type fakeMessenger struct {
	mu       sync.Mutex
	messages []sms.Message
	fail     error
}

func (f *fakeMessenger) Send(_ context.Context, msg sms.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail != nil {
		return f.fail
	}
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeMessenger) Close() error { return nil }

// fakeMailer records dispatched email copies.
type fakeMailer struct {
	mu       sync.Mutex
	messages []mail.Message
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeMailer) Close() error { return nil }

func (f *fakeMailer) sent() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.messages)
}

type seqNumberID struct{ next int64 }

func (s *seqNumberID) Generate() int64 {
	s.next++
	return s.next
}

type seqStringID struct {
	mu   sync.Mutex
	next int
}

func (s *seqStringID) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	return "cid-" + strconv.Itoa(s.next)
}

type fixture struct {
	uc        *Usecase
	store     *fakeStore
	messenger *fakeMessenger
	mailer    *fakeMailer
	goroutine *goroutine.Manager
	jwt       jwt.JWT
}

func newFixture(t *testing.T, guard replay.Guard) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  env: test\notp:\n  window_minutes: 5\n"))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	clk := clock.Static{At: testNow}

	signer, err := jwt.NewHS512(jwt.Config{
		Secret:    []byte(testJWTSecret),
		Issuer:    "ticket-booking-test",
		Audiences: []string{"ticket-booking-web"},
		TTL:       24 * time.Hour,
		Clock:     clk,
		UUID:      &seqStringID{},
	})
	if err != nil {
		t.Fatalf("failed to build jwt: %v", err)
	}

	store := newFakeStore()
	messenger := &fakeMessenger{}
	mailer := &fakeMailer{}
	mgr := goroutine.NewManager(4)

	uc := New(Dependency{
		RepoDB:     store,
		Messenger:  messenger,
		Mailer:     mailer,
		Validator:  v10,
		Config:     cfg,
		UID:        &seqNumberID{},
		UUID:       &seqStringID{},
		OTP:        otp.NewWindowed("test-otp-secret", otp.DefaultWindow, 1),
		Replay:     guard,
		Clock:      clk,
		JWT:        signer,
		Instrument: instrument.NewNoop(),
		Goroutine:  mgr,
	})

	return &fixture{uc: uc, store: store, messenger: messenger, mailer: mailer, goroutine: mgr, jwt: signer}
}

func errCode(t *testing.T, err error) goerror.Code {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected goerror.Error, got %v", err)
	}
	return gerr.Code()
}

func (f *fixture) signup(t *testing.T) *SignupOutput {
	t.Helper()

	out, err := f.uc.Signup(context.Background(), SignupInput{
		PhoneNumber: testPhone,
		FullName:    "Piyush Bose",
		Email:       "piyush@example.com",
	})
	if err != nil {
		t.Fatalf("failed to signup: %v", err)
	}
	return out
}

func TestSignup(t *testing.T) {
	t.Run("DispatchesCodeAndReturnsCorrelationID", func(t *testing.T) {
		// Arrange
		f := newFixture(t, replay.Disabled{})

		// Act
		out := f.signup(t)

		// Assert
		if out.CorrelationID == "" {
			t.Fatalf("expected a correlation id")
		}
		if out.User.Verified {
			t.Fatalf("expected new account to start unverified")
		}
		if out.OTP == "" {
			t.Fatalf("expected otp echoed outside production")
		}
		if len(f.messenger.messages) != 1 || f.messenger.messages[0].To != testPhone {
			t.Fatalf("expected one sms to %s, got %+v", testPhone, f.messenger.messages)
		}
	})

	t.Run("EmailCopyOutlivesRequest", func(t *testing.T) {
		// Arrange
		f := newFixture(t, replay.Disabled{})
		ctx, cancel := context.WithCancel(context.Background())

		// Act: the request context dies as soon as the response is written,
		// the queued email copy must still go out.
		_, err := f.uc.Signup(ctx, SignupInput{
			PhoneNumber: testPhone,
			FullName:    "Piyush Bose",
			Email:       "piyush@example.com",
		})
		cancel()

		// Assert
		if err != nil {
			t.Fatalf("failed to signup: %v", err)
		}
		if err := f.goroutine.Wait(); err != nil {
			t.Fatalf("background work failed: %v", err)
		}
		if got := f.mailer.sent(); got != 1 {
			t.Fatalf("expected one email copy, got %d", got)
		}
	})

	t.Run("IdempotentForUnverifiedAccount", func(t *testing.T) {
		// Arrange
		f := newFixture(t, replay.Disabled{})
		first := f.signup(t)

		// Act
		second := f.signup(t)

		// Assert
		if first.User.ID != second.User.ID {
			t.Fatalf("expected the same account, got ids %d and %d", first.User.ID, second.User.ID)
		}
		if first.CorrelationID == second.CorrelationID {
			t.Fatalf("expected a fresh correlation id per attempt")
		}
	})

	t.Run("ConflictWhenAlreadyVerified", func(t *testing.T) {
		// Arrange
		f := newFixture(t, replay.Disabled{})
		out := f.signup(t)
		if _, err := f.uc.Verify(context.Background(), VerifyInput{
			PhoneNumber:   testPhone,
			OTP:           out.OTP,
			CorrelationID: out.CorrelationID,
			Purpose:       entity.PurposeSignup,
		}); err != nil {
			t.Fatalf("failed to verify: %v", err)
		}

		// Act
		_, err := f.uc.Signup(context.Background(), SignupInput{
			PhoneNumber: testPhone,
			FullName:    "Piyush Bose",
			Email:       "piyush@example.com",
		})

		// Assert
		if errCode(t, err) != goerror.CodeConflict {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("RejectsInvalidPhone", func(t *testing.T) {
		// Arrange
		f := newFixture(t, replay.Disabled{})

		// Act
		_, err := f.uc.Signup(context.Background(), SignupInput{
			PhoneNumber: "12345",
			FullName:    "Piyush Bose",
			Email:       "piyush@example.com",
		})

		// Assert
		if err == nil {
			t.Fatalf("expected validation error for short phone number")
		}
	})

	t.Run("ServerErrorWhenDispatchFails", func(t *testing.T) {
		// Arrange
		f := newFixture(t, replay.Disabled{})
		f.messenger.fail = errors.New("gateway unreachable")

		// Act
		_, err := f.uc.Signup(context.Background(), SignupInput{
			PhoneNumber: testPhone,
			FullName:    "Piyush Bose",
			Email:       "piyush@example.com",
		})

		// Assert
		if errCode(t, err) != goerror.CodeInternal {
			t.Fatalf("expected internal error, got %v", err)
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("UnknownPhoneNotFound", func(t *testing.T) {
		// Arrange
		f := newFixture(t, replay.Disabled{})

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{PhoneNumber: testPhone})

		// Assert
		if errCode(t, err) != goerror.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("UnverifiedAccountForbidden", func(t *testing.T) {
		// Arrange
		f := newFixture(t, replay.Disabled{})
		f.signup(t)

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{PhoneNumber: testPhone})

		// Assert
		if errCode(t, err) != goerror.CodeForbidden {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("VerifiedAccountGetsFreshCode", func(t *testing.T) {
		// Arrange
		f := newFixture(t, replay.Disabled{})
		out := f.signup(t)
		if _, err := f.uc.Verify(context.Background(), VerifyInput{
			PhoneNumber:   testPhone,
			OTP:           out.OTP,
			CorrelationID: out.CorrelationID,
			Purpose:       entity.PurposeSignup,
		}); err != nil {
			t.Fatalf("failed to verify: %v", err)
		}

		// Act
		loginOut, err := f.uc.Login(context.Background(), LoginInput{PhoneNumber: testPhone})

		// Assert
		if err != nil {
			t.Fatalf("failed to login: %v", err)
		}
		if loginOut.CorrelationID == "" || loginOut.CorrelationID == out.CorrelationID {
			t.Fatalf("expected a fresh correlation id, got %q", loginOut.CorrelationID)
		}
		if loginOut.OTP == out.OTP {
			t.Fatalf("expected a different code for a different attempt")
		}
	})
}

func TestVerify(t *testing.T) {
	t.Run("SignupFlowMarksVerifiedAndIssuesToken", func(t *testing.T) {
		// Arrange
		f := newFixture(t, replay.Disabled{})
		out := f.signup(t)

		// Act
		verified, err := f.uc.Verify(context.Background(), VerifyInput{
			PhoneNumber:   testPhone,
			OTP:           out.OTP,
			CorrelationID: out.CorrelationID,
			Purpose:       entity.PurposeSignup,
		})

		// Assert
		if err != nil {
			t.Fatalf("failed to verify: %v", err)
		}
		if !verified.User.Verified {
			t.Fatalf("expected account to become verified")
		}
		if verified.CorrelationID == out.CorrelationID {
			t.Fatalf("expected a fresh session correlation id")
		}

		claims, err := f.jwt.Verify(verified.Token)
		if err != nil {
			t.Fatalf("failed to verify session token: %v", err)
		}
		if claims.UserID != verified.User.ID {
			t.Fatalf("expected token subject %d, got %d", verified.User.ID, claims.UserID)
		}
		if claims.CorrelationID != verified.CorrelationID {
			t.Fatalf("expected token to carry the session correlation id")
		}
	})

	t.Run("WrongCorrelationIDUnauthorized", func(t *testing.T) {
		// Arrange
		f := newFixture(t, replay.Disabled{})
		out := f.signup(t)

		// Act
		_, err := f.uc.Verify(context.Background(), VerifyInput{
			PhoneNumber:   testPhone,
			OTP:           out.OTP,
			CorrelationID: "some-other-attempt",
			Purpose:       entity.PurposeSignup,
		})

		// Assert
		if errCode(t, err) != goerror.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})

	t.Run("LoginPurposeRequiresVerifiedAccount", func(t *testing.T) {
		// Arrange
		f := newFixture(t, replay.Disabled{})
		out := f.signup(t)

		// Act: the code itself is valid but the account never finished signup.
		_, err := f.uc.Verify(context.Background(), VerifyInput{
			PhoneNumber:   testPhone,
			OTP:           out.OTP,
			CorrelationID: out.CorrelationID,
			Purpose:       entity.PurposeLogin,
		})

		// Assert
		if errCode(t, err) != goerror.CodeForbidden {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("UnknownPhoneNotFound", func(t *testing.T) {
		// Arrange
		f := newFixture(t, replay.Disabled{})

		// Act
		_, err := f.uc.Verify(context.Background(), VerifyInput{
			PhoneNumber:   testPhone,
			OTP:           "ABC123",
			CorrelationID: "cid-1",
			Purpose:       entity.PurposeLogin,
		})

		// Assert
		if errCode(t, err) != goerror.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("UnknownPurposeRejected", func(t *testing.T) {
		// Arrange
		f := newFixture(t, replay.Disabled{})
		f.signup(t)

		// Act
		_, err := f.uc.Verify(context.Background(), VerifyInput{
			PhoneNumber:   testPhone,
			OTP:           "ABC123",
			CorrelationID: "cid-1",
			Purpose:       entity.PurposeUnknown,
		})

		// Assert
		if err == nil {
			t.Fatalf("expected unknown purpose to be rejected")
		}
	})

	t.Run("VerifiedStaysVerified", func(t *testing.T) {
		// Arrange
		f := newFixture(t, replay.Disabled{})
		out := f.signup(t)
		if _, err := f.uc.Verify(context.Background(), VerifyInput{
			PhoneNumber:   testPhone,
			OTP:           out.OTP,
			CorrelationID: out.CorrelationID,
			Purpose:       entity.PurposeSignup,
		}); err != nil {
			t.Fatalf("failed to verify: %v", err)
		}

		// Act: a later login round-trip must not flip the flag back.
		loginOut, err := f.uc.Login(context.Background(), LoginInput{PhoneNumber: testPhone})
		if err != nil {
			t.Fatalf("failed to login: %v", err)
		}
		verified, err := f.uc.Verify(context.Background(), VerifyInput{
			PhoneNumber:   testPhone,
			OTP:           loginOut.OTP,
			CorrelationID: loginOut.CorrelationID,
			Purpose:       entity.PurposeLogin,
		})

		// Assert
		if err != nil {
			t.Fatalf("failed to verify login: %v", err)
		}
		if !verified.User.Verified {
			t.Fatalf("expected account to stay verified")
		}
	})

	t.Run("StoreFailureDoesNotBurnCode", func(t *testing.T) {
		// Arrange
		f := newFixture(t, &memoryGuard{seen: make(map[string]struct{})})
		out := f.signup(t)
		f.store.markVerifiedErr = errors.New("connection reset")
		in := VerifyInput{
			PhoneNumber:   testPhone,
			OTP:           out.OTP,
			CorrelationID: out.CorrelationID,
			Purpose:       entity.PurposeSignup,
		}

		// Act: the first attempt dies in the store, the retry reuses the code.
		_, firstErr := f.uc.Verify(context.Background(), in)
		verified, retryErr := f.uc.Verify(context.Background(), in)

		// Assert
		if errCode(t, firstErr) != goerror.CodeInternal {
			t.Fatalf("expected internal error, got %v", firstErr)
		}
		if retryErr != nil {
			t.Fatalf("failed to verify on retry: %v", retryErr)
		}
		if !verified.User.Verified {
			t.Fatalf("expected account to become verified on retry")
		}
	})

	t.Run("SingleUseGuardRejectsReplay", func(t *testing.T) {
		// Arrange
		f := newFixture(t, &memoryGuard{seen: make(map[string]struct{})})
		out := f.signup(t)
		in := VerifyInput{
			PhoneNumber:   testPhone,
			OTP:           out.OTP,
			CorrelationID: out.CorrelationID,
			Purpose:       entity.PurposeSignup,
		}

		if _, err := f.uc.Verify(context.Background(), in); err != nil {
			t.Fatalf("failed first verify: %v", err)
		}

		// Act
		_, err := f.uc.Verify(context.Background(), in)

		// Assert
		if errCode(t, err) != goerror.CodeUnauthorized {
			t.Fatalf("expected replay to be unauthorized, got %v", err)
		}
	})
}

func TestProfile(t *testing.T) {
	t.Run("ReturnsAccountForAuthenticatedContext", func(t *testing.T) {
		// Arrange
		f := newFixture(t, replay.Disabled{})
		out := f.signup(t)
		ctx := jwt.SetAuth(context.Background(), jwt.Claims{UserID: out.User.ID})

		// Act
		profile, err := f.uc.Profile(ctx)

		// Assert
		if err != nil {
			t.Fatalf("failed to load profile: %v", err)
		}
		if profile.User.PhoneNumber != testPhone {
			t.Fatalf("expected phone %s, got %s", testPhone, profile.User.PhoneNumber)
		}
	})

	t.Run("UnauthenticatedContextRejected", func(t *testing.T) {
		// Arrange
		f := newFixture(t, replay.Disabled{})

		// Act
		_, err := f.uc.Profile(context.Background())

		// Assert
		if errCode(t, err) != goerror.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})

	t.Run("MissingAccountNotFound", func(t *testing.T) {
		// Arrange
		f := newFixture(t, replay.Disabled{})
		ctx := jwt.SetAuth(context.Background(), jwt.Claims{UserID: 404})

		// Act
		_, err := f.uc.Profile(ctx)

		// Assert
		if errCode(t, err) != goerror.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

type memoryGuard struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func (g *memoryGuard) Consume(_ context.Context, key string, _ time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.seen[key]; ok {
		return false, nil
	}
	g.seen[key] = struct{}{}
	return true, nil
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
)

// countingHasher wraps a real hasher and counts Verify calls.
type countingHasher struct {
	*BcryptHasher
	verifies int
}

func (h *countingHasher) Verify(ctx context.Context, secret, digest string) (bool, error) {
	h.verifies++
	return h.BcryptHasher.Verify(ctx, secret, digest)
}

func newAuthFixture(t *testing.T) (*AuthService, *stubUserRepo, *countingHasher, *JWTService) {
	t.Helper()
	repo := newStubUserRepo()
	hasher := &countingHasher{BcryptHasher: NewBcryptHasher(bcrypt.MinCost)}
	tokens, err := NewJWTService(TokenConfig{Secret: "test-secret"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}

	digest, err := hasher.Hash(context.Background(), "correct-horse")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	now := time.Now().UTC()
	if _, err := repo.Create(context.Background(), &domain.User{
		Username:     "amy",
		Email:        "amy@kgl.example",
		PasswordHash: digest,
		Role:         domain.RoleSalesAgent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	return NewAuthService(repo, hasher, tokens, zerolog.Nop()), repo, hasher, tokens
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _, tokens := newAuthFixture(t)

	token, user, err := svc.Login(context.Background(), "amy", "correct-horse")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.Username != "amy" {
		t.Fatalf("unexpected user: %+v", user)
	}

	id, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if id != user.Identity() {
		t.Fatalf("token identity %+v != user identity %+v", id, user.Identity())
	}
}

func TestAuthService_Login_ByEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	if _, user, err := svc.Login(context.Background(), "amy@kgl.example", "correct-horse"); err != nil || user.Username != "amy" {
		t.Fatalf("login by email failed: user=%v err=%v", user, err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, _, err := svc.Login(context.Background(), "amy", "wrong-horse")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserLooksLikeWrongPassword(t *testing.T) {
	svc, _, hasher, _ := newAuthFixture(t)

	_, _, errUnknown := svc.Login(context.Background(), "nobody", "correct-horse")
	_, _, errWrong := svc.Login(context.Background(), "amy", "wrong-horse")

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) || errUnknown != errWrong {
		t.Fatalf("unknown user and wrong password must be indistinguishable: %v vs %v", errUnknown, errWrong)
	}
	if hasher.verifies != 2 {
		t.Fatalf("expected a bcrypt compare on both paths, got %d", hasher.verifies)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	for _, tc := range [][2]string{{"", "pw"}, {"amy", ""}} {
		if _, _, err := svc.Login(context.Background(), tc[0], tc[1]); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("Login(%q, %q): expected ErrInvalidCredentials, got %v", tc[0], tc[1], err)
		}
	}
}

func TestAuthService_Login_CorruptDigest(t *testing.T) {
	svc, repo, _, _ := newAuthFixture(t)
	for _, u := range repo.users {
		u.PasswordHash = "garbage"
	}

	_, _, err := svc.Login(context.Background(), "amy", "correct-horse")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for corrupt digest, got %v", err)
	}
}

// ctxHasher behaves like the hashing pool: work is refused once ctx is done.
// failHashes makes the next Hash calls fail outright.
type ctxHasher struct {
	*BcryptHasher
	failHashes int
	verifies   int
}

func (h *ctxHasher) Hash(ctx context.Context, secret string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if h.failHashes > 0 {
		h.failHashes--
		return "", errors.New("pool unavailable")
	}
	return h.BcryptHasher.Hash(ctx, secret)
}

func (h *ctxHasher) Verify(ctx context.Context, secret, digest string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	h.verifies++
	return h.BcryptHasher.Verify(ctx, secret, digest)
}

func TestAuthService_Login_UnknownUserAfterCancelledLogin(t *testing.T) {
	svc, repo, _, tokens := newAuthFixture(t)
	hasher := &ctxHasher{BcryptHasher: NewBcryptHasher(bcrypt.MinCost)}
	svc = NewAuthService(repo, hasher, tokens, zerolog.Nop())

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := svc.Login(cancelled, "ghost", "whatever1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if hasher.verifies != 0 {
		t.Fatalf("cancelled login should not verify, got %d", hasher.verifies)
	}

	if _, _, err := svc.Login(context.Background(), "ghost", "whatever1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if hasher.verifies != 1 {
		t.Fatalf("unknown user should still pay for a compare after a cancelled login, got %d", hasher.verifies)
	}
}

func TestAuthService_Login_DummyDigestRetriedAfterFailure(t *testing.T) {
	svc, repo, _, tokens := newAuthFixture(t)
	hasher := &ctxHasher{BcryptHasher: NewBcryptHasher(bcrypt.MinCost), failHashes: 1}
	svc = NewAuthService(repo, hasher, tokens, zerolog.Nop())

	_, _, _ = svc.Login(context.Background(), "ghost", "whatever1")
	if hasher.verifies != 0 {
		t.Fatalf("expected no compare while the dummy digest is unavailable, got %d", hasher.verifies)
	}

	_, _, _ = svc.Login(context.Background(), "ghost", "whatever1")
	_, _, _ = svc.Login(context.Background(), "amy", "wrong-horse")
	if hasher.verifies != 2 {
		t.Fatalf("expected unknown user and wrong password to compare once each, got %d", hasher.verifies)
	}
}

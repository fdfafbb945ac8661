package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/scooter-console/internal/auth"
	"github.com/ukydev/scooter-console/internal/models"
)

// State is where the gate sits in the sign-in flow.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateChecking        State = "checking"
	StateAuthenticated   State = "authenticated"
)

var (
	ErrMissingToken     = errors.New("no token received")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Authenticator is the part of the auth service the gate talks to.
type Authenticator interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Me(ctx context.Context) (*models.Admin, error)
}

// Status is a point-in-time view of the gate.
type Status struct {
	State State         `json:"state"`
	Admin *models.Admin `json:"admin,omitempty"`
	Error string        `json:"error,omitempty"`
}

// Gate tracks whether the console holds a working session.
type Gate struct {
	mu      sync.RWMutex
	creds   *Credentials
	auth    Authenticator
	state   State
	admin   *models.Admin
	lastErr string
	now     func() time.Time
}

// NewGate creates a gate in the unauthenticated state
func NewGate(creds *Credentials, authenticator Authenticator) *Gate {
	return &Gate{
		creds: creds,
		auth:  authenticator,
		state: StateUnauthenticated,
		now:   time.Now,
	}
}

// Status returns the current state and profile.
func (g *Gate) Status() Status {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Status{State: g.state, Admin: g.admin, Error: g.lastErr}
}

// Authenticated reports whether the last check or login succeeded.
func (g *Gate) Authenticated() bool {
	return g.Status().State == StateAuthenticated
}

// Admin returns the signed-in operator, or nil.
func (g *Gate) Admin() *models.Admin {
	return g.Status().Admin
}

func (g *Gate) set(state State, admin *models.Admin, errMsg string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = state
	g.admin = admin
	g.lastErr = errMsg
}

// fail records a login error without touching the session already held.
func (g *Gate) fail(errMsg string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastErr = errMsg
}

func (g *Gate) drop(errMsg string) {
	if err := g.creds.Clear(); err != nil {
		log.WithError(err).Warn("Failed to clear session token")
	}
	g.set(StateUnauthenticated, nil, errMsg)
}

// Check validates the stored token. Without a token the gate goes straight
// to unauthenticated. A token whose expiry has already passed is cleared
// without calling the service. Otherwise the profile endpoint decides, and any
// failure there clears the token.
func (g *Gate) Check(ctx context.Context) (State, error) {
	token := g.creds.Token()
	if token == "" {
		g.set(StateUnauthenticated, nil, "")
		return StateUnauthenticated, nil
	}

	g.set(StateChecking, nil, "")

	if err := auth.CheckLocal(token, g.now()); err != nil {
		log.Info("Stored token has expired, signing out")
		g.drop("")
		return StateUnauthenticated, nil
	}

	admin, err := g.auth.Me(ctx)
	if err != nil {
		log.WithError(err).Warn("Auth check failed")
		g.drop("Authentication failed")
		return StateUnauthenticated, fmt.Errorf("auth check failed: %w", err)
	}
	if admin == nil {
		g.drop("")
		return StateUnauthenticated, ErrNotAuthenticated
	}

	g.set(StateAuthenticated, admin, "")
	log.WithFields(log.Fields{"admin_id": admin.ID, "role": admin.EffectiveRole()}).Info("Session authenticated")
	return StateAuthenticated, nil
}

// Login exchanges credentials for a token. A response without a token is
// a failed login. A failed login leaves the current session in place.
func (g *Gate) Login(ctx context.Context, req models.LoginRequest) (*models.Admin, error) {
	req.Email = strings.TrimSpace(req.Email)

	resp, err := g.auth.Login(ctx, req)
	if err != nil {
		g.fail("Login failed")
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if resp == nil || strings.TrimSpace(resp.Token) == "" {
		g.fail(ErrMissingToken.Error())
		return nil, ErrMissingToken
	}
	if err := g.creds.Set(resp.Token); err != nil {
		g.fail("Login failed")
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	admin := resp.Admin
	if admin == nil {
		admin = &models.Admin{Email: req.Email}
	}
	g.set(StateAuthenticated, admin, "")
	log.WithFields(log.Fields{"email": req.Email}).Info("Admin logged in")
	return admin, nil
}

// Logout clears the token.
func (g *Gate) Logout() {
	g.drop("")
}

// Invalidate is called by the API clients on any 401.
func (g *Gate) Invalidate() {
	if g.Status().State == StateUnauthenticated && g.creds.Token() == "" {
		return
	}
	log.Warn("Session rejected by service, signing out")
	g.drop("Session expired")
}

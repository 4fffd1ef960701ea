package service

import (
	"context"
	"sync"
	"time"

	"farmapos/internal/apierror"
	"farmapos/internal/gqlclient"
	"farmapos/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// SessionState: loading is the only transient state, entered at startup
// and during a logout-triggered refetch; the terminal states are
// re-entered on every login/logout.
type SessionState int

const (
	StateLoading SessionState = iota
	StateAuthenticated
	StateUnauthenticated
)

// TokenStore is the persistence contract for the access and refresh
// tokens.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
	SaveRefresh(token string) error
	LoadRefresh() (string, error)
	ClearRefresh() error
}

// authAPI is the slice of the GraphQL client the session needs.
type authAPI interface {
	Login(ctx context.Context, username, password string) (*gqlclient.LoginResult, error)
	Register(ctx context.Context, input gqlclient.RegisterUserInput) (*gqlclient.RegisterResult, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*model.User, error)
	ClearCache()
}

// AuthResult is the normalized outcome of login/register.
type AuthResult struct {
	Success bool
	User    *model.User
	Errors  []apierror.FieldError
}

// RegisterForm is validated locally before any network call.
type RegisterForm struct {
	Username  string `validate:"required,min=3"`
	Email     string `validate:"required,email"`
	Password1 string `validate:"required,min=8"`
	Password2 string `validate:"required,eqfield=Password1"`
	FirstName string
	LastName  string
}

// Session tracks the current user and authentication state, wrapping
// login/register/logout around the token store and the GraphQL client.
type Session struct {
	api      authAPI
	tokens   TokenStore
	validate *validator.Validate

	mu    sync.Mutex
	state SessionState
	user  *model.User
}

func NewSession(api authAPI, tokens TokenStore) *Session {
	return &Session{
		api:      api,
		tokens:   tokens,
		validate: validator.New(),
		state:    StateLoading,
	}
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the current user, nil when unauthenticated.
func (s *Session) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsAuthenticated reports whether a user is signed in.
func (s *Session) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// Login checks credentials against the backend. On success the
// returned token is persisted, the response cache cleared (to avoid
// stale per-user data) and the current-user query refetched to
// populate session state. On failure the normalized error list is
// returned and no token is persisted.
func (s *Session) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	result, err := s.api.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		s.setUnauthenticated()
		return &AuthResult{Success: false, Errors: result.Errors}, nil
	}

	if err := s.tokens.Save(result.Token); err != nil {
		log.Warn().Err(err).Msg("no se pudo persistir el token")
	}
	if result.RefreshToken != "" {
		if err := s.tokens.SaveRefresh(result.RefreshToken); err != nil {
			log.Warn().Err(err).Msg("no se pudo persistir el refresh token")
		}
	}
	s.api.ClearCache()

	user := result.User
	if refetched, err := s.api.CurrentUser(ctx); err == nil && refetched != nil {
		user = refetched
	}
	s.setAuthenticated(user)
	return &AuthResult{Success: true, User: user}, nil
}

// Register creates an account; on success the same
// token-persist-and-refetch pattern as Login applies.
func (s *Session) Register(ctx context.Context, form RegisterForm) (*AuthResult, error) {
	if err := s.validate.Struct(form); err != nil {
		var fields []apierror.FieldError
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, ve := range verrs {
				fields = append(fields, apierror.FieldError{
					Field:   ve.Field(),
					Message: "Valor inválido para " + ve.Field(),
				})
			}
		}
		return &AuthResult{Success: false, Errors: fields}, nil
	}

	result, err := s.api.Register(ctx, gqlclient.RegisterUserInput{
		Username:  form.Username,
		Email:     form.Email,
		Password1: form.Password1,
		Password2: form.Password2,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return &AuthResult{Success: false, Errors: result.Errors}, nil
	}

	s.api.ClearCache()
	user := result.User
	if refetched, err := s.api.CurrentUser(ctx); err == nil && refetched != nil {
		user = refetched
	}
	s.setAuthenticated(user)
	return &AuthResult{Success: true, User: user}, nil
}

// Logout clears the in-memory user, both persisted tokens and the
// response cache. Every step is best-effort: a failure is logged,
// never re-thrown, so the caller always proceeds to the login screen.
func (s *Session) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		log.Warn().Err(err).Msg("logout remoto falló")
	}
	if err := s.tokens.Clear(); err != nil {
		log.Warn().Err(err).Msg("no se pudo borrar el token")
	}
	if err := s.tokens.ClearRefresh(); err != nil {
		log.Warn().Err(err).Msg("no se pudo borrar el refresh token")
	}
	s.api.ClearCache()
	s.setUnauthenticated()
}

// Restore runs at process start: it loads the persisted token and
// re-validates it by refetching the current user. An expired or invalid
// token resets the session to unauthenticated without throwing.
func (s *Session) Restore(ctx context.Context) {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	token, err := s.tokens.Load()
	if err != nil || token == "" {
		s.setUnauthenticated()
		return
	}
	if tokenExpired(token) {
		log.Info().Msg("token persistido expirado, se descarta")
		_ = s.tokens.Clear()
		_ = s.tokens.ClearRefresh()
		s.setUnauthenticated()
		return
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil || user == nil {
		s.setUnauthenticated()
		return
	}
	s.setAuthenticated(user)
}

func (s *Session) setAuthenticated(user *model.User) {
	s.mu.Lock()
	s.user = user
	s.state = StateAuthenticated
	s.mu.Unlock()
}

func (s *Session) setUnauthenticated() {
	s.mu.Lock()
	s.user = nil
	s.state = StateUnauthenticated
	s.mu.Unlock()
}

// tokenExpired peeks at the exp claim without verifying the signature:
// the client has no secret and the backend remains the authority. An
// unparseable token is treated as opaque and handed to the backend
// probe instead.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// ─── Route gate ──────────────────────────────────────────────────────────────

// GateDecision is what the protected screens do with the session state.
type GateDecision int

const (
	GateWait     GateDecision = iota // still loading, show placeholder
	GateRedirect                     // not authenticated, go to login
	GateAllow                        // render the protected content
)

// Gate is a pure function of session state with no state of its own.
func Gate(state SessionState) GateDecision {
	switch state {
	case StateLoading:
		return GateWait
	case StateAuthenticated:
		return GateAllow
	default:
		return GateRedirect
	}
}

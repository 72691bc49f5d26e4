// Package store is the client-side state container for CivicPulse. It mirrors
// the remote API and falls back to locally persisted state whenever the
// backend cannot be reached.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"civicpulse/internal/client"
	"civicpulse/internal/dto"
	"civicpulse/internal/lifecycle"
	"civicpulse/internal/logger"
	"civicpulse/internal/uuid"
)

// Keys of the persisted JSON blobs.
const (
	KeyUser            = "cp_user"
	KeyGrievances      = "cp_grievances"
	KeyRegisteredUsers = "cp_registered_users"
	KeyToken           = "cp_token"
)

// Local defaults for grievances built without the backend.
const (
	DefaultTitle     = "No Title"
	AnonymousCitizen = "anonymous"
)

const maxCodeAttempts = 10

var (
	ErrNotFound           = errors.New("store: grievance not found")
	ErrFeedbackNotAllowed = errors.New("store: feedback can only be given once on a resolved grievance")
	ErrInvalidTransition  = errors.New("store: status change is not allowed")
	ErrNotAuthenticated   = errors.New("store: not logged in")
	ErrInvalidRating      = errors.New("store: rating must be between 1 and 5")
	ErrCodeExhausted      = errors.New("store: could not allocate a grievance code")
	ErrForbidden          = errors.New("store: not allowed for the current user")
)

// DefaultUsers are seeded when no users have been persisted yet.
var DefaultUsers = []dto.User{
	{ID: "1", Name: "Citizen User", Email: "citizen@civicpulse.com", Role: lifecycle.RoleCitizen},
	{ID: "2", Name: "Super Admin", Email: "admin@civicpulse.com", Role: lifecycle.RoleAdmin},
	{ID: "3", Name: "John Doe (Roads)", Email: "roads@civicpulse.com", Role: lifecycle.RoleOfficer, Department: "Road Maintenance"},
	{ID: "4", Name: "Jane Smith (Waste)", Email: "waste@civicpulse.com", Role: lifecycle.RoleOfficer, Department: "Waste Management"},
}

// Remote is the subset of the API client the store uses. *client.Client
// satisfies it.
type Remote interface {
	SetToken(token string)
	Login(ctx context.Context, email string, role lifecycle.Role) (*dto.AuthResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	ListUsers(ctx context.Context) ([]dto.User, error)
	CreateGrievance(ctx context.Context, req dto.CreateGrievanceRequest) (*dto.Grievance, error)
	ListGrievances(ctx context.Context) ([]dto.Grievance, error)
	UpdateGrievance(ctx context.Context, id string, req dto.UpdateGrievanceRequest) (*dto.Grievance, error)
	SubmitFeedback(ctx context.Context, id string, req dto.FeedbackRequest) (*dto.Feedback, error)
}

var _ Remote = (*client.Client)(nil)

// Options tune a Store. Zero values are replaced with defaults.
type Options struct {
	Now  func() time.Time
	Rand *rand.Rand
	Log  *zap.SugaredLogger
}

// Draft is a grievance as entered by a citizen.
type Draft struct {
	Title       string
	Description string
	Category    string
	Priority    lifecycle.Priority
	Location    *lifecycle.Location
	Image       string
}

// Updates is a partial grievance update. Nil fields are left unchanged.
type Updates struct {
	Status            *lifecycle.Status
	Priority          *lifecycle.Priority
	AssignedOfficerID *string
	AssignedAt        *time.Time
	Deadline          *time.Time
	ResolutionNote    *string
	ResolutionImage   *string
	ResolvedAt        *time.Time
}

// Store holds the session, the known users and the grievance cache. All
// methods are safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	kv     KV
	remote Remote
	now    func() time.Time
	rng    *rand.Rand
	log    *zap.SugaredLogger

	user       *dto.User
	token      string
	users      []dto.User
	grievances []dto.Grievance // newest first
}

// Open loads persisted state from kv. remote may be nil, in which case the
// store works purely locally.
func Open(ctx context.Context, kv KV, remote Remote, opts Options) (*Store, error) {
	s := &Store{
		kv:     kv,
		remote: remote,
		now:    opts.Now,
		rng:    opts.Rand,
		log:    opts.Log,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.log == nil {
		s.log = logger.Named("store")
	}

	if _, err := s.load(ctx, KeyUser, &s.user); err != nil {
		return nil, err
	}
	if _, err := s.load(ctx, KeyGrievances, &s.grievances); err != nil {
		return nil, err
	}
	if _, err := s.load(ctx, KeyToken, &s.token); err != nil {
		return nil, err
	}
	found, err := s.load(ctx, KeyRegisteredUsers, &s.users)
	if err != nil {
		return nil, err
	}
	if !found {
		s.users = append([]dto.User(nil), DefaultUsers...)
		if err := s.save(ctx, KeyRegisteredUsers, s.users); err != nil {
			return nil, err
		}
	}

	if s.remote != nil && s.token != "" {
		s.remote.SetToken(s.token)
	}
	return s, nil
}

func (s *Store) load(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

func (s *Store) saveSession(ctx context.Context) error {
	if s.user == nil {
		if err := s.kv.Delete(ctx, KeyUser); err != nil {
			return fmt.Errorf("persist %s: %w", KeyUser, err)
		}
	} else if err := s.save(ctx, KeyUser, s.user); err != nil {
		return err
	}
	if s.token == "" {
		if err := s.kv.Delete(ctx, KeyToken); err != nil {
			return fmt.Errorf("persist %s: %w", KeyToken, err)
		}
		return nil
	}
	return s.save(ctx, KeyToken, s.token)
}

// online reports whether authenticated calls should go to the backend.
func (s *Store) online() bool {
	return s.remote != nil && s.token != ""
}

// fallback logs a remote failure that will be served locally. Rejections
// (4xx) are returned to the caller instead.
func (s *Store) fallback(op string, err error) bool {
	if client.IsRejection(err) {
		return false
	}
	s.log.Warnw("backend unavailable, using local state", "op", op, "error", err)
	return true
}

// rejection maps an API rejection onto the store's sentinel errors.
func rejection(err error) error {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Code == "INVALID_TRANSITION":
		return fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	case apiErr.Code == "FEEDBACK_NOT_ALLOWED":
		return fmt.Errorf("%w: %w", ErrFeedbackNotAllowed, err)
	case apiErr.Code == "INVALID_RATING":
		return fmt.Errorf("%w: %w", ErrInvalidRating, err)
	case apiErr.Code == "GRIEVANCE_NOT_FOUND":
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case apiErr.Status == 401:
		return fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	case apiErr.Status == 403:
		return fmt.Errorf("%w: %w", ErrForbidden, err)
	}
	return err
}

func (s *Store) findUser(email string, role lifecycle.Role) *dto.User {
	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, email) && s.users[i].Role == role {
			return &s.users[i]
		}
	}
	return nil
}

// upsertUser records u in the user list, replacing any entry with the same id.
func (s *Store) upsertUser(u dto.User) {
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			return
		}
	}
	s.users = append(s.users, u)
}

func (s *Store) setSession(ctx context.Context, u dto.User, token string) error {
	s.user = &u
	s.token = token
	if s.remote != nil {
		s.remote.SetToken(token)
	}
	s.upsertUser(u)
	if err := s.save(ctx, KeyRegisteredUsers, s.users); err != nil {
		return err
	}
	return s.saveSession(ctx)
}

// Login signs in the user registered under email for role. The backend is
// asked first; when it cannot be reached the locally known users are
// searched. A rejection by the backend is final.
func (s *Store) Login(ctx context.Context, email string, role lifecycle.Role) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.TrimSpace(email)
	if s.remote != nil {
		resp, err := s.remote.Login(ctx, email, role)
		if err == nil {
			return true, s.setSession(ctx, resp.User, resp.Token)
		}
		if !s.fallback("login", err) {
			return false, nil
		}
	}

	u := s.findUser(email, role)
	if u == nil {
		return false, nil
	}
	return true, s.setSession(ctx, *u, "")
}

// Register creates an account and signs it in. It returns false when the
// email is already registered for role.
func (s *Store) Register(ctx context.Context, name, email string, role lifecycle.Role) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if s.remote != nil {
		resp, err := s.remote.Register(ctx, dto.RegisterRequest{Name: name, Email: email, Role: role})
		if err == nil {
			return true, s.setSession(ctx, resp.User, resp.Token)
		}
		if !s.fallback("register", err) {
			return false, nil
		}
	}

	if s.findUser(email, role) != nil {
		return false, nil
	}
	u := dto.User{ID: uuid.New(), Name: name, Email: email, Role: role}
	if role == lifecycle.RoleOfficer {
		u.Department = lifecycle.DefaultOfficerDepartment
	}
	return true, s.setSession(ctx, u, "")
}

// Logout clears the session.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
	if s.remote != nil {
		s.remote.SetToken("")
	}
	return s.saveSession(ctx)
}

// CurrentUser returns the signed-in user, or nil.
func (s *Store) CurrentUser() *dto.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Users returns every known user.
func (s *Store) Users() []dto.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]dto.User(nil), s.users...)
}

// Grievances returns every cached grievance, newest first.
func (s *Store) Grievances() []dto.Grievance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dto.Grievance, 0, len(s.grievances))
	for i := range s.grievances {
		out = append(out, cloneGrievance(s.grievances[i]))
	}
	return out
}

// Grievance returns one cached grievance.
func (s *Store) Grievance(id string) (dto.Grievance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return dto.Grievance{}, ErrNotFound
	}
	return cloneGrievance(s.grievances[i]), nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.grievances {
		if s.grievances[i].ID == id {
			return i
		}
	}
	return -1
}

// put replaces the cached copy of g, or prepends it when new.
func (s *Store) put(g dto.Grievance) {
	if i := s.indexOf(g.ID); i >= 0 {
		s.grievances[i] = g
		return
	}
	s.grievances = append([]dto.Grievance{g}, s.grievances...)
}

// SubmitGrievance files a grievance. When the backend cannot be reached the
// grievance is built locally in PENDING with a single submission entry.
func (s *Store) SubmitGrievance(ctx context.Context, d Draft) (dto.Grievance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.online() {
		g, err := s.remote.CreateGrievance(ctx, dto.CreateGrievanceRequest{
			Title:       d.Title,
			Description: d.Description,
			Category:    d.Category,
			Priority:    d.Priority,
			Location:    d.Location,
			Image:       d.Image,
		})
		if err == nil {
			s.put(*g)
			return cloneGrievance(*g), s.save(ctx, KeyGrievances, s.grievances)
		}
		if !s.fallback("submit grievance", err) {
			return dto.Grievance{}, rejection(err)
		}
	}

	code, err := s.allocateCode()
	if err != nil {
		return dto.Grievance{}, err
	}

	now := s.now()
	submittedBy, actor := AnonymousCitizen, ""
	if s.user != nil {
		submittedBy, actor = s.user.ID, s.user.Name
	}
	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = DefaultTitle
	}
	priority := d.Priority
	if !priority.Valid() {
		priority = lifecycle.PriorityMedium
	}
	location := lifecycle.UnknownLocation
	if d.Location != nil {
		location = *d.Location
	}

	g := dto.Grievance{
		ID:          code,
		Title:       title,
		Description: d.Description,
		Category:    lifecycle.NormalizeCategory(d.Category),
		Status:      lifecycle.StatusPending,
		Priority:    priority,
		SubmittedBy: submittedBy,
		SubmittedAt: now,
		Location:    location,
		Image:       d.Image,
		SLAHours:    lifecycle.SLAHours(priority),
		SLAStatus:   lifecycle.SLAWithin,
		Zone:        lifecycle.ZoneFor(location.Lat, location.Lng),
		Timeline:    []lifecycle.TimelineEntry{lifecycle.SubmissionEntry(actor, now)},
	}
	s.put(g)
	return cloneGrievance(g), s.save(ctx, KeyGrievances, s.grievances)
}

func (s *Store) allocateCode() (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := lifecycle.NewGrievanceCode(s.rng)
		if s.indexOf(code) < 0 {
			return code, nil
		}
	}
	return "", ErrCodeExhausted
}

// UpdateGrievance applies a partial update. A status change appends exactly
// one timeline entry carrying logMessage, or a default message when empty.
func (s *Store) UpdateGrievance(ctx context.Context, id string, u Updates, logMessage string) (dto.Grievance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i >= 0 && u.Status != nil && !lifecycle.CanTransition(s.grievances[i].Status, *u.Status) {
		return dto.Grievance{}, ErrInvalidTransition
	}

	if s.online() {
		g, err := s.remote.UpdateGrievance(ctx, id, dto.UpdateGrievanceRequest{
			Status:            u.Status,
			Priority:          u.Priority,
			AssignedOfficerID: u.AssignedOfficerID,
			AssignedAt:        u.AssignedAt,
			Deadline:          u.Deadline,
			ResolutionNote:    u.ResolutionNote,
			ResolutionImage:   u.ResolutionImage,
			ResolvedAt:        u.ResolvedAt,
			LogMessage:        logMessage,
		})
		if err == nil {
			s.put(*g)
			return cloneGrievance(*g), s.save(ctx, KeyGrievances, s.grievances)
		}
		if !s.fallback("update grievance", err) {
			return dto.Grievance{}, rejection(err)
		}
	}

	if i < 0 {
		return dto.Grievance{}, ErrNotFound
	}
	g := cloneGrievance(s.grievances[i])
	s.apply(&g, u, logMessage)
	s.grievances[i] = g
	return cloneGrievance(g), s.save(ctx, KeyGrievances, s.grievances)
}

// apply mutates g locally the way the backend would.
func (s *Store) apply(g *dto.Grievance, u Updates, logMessage string) {
	now := s.now()

	if u.Priority != nil && u.Priority.Valid() {
		g.Priority = *u.Priority
		g.SLAHours = lifecycle.SLAHours(g.Priority)
	}
	if u.AssignedOfficerID != nil {
		g.AssignedOfficerID = *u.AssignedOfficerID
		if u.AssignedAt == nil && g.AssignedAt == nil {
			g.AssignedAt = &now
		}
		if u.Deadline == nil && g.Deadline == nil {
			d := lifecycle.SLADeadline(g.SubmittedAt, g.Priority)
			g.Deadline = &d
		}
	}
	if u.AssignedAt != nil {
		g.AssignedAt = u.AssignedAt
	}
	if u.Deadline != nil {
		g.Deadline = u.Deadline
	}
	if u.ResolutionNote != nil {
		g.ResolutionNote = *u.ResolutionNote
	}
	if u.ResolutionImage != nil {
		g.ResolutionImage = *u.ResolutionImage
	}
	if u.ResolvedAt != nil {
		g.ResolvedAt = u.ResolvedAt
	}

	if u.Status != nil && *u.Status != g.Status {
		to := *u.Status
		g.Status = to
		switch to {
		case lifecycle.StatusResolved:
			if g.ResolvedAt == nil {
				g.ResolvedAt = &now
			}
		case lifecycle.StatusReopened:
			g.ResolvedAt = nil
		}
		actor := ""
		if s.user != nil {
			actor = s.user.Name
		}
		g.Timeline = append(g.Timeline, lifecycle.TransitionEntry(to, logMessage, actor, now))
	}

	deadline := lifecycle.SLADeadline(g.SubmittedAt, g.Priority)
	if g.Deadline != nil {
		deadline = *g.Deadline
	}
	g.SLAStatus = lifecycle.SLAStatusAt(deadline, g.ResolvedAt, now)
}

// AddFeedback records the signed-in citizen's rating of a resolved grievance.
func (s *Store) AddFeedback(ctx context.Context, id string, rating int, comment string) (dto.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !lifecycle.ValidRating(rating) {
		return dto.Feedback{}, ErrInvalidRating
	}
	if s.user == nil {
		return dto.Feedback{}, ErrNotAuthenticated
	}
	i := s.indexOf(id)
	if i >= 0 && !lifecycle.FeedbackAllowed(s.grievances[i].Status, len(s.grievances[i].Feedbacks)) {
		return dto.Feedback{}, ErrFeedbackNotAllowed
	}
	if i >= 0 && s.user.Role == lifecycle.RoleCitizen && s.grievances[i].SubmittedBy != s.user.ID {
		return dto.Feedback{}, ErrForbidden
	}

	if s.online() {
		f, err := s.remote.SubmitFeedback(ctx, id, dto.FeedbackRequest{Rating: rating, Comment: comment})
		if err == nil {
			if i >= 0 {
				s.grievances[i].Feedbacks = append(s.grievances[i].Feedbacks, *f)
			}
			return *f, s.save(ctx, KeyGrievances, s.grievances)
		}
		if !s.fallback("add feedback", err) {
			return dto.Feedback{}, rejection(err)
		}
	}

	if i < 0 {
		return dto.Feedback{}, ErrNotFound
	}
	f := dto.Feedback{
		GrievanceID: id,
		Rating:      rating,
		Comment:     strings.TrimSpace(comment),
		GivenBy:     s.user.ID,
		GivenByName: s.user.Name,
		GivenAt:     s.now(),
	}
	s.grievances[i].Feedbacks = append(s.grievances[i].Feedbacks, f)
	return f, s.save(ctx, KeyGrievances, s.grievances)
}

// Refresh replaces the local caches with the backend's view. It is a no-op
// while offline.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.online() {
		return nil
	}

	grievances, err := s.remote.ListGrievances(ctx)
	if err != nil {
		if s.fallback("refresh grievances", err) {
			return nil
		}
		return rejection(err)
	}
	s.grievances = grievances
	if err := s.save(ctx, KeyGrievances, s.grievances); err != nil {
		return err
	}

	users, err := s.remote.ListUsers(ctx)
	if err != nil {
		if s.fallback("refresh users", err) {
			return nil
		}
		return rejection(err)
	}
	if len(users) > 0 {
		s.users = users
		return s.save(ctx, KeyRegisteredUsers, s.users)
	}
	return nil
}

func cloneGrievance(g dto.Grievance) dto.Grievance {
	g.Timeline = append([]lifecycle.TimelineEntry(nil), g.Timeline...)
	if g.Feedbacks != nil {
		g.Feedbacks = append([]dto.Feedback(nil), g.Feedbacks...)
	}
	return g
}

package services

import (
	"context"
	"sort"
	"time"

	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/app/repositories"
	"github.com/gradnexus/campusconnect/internal/db"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
	"github.com/gradnexus/campusconnect/internal/pkg/email"
)

// memDB is the shared state behind the in-memory stores. WithTransaction restores
// a snapshot when fn fails so tests can observe rollback.
type memDB struct {
	nextID int64

	users         map[int64]*models.User
	profiles      map[int64]*models.AlumniProfile
	types         []models.MentorshipType
	tokens        map[int64]string
	sessions      map[string]memSession
	events        map[int64]*models.Event
	registrations map[int64]map[int64]bool
	requests      map[int64]*models.MentorshipRequest
	requestTypes  map[int64][]int64
	activities    []*models.MentorshipActivity
	jobs          map[int64]*models.Job
	referrals     map[int64]*models.ReferralRequest

	failProfileCreate error
}

type memSession struct {
	userID    int64
	expiresAt time.Time
}

type memSnapshot struct {
	nextID   int64
	users    map[int64]*models.User
	profiles map[int64]*models.AlumniProfile
	requests map[int64]*models.MentorshipRequest
}

func newMemDB() *memDB {
	return &memDB{
		users:         map[int64]*models.User{},
		profiles:      map[int64]*models.AlumniProfile{},
		tokens:        map[int64]string{},
		sessions:      map[string]memSession{},
		events:        map[int64]*models.Event{},
		registrations: map[int64]map[int64]bool{},
		requests:      map[int64]*models.MentorshipRequest{},
		requestTypes:  map[int64][]int64{},
		jobs:          map[int64]*models.Job{},
		referrals:     map[int64]*models.ReferralRequest{},
		types: []models.MentorshipType{
			{ID: 1, Name: "Career Guidance"},
			{ID: 2, Name: "Resume Review"},
			{ID: 3, Name: "Mock Interview"},
		},
	}
}

func (m *memDB) id() int64 {
	m.nextID++
	return m.nextID
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (m *memDB) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	snap := memSnapshot{
		nextID:   m.nextID,
		users:    copyMap(m.users),
		profiles: copyMap(m.profiles),
		requests: copyMap(m.requests),
	}
	if err := fn(ctx); err != nil {
		m.nextID = snap.nextID
		m.users = snap.users
		m.profiles = snap.profiles
		m.requests = snap.requests
		return err
	}
	return nil
}

func (m *memDB) summary(userID int64) models.UserSummary {
	u := m.users[userID]
	if u == nil {
		return models.UserSummary{ID: userID}
	}
	return models.UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Degree:    u.Degree,
		Image:     u.Image,
	}
}

func (m *memDB) typesByID(ids []int64) []models.MentorshipType {
	out := []models.MentorshipType{}
	for _, id := range ids {
		for _, t := range m.types {
			if t.ID == id {
				out = append(out, t)
			}
		}
	}
	return out
}

func applyPatch[T any](dst **T, p models.Patch[T]) {
	if !p.Set {
		return
	}
	if p.Value == nil {
		*dst = nil
		return
	}
	v := *p.Value
	*dst = &v
}

func applyValue[T any](dst *T, p models.Patch[T]) {
	if p.Set && p.Value != nil {
		*dst = *p.Value
	}
}

type memUsers struct{ db *memDB }

func (s memUsers) duplicate(id int64, username, email string) error {
	for _, u := range s.db.users {
		if u.ID == id {
			continue
		}
		if u.Username == username {
			return apperrors.ErrUsernameTaken
		}
		if email != "" && u.Email == email {
			return apperrors.ErrEmailTaken
		}
	}
	return nil
}

func (s memUsers) Create(_ context.Context, user *models.User) error {
	if err := s.duplicate(0, user.Username, user.Email); err != nil {
		return err
	}
	user.ID = s.db.id()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	s.db.users[user.ID] = &stored
	return nil
}

func (s memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := s.db.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range s.db.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s memUsers) ListByRole(_ context.Context, role models.RoleType) ([]*models.User, error) {
	out := []*models.User{}
	for _, u := range s.db.users {
		if u.Role == role {
			c := *u
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s memUsers) Update(_ context.Context, id int64, upd models.UserUpdate) error {
	u, ok := s.db.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	c := *u
	applyValue(&c.FirstName, upd.FirstName)
	applyValue(&c.LastName, upd.LastName)
	applyValue(&c.Email, upd.Email)
	applyPatch(&c.Phone, upd.Phone)
	applyValue(&c.College, upd.College)
	applyValue(&c.Degree, upd.Degree)
	applyPatch(&c.BatchYear, upd.BatchYear)
	applyPatch(&c.Bio, upd.Bio)
	applyPatch(&c.Image, upd.Image)
	if err := s.duplicate(id, c.Username, c.Email); err != nil {
		return err
	}
	s.db.users[id] = &c
	return nil
}

func (s memUsers) Delete(_ context.Context, id int64) error {
	if _, ok := s.db.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(s.db.users, id)
	delete(s.db.profiles, id)
	return nil
}

type memProfiles struct{ db *memDB }

func (s memProfiles) Create(_ context.Context, profile *models.AlumniProfile) error {
	if s.db.failProfileCreate != nil {
		return s.db.failProfileCreate
	}
	profile.ID = s.db.id()
	stored := *profile
	s.db.profiles[profile.UserID] = &stored
	return nil
}

func (s memProfiles) GetByUserID(_ context.Context, userID int64) (*models.AlumniProfile, error) {
	p, ok := s.db.profiles[userID]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	out := *p
	if out.AvailableFor == nil {
		out.AvailableFor = []models.MentorshipType{}
	}
	return &out, nil
}

func (s memProfiles) ListByUserIDs(ctx context.Context, userIDs []int64) (map[int64]*models.AlumniProfile, error) {
	out := make(map[int64]*models.AlumniProfile, len(userIDs))
	for _, id := range userIDs {
		if p, err := s.GetByUserID(ctx, id); err == nil {
			out[id] = p
		}
	}
	return out, nil
}

func (s memProfiles) Update(_ context.Context, userID int64, upd models.AlumniProfileUpdate) error {
	p, ok := s.db.profiles[userID]
	if !ok {
		return apperrors.ErrProfileNotFound
	}
	c := *p
	applyPatch(&c.JobTitle, upd.JobTitle)
	applyPatch(&c.CurrentCompany, upd.CurrentCompany)
	applyPatch(&c.Industry, upd.Industry)
	applyPatch(&c.YearsOfExperience, upd.YearsOfExperience)
	applyPatch(&c.LinkedInURL, upd.LinkedInURL)
	applyValue(&c.WillingToMentor, upd.WillingToMentor)
	if upd.AvailableFor.Set && upd.AvailableFor.Value != nil {
		c.AvailableFor = s.db.typesByID(*upd.AvailableFor.Value)
	}
	s.db.profiles[userID] = &c
	return nil
}

type memTypes struct{ db *memDB }

func (s memTypes) List(_ context.Context) ([]models.MentorshipType, error) {
	return append([]models.MentorshipType{}, s.db.types...), nil
}

func (s memTypes) GetByID(_ context.Context, id int64) (*models.MentorshipType, error) {
	for _, t := range s.db.types {
		if t.ID == id {
			out := t
			return &out, nil
		}
	}
	return nil, apperrors.ErrMentorshipTypeNotFound
}

func (s memTypes) GetByIDs(_ context.Context, ids []int64) ([]models.MentorshipType, error) {
	return s.db.typesByID(ids), nil
}

func (s memTypes) EnsureExists(_ context.Context, names []string) (int64, error) {
	var added int64
	for _, name := range names {
		found := false
		for _, t := range s.db.types {
			if t.Name == name {
				found = true
				break
			}
		}
		if !found {
			s.db.types = append(s.db.types, models.MentorshipType{ID: s.db.id() + 100, Name: name})
			added++
		}
	}
	return added, nil
}

type memTokens struct{ db *memDB }

func (s memTokens) GetOrCreate(_ context.Context, userID int64, candidate string) (string, error) {
	if key, ok := s.db.tokens[userID]; ok {
		return key, nil
	}
	s.db.tokens[userID] = candidate
	return candidate, nil
}

func (s memTokens) GetUserIDByKey(_ context.Context, key string) (int64, error) {
	for userID, k := range s.db.tokens {
		if k == key {
			return userID, nil
		}
	}
	return 0, apperrors.ErrTokenInvalid
}

type memSessions struct{ db *memDB }

func (s memSessions) Create(_ context.Context, key string, userID int64, expiresAt time.Time) error {
	s.db.sessions[key] = memSession{userID: userID, expiresAt: expiresAt}
	return nil
}

func (s memSessions) GetUserID(_ context.Context, key string) (int64, error) {
	sess, ok := s.db.sessions[key]
	if !ok || time.Now().After(sess.expiresAt) {
		return 0, apperrors.ErrSessionExpired
	}
	return sess.userID, nil
}

func (s memSessions) Delete(_ context.Context, key string) error {
	delete(s.db.sessions, key)
	return nil
}

func (s memSessions) DeleteExpired(_ context.Context, userID int64) error {
	for key, sess := range s.db.sessions {
		if sess.userID == userID && time.Now().After(sess.expiresAt) {
			delete(s.db.sessions, key)
		}
	}
	return nil
}

type memEvents struct{ db *memDB }

func (s memEvents) view(e *models.Event, viewerID int64) *models.Event {
	out := *e
	out.OrganizerName = s.db.summary(e.OrganizerID).Username
	out.ParticipantsCount = len(s.db.registrations[e.ID])
	out.IsRegistered = s.db.registrations[e.ID][viewerID]
	return &out
}

func (s memEvents) List(_ context.Context, viewerID int64) ([]*models.Event, error) {
	out := []*models.Event{}
	for _, e := range s.db.events {
		out = append(out, s.view(e, viewerID))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s memEvents) GetByID(_ context.Context, id, viewerID int64) (*models.Event, error) {
	e, ok := s.db.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return s.view(e, viewerID), nil
}

func (s memEvents) Create(_ context.Context, event *models.Event) error {
	event.ID = s.db.id()
	event.CreatedAt = time.Now()
	stored := *event
	s.db.events[event.ID] = &stored
	return nil
}

func (s memEvents) Update(_ context.Context, event *models.Event) error {
	if _, ok := s.db.events[event.ID]; !ok {
		return apperrors.ErrEventNotFound
	}
	stored := *event
	s.db.events[event.ID] = &stored
	return nil
}

func (s memEvents) Delete(_ context.Context, id int64) error {
	delete(s.db.events, id)
	delete(s.db.registrations, id)
	return nil
}

func (s memEvents) ToggleRegistration(_ context.Context, eventID, userID int64) (bool, error) {
	regs := s.db.registrations[eventID]
	if regs == nil {
		regs = map[int64]bool{}
		s.db.registrations[eventID] = regs
	}
	if regs[userID] {
		delete(regs, userID)
		return false, nil
	}
	regs[userID] = true
	return true, nil
}

func (s memEvents) ListParticipants(_ context.Context, eventID int64) ([]models.UserSummary, error) {
	out := []models.UserSummary{}
	for userID := range s.db.registrations[eventID] {
		out = append(out, s.db.summary(userID))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memRequests struct{ db *memDB }

func (s memRequests) Create(_ context.Context, req *models.MentorshipRequest, typeIDs []int64) error {
	req.ID = s.db.id()
	req.RequestedAt = time.Now()
	req.UpdatedAt = req.RequestedAt
	stored := *req
	s.db.requests[req.ID] = &stored
	s.db.requestTypes[req.ID] = typeIDs
	return nil
}

func (s memRequests) GetByID(_ context.Context, id int64) (*models.MentorshipRequest, error) {
	r, ok := s.db.requests[id]
	if !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	out := *r
	student := s.db.summary(r.StudentID)
	alumni := s.db.summary(r.AlumniID)
	out.Student = &models.RequestParty{UserSummary: student}
	out.Alumni = &models.RequestParty{UserSummary: alumni}
	if p := s.db.profiles[r.AlumniID]; p != nil {
		out.Alumni.Company = p.CurrentCompany
		out.Alumni.JobTitle = p.JobTitle
	}
	out.MentorshipTypes = s.db.typesByID(s.db.requestTypes[id])
	return &out, nil
}

func (s memRequests) List(ctx context.Context, filter repositories.RequestFilter) ([]*models.MentorshipRequest, error) {
	out := []*models.MentorshipRequest{}
	for id, r := range s.db.requests {
		if filter.StudentID != 0 && r.StudentID != filter.StudentID {
			continue
		}
		if filter.AlumniID != 0 && r.AlumniID != filter.AlumniID {
			continue
		}
		loaded, _ := s.GetByID(ctx, id)
		out = append(out, loaded)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s memRequests) UpdateStatusIfPending(_ context.Context, id int64, status models.RequestStatus) (bool, error) {
	r, ok := s.db.requests[id]
	if !ok || r.Status != models.RequestPending {
		return false, nil
	}
	c := *r
	c.Status = status
	s.db.requests[id] = &c
	return true, nil
}

func (s memRequests) StatusCounts(_ context.Context, alumniID int64) (*models.RequestStatusCounts, error) {
	counts := &models.RequestStatusCounts{}
	students := map[int64]bool{}
	for _, r := range s.db.requests {
		if r.AlumniID != alumniID {
			continue
		}
		if r.Status != models.RequestCancelled {
			counts.NonCancelled++
		}
		if r.Status == models.RequestAccepted {
			counts.Accepted++
			students[r.StudentID] = true
		}
	}
	counts.DistinctAcceptedStudents = len(students)
	for _, a := range s.db.activities {
		r := s.db.requests[a.MentorshipRequestID]
		if r != nil && r.AlumniID == alumniID && a.Status == models.ActivityCompleted {
			counts.CompletedActivities++
		}
	}
	return counts, nil
}

type memActivities struct{ db *memDB }

func (s memActivities) Create(_ context.Context, activity *models.MentorshipActivity) error {
	if _, ok := s.db.requests[activity.MentorshipRequestID]; !ok {
		return apperrors.ErrRequestNotFound
	}
	activity.ID = s.db.id()
	activity.CreatedAt = time.Now()
	activity.UpdatedAt = activity.CreatedAt
	stored := *activity
	s.db.activities = append(s.db.activities, &stored)
	return nil
}

func (s memActivities) List(_ context.Context, filter repositories.ActivityFilter) ([]*models.MentorshipActivity, error) {
	out := []*models.MentorshipActivity{}
	for _, a := range s.db.activities {
		r := s.db.requests[a.MentorshipRequestID]
		if r == nil || !r.IsParty(filter.ParticipantID) {
			continue
		}
		if filter.RequestID != 0 && a.MentorshipRequestID != filter.RequestID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		c := *a
		out = append(out, &c)
	}
	return out, nil
}

type memJobs struct{ db *memDB }

func (s memJobs) List(_ context.Context, postedBy int64) ([]*models.Job, error) {
	out := []*models.Job{}
	for _, j := range s.db.jobs {
		if postedBy != 0 && j.PostedBy != postedBy {
			continue
		}
		c := *j
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s memJobs) GetByID(_ context.Context, id int64) (*models.Job, error) {
	j, ok := s.db.jobs[id]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}
	out := *j
	poster := s.db.summary(j.PostedBy)
	out.PostedByName = poster.Username
	out.PostedByFullName = poster.FullName()
	return &out, nil
}

func (s memJobs) Create(_ context.Context, job *models.Job) error {
	job.ID = s.db.id()
	job.PostedAt = time.Now()
	stored := *job
	s.db.jobs[job.ID] = &stored
	return nil
}

func (s memJobs) Update(_ context.Context, job *models.Job) error {
	existing, ok := s.db.jobs[job.ID]
	if !ok {
		return apperrors.ErrJobNotFound
	}
	stored := *job
	stored.PostedAt = existing.PostedAt
	s.db.jobs[job.ID] = &stored
	return nil
}

func (s memJobs) Delete(_ context.Context, id int64) error {
	delete(s.db.jobs, id)
	for rid, rr := range s.db.referrals {
		if rr.JobID == id {
			delete(s.db.referrals, rid)
		}
	}
	return nil
}

type memReferrals struct{ db *memDB }

func (s memReferrals) Create(_ context.Context, rr *models.ReferralRequest) error {
	rr.ID = s.db.id()
	rr.RequestedAt = time.Now()
	stored := *rr
	s.db.referrals[rr.ID] = &stored
	return nil
}

func (s memReferrals) GetByID(_ context.Context, id int64) (*models.ReferralRequest, error) {
	rr, ok := s.db.referrals[id]
	if !ok {
		return nil, apperrors.ErrReferralNotFound
	}
	out := *rr
	student := s.db.summary(rr.StudentID)
	out.StudentName = student.Username
	out.StudentFullName = student.FullName()
	if j := s.db.jobs[rr.JobID]; j != nil {
		out.JobTitle = j.Title
		out.Company = j.Company
		out.JobPostedBy = j.PostedBy
	}
	return &out, nil
}

func (s memReferrals) List(ctx context.Context, filter repositories.ReferralFilter) ([]*models.ReferralRequest, error) {
	out := []*models.ReferralRequest{}
	for id := range s.db.referrals {
		rr, _ := s.GetByID(ctx, id)
		if filter.StudentID != 0 && rr.StudentID != filter.StudentID {
			continue
		}
		if filter.PosterID != 0 && rr.JobPostedBy != filter.PosterID {
			continue
		}
		out = append(out, rr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s memReferrals) UpdateStatus(_ context.Context, id int64, status models.ReferralStatus) error {
	rr, ok := s.db.referrals[id]
	if !ok {
		return apperrors.ErrReferralNotFound
	}
	c := *rr
	c.Status = status
	s.db.referrals[id] = &c
	return nil
}

// memQueue records enqueued mail; reject simulates a full queue.
type memQueue struct {
	sent   []email.Message
	reject bool
}

func (q *memQueue) Enqueue(msg email.Message) bool {
	if q.reject {
		return false
	}
	q.sent = append(q.sent, msg)
	return true
}

package services

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/Tanjim-Noor/hands-on-volunteering-platform/models"
	"github.com/Tanjim-Noor/hands-on-volunteering-platform/repositories"
	"github.com/Tanjim-Noor/hands-on-volunteering-platform/storage"
)

// In-memory repository fakes backing the service tests. They mirror
// the constraint behavior of the Postgres implementations: sentinel
// errors for missing rows and conflicts, case-insensitive invite
// matching, and invite consumption on private joins.

type fakeUserRepo struct {
	nextID int
	users  map[int]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	stored := *user
	r.users[stored.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateAvatarKey(_ context.Context, id int, avatarKey *string) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.AvatarKey = avatarKey
	return nil
}

type fakeEventRepo struct {
	nextID    int
	events    map[int]*models.VolunteerEvent
	attendees map[int][]int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		nextID:    1,
		events:    make(map[int]*models.VolunteerEvent),
		attendees: make(map[int][]int),
	}
}

func (r *fakeEventRepo) Create(_ context.Context, _ repositories.SQLExecutor, event *models.VolunteerEvent) error {
	event.ID = r.nextID
	event.CreatedAt = time.Now()
	r.nextID++
	stored := *event
	r.events[stored.ID] = &stored
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int) (*models.VolunteerEvent, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, repositories.ErrEventNotFound
	}
	copied := *event
	copied.Attendees = nil
	for _, userID := range r.attendees[id] {
		copied.Attendees = append(copied.Attendees, models.UserSummary{ID: userID})
	}
	return &copied, nil
}

func (r *fakeEventRepo) List(_ context.Context, filter models.EventFilter) ([]*models.VolunteerEvent, error) {
	var out []*models.VolunteerEvent
	for id := 1; id < r.nextID; id++ {
		event, ok := r.events[id]
		if !ok {
			continue
		}
		if filter.Category != "" && event.Category != filter.Category {
			continue
		}
		if filter.Location != "" && event.Location != filter.Location {
			continue
		}
		if filter.DateFrom != nil && event.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && event.Date.After(*filter.DateTo) {
			continue
		}
		copied := *event
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeEventRepo) AddAttendee(_ context.Context, eventID, userID int) error {
	if _, ok := r.events[eventID]; !ok {
		return repositories.ErrEventNotFound
	}
	for _, existing := range r.attendees[eventID] {
		if existing == userID {
			return repositories.ErrEventAttendeeConflict
		}
	}
	r.attendees[eventID] = append(r.attendees[eventID], userID)
	return nil
}

func (r *fakeEventRepo) ListByCreator(_ context.Context, userID int) ([]models.VolunteerEvent, error) {
	var out []models.VolunteerEvent
	for id := 1; id < r.nextID; id++ {
		if event, ok := r.events[id]; ok && event.CreatedByID == userID {
			out = append(out, *event)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListByAttendee(_ context.Context, userID int) ([]models.VolunteerEvent, error) {
	var out []models.VolunteerEvent
	for id := 1; id < r.nextID; id++ {
		event, ok := r.events[id]
		if !ok {
			continue
		}
		for _, attendee := range r.attendees[id] {
			if attendee == userID {
				out = append(out, *event)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListByTeamID(_ context.Context, teamID int) ([]models.VolunteerEvent, error) {
	var out []models.VolunteerEvent
	for id := 1; id < r.nextID; id++ {
		if event, ok := r.events[id]; ok && event.TeamID != nil && *event.TeamID == teamID {
			out = append(out, *event)
		}
	}
	return out, nil
}

type fakeTeamRepo struct {
	nextID  int
	teams   map[int]*models.Team
	members map[int][]int
	invites map[int][]string
	events  *fakeEventRepo
}

func newFakeTeamRepo(events *fakeEventRepo) *fakeTeamRepo {
	return &fakeTeamRepo{
		nextID:  1,
		teams:   make(map[int]*models.Team),
		members: make(map[int][]int),
		invites: make(map[int][]string),
		events:  events,
	}
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team, creatorID int, inviteEmails []string) error {
	team.ID = r.nextID
	team.CreatedAt = time.Now()
	r.nextID++
	stored := *team
	r.teams[stored.ID] = &stored
	r.members[stored.ID] = []int{creatorID}
	r.invites[stored.ID] = append([]string(nil), inviteEmails...)
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (r *fakeTeamRepo) GetWithDetails(ctx context.Context, id int) (*models.Team, error) {
	team, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, userID := range r.members[id] {
		team.Members = append(team.Members, models.UserSummary{ID: userID})
	}
	if r.events != nil {
		team.Events, _ = r.events.ListByTeamID(ctx, id)
	}
	for i, email := range r.invites[id] {
		team.Invites = append(team.Invites, models.TeamInvite{ID: i + 1, TeamID: id, Email: email})
	}
	return team, nil
}

func (r *fakeTeamRepo) IsMember(_ context.Context, teamID, userID int) (bool, error) {
	for _, member := range r.members[teamID] {
		if member == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTeamRepo) AddMember(_ context.Context, teamID, userID int) error {
	if _, ok := r.teams[teamID]; !ok {
		return repositories.ErrTeamNotFound
	}
	for _, member := range r.members[teamID] {
		if member == userID {
			return repositories.ErrTeamMemberConflict
		}
	}
	r.members[teamID] = append(r.members[teamID], userID)
	return nil
}

func (r *fakeTeamRepo) AddMemberConsumingInvite(ctx context.Context, teamID, userID int, email string) error {
	if err := r.AddMember(ctx, teamID, userID); err != nil {
		return err
	}
	var kept []string
	for _, invite := range r.invites[teamID] {
		if !strings.EqualFold(invite, email) {
			kept = append(kept, invite)
		}
	}
	r.invites[teamID] = kept
	return nil
}

func (r *fakeTeamRepo) HasInviteForEmail(_ context.Context, teamID int, email string) (bool, error) {
	for _, invite := range r.invites[teamID] {
		if strings.EqualFold(invite, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTeamRepo) ReplaceInvites(_ context.Context, teamID int, emails []string) error {
	if _, ok := r.teams[teamID]; !ok {
		return repositories.ErrTeamNotFound
	}
	r.invites[teamID] = append([]string(nil), emails...)
	return nil
}

func (r *fakeTeamRepo) ListInvites(_ context.Context, teamID int) ([]models.TeamInvite, error) {
	var out []models.TeamInvite
	for i, email := range r.invites[teamID] {
		out = append(out, models.TeamInvite{ID: i + 1, TeamID: teamID, Email: email})
	}
	return out, nil
}

func (r *fakeTeamRepo) ListByMember(ctx context.Context, userID int) ([]*models.Team, error) {
	var out []*models.Team
	for id := 1; id < r.nextID; id++ {
		if isMember, _ := r.IsMember(ctx, id, userID); isMember {
			copied := *r.teams[id]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) ListByNonMember(ctx context.Context, userID int) ([]*models.Team, error) {
	var out []*models.Team
	for id := 1; id < r.nextID; id++ {
		if _, ok := r.teams[id]; !ok {
			continue
		}
		if isMember, _ := r.IsMember(ctx, id, userID); !isMember {
			copied := *r.teams[id]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) UpdateLogoKey(_ context.Context, id int, logoKey *string) error {
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.LogoKey = logoKey
	return nil
}

type fakeRequestRepo struct {
	nextID   int
	requests map[int]*models.CommunityRequest
	comments map[int][]models.Comment
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		nextID:   1,
		requests: make(map[int]*models.CommunityRequest),
		comments: make(map[int][]models.Comment),
	}
}

func (r *fakeRequestRepo) Create(_ context.Context, request *models.CommunityRequest) error {
	request.ID = r.nextID
	request.CreatedAt = time.Now()
	r.nextID++
	stored := *request
	r.requests[stored.ID] = &stored
	return nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id int) (*models.CommunityRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, repositories.ErrRequestNotFound
	}
	copied := *request
	copied.Comments = append([]models.Comment(nil), r.comments[id]...)
	return &copied, nil
}

func (r *fakeRequestRepo) List(_ context.Context) ([]*models.CommunityRequest, error) {
	var out []*models.CommunityRequest
	for id := r.nextID - 1; id >= 1; id-- {
		if request, ok := r.requests[id]; ok {
			copied := *request
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	if _, ok := r.requests[comment.RequestID]; !ok {
		return repositories.ErrRequestNotFound
	}
	comment.ID = len(r.comments[comment.RequestID]) + 1
	comment.CreatedAt = time.Now()
	r.comments[comment.RequestID] = append(r.comments[comment.RequestID], *comment)
	return nil
}

type fakeUploader struct {
	uploads map[string][]byte
	deleted []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploads: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, reader io.Reader) (*storage.UploadResult, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, err
	}
	u.uploads[key] = buf.Bytes()
	return &storage.UploadResult{Key: key, Location: "https://cdn.test/" + key}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	delete(u.uploads, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

type recordedActivity struct {
	teamID  int
	kind    string
	payload interface{}
}

type fakeBroadcaster struct {
	activities []recordedActivity
}

func (b *fakeBroadcaster) TeamActivity(teamID int, kind string, payload interface{}) {
	b.activities = append(b.activities, recordedActivity{teamID: teamID, kind: kind, payload: payload})
}

package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type teamFixture struct {
	users       *fakeUserRepo
	events      *fakeEventRepo
	teams       *fakeTeamRepo
	uploader    *fakeUploader
	broadcaster *fakeBroadcaster
	svc         TeamService
}

func newTeamFixture(t *testing.T) *teamFixture {
	t.Helper()
	users := newFakeUserRepo()
	events := newFakeEventRepo()
	teams := newFakeTeamRepo(events)
	uploader := newFakeUploader()
	broadcaster := &fakeBroadcaster{}
	return &teamFixture{
		users:       users,
		events:      events,
		teams:       teams,
		uploader:    uploader,
		broadcaster: broadcaster,
		svc:         NewTeamService(teams, users, events, uploader, broadcaster),
	}
}

func (f *teamFixture) addUser(t *testing.T, email string) int {
	t.Helper()
	created, err := NewAuthService(f.users).Register(context.Background(), RegisterInput{
		Email:    email,
		Password: "password",
		Name:     strings.SplitN(email, "@", 2)[0],
	})
	require.NoError(t, err)
	return created.ID
}

func TestTeamService_Create_PublicDiscardsInvites(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "alice@example.com")

	team, err := f.svc.Create(ctx, creator, CreateTeamInput{
		Name:      "City Cleaners",
		IsPrivate: false,
		Invites:   []string{"eve@example.com"},
	})
	require.NoError(t, err)
	require.False(t, team.IsPrivate)
	require.Empty(t, team.Invites, "public team must not keep invites")
	require.Len(t, team.Members, 1, "creator becomes the first member")
	require.Equal(t, creator, team.Members[0].ID)
}

func TestTeamService_Create_PrivateKeepsInvites(t *testing.T) {
	f := newTeamFixture(t)
	creator := f.addUser(t, "charlie@example.com")

	team, err := f.svc.Create(context.Background(), creator, CreateTeamInput{
		Name:      "Green Warriors",
		IsPrivate: true,
		Invites:   []string{"eve@example.com", "frank@example.com"},
	})
	require.NoError(t, err)
	require.True(t, team.IsPrivate)
	require.Len(t, team.Invites, 2)
}

func TestTeamService_Create_NameRequired(t *testing.T) {
	f := newTeamFixture(t)

	_, err := f.svc.Create(context.Background(), 1, CreateTeamInput{Name: ""})
	require.ErrorIs(t, err, ErrTeamNameRequired)
}

func TestTeamService_Join_PublicOpen(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "alice@example.com")
	joiner := f.addUser(t, "bob@example.com")

	team, err := f.svc.Create(ctx, creator, CreateTeamInput{Name: "City Cleaners"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Join(ctx, team.ID, joiner))

	isMember, err := f.teams.IsMember(ctx, team.ID, joiner)
	require.NoError(t, err)
	require.True(t, isMember)

	require.Len(t, f.broadcaster.activities, 1)
	require.Equal(t, ActivityMemberJoined, f.broadcaster.activities[0].kind)
	require.Equal(t, team.ID, f.broadcaster.activities[0].teamID)
}

func TestTeamService_Join_PrivateInvitedCaseInsensitive(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "charlie@example.com")
	joiner := f.addUser(t, "EVE@EXAMPLE.COM")

	team, err := f.svc.Create(ctx, creator, CreateTeamInput{
		Name:      "Green Warriors",
		IsPrivate: true,
		Invites:   []string{"eve@example.com"},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Join(ctx, team.ID, joiner))

	isMember, err := f.teams.IsMember(ctx, team.ID, joiner)
	require.NoError(t, err)
	require.True(t, isMember)

	// Joining consumes every invite row matching the email.
	invited, err := f.teams.HasInviteForEmail(ctx, team.ID, "eve@example.com")
	require.NoError(t, err)
	require.False(t, invited)
}

func TestTeamService_Join_PrivateNotInvited(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "charlie@example.com")
	outsider := f.addUser(t, "mallory@example.com")

	team, err := f.svc.Create(ctx, creator, CreateTeamInput{
		Name:      "Green Warriors",
		IsPrivate: true,
		Invites:   []string{"eve@example.com"},
	})
	require.NoError(t, err)

	err = f.svc.Join(ctx, team.ID, outsider)
	require.ErrorIs(t, err, ErrNotInvited)

	isMember, err := f.teams.IsMember(ctx, team.ID, outsider)
	require.NoError(t, err)
	require.False(t, isMember)
}

func TestTeamService_Join_AlreadyMember(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "alice@example.com")

	team, err := f.svc.Create(ctx, creator, CreateTeamInput{Name: "City Cleaners"})
	require.NoError(t, err)

	err = f.svc.Join(ctx, team.ID, creator)
	require.ErrorIs(t, err, ErrAlreadyTeamMember)
}

func TestTeamService_Join_UnknownTeam(t *testing.T) {
	f := newTeamFixture(t)
	joiner := f.addUser(t, "bob@example.com")

	err := f.svc.Join(context.Background(), 99, joiner)
	require.ErrorIs(t, err, ErrTeamNotFound)
}

func TestTeamService_UpdateInvites_ReplacesList(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "charlie@example.com")

	team, err := f.svc.Create(ctx, creator, CreateTeamInput{
		Name:      "Green Warriors",
		IsPrivate: true,
		Invites:   []string{"eve@example.com", "frank@example.com"},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateInvites(ctx, team.ID, creator, []string{"grace@example.com"}))

	invites, err := f.teams.ListInvites(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, invites, 1)
	require.Equal(t, "grace@example.com", invites[0].Email)
}

func TestTeamService_UpdateInvites_MemberOnly(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "charlie@example.com")
	outsider := f.addUser(t, "mallory@example.com")

	team, err := f.svc.Create(ctx, creator, CreateTeamInput{Name: "Green Warriors", IsPrivate: true})
	require.NoError(t, err)

	err = f.svc.UpdateInvites(ctx, team.ID, outsider, []string{"x@example.com"})
	require.ErrorIs(t, err, ErrNotTeamMember)

	err = f.svc.UpdateInvites(ctx, 99, creator, []string{"x@example.com"})
	require.ErrorIs(t, err, ErrTeamNotFound)
}

func TestTeamService_Dashboard(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "alice@example.com")
	outsider := f.addUser(t, "mallory@example.com")

	team, err := f.svc.Create(ctx, creator, CreateTeamInput{Name: "City Cleaners"})
	require.NoError(t, err)

	date := time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC)
	_, err = f.svc.CreateTeamEvent(ctx, team.ID, creator, CreateEventInput{
		Title:    "Spring Cleanup",
		Date:     &date,
		Location: "Central Park",
		Category: "Environment",
	})
	require.NoError(t, err)

	dashboard, err := f.svc.Dashboard(ctx, team.ID, creator)
	require.NoError(t, err)
	require.Len(t, dashboard.Members, 1)
	require.Len(t, dashboard.Events, 1)
	require.Equal(t, "Spring Cleanup", dashboard.Events[0].Title)

	_, err = f.svc.Dashboard(ctx, team.ID, outsider)
	require.ErrorIs(t, err, ErrNotTeamMember)
}

func TestTeamService_CreateTeamEvent(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "alice@example.com")
	outsider := f.addUser(t, "mallory@example.com")

	team, err := f.svc.Create(ctx, creator, CreateTeamInput{Name: "City Cleaners"})
	require.NoError(t, err)

	date := time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC)
	input := CreateEventInput{Title: "Spring Cleanup", Date: &date, Location: "Central Park", Category: "Environment"}

	event, err := f.svc.CreateTeamEvent(ctx, team.ID, creator, input)
	require.NoError(t, err)
	require.NotNil(t, event.TeamID)
	require.Equal(t, team.ID, *event.TeamID)
	require.Equal(t, creator, event.CreatedByID)

	last := f.broadcaster.activities[len(f.broadcaster.activities)-1]
	require.Equal(t, ActivityEventCreated, last.kind)

	_, err = f.svc.CreateTeamEvent(ctx, team.ID, outsider, input)
	require.ErrorIs(t, err, ErrNotTeamMember)

	_, err = f.svc.CreateTeamEvent(ctx, team.ID, creator, CreateEventInput{Title: ""})
	require.ErrorIs(t, err, ErrEventFieldsRequired)
}

func TestTeamService_ListMineAndAvailable(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice@example.com")
	bob := f.addUser(t, "bob@example.com")

	mine, err := f.svc.Create(ctx, alice, CreateTeamInput{Name: "City Cleaners"})
	require.NoError(t, err)
	other, err := f.svc.Create(ctx, bob, CreateTeamInput{Name: "Green Warriors", IsPrivate: true})
	require.NoError(t, err)

	myTeams, err := f.svc.ListMine(ctx, alice)
	require.NoError(t, err)
	require.Len(t, myTeams, 1)
	require.Equal(t, mine.ID, myTeams[0].ID)

	// Private teams the user is not a member of still show up as
	// available; the invite gate applies at join time.
	available, err := f.svc.ListAvailable(ctx, alice)
	require.NoError(t, err)
	require.Len(t, available, 1)
	require.Equal(t, other.ID, available[0].ID)
}

func TestTeamService_UploadLogo(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "alice@example.com")

	team, err := f.svc.Create(ctx, creator, CreateTeamInput{Name: "City Cleaners"})
	require.NoError(t, err)

	location, err := f.svc.UploadLogo(ctx, team.ID, creator, "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Contains(t, location, "logos/team_")

	_, err = f.svc.UploadLogo(ctx, team.ID, creator, "text/plain", strings.NewReader("nope"))
	require.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestTeamService_UploadLogo_NotConfigured(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "alice@example.com")

	svc := NewTeamService(f.teams, f.users, f.events, nil, nil)
	team, err := svc.Create(ctx, creator, CreateTeamInput{Name: "City Cleaners"})
	require.NoError(t, err)

	_, err = svc.UploadLogo(ctx, team.ID, creator, "image/png", strings.NewReader("png-bytes"))
	require.ErrorIs(t, err, ErrUploadsNotConfigured)
}

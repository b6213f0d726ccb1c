// Command seed resets the database and loads the development fixture:
// four users, their volunteer events, community requests with comments,
// one public and one private team, and impact logs.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/Tanjim-Noor/hands-on-volunteering-platform/config"
	"github.com/Tanjim-Noor/hands-on-volunteering-platform/db"
	"github.com/Tanjim-Noor/hands-on-volunteering-platform/models"
	"github.com/Tanjim-Noor/hands-on-volunteering-platform/repositories"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := db.RunMigrations(dbConn); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()
	if err := run(ctx, dbConn, logger); err != nil {
		logger.Error("seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("seeding complete")
}

func run(ctx context.Context, dbConn *sql.DB, logger *slog.Logger) error {
	// Order matters for the foreign keys.
	tables := []string{
		"comments",
		"community_requests",
		"impact_logs",
		"team_invites",
		"team_members",
		"event_attendees",
		"volunteer_events",
		"teams",
		"users",
	}
	for _, table := range tables {
		if _, err := dbConn.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	logger.Info("existing data cleared")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	requestRepo := repositories.NewPostgresRequestRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	impactRepo := repositories.NewPostgresImpactLogRepository(dbConn)

	users := map[string]*models.User{}
	for _, u := range []struct {
		email, password, name, skills, causes string
	}{
		{"alice@example.com", "alice123", "Alice Wonderland", "communication, organizing", "environment, education"},
		{"bob@example.com", "bob123", "Bob Builder", "engineering, carpentry", "community, housing"},
		{"charlie@example.com", "charlie123", "Charlie Chaplin", "entertainment, leadership", "culture, arts"},
		{"diana@example.com", "diana123", "Diana Prince", "strategy, management", "healthcare, education"},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &models.User{
			Email:        u.email,
			PasswordHash: string(hash),
			Name:         u.name,
			Skills:       u.skills,
			Causes:       u.causes,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		users[u.email] = user
	}
	logger.Info("users created", slog.Int("count", len(users)))

	for _, e := range []struct {
		title, description, date, location, category, creator string
	}{
		{"Alice's Park Cleanup", "Join Alice to clean up the local park.", "2023-10-01T09:00:00Z", "Alice Park", "Environment", "alice@example.com"},
		{"Alice's Food Drive", "Help Alice organize a food drive at the community center.", "2023-10-03T11:00:00Z", "Community Center", "Social", "alice@example.com"},
		{"Bob's Construction Volunteer Day", "Volunteer with Bob on a community construction project.", "2023-10-05T08:00:00Z", "Downtown", "Housing", "bob@example.com"},
		{"Bob's Carpentry Workshop", "Join Bob's workshop to learn carpentry and help build community structures.", "2023-10-07T14:00:00Z", "Workshop Studio", "Education", "bob@example.com"},
		{"Charlie's Charity Theater", "An evening of charity theater organized by Charlie.", "2023-10-09T19:00:00Z", "Community Theater", "Culture", "charlie@example.com"},
		{"Charlie's Art and Music Festival", "Volunteer to organize an art and music festival.", "2023-10-11T12:00:00Z", "City Arena", "Arts", "charlie@example.com"},
	} {
		date, err := time.Parse(time.RFC3339, e.date)
		if err != nil {
			return err
		}
		description := e.description
		event := &models.VolunteerEvent{
			Title:       e.title,
			Description: &description,
			Date:        date,
			Location:    e.location,
			Category:    e.category,
			CreatedByID: users[e.creator].ID,
		}
		if err := eventRepo.Create(ctx, nil, event); err != nil {
			return err
		}
	}

	clothingDesc := "We need volunteers to help distribute winter clothing to the homeless."
	tutoringDesc := "Looking for volunteers to help tutor high school students in math."
	clothing := &models.CommunityRequest{
		Title:       "Need Volunteers for Winter Clothing Distribution",
		Description: &clothingDesc,
		Urgency:     models.UrgencyUrgent,
		CreatedByID: users["diana@example.com"].ID,
	}
	tutoring := &models.CommunityRequest{
		Title:       "Tutoring Program",
		Description: &tutoringDesc,
		Urgency:     models.UrgencyMedium,
		CreatedByID: users["alice@example.com"].ID,
	}
	for _, request := range []*models.CommunityRequest{clothing, tutoring} {
		if err := requestRepo.Create(ctx, request); err != nil {
			return err
		}
	}

	for _, c := range []struct {
		text    string
		author  string
		request *models.CommunityRequest
	}{
		{"I can volunteer this weekend.", "bob@example.com", clothing},
		{"I have experience tutoring math, count me in!", "charlie@example.com", tutoring},
		{"Please provide more details on the pickup location.", "diana@example.com", clothing},
	} {
		comment := &models.Comment{
			Text:      c.text,
			RequestID: c.request.ID,
			AuthorID:  users[c.author].ID,
		}
		if err := requestRepo.CreateComment(ctx, comment); err != nil {
			return err
		}
	}

	cleanersDesc := "A public team for community cleaning projects."
	publicTeam := &models.Team{
		Name:        "City Cleaners",
		Description: &cleanersDesc,
		IsPrivate:   false,
	}
	if err := teamRepo.Create(ctx, publicTeam, users["alice@example.com"].ID, nil); err != nil {
		return err
	}
	if err := teamRepo.AddMember(ctx, publicTeam.ID, users["bob@example.com"].ID); err != nil {
		return err
	}

	warriorsDesc := "A private team dedicated to environmental initiatives."
	privateTeam := &models.Team{
		Name:        "Green Warriors",
		Description: &warriorsDesc,
		IsPrivate:   true,
	}
	invites := []string{"eve@example.com", "frank@example.com"}
	if err := teamRepo.Create(ctx, privateTeam, users["charlie@example.com"].ID, invites); err != nil {
		return err
	}
	if err := teamRepo.AddMember(ctx, privateTeam.ID, users["diana@example.com"].ID); err != nil {
		return err
	}

	springDesc := "Join the City Cleaners team for a spring park cleanup."
	springDate, err := time.Parse(time.RFC3339, "2023-11-01T10:00:00Z")
	if err != nil {
		return err
	}
	teamEvent := &models.VolunteerEvent{
		Title:       "City Cleaners Spring Cleanup",
		Description: &springDesc,
		Date:        springDate,
		Location:    "Central Park",
		Category:    "Environment",
		CreatedByID: users["alice@example.com"].ID,
		TeamID:      &publicTeam.ID,
	}
	if err := eventRepo.Create(ctx, nil, teamEvent); err != nil {
		return err
	}

	for _, l := range []struct {
		email    string
		hours    float64
		verified bool
	}{
		{"alice@example.com", 5, true},
		{"bob@example.com", 8, true},
		{"charlie@example.com", 3, false},
		{"diana@example.com", 10, true},
	} {
		log := &models.ImpactLog{
			UserID:         users[l.email].ID,
			VolunteerHours: l.hours,
			Verified:       l.verified,
		}
		if err := impactRepo.Create(ctx, log); err != nil {
			return err
		}
	}

	return nil
}

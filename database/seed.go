package database

import (
	"context"
	"time"

	"github.com/rpupo63/hackathon-platform-backend/auth"
	"github.com/rpupo63/hackathon-platform-backend/models"
	"github.com/rs/zerolog/log"
)

type seedUser struct {
	email, username, password, fullName string
	role                                 models.UserRole
}

var seedUsers = []seedUser{
	{"admin@hackathon.com", "admin", "admin123", "Super Admin", models.RoleSuperadmin},
	{"organizer@hackathon.com", "organizer", "organizer123", "Event Organizer", models.RoleOrganizer},
}

// SeedSampleData inserts a superadmin, an organizer and three upcoming
// hackathons owned by the organizer. It does nothing once any user exists and
// reports whether it inserted anything.
func SeedSampleData(ctx context.Context, d Database, now time.Time) (bool, error) {
	existing, err := d.UserRepo().Count(ctx, "")
	if err != nil {
		return false, err
	}
	if existing > 0 {
		log.Info().Int64("users", existing).Msg("users already present, skipping sample data")
		return false, nil
	}

	err = d.Transaction(ctx, func(tx Database) error {
		var organizer *models.User
		for _, s := range seedUsers {
			hashed, err := auth.HashPassword(s.password)
			if err != nil {
				return err
			}
			user := &models.User{
				Email:            s.email,
				Username:         s.username,
				HashedPassword:   hashed,
				FullName:         s.fullName,
				Role:             s.role,
				IsActive:         true,
				RegistrationDate: now,
			}
			if err := tx.UserRepo().Add(ctx, user); err != nil {
				return err
			}
			if s.role == models.RoleOrganizer {
				organizer = user
			}
		}

		for _, h := range sampleHackathons(now) {
			h.OrganizerID = organizer.ID
			if err := tx.HackathonRepo().Add(ctx, h); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Info().Msg("sample data created: admin@hackathon.com / admin123, organizer@hackathon.com / organizer123")
	return true, nil
}

func sampleHackathons(now time.Time) []*models.Hackathon {
	day := 24 * time.Hour
	at := func(days int) time.Time { return now.Add(time.Duration(days) * day) }
	at1, at5, at10 := at(1), at(5), at(10)
	at25, at40, at55 := at(25), at(40), at(55)
	hybrid, online, offline := models.HackathonHybrid, models.HackathonOnline, models.HackathonOffline

	return []*models.Hackathon{
		{
			Name:                   "AI Innovation Challenge 2025",
			Description:            "Join us for an exciting 48-hour hackathon focused on AI and machine learning innovations. Build the next generation of AI applications that can solve real-world problems.",
			Type:                   &hybrid,
			Theme:                  strPtr("Artificial Intelligence & Machine Learning"),
			Location:               strPtr("Tech Hub, San Francisco"),
			Timezone:               "UTC",
			StartDate:              at(30),
			EndDate:                at(32),
			ApplicationOpen:        at1,
			ApplicationClose:       at25,
			ApplicationStartDate:   &at1,
			ApplicationEndDate:     &at25,
			PrizePool:              "$50,000 in prizes: $25,000 First Place, $15,000 Second Place, $10,000 Third Place",
			Rules:                  "Teams of 2-6 members. Open source solutions preferred. No pre-existing code allowed.",
			Eligibility:            strPtr("Open to all developers, students, and professionals"),
			MinTeamSize:            2,
			MaxTeamSize:            6,
			SubmissionRequirements: "Working prototype, presentation deck, source code repository",
			EvaluationCriteria:     strPtr("Innovation, Technical Implementation, Business Impact, Presentation"),
			CommunicationChannels:  "Discord server will be provided",
			Sponsors:               strPtr("TechCorp, AI Ventures, Cloud Solutions Inc."),
			Status:                 models.HackathonUpcoming,
			IsFeatured:             true,
			LandingPageType:        models.LandingTemplate,
			LandingColorScheme:     "#2196F3",
			HasSponsors:            true,
			SponsorsData:           strPtr(`[{"name": "TechCorp", "logo": ""}, {"name": "AI Ventures", "logo": ""}, {"name": "Cloud Solutions Inc.", "logo": ""}]`),
		},
		{
			Name:                   "Green Tech Sustainability Hack",
			Description:            "Create innovative solutions to tackle climate change and environmental challenges. Focus on renewable energy, waste management, and sustainable living.",
			Type:                   &online,
			Theme:                  strPtr("Environmental Sustainability"),
			Location:               strPtr("Virtual Event"),
			Timezone:               "UTC",
			StartDate:              at(45),
			EndDate:                at(47),
			ApplicationOpen:        at5,
			ApplicationClose:       at40,
			ApplicationStartDate:   &at5,
			ApplicationEndDate:     &at40,
			PrizePool:              "$30,000 total prizes plus mentorship opportunities",
			Rules:                  "Individual or team participation. Focus on environmental impact.",
			Eligibility:            strPtr("Students and professionals in tech, environmental science, and related fields"),
			MinTeamSize:            1,
			MaxTeamSize:            4,
			SubmissionRequirements: "Project demo, impact analysis, technical documentation",
			EvaluationCriteria:     strPtr("Environmental Impact, Feasibility, Innovation, Scalability"),
			CommunicationChannels:  "Slack workspace and virtual meetups",
			Sponsors:               strPtr("GreenTech Foundation, EcoVentures"),
			Status:                 models.HackathonUpcoming,
			LandingPageType:        models.LandingTemplate,
			LandingColorScheme:     "#4CAF50",
			HasSponsors:            true,
			SponsorsData:           strPtr(`[{"name": "GreenTech Foundation", "logo": ""}, {"name": "EcoVentures", "logo": ""}]`),
		},
		{
			Name:                   "FinTech Revolution",
			Description:            "Revolutionize the financial industry with cutting-edge technology solutions. Focus on blockchain, digital payments, and financial inclusion.",
			Type:                   &offline,
			Theme:                  strPtr("Financial Technology"),
			Location:               strPtr("Financial District, New York"),
			Timezone:               "UTC",
			StartDate:              at(60),
			EndDate:                at(62),
			ApplicationOpen:        at10,
			ApplicationClose:       at55,
			ApplicationStartDate:   &at10,
			ApplicationEndDate:     &at55,
			PrizePool:              "$75,000 in prizes and investment opportunities",
			Rules:                  "Professional teams welcome. Financial industry focus required.",
			Eligibility:            strPtr("Developers, financial professionals, and entrepreneurs"),
			MinTeamSize:            3,
			MaxTeamSize:            5,
			SubmissionRequirements: "MVP, business plan, pitch presentation",
			EvaluationCriteria:     strPtr("Market Potential, Technical Excellence, Financial Impact"),
			CommunicationChannels:  "In-person networking and online collaboration tools",
			Sponsors:               strPtr("FinTech Bank, Investment Partners, Blockchain Corp"),
			Status:                 models.HackathonUpcoming,
			IsFeatured:             true,
			LandingPageType:        models.LandingTemplate,
			LandingColorScheme:     "#FF9800",
			HasSponsors:            true,
			SponsorsData:           strPtr(`[{"name": "FinTech Bank", "logo": ""}, {"name": "Investment Partners", "logo": ""}, {"name": "Blockchain Corp", "logo": ""}]`),
		},
	}
}

func strPtr(s string) *string {
	return &s
}

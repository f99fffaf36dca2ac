package service

import (
	"time"

	"github.com/seekers/backend/internal/model"
)

// Sample records inserted by the seeder. Media point at placeholder graphics,
// so deleting them never touches the uploads directory.

func seedMedia() []*model.Media {
	item := func(filename, category, title string, size int64) *model.Media {
		return &model.Media{
			URL:         "/placeholder.jpg",
			Type:        model.MediaTypeImage,
			Category:    category,
			Title:       title,
			Description: title + " sample",
			Filename:    filename,
			Size:        size,
			MimeType:    "image/jpeg",
		}
	}
	return []*model.Media{
		item("placeholder-wedding-setup-1.jpg", "Weddings", "Wedding setup", 245760),
		item("placeholder-birthday-party-lights.jpg", "Parties", "Birthday party lights", 198432),
		item("placeholder-corporate-event-setup.jpg", "Corporate", "Corporate event setup", 312567),
		item("placeholder-festival-stage.jpg", "Festivals", "Festival stage", 467123),
		item("placeholder-anniversary-decoration.jpg", "Parties", "Anniversary decoration", 189456),
	}
}

func seedPackages() []model.PackageInput {
	yes := true
	return []model.PackageInput{
		{
			Title:       "Wedding Complete Package",
			Description: "Complete wedding entertainment package with DJ, sound system, lighting, and photography coverage for your special day.",
			Price:       150000,
			Features: []string{
				"Professional DJ with premium sound system",
				"Wedding lighting setup with uplighting",
				"Wireless microphones for ceremonies",
				"Background music for dinner",
				"Dance floor lighting",
				"Photography coverage (4 hours)",
				"MC services for announcements",
				"Setup and breakdown included",
			},
			Popular: &yes,
		},
		{
			Title:       "Birthday Party Deluxe",
			Description: "Premium birthday party package with entertainment, decorations, and audio-visual equipment for an unforgettable celebration.",
			Price:       75000,
			Features: []string{
				"DJ with birthday playlist",
				"Party lighting system",
				"Microphone for speeches",
				"Balloon decorations",
				"Party games coordination",
				"Photo booth setup",
			},
			Popular: &yes,
		},
		{
			Title:       "Corporate Event Premium",
			Description: "Professional corporate event package with AV equipment, presentation support, and entertainment services.",
			Price:       200000,
			Features: []string{
				"Professional AV equipment",
				"Presentation screen and projector",
				"Wireless microphones",
				"Stage lighting setup",
				"Technical support staff",
				"Live streaming capability",
			},
		},
		{
			Title:       "Anniversary Celebration",
			Description: "Romantic anniversary package with elegant lighting, music, and photography to celebrate your love story.",
			Price:       85000,
			Features: []string{
				"Romantic lighting setup",
				"Curated music playlist",
				"Photography coverage (2 hours)",
				"Decorative arrangements",
			},
		},
		{
			Title:       "Festival Event Mega",
			Description: "Large-scale festival package with professional stage setup, lighting, and entertainment coordination.",
			Price:       500000,
			Features: []string{
				"Professional stage setup",
				"Concert-grade sound system",
				"Professional lighting rig",
				"Technical crew included",
				"Generator backup power",
			},
			Popular: &yes,
		},
	}
}

func seedInquiries(now time.Time) []*model.Inquiry {
	days := func(n int) *time.Time {
		t := now.AddDate(0, 0, n).Truncate(24 * time.Hour)
		return &t
	}
	return []*model.Inquiry{
		{
			Name:      "John & Sarah Wedding",
			Email:     "john.sarah@example.com",
			Phone:     "+1234567890",
			EventType: "Wedding",
			EventDate: days(30),
			Message:   "We're planning our dream wedding and would love to discuss your wedding package options. We expect around 150 guests.",
			Status:    model.InquiryStatusNew,
		},
		{
			Name:      "Corporate Events Ltd",
			Email:     "events@corporate.example.com",
			Phone:     "+1234567891",
			EventType: "Corporate",
			EventDate: days(15),
			Message:   "Looking for professional AV setup for our annual conference. Need presentation equipment and networking entertainment.",
			Status:    model.InquiryStatusNew,
		},
		{
			Name:      "Birthday Party Celebration",
			Email:     "party@celebration.example.com",
			Phone:     "+1234567892",
			EventType: "Party",
			EventDate: days(7),
			Message:   "Planning a surprise 30th birthday party. Need DJ, lighting, and decoration services for about 50 people.",
			Status:    model.InquiryStatusContacted,
		},
	}
}

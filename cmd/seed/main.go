package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"meetingroom/internal/database"
	"meetingroom/internal/domain/room"
	jwtsvc "meetingroom/internal/pkg/jwt"
	"meetingroom/internal/repository"
)

type seeder struct {
	ctx   context.Context
	store *repository.Store
	now   time.Time
}

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "meetingroom.db"
	}
	db, err := database.Connect(dsn, database.DefaultOptions())
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (children first)
	log.Println("Cleaning old data...")
	for _, table := range []string{"reservations", "rooms", "room_groups"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("failed to clean %s: %v", table, err)
		}
	}

	standard := mustHours(room.WeekdaysOnly("09:00", "18:00"))
	extended := mustHours(room.NewOperatingHours(map[int]room.DayHours{
		1: mustDay("08:00", "21:00"),
		2: mustDay("08:00", "21:00"),
		3: mustDay("08:00", "21:00"),
		4: mustDay("08:00", "21:00"),
		5: mustDay("08:00", "21:00"),
		6: mustDay("09:00", "18:00"),
	}))
	alwaysOpen := mustHours(room.AllWeek("00:00", room.EndOfDay))

	s := &seeder{ctx: context.Background(), store: repository.NewStore(db), now: time.Now()}

	// ================== HEADQUARTERS ==================
	log.Println("Creating headquarters...")
	hq := s.group("Headquarters", "123 Teheran-ro, Gangnam-gu, Seoul", nil, 1, true)

	floor3 := s.group("3F", "Small rooms (4-6 people)", hq, 1, true)
	s.room(floor3, "Startup Room", "Small room for idea meetings", 4, standard, 5000, true, map[string]any{
		"amenities": []string{"whiteboard", "TV monitor", "Wi-Fi"}, "floor_area": 15, "has_window": true,
	})
	s.room(floor3, "Focus Room", "Focused work and small meetings", 6, standard, 7000, true, map[string]any{
		"amenities": []string{"whiteboard", "TV monitor", "Wi-Fi", "phone"}, "floor_area": 18, "has_window": true,
	})
	s.room(floor3, "Brainstorming Room", "Creative sessions (under maintenance)", 6, standard, 6000, false, map[string]any{
		"amenities": []string{"whiteboard", "Wi-Fi"}, "floor_area": 16, "maintenance_note": "air conditioning repair",
	})

	floor5 := s.group("5F", "Medium rooms (8-15 people)", hq, 2, true)
	s.room(floor5, "Conference Room A", "Team meetings and presentations", 10, extended, 15000, true, map[string]any{
		"amenities": []string{"large screen", "projector", "whiteboard", "Wi-Fi", "video conferencing"}, "floor_area": 35,
	})
	s.room(floor5, "Conference Room B", "Team meetings and workshops", 12, extended, 18000, true, map[string]any{
		"amenities": []string{"large screen", "projector", "whiteboard", "Wi-Fi", "video conferencing", "sound system"}, "floor_area": 40,
	})
	s.room(floor5, "Training Room", "Training sessions and seminars", 15, extended, 25000, true, map[string]any{
		"amenities": []string{"projector", "large screen", "microphone", "sound system", "Wi-Fi"}, "floor_area": 60, "layout": "classroom",
	})

	floor10 := s.group("10F (Executive)", "Large and VIP rooms (20+ people)", hq, 3, true)
	s.room(floor10, "Board Room", "VIP boardroom", 20, alwaysOpen, 50000, true, map[string]any{
		"amenities": []string{"LED wall", "video conferencing", "interpreter booth", "coffee machine"}, "floor_area": 100, "vip": true,
	})
	s.room(floor10, "Convention Hall", "Large events and conferences", 50, extended, 100000, true, map[string]any{
		"amenities": []string{"stage", "large screen", "projector", "pro sound", "lighting"}, "floor_area": 200, "event_support": true,
	})

	// ================== BRANCH OFFICE ==================
	log.Println("Creating branch office...")
	branch := s.group("Branch Office", "456 Banpo-daero, Seocho-gu, Seoul", nil, 2, true)

	branch2 := s.group("2F", "Multi-purpose rooms", branch, 1, true)
	s.room(branch2, "Meeting Room 201", "Small meetings", 4, standard, 4000, true, map[string]any{
		"amenities": []string{"whiteboard", "Wi-Fi"}, "floor_area": 12,
	})
	s.room(branch2, "Meeting Room 202", "Small to medium meetings", 8, standard, 10000, true, map[string]any{
		"amenities": []string{"TV monitor", "whiteboard", "Wi-Fi", "video conferencing"}, "floor_area": 25,
	})

	branch3 := s.group("3F (Renovation)", "Under renovation", branch, 2, false)
	s.room(branch3, "Meeting Room 301", "Scheduled for renovation", 6, standard, 6000, false, map[string]any{
		"amenities": []string{"whiteboard"}, "floor_area": 16,
	})

	// ================== DEV TOKENS ==================
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		j := jwtsvc.New(secret, 30*24*time.Hour)
		adminToken, _ := j.GenerateToken(uuid.NewString(), jwtsvc.RoleAdmin)
		userToken, _ := j.GenerateToken(uuid.NewString(), "user")
		log.Printf("Admin token: %s", adminToken)
		log.Printf("User token:  %s", userToken)
	}

	log.Println("Seeding completed")
}

func (s *seeder) group(name, description string, parent *room.Group, sortOrder int, active bool) *room.Group {
	p := room.NewGroupParams{Name: name, Description: &description, SortOrder: sortOrder}
	if parent != nil {
		id := parent.ID()
		p.ParentID = &id
	}
	g, _, err := room.NewGroup(p, s.now)
	if err != nil {
		log.Fatalf("invalid group %s: %v", name, err)
	}
	if !active {
		g.Deactivate(s.now)
	}
	if err := s.store.RoomGroups().Save(s.ctx, g); err != nil {
		log.Fatalf("failed to save group %s: %v", name, err)
	}
	return g
}

func (s *seeder) room(g *room.Group, name, description string, capacity int, hours room.OperatingHours, price int64, active bool, metadata map[string]any) {
	money, err := room.NewMoney(price, room.DefaultCurrency)
	if err != nil {
		log.Fatal(err)
	}
	groupID := g.ID()
	r, _, err := room.NewRoom(room.NewRoomParams{
		Name:         name,
		Description:  &description,
		Capacity:     capacity,
		Hours:        hours,
		PricePerSlot: money,
		GroupID:      &groupID,
		Metadata:     metadata,
	}, s.now)
	if err != nil {
		log.Fatalf("invalid room %s: %v", name, err)
	}
	if !active {
		r.Deactivate(s.now)
	}
	if err := s.store.Rooms().Save(s.ctx, r); err != nil {
		log.Fatalf("failed to save room %s: %v", name, err)
	}
	log.Printf("  room %-20s %s (%s)", name, money, hours)
}

func mustHours(h room.OperatingHours, err error) room.OperatingHours {
	if err != nil {
		log.Fatal(err)
	}
	return h
}

func mustDay(start, end string) room.DayHours {
	d, err := room.NewDayHours(start, end)
	if err != nil {
		log.Fatal(err)
	}
	return d
}

// mockapi is a stand-in for the remote time-tracking API, used to run
// the console locally. It implements the endpoints the console consumes
// with an in-memory user store and generated workday data.
package main

import (
	"crypto/rand"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type user struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	passwordHash []byte
}

type workday struct {
	ID             string `json:"_id"`
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	TotalWorkTime  int64  `json:"totalWorkTime"`
	TotalBreakTime int64  `json:"totalBreakTime"`
	Breaks         []brk  `json:"breaks"`
}

type brk struct {
	Start string  `json:"start"`
	End   *string `json:"end"`
}

type store struct {
	mu     sync.Mutex
	users  []*user
	tokens map[string]bool
	nextID int
}

func newStore() *store {
	s := &store{tokens: make(map[string]bool), nextID: 1}
	// Default admin so the console is usable out of the box
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	s.users = append(s.users, &user{
		ID:           s.id(),
		Name:         "Admin",
		Email:        "admin@example.com",
		Role:         "ADMIN",
		passwordHash: hash,
	})
	log.Println("Created default admin user: admin@example.com/admin123")
	return s
}

func (s *store) id() string {
	id := fmt.Sprintf("u%04d", s.nextID)
	s.nextID++
	return id
}

func newToken() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func main() {
	s := newStore()
	app := fiber.New()

	app.Post("/auth/login", func(c *fiber.Ctx) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid request"})
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		for _, u := range s.users {
			if u.Email != req.Email {
				continue
			}
			if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)) != nil {
				break
			}
			tok := newToken()
			s.tokens[tok] = true
			return c.JSON(fiber.Map{"access_token": tok})
		}
		return c.Status(401).JSON(fiber.Map{"message": "Invalid credentials"})
	})

	// Everything below requires a bearer token issued by /auth/login
	app.Use(func(c *fiber.Ctx) error {
		tok := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		ok := s.tokens[tok]
		s.mu.Unlock()
		if tok == "" || !ok {
			return c.Status(401).JSON(fiber.Map{"message": "Unauthorized"})
		}
		return c.Next()
	})

	app.Get("/users", func(c *fiber.Ctx) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return c.JSON(s.users)
	})

	app.Post("/users", func(c *fiber.Ctx) error {
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid request"})
		}
		if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
			return c.Status(400).JSON(fiber.Map{"message": "All fields are required"})
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		for _, u := range s.users {
			if u.Email == req.Email {
				return c.Status(409).JSON(fiber.Map{"message": "Email already in use"})
			}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"message": "Hashing failed"})
		}
		u := &user{ID: s.id(), Name: req.Name, Email: req.Email, Role: req.Role, passwordHash: hash}
		s.users = append(s.users, u)
		return c.Status(201).JSON(u)
	})

	app.Delete("/users/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, u := range s.users {
			if u.ID == id {
				s.users = append(s.users[:i], s.users[i+1:]...)
				return c.JSON(fiber.Map{"deleted": id})
			}
		}
		return c.Status(404).JSON(fiber.Map{"message": "User not found"})
	})

	app.Get("/time/admin/user", func(c *fiber.Ctx) error {
		days := generateWorkdays(c.Query("userId"), c.Query("from"), c.Query("to"))

		page, _ := strconv.Atoi(c.Query("page", "1"))
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 20
		}

		start := (page - 1) * limit
		if start > len(days) {
			start = len(days)
		}
		end := start + limit
		if end > len(days) {
			end = len(days)
		}

		return c.JSON(fiber.Map{"items": days[start:end], "total": len(days)})
	})

	app.Get("/time/admin/export/user", func(c *fiber.Ctx) error {
		days := generateWorkdays(c.Query("userId"), c.Query("from"), c.Query("to"))

		var b strings.Builder
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"date", "startTime", "endTime", "totalWorkTime", "totalBreakTime"})
		for _, wd := range days {
			_ = w.Write([]string{
				wd.Date,
				wd.StartTime,
				wd.EndTime,
				strconv.FormatInt(wd.TotalWorkTime, 10),
				strconv.FormatInt(wd.TotalBreakTime, 10),
			})
		}
		w.Flush()

		c.Set("Content-Type", "text/csv")
		return c.SendString(b.String())
	})

	log.Println("Mock time-tracking API listening on :4000")
	log.Fatal(app.Listen(":4000"))
}

// generateWorkdays produces a deterministic 45-day history ending
// yesterday, optionally narrowed by from/to (ISO dates).
func generateWorkdays(userID, from, to string) []workday {
	var days []workday
	for i := 1; i <= 45; i++ {
		day := time.Now().AddDate(0, 0, -i)
		date := day.Format("2006-01-02")
		if from != "" && date < from {
			continue
		}
		if to != "" && date > to {
			continue
		}

		start := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, time.Local)
		end := start.Add(8*time.Hour + 30*time.Minute)
		brStart := start.Add(3 * time.Hour)
		brEnd := brStart.Add(30 * time.Minute).Format(time.RFC3339)

		wd := workday{
			ID:             fmt.Sprintf("wd-%s-%s", userID, date),
			Date:           date,
			StartTime:      start.Format(time.RFC3339),
			EndTime:        end.Format(time.RFC3339),
			TotalWorkTime:  8 * 3600000,
			TotalBreakTime: 30 * 60000,
			Breaks:         []brk{{Start: brStart.Format(time.RFC3339), End: &brEnd}},
		}
		days = append(days, wd)
	}
	return days
}

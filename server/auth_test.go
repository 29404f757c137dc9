package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestUserModel(t *testing.T) {
	db := setupTestDB(t)

	user := User{
		Username: "Test User",
		Email:    "test@example.com",
	}

	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	var retrieved User
	if err := db.Where("email = ?", "test@example.com").First(&retrieved).Error; err != nil {
		t.Fatalf("Failed to retrieve user: %v", err)
	}

	if retrieved.Email != user.Email {
		t.Errorf("Expected email %s, got %s", user.Email, retrieved.Email)
	}
	if retrieved.Username != user.Username {
		t.Errorf("Expected username %s, got %s", user.Username, retrieved.Username)
	}
}

func TestPasswordHashing(t *testing.T) {
	password := "testpassword123"

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword(hashedPassword, []byte(password)); err != nil {
		t.Error("Password verification failed")
	}

	if err := bcrypt.CompareHashAndPassword(hashedPassword, []byte("wrongpassword")); err == nil {
		t.Error("Wrong password should not verify")
	}
}

func TestUserGameAssociation(t *testing.T) {
	db := setupTestDB(t)

	user := User{Username: "player", Email: "player@example.com"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	slug, err := createGame(db, 19, 0, &user.ID)
	if err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}

	var game Game
	if err := db.Where("slug = ?", slug).First(&game).Error; err != nil {
		t.Fatalf("Failed to retrieve game: %v", err)
	}

	if game.UserID == nil || *game.UserID != user.ID {
		t.Error("Game should be linked to the user")
	}
}

func signTestToken(t *testing.T, expires time.Time) string {
	t.Helper()
	claims := JWTClaims{
		UserID:   42,
		Username: "player",
		Email:    "player@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func TestJWTAuthMiddleware(t *testing.T) {
	setupConfig()

	var gotUserID *int64
	handler := jwtAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = currentUserID(r)
		w.WriteHeader(http.StatusOK)
	}))

	testCases := []struct {
		name   string
		header string
		status int
	}{
		{"Valid", "Bearer " + signTestToken(t, time.Now().Add(time.Hour)), http.StatusOK},
		{"Expired", "Bearer " + signTestToken(t, time.Now().Add(-time.Hour)), http.StatusUnauthorized},
		{"Missing", "", http.StatusUnauthorized},
		{"Garbage", "Bearer not.a.token", http.StatusUnauthorized},
		{"WrongScheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gotUserID = nil
			req := httptest.NewRequest("POST", "/games", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Errorf("Status = %d, want %d", rec.Code, tc.status)
			}
			if tc.status == http.StatusOK {
				if gotUserID == nil || *gotUserID != 42 {
					t.Error("Expected user id 42 in the request context")
				}
			}
		})
	}
}

package root

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/deepak75500/welledapp-freelance/internal/api"
)

func TestResolveTask(t *testing.T) {
	tasks := []api.Task{
		{ID: "a1", Category: api.CategoryDiet},
		{ID: "b2", Category: api.CategoryWater},
	}
	cases := map[string]string{
		"a1":     "a1",
		"2":      "b2",
		"water":  "b2",
		" Diet ": "a1",
	}
	for ref, want := range cases {
		got, err := resolveTask(tasks, ref)
		if err != nil || got.ID != want {
			t.Fatalf("resolveTask(%q)=%q,%v, want %q", ref, got.ID, err, want)
		}
	}
	if _, err := resolveTask(tasks, "3"); err == nil {
		t.Fatalf("resolveTask(3) succeeded past the end")
	}
}

func TestTokenExpiry(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(2 * time.Hour)),
	})
	signed, err := tok.SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if got := tokenExpiry(signed, now); !strings.Contains(got, "in 2h0m0s") {
		t.Fatalf("tokenExpiry=%q", got)
	}
	if got := tokenExpiry(signed, now.Add(3*time.Hour)); !strings.Contains(got, "expired") {
		t.Fatalf("tokenExpiry=%q, want expired", got)
	}
	if got := tokenExpiry("not-a-jwt", now); !strings.Contains(got, "opaque") {
		t.Fatalf("tokenExpiry=%q, want opaque", got)
	}
}

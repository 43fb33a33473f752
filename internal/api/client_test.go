package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return New(ts.URL+"/api/",
		WithTokenSource(func() string { return "tok-1" }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestBearerTokenAndPathEscaping(t *testing.T) {
	var gotAuth, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.EscapedPath()
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "tasks": []Task{{ID: "a/b", Completed: true}}})
	})

	tasks, err := c.UpdateTaskCompletion(context.Background(), "a/b", true)
	if err != nil {
		t.Fatalf("UpdateTaskCompletion: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("Authorization=%q", gotAuth)
	}
	if gotPath != "/api/tasks/daily/a%2Fb" {
		t.Fatalf("path=%q", gotPath)
	}
	if len(tasks) != 1 || !tasks[0].Completed {
		t.Fatalf("tasks=%+v", tasks)
	}
}

func TestMarkAllCompletedRejectionIsResultNotError(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   map[string]any
		want   string
	}{
		{"200 success false", http.StatusOK, map[string]any{"success": false, "error": "already completed"}, "already completed"},
		{"400 with error", http.StatusBadRequest, map[string]any{"success": false, "error": "Complete all tasks first"}, "Complete all tasks first"},
		{"200 success false without reason", http.StatusOK, map[string]any{"success": false}, "Unable to update streak"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, tc.body)
			})
			res, err := c.MarkAllCompleted(context.Background())
			if err != nil {
				t.Fatalf("MarkAllCompleted err=%v", err)
			}
			if res.OK || res.Error != tc.want {
				t.Fatalf("res=%+v, want error %q", res, tc.want)
			}
		})
	}
}

func TestMarkAllCompletedSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/tasks/complete" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "streak": 4, "longestStreak": 9})
	})
	res, err := c.MarkAllCompleted(context.Background())
	if err != nil {
		t.Fatalf("MarkAllCompleted: %v", err)
	}
	if !res.OK || res.Streak != 4 || res.LongestStreak != 9 {
		t.Fatalf("res=%+v", res)
	}
}

func TestDailyTasksServerFlagAndFailures(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "tasks": []Task{}, "allCompleted": true})
	})
	daily, err := c.DailyTasks(context.Background())
	if err != nil {
		t.Fatalf("DailyTasks: %v", err)
	}
	if !daily.ServerConfirmed || daily.Tasks == nil {
		t.Fatalf("daily=%+v", daily)
	}

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, "<html>nope</html>")
	})
	_, err = c.DailyTasks(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("err=%v, want unauthorized", err)
	}
	if got := Message(err, "fallback"); got != "Unauthorized" {
		t.Fatalf("Message=%q", got)
	}
}

func TestUnreachableServerIsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := New(url).MarkAllCompleted(context.Background())
	if err == nil {
		t.Fatalf("MarkAllCompleted succeeded against a closed server")
	}
	if Message(err, "fallback") != "fallback" {
		t.Fatalf("transport error carried a server message: %v", err)
	}
}

func TestHistoryDaysNewestFirst(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "history": []DayRecord{
			{Date: "2026-01-01"}, {Date: "2026-01-03", AllCompleted: true}, {Date: "2026-01-02"},
		}})
	})
	h, err := c.History(context.Background())
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	days := h.Days()
	if len(days) != 3 || days[0].Date != "2026-01-03" || days[2].Date != "2026-01-01" {
		t.Fatalf("days=%+v", days)
	}
}

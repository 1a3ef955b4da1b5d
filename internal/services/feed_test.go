package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"codeck-client/internal/api"
	"codeck-client/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func newClient(srv *httptest.Server) *api.Client {
	return api.New(srv.URL, func() string { return "tok" })
}

func TestFeedNewestFirst(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/activities/feed", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, []models.Activity{
			{ID: "a1", CreatorID: "u1", Title: "January hike", Date: day(2024, 1, 1)},
			{ID: "a2", CreatorID: "u1", Title: "June ride", Date: day(2024, 6, 1)},
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	feed, err := NewFeedService(newClient(srv)).Load(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("len(feed) = %d, want 2", len(feed))
	}
	if feed[0].ID != "a2" {
		t.Errorf("feed[0].ID = %q, want the June entry first", feed[0].ID)
	}
	for i := 1; i < len(feed); i++ {
		if feed[i].Date.After(feed[i-1].Date) {
			t.Errorf("feed order increases at position %d", i)
		}
	}
}

func TestFeedStableOnEqualDates(t *testing.T) {
	same := day(2024, 3, 10)
	r := chi.NewRouter()
	r.Get("/activities/feed", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, []models.Activity{
			{ID: "a1", CreatorID: "u1", Date: same},
			{ID: "a2", CreatorID: "u1", Date: same},
			{ID: "a3", CreatorID: "u1", Date: same},
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	feed, err := NewFeedService(newClient(srv)).Load(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	for i, want := range []string{"a1", "a2", "a3"} {
		if feed[i].ID != want {
			t.Errorf("feed[%d].ID = %q, want %q (server order on equal dates)", i, feed[i].ID, want)
		}
	}
}

func TestGroupScopeUsesGroupListing(t *testing.T) {
	r := chi.NewRouter()
	feedCalls := 0
	r.Get("/activities/feed", func(w http.ResponseWriter, req *http.Request) {
		feedCalls++
		writeJSON(w, []models.Activity{})
	})
	r.Get("/groups/{id}/activities", func(w http.ResponseWriter, req *http.Request) {
		if got := req.URL.Query().Get("requester_id"); got != "u1" {
			t.Errorf("requester_id = %q, want u1", got)
		}
		writeJSON(w, []models.Activity{
			{ID: "a1", CreatorID: "u1", Date: day(2024, 2, 1)},
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	feed, err := NewFeedService(newClient(srv)).Load(context.Background(), "u1", "g1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(feed) != 1 || feed[0].ID != "a1" {
		t.Errorf("feed = %+v, want the group listing", feed)
	}
	if feedCalls != 0 {
		t.Errorf("global feed endpoint hit %d times for group scope", feedCalls)
	}
}

func TestEnrichResolvesIdentityGroupAndComments(t *testing.T) {
	groupID := "g1"
	r := chi.NewRouter()
	r.Get("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, models.User{ID: "u1", Name: "Alice"})
	})
	r.Get("/groups/{id}", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, models.Group{ID: groupID, Name: "Runners", CreatorID: "u1", EndDate: day(2025, 1, 1)})
	})
	r.Get("/activities/{id}/comments", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, models.CommentsResponse{
			ActivityID:   chi.URLParam(req, "id"),
			Comments:     []models.Comment{{ID: "c1"}, {ID: "c2"}},
			CommentCount: 2,
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	feed := []models.ActivityWithGroup{
		{Activity: models.Activity{ID: "a1", CreatorID: "u1", GroupID: &groupID, Date: day(2024, 6, 1)}},
	}
	NewFeedService(newClient(srv)).Enrich(context.Background(), feed, "u1")

	if feed[0].CreatorName != "Alice" {
		t.Errorf("CreatorName = %q, want Alice", feed[0].CreatorName)
	}
	if feed[0].Group == nil || feed[0].Group.Name != "Runners" {
		t.Errorf("Group = %+v, want Runners", feed[0].Group)
	}
	if feed[0].CommentCount != 2 {
		t.Errorf("CommentCount = %d, want 2", feed[0].CommentCount)
	}
}

func TestEnrichToleratesLookupFailures(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, `{"error":"User not found"}`, http.StatusNotFound)
	})
	r.Get("/activities/{id}/comments", func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	feed := []models.ActivityWithGroup{
		{Activity: models.Activity{ID: "a1", CreatorID: "ghost", Title: "Still here", Date: day(2024, 6, 1)}, CreatorName: placeholderName},
	}
	NewFeedService(newClient(srv)).Enrich(context.Background(), feed, "u1")

	if feed[0].CreatorName != placeholderName {
		t.Errorf("CreatorName = %q, want placeholder on failed lookup", feed[0].CreatorName)
	}
	if feed[0].Title != "Still here" {
		t.Error("activity content lost during failed enrichment")
	}
	if feed[0].CommentCount != 0 {
		t.Errorf("CommentCount = %d, want 0 on failed lookup", feed[0].CommentCount)
	}
}

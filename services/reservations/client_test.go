package reservations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"yadori/models"

	"go.uber.org/zap"
)

func TestArrivalReservations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reservations/arrival/" {
			t.Errorf("path = %q, want /reservations/arrival/", r.URL.Path)
		}
		if got := r.URL.Query().Get("date"); got != "2026-09-01" {
			t.Errorf("date = %q, want 2026-09-01", got)
		}
		if got := r.URL.Query().Get("facility_id"); got != "1" {
			t.Errorf("facility_id = %q, want 1", got)
		}
		json.NewEncoder(w).Encode([]models.Reservation{
			{ID: 7, GuestName: "Tanaka Yuki", CheckIn: "2026-09-01", CheckOut: "2026-09-03", NumAdult: 2},
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, zap.NewNop())
	arrivals, err := client.ArrivalReservations(context.Background(), "2026-09-01", 1)
	if err != nil {
		t.Fatalf("ArrivalReservations: %v", err)
	}
	if len(arrivals) != 1 || arrivals[0].ID != 7 {
		t.Errorf("arrivals = %+v, want one reservation with ID 7", arrivals)
	}
}

func TestCreateReservation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/reservations/" {
			t.Errorf("%s %s, want POST /reservations/", r.Method, r.URL.Path)
		}
		var input models.CreateReservationInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("decode input: %v", err)
		}
		if input.GuestName != "Sato Ken" || input.Guests != 2 {
			t.Errorf("input = %+v", input)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Reservation{ID: 42, GuestName: input.GuestName, NumAdult: input.Guests})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, zap.NewNop())
	res, err := client.CreateReservation(context.Background(), models.CreateReservationInput{
		GuestName: "Sato Ken",
		CheckIn:   "2026-09-01",
		CheckOut:  "2026-09-02",
		Guests:    2,
	})
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if res.ID != 42 {
		t.Errorf("ID = %d, want 42", res.ID)
	}
}

func TestGetReservationNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, zap.NewNop())
	if _, err := client.GetReservation(context.Background(), 999); !errors.Is(err, ErrReservationNotFound) {
		t.Errorf("err = %v, want ErrReservationNotFound", err)
	}
}

func TestReservationStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reservations/7/status/" {
			t.Errorf("path = %q, want /reservations/7/status/", r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.ReservationStatus{IsPaid: true, Status: "confirmed"})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, zap.NewNop())
	status, err := client.ReservationStatus(context.Background(), 7)
	if err != nil {
		t.Fatalf("ReservationStatus: %v", err)
	}
	if !status.IsPaid {
		t.Error("IsPaid = false, want true")
	}
}

func TestReservationStatusUnavailable(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusGone} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		client := NewHTTPClient(srv.URL, zap.NewNop())
		_, err := client.ReservationStatus(context.Background(), 7)
		srv.Close()

		if !errors.Is(err, ErrStatusUnavailable) {
			t.Errorf("status %d: err = %v, want ErrStatusUnavailable", code, err)
		}
	}
}

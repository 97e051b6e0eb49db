package app_test

import (
	"context"
	"testing"
	"time"

	"restaurant_refresh/internal/app"
	"restaurant_refresh/internal/domain"
)

func snapshot() []domain.Restaurant {
	return []domain.Restaurant{
		{Name: "FIGUEIRA RUBAIYAT", City: "SAO PAULO", Neighborhood: "JARDINS", FoodType: "BRASILEIRA", Type: "SOFISTICADO", Status: "PENDING", Reservation: "SIM"},
		{Name: "D.O.M RESTAURANTE", City: "SAO PAULO", Neighborhood: "JARDINS", FoodType: "BRASILEIRA", Type: "SOFISTICADO", Status: "FOMOS", Reservation: "SIM"},
		{Name: "VIRO BISTRO", City: "SAO PAULO", Neighborhood: "Cerqueira César", FoodType: "VARIADA", Type: "SOFISTICADO", Status: "PENDING", Reservation: "NAO"},
		{Name: "Bistro A", City: "Paris", FoodType: "FRANCESA", Status: "FOMOS", Reservation: "NAO"},
	}
}

func TestListRestaurants_Filters(t *testing.T) {
	q := app.NewQueryService(&fakeSource{rs: snapshot()}, nil, time.Minute)
	ctx := context.Background()

	cases := []struct {
		name  string
		query domain.RestaurantQuery
		want  []string
	}{
		{"all", domain.RestaurantQuery{}, []string{"FIGUEIRA RUBAIYAT", "D.O.M RESTAURANTE", "VIRO BISTRO", "Bistro A"}},
		{"todos is any", domain.RestaurantQuery{City: "Todos", FoodType: "Todos"}, []string{"FIGUEIRA RUBAIYAT", "D.O.M RESTAURANTE", "VIRO BISTRO", "Bistro A"}},
		{"city+food", domain.RestaurantQuery{City: "SAO PAULO", FoodType: "BRASILEIRA"}, []string{"FIGUEIRA RUBAIYAT", "D.O.M RESTAURANTE"}},
		{"neighborhood", domain.RestaurantQuery{Neighborhood: "Cerqueira César"}, []string{"VIRO BISTRO"}},
		{"search is case-insensitive", domain.RestaurantQuery{Search: "bistro"}, []string{"VIRO BISTRO", "Bistro A"}},
		{"no match", domain.RestaurantQuery{City: "Paris", Type: "SOFISTICADO"}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := q.ListRestaurants(ctx, c.query)
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			if len(got) != len(c.want) {
				t.Fatalf("expected %v, got %+v", c.want, got)
			}
			for i, n := range c.want {
				if got[i].Name != n {
					t.Fatalf("position %d: expected %q, got %q", i, n, got[i].Name)
				}
			}
		})
	}
}

func TestStats(t *testing.T) {
	q := app.NewQueryService(&fakeSource{rs: snapshot()}, nil, time.Minute)
	st, err := q.Stats(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := domain.Stats{Total: 4, Visited: 2, Pending: 2, WithReservation: 2}
	if st != want {
		t.Fatalf("expected %+v, got %+v", want, st)
	}
}

func TestListRestaurants_CacheMissThenHit(t *testing.T) {
	src := &fakeSource{rs: snapshot()}
	q := app.NewQueryService(src, &fakeCache{}, 10*time.Minute)
	ctx := context.Background()

	first, err := q.ListRestaurants(ctx, domain.RestaurantQuery{City: "Paris"})
	if err != nil || len(first) != 1 {
		t.Fatalf("unexpected: %+v %v", first, err)
	}

	// Mutate source to ensure second read indeed comes from cache
	src.rs = nil

	second, err := q.ListRestaurants(ctx, domain.RestaurantQuery{City: "Paris"})
	if err != nil || len(second) != 1 || second[0].Name != "Bistro A" {
		t.Fatalf("expected cached result, got %+v %v", second, err)
	}
	if src.reads != 1 {
		t.Fatalf("expected 1 source read, got %d", src.reads)
	}
}

func TestQueries_SourceErrorPropagates(t *testing.T) {
	q := app.NewQueryService(&fakeSource{err: domain.ErrNotFound}, nil, time.Minute)
	if _, err := q.Stats(context.Background()); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

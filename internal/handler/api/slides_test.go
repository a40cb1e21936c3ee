package api

import (
	"fmt"
	"net/http"
	"testing"
)

func createSlide(t *testing.T, env *testEnv, title string, position int64) HeroSlideResponse {
	t.Helper()

	rec := env.request(t, http.MethodPost, "/api/v1/admin/hero-slides", HeroSlideRequest{
		Title:    title,
		Position: &position,
	}, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create slide status = %d, body %s", rec.Code, rec.Body.String())
	}

	var slide HeroSlideResponse
	decodeData(t, rec, &slide)
	return slide
}

func TestHeroSlideCRUD(t *testing.T) {
	env := newTestEnv(t)

	slide := createSlide(t, env, "Welcome", 1)

	get := env.request(t, http.MethodGet, fmt.Sprintf("/api/v1/admin/hero-slides/%d", slide.ID), nil, true)
	if get.Code != http.StatusOK {
		t.Fatalf("get status = %d", get.Code)
	}

	update := env.request(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/hero-slides/%d", slide.ID), HeroSlideRequest{
		Title:    "Updated",
		Subtitle: "New subtitle",
	}, true)
	if update.Code != http.StatusOK {
		t.Fatalf("update status = %d", update.Code)
	}
	var updated HeroSlideResponse
	decodeData(t, update, &updated)
	if updated.Title != "Updated" {
		t.Errorf("title = %q", updated.Title)
	}

	del := env.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/hero-slides/%d", slide.ID), nil, true)
	if del.Code != http.StatusOK {
		t.Fatalf("delete status = %d", del.Code)
	}

	missing := env.request(t, http.MethodGet, fmt.Sprintf("/api/v1/admin/hero-slides/%d", slide.ID), nil, true)
	if missing.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", missing.Code)
	}
}

func TestUpdateSlideNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPut, "/api/v1/admin/hero-slides/424242", HeroSlideRequest{Title: "x"}, true)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestReorderHeroSlides(t *testing.T) {
	env := newTestEnv(t)

	a := createSlide(t, env, "A", 1)
	b := createSlide(t, env, "B", 2)
	c := createSlide(t, env, "C", 3)

	rec := env.request(t, http.MethodPost, "/api/v1/admin/hero-slides/reorder", ReorderRequest{
		IDs: []int64{c.ID, a.ID, b.ID},
	}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("reorder status = %d, body %s", rec.Code, rec.Body.String())
	}

	var slides []HeroSlideResponse
	decodeData(t, rec, &slides)
	if len(slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(slides))
	}
	if slides[0].Title != "C" || slides[1].Title != "A" || slides[2].Title != "B" {
		t.Errorf("wrong order: %q, %q, %q", slides[0].Title, slides[1].Title, slides[2].Title)
	}
}

func TestReorderEmptyList(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/v1/admin/hero-slides/reorder", ReorderRequest{}, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

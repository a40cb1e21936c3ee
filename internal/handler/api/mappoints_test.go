package api

import (
	"fmt"
	"net/http"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func createMapPoint(t *testing.T, env *testEnv, req MapPointRequest) MapPointResponse {
	t.Helper()

	rec := env.request(t, http.MethodPost, "/api/v1/admin/map-points", req, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create map point status = %d, body %s", rec.Code, rec.Body.String())
	}

	var point MapPointResponse
	decodeData(t, rec, &point)
	return point
}

func TestMapPointCRUD(t *testing.T) {
	env := newTestEnv(t)

	point := createMapPoint(t, env, MapPointRequest{
		Title:     "Berlin office",
		Latitude:  floatPtr(52.52),
		Longitude: floatPtr(13.405),
	})
	if point.Latitude != 52.52 {
		t.Errorf("latitude = %v", point.Latitude)
	}

	update := env.request(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/map-points/%d", point.ID), MapPointRequest{
		Title: "Berlin HQ",
	}, true)
	if update.Code != http.StatusOK {
		t.Fatalf("update status = %d", update.Code)
	}
	var updated MapPointResponse
	decodeData(t, update, &updated)
	// Full replace: omitted coordinates reset to zero.
	if updated.Latitude != 0 || updated.Longitude != 0 {
		t.Errorf("coordinates not reset: %v, %v", updated.Latitude, updated.Longitude)
	}

	del := env.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/map-points/%d", point.ID), nil, true)
	if del.Code != http.StatusOK {
		t.Fatalf("delete status = %d", del.Code)
	}
	again := env.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/map-points/%d", point.ID), nil, true)
	if again.Code != http.StatusOK {
		t.Errorf("repeat delete status = %d, want 200", again.Code)
	}
}

func TestMapPointCoordinateValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/v1/admin/map-points", MapPointRequest{
		Title:     "Nowhere",
		Latitude:  floatPtr(123.0),
		Longitude: floatPtr(-200.0),
	}, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	detail := decodeError(t, rec)
	if detail.Details["latitude"] == "" || detail.Details["longitude"] == "" {
		t.Errorf("missing field errors: %+v", detail.Details)
	}
}

func TestPatchMapPointCoordinates(t *testing.T) {
	env := newTestEnv(t)

	point := createMapPoint(t, env, MapPointRequest{Title: "Warehouse"})

	rec := env.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/map-points/%d/coordinates", point.ID), CoordinatesRequest{
		Latitude:  floatPtr(48.137),
		Longitude: floatPtr(11.575),
	}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var updated MapPointResponse
	decodeData(t, rec, &updated)
	if updated.Latitude != 48.137 || updated.Longitude != 11.575 {
		t.Errorf("coordinates = %v, %v", updated.Latitude, updated.Longitude)
	}
	if updated.Title != "Warehouse" {
		t.Errorf("title changed by coordinate patch: %q", updated.Title)
	}
}

func TestPatchCoordinatesRequiresBoth(t *testing.T) {
	env := newTestEnv(t)

	point := createMapPoint(t, env, MapPointRequest{Title: "Partial"})

	rec := env.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/map-points/%d/coordinates", point.ID), CoordinatesRequest{
		Latitude: floatPtr(50.0),
	}, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestPatchCoordinatesNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPatch, "/api/v1/admin/map-points/31337/coordinates", CoordinatesRequest{
		Latitude:  floatPtr(1),
		Longitude: floatPtr(2),
	}, true)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestFillMapPointCoordinates(t *testing.T) {
	env := newTestEnv(t)

	empty := createMapPoint(t, env, MapPointRequest{Title: "Unplaced"})
	placed := createMapPoint(t, env, MapPointRequest{
		Title:     "Placed",
		Latitude:  floatPtr(10),
		Longitude: floatPtr(20),
	})

	rec := env.request(t, http.MethodPost, "/api/v1/admin/map-points/fill-coordinates", FillCoordinatesRequest{
		Default: &CoordinatesRequest{Latitude: floatPtr(52.52), Longitude: floatPtr(13.405)},
	}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var filled []MapPointResponse
	decodeData(t, rec, &filled)
	if len(filled) != 1 || filled[0].ID != empty.ID {
		t.Fatalf("expected only the unplaced point to be filled, got %+v", filled)
	}

	// The point that already had coordinates must be untouched.
	get := env.request(t, http.MethodGet, fmt.Sprintf("/api/v1/admin/map-points/%d", placed.ID), nil, true)
	var kept MapPointResponse
	decodeData(t, get, &kept)
	if kept.Latitude != 10 || kept.Longitude != 20 {
		t.Errorf("placed point was overwritten: %v, %v", kept.Latitude, kept.Longitude)
	}
}

func TestFillCoordinatesMissingDefault(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/v1/admin/map-points/fill-coordinates", FillCoordinatesRequest{}, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

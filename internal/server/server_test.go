package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glundgren93/ptv-cli/internal/departures"
	"github.com/glundgren93/ptv-cli/internal/format"
	"github.com/glundgren93/ptv-cli/internal/model"
)

type fakeResolver struct {
	result  *departures.Result
	err     error
	panics  bool
	lastReq departures.Request
}

func (f *fakeResolver) Resolve(ctx context.Context, req departures.Request) (*departures.Result, error) {
	f.lastReq = req
	if f.panics {
		panic("resolver exploded")
	}
	return f.result, f.err
}

func flinders() *departures.Result {
	return &departures.Result{
		Stop: model.Stop{ID: 1071, Name: "Flinders Street Station"},
		Departures: []model.EnrichedDeparture{{
			NormalizedDeparture: model.NormalizedDeparture{LocalTime: "10:03 am", MinutesFromNow: 5},
			RouteName:           "Frankston",
			DirectionName:       "Frankston",
		}},
	}
}

func do(t *testing.T, r Resolver, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	app := New(r, nil, Options{Version: "1.2.3", Limit: 2})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp, body
}

func TestVersion(t *testing.T) {
	resp, body := do(t, &fakeResolver{}, httptest.NewRequest(http.MethodGet, "/version", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"1.2.3"`) {
		t.Errorf("body = %s, want version 1.2.3", body)
	}
}

func TestDepartures(t *testing.T) {
	r := &fakeResolver{result: flinders()}
	resp, body := do(t, r, httptest.NewRequest(http.MethodGet,
		"/v1/departures?stop=Flinders%20Street&mode=tram&direction=to%20city&limit=3", nil))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
	}
	want := departures.Request{StopName: "Flinders Street", Mode: model.Tram, TowardCity: true, Limit: 3}
	if r.lastReq != want {
		t.Errorf("request = %+v, want %+v", r.lastReq, want)
	}

	var got departures.Result
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if got.Stop.ID != 1071 || len(got.Departures) != 1 || got.Departures[0].RouteName != "Frankston" {
		t.Errorf("result = %+v", got)
	}
}

func TestDeparturesDefaults(t *testing.T) {
	r := &fakeResolver{result: flinders()}
	resp, _ := do(t, r, httptest.NewRequest(http.MethodGet, "/v1/departures?stop=Flinders", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	want := departures.Request{StopName: "Flinders", Mode: model.Train, Limit: 2}
	if r.lastReq != want {
		t.Errorf("request = %+v, want %+v", r.lastReq, want)
	}
}

func TestDeparturesBadRequests(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"missing stop", "/v1/departures"},
		{"unknown mode", "/v1/departures?stop=Flinders&mode=ferry"},
		{"bad limit", "/v1/departures?stop=Flinders&limit=zero"},
		{"negative limit", "/v1/departures?stop=Flinders&limit=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := do(t, &fakeResolver{}, httptest.NewRequest(http.MethodGet, tt.query, nil))
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestDeparturesErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &departures.NotFoundError{Name: "Nowhere"}, http.StatusNotFound},
		{"no direction", &departures.NoMatchingDirectionError{RouteID: 6}, http.StatusUnprocessableEntity},
		{"provider down", &departures.ProviderError{Op: "search stops", StatusCode: 503, Err: errors.New("down")}, http.StatusBadGateway},
		{"forbidden", &departures.ProviderError{Op: "search stops", StatusCode: 403, Err: errors.New("nope")}, http.StatusForbidden},
		{"missing join", &departures.JoinError{Kind: "route", ID: 9}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, &fakeResolver{err: tt.err},
				httptest.NewRequest(http.MethodGet, "/v1/departures?stop=Flinders", nil))
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			if !strings.Contains(string(body), `"outcome"`) {
				t.Errorf("body = %s, want an outcome", body)
			}
		})
	}
}

func postIntent(t *testing.T, r Resolver, body string) format.Outcome {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/intent", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, raw := do(t, r, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, raw)
	}
	var out format.Outcome
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decoding outcome: %v", err)
	}
	return out
}

func TestIntent(t *testing.T) {
	r := &fakeResolver{result: flinders()}
	out := postIntent(t, r, `{"type": "train", "stop": "Flinders Street", "direction": "to city"}`)

	if out.Category != format.CategoryOK {
		t.Errorf("category = %q, want ok", out.Category)
	}
	want := "Next train to city is the Frankston 5 minutes from now at 10:03 am"
	if out.Speech != want {
		t.Errorf("speech = %q, want %q", out.Speech, want)
	}
	if !r.lastReq.TowardCity || r.lastReq.Limit != 2 {
		t.Errorf("request = %+v, want toward city with default limit", r.lastReq)
	}
}

func TestIntentDefaults(t *testing.T) {
	r := &fakeResolver{result: flinders()}
	postIntent(t, r, `{"stop": "Flinders Street"}`)

	if r.lastReq.Mode != model.Train || r.lastReq.TowardCity {
		t.Errorf("request = %+v, want train from city", r.lastReq)
	}
}

func TestIntentFailuresStay200(t *testing.T) {
	tests := []struct {
		name    string
		r       *fakeResolver
		body    string
		want    format.Category
		wantAsk bool
	}{
		{
			name: "permission",
			r:    &fakeResolver{err: &departures.ProviderError{Op: "search stops", StatusCode: 403, Err: errors.New("forbidden")}},
			body: `{"stop": "Flinders"}`,
			want: format.CategoryPermissionRequired, wantAsk: true,
		},
		{
			name: "not found",
			r:    &fakeResolver{err: &departures.NotFoundError{Name: "Nowhere"}},
			body: `{"stop": "Nowhere"}`,
			want: format.CategoryNotFound,
		},
		{
			name: "unknown type",
			r:    &fakeResolver{},
			body: `{"type": "ferry", "stop": "Docklands"}`,
			want: format.CategoryError,
		},
		{
			name: "empty",
			r:    &fakeResolver{result: &departures.Result{Stop: model.Stop{Name: "Flinders Street Station"}}},
			body: `{"stop": "Flinders"}`,
			want: format.CategoryEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := postIntent(t, tt.r, tt.body)
			if out.Category != tt.want {
				t.Errorf("category = %q, want %q", out.Category, tt.want)
			}
			if out.AskForPermissions != tt.wantAsk {
				t.Errorf("askForPermissions = %v, want %v", out.AskForPermissions, tt.wantAsk)
			}
		})
	}
}

func TestRecoversPanics(t *testing.T) {
	resp, _ := do(t, &fakeResolver{panics: true},
		httptest.NewRequest(http.MethodGet, "/v1/departures?stop=Flinders", nil))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestTowardCity(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"to city", true},
		{"To City", true},
		{" to city ", true},
		{"from city", false},
		{"", false},
		{"city", false},
	}
	for _, tt := range tests {
		if got := towardCity(tt.in); got != tt.want {
			t.Errorf("towardCity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

type fakeCatalog struct {
	types []model.RouteType
	err   error
}

func (f fakeCatalog) RouteTypes(ctx context.Context) ([]model.RouteType, error) {
	return f.types, f.err
}

func TestModes(t *testing.T) {
	catalog := fakeCatalog{types: []model.RouteType{{Name: "Train", Code: model.Train}, {Name: "Tram", Code: model.Tram}}}
	app := New(&fakeResolver{}, catalog, Options{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/modes", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var got []model.RouteType
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(got) != 2 || got[1].Code != model.Tram {
		t.Errorf("route types = %+v", got)
	}

	app = New(&fakeResolver{}, fakeCatalog{err: errors.New("down")}, Options{})
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/v1/modes", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
}

func TestModesWithoutCatalog(t *testing.T) {
	resp, _ := do(t, &fakeResolver{}, httptest.NewRequest(http.MethodGet, "/v1/modes", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

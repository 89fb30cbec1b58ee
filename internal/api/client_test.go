package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckHealth(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status": "ok", "env": "dev", "ai_enabled": true, "timestamp": "2026-09-01T00:00:00Z",
		})
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	h, err := c.CheckHealth(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", h.Status)
	require.True(t, h.AIEnabled)
}

func TestProcessSendsMultipartForm(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/process", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "leads.csv", header.Filename)

		require.Equal(t, "AZ,CA", r.FormValue("target_states"))
		require.Equal(t, "Sunny Home", r.FormValue("brand_name"))
		require.Equal(t, "premium furniture", r.FormValue("positioning"))
		require.Equal(t, "warm", r.FormValue("tone"))
		require.Equal(t, "EN", r.FormValue("language"))
		require.Equal(t, "true", r.FormValue("use_ai"))
		require.Equal(t, "8", r.FormValue("ai_limit"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ProcessResult{
			BrandName: "Sunny Home",
			Language:  "EN",
			UseAI:     true,
			Leads: []Lead{{
				CompanyName: "Acme",
				Score:       82,
				Tier:        "A",
				Breakdown:   map[string]float64{"total": 82, "industry_fit": 30},
			}},
			Summary: Summary{
				TotalLeads: 1, AverageScore: 82, TierA: 1,
				TopStates: []map[string]int{{"CA": 1}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	res, err := c.Process(context.Background(), ProcessForm{
		FileName:     "leads.csv",
		File:         []byte("company_name\nAcme"),
		TargetStates: "AZ,CA",
		BrandName:    "Sunny Home",
		Positioning:  "premium furniture",
		Tone:         "warm",
		Language:     "EN",
		UseAI:        true,
		AILimit:      8,
	})
	require.NoError(t, err)
	require.Len(t, res.Leads, 1)
	require.Equal(t, "Acme", res.Leads[0].CompanyName)
	require.Equal(t, float64(82), res.Leads[0].Breakdown["total"])
	require.Equal(t, []map[string]int{{"CA": 1}}, res.Summary.TopStates)
}

func TestProcessServiceErrorDetail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"detail present", http.StatusBadRequest, `{"detail":"CSV is missing required columns"}`, "CSV is missing required columns"},
		{"no detail", http.StatusInternalServerError, `{"error":"boom"}`, ""},
		{"not json", http.StatusBadGateway, "<html>bad gateway</html>", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient(WithBaseURL(srv.URL))
			_, err := c.Process(context.Background(), ProcessForm{FileName: "x.csv", File: []byte("a")})
			var se *ServiceError
			require.ErrorAs(t, err, &se)
			require.Equal(t, tc.status, se.StatusCode)
			require.Equal(t, tc.wantDetail, se.Detail)
			require.Equal(t, tc.wantDetail, Detail(err))
		})
	}
}

func TestProcessTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Process(context.Background(), ProcessForm{FileName: "x.csv", File: []byte("a")})
	var te *TransportError
	require.ErrorAs(t, err, &te)
	require.Empty(t, Detail(err))
}

func TestRefineOutreach(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/refine-outreach", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var req RefineRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "Acme", req.CompanyName)
		require.Equal(t, "make it shorter", req.Feedback)
		require.Equal(t, "old subject", req.CurrentSubject)

		json.NewEncoder(w).Encode(RefineResponse{Subject: "new subject", Message: "new message"})
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	resp, err := c.RefineOutreach(context.Background(), RefineRequest{
		CompanyName:    "Acme",
		CurrentSubject: "old subject",
		Feedback:       "make it shorter",
	})
	require.NoError(t, err)
	require.Equal(t, "new subject", resp.Subject)
	require.Equal(t, "new message", resp.Message)
}

func TestAssetsFetchedFromAssetOrigin(t *testing.T) {
	t.Parallel()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("asset request hit the API origin: %s", r.URL.Path)
	}))
	defer api.Close()

	assets := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sample_leads.csv":
			w.Write([]byte("company_name\nAcme"))
		case "/lead_template.csv":
			w.Write([]byte("company_name,city,state\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer assets.Close()

	c := NewClient(WithBaseURL(api.URL), WithAssetBaseURL(assets.URL))

	sample, err := c.SampleLeads(context.Background())
	require.NoError(t, err)
	require.Equal(t, "company_name\nAcme", string(sample))

	tmpl, err := c.LeadTemplate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "company_name,city,state\n", tmpl)
}

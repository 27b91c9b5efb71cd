package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(handler http.HandlerFunc) (*httptest.Server, *Client) {
	ts := httptest.NewServer(handler)
	client := NewClient(ts.URL, "test-key")

	return ts, client
}

func TestFetchQuotaReturnsAttributes(t *testing.T) {
	ts, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}

		if r.URL.Path != "/api/client/account/limits" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}

		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Fatalf("unexpected auth header: %q", r.Header.Get("Authorization"))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(quotaEnvelope{
			Object: "account_limits",
			Attributes: Quota{
				Slots:       2,
				Memory:      4096,
				Disk:        20480,
				CPU:         200,
				Databases:   2,
				Allocations: 3,
			},
		})
	})
	defer ts.Close()

	quota, err := client.FetchQuota()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if quota.Memory != 4096 {
		t.Fatalf("expected memory 4096, got %d", quota.Memory)
	}

	if quota.Slots != 2 {
		t.Fatalf("expected 2 slots, got %d", quota.Slots)
	}
}

func TestFetchEggsUnwrapsList(t *testing.T) {
	ts, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/client/eggs" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(eggListEnvelope{
			Object: "list",
			Data: []eggEnvelope{
				{Object: "egg", Attributes: Egg{ID: 1, EggID: 3, Name: "Minecraft (Paper)"}},
				{Object: "egg", Attributes: Egg{ID: 2, EggID: 5, Name: "Valheim"}},
			},
		})
	})
	defer ts.Close()

	eggs, err := client.FetchEggs()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(eggs) != 2 {
		t.Fatalf("expected 2 eggs, got %d", len(eggs))
	}

	if eggs[0].EggID != 3 {
		t.Fatalf("expected egg_id 3, got %d", eggs[0].EggID)
	}
}

func TestFetchNodesUnwrapsList(t *testing.T) {
	ts, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(nodeListEnvelope{
			Object: "list",
			Data: []nodeEnvelope{
				{Object: "node", Attributes: Node{ID: 1, NodeID: 7, Name: "node-eu-1", Location: "eu"}},
			},
		})
	})
	defer ts.Close()

	nodes, err := client.FetchNodes()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}

	if nodes[0].Location != "eu" {
		t.Fatalf("expected location eu, got %q", nodes[0].Location)
	}
}

func TestCreateServerSendsPayload(t *testing.T) {
	ts, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}

		if r.URL.Path != "/api/client/servers" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}

		var req CreateServerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		if req.Name != "test" || req.Memory != 1024 || req.EggID != 3 || req.NodeID != 7 {
			t.Fatalf("unexpected request payload: %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(serverEnvelope{
			Object:     "server",
			Attributes: Server{Identifier: "srv_1", Name: "test"},
		})
	})
	defer ts.Close()

	server, err := client.CreateServer(CreateServerRequest{
		Name:   "test",
		Memory: 1024,
		Disk:   2048,
		CPU:    50,
		EggID:  3,
		NodeID: 7,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if server.Identifier != "srv_1" {
		t.Fatalf("expected identifier srv_1, got %q", server.Identifier)
	}
}

func TestCreateServerSurfacesPanelError(t *testing.T) {
	ts, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(APIError{
			Errors: []ErrorDetail{
				{Code: "NoAllocationAvailable", Detail: "No allocation available on the selected node."},
			},
		})
	})
	defer ts.Close()

	_, err := client.CreateServer(CreateServerRequest{Name: "test"})
	if err == nil {
		t.Fatal("expected an error")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}

	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", apiErr.Status)
	}

	if !strings.Contains(apiErr.Error(), "No allocation available") {
		t.Fatalf("unexpected error text: %s", apiErr.Error())
	}
}

func TestDeleteNodeUsesDeleteMethod(t *testing.T) {
	ts, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("expected DELETE, got %s", r.Method)
		}

		if r.URL.Path != "/api/admin/nodes/7" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}

		w.WriteHeader(http.StatusNoContent)
	})
	defer ts.Close()

	if err := client.DeleteNode(7); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestParseAPIErrorFallsBackToSnippet(t *testing.T) {
	err := parseAPIError(http.StatusBadGateway, []byte("<html>bad gateway</html>"))
	if err == nil {
		t.Fatal("expected an error")
	}

	if !strings.Contains(err.Error(), "HTTP 502") {
		t.Fatalf("expected status in error text, got: %s", err.Error())
	}
}

func TestParseAPIErrorEmptyBody(t *testing.T) {
	err := parseAPIError(http.StatusInternalServerError, nil)
	if err == nil {
		t.Fatal("expected an error")
	}

	if !strings.Contains(err.Error(), "empty response") {
		t.Fatalf("expected empty-response text, got: %s", err.Error())
	}
}

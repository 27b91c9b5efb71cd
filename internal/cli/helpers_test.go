package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/panelctl/panelctl/internal/api"
	"github.com/panelctl/panelctl/internal/config"
)

// resetCommandFlags restores every flag in the command tree to its
// default value. The commands hang off a package-global rootCmd, so
// flag values and Changed markers set by one test's Execute would
// otherwise leak into the next test.
func resetCommandFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("reset flag --%s: %v", f.Name, err)
		}
		f.Changed = false
	})

	for _, sub := range cmd.Commands() {
		resetCommandFlags(t, sub)
	}
}

// stubPanel is an in-memory panel API for command tests.
type stubPanel struct {
	quota   api.Quota
	eggs    []api.Egg
	nodes   []api.Node
	servers []api.Server

	// eggFailures makes the next N image catalog fetches answer 502.
	eggFailures int

	created []api.CreateServerRequest
}

func newStubPanel() *stubPanel {
	return &stubPanel{
		quota: api.Quota{Slots: 2, Memory: 4096, Disk: 10240, CPU: 200, Databases: 2, Allocations: 2},
		eggs: []api.Egg{
			{ID: 11, EggID: 3, Name: "Paper", Description: "Minecraft server"},
			{ID: 12, EggID: 5, Name: "Valheim"},
		},
		nodes: []api.Node{
			{ID: 21, NodeID: 7, Name: "node-eu", Location: "Falkenstein"},
			{ID: 22, NodeID: 9, Name: "node-us"},
		},
	}
}

func attributes(object string, attrs any) map[string]any {
	return map[string]any{"object": object, "attributes": attrs}
}

func (p *stubPanel) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/client/account/limits", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(attributes("limits", p.quota))
	})

	mux.HandleFunc("GET /api/client/eggs", func(w http.ResponseWriter, _ *http.Request) {
		if p.eggFailures > 0 {
			p.eggFailures--
			http.Error(w, "upstream timeout", http.StatusBadGateway)
			return
		}

		data := make([]map[string]any, 0, len(p.eggs))
		for _, egg := range p.eggs {
			data = append(data, attributes("egg", egg))
		}
		json.NewEncoder(w).Encode(map[string]any{"object": "list", "data": data})
	})

	mux.HandleFunc("GET /api/client/nodes", func(w http.ResponseWriter, _ *http.Request) {
		data := make([]map[string]any, 0, len(p.nodes))
		for _, node := range p.nodes {
			data = append(data, attributes("node", node))
		}
		json.NewEncoder(w).Encode(map[string]any{"object": "list", "data": data})
	})

	mux.HandleFunc("GET /api/client/servers", func(w http.ResponseWriter, _ *http.Request) {
		data := make([]map[string]any, 0, len(p.servers))
		for _, srv := range p.servers {
			data = append(data, attributes("server", srv))
		}
		json.NewEncoder(w).Encode(map[string]any{"object": "list", "data": data})
	})

	mux.HandleFunc("POST /api/client/servers", func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateServerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p.created = append(p.created, req)
		srv := api.Server{Identifier: "srv_test", Name: req.Name, Memory: req.Memory, Disk: req.Disk, CPU: req.CPU}
		p.servers = append(p.servers, srv)
		json.NewEncoder(w).Encode(attributes("server", srv))
	})

	mux.HandleFunc("POST /api/admin/nodes", func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateNodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		node := api.Node{ID: 99, NodeID: 42, Name: req.Name, Location: req.Location}
		p.nodes = append(p.nodes, node)
		json.NewEncoder(w).Encode(attributes("node", node))
	})

	mux.HandleFunc("DELETE /api/admin/nodes/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("POST /api/admin/eggs", func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateEggRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		egg := api.Egg{ID: 98, EggID: 13, Name: req.Name, DockerImage: req.DockerImage}
		p.eggs = append(p.eggs, egg)
		json.NewEncoder(w).Encode(attributes("egg", egg))
	})

	mux.HandleFunc("DELETE /api/admin/eggs/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

// withStubPanel points the CLI at an httptest panel for the duration of
// one test.
func withStubPanel(t *testing.T) *stubPanel {
	t.Helper()

	resetCommandFlags(t, rootCmd)

	panel := newStubPanel()
	server := httptest.NewServer(panel.handler())
	t.Cleanup(server.Close)

	original := newPanelClient
	newPanelClient = func() (*api.Client, error) {
		return api.NewClient(server.URL, "test-key"), nil
	}
	t.Cleanup(func() { newPanelClient = original })

	return panel
}

func withTestConfig(t *testing.T) {
	t.Helper()

	resetCommandFlags(t, rootCmd)

	configPath := filepath.Join(t.TempDir(), "config.json")
	original := loadConfig

	loadConfig = func() (*config.Config, error) {
		return config.LoadFrom(configPath)
	}

	t.Cleanup(func() { loadConfig = original })
}

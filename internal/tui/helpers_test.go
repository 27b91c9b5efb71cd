package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/panelctl/panelctl/internal/api"
	"github.com/panelctl/panelctl/internal/wizard"
)

func testFetchers() wizard.Fetchers {
	return wizard.Fetchers{
		Quota: func() (api.Quota, error) {
			return api.Quota{Slots: 2, Memory: 4096, Disk: 10240, CPU: 200, Databases: 2, Allocations: 2}, nil
		},
		Eggs: func() ([]api.Egg, error) {
			return []api.Egg{
				{ID: 11, EggID: 3, Name: "Paper", Description: "Minecraft server"},
				{ID: 12, EggID: 5, Name: "Valheim"},
			}, nil
		},
		Nodes: func() ([]api.Node, error) {
			return []api.Node{
				{ID: 21, NodeID: 7, Name: "node-eu", Location: "Falkenstein"},
				{ID: 22, NodeID: 9, Name: "node-us"},
			}, nil
		},
	}
}

func startedController(t *testing.T, f wizard.Fetchers, create wizard.CreateFunc) *wizard.Controller {
	t.Helper()

	if create == nil {
		create = func(req api.CreateServerRequest) (api.Server, error) {
			return api.Server{Identifier: "srv_1", Name: req.Name}, nil
		}
	}

	ctrl := wizard.NewController(f, create)
	ctrl.Start()
	t.Cleanup(ctrl.Close)

	require.Eventually(t, func() bool {
		return ctrl.QuotaState().State != wizard.LoadPending &&
			ctrl.EggsState().State != wizard.LoadPending &&
			ctrl.NodesState().State != wizard.LoadPending
	}, time.Second, 5*time.Millisecond)

	return ctrl
}

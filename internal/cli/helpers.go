package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/panelctl/panelctl/internal/api"
	"github.com/panelctl/panelctl/internal/config"
	"github.com/panelctl/panelctl/internal/credential"
)

var loadConfig = config.Load

// newPanelClient builds an API client from the configured panel address
// and the resolved API key. Swappable in tests.
var newPanelClient = func() (*api.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	panel := cfg.Panel()
	if panel.BaseURL == "" {
		return nil, fmt.Errorf("no panel configured; run \"panelctl config set --url <panel-url>\" first")
	}

	key, found := credential.DefaultResolver().APIKey(panel.APIKeyEnv)
	if !found {
		envName := panel.APIKeyEnv
		if envName == "" {
			envName = credential.DefaultKeyEnv
		}

		return nil, fmt.Errorf("no API key found; set %s or store one in the credentials file", envName)
	}

	return api.NewClient(panel.BaseURL, key), nil
}

func readTrimmedLine(reader *bufio.Reader, output io.Writer, prompt string) (string, error) {
	fmt.Fprint(output, prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		if len(strings.TrimSpace(line)) == 0 {
			return "", err
		}
	}

	return strings.TrimSpace(line), nil
}

func printServersList(output io.Writer, servers []api.Server) {
	if len(servers) == 0 {
		fmt.Fprintln(output, "No servers found.")
		return
	}

	fmt.Fprintln(output, "Servers:")
	fmt.Fprintln(output)

	for _, srv := range servers {
		status := srv.Status
		if status == "" {
			status = "unknown"
		}

		fmt.Fprintf(output, "  %-12s %-24s %-10s %d MB / %d MB / %d%%\n",
			srv.Identifier, srv.Name, status, srv.Memory, srv.Disk, srv.CPU)
	}
}

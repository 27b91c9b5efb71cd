package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestNodesListCommand(t *testing.T) {
	withStubPanel(t)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"nodes", "list"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("expected command to succeed: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "node-eu (Falkenstein)") {
		t.Fatalf("expected node with location in output, got %q", output)
	}

	if !strings.Contains(output, "node-us") {
		t.Fatalf("expected second node in output, got %q", output)
	}

	rootCmd.SetArgs([]string{})
}

func TestNodesCreateCommand(t *testing.T) {
	withStubPanel(t)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"nodes", "create", "--name", "node-ap", "--fqdn", "ap.example.com", "--location", "Tokyo"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("expected command to succeed: %v", err)
	}

	if !strings.Contains(stdout.String(), `Node "node-ap" created with id 42.`) {
		t.Fatalf("unexpected output: %q", stdout.String())
	}

	rootCmd.SetArgs([]string{})
}

func TestNodesCreateCommand_MissingName(t *testing.T) {
	withStubPanel(t)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"nodes", "create", "--fqdn", "ap.example.com"})

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected missing --name to fail")
	}

	rootCmd.SetArgs([]string{})
}

func TestNodesDeleteCommand(t *testing.T) {
	withStubPanel(t)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"nodes", "delete", "7"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("expected command to succeed: %v", err)
	}

	if !strings.Contains(stdout.String(), "Node 7 deleted.") {
		t.Fatalf("unexpected output: %q", stdout.String())
	}

	rootCmd.SetArgs([]string{})
}

func TestNodesDeleteCommand_BadID(t *testing.T) {
	withStubPanel(t)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"nodes", "delete", "seven"})

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected non-numeric node id to fail")
	}

	rootCmd.SetArgs([]string{})
}

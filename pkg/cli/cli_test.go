package cli_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/netmon-lab/tacdesk/pkg/cli"
	httpctrl "github.com/netmon-lab/tacdesk/pkg/controller/http"
)

func newStubBackend(t *testing.T) string {
	t.Helper()
	ts := httptest.NewServer(httpctrl.New())
	t.Cleanup(ts.Close)
	return ts.URL
}

func TestRun_CaseLifecycle(t *testing.T) {
	url := newStubBackend(t)

	err := cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url,
		"case", "new", "--case-id", "100", "--platform", "ont_issue",
	}, "test")
	gt.NoError(t, err)

	err = cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url, "case", "list",
	}, "test")
	gt.NoError(t, err)

	err = cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url, "case", "show", "100",
	}, "test")
	gt.NoError(t, err)
}

func TestRun_CaseNewRejectsInvalidID(t *testing.T) {
	url := newStubBackend(t)

	err := cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url,
		"case", "new", "--case-id", "not-digits", "--platform", "ont_issue",
	}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_CaseNewRejectsUnknownPlatform(t *testing.T) {
	url := newStubBackend(t)

	err := cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url,
		"case", "new", "--case-id", "100", "--platform", "mainframe_issue",
	}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_CaseShowUnknownCase(t *testing.T) {
	url := newStubBackend(t)

	err := cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url, "case", "show", "999",
	}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_SetIssueAndNotes(t *testing.T) {
	url := newStubBackend(t)

	err := cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url,
		"case", "new", "--case-id", "200", "--platform", "olt_issue",
	}, "test")
	gt.NoError(t, err)

	err = cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url,
		"case", "set-issue", "200", "ONT drops every night",
	}, "test")
	gt.NoError(t, err)

	err = cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url,
		"note", "add", "200", "customer called back",
	}, "test")
	gt.NoError(t, err)

	// Empty note content is rejected before any request
	err = cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url,
		"note", "add", "200", "   ",
	}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_NetworkInfoValidatesOptions(t *testing.T) {
	url := newStubBackend(t)

	err := cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url,
		"case", "new", "--case-id", "300", "--platform", "ont_issue",
	}, "test")
	gt.NoError(t, err)

	// Values inside the option lists are accepted
	err = cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url,
		"case", "network-info", "300",
		"--set", "platform=E7-2", "--set", "software_version=3.1",
	}, "test")
	gt.NoError(t, err)

	// A version not offered for the chosen platform is rejected
	err = cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url,
		"case", "network-info", "300",
		"--set", "platform=E7-2", "--set", "software_version=9.9",
	}, "test")
	gt.Value(t, err).NotNil()

	// Fields outside the required set are rejected
	err = cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url,
		"case", "network-info", "300",
		"--set", "smx_version=1.0",
	}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_PlatformConfigFile(t *testing.T) {
	url := newStubBackend(t)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "platforms.toml")
	content := `
[[platform]]
id = "lab_issue"
display_name = "Lab Issue"
required_fields = ["platform"]
`
	err := os.WriteFile(configPath, []byte(content), 0o600)
	gt.NoError(t, err).Required()

	err = cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url, "--platform-config", configPath,
		"case", "new", "--case-id", "400", "--platform", "lab_issue",
	}, "test")
	gt.NoError(t, err)

	// The built-in catalog no longer applies when a file is given
	err = cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url, "--platform-config", configPath,
		"case", "new", "--case-id", "401", "--platform", "ont_issue",
	}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_PlatformConfigMissingFile(t *testing.T) {
	url := newStubBackend(t)

	err := cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url,
		"--platform-config", filepath.Join(t.TempDir(), "nonexistent.toml"),
		"case", "list",
	}, "test")
	gt.NoError(t, err) // list does not consult the catalog

	err = cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url,
		"--platform-config", filepath.Join(t.TempDir(), "nonexistent.toml"),
		"case", "new", "--case-id", "100", "--platform", "ont_issue",
	}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_UploadKBRejectsNonPDF(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "notes.txt")
	err := os.WriteFile(path, []byte("plain text"), 0o600)
	gt.NoError(t, err).Required()

	err = cli.Run(context.Background(), []string{
		"tacdesk", "upload-kb", path,
	}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_AnalyzeRejectsNonTxtLog(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"tacdesk", "analyze",
		"--case-id", "500", "--issue", "packet loss", "--log-file", "logs.zip",
	}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_EvidenceRequiresType(t *testing.T) {
	url := newStubBackend(t)

	err := cli.Run(context.Background(), []string{
		"tacdesk", "--api-url", url, "evidence", "100",
	}, "test")
	gt.Value(t, err).NotNil()
}

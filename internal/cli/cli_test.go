package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatrade/internal/config"
	"seatrade/internal/database"
	"seatrade/internal/services"
	"seatrade/internal/transport"
	"seatrade/internal/util"
)

// newAPIServer starts the real HTTP stack on an in-memory database and returns its
// URL with an admin token.
func newAPIServer(t *testing.T) (string, string) {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	cfg := &config.Config{
		App:  config.AppConfig{Debug: true},
		Auth: config.AuthConfig{SecretKey: "cli-test-secret", TokenExpiryMinutes: 5},
	}
	auth := services.NewAuthService(db, util.NewTokenIssuer(cfg.Auth))
	_, err = auth.EnsureAdmin(context.Background(), "admin", "admin@seatrade.test", "correct-horse")
	require.NoError(t, err)
	login, err := auth.Login(context.Background(), &services.LoginPayload{Username: "admin", Password: "correct-horse"})
	require.NoError(t, err)

	server := transport.New(cfg, transport.Services{
		Health:       services.NewHealthService(db),
		Auth:         auth,
		Inquiries:    services.NewInquiryService(db, nil),
		Testimonials: services.NewTestimonialService(db),
		Products:     services.NewProductService(db),
		Blog:         services.NewBlogService(db),
	}, nil)
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)
	return srv.URL, login.AccessToken
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestInquiryCommands(t *testing.T) {
	url, token := newAPIServer(t)
	global := []string{"--api-url", url, "--token", token}
	with := func(args ...string) []string { return append(append([]string{}, args...), global...) }

	out, _, err := run(t, "", with("inquiries", "submit",
		"--first-name", "Jane", "--last-name", "Doe", "--email", "jane@x.com", "--product", "Yellowfin Tuna")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Inquiry #1 received")

	_, _, err = run(t, "", with("inquiries", "submit",
		"--first-name", "Omar", "--last-name", "Haddad", "--email", "omar@x.com", "--company", "Haddad Trading", "--message", "Container rates?")...)
	require.NoError(t, err)

	out, _, err = run(t, "", with("inquiries", "list", "--sort", "name")...)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Jane Doe"), strings.Index(out, "Omar Haddad"))

	out, _, err = run(t, "", with("inquiries", "list", "--search", "haddad trading")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Omar Haddad")
	assert.NotContains(t, out, "Jane Doe")

	out, _, err = run(t, "", with("inquiries", "show", "1")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Topic:    product")
	assert.Contains(t, out, "Yellowfin Tuna")

	out, _, err = run(t, "", with("inquiries", "set-status", "1", "resolved")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Inquiry status updated.")

	out, _, err = run(t, "", with("inquiries", "list", "--status", "resolved")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe")
	assert.NotContains(t, out, "Omar Haddad")

	out, _, err = run(t, "n\n", with("inquiries", "delete", "1")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")

	out, _, err = run(t, "", with("inquiries", "delete", "1", "--yes")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Inquiry deleted.")

	_, _, err = run(t, "", with("inquiries", "show", "1")...)
	assert.EqualError(t, err, "inquiry 1 not found")
}

func TestInquiryCommandErrors(t *testing.T) {
	url, token := newAPIServer(t)

	_, errOut, err := run(t, "", "inquiries", "submit", "--api-url", url, "--first-name", "Jane", "--email", "bad")
	require.Error(t, err)
	assert.Contains(t, errOut, "--last-name")
	assert.Contains(t, errOut, "--email")

	_, _, err = run(t, "", "inquiries", "list", "--api-url", url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNAUTHORIZED")

	_, _, err = run(t, "", "inquiries", "list", "--api-url", url, "--token", token, "--status", "archived")
	require.Error(t, err)

	_, _, err = run(t, "", "inquiries", "set-status", "1", "archived", "--api-url", url, "--token", token)
	require.Error(t, err)

	_, _, err = run(t, "", "inquiries", "list", "--format", "yaml")
	require.Error(t, err)
}

func TestTestimonialAndLoginCommands(t *testing.T) {
	url, _ := newAPIServer(t)

	out, _, err := run(t, "", "testimonials", "submit", "--api-url", url,
		"--name", "Ana Lima", "--content", "Excellent frozen squid, always on time.", "--rating", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Thank you!")

	_, errOut, err := run(t, "", "testimonials", "submit", "--api-url", url, "--name", "Ana", "--content", "short", "--rating", "9")
	require.Error(t, err)
	assert.Contains(t, errOut, "--rating")

	out, _, err = run(t, "", "login", "--api-url", url, "--username", "admin", "--password", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(strings.TrimSpace(out), ".")+1, "prints a JWT")
}

func TestCreateAdminCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("DATABASE_URL", "sqlite:///"+dbPath)
	t.Setenv("SECRET_KEY", "cli-test-secret")

	out, _, err := run(t, "", "create-admin", "--email", "ops@seatrade.test", "--password", "long-secret")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("Admin user %q created\n", "admin"), out)

	out, _, err = run(t, "", "create-admin", "--email", "ops@seatrade.test", "--password", "long-secret")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")

	_, _, err = run(t, "", "create-admin", "--username", "ops", "--email", "ops2@seatrade.test", "--password", "short")
	require.Error(t, err)
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "first-name", flagName("firstName"))
	assert.Equal(t, "email", flagName("email"))
}

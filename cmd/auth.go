package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/tix/internal/server"
	"github.com/desertthunder/tix/internal/services"
	"github.com/desertthunder/tix/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// AuthLogin signs in with email and password.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Infof("signing in as %v", email)

	creds := services.Credentials{Email: email, Password: password}
	if err := r.auth.Login(ctx, creds); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	r.writePlain("✓ Signed in\n")
	if user := r.auth.User(); user != "" {
		r.writePlain("Welcome back, %s\n", user)
	}
	return nil
}

// AuthRegister creates a new account.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	creds := services.Credentials{
		Name:                 cmd.String("name"),
		Email:                cmd.String("email"),
		Password:             cmd.String("password"),
		PasswordConfirmation: cmd.String("password"),
	}

	r.logger.Infof("registering account for %v", creds.Email)

	if err := r.auth.Register(ctx, creds); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	r.writePlain("✓ Account created\n")
	if r.auth.IsAuthenticated() {
		r.writePlain("You are signed in\n")
	} else {
		r.writePlain("Run 'tix auth login' to sign in\n")
	}
	return nil
}

// AuthLogout signs out and clears the stored token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if !r.auth.IsAuthenticated() {
		return r.writePlain("Already signed out\n")
	}

	if err := r.auth.Logout(ctx); err != nil {
		r.logger.Warnf("server-side logout failed: %v", err)
		return r.writePlain("✓ Signed out locally (server revocation failed)\n")
	}

	return r.writePlain("✓ Signed out\n")
}

// AuthStatus shows the current authentication state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	state := r.auth.State()
	r.writePlain("State: %s\n", state)

	if !r.auth.IsAuthenticated() {
		return nil
	}

	if user := r.auth.User(); user != "" {
		r.writePlain("User: %s\n", user)
	}

	account, err := r.api.CurrentUser(ctx)
	if err != nil {
		r.writePlain("Token: stored, but rejected by the server (%v)\n", err)
		return nil
	}

	r.writePlain("Account: %s <%s>\n", account.Name, account.Email)
	return nil
}

// AuthGoogle signs in with Google.
//
// Runs the authorization-code exchange against a local callback server, then
// trades the resulting access token for a platform bearer token.
func (r *Runner) AuthGoogle(ctx context.Context, cmd *cli.Command) error {
	google := r.config.Credentials.Google
	if google.ClientID == "" || google.ClientSecret == "" {
		// No local client credentials: fall back to the platform's own
		// redirect flow and the browser token import.
		url, err := r.api.GoogleRedirectURL(ctx)
		if err != nil {
			return fmt.Errorf("%w: Google client credentials are not set in config.toml", shared.ErrInvalidArgument)
		}

		r.writePlain("Google client credentials are not configured.\n")
		r.writePlain("Sign in on the platform site instead:\n%s\n\n", url)
		r.writePlain("Then import the session with 'tix setup browser --curl ...'\n")
		return nil
	}

	oauthConfig := &oauth2.Config{
		ClientID:     google.ClientID,
		ClientSecret: google.ClientSecret,
		RedirectURL:  google.RedirectURI,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.google.com/o/oauth2/auth",
			TokenURL: "https://oauth2.googleapis.com/token",
		},
	}

	token, err := r.doOAuth(oauthConfig, "sign-in")
	if err != nil {
		return err
	}

	resp, err := r.api.GoogleLogin(ctx, token.AccessToken)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	if resp.Token == "" {
		return fmt.Errorf("%w: platform returned no token", shared.ErrAuthFailed)
	}

	if err := r.auth.LoginSuccess(resp.Token); err != nil {
		return err
	}
	if resp.User != nil {
		r.auth.SetUser(resp.User.Name)
	}

	r.writePlainln("✓ Signed in with Google")
	return nil
}

// AuthQR signs in with a QR token scanned on another device.
func (r *Runner) AuthQR(ctx context.Context, cmd *cli.Command) error {
	token := cmd.StringArg("token")
	if token == "" {
		return fmt.Errorf("%w: token argument is required", shared.ErrMissingArgument)
	}

	if err := r.auth.LoginWithQRToken(ctx, token); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	return r.writePlain("✓ Signed in\n")
}

// AuthQRToken issues a QR sign-in token for the authenticated user.
func (r *Runner) AuthQRToken(ctx context.Context, cmd *cli.Command) error {
	if !r.auth.IsAuthenticated() {
		return fmt.Errorf("%w: sign in first", shared.ErrNotAuthenticated)
	}

	qr, err := r.api.IssueQRToken(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.writePlain("QR token: %s\n", qr.Token)
	if qr.ExpiresAt != "" {
		r.writePlain("Expires: %s\n", qr.ExpiresAt)
	}
	return nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(oauthConfig *oauth2.Config, prefix string) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	handler := server.NewCallbackHandler(oauthConfig, state)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := server.New(serverAddr, handler)

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth server for %s at %v", prefix, serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Google %s...\n", prefix)
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.CallbackResult

	select {
	case result = <-handler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Err != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Err)
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}

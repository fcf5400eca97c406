// package routes defines the client's navigable views and the policy that
// guards them.
//
// The TUI asks Guard before every navigation; the decision depends only on
// the destination and the current authentication state.
package routes

import "strings"

// Route names a navigable view.
type Route string

const (
	Home         Route = "Home"
	Session      Route = "session"
	Auth         Route = "auth"
	QRCode       Route = "QRCodePage"
	MovieBrowser Route = "MovieDiscover"
	MovieDetails Route = "MovieDetails"
	Profile      Route = "profile"
	NotFound     Route = "NotFound"
)

// Resolve maps a path to its route. Unmatched paths land on NotFound.
func Resolve(path string) Route {
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return Home
	}

	switch path {
	case "/auth":
		return Auth
	case "/qrcode":
		return QRCode
	case "/movies":
		return MovieBrowser
	case "/profile":
		return Profile
	case "/not-found":
		return NotFound
	}

	if rest, ok := strings.CutPrefix(path, "/session/"); ok && rest != "" {
		return Session
	}
	if rest, ok := strings.CutPrefix(path, "/movie/"); ok && rest != "" {
		return MovieDetails
	}

	return NotFound
}

// Guard applies the navigation policy and returns the route the navigation
// actually lands on.
//
// Signed-in users are bounced from the auth view, anonymous users from the
// profile view; everything else passes through.
func Guard(to Route, authenticated bool) Route {
	if to == Auth && authenticated {
		return Home
	}
	if to == Profile && !authenticated {
		return Home
	}
	return to
}

// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for database and stored credentials.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Revert the most recent migration instead of migrating",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "browser",
				Usage: "Import a bearer token from browser headers",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
				},
				Action: r.SetupBrowser,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Sign out and clear the stored token",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show current authentication state",
				Action: r.AuthStatus,
			},
			{
				Name:   "google",
				Usage:  "Sign in with Google via local callback server",
				Action: r.AuthGoogle,
			},
			{
				Name:  "qr",
				Usage: "Sign in with a QR token from another device",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "token"},
				},
				Action: r.AuthQR,
			},
			{
				Name:   "qr-token",
				Usage:  "Issue a QR sign-in token for another device",
				Action: r.AuthQRToken,
			},
		},
	}
}

// moviesCommand handles catalog browsing operations
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"mov"},
		Usage:   "Browse the movie catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List movies now showing",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "cinema",
						Usage: "Only movies scheduled at this cinema ID",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.MoviesList,
			},
			{
				Name:  "show",
				Usage: "Show one movie with its showtimes",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.MovieShow,
			},
			{
				Name:   "cities",
				Usage:  "List cities with cinemas",
				Action: r.CitiesList,
			},
			{
				Name:   "genres",
				Usage:  "List movie genres",
				Action: r.GenresList,
			},
			{
				Name:  "export",
				Usage: "Bulk export the movie catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (json, csv, markdown, txt)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers",
						Value: 5,
					},
					&cli.FloatFlag{
						Name:  "rate-limit",
						Usage: "Requests per second",
						Value: 5.0,
					},
					&cli.StringSliceFlag{
						Name:  "id",
						Usage: "Movie IDs to export (default: full catalog)",
					},
				},
				Action: r.MoviesExport,
			},
			{
				Name:  "comments",
				Usage: "List comments for a movie",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.MovieComments,
			},
			{
				Name:  "comment",
				Usage: "Post a comment on a movie",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "text",
						Usage:    "Comment text",
						Required: true,
					},
				},
				Action: r.MovieComment,
			},
			{
				Name:  "uncomment",
				Usage: "Delete one of your comments",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "comment-id"},
				},
				Action: r.MovieUncomment,
			},
			{
				Name:  "rate",
				Usage: "Rate a movie (1-10)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "value",
						Usage:    "Rating value from 1 to 10",
						Required: true,
					},
				},
				Action: r.MovieRate,
			},
		},
	}
}

// sessionsCommand handles showtime and concession operations
func sessionsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "sessions",
		Aliases: []string{"sess"},
		Usage:   "Showtime operations",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show a showtime's seat plan",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SessionShow,
			},
			{
				Name:   "products",
				Usage:  "List concession products",
				Action: r.ProductsList,
			},
		},
	}
}

// bookCommand performs a full seat reservation in one shot.
func bookCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "book",
		Usage: "Reserve seats for a showtime",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "session",
				Aliases:  []string{"s"},
				Usage:    "Showtime ID",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:     "seat",
				Usage:    "Seat ID to reserve (repeatable)",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  "product",
				Usage: "Concession product as id:quantity (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Book,
	}
}

// profileCommand handles account operations
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Manage your account",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the signed-in account",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ProfileShow,
			},
			{
				Name:  "update",
				Usage: "Update profile fields",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "New display name",
					},
					&cli.StringFlag{
						Name:  "email",
						Usage: "New email address",
					},
				},
				Action: r.ProfileUpdate,
			},
			{
				Name:  "password",
				Usage: "Change the account password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "current",
						Usage:    "Current password",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "new",
						Usage:    "New password",
						Required: true,
					},
				},
				Action: r.ProfilePassword,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive booking.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for ticket booking",
		Action:  r.TUI,
	}
}

package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version      VersionCmd      `cmd:"" help:"Print version."`
	Config       ConfigCmd       `cmd:"" help:"Manage configuration."`
	Status       StatusCmd       `cmd:"" help:"Check that the backend is reachable."`
	Login        LoginCmd        `cmd:"" help:"Sign in and store the session token."`
	Register     RegisterCmd     `cmd:"" help:"Create an account."`
	ConfirmEmail ConfirmEmailCmd `cmd:"" name:"confirm-email" help:"Confirm an account email address."`
	Logout       LogoutCmd       `cmd:"" help:"Forget the stored session."`
	Whoami       WhoamiCmd       `cmd:"" help:"Show the signed-in user."`
	Jobs         JobsCmd         `cmd:"" help:"List job postings."`
	Browse       BrowseCmd       `cmd:"" help:"Interactive filter shell."`
	Show         ShowCmd         `cmd:"" help:"Show one job posting."`
	Facets       FacetsCmd       `cmd:"" help:"List filter options."`
	Favorites    FavoritesCmd    `cmd:"" help:"Manage favorite postings."`
	Export       ExportCmd       `cmd:"" help:"Download a server-side export of the filtered postings."`
	Map          MapCmd          `cmd:"" help:"Postings grouped by location."`
	Geocode      GeocodeCmd      `cmd:"" help:"Resolve location labels to coordinates."`
	Seen         SeenCmd         `cmd:"" help:"Seen jobs utilities."`
}

func NewCLI() *CLI {
	return &CLI{}
}

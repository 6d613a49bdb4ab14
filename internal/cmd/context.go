package cmd

import (
	"io"

	"github.com/jimezsa/jobboard/internal/config"
	"github.com/jimezsa/jobboard/internal/ui"
	"github.com/rs/zerolog"
)

type Context struct {
	Out        io.Writer
	Err        io.Writer
	In         io.Reader
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode

	// App is built on first use. Tests set it directly.
	App  *App
	Deps AppDeps
}

// Services returns the wired application, building it on first use.
func (c *Context) Services() (*App, error) {
	if c.App != nil {
		return c.App, nil
	}
	app, err := NewApp(c.Config, c.Logger, c.Deps)
	if err != nil {
		return nil, err
	}
	c.App = app
	return app, nil
}

// Close releases whatever Services opened.
func (c *Context) Close() error {
	if c.App == nil {
		return nil
	}
	return c.App.Close()
}

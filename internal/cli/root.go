// Package cli is the blood-desk command line front end. Every command talks to
// the server through internal/client and re-renders from server state.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/blood_desk_app/internal/client"
	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "BLOOD_DESK"

// app carries the state shared by every command of one invocation.
type app struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer
	now    func() time.Time

	logger *slog.Logger
	api    *client.Client
	store  sessionStore
}

// NewRootCommand builds the command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out, errOut: errOut, now: time.Now}

	root := &cobra.Command{
		Use:           "blood-desk",
		Short:         "Front desk client for the blood bank donor directory and stock ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.String("api-base", client.DefaultBaseURL, "server base URL")
	pf.String("session-file", "", "session file (default $XDG_CONFIG_HOME/blood-desk/session.json)")
	pf.Duration("timeout", client.DefaultTimeout, "per-request timeout")
	pf.Int("low-threshold", domain.DefaultLowStockThreshold, "mark stock below this many units as low")
	pf.BoolP("verbose", "v", false, "log requests to stderr")
	mustBind(a.v.BindPFlags(pf))

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.donorsCmd(),
		a.stockCmd(),
		a.analyticsCmd(),
		a.exportCmd(),
	)
	return root
}

// mustBind panics on a flag binding error. Flags are declared statically, so a
// failure here is a programming error.
func mustBind(err error) {
	if err != nil {
		panic(fmt.Sprintf("bind flags: %v", err))
	}
}

func (a *app) setup() error {
	level := slog.LevelWarn
	if a.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	path := a.v.GetString("session-file")
	if path == "" {
		var err error
		if path, err = defaultSessionPath(); err != nil {
			return err
		}
	}
	a.store = sessionStore{path: path}
	a.api = client.New(a.v.GetString("api-base"), a.v.GetDuration("timeout"), a.logger)
	return nil
}

// session loads the stored session and rejects it once expired.
func (a *app) session() (client.Session, error) {
	s, err := a.store.Load()
	if err != nil {
		return client.Session{}, err
	}
	if s.Expired(a.now()) {
		return client.Session{}, errSessionExpired
	}
	return s, nil
}

// explain rewrites client failures into operator-facing messages.
func explain(err error) error {
	var apiErr *client.APIError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, client.ErrUnauthorized):
		return fmt.Errorf("server rejected the session (%v); run `blood-desk login` again", err)
	case errors.Is(err, client.ErrTransport):
		return fmt.Errorf("cannot reach server: %w", err)
	case errors.As(err, &apiErr):
		return errors.New(apiErr.Message)
	default:
		return err
	}
}

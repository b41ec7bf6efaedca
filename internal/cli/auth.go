package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			username := a.v.GetString("username")
			password := a.v.GetString("password")
			if username == "" || password == "" {
				return errors.New("username and password are required (--username/--password or BLOOD_DESK_USERNAME/BLOOD_DESK_PASSWORD)")
			}

			sess, err := a.api.Login(cmd.Context(), username, password)
			if err != nil {
				return explain(err)
			}
			if err := a.store.Save(sess); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in as %s (session valid until %s)\n",
				sess.User.Username, sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
	cmd.Flags().StringP("username", "u", "", "operator username")
	cmd.Flags().StringP("password", "p", "", "operator password")
	mustBind(a.v.BindPFlag("username", cmd.Flags().Lookup("username")))
	mustBind(a.v.BindPFlag("password", cmd.Flags().Lookup("password")))
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in operator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			user, err := a.api.Me(cmd.Context(), sess)
			if err != nil {
				return explain(err)
			}
			fmt.Fprintf(a.out, "%s (id %d, role %s), session valid until %s\n",
				user.Username, user.ID, user.Role, sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
}

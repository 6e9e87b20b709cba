package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/jhoicas/everest-site/internal/application/auth"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Acceso al panel de administración",
}

var adminGrantCmd = &cobra.Command{
	Use:   "grant <user-id> <email>",
	Short: "Da acceso al panel a un usuario de Supabase Auth",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAuthorizer(cmd, func(a *auth.AdminAuthorizer) error {
			adm, err := a.Grant(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			log.Info().Str("user_id", adm.ID).Str("email", adm.Email).Msg("administrador registrado")
			return nil
		})
	},
}

var adminRevokeCmd = &cobra.Command{
	Use:   "revoke <user-id>",
	Short: "Quita el acceso al panel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAuthorizer(cmd, func(a *auth.AdminAuthorizer) error {
			if err := a.Revoke(cmd.Context(), args[0]); err != nil {
				return err
			}
			log.Info().Str("user_id", args[0]).Msg("administrador eliminado")
			return nil
		})
	},
}

var adminListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista los administradores",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAuthorizer(cmd, func(a *auth.AdminAuthorizer) error {
			admins, err := a.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tCREATED")
			for _, adm := range admins {
				fmt.Fprintf(w, "%s\t%s\t%s\n", adm.ID, adm.Email, adm.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		})
	},
}

func init() {
	adminCmd.AddCommand(adminGrantCmd, adminRevokeCmd, adminListCmd)
}

func withAuthorizer(cmd *cobra.Command, fn func(a *auth.AdminAuthorizer) error) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	store, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()
	cmd.SetContext(ctx)
	return fn(auth.NewAdminAuthorizer(store))
}

package commands

import (
	"Blogicum/internal/api/dto"
	"Blogicum/internal/pkg/util"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	revokeStaff  bool
	userName     string
	userPassword string
	userEmail    string
	userStaff    bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account, optionally with the ADMIN role",
	Long: `Create an account. Use --staff to bootstrap the first administrator.

Examples:
  blogadmin user create --username admin --password 's3cret-pass' --staff`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &dto.RegisterDTO{Username: userName, Password: userPassword, Email: userEmail}
		if err := util.ValidateDTO(req); err != nil {
			return fmt.Errorf("invalid user: %v", util.FieldErrors(err))
		}

		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.close()

		ctx := commandContext(cmd)
		user, err := svc.users.Register(ctx, req)
		if err != nil {
			return err
		}
		if userStaff {
			if err = svc.users.SetStaff(ctx, svc.viewer, user.Username, true); err != nil {
				return err
			}
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s) staff=%t\n", user.ID, user.Username, userStaff)
		return nil
	},
}

var userPromoteCmd = &cobra.Command{
	Use:   "promote <username>",
	Short: "Grant (or with --revoke, remove) the ADMIN role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.close()

		if err = svc.users.SetStaff(commandContext(cmd), svc.viewer, args[0], !revokeStaff); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "user %s staff=%t (takes effect on next login)\n", args[0], !revokeStaff)
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete a user together with their posts and comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.close()

		if err = svc.users.DeleteUser(commandContext(cmd), svc.viewer, args[0]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted user %s\n", args[0])
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userName, "username", "", "Login name")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "Password")
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "Email address")
	userCreateCmd.Flags().BoolVar(&userStaff, "staff", false, "Grant the ADMIN role")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("password")

	userPromoteCmd.Flags().BoolVar(&revokeStaff, "revoke", false, "Remove the ADMIN role instead of granting it")

	userCmd.AddCommand(userCreateCmd, userPromoteCmd, userDeleteCmd)
	rootCmd.AddCommand(userCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reservekit/reserve-client/internal/domain"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "View and manage user profiles",
}

var userShowCmd = &cobra.Command{
	Use:   "show <username>",
	Short: "Show a user's public profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserShow,
}

var userUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your nickname and description",
	RunE:  runUserUpdate,
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change your password",
	RunE:  runUserPasswd,
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete your account",
	RunE:  runUserDelete,
}

var (
	flagUserNickname    string
	flagUserDescription string
	flagOldPassword     string
	flagNewPassword     string
	flagDeletePassword  string
)

func init() {
	userUpdateCmd.Flags().StringVar(&flagUserNickname, "nickname", "", "display nickname")
	userUpdateCmd.Flags().StringVar(&flagUserDescription, "description", "", "profile description")

	userPasswdCmd.Flags().StringVar(&flagOldPassword, "old", "", "current password")
	userPasswdCmd.Flags().StringVar(&flagNewPassword, "new", "", "new password")

	userDeleteCmd.Flags().StringVar(&flagDeletePassword, "password", "", "current password, to confirm deletion")

	userCmd.AddCommand(userShowCmd, userUpdateCmd, userPasswdCmd, userDeleteCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	user, err := a.users.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\nmember since %s\n%s\n", user.Username, user.Nickname, user.SignUpDate, user.Description)
	return nil
}

func runUserUpdate(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	return a.users.Update(cmd.Context(), domain.UserUpdateRequest{
		Nickname:    flagUserNickname,
		Description: flagUserDescription,
	})
}

func runUserPasswd(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	return a.users.UpdatePassword(cmd.Context(), domain.PasswordUpdateRequest{
		OldPassword:  flagOldPassword,
		NewPassword:  flagNewPassword,
		Confirmation: flagNewPassword,
	})
}

func runUserDelete(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	err = a.users.Delete(cmd.Context(), domain.UserDeleteRequest{Password: flagDeletePassword})
	if err != nil {
		return err
	}
	// The session is dropped only once the server has confirmed deletion.
	if err := a.tokens.Clear(); err != nil {
		return fmt.Errorf("account deleted but local session not cleared: %w", err)
	}
	fmt.Println("account deleted")
	return nil
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reservekit/reserve-client/internal/auth"
	"github.com/reservekit/reserve-client/internal/domain"
)

var signUpCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a new account",
	RunE:  runSignUp,
}

var signInCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in and store the session",
	RunE:  runSignIn,
}

var signOutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out and clear the stored session",
	RunE:  runSignOut,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session identity",
	RunE:  runWhoami,
}

var (
	flagUsername string
	flagPassword string
	flagNickname string
)

func init() {
	signUpCmd.Flags().StringVar(&flagUsername, "username", "", "account username")
	signUpCmd.Flags().StringVar(&flagNickname, "nickname", "", "display nickname")
	signUpCmd.Flags().StringVar(&flagPassword, "password", "", "account password")

	signInCmd.Flags().StringVar(&flagUsername, "username", "", "account username")
	signInCmd.Flags().StringVar(&flagPassword, "password", "", "account password")

	rootCmd.AddCommand(signUpCmd, signInCmd, signOutCmd, whoamiCmd)
}

func runSignUp(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	err = a.sessions.SignUp(cmd.Context(), domain.SignUpRequest{
		Username:             flagUsername,
		Nickname:             flagNickname,
		Password:             flagPassword,
		PasswordConfirmation: flagPassword,
	})
	if err != nil {
		return err
	}
	fmt.Printf("account %q registered\n", flagUsername)
	return nil
}

func runSignIn(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.sessions.SignIn(cmd.Context(), flagUsername, flagPassword); err != nil {
		if errors.Is(err, auth.ErrWrongCredentials) {
			return errors.New("invalid username or password")
		}
		return err
	}
	session, _ := a.sessions.Session()
	fmt.Printf("signed in as %s (%s)\n", session.User.Username, session.User.Nickname)
	return nil
}

func runSignOut(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	// Local state is cleared even when the server call fails.
	if err := a.sessions.SignOut(cmd.Context()); err != nil {
		fmt.Println("signed out locally; server sign-out failed:", err)
		return nil
	}
	fmt.Println("signed out")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	a.sessions.Start(cmd.Context())
	session, ok := a.sessions.Session()
	if !ok {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("%s (%s), user id %s\n", session.User.Username, session.User.Nickname, session.User.UserID)
	return nil
}

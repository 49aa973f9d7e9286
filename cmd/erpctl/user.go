package main

import (
	"errors"
	"fmt"

	"go-erp-api/internal/apperrors"
	"go-erp-api/internal/model"
	"go-erp-api/internal/repository"
	"go-erp-api/internal/service"
	"go-erp-api/pkg/database"

	"github.com/spf13/cobra"
)

var (
	username string
	password string
	active   bool
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Register a user with the same rules as the register endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := connect()
		if err != nil {
			return err
		}
		defer database.Close(db)

		user, err := newAuthService(cfg, db).Register(cmd.Context(), service.RegisterRequest{
			Username:       username,
			Password:       password,
			RepeatPassword: password,
		})
		if err != nil {
			return describe(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "User %s created (%s)\n", user.Username, user.ID)
		return nil
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password and revoke every session of the user",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := connect()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := newAuthService(cfg, db).ResetPassword(cmd.Context(), username, password); err != nil {
			return describe(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Password for %s has been reset\n", username)
		return nil
	},
}

var userStatusCmd = &cobra.Command{
	Use:   "user-status",
	Short: "Activate or deactivate a user; either way their sessions are revoked",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := connect()
		if err != nil {
			return err
		}
		defer database.Close(db)

		users := repository.NewUserRepo(db)
		user, err := users.FindByUsername(cmd.Context(), username)
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("user %s not found", username)
		}
		if err != nil {
			return err
		}

		res, err := service.NewUserService(users).SetUserStatus(cmd.Context(), user.ID.String(), active, nil)
		if err != nil {
			return describe(err)
		}
		state := "inactive"
		if res.Status == model.UserActive {
			state = "active"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "User %s is now %s\n", res.Username, state)
		return nil
	},
}

// describe flattens validation errors into one readable line.
func describe(err error) error {
	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	msg := verr.Message
	for _, v := range verr.Violations {
		msg += fmt.Sprintf("; %s: %s", v.Field, v.Message)
	}
	return errors.New(msg)
}

func init() {
	for _, cmd := range []*cobra.Command{createUserCmd, resetPasswordCmd} {
		cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
		cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
		_ = cmd.MarkFlagRequired("username")
		_ = cmd.MarkFlagRequired("password")
		rootCmd.AddCommand(cmd)
	}

	userStatusCmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	userStatusCmd.Flags().BoolVar(&active, "active", true, "Whether the account may sign in")
	_ = userStatusCmd.MarkFlagRequired("username")
	rootCmd.AddCommand(userStatusCmd)
}

package main

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/cinenz0/finance-tracker/internal/cli"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change account settings",
	}

	cmd.AddCommand(settingsShowCmd())
	cmd.AddCommand(settingsAccountNameCmd())
	cmd.AddCommand(settingsThemeCmd())
	cmd.AddCommand(settingsProfileImageCmd())

	return cmd
}

func settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			kv, registry, err := openRegistry(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			fmt.Printf("Account name:  %s\n", registry.AccountName())
			fmt.Printf("Theme:         %s\n", registry.Theme())
			image := "not set"
			if registry.ProfileImage() != "" {
				image = fmt.Sprintf("set (%d bytes)", len(registry.ProfileImage()))
			}
			fmt.Printf("Profile image: %s\n", image)
			return nil
		},
	}
}

func settingsAccountNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "account-name <name>",
		Short: "Set the display name of the account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kv, registry, err := openRegistry(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			registry.SetAccountName(ctx, args[0])
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Account name set to %q", registry.AccountName())))
			return nil
		},
	}
}

func settingsThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme <dark|light>",
		Short: "Set the color theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kv, registry, err := openRegistry(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			if err := registry.SetTheme(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Theme set to %s", args[0])))
			return nil
		},
	}
}

func settingsProfileImageCmd() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "profile-image [file]",
		Short: "Set or clear the profile image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kv, registry, err := openRegistry(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			if clear {
				registry.SetProfileImage(ctx, "")
				fmt.Println(cli.FormatSuccess("Profile image cleared"))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("provide an image file or --clear")
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}

			mime := http.DetectContentType(data)
			dataURL := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
			registry.SetProfileImage(ctx, dataURL)

			fmt.Println(cli.FormatSuccess("Profile image updated"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "remove the stored image")

	return cmd
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/v1k45/gogett/internal/app"
	"github.com/v1k45/gogett/internal/config"
	"github.com/v1k45/gogett/internal/services/gett"
	"github.com/v1k45/gogett/internal/utils"
	"golang.org/x/term"
)

const version = "0.1.0"

var configPath string

func main() {
	// Get default config path
	defaultConfigPath, err := config.DefaultConfigPath()
	if err != nil {
		defaultConfigPath = "./config.toml"
	}

	// Root command
	rootCmd := &cobra.Command{
		Use:   "gogett",
		Short: "Ge.tt file sharing client",
		Long:  "Command line client for the Ge.tt file sharing service: list shares, upload and download files.",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Path to config file")

	var limit, skip int
	sharesCmd := &cobra.Command{
		Use:   "shares",
		Short: "List the account's shares",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := buildContainer()
			if err != nil {
				return err
			}
			shares, err := container.Gett.ListShares(cmd.Context(), &gett.ListOptions{Limit: limit, Skip: skip})
			if err != nil {
				return err
			}
			for _, share := range shares {
				fmt.Printf("%-12s %-30s %d file(s)\n", share.Sharename, share.Title, len(share.Files))
			}
			return nil
		},
	}
	sharesCmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of shares to list")
	sharesCmd.Flags().IntVar(&skip, "skip", 0, "Number of shares to skip")

	shareCmd := &cobra.Command{
		Use:   "share <sharename>",
		Short: "Show a single share and its files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := buildContainer()
			if err != nil {
				return err
			}
			share, err := container.Gett.GetShare(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s  %s  %s\n", share.Sharename, share.Title, share.GettURL)
			for _, file := range share.Files {
				fmt.Printf("  %4d %-30s %8s %s\n", file.FileID, file.Filename, utils.FormatSize(file.Size), file.ReadyState)
			}
			return nil
		},
	}

	var title string
	createShareCmd := &cobra.Command{
		Use:   "create-share",
		Short: "Create a new share",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := buildContainer()
			if err != nil {
				return err
			}
			share, err := container.Gett.CreateShare(cmd.Context(), title)
			if err != nil {
				return err
			}
			fmt.Printf("Created share %s (%s)\n", share.Sharename, share.GettURL)
			return nil
		},
	}
	createShareCmd.Flags().StringVar(&title, "title", "", "Title for the new share")

	fileCmd := &cobra.Command{
		Use:   "file <sharename> <fileid>",
		Short: "Show a file's metadata",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileID, err := parseFileID(args[1])
			if err != nil {
				return err
			}
			container, err := buildContainer()
			if err != nil {
				return err
			}
			file, err := container.Gett.GetFile(cmd.Context(), args[0], fileID)
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s, %d downloads, %s)\n", file.Filename, utils.FormatSize(file.Size), file.Downloads, file.ReadyState)
			fmt.Printf("%s\n", file.LiveURL())
			return nil
		},
	}

	var uploadShare, uploadTitle string
	uploadCmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a file, creating a share when none is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			container, err := buildContainer()
			if err != nil {
				return err
			}
			file, err := container.Gett.UploadFile(cmd.Context(), gett.UploadRequest{
				Filename:  filepath.Base(args[0]),
				Data:      data,
				Sharename: uploadShare,
				Title:     uploadTitle,
			})
			if err != nil {
				return err
			}
			container.Logger.Infof("Uploaded %s (%s) to share %s", file.Filename, utils.FormatSize(int64(len(data))), file.Sharename)
			fmt.Printf("%s\n", file.GettURL)
			return nil
		},
	}
	uploadCmd.Flags().StringVar(&uploadShare, "share", "", "Existing share to upload into")
	uploadCmd.Flags().StringVar(&uploadTitle, "title", "", "Title for the share created when --share is not given")

	var output string
	downloadCmd := &cobra.Command{
		Use:   "download <sharename> <fileid>",
		Short: "Download a file's content",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileID, err := parseFileID(args[1])
			if err != nil {
				return err
			}
			container, err := buildContainer()
			if err != nil {
				return err
			}
			file, err := container.Gett.GetFile(cmd.Context(), args[0], fileID)
			if err != nil {
				return err
			}
			data, err := file.Content(cmd.Context())
			if err != nil {
				return err
			}
			target := output
			if target == "" {
				target = file.Filename
			}
			if err := os.WriteFile(target, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", target, err)
			}
			container.Logger.Infof("Downloaded %s (%s)", target, utils.FormatSize(int64(len(data))))
			return nil
		},
	}
	downloadCmd.Flags().StringVarP(&output, "output", "o", "", "Output path, default the remote filename")

	destroyShareCmd := &cobra.Command{
		Use:   "destroy-share <sharename>",
		Short: "Remove a share and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := buildContainer()
			if err != nil {
				return err
			}
			return container.Gett.DestroyShare(cmd.Context(), args[0])
		},
	}

	destroyFileCmd := &cobra.Command{
		Use:   "destroy-file <sharename> <fileid>",
		Short: "Remove a single file from a share",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileID, err := parseFileID(args[1])
			if err != nil {
				return err
			}
			container, err := buildContainer()
			if err != nil {
				return err
			}
			return container.Gett.DestroyFile(cmd.Context(), args[0], fileID)
		},
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated account",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := buildContainer()
			if err != nil {
				return err
			}
			user, err := container.Gett.GetMe(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s>\n", user.FullName, user.Email)
			fmt.Printf("Storage: %s of %s used\n", utils.FormatSize(user.Storage.Used), utils.FormatSize(user.Storage.Limit+user.Storage.Extra))
			return nil
		},
	}

	generateConfigCmd := &cobra.Command{
		Use:   "generate-config",
		Short: "Generate config",
		RunE: func(cmd *cobra.Command, args []string) error {
			return utils.GenerateConfig(configPath)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gogett version %s\n", version)
		},
	}

	rootCmd.AddCommand(sharesCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(createShareCmd)
	rootCmd.AddCommand(fileCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(destroyShareCmd)
	rootCmd.AddCommand(destroyFileCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(generateConfigCmd)
	rootCmd.AddCommand(versionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildContainer loads and validates the configuration, prompting for the
// account password when the config file does not carry one.
func buildContainer() (*app.Container, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Gett.Password == "" {
		password, err := promptPassword()
		if err != nil {
			return nil, err
		}
		cfg.Gett.Password = password
	}

	return app.NewContainer(cfg, app.WithLoginVerification(false))
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Ge.tt password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

// parseFileID turns a command line argument into a numeric file id.
// A non-integer id is rejected here, before any network use.
func parseFileID(arg string) (int64, error) {
	fileID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("fileid must be an integer, got %q", arg)
	}
	return fileID, nil
}

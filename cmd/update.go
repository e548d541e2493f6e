package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/shaharia-lab/nomadweb/internal/build"
)

const releaseSlug = "shaharia-lab/nomadweb"

// NewUpdateCmd returns the "update" subcommand that self-updates the binary.
func NewUpdateCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update nomadweb to the latest release",
		Long:  "Check GitHub releases for a newer version of nomadweb and update the binary in place.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpdate(cmd.Context(), yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	return cmd
}

// currentVersion parses the build version, rejecting dev builds.
func currentVersion(v string) (*semver.Version, error) {
	v = strings.TrimPrefix(v, "v")
	if v == "dev" || v == "unknown" || v == "" {
		return nil, fmt.Errorf("cannot update a dev build; install a tagged release first")
	}
	cur, err := semver.NewVersion(v)
	if err != nil {
		return nil, fmt.Errorf("parsing current version %q: %w", v, err)
	}
	return cur, nil
}

func runUpdate(ctx context.Context, skipConfirm bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	current, err := currentVersion(build.Version)
	if err != nil {
		return err
	}

	fmt.Printf("Current version: %s\n", current)
	fmt.Print("Checking for updates... ")

	updater, err := selfupdate.NewUpdater(selfupdate.Config{})
	if err != nil {
		return fmt.Errorf("creating updater: %w", err)
	}

	release, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(releaseSlug))
	if err != nil {
		return fmt.Errorf("checking for updates: %w", err)
	}
	if !found {
		fmt.Println("already up to date.")
		return nil
	}

	latest, err := semver.NewVersion(release.Version())
	if err != nil {
		return fmt.Errorf("parsing release version %q: %w", release.Version(), err)
	}
	if !latest.GreaterThan(current) {
		fmt.Println("already up to date.")
		return nil
	}

	fmt.Printf("found %s\n", latest)

	if !skipConfirm {
		fmt.Printf("Update to %s? [y/N] ", latest)
		var input string
		fmt.Scanln(&input) //nolint:errcheck,gosec
		if input != "y" && input != "Y" {
			fmt.Println("Update canceled.")
			return nil
		}
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("finding current executable: %w", err)
	}

	fmt.Printf("Updating to %s...\n", latest)
	if err := updater.UpdateTo(ctx, release, exe); err != nil {
		return fmt.Errorf("updating: %w", err)
	}

	fmt.Printf("Updated to %s. Restart nomadweb to use the new version.\n", latest)
	return nil
}

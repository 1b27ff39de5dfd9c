package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func BackupCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Copy the quest file to and from S3-compatible storage",
	}

	cmd.AddCommand(backupPushCmd(s))
	cmd.AddCommand(backupPullCmd(s))
	cmd.AddCommand(backupURLCmd(s))
	return cmd
}

func backupPushCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Upload the quest file",
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := s.app.BackupService(cmd.Context())
			if err != nil {
				return err
			}

			if err := s.load(); err != nil {
				return err
			}

			err = backup.Push(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Backup uploaded.")
			return nil
		},
	}
}

func backupPullCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Download the backup and overwrite the quest file",
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := s.app.BackupService(cmd.Context())
			if err != nil {
				return err
			}

			result, err := backup.Pull(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return s.save(cmd.OutOrStdout())
		},
	}
}

func backupURLCmd(s *session) *cobra.Command {
	var expiry time.Duration

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print a temporary download link for the backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := s.app.BackupService(cmd.Context())
			if err != nil {
				return err
			}

			url, err := backup.Link(cmd.Context(), expiry)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	cmd.Flags().DurationVar(&expiry, "expiry", time.Hour, "how long the link stays valid")
	return cmd
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/croxio/s3kit"
	"github.com/croxio/s3kit/s3types"
)

// cliFlags holds the persistent flags shared by every subcommand.
type cliFlags struct {
	profile  string
	region   string
	endpoint string
	bucket   string
	config   string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}

	cmd := &cobra.Command{
		Use:           "s3kit",
		Short:         "Convenience CLI for S3 objects and tabular data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.profile, "profile", "", "AWS profile name")
	cmd.PersistentFlags().StringVar(&flags.region, "region", "", "AWS region")
	cmd.PersistentFlags().StringVar(&flags.endpoint, "endpoint", "", "custom S3 endpoint URL")
	cmd.PersistentFlags().StringVarP(&flags.bucket, "bucket", "b", "", "bucket name")
	cmd.PersistentFlags().StringVar(&flags.config, "config", "", "YAML file with store defaults")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log operations to stderr")

	cmd.AddCommand(
		newLsCmd(flags),
		newGetCmd(flags),
		newPutCmd(flags),
		newRmCmd(flags),
		newWhoamiCmd(flags),
	)
	return cmd
}

// newClient builds a client from the persistent flags.
func (f *cliFlags) newClient() (*s3kit.Client, error) {
	opts := []s3types.Option{}
	if f.profile != "" {
		opts = append(opts, s3kit.WithProfile(f.profile))
	}
	if f.region != "" {
		opts = append(opts, s3kit.WithRegion(f.region))
	}
	if f.endpoint != "" {
		opts = append(opts, s3kit.WithEndpoint(f.endpoint), s3kit.WithForcePathStyle(true))
	}
	if f.verbose {
		opts = append(opts, s3kit.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))))
	}
	return s3kit.New(opts...)
}

// newStore builds a store from the flags, layering the YAML defaults file
// (if any) under the command-line bucket.
func (f *cliFlags) newStore() (*s3kit.Store, error) {
	client, err := f.newClient()
	if err != nil {
		return nil, err
	}

	var opts []s3types.StoreOption
	if f.config != "" {
		opts, err = s3kit.ConfigFromYAML(afero.NewOsFs(), f.config)
		if err != nil {
			return nil, err
		}
	}
	if f.bucket != "" {
		opts = append(opts, s3kit.WithBucket(f.bucket))
	}
	return client.Store(opts...), nil
}

func newLsCmd(flags *cliFlags) *cobra.Command {
	var long bool
	var limit int32

	cmd := &cobra.Command{
		Use:   "ls [prefix]",
		Short: "List object keys under a prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := flags.newStore()
			if err != nil {
				return err
			}

			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}

			var opts []s3types.CallOption
			if limit > 0 {
				opts = append(opts, s3kit.Limit(limit))
			}

			objects, err := store.List(cmd.Context(), prefix, opts...)
			if err != nil {
				return err
			}
			for _, obj := range objects {
				if long {
					fmt.Fprintf(cmd.OutOrStdout(), "%12d  %s  %s\n",
						obj.Size, obj.LastModified.Format("2006-01-02 15:04:05"), obj.Key)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), obj.Key)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "show size and modification time")
	cmd.Flags().Int32Var(&limit, "limit", 0, "maximum number of keys")
	return cmd
}

func newGetCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key> [path]",
		Short: "Download an object to a local path",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := flags.newStore()
			if err != nil {
				return err
			}

			target := "."
			if len(args) == 2 {
				target = args[1]
			}
			return store.Download(cmd.Context(), args[0], target)
		},
	}
}

func newPutCmd(flags *cliFlags) *cobra.Command {
	var noOverwrite bool

	cmd := &cobra.Command{
		Use:   "put <path> <key>",
		Short: "Upload a local file to an object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := flags.newStore()
			if err != nil {
				return err
			}

			var opts []s3types.CallOption
			if noOverwrite {
				opts = append(opts, s3kit.Overwrite(false))
			}
			return store.UploadFile(cmd.Context(), args[0], args[1], opts...)
		},
	}

	cmd.Flags().BoolVar(&noOverwrite, "no-overwrite", false, "fail if the key already exists")
	return cmd
}

func newRmCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <key>...",
		Short: "Delete objects",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := flags.newStore()
			if err != nil {
				return err
			}
			return store.DeleteBatch(cmd.Context(), args)
		},
	}
}

func newWhoamiCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the caller identity behind the active credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := flags.newClient()
			if err != nil {
				return err
			}

			identity, err := client.Identity(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "account: %s\narn:     %s\nuser:    %s\n",
				identity.Account, identity.ARN, identity.UserID)
			return nil
		},
	}
}

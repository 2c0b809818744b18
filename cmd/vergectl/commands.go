// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ManuGH/verge/internal/platform/paths"
	"github.com/ManuGH/verge/internal/verge"
	"github.com/ManuGH/verge/internal/version"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

// path returns --config when given, otherwise the default location.
// create makes sure the application home exists for commands that write.
func (o *rootOptions) path(create bool) (string, error) {
	if p := strings.TrimSpace(o.configPath); p != "" {
		return p, nil
	}
	if create {
		if _, err := paths.EnsureAppHomeDir(); err != nil {
			return "", err
		}
	}
	return paths.VergePath()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "vergectl",
		Short:        "Inspect and edit the Clash Verge settings file",
		Version:      version.String(),
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"path to verge.yaml (default: $VERGE_HOME/verge.yaml)")

	root.AddCommand(
		newShowCmd(opts),
		newPatchCmd(opts),
		newPathCmd(opts),
		newValidateCmd(opts),
	)
	return root
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.path(false)
			if err != nil {
				return err
			}
			cfg := verge.Load(path)

			var out []byte
			switch format {
			case "yaml":
				out, err = verge.Encode(cfg, "")
			case "json":
				out, err = json.MarshalIndent(cfg, "", "  ")
				out = append(out, '\n')
			default:
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}

func newPatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "patch key=value...",
		Short: "Apply a partial update and save it",
		Long: `Apply a partial update and save it.

Keys not named keep their stored value. Theme entries are written as
theme_setting.<key>=<value>; naming any of them replaces the whole theme
block. An empty value leaves the key unchanged.`,
		Example: `  vergectl patch theme_mode=dark
  vergectl patch enable_proxy_guard=true proxy_guard_duration=30
  vergectl patch theme_setting.primary_color=#ff0000`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := verge.ParseAssignments(args)
			if err != nil {
				return err
			}
			path, err := opts.path(true)
			if err != nil {
				return err
			}

			v := verge.New(path)
			before := v.Config()
			if err := v.PatchConfig(patch); err != nil {
				return err
			}

			changed := verge.Changed(before, v.Config())
			if len(changed) == 0 {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "no changes, saved %s\n", path)
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "updated %s in %s\n", strings.Join(changed, ", "), path)
			return err
		},
	}
}

func newPathCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.path(false)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the settings file parses and has no unknown keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.path(false)
			if err != nil {
				return err
			}
			cfg, err := verge.LoadStrict(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d keys set)\n", path, len(cfg.PresentKeys()))
			return err
		},
	}
}

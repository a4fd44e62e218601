/*
 * root.go, part of gocada.
 *
 * Copyright 2026 The gocada authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"io"
	"log/slog"

	"github.com/gocada/gocada/settings"
	"github.com/spf13/cobra"
)

func newLogger(w io.Writer, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "gocada",
		Short:        "Contact detection in protein structures",
		SilenceUsage: true,
	}
	cmd.AddCommand(runCmd(), configCmd())
	return cmd
}

func configCmd() *cobra.Command {
	var file string
	c := &cobra.Command{
		Use:   "config",
		Short: "Print the contact criteria in use as YAML",
		Long: "Print the default contact criteria, or those resulting from --config and the\n" +
			settings.EnvPrefix + "_ environment variables, as a YAML file that run --config accepts.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := settings.Load(file)
			if err != nil {
				return err
			}
			return settings.Dump(cmd.OutOrStdout(), c)
		},
	}
	c.Flags().StringVarP(&file, "config", "c", "", "Settings file (YAML, JSON or TOML)")
	return c
}

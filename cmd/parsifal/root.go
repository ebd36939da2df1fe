package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheCulprit/parsifal/pkg/parsifal"
)

func newRootCmd() *cobra.Command {
	var (
		dir     string
		seed    int64
		library string
		file    string
	)

	cmd := &cobra.Command{
		Use:   "parsifal [template]",
		Short: "Parsifal is a dynamic text generation engine",
		Long: `Parsifal evaluates bracket-tag templates mixing literal text with
commands for randomization, variables, conditionals, macros and a
tag-queryable content registry. A fixed --seed reproduces output exactly.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			template, err := readTemplate(args, file)
			if err != nil {
				return err
			}

			opts := []parsifal.Option{parsifal.WithRootDir(dir)}
			if cmd.Flags().Changed("seed") {
				opts = append(opts, parsifal.WithSeed(seed))
			}

			rt := parsifal.New(opts...)
			if library != "" {
				if err := rt.LoadLibrary(library); err != nil {
					return fmt.Errorf("loading library %s: %w", library, err)
				}
			}

			out, err := rt.Parse(template)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Root directory for templates")
	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "Random seed (random when omitted)")
	cmd.Flags().StringVarP(&library, "library", "l", "", "A folder to pre-load using [library]")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the template from a file")

	return cmd
}

func readTemplate(args []string, file string) (string, error) {
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return "", fmt.Errorf("a template argument or --file is required")
}

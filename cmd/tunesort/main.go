package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tunesort/tunesort/internal/config"
	"github.com/tunesort/tunesort/internal/organize"
	"github.com/tunesort/tunesort/internal/tags"
)

func main() {
	root := &cobra.Command{
		Use:   "tunesort",
		Short: "Organize a music library from its tags",
	}

	var cfgPath string
	root.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "path to config file")

	root.AddCommand(previewCmd(&cfgPath))
	root.AddCommand(applyCmd(&cfgPath))
	root.AddCommand(renderCmd(&cfgPath))
	root.AddCommand(initCmd(&cfgPath))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// organizeFlags are the per-command overrides for the configured settings.
type organizeFlags struct {
	library   string
	dest      string
	template  string
	copyFiles bool
	playlists bool
	verbose   bool
	workers   int
}

func (f *organizeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.library, "library", "", "library path to scan (overrides config)")
	cmd.Flags().StringVar(&f.dest, "dest", "", "destination path (overrides config)")
	cmd.Flags().StringVar(&f.template, "template", "", "filename template (overrides config)")
	cmd.Flags().BoolVar(&f.copyFiles, "copy", false, "copy files instead of moving them")
	cmd.Flags().BoolVar(&f.playlists, "playlists", false, "create a playlist per album directory")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "show verbose output")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "number of concurrent file operations (overrides config)")
}

func (f *organizeFlags) apply(settings *config.Settings) {
	if f.library != "" {
		settings.LibraryPath = f.library
	}
	if f.dest != "" {
		settings.DestinationPath = f.dest
	}
	if f.template != "" {
		settings.Template = f.template
	}
	if f.copyFiles {
		settings.CopyInsteadOfMove = true
	}
	if f.playlists {
		settings.CreatePlaylists = true
	}
	if f.workers > 0 {
		settings.MaxWorkers = f.workers
	}
}

func previewCmd(cfgPath *string) *cobra.Command {
	flags := &organizeFlags{}
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show where each song would go, without touching any files",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			flags.apply(settings)

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			manager := organize.NewManager(settings, progressPrinter(flags.verbose))
			if err := manager.Scan(ctx); err != nil {
				return err
			}

			entries := manager.Plan()
			if len(entries) == 0 {
				fmt.Println("Nothing to organize.")
				return nil
			}

			fmt.Println()
			for _, entry := range entries {
				fmt.Printf("%s\n  -> %s\n", entry.Source, entry.Destination)
			}
			fmt.Printf("\n%d file(s) planned. Run \"tunesort apply\" to organize them.\n", len(entries))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func applyCmd(cfgPath *string) *cobra.Command {
	flags := &organizeFlags{}
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Organize the library into the destination layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			flags.apply(settings)

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			manager := organize.NewManager(settings, progressPrinter(flags.verbose))
			if err := manager.Scan(ctx); err != nil {
				return err
			}
			if entries := manager.Plan(); len(entries) == 0 {
				fmt.Println("Nothing to organize.")
				return nil
			}

			if err := manager.Apply(ctx); err != nil {
				if ctx.Err() != nil {
					fmt.Println("\nCancelled.")
					os.Exit(130)
				}
				return err
			}

			processed, total := manager.GetProgress()
			fmt.Printf("\nDone. Organized %d/%d files into %s\n", processed, total, settings.DestinationPath)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func renderCmd(cfgPath *string) *cobra.Command {
	flags := &organizeFlags{}
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Print the destination path one audio file would get",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			flags.apply(settings)

			song, err := tags.Read(args[0])
			if err != nil {
				return err
			}

			result, err := settings.Format().Render(song, "", settings.RenderOptions())
			if err != nil {
				return fmt.Errorf("no usable destination for %s", args[0])
			}

			fmt.Println(filepath.Join(settings.DestinationPath, filepath.FromSlash(result.Path)))
			if !result.IsUnique {
				fmt.Fprintln(os.Stderr, "warning: template has no unique tag, songs may collide")
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func initCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(*cfgPath); err == nil {
				return fmt.Errorf("%s already exists", *cfgPath)
			}
			if err := config.DefaultSettings().Save(*cfgPath); err != nil {
				return err
			}
			fmt.Println("wrote", *cfgPath)
			return nil
		},
	}
}

// progressPrinter prints manager events to stdout, filtering verbose
// ones unless requested.
func progressPrinter(verbose bool) func(organize.ProgressEvent) {
	return func(event organize.ProgressEvent) {
		if event.Level == organize.LevelVerbose && !verbose {
			return
		}

		prefix := "   "
		switch event.Level {
		case organize.LevelError:
			prefix = "x  "
		case organize.LevelWarning:
			prefix = "!  "
		case organize.LevelSuccess:
			prefix = "+  "
		case organize.LevelInfo:
			prefix = ">  "
		}

		fmt.Println(prefix + event.Message)
	}
}

func defaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "tunesort.json"
	}
	return filepath.Join(configDir, "tunesort", "settings.json")
}

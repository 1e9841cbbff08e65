package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"f2yaml/internal/adapters/filesystem"
	"f2yaml/internal/adapters/sqlite"
	"f2yaml/internal/application"
	"f2yaml/internal/config"
)

var (
	rootPath   string
	configPath string
	verbose    bool

	cfg    *config.Config
	engine *application.Engine
	store  *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "f2yaml-cli",
	Short: "Time tracking on YAML tasks",
	Long: `f2yaml-cli times work on tasks kept in YAML files and records it in a
standup report, then copies the report into each task's WorkLog.

Tasks are addressed with F2YAML links such as
  -->Work/ProjectA//tasks.."Fix bug"<
where segment 0 names the file (folders, a doubled separator, the file
name) and each following segment one key.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
		if rootPath != "" {
			cfg.RootPath = config.ExpandHome(rootPath)
		}

		logger := log.New(io.Discard, "", 0)
		if verbose {
			logger = log.New(os.Stderr, "f2yaml: ", log.Ltime)
		}

		ws := filesystem.NewWorkspace(cfg.RootPath, cfg.PathSeparator, cfg.FileExtensions)
		engine = application.NewEngine(ws, options(cfg), logger)

		store, err = sqlite.Open(cfg.StatePath)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store == nil {
			return nil
		}
		return store.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", "", "workspace root holding the task files (default from config)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.f2yaml/config.yaml then ./.f2yaml/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace link resolution on stderr")
}

func options(c *config.Config) application.Options {
	return application.Options{
		IgnoreWords:   c.IgnoreWords,
		PathSeparator: c.PathSeparator,
		UserName:      c.UserName,
		CSVFields:     c.CSVFields,
	}
}

// GetEngine returns the initialized engine
func GetEngine() *application.Engine {
	return engine
}

// GetStore returns the opened session store
func GetStore() *sqlite.Store {
	return store
}

package cmd

import (
	"fmt"
	"os"

	"github.com/carlmjohnson/versioninfo"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vlscroll/vl/internal"
	"github.com/vlscroll/vl/internal/constants"
	"github.com/vlscroll/vl/internal/keymap"
	"github.com/vlscroll/vl/internal/source"
)

var (
	// Version is public so users can optionally specify or override the version
	// at build time by passing in ldflags, e.g.
	//   go build -ldflags "-X github.com/vlscroll/vl/cmd.Version=vX.Y.Z"
	Version = ""
)

type arg struct {
	cliShort, cfgFileEnvVar, description, defaultString string
	isBool, isInt, defaultIfBool                        bool
	defaultIfInt                                        int
}

var (
	rootNameToArg = map[string]arg{
		"count": {
			cliShort:      "c",
			cfgFileEnvVar: "count",
			description:   `Number of generated sample records when no database is given`,
			isInt:         true,
			defaultIfInt:  constants.DefaultGeneratedCount,
		},
		"db": {
			cliShort:      "",
			cfgFileEnvVar: "db",
			description:   `Path to a SQLite database to view records from`,
		},
		"help": {
			description: `Print usage`,
		},
		"overscan": {
			cliShort:      "",
			cfgFileEnvVar: "overscan",
			description:   `Extra records resolved beyond the visible window on each end`,
			isInt:         true,
			defaultIfInt:  constants.DefaultOverscan,
		},
		"page-size": {
			cliShort:      "p",
			cfgFileEnvVar: "page-size",
			description:   `Records fetched per page`,
			isInt:         true,
			defaultIfInt:  constants.DefaultPageSize,
		},
		"row-estimate": {
			cliShort:      "",
			cfgFileEnvVar: "row-estimate",
			description:   `Assumed height in rows of records not yet measured`,
			isInt:         true,
			defaultIfInt:  constants.DefaultRowEstimate,
		},
		"selection": {
			cliShort:      "s",
			cfgFileEnvVar: "selection",
			description:   `If present, start with record selection enabled. Default false`,
			isBool:        true,
		},
		"table": {
			cliShort:      "t",
			cfgFileEnvVar: "table",
			description:   `Table to read records from when --db is given`,
			defaultString: "records",
		},
		"wrap": {
			cliShort:      "w",
			cfgFileEnvVar: "wrap",
			description:   `If present, start with long lines wrapped. Default false (truncated)`,
			isBool:        true,
		},
	}

	description = fmt.Sprintf(`vl %s

vl is an interactive viewer for large, incrementally loaded record sets`,
		getVersion(),
	)

	rootCmd = &cobra.Command{
		Use:   "vl",
		Short: "vl: virtualized record viewer",
		Long:  description,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, rootNameToArg)
		},
		Run:     mainEntrypoint,
		Version: getVersion(),
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cliLong := "help"
	rootCmd.PersistentFlags().BoolP(cliLong, rootNameToArg[cliLong].cliShort, rootNameToArg[cliLong].defaultIfBool, rootNameToArg[cliLong].description)

	for _, cliLong = range []string{
		"count",
		"db",
		"overscan",
		"page-size",
		"row-estimate",
		"selection",
		"table",
		"wrap",
	} {
		c := rootNameToArg[cliLong]
		if c.isBool {
			rootCmd.PersistentFlags().BoolP(cliLong, c.cliShort, c.defaultIfBool, c.description)
		} else if c.isInt {
			rootCmd.PersistentFlags().IntP(cliLong, c.cliShort, c.defaultIfInt, c.description)
		} else {
			rootCmd.PersistentFlags().StringP(cliLong, c.cliShort, c.defaultString, c.description)
		}
		_ = viper.BindPFlag(cliLong, rootCmd.PersistentFlags().Lookup(c.cfgFileEnvVar))
	}
	rootCmd.SetVersionTemplate(`{{printf "vl %s\n" .Version}}`)
	rootCmd.Flags().BoolP("version", "v", false, "Show vl version")
}

func initConfig(cmd *cobra.Command, nameToArg map[string]arg) error {
	// bind viper to env vars
	viper.AutomaticEnv()

	bindFlags(cmd, nameToArg)
	return nil
}

func bindFlags(cmd *cobra.Command, nameToArg map[string]arg) {
	v := viper.GetViper()
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		cliLong := f.Name
		viperName := nameToArg[cliLong].cfgFileEnvVar

		// apply the viper config value to the flag when the flag is not manually
		// specified and viper has a value from the config file or env var
		if !f.Changed && v.IsSet(viperName) {
			val := v.Get(viperName)
			err := cmd.Flags().Set(cliLong, fmt.Sprintf("%v", val))
			if err != nil {
				fmt.Printf("error setting flag %s: %v\n", cliLong, err)
				os.Exit(1)
			}
		}
	})
}

func mainEntrypoint(cmd *cobra.Command, _ []string) {
	initialModel, options := setup(cmd)
	program := tea.NewProgram(initialModel, options...)

	if _, err := program.Run(); err != nil {
		fmt.Printf("error on vl startup: %v", err)
		os.Exit(1)
	}
}

func getVersion() string {
	if Version != "" {
		return Version
	}
	return versioninfo.Short()
}

func getInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		fmt.Printf("error parsing %s: %v\n", name, err)
		os.Exit(1)
	}
	return val
}

func getBool(cmd *cobra.Command, name string) bool {
	return cmd.Flags().Lookup(name).Value.String() == "true"
}

func getSource(cmd *cobra.Command) source.Pager {
	dbPath := cmd.Flags().Lookup("db").Value.String()
	if dbPath != "" {
		table := cmd.Flags().Lookup("table").Value.String()
		s, err := source.NewSQLiteSource(dbPath, table)
		if err != nil {
			fmt.Printf("error opening database: %v\n", err)
			os.Exit(1)
		}
		return s
	}

	count := getInt(cmd, "count")
	if count < 0 {
		fmt.Println("error: count must be non-negative")
		os.Exit(1)
	}
	s := source.NewMemorySource()
	s.Add(source.GenerateRecords(count)...)
	return s
}

func getConfig(cmd *cobra.Command) internal.Config {
	return internal.Config{
		KeyMap:           keymap.DefaultKeyMap(),
		Source:           getSource(cmd),
		PageSize:         getInt(cmd, "page-size"),
		RowEstimate:      getInt(cmd, "row-estimate"),
		Overscan:         getInt(cmd, "overscan"),
		Wrap:             getBool(cmd, "wrap"),
		SelectionEnabled: getBool(cmd, "selection"),
		Version:          getVersion(),
	}
}

func setup(cmd *cobra.Command) (internal.Model, []tea.ProgramOption) {
	initialModel := internal.InitialModel(getConfig(cmd))
	return initialModel, []tea.ProgramOption{tea.WithAltScreen()}
}

package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/btrkeks/bookminer/internal/config"
)

// sessionFlags carries what the launcher hands to the session process.
type sessionFlags struct {
	main           bool
	tmpDir         string
	screenshotPath string
	pageNumber     int
	bookFilename   string
	noScreenshot   bool
	display        int
}

var flags sessionFlags

var rootCmd = &cobra.Command{
	Use:   "bookminer",
	Short: "Turn what you are reading into Anki cards",
	Long: `bookminer captures the screen, opens a terminal with your editor on
front.tex and back.tex, lets you pick tags and submits the result to Anki
through AnkiConnect.

Without --main it takes the screenshot and spawns a terminal running the
interactive session. With --main it is that session.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flags.main {
			return runSession(cmd, flags)
		}
		return runLaunch(cmd, flags)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/bookminer/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	f := rootCmd.Flags()
	f.BoolVar(&flags.main, "main", false, "run the interactive session in the current terminal")
	f.StringVar(&flags.tmpDir, "tmp-dir", "", "working directory for front.tex and back.tex (required with --main)")
	f.StringVar(&flags.screenshotPath, "screenshot-path", "", "screenshot to attach to the card")
	f.IntVar(&flags.pageNumber, "page-number", 0, "page number of the source")
	f.StringVar(&flags.bookFilename, "book-filename", "", "file name of the source")
	f.BoolVar(&flags.noScreenshot, "no-screenshot", false, "do not capture the screen")
	f.IntVar(&flags.display, "display", 0, "display to capture")
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("BOOKMINER")
	// e.g., BOOKMINER_ANKI_URL for anki.url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/btrkeks/bookminer/internal/capture"
	"github.com/btrkeks/bookminer/internal/editor"
)

// runLaunch captures the screen and hands the rest of the run to a
// session process inside a new terminal window. The working directory
// lives exactly as long as that window.
func runLaunch(cmd *cobra.Command, f sessionFlags) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.close()

	terminal, err := env.cfg.TerminalCommand()
	if err != nil {
		return err
	}
	launcher, err := editor.NewTerminalLauncher(terminal, env.cfg.Terminal.Args)
	if err != nil {
		return err
	}
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate bookminer executable: %w", err)
	}

	// Grab the screen before anything of ours is drawn on it.
	var shot *capture.Shot
	if !f.noScreenshot && f.screenshotPath == "" {
		shot, err = capture.New(nil).Capture(f.display)
		if err != nil {
			return err
		}
	}

	workDir, err := os.MkdirTemp("", "bookmining")
	if err != nil {
		return fmt.Errorf("failed to create working directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			env.logger.Warn("failed to remove working directory", "path", workDir, "error", err.Error())
		}
	}()

	shotPath := f.screenshotPath
	if shot != nil {
		shotPath, err = shot.Save(workDir)
		if err != nil {
			return err
		}
	}

	argv := sessionArgs(exe, workDir, shotPath, f, cmd.Flags().Changed("page-number"), viper.GetString("config"))
	env.logger.Info("launching session", "terminal", terminal, "work_dir", workDir, "screenshot", shotPath != "")

	if err := launcher.Launch(cmd.Context(), argv); err != nil {
		env.logger.Error("session terminal failed", "error", err.Error())
		return err
	}
	return nil
}

// sessionArgs is the command line of the session process.
func sessionArgs(exe, workDir, shotPath string, f sessionFlags, hasPage bool, cfgFile string) []string {
	argv := []string{exe, "--main", "--tmp-dir", workDir}
	if cfgFile != "" {
		argv = append(argv, "--config", cfgFile)
	}
	if shotPath != "" {
		argv = append(argv, "--screenshot-path", shotPath)
	}
	if hasPage {
		argv = append(argv, "--page-number", strconv.Itoa(f.pageNumber))
	}
	if f.bookFilename != "" {
		argv = append(argv, "--book-filename", f.bookFilename)
	}
	return argv
}

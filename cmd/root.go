/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var version = "0.1.0"

var (
	cfgFile string
	cfg     config
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "eztrans",
	Short: "Japanese to Korean translation through the ezTrans engine",
	Long: `A CLI that drives the ezTrans J2KEngine.dll translation engine.

The engine is loaded from the install root, initialized once per run and
terminated on exit. Hangul and symbols the engine cannot carry through a
translation are escaped around each call when escaping is enabled.

Use "eztrans translate --help" for one-shot translation and
"eztrans serve --help" to answer line-framed requests on stdin.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(viper.New(), cmd.Flags(), cfgFile)
		if err != nil {
			return err
		}
		log, err := newLogger(c.Log.Level, c.Log.Format)
		if err != nil {
			return err
		}
		cfg, logger = c, log
		return nil
	},
}

func Execute() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run executes the command tree and flushes the logger whatever the outcome.
func run() error {
	err := rootCmd.Execute()
	_ = logger.Sync()
	return err
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	f.String("install-root", "", "ezTrans install directory (default \"C:/Program Files (x86)/ChangShinSoft/ezTrans XP\")")
	f.String("init-token", "", "engine initialization token")
	f.String("data-dir", "", "engine dictionary directory (default <install-root>/Dat)")
	f.String("narrow-mode", "", "narrow entry point: mmnt, mm, mmex, fm or chat")
	f.Bool("narrow-only", false, "never use the wide entry point")
	f.String("log-level", "", "log level: debug, info, warn or error")
	f.String("log-format", "", "log format: json or console")
}

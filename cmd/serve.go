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
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/valpere/eztrans/internal/ipc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer translation requests on stdin",
	Long: `Start one engine session and answer requests until stdin closes.

Each request is one line on stdin and each reply one line on stdout, in
order. Newlines inside a request or reply are written as \n and
backslashes as \\. A line reading "exit" ends the session.

A failed translation is answered with "Translation error: <reason>" and the
session continues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := startEngine(cfg)
		if err != nil {
			return err
		}
		defer eng.Close()

		tr, closeMemory, err := buildTranslator(cfg, eng)
		if err != nil {
			return err
		}
		defer closeMemory()

		logger.Info("serving", zap.String("mode", tr.Name()), zap.String("root", eng.InstallRoot()))
		serveErr := ipc.Serve(context.Background(), ipc.NewStream(cmd.InOrStdin(), cmd.OutOrStdout()), tr, logger.Named("ipc"))

		// terminate regardless of how the loop ended
		if err := eng.Terminate(); err != nil {
			logger.Warn("engine termination failed", zap.Error(err))
		}
		return serveErr
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addSessionFlags(serveCmd)
}

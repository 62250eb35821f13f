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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/eztrans/internal/engine"
	"github.com/valpere/eztrans/internal/native"
)

var probeInit bool

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Report which engine entry points are available",
	Long: `Load the engine from the install root and list every known entry point
with whether the installed engine exports it.

With --init the engine is also initialized and terminated once.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := engineOptions(cfg)
		if err != nil {
			return err
		}
		eng, err := engine.New(newRegistry(), opts...)
		if err != nil {
			return err
		}
		defer eng.Close()

		caps := eng.Capabilities()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ENTRY POINT\tAVAILABLE")
		for _, name := range native.EntryPoints {
			fmt.Fprintf(w, "%s\t%v\n", name, caps[name])
		}
		if err := w.Flush(); err != nil {
			return err
		}

		path := "narrow (" + eng.NarrowMode().String() + ")"
		if eng.SupportsWide() {
			path = "wide"
		}
		fmt.Printf("\nEngine:     %s\n", eng.InstallRoot())
		fmt.Printf("Translate:  %s\n", path)

		if !probeInit {
			return nil
		}
		if err := eng.Initialize(cfg.InitToken, cfg.DataDir); err != nil {
			return err
		}
		fmt.Printf("Initialize: ok\n")
		if err := eng.Terminate(); err != nil {
			return err
		}
		fmt.Printf("Terminate:  ok\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().BoolVar(&probeInit, "init", false, "Also initialize and terminate the engine")
}

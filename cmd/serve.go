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
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/valpere/gemtext/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the text processing web page",
	Long: `Start the web UI. Pick a task, enter text, adjust temperature and
max tokens in the sidebar, and press Translate or Enhance.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.cfg.Log.Level != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		srv, err := web.New(a.shell, web.Options{
			Defaults: a.cfg.Defaults,
			Markdown: a.cfg.Server.Markdown,
		}, a.logger)
		if err != nil {
			return err
		}
		return srv.Run(ctx, a.cfg.Server.Addr, a.cfg.Timeout()+5*time.Second)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8501", "Listen address")
	serveCmd.Flags().Bool("markdown", true, "Render model output as Markdown")
	_ = v.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("server.markdown", serveCmd.Flags().Lookup("markdown"))
}

package main

import (
	"context"
	"log"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the RFP editing API server",
	Long:  `Start an HTTP server that exposes REST endpoints for editing RFP documents, drafting sections with AI assist, and rendering previews and PDFs.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, PORT, or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	gen := newGenerator(context.Background(), cfg)
	defer gen.Close() //nolint:errcheck
	if err := gen.Err(); err != nil {
		log.Printf("AI assist disabled: %v", err)
	}

	srv := server.New(server.Config{
		Port:           cfg.Port,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, gen, serverPrinter(cfg))

	return srv.Start()
}

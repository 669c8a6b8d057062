package main

import (
	"fmt"
	"os"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/types"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a new RFP document with default contents",
	Long:  "Writes a document pre-filled with the default abbreviations, feed gas table, utilities, design requirements and proposal terms. Use a .yaml or .yml extension for YAML.",
	RunE:  runInit,
}

var (
	initOutputFile string
	initCompany    string
	initProject    string
	initCapacity   string
	initForce      bool
)

func init() {
	initCmd.Flags().StringVarP(&initOutputFile, "out", "o", "rfp.json", "Path to the new document")
	initCmd.Flags().StringVar(&initCompany, "company", "", "Issuing company name")
	initCmd.Flags().StringVar(&initProject, "project", "", "Project name")
	initCmd.Flags().StringVar(&initCapacity, "capacity", "", "CO₂ capture capacity target in TPD")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	if err := requireFlag("out", initOutputFile); err != nil {
		return err
	}
	if !initForce {
		if _, err := os.Stat(initOutputFile); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", initOutputFile)
		}
	}

	doc := types.NewRFP()
	doc.CompanyName = initCompany
	doc.ProjectName = initProject
	doc.CO2CaptureCapacity = initCapacity

	if err := saveDocument(initOutputFile, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote new RFP document to %s\n", initOutputFile)
	return nil
}

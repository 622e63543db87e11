// Package export implements the data export command.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adikemitra/adike-go/internal/conf"
	"github.com/adikemitra/adike-go/internal/datastore"
	dataexport "github.com/adikemitra/adike-go/internal/export"
)

// Command creates the export command.
func Command(settings *conf.Settings) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:       "export [users|detections|settings]",
		Short:     "Export application data to JSON files",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{dataexport.TypeUsers, dataexport.TypeDetections, dataexport.TypeSettings},
		RunE: func(cmd *cobra.Command, args []string) error {
			dataType := ""
			if len(args) > 0 {
				dataType = args[0]
			}
			return runExport(settings, dataType, outputDir)
		},
	}

	cmd.Flags().StringVar(&outputDir, "output", viper.GetString("export.output"), "Directory to write export files to")
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		fmt.Printf("error binding flags: %v\n", err)
		os.Exit(1)
	}
	return cmd
}

func runExport(settings *conf.Settings, dataType, outputDir string) error {
	ds := datastore.New(settings)
	if ds == nil {
		return fmt.Errorf("no database output enabled in configuration")
	}
	if err := ds.Open(); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer ds.Close()

	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	types := []string{dataexport.TypeUsers, dataexport.TypeDetections, dataexport.TypeSettings}
	if dataType != "" {
		types = []string{dataType}
	}

	for _, t := range types {
		data, err := exportData(ds, t)
		if err != nil {
			return err
		}
		name := filepath.Join(outputDir, dataexport.ExportName(t, ds.Now()))
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		fmt.Printf("wrote %s\n", name)
	}
	return nil
}

func exportData(ds datastore.Interface, dataType string) ([]byte, error) {
	switch dataType {
	case dataexport.TypeUsers:
		users, err := ds.AllUsers()
		if err != nil {
			return nil, err
		}
		return dataexport.UsersJSON(users)
	case dataexport.TypeDetections:
		detections, err := ds.AllDetections()
		if err != nil {
			return nil, err
		}
		return dataexport.DetectionsJSON(detections)
	case dataexport.TypeSettings:
		settingsRows, err := ds.AllSettings()
		if err != nil {
			return nil, err
		}
		return dataexport.SettingsJSON(settingsRows)
	default:
		return nil, fmt.Errorf("unknown export type %q", dataType)
	}
}

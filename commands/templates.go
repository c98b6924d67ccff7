// Package commands holds the CLI subcommands registered on the PocketBase
// root command.
package commands

import (
	"errors"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"paintquote/collections"
	"paintquote/services"
)

// NewTemplatesCommand returns the "templates" command with its import and
// export subcommands.
func NewTemplatesCommand(app core.App) *cobra.Command {
	command := &cobra.Command{
		Use:   "templates",
		Short: "Import or export quote templates as YAML",
	}

	command.AddCommand(templatesImportCommand(app))
	command.AddCommand(templatesExportCommand(app))

	return command
}

func templatesImportCommand(app core.App) *cobra.Command {
	var orgID string

	command := &cobra.Command{
		Use:     "import FILE",
		Example: "templates import --org o1abc templates.yaml",
		Short:   "Create or update an organization's templates from a YAML file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := prepare(app, orgID); err != nil {
				return err
			}

			res, err := services.ImportTemplateFile(services.NewRecordTemplateStore(app), orgID, args[0])
			if err != nil {
				return err
			}

			app.Logger().Info("templates imported", "organization", orgID, "file", args[0],
				"created", res.Created, "updated", res.Updated)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s: %d created, %d updated\n", args[0], res.Created, res.Updated)
			return nil
		},
	}
	command.Flags().StringVar(&orgID, "org", "", "organization id")

	return command
}

func templatesExportCommand(app core.App) *cobra.Command {
	var orgID string

	command := &cobra.Command{
		Use:     "export FILE",
		Example: "templates export --org o1abc templates.yaml",
		Short:   "Write an organization's templates to a YAML file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := prepare(app, orgID); err != nil {
				return err
			}

			n, err := services.ExportTemplateFile(services.NewRecordTemplateStore(app), orgID, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d templates to %s\n", n, args[0])
			return nil
		},
	}
	command.Flags().StringVar(&orgID, "org", "", "organization id")

	return command
}

// prepare ensures the schema exists and the organization is known.
func prepare(app core.App, orgID string) error {
	if orgID == "" {
		return errors.New("missing required --org flag")
	}
	if err := collections.Setup(app); err != nil {
		return err
	}
	if _, err := services.LoadOrgSettings(app, orgID); err != nil {
		return err
	}
	return nil
}

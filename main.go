package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintquote/collections"
	"paintquote/commands"
	"paintquote/config"
	"paintquote/handlers"
	"paintquote/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	app := pocketbase.New()
	app.RootCmd.AddCommand(commands.NewTemplatesCommand(app))

	// Create collections, seed data and load templates on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if err := collections.Setup(app); err != nil {
			return err
		}
		if cfg.SeedDemo {
			if err := collections.Seed(app, cfg.DefaultTaxRate); err != nil {
				log.Printf("Warning: seed data failed: %v", err)
			}
		}
		if err := collections.MigrateDefaultTemplates(app); err != nil {
			log.Printf("Warning: default template migration failed: %v", err)
		}
		if cfg.TemplatesFile != "" {
			importTemplatesFile(app, cfg.TemplatesFile)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Templates ────────────────────────────────────────────
		se.Router.GET("/api/template-options", handlers.HandleTemplateOptions(app))
		se.Router.GET("/api/orgs/{orgId}/templates", handlers.HandleTemplateList(app))
		se.Router.POST("/api/orgs/{orgId}/templates", handlers.HandleTemplateCreate(app))
		se.Router.PUT("/api/orgs/{orgId}/templates/{id}", handlers.HandleTemplateUpdate(app))

		// ── Quotes ───────────────────────────────────────────────
		quotes := se.Router.Group("/api/projects/{projectId}/quotes")
		quotes.BindFunc(handlers.ProjectMiddleware(app))
		quotes.POST("", handlers.HandleQuoteCreate(app))
		quotes.GET("/{id}", handlers.HandleQuoteView(app))

		// ── Quote documents ──────────────────────────────────────
		docs := se.Router.Group("/projects/{projectId}/quotes/{id}")
		docs.BindFunc(handlers.ProjectMiddleware(app))
		docs.GET("/export/excel", handlers.HandleQuoteExportExcel(app))
		docs.GET("/export/pdf", handlers.HandleQuoteExportPDF(app))
		docs.GET("/preview", handlers.HandleQuotePreview(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// importTemplatesFile loads the startup template file into every
// organization. Failures are logged and do not stop the server.
func importTemplatesFile(app core.App, path string) {
	orgs, err := app.FindAllRecords("organizations")
	if err != nil {
		log.Printf("Warning: template import: could not list organizations: %v", err)
		return
	}

	store := services.NewRecordTemplateStore(app)
	for _, org := range orgs {
		res, err := services.ImportTemplateFile(store, org.Id, path)
		if err != nil {
			log.Printf("Warning: template import into %s failed: %v", org.Id, err)
			continue
		}
		app.Logger().Info("templates imported",
			"organization", org.Id, "file", path,
			"created", res.Created, "updated", res.Updated)
	}
}

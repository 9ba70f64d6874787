package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"constructly/collections"
	"constructly/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections, seed the price book and backfill quote numbers
	// on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateUnnumberedQuotes(app); err != nil {
			log.Printf("Warning: quote number migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Serve static files from ./static
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// Remember the user's region choice across visits
		se.Router.BindFunc(handlers.ActiveRegionMiddleware(app))

		// ── Quote CRUD ───────────────────────────────────────────
		se.Router.GET("/quotes", handlers.HandleQuoteList(app))
		se.Router.GET("/quotes/create", handlers.HandleQuoteCreate(app))
		se.Router.POST("/quotes", handlers.HandleQuoteSave(app))
		se.Router.GET("/quotes/{id}/edit", handlers.HandleQuoteEdit(app))
		se.Router.POST("/quotes/{id}/save", handlers.HandleQuoteUpdate(app))
		se.Router.DELETE("/quotes/{id}", handlers.HandleQuoteDelete(app))

		// ── Quote export ─────────────────────────────────────────
		se.Router.GET("/quotes/{id}/export/excel", handlers.HandleQuoteExportExcel(app))
		se.Router.GET("/quotes/{id}/export/pdf", handlers.HandleQuoteExportPDF(app))

		// ── Material schedule ────────────────────────────────────
		se.Router.GET("/quotes/{id}/schedule", handlers.HandleQuoteSchedule(app))

		// Quote view (after specific /quotes/{id}/* routes)
		se.Router.GET("/quotes/{id}", handlers.HandleQuoteView(app))

		// ── Material prices ──────────────────────────────────────
		se.Router.GET("/prices", handlers.HandlePriceList(app))
		se.Router.POST("/prices/{materialId}/override", handlers.HandlePriceOverrideSave(app))
		se.Router.DELETE("/prices/{materialId}/override", handlers.HandlePriceOverrideDelete(app))

		// ── Catalog import ───────────────────────────────────────
		se.Router.GET("/catalog/import", handlers.HandleCatalogImportPage(app))
		se.Router.GET("/catalog/import/template", handlers.HandleCatalogTemplate(app))
		se.Router.POST("/catalog/import", handlers.HandleCatalogImportValidate(app))
		se.Router.POST("/catalog/import/commit", handlers.HandleCatalogImportCommit(app))
		se.Router.POST("/catalog/import/errors", handlers.HandleCatalogErrorReport(app))

		// Redirect home to the quotes list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/quotes")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"boardtracker/collections"
	"boardtracker/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateMissingGrossQuantities(app); err != nil {
			log.Printf("Warning: gross quantity migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Board CRUD ───────────────────────────────────────────
		se.Router.GET("/boards", handlers.HandleBoardList(app))
		se.Router.POST("/boards", handlers.HandleBoardCreate(app))
		se.Router.GET("/boards/{id}", handlers.HandleBoardView(app))
		se.Router.PATCH("/boards/{id}", handlers.HandleBoardUpdate(app))
		se.Router.DELETE("/boards/{id}", handlers.HandleBoardDelete(app))

		// ── Circuit CRUD ─────────────────────────────────────────
		se.Router.GET("/boards/{boardId}/circuits", handlers.HandleCircuitList(app))
		se.Router.POST("/boards/{boardId}/circuits", handlers.HandleCircuitCreate(app))
		se.Router.PATCH("/circuits/{id}", handlers.HandleCircuitUpdate(app))
		se.Router.DELETE("/circuits/{id}", handlers.HandleCircuitDelete(app))

		// ── Circuit materials ────────────────────────────────────
		se.Router.GET("/materials/options", handlers.HandleMaterialOptions(app))
		se.Router.GET("/circuits/{circuitId}/materials", handlers.HandleMaterialList(app))
		se.Router.POST("/circuits/{circuitId}/materials", handlers.HandleMaterialCreate(app))
		se.Router.GET("/materials/{id}", handlers.HandleMaterialView(app))
		se.Router.PATCH("/materials/{id}", handlers.HandleMaterialUpdate(app))
		se.Router.POST("/materials/{id}/unlink", handlers.HandleMaterialUnlink(app))

		// Material delete (delete-info must be before DELETE {id})
		se.Router.GET("/materials/{id}/delete-info", handlers.HandleMaterialDeleteInfo(app))
		se.Router.DELETE("/materials/{id}", handlers.HandleMaterialDelete(app))

		// ── Drawing sync ─────────────────────────────────────────
		se.Router.DELETE("/sync/drawing-elements/{ref}", handlers.HandleDrawingElementRemoved(app))

		// ── Schedule export ──────────────────────────────────────
		se.Router.GET("/circuits/{id}/schedule/export/excel", handlers.HandleScheduleExportExcel(app))
		se.Router.GET("/circuits/{id}/schedule/export/pdf", handlers.HandleScheduleExportPDF(app))

		// ── Document folders ─────────────────────────────────────
		se.Router.GET("/folders", handlers.HandleFolderList(app))
		se.Router.POST("/folders", handlers.HandleFolderCreate(app))
		se.Router.PATCH("/folders/{id}", handlers.HandleFolderUpdate(app))
		se.Router.DELETE("/folders/{id}", handlers.HandleFolderDelete(app))

		// ── Documents ────────────────────────────────────────────
		se.Router.GET("/folders/{id}/documents", handlers.HandleDocumentList(app))
		se.Router.POST("/folders/{id}/documents", handlers.HandleDocumentCreate(app))
		se.Router.PATCH("/documents/{id}", handlers.HandleDocumentUpdate(app))
		se.Router.DELETE("/documents/{id}", handlers.HandleDocumentDelete(app))

		// ── Roadmap ──────────────────────────────────────────────
		se.Router.GET("/roadmap", handlers.HandleRoadmapList(app))
		se.Router.POST("/roadmap", handlers.HandleRoadmapCreate(app))
		se.Router.PATCH("/roadmap/{id}", handlers.HandleRoadmapUpdate(app))
		se.Router.DELETE("/roadmap/{id}", handlers.HandleRoadmapDelete(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

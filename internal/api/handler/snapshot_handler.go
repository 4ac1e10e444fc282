package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
	"github.com/hashdoctor/telehealth-api/internal/core/ports"
)

// SnapshotHandler exports, imports and resets the full application
// state. All routes are admin only.
type SnapshotHandler struct {
	snapshots ports.SnapshotService
	directory ports.DirectoryService
}

func NewSnapshotHandler(snapshots ports.SnapshotService, directory ports.DirectoryService) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots, directory: directory}
}

// Export handles GET /v1/snapshot.
//
// @Summary      Export users and chats as a versioned snapshot
// @Tags         snapshot
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Snapshot
// @Router       /v1/snapshot [get]
func (h *SnapshotHandler) Export(c echo.Context) error {
	snap, err := h.snapshots.Export(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

// Import handles POST /v1/snapshot. The snapshot replaces both stores
// wholesale; a payload missing either collection is rejected without
// touching existing data.
//
// @Summary      Restore state from a snapshot
// @Tags         snapshot
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  domain.Snapshot  true  "Snapshot payload"
// @Success      204   "restored"
// @Failure      400   {object}  map[string]string
// @Router       /v1/snapshot [post]
func (h *SnapshotHandler) Import(c echo.Context) error {
	var snap domain.Snapshot
	if err := c.Bind(&snap); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.snapshots.Import(c.Request().Context(), &snap); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Reset handles DELETE /v1/snapshot: wipe both stores and reseed the
// default roster.
//
// @Summary      Reset all state to the default roster
// @Tags         snapshot
// @Security     BearerAuth
// @Success      204  "reset"
// @Router       /v1/snapshot [delete]
func (h *SnapshotHandler) Reset(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.snapshots.Reset(ctx); err != nil {
		return err
	}
	if err := h.directory.Seed(ctx); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

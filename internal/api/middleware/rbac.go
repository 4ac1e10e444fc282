package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
)

// RBAC enforces role-based access control.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// AdminOnly restricts a route to the administrative roles.
func AdminOnly() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdminCEO, domain.RoleAdminManager, domain.RoleAdminCSO, domain.RoleAdminCMO)
}

// ClinicalOnly restricts a route to roles with diagnosing privileges.
func ClinicalOnly() echo.MiddlewareFunc {
	return RBAC(domain.RoleDoctor, domain.RoleAdminCMO)
}

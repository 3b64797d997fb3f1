package middleware

import (
	accesspolicy "payroll-backend/lib/access"
	authutils "payroll-backend/lib/utils/auth-utils"
	"payroll-backend/models"
	apimodels "payroll-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func AdminRoleRequired() fiber.Handler {
	return roleRequired(models.AdminRole)
}

func EmployeeRoleRequired() fiber.Handler {
	return roleRequired(models.EmployeeRole)
}

func roleRequired(role models.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserRole(ctx) != role {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}

func GetUserID(ctx *fiber.Ctx) string {
	return claimString(ctx, "sub")
}

func claimString(ctx *fiber.Ctx, key string) string {
	claims := authutils.GetClaims(ctx)
	if value, ok := claims[key].(string); ok {
		return value
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	return models.UserRole(claimString(ctx, "role"))
}

func GetActor(ctx *fiber.Ctx) accesspolicy.Actor {
	return accesspolicy.Actor{
		ID:    GetUserID(ctx),
		Role:  GetUserRole(ctx),
		Name:  claimString(ctx, "name"),
		Email: claimString(ctx, "email"),
	}
}

package router

import (
	"net/http"

	"github.com/SakuraBurst/rewards/internal/rewards/router/middleware"
	"github.com/SakuraBurst/rewards/internal/rewards/types"
	"github.com/gofiber/fiber/v2"
)

func (r *HttpRouter) AdminStats(ctx *fiber.Ctx) error {
	stats, err := middleware.SessionFrom(ctx).Console.Stats(ctx.Context())
	if err != nil {
		return r.fail(ctx, "admin.Stats", err)
	}
	return ctx.JSON(fiber.Map{"status": "success", "stats": stats})
}

func (r *HttpRouter) AdminTasks(ctx *fiber.Ctx) error {
	tasks, err := middleware.SessionFrom(ctx).Console.Tasks(ctx.Context())
	if err != nil {
		return r.fail(ctx, "admin.Tasks", err)
	}
	return ctx.JSON(fiber.Map{"status": "success", "tasks": tasks})
}

func (r *HttpRouter) AdminSaveTask(ctx *fiber.Ctx) error {
	request := &types.AdminTask{}
	if err := ctx.BodyParser(request); err != nil {
		return badRequest(ctx)
	}
	id := ctx.Params("id")
	if err := middleware.SessionFrom(ctx).Console.SaveTask(ctx.Context(), id, request); err != nil {
		return r.fail(ctx, "admin.SaveTask", err)
	}
	if id == "" {
		ctx.Status(http.StatusCreated)
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

func (r *HttpRouter) AdminDeleteTask(ctx *fiber.Ctx) error {
	if err := middleware.SessionFrom(ctx).Console.DeleteTask(ctx.Context(), ctx.Params("id")); err != nil {
		return r.fail(ctx, "admin.DeleteTask", err)
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

func (r *HttpRouter) AdminNetworks(ctx *fiber.Ctx) error {
	networks, err := middleware.SessionFrom(ctx).Console.Networks(ctx.Context())
	if err != nil {
		return r.fail(ctx, "admin.Networks", err)
	}
	return ctx.JSON(fiber.Map{"status": "success", "networks": networks})
}

func (r *HttpRouter) AdminSaveNetwork(ctx *fiber.Ctx) error {
	request := &types.AdminNetwork{}
	if err := ctx.BodyParser(request); err != nil {
		return badRequest(ctx)
	}
	id := ctx.Params("id")
	if err := middleware.SessionFrom(ctx).Console.SaveNetwork(ctx.Context(), id, request); err != nil {
		return r.fail(ctx, "admin.SaveNetwork", err)
	}
	if id == "" {
		ctx.Status(http.StatusCreated)
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

func (r *HttpRouter) AdminDeleteNetwork(ctx *fiber.Ctx) error {
	if err := middleware.SessionFrom(ctx).Console.DeleteNetwork(ctx.Context(), ctx.Params("id")); err != nil {
		return r.fail(ctx, "admin.DeleteNetwork", err)
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

func (r *HttpRouter) AdminUsers(ctx *fiber.Ctx) error {
	users, err := middleware.SessionFrom(ctx).Console.Users(ctx.Context(), ctx.Query("search"))
	if err != nil {
		return r.fail(ctx, "admin.Users", err)
	}
	return ctx.JSON(fiber.Map{"status": "success", "users": users})
}

func (r *HttpRouter) AdminUser(ctx *fiber.Ctx) error {
	user, err := middleware.SessionFrom(ctx).Console.User(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return r.fail(ctx, "admin.User", err)
	}
	return ctx.JSON(fiber.Map{"status": "success", "user": user})
}

package router

import (
	"github.com/SakuraBurst/rewards/internal/rewards/controller"
	"github.com/SakuraBurst/rewards/internal/rewards/router/middleware"
	"github.com/SakuraBurst/rewards/internal/rewards/types"
	"github.com/go-faster/errors"
	"github.com/gofiber/fiber/v2"
)

type taskCard struct {
	controller.TaskView
	Group types.Category `json:"group"`
}

type contentSection struct {
	Network *types.Network  `json:"network"`
	Tasks   []taskCard      `json:"tasks,omitempty"`
	Games   []*types.Game   `json:"games,omitempty"`
	Surveys []*types.Survey `json:"surveys,omitempty"`
}

func (r *HttpRouter) card(tasks *controller.Tasks, t *types.Task) taskCard {
	return taskCard{TaskView: tasks.View(t), Group: types.CategoryOf(t, r.content.LegacyCategoryFallback)}
}

func (r *HttpRouter) contentView(tasks *controller.Tasks, v controller.PagerView) fiber.Map {
	sections := make([]contentSection, 0, len(v.Sections))
	for _, s := range v.Sections {
		section := contentSection{Network: s.Network, Games: s.Games, Surveys: s.Surveys}
		for _, t := range s.Tasks {
			// статус берем из контроллера задач, он мог измениться после загрузки
			if current, ok := tasks.Task(t.ID); ok {
				t = current
			}
			section.Tasks = append(section.Tasks, r.card(tasks, t))
		}
		sections = append(sections, section)
	}
	return fiber.Map{
		"tab":         v.Tab,
		"page":        v.Page,
		"has_more":    v.HasMore,
		"loading":     v.Loading,
		"end_of_list": v.EndOfList,
		"sections":    sections,
	}
}

func (r *HttpRouter) Content(ctx *fiber.Ctx) error {
	sess := middleware.SessionFrom(ctx)
	return ctx.JSON(fiber.Map{"status": "success", "content": r.contentView(sess.Tasks, sess.Pager.View())})
}

type tabRequest struct {
	Type types.ContentType `json:"type"`
}

func (r *HttpRouter) SwitchTab(ctx *fiber.Ctx) error {
	request := &tabRequest{}
	if err := ctx.BodyParser(request); err != nil {
		return badRequest(ctx)
	}
	sess := middleware.SessionFrom(ctx)
	if err := sess.Pager.SwitchTab(request.Type); err != nil {
		return r.fail(ctx, "pager.SwitchTab", err)
	}
	return ctx.JSON(fiber.Map{"status": "success", "content": r.contentView(sess.Tasks, sess.Pager.View())})
}

type moreRequest struct {
	NearEnd *bool `json:"near_end"`
}

func (r *HttpRouter) LoadMore(ctx *fiber.Ctx) error {
	request := &moreRequest{}
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(request); err != nil {
			return badRequest(ctx)
		}
	}
	nearEnd := request.NearEnd == nil || *request.NearEnd
	sess := middleware.SessionFrom(ctx)
	view, err := sess.Pager.LoadMore(ctx.Context(), nearEnd)
	if errors.Is(err, controller.ErrLoadSkipped) {
		return ctx.JSON(fiber.Map{"status": "success", "skipped": true, "content": r.contentView(sess.Tasks, view)})
	}
	if err != nil {
		return r.fail(ctx, "pager.LoadMore", err, fiber.Map{"content": r.contentView(sess.Tasks, view)})
	}
	return ctx.JSON(fiber.Map{"status": "success", "content": r.contentView(sess.Tasks, view)})
}

func (r *HttpRouter) Tasks(ctx *fiber.Ctx) error {
	sess := middleware.SessionFrom(ctx)
	var tasks []*types.Task
	hasMore := false
	if networkID := ctx.Query("network_id"); networkID != "" {
		var err error
		tasks, hasMore, err = sess.Tasks.LoadTasks(ctx.Context(), types.TaskFilter{
			NetworkID: networkID,
			Type:      types.TaskType(ctx.Query("type")),
			Page:      ctx.QueryInt("page", 1),
			PageSize:  ctx.QueryInt("page_size", r.content.ContentPageSize),
		})
		if err != nil {
			return r.fail(ctx, "tasks.LoadTasks", err)
		}
	} else {
		tasks = sess.Tasks.Snapshot()
	}
	cards := make([]taskCard, 0, len(tasks))
	for _, t := range tasks {
		cards = append(cards, r.card(sess.Tasks, t))
	}
	return ctx.JSON(fiber.Map{"status": "success", "tasks": cards, "has_more": hasMore})
}

func (r *HttpRouter) StartTask(ctx *fiber.Ctx) error {
	sess := middleware.SessionFrom(ctx)
	task, err := sess.Tasks.StartTask(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return r.fail(ctx, "tasks.StartTask", err)
	}
	return ctx.JSON(fiber.Map{"status": "success", "task": r.card(sess.Tasks, task)})
}

type checkRequest struct {
	VerificationData map[string]any `json:"verification_data"`
}

func (r *HttpRouter) CheckTask(ctx *fiber.Ctx) error {
	request := &checkRequest{}
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(request); err != nil {
			return badRequest(ctx)
		}
	}
	sess := middleware.SessionFrom(ctx)
	res, err := sess.Tasks.CheckTask(ctx.Context(), ctx.Params("id"), request.VerificationData)
	if err != nil {
		return r.fail(ctx, "tasks.CheckTask", err)
	}
	status := "success"
	if !res.Completed {
		status = "info"
	}
	return ctx.JSON(fiber.Map{"status": status, "result": res})
}

func (r *HttpRouter) spinView(ctx *fiber.Ctx, st controller.SpinState) fiber.Map {
	size := float64(ctx.QueryInt("size", 300))
	return fiber.Map{"spin": st, "wheel": controller.RenderWheel(st, size)}
}

func (r *HttpRouter) OpenSpin(ctx *fiber.Ctx) error {
	spin := middleware.SessionFrom(ctx).OpenSpin()
	body := r.spinView(ctx, spin.State())
	body["status"] = "success"
	body["frame_interval_ms"] = r.spin.FrameInterval.Milliseconds()
	return ctx.JSON(body)
}

func (r *HttpRouter) Spin(ctx *fiber.Ctx) error {
	spin, ok := middleware.SessionFrom(ctx).Spin()
	if !ok {
		return r.fail(ctx, "spin.Spin", controller.ErrSpinClosed)
	}
	st, err := spin.Spin(ctx.Context())
	if err != nil {
		return r.fail(ctx, "spin.Spin", err, r.spinView(ctx, st))
	}
	body := r.spinView(ctx, st)
	body["status"] = "success"
	return ctx.JSON(body)
}

func (r *HttpRouter) SpinFrame(ctx *fiber.Ctx) error {
	spin, ok := middleware.SessionFrom(ctx).Spin()
	if !ok {
		return r.fail(ctx, "spin.Frame", controller.ErrSpinClosed)
	}
	body := r.spinView(ctx, spin.Frame(r.now()))
	body["status"] = "success"
	return ctx.JSON(body)
}

func (r *HttpRouter) CloseSpin(ctx *fiber.Ctx) error {
	middleware.SessionFrom(ctx).CloseSpin()
	return ctx.JSON(fiber.Map{"status": "success"})
}

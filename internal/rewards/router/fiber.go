package router

import (
	"net/http"
	"time"

	"github.com/SakuraBurst/rewards/internal/rewards/config"
	"github.com/SakuraBurst/rewards/internal/rewards/controller"
	"github.com/SakuraBurst/rewards/internal/rewards/gateway"
	"github.com/SakuraBurst/rewards/internal/rewards/identity"
	"github.com/SakuraBurst/rewards/internal/rewards/router/middleware"
	"github.com/SakuraBurst/rewards/internal/rewards/session"
	"github.com/go-faster/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type resolver interface {
	Resolve(initData string) (identity.State, error)
}

type sessions interface {
	Open(state identity.State) (*session.Session, string, error)
	FromToken(token *jwt.Token) (*session.Session, error)
	Close(id string)
}

type HttpRouter struct {
	bridge   resolver
	sessions sessions
	*fiber.App
	appLogger *zap.Logger
	httpPort  string
	content   config.Content
	spin      config.Spin
	now       func() time.Time
}

const internalServerErrorMessage = "Произошла ошибка на сервере"
const badRequestMessage = "Неправильный формат данных или в них есть ошибка"

func (r *HttpRouter) Run() error {
	return r.App.Listen(":" + r.httpPort)
}

func (r *HttpRouter) Close() error {
	return r.App.Shutdown()
}

// fail переводит ошибку контроллера в ответ: 400 локальный отказ, 409 уже сделано, 502 ошибка api
func (r *HttpRouter) fail(ctx *fiber.Ctx, op string, err error, extra ...fiber.Map) error {
	status, label := http.StatusInternalServerError, "error"
	message := gateway.UserMessage(err)
	switch gateway.Classify(err) {
	case gateway.KindValidation, gateway.KindRejected:
		status = http.StatusBadRequest
		if errors.Is(err, controller.ErrNotAdmin) {
			status = http.StatusForbidden
		}
	case gateway.KindAlreadyDone:
		status, label = http.StatusConflict, "info"
	case gateway.KindTransport, gateway.KindAPI:
		status = http.StatusBadGateway
		r.appLogger.Warn(op+" failed: ", zap.Error(err))
	default:
		message = internalServerErrorMessage
		r.appLogger.Error(op+" failed: ", zap.Error(err))
	}
	body := fiber.Map{"status": label, "message": message}
	for _, m := range extra {
		for k, v := range m {
			body[k] = v
		}
	}
	ctx.Status(status)
	return ctx.JSON(body)
}

func badRequest(ctx *fiber.Ctx) error {
	ctx.Status(http.StatusBadRequest)
	return ctx.JSON(fiber.Map{"status": "error", "message": badRequestMessage})
}

type sessionRequest struct {
	InitData string `json:"init_data"`
}

func (r *HttpRouter) OpenSession(ctx *fiber.Ctx) error {
	request := &sessionRequest{}
	if err := ctx.BodyParser(request); err != nil {
		r.appLogger.Debug("ctx.BodyParser failed: ", zap.Error(err))
		return badRequest(ctx)
	}
	if request.InitData == "" {
		request.InitData = ctx.Get(gateway.InitDataHeader)
	}
	state, err := r.bridge.Resolve(request.InitData)
	if err != nil {
		r.appLogger.Info("bridge.Resolve failed: ", zap.Error(err))
		ctx.Status(http.StatusUnauthorized)
		return ctx.JSON(fiber.Map{"status": "error", "message": "Не удалось подтвердить пользователя"})
	}
	sess, token, err := r.sessions.Open(state)
	if err != nil {
		r.appLogger.Error("sessions.Open failed: ", zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return ctx.JSON(fiber.Map{"status": "error", "message": internalServerErrorMessage})
	}
	user, err := sess.Profile.Refresh(ctx.Context())
	if err != nil {
		r.appLogger.Warn("profile.Refresh failed: ", zap.String("session_id", sess.ID), zap.Error(err))
	}
	ctx.Status(http.StatusCreated)
	return ctx.JSON(fiber.Map{
		"status":   "success",
		"token":    token,
		"identity": sess.User,
		"user":     user,
		"admin":    sess.Admin,
	})
}

func (r *HttpRouter) CloseSession(ctx *fiber.Ctx) error {
	r.sessions.Close(middleware.SessionFrom(ctx).ID)
	return ctx.JSON(fiber.Map{"status": "success"})
}

func (r *HttpRouter) Me(ctx *fiber.Ctx) error {
	sess := middleware.SessionFrom(ctx)
	user, err := sess.Profile.Refresh(ctx.Context())
	if err != nil {
		return r.fail(ctx, "profile.Refresh", err)
	}
	return ctx.JSON(fiber.Map{"status": "success", "user": user, "identity": sess.User, "admin": sess.Admin})
}

func (r *HttpRouter) Checkin(ctx *fiber.Ctx) error {
	res, err := middleware.SessionFrom(ctx).Profile.Checkin(ctx.Context())
	if err != nil {
		return r.fail(ctx, "profile.Checkin", err)
	}
	return ctx.JSON(fiber.Map{"status": "success", "bonus": res.Bonus, "user": res.User})
}

func (r *HttpRouter) Leaderboard(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", r.content.LeaderboardLimit)
	entries, err := middleware.SessionFrom(ctx).Profile.Leaderboard(ctx.Context(), limit)
	if err != nil {
		return r.fail(ctx, "profile.Leaderboard", err)
	}
	return ctx.JSON(fiber.Map{"status": "success", "leaderboard": entries})
}

func (r *HttpRouter) Referrals(ctx *fiber.Ctx) error {
	resp, err := middleware.SessionFrom(ctx).Profile.Referrals(ctx.Context())
	if err != nil {
		return r.fail(ctx, "profile.Referrals", err)
	}
	return ctx.JSON(fiber.Map{"status": "success", "referrals": resp.Referrals, "link": resp.Link})
}

func (r *HttpRouter) History(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", r.content.HistoryLimit)
	offset := ctx.QueryInt("offset", 0)
	if limit <= 0 || offset < 0 {
		return badRequest(ctx)
	}
	resp, err := middleware.SessionFrom(ctx).Profile.History(ctx.Context(), limit, offset)
	if err != nil {
		return r.fail(ctx, "profile.History", err)
	}
	return ctx.JSON(fiber.Map{"status": "success", "history": resp.History, "has_more": resp.HasMore})
}

func (r *HttpRouter) Shop(ctx *fiber.Ctx) error {
	rewards, err := middleware.SessionFrom(ctx).Shop.Rewards(ctx.Context())
	if err != nil {
		return r.fail(ctx, "shop.Rewards", err)
	}
	return ctx.JSON(fiber.Map{"status": "success", "rewards": rewards})
}

func (r *HttpRouter) Redeem(ctx *fiber.Ctx) error {
	user, err := middleware.SessionFrom(ctx).Shop.Redeem(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return r.fail(ctx, "shop.Redeem", err)
	}
	return ctx.JSON(fiber.Map{"status": "success", "user": user})
}

func (r *HttpRouter) PlayGame(ctx *fiber.Ctx) error {
	url, err := middleware.SessionFrom(ctx).Games.Play(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return r.fail(ctx, "games.Play", err)
	}
	return ctx.JSON(fiber.Map{"status": "success", "url": url})
}

func CreateRouter(bridge resolver, store sessions, cfg *config.Config, logger *zap.Logger) *HttpRouter {
	appLogger := logger.Named("router")
	app := fiber.New()
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))

	r := &HttpRouter{
		bridge:    bridge,
		sessions:  store,
		App:       app,
		appLogger: appLogger,
		httpPort:  cfg.HTTP.Port,
		content:   cfg.Content,
		spin:      cfg.Spin,
		now:       time.Now,
	}
	api := r.Group("/api/v1")
	api.Post("/session", r.OpenSession)

	protected := api.Group("", middleware.Protected([]byte(cfg.HTTP.JWTSecret)), middleware.Session(store))
	protected.Delete("/session", r.CloseSession)
	protected.Get("/me", r.Me)
	protected.Post("/checkin", r.Checkin)
	protected.Get("/leaderboard", r.Leaderboard)
	protected.Get("/referrals", r.Referrals)
	protected.Get("/history", r.History)

	protected.Get("/content", r.Content)
	protected.Post("/content/tab", r.SwitchTab)
	protected.Post("/content/more", r.LoadMore)
	protected.Get("/tasks", r.Tasks)
	protected.Post("/tasks/:id/start", r.StartTask)
	protected.Post("/tasks/:id/check", r.CheckTask)
	protected.Post("/games/:id/play", r.PlayGame)

	protected.Post("/spin/open", r.OpenSpin)
	protected.Post("/spin", r.Spin)
	protected.Get("/spin", r.SpinFrame)
	protected.Post("/spin/close", r.CloseSpin)

	protected.Get("/shop", r.Shop)
	protected.Post("/shop/:id/redeem", r.Redeem)

	admin := protected.Group("/admin")
	admin.Get("/stats", r.AdminStats)
	admin.Get("/tasks", r.AdminTasks)
	admin.Post("/tasks", r.AdminSaveTask)
	admin.Put("/tasks/:id", r.AdminSaveTask)
	admin.Delete("/tasks/:id", r.AdminDeleteTask)
	admin.Get("/networks", r.AdminNetworks)
	admin.Post("/networks", r.AdminSaveNetwork)
	admin.Put("/networks/:id", r.AdminSaveNetwork)
	admin.Delete("/networks/:id", r.AdminDeleteNetwork)
	admin.Get("/users", r.AdminUsers)
	admin.Get("/users/:id", r.AdminUser)
	return r
}

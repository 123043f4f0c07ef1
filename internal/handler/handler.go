package handler

import (
	"github.com/dianchu-dev/menu-backoffice/backend/internal/config"
	"github.com/dianchu-dev/menu-backoffice/backend/internal/domain"
	"github.com/dianchu-dev/menu-backoffice/backend/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 顾客端菜单查询无需登录
	h.Mux.Route("/menu", func(r chi.Router) {
		r.Get("/active", h.GetActiveMenu)
		r.Get("/time-based", h.GetTimeBasedMenu)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		// 分店经理查看自己门店当前的菜单
		r.With(h.myInfo).Get("/my-branch/menu", h.GetMyBranchMenu)

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleHQAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleHQAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleHQAdmin})).Delete("/", h.DeleteUser)
			})
		})

		r.Route("/branches", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleHQAdmin})).Post("/", h.CreateBranch)
			r.Get("/", h.GetAllBranches)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.branch)
				r.Get("/", h.GetBranch)
				r.With(h.RequiredRole([]domain.Role{domain.RoleHQAdmin})).Patch("/", h.UpdateBranch)
				r.With(h.RequiredRole([]domain.Role{domain.RoleHQAdmin})).Delete("/", h.DeleteBranch)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleHQAdmin})).Post("/", h.CreateProduct)
			r.Get("/", h.GetAllProducts)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.product)
				r.Get("/", h.GetProduct)
				r.Get("/schedules", h.GetProductSchedules)
				r.With(h.RequiredRole([]domain.Role{domain.RoleHQAdmin})).Patch("/", h.UpdateProduct)
				r.With(h.RequiredRole([]domain.Role{domain.RoleHQAdmin})).Delete("/", h.DeleteProduct)
				r.With(h.RequiredRole([]domain.Role{domain.RoleHQAdmin})).Put("/schedules", h.ReplaceProductSchedules)
			})
		})

		r.Route("/schedules", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleHQAdmin})).Post("/", h.CreateSchedule)
			r.Get("/", h.GetAllSchedules)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.schedule)
				r.Get("/", h.GetSchedule)
				r.Get("/items", h.GetScheduleItems)
				r.With(h.RequiredRole([]domain.Role{domain.RoleHQAdmin})).Patch("/", h.UpdateSchedule)
				r.With(h.RequiredRole([]domain.Role{domain.RoleHQAdmin})).Delete("/", h.DeleteSchedule)
				r.With(h.RequiredRole([]domain.Role{domain.RoleHQAdmin})).Post("/items", h.AddScheduleItems)
			})
		})

		// 删除单个时段产品项：分店经理只能操作自己分店的时段
		r.With(h.myInfo).Delete("/schedule-items/{id}", h.RemoveScheduleItem)
	})
}

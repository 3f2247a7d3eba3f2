package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/zacmccul/chocobo-breeding-calculator/internal/config"
	"github.com/zacmccul/chocobo-breeding-calculator/internal/domain"
	"github.com/zacmccul/chocobo-breeding-calculator/internal/repository"
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
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
				r.Patch("/password", h.UpdateUserPassword)
			})
		})

		// 鸟舍管理，所有操作都以当前登录用户的鸟舍为范围
		r.Route("/chocobos", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/", h.CreateChocobo)
			r.Get("/", h.GetMyChocobos)
			r.Post("/import", h.ImportChocobos)
			r.Get("/export", h.ExportChocobos)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.chocobo)
				r.Get("/", h.GetChocobo)
				r.Patch("/", h.UpdateChocobo)
				r.Delete("/", h.DeleteChocobo)
			})
		})

		// 配对计算
		r.Route("/pairings", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/evaluate", h.EvaluatePairing)
			r.Post("/best", h.FindBestPairing)
			r.Post("/report", h.SendBreedingReport)
		})
	})
}
